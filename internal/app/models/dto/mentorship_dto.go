package dto

// CreateMentorshipRequest is the admin path; both parties are explicit
type CreateMentorshipRequest struct {
	MentorID    int64   `json:"mentor_id" form:"mentor_id" binding:"required,min=1"`
	MenteeID    int64   `json:"mentee_id" form:"mentee_id" binding:"required,min=1"`
	Title       *string `json:"title" form:"title"`
	Description *string `json:"description" form:"description"`
	Status      *string `json:"status" form:"status"`
	StartDate   *string `json:"start_date" form:"start_date" example:"2025-03-01"`
	EndDate     *string `json:"end_date" form:"end_date" example:"2025-06-01"`
}

// ApplyMentorshipRequest is the mentee path; the mentee is the caller
type ApplyMentorshipRequest struct {
	MentorID    int64   `json:"mentor_id" form:"mentor_id" binding:"required,min=1"`
	Title       *string `json:"title" form:"title"`
	Description *string `json:"description" form:"description"`
	StartDate   *string `json:"start_date" form:"start_date" example:"2025-03-01"`
}

// UpdateMentorshipRequest is a partial update. Dates use YYYY-MM-DD.
type UpdateMentorshipRequest struct {
	MentorID    *int64  `json:"mentor_id" form:"mentor_id"`
	MenteeID    *int64  `json:"mentee_id" form:"mentee_id"`
	Title       *string `json:"title" form:"title"`
	Description *string `json:"description" form:"description"`
	Status      *string `json:"status" form:"status"`
	StartDate   *string `json:"start_date" form:"start_date"`
	EndDate     *string `json:"end_date" form:"end_date"`
}
