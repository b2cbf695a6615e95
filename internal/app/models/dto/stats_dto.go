package dto

import "time"

// StatsOverview summarizes platform totals
type StatsOverview struct {
	TotalUsers          int            `json:"total_users"`
	UsersByRole         map[string]int `json:"users_by_role"`
	TotalMentorships    int            `json:"total_mentorships"`
	MentorshipsByStatus map[string]int `json:"mentorships_by_status"`
	TotalGroups         int            `json:"total_groups"`
	TotalThreads        int            `json:"total_threads"`
	TotalReplies        int            `json:"total_replies"`
}

// TopMentor is one row of the mentor ranking
type TopMentor struct {
	UserID          int64   `json:"user_id"`
	Name            string  `json:"name"`
	Username        string  `json:"username"`
	JobTitle        *string `json:"job_title"`
	ProfileImage    *string `json:"profile_image"`
	MentorshipCount int     `json:"mentorship_count"`
}

// ActivityItem is one entry of the recent activity feed
type ActivityItem struct {
	MentorshipID int64     `json:"mentorship_id"`
	MentorID     int64     `json:"mentor_id"`
	MenteeID     int64     `json:"mentee_id"`
	Status       string    `json:"status"`
	Action       string    `json:"action" example:"Mentorship ongoing"`
	TimeAgo      string    `json:"time_ago" example:"3h ago"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// StatsQuery carries the optional stats parameters
type StatsQuery struct {
	UserID *int64 `form:"user_id" binding:"omitempty,min=1"`
	Limit  int    `form:"limit" binding:"omitempty,min=1"`
}
