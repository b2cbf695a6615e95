package models

import "time"

// Mentorship links a mentor and a mentee user
type Mentorship struct {
	ID          int64            `json:"id" db:"id"`
	MentorID    int64            `json:"mentor_id" db:"mentor_id"`
	MenteeID    int64            `json:"mentee_id" db:"mentee_id"`
	Title       *string          `json:"title" db:"title"`
	Description *string          `json:"description" db:"description"`
	Status      MentorshipStatus `json:"status" db:"status"`
	StartDate   time.Time        `json:"start_date" db:"start_date"`
	EndDate     *time.Time       `json:"end_date" db:"end_date"`
	CreatedAt   time.Time        `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at" db:"updated_at"`
}

// Involves reports whether userID is the mentor or the mentee
func (m *Mentorship) Involves(userID int64) bool {
	return m.MentorID == userID || m.MenteeID == userID
}

// MentorshipPatch carries a partial update; nil fields are left untouched
type MentorshipPatch struct {
	MentorID    *int64
	MenteeID    *int64
	Title       *string
	Description *string
	Status      *MentorshipStatus
	StartDate   *time.Time
	EndDate     *time.Time
}

// IsEmpty reports whether the patch would change nothing
func (p MentorshipPatch) IsEmpty() bool {
	return p.MentorID == nil && p.MenteeID == nil && p.Title == nil && p.Description == nil &&
		p.Status == nil && p.StartDate == nil && p.EndDate == nil
}

// Apply returns a copy of m with the patch fields set
func (p MentorshipPatch) Apply(m Mentorship) Mentorship {
	if p.MentorID != nil {
		m.MentorID = *p.MentorID
	}
	if p.MenteeID != nil {
		m.MenteeID = *p.MenteeID
	}
	if p.Title != nil {
		m.Title = p.Title
	}
	if p.Description != nil {
		m.Description = p.Description
	}
	if p.Status != nil {
		m.Status = *p.Status
	}
	if p.StartDate != nil {
		m.StartDate = *p.StartDate
	}
	if p.EndDate != nil {
		m.EndDate = p.EndDate
	}
	return m
}
