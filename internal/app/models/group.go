package models

import "time"

// Group is a named collection of users
type Group struct {
	ID          int64     `json:"id" db:"id"`
	GroupName   string    `json:"group_name" db:"group_name"`
	Description *string   `json:"description" db:"description"`
	CreatedBy   *int64    `json:"created_by" db:"created_by"` // NULL once the creator is deleted
	CreatorName *string   `json:"created_by_name"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`

	// Aggregated from group_members, not stored
	TotalMembers   int `json:"total_members"`
	MemberCount    int `json:"member_count"`
	ModeratorCount int `json:"moderator_count"`
	OwnerCount     int `json:"owner_count"`
}

// GroupMember is the join row between a group and a user
type GroupMember struct {
	ID       int64      `json:"id" db:"id"`
	GroupID  int64      `json:"group_id" db:"group_id"`
	UserID   int64      `json:"user_id" db:"user_id"`
	Role     MemberRole `json:"role" db:"role"`
	JoinedAt time.Time  `json:"joined_at" db:"joined_at"`

	// Joined from users for display
	Username string `json:"username,omitempty"`
}
