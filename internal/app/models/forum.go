package models

import "time"

// ForumThread is a top-level forum post
type ForumThread struct {
	ID            int64     `json:"id" db:"id"`
	Title         string    `json:"title" db:"title"`
	Content       string    `json:"content" db:"content"`
	CreatedBy     int64     `json:"created_by" db:"created_by"`
	CreatedByName string    `json:"created_by_name"` // author username, joined
	GroupID       *int64    `json:"group_id" db:"group_id"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`

	Replies []*ForumReply `json:"replies,omitempty"`
}

// ForumReply is a comment under a thread
type ForumReply struct {
	ID        int64     `json:"id" db:"id"`
	ThreadID  int64     `json:"thread_id" db:"thread_id"`
	UserID    int64     `json:"user_id" db:"user_id"`
	UserName  string    `json:"user_name"` // author username, joined
	Content   string    `json:"content" db:"content"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
