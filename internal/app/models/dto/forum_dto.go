package dto

import "github.com/yigit/mentorhub/internal/app/models"

// CreateThreadRequest represents a new forum thread
type CreateThreadRequest struct {
	Title   string `json:"title" form:"title" binding:"required"`
	Content string `json:"content" form:"content" binding:"required"`
	GroupID *int64 `json:"group_id" form:"group_id" binding:"omitempty,min=1"`
}

// CreateReplyRequest represents a reply under a thread
type CreateReplyRequest struct {
	ThreadID int64  `json:"thread_id" form:"thread_id" binding:"required,min=1"`
	Content  string `json:"content" form:"content" binding:"required"`
}

// ThreadDetailResponse is a thread with its replies; replies is always present
type ThreadDetailResponse struct {
	*models.ForumThread
	Replies []*models.ForumReply `json:"replies"`
}

// NewThreadDetailResponse wraps t, turning nil replies into an empty list
func NewThreadDetailResponse(t *models.ForumThread) ThreadDetailResponse {
	replies := t.Replies
	if replies == nil {
		replies = []*models.ForumReply{}
	}
	return ThreadDetailResponse{ForumThread: t, Replies: replies}
}
