package dto

// MessageResponse is the plain acknowledgement returned by update and delete endpoints
type MessageResponse struct {
	Message string `json:"message" example:"User updated successfully"`
}

// UserCreatedResponse is returned by POST /api/users
type UserCreatedResponse struct {
	Message string `json:"message" example:"User created successfully"`
	UserID  int64  `json:"user_id" example:"7"`
}

// MentorshipCreatedResponse is returned by POST /api/mentorships and /apply
type MentorshipCreatedResponse struct {
	Message      string `json:"message" example:"Mentorship created successfully"`
	MentorshipID int64  `json:"mentorship_id" example:"3"`
}

// GroupCreatedResponse is returned by POST /api/groups
type GroupCreatedResponse struct {
	Message string `json:"message" example:"Group created successfully"`
	GroupID int64  `json:"group_id" example:"2"`
}

// MemberCreatedResponse is returned by POST /api/members
type MemberCreatedResponse struct {
	Message       string `json:"message" example:"Member added successfully"`
	GroupMemberID int64  `json:"group_member_id" example:"11"`
}

// ThreadCreatedResponse is returned by POST /api/forum/thread
type ThreadCreatedResponse struct {
	Message  string `json:"message" example:"Thread created successfully"`
	ThreadID int64  `json:"thread_id" example:"5"`
}

// ReplyCreatedResponse is returned by POST /api/forum/reply
type ReplyCreatedResponse struct {
	Message string `json:"message" example:"Reply added successfully"`
	ReplyID int64  `json:"reply_id" example:"9"`
}

// HealthResponse is returned by GET /api/health
type HealthResponse struct {
	Status string `json:"status" example:"ok"`
}
