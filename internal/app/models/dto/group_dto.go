package dto

// CreateGroupRequest represents a new group. The creator comes from the token.
type CreateGroupRequest struct {
	GroupName   string  `json:"group_name" form:"group_name" binding:"required"`
	Description *string `json:"description" form:"description"`
}

// UpdateGroupRequest is a partial group update
type UpdateGroupRequest struct {
	GroupName   *string `json:"group_name" form:"group_name"`
	Description *string `json:"description" form:"description"`
}

// MemberFilterRequest narrows GET /api/members to one group
type MemberFilterRequest struct {
	GroupID *int64 `form:"group_id" binding:"omitempty,min=1"`
}

// AddMemberRequest adds a user to a group. The user id travels as "id".
type AddMemberRequest struct {
	GroupID int64   `json:"group_id" form:"group_id" binding:"required,min=1"`
	UserID  int64   `json:"id" form:"id" binding:"required,min=1"`
	Role    *string `json:"role" form:"role" binding:"omitempty,oneof=Member Moderator Owner"`
}

// UpdateMemberRequest changes a member's role; an empty role resets it to Member
type UpdateMemberRequest struct {
	Role *string `json:"role" form:"role" binding:"omitempty,oneof=Member Moderator Owner"`
}
