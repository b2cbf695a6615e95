package dto

import "github.com/yigit/mentorhub/internal/app/models"

// UserFilterRequest holds the optional list filters for GET /api/users
type UserFilterRequest struct {
	Role   *string `form:"role" binding:"omitempty,oneof=Admin Mentor Mentee Member Moderator"`
	Status *string `form:"status" binding:"omitempty,oneof=Active Inactive Banned"`
	Search *string `form:"search"`
}

// CreateUserRequest is accepted as JSON or multipart form. The optional
// profile image travels as the multipart file field "profile_image".
type CreateUserRequest struct {
	FirstName string  `json:"first_name" form:"first_name" binding:"required"`
	LastName  string  `json:"last_name" form:"last_name" binding:"required"`
	Email     string  `json:"email" form:"email" binding:"required,email"`
	Username  string  `json:"username" form:"username" binding:"required"`
	Password  string  `json:"password" form:"password" binding:"required"`
	Role      *string `json:"role" form:"role" binding:"omitempty,oneof=Admin Mentor Mentee Member Moderator"`
	Status    *string `json:"status" form:"status" binding:"omitempty,oneof=Active Inactive Banned"`
	JobTitle  *string `json:"job_title" form:"job_title"`
	Skills    *string `json:"skills" form:"skills"`
	Bio       *string `json:"bio" form:"bio"`
}

// UpdateUserRequest is a partial update; nil fields are left untouched
type UpdateUserRequest struct {
	FirstName *string `json:"first_name" form:"first_name"`
	LastName  *string `json:"last_name" form:"last_name"`
	Email     *string `json:"email" form:"email" binding:"omitempty,email"`
	Username  *string `json:"username" form:"username"`
	Password  *string `json:"password" form:"password"`
	Role      *string `json:"role" form:"role" binding:"omitempty,oneof=Admin Mentor Mentee Member Moderator"`
	Status    *string `json:"status" form:"status" binding:"omitempty,oneof=Active Inactive Banned"`
	JobTitle  *string `json:"job_title" form:"job_title"`
	Skills    *string `json:"skills" form:"skills"`
	Bio       *string `json:"bio" form:"bio"`
}

// ToModel converts the request into a user ready for hashing and insert
func (r *CreateUserRequest) ToModel() *models.User {
	user := &models.User{
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Email:     r.Email,
		Username:  r.Username,
		Role:      models.RoleMember,
		Status:    models.UserStatusActive,
		JobTitle:  r.JobTitle,
		Skills:    r.Skills,
		Bio:       r.Bio,
	}
	if r.Role != nil && *r.Role != "" {
		user.Role = models.RoleType(*r.Role)
	}
	if r.Status != nil && *r.Status != "" {
		user.Status = models.UserStatus(*r.Status)
	}
	return user
}
