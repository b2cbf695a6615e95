package models

import (
	"time"
)

// User defines the user model based on the 'users' table
type User struct {
	ID           int64      `json:"id" db:"id" example:"1"`
	FirstName    string     `json:"first_name" db:"first_name" example:"Jane"`
	LastName     string     `json:"last_name" db:"last_name" example:"Dela Cruz"`
	Email        string     `json:"email" db:"email" example:"jane@example.com"`
	Username     string     `json:"username" db:"username" example:"jane"`
	PasswordHash string     `json:"-" db:"password_hash"` // never serialized
	Role         RoleType   `json:"role" db:"role" example:"Mentor"`
	Status       UserStatus `json:"status" db:"status" example:"Active"`
	ProfileImage *string    `json:"profile_image" db:"profile_image" example:"http://localhost:8080/uploads/profile_images/3f1c.jpg"`
	JobTitle     *string    `json:"job_title" db:"job_title"`
	Skills       *string    `json:"skills" db:"skills"`
	Bio          *string    `json:"bio" db:"bio"`
	LastActiveAt *time.Time `json:"last_active_at" db:"last_active_at"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at" db:"updated_at"`
}

// FullName joins first and last name
func (u *User) FullName() string {
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}
