package models

// UserPatch is a partial user update; nil fields are left untouched
type UserPatch struct {
	FirstName    *string
	LastName     *string
	Email        *string
	Username     *string
	PasswordHash *string
	Role         *RoleType
	Status       *UserStatus
	ProfileImage *string
	JobTitle     *string
	Skills       *string
	Bio          *string
}

// Columns returns the changed columns keyed by name, in a form ready for SET
func (p UserPatch) Columns() map[string]interface{} {
	cols := make(map[string]interface{})
	if p.FirstName != nil {
		cols["first_name"] = *p.FirstName
	}
	if p.LastName != nil {
		cols["last_name"] = *p.LastName
	}
	if p.Email != nil {
		cols["email"] = *p.Email
	}
	if p.Username != nil {
		cols["username"] = *p.Username
	}
	if p.PasswordHash != nil {
		cols["password_hash"] = *p.PasswordHash
	}
	if p.Role != nil {
		cols["role"] = string(*p.Role)
	}
	if p.Status != nil {
		cols["status"] = string(*p.Status)
	}
	if p.ProfileImage != nil {
		cols["profile_image"] = *p.ProfileImage
	}
	if p.JobTitle != nil {
		cols["job_title"] = *p.JobTitle
	}
	if p.Skills != nil {
		cols["skills"] = *p.Skills
	}
	if p.Bio != nil {
		cols["bio"] = *p.Bio
	}
	return cols
}
