package models

// RoleType is the closed set of platform roles stored in users.role
type RoleType string

const (
	RoleAdmin     RoleType = "Admin"
	RoleMentor    RoleType = "Mentor"
	RoleMentee    RoleType = "Mentee"
	RoleMember    RoleType = "Member"
	RoleModerator RoleType = "Moderator"
)

// RoleTypes lists every accepted user role, in display order
var RoleTypes = []RoleType{RoleAdmin, RoleMentor, RoleMentee, RoleMember, RoleModerator}

// Valid reports whether r is one of RoleTypes
func (r RoleType) Valid() bool {
	for _, v := range RoleTypes {
		if r == v {
			return true
		}
	}
	return false
}

// UserStatus is the account state stored in users.status
type UserStatus string

const (
	UserStatusActive   UserStatus = "Active"
	UserStatusInactive UserStatus = "Inactive"
	UserStatusBanned   UserStatus = "Banned"
)

// UserStatuses lists every accepted account state
var UserStatuses = []UserStatus{UserStatusActive, UserStatusInactive, UserStatusBanned}

// Valid reports whether s is one of UserStatuses
func (s UserStatus) Valid() bool {
	for _, v := range UserStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// MentorshipStatus is the lifecycle state of a mentorship
type MentorshipStatus string

const (
	MentorshipPending   MentorshipStatus = "Pending"
	MentorshipActive    MentorshipStatus = "Active"
	MentorshipCompleted MentorshipStatus = "Completed"
	MentorshipRejected  MentorshipStatus = "Reject"
)

// MentorshipStatuses is the status allowlist. Writes outside it are rejected.
var MentorshipStatuses = []MentorshipStatus{MentorshipActive, MentorshipPending, MentorshipCompleted, MentorshipRejected}

// Valid reports whether s is in the status allowlist
func (s MentorshipStatus) Valid() bool {
	for _, v := range MentorshipStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// MemberRole is a user's role inside a single group
type MemberRole string

const (
	MemberRoleMember    MemberRole = "Member"
	MemberRoleModerator MemberRole = "Moderator"
	MemberRoleOwner     MemberRole = "Owner"
)

// MemberRoles lists every accepted group role
var MemberRoles = []MemberRole{MemberRoleMember, MemberRoleModerator, MemberRoleOwner}

// Valid reports whether r is one of MemberRoles
func (r MemberRole) Valid() bool {
	for _, v := range MemberRoles {
		if r == v {
			return true
		}
	}
	return false
}
