package domain

import "time"

// UserType discriminates the three kinds of account-holding users.
type UserType string

const (
	UserCitizen UserType = "CITIZEN"
	UserCompany UserType = "COMPANY"
	UserGuest   UserType = "GUEST"
)

// Role is a functional permission granted on top of the user type.
type Role string

const (
	RoleAdmin         Role = "ADMIN"
	RoleBorderControl Role = "BORDER_CONTROL"
	RolePolitics      Role = "POLITICS"
	RoleBank          Role = "BANK"
	RoleTeacher       Role = "TEACHER"
)

// UserSignature identifies a user by type and id. It is the caller identity
// every core operation receives from the API layer.
type UserSignature struct {
	Type UserType `json:"type"`
	ID   string   `json:"id"`
}

// Equal reports whether two signatures identify the same user.
func (s UserSignature) Equal(other UserSignature) bool {
	return s.Type == other.Type && s.ID == other.ID
}

// User represents a citizen, company or guest in the domain.
// Every user owns exactly one bank account, created alongside the user.
type User struct {
	UserID       string   `json:"userID"` // Primary key (UUID)
	Type         UserType `json:"type"`
	Name         string   `json:"name"`
	PasswordHash string   `json:"-"`     // bcrypt hash; empty for guests without credentials
	Roles        []Role   `json:"roles"` // Functional roles, may be empty
	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty"` // Used for soft delete
}

// Signature returns the user's (type, id) identity.
func (u User) Signature() UserSignature {
	return UserSignature{Type: u.Type, ID: u.UserID}
}

// HasRole reports whether the user carries the given functional role.
// ADMIN implies every other functional role.
func (u User) HasRole(role Role) bool {
	for _, r := range u.Roles {
		if r == role || r == RoleAdmin {
			return true
		}
	}
	return false
}
