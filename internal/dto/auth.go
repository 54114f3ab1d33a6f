package dto

import "github.com/schoolstate/sas_backend/internal/core/domain"

// PasswordLoginRequest authenticates a user by type, name and password.
type PasswordLoginRequest struct {
	Type     domain.UserType `json:"type" binding:"required,oneof=CITIZEN COMPANY GUEST"`
	Name     string          `json:"name" binding:"required"`
	Password string          `json:"password" binding:"required"`
}

// CardLoginRequest authenticates whoever a physical card is bound to.
type CardLoginRequest struct {
	CardID string `json:"cardID" binding:"required"`
}

// LoginResponse carries the session token for subsequent requests.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// Credentials re-authenticates the paying party when a draft is confirmed.
// Exactly one of password or card id must be provided; for a purchase the
// card (or signature+password) also identifies the paying customer.
type Credentials struct {
	Signature *SignatureRef `json:"signature,omitempty"`
	Password  *string       `json:"password,omitempty"`
	CardID    *string       `json:"cardID,omitempty"`
}

// SignatureRef names a user by type and id in request payloads.
type SignatureRef struct {
	Type domain.UserType `json:"type" binding:"required,oneof=CITIZEN COMPANY GUEST"`
	ID   string          `json:"id" binding:"required"`
}

// ToSignature converts the reference into a domain signature.
func (r SignatureRef) ToSignature() domain.UserSignature {
	return domain.UserSignature{Type: r.Type, ID: r.ID}
}
