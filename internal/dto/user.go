package dto

import (
	"time"

	"github.com/schoolstate/sas_backend/internal/core/domain"
)

// CreateUserRequest is the payload for provisioning a citizen, company or
// guest. The bank account is created alongside the user.
type CreateUserRequest struct {
	Type     domain.UserType `json:"type" binding:"required,oneof=CITIZEN COMPANY GUEST"`
	Name     string          `json:"name" binding:"required,min=1,max=100"`
	Password string          `json:"password" binding:"omitempty,min=6,max=72"`
	Roles    []domain.Role   `json:"roles" binding:"omitempty,dive,oneof=ADMIN BORDER_CONTROL POLITICS BANK TEACHER"`
}

// UserResponse is the API representation of a user.
type UserResponse struct {
	UserID    string          `json:"userID"`
	Type      domain.UserType `json:"type"`
	Name      string          `json:"name"`
	Roles     []domain.Role   `json:"roles"`
	CreatedAt time.Time       `json:"createdAt"`
}

// ToUserResponse maps a domain user to its API representation.
func ToUserResponse(u *domain.User) UserResponse {
	roles := u.Roles
	if roles == nil {
		roles = []domain.Role{}
	}
	return UserResponse{
		UserID:    u.UserID,
		Type:      u.Type,
		Name:      u.Name,
		Roles:     roles,
		CreatedAt: u.CreatedAt,
	}
}

// ToUserResponses maps a slice of domain users.
func ToUserResponses(users []domain.User) []UserResponse {
	resp := make([]UserResponse, len(users))
	for i := range users {
		resp[i] = ToUserResponse(&users[i])
	}
	return resp
}
