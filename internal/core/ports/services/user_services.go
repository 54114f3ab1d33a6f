package services

import (
	"context"

	"github.com/schoolstate/sas_backend/internal/core/domain"
	"github.com/schoolstate/sas_backend/internal/dto"
)

// UserReaderSvc defines read operations for users.
type UserReaderSvc interface {
	// GetUser retrieves a user by signature.
	GetUser(ctx context.Context, sig domain.UserSignature) (*domain.User, error)

	// ListUsers retrieves all users of the given type. Requires ADMIN.
	ListUsers(ctx context.Context, caller domain.UserSignature, userType domain.UserType) ([]domain.User, error)
}

// UserWriterSvc defines write operations for users.
type UserWriterSvc interface {
	// CreateUser provisions a user together with its bank account.
	// Requires ADMIN.
	CreateUser(ctx context.Context, caller domain.UserSignature, req dto.CreateUserRequest) (*domain.User, error)

	// DeleteUser soft-deletes a user. Requires ADMIN.
	DeleteUser(ctx context.Context, caller domain.UserSignature, sig domain.UserSignature) error
}

// IdentitySvc resolves and checks caller identities. It is consulted by
// every other service before a gated operation runs.
type IdentitySvc interface {
	// RequireRole loads the caller and fails with PERMISSION_DENIED unless
	// they hold at least one of the given functional roles.
	RequireRole(ctx context.Context, caller domain.UserSignature, roles ...domain.Role) (*domain.User, error)

	// RequireType loads the caller and fails with PERMISSION_DENIED unless
	// their user type matches one of the given types.
	RequireType(ctx context.Context, caller domain.UserSignature, types ...domain.UserType) (*domain.User, error)

	// VerifyCredentials re-validates a password against the user's stored
	// secret, failing with INVALID_PASSWORD on mismatch.
	VerifyCredentials(ctx context.Context, sig domain.UserSignature, password string) (*domain.User, error)
}

// UserSvcFacade combines all user-related service interfaces.
type UserSvcFacade interface {
	UserReaderSvc
	UserWriterSvc
	IdentitySvc
}
