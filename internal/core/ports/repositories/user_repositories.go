package repositories

import (
	"context"

	"github.com/schoolstate/sas_backend/internal/core/domain"
)

// UserReader defines read operations for user data.
type UserReader interface {
	// FindUserBySignature retrieves a user by (type, id), excluding
	// soft-deleted users.
	FindUserBySignature(ctx context.Context, sig domain.UserSignature) (*domain.User, error)

	// FindUserByName retrieves a user by type and unique name (login).
	FindUserByName(ctx context.Context, userType domain.UserType, name string) (*domain.User, error)

	// ListUsers retrieves all non-deleted users of the given type.
	ListUsers(ctx context.Context, userType domain.UserType) ([]domain.User, error)
}

// UserWriter defines write operations for user data.
type UserWriter interface {
	// SaveUser persists a new user together with its bank account in one
	// storage transaction. Every user owns exactly one account.
	SaveUser(ctx context.Context, user domain.User, account domain.BankAccount) error

	// DeleteUser soft-deletes a user. The bank account row stays (the audit
	// trail references it) but the owner can no longer authenticate.
	DeleteUser(ctx context.Context, sig domain.UserSignature, deletedBy string) error
}

// UserRepositoryFacade combines all user-related repository interfaces.
type UserRepositoryFacade interface {
	UserReader
	UserWriter
}
