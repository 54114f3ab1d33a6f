package services

import (
	"context"

	"github.com/schoolstate/sas_backend/internal/core/domain"
)

// AuthSvcFacade issues session tokens for the two ways a human can prove
// who they are: a password, or a bound physical card.
type AuthSvcFacade interface {
	// LoginWithPassword authenticates by user type, name and password.
	LoginWithPassword(ctx context.Context, userType domain.UserType, name, password string) (string, *domain.User, error)

	// LoginWithCard authenticates whoever the card is bound to. Fails for
	// unregistered, unassigned or blocked cards.
	LoginWithCard(ctx context.Context, cardID string) (string, *domain.User, error)
}
