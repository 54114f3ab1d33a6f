package repositories

import (
	"context"

	"github.com/schoolstate/sas_backend/internal/core/domain"
)

// CardRepositoryFacade persists the card state machine. Every transition is
// a single conditional UPDATE (or a guarded INSERT) so concurrent callers
// racing on the same card id serialize in storage; when the condition does
// not hold the repository diagnoses the card's actual state and returns the
// matching typed failure.
type CardRepositoryFacade interface {
	// RegisterCard inserts a fresh unassigned card. Fails with
	// CARD_ALREADY_REGISTERED when the id exists.
	RegisterCard(ctx context.Context, card domain.Card) error

	// FindCardByID retrieves a card. Fails with CARD_NOT_FOUND when the id
	// was never registered.
	FindCardByID(ctx context.Context, cardID string) (*domain.Card, error)

	// AssignCard binds a user to an unassigned, unblocked card. Fails with
	// USER_ALREADY_HAS_CARD when the user already holds another card.
	AssignCard(ctx context.Context, cardID string, user domain.UserSignature, updatedBy string) error

	// UnassignCard clears the binding of an assigned, unblocked card.
	UnassignCard(ctx context.Context, cardID string, updatedBy string) error

	// SetBlocked toggles the blocked flag; fails with CARD_ALREADY_BLOCKED /
	// CARD_ALREADY_UNBLOCKED when already in the target state.
	SetBlocked(ctx context.Context, cardID string, blocked bool, updatedBy string) error
}
