package services

import (
	"context"

	"github.com/schoolstate/sas_backend/internal/core/domain"
)

// CardSvcFacade drives the card identity-binding state machine. All
// mutating transitions are role-gated and serialize per card id in storage.
type CardSvcFacade interface {
	// RegisterCard creates an unassigned card. Requires ADMIN.
	RegisterCard(ctx context.Context, caller domain.UserSignature, cardID string) (*domain.Card, error)

	// AssignCard binds a user to an unassigned, unblocked card.
	// Requires BORDER_CONTROL.
	AssignCard(ctx context.Context, caller domain.UserSignature, cardID string, user domain.UserSignature) (*domain.Card, error)

	// UnassignCard clears an assigned, unblocked card. Requires BORDER_CONTROL.
	UnassignCard(ctx context.Context, caller domain.UserSignature, cardID string) (*domain.Card, error)

	// BlockCard suppresses binding changes until unblocked. Requires ADMIN.
	BlockCard(ctx context.Context, caller domain.UserSignature, cardID string) (*domain.Card, error)

	// UnblockCard lifts a block. Requires ADMIN.
	UnblockCard(ctx context.Context, caller domain.UserSignature, cardID string) (*domain.Card, error)

	// ReadCard is the public minimal query: just the bound user, or nil.
	ReadCard(ctx context.Context, cardID string) (*domain.UserSignature, error)

	// GetCard is the privileged full-state query. Requires BORDER_CONTROL.
	GetCard(ctx context.Context, caller domain.UserSignature, cardID string) (*domain.Card, error)
}
