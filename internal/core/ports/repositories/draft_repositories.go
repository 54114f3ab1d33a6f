package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/schoolstate/sas_backend/internal/core/domain"
)

// DraftRepositoryFacade persists pending settlements between creation and
// confirmation. A draft is consumed exactly once: ConsumeDraftInTx deletes
// it inside the same storage transaction that settles it, so a concurrent
// second payment attempt observes DRAFT_NOT_FOUND.
type DraftRepositoryFacade interface {
	// SaveChangeDraft persists a pending currency exchange.
	SaveChangeDraft(ctx context.Context, draft domain.ChangeDraft) error

	// SavePurchaseDraft persists a pending purchase with its items.
	SavePurchaseDraft(ctx context.Context, draft domain.PurchaseDraft) error

	// FindChangeDraftByID retrieves an unconsumed change draft.
	FindChangeDraftByID(ctx context.Context, draftID string) (*domain.ChangeDraft, error)

	// FindPurchaseDraftByID retrieves an unconsumed purchase draft.
	FindPurchaseDraftByID(ctx context.Context, draftID string) (*domain.PurchaseDraft, error)

	// ConsumeDraftInTx deletes the draft row within the caller's storage
	// transaction, failing with DRAFT_NOT_FOUND when it was already
	// consumed (or never existed).
	ConsumeDraftInTx(ctx context.Context, tx pgx.Tx, kind domain.DraftKind, draftID string) error

	// DeleteExpiredDrafts removes drafts abandoned for longer than the given
	// age. Purely housekeeping: abandoned drafts never had a balance effect.
	DeleteExpiredDrafts(ctx context.Context, olderThanSeconds int) (int64, error)
}

// DraftRepositoryWithTx extends DraftRepositoryFacade with storage
// transaction control.
type DraftRepositoryWithTx interface {
	DraftRepositoryFacade
	TransactionManager
}
