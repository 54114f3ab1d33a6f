package services

import (
	"context"

	"github.com/schoolstate/sas_backend/internal/core/domain"
	"github.com/schoolstate/sas_backend/internal/dto"
)

// DraftSvcFacade implements the two-phase settlement protocol: creating a
// draft computes and persists the pending operation without touching any
// balance; paying it re-validates fresh credentials and settles atomically.
type DraftSvcFacade interface {
	// CreateChangeDraft computes a pending currency exchange for the caller.
	CreateChangeDraft(ctx context.Context, initiator domain.UserSignature, req dto.CreateChangeDraftRequest) (*domain.ChangeDraft, error)

	// CreatePurchaseDraft computes a pending purchase of the calling
	// company's products.
	CreatePurchaseDraft(ctx context.Context, company domain.UserSignature, req dto.CreatePurchaseDraftRequest) (*domain.PurchaseDraft, error)

	// PayChangeDraft settles a change draft after re-authenticating the
	// draft's user. Replaying a settled draft fails with DRAFT_NOT_FOUND.
	PayChangeDraft(ctx context.Context, draftID string, credentials dto.Credentials) (*domain.ChangeTransaction, error)

	// PayPurchaseDraft settles a purchase draft; the credentials identify
	// and authenticate the paying customer.
	PayPurchaseDraft(ctx context.Context, draftID string, credentials dto.Credentials) (*domain.PurchaseTransaction, error)

	// DeleteExpiredDrafts discards drafts abandoned longer than the given
	// number of seconds. Housekeeping only; abandoned drafts have no
	// balance effect either way.
	DeleteExpiredDrafts(ctx context.Context, olderThanSeconds int) (int64, error)
}
