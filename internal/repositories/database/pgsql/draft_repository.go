package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/schoolstate/sas_backend/internal/apperrors"
	"github.com/schoolstate/sas_backend/internal/core/domain"
	portsrepo "github.com/schoolstate/sas_backend/internal/core/ports/repositories"
)

// PgxDraftRepository stores pending settlements. Consumption is a plain
// DELETE inside the settling transaction; whoever deletes the row settles,
// everyone else sees DRAFT_NOT_FOUND.
type PgxDraftRepository struct {
	BaseRepository
}

// newPgxDraftRepository creates a new repository for drafts.
func newPgxDraftRepository(pool *pgxpool.Pool) portsrepo.DraftRepositoryWithTx {
	return &PgxDraftRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.DraftRepositoryWithTx = (*PgxDraftRepository)(nil)

func (r *PgxDraftRepository) SaveChangeDraft(ctx context.Context, draft domain.ChangeDraft) error {
	query := `
		INSERT INTO change_drafts (draft_id, user_type, user_id, direction, from_currency, to_currency, from_value, to_value, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.Pool.Exec(ctx, query,
		draft.ID, draft.User.Type, draft.User.ID, draft.Direction,
		draft.FromCurrency, draft.ToCurrency, draft.FromValue, draft.ToValue, draft.CreatedAt,
	)
	if err != nil {
		return apperrors.Internal("failed to insert change draft", err)
	}
	return nil
}

func (r *PgxDraftRepository) SavePurchaseDraft(ctx context.Context, draft domain.PurchaseDraft) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	query := `
		INSERT INTO purchase_drafts (draft_id, company_id, gross_price, net_price, discount, created_at)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	if _, err := tx.Exec(ctx, query, draft.ID, draft.CompanyID, draft.GrossPrice, draft.NetPrice, draft.Discount, draft.CreatedAt); err != nil {
		return apperrors.Internal("failed to insert purchase draft", err)
	}

	itemQuery := `
		INSERT INTO purchase_draft_items (draft_id, product_id, product_revision, amount, unit_price)
		VALUES ($1, $2, $3, $4, $5);
	`
	batch := &pgx.Batch{}
	for _, item := range draft.Items {
		batch.Queue(itemQuery, draft.ID, item.ProductID, item.ProductRevision, item.Amount, item.UnitPrice)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return apperrors.Internal("failed to insert purchase draft items", err)
	}

	return r.Commit(ctx, tx)
}

func (r *PgxDraftRepository) FindChangeDraftByID(ctx context.Context, draftID string) (*domain.ChangeDraft, error) {
	query := `
		SELECT draft_id, user_type, user_id, direction, from_currency, to_currency, from_value, to_value, created_at
		FROM change_drafts WHERE draft_id = $1;
	`
	var d domain.ChangeDraft
	err := r.Pool.QueryRow(ctx, query, draftID).Scan(
		&d.ID, &d.User.Type, &d.User.ID, &d.Direction,
		&d.FromCurrency, &d.ToCurrency, &d.FromValue, &d.ToValue, &d.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.Newf(apperrors.CodeDraftNotFound, "change draft %s not found", draftID)
		}
		return nil, apperrors.Internal("failed to find change draft", err)
	}
	return &d, nil
}

func (r *PgxDraftRepository) FindPurchaseDraftByID(ctx context.Context, draftID string) (*domain.PurchaseDraft, error) {
	query := `
		SELECT draft_id, company_id, gross_price, net_price, discount, created_at
		FROM purchase_drafts WHERE draft_id = $1;
	`
	var d domain.PurchaseDraft
	err := r.Pool.QueryRow(ctx, query, draftID).Scan(&d.ID, &d.CompanyID, &d.GrossPrice, &d.NetPrice, &d.Discount, &d.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.Newf(apperrors.CodeDraftNotFound, "purchase draft %s not found", draftID)
		}
		return nil, apperrors.Internal("failed to find purchase draft", err)
	}

	itemQuery := `
		SELECT product_id, product_revision, amount, unit_price
		FROM purchase_draft_items WHERE draft_id = $1;
	`
	rows, err := r.Pool.Query(ctx, itemQuery, draftID)
	if err != nil {
		return nil, apperrors.Internal("failed to query purchase draft items", err)
	}
	defer rows.Close()
	for rows.Next() {
		var item domain.PurchaseItem
		if err := rows.Scan(&item.ProductID, &item.ProductRevision, &item.Amount, &item.UnitPrice); err != nil {
			return nil, apperrors.Internal("failed to scan purchase draft item", err)
		}
		d.Items = append(d.Items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Internal("failed to iterate purchase draft items", err)
	}
	return &d, nil
}

// ConsumeDraftInTx deletes the draft row inside the caller's transaction.
// Item rows cascade with the draft.
func (r *PgxDraftRepository) ConsumeDraftInTx(ctx context.Context, tx pgx.Tx, kind domain.DraftKind, draftID string) error {
	var table string
	switch kind {
	case domain.DraftChange:
		table = "change_drafts"
	case domain.DraftPurchase:
		table = "purchase_drafts"
	default:
		return apperrors.Newf(apperrors.CodeBadUserInput, "unknown draft kind %q", kind)
	}

	tag, err := tx.Exec(ctx, fmt.Sprintf(`DELETE FROM %s WHERE draft_id = $1;`, table), draftID)
	if err != nil {
		return apperrors.Internal("failed to consume draft", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.Newf(apperrors.CodeDraftNotFound, "draft %s was already settled or never existed", draftID)
	}
	return nil
}

func (r *PgxDraftRepository) DeleteExpiredDrafts(ctx context.Context, olderThanSeconds int) (int64, error) {
	var deleted int64
	for _, table := range []string{"change_drafts", "purchase_drafts"} {
		query := fmt.Sprintf(`DELETE FROM %s WHERE created_at < now() - make_interval(secs => $1);`, table)
		tag, err := r.Pool.Exec(ctx, query, olderThanSeconds)
		if err != nil {
			return deleted, apperrors.Internal("failed to delete expired drafts", err)
		}
		deleted += tag.RowsAffected()
	}
	return deleted, nil
}
