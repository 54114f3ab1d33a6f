package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/schoolstate/sas_backend/internal/apperrors"
	"github.com/schoolstate/sas_backend/internal/core/domain"
	portsrepo "github.com/schoolstate/sas_backend/internal/core/ports/repositories"
)

// cardQuerier is the slice of the connection pool the card repository uses.
type cardQuerier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PgxCardRepository persists the card state machine. Every transition is a
// single conditional UPDATE, so two callers racing on one card serialize on
// the row and exactly one of them wins; the loser gets the failure matching
// the state the winner left behind.
type PgxCardRepository struct {
	db cardQuerier
}

// newPgxCardRepository creates a new repository for cards.
func newPgxCardRepository(pool *pgxpool.Pool) portsrepo.CardRepositoryFacade {
	return &PgxCardRepository{db: pool}
}

var _ portsrepo.CardRepositoryFacade = (*PgxCardRepository)(nil)

func (r *PgxCardRepository) RegisterCard(ctx context.Context, card domain.Card) error {
	query := `
		INSERT INTO cards (card_id, user_type, user_id, blocked, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, NULL, NULL, false, $2, $3, $4, $5);
	`
	_, err := r.db.Exec(ctx, query, card.CardID, card.CreatedAt, card.CreatedBy, card.LastUpdatedAt, card.LastUpdatedBy)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.Newf(apperrors.CodeCardAlreadyRegistered, "card %s is already registered", card.CardID)
		}
		return apperrors.Internal("failed to register card", err)
	}
	return nil
}

func (r *PgxCardRepository) FindCardByID(ctx context.Context, cardID string) (*domain.Card, error) {
	query := `
		SELECT card_id, user_type, user_id, blocked, created_at, created_by, last_updated_at, last_updated_by
		FROM cards WHERE card_id = $1;
	`
	var c domain.Card
	var userType, userID *string
	err := r.db.QueryRow(ctx, query, cardID).Scan(
		&c.CardID, &userType, &userID, &c.Blocked,
		&c.CreatedAt, &c.CreatedBy, &c.LastUpdatedAt, &c.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.Newf(apperrors.CodeCardNotFound, "card %s is not registered", cardID)
		}
		return nil, apperrors.Internal("failed to find card", err)
	}
	if userType != nil && userID != nil {
		c.UserSignature = &domain.UserSignature{Type: domain.UserType(*userType), ID: *userID}
	}
	return &c, nil
}

// AssignCard binds a user, but only if the card is unassigned and not
// blocked. On a miss the current state decides the failure. The partial
// unique index on (user_type, user_id) rejects a second binding for the
// same user, concurrent or not.
func (r *PgxCardRepository) AssignCard(ctx context.Context, cardID string, user domain.UserSignature, updatedBy string) error {
	query := `
		UPDATE cards SET user_type = $2, user_id = $3, last_updated_at = $4, last_updated_by = $5
		WHERE card_id = $1 AND user_id IS NULL AND NOT blocked;
	`
	tag, err := r.db.Exec(ctx, query, cardID, user.Type, user.ID, time.Now(), updatedBy)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.Newf(apperrors.CodeUserAlreadyHasCard, "user %s already holds a card", user.ID)
		}
		return apperrors.Internal("failed to assign card", err)
	}
	if tag.RowsAffected() == 0 {
		return r.diagnose(ctx, cardID, apperrors.New(apperrors.CodeCardAlreadyAssigned, "card is already assigned"))
	}
	return nil
}

// UnassignCard clears the binding, but only if the card is assigned and not
// blocked.
func (r *PgxCardRepository) UnassignCard(ctx context.Context, cardID string, updatedBy string) error {
	query := `
		UPDATE cards SET user_type = NULL, user_id = NULL, last_updated_at = $2, last_updated_by = $3
		WHERE card_id = $1 AND user_id IS NOT NULL AND NOT blocked;
	`
	tag, err := r.db.Exec(ctx, query, cardID, time.Now(), updatedBy)
	if err != nil {
		return apperrors.Internal("failed to unassign card", err)
	}
	if tag.RowsAffected() == 0 {
		return r.diagnose(ctx, cardID, apperrors.New(apperrors.CodeCardAlreadyUnassigned, "card is not assigned"))
	}
	return nil
}

// SetBlocked toggles the blocked flag when it differs from the target.
func (r *PgxCardRepository) SetBlocked(ctx context.Context, cardID string, blocked bool, updatedBy string) error {
	query := `
		UPDATE cards SET blocked = $2, last_updated_at = $3, last_updated_by = $4
		WHERE card_id = $1 AND blocked <> $2;
	`
	tag, err := r.db.Exec(ctx, query, cardID, blocked, time.Now(), updatedBy)
	if err != nil {
		return apperrors.Internal("failed to change card block state", err)
	}
	if tag.RowsAffected() == 0 {
		if _, err := r.FindCardByID(ctx, cardID); err != nil {
			return err
		}
		if blocked {
			return apperrors.New(apperrors.CodeCardAlreadyBlocked, "card is already blocked")
		}
		return apperrors.New(apperrors.CodeCardAlreadyUnblocked, "card is not blocked")
	}
	return nil
}

// diagnose turns a conditional-update miss into the precise failure:
// unregistered and blocked cards take precedence over the state mismatch
// the caller assumed.
func (r *PgxCardRepository) diagnose(ctx context.Context, cardID string, stateErr error) error {
	card, err := r.FindCardByID(ctx, cardID)
	if err != nil {
		return err
	}
	if card.Blocked {
		return apperrors.New(apperrors.CodeCardBlocked, "card is blocked")
	}
	return stateErr
}
