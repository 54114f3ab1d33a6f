package pgsql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/schoolstate/sas_backend/internal/apperrors"
	"github.com/schoolstate/sas_backend/internal/core/domain"
	portsrepo "github.com/schoolstate/sas_backend/internal/core/ports/repositories"
)

type PgxEmploymentRepository struct {
	BaseRepository
}

// newPgxEmploymentRepository creates a new repository for employments.
func newPgxEmploymentRepository(pool *pgxpool.Pool) portsrepo.EmploymentRepositoryFacade {
	return &PgxEmploymentRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.EmploymentRepositoryFacade = (*PgxEmploymentRepository)(nil)

func (r *PgxEmploymentRepository) SaveEmployment(ctx context.Context, employment domain.Employment) error {
	query := `
		INSERT INTO employments (employment_id, company_id, citizen_id, hourly_wage, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.Pool.Exec(ctx, query,
		employment.EmploymentID, employment.CompanyID, employment.CitizenID, employment.HourlyWage,
		employment.CreatedAt, employment.CreatedBy, employment.LastUpdatedAt, employment.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.Internal("failed to insert employment", err)
	}
	return nil
}

func (r *PgxEmploymentRepository) FindEmploymentByID(ctx context.Context, employmentID string) (*domain.Employment, error) {
	query := `
		SELECT employment_id, company_id, citizen_id, hourly_wage, created_at, created_by, last_updated_at, last_updated_by
		FROM employments WHERE employment_id = $1;
	`
	var e domain.Employment
	err := r.Pool.QueryRow(ctx, query, employmentID).Scan(
		&e.EmploymentID, &e.CompanyID, &e.CitizenID, &e.HourlyWage,
		&e.CreatedAt, &e.CreatedBy, &e.LastUpdatedAt, &e.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.Newf(apperrors.CodeEmploymentNotFound, "employment %s not found", employmentID)
		}
		return nil, apperrors.Internal("failed to find employment", err)
	}
	return &e, nil
}

func (r *PgxEmploymentRepository) SaveWorktime(ctx context.Context, worktime domain.Worktime) error {
	query := `
		INSERT INTO worktimes (worktime_id, employment_id, start_at, end_at, paid_transaction_id)
		VALUES ($1, $2, $3, $4, NULL);
	`
	_, err := r.Pool.Exec(ctx, query, worktime.WorktimeID, worktime.EmploymentID, worktime.Start, worktime.End)
	if err != nil {
		return apperrors.Internal("failed to insert worktime", err)
	}
	return nil
}

func (r *PgxEmploymentRepository) FindWorktimeByID(ctx context.Context, worktimeID string) (*domain.Worktime, error) {
	query := `
		SELECT worktime_id, employment_id, start_at, end_at, paid_transaction_id
		FROM worktimes WHERE worktime_id = $1;
	`
	var w domain.Worktime
	err := r.Pool.QueryRow(ctx, query, worktimeID).Scan(
		&w.WorktimeID, &w.EmploymentID, &w.Start, &w.End, &w.PaidTransactionID,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.Newf(apperrors.CodeWorktimeNotFound, "worktime %s not found", worktimeID)
		}
		return nil, apperrors.Internal("failed to find worktime", err)
	}
	return &w, nil
}

// MarkWorktimePaidInTx links the worktime to its salary transaction. The
// IS NULL condition makes the payout single-shot even when two payments of
// the same worktime race.
func (r *PgxEmploymentRepository) MarkWorktimePaidInTx(ctx context.Context, tx pgx.Tx, worktimeID, transactionID string) error {
	query := `UPDATE worktimes SET paid_transaction_id = $2 WHERE worktime_id = $1 AND paid_transaction_id IS NULL;`
	tag, err := tx.Exec(ctx, query, worktimeID, transactionID)
	if err != nil {
		return apperrors.Internal("failed to mark worktime paid", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.New(apperrors.CodeWorktimeAlreadyPaid, "worktime was already paid out")
	}
	return nil
}
