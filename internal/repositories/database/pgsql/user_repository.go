package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/schoolstate/sas_backend/internal/apperrors"
	"github.com/schoolstate/sas_backend/internal/core/domain"
	portsrepo "github.com/schoolstate/sas_backend/internal/core/ports/repositories"
)

type PgxUserRepository struct {
	BaseRepository
}

// newPgxUserRepository creates a new repository for user data.
func newPgxUserRepository(pool *pgxpool.Pool) portsrepo.UserRepositoryFacade {
	return &PgxUserRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.UserRepositoryFacade = (*PgxUserRepository)(nil)

const userColumns = `user_id, user_type, name, password_hash, roles, created_at, created_by, last_updated_at, last_updated_by, deleted_at`

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	var roles []string
	err := row.Scan(
		&u.UserID,
		&u.Type,
		&u.Name,
		&u.PasswordHash,
		&roles,
		&u.CreatedAt,
		&u.CreatedBy,
		&u.LastUpdatedAt,
		&u.LastUpdatedBy,
		&u.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	for _, r := range roles {
		u.Roles = append(u.Roles, domain.Role(r))
	}
	return &u, nil
}

func rolesToStrings(roles []domain.Role) []string {
	out := make([]string, len(roles))
	for i, r := range roles {
		out[i] = string(r)
	}
	return out
}

func (r *PgxUserRepository) FindUserBySignature(ctx context.Context, sig domain.UserSignature) (*domain.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE user_id = $1 AND user_type = $2 AND deleted_at IS NULL;`, userColumns)
	user, err := scanUser(r.Pool.QueryRow(ctx, query, sig.ID, sig.Type))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.Newf(apperrors.CodeUserNotFound, "user %s/%s not found", sig.Type, sig.ID)
		}
		return nil, apperrors.Internal("failed to find user", err)
	}
	return user, nil
}

func (r *PgxUserRepository) FindUserByName(ctx context.Context, userType domain.UserType, name string) (*domain.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE user_type = $1 AND name = $2 AND deleted_at IS NULL;`, userColumns)
	user, err := scanUser(r.Pool.QueryRow(ctx, query, userType, name))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.Newf(apperrors.CodeUserNotFound, "no %s named %q", userType, name)
		}
		return nil, apperrors.Internal("failed to find user by name", err)
	}
	return user, nil
}

func (r *PgxUserRepository) ListUsers(ctx context.Context, userType domain.UserType) ([]domain.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE user_type = $1 AND deleted_at IS NULL ORDER BY name;`, userColumns)
	rows, err := r.Pool.Query(ctx, query, userType)
	if err != nil {
		return nil, apperrors.Internal("failed to list users", err)
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, apperrors.Internal("failed to scan user row", err)
		}
		users = append(users, *user)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Internal("failed to iterate user rows", err)
	}
	return users, nil
}

// SaveUser inserts the user and its bank account in one transaction, so a
// user can never exist without an account.
func (r *PgxUserRepository) SaveUser(ctx context.Context, user domain.User, account domain.BankAccount) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	userQuery := `
		INSERT INTO users (user_id, user_type, name, password_hash, roles, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err = tx.Exec(ctx, userQuery,
		user.UserID,
		user.Type,
		user.Name,
		user.PasswordHash,
		rolesToStrings(user.Roles),
		user.CreatedAt,
		user.CreatedBy,
		user.LastUpdatedAt,
		user.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.Newf(apperrors.CodeBadUserInput, "a %s named %q already exists", user.Type, user.Name)
		}
		return apperrors.Internal("failed to insert user", err)
	}

	accountQuery := `
		INSERT INTO bank_accounts (account_id, owner_type, owner_id, balance, redemption_balance, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err = tx.Exec(ctx, accountQuery,
		account.AccountID,
		account.Owner.Type,
		account.Owner.ID,
		account.Balance,
		account.RedemptionBalance,
		account.CreatedAt,
		account.CreatedBy,
		account.LastUpdatedAt,
		account.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.Internal("failed to insert bank account", err)
	}

	return r.Commit(ctx, tx)
}

func (r *PgxUserRepository) DeleteUser(ctx context.Context, sig domain.UserSignature, deletedBy string) error {
	query := `
		UPDATE users SET deleted_at = $3, last_updated_at = $3, last_updated_by = $4
		WHERE user_id = $1 AND user_type = $2 AND deleted_at IS NULL;
	`
	tag, err := r.Pool.Exec(ctx, query, sig.ID, sig.Type, time.Now(), deletedBy)
	if err != nil {
		return apperrors.Internal("failed to delete user", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.Newf(apperrors.CodeUserNotFound, "user %s/%s not found", sig.Type, sig.ID)
	}
	return nil
}
