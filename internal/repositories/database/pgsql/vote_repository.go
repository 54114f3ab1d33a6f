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

// PgxVoteRepository persists votes and voting papers. The papers table has
// a (vote_id, citizen_id) primary key, so double casting fails in storage
// no matter how requests race; the result column accepts exactly one write.
type PgxVoteRepository struct {
	BaseRepository
}

// newPgxVoteRepository creates a new repository for votes.
func newPgxVoteRepository(pool *pgxpool.Pool) portsrepo.VoteRepositoryFacade {
	return &PgxVoteRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.VoteRepositoryFacade = (*PgxVoteRepository)(nil)

const voteColumns = `vote_id, vote_type, title, description, choices, end_at, result, created_at, created_by, last_updated_at, last_updated_by`

func scanVote(row pgx.Row) (*domain.Vote, error) {
	var v domain.Vote
	err := row.Scan(
		&v.VoteID, &v.Type, &v.Title, &v.Description, &v.Choices, &v.EndAt, &v.Result,
		&v.CreatedAt, &v.CreatedBy, &v.LastUpdatedAt, &v.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *PgxVoteRepository) FindVoteByID(ctx context.Context, voteID string) (*domain.Vote, error) {
	query := `SELECT ` + voteColumns + ` FROM votes WHERE vote_id = $1;`
	vote, err := scanVote(r.Pool.QueryRow(ctx, query, voteID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.Newf(apperrors.CodeVoteNotFound, "vote %s not found", voteID)
		}
		return nil, apperrors.Internal("failed to find vote", err)
	}
	return vote, nil
}

func (r *PgxVoteRepository) ListVotes(ctx context.Context) ([]domain.Vote, error) {
	query := `SELECT ` + voteColumns + ` FROM votes ORDER BY created_at DESC;`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, apperrors.Internal("failed to list votes", err)
	}
	defer rows.Close()

	var votes []domain.Vote
	for rows.Next() {
		vote, err := scanVote(rows)
		if err != nil {
			return nil, apperrors.Internal("failed to scan vote row", err)
		}
		votes = append(votes, *vote)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Internal("failed to iterate vote rows", err)
	}
	return votes, nil
}

func (r *PgxVoteRepository) FindPapersByVoteID(ctx context.Context, voteID string) ([]domain.VotingPaper, error) {
	query := `SELECT vote_id, citizen_id, vote, cast_at FROM voting_papers WHERE vote_id = $1;`
	rows, err := r.Pool.Query(ctx, query, voteID)
	if err != nil {
		return nil, apperrors.Internal("failed to query papers", err)
	}
	defer rows.Close()

	var papers []domain.VotingPaper
	for rows.Next() {
		var p domain.VotingPaper
		if err := rows.Scan(&p.VoteID, &p.CitizenID, &p.Vote, &p.CastAt); err != nil {
			return nil, apperrors.Internal("failed to scan paper row", err)
		}
		papers = append(papers, p)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Internal("failed to iterate paper rows", err)
	}
	return papers, nil
}

func (r *PgxVoteRepository) FindPaper(ctx context.Context, voteID, citizenID string) (*domain.VotingPaper, error) {
	query := `SELECT vote_id, citizen_id, vote, cast_at FROM voting_papers WHERE vote_id = $1 AND citizen_id = $2;`
	var p domain.VotingPaper
	err := r.Pool.QueryRow(ctx, query, voteID, citizenID).Scan(&p.VoteID, &p.CitizenID, &p.Vote, &p.CastAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, apperrors.Internal("failed to find paper", err)
	}
	return &p, nil
}

func (r *PgxVoteRepository) SaveVote(ctx context.Context, vote domain.Vote) error {
	query := `
		INSERT INTO votes (vote_id, vote_type, title, description, choices, end_at, result, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, NULL, $7, $8, $9, $10);
	`
	_, err := r.Pool.Exec(ctx, query,
		vote.VoteID, vote.Type, vote.Title, vote.Description, vote.Choices, vote.EndAt,
		vote.CreatedAt, vote.CreatedBy, vote.LastUpdatedAt, vote.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.Internal("failed to insert vote", err)
	}
	return nil
}

func (r *PgxVoteRepository) InsertPaper(ctx context.Context, paper domain.VotingPaper) error {
	query := `INSERT INTO voting_papers (vote_id, citizen_id, vote, cast_at) VALUES ($1, $2, $3, $4);`
	_, err := r.Pool.Exec(ctx, query, paper.VoteID, paper.CitizenID, paper.Vote, paper.CastAt)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.New(apperrors.CodeVoteAlreadyCasted, "citizen has already cast a paper for this vote")
		}
		return apperrors.Internal("failed to insert paper", err)
	}
	return nil
}

// SetResultIfNull writes the result only into an empty slot. The condition
// makes concurrent lazy computations converge on whichever write lands
// first.
func (r *PgxVoteRepository) SetResultIfNull(ctx context.Context, voteID string, result []float64) (bool, error) {
	query := `UPDATE votes SET result = $2 WHERE vote_id = $1 AND result IS NULL;`
	tag, err := r.Pool.Exec(ctx, query, voteID, result)
	if err != nil {
		return false, apperrors.Internal("failed to store vote result", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *PgxVoteRepository) DeleteVote(ctx context.Context, voteID string) error {
	// Papers cascade with the vote row.
	tag, err := r.Pool.Exec(ctx, `DELETE FROM votes WHERE vote_id = $1;`, voteID)
	if err != nil {
		return apperrors.Internal("failed to delete vote", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.Newf(apperrors.CodeVoteNotFound, "vote %s not found", voteID)
	}
	return nil
}
