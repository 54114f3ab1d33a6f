package repositories

import (
	"context"

	"github.com/schoolstate/sas_backend/internal/core/domain"
)

// VoteReader defines read operations for votes and papers.
type VoteReader interface {
	// FindVoteByID retrieves a vote without any papers attached.
	FindVoteByID(ctx context.Context, voteID string) (*domain.Vote, error)

	// ListVotes retrieves all votes, newest first.
	ListVotes(ctx context.Context) ([]domain.Vote, error)

	// FindPapersByVoteID retrieves every paper cast for a vote.
	FindPapersByVoteID(ctx context.Context, voteID string) ([]domain.VotingPaper, error)

	// FindPaper retrieves one citizen's paper for a vote. Returns nil with
	// no error when the citizen has not cast.
	FindPaper(ctx context.Context, voteID, citizenID string) (*domain.VotingPaper, error)
}

// VoteWriter defines write operations for votes and papers.
type VoteWriter interface {
	// SaveVote persists a new vote with a null result.
	SaveVote(ctx context.Context, vote domain.Vote) error

	// InsertPaper stores a paper. The (vote, citizen) uniqueness constraint
	// turns a concurrent double cast into VOTE_ALREADY_CASTED.
	InsertPaper(ctx context.Context, paper domain.VotingPaper) error

	// SetResultIfNull caches the computed result only when none is stored
	// yet, so concurrent lazy computations converge on a single value.
	// Returns true when this call won the write.
	SetResultIfNull(ctx context.Context, voteID string, result []float64) (bool, error)

	// DeleteVote removes a vote and cascades to all its papers in the same
	// storage transaction.
	DeleteVote(ctx context.Context, voteID string) error
}

// VoteRepositoryFacade combines all vote-related repository interfaces.
type VoteRepositoryFacade interface {
	VoteReader
	VoteWriter
}
