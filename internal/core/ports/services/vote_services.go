package services

import (
	"context"

	"github.com/schoolstate/sas_backend/internal/core/domain"
	"github.com/schoolstate/sas_backend/internal/dto"
)

// VoteSvcFacade collects voting papers and computes aggregate results once
// a vote closes.
type VoteSvcFacade interface {
	// CreateVote opens a new vote. Requires POLITICS.
	CreateVote(ctx context.Context, caller domain.UserSignature, req dto.CreateVoteRequest) (*domain.Vote, error)

	// CastVote stores one citizen's paper for an open vote and returns the
	// vote with that paper attached. Requires CITIZEN type.
	CastVote(ctx context.Context, caller domain.UserSignature, voteID string, paper []float64) (*domain.Vote, error)

	// GetAllVotes lists votes for a citizen (own papers attached) or the
	// POLITICS role (no papers, they stay anonymous). Reading closed votes
	// lazily computes and caches missing results, at most once per vote.
	GetAllVotes(ctx context.Context, caller domain.UserSignature) ([]domain.Vote, error)

	// DeleteVote removes a vote and all its papers. Requires POLITICS.
	DeleteVote(ctx context.Context, caller domain.UserSignature, voteID string) error
}
