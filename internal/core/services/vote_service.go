package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/schoolstate/sas_backend/internal/apperrors"
	"github.com/schoolstate/sas_backend/internal/core/domain"
	portsrepo "github.com/schoolstate/sas_backend/internal/core/ports/repositories"
	portssvc "github.com/schoolstate/sas_backend/internal/core/ports/services"
	"github.com/schoolstate/sas_backend/internal/dto"
	"github.com/schoolstate/sas_backend/internal/middleware"
)

// voteService collects voting papers while a vote is open and computes the
// aggregate exactly once after it closes. Individual papers are only ever
// shown to the citizen who cast them.
type voteService struct {
	voteRepo portsrepo.VoteRepositoryFacade
	identity portssvc.IdentitySvc
	now      func() time.Time
}

var _ portssvc.VoteSvcFacade = (*voteService)(nil)

// NewVoteService creates a new vote service.
func NewVoteService(voteRepo portsrepo.VoteRepositoryFacade, identity portssvc.IdentitySvc) portssvc.VoteSvcFacade {
	return &voteService{voteRepo: voteRepo, identity: identity, now: time.Now}
}

func (s *voteService) CreateVote(ctx context.Context, caller domain.UserSignature, req dto.CreateVoteRequest) (*domain.Vote, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	if _, err := s.identity.RequireRole(ctx, caller, domain.RolePolitics); err != nil {
		return nil, err
	}
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, apperrors.New(apperrors.CodeBadUserInput, "title must not be blank")
	}
	if len(req.Choices) == 0 {
		return nil, apperrors.New(apperrors.CodeBadUserInput, "a vote needs at least one choice")
	}
	for _, choice := range req.Choices {
		if strings.TrimSpace(choice) == "" {
			return nil, apperrors.New(apperrors.CodeBadUserInput, "choices must not be blank")
		}
	}
	if !req.EndAt.After(s.now()) {
		return nil, apperrors.New(apperrors.CodeBadUserInput, "vote must end in the future")
	}

	now := s.now()
	vote := domain.Vote{
		VoteID:      uuid.NewString(),
		Type:        req.Type,
		Title:       title,
		Description: req.Description,
		Choices:     req.Choices,
		EndAt:       req.EndAt,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     caller.ID,
			LastUpdatedAt: now,
			LastUpdatedBy: caller.ID,
		},
	}
	if err := s.voteRepo.SaveVote(ctx, vote); err != nil {
		return nil, err
	}
	logger.Info("vote created", "voteID", vote.VoteID, "type", vote.Type, "endAt", vote.EndAt)
	return &vote, nil
}

// validatePaper checks one paper against the vote's choice list: right
// length, entries in [0,1], and for RADIO votes exactly one full point on a
// single choice.
func validatePaper(vote *domain.Vote, paper []float64) error {
	if len(paper) != len(vote.Choices) {
		return apperrors.Newf(apperrors.CodeBadUserInput, "paper must have %d entries", len(vote.Choices))
	}
	ones := 0
	for _, v := range paper {
		if v < 0 || v > 1 {
			return apperrors.New(apperrors.CodeBadUserInput, "paper entries must be between 0 and 1")
		}
		switch v {
		case 1:
			ones++
		case 0:
		default:
			if vote.Type == domain.VoteRadio {
				return apperrors.New(apperrors.CodeBadUserInput, "radio papers only allow 0 or 1 entries")
			}
		}
	}
	if vote.Type == domain.VoteRadio && ones != 1 {
		return apperrors.New(apperrors.CodeBadUserInput, "radio papers must pick exactly one choice")
	}
	return nil
}

func (s *voteService) CastVote(ctx context.Context, caller domain.UserSignature, voteID string, paper []float64) (*domain.Vote, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	if _, err := s.identity.RequireType(ctx, caller, domain.UserCitizen); err != nil {
		return nil, err
	}
	vote, err := s.voteRepo.FindVoteByID(ctx, voteID)
	if err != nil {
		return nil, err
	}
	if vote.Closed(s.now()) {
		return nil, apperrors.New(apperrors.CodeVoteEnded, "vote has already ended")
	}
	if err := validatePaper(vote, paper); err != nil {
		return nil, err
	}

	votingPaper := domain.VotingPaper{
		VoteID:    vote.VoteID,
		CitizenID: caller.ID,
		Vote:      paper,
		CastAt:    s.now(),
	}
	if err := s.voteRepo.InsertPaper(ctx, votingPaper); err != nil {
		return nil, err
	}
	logger.Info("paper cast", "voteID", vote.VoteID)

	vote.OwnPaper = &votingPaper
	return vote, nil
}

// GetAllVotes lists votes for the caller. Citizens see their own paper on
// each vote they cast for; POLITICS users see no papers at all. Closed
// votes with no cached result get their aggregate computed here, at most
// once per vote across all concurrent readers.
func (s *voteService) GetAllVotes(ctx context.Context, caller domain.UserSignature) ([]domain.Vote, error) {
	user, err := s.identity.RequireType(ctx, caller, domain.UserCitizen, domain.UserCompany, domain.UserGuest)
	if err != nil {
		return nil, err
	}
	isCitizen := user.Type == domain.UserCitizen
	if !isCitizen && !user.HasRole(domain.RolePolitics) {
		return nil, apperrors.New(apperrors.CodePermissionDenied, "votes are visible to citizens and politics only")
	}

	votes, err := s.voteRepo.ListVotes(ctx)
	if err != nil {
		return nil, err
	}
	now := s.now()
	for i := range votes {
		vote := &votes[i]
		if vote.Closed(now) && vote.Result == nil {
			if err := s.ensureResult(ctx, vote); err != nil {
				return nil, err
			}
		}
		if isCitizen {
			paper, err := s.voteRepo.FindPaper(ctx, vote.VoteID, caller.ID)
			if err != nil {
				return nil, err
			}
			vote.OwnPaper = paper
		}
	}
	return votes, nil
}

// ensureResult computes and caches the aggregate for a closed vote. When a
// concurrent reader wins the cache write, their value is adopted instead.
func (s *voteService) ensureResult(ctx context.Context, vote *domain.Vote) error {
	papers, err := s.voteRepo.FindPapersByVoteID(ctx, vote.VoteID)
	if err != nil {
		return err
	}
	result := domain.AggregateResult(vote.Type, len(vote.Choices), papers)
	won, err := s.voteRepo.SetResultIfNull(ctx, vote.VoteID, result)
	if err != nil {
		return err
	}
	if won {
		vote.Result = result
		return nil
	}
	stored, err := s.voteRepo.FindVoteByID(ctx, vote.VoteID)
	if err != nil {
		return err
	}
	vote.Result = stored.Result
	return nil
}

func (s *voteService) DeleteVote(ctx context.Context, caller domain.UserSignature, voteID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)
	if _, err := s.identity.RequireRole(ctx, caller, domain.RolePolitics); err != nil {
		return err
	}
	if _, err := s.voteRepo.FindVoteByID(ctx, voteID); err != nil {
		return err
	}
	if err := s.voteRepo.DeleteVote(ctx, voteID); err != nil {
		return err
	}
	logger.Info("vote deleted", "voteID", voteID)
	return nil
}
