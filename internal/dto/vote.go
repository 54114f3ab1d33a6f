package dto

import (
	"time"

	"github.com/schoolstate/sas_backend/internal/core/domain"
)

// CreateVoteRequest opens a new vote.
type CreateVoteRequest struct {
	Type        domain.VoteType `json:"type" binding:"required,oneof=RADIO CONSENSUS"`
	Title       string          `json:"title" binding:"required"`
	Description string          `json:"description"`
	Choices     []string        `json:"choices" binding:"required,min=1"`
	EndAt       time.Time       `json:"endAt" binding:"required"`
}

// CastVoteRequest submits one voting paper, one entry per choice.
type CastVoteRequest struct {
	Vote []float64 `json:"vote" binding:"required,min=1"`
}

// VotingPaperResponse is the API representation of a cast paper.
type VotingPaperResponse struct {
	VoteID string    `json:"voteID"`
	Vote   []float64 `json:"vote"`
	CastAt time.Time `json:"castAt"`
}

// VoteResponse is the API representation of a vote, optionally carrying the
// calling citizen's own paper and the cached result once the vote closed.
type VoteResponse struct {
	VoteID      string               `json:"voteID"`
	Type        domain.VoteType      `json:"type"`
	Title       string               `json:"title"`
	Description string               `json:"description"`
	Choices     []string             `json:"choices"`
	EndAt       time.Time            `json:"endAt"`
	Result      []float64            `json:"result,omitempty"`
	OwnPaper    *VotingPaperResponse `json:"ownPaper,omitempty"`
}

// ToVoteResponse maps a domain vote.
func ToVoteResponse(v *domain.Vote) VoteResponse {
	resp := VoteResponse{
		VoteID:      v.VoteID,
		Type:        v.Type,
		Title:       v.Title,
		Description: v.Description,
		Choices:     v.Choices,
		EndAt:       v.EndAt,
		Result:      v.Result,
	}
	if v.OwnPaper != nil {
		resp.OwnPaper = &VotingPaperResponse{
			VoteID: v.OwnPaper.VoteID,
			Vote:   v.OwnPaper.Vote,
			CastAt: v.OwnPaper.CastAt,
		}
	}
	return resp
}

// ToVoteResponses maps a slice of domain votes.
func ToVoteResponses(votes []domain.Vote) []VoteResponse {
	resp := make([]VoteResponse, len(votes))
	for i := range votes {
		resp[i] = ToVoteResponse(&votes[i])
	}
	return resp
}
