package domain

import "time"

// VoteType selects how voting papers are validated and aggregated.
type VoteType string

const (
	// VoteRadio accepts exactly one-hot papers; the result is the share of
	// papers per choice.
	VoteRadio VoteType = "RADIO"
	// VoteConsensus accepts any entries in [0,1]; the result is the
	// column-wise arithmetic mean.
	VoteConsensus VoteType = "CONSENSUS"
)

// Vote is a poll open until EndAt. Result stays nil while the vote is open
// and is computed at most once after it closes, then cached forever.
type Vote struct {
	VoteID      string    `json:"voteID"` // Primary key (UUID)
	Type        VoteType  `json:"type"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Choices     []string  `json:"choices"` // Ordered, non-empty, no blank entries
	EndAt       time.Time `json:"endAt"`
	Result      []float64 `json:"result,omitempty"` // nil until computed
	AuditFields
	// OwnPaper carries the calling citizen's paper when reading votes.
	// Never populated for the POLITICS role (papers stay anonymous).
	OwnPaper *VotingPaper `json:"ownPaper,omitempty"`
}

// Closed reports whether the voting window has passed at the given instant.
func (v Vote) Closed(now time.Time) bool {
	return !now.Before(v.EndAt)
}

// VotingPaper is one citizen's submitted choice vector for a vote.
// The (voteID, citizenID) pair is unique; papers are immutable once cast.
type VotingPaper struct {
	VoteID    string    `json:"voteID"`
	CitizenID string    `json:"citizenID"`
	Vote      []float64 `json:"vote"` // One entry per choice, each in [0,1]
	CastAt    time.Time `json:"castAt"`
}

// AggregateResult computes the cached result vector for a closed vote.
// With no papers cast the result is the all-zero vector; the computation
// never divides by zero or yields NaN.
func AggregateResult(voteType VoteType, choiceCount int, papers []VotingPaper) []float64 {
	result := make([]float64, choiceCount)
	if len(papers) == 0 {
		return result
	}
	for _, paper := range papers {
		for j := 0; j < choiceCount && j < len(paper.Vote); j++ {
			result[j] += paper.Vote[j]
		}
	}
	n := float64(len(papers))
	for j := range result {
		result[j] /= n
	}
	return result
}
