package dto

import "github.com/schoolstate/sas_backend/internal/core/domain"

// RegisterCardRequest registers a fresh unassigned card.
type RegisterCardRequest struct {
	CardID string `json:"cardID" binding:"required"`
}

// AssignCardRequest binds a user to a registered card.
type AssignCardRequest struct {
	User SignatureRef `json:"user" binding:"required"`
}

// CardResponse is the privileged full-state representation of a card.
type CardResponse struct {
	CardID        string        `json:"cardID"`
	UserSignature *SignatureRef `json:"userSignature"`
	Blocked       bool          `json:"blocked"`
}

// ToCardResponse maps a domain card to its full API representation.
func ToCardResponse(c *domain.Card) CardResponse {
	resp := CardResponse{CardID: c.CardID, Blocked: c.Blocked}
	if c.UserSignature != nil {
		resp.UserSignature = &SignatureRef{Type: c.UserSignature.Type, ID: c.UserSignature.ID}
	}
	return resp
}

// CardReadResponse is the minimal public view: only the bound user, if any.
type CardReadResponse struct {
	UserSignature *SignatureRef `json:"userSignature"`
}
