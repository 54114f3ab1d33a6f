package domain

// Card binds a physical card id to a user signature so humans can
// authenticate at terminals. Binding and blocking are independent axes,
// but every binding transition is rejected while the card is blocked.
type Card struct {
	CardID        string         `json:"cardID"`        // Physical identifier, primary key
	UserSignature *UserSignature `json:"userSignature"` // nil while unassigned
	Blocked       bool           `json:"blocked"`
	AuditFields
}

// Assigned reports whether the card is currently bound to a user.
func (c Card) Assigned() bool {
	return c.UserSignature != nil
}
