package models

import "time"

// Settlement represents a direct payer→payee payment that reduces outstanding
// balance. Settlements are atomic, immutable facts; there is no notion of a
// partial or installment settlement.
type Settlement struct {
	// ID is the unique identifier for the settlement (UUID format).
	ID string `json:"id"`

	// PayerID is the user who paid (debtor settling up).
	PayerID string `json:"payer_id"`

	// PayeeID is the user who received payment (creditor being paid).
	PayeeID string `json:"payee_id"`

	// Amount is the payment amount, two-decimal fixed point.
	Amount float64 `json:"amount"`

	// Currency is the ISO 4217 code the amount is denominated in.
	Currency string `json:"currency"`

	// GroupID scopes the settlement to a group; empty for direct
	// friend-to-friend payments.
	GroupID string `json:"group_id,omitempty"`

	// Date is when the payment was made.
	Date time.Time `json:"date"`

	// Note is an optional description.
	Note string `json:"note,omitempty"`

	// CreatedAt is the Unix timestamp when the settlement was recorded.
	CreatedAt int64 `json:"created_at"`
}
