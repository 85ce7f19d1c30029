package models

import (
	"time"

	"github.com/splitledger/splitledger/internal/ledger"
)

// Expense represents a shared cost paid by one user on behalf of several.
// It is immutable once created except by explicit update; deleting an expense
// removes all of its shares with it.
type Expense struct {
	// ID is the unique identifier for the expense (UUID format).
	ID string `json:"id"`

	// Description is the human-readable label, e.g. "Dinner at Luigi's".
	Description string `json:"description"`

	// Amount is the total expense amount, two-decimal fixed point.
	Amount float64 `json:"amount"`

	// Currency is the ISO 4217 code the amount is denominated in.
	Currency string `json:"currency"`

	// PaidBy is the user ID of the payer.
	PaidBy string `json:"paid_by"`

	// GroupID scopes the expense to a group; empty for one-off expenses
	// between friends.
	GroupID string `json:"group_id,omitempty"`

	// SplitType records how the shares were derived (equal, percentage,
	// shares, exact).
	SplitType ledger.SplitType `json:"split_type"`

	// Date is when the expense occurred (not when it was recorded).
	Date time.Time `json:"date"`

	// Notes is an optional free-form description.
	Notes string `json:"notes,omitempty"`

	// Shares are the per-user owed portions. Their amounts sum to Amount
	// within 0.01; exactly one share exists per (expense, user) pair.
	Shares []ExpenseShare `json:"shares"`

	// CreatedAt is the Unix timestamp when the expense was recorded.
	CreatedAt int64 `json:"created_at"`
}

// ExpenseShare is one user's owed portion of an expense.
type ExpenseShare struct {
	// ExpenseID is the parent expense.
	ExpenseID string `json:"expense_id"`

	// UserID is who owes this share.
	UserID string `json:"user_id"`

	// Amount is the owed portion, two-decimal fixed point.
	Amount float64 `json:"amount"`

	// Percentage is set when the parent was split by percentage.
	Percentage float64 `json:"percentage,omitempty"`

	// Shares is set when the parent was split by share count.
	Shares float64 `json:"shares,omitempty"`
}
