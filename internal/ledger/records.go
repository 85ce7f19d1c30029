// Package ledger computes net pairwise balances from raw expense-share and
// settlement records, and suggests transfers that settle them.
//
// All functions are pure: they take explicit record slices and return derived
// values, with no storage access and no shared state. Callers are expected to
// load a consistent snapshot of records (shares written atomically with their
// parent expense) before invoking anything here.
//
// Monetary amounts are float64 with two-decimal fixed-point semantics: every
// aggregate is rounded to 2 decimal places, and "effectively zero" comparisons
// use an absolute tolerance of 0.01 currency units.
package ledger

import (
	"math"
	"time"
)

// Tolerance is the threshold below which a balance or transfer is treated as zero.
const Tolerance = 0.01

// ShareRecord is one expense share joined to its parent expense.
// PayerID is who paid the expense; UserID is who owes this share of it.
type ShareRecord struct {
	ExpenseID string    `json:"expense_id"`
	PayerID   string    `json:"payer_id"`
	UserID    string    `json:"user_id"`
	Amount    float64   `json:"amount"`
	GroupID   string    `json:"group_id,omitempty"` // empty for non-group expenses
	Date      time.Time `json:"date"`
}

// SettlementRecord is a direct payer→payee transfer that reduces outstanding balance.
type SettlementRecord struct {
	PayerID string    `json:"payer_id"`
	PayeeID string    `json:"payee_id"`
	Amount  float64   `json:"amount"`
	GroupID string    `json:"group_id,omitempty"` // empty for non-group settlements
	Date    time.Time `json:"date"`
}

// Scope restricts which records an aggregation considers.
// A zero Scope matches everything: all groups and non-group records, all dates.
type Scope struct {
	// GroupID, when non-empty, limits records to that group.
	GroupID string

	// From and To bound the record date (inclusive). Zero values are unbounded.
	From time.Time
	To   time.Time
}

func (s Scope) matches(groupID string, date time.Time) bool {
	if s.GroupID != "" && groupID != s.GroupID {
		return false
	}
	if !s.From.IsZero() && date.Before(s.From) {
		return false
	}
	if !s.To.IsZero() && date.After(s.To) {
		return false
	}
	return true
}

// round2 rounds to two decimal places. Applied at every aggregation point so
// floating-point drift never accumulates past the tolerance.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
