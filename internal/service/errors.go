// Package service orchestrates storage and the ledger engine behind the API.
// Handlers validate scope (does the group exist, is the caller a member)
// here, before any balance computation runs; the ledger itself never
// re-checks it.
package service

import "errors"

var (
	// ErrNotMember is returned when the caller does not belong to the
	// group they are trying to act on.
	ErrNotMember = errors.New("you are not a member of this group")

	// ErrForbidden is returned when the caller may not view or modify the
	// requested record.
	ErrForbidden = errors.New("you do not have access to this record")

	// ErrSelfSettlement is returned when a user tries to settle with themself.
	ErrSelfSettlement = errors.New("cannot settle with yourself")

	// ErrInvalidAmount is returned for amounts at or below zero.
	ErrInvalidAmount = errors.New("amount must be greater than zero")

	// ErrInvalidSplit wraps split calculation failures so the API can
	// report them as client errors.
	ErrInvalidSplit = errors.New("invalid splits")
)
