// Package models defines the core domain models for splitledger.
//
// # Models
//
//   - User: a registered participant with login credentials
//   - Group: a set of users who share expenses
//   - Expense: a shared cost paid by one user and split among several
//   - ExpenseShare: one user's owed portion of an expense
//   - Settlement: a direct payment that reduces outstanding balance
//
// # Design Principles
//
//  1. **Records, not behavior**: balance math lives in internal/ledger and
//     takes these models' data as plain record slices; nothing here computes.
//  2. **Write-time invariants**: an expense's shares must sum to its amount
//     within a 0.01 tolerance. The storage layer enforces this inside the
//     same transaction that writes the expense, so readers never need to
//     re-validate.
//  3. **Avoid circular references**: relationships use ID strings, never
//     pointers.
//
// Amounts are float64 carrying two-decimal fixed-point values in a single
// ledger currency; any conversion happens before records reach this code.
package models
