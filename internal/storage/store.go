// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"
	"time"

	"github.com/splitledger/splitledger/internal/ledger"
	"github.com/splitledger/splitledger/internal/models"
)

// ErrNotFound is returned when a referenced record does not exist.
var ErrNotFound = errors.New("record not found")

// RecordFilter narrows the record streams handed to the balance engine.
// Zero fields are unrestricted.
type RecordFilter struct {
	// UserID limits records to those involving the user on either side
	// (payer or debtor for shares, payer or payee for settlements).
	UserID string

	// GroupID limits records to the given group.
	GroupID string

	// From and To bound the record date (inclusive).
	From time.Time
	To   time.Time
}

// Store defines the interface for ledger storage operations.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL)
// without changing the service layer.
type Store interface {
	// CreateUser persists a new user. The user.ID field will be populated.
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByEmail retrieves a user by email.
	// Returns (nil, nil) if no such user exists.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// GetUserByID retrieves a user by ID.
	// Returns (nil, nil) if no such user exists.
	GetUserByID(ctx context.Context, id string) (*models.User, error)

	// CreateGroup persists a new group with its initial members.
	CreateGroup(ctx context.Context, group *models.Group) error

	// GetGroup retrieves a group and its member IDs.
	GetGroup(ctx context.Context, groupID string) (*models.Group, error)

	// AddGroupMembers adds users to an existing group, skipping duplicates.
	AddGroupMembers(ctx context.Context, groupID string, userIDs []string) error

	// ListGroupsForUser retrieves every group the user belongs to.
	ListGroupsForUser(ctx context.Context, userID string) ([]*models.Group, error)

	// CreateExpense persists an expense and all of its shares in one
	// transaction, so a concurrent balance read never observes the expense
	// without them. It rejects expenses whose shares do not sum to the
	// expense amount within the ledger tolerance.
	CreateExpense(ctx context.Context, expense *models.Expense) error

	// GetExpense retrieves an expense with its shares.
	GetExpense(ctx context.Context, expenseID string) (*models.Expense, error)

	// DeleteExpense removes an expense and all dependent shares.
	DeleteExpense(ctx context.Context, expenseID string) error

	// ListShares streams expense shares joined to their parent expense,
	// narrowed by the filter, in the form the balance engine consumes.
	ListShares(ctx context.Context, f RecordFilter) ([]ledger.ShareRecord, error)

	// CreateSettlement persists a settlement.
	CreateSettlement(ctx context.Context, settlement *models.Settlement) error

	// ListSettlements streams settlements narrowed by the filter.
	ListSettlements(ctx context.Context, f RecordFilter) ([]ledger.SettlementRecord, error)

	// Close releases any resources held by the store.
	Close() error
}
