package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/splitledger/splitledger/internal/ledger"
	"github.com/splitledger/splitledger/internal/models"
	"github.com/splitledger/splitledger/internal/storage"
)

// ExpenseService handles expense creation and retrieval, including the split
// calculation that derives share amounts from the requested split type.
type ExpenseService struct {
	store storage.Store
}

// NewExpenseService creates a new ExpenseService with the given storage backend.
func NewExpenseService(store storage.Store) *ExpenseService {
	return &ExpenseService{store: store}
}

// CreateExpenseInput carries everything needed to record a shared expense.
type CreateExpenseInput struct {
	Description string              `json:"description"`
	Amount      float64             `json:"amount"`
	Currency    string              `json:"currency"`
	GroupID     string              `json:"group_id"`
	SplitType   ledger.SplitType    `json:"split_type"`
	Splits      []ledger.SplitInput `json:"splits"`
	Date        time.Time           `json:"date"`
	Notes       string              `json:"notes"`
}

// Create records an expense paid by userID, deriving shares from the split
// type. The expense and its shares are written in one transaction.
func (s *ExpenseService) Create(ctx context.Context, userID string, in CreateExpenseInput) (*models.Expense, error) {
	if in.Amount <= 0 {
		return nil, ErrInvalidAmount
	}

	if in.GroupID != "" {
		if err := s.requireMembership(ctx, in.GroupID, userID); err != nil {
			return nil, err
		}
	}

	splits, err := ledger.CalculateSplits(in.Amount, in.SplitType, in.Splits)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSplit, err)
	}

	shares := make([]models.ExpenseShare, len(splits))
	for i, sp := range splits {
		shares[i] = models.ExpenseShare{
			UserID:     sp.UserID,
			Amount:     sp.Amount,
			Percentage: sp.Percentage,
			Shares:     sp.Shares,
		}
	}

	currency := in.Currency
	if currency == "" {
		if payer, err := s.store.GetUserByID(ctx, userID); err == nil && payer != nil {
			currency = payer.Currency
		} else {
			currency = "USD"
		}
	}

	expense := &models.Expense{
		Description: in.Description,
		Amount:      in.Amount,
		Currency:    currency,
		PaidBy:      userID,
		GroupID:     in.GroupID,
		SplitType:   in.SplitType,
		Date:        in.Date,
		Notes:       in.Notes,
		Shares:      shares,
	}

	if err := s.store.CreateExpense(ctx, expense); err != nil {
		return nil, fmt.Errorf("failed to create expense: %w", err)
	}

	slog.Info("expense created",
		"expense_id", expense.ID,
		"paid_by", userID,
		"amount", expense.Amount,
		"split_type", expense.SplitType,
		"group_id", expense.GroupID,
	)
	return expense, nil
}

// Get retrieves an expense if the caller participates in it.
func (s *ExpenseService) Get(ctx context.Context, userID, expenseID string) (*models.Expense, error) {
	expense, err := s.store.GetExpense(ctx, expenseID)
	if err != nil {
		return nil, err
	}
	if !participatesIn(expense, userID) {
		return nil, ErrForbidden
	}
	return expense, nil
}

// Delete removes an expense and its shares. Only the payer may delete.
func (s *ExpenseService) Delete(ctx context.Context, userID, expenseID string) error {
	expense, err := s.store.GetExpense(ctx, expenseID)
	if err != nil {
		return err
	}
	if expense.PaidBy != userID {
		return ErrForbidden
	}

	if err := s.store.DeleteExpense(ctx, expenseID); err != nil {
		return err
	}

	slog.Info("expense deleted", "expense_id", expenseID, "deleted_by", userID)
	return nil
}

func (s *ExpenseService) requireMembership(ctx context.Context, groupID, userID string) error {
	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		return fmt.Errorf("failed to load group: %w", err)
	}
	if !group.HasMember(userID) {
		return ErrNotMember
	}
	return nil
}

func participatesIn(expense *models.Expense, userID string) bool {
	if expense.PaidBy == userID {
		return true
	}
	for _, share := range expense.Shares {
		if share.UserID == userID {
			return true
		}
	}
	return false
}
