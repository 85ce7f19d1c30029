package postgres

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/splitledger/splitledger/internal/ledger"
	"github.com/splitledger/splitledger/internal/models"
	"github.com/splitledger/splitledger/internal/storage"
)

// CreateExpense persists an expense and its shares atomically.
func (s *PostgresStore) CreateExpense(ctx context.Context, expense *models.Expense) error {
	if err := validateShareSum(expense); err != nil {
		return err
	}

	if expense.ID == "" {
		expense.ID = uuid.New().String()
	}
	if expense.CreatedAt == 0 {
		expense.CreatedAt = time.Now().Unix()
	}
	if expense.Date.IsZero() {
		expense.Date = time.Now().UTC()
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx,
		`INSERT INTO expenses (id, description, amount, currency, paid_by, group_id, split_type, date, notes, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		expense.ID, expense.Description, expense.Amount, expense.Currency, expense.PaidBy,
		nullString(expense.GroupID), string(expense.SplitType), expense.Date.Unix(),
		nullString(expense.Notes), expense.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert expense: %w", err)
	}

	for i := range expense.Shares {
		share := &expense.Shares[i]
		share.ExpenseID = expense.ID
		_, err = tx.Exec(ctx,
			`INSERT INTO expense_shares (expense_id, user_id, amount, percentage, shares)
			 VALUES ($1, $2, $3, $4, $5)`,
			share.ExpenseID, share.UserID, share.Amount,
			nullFloat(share.Percentage), nullFloat(share.Shares),
		)
		if err != nil {
			return fmt.Errorf("failed to insert expense share: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetExpense retrieves an expense with all of its shares.
func (s *PostgresStore) GetExpense(ctx context.Context, expenseID string) (*models.Expense, error) {
	expense := &models.Expense{}
	var groupID, notes *string
	var splitType string
	var date int64

	err := s.pool.QueryRow(ctx,
		`SELECT id, description, amount, currency, paid_by, group_id, split_type, date, notes, created_at
		 FROM expenses WHERE id = $1`,
		expenseID,
	).Scan(&expense.ID, &expense.Description, &expense.Amount, &expense.Currency,
		&expense.PaidBy, &groupID, &splitType, &date, &notes, &expense.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("expense %s: %w", expenseID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}

	if groupID != nil {
		expense.GroupID = *groupID
	}
	if notes != nil {
		expense.Notes = *notes
	}
	expense.SplitType = ledger.SplitType(splitType)
	expense.Date = time.Unix(date, 0).UTC()

	rows, err := s.pool.Query(ctx,
		`SELECT expense_id, user_id, amount, COALESCE(percentage, 0), COALESCE(shares, 0)
		 FROM expense_shares WHERE expense_id = $1 ORDER BY user_id`,
		expenseID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get expense shares: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var share models.ExpenseShare
		if err := rows.Scan(&share.ExpenseID, &share.UserID, &share.Amount, &share.Percentage, &share.Shares); err != nil {
			return nil, fmt.Errorf("failed to scan expense share: %w", err)
		}
		expense.Shares = append(expense.Shares, share)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expense shares: %w", err)
	}

	return expense, nil
}

// DeleteExpense removes an expense; its shares cascade with it.
func (s *PostgresStore) DeleteExpense(ctx context.Context, expenseID string) error {
	tag, err := s.pool.Exec(ctx, "DELETE FROM expenses WHERE id = $1", expenseID)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("expense %s: %w", expenseID, storage.ErrNotFound)
	}
	return nil
}

// ListShares streams expense shares joined to their parent expense.
func (s *PostgresStore) ListShares(ctx context.Context, f storage.RecordFilter) ([]ledger.ShareRecord, error) {
	query := `SELECT es.expense_id, e.paid_by, es.user_id, es.amount, COALESCE(e.group_id, ''), e.date
		FROM expense_shares es
		JOIN expenses e ON es.expense_id = e.id`
	where, args := buildFilter(f, "e.paid_by", "es.user_id", "e.group_id", "e.date")
	query += where + " ORDER BY e.date, es.expense_id, es.user_id"

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list shares: %w", err)
	}
	defer rows.Close()

	var records []ledger.ShareRecord
	for rows.Next() {
		var rec ledger.ShareRecord
		var date int64
		if err := rows.Scan(&rec.ExpenseID, &rec.PayerID, &rec.UserID, &rec.Amount, &rec.GroupID, &date); err != nil {
			return nil, fmt.Errorf("failed to scan share record: %w", err)
		}
		rec.Date = time.Unix(date, 0).UTC()
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate share records: %w", err)
	}

	return records, nil
}

// CreateSettlement persists a new settlement.
func (s *PostgresStore) CreateSettlement(ctx context.Context, settlement *models.Settlement) error {
	if settlement.ID == "" {
		settlement.ID = uuid.New().String()
	}
	if settlement.CreatedAt == 0 {
		settlement.CreatedAt = time.Now().Unix()
	}
	if settlement.Date.IsZero() {
		settlement.Date = time.Now().UTC()
	}

	_, err := s.pool.Exec(ctx,
		`INSERT INTO settlements (id, payer_id, payee_id, amount, currency, group_id, date, note, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		settlement.ID, settlement.PayerID, settlement.PayeeID, settlement.Amount,
		settlement.Currency, nullString(settlement.GroupID), settlement.Date.Unix(),
		nullString(settlement.Note), settlement.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert settlement: %w", err)
	}

	return nil
}

// ListSettlements streams settlements narrowed by the filter.
func (s *PostgresStore) ListSettlements(ctx context.Context, f storage.RecordFilter) ([]ledger.SettlementRecord, error) {
	query := `SELECT payer_id, payee_id, amount, COALESCE(group_id, ''), date FROM settlements`
	where, args := buildFilter(f, "payer_id", "payee_id", "group_id", "date")
	query += where + " ORDER BY date, id"

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list settlements: %w", err)
	}
	defer rows.Close()

	var records []ledger.SettlementRecord
	for rows.Next() {
		var rec ledger.SettlementRecord
		var date int64
		if err := rows.Scan(&rec.PayerID, &rec.PayeeID, &rec.Amount, &rec.GroupID, &date); err != nil {
			return nil, fmt.Errorf("failed to scan settlement record: %w", err)
		}
		rec.Date = time.Unix(date, 0).UTC()
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate settlement records: %w", err)
	}

	return records, nil
}

// buildFilter appends WHERE conditions for a RecordFilter using positional
// placeholders.
func buildFilter(f storage.RecordFilter, sideA, sideB, groupCol, dateCol string) (string, []any) {
	var conds []string
	var args []any

	next := func() int { return len(args) + 1 }

	if f.UserID != "" {
		conds = append(conds, fmt.Sprintf("(%s = $%d OR %s = $%d)", sideA, next(), sideB, next()+1))
		args = append(args, f.UserID, f.UserID)
	}
	if f.GroupID != "" {
		conds = append(conds, fmt.Sprintf("%s = $%d", groupCol, next()))
		args = append(args, f.GroupID)
	}
	if !f.From.IsZero() {
		conds = append(conds, fmt.Sprintf("%s >= $%d", dateCol, next()))
		args = append(args, f.From.Unix())
	}
	if !f.To.IsZero() {
		conds = append(conds, fmt.Sprintf("%s <= $%d", dateCol, next()))
		args = append(args, f.To.Unix())
	}

	if len(conds) == 0 {
		return "", nil
	}
	where := " WHERE " + conds[0]
	for _, c := range conds[1:] {
		where += " AND " + c
	}
	return where, args
}

func validateShareSum(expense *models.Expense) error {
	var sum float64
	seen := make(map[string]bool, len(expense.Shares))
	for _, share := range expense.Shares {
		if seen[share.UserID] {
			return fmt.Errorf("duplicate share for user %s", share.UserID)
		}
		seen[share.UserID] = true
		sum += share.Amount
	}
	if math.Abs(sum-expense.Amount) > ledger.Tolerance {
		return fmt.Errorf("shares sum to %.2f, expense amount is %.2f", sum, expense.Amount)
	}
	return nil
}

func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func nullFloat(v float64) *float64 {
	if v == 0 {
		return nil
	}
	return &v
}
