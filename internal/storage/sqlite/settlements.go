package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/splitledger/splitledger/internal/ledger"
	"github.com/splitledger/splitledger/internal/models"
	"github.com/splitledger/splitledger/internal/storage"
)

// CreateSettlement persists a new settlement to the database.
func (s *SQLiteStore) CreateSettlement(ctx context.Context, settlement *models.Settlement) error {
	if settlement.ID == "" {
		settlement.ID = uuid.New().String()
	}
	if settlement.CreatedAt == 0 {
		settlement.CreatedAt = time.Now().Unix()
	}
	if settlement.Date.IsZero() {
		settlement.Date = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO settlements (id, payer_id, payee_id, amount, currency, group_id, date, note, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
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
func (s *SQLiteStore) ListSettlements(ctx context.Context, f storage.RecordFilter) ([]ledger.SettlementRecord, error) {
	query := `SELECT payer_id, payee_id, amount, COALESCE(group_id, ''), date FROM settlements`
	where, args := buildFilter(f, "payer_id", "payee_id", "group_id", "date")
	query += where + " ORDER BY date, id"

	rows, err := s.db.QueryContext(ctx, query, args...)
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
