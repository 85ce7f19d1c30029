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

// SettlementService records direct payments between users.
type SettlementService struct {
	store storage.Store
}

// NewSettlementService creates a new SettlementService with the given storage backend.
func NewSettlementService(store storage.Store) *SettlementService {
	return &SettlementService{store: store}
}

// RecordSettlementInput carries a payer→payee payment to record.
type RecordSettlementInput struct {
	PayeeID  string    `json:"payee_id"`
	Amount   float64   `json:"amount"`
	Currency string    `json:"currency"`
	GroupID  string    `json:"group_id"`
	Date     time.Time `json:"date"`
	Note     string    `json:"note"`
}

// Record persists a settlement paid by payerID. A settlement is an atomic
// fact: it immediately reduces the outstanding balance in full, with no
// notion of partial application.
func (s *SettlementService) Record(ctx context.Context, payerID string, in RecordSettlementInput) (*models.Settlement, error) {
	if in.Amount <= 0 {
		return nil, ErrInvalidAmount
	}
	if in.PayeeID == payerID {
		return nil, ErrSelfSettlement
	}

	payee, err := s.store.GetUserByID(ctx, in.PayeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up payee: %w", err)
	}
	if payee == nil {
		return nil, fmt.Errorf("payee %s: %w", in.PayeeID, storage.ErrNotFound)
	}

	if in.GroupID != "" {
		group, err := s.store.GetGroup(ctx, in.GroupID)
		if err != nil {
			return nil, fmt.Errorf("failed to load group: %w", err)
		}
		if !group.HasMember(payerID) {
			return nil, ErrNotMember
		}
	}

	currency := in.Currency
	if currency == "" {
		currency = "USD"
	}

	settlement := &models.Settlement{
		PayerID:  payerID,
		PayeeID:  in.PayeeID,
		Amount:   in.Amount,
		Currency: currency,
		GroupID:  in.GroupID,
		Date:     in.Date,
		Note:     in.Note,
	}

	if err := s.store.CreateSettlement(ctx, settlement); err != nil {
		return nil, fmt.Errorf("failed to create settlement: %w", err)
	}

	slog.Info("settlement recorded",
		"settlement_id", settlement.ID,
		"payer_id", payerID,
		"payee_id", in.PayeeID,
		"amount", in.Amount,
		"group_id", in.GroupID,
	)
	return settlement, nil
}

// List streams the settlements involving the user, newest-scoped filters first.
func (s *SettlementService) List(ctx context.Context, userID string, groupID string) ([]ledger.SettlementRecord, error) {
	return s.store.ListSettlements(ctx, storage.RecordFilter{UserID: userID, GroupID: groupID})
}
