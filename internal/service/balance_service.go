package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/splitledger/splitledger/internal/ledger"
	"github.com/splitledger/splitledger/internal/storage"
)

// BalanceService loads record snapshots from storage and runs the balance
// engine and debt simplifier over them.
type BalanceService struct {
	store storage.Store
}

// NewBalanceService creates a new BalanceService with the given storage backend.
func NewBalanceService(store storage.Store) *BalanceService {
	return &BalanceService{store: store}
}

// BalanceQuery narrows a balance computation. Zero fields are unrestricted.
type BalanceQuery struct {
	GroupID string
	From    time.Time
	To      time.Time
}

// GroupBalanceSet is a group's full balance picture: one breakdown per member.
type GroupBalanceSet struct {
	GroupID  string                  `json:"group_id"`
	Balances []ledger.MemberBalances `json:"balances"`
}

// UserBalances computes the user's net balances against every counterparty,
// optionally restricted to a group and/or date range.
func (s *BalanceService) UserBalances(ctx context.Context, userID string, q BalanceQuery) (ledger.UserBalances, error) {
	shares, settlements, err := s.loadRecords(ctx, storage.RecordFilter{
		UserID: userID, GroupID: q.GroupID, From: q.From, To: q.To,
	})
	if err != nil {
		return ledger.UserBalances{}, err
	}

	scope := ledger.Scope{GroupID: q.GroupID, From: q.From, To: q.To}
	result := ledger.ComputeUserBalances(userID, shares, settlements, scope)

	slog.Debug("computed user balances",
		"user_id", userID,
		"group_id", q.GroupID,
		"counterparties", len(result.Balances),
		"net_balance", result.NetBalance,
	)
	return result, nil
}

// GroupBalances computes every member's balance breakdown for the group.
// The caller's membership must already be verified; the group's existence is
// checked here because membership comes from it.
func (s *BalanceService) GroupBalances(ctx context.Context, groupID string, q BalanceQuery) (GroupBalanceSet, error) {
	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		return GroupBalanceSet{}, fmt.Errorf("failed to load group: %w", err)
	}

	shares, settlements, err := s.loadRecords(ctx, storage.RecordFilter{
		GroupID: groupID, From: q.From, To: q.To,
	})
	if err != nil {
		return GroupBalanceSet{}, err
	}

	scope := ledger.Scope{GroupID: groupID, From: q.From, To: q.To}
	balances := ledger.ComputeGroupBalances(group.MemberIDs, shares, settlements, scope)

	slog.Debug("computed group balances",
		"group_id", groupID,
		"members", len(group.MemberIDs),
	)
	return GroupBalanceSet{GroupID: groupID, Balances: balances}, nil
}

// SimplifiedGroupDebts suggests the transfers that settle all balances within
// a group.
func (s *BalanceService) SimplifiedGroupDebts(ctx context.Context, groupID string) ([]ledger.Transfer, error) {
	set, err := s.GroupBalances(ctx, groupID, BalanceQuery{})
	if err != nil {
		return nil, err
	}

	transfers := ledger.SimplifyDebts(ledger.NetGroupBalances(set.Balances))
	slog.Debug("simplified group debts", "group_id", groupID, "transfers", len(transfers))
	return transfers, nil
}

// SimplifiedUserDebts suggests the transfers that settle the user's balances
// across their whole graph of counterparties.
func (s *BalanceService) SimplifiedUserDebts(ctx context.Context, userID string) ([]ledger.Transfer, error) {
	balances, err := s.UserBalances(ctx, userID, BalanceQuery{})
	if err != nil {
		return nil, err
	}

	transfers := ledger.SimplifyDebts(ledger.NetUserBalances(userID, balances))
	slog.Debug("simplified user debts", "user_id", userID, "transfers", len(transfers))
	return transfers, nil
}

func (s *BalanceService) loadRecords(ctx context.Context, f storage.RecordFilter) ([]ledger.ShareRecord, []ledger.SettlementRecord, error) {
	shares, err := s.store.ListShares(ctx, f)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load shares: %w", err)
	}
	settlements, err := s.store.ListSettlements(ctx, f)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load settlements: %w", err)
	}
	return shares, settlements, nil
}
