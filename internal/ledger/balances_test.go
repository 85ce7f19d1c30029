package ledger

import (
	"math"
	"reflect"
	"testing"
	"time"
)

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) < 0.001
}

// findBalance returns the balance against the given counterparty, or nil.
func findBalance(balances []Balance, userID string) *Balance {
	for i := range balances {
		if balances[i].UserID == userID {
			return &balances[i]
		}
	}
	return nil
}

func TestComputeUserBalances(t *testing.T) {
	tests := []struct {
		name         string
		userID       string
		shares       []ShareRecord
		settlements  []SettlementRecord
		scope        Scope
		validateFunc func(t *testing.T, got UserBalances)
	}{
		{
			name:   "equal three-way split, payer's view",
			userID: "alice",
			shares: []ShareRecord{
				{ExpenseID: "e1", PayerID: "alice", UserID: "alice", Amount: 33.34},
				{ExpenseID: "e1", PayerID: "alice", UserID: "bob", Amount: 33.33},
				{ExpenseID: "e1", PayerID: "alice", UserID: "carol", Amount: 33.33},
			},
			validateFunc: func(t *testing.T, got UserBalances) {
				if len(got.Balances) != 2 {
					t.Fatalf("expected 2 balances, got %d", len(got.Balances))
				}
				for _, other := range []string{"bob", "carol"} {
					bal := findBalance(got.Balances, other)
					if bal == nil {
						t.Fatalf("missing balance for %s", other)
					}
					if !approxEqual(bal.Amount, 33.33) {
						t.Errorf("%s amount = %v, want 33.33", other, bal.Amount)
					}
					if bal.Direction != DirectionOwedToYou {
						t.Errorf("%s direction = %s, want %s", other, bal.Direction, DirectionOwedToYou)
					}
				}
				if !approxEqual(got.TotalOwed, 66.66) {
					t.Errorf("TotalOwed = %v, want 66.66", got.TotalOwed)
				}
				if !approxEqual(got.TotalOwing, 0) {
					t.Errorf("TotalOwing = %v, want 0", got.TotalOwing)
				}
				if !approxEqual(got.NetBalance, 66.66) {
					t.Errorf("NetBalance = %v, want 66.66", got.NetBalance)
				}
			},
		},
		{
			name:   "debtor's view of the same expense",
			userID: "bob",
			shares: []ShareRecord{
				{ExpenseID: "e1", PayerID: "alice", UserID: "alice", Amount: 33.34},
				{ExpenseID: "e1", PayerID: "alice", UserID: "bob", Amount: 33.33},
				{ExpenseID: "e1", PayerID: "alice", UserID: "carol", Amount: 33.33},
			},
			validateFunc: func(t *testing.T, got UserBalances) {
				bal := findBalance(got.Balances, "alice")
				if bal == nil {
					t.Fatal("missing balance for alice")
				}
				if !approxEqual(bal.Amount, 33.33) || bal.Direction != DirectionYouOwe {
					t.Errorf("got %+v, want you_owe 33.33", bal)
				}
				if !approxEqual(got.NetBalance, -33.33) {
					t.Errorf("NetBalance = %v, want -33.33", got.NetBalance)
				}
			},
		},
		{
			name:   "settlement reduces what is owed",
			userID: "alice",
			shares: []ShareRecord{
				{ExpenseID: "e1", PayerID: "alice", UserID: "bob", Amount: 40.00},
			},
			settlements: []SettlementRecord{
				{PayerID: "bob", PayeeID: "alice", Amount: 15.00},
			},
			validateFunc: func(t *testing.T, got UserBalances) {
				bal := findBalance(got.Balances, "bob")
				if bal == nil {
					t.Fatal("missing balance for bob")
				}
				if !approxEqual(bal.Amount, 25.00) || bal.Direction != DirectionOwedToYou {
					t.Errorf("got %+v, want owed_to_you 25.00", bal)
				}
			},
		},
		{
			name:   "fully settled pair is dropped and does not distort totals",
			userID: "alice",
			shares: []ShareRecord{
				{ExpenseID: "e1", PayerID: "alice", UserID: "bob", Amount: 20.00},
				{ExpenseID: "e2", PayerID: "alice", UserID: "carol", Amount: 12.50},
			},
			settlements: []SettlementRecord{
				{PayerID: "bob", PayeeID: "alice", Amount: 20.00},
			},
			validateFunc: func(t *testing.T, got UserBalances) {
				if findBalance(got.Balances, "bob") != nil {
					t.Error("settled pair with bob should be dropped")
				}
				if !approxEqual(got.TotalOwed, 12.50) {
					t.Errorf("TotalOwed = %v, want 12.50", got.TotalOwed)
				}
			},
		},
		{
			name:   "sub-tolerance rounding noise never surfaces",
			userID: "alice",
			shares: []ShareRecord{
				{ExpenseID: "e1", PayerID: "alice", UserID: "bob", Amount: 10.005},
			},
			settlements: []SettlementRecord{
				{PayerID: "bob", PayeeID: "alice", Amount: 10.00},
			},
			validateFunc: func(t *testing.T, got UserBalances) {
				if len(got.Balances) != 0 {
					t.Errorf("expected no balances, got %+v", got.Balances)
				}
				if got.TotalOwed != 0 || got.TotalOwing != 0 || got.NetBalance != 0 {
					t.Errorf("expected zero totals, got %+v", got)
				}
			},
		},
		{
			name:   "no interaction yields empty result, not an error",
			userID: "zoe",
			shares: []ShareRecord{
				{ExpenseID: "e1", PayerID: "alice", UserID: "bob", Amount: 10.00},
			},
			validateFunc: func(t *testing.T, got UserBalances) {
				if len(got.Balances) != 0 || got.TotalOwed != 0 || got.TotalOwing != 0 {
					t.Errorf("expected empty result, got %+v", got)
				}
			},
		},
		{
			name:   "group scope excludes other groups and non-group records",
			userID: "alice",
			shares: []ShareRecord{
				{ExpenseID: "e1", PayerID: "alice", UserID: "bob", Amount: 30.00, GroupID: "trip"},
				{ExpenseID: "e2", PayerID: "alice", UserID: "bob", Amount: 99.00, GroupID: "house"},
				{ExpenseID: "e3", PayerID: "alice", UserID: "bob", Amount: 5.00},
			},
			scope: Scope{GroupID: "trip"},
			validateFunc: func(t *testing.T, got UserBalances) {
				bal := findBalance(got.Balances, "bob")
				if bal == nil || !approxEqual(bal.Amount, 30.00) {
					t.Errorf("got %+v, want 30.00 scoped to trip", bal)
				}
			},
		},
		{
			name:   "date range bounds are inclusive",
			userID: "alice",
			shares: []ShareRecord{
				{ExpenseID: "e1", PayerID: "alice", UserID: "bob", Amount: 10.00, Date: date(2026, 1, 1)},
				{ExpenseID: "e2", PayerID: "alice", UserID: "bob", Amount: 20.00, Date: date(2026, 2, 1)},
				{ExpenseID: "e3", PayerID: "alice", UserID: "bob", Amount: 40.00, Date: date(2026, 3, 1)},
			},
			scope: Scope{From: date(2026, 2, 1), To: date(2026, 2, 28)},
			validateFunc: func(t *testing.T, got UserBalances) {
				bal := findBalance(got.Balances, "bob")
				if bal == nil || !approxEqual(bal.Amount, 20.00) {
					t.Errorf("got %+v, want only the February expense", bal)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeUserBalances(tt.userID, tt.shares, tt.settlements, tt.scope)
			tt.validateFunc(t, got)
		})
	}
}

// TestComputeUserBalances_Antisymmetry verifies that A's signed relationship to
// B is always the exact negation of B's relationship to A.
func TestComputeUserBalances_Antisymmetry(t *testing.T) {
	shares := []ShareRecord{
		{ExpenseID: "e1", PayerID: "alice", UserID: "bob", Amount: 42.17},
		{ExpenseID: "e2", PayerID: "bob", UserID: "alice", Amount: 13.40},
		{ExpenseID: "e3", PayerID: "carol", UserID: "alice", Amount: 7.25},
		{ExpenseID: "e3", PayerID: "carol", UserID: "bob", Amount: 7.25},
	}
	settlements := []SettlementRecord{
		{PayerID: "alice", PayeeID: "bob", Amount: 5.00},
		{PayerID: "bob", PayeeID: "carol", Amount: 3.10},
	}

	users := []string{"alice", "bob", "carol"}
	signed := func(ub UserBalances, other string) float64 {
		bal := findBalance(ub.Balances, other)
		if bal == nil {
			return 0
		}
		if bal.Direction == DirectionYouOwe {
			return -bal.Amount
		}
		return bal.Amount
	}

	for _, a := range users {
		for _, b := range users {
			if a == b {
				continue
			}
			aView := ComputeUserBalances(a, shares, settlements, Scope{})
			bView := ComputeUserBalances(b, shares, settlements, Scope{})
			if !approxEqual(signed(aView, b), -signed(bView, a)) {
				t.Errorf("antisymmetry violated for (%s, %s): %v vs %v",
					a, b, signed(aView, b), signed(bView, a))
			}
		}
	}
}

func TestComputeUserBalances_Idempotent(t *testing.T) {
	shares := []ShareRecord{
		{ExpenseID: "e1", PayerID: "alice", UserID: "bob", Amount: 33.33},
		{ExpenseID: "e2", PayerID: "bob", UserID: "alice", Amount: 10.10},
	}
	settlements := []SettlementRecord{
		{PayerID: "bob", PayeeID: "alice", Amount: 4.00},
	}

	first := ComputeUserBalances("alice", shares, settlements, Scope{})
	second := ComputeUserBalances("alice", shares, settlements, Scope{})
	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated computation diverged:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

func TestComputeGroupBalances(t *testing.T) {
	members := []string{"alice", "bob", "carol"}
	shares := []ShareRecord{
		// alice paid 90, split three ways inside the group
		{ExpenseID: "e1", PayerID: "alice", UserID: "alice", Amount: 30.00, GroupID: "trip"},
		{ExpenseID: "e1", PayerID: "alice", UserID: "bob", Amount: 30.00, GroupID: "trip"},
		{ExpenseID: "e1", PayerID: "alice", UserID: "carol", Amount: 30.00, GroupID: "trip"},
		// a non-group expense between the same people must not leak in
		{ExpenseID: "e2", PayerID: "bob", UserID: "alice", Amount: 50.00},
	}
	settlements := []SettlementRecord{
		{PayerID: "carol", PayeeID: "alice", Amount: 30.00, GroupID: "trip"},
	}

	got := ComputeGroupBalances(members, shares, settlements, Scope{GroupID: "trip"})
	if len(got) != 3 {
		t.Fatalf("expected a breakdown per member, got %d", len(got))
	}

	byUser := make(map[string]MemberBalances)
	for _, mb := range got {
		byUser[mb.UserID] = mb
	}

	alice := byUser["alice"]
	if bal := findBalance(alice.Balances, "bob"); bal == nil || !approxEqual(bal.Amount, 30.00) || bal.Direction != DirectionOwedToYou {
		t.Errorf("alice vs bob = %+v, want owed_to_you 30.00", bal)
	}
	if findBalance(alice.Balances, "carol") != nil {
		t.Error("carol settled up; alice should hold no balance against her")
	}
	if !approxEqual(alice.TotalOwed, 30.00) || !approxEqual(alice.TotalOwing, 0) {
		t.Errorf("alice totals = owed %v owing %v, want 30.00 / 0", alice.TotalOwed, alice.TotalOwing)
	}

	// bob's view must mirror alice's
	bob := byUser["bob"]
	if bal := findBalance(bob.Balances, "alice"); bal == nil || !approxEqual(bal.Amount, 30.00) || bal.Direction != DirectionYouOwe {
		t.Errorf("bob vs alice = %+v, want you_owe 30.00", bal)
	}

	carol := byUser["carol"]
	if len(carol.Balances) != 0 {
		t.Errorf("carol should be fully settled, got %+v", carol.Balances)
	}
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
