package ledger

import (
	"testing"
)

func TestSimplifyDebts(t *testing.T) {
	tests := []struct {
		name         string
		net          map[string]float64
		validateFunc func(t *testing.T, got []Transfer)
	}{
		{
			name: "largest creditor is paid first",
			net:  map[string]float64{"alice": 50, "bob": 30, "carol": -80},
			validateFunc: func(t *testing.T, got []Transfer) {
				want := []Transfer{
					{From: "carol", To: "alice", Amount: 50.00},
					{From: "carol", To: "bob", Amount: 30.00},
				}
				assertTransfers(t, got, want)
			},
		},
		{
			name: "single exact pair is not suppressed",
			net:  map[string]float64{"alice": 10, "bob": -10},
			validateFunc: func(t *testing.T, got []Transfer) {
				assertTransfers(t, got, []Transfer{{From: "bob", To: "alice", Amount: 10.00}})
			},
		},
		{
			name: "sub-tolerance participant is excluded",
			net:  map[string]float64{"alice": 0.005, "bob": 0.005, "carol": -0.01},
			validateFunc: func(t *testing.T, got []Transfer) {
				if len(got) != 0 {
					t.Errorf("expected no transfers, got %+v", got)
				}
			},
		},
		{
			name: "debtor pays multiple creditors across iterations",
			net:  map[string]float64{"alice": 25, "bob": 25, "carol": -20, "dave": -30},
			validateFunc: func(t *testing.T, got []Transfer) {
				// dave (30) matches alice (25, id tie-break) first, residue
				// flows to bob, then carol covers the rest.
				want := []Transfer{
					{From: "dave", To: "alice", Amount: 25.00},
					{From: "dave", To: "bob", Amount: 5.00},
					{From: "carol", To: "bob", Amount: 20.00},
				}
				assertTransfers(t, got, want)
			},
		},
		{
			name: "equal amounts tie-break by ascending user id",
			net:  map[string]float64{"zed": 40, "ann": 40, "pat": -80},
			validateFunc: func(t *testing.T, got []Transfer) {
				want := []Transfer{
					{From: "pat", To: "ann", Amount: 40.00},
					{From: "pat", To: "zed", Amount: 40.00},
				}
				assertTransfers(t, got, want)
			},
		},
		{
			name: "empty input",
			net:  map[string]float64{},
			validateFunc: func(t *testing.T, got []Transfer) {
				if len(got) != 0 {
					t.Errorf("expected no transfers, got %+v", got)
				}
			},
		},
		{
			name: "dangling residue from inconsistent input is dropped",
			net:  map[string]float64{"alice": 30, "bob": -20},
			validateFunc: func(t *testing.T, got []Transfer) {
				assertTransfers(t, got, []Transfer{{From: "bob", To: "alice", Amount: 20.00}})
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SimplifyDebts(tt.net)
			tt.validateFunc(t, got)

			// Invariants that hold for every input.
			for _, tr := range got {
				if tr.From == tr.To {
					t.Errorf("self transfer emitted: %+v", tr)
				}
				if tr.Amount <= Tolerance {
					t.Errorf("transfer at or below tolerance emitted: %+v", tr)
				}
			}
		})
	}
}

// TestSimplifyDebts_ConservesTotal checks that the amount moved equals the
// total positive imbalance whenever the input nets to zero.
func TestSimplifyDebts_ConservesTotal(t *testing.T) {
	net := map[string]float64{
		"alice": 120.45,
		"bob":   33.33,
		"carol": -75.18,
		"dave":  -60.10,
		"erin":  -18.50,
	}

	var positive float64
	for _, v := range net {
		if v > 0 {
			positive += v
		}
	}

	var moved float64
	for _, tr := range SimplifyDebts(net) {
		moved += tr.Amount
	}

	if !approxEqual(moved, positive) {
		t.Errorf("moved %v, want %v", moved, positive)
	}
}

func TestSimplifyDebts_TransferCountBound(t *testing.T) {
	net := map[string]float64{
		"a": 10, "b": 20, "c": 30,
		"d": -15, "e": -45,
	}
	got := SimplifyDebts(net)
	// At most creditors + debtors - 1 transfers.
	if len(got) > 4 {
		t.Errorf("emitted %d transfers, greedy bound is 4", len(got))
	}
}

func TestNetGroupBalances(t *testing.T) {
	balances := []MemberBalances{
		{UserID: "alice", TotalOwed: 60.00, TotalOwing: 10.00},
		{UserID: "bob", TotalOwed: 0, TotalOwing: 50.00},
		{UserID: "carol", TotalOwed: 0, TotalOwing: 0},
	}

	net := NetGroupBalances(balances)
	if !approxEqual(net["alice"], 50.00) {
		t.Errorf("alice net = %v, want 50.00", net["alice"])
	}
	if !approxEqual(net["bob"], -50.00) {
		t.Errorf("bob net = %v, want -50.00", net["bob"])
	}
	if !approxEqual(net["carol"], 0) {
		t.Errorf("carol net = %v, want 0", net["carol"])
	}
}

func TestNetUserBalances(t *testing.T) {
	ub := UserBalances{
		Balances: []Balance{
			{UserID: "bob", Amount: 33.33, Direction: DirectionOwedToYou},
			{UserID: "carol", Amount: 12.00, Direction: DirectionYouOwe},
		},
		TotalOwed:  33.33,
		TotalOwing: 12.00,
		NetBalance: 21.33,
	}

	net := NetUserBalances("alice", ub)
	if !approxEqual(net["alice"], 21.33) {
		t.Errorf("alice net = %v, want 21.33", net["alice"])
	}
	if !approxEqual(net["bob"], -33.33) {
		t.Errorf("bob net = %v, want -33.33 (he owes alice)", net["bob"])
	}
	if !approxEqual(net["carol"], 12.00) {
		t.Errorf("carol net = %v, want 12.00 (alice owes her)", net["carol"])
	}

	// The constructed graph nets to zero, so simplification settles it fully.
	transfers := SimplifyDebts(net)
	var moved float64
	for _, tr := range transfers {
		moved += tr.Amount
	}
	if !approxEqual(moved, 33.33) {
		t.Errorf("moved %v, want 33.33", moved)
	}
}

func assertTransfers(t *testing.T, got, want []Transfer) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d transfers %+v, want %d %+v", len(got), got, len(want), want)
	}
	for i := range want {
		if got[i].From != want[i].From || got[i].To != want[i].To || !approxEqual(got[i].Amount, want[i].Amount) {
			t.Errorf("transfer %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}
