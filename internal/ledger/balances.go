package ledger

import "sort"

// Direction labels for a Balance, from the subject's point of view.
const (
	DirectionOwedToYou = "owed_to_you"
	DirectionYouOwe    = "you_owe"
)

// Balance is the net financial relationship between the subject and one
// counterparty. Amount is always positive; Direction carries the sign.
type Balance struct {
	UserID    string  `json:"user_id"`
	Amount    float64 `json:"amount"`
	Direction string  `json:"direction"`
}

// UserBalances is the full balance breakdown for one user: a balance per
// counterparty with a net magnitude above tolerance, plus totals over them.
type UserBalances struct {
	Balances   []Balance `json:"balances"`
	TotalOwed  float64   `json:"total_owed"`
	TotalOwing float64   `json:"total_owing"`
	NetBalance float64   `json:"net_balance"`
}

// MemberBalances is one group member's view of their balances against every
// other member, scoped to the group's records.
type MemberBalances struct {
	UserID     string    `json:"user_id"`
	Balances   []Balance `json:"balances"`
	TotalOwed  float64   `json:"total_owed"`
	TotalOwing float64   `json:"total_owing"`
}

// ComputeUserBalances nets the given user's expense shares and settlements
// against every counterparty they have interacted with inside scope.
//
// For each counterparty:
//
//	net = (owed_to_user − user_owes) + (settlements_paid − settlements_received)
//
// A positive net means the counterparty owes the user. Counterparties whose
// net magnitude is within tolerance are dropped entirely: they appear in
// neither Balances nor the totals. A user with no interaction in scope yields
// an empty result with zero totals.
func ComputeUserBalances(userID string, shares []ShareRecord, settlements []SettlementRecord, scope Scope) UserBalances {
	owedToUser := make(map[string]float64)
	userOwes := make(map[string]float64)
	received := make(map[string]float64)
	paid := make(map[string]float64)

	for _, sh := range shares {
		if !scope.matches(sh.GroupID, sh.Date) {
			continue
		}
		switch {
		case sh.PayerID == userID && sh.UserID != userID:
			owedToUser[sh.UserID] += sh.Amount
		case sh.UserID == userID && sh.PayerID != userID:
			userOwes[sh.PayerID] += sh.Amount
		}
	}

	for _, st := range settlements {
		if !scope.matches(st.GroupID, st.Date) {
			continue
		}
		switch {
		case st.PayeeID == userID:
			received[st.PayerID] += st.Amount
		case st.PayerID == userID:
			paid[st.PayeeID] += st.Amount
		}
	}

	counterparties := collectKeys(owedToUser, userOwes, received, paid)

	result := UserBalances{}
	for _, otherID := range counterparties {
		net := round2((owedToUser[otherID] - userOwes[otherID]) + (paid[otherID] - received[otherID]))
		if bal, ok := netToBalance(otherID, net); ok {
			result.Balances = append(result.Balances, bal)
			if bal.Direction == DirectionOwedToYou {
				result.TotalOwed += bal.Amount
			} else {
				result.TotalOwing += bal.Amount
			}
		}
	}

	result.TotalOwed = round2(result.TotalOwed)
	result.TotalOwing = round2(result.TotalOwing)
	result.NetBalance = round2(result.TotalOwed - result.TotalOwing)
	return result
}

// ComputeGroupBalances computes every member's balance breakdown against every
// other member, restricted to the group's records. The result is pairwise over
// all member combinations, so each member's view excludes themself and two
// members' views of each other are exact mirror images.
//
// The scope's GroupID must be set; records outside it never contribute.
func ComputeGroupBalances(memberIDs []string, shares []ShareRecord, settlements []SettlementRecord, scope Scope) []MemberBalances {
	type pair struct{ a, b string }

	// One linear pass to index amounts by (payer, debtor) and (payer, payee);
	// the pairwise loop below then reads these in O(members²).
	shareSums := make(map[pair]float64)
	settleSums := make(map[pair]float64)

	for _, sh := range shares {
		if !scope.matches(sh.GroupID, sh.Date) || sh.PayerID == sh.UserID {
			continue
		}
		shareSums[pair{sh.PayerID, sh.UserID}] += sh.Amount
	}
	for _, st := range settlements {
		if !scope.matches(st.GroupID, st.Date) {
			continue
		}
		settleSums[pair{st.PayerID, st.PayeeID}] += st.Amount
	}

	results := make([]MemberBalances, 0, len(memberIDs))
	for _, member := range memberIDs {
		mb := MemberBalances{UserID: member}
		for _, other := range memberIDs {
			if other == member {
				continue
			}
			owed := shareSums[pair{member, other}]
			owes := shareSums[pair{other, member}]
			settlementsPaid := settleSums[pair{member, other}]
			settlementsReceived := settleSums[pair{other, member}]

			net := round2((owed - owes) + (settlementsPaid - settlementsReceived))
			if bal, ok := netToBalance(other, net); ok {
				mb.Balances = append(mb.Balances, bal)
				if bal.Direction == DirectionOwedToYou {
					mb.TotalOwed += bal.Amount
				} else {
					mb.TotalOwing += bal.Amount
				}
			}
		}
		mb.TotalOwed = round2(mb.TotalOwed)
		mb.TotalOwing = round2(mb.TotalOwing)
		results = append(results, mb)
	}
	return results
}

// netToBalance converts a signed net into a direction-labeled Balance.
// Nets within tolerance produce no balance.
func netToBalance(userID string, net float64) (Balance, bool) {
	if net > Tolerance {
		return Balance{UserID: userID, Amount: net, Direction: DirectionOwedToYou}, true
	}
	if net < -Tolerance {
		return Balance{UserID: userID, Amount: -net, Direction: DirectionYouOwe}, true
	}
	return Balance{}, false
}

// collectKeys merges the key sets of the given maps into a sorted slice.
// Sorting keeps output ordering independent of map iteration order.
func collectKeys(maps ...map[string]float64) []string {
	seen := make(map[string]bool)
	var keys []string
	for _, m := range maps {
		for k := range m {
			if !seen[k] {
				seen[k] = true
				keys = append(keys, k)
			}
		}
	}
	sort.Strings(keys)
	return keys
}
