package ledger

import "sort"

// Transfer is a suggested payment that moves the ledger toward zero net
// balances. Amount is always positive and rounded to 2 decimals.
type Transfer struct {
	From   string  `json:"from"`
	To     string  `json:"to"`
	Amount float64 `json:"amount"`
}

// party is one side of the greedy matching: a creditor or debtor with the
// positive amount still to be discharged.
type party struct {
	userID string
	amount float64
}

// SimplifyDebts reduces a set of net balances (positive = creditor, negative =
// debtor) to a small set of transfers using greedy largest-creditor against
// largest-debtor matching. This is a deterministic approximation, not an exact
// minimum-transaction solver (that problem is NP-hard); it emits at most
// creditors+debtors−1 transfers and the total moved equals the total imbalance.
//
// Participants whose net falls within tolerance are ignored. Equal amounts tie-
// break by ascending user ID so output is reproducible. If creditor and debtor
// sums disagree (inconsistent input), the dangling residue is dropped rather
// than emitted.
func SimplifyDebts(net map[string]float64) []Transfer {
	var creditors, debtors []party
	for userID, balance := range net {
		switch {
		case balance > Tolerance:
			creditors = append(creditors, party{userID, balance})
		case balance < -Tolerance:
			debtors = append(debtors, party{userID, -balance})
		}
	}

	sortByAmountDesc(creditors)
	sortByAmountDesc(debtors)

	var transfers []Transfer
	for len(creditors) > 0 && len(debtors) > 0 {
		creditor := &creditors[0]
		debtor := &debtors[0]

		amount := min(creditor.amount, debtor.amount)
		if amount > Tolerance {
			transfers = append(transfers, Transfer{
				From:   debtor.userID,
				To:     creditor.userID,
				Amount: round2(amount),
			})
		}

		creditor.amount -= amount
		debtor.amount -= amount

		// A party can drop below tolerance without ever being matched,
		// e.g. when rounding left it a fraction of a cent.
		if creditor.amount < Tolerance {
			creditors = creditors[1:]
		}
		if debtor.amount < Tolerance {
			debtors = debtors[1:]
		}
	}

	return transfers
}

// NetGroupBalances builds the simplifier's input from a group balance
// breakdown: each member's net is what they are owed minus what they owe
// within the group.
func NetGroupBalances(balances []MemberBalances) map[string]float64 {
	net := make(map[string]float64, len(balances))
	for _, mb := range balances {
		net[mb.UserID] = round2(mb.TotalOwed - mb.TotalOwing)
	}
	return net
}

// NetUserBalances builds the simplifier's input from one user's balance
// breakdown: the subject carries their net balance, and each counterparty
// carries the negation of the subject's signed relationship with them.
func NetUserBalances(userID string, ub UserBalances) map[string]float64 {
	net := make(map[string]float64, len(ub.Balances)+1)
	net[userID] = ub.NetBalance
	for _, bal := range ub.Balances {
		signed := bal.Amount
		if bal.Direction == DirectionYouOwe {
			signed = -signed
		}
		net[bal.UserID] = -signed
	}
	return net
}

// sortByAmountDesc orders parties by amount descending, user ID ascending on ties.
func sortByAmountDesc(parties []party) {
	sort.Slice(parties, func(i, j int) bool {
		if parties[i].amount != parties[j].amount {
			return parties[i].amount > parties[j].amount
		}
		return parties[i].userID < parties[j].userID
	})
}
