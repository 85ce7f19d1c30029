package ledger

import (
	"fmt"
	"math"
)

// SplitType selects how an expense amount is divided among participants.
type SplitType string

const (
	SplitEqual      SplitType = "equal"
	SplitPercentage SplitType = "percentage"
	SplitShares     SplitType = "shares"
	SplitExact      SplitType = "exact"
)

// SplitInput names one participant and the value driving their share:
// ignored for equal splits, a percentage for percentage splits, a share count
// for shares splits, and a currency amount for exact splits.
type SplitInput struct {
	UserID string  `json:"user_id"`
	Value  float64 `json:"value"`
}

// Split is one participant's computed share of an expense.
type Split struct {
	UserID     string  `json:"user_id"`
	Amount     float64 `json:"amount"`
	Percentage float64 `json:"percentage,omitempty"` // set for percentage splits
	Shares     float64 `json:"shares,omitempty"`     // set for shares splits
}

// CalculateSplits divides amount among the given participants according to
// splitType. All share amounts are rounded to 2 decimals; for equal splits the
// rounding remainder is assigned to the first participant so the shares always
// sum to the expense amount exactly.
func CalculateSplits(amount float64, splitType SplitType, inputs []SplitInput) ([]Split, error) {
	if len(inputs) == 0 {
		return nil, fmt.Errorf("at least one split participant required")
	}

	splits := make([]Split, 0, len(inputs))

	switch splitType {
	case SplitEqual:
		equalAmount := round2(amount / float64(len(inputs)))
		remainder := amount - equalAmount*float64(len(inputs))
		for i, in := range inputs {
			shareAmount := equalAmount
			if i == 0 {
				shareAmount = round2(shareAmount + remainder)
			}
			splits = append(splits, Split{UserID: in.UserID, Amount: shareAmount})
		}

	case SplitPercentage:
		var totalPercentage float64
		for _, in := range inputs {
			totalPercentage += in.Value
		}
		if math.Abs(totalPercentage-100) > Tolerance {
			return nil, fmt.Errorf("percentages must sum to 100, got %.2f", totalPercentage)
		}
		for _, in := range inputs {
			splits = append(splits, Split{
				UserID:     in.UserID,
				Amount:     round2(amount * (in.Value / 100)),
				Percentage: in.Value,
			})
		}

	case SplitShares:
		var totalShares float64
		for _, in := range inputs {
			totalShares += in.Value
		}
		if totalShares <= 0 {
			return nil, fmt.Errorf("total shares must be greater than 0")
		}
		for _, in := range inputs {
			splits = append(splits, Split{
				UserID: in.UserID,
				Amount: round2(amount * (in.Value / totalShares)),
				Shares: in.Value,
			})
		}

	case SplitExact:
		var totalExact float64
		for _, in := range inputs {
			totalExact += in.Value
		}
		if math.Abs(totalExact-amount) > Tolerance {
			return nil, fmt.Errorf("exact amounts must sum to %.2f, got %.2f", amount, totalExact)
		}
		for _, in := range inputs {
			splits = append(splits, Split{UserID: in.UserID, Amount: round2(in.Value)})
		}

	default:
		return nil, fmt.Errorf("unknown split type: %s", splitType)
	}

	return splits, nil
}
