package auction

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// IncrementTier applies Step to any price up to and including UpTo. A zero
// UpTo marks the open-ended top tier.
type IncrementTier struct {
	UpTo decimal.Decimal `json:"up_to"`
	Step decimal.Decimal `json:"step"`
}

// IncrementSchedule is the tiered bid increment table. Steps are strictly
// positive, which is what bounds every bidding round.
type IncrementSchedule []IncrementTier

// DefaultIncrementSchedule mirrors the raises used at the real auction table,
// in Crores: 5 lakh steps up to 1 Cr, 10 lakh to 3 Cr, 20 lakh to 10 Cr and
// 50 lakh beyond.
func DefaultIncrementSchedule() IncrementSchedule {
	tier := func(upTo, step string) IncrementTier {
		return IncrementTier{
			UpTo: decimal.RequireFromString(upTo),
			Step: decimal.RequireFromString(step),
		}
	}
	return IncrementSchedule{
		tier("1", "0.05"),
		tier("3", "0.1"),
		tier("10", "0.2"),
		{Step: decimal.RequireFromString("0.5")},
	}
}

// Validate checks that tiers ascend and every step is positive.
func (s IncrementSchedule) Validate() error {
	if len(s) == 0 {
		return fmt.Errorf("increment schedule is empty")
	}
	prev := decimal.Zero
	for i, t := range s {
		if !t.Step.IsPositive() {
			return fmt.Errorf("increment tier %d: step must be positive, got %s", i, t.Step)
		}
		if t.UpTo.IsZero() {
			if i != len(s)-1 {
				return fmt.Errorf("increment tier %d: only the last tier may be open-ended", i)
			}
			continue
		}
		if t.UpTo.LessThanOrEqual(prev) {
			return fmt.Errorf("increment tier %d: bounds must ascend, got %s after %s", i, t.UpTo, prev)
		}
		prev = t.UpTo
	}
	if !s[len(s)-1].UpTo.IsZero() {
		return fmt.Errorf("last increment tier must be open-ended")
	}
	return nil
}

// StepAt returns the raise step that applies at the given price.
func (s IncrementSchedule) StepAt(price decimal.Decimal) decimal.Decimal {
	for _, t := range s {
		if t.UpTo.IsZero() || price.LessThanOrEqual(t.UpTo) {
			return t.Step
		}
	}
	return s[len(s)-1].Step
}

// Next returns the minimum admissible bid above price.
func (s IncrementSchedule) Next(price decimal.Decimal) decimal.Decimal {
	return price.Add(s.StepAt(price)).Round(2)
}
