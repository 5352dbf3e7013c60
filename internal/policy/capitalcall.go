// Package policy implements the three pure policy evaluators the period
// loop consults: capital calls, management fees and recycling. Each family
// is a closed set of tagged variants dispatched by a single evaluator over
// an immutable config plus a small context snapshot. Adding a variant means
// extending one enumeration and one switch, not a type hierarchy.
package policy

import (
	"github.com/shopspring/decimal"

	"fund-model-lab/internal/domain"
)

// CallContext is the state snapshot a capital call policy sees.
type CallContext struct {
	CommittedCapital decimal.Decimal
	CalledCapital    decimal.Decimal
	Uncalled         decimal.Decimal
	Month            int
	PeriodMonths     int
}

// EvaluateCapitalCall returns the amount called this period. Policies use
// cumulative-target semantics: they compute how much should have been
// called by the end of this period and return the delta against what has
// been called so far. The result may be treated as approximate; the loop
// clamps it to the remaining uncalled commitment.
func EvaluateCapitalCall(cfg domain.CapitalCallPolicyConfig, ctx CallContext) decimal.Decimal {
	var target decimal.Decimal

	switch cfg.Kind {
	case domain.CallUpfront:
		target = ctx.CommittedCapital

	case domain.CallEven:
		elapsed := ctx.Month + ctx.PeriodMonths
		if elapsed >= cfg.CallWindowMonths {
			target = ctx.CommittedCapital
		} else {
			share := domain.Div(
				decimal.NewFromInt(int64(elapsed)),
				decimal.NewFromInt(int64(cfg.CallWindowMonths)),
			)
			target = ctx.CommittedCapital.Mul(share)
		}

	case domain.CallScheduled:
		due := decimal.Zero
		for _, e := range cfg.Schedule {
			if e.Month <= ctx.Month {
				due = due.Add(e.Fraction)
			}
		}
		target = ctx.CommittedCapital.Mul(due)

	default:
		return decimal.Zero
	}

	call := target.Sub(ctx.CalledCapital)
	if call.IsNegative() {
		return decimal.Zero
	}
	return call
}
