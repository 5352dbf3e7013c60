package policy

import (
	"github.com/shopspring/decimal"

	"fund-model-lab/internal/domain"
)

// RecyclingContext is the state snapshot a recycling policy sees.
type RecyclingContext struct {
	CommittedCapital     decimal.Decimal
	FeesPaid             decimal.Decimal
	ExitProceeds         decimal.Decimal
	RecycledFromFees     decimal.Decimal
	RecycledFromProceeds decimal.Decimal
	Month                int
}

// RecycledAmounts is the evaluator's split result, tracked by source so
// future cap and eligibility checks stay accurate.
type RecycledAmounts struct {
	FromFees     decimal.Decimal
	FromProceeds decimal.Decimal
}

// Total returns the combined newly recycled amount.
func (r RecycledAmounts) Total() decimal.Decimal {
	return r.FromFees.Add(r.FromProceeds)
}

// Eligible reports whether the policy applies in the given month. The loop
// only invokes the evaluator when this holds.
func Eligible(cfg *domain.RecyclingPolicyConfig, month int) bool {
	return cfg != nil && cfg.Enabled && month < cfg.TermMonths
}

// EvaluateRecycling returns the amount newly available to recycle this
// period, split by source. Un-recycled fee income is consumed before exit
// proceeds when a cap binds.
func EvaluateRecycling(cfg domain.RecyclingPolicyConfig, ctx RecyclingContext) RecycledAmounts {
	out := RecycledAmounts{FromFees: decimal.Zero, FromProceeds: decimal.Zero}

	capRemaining := decimal.Decimal{}
	capped := cfg.CapFraction.IsPositive()
	if capped {
		cap := ctx.CommittedCapital.Mul(cfg.CapFraction)
		capRemaining = cap.Sub(ctx.RecycledFromFees).Sub(ctx.RecycledFromProceeds)
		if !capRemaining.IsPositive() {
			return out
		}
	}

	if cfg.RecycleFees {
		available := ctx.FeesPaid.Sub(ctx.RecycledFromFees)
		if available.IsPositive() {
			if capped && available.GreaterThan(capRemaining) {
				available = capRemaining
			}
			out.FromFees = available
			if capped {
				capRemaining = capRemaining.Sub(available)
			}
		}
	}

	if cfg.RecycleProceeds {
		available := ctx.ExitProceeds.Sub(ctx.RecycledFromProceeds)
		if available.IsPositive() {
			if capped && available.GreaterThan(capRemaining) {
				available = capRemaining
			}
			if available.IsPositive() {
				out.FromProceeds = available
			}
		}
	}

	return out
}
