package policy

import (
	"github.com/shopspring/decimal"

	"fund-model-lab/internal/domain"
)

var monthsPerYear = decimal.NewFromInt(12)

// FeeContext is the state snapshot a fee profile is evaluated against.
// FairMarketValue is the engine's current estimate (cost-basis NAV until
// FMV marking exists); UnrealizedCost is the active-cohort cost sum.
type FeeContext struct {
	CommittedCapital decimal.Decimal
	CalledThisPeriod decimal.Decimal
	CumulativeCalled decimal.Decimal
	LPDistributions  decimal.Decimal
	InvestedCapital  decimal.Decimal
	FairMarketValue  decimal.Decimal
	UnrealizedCost   decimal.Decimal
	Month            int
	PeriodMonths     int
}

// EvaluateFees returns total management fees owed this period. Each tier
// active in the current month contributes basis × annualRate, prorated by
// the period's share of a year; inactive tiers contribute zero.
func EvaluateFees(cfg domain.FeeProfileConfig, ctx FeeContext) decimal.Decimal {
	periodShare := domain.Div(decimal.NewFromInt(int64(ctx.PeriodMonths)), monthsPerYear)

	total := decimal.Zero
	for _, tier := range cfg.Tiers {
		if !tier.ActiveAt(ctx.Month) {
			continue
		}
		basis := basisAmount(tier.Basis, ctx)
		if basis.IsNegative() {
			// A basis can go negative (e.g. called net of returns once
			// distributions exceed calls); fees never go negative.
			continue
		}
		total = total.Add(basis.Mul(tier.AnnualRate).Mul(periodShare))
	}
	return total
}

// basisAmount resolves a fee basis against the context snapshot.
func basisAmount(b domain.FeeBasis, ctx FeeContext) decimal.Decimal {
	switch b {
	case domain.BasisCommittedCapital:
		return ctx.CommittedCapital
	case domain.BasisCalledPeriod:
		return ctx.CalledThisPeriod
	case domain.BasisCumulativeCalled:
		return ctx.CumulativeCalled
	case domain.BasisNetCalled:
		return ctx.CumulativeCalled.Sub(ctx.LPDistributions)
	case domain.BasisInvestedCapital:
		return ctx.InvestedCapital
	case domain.BasisFairMarketValue:
		return ctx.FairMarketValue
	case domain.BasisUnrealizedCost:
		return ctx.UnrealizedCost
	default:
		return decimal.Zero
	}
}
