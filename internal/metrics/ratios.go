// Package metrics derives per-period and terminal fund performance ratios
// from accumulated state, and provides the percentile math used to band
// Monte Carlo distributions.
package metrics

import (
	"github.com/shopspring/decimal"

	"fund-model-lab/internal/domain"
)

// Ratios holds the per-period KPI triple. RVPI is derived as TVPI − DPI so
// the identity TVPI == DPI + RVPI holds exactly by construction.
type Ratios struct {
	TVPI decimal.Decimal
	DPI  decimal.Decimal
	RVPI decimal.Decimal
}

// Compute evaluates the KPI triple from cumulative state. Zero called
// capital resolves every ratio to zero by convention.
func Compute(lpDistributions, nav, calledCapital decimal.Decimal) Ratios {
	tvpi := domain.Ratio(lpDistributions.Add(nav), calledCapital)
	dpi := domain.Ratio(lpDistributions, calledCapital)
	return Ratios{
		TVPI: tvpi,
		DPI:  dpi,
		RVPI: tvpi.Sub(dpi),
	}
}

// Final assembles terminal metrics from the closing state. MOIC equals
// final TVPI in the simplified model; IRR is filled in by the driver only
// when a solver is plugged in.
func Final(state *domain.FundState, totalExitValue decimal.Decimal, fundTermMonths int) domain.FinalMetrics {
	r := Compute(state.LPDistributions, state.NAV(), state.CalledCapital)
	return domain.FinalMetrics{
		TVPI:             r.TVPI,
		DPI:              r.DPI,
		RVPI:             r.RVPI,
		MOIC:             r.TVPI,
		TotalExitValue:   totalExitValue,
		TotalDistributed: state.LPDistributions.Add(state.GPDistributions),
		FundTermMonths:   fundTermMonths,
	}
}
