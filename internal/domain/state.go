package domain

import "github.com/shopspring/decimal"

// FundState is the mutable accumulator for one simulation run. It is
// exclusively owned by a single engine invocation and never shared; the
// engine's statelessness contract across concurrent trials rests on that
// ownership. Every monetary field except UninvestedCash is monotonically
// non-decreasing.
type FundState struct {
	Period int
	Month  int

	CalledCapital   decimal.Decimal
	InvestedCapital decimal.Decimal
	UninvestedCash  decimal.Decimal
	FeesPaid        decimal.Decimal
	ExitProceeds    decimal.Decimal
	LPDistributions decimal.Decimal
	GPDistributions decimal.Decimal

	RecycledFromFees     decimal.Decimal
	RecycledFromProceeds decimal.Decimal

	Companies []*Company

	ActiveCompanies int
	ExitedCompanies int
	FailedCompanies int
}

// NewFundState builds the initial state around a deployed portfolio.
// All companies start Active with zero capital movement recorded.
func NewFundState(companies []*Company) *FundState {
	return &FundState{
		CalledCapital:        decimal.Zero,
		InvestedCapital:      decimal.Zero,
		UninvestedCash:       decimal.Zero,
		FeesPaid:             decimal.Zero,
		ExitProceeds:         decimal.Zero,
		LPDistributions:      decimal.Zero,
		GPDistributions:      decimal.Zero,
		RecycledFromFees:     decimal.Zero,
		RecycledFromProceeds: decimal.Zero,
		Companies:            companies,
		ActiveCompanies:      len(companies),
	}
}

// Uncalled returns the remaining uncalled commitment.
func (s *FundState) Uncalled(committed decimal.Decimal) decimal.Decimal {
	return committed.Sub(s.CalledCapital)
}

// ActiveCostBasis sums the invested cost of still-active cohorts.
func (s *FundState) ActiveCostBasis() decimal.Decimal {
	total := decimal.Zero
	for _, c := range s.Companies {
		if c.Active() {
			total = total.Add(c.TotalInvested)
		}
	}
	return total
}

// NAV is cost basis of active holdings plus uninvested cash. Marking
// active cohorts to fair market value is a deliberately separate,
// unimplemented extension.
func (s *FundState) NAV() decimal.Decimal {
	return s.ActiveCostBasis().Add(s.UninvestedCash)
}
