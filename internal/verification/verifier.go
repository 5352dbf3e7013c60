// Package verification checks the engine's determinism contract: two runs
// over identical inputs must produce identical period series and final
// metrics. Comparison is exact decimal equality — the contract is
// bit-identical output, so there is no tolerance.
package verification

import (
	"fmt"

	"github.com/shopspring/decimal"

	"fund-model-lab/internal/domain"
	"fund-model-lab/internal/engine"
)

// FieldDivergence records a mismatch between two results.
type FieldDivergence struct {
	Field    string
	Expected interface{}
	Actual   interface{}
}

// Report is the outcome of comparing two simulation results.
type Report struct {
	Match       bool
	Divergences []FieldDivergence
}

// VerifyDeterminism runs the engine twice over the same inputs and compares
// the deterministic payloads. Metadata timestamps are provenance, not part
// of the contract, and are not compared.
func VerifyDeterminism(e *engine.Engine, inputs domain.FundModelInputs) (*Report, error) {
	first, err := e.Run(inputs)
	if err != nil {
		return nil, fmt.Errorf("first run: %w", err)
	}
	second, err := e.Run(inputs)
	if err != nil {
		return nil, fmt.Errorf("second run: %w", err)
	}
	return CompareResults(first, second), nil
}

// CompareResults compares the deterministic payloads of two results field
// by field.
func CompareResults(expected, actual *domain.SimulationResult) *Report {
	var div []FieldDivergence

	if len(expected.Periods) != len(actual.Periods) {
		div = append(div, FieldDivergence{
			Field:    "Periods.length",
			Expected: len(expected.Periods),
			Actual:   len(actual.Periods),
		})
	} else {
		for i := range expected.Periods {
			div = append(div, comparePeriod(i, expected.Periods[i], actual.Periods[i])...)
		}
	}

	div = append(div, compareFinal(expected.Final, actual.Final)...)

	return &Report{Match: len(div) == 0, Divergences: div}
}

func comparePeriod(i int, e, a domain.PeriodResult) []FieldDivergence {
	var div []FieldDivergence
	prefix := fmt.Sprintf("Periods[%d].", i)

	addInt := func(field string, ev, av int) {
		if ev != av {
			div = append(div, FieldDivergence{Field: prefix + field, Expected: ev, Actual: av})
		}
	}
	addDec := func(field string, ev, av decimal.Decimal) {
		if !ev.Equal(av) {
			div = append(div, FieldDivergence{Field: prefix + field, Expected: ev, Actual: av})
		}
	}

	addInt("Period", e.Period, a.Period)
	addInt("Month", e.Month, a.Month)
	addDec("CapitalCalled", e.CapitalCalled, a.CapitalCalled)
	addDec("InvestedCapital", e.InvestedCapital, a.InvestedCapital)
	addDec("UninvestedCash", e.UninvestedCash, a.UninvestedCash)
	addDec("FeesPaid", e.FeesPaid, a.FeesPaid)
	addDec("ExitProceeds", e.ExitProceeds, a.ExitProceeds)
	addDec("LPDistributions", e.LPDistributions, a.LPDistributions)
	addDec("GPDistributions", e.GPDistributions, a.GPDistributions)
	addDec("NAV", e.NAV, a.NAV)
	addDec("TVPI", e.TVPI, a.TVPI)
	addDec("DPI", e.DPI, a.DPI)
	addDec("RVPI", e.RVPI, a.RVPI)
	addInt("ActiveCompanies", e.ActiveCompanies, a.ActiveCompanies)
	addInt("ExitedCompanies", e.ExitedCompanies, a.ExitedCompanies)
	addInt("FailedCompanies", e.FailedCompanies, a.FailedCompanies)

	if !decimalPtrEqual(e.IRR, a.IRR) {
		div = append(div, FieldDivergence{Field: prefix + "IRR", Expected: e.IRR, Actual: a.IRR})
	}

	return div
}

func compareFinal(e, a domain.FinalMetrics) []FieldDivergence {
	var div []FieldDivergence

	addDec := func(field string, ev, av decimal.Decimal) {
		if !ev.Equal(av) {
			div = append(div, FieldDivergence{Field: "Final." + field, Expected: ev, Actual: av})
		}
	}

	addDec("TVPI", e.TVPI, a.TVPI)
	addDec("DPI", e.DPI, a.DPI)
	addDec("RVPI", e.RVPI, a.RVPI)
	addDec("MOIC", e.MOIC, a.MOIC)
	addDec("TotalExitValue", e.TotalExitValue, a.TotalExitValue)
	addDec("TotalDistributed", e.TotalDistributed, a.TotalDistributed)
	if e.FundTermMonths != a.FundTermMonths {
		div = append(div, FieldDivergence{
			Field:    "Final.FundTermMonths",
			Expected: e.FundTermMonths,
			Actual:   a.FundTermMonths,
		})
	}
	if !decimalPtrEqual(e.IRR, a.IRR) {
		div = append(div, FieldDivergence{Field: "Final.IRR", Expected: e.IRR, Actual: a.IRR})
	}

	return div
}

func decimalPtrEqual(a, b *decimal.Decimal) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}
