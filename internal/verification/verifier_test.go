package verification

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"fund-model-lab/internal/domain"
	"fund-model-lab/internal/engine"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func testInputs() domain.FundModelInputs {
	return domain.FundModelInputs{
		CommittedCapital: dec("50000000"),
		FundTermMonths:   36,
		PeriodMonths:     3,
		StageProfile: domain.StageProfile{
			InitialPortfolioSize: dec("8"),
			Stages: []domain.StageDefinition{
				{Name: "seed", RoundSize: dec("1000000"), PostMoney: dec("5000000"), ExitMultiple: dec("4"), MonthsToExit: 24},
				{Name: "series-a", RoundSize: dec("3000000"), PostMoney: dec("15000000"), ExitMultiple: dec("2"), MonthsToExit: 36},
			},
		},
		CapitalCallPolicy: domain.CapitalCallPolicyConfig{Kind: domain.CallEven, CallWindowMonths: 12},
		FeeProfile: domain.FeeProfileConfig{
			Tiers: []domain.FeeTier{{Basis: domain.BasisCommittedCapital, AnnualRate: dec("0.02")}},
		},
		Waterfall: domain.WaterfallConfig{Type: domain.WaterfallEuropean},
	}
}

func newEngine() *engine.Engine {
	return engine.New(engine.Options{
		Clock: func() time.Time { return time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC) },
	})
}

func TestVerifyDeterminism_IdenticalRuns(t *testing.T) {
	report, err := VerifyDeterminism(newEngine(), testInputs())
	require.NoError(t, err)
	require.True(t, report.Match, "divergences: %+v", report.Divergences)
	require.Empty(t, report.Divergences)
}

func TestVerifyDeterminism_InvalidInputs(t *testing.T) {
	inputs := testInputs()
	inputs.PeriodMonths = 0

	_, err := VerifyDeterminism(newEngine(), inputs)
	require.Error(t, err)
	require.ErrorIs(t, err, domain.ErrZeroPeriodLength)
}

func TestCompareResults_DetectsTamperedPeriodField(t *testing.T) {
	eng := newEngine()
	expected, err := eng.Run(testInputs())
	require.NoError(t, err)
	actual, err := eng.Run(testInputs())
	require.NoError(t, err)

	actual.Periods[3].NAV = actual.Periods[3].NAV.Add(dec("0.000000000001"))

	report := CompareResults(expected, actual)
	require.False(t, report.Match)
	require.Len(t, report.Divergences, 1)
	require.Equal(t, "Periods[3].NAV", report.Divergences[0].Field)
}

func TestCompareResults_DetectsTamperedFinalMetrics(t *testing.T) {
	eng := newEngine()
	expected, err := eng.Run(testInputs())
	require.NoError(t, err)
	actual, err := eng.Run(testInputs())
	require.NoError(t, err)

	actual.Final.TVPI = actual.Final.TVPI.Add(dec("1"))
	actual.Final.FundTermMonths = 48

	report := CompareResults(expected, actual)
	require.False(t, report.Match)

	fields := make([]string, 0, len(report.Divergences))
	for _, d := range report.Divergences {
		fields = append(fields, d.Field)
	}
	require.Contains(t, fields, "Final.TVPI")
	require.Contains(t, fields, "Final.FundTermMonths")
}

func TestCompareResults_PeriodCountMismatch(t *testing.T) {
	eng := newEngine()
	expected, err := eng.Run(testInputs())
	require.NoError(t, err)
	actual, err := eng.Run(testInputs())
	require.NoError(t, err)

	actual.Periods = actual.Periods[:len(actual.Periods)-1]

	report := CompareResults(expected, actual)
	require.False(t, report.Match)
	require.Equal(t, "Periods.length", report.Divergences[0].Field)
}

func TestCompareResults_IRRPresenceMismatch(t *testing.T) {
	eng := newEngine()
	expected, err := eng.Run(testInputs())
	require.NoError(t, err)
	actual, err := eng.Run(testInputs())
	require.NoError(t, err)

	rate := dec("0.15")
	actual.Final.IRR = &rate

	report := CompareResults(expected, actual)
	require.False(t, report.Match)
	require.Equal(t, "Final.IRR", report.Divergences[0].Field)
}

func TestCompareResults_MetadataNotCompared(t *testing.T) {
	eng := newEngine()
	expected, err := eng.Run(testInputs())
	require.NoError(t, err)
	actual, err := eng.Run(testInputs())
	require.NoError(t, err)

	actual.Meta.ComputedAt = actual.Meta.ComputedAt.Add(time.Hour)
	actual.Meta.ModelVersion = "tampered"

	report := CompareResults(expected, actual)
	require.True(t, report.Match, "metadata is provenance, not contract")
}
