package reporting

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"fund-model-lab/internal/domain"
	"fund-model-lab/internal/harness"
	"fund-model-lab/internal/metrics"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func sampleResult() *domain.SimulationResult {
	return &domain.SimulationResult{
		Inputs: domain.FundModelInputs{
			CommittedCapital: dec("100000000"),
			FundTermMonths:   24,
			PeriodMonths:     3,
			StageProfile: domain.StageProfile{
				InitialPortfolioSize: dec("10"),
				Stages:               []domain.StageDefinition{{Name: "seed"}},
			},
			CapitalCallPolicy: domain.CapitalCallPolicyConfig{Kind: domain.CallUpfront},
			Waterfall:         domain.WaterfallConfig{Type: domain.WaterfallEuropean},
		},
		Periods: []domain.PeriodResult{
			{Period: 0, Month: 0, CapitalCalled: dec("100000000"), NAV: dec("100000000"), TVPI: dec("1"), ActiveCompanies: 10},
			{Period: 8, Month: 24, ExitProceeds: dec("12000000"), LPDistributions: dec("12000000"), NAV: dec("80000000"), TVPI: dec("0.92"), DPI: dec("0.12"), RVPI: dec("0.8"), ExitedCompanies: 10},
		},
		Final: domain.FinalMetrics{
			TVPI:             dec("0.92"),
			DPI:              dec("0.12"),
			RVPI:             dec("0.8"),
			MOIC:             dec("0.92"),
			TotalExitValue:   dec("60000000"),
			TotalDistributed: dec("12000000"),
			FundTermMonths:   24,
		},
		Meta: domain.Metadata{
			ModelVersion: "1.2.0",
			ComputedAt:   time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC),
		},
	}
}

func TestRenderRun_Sections(t *testing.T) {
	out := RenderRun(sampleResult())

	require.Contains(t, out, "# Fund Model Run")
	require.Contains(t, out, "Model version: 1.2.0")
	require.Contains(t, out, "## Inputs")
	require.Contains(t, out, "| Committed Capital | 100000000 |")
	require.Contains(t, out, "| Capital Call Policy | UPFRONT |")
	require.Contains(t, out, "## Final Metrics")
	require.Contains(t, out, "| TVPI | 0.92 |")
	require.Contains(t, out, "| MOIC | 0.92 |")
	require.Contains(t, out, "## Period Series")

	// One table row per period.
	require.Contains(t, out, "| 8 | 24 |")
}

func TestRenderRun_IRRCell(t *testing.T) {
	r := sampleResult()
	out := RenderRun(r)
	require.Contains(t, out, "| IRR | n/a (no solver) |")

	rate := dec("0.1525")
	r.Final.IRR = &rate
	out = RenderRun(r)
	require.Contains(t, out, "| IRR | 0.1525 |")
	require.NotContains(t, out, "n/a (no solver)")
}

func TestRenderBatch_BandsAndErrors(t *testing.T) {
	s := harness.BatchSummary{
		Trials:    10,
		Succeeded: 9,
		Failed:    1,
		TVPI: metrics.Distribution{
			Count: 9,
			Min:   dec("0.5"), P10: dec("0.6"), P25: dec("0.8"), P50: dec("1.1"),
			P75: dec("1.6"), P90: dec("2.2"), Max: dec("3"), Mean: dec("1.3"),
		},
		Errors: []string{"irr solver: no sign change"},
	}

	out := RenderBatch(s)
	require.Contains(t, out, "# Monte Carlo Batch Summary")
	require.Contains(t, out, "Trials: 10 | Succeeded: 9 | Failed: 1")
	require.Contains(t, out, "| TVPI | 0.5 | 0.6 | 0.8 | 1.1 | 1.6 | 2.2 | 3 | 1.3 |")
	require.Contains(t, out, "## Trial Errors")
	require.Contains(t, out, "- irr solver: no sign change")
}

func TestRenderBatch_NoErrorsSectionWhenClean(t *testing.T) {
	out := RenderBatch(harness.BatchSummary{Trials: 5, Succeeded: 5})
	require.NotContains(t, out, "## Trial Errors")
	require.True(t, strings.HasSuffix(out, "\n"))
}
