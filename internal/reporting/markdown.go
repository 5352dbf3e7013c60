// Package reporting renders simulation and batch results as Markdown.
package reporting

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"fund-model-lab/internal/domain"
	"fund-model-lab/internal/harness"
	"fund-model-lab/internal/metrics"
)

// RenderRun renders a single simulation result as Markdown: an inputs
// recap, the final metrics, and the full period table.
func RenderRun(r *domain.SimulationResult) string {
	var sb strings.Builder

	sb.WriteString("# Fund Model Run\n\n")
	sb.WriteString(fmt.Sprintf("Model version: %s | Computed: %s\n\n",
		r.Meta.ModelVersion, r.Meta.ComputedAt.Format(time.RFC3339)))

	sb.WriteString("## Inputs\n\n")
	sb.WriteString("| Parameter | Value |\n")
	sb.WriteString("|-----------|-------|\n")
	sb.WriteString(fmt.Sprintf("| Committed Capital | %s |\n", r.Inputs.CommittedCapital))
	sb.WriteString(fmt.Sprintf("| Fund Term (months) | %d |\n", r.Inputs.FundTermMonths))
	sb.WriteString(fmt.Sprintf("| Period Length (months) | %d |\n", r.Inputs.PeriodMonths))
	sb.WriteString(fmt.Sprintf("| Portfolio Size | %s |\n", r.Inputs.StageProfile.InitialPortfolioSize))
	sb.WriteString(fmt.Sprintf("| Stages | %d |\n", len(r.Inputs.StageProfile.Stages)))
	sb.WriteString(fmt.Sprintf("| Capital Call Policy | %s |\n", r.Inputs.CapitalCallPolicy.Kind))
	sb.WriteString(fmt.Sprintf("| Waterfall | %s |\n", r.Inputs.Waterfall.Type))
	sb.WriteString("\n")

	sb.WriteString("## Final Metrics\n\n")
	sb.WriteString("| Metric | Value |\n")
	sb.WriteString("|--------|-------|\n")
	sb.WriteString(fmt.Sprintf("| TVPI | %s |\n", r.Final.TVPI))
	sb.WriteString(fmt.Sprintf("| DPI | %s |\n", r.Final.DPI))
	sb.WriteString(fmt.Sprintf("| RVPI | %s |\n", r.Final.RVPI))
	sb.WriteString(fmt.Sprintf("| MOIC | %s |\n", r.Final.MOIC))
	sb.WriteString(fmt.Sprintf("| IRR | %s |\n", irrCell(r.Final.IRR)))
	sb.WriteString(fmt.Sprintf("| Total Exit Value | %s |\n", r.Final.TotalExitValue))
	sb.WriteString(fmt.Sprintf("| Total Distributed | %s |\n", r.Final.TotalDistributed))
	sb.WriteString(fmt.Sprintf("| Fund Term (months) | %d |\n", r.Final.FundTermMonths))
	sb.WriteString("\n")

	sb.WriteString("## Period Series\n\n")
	sb.WriteString("| Period | Month | Called | Fees | Proceeds | LP Dist | NAV | TVPI | DPI | RVPI | Active | Exited | Failed |\n")
	sb.WriteString("|--------|-------|--------|------|----------|---------|-----|------|-----|------|--------|--------|--------|\n")
	for _, p := range r.Periods {
		sb.WriteString(fmt.Sprintf("| %d | %d | %s | %s | %s | %s | %s | %s | %s | %s | %d | %d | %d |\n",
			p.Period, p.Month,
			p.CapitalCalled, p.FeesPaid, p.ExitProceeds, p.LPDistributions,
			p.NAV, p.TVPI, p.DPI, p.RVPI,
			p.ActiveCompanies, p.ExitedCompanies, p.FailedCompanies))
	}
	sb.WriteString("\n")

	return sb.String()
}

// RenderBatch renders a Monte Carlo batch summary as Markdown.
func RenderBatch(s harness.BatchSummary) string {
	var sb strings.Builder

	sb.WriteString("# Monte Carlo Batch Summary\n\n")
	sb.WriteString(fmt.Sprintf("Trials: %d | Succeeded: %d | Failed: %d\n\n",
		s.Trials, s.Succeeded, s.Failed))

	sb.WriteString("## Percentile Bands\n\n")
	sb.WriteString("| Metric | Min | P10 | P25 | P50 | P75 | P90 | Max | Mean |\n")
	sb.WriteString("|--------|-----|-----|-----|-----|-----|-----|-----|------|\n")
	sb.WriteString(bandRow("TVPI", s.TVPI))
	sb.WriteString(bandRow("DPI", s.DPI))
	sb.WriteString(bandRow("MOIC", s.MOIC))
	sb.WriteString(bandRow("Total Distributed", s.TotalDistributed))
	sb.WriteString("\n")

	if len(s.Errors) > 0 {
		sb.WriteString("## Trial Errors\n\n")
		for _, e := range s.Errors {
			sb.WriteString(fmt.Sprintf("- %s\n", e))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

func bandRow(name string, d metrics.Distribution) string {
	return fmt.Sprintf("| %s | %s | %s | %s | %s | %s | %s | %s | %s |\n",
		name, d.Min, d.P10, d.P25, d.P50, d.P75, d.P90, d.Max, d.Mean)
}

func irrCell(irr *decimal.Decimal) string {
	if irr == nil {
		return "n/a (no solver)"
	}
	return irr.String()
}
