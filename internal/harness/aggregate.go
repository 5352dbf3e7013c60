package harness

import (
	"github.com/shopspring/decimal"

	"fund-model-lab/internal/metrics"
)

// BatchSummary aggregates a batch's final metrics into percentile bands.
type BatchSummary struct {
	Trials    int `json:"trials"`
	Succeeded int `json:"succeeded"`
	Failed    int `json:"failed"`

	TVPI             metrics.Distribution `json:"tvpi"`
	DPI              metrics.Distribution `json:"dpi"`
	MOIC             metrics.Distribution `json:"moic"`
	TotalDistributed metrics.Distribution `json:"totalDistributed"`

	Errors []string `json:"errors,omitempty"`
}

// SummarizeBatch bands the final metrics of the successful trials and
// collects error messages of the failed ones, in trial order.
func SummarizeBatch(responses []TrialResponse) BatchSummary {
	summary := BatchSummary{Trials: len(responses)}

	var tvpi, dpi, moic, distributed []decimal.Decimal
	for _, resp := range responses {
		if resp.Kind != KindResult || resp.Result == nil {
			summary.Failed++
			summary.Errors = append(summary.Errors, resp.Error)
			continue
		}
		summary.Succeeded++
		final := resp.Result.Final
		tvpi = append(tvpi, final.TVPI)
		dpi = append(dpi, final.DPI)
		moic = append(moic, final.MOIC)
		distributed = append(distributed, final.TotalDistributed)
	}

	summary.TVPI = metrics.Summarize(tvpi)
	summary.DPI = metrics.Summarize(dpi)
	summary.MOIC = metrics.Summarize(moic)
	summary.TotalDistributed = metrics.Summarize(distributed)
	return summary
}
