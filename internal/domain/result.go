package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PeriodResult is the immutable snapshot emitted once per period.
type PeriodResult struct {
	Period int `json:"period"`
	Month  int `json:"month"`

	CapitalCalled   decimal.Decimal `json:"capitalCalled"`
	InvestedCapital decimal.Decimal `json:"investedCapital"`
	UninvestedCash  decimal.Decimal `json:"uninvestedCash"`
	FeesPaid        decimal.Decimal `json:"feesPaid"`
	ExitProceeds    decimal.Decimal `json:"exitProceeds"`
	LPDistributions decimal.Decimal `json:"lpDistributions"`
	GPDistributions decimal.Decimal `json:"gpDistributions"`

	NAV  decimal.Decimal  `json:"nav"`
	TVPI decimal.Decimal  `json:"tvpi"`
	DPI  decimal.Decimal  `json:"dpi"`
	RVPI decimal.Decimal  `json:"rvpi"`
	IRR  *decimal.Decimal `json:"irr,omitempty"`

	ActiveCompanies int `json:"activeCompanies"`
	ExitedCompanies int `json:"exitedCompanies"`
	FailedCompanies int `json:"failedCompanies"`
}

// FinalMetrics holds terminal fund performance. IRR is nil when no solver
// is plugged in: explicitly absent beats silently wrong.
type FinalMetrics struct {
	TVPI decimal.Decimal  `json:"tvpi"`
	DPI  decimal.Decimal  `json:"dpi"`
	RVPI decimal.Decimal  `json:"rvpi"`
	MOIC decimal.Decimal  `json:"moic"`
	IRR  *decimal.Decimal `json:"irr,omitempty"`

	TotalExitValue   decimal.Decimal `json:"totalExitValue"`
	TotalDistributed decimal.Decimal `json:"totalDistributed"`
	FundTermMonths   int             `json:"fundTermMonths"`
}

// Metadata records provenance of a computation.
type Metadata struct {
	ModelVersion string    `json:"modelVersion"`
	ComputedAt   time.Time `json:"computedAt"`
}

// SimulationResult is the engine's full return value: the original inputs
// for provenance, the ordered period series, terminal metrics and metadata.
type SimulationResult struct {
	Inputs  FundModelInputs `json:"inputs"`
	Periods []PeriodResult  `json:"periods"`
	Final   FinalMetrics    `json:"finalMetrics"`
	Meta    Metadata        `json:"metadata"`
}
