package engine

import (
	"github.com/shopspring/decimal"
)

// CashFlow is one entry of the fund's net LP cash-flow series: capital
// calls negative, distributions positive, terminal NAV appended as the
// closing inflow.
type CashFlow struct {
	Month  int             `json:"month"`
	Amount decimal.Decimal `json:"amount"`
}

// IRRSolver is the pluggable cash-flow rate solver. The engine calls it
// once at the end of a run when supplied; it never embeds a root-finding
// algorithm of its own. A nil rate means the solver could not produce one
// (e.g. no sign change), and the IRR field stays absent.
type IRRSolver func(flows []CashFlow) (*decimal.Decimal, error)
