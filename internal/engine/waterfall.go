package engine

import (
	"github.com/shopspring/decimal"

	"fund-model-lab/internal/domain"
)

// splitProceeds applies the configured waterfall type to a period's exit
// proceeds and returns the LP and GP shares.
//
// The type is a genuine dispatch point, but every branch currently routes
// 100% of proceeds to LPs: tier-by-tier carry math (preferred return,
// catch-up, carry split) is an extension point awaiting product
// clarification. The config's carry terms are carried through untouched so
// a future split stays config-compatible.
func splitProceeds(cfg domain.WaterfallConfig, proceeds decimal.Decimal) (lp, gp decimal.Decimal) {
	switch cfg.Type {
	case domain.WaterfallEuropean:
		return proceeds, decimal.Zero
	case domain.WaterfallAmerican:
		return proceeds, decimal.Zero
	case domain.WaterfallHybrid:
		return proceeds, decimal.Zero
	default:
		// Unreachable after input validation; route to LPs rather than
		// dropping proceeds.
		return proceeds, decimal.Zero
	}
}
