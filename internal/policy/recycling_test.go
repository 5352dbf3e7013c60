package policy

import (
	"testing"

	"github.com/shopspring/decimal"

	"fund-model-lab/internal/domain"
)

func recyclingCfg() domain.RecyclingPolicyConfig {
	return domain.RecyclingPolicyConfig{
		Enabled:         true,
		RecycleFees:     true,
		RecycleProceeds: true,
		TermMonths:      60,
	}
}

func recyclingCtx() RecyclingContext {
	return RecyclingContext{
		CommittedCapital:     dec("100000000"),
		FeesPaid:             dec("2000000"),
		ExitProceeds:         dec("10000000"),
		RecycledFromFees:     decimal.Zero,
		RecycledFromProceeds: decimal.Zero,
		Month:                12,
	}
}

func TestRecycling_BothSourcesUncapped(t *testing.T) {
	got := EvaluateRecycling(recyclingCfg(), recyclingCtx())

	if !got.FromFees.Equal(dec("2000000")) {
		t.Errorf("expected 2000000 from fees, got %s", got.FromFees)
	}
	if !got.FromProceeds.Equal(dec("10000000")) {
		t.Errorf("expected 10000000 from proceeds, got %s", got.FromProceeds)
	}
	if !got.Total().Equal(dec("12000000")) {
		t.Errorf("expected total 12000000, got %s", got.Total())
	}
}

func TestRecycling_OnlyNewAmounts(t *testing.T) {
	// Already-recycled amounts are excluded so repeated evaluation never
	// double counts a source.
	ctx := recyclingCtx()
	ctx.RecycledFromFees = dec("1500000")
	ctx.RecycledFromProceeds = dec("10000000")

	got := EvaluateRecycling(recyclingCfg(), ctx)
	if !got.FromFees.Equal(dec("500000")) {
		t.Errorf("expected 500000 newly from fees, got %s", got.FromFees)
	}
	if !got.FromProceeds.IsZero() {
		t.Errorf("expected zero newly from proceeds, got %s", got.FromProceeds)
	}
}

func TestRecycling_CapBindsFeesFirst(t *testing.T) {
	// Cap 3% of 100M = 3M. Fees (2M) are consumed first, leaving 1M of
	// cap headroom for proceeds.
	cfg := recyclingCfg()
	cfg.CapFraction = dec("0.03")

	got := EvaluateRecycling(cfg, recyclingCtx())
	if !got.FromFees.Equal(dec("2000000")) {
		t.Errorf("expected 2000000 from fees, got %s", got.FromFees)
	}
	if !got.FromProceeds.Equal(dec("1000000")) {
		t.Errorf("expected proceeds clamped to 1000000, got %s", got.FromProceeds)
	}
}

func TestRecycling_CapExhausted(t *testing.T) {
	cfg := recyclingCfg()
	cfg.CapFraction = dec("0.03")

	ctx := recyclingCtx()
	ctx.RecycledFromFees = dec("2000000")
	ctx.RecycledFromProceeds = dec("1000000")

	got := EvaluateRecycling(cfg, ctx)
	if !got.Total().IsZero() {
		t.Errorf("expected nothing once cap is exhausted, got %s", got.Total())
	}
}

func TestRecycling_SingleSource(t *testing.T) {
	cfg := recyclingCfg()
	cfg.RecycleProceeds = false

	got := EvaluateRecycling(cfg, recyclingCtx())
	if !got.FromFees.Equal(dec("2000000")) {
		t.Errorf("expected fees recycled, got %s", got.FromFees)
	}
	if !got.FromProceeds.IsZero() {
		t.Errorf("proceeds source disabled, got %s", got.FromProceeds)
	}
}

func TestRecycling_Eligibility(t *testing.T) {
	cfg := recyclingCfg()

	if !Eligible(&cfg, 0) {
		t.Error("month 0 should be eligible")
	}
	if !Eligible(&cfg, 59) {
		t.Error("month 59 should be eligible")
	}
	if Eligible(&cfg, 60) {
		t.Error("month 60 is past the term, must be ineligible")
	}

	cfg.Enabled = false
	if Eligible(&cfg, 0) {
		t.Error("disabled policy must be ineligible")
	}

	if Eligible(nil, 0) {
		t.Error("absent policy must be ineligible")
	}
}
