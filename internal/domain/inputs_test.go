package domain

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func validInputs() FundModelInputs {
	return FundModelInputs{
		CommittedCapital: dec("100000000"),
		FundTermMonths:   120,
		PeriodMonths:     3,
		StageProfile: StageProfile{
			InitialPortfolioSize: dec("20"),
			Stages: []StageDefinition{
				{Name: "seed", RoundSize: dec("2000000"), PostMoney: dec("10000000"), ExitMultiple: dec("3"), MonthsToExit: 60},
			},
		},
		CapitalCallPolicy: CapitalCallPolicyConfig{Kind: CallUpfront},
		FeeProfile: FeeProfileConfig{
			Tiers: []FeeTier{{Basis: BasisCommittedCapital, AnnualRate: dec("0.02")}},
		},
		Waterfall: WaterfallConfig{Type: WaterfallEuropean},
	}
}

func TestValidate_AcceptsWellFormedInputs(t *testing.T) {
	if err := validInputs().Validate(); err != nil {
		t.Fatalf("expected valid inputs, got %v", err)
	}
}

func TestValidate_ZeroCommittedIsAllowed(t *testing.T) {
	// A zero-commitment fund is a documented edge case (ratios resolve to
	// zero), not a validation error.
	in := validInputs()
	in.CommittedCapital = decimal.Zero
	if err := in.Validate(); err != nil {
		t.Fatalf("zero committed capital should validate, got %v", err)
	}
}

func TestValidate_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*FundModelInputs)
		wantErr error
	}{
		{"negative committed", func(in *FundModelInputs) { in.CommittedCapital = dec("-1") }, ErrNegativeCommitted},
		{"zero fund term", func(in *FundModelInputs) { in.FundTermMonths = 0 }, ErrZeroFundTerm},
		{"zero period length", func(in *FundModelInputs) { in.PeriodMonths = 0 }, ErrZeroPeriodLength},
		{"empty stage list", func(in *FundModelInputs) { in.StageProfile.Stages = nil }, ErrEmptyStageList},
		{"duplicate stage name", func(in *FundModelInputs) {
			in.StageProfile.Stages = append(in.StageProfile.Stages, in.StageProfile.Stages[0])
		}, ErrDuplicateStageName},
		{"empty stage name", func(in *FundModelInputs) { in.StageProfile.Stages[0].Name = "" }, ErrEmptyStageName},
		{"zero post-money", func(in *FundModelInputs) { in.StageProfile.Stages[0].PostMoney = decimal.Zero }, ErrInvalidPostMoney},
		{"negative exit multiple", func(in *FundModelInputs) { in.StageProfile.Stages[0].ExitMultiple = dec("-1") }, ErrNegativeExitMult},
		{"negative months to exit", func(in *FundModelInputs) { in.StageProfile.Stages[0].MonthsToExit = -1 }, ErrNegativeExitMonths},
		{"negative stage weight", func(in *FundModelInputs) { in.StageProfile.Stages[0].Weight = dec("-0.5") }, ErrNegativeStageWeight},
		{"unknown call policy", func(in *FundModelInputs) { in.CapitalCallPolicy.Kind = "MAGIC" }, ErrUnknownCallPolicy},
		{"even without window", func(in *FundModelInputs) {
			in.CapitalCallPolicy = CapitalCallPolicyConfig{Kind: CallEven}
		}, ErrMissingCallWindow},
		{"scheduled without entries", func(in *FundModelInputs) {
			in.CapitalCallPolicy = CapitalCallPolicyConfig{Kind: CallScheduled}
		}, ErrEmptyCallSchedule},
		{"empty fee profile", func(in *FundModelInputs) { in.FeeProfile.Tiers = nil }, ErrEmptyFeeProfile},
		{"unknown fee basis", func(in *FundModelInputs) { in.FeeProfile.Tiers[0].Basis = "VIBES" }, ErrUnknownFeeBasis},
		{"negative fee rate", func(in *FundModelInputs) { in.FeeProfile.Tiers[0].AnnualRate = dec("-0.01") }, ErrNegativeFeeRate},
		{"inverted fee window", func(in *FundModelInputs) {
			in.FeeProfile.Tiers[0].StartMonth = 60
			in.FeeProfile.Tiers[0].EndMonth = 12
		}, ErrInvalidFeeWindow},
		{"recycling without source", func(in *FundModelInputs) {
			in.Recycling = &RecyclingPolicyConfig{Enabled: true, TermMonths: 60}
		}, ErrRecyclingNoSource},
		{"recycling without term", func(in *FundModelInputs) {
			in.Recycling = &RecyclingPolicyConfig{Enabled: true, RecycleFees: true}
		}, ErrInvalidRecycleTerm},
		{"unknown waterfall", func(in *FundModelInputs) { in.Waterfall.Type = "VENETIAN" }, ErrUnknownWaterfall},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInputs()
			tt.mutate(&in)
			err := in.Validate()
			if err == nil {
				t.Fatal("expected validation error, got nil")
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestValidate_DisabledRecyclingSkipsChecks(t *testing.T) {
	in := validInputs()
	in.Recycling = &RecyclingPolicyConfig{Enabled: false}
	if err := in.Validate(); err != nil {
		t.Fatalf("disabled recycling should validate, got %v", err)
	}
}

func TestTotalPeriods(t *testing.T) {
	in := validInputs()
	in.FundTermMonths = 24
	in.PeriodMonths = 3
	if got := in.TotalPeriods(); got != 8 {
		t.Errorf("expected 8 periods for 24/3, got %d", got)
	}

	in.FundTermMonths = 25
	if got := in.TotalPeriods(); got != 9 {
		t.Errorf("expected ceil(25/3)=9, got %d", got)
	}
}

func TestWeightShares_EqualByDefault(t *testing.T) {
	p := StageProfile{
		InitialPortfolioSize: dec("10"),
		Stages: []StageDefinition{
			{Name: "seed", RoundSize: dec("1"), PostMoney: dec("10")},
			{Name: "series-a", RoundSize: dec("1"), PostMoney: dec("10")},
		},
	}
	shares := p.WeightShares()
	if len(shares) != 2 {
		t.Fatalf("expected 2 shares, got %d", len(shares))
	}
	half := dec("0.5")
	for i, s := range shares {
		if !s.Equal(half) {
			t.Errorf("share %d: expected 0.5, got %s", i, s)
		}
	}
}

func TestWeightShares_ExplicitWeightsNormalized(t *testing.T) {
	p := StageProfile{
		InitialPortfolioSize: dec("10"),
		Stages: []StageDefinition{
			{Name: "seed", RoundSize: dec("1"), PostMoney: dec("10"), Weight: dec("3")},
			{Name: "series-a", RoundSize: dec("1"), PostMoney: dec("10"), Weight: dec("1")},
		},
	}
	shares := p.WeightShares()
	if !shares[0].Equal(dec("0.75")) {
		t.Errorf("expected 0.75, got %s", shares[0])
	}
	if !shares[1].Equal(dec("0.25")) {
		t.Errorf("expected 0.25, got %s", shares[1])
	}
}

func TestRatio_ZeroDenominator(t *testing.T) {
	if got := Ratio(dec("5"), decimal.Zero); !got.IsZero() {
		t.Errorf("expected zero for zero denominator, got %s", got)
	}
}

func TestRatio_Division(t *testing.T) {
	got := Ratio(dec("1"), dec("3"))
	if !got.Equal(dec("0.333333333333")) {
		t.Errorf("expected 12-place rounding, got %s", got)
	}
}
