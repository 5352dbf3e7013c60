// Package domain defines the fund model's core types: immutable run inputs,
// policy configurations, the mutable per-run fund state, and the result
// types emitted by the simulation engine. All monetary and percentage
// values are decimal.Decimal; native floats never enter an accumulator.
package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Input validation errors.
var (
	ErrNegativeCommitted   = errors.New("committed capital must not be negative")
	ErrZeroFundTerm        = errors.New("fund term months must be positive")
	ErrZeroPeriodLength    = errors.New("period length months must be positive")
	ErrEmptyStageList      = errors.New("stage profile requires at least one stage definition")
	ErrNegativePortfolio   = errors.New("initial portfolio size must not be negative")
	ErrDuplicateStageName  = errors.New("duplicate stage name")
	ErrEmptyStageName      = errors.New("stage name must not be empty")
	ErrNegativeRoundSize   = errors.New("round size must not be negative")
	ErrInvalidPostMoney    = errors.New("post-money valuation must be positive")
	ErrNegativeExitMult    = errors.New("exit multiple must not be negative")
	ErrNegativeExitMonths  = errors.New("months to exit must not be negative")
	ErrNegativeStageWeight = errors.New("stage weight must not be negative")
	ErrZeroWeightSum       = errors.New("stage weights must sum to a positive value")
)

// StageDefinition describes the investment terms for one stage of the
// portfolio: how large a round is, what it buys, and when and at what
// multiple cohorts of this stage resolve.
type StageDefinition struct {
	Name          string          `json:"name"`
	RoundSize     decimal.Decimal `json:"roundSize"`
	PostMoney     decimal.Decimal `json:"postMoneyValuation"`
	ExitMultiple  decimal.Decimal `json:"exitMultiple"`
	MonthsToExit  int             `json:"monthsToExit"`
	// Weight is the stage's share of the portfolio size. When every stage
	// leaves it zero the portfolio is split equally.
	Weight decimal.Decimal `json:"weight,omitempty"`
}

// Validate checks a single stage definition.
func (s StageDefinition) Validate() error {
	if s.Name == "" {
		return ErrEmptyStageName
	}
	if s.RoundSize.IsNegative() {
		return fmt.Errorf("stage %q: %w", s.Name, ErrNegativeRoundSize)
	}
	if !s.PostMoney.IsPositive() {
		return fmt.Errorf("stage %q: %w", s.Name, ErrInvalidPostMoney)
	}
	if s.ExitMultiple.IsNegative() {
		return fmt.Errorf("stage %q: %w", s.Name, ErrNegativeExitMult)
	}
	if s.MonthsToExit < 0 {
		return fmt.Errorf("stage %q: %w", s.Name, ErrNegativeExitMonths)
	}
	if s.Weight.IsNegative() {
		return fmt.Errorf("stage %q: %w", s.Name, ErrNegativeStageWeight)
	}
	return nil
}

// StageProfile maps a real-valued portfolio size onto stage definitions.
type StageProfile struct {
	InitialPortfolioSize decimal.Decimal   `json:"initialPortfolioSize"`
	Stages               []StageDefinition `json:"stages"`
}

// Validate checks the profile: a non-empty, well-formed stage list with
// unique names and a usable weight partition.
func (p StageProfile) Validate() error {
	if p.InitialPortfolioSize.IsNegative() {
		return ErrNegativePortfolio
	}
	if len(p.Stages) == 0 {
		return ErrEmptyStageList
	}

	seen := make(map[string]bool, len(p.Stages))
	weightSum := decimal.Zero
	anyWeighted := false
	for _, s := range p.Stages {
		if err := s.Validate(); err != nil {
			return err
		}
		if seen[s.Name] {
			return fmt.Errorf("%w: %s", ErrDuplicateStageName, s.Name)
		}
		seen[s.Name] = true
		if !s.Weight.IsZero() {
			anyWeighted = true
		}
		weightSum = weightSum.Add(s.Weight)
	}

	// When weights are used as the partition they must carry actual mass.
	if anyWeighted && !weightSum.IsPositive() {
		return ErrZeroWeightSum
	}
	return nil
}

// StageByName returns the definition for a stage name.
func (p StageProfile) StageByName(name string) (StageDefinition, bool) {
	for _, s := range p.Stages {
		if s.Name == name {
			return s, true
		}
	}
	return StageDefinition{}, false
}

// WeightShares returns each stage's fractional share of the portfolio size,
// in stage order. Equal shares unless any stage carries an explicit weight.
func (p StageProfile) WeightShares() []decimal.Decimal {
	shares := make([]decimal.Decimal, len(p.Stages))

	weightSum := decimal.Zero
	anyWeighted := false
	for _, s := range p.Stages {
		if !s.Weight.IsZero() {
			anyWeighted = true
		}
		weightSum = weightSum.Add(s.Weight)
	}

	if !anyWeighted {
		equal := Div(decimal.NewFromInt(1), decimal.NewFromInt(int64(len(p.Stages))))
		for i := range shares {
			shares[i] = equal
		}
		return shares
	}

	for i, s := range p.Stages {
		shares[i] = Div(s.Weight, weightSum)
	}
	return shares
}

// FundModelInputs is the immutable input set for one simulation run.
type FundModelInputs struct {
	CommittedCapital decimal.Decimal `json:"committedCapital"`
	FundTermMonths   int             `json:"fundTermMonths"`
	PeriodMonths     int             `json:"periodMonths"`

	StageProfile StageProfile `json:"stageProfile"`

	CapitalCallPolicy CapitalCallPolicyConfig `json:"capitalCallPolicy"`
	FeeProfile        FeeProfileConfig        `json:"feeProfile"`
	Recycling         *RecyclingPolicyConfig  `json:"recycling,omitempty"`
	Waterfall         WaterfallConfig         `json:"waterfall"`
}

// TotalPeriods returns the index of the final period, covering the full
// fund term: periods run from 0 through this value inclusive.
func (in FundModelInputs) TotalPeriods() int {
	return (in.FundTermMonths + in.PeriodMonths - 1) / in.PeriodMonths
}

// Validate fails fast on structurally invalid inputs. Missing required
// policy fields are errors, never silently defaulted.
func (in FundModelInputs) Validate() error {
	if in.CommittedCapital.IsNegative() {
		return ErrNegativeCommitted
	}
	if in.FundTermMonths <= 0 {
		return ErrZeroFundTerm
	}
	if in.PeriodMonths <= 0 {
		return ErrZeroPeriodLength
	}
	if err := in.StageProfile.Validate(); err != nil {
		return fmt.Errorf("stage profile: %w", err)
	}
	if err := in.CapitalCallPolicy.Validate(); err != nil {
		return fmt.Errorf("capital call policy: %w", err)
	}
	if err := in.FeeProfile.Validate(); err != nil {
		return fmt.Errorf("fee profile: %w", err)
	}
	if in.Recycling != nil {
		if err := in.Recycling.Validate(); err != nil {
			return fmt.Errorf("recycling policy: %w", err)
		}
	}
	if err := in.Waterfall.Validate(); err != nil {
		return fmt.Errorf("waterfall: %w", err)
	}
	return nil
}
