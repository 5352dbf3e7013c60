// Package config loads fund model inputs from YAML. Schema structs are
// converted explicitly into domain types; monetary scalars are parsed
// straight from their YAML text into decimals so no float ever sits
// between the file and the engine.
package config

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"fund-model-lab/internal/domain"
)

// Money is a decimal that unmarshals from the YAML scalar's exact text.
type Money struct {
	decimal.Decimal
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (m *Money) UnmarshalYAML(value *yaml.Node) error {
	if value.Value == "" {
		m.Decimal = decimal.Zero
		return nil
	}
	d, err := decimal.NewFromString(value.Value)
	if err != nil {
		return fmt.Errorf("invalid decimal %q: %w", value.Value, err)
	}
	m.Decimal = d
	return nil
}

// File is the YAML schema for one fund model.
type File struct {
	CommittedCapital Money `yaml:"committed_capital"`
	FundTermMonths   int   `yaml:"fund_term_months"`
	PeriodMonths     int   `yaml:"period_months"`

	Portfolio struct {
		InitialSize Money         `yaml:"initial_size"`
		Stages      []StageConfig `yaml:"stages"`
	} `yaml:"portfolio"`

	CapitalCalls CallConfig      `yaml:"capital_calls"`
	Fees         FeeConfig       `yaml:"fees"`
	Recycling    *RecycleConfig  `yaml:"recycling"`
	Waterfall    WaterfallConfig `yaml:"waterfall"`
}

// StageConfig is one stage definition.
type StageConfig struct {
	Name         string `yaml:"name"`
	RoundSize    Money  `yaml:"round_size"`
	PostMoney    Money  `yaml:"post_money_valuation"`
	ExitMultiple Money  `yaml:"exit_multiple"`
	MonthsToExit int    `yaml:"months_to_exit"`
	Weight       Money  `yaml:"weight"`
}

// CallConfig is the capital call policy section.
type CallConfig struct {
	Kind             string `yaml:"kind"`
	CallWindowMonths int    `yaml:"call_window_months"`
	Schedule         []struct {
		Month    int   `yaml:"month"`
		Fraction Money `yaml:"fraction"`
	} `yaml:"schedule"`
}

// FeeConfig is the fee profile section.
type FeeConfig struct {
	Tiers []struct {
		Basis      string `yaml:"basis"`
		AnnualRate Money  `yaml:"annual_rate"`
		StartMonth int    `yaml:"start_month"`
		EndMonth   int    `yaml:"end_month"`
	} `yaml:"tiers"`
}

// RecycleConfig is the optional recycling policy section.
type RecycleConfig struct {
	Enabled         bool  `yaml:"enabled"`
	RecycleFees     bool  `yaml:"recycle_fees"`
	RecycleProceeds bool  `yaml:"recycle_proceeds"`
	CapFraction     Money `yaml:"cap_fraction"`
	TermMonths      int   `yaml:"term_months"`
}

// WaterfallConfig is the waterfall section.
type WaterfallConfig struct {
	Type            string `yaml:"type"`
	CarryFraction   Money  `yaml:"carry_fraction"`
	PreferredReturn Money  `yaml:"preferred_return"`
}

// Load reads a YAML model file, converts it to domain inputs, and fails
// fast on validation errors so a bad file never reaches the engine.
func Load(path string) (domain.FundModelInputs, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.FundModelInputs{}, fmt.Errorf("read model file: %w", err)
	}
	return Parse(data)
}

// Parse converts YAML bytes into validated domain inputs.
func Parse(data []byte) (domain.FundModelInputs, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return domain.FundModelInputs{}, fmt.Errorf("parse model file: %w", err)
	}

	inputs := f.toDomain()
	if err := inputs.Validate(); err != nil {
		return domain.FundModelInputs{}, err
	}
	return inputs, nil
}

func (f File) toDomain() domain.FundModelInputs {
	stages := make([]domain.StageDefinition, len(f.Portfolio.Stages))
	for i, s := range f.Portfolio.Stages {
		stages[i] = domain.StageDefinition{
			Name:         s.Name,
			RoundSize:    s.RoundSize.Decimal,
			PostMoney:    s.PostMoney.Decimal,
			ExitMultiple: s.ExitMultiple.Decimal,
			MonthsToExit: s.MonthsToExit,
			Weight:       s.Weight.Decimal,
		}
	}

	call := domain.CapitalCallPolicyConfig{
		Kind:             domain.CapitalCallKind(f.CapitalCalls.Kind),
		CallWindowMonths: f.CapitalCalls.CallWindowMonths,
	}
	for _, e := range f.CapitalCalls.Schedule {
		call.Schedule = append(call.Schedule, domain.ScheduledCall{
			Month:    e.Month,
			Fraction: e.Fraction.Decimal,
		})
	}

	var tiers []domain.FeeTier
	for _, t := range f.Fees.Tiers {
		tiers = append(tiers, domain.FeeTier{
			Basis:      domain.FeeBasis(t.Basis),
			AnnualRate: t.AnnualRate.Decimal,
			StartMonth: t.StartMonth,
			EndMonth:   t.EndMonth,
		})
	}

	var recycling *domain.RecyclingPolicyConfig
	if f.Recycling != nil {
		recycling = &domain.RecyclingPolicyConfig{
			Enabled:         f.Recycling.Enabled,
			RecycleFees:     f.Recycling.RecycleFees,
			RecycleProceeds: f.Recycling.RecycleProceeds,
			CapFraction:     f.Recycling.CapFraction.Decimal,
			TermMonths:      f.Recycling.TermMonths,
		}
	}

	return domain.FundModelInputs{
		CommittedCapital: f.CommittedCapital.Decimal,
		FundTermMonths:   f.FundTermMonths,
		PeriodMonths:     f.PeriodMonths,
		StageProfile: domain.StageProfile{
			InitialPortfolioSize: f.Portfolio.InitialSize.Decimal,
			Stages:               stages,
		},
		CapitalCallPolicy: call,
		FeeProfile:        domain.FeeProfileConfig{Tiers: tiers},
		Recycling:         recycling,
		Waterfall: domain.WaterfallConfig{
			Type:            domain.WaterfallType(f.Waterfall.Type),
			CarryFraction:   f.Waterfall.CarryFraction.Decimal,
			PreferredReturn: f.Waterfall.PreferredReturn.Decimal,
		},
	}
}
