package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Policy config validation errors.
var (
	ErrUnknownCallPolicy    = errors.New("unknown capital call policy kind")
	ErrMissingCallWindow    = errors.New("EVEN capital call policy requires a positive call window")
	ErrEmptyCallSchedule    = errors.New("SCHEDULED capital call policy requires at least one entry")
	ErrInvalidScheduleEntry = errors.New("invalid capital call schedule entry")
	ErrEmptyFeeProfile      = errors.New("fee profile requires at least one tier")
	ErrUnknownFeeBasis      = errors.New("unknown fee basis")
	ErrNegativeFeeRate      = errors.New("fee rate must not be negative")
	ErrInvalidFeeWindow     = errors.New("fee tier end month must be zero or after start month")
	ErrRecyclingNoSource    = errors.New("recycling policy must enable at least one source")
	ErrNegativeRecycleCap   = errors.New("recycling cap must not be negative")
	ErrInvalidRecycleTerm   = errors.New("recycling term months must be positive")
	ErrUnknownWaterfall     = errors.New("unknown waterfall type")
)

// CapitalCallKind selects the capital call policy variant.
type CapitalCallKind string

// Capital call policy kinds.
const (
	CallUpfront   CapitalCallKind = "UPFRONT"
	CallEven      CapitalCallKind = "EVEN"
	CallScheduled CapitalCallKind = "SCHEDULED"
)

// ScheduledCall is one entry of an explicit call schedule. Fraction is the
// cumulative-additive share of committed capital due once the fund reaches
// Month.
type ScheduledCall struct {
	Month    int             `json:"month"`
	Fraction decimal.Decimal `json:"fraction"`
}

// CapitalCallPolicyConfig configures how committed capital is drawn down.
type CapitalCallPolicyConfig struct {
	Kind CapitalCallKind `json:"kind"`

	// CallWindowMonths applies to EVEN: the commitment is spread linearly
	// across this many months from fund start.
	CallWindowMonths int `json:"callWindowMonths,omitempty"`

	// Schedule applies to SCHEDULED.
	Schedule []ScheduledCall `json:"schedule,omitempty"`
}

// Validate checks the policy's required fields for its kind.
func (c CapitalCallPolicyConfig) Validate() error {
	switch c.Kind {
	case CallUpfront:
		return nil
	case CallEven:
		if c.CallWindowMonths <= 0 {
			return ErrMissingCallWindow
		}
		return nil
	case CallScheduled:
		if len(c.Schedule) == 0 {
			return ErrEmptyCallSchedule
		}
		for i, e := range c.Schedule {
			if e.Month < 0 || e.Fraction.IsNegative() {
				return fmt.Errorf("%w: entry %d", ErrInvalidScheduleEntry, i)
			}
		}
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownCallPolicy, c.Kind)
	}
}

// FeeBasis is the quantity a management fee percentage is applied against.
type FeeBasis string

// Recognized fee bases.
const (
	BasisCommittedCapital FeeBasis = "COMMITTED_CAPITAL"
	BasisCalledPeriod     FeeBasis = "CALLED_CAPITAL_PERIOD"
	BasisCumulativeCalled FeeBasis = "CUMULATIVE_CALLED"
	BasisNetCalled        FeeBasis = "NET_CALLED"
	BasisInvestedCapital  FeeBasis = "INVESTED_CAPITAL"
	BasisFairMarketValue  FeeBasis = "FAIR_MARKET_VALUE"
	BasisUnrealizedCost   FeeBasis = "UNREALIZED_COST"
)

// ValidFeeBasis reports whether b is a recognized basis.
func ValidFeeBasis(b FeeBasis) bool {
	switch b {
	case BasisCommittedCapital, BasisCalledPeriod, BasisCumulativeCalled,
		BasisNetCalled, BasisInvestedCapital, BasisFairMarketValue,
		BasisUnrealizedCost:
		return true
	}
	return false
}

// FeeTier is one management fee tier: an annual rate on a basis, active
// for a month range. EndMonth 0 means open-ended. Step-downs are expressed
// as multiple tiers with disjoint month ranges on the same basis.
type FeeTier struct {
	Basis      FeeBasis        `json:"basis"`
	AnnualRate decimal.Decimal `json:"annualRate"`
	StartMonth int             `json:"startMonth"`
	EndMonth   int             `json:"endMonth,omitempty"`
}

// ActiveAt reports whether the tier accrues in the given month.
func (t FeeTier) ActiveAt(month int) bool {
	if month < t.StartMonth {
		return false
	}
	return t.EndMonth == 0 || month < t.EndMonth
}

// FeeProfileConfig is the fund's management fee schedule.
type FeeProfileConfig struct {
	Tiers []FeeTier `json:"tiers"`
}

// Validate checks every tier.
func (c FeeProfileConfig) Validate() error {
	if len(c.Tiers) == 0 {
		return ErrEmptyFeeProfile
	}
	for i, t := range c.Tiers {
		if !ValidFeeBasis(t.Basis) {
			return fmt.Errorf("%w: tier %d basis %q", ErrUnknownFeeBasis, i, t.Basis)
		}
		if t.AnnualRate.IsNegative() {
			return fmt.Errorf("%w: tier %d", ErrNegativeFeeRate, i)
		}
		if t.EndMonth != 0 && t.EndMonth <= t.StartMonth {
			return fmt.Errorf("%w: tier %d", ErrInvalidFeeWindow, i)
		}
	}
	return nil
}

// RecyclingPolicyConfig configures reinvestment of fee income and exit
// proceeds back into uninvested cash.
type RecyclingPolicyConfig struct {
	Enabled         bool `json:"enabled"`
	RecycleFees     bool `json:"recycleFees"`
	RecycleProceeds bool `json:"recycleProceeds"`

	// CapFraction caps total recycled capital as a fraction of committed
	// capital. Zero means no cap.
	CapFraction decimal.Decimal `json:"capFraction,omitempty"`

	// TermMonths is the eligibility window: recycling happens only while
	// the fund month is strictly below it.
	TermMonths int `json:"termMonths"`
}

// Validate checks the policy when enabled.
func (c RecyclingPolicyConfig) Validate() error {
	if !c.Enabled {
		return nil
	}
	if !c.RecycleFees && !c.RecycleProceeds {
		return ErrRecyclingNoSource
	}
	if c.CapFraction.IsNegative() {
		return ErrNegativeRecycleCap
	}
	if c.TermMonths <= 0 {
		return ErrInvalidRecycleTerm
	}
	return nil
}

// WaterfallType selects the distribution waterfall family.
type WaterfallType string

// Waterfall types. All recognized types currently route 100% of proceeds
// to LPs; tier-by-tier carry math is an explicit extension point pending
// product clarification, not something the engine guesses at.
const (
	WaterfallEuropean WaterfallType = "EUROPEAN"
	WaterfallAmerican WaterfallType = "AMERICAN"
	WaterfallHybrid   WaterfallType = "HYBRID"
)

// WaterfallConfig describes how exit proceeds split between LPs and GP.
// CarryFraction and PreferredReturn are accepted and carried for forward
// compatibility; the placeholder split does not consume them.
type WaterfallConfig struct {
	Type            WaterfallType   `json:"type"`
	CarryFraction   decimal.Decimal `json:"carryFraction,omitempty"`
	PreferredReturn decimal.Decimal `json:"preferredReturn,omitempty"`
}

// Validate checks the waterfall type is recognized.
func (c WaterfallConfig) Validate() error {
	switch c.Type {
	case WaterfallEuropean, WaterfallAmerican, WaterfallHybrid:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownWaterfall, c.Type)
	}
}
