package domain

import "github.com/shopspring/decimal"

// CompanyStatus is the lifecycle state of a cohort.
type CompanyStatus string

// Company statuses. The machine is Active → Exited or Active → Failed,
// both terminal. Failed is an exit whose stage multiple is zero.
const (
	CompanyActive CompanyStatus = "ACTIVE"
	CompanyExited CompanyStatus = "EXITED"
	CompanyFailed CompanyStatus = "FAILED"
)

// Company is one deployed cohort. A cohort is not necessarily a literal
// single company: the last cohort of a stage may represent a fractional
// slice, with its investment and ownership scaled by the same weight.
type Company struct {
	ID    string `json:"id"`
	Stage string `json:"stage"`

	InitialInvestment decimal.Decimal `json:"initialInvestment"`
	// FollowOnInvestment is always zero today, reserved for reserve/
	// follow-on modeling.
	FollowOnInvestment decimal.Decimal `json:"followOnInvestment"`
	TotalInvested      decimal.Decimal `json:"totalInvested"`

	// OwnershipFraction = roundSize / postMoney, scaled by the cohort's
	// fractional weight.
	OwnershipFraction decimal.Decimal `json:"ownershipFraction"`

	Status       CompanyStatus   `json:"status"`
	ExitMonth    *int            `json:"exitMonth,omitempty"`
	ExitPeriod   *int            `json:"exitPeriod,omitempty"`
	ExitValue    decimal.Decimal `json:"exitValue"`
	ExitProceeds decimal.Decimal `json:"exitProceeds"`
}

// Active reports whether the cohort has not yet resolved.
func (c *Company) Active() bool {
	return c.Status == CompanyActive
}
