// Package deployment converts a stage profile into a concrete list of
// company cohorts with deterministic identifiers and invested amounts.
//
// Each stage's real-valued company count splits into whole unit cohorts
// plus at most one fractional remainder cohort, so the sum of cohort
// investments across a stage equals roundSize × stageCompanyCount exactly.
// Probabilistic rounding or truncation would break that identity.
package deployment

import (
	"fmt"

	"github.com/shopspring/decimal"

	"fund-model-lab/internal/domain"
)

// Deploy builds the cohort list for a stage profile. It is a pure function
// of its input; a stage whose allocation works out to zero companies simply
// contributes no cohorts.
//
// Identifiers are deterministic: {stage}-{seq:03d} for whole cohorts, with
// a -fractional suffix on the remainder cohort.
func Deploy(profile domain.StageProfile) ([]*domain.Company, error) {
	if err := profile.Validate(); err != nil {
		return nil, fmt.Errorf("deploy: %w", err)
	}

	shares := profile.WeightShares()
	var companies []*domain.Company

	for i, stage := range profile.Stages {
		count := profile.InitialPortfolioSize.Mul(shares[i])
		whole := count.Floor()
		fraction := count.Sub(whole)

		ownership := domain.Div(stage.RoundSize, stage.PostMoney)

		n := int(whole.IntPart())
		for seq := 1; seq <= n; seq++ {
			companies = append(companies, newCohort(
				fmt.Sprintf("%s-%03d", stage.Name, seq),
				stage, stage.RoundSize, ownership,
			))
		}

		if fraction.IsPositive() {
			companies = append(companies, newCohort(
				fmt.Sprintf("%s-%03d-fractional", stage.Name, n+1),
				stage,
				stage.RoundSize.Mul(fraction),
				ownership.Mul(fraction),
			))
		}
	}

	return companies, nil
}

// TotalCost sums the invested amounts of a cohort list.
func TotalCost(companies []*domain.Company) decimal.Decimal {
	total := decimal.Zero
	for _, c := range companies {
		total = total.Add(c.TotalInvested)
	}
	return total
}

func newCohort(id string, stage domain.StageDefinition, invested, ownership decimal.Decimal) *domain.Company {
	return &domain.Company{
		ID:                 id,
		Stage:              stage.Name,
		InitialInvestment:  invested,
		FollowOnInvestment: decimal.Zero,
		TotalInvested:      invested,
		OwnershipFraction:  ownership,
		Status:             domain.CompanyActive,
		ExitValue:          decimal.Zero,
		ExitProceeds:       decimal.Zero,
	}
}
