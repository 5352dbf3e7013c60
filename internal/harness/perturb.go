package harness

import (
	"math/rand"

	"github.com/shopspring/decimal"

	"fund-model-lab/internal/domain"
)

// Exit multiples are resampled uniformly in [multipleFactorMin,
// multipleFactorMin+multipleFactorSpan) and quantized so perturbed inputs
// stay exact decimals.
const (
	multipleFactorMin  = 0.5
	multipleFactorSpan = 1.0
	factorPlaces       = 4
)

// PerturbInputs derives a trial's inputs from the base inputs and a seed:
// each stage's exit multiple is resampled and its months-to-exit jittered
// by up to one period either way (floored at zero). The same seed always
// yields identical perturbed inputs; seedless trials run the base inputs
// unchanged.
func PerturbInputs(base domain.FundModelInputs, seed int64) domain.FundModelInputs {
	rng := rand.New(rand.NewSource(seed))

	perturbed := base
	stages := make([]domain.StageDefinition, len(base.StageProfile.Stages))
	copy(stages, base.StageProfile.Stages)

	for i := range stages {
		factor := decimal.NewFromFloat(multipleFactorMin + multipleFactorSpan*rng.Float64()).
			Round(factorPlaces)
		stages[i].ExitMultiple = stages[i].ExitMultiple.Mul(factor)

		jitter := rng.Intn(2*base.PeriodMonths+1) - base.PeriodMonths
		months := stages[i].MonthsToExit + jitter
		if months < 0 {
			months = 0
		}
		stages[i].MonthsToExit = months
	}

	perturbed.StageProfile.Stages = stages
	return perturbed
}
