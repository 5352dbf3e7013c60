// Package engine implements the deterministic, period-stepped fund
// simulation: portfolio deployment, the period loop over the policy
// evaluators, and result assembly. One Run is single-threaded, owns its
// state exclusively, performs no I/O and always runs to completion; the
// only concurrency obligation is that nothing leaks between invocations.
package engine

import (
	"fmt"
	"time"

	"fund-model-lab/internal/deployment"
	"fund-model-lab/internal/domain"
	"fund-model-lab/internal/metrics"
)

// ModelVersion is stamped into result metadata.
const ModelVersion = "1.2.0"

// Options configures an Engine.
type Options struct {
	// Clock supplies the metadata timestamp. Defaults to time.Now. The
	// timestamp is provenance only; the deterministic payload (periods and
	// final metrics) never depends on it.
	Clock func() time.Time

	// IRRSolver, when set, is called once per run over the net LP
	// cash-flow series. When nil the IRR field is absent from output.
	IRRSolver IRRSolver
}

// Engine runs fund model simulations. It holds configuration only, never
// run state, so a single Engine is safe to share across concurrent trials.
type Engine struct {
	clock  func() time.Time
	solver IRRSolver
}

// New creates an Engine.
func New(opts Options) *Engine {
	clock := opts.Clock
	if clock == nil {
		clock = time.Now
	}
	return &Engine{clock: clock, solver: opts.IRRSolver}
}

// Run executes one simulation. Same inputs always produce an identical
// period series and final metrics; only metadata carries wall-clock time.
// Steps:
//  1. Validate inputs (fail fast, no silent defaults)
//  2. Deploy the portfolio into cohorts
//  3. Run the period loop through the full fund term
//  4. Derive final metrics; solve IRR if a solver is plugged in
//  5. Assemble result with provenance inputs and metadata
func (e *Engine) Run(inputs domain.FundModelInputs) (*domain.SimulationResult, error) {
	// 1. Validate
	if err := inputs.Validate(); err != nil {
		return nil, fmt.Errorf("invalid fund model inputs: %w", err)
	}

	// 2. Deploy
	companies, err := deployment.Deploy(inputs.StageProfile)
	if err != nil {
		return nil, err
	}
	state := domain.NewFundState(companies)

	// 3. Period loop
	out := runLoop(inputs, state)

	// 4. Final metrics
	final := metrics.Final(state, out.totalExitValue, inputs.FundTermMonths)
	if e.solver != nil {
		rate, err := e.solver(out.cashFlows)
		if err != nil {
			return nil, fmt.Errorf("irr solver: %w", err)
		}
		final.IRR = rate
	}

	// 5. Assemble
	return &domain.SimulationResult{
		Inputs:  inputs,
		Periods: out.periods,
		Final:   final,
		Meta: domain.Metadata{
			ModelVersion: ModelVersion,
			ComputedAt:   e.clock().UTC(),
		},
	}, nil
}
