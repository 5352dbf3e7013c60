package engine

import (
	"github.com/shopspring/decimal"

	"fund-model-lab/internal/deployment"
	"fund-model-lab/internal/domain"
	"fund-model-lab/internal/metrics"
	"fund-model-lab/internal/policy"
)

// loopOutput is what one pass of the period loop produces.
type loopOutput struct {
	periods        []domain.PeriodResult
	totalExitValue decimal.Decimal
	cashFlows      []CashFlow
}

// runLoop advances the fund through periods 0..TotalPeriods inclusive,
// covering the full fund term: fees keep accruing and NAV keeps reflecting
// uninvested cash after the last modeled exit.
//
// The per-period step order is a contract — reordering changes results:
//  1. Capital call
//  2. Portfolio funding (period 0 only)
//  3. Management fees
//  4. Exit processing
//  5. Distribution
//  6. Recycling
//  7. NAV + KPI snapshot
func runLoop(inputs domain.FundModelInputs, state *domain.FundState) loopOutput {
	total := inputs.TotalPeriods()
	out := loopOutput{
		periods:        make([]domain.PeriodResult, 0, total+1),
		totalExitValue: decimal.Zero,
		cashFlows:      make([]CashFlow, 0, total+2),
	}

	for p := 0; p <= total; p++ {
		month := p * inputs.PeriodMonths
		state.Period = p
		state.Month = month

		// 1. Capital call. The policy is treated as approximate and
		// clamped here: calledCapital never exceeds committedCapital.
		call := policy.EvaluateCapitalCall(inputs.CapitalCallPolicy, policy.CallContext{
			CommittedCapital: inputs.CommittedCapital,
			CalledCapital:    state.CalledCapital,
			Uncalled:         state.Uncalled(inputs.CommittedCapital),
			Month:            month,
			PeriodMonths:     inputs.PeriodMonths,
		})
		if uncalled := state.Uncalled(inputs.CommittedCapital); call.GreaterThan(uncalled) {
			call = uncalled
		}
		if call.IsNegative() {
			call = decimal.Zero
		}
		state.CalledCapital = state.CalledCapital.Add(call)
		state.UninvestedCash = state.UninvestedCash.Add(call)

		// 2. Portfolio funding, once. Cohort cost leaves cash and accrues
		// to invested capital when the portfolio is deployed. With slow
		// call schedules cash can run negative here; the simplified model
		// leaves that visible instead of clamping it.
		if p == 0 {
			cost := deployment.TotalCost(state.Companies)
			state.InvestedCapital = state.InvestedCapital.Add(cost)
			state.UninvestedCash = state.UninvestedCash.Sub(cost)
		}

		// 3. Fees, from a snapshot of current state.
		fee := policy.EvaluateFees(inputs.FeeProfile, policy.FeeContext{
			CommittedCapital: inputs.CommittedCapital,
			CalledThisPeriod: call,
			CumulativeCalled: state.CalledCapital,
			LPDistributions:  state.LPDistributions,
			InvestedCapital:  state.InvestedCapital,
			FairMarketValue:  state.NAV(),
			UnrealizedCost:   state.ActiveCostBasis(),
			Month:            month,
			PeriodMonths:     inputs.PeriodMonths,
		})
		state.UninvestedCash = state.UninvestedCash.Sub(fee)
		state.FeesPaid = state.FeesPaid.Add(fee)

		// 4. Exit processing. Deterministic, driven solely by elapsed
		// months; each cohort resolves at most once.
		periodProceeds := decimal.Zero
		for _, c := range state.Companies {
			if !c.Active() {
				continue
			}
			stage, ok := inputs.StageProfile.StageByName(c.Stage)
			if !ok {
				// Impossible after deployment-time validation; an
				// unmatched cohort would otherwise be stuck forever.
				continue
			}
			if month < stage.MonthsToExit {
				continue
			}

			exitValue := c.TotalInvested.Mul(stage.ExitMultiple)
			proceeds := exitValue.Mul(c.OwnershipFraction)

			exitMonth, exitPeriod := month, p
			c.ExitMonth = &exitMonth
			c.ExitPeriod = &exitPeriod
			c.ExitValue = exitValue
			c.ExitProceeds = proceeds
			if stage.ExitMultiple.IsZero() {
				c.Status = domain.CompanyFailed
				state.FailedCompanies++
			} else {
				c.Status = domain.CompanyExited
				state.ExitedCompanies++
			}
			state.ActiveCompanies--

			periodProceeds = periodProceeds.Add(proceeds)
			out.totalExitValue = out.totalExitValue.Add(exitValue)
		}
		state.ExitProceeds = state.ExitProceeds.Add(periodProceeds)
		state.UninvestedCash = state.UninvestedCash.Add(periodProceeds)

		// 5. Distribution.
		lpDist, gpDist := decimal.Zero, decimal.Zero
		if periodProceeds.IsPositive() {
			lpDist, gpDist = splitProceeds(inputs.Waterfall, periodProceeds)
			state.LPDistributions = state.LPDistributions.Add(lpDist)
			state.GPDistributions = state.GPDistributions.Add(gpDist)
			state.UninvestedCash = state.UninvestedCash.Sub(lpDist).Sub(gpDist)
		}

		// 6. Recycling.
		if policy.Eligible(inputs.Recycling, month) {
			recycled := policy.EvaluateRecycling(*inputs.Recycling, policy.RecyclingContext{
				CommittedCapital:     inputs.CommittedCapital,
				FeesPaid:             state.FeesPaid,
				ExitProceeds:         state.ExitProceeds,
				RecycledFromFees:     state.RecycledFromFees,
				RecycledFromProceeds: state.RecycledFromProceeds,
				Month:                month,
			})
			state.RecycledFromFees = state.RecycledFromFees.Add(recycled.FromFees)
			state.RecycledFromProceeds = state.RecycledFromProceeds.Add(recycled.FromProceeds)
			state.UninvestedCash = state.UninvestedCash.Add(recycled.Total())
		}

		// 7. NAV and KPI snapshot.
		nav := state.NAV()
		r := metrics.Compute(state.LPDistributions, nav, state.CalledCapital)
		out.periods = append(out.periods, domain.PeriodResult{
			Period:          p,
			Month:           month,
			CapitalCalled:   call,
			InvestedCapital: state.InvestedCapital,
			UninvestedCash:  state.UninvestedCash,
			FeesPaid:        fee,
			ExitProceeds:    periodProceeds,
			LPDistributions: lpDist,
			GPDistributions: gpDist,
			NAV:             nav,
			TVPI:            r.TVPI,
			DPI:             r.DPI,
			RVPI:            r.RVPI,
			ActiveCompanies: state.ActiveCompanies,
			ExitedCompanies: state.ExitedCompanies,
			FailedCompanies: state.FailedCompanies,
		})

		out.cashFlows = append(out.cashFlows, CashFlow{
			Month:  month,
			Amount: lpDist.Sub(call),
		})
	}

	// Terminal NAV closes the LP cash-flow series for the IRR seam.
	if len(out.periods) > 0 {
		last := out.periods[len(out.periods)-1]
		out.cashFlows = append(out.cashFlows, CashFlow{
			Month:  last.Month,
			Amount: last.NAV,
		})
	}

	return out
}
