package harness

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"fund-model-lab/internal/domain"
	"fund-model-lab/internal/engine"
)

// Pool errors.
var (
	ErrNoTrials = errors.New("batch requires at least one trial")
)

// Pool fans independent trials out to worker goroutines. Every trial gets
// its own engine invocation and fresh fund state; trials share nothing, so
// the only synchronization is the job channel and the index-addressed
// response slice.
type Pool struct {
	engine  *engine.Engine
	workers int
	log     *logrus.Logger
}

// NewPool creates a pool. Workers below 1 are raised to 1; a nil logger
// falls back to the logrus standard logger.
func NewPool(e *engine.Engine, workers int, log *logrus.Logger) *Pool {
	if workers < 1 {
		workers = 1
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Pool{engine: e, workers: workers, log: log}
}

// BatchResult is the harness output: one response per trial in trial-index
// order (deterministic regardless of scheduling), plus the band summary
// across successful trials.
type BatchResult struct {
	Responses []TrialResponse
	Summary   BatchSummary
}

// RunBatch executes trials 0..trials-1. Trial i runs inputs perturbed with
// seed baseSeed+i. A failed trial becomes an error response without
// aborting the batch; cancellation marks the remaining trials as errors
// and returns what completed.
func (p *Pool) RunBatch(ctx context.Context, inputs domain.FundModelInputs, trials int, baseSeed int64) (*BatchResult, error) {
	if trials <= 0 {
		return nil, ErrNoTrials
	}
	// Fail the whole batch up front on invalid base inputs instead of
	// producing N identical error responses.
	if err := inputs.Validate(); err != nil {
		return nil, err
	}

	start := time.Now()
	p.log.WithFields(logrus.Fields{
		"trials":  trials,
		"workers": p.workers,
		"seed":    baseSeed,
	}).Info("starting monte carlo batch")

	jobs := make(chan int)
	responses := make([]TrialResponse, trials)

	var wg sync.WaitGroup
	for w := 0; w < p.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				responses[idx] = p.runTrial(ctx, inputs, baseSeed+int64(idx))
			}
		}()
	}

	for i := 0; i < trials; i++ {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	summary := SummarizeBatch(responses)
	p.log.WithFields(logrus.Fields{
		"succeeded": summary.Succeeded,
		"failed":    summary.Failed,
		"elapsed":   time.Since(start).String(),
	}).Info("monte carlo batch finished")

	return &BatchResult{Responses: responses, Summary: summary}, nil
}

// runTrial executes one trial and always produces a response: result on
// success, error otherwise. The engine itself has no cancellation
// checkpoints — an abandoned trial is one that never started.
func (p *Pool) runTrial(ctx context.Context, inputs domain.FundModelInputs, seed int64) TrialResponse {
	req := TrialRequest{
		Kind:   KindRun,
		RunID:  uuid.NewString(),
		Inputs: PerturbInputs(inputs, seed),
		Seed:   &seed,
	}

	if err := ctx.Err(); err != nil {
		return TrialResponse{Kind: KindError, RunID: req.RunID, Error: "trial abandoned: " + err.Error()}
	}

	start := time.Now()
	result, err := p.engine.Run(req.Inputs)
	if err != nil {
		p.log.WithField("runId", req.RunID).WithError(err).Warn("trial failed")
		return TrialResponse{Kind: KindError, RunID: req.RunID, Error: err.Error()}
	}

	return TrialResponse{
		Kind:       KindResult,
		RunID:      req.RunID,
		Result:     result,
		DurationMs: time.Since(start).Milliseconds(),
	}
}
