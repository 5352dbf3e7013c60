// Package harness is the Monte Carlo batch runner around the deterministic
// engine: it perturbs inputs per seed, fans trials out to a worker pool,
// and aggregates final-metric distributions into percentile bands. One
// request/response message pair is exchanged per trial at the engine
// boundary.
package harness

import (
	"encoding/json"
	"errors"
	"fmt"

	"fund-model-lab/internal/domain"
)

// Message kinds.
const (
	KindRun    = "run"
	KindResult = "result"
	KindError  = "error"
)

// Message codec errors.
var (
	ErrUnknownKind  = errors.New("unknown message kind")
	ErrMissingRunID = errors.New("message requires a run id")
)

// TrialRequest asks for one engine trial. Seed, when present, perturbs the
// inputs before the engine sees them; the deterministic core itself treats
// it as inert.
type TrialRequest struct {
	Kind   string                 `json:"kind"`
	RunID  string                 `json:"runId"`
	Inputs domain.FundModelInputs `json:"inputs"`
	Seed   *int64                 `json:"seed,omitempty"`
}

// TrialResponse is the per-trial reply: kind "result" carries the
// simulation result and wall-clock duration, kind "error" carries the
// failure message.
type TrialResponse struct {
	Kind       string                   `json:"kind"`
	RunID      string                   `json:"runId"`
	Result     *domain.SimulationResult `json:"result,omitempty"`
	DurationMs int64                    `json:"durationMs,omitempty"`
	Error      string                   `json:"error,omitempty"`
}

// EncodeRequest serializes a trial request.
func EncodeRequest(req TrialRequest) ([]byte, error) {
	return json.Marshal(req)
}

// DecodeRequest parses and validates a trial request.
func DecodeRequest(data []byte) (TrialRequest, error) {
	var req TrialRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return TrialRequest{}, fmt.Errorf("decode trial request: %w", err)
	}
	if req.Kind != KindRun {
		return TrialRequest{}, fmt.Errorf("%w: %q", ErrUnknownKind, req.Kind)
	}
	if req.RunID == "" {
		return TrialRequest{}, ErrMissingRunID
	}
	return req, nil
}

// EncodeResponse serializes a trial response.
func EncodeResponse(resp TrialResponse) ([]byte, error) {
	return json.Marshal(resp)
}

// DecodeResponse parses and validates a trial response.
func DecodeResponse(data []byte) (TrialResponse, error) {
	var resp TrialResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return TrialResponse{}, fmt.Errorf("decode trial response: %w", err)
	}
	if resp.Kind != KindResult && resp.Kind != KindError {
		return TrialResponse{}, fmt.Errorf("%w: %q", ErrUnknownKind, resp.Kind)
	}
	if resp.RunID == "" {
		return TrialResponse{}, ErrMissingRunID
	}
	return resp, nil
}
