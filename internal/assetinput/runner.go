package assetinput

import (
	"context"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/rs/zerolog"

	"github.com/sponsorCoinAdmin/spcoin-nextjs-front-end-sub000/internal/asset"
	"github.com/sponsorCoinAdmin/spcoin-nextjs-front-end-sub000/internal/metrics"
)

// DefaultMaxSteps bounds a run against malformed, cyclic graphs.
const DefaultMaxSteps = 30

// RunResult is the outcome of driving the graph from an initial state.
type RunResult struct {
	Final       State
	Asset       asset.Asset
	Transitions []Transition
	Err         string
	Cancelled   bool
	CeilingHit  bool
}

// Runner repeatedly dispatches until the graph settles.
type Runner struct {
	dispatcher *Dispatcher
	sink       TraceSink
	log        zerolog.Logger
	maxSteps   int
}

// NewRunner builds a runner. A nil sink traces nothing; maxSteps <= 0 uses DefaultMaxSteps.
func NewRunner(dispatcher *Dispatcher, sink TraceSink, log zerolog.Logger, maxSteps int) *Runner {
	if sink == nil {
		sink = NopSink{}
	}
	if maxSteps <= 0 {
		maxSteps = DefaultMaxSteps
	}
	return &Runner{dispatcher: dispatcher, sink: sink, log: log, maxSteps: maxSteps}
}

// Run drives v from initial until a non-trigger state, a self-loop, a step that reports an
// error, cancellation, or the step ceiling. Patches are merged first-writer-wins; the
// accumulator is seeded with {address, chainID} the first time the run leaves
// ValidateAddress for a non-terminal state.
func (r *Runner) Run(ctx context.Context, traceID string, initial State, v Validation) RunResult {
	state := initial
	acc := v.Asset
	res := RunResult{}

	for steps := 0; IsTriggerState(state); steps++ {
		if steps == r.maxSteps {
			r.log.Warn().Int("max_steps", r.maxSteps).Str("state", state.String()).Str("input", v.Raw).Msg("step ceiling reached, stopping run")
			res.CeilingHit = true
			break
		}
		if err := ctx.Err(); err != nil {
			res.Cancelled = true
			res.Err = err.Error()
			break
		}

		v.State = state
		v.Asset = acc
		out := r.dispatcher.Dispatch(ctx, v)

		if state == ValidateAddress && out.Next != ValidateAddress && !IsTerminalState(out.Next) && acc.Address == "" {
			acc, _ = acc.Merge(seedAsset(v.Raw, v.ChainID))
		}
		if out.Patch != nil {
			merged, ok := acc.Merge(*out.Patch)
			if ok {
				acc = merged
			} else {
				r.log.Warn().Str("state", state.String()).Str("accumulated", acc.Address).Str("patch", out.Patch.Address).Msg("discarding patch for a different address")
			}
		}

		t := Transition{From: state, To: out.Next, Err: out.Err}
		res.Transitions = append(res.Transitions, t)
		r.sink.OnTransition(traceID, t)
		metrics.TransitionsTotal.WithLabelValues(t.From.String(), t.To.String()).Inc()
		r.log.Debug().Str("from", t.From.String()).Str("to", t.To.String()).Str("err", t.Err).Msg("transition")

		prev := state
		state = out.Next
		if out.Err != "" {
			res.Err = out.Err
			break
		}
		if state == prev {
			break
		}
	}

	res.Final = state
	res.Asset = acc
	return res
}

func seedAsset(raw string, chainID uint64) asset.Asset {
	raw = strings.TrimSpace(raw)
	if IsWellFormed(raw) {
		return asset.Asset{Address: common.HexToAddress(raw).Hex(), ChainID: chainID}
	}
	return asset.Asset{Address: raw, ChainID: chainID}
}
