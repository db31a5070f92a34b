package assetinput

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/sponsorCoinAdmin/spcoin-nextjs-front-end-sub000/internal/asset"
)

type memorySink struct {
	events      []string
	started     []TraceStart
	transitions []Transition
	finished    []State
}

func (m *memorySink) OnStart(s TraceStart) {
	m.started = append(m.started, s)
	m.events = append(m.events, "start:"+s.ID)
}

func (m *memorySink) OnTransition(id string, t Transition) {
	m.transitions = append(m.transitions, t)
	m.events = append(m.events, "transition:"+id)
}

func (m *memorySink) OnFinish(id string, s State) {
	m.finished = append(m.finished, s)
	m.events = append(m.events, "finish:"+id)
}

func step(next State, patch *asset.Asset) Validator {
	return func(context.Context, Validation) StepResult { return StepResult{Next: next, Patch: patch} }
}

func emptyPolicy() *Policy { return NewPolicy(nil, nil, zerolog.Nop()) }

func TestRunnerStepCeilingOnCyclicGraph(t *testing.T) {
	cyclic := Graph{
		ValidateAddress:    {Step: step(TestDuplicateInput, nil)},
		TestDuplicateInput: {Step: step(ValidateAddress, nil)},
	}
	var buf bytes.Buffer
	runner := NewRunner(NewDispatcher(cyclic, emptyPolicy()), nil, zerolog.New(&buf), 5)

	res := runner.Run(context.Background(), "t", ValidateAddress, Validation{Raw: usdcAddress, ChainID: 1})
	if !res.CeilingHit {
		t.Fatalf("expected ceiling to be hit")
	}
	if len(res.Transitions) != 5 {
		t.Fatalf("expected 5 transitions, got %d", len(res.Transitions))
	}
	if !strings.Contains(buf.String(), "step ceiling reached") {
		t.Fatalf("expected a ceiling warning, got %s", buf.String())
	}
	if !strings.Contains(buf.String(), `"level":"warn"`) {
		t.Fatalf("ceiling must log at warn level: %s", buf.String())
	}
}

func TestRunnerMergeOnceWins(t *testing.T) {
	graph := Graph{
		ValidateAddress:    {Step: step(TestDuplicateInput, nil)},
		TestDuplicateInput: {Step: step(ResolveAsset, &asset.Asset{Symbol: "FIRST", Name: "First"})},
		ResolveAsset:       {Step: step(EmptyInput, &asset.Asset{Symbol: "SECOND", Decimals: asset.Uint8(8)})},
	}
	runner := NewRunner(NewDispatcher(graph, emptyPolicy()), nil, zerolog.Nop(), 0)

	res := runner.Run(context.Background(), "t", ValidateAddress, Validation{Raw: usdcAddress, ChainID: 10})
	if res.Final != EmptyInput {
		t.Fatalf("expected EmptyInput, got %s", res.Final)
	}
	if res.Asset.Symbol != "FIRST" || res.Asset.Name != "First" {
		t.Fatalf("expected first writer to win, got %+v", res.Asset)
	}
	if res.Asset.Decimals == nil || *res.Asset.Decimals != 8 {
		t.Fatalf("expected unset field to be filled later")
	}
	if res.Asset.Address != usdcAddress || res.Asset.ChainID != 10 {
		t.Fatalf("expected seed of address and chain id, got %+v", res.Asset)
	}
}

func TestRunnerDiscardsPatchForOtherAddress(t *testing.T) {
	graph := Graph{
		ValidateAddress:    {Step: step(TestDuplicateInput, nil)},
		TestDuplicateInput: {Step: step(EmptyInput, &asset.Asset{Address: daiAddress, Symbol: "DAI"})},
	}
	var buf bytes.Buffer
	runner := NewRunner(NewDispatcher(graph, emptyPolicy()), nil, zerolog.New(&buf), 0)

	res := runner.Run(context.Background(), "t", ValidateAddress, Validation{Raw: usdcAddress, ChainID: 1})
	if res.Asset.Symbol != "" || !asset.SameAddress(res.Asset.Address, usdcAddress) {
		t.Fatalf("foreign patch leaked into accumulator: %+v", res.Asset)
	}
	if !strings.Contains(buf.String(), "discarding patch") {
		t.Fatalf("expected discard warning")
	}
}

func TestRunnerDoesNotSeedOnInputErrors(t *testing.T) {
	runner := NewRunner(NewDispatcher(DefaultGraph(), NewPolicy(DefaultPolicy(), nil, zerolog.Nop())), nil, zerolog.Nop(), 0)
	res := runner.Run(context.Background(), "t", ValidateAddress, Validation{Raw: "0x12", Selection: BuySelectPanel, ChainID: 1})
	if res.Final != IncompleteAddress {
		t.Fatalf("expected IncompleteAddress, got %s", res.Final)
	}
	if !res.Asset.IsZero() {
		t.Fatalf("expected empty accumulator, got %+v", res.Asset)
	}
}

func TestRunnerStopsOnNonTriggerAndSelfLoop(t *testing.T) {
	sink := &memorySink{}
	runner := NewRunner(NewDispatcher(DefaultGraph(), emptyPolicy()), sink, zerolog.Nop(), 0)

	res := runner.Run(context.Background(), "t", DuplicateInputError, Validation{})
	if res.Final != DuplicateInputError || len(res.Transitions) != 0 {
		t.Fatalf("expected no work from a terminal state, got %+v", res)
	}

	loop := Graph{ValidatePreview: {Step: step(ValidatePreview, nil)}}
	runner = NewRunner(NewDispatcher(loop, emptyPolicy()), sink, zerolog.Nop(), 0)
	res = runner.Run(context.Background(), "t", ValidatePreview, Validation{})
	if res.Final != ValidatePreview || len(res.Transitions) != 1 {
		t.Fatalf("expected a single self-loop step, got %+v", res)
	}
	if len(sink.transitions) != 1 {
		t.Fatalf("expected the sink to see one transition, got %d", len(sink.transitions))
	}
}

func TestRunnerStopsOnStepError(t *testing.T) {
	graph := Graph{
		UpdateValidatedAsset: {Step: func(context.Context, Validation) StepResult {
			return StepResult{Next: ValidateAddress, Err: "commit refused"}
		}},
		ValidateAddress: {Step: step(TestDuplicateInput, nil)},
	}
	runner := NewRunner(NewDispatcher(graph, emptyPolicy()), nil, zerolog.Nop(), 0)
	res := runner.Run(context.Background(), "t", UpdateValidatedAsset, Validation{})
	if res.Final != ValidateAddress || res.Err != "commit refused" {
		t.Fatalf("expected run to rest at ValidateAddress with the error, got %+v", res)
	}
}
