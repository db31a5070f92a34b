package assetinput

import (
	"context"
	"fmt"
)

// Node binds a state to its validator. Check gates the validator; an empty Check is always
// enabled. Fallback is adopted, with no patch, when the gate is off.
type Node struct {
	Check    Check
	Step     Validator
	Fallback State
}

// Graph is the declarative state graph driven by the runner.
type Graph map[State]Node

// DefaultGraph returns the canonical validation graph.
func DefaultGraph() Graph {
	return Graph{
		ValidateAddress:                {Check: CheckAddress, Step: validateAddress, Fallback: TestDuplicateInput},
		TestDuplicateInput:             {Check: CheckDuplicate, Step: testDuplicate, Fallback: PreviewContractExistsLocally},
		PreviewContractExistsLocally:   {Check: CheckLocalPreview, Step: previewLocal, Fallback: ValidateExistsOnChain},
		PreviewContractNotFoundLocally: {Step: previewNotFoundLocally, Fallback: ValidateExistsOnChain},
		ValidateExistsOnChain:          {Check: CheckOnChain, Step: validateOnChain, Fallback: ResolveAsset},
		ResolveAsset:                   {Check: CheckResolve, Step: resolveAsset, Fallback: ValidatePreview},
		ValidatePreview:                {Check: CheckPreview, Step: validatePreview, Fallback: UpdateValidatedAsset},
		UpdateValidatedAsset:           {Check: CheckCommit, Step: commitAsset, Fallback: CloseSelectPanel},
		CloseSelectPanel:               {Check: CheckClose, Step: closePanel, Fallback: CloseSelectPanel},
	}
}

// Dispatcher runs the validator registered for a state.
type Dispatcher struct {
	graph  Graph
	policy *Policy
}

// NewDispatcher pairs a graph with the policy gating it.
func NewDispatcher(graph Graph, policy *Policy) *Dispatcher {
	return &Dispatcher{graph: graph, policy: policy}
}

// Dispatch processes v.State once. It never panics: an unknown state maps to itself with an
// "unhandled state" error and a panicking validator leaves the state unchanged.
func (d *Dispatcher) Dispatch(ctx context.Context, v Validation) (res StepResult) {
	node, ok := d.graph[v.State]
	if !ok || node.Step == nil {
		return StepResult{Next: v.State, Err: fmt.Sprintf("unhandled state %s", v.State)}
	}
	if node.Check != "" && !d.policy.IsStudyEnabled(v.Selection, node.Check) {
		v.Log.Debug().Str("state", v.State.String()).Str("check", string(node.Check)).Str("fallback", node.Fallback.String()).Msg("check disabled")
		return StepResult{Next: node.Fallback}
	}
	defer func() {
		if r := recover(); r != nil {
			v.Log.Error().Str("state", v.State.String()).Interface("panic", r).Msg("validator panicked")
			res = StepResult{Next: v.State, Err: fmt.Sprintf("validator for %s panicked: %v", v.State, r)}
		}
	}()
	return node.Step(ctx, v)
}
