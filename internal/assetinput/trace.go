package assetinput

// TraceStart opens a trace session for one run.
type TraceStart struct {
	ID          string    `json:"id"`
	Selection   Selection `json:"selection"`
	Input       string    `json:"input"`
	ChainID     uint64    `json:"chainId"`
	ManualEntry bool      `json:"manualEntry"`
}

// Transition is one edge taken by the runner.
type Transition struct {
	From State  `json:"from"`
	To   State  `json:"to"`
	Err  string `json:"err,omitempty"`
}

// TraceSink records runs for diagnostics. Implementations must be safe for concurrent use
// since sessions from overlapping runs may interleave.
type TraceSink interface {
	OnStart(start TraceStart)
	OnTransition(id string, t Transition)
	OnFinish(id string, final State)
}

// NopSink discards everything.
type NopSink struct{}

func (NopSink) OnStart(TraceStart) {}
func (NopSink) OnTransition(string, Transition) {}
func (NopSink) OnFinish(string, State) {}
