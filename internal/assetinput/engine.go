package assetinput

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/sponsorCoinAdmin/spcoin-nextjs-front-end-sub000/internal/asset"
	"github.com/sponsorCoinAdmin/spcoin-nextjs-front-end-sub000/internal/chain"
	"github.com/sponsorCoinAdmin/spcoin-nextjs-front-end-sub000/internal/metrics"
)

// Args is everything the input layer knows when it asks for a validation. A nil Guard
// disables the re-entrancy check. Kind overrides the kind implied by Selection. ManualEntry
// is true for typed input and false for list picks; nil assumes typed input.
type Args struct {
	RawInput    string
	InputValid  bool
	Guard       *Guard
	Client      chain.Client
	ChainID     uint64
	Account     string
	Selection   Selection
	Kind        Kind
	Peer        string
	ManualEntry *bool
	PreviewOnly bool
	Commit      CommitFunc
	Close       CloseFunc
}

// Outcome is what Start hands back to the input layer.
type Outcome struct {
	State       State        `json:"state"`
	Asset       *asset.Asset `json:"asset,omitempty"`
	Err         string       `json:"err,omitempty"`
	Signature   string       `json:"-"`
	Transitions []Transition `json:"transitions,omitempty"`
}

// Engine validates asset inputs. It holds only immutable configuration, so one Engine can
// serve every panel.
type Engine struct {
	policy     *Policy
	graph      Graph
	dispatcher *Dispatcher
	log        zerolog.Logger
	sink       TraceSink
	maxSteps   int
	native     NativeAsset
	logoRoot   string
	registry   Registry
	broken     BrokenSet
	newID      func() string
}

// Option configures Engine construction parameters.
type Option func(*Engine)

// WithPolicy replaces the default policy.
func WithPolicy(p *Policy) Option { return func(e *Engine) { e.policy = p } }

// WithGraph replaces the canonical state graph.
func WithGraph(g Graph) Option { return func(e *Engine) { e.graph = g } }

// WithLogger attaches a logger.
func WithLogger(log zerolog.Logger) Option {
	return func(e *Engine) { e.log = log.With().Str("component", "assetinput").Logger() }
}

// WithTraceSink records every run to sink.
func WithTraceSink(sink TraceSink) Option {
	return func(e *Engine) {
		if sink != nil {
			e.sink = sink
		}
	}
}

// WithMaxSteps overrides DefaultMaxSteps.
func WithMaxSteps(n int) Option { return func(e *Engine) { e.maxSteps = n } }

// WithNativeAsset overrides the native sentinel and its metadata.
func WithNativeAsset(n NativeAsset) Option { return func(e *Engine) { e.native = n } }

// WithLogoRoot enables local logo paths under root.
func WithLogoRoot(root string) Option { return func(e *Engine) { e.logoRoot = root } }

// WithRegistry attaches the local store of validated assets.
func WithRegistry(r Registry) Option { return func(e *Engine) { e.registry = r } }

// WithBrokenSet attaches the seen-broken set.
func WithBrokenSet(b BrokenSet) Option { return func(e *Engine) { e.broken = b } }

// WithIDGenerator overrides trace session ids.
func WithIDGenerator(fn func() string) Option { return func(e *Engine) { e.newID = fn } }

// New builds an Engine. Without options it uses DefaultPolicy with environment overrides,
// the canonical graph, no tracing and the default native sentinel.
func New(opts ...Option) *Engine {
	e := &Engine{
		log:      zerolog.Nop(),
		sink:     NopSink{},
		maxSteps: DefaultMaxSteps,
		native:   DefaultNativeAsset,
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.policy == nil {
		e.policy = NewPolicy(DefaultPolicy(), EnvOverrides, e.log)
	}
	if e.graph == nil {
		e.graph = DefaultGraph()
	}
	e.dispatcher = NewDispatcher(e.graph, e.policy)
	return e
}

// Policy exposes the engine's policy gate.
func (e *Engine) Policy() *Policy { return e.policy }

// MarkBroken records address as locally broken, e.g. after its artwork failed to load.
func (e *Engine) MarkBroken(ctx context.Context, chainID uint64, address string) error {
	if e.broken == nil {
		return fmt.Errorf("no broken set configured")
	}
	return e.broken.Add(ctx, chainID, address)
}

func ready(args Args) bool { return args.Client != nil && args.ChainID != 0 }

// Start validates args.RawInput. It returns nil when the chain client or chain id is
// missing, when the input signature has not changed since the guard last saw it, or when
// ctx is cancelled mid-run; callers treat nil as "nothing new to show". A cancelled run
// releases its signature from the guard so the same input can be retried.
func (e *Engine) Start(ctx context.Context, args Args) *Outcome {
	if !ready(args) {
		e.log.Debug().Bool("client", args.Client != nil).Uint64("chain_id", args.ChainID).Msg("engine not ready")
		return nil
	}
	sig := Signature(args.RawInput, args.InputValid)
	if args.Guard != nil && !args.Guard.Swap(sig) {
		metrics.GuardSkipsTotal.Inc()
		return nil
	}
	out := e.run(ctx, args, sig)
	if out == nil && args.Guard != nil {
		args.Guard.Release(sig)
	}
	return out
}

func (e *Engine) run(ctx context.Context, args Args, sig string) *Outcome {
	sel := args.Selection
	if sel == "" {
		sel = BuySelectPanel
	}
	kind := args.Kind
	if kind == "" {
		kind = KindOf(sel)
	}
	manual := true
	if args.ManualEntry != nil {
		manual = *args.ManualEntry
	}

	id := e.newID()
	log := e.log.With().Str("run", id).Str("selection", string(sel)).Logger()
	e.sink.OnStart(TraceStart{ID: id, Selection: sel, Input: args.RawInput, ChainID: args.ChainID, ManualEntry: manual})

	v := Validation{
		Raw:            args.RawInput,
		Selection:      sel,
		Kind:           kind,
		Client:         args.Client,
		ChainID:        args.ChainID,
		Account:        args.Account,
		Peer:           args.Peer,
		ManualEntry:    manual,
		PreviewOnly:    args.PreviewOnly,
		RequireAccount: e.policy.IsStudyEnabled(sel, CheckAccountRequired),
		Broken:         e.broken,
		Registry:       e.registry,
		Native:         e.native,
		LogoRoot:       e.logoRoot,
		Commit:         args.Commit,
		Close:          args.Close,
		Log:            log,
	}
	res := NewRunner(e.dispatcher, e.sink, log, e.maxSteps).Run(ctx, id, ValidateAddress, v)
	e.sink.OnFinish(id, res.Final)

	if res.Cancelled || ctx.Err() != nil {
		log.Debug().Str("state", res.Final.String()).Msg("run cancelled, discarding result")
		return nil
	}
	metrics.ValidationsTotal.WithLabelValues(string(sel), res.Final.String()).Inc()

	out := &Outcome{State: res.Final, Err: res.Err, Signature: sig, Transitions: res.Transitions}
	if out.Err == "" {
		out.Err = Message(res.Final)
	}
	if showsAsset(res.Final) && res.Asset.Address != "" {
		a := res.Asset
		out.Asset = &a
	}
	log.Info().Str("state", res.Final.String()).Str("asset", res.Asset.String()).Int("steps", len(res.Transitions)).Msg("validation finished")
	return out
}

func showsAsset(s State) bool {
	switch s {
	case ValidatePreview, UpdateValidatedAsset, CloseSelectPanel:
		return true
	}
	return false
}
