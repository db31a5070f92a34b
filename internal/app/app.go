// Package app wires the validation engine to its configured collaborators: chain client,
// registry, seen-broken set, trace sinks and selection panels.
package app

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"

	"github.com/sponsorCoinAdmin/spcoin-nextjs-front-end-sub000/internal/asset"
	"github.com/sponsorCoinAdmin/spcoin-nextjs-front-end-sub000/internal/assetinput"
	"github.com/sponsorCoinAdmin/spcoin-nextjs-front-end-sub000/internal/chain"
	"github.com/sponsorCoinAdmin/spcoin-nextjs-front-end-sub000/internal/config"
	"github.com/sponsorCoinAdmin/spcoin-nextjs-front-end-sub000/internal/panel"
	"github.com/sponsorCoinAdmin/spcoin-nextjs-front-end-sub000/internal/registry"
	"github.com/sponsorCoinAdmin/spcoin-nextjs-front-end-sub000/internal/trace"
)

// ErrUnknownSelection is returned for a selection panel the engine has no policy for.
var ErrUnknownSelection = errors.New("unknown selection")

// App is a ready-to-use validation stack for one trade.
type App struct {
	Engine *assetinput.Engine
	Trade  *panel.Trade
	Ledger *trace.Ledger
	Cache  *registry.Cache

	client   chain.Client
	log      zerolog.Logger
	closers  []func() error
	mu       sync.Mutex
	sessions map[assetinput.Selection]*assetinput.Session
}

// Request describes one validation asked of the stack.
type Request struct {
	Selection   assetinput.Selection
	Input       string
	Peer        string
	ListPick    bool
	PreviewOnly bool
}

// Result pairs the engine outcome with the trade state after the run.
type Result struct {
	Outcome *assetinput.Outcome `json:"outcome"`
	Trade   panel.Snapshot      `json:"trade"`
}

// New builds the stack from cfg around client. The caller owns client; everything else is
// released by Close.
func New(ctx context.Context, cfg *config.Config, client chain.Client, log zerolog.Logger) (*App, error) {
	if cfg == nil {
		return nil, errors.New("nil config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	a := &App{client: client, log: log}

	cache, err := registry.NewCache(ctx, registry.CacheConfig{
		LifeWindow:   time.Duration(cfg.Registry.LifeWindowMins) * time.Minute,
		HardMaxMB:    cfg.Registry.HardMaxMB,
		MaxEntrySize: cfg.Registry.MaxEntrySize,
	}, log)
	if err != nil {
		return nil, err
	}
	a.Cache = cache
	a.closers = append(a.closers, cache.Close)
	if err := cache.Preload(ctx, cfg.Registry.Known); err != nil {
		a.Close()
		return nil, fmt.Errorf("preload registry: %w", err)
	}

	var broken assetinput.BrokenSet = registry.NewMemoryBroken()
	if cfg.Redis.Enabled {
		rb, err := registry.NewRedisBroken(ctx, registry.RedisConfig{
			Addr:        cfg.Redis.Addr,
			Password:    cfg.Redis.Password,
			DB:          cfg.Redis.DB,
			KeyPrefix:   cfg.Redis.KeyPrefix,
			DialTimeout: time.Duration(cfg.Redis.DialTimeoutSecs) * time.Second,
		}, log)
		if err != nil {
			a.Close()
			return nil, err
		}
		broken = rb
		a.closers = append(a.closers, rb.Close)
	}

	a.Ledger = trace.NewLedger(cfg.Trace.Capacity)
	sinks := []assetinput.TraceSink{a.Ledger}
	if cfg.Trace.Path != "" {
		rec, err := trace.NewJSONLRecorder(cfg.Trace.Path, log)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("open trace file: %w", err)
		}
		sinks = append(sinks, rec)
		a.closers = append(a.closers, rec.Close)
	}
	if cfg.Trace.Otel {
		sinks = append(sinks, trace.NewOtelSink(otel.GetTracerProvider()))
	}

	table, err := cfg.PolicyTable()
	if err != nil {
		a.Close()
		return nil, err
	}
	a.Engine = assetinput.New(
		assetinput.WithLogger(log),
		assetinput.WithPolicy(assetinput.NewPolicy(table, assetinput.EnvOverrides, log)),
		assetinput.WithTraceSink(trace.NewMulti(sinks...)),
		assetinput.WithMaxSteps(cfg.Engine.MaxSteps),
		assetinput.WithNativeAsset(cfg.Chain.NativeAsset()),
		assetinput.WithLogoRoot(cfg.Engine.LogoRoot),
		assetinput.WithRegistry(cache),
		assetinput.WithBrokenSet(broken),
	)
	a.sessions = make(map[assetinput.Selection]*assetinput.Session)
	a.Trade = panel.NewTrade(cfg.Chain.ChainID, log)
	if cfg.Chain.Account != "" {
		a.Trade.Connect(cfg.Chain.Account)
	}
	return a, nil
}

// Validate opens the requested panel, seeds the peer selection when given and runs the
// engine on req.Input.
func (a *App) Validate(ctx context.Context, req Request) (Result, error) {
	sel := assetinput.BuySelectPanel
	if req.Selection != "" {
		var ok bool
		if sel, ok = assetinput.ParseSelection(string(req.Selection)); !ok {
			return Result{}, fmt.Errorf("%w: %q", ErrUnknownSelection, req.Selection)
		}
	}
	if req.Peer != "" {
		if err := a.seedPeer(ctx, sel, req.Peer); err != nil {
			return Result{}, err
		}
	}
	a.Trade.Open(sel)

	manual := !req.ListPick
	args := a.Trade.Args(sel, req.Input, assetinput.Args{
		Client:      a.client,
		ManualEntry: &manual,
		PreviewOnly: req.PreviewOnly,
	})
	out := a.session(sel).Submit(ctx, args)
	if out == nil {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		return Result{}, errors.New("validation skipped: no chain client or unchanged input")
	}
	return Result{Outcome: out, Trade: a.Trade.Snapshot()}, nil
}

// session returns the input session of sel's panel; each panel keeps its own guard.
func (a *App) session(sel assetinput.Selection) *assetinput.Session {
	a.mu.Lock()
	defer a.mu.Unlock()
	s, ok := a.sessions[sel]
	if !ok {
		s = assetinput.NewSession(a.Engine)
		a.sessions[sel] = s
	}
	return s
}

func (a *App) seedPeer(ctx context.Context, sel assetinput.Selection, peer string) error {
	peerSel, ok := panel.PeerOf(sel)
	if !ok {
		return fmt.Errorf("selection %s has no peer", sel)
	}
	if !assetinput.IsWellFormed(peer) {
		return fmt.Errorf("peer %q is not a valid address", peer)
	}
	a.Trade.Open(peerSel)
	if err := a.Trade.Commit(peerSel)(ctx, a.peerAsset(ctx, peer)); err != nil {
		return err
	}
	return a.Trade.Close(peerSel)(ctx, false)
}

func (a *App) peerAsset(ctx context.Context, peer string) asset.Asset {
	chainID := a.Trade.ChainID()
	if known, ok := a.Cache.Lookup(ctx, chainID, peer); ok {
		return known
	}
	return asset.Asset{Address: common.HexToAddress(peer).Hex(), ChainID: chainID}
}

// Close stops in-flight runs and releases every resource New opened, returning the first
// error.
func (a *App) Close() error {
	a.mu.Lock()
	for _, s := range a.sessions {
		s.Stop()
	}
	a.mu.Unlock()

	var first error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil && first == nil {
			first = err
		}
	}
	a.closers = nil
	return first
}
