// Package panel holds the selection panels of a trade: which asset is picked for each
// selection, which panel is open, and the connected wallet account.
package panel

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/rs/zerolog"

	"github.com/sponsorCoinAdmin/spcoin-nextjs-front-end-sub000/internal/asset"
	"github.com/sponsorCoinAdmin/spcoin-nextjs-front-end-sub000/internal/assetinput"
)

var (
	// ErrPanelClosed is returned when committing to a panel that is not open.
	ErrPanelClosed = errors.New("panel: selection panel is not open")
	// ErrWrongChain is returned when a committed asset belongs to another chain.
	ErrWrongChain = errors.New("panel: asset is on a different chain")
)

// Closure records how a panel was last closed.
type Closure struct {
	Selection assetinput.Selection
	FromUser  bool
}

// Trade tracks the selection panels of one trade.
type Trade struct {
	mu       sync.Mutex
	chainID  uint64
	account  string
	selected map[assetinput.Selection]asset.Asset
	open     map[assetinput.Selection]bool
	closures []Closure
	log      zerolog.Logger
}

// Snapshot is a copy of the trade state.
type Snapshot struct {
	ChainID  uint64                               `json:"chainId"`
	Account  string                               `json:"account,omitempty"`
	Selected map[assetinput.Selection]asset.Asset `json:"selected"`
	Open     []assetinput.Selection               `json:"open,omitempty"`
}

// NewTrade creates a trade on chainID with no selections.
func NewTrade(chainID uint64, log zerolog.Logger) *Trade {
	return &Trade{
		chainID:  chainID,
		selected: make(map[assetinput.Selection]asset.Asset),
		open:     make(map[assetinput.Selection]bool),
		log:      log.With().Str("component", "panel").Logger(),
	}
}

// PeerOf returns the selection an asset picked for sel must not duplicate.
func PeerOf(sel assetinput.Selection) (assetinput.Selection, bool) {
	switch sel {
	case assetinput.SellSelectPanel:
		return assetinput.BuySelectPanel, true
	case assetinput.BuySelectPanel:
		return assetinput.SellSelectPanel, true
	case assetinput.RecipientSelectPanel:
		return assetinput.SponsorSelectPanel, true
	case assetinput.SponsorSelectPanel, assetinput.AgentSelectPanel:
		return assetinput.RecipientSelectPanel, true
	}
	return "", false
}

// ChainID returns the chain the trade is on.
func (t *Trade) ChainID() uint64 { return t.chainID }

// Connect sets the wallet account used by panels that require one.
func (t *Trade) Connect(account string) {
	t.mu.Lock()
	t.account = account
	t.mu.Unlock()
}

// Account returns the connected wallet account, if any.
func (t *Trade) Account() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.account
}

// Open shows the panel for sel.
func (t *Trade) Open(sel assetinput.Selection) {
	t.mu.Lock()
	t.open[sel] = true
	t.mu.Unlock()
}

// IsOpen reports whether the panel for sel is shown.
func (t *Trade) IsOpen(sel assetinput.Selection) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.open[sel]
}

// Selected returns the asset picked for sel.
func (t *Trade) Selected(sel assetinput.Selection) (asset.Asset, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	a, ok := t.selected[sel]
	return a, ok
}

// Peer returns the address picked for sel's peer selection, or "".
func (t *Trade) Peer(sel assetinput.Selection) string {
	peer, ok := PeerOf(sel)
	if !ok {
		return ""
	}
	a, _ := t.Selected(peer)
	return a.Address
}

// Commit returns the callback that stores a validated asset into sel.
func (t *Trade) Commit(sel assetinput.Selection) assetinput.CommitFunc {
	return func(_ context.Context, a asset.Asset) error {
		t.mu.Lock()
		defer t.mu.Unlock()
		if !t.open[sel] {
			return ErrPanelClosed
		}
		if a.ChainID != 0 && a.ChainID != t.chainID {
			return ErrWrongChain
		}
		t.selected[sel] = a
		t.log.Info().Str("selection", string(sel)).Str("asset", a.String()).Msg("asset selected")
		return nil
	}
}

// Close returns the callback that hides the panel for sel.
func (t *Trade) Close(sel assetinput.Selection) assetinput.CloseFunc {
	return func(_ context.Context, fromUser bool) error {
		t.mu.Lock()
		defer t.mu.Unlock()
		if !t.open[sel] {
			return ErrPanelClosed
		}
		delete(t.open, sel)
		t.closures = append(t.closures, Closure{Selection: sel, FromUser: fromUser})
		return nil
	}
}

// Closures returns the panel closures seen so far, oldest first.
func (t *Trade) Closures() []Closure {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]Closure(nil), t.closures...)
}

// Args prepares engine arguments for validating raw into sel on top of base, which carries
// the chain client and any caller flags.
func (t *Trade) Args(sel assetinput.Selection, raw string, base assetinput.Args) assetinput.Args {
	args := base
	args.RawInput = raw
	args.InputValid = assetinput.IsWellFormed(raw)
	args.Selection = sel
	args.ChainID = t.chainID
	args.Peer = t.Peer(sel)
	args.Commit = t.Commit(sel)
	args.Close = t.Close(sel)
	if args.Account == "" {
		args.Account = t.Account()
	}
	return args
}

// Snapshot returns a copy of the trade state.
func (t *Trade) Snapshot() Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()
	selected := make(map[assetinput.Selection]asset.Asset, len(t.selected))
	for k, v := range t.selected {
		selected[k] = v
	}
	var open []assetinput.Selection
	for sel, ok := range t.open {
		if ok {
			open = append(open, sel)
		}
	}
	sort.Slice(open, func(i, j int) bool { return open[i] < open[j] })
	return Snapshot{ChainID: t.chainID, Account: t.account, Selected: selected, Open: open}
}
