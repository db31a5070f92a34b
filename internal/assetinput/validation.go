package assetinput

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/sponsorCoinAdmin/spcoin-nextjs-front-end-sub000/internal/asset"
	"github.com/sponsorCoinAdmin/spcoin-nextjs-front-end-sub000/internal/chain"
)

// CommitFunc hands a validated asset to the owning panel.
type CommitFunc func(ctx context.Context, a asset.Asset) error

// CloseFunc closes the owning selection panel. fromUser is true for typed input.
type CloseFunc func(ctx context.Context, fromUser bool) error

// Registry is the local store of previously validated assets.
type Registry interface {
	Lookup(ctx context.Context, chainID uint64, address string) (asset.Asset, bool)
	Remember(ctx context.Context, a asset.Asset) error
}

// BrokenSet records identifiers that are locally known to be bad.
type BrokenSet interface {
	Contains(ctx context.Context, chainID uint64, address string) bool
	Add(ctx context.Context, chainID uint64, address string) error
	Remove(ctx context.Context, chainID uint64, address string) error
}

// NativeAsset describes the chain's gas token and the sentinel address standing in for it.
type NativeAsset struct {
	Address  string
	Symbol   string
	Name     string
	Decimals uint8
}

// DefaultNativeAsset is the sentinel used by most EVM aggregators for ETH.
var DefaultNativeAsset = NativeAsset{
	Address:  "0xEeeeeEeeeEeEeeEeEeEeeEEEeeeeEeeeeeeeEEeE",
	Symbol:   "ETH",
	Name:     "Ether",
	Decimals: 18,
}

// Validation is the read-only context handed to each step. The runner builds a new value
// for every step with the freshly merged asset.
type Validation struct {
	State          State
	Raw            string
	Selection      Selection
	Kind           Kind
	Client         chain.Client
	ChainID        uint64
	Account        string
	Peer           string
	ManualEntry    bool
	PreviewOnly    bool
	RequireAccount bool
	Broken         BrokenSet
	Registry       Registry
	Native         NativeAsset
	LogoRoot       string
	Commit         CommitFunc
	Close          CloseFunc
	Asset          asset.Asset
	Log            zerolog.Logger
}

// StepResult is what a validator reports back to the runner.
type StepResult struct {
	Next  State
	Err   string
	Patch *asset.Asset
}

// Validator performs the work of a single state.
type Validator func(ctx context.Context, v Validation) StepResult
