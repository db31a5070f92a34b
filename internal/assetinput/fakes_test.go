package assetinput

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/common"

	"github.com/sponsorCoinAdmin/spcoin-nextjs-front-end-sub000/internal/asset"
	"github.com/sponsorCoinAdmin/spcoin-nextjs-front-end-sub000/internal/chain"
)

const (
	usdcAddress  = "0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48"
	daiAddress   = "0x6B175474E89094C44Da98b954EedeAC495271d0F"
	walletAddr   = "0x1111111111111111111111111111111111111111"
	missingToken = "0x2222222222222222222222222222222222222222"
)

type fakeChain struct {
	mu         sync.Mutex
	code       map[string]bool
	fields     map[chain.Field]string
	block      string
	entered    chan struct{}
	codeCalls  int
	fieldCalls int
}

func newFakeChain(withCode ...string) *fakeChain {
	f := &fakeChain{
		code: map[string]bool{},
		fields: map[chain.Field]string{
			chain.FieldSymbol:   "USDC",
			chain.FieldName:     "USD Coin",
			chain.FieldDecimals: "6",
		},
		entered: make(chan struct{}, 1),
	}
	for _, addr := range withCode {
		f.code[strings.ToLower(addr)] = true
	}
	return f
}

func (f *fakeChain) HasCode(ctx context.Context, address common.Address) (bool, error) {
	f.mu.Lock()
	f.codeCalls++
	block := f.block != "" && strings.EqualFold(f.block, address.Hex())
	ok := f.code[strings.ToLower(address.Hex())]
	f.mu.Unlock()
	if block {
		f.entered <- struct{}{}
		<-ctx.Done()
		return false, ctx.Err()
	}
	return ok, nil
}

func (f *fakeChain) ReadField(ctx context.Context, address common.Address, field chain.Field) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fieldCalls++
	if v, ok := f.fields[field]; ok {
		return v, nil
	}
	return "", errors.New("execution reverted")
}

func (f *fakeChain) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.codeCalls + f.fieldCalls
}

type fakeBroken struct {
	mu  sync.Mutex
	set map[string]bool
}

func newFakeBroken() *fakeBroken { return &fakeBroken{set: map[string]bool{}} }

func (b *fakeBroken) Contains(_ context.Context, chainID uint64, address string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.set[asset.Key(chainID, address)]
}

func (b *fakeBroken) Add(_ context.Context, chainID uint64, address string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.set[asset.Key(chainID, address)] = true
	return nil
}

func (b *fakeBroken) Remove(_ context.Context, chainID uint64, address string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.set, asset.Key(chainID, address))
	return nil
}

type fakeRegistry struct {
	mu     sync.Mutex
	assets map[string]asset.Asset
}

func newFakeRegistry() *fakeRegistry { return &fakeRegistry{assets: map[string]asset.Asset{}} }

func (r *fakeRegistry) Lookup(_ context.Context, chainID uint64, address string) (asset.Asset, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.assets[asset.Key(chainID, address)]
	return a, ok
}

func (r *fakeRegistry) Remember(_ context.Context, a asset.Asset) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.assets[asset.Key(a.ChainID, a.Address)] = a
	return nil
}

type recorder struct {
	commits []asset.Asset
	closes  []bool
}

func (r *recorder) commit(_ context.Context, a asset.Asset) error {
	r.commits = append(r.commits, a)
	return nil
}

func (r *recorder) close(_ context.Context, fromUser bool) error {
	r.closes = append(r.closes, fromUser)
	return nil
}

func overrides(m map[string]string) OverrideFunc {
	return func(key string) (string, bool) {
		v, ok := m[key]
		return v, ok
	}
}

func states(ts []Transition) []State {
	out := make([]State, 0, len(ts)+1)
	for i, t := range ts {
		if i == 0 {
			out = append(out, t.From)
		}
		out = append(out, t.To)
	}
	return out
}
