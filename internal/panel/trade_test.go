package panel

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/sponsorCoinAdmin/spcoin-nextjs-front-end-sub000/internal/asset"
	"github.com/sponsorCoinAdmin/spcoin-nextjs-front-end-sub000/internal/assetinput"
)

const (
	usdc   = "0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48"
	dai    = "0x6B175474E89094C44Da98b954EedeAC495271d0F"
	wallet = "0x1111111111111111111111111111111111111111"
)

func TestCommitAndCloseRequireOpenPanel(t *testing.T) {
	ctx := context.Background()
	trade := NewTrade(1, zerolog.Nop())
	commit := trade.Commit(assetinput.BuySelectPanel)

	if err := commit(ctx, asset.Asset{Address: usdc, ChainID: 1}); !errors.Is(err, ErrPanelClosed) {
		t.Fatalf("expected ErrPanelClosed, got %v", err)
	}

	trade.Open(assetinput.BuySelectPanel)
	if err := commit(ctx, asset.Asset{Address: usdc, ChainID: 5}); !errors.Is(err, ErrWrongChain) {
		t.Fatalf("expected ErrWrongChain, got %v", err)
	}
	if err := commit(ctx, asset.Asset{Address: usdc, ChainID: 1, Symbol: "USDC"}); err != nil {
		t.Fatalf("commit: %v", err)
	}
	if err := trade.Close(assetinput.BuySelectPanel)(ctx, true); err != nil {
		t.Fatalf("close: %v", err)
	}
	if trade.IsOpen(assetinput.BuySelectPanel) {
		t.Fatalf("panel should be closed")
	}
	if err := trade.Close(assetinput.BuySelectPanel)(ctx, true); !errors.Is(err, ErrPanelClosed) {
		t.Fatalf("expected second close to fail, got %v", err)
	}

	got, ok := trade.Selected(assetinput.BuySelectPanel)
	if !ok || got.Symbol != "USDC" {
		t.Fatalf("unexpected selection %+v", got)
	}
	closures := trade.Closures()
	if len(closures) != 1 || !closures[0].FromUser || closures[0].Selection != assetinput.BuySelectPanel {
		t.Fatalf("unexpected closures %+v", closures)
	}
}

func TestPeerOf(t *testing.T) {
	cases := map[assetinput.Selection]assetinput.Selection{
		assetinput.SellSelectPanel:      assetinput.BuySelectPanel,
		assetinput.BuySelectPanel:       assetinput.SellSelectPanel,
		assetinput.RecipientSelectPanel: assetinput.SponsorSelectPanel,
		assetinput.SponsorSelectPanel:   assetinput.RecipientSelectPanel,
		assetinput.AgentSelectPanel:     assetinput.RecipientSelectPanel,
	}
	for sel, want := range cases {
		got, ok := PeerOf(sel)
		if !ok || got != want {
			t.Fatalf("PeerOf(%s) = %s, want %s", sel, got, want)
		}
	}
	if _, ok := PeerOf("OTHER"); ok {
		t.Fatalf("expected no peer for unknown selection")
	}
}

func TestArgsCarryPeerAndAccount(t *testing.T) {
	ctx := context.Background()
	trade := NewTrade(1, zerolog.Nop())
	trade.Connect(wallet)
	trade.Open(assetinput.SellSelectPanel)
	if err := trade.Commit(assetinput.SellSelectPanel)(ctx, asset.Asset{Address: dai, ChainID: 1}); err != nil {
		t.Fatalf("commit: %v", err)
	}

	args := trade.Args(assetinput.BuySelectPanel, " "+usdc, assetinput.Args{PreviewOnly: true})
	if args.Peer != dai || args.Account != wallet || args.ChainID != 1 {
		t.Fatalf("unexpected args %+v", args)
	}
	if !args.InputValid || !args.PreviewOnly || args.Selection != assetinput.BuySelectPanel {
		t.Fatalf("unexpected args %+v", args)
	}
	if args.Commit == nil || args.Close == nil {
		t.Fatalf("expected callbacks to be bound")
	}

	snap := trade.Snapshot()
	if len(snap.Open) != 1 || snap.Open[0] != assetinput.SellSelectPanel || snap.Account != wallet {
		t.Fatalf("unexpected snapshot %+v", snap)
	}
}
