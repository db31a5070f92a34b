package assetinput

import (
	"context"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"

	"github.com/sponsorCoinAdmin/spcoin-nextjs-front-end-sub000/internal/asset"
)

// LogoPath is where locally served artwork for address lives under root.
func LogoPath(root string, chainID uint64, address string) string {
	return fmt.Sprintf("%s/%d/contracts/%s/logo.png", strings.TrimRight(root, "/"), chainID, common.HexToAddress(address).Hex())
}

func previewLocal(ctx context.Context, v Validation) StepResult {
	addr := v.address()
	if v.Broken != nil && v.Broken.Contains(ctx, v.ChainID, addr) {
		v.Log.Debug().Str("address", addr).Msg("address is in the seen-broken set")
		return StepResult{Next: PreviewContractNotFoundLocally}
	}
	if v.Registry != nil {
		if known, ok := v.Registry.Lookup(ctx, v.ChainID, addr); ok {
			v.Log.Debug().Str("address", addr).Str("symbol", known.Symbol).Msg("asset known locally")
			return StepResult{Next: ValidateExistsOnChain, Patch: &known}
		}
	}
	if v.LogoRoot == "" {
		return StepResult{Next: ValidateExistsOnChain}
	}
	return StepResult{
		Next:  ValidateExistsOnChain,
		Patch: &asset.Asset{LogoURL: LogoPath(v.LogoRoot, v.ChainID, addr)},
	}
}

// Nothing usable is held locally; go straight to the chain without local artwork.
func previewNotFoundLocally(_ context.Context, _ Validation) StepResult {
	return StepResult{Next: ValidateExistsOnChain}
}
