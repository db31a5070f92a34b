package assetinput

import (
	"context"
	"fmt"
	"strconv"

	"github.com/ethereum/go-ethereum/common"

	"github.com/sponsorCoinAdmin/spcoin-nextjs-front-end-sub000/internal/asset"
	"github.com/sponsorCoinAdmin/spcoin-nextjs-front-end-sub000/internal/chain"
)

const errNoClient = "chain client unavailable"

func (v Validation) isNative(address string) bool {
	return v.Native.Address != "" && asset.SameAddress(address, v.Native.Address)
}

func validateOnChain(ctx context.Context, v Validation) StepResult {
	addr := v.address()
	if v.isNative(addr) {
		return StepResult{Next: ResolveAsset}
	}
	if v.Client == nil {
		v.Log.Error().Str("address", addr).Msg("on-chain check without a chain client")
		return StepResult{Next: ContractNotFoundOnBlockchain, Err: errNoClient}
	}
	if !common.IsHexAddress(addr) {
		return StepResult{Next: ContractNotFoundOnBlockchain, Err: fmt.Sprintf("invalid address %q", addr)}
	}
	hasCode, err := v.Client.HasCode(ctx, common.HexToAddress(addr))
	if err != nil {
		v.Log.Warn().Err(err).Str("address", addr).Msg("code lookup failed")
		return StepResult{Next: ContractNotFoundOnBlockchain, Err: err.Error()}
	}
	if !hasCode {
		if v.Broken != nil {
			if err := v.Broken.Add(ctx, v.ChainID, addr); err != nil {
				v.Log.Warn().Err(err).Str("address", addr).Msg("record broken address")
			}
		}
		return StepResult{Next: ContractNotFoundOnBlockchain}
	}
	if v.Broken != nil && v.Broken.Contains(ctx, v.ChainID, addr) {
		if err := v.Broken.Remove(ctx, v.ChainID, addr); err != nil {
			v.Log.Warn().Err(err).Str("address", addr).Msg("clear broken address")
		}
	}
	return StepResult{Next: ResolveAsset}
}

func resolveAsset(ctx context.Context, v Validation) StepResult {
	addr := v.address()
	if !common.IsHexAddress(addr) {
		return StepResult{Next: ResolveAssetError, Err: fmt.Sprintf("invalid address %q", addr)}
	}
	if v.RequireAccount && v.Account == "" {
		return StepResult{Next: MissingAccountAddress}
	}
	patch := asset.Asset{Address: common.HexToAddress(addr).Hex(), ChainID: v.ChainID}

	if v.Kind == KindAccount {
		return StepResult{Next: ValidatePreview, Patch: &patch}
	}
	if v.isNative(addr) {
		patch.Symbol = v.Native.Symbol
		patch.Name = v.Native.Name
		patch.Decimals = asset.Uint8(v.Native.Decimals)
		return StepResult{Next: ValidatePreview, Patch: &patch}
	}
	if v.Client == nil {
		return StepResult{Next: ResolveAssetError, Err: errNoClient}
	}

	target := common.HexToAddress(addr)
	failed := 0
	if symbol, err := v.Client.ReadField(ctx, target, chain.FieldSymbol); err != nil {
		failed++
		v.Log.Debug().Err(err).Str("address", addr).Msg("symbol read failed")
	} else {
		patch.Symbol = symbol
	}
	if name, err := v.Client.ReadField(ctx, target, chain.FieldName); err != nil {
		failed++
		v.Log.Debug().Err(err).Str("address", addr).Msg("name read failed")
	} else {
		patch.Name = name
	}
	if raw, err := v.Client.ReadField(ctx, target, chain.FieldDecimals); err != nil {
		failed++
		v.Log.Debug().Err(err).Str("address", addr).Msg("decimals read failed")
	} else if decimals, err := strconv.ParseUint(raw, 10, 8); err != nil {
		failed++
		v.Log.Debug().Err(err).Str("address", addr).Str("value", raw).Msg("decimals out of range")
	} else {
		patch.Decimals = asset.Uint8(uint8(decimals))
	}

	switch {
	case failed == 3:
		v.Log.Warn().Str("address", addr).Msg("no metadata readable, continuing with bare asset")
	case failed > 0:
		v.Log.Info().Str("address", addr).Int("failed_reads", failed).Msg("partial metadata resolved")
	}
	return StepResult{Next: ValidatePreview, Patch: &patch}
}
