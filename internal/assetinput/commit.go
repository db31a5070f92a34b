package assetinput

import (
	"context"
	"fmt"
)

func validatePreview(_ context.Context, v Validation) StepResult {
	if v.Asset.Address == "" {
		return StepResult{Next: TokenNotResolvedError}
	}
	if v.PreviewOnly {
		return StepResult{Next: ValidatePreview}
	}
	return StepResult{Next: UpdateValidatedAsset}
}

func commitAsset(ctx context.Context, v Validation) StepResult {
	if v.Commit != nil {
		if err := guarded(func() error { return v.Commit(ctx, v.Asset) }); err != nil {
			v.Log.Error().Err(err).Str("address", v.Asset.Address).Str("selection", string(v.Selection)).Msg("commit callback failed")
			return StepResult{Next: ValidateAddress, Err: err.Error()}
		}
	}
	if v.Registry != nil {
		if err := v.Registry.Remember(ctx, v.Asset); err != nil {
			v.Log.Warn().Err(err).Str("address", v.Asset.Address).Msg("remember validated asset")
		}
	}
	return StepResult{Next: CloseSelectPanel}
}

func closePanel(ctx context.Context, v Validation) StepResult {
	if v.Close != nil {
		if err := guarded(func() error { return v.Close(ctx, v.ManualEntry) }); err != nil {
			v.Log.Error().Err(err).Str("selection", string(v.Selection)).Msg("close callback failed")
			return StepResult{Next: ValidateAddress, Err: err.Error()}
		}
	}
	return StepResult{Next: CloseSelectPanel}
}

// guarded runs a caller-supplied callback, turning a panic into an error.
func guarded(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return fn()
}
