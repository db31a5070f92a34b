// Package chain exposes the chain-query surface consumed by the asset validation engine.
package chain

import (
	"context"
	"errors"

	"github.com/ethereum/go-ethereum/common"
)

// Field names a metadata read supported by ReadField.
type Field string

const (
	// FieldSymbol reads the ERC-20 ticker.
	FieldSymbol Field = "symbol"
	// FieldName reads the ERC-20 display name.
	FieldName Field = "name"
	// FieldDecimals reads the ERC-20 precision, formatted as a base-10 string.
	FieldDecimals Field = "decimals"
)

var (
	// ErrUnknownField is returned for fields the client cannot read.
	ErrUnknownField = errors.New("unknown field")
	// ErrEmptyResult is returned when a call succeeds but returns no data.
	ErrEmptyResult = errors.New("empty call result")
)

// Client answers the two questions the validation engine asks of a chain. Each call may
// fail independently; callers are expected to tolerate partial failure.
type Client interface {
	HasCode(ctx context.Context, address common.Address) (bool, error)
	ReadField(ctx context.Context, address common.Address, field Field) (string, error)
}
