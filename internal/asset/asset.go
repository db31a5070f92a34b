// Package asset standardizes the asset record shared between the validation engine, the
// chain readers and the selection panels.
package asset

import (
	"fmt"
	"strings"
)

// Asset is a sparse record describing a token or account. Zero values mean "not resolved";
// Decimals is a pointer because 0 is a legal precision.
type Asset struct {
	Address  string `json:"address,omitempty" yaml:"address,omitempty" toml:"address,omitempty"`
	ChainID  uint64 `json:"chainId,omitempty" yaml:"chain_id,omitempty" toml:"chain_id,omitempty"`
	Symbol   string `json:"symbol,omitempty" yaml:"symbol,omitempty" toml:"symbol,omitempty"`
	Name     string `json:"name,omitempty" yaml:"name,omitempty" toml:"name,omitempty"`
	Decimals *uint8 `json:"decimals,omitempty" yaml:"decimals,omitempty" toml:"decimals,omitempty"`
	LogoURL  string `json:"logoURL,omitempty" yaml:"logo_url,omitempty" toml:"logo_url,omitempty"`
}

// Uint8 returns a pointer to v, handy for building Decimals.
func Uint8(v uint8) *uint8 { return &v }

// IsZero reports whether no field has been set.
func (a Asset) IsZero() bool {
	return a.Address == "" && a.ChainID == 0 && a.Symbol == "" && a.Name == "" && a.Decimals == nil && a.LogoURL == ""
}

// SameAddress compares two identifiers case-insensitively.
func SameAddress(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

// Merge returns a copy of a with every unset field filled from patch. Fields already set on
// a are never overwritten. A patch carrying an address that disagrees with a's address is
// rejected whole and ok is false.
func (a Asset) Merge(patch Asset) (merged Asset, ok bool) {
	if a.Address != "" && patch.Address != "" && !SameAddress(a.Address, patch.Address) {
		return a, false
	}
	merged = a
	if merged.Address == "" {
		merged.Address = patch.Address
	}
	if merged.ChainID == 0 {
		merged.ChainID = patch.ChainID
	}
	if merged.Symbol == "" {
		merged.Symbol = patch.Symbol
	}
	if merged.Name == "" {
		merged.Name = patch.Name
	}
	if merged.Decimals == nil && patch.Decimals != nil {
		merged.Decimals = Uint8(*patch.Decimals)
	}
	if merged.LogoURL == "" {
		merged.LogoURL = patch.LogoURL
	}
	return merged, true
}

// Key identifies an asset across chains, lowercased.
func Key(chainID uint64, address string) string {
	return fmt.Sprintf("%d:%s", chainID, strings.ToLower(strings.TrimSpace(address)))
}

func (a Asset) String() string {
	label := a.Symbol
	if label == "" {
		label = a.Name
	}
	if label == "" {
		return a.Address
	}
	return fmt.Sprintf("%s(%s)", label, a.Address)
}
