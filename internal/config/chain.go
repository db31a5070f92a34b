package config

import "github.com/sponsorCoinAdmin/spcoin-nextjs-front-end-sub000/internal/assetinput"

// Chain defines the network endpoint, read throttling and native asset of the chain being
// validated against.
type Chain struct {
	RPCURL            string  `yaml:"rpc_url" toml:"rpc_url"`
	ChainID           uint64  `yaml:"chain_id" toml:"chain_id"`
	RequestsPerSecond float64 `yaml:"requests_per_second" toml:"requests_per_second"`
	Burst             int     `yaml:"burst" toml:"burst"`
	Account           string  `yaml:"account" toml:"account"` // connected wallet, optional
	Native            Native  `yaml:"native" toml:"native"`
}

// Native overrides the native sentinel and its metadata. Empty fields keep the defaults.
type Native struct {
	Address  string `yaml:"address" toml:"address"`
	Symbol   string `yaml:"symbol" toml:"symbol"`
	Name     string `yaml:"name" toml:"name"`
	Decimals uint8  `yaml:"decimals" toml:"decimals"`
}

// NativeAsset merges the configured native asset over assetinput.DefaultNativeAsset.
func (c Chain) NativeAsset() assetinput.NativeAsset {
	n := assetinput.DefaultNativeAsset
	if c.Native.Address != "" {
		n.Address = c.Native.Address
	}
	if c.Native.Symbol != "" {
		n.Symbol = c.Native.Symbol
	}
	if c.Native.Name != "" {
		n.Name = c.Native.Name
	}
	if c.Native.Decimals != 0 {
		n.Decimals = c.Native.Decimals
	}
	return n
}
