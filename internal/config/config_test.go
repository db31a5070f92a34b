package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sponsorCoinAdmin/spcoin-nextjs-front-end-sub000/internal/assetinput"
)

func TestLoad(t *testing.T) {
	path := filepath.Join("testdata", "config.yaml")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.App.Name != "assetcheck-test" {
		t.Fatalf("unexpected App.Name: %s", cfg.App.Name)
	}
	if cfg.App.MetricsAddr != ":9108" || cfg.App.LogLevel != "debug" {
		t.Fatalf("unexpected app settings: %+v", cfg.App)
	}
	if cfg.Chain.ChainID != 137 || cfg.Chain.RequestsPerSecond != 8 || cfg.Chain.Burst != 4 {
		t.Fatalf("unexpected chain settings: %+v", cfg.Chain)
	}
	if cfg.Engine.MaxSteps != 20 || cfg.Engine.LogoRoot != "/assets/blockchains" {
		t.Fatalf("unexpected engine settings: %+v", cfg.Engine)
	}
	if cfg.Registry.LifeWindowMins != 60 || len(cfg.Registry.Known) != 1 {
		t.Fatalf("unexpected registry settings: %+v", cfg.Registry)
	}
	known := cfg.Registry.Known[0]
	if known.Symbol != "USDC" || known.ChainID != 137 || known.Decimals == nil || *known.Decimals != 6 {
		t.Fatalf("unexpected known asset: %+v", known)
	}
	if !cfg.Redis.Enabled || cfg.Redis.KeyPrefix != "test:" {
		t.Fatalf("unexpected redis settings: %+v", cfg.Redis)
	}
	if cfg.Trace.Capacity != 100 {
		t.Fatalf("unexpected trace capacity: %d", cfg.Trace.Capacity)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected valid config: %v", err)
	}
}

func TestLoadTOML(t *testing.T) {
	cfg, err := Load(filepath.Join("testdata", "config.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.App.Name != "assetcheck-toml" || cfg.App.LogLevel != "warn" {
		t.Fatalf("unexpected app settings: %+v", cfg.App)
	}
	if cfg.Chain.ChainID != 1 || cfg.Chain.RequestsPerSecond != 5.5 {
		t.Fatalf("unexpected chain settings: %+v", cfg.Chain)
	}
	if len(cfg.Registry.Known) != 1 || cfg.Registry.Known[0].Symbol != "DAI" {
		t.Fatalf("unexpected known assets: %+v", cfg.Registry.Known)
	}
	if !cfg.Trace.Otel {
		t.Fatalf("expected otel tracing enabled")
	}
	table, err := cfg.PolicyTable()
	if err != nil {
		t.Fatalf("policy table: %v", err)
	}
	if table[assetinput.SellSelectPanel][assetinput.CheckAccountRequired] {
		t.Fatalf("expected account requirement switched off")
	}
}

func TestPolicyTableOverlaysDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join("testdata", "config.yaml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	table, err := cfg.PolicyTable()
	if err != nil {
		t.Fatalf("policy table: %v", err)
	}
	if table[assetinput.BuySelectPanel][assetinput.CheckOnChain] {
		t.Fatalf("expected on-chain check disabled for buy panel")
	}
	if !table[assetinput.BuySelectPanel][assetinput.CheckResolve] {
		t.Fatalf("expected untouched defaults to survive")
	}
	if !table[assetinput.RecipientSelectPanel][assetinput.CheckAccountRequired] {
		t.Fatalf("expected case-insensitive policy names")
	}

	cfg.Policy = map[string]map[string]bool{"BUY_SELECT_PANEL": {"NOT_A_CHECK": true}}
	if _, err := cfg.PolicyTable(); err == nil {
		t.Fatalf("expected unknown check to be rejected")
	}
	cfg.Policy = map[string]map[string]bool{"SWAP_PANEL": {}}
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected unknown selection to be rejected")
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"missing chain id", func(c *Config) { c.Chain.ChainID = 0 }},
		{"negative rate", func(c *Config) { c.Chain.RequestsPerSecond = -1 }},
		{"negative steps", func(c *Config) { c.Engine.MaxSteps = -1 }},
		{"bad native", func(c *Config) { c.Chain.Native.Address = "0x12" }},
		{"redis without addr", func(c *Config) { c.Redis = Redis{Enabled: true} }},
	}
	for _, tc := range cases {
		cfg := &Config{Chain: Chain{ChainID: 1}}
		tc.mutate(cfg)
		if err := cfg.Validate(); err == nil {
			t.Fatalf("%s: expected validation error", tc.name)
		}
	}
}

func TestNativeAssetDefaults(t *testing.T) {
	n := Chain{Native: Native{Symbol: "POL"}}.NativeAsset()
	if n.Symbol != "POL" || n.Address != assetinput.DefaultNativeAsset.Address || n.Decimals != 18 {
		t.Fatalf("unexpected native asset %+v", n)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.yaml")
	in := &Config{App: App{Name: "rt"}, Chain: Chain{ChainID: 10, RPCURL: "http://node"}}
	if err := Save(path, in); err != nil {
		t.Fatalf("save: %v", err)
	}
	out, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if out.App.Name != "rt" || out.Chain.ChainID != 10 || out.Chain.RPCURL != "http://node" {
		t.Fatalf("unexpected round trip %+v", out)
	}
	if err := Save(path, nil); err == nil {
		t.Fatalf("expected error saving nil config")
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatalf("expected error for missing file")
	}
	bad := filepath.Join(t.TempDir(), "config.ini")
	if err := os.WriteFile(bad, []byte("x=1"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := Load(bad); err == nil {
		t.Fatalf("expected error for unsupported format")
	}
}
