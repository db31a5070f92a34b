// Package config exposes strongly typed application configuration structs loaded from YAML
// or TOML.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/sponsorCoinAdmin/spcoin-nextjs-front-end-sub000/internal/asset"
	"github.com/sponsorCoinAdmin/spcoin-nextjs-front-end-sub000/internal/assetinput"
)

// App captures process-wide runtime settings such as name, environment, metrics, and logging levels.
type App struct {
	Name        string
	Env         string
	MetricsAddr string
	LogLevel    string
}

// Engine tunes the validation runner.
type Engine struct {
	MaxSteps int    `yaml:"max_steps" toml:"max_steps"`
	LogoRoot string `yaml:"logo_root" toml:"logo_root"`
}

// Registry sizes the local known-asset cache and lists assets to preload into it.
type Registry struct {
	LifeWindowMins int           `yaml:"life_window_minutes" toml:"life_window_minutes"`
	HardMaxMB      int           `yaml:"hard_max_mb" toml:"hard_max_mb"`
	MaxEntrySize   int           `yaml:"max_entry_size" toml:"max_entry_size"`
	Known          []asset.Asset `yaml:"known" toml:"known"`
}

// Redis points the shared seen-broken set at a redis server. When disabled the set lives in
// process memory.
type Redis struct {
	Enabled         bool   `yaml:"enabled" toml:"enabled"`
	Addr            string `yaml:"addr" toml:"addr"`
	Password        string `yaml:"password" toml:"password"`
	DB              int    `yaml:"db" toml:"db"`
	KeyPrefix       string `yaml:"key_prefix" toml:"key_prefix"`
	DialTimeoutSecs int    `yaml:"dial_timeout_secs" toml:"dial_timeout_secs"`
}

// Trace selects where validation runs are recorded.
type Trace struct {
	Path     string `yaml:"path" toml:"path"`
	Capacity int    `yaml:"capacity" toml:"capacity"`
	Otel     bool   `yaml:"otel" toml:"otel"`
}

// Config collects every configuration leaf for easy marshaling from YAML.
type Config struct {
	App      App                        `yaml:"app" toml:"app"`
	Chain    Chain                      `yaml:"chain" toml:"chain"`
	Engine   Engine                     `yaml:"engine" toml:"engine"`
	Registry Registry                   `yaml:"registry" toml:"registry"`
	Redis    Redis                      `yaml:"redis" toml:"redis"`
	Trace    Trace                      `yaml:"trace" toml:"trace"`
	Policy   map[string]map[string]bool `yaml:"policy,omitempty" toml:"policy,omitempty"`
}

// Load reads a YAML or TOML file from disk, chosen by extension, and hydrates a Config struct.
func Load(path string) (*Config, error) {
	var config Config
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		if _, err := toml.DecodeFile(path, &config); err != nil {
			return nil, fmt.Errorf("decode toml: %w", err)
		}
	case ".yaml", ".yml", "":
		file, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()
		if err := yaml.NewDecoder(file).Decode(&config); err != nil {
			return nil, fmt.Errorf("decode yaml: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config format %q", ext)
	}
	return &config, nil
}

// Save persists a Config struct to disk as YAML.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("nil config")
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Validate checks the fields the engine cannot run without and the policy vocabulary.
func (c *Config) Validate() error {
	if c.Chain.ChainID == 0 {
		return fmt.Errorf("chain.chain_id is required")
	}
	if c.Chain.RequestsPerSecond < 0 || c.Chain.Burst < 0 {
		return fmt.Errorf("chain rate limit must not be negative")
	}
	if c.Engine.MaxSteps < 0 {
		return fmt.Errorf("engine.max_steps must not be negative")
	}
	if n := c.Chain.Native.Address; n != "" && !assetinput.IsWellFormed(n) {
		return fmt.Errorf("chain.native.address %q is not a valid address", n)
	}
	if c.Redis.Enabled && c.Redis.Addr == "" {
		return fmt.Errorf("redis.addr is required when redis is enabled")
	}
	for _, a := range c.Registry.Known {
		if !assetinput.IsWellFormed(a.Address) {
			return fmt.Errorf("registry.known: %q is not a valid address", a.Address)
		}
	}
	_, err := c.PolicyTable()
	return err
}

// PolicyTable overlays the policy section onto assetinput.DefaultPolicy. Unknown selection or
// check names are rejected.
func (c *Config) PolicyTable() (assetinput.PolicyTable, error) {
	table := assetinput.DefaultPolicy()
	for selName, checks := range c.Policy {
		sel, ok := assetinput.ParseSelection(selName)
		if !ok {
			return nil, fmt.Errorf("policy: unknown selection %q", selName)
		}
		if table[sel] == nil {
			table[sel] = make(map[assetinput.Check]bool)
		}
		for checkName, enabled := range checks {
			check, ok := lookupCheck(checkName)
			if !ok {
				return nil, fmt.Errorf("policy: unknown check %q for %s", checkName, selName)
			}
			table[sel][check] = enabled
		}
	}
	return table, nil
}

func lookupCheck(name string) (assetinput.Check, bool) {
	for _, check := range assetinput.Checks() {
		if strings.EqualFold(string(check), name) {
			return check, true
		}
	}
	return "", false
}
