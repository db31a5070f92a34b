package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/sponsorCoinAdmin/spcoin-nextjs-front-end-sub000/internal/config"
	"github.com/sponsorCoinAdmin/spcoin-nextjs-front-end-sub000/internal/util"
)

type rootOptions struct {
	configPath string
	envFile    string
	logLevel   string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:   "assetcheck",
		Short: "Validate token and account addresses the way the selection panels do",
		Long: `assetcheck runs the asset-input validation engine against a live chain.
Settings come from an optional YAML or TOML config, ASSETCHECK_* environment
variables (a .env file is read when present) and command flags, in that order.`,
		SilenceUsage: true,
	}
	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "config file (.yaml, .yml or .toml)")
	cmd.PersistentFlags().StringVar(&opts.envFile, "env-file", ".env", "dotenv file to load before reading the environment")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level, overrides app.loglevel")

	cmd.AddCommand(newValidateCmd(opts), newPolicyCmd(opts))
	return cmd
}

// load resolves configuration and the logger shared by every subcommand.
func (o *rootOptions) load() (*config.Config, zerolog.Logger, error) {
	config.LoadDotEnv(o.envFile)

	cfg := &config.Config{}
	if o.configPath != "" {
		loaded, err := config.Load(o.configPath)
		if err != nil {
			return nil, zerolog.Nop(), err
		}
		cfg = loaded
	}
	if err := config.ApplyEnv(cfg); err != nil {
		return nil, zerolog.Nop(), fmt.Errorf("environment: %w", err)
	}

	level := cfg.App.LogLevel
	if o.logLevel != "" {
		level = o.logLevel
	}
	return cfg, util.NewConsoleLogger(os.Stderr, level), nil
}
