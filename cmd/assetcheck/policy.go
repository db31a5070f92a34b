package main

import (
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/sponsorCoinAdmin/spcoin-nextjs-front-end-sub000/internal/assetinput"
)

func newPolicyCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "policy",
		Short: "Print the effective per-panel check table",
		Long:  "Policy prints which checks run for each selection panel after config and *_ENABLED environment overrides.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := root.load()
			if err != nil {
				return err
			}
			table, err := cfg.PolicyTable()
			if err != nil {
				return err
			}
			return yaml.NewEncoder(cmd.OutOrStdout()).Encode(effectivePolicy(assetinput.NewPolicy(table, assetinput.EnvOverrides, log)))
		},
	}
}

func effectivePolicy(p *assetinput.Policy) map[string]map[string]bool {
	out := make(map[string]map[string]bool)
	for _, sel := range assetinput.Selections() {
		row := make(map[string]bool)
		for _, check := range assetinput.Checks() {
			row[string(check)] = p.IsStudyEnabled(sel, check)
		}
		out[string(sel)] = row
	}
	return out
}
