package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sponsorCoinAdmin/spcoin-nextjs-front-end-sub000/internal/app"
	"github.com/sponsorCoinAdmin/spcoin-nextjs-front-end-sub000/internal/assetinput"
	"github.com/sponsorCoinAdmin/spcoin-nextjs-front-end-sub000/internal/chain"
	"github.com/sponsorCoinAdmin/spcoin-nextjs-front-end-sub000/internal/metrics"
)

type validateOptions struct {
	rpcURL      string
	chainID     uint64
	selection   string
	peer        string
	account     string
	preview     bool
	listPick    bool
	tracePath   string
	metricsAddr string
}

func newValidateCmd(root *rootOptions) *cobra.Command {
	opts := &validateOptions{}
	cmd := &cobra.Command{
		Use:   "validate <address>",
		Short: "Validate one address for a selection panel",
		Long: `Validate runs the full validation graph for <address> and prints the outcome
and the resulting trade selections as JSON.
Example: assetcheck validate 0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48 --selection BUY_SELECT_PANEL --chain-id 1`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := root.load()
			if err != nil {
				return err
			}
			if opts.rpcURL != "" {
				cfg.Chain.RPCURL = opts.rpcURL
			}
			if opts.chainID != 0 {
				cfg.Chain.ChainID = opts.chainID
			}
			if opts.account != "" {
				cfg.Chain.Account = opts.account
			}
			if opts.tracePath != "" {
				cfg.Trace.Path = opts.tracePath
			}
			metricsAddr := cfg.App.MetricsAddr
			if opts.metricsAddr != "" {
				metricsAddr = opts.metricsAddr
			}
			if metricsAddr != "" {
				_ = metrics.Serve(metricsAddr)
				log.Info().Str("addr", metricsAddr).Msg("metrics up")
			}

			ctx := cmd.Context()
			client, err := chain.Dial(ctx, cfg.Chain.RPCURL,
				chain.WithRateLimit(cfg.Chain.RequestsPerSecond, cfg.Chain.Burst),
				chain.WithLogger(log))
			if err != nil {
				return err
			}
			defer client.Close()

			stack, err := app.New(ctx, cfg, client, log)
			if err != nil {
				return err
			}
			defer stack.Close()

			res, err := stack.Validate(ctx, app.Request{
				Selection:   assetinput.Selection(opts.selection),
				Input:       args[0],
				Peer:        opts.peer,
				ListPick:    opts.listPick,
				PreviewOnly: opts.preview,
			})
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			if err := enc.Encode(res); err != nil {
				return err
			}
			if assetinput.IsErrorState(res.Outcome.State) {
				return fmt.Errorf("%s: %s", res.Outcome.State, res.Outcome.Err)
			}
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&opts.rpcURL, "rpc", "", "JSON-RPC endpoint, overrides chain.rpc_url")
	f.Uint64Var(&opts.chainID, "chain-id", 0, "chain id, overrides chain.chain_id")
	f.StringVar(&opts.selection, "selection", string(assetinput.BuySelectPanel), "selection panel the address is picked for (full name or short form, e.g. buy)")
	f.StringVar(&opts.peer, "peer", "", "address already picked in the peer panel")
	f.StringVar(&opts.account, "account", "", "connected wallet account")
	f.BoolVar(&opts.preview, "preview", false, "stop at the preview instead of committing")
	f.BoolVar(&opts.listPick, "list-pick", false, "treat the address as picked from a list rather than typed")
	f.StringVar(&opts.tracePath, "trace", "", "append run traces to this JSONL file")
	f.StringVar(&opts.metricsAddr, "metrics", "", "serve Prometheus metrics on this address")
	return cmd
}
