package assetinput

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
)

// Selection identifies the panel an address is being chosen for.
type Selection string

const (
	SellSelectPanel      Selection = "SELL_SELECT_PANEL"
	BuySelectPanel       Selection = "BUY_SELECT_PANEL"
	RecipientSelectPanel Selection = "RECIPIENT_SELECT_PANEL"
	AgentSelectPanel     Selection = "AGENT_SELECT_PANEL"
	SponsorSelectPanel   Selection = "SPONSOR_SELECT_PANEL"
)

// Kind distinguishes token-like selections from account-like ones.
type Kind string

const (
	KindToken   Kind = "token"
	KindAccount Kind = "account"
)

// KindOf returns the asset kind a selection panel picks.
func KindOf(sel Selection) Kind {
	switch sel {
	case RecipientSelectPanel, AgentSelectPanel, SponsorSelectPanel:
		return KindAccount
	default:
		return KindToken
	}
}

// Check names a gated validation step.
type Check string

const (
	CheckAddress         Check = "VALIDATE_ADDRESS"
	CheckDuplicate       Check = "TEST_DUPLICATE_INPUT"
	CheckLocalPreview    Check = "PREVIEW_LOCAL"
	CheckOnChain         Check = "VALIDATE_EXISTS_ON_CHAIN"
	CheckResolve         Check = "RESOLVE_ASSET"
	CheckPreview         Check = "VALIDATE_PREVIEW"
	CheckCommit          Check = "UPDATE_VALIDATED_ASSET"
	CheckClose           Check = "CLOSE_SELECT_PANEL"
	CheckAccountRequired Check = "ACCOUNT_REQUIRED"
)

// Selections lists every selection panel.
func Selections() []Selection {
	return []Selection{SellSelectPanel, BuySelectPanel, RecipientSelectPanel, AgentSelectPanel, SponsorSelectPanel}
}

// ParseSelection resolves name case-insensitively, accepting the full panel name or its
// short form ("buy" for BUY_SELECT_PANEL).
func ParseSelection(name string) (Selection, bool) {
	name = strings.TrimSpace(name)
	for _, sel := range Selections() {
		full := string(sel)
		if strings.EqualFold(full, name) || strings.EqualFold(strings.TrimSuffix(full, "_SELECT_PANEL"), name) {
			return sel, true
		}
	}
	return "", false
}

// Checks lists every gated check.
func Checks() []Check {
	return []Check{
		CheckAddress, CheckDuplicate, CheckLocalPreview, CheckOnChain, CheckResolve,
		CheckPreview, CheckCommit, CheckClose, CheckAccountRequired,
	}
}

// PolicyTable holds the default enablement of each check per selection.
type PolicyTable map[Selection]map[Check]bool

// OverrideFunc resolves an environment-style override key. ok is false when no override exists.
type OverrideFunc func(key string) (value string, ok bool)

// EnvOverrides reads overrides from the process environment.
func EnvOverrides(key string) (string, bool) { return os.LookupEnv(key) }

// OverrideKey builds the override key for a (selection, check) pair.
func OverrideKey(sel Selection, check Check) string {
	return fmt.Sprintf("%s_%s_ENABLED", sel, check)
}

// DefaultPolicy enables every step for token panels and everything except the code check
// for account panels, since externally owned accounts carry no code.
func DefaultPolicy() PolicyTable {
	token := map[Check]bool{
		CheckAddress:      true,
		CheckDuplicate:    true,
		CheckLocalPreview: true,
		CheckOnChain:      true,
		CheckResolve:      true,
		CheckPreview:      true,
		CheckCommit:       true,
		CheckClose:        true,
	}
	account := map[Check]bool{
		CheckAddress:      true,
		CheckDuplicate:    true,
		CheckLocalPreview: true,
		CheckResolve:      true,
		CheckPreview:      true,
		CheckCommit:       true,
		CheckClose:        true,
	}
	table := PolicyTable{
		SellSelectPanel:      copyChecks(token),
		BuySelectPanel:       copyChecks(token),
		RecipientSelectPanel: copyChecks(account),
		AgentSelectPanel:     copyChecks(account),
		SponsorSelectPanel:   copyChecks(account),
	}
	table[SellSelectPanel][CheckAccountRequired] = true
	return table
}

func copyChecks(in map[Check]bool) map[Check]bool {
	out := make(map[Check]bool, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

// Policy answers whether a check runs for a selection. It is immutable after construction.
type Policy struct {
	table    PolicyTable
	override OverrideFunc
	log      zerolog.Logger
}

// NewPolicy copies table and attaches an optional override resolver.
func NewPolicy(table PolicyTable, override OverrideFunc, log zerolog.Logger) *Policy {
	copied := make(PolicyTable, len(table))
	for sel, checks := range table {
		copied[sel] = copyChecks(checks)
	}
	return &Policy{table: copied, override: override, log: log}
}

// IsStudyEnabled reports whether check is active for sel. A parseable override wins over
// the default table in either direction; rows missing from the table default to disabled.
func (p *Policy) IsStudyEnabled(sel Selection, check Check) bool {
	if p == nil {
		return false
	}
	enabled := p.table[sel][check]
	if p.override == nil {
		return enabled
	}
	key := OverrideKey(sel, check)
	raw, ok := p.override(key)
	if !ok {
		return enabled
	}
	parsed, err := strconv.ParseBool(strings.TrimSpace(raw))
	if err != nil {
		p.log.Warn().Str("key", key).Str("value", raw).Msg("ignoring unparseable policy override")
		return enabled
	}
	if parsed != enabled {
		p.log.Debug().Str("key", key).Bool("default", enabled).Bool("override", parsed).Msg("policy override applied")
	}
	return parsed
}

// Table returns a copy of the default table, for display.
func (p *Policy) Table() PolicyTable {
	out := make(PolicyTable, len(p.table))
	for sel, checks := range p.table {
		out[sel] = copyChecks(checks)
	}
	return out
}
