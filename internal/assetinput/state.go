// Package assetinput validates a typed token or account address by driving it through a
// declarative state graph of asynchronous checks until it settles on a validated asset or
// an error state.
package assetinput

import "fmt"

// State is a node of the validation state graph.
type State int

const (
	EmptyInput State = iota
	InvalidHexInput
	ValidateAddress
	IncompleteAddress
	InvalidAddressInput
	TestDuplicateInput
	DuplicateInputError
	PreviewContractExistsLocally
	PreviewContractNotFoundLocally
	ValidateExistsOnChain
	ContractNotFoundOnBlockchain
	ResolveAsset
	TokenNotResolvedError
	ResolveAssetError
	MissingAccountAddress
	ValidatePreview
	UpdateValidatedAsset
	CloseSelectPanel
)

var stateNames = [...]string{
	EmptyInput:                     "EMPTY_INPUT",
	InvalidHexInput:                "INVALID_HEX_INPUT",
	ValidateAddress:                "VALIDATE_ADDRESS",
	IncompleteAddress:              "INCOMPLETE_ADDRESS",
	InvalidAddressInput:            "INVALID_ADDRESS_INPUT",
	TestDuplicateInput:             "TEST_DUPLICATE_INPUT",
	DuplicateInputError:            "DUPLICATE_INPUT_ERROR",
	PreviewContractExistsLocally:   "PREVIEW_CONTRACT_EXISTS_LOCALLY",
	PreviewContractNotFoundLocally: "PREVIEW_CONTRACT_NOT_FOUND_LOCALLY",
	ValidateExistsOnChain:          "VALIDATE_EXISTS_ON_CHAIN",
	ContractNotFoundOnBlockchain:   "CONTRACT_NOT_FOUND_ON_BLOCKCHAIN",
	ResolveAsset:                   "RESOLVE_ASSET",
	TokenNotResolvedError:          "TOKEN_NOT_RESOLVED_ERROR",
	ResolveAssetError:              "RESOLVE_ASSET_ERROR",
	MissingAccountAddress:          "MISSING_ACCOUNT_ADDRESS",
	ValidatePreview:                "VALIDATE_PREVIEW",
	UpdateValidatedAsset:           "UPDATE_VALIDATED_ASSET",
	CloseSelectPanel:               "CLOSE_SELECT_PANEL",
}

// States lists every state in graph order.
func States() []State {
	out := make([]State, len(stateNames))
	for i := range stateNames {
		out[i] = State(i)
	}
	return out
}

func (s State) String() string {
	if s >= 0 && int(s) < len(stateNames) {
		return stateNames[s]
	}
	return fmt.Sprintf("STATE(%d)", int(s))
}

// MarshalText renders the state by name so traces and JSON output stay readable.
func (s State) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// UnmarshalText accepts the canonical state names produced by MarshalText.
func (s *State) UnmarshalText(b []byte) error {
	st, ok := ParseState(string(b))
	if !ok {
		return fmt.Errorf("unknown state %q", b)
	}
	*s = st
	return nil
}

// ParseState looks a state up by its canonical name.
func ParseState(name string) (State, bool) {
	for i, n := range stateNames {
		if n == name {
			return State(i), true
		}
	}
	return 0, false
}

var (
	triggerStates = setOf(
		ValidateAddress,
		TestDuplicateInput,
		PreviewContractExistsLocally,
		PreviewContractNotFoundLocally,
		ValidateExistsOnChain,
		ResolveAsset,
		ValidatePreview,
		UpdateValidatedAsset,
		CloseSelectPanel,
	)
	terminalStates = setOf(
		EmptyInput,
		InvalidHexInput,
		IncompleteAddress,
		InvalidAddressInput,
		DuplicateInputError,
		ContractNotFoundOnBlockchain,
		TokenNotResolvedError,
		ResolveAssetError,
		MissingAccountAddress,
		CloseSelectPanel,
	)
	errorStates = setOf(
		InvalidHexInput,
		InvalidAddressInput,
		DuplicateInputError,
		ContractNotFoundOnBlockchain,
		TokenNotResolvedError,
		ResolveAssetError,
		MissingAccountAddress,
	)
)

func setOf(states ...State) map[State]struct{} {
	out := make(map[State]struct{}, len(states))
	for _, s := range states {
		out[s] = struct{}{}
	}
	return out
}

// IsTriggerState reports whether s still needs processing by the dispatcher.
func IsTriggerState(s State) bool { _, ok := triggerStates[s]; return ok }

// IsTerminalState reports whether the runner hands control back at s. CloseSelectPanel is
// both terminal and a trigger: its step runs the close callback and then self-loops.
func IsTerminalState(s State) bool { _, ok := terminalStates[s]; return ok }

// IsErrorState reports whether s is a validation failure for this attempt.
func IsErrorState(s State) bool { _, ok := errorStates[s]; return ok }

// Message returns the stable user-facing text for a resting state, or "" when the state
// needs no explanation.
func Message(s State) string {
	switch s {
	case InvalidHexInput:
		return "Address contains non-hexadecimal characters"
	case IncompleteAddress:
		return "Address is incomplete"
	case InvalidAddressInput:
		return "Address must be 0x followed by 40 hexadecimal characters"
	case DuplicateInputError:
		return "Selected asset duplicates the opposite selection"
	case ContractNotFoundOnBlockchain:
		return "No contract found at this address on the current network"
	case TokenNotResolvedError:
		return "Token could not be resolved"
	case ResolveAssetError:
		return "Asset metadata could not be resolved"
	case MissingAccountAddress:
		return "Connect a wallet account to continue"
	default:
		return ""
	}
}
