package assetinput

import (
	"context"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/sponsorCoinAdmin/spcoin-nextjs-front-end-sub000/internal/asset"
)

const addressHexLen = 40

// ClassifyAddress maps raw input onto the state its shape leads to. Only well-formed
// addresses reach TestDuplicateInput.
func ClassifyAddress(raw string) State {
	s := strings.TrimSpace(raw)
	if s == "" {
		return EmptyInput
	}
	body, prefixed := s, false
	switch {
	case len(s) >= 2 && (s[:2] == "0x" || s[:2] == "0X"):
		body, prefixed = s[2:], true
	case s == "0":
		return IncompleteAddress
	}
	if !isHex(body) {
		return InvalidHexInput
	}
	if !prefixed {
		return InvalidAddressInput
	}
	switch {
	case len(body) < addressHexLen:
		return IncompleteAddress
	case len(body) > addressHexLen:
		return InvalidAddressInput
	}
	return TestDuplicateInput
}

// IsWellFormed reports whether raw is a complete 0x-prefixed 20-byte hex address.
func IsWellFormed(raw string) bool { return ClassifyAddress(raw) == TestDuplicateInput }

// isHex reports whether s is bare hex of any length, padding odd lengths to a whole byte.
func isHex(s string) bool {
	if len(s)%2 == 1 {
		s = "0" + s
	}
	_, err := hexutil.Decode("0x" + s)
	return err == nil
}

func validateAddress(_ context.Context, v Validation) StepResult {
	return StepResult{Next: ClassifyAddress(v.Raw)}
}

func testDuplicate(_ context.Context, v Validation) StepResult {
	candidate := v.address()
	if v.Peer != "" && asset.SameAddress(candidate, v.Peer) {
		return StepResult{Next: DuplicateInputError, Err: duplicateMessage(v.Selection)}
	}
	return StepResult{Next: PreviewContractExistsLocally}
}

func duplicateMessage(sel Selection) string {
	switch sel {
	case SellSelectPanel:
		return "Sell token cannot be the same as the buy token"
	case BuySelectPanel:
		return "Buy token cannot be the same as the sell token"
	case RecipientSelectPanel:
		return "Recipient cannot be the same as the sponsor account"
	case SponsorSelectPanel:
		return "Sponsor cannot be the same as the recipient account"
	case AgentSelectPanel:
		return "Agent cannot be the same as the recipient account"
	default:
		return Message(DuplicateInputError)
	}
}

func (v Validation) address() string {
	if v.Asset.Address != "" {
		return v.Asset.Address
	}
	return strings.TrimSpace(v.Raw)
}
