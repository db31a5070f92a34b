package assetinput

import (
	"encoding/json"
	"testing"
)

func TestStateSets(t *testing.T) {
	for _, s := range States() {
		if IsErrorState(s) && !IsTerminalState(s) {
			t.Fatalf("error state %s must be terminal", s)
		}
		trigger, terminal := IsTriggerState(s), IsTerminalState(s)
		if trigger && terminal && s != CloseSelectPanel {
			t.Fatalf("state %s is both trigger and terminal", s)
		}
		if !trigger && !terminal {
			t.Fatalf("state %s is neither trigger nor terminal", s)
		}
		if IsErrorState(s) && Message(s) == "" {
			t.Fatalf("error state %s has no message", s)
		}
	}
}

func TestParseStateRoundTrip(t *testing.T) {
	for _, s := range States() {
		got, ok := ParseState(s.String())
		if !ok || got != s {
			t.Fatalf("round trip of %s gave %s (%v)", s, got, ok)
		}
	}
	if _, ok := ParseState("NOPE"); ok {
		t.Fatalf("expected unknown name to fail")
	}
	if got := State(99).String(); got != "STATE(99)" {
		t.Fatalf("unexpected name for out of range state: %s", got)
	}
}

func TestStateMarshalsByName(t *testing.T) {
	raw, err := json.Marshal(Transition{From: ValidateAddress, To: TestDuplicateInput})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"from":"VALIDATE_ADDRESS","to":"TEST_DUPLICATE_INPUT"}`
	if string(raw) != want {
		t.Fatalf("got %s want %s", raw, want)
	}
}

func TestClassifyAddress(t *testing.T) {
	cases := []struct {
		raw  string
		want State
	}{
		{"", EmptyInput},
		{"   ", EmptyInput},
		{"0", IncompleteAddress},
		{"0x", IncompleteAddress},
		{"0x1234", IncompleteAddress},
		{"0xabc", IncompleteAddress},
		{"0xab g", InvalidHexInput},
		{"0x" + usdcAddress[2:41], IncompleteAddress},
		{"0xZZ", InvalidHexInput},
		{"hello", InvalidHexInput},
		{"a0b86991c6218b36c1d19d4a2e9eb0ce3606eb48", InvalidAddressInput},
		{usdcAddress + "00", InvalidAddressInput},
		{usdcAddress, TestDuplicateInput},
		{"  " + usdcAddress + "\n", TestDuplicateInput},
		{"0X" + usdcAddress[2:], TestDuplicateInput},
	}
	for _, tc := range cases {
		if got := ClassifyAddress(tc.raw); got != tc.want {
			t.Fatalf("ClassifyAddress(%q) = %s, want %s", tc.raw, got, tc.want)
		}
	}
}
