package chain

import (
	"bytes"
	"context"
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/sponsorCoinAdmin/spcoin-nextjs-front-end-sub000/internal/metrics"
)

const erc20ABI = `[
	{"constant":true,"inputs":[],"name":"name","outputs":[{"name":"","type":"string"}],"stateMutability":"view","type":"function"},
	{"constant":true,"inputs":[],"name":"symbol","outputs":[{"name":"","type":"string"}],"stateMutability":"view","type":"function"},
	{"constant":true,"inputs":[],"name":"decimals","outputs":[{"name":"","type":"uint8"}],"stateMutability":"view","type":"function"}
]`

// Some early tokens (MKR, SAI) return bytes32 for name and symbol.
const legacyERC20ABI = `[
	{"constant":true,"inputs":[],"name":"name","outputs":[{"name":"","type":"bytes32"}],"stateMutability":"view","type":"function"},
	{"constant":true,"inputs":[],"name":"symbol","outputs":[{"name":"","type":"bytes32"}],"stateMutability":"view","type":"function"}
]`

// Backend is the subset of the Ethereum RPC used by EVMClient. *ethclient.Client satisfies it.
type Backend interface {
	CodeAt(ctx context.Context, account common.Address, blockNumber *big.Int) ([]byte, error)
	CallContract(ctx context.Context, call ethereum.CallMsg, blockNumber *big.Int) ([]byte, error)
}

// EVMClient implements Client against an EVM JSON-RPC node.
type EVMClient struct {
	backend Backend
	log     zerolog.Logger
	limiter *rate.Limiter
	erc20   abi.ABI
	legacy  abi.ABI
}

// Option configures EVMClient construction parameters.
type Option func(*EVMClient)

// WithRateLimit throttles RPC calls to rps requests per second. Non-positive rps disables throttling.
func WithRateLimit(rps float64, burst int) Option {
	return func(c *EVMClient) {
		if rps <= 0 {
			c.limiter = nil
			return
		}
		if burst <= 0 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

// WithLogger attaches a logger for per-call debug output.
func WithLogger(log zerolog.Logger) Option {
	return func(c *EVMClient) { c.log = log.With().Str("component", "chain").Logger() }
}

// NewEVMClient wraps backend with ERC-20 metadata decoding.
func NewEVMClient(backend Backend, opts ...Option) (*EVMClient, error) {
	if backend == nil {
		return nil, fmt.Errorf("evm backend required")
	}
	erc20, err := abi.JSON(strings.NewReader(erc20ABI))
	if err != nil {
		return nil, fmt.Errorf("parse erc20 abi: %w", err)
	}
	legacy, err := abi.JSON(strings.NewReader(legacyERC20ABI))
	if err != nil {
		return nil, fmt.Errorf("parse legacy erc20 abi: %w", err)
	}
	c := &EVMClient{backend: backend, log: zerolog.Nop(), erc20: erc20, legacy: legacy}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Dial opens an RPC connection to endpoint and wraps it.
func Dial(ctx context.Context, endpoint string, opts ...Option) (*EVMClient, error) {
	trimmed := strings.TrimSpace(endpoint)
	if trimmed == "" {
		return nil, fmt.Errorf("rpc endpoint required")
	}
	rpc, err := ethclient.DialContext(ctx, trimmed)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", trimmed, err)
	}
	return NewEVMClient(rpc, opts...)
}

// Close releases the underlying connection when the backend holds one.
func (c *EVMClient) Close() {
	if closer, ok := c.backend.(interface{ Close() }); ok {
		closer.Close()
	}
}

// HasCode reports whether executable code is deployed at address.
func (c *EVMClient) HasCode(ctx context.Context, address common.Address) (bool, error) {
	if err := c.wait(ctx); err != nil {
		return false, err
	}
	code, err := c.backend.CodeAt(ctx, address, nil)
	if err != nil {
		metrics.ChainQueriesTotal.WithLabelValues("code", "error").Inc()
		return false, fmt.Errorf("code at %s: %w", address.Hex(), err)
	}
	metrics.ChainQueriesTotal.WithLabelValues("code", "ok").Inc()
	c.log.Debug().Str("address", address.Hex()).Int("code_len", len(code)).Msg("code lookup")
	return len(code) > 0, nil
}

// ReadField calls the ERC-20 view named by field and returns its value as text.
func (c *EVMClient) ReadField(ctx context.Context, address common.Address, field Field) (string, error) {
	method := string(field)
	if _, ok := c.erc20.Methods[method]; !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownField, field)
	}
	data, err := c.erc20.Pack(method)
	if err != nil {
		return "", fmt.Errorf("pack %s: %w", method, err)
	}
	if err := c.wait(ctx); err != nil {
		return "", err
	}
	out, err := c.backend.CallContract(ctx, ethereum.CallMsg{To: &address, Data: data}, nil)
	if err != nil {
		metrics.ChainQueriesTotal.WithLabelValues(method, "error").Inc()
		return "", fmt.Errorf("call %s on %s: %w", method, address.Hex(), err)
	}
	if len(out) == 0 {
		metrics.ChainQueriesTotal.WithLabelValues(method, "empty").Inc()
		return "", fmt.Errorf("%s on %s: %w", method, address.Hex(), ErrEmptyResult)
	}
	value, err := c.decode(method, out)
	if err != nil {
		metrics.ChainQueriesTotal.WithLabelValues(method, "decode_error").Inc()
		return "", fmt.Errorf("decode %s on %s: %w", method, address.Hex(), err)
	}
	metrics.ChainQueriesTotal.WithLabelValues(method, "ok").Inc()
	return value, nil
}

func (c *EVMClient) decode(method string, out []byte) (string, error) {
	values, err := c.erc20.Unpack(method, out)
	if err == nil && len(values) == 1 {
		switch v := values[0].(type) {
		case string:
			return v, nil
		case uint8:
			return strconv.FormatUint(uint64(v), 10), nil
		}
	}
	if _, ok := c.legacy.Methods[method]; !ok {
		if err == nil {
			err = fmt.Errorf("unexpected output shape")
		}
		return "", err
	}
	values, legacyErr := c.legacy.Unpack(method, out)
	if legacyErr != nil || len(values) != 1 {
		if legacyErr == nil {
			legacyErr = fmt.Errorf("unexpected output shape")
		}
		return "", legacyErr
	}
	raw, ok := values[0].([32]byte)
	if !ok {
		return "", fmt.Errorf("unexpected bytes32 type %T", values[0])
	}
	return string(bytes.TrimRight(raw[:], "\x00")), nil
}

func (c *EVMClient) wait(ctx context.Context) error {
	if c.limiter == nil {
		return nil
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit: %w", err)
	}
	return nil
}
