package deferswap

import (
	"bytes"
	"context"
	"fmt"
	"math/big"
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"deferswap/internal/chain"
)

const erc20ABIStringJSON = `[
  {"inputs": [], "name": "decimals", "outputs": [{"type": "uint8"}], "stateMutability": "view", "type": "function"},
  {"inputs": [], "name": "symbol", "outputs": [{"type": "string"}], "stateMutability": "view", "type": "function"},
  {"inputs": [], "name": "name", "outputs": [{"type": "string"}], "stateMutability": "view", "type": "function"},
  {"inputs": [{"type": "address"}], "name": "balanceOf", "outputs": [{"type": "uint256"}], "stateMutability": "view", "type": "function"},
  {"inputs": [{"type": "address"}, {"type": "address"}], "name": "allowance", "outputs": [{"type": "uint256"}], "stateMutability": "view", "type": "function"},
  {"inputs": [{"type": "address"}, {"type": "uint256"}], "name": "approve", "outputs": [{"type": "bool"}], "stateMutability": "nonpayable", "type": "function"}
]`

const erc20ABIBytes32JSON = `[
  {"inputs": [], "name": "symbol", "outputs": [{"type": "bytes32"}], "stateMutability": "view", "type": "function"},
  {"inputs": [], "name": "name", "outputs": [{"type": "bytes32"}], "stateMutability": "view", "type": "function"}
]`

var (
	erc20ABIString      abi.ABI
	erc20ABIStringOnce  sync.Once
	erc20ABIStringErr   error
	erc20ABIBytes32     abi.ABI
	erc20ABIBytes32Once sync.Once
	erc20ABIBytes32Err  error
)

func erc20ABIStringInstance() (abi.ABI, error) {
	erc20ABIStringOnce.Do(func() {
		erc20ABIString, erc20ABIStringErr = abi.JSON(strings.NewReader(erc20ABIStringJSON))
	})
	return erc20ABIString, erc20ABIStringErr
}

func erc20ABIBytes32Instance() (abi.ABI, error) {
	erc20ABIBytes32Once.Do(func() {
		erc20ABIBytes32, erc20ABIBytes32Err = abi.JSON(strings.NewReader(erc20ABIBytes32JSON))
	})
	return erc20ABIBytes32, erc20ABIBytes32Err
}

// TokenMeta captures ERC20 metadata, immutable once fetched.
type TokenMeta struct {
	Address  common.Address
	Symbol   string
	Name     string
	Decimals uint8
}

// TokenMetaCache caches token metadata by address for the session.
type TokenMetaCache struct {
	mu   sync.RWMutex
	data map[common.Address]TokenMeta
}

func NewTokenMetaCache() *TokenMetaCache {
	return &TokenMetaCache{data: make(map[common.Address]TokenMeta)}
}

func (c *TokenMetaCache) Get(address common.Address) (TokenMeta, bool) {
	c.mu.RLock()
	meta, ok := c.data[address]
	c.mu.RUnlock()
	return meta, ok
}

func (c *TokenMetaCache) Set(address common.Address, meta TokenMeta) {
	c.mu.Lock()
	c.data[address] = meta
	c.mu.Unlock()
}

// Token is an ERC-20 contract handle.
type Token struct {
	Address common.Address
	client  *chain.Client
}

func NewToken(client *chain.Client, address common.Address) *Token {
	return &Token{Address: address, client: client}
}

// Meta fetches symbol, name, and decimals, consulting the cache first. Tokens
// that expose bytes32 symbol/name instead of string are handled by a second
// decode attempt; a token whose symbol cannot be read at all still gets its
// decimals recorded.
func (t *Token) Meta(ctx context.Context, cache *TokenMetaCache, logger *zap.Logger) (TokenMeta, error) {
	if cache != nil {
		if meta, ok := cache.Get(t.Address); ok {
			return meta, nil
		}
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	stringABI, err := erc20ABIStringInstance()
	if err != nil {
		return TokenMeta{}, fmt.Errorf("parse erc20 abi: %w", err)
	}
	bytes32ABI, err := erc20ABIBytes32Instance()
	if err != nil {
		return TokenMeta{}, fmt.Errorf("parse erc20 bytes32 abi: %w", err)
	}

	meta := TokenMeta{Address: t.Address}

	values, err := call(ctx, t.client, t.Address, stringABI, "decimals")
	if err != nil {
		return meta, err
	}
	if meta.Decimals, err = asUint8(values[0]); err != nil {
		return meta, fmt.Errorf("decimals: %w", err)
	}

	if values, err := call(ctx, t.client, t.Address, stringABI, "symbol"); err == nil {
		if symbol, ok := values[0].(string); ok {
			meta.Symbol = symbol
		}
	} else if values, err := call(ctx, t.client, t.Address, bytes32ABI, "symbol"); err == nil {
		if symbol, ok := bytes32ToString(values[0]); ok {
			meta.Symbol = symbol
		}
	} else {
		logger.Debug("symbol call failed", zap.String("token", t.Address.Hex()), zap.Error(err))
	}

	if values, err := call(ctx, t.client, t.Address, stringABI, "name"); err == nil {
		if name, ok := values[0].(string); ok {
			meta.Name = name
		}
	} else if values, err := call(ctx, t.client, t.Address, bytes32ABI, "name"); err == nil {
		if name, ok := bytes32ToString(values[0]); ok {
			meta.Name = name
		}
	} else {
		logger.Debug("name call failed", zap.String("token", t.Address.Hex()), zap.Error(err))
	}

	if cache != nil {
		cache.Set(t.Address, meta)
	}
	return meta, nil
}

// BalanceOf returns the token balance of an account.
func (t *Token) BalanceOf(ctx context.Context, account common.Address) (*big.Int, error) {
	parsed, err := erc20ABIStringInstance()
	if err != nil {
		return nil, err
	}
	return callBigInt(ctx, t.client, t.Address, parsed, "balanceOf", account)
}

// Allowance returns the spender's remaining allowance from owner.
func (t *Token) Allowance(ctx context.Context, owner, spender common.Address) (*big.Int, error) {
	parsed, err := erc20ABIStringInstance()
	if err != nil {
		return nil, err
	}
	return callBigInt(ctx, t.client, t.Address, parsed, "allowance", owner, spender)
}

// ApproveCalldata packs an approve(spender, amount) call for signing.
func (t *Token) ApproveCalldata(spender common.Address, amount *big.Int) ([]byte, error) {
	parsed, err := erc20ABIStringInstance()
	if err != nil {
		return nil, err
	}
	return parsed.Pack("approve", spender, amount)
}

func bytes32ToString(value interface{}) (string, bool) {
	switch v := value.(type) {
	case [32]byte:
		return string(bytes.TrimRight(v[:], "\x00")), true
	case []byte:
		return string(bytes.TrimRight(v, "\x00")), true
	default:
		return "", false
	}
}
