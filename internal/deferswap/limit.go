package deferswap

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"deferswap/internal/chain"
	"deferswap/internal/swap"
)

// LimitPool is a handle on a deployed limit-order pool: the maker posts fixed
// quote/base amount pairs with explicit expiries and a collateral rate.
type LimitPool struct {
	Address common.Address
	client  *chain.Client
}

func NewLimitPool(client *chain.Client, address common.Address) *LimitPool {
	return &LimitPool{Address: address, client: client}
}

type LimitPoolConfig struct {
	BaseToken           common.Address
	QuoteToken          common.Address
	MarketMaker         common.Address
	CollateralIsBase    bool
	CollateralRateLimit *big.Int
}

// Config fetches the pool's token addresses, maker, and collateral settings.
func (p *LimitPool) Config(ctx context.Context) (LimitPoolConfig, error) {
	parsed, err := LimitPoolABI()
	if err != nil {
		return LimitPoolConfig{}, err
	}

	var cfg LimitPoolConfig
	if cfg.BaseToken, err = callAddress(ctx, p.client, p.Address, parsed, "baseToken"); err != nil {
		return LimitPoolConfig{}, err
	}
	if cfg.QuoteToken, err = callAddress(ctx, p.client, p.Address, parsed, "quoteToken"); err != nil {
		return LimitPoolConfig{}, err
	}
	if cfg.MarketMaker, err = callAddress(ctx, p.client, p.Address, parsed, "marketMaker"); err != nil {
		return LimitPoolConfig{}, err
	}
	if cfg.CollateralIsBase, err = callBool(ctx, p.client, p.Address, parsed, "collateralIsBase"); err != nil {
		return LimitPoolConfig{}, err
	}
	if cfg.CollateralRateLimit, err = callBigInt(ctx, p.client, p.Address, parsed, "collateralRateLimit"); err != nil {
		return LimitPoolConfig{}, err
	}
	return cfg, nil
}

// SwapCounter returns the number of order records ever created.
func (p *LimitPool) SwapCounter(ctx context.Context) (uint64, error) {
	parsed, err := LimitPoolABI()
	if err != nil {
		return 0, err
	}
	count, err := callBigInt(ctx, p.client, p.Address, parsed, "swapCounter")
	if err != nil {
		return 0, err
	}
	return count.Uint64(), nil
}

// Swap fetches and decodes one order record.
func (p *LimitPool) Swap(ctx context.Context, id uint64) (swap.LimitRecord, error) {
	parsed, err := LimitPoolABI()
	if err != nil {
		return swap.LimitRecord{}, err
	}
	values, err := call(ctx, p.client, p.Address, parsed, "swaps", new(big.Int).SetUint64(id))
	if err != nil {
		return swap.LimitRecord{}, err
	}
	return swap.DecodeLimitRecord(id, values)
}

// LatestSwap fetches the most recent record, or ok=false when the pool has
// no records yet.
func (p *LimitPool) LatestSwap(ctx context.Context) (swap.LimitRecord, bool, error) {
	count, err := p.SwapCounter(ctx)
	if err != nil {
		return swap.LimitRecord{}, false, err
	}
	if count == 0 {
		return swap.LimitRecord{}, false, nil
	}
	rec, err := p.Swap(ctx, count-1)
	if err != nil {
		return swap.LimitRecord{}, false, err
	}
	return rec, true, nil
}

// MakeQuote posts a maker order (maker only).
func (p *LimitPool) MakeQuote(ctx context.Context, signer *chain.Signer, params swap.LimitMakeParams) (*types.Receipt, error) {
	return p.write(ctx, signer, "makeQuote",
		params.QuoteAmount,
		params.BaseAmount,
		params.MinQuoteAmount,
		new(big.Int).SetUint64(params.OrderExpiry),
		new(big.Int).SetUint64(params.SettleExpiry),
		params.CollateralRate,
	)
}

// TakeSwap takes order id for quoteAmount, locking the taker's collateral.
func (p *LimitPool) TakeSwap(ctx context.Context, signer *chain.Signer, id uint64, quoteAmount *big.Int) (*types.Receipt, error) {
	return p.write(ctx, signer, "takeSwap", new(big.Int).SetUint64(id), quoteAmount)
}

// PaySwap pays a taken order before its settlement deadline.
func (p *LimitPool) PaySwap(ctx context.Context, signer *chain.Signer, id uint64) (*types.Receipt, error) {
	return p.write(ctx, signer, "paySwap", new(big.Int).SetUint64(id))
}

// CancelQuote cancels an untaken order (maker only).
func (p *LimitPool) CancelQuote(ctx context.Context, signer *chain.Signer, id uint64) (*types.Receipt, error) {
	return p.write(ctx, signer, "cancelQuote", new(big.Int).SetUint64(id))
}

func (p *LimitPool) write(ctx context.Context, signer *chain.Signer, method string, args ...interface{}) (*types.Receipt, error) {
	parsed, err := LimitPoolABI()
	if err != nil {
		return nil, err
	}
	data, err := parsed.Pack(method, args...)
	if err != nil {
		return nil, fmt.Errorf("pack %s: %w", method, err)
	}
	return signer.SendAndWait(ctx, p.client, p.Address, data)
}
