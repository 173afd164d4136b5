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

// SpreadPool is a handle on a deployed spread-quote pool: the maker posts
// tiered size/spread ladders against an oracle price and takers hit the
// latest quote.
type SpreadPool struct {
	Address common.Address
	client  *chain.Client
}

func NewSpreadPool(client *chain.Client, address common.Address) *SpreadPool {
	return &SpreadPool{Address: address, client: client}
}

// Config is the pool's static configuration plus its current parameters.
type SpreadPoolConfig struct {
	BaseToken        common.Address
	QuoteToken       common.Address
	MarketMaker      common.Address
	MinQuoteSize     *big.Int
	SettlementPeriod *big.Int
	PenaltyRate      *big.Int
}

// Config fetches the pool's token addresses, maker, and parameters.
func (p *SpreadPool) Config(ctx context.Context) (SpreadPoolConfig, error) {
	parsed, err := SpreadPoolABI()
	if err != nil {
		return SpreadPoolConfig{}, err
	}

	var cfg SpreadPoolConfig
	if cfg.BaseToken, err = callAddress(ctx, p.client, p.Address, parsed, "baseToken"); err != nil {
		return SpreadPoolConfig{}, err
	}
	if cfg.QuoteToken, err = callAddress(ctx, p.client, p.Address, parsed, "quoteToken"); err != nil {
		return SpreadPoolConfig{}, err
	}
	if cfg.MarketMaker, err = callAddress(ctx, p.client, p.Address, parsed, "marketMaker"); err != nil {
		return SpreadPoolConfig{}, err
	}
	if cfg.MinQuoteSize, err = callBigInt(ctx, p.client, p.Address, parsed, "minQuoteSize"); err != nil {
		return SpreadPoolConfig{}, err
	}
	if cfg.SettlementPeriod, err = callBigInt(ctx, p.client, p.Address, parsed, "settlementPeriod"); err != nil {
		return SpreadPoolConfig{}, err
	}
	if cfg.PenaltyRate, err = callBigInt(ctx, p.client, p.Address, parsed, "penaltyRate"); err != nil {
		return SpreadPoolConfig{}, err
	}
	return cfg, nil
}

// SwapCounter returns the number of swap records ever created.
func (p *SpreadPool) SwapCounter(ctx context.Context) (uint64, error) {
	parsed, err := SpreadPoolABI()
	if err != nil {
		return 0, err
	}
	count, err := callBigInt(ctx, p.client, p.Address, parsed, "swapCounter")
	if err != nil {
		return 0, err
	}
	return count.Uint64(), nil
}

// Swap fetches and decodes one swap record.
func (p *SpreadPool) Swap(ctx context.Context, id uint64) (swap.SpreadRecord, error) {
	parsed, err := SpreadPoolABI()
	if err != nil {
		return swap.SpreadRecord{}, err
	}
	values, err := call(ctx, p.client, p.Address, parsed, "swaps", new(big.Int).SetUint64(id))
	if err != nil {
		return swap.SpreadRecord{}, err
	}
	return swap.DecodeSpreadRecord(id, values)
}

// LatestSwap fetches the most recent record, or ok=false when the pool has
// no records yet.
func (p *SpreadPool) LatestSwap(ctx context.Context) (swap.SpreadRecord, bool, error) {
	count, err := p.SwapCounter(ctx)
	if err != nil {
		return swap.SpreadRecord{}, false, err
	}
	if count == 0 {
		return swap.SpreadRecord{}, false, nil
	}
	rec, err := p.Swap(ctx, count-1)
	if err != nil {
		return swap.SpreadRecord{}, false, err
	}
	return rec, true, nil
}

// OraclePrice returns the current oracle price in base per quote, 1e18
// scaled.
func (p *SpreadPool) OraclePrice(ctx context.Context) (*big.Int, error) {
	parsed, err := SpreadPoolABI()
	if err != nil {
		return nil, err
	}
	return callBigInt(ctx, p.client, p.Address, parsed, "getOraclePrice")
}

// EffectivePriceWithSpread quotes the base amount a taker would receive for
// the given quote amount against swap record id.
func (p *SpreadPool) EffectivePriceWithSpread(ctx context.Context, id uint64, amount *big.Int) (*big.Int, error) {
	parsed, err := SpreadPoolABI()
	if err != nil {
		return nil, err
	}
	return callBigInt(ctx, p.client, p.Address, parsed, "getEffectivePriceWithSpread", new(big.Int).SetUint64(id), amount)
}

// Quote posts a maker spread/size ladder. Tier ordering is validated
// client-side first; the contract enforces the same rule.
func (p *SpreadPool) Quote(ctx context.Context, signer *chain.Signer, spreads, sizeTiers []*big.Int) (*types.Receipt, error) {
	if err := swap.ValidateTiers(spreads, sizeTiers); err != nil {
		return nil, err
	}
	return p.write(ctx, signer, "quote", spreads, sizeTiers)
}

// TakeSwap accepts the latest quote for quoteAmount, reverting on chain if
// fewer than minBaseAmount base tokens would be received.
func (p *SpreadPool) TakeSwap(ctx context.Context, signer *chain.Signer, quoteAmount, minBaseAmount *big.Int) (*types.Receipt, error) {
	return p.write(ctx, signer, "takeSwap", quoteAmount, minBaseAmount)
}

// CancelSwap cancels an untaken quote (maker only).
func (p *SpreadPool) CancelSwap(ctx context.Context, signer *chain.Signer, id uint64) (*types.Receipt, error) {
	return p.write(ctx, signer, "cancelSwap", new(big.Int).SetUint64(id))
}

// SettleSwap settles a taken swap (maker only).
func (p *SpreadPool) SettleSwap(ctx context.Context, signer *chain.Signer, id uint64) (*types.Receipt, error) {
	return p.write(ctx, signer, "settleSwap", new(big.Int).SetUint64(id))
}

// ClaimSwap claims a settled or defaulted swap.
func (p *SpreadPool) ClaimSwap(ctx context.Context, signer *chain.Signer, id uint64) (*types.Receipt, error) {
	return p.write(ctx, signer, "claimSwap", new(big.Int).SetUint64(id))
}

// SetPenaltyRate updates the pool penalty rate (maker only).
func (p *SpreadPool) SetPenaltyRate(ctx context.Context, signer *chain.Signer, rate *big.Int) (*types.Receipt, error) {
	return p.write(ctx, signer, "setPenaltyRate", rate)
}

// SetMinQuoteSize updates the minimum quote size (maker only).
func (p *SpreadPool) SetMinQuoteSize(ctx context.Context, signer *chain.Signer, size *big.Int) (*types.Receipt, error) {
	return p.write(ctx, signer, "setMinQuoteSize", size)
}

// SetSettlementPeriod updates the settlement period in seconds (maker only).
func (p *SpreadPool) SetSettlementPeriod(ctx context.Context, signer *chain.Signer, seconds *big.Int) (*types.Receipt, error) {
	return p.write(ctx, signer, "setSettlementPeriod", seconds)
}

func (p *SpreadPool) write(ctx context.Context, signer *chain.Signer, method string, args ...interface{}) (*types.Receipt, error) {
	parsed, err := SpreadPoolABI()
	if err != nil {
		return nil, err
	}
	data, err := parsed.Pack(method, args...)
	if err != nil {
		return nil, fmt.Errorf("pack %s: %w", method, err)
	}
	return signer.SendAndWait(ctx, p.client, p.Address, data)
}
