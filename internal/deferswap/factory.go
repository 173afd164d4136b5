package deferswap

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"deferswap/internal/chain"
)

// SpreadFactory deploys and enumerates spread-quote pools.
type SpreadFactory struct {
	Address common.Address
	client  *chain.Client
}

func NewSpreadFactory(client *chain.Client, address common.Address) *SpreadFactory {
	return &SpreadFactory{Address: address, client: client}
}

// SpreadPoolParams are the constructor arguments for a spread pool.
type SpreadPoolParams struct {
	FlipOraclePrice  bool
	QuoteToken       common.Address
	BaseToken        common.Address
	PriceFeed        common.Address
	MinQuoteSize     *big.Int
	SettlementPeriod *big.Int
	PenaltyRate      *big.Int
}

// CreatePool deploys a new spread pool with the caller as market maker.
func (f *SpreadFactory) CreatePool(ctx context.Context, signer *chain.Signer, params SpreadPoolParams) (*types.Receipt, error) {
	parsed, err := SpreadFactoryABI()
	if err != nil {
		return nil, err
	}
	data, err := parsed.Pack("createPool",
		params.FlipOraclePrice,
		params.QuoteToken,
		params.BaseToken,
		params.PriceFeed,
		params.MinQuoteSize,
		params.SettlementPeriod,
		params.PenaltyRate,
	)
	if err != nil {
		return nil, fmt.Errorf("pack createPool: %w", err)
	}
	return signer.SendAndWait(ctx, f.client, f.Address, data)
}

// Pools enumerates deployed pool addresses, skipping the first `skip` and
// returning at most `limit`. The earliest factory deployments were test
// pools, so listings normally skip them.
func (f *SpreadFactory) Pools(ctx context.Context, skip, limit uint64) ([]common.Address, error) {
	parsed, err := SpreadFactoryABI()
	if err != nil {
		return nil, err
	}
	return enumeratePools(ctx, f.client, f.Address, parsed, skip, limit)
}

// LimitFactory deploys and enumerates limit-order pools.
type LimitFactory struct {
	Address common.Address
	client  *chain.Client
}

func NewLimitFactory(client *chain.Client, address common.Address) *LimitFactory {
	return &LimitFactory{Address: address, client: client}
}

// LimitPoolParams are the constructor arguments for a limit-order pool.
type LimitPoolParams struct {
	QuoteToken          common.Address
	BaseToken           common.Address
	MarketMaker         common.Address
	CollateralIsBase    bool
	CollateralRateLimit *big.Int
}

// CreatePool deploys a new limit-order pool.
func (f *LimitFactory) CreatePool(ctx context.Context, signer *chain.Signer, params LimitPoolParams) (*types.Receipt, error) {
	parsed, err := LimitFactoryABI()
	if err != nil {
		return nil, err
	}
	data, err := parsed.Pack("createPool",
		params.QuoteToken,
		params.BaseToken,
		params.MarketMaker,
		params.CollateralIsBase,
		params.CollateralRateLimit,
	)
	if err != nil {
		return nil, fmt.Errorf("pack createPool: %w", err)
	}
	return signer.SendAndWait(ctx, f.client, f.Address, data)
}

// Pools enumerates deployed pool addresses, skipping the first `skip` and
// returning at most `limit`.
func (f *LimitFactory) Pools(ctx context.Context, skip, limit uint64) ([]common.Address, error) {
	parsed, err := LimitFactoryABI()
	if err != nil {
		return nil, err
	}
	return enumeratePools(ctx, f.client, f.Address, parsed, skip, limit)
}

func enumeratePools(ctx context.Context, client *chain.Client, factory common.Address, parsed abi.ABI, skip, limit uint64) ([]common.Address, error) {
	length, err := callBigInt(ctx, client, factory, parsed, "allPoolsLength")
	if err != nil {
		return nil, err
	}
	total := length.Uint64()
	if skip >= total {
		return nil, nil
	}

	end := total
	if limit > 0 && skip+limit < total {
		end = skip + limit
	}

	out := make([]common.Address, 0, end-skip)
	for i := skip; i < end; i++ {
		addr, err := callAddress(ctx, client, factory, parsed, "allPools", new(big.Int).SetUint64(i))
		if err != nil {
			return nil, fmt.Errorf("allPools(%d): %w", i, err)
		}
		out = append(out, addr)
	}
	return out, nil
}
