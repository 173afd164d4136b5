package deferswap

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"deferswap/internal/chain"
	"deferswap/internal/swap"
)

// Kind tags the two pool variants. Everything that treats pools uniformly
// (listings, watch loops) goes through the Pool interface below instead of
// duplicating per-variant code paths.
type Kind string

const (
	KindSpread Kind = "spread"
	KindLimit  Kind = "limit"
)

// ParseKind validates a user-supplied kind string.
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindSpread, KindLimit:
		return Kind(s), nil
	default:
		return "", fmt.Errorf("unknown pool kind %q (want spread or limit)", s)
	}
}

// Order is the variant-independent view of a swap record.
type Order struct {
	ID          uint64
	Swapper     common.Address
	QuoteAmount *big.Int
	BaseAmount  *big.Int

	kind   Kind
	spread swap.SpreadRecord
	limit  swap.LimitRecord
}

// Status derives the lifecycle label at the given time.
func (o Order) Status(now time.Time) swap.Status {
	if o.kind == KindLimit {
		return swap.LimitStatus(o.limit, now)
	}
	return swap.SpreadStatus(o.spread, now)
}

// Actions derives the legal next actions for a role at the given time.
func (o Order) Actions(role swap.Role, now time.Time) []swap.Action {
	if o.kind == KindLimit {
		return swap.LimitActions(o.limit, role, now)
	}
	return swap.SpreadActions(o.spread, role, now)
}

// Expiry returns the deadline relevant to the record's current phase: the
// take window before the order is taken, the settlement deadline after.
// Zero means no deadline applies.
func (o Order) Expiry() uint64 {
	if o.kind == KindLimit {
		if o.limit.Taken {
			return o.limit.SettleExpiry
		}
		return o.limit.OrderExpiry
	}
	return o.spread.Expiry
}

// Flags exposes the record's raw lifecycle flags.
func (o Order) Flags() swap.Flags {
	if o.kind == KindLimit {
		return o.limit.Flags
	}
	return o.spread.Flags
}

// Collateral returns the maker or taker margin locked for the record.
func (o Order) Collateral() *big.Int {
	if o.kind == KindLimit {
		return o.limit.Collateral
	}
	return o.spread.Collateral
}

// Pool is the capability surface shared by both variants.
type Pool interface {
	Kind() Kind
	Addr() common.Address
	TokenPair(ctx context.Context) (base, quote common.Address, err error)
	Maker(ctx context.Context) (common.Address, error)
	OrderCount(ctx context.Context) (uint64, error)
	LatestOrder(ctx context.Context) (Order, bool, error)
	Order(ctx context.Context, id uint64) (Order, error)
}

// OpenPool returns the variant-appropriate handle.
func OpenPool(client *chain.Client, kind Kind, address common.Address) (Pool, error) {
	switch kind {
	case KindSpread:
		return spreadAdapter{pool: NewSpreadPool(client, address)}, nil
	case KindLimit:
		return limitAdapter{pool: NewLimitPool(client, address)}, nil
	default:
		return nil, fmt.Errorf("unknown pool kind %q", kind)
	}
}

type spreadAdapter struct {
	pool *SpreadPool
}

func (a spreadAdapter) Kind() Kind           { return KindSpread }
func (a spreadAdapter) Addr() common.Address { return a.pool.Address }

func (a spreadAdapter) TokenPair(ctx context.Context) (common.Address, common.Address, error) {
	parsed, err := SpreadPoolABI()
	if err != nil {
		return common.Address{}, common.Address{}, err
	}
	base, err := callAddress(ctx, a.pool.client, a.pool.Address, parsed, "baseToken")
	if err != nil {
		return common.Address{}, common.Address{}, err
	}
	quote, err := callAddress(ctx, a.pool.client, a.pool.Address, parsed, "quoteToken")
	if err != nil {
		return common.Address{}, common.Address{}, err
	}
	return base, quote, nil
}

func (a spreadAdapter) Maker(ctx context.Context) (common.Address, error) {
	parsed, err := SpreadPoolABI()
	if err != nil {
		return common.Address{}, err
	}
	return callAddress(ctx, a.pool.client, a.pool.Address, parsed, "marketMaker")
}

func (a spreadAdapter) OrderCount(ctx context.Context) (uint64, error) {
	return a.pool.SwapCounter(ctx)
}

func (a spreadAdapter) LatestOrder(ctx context.Context) (Order, bool, error) {
	rec, ok, err := a.pool.LatestSwap(ctx)
	if err != nil || !ok {
		return Order{}, ok, err
	}
	return SpreadOrder(rec), true, nil
}

func (a spreadAdapter) Order(ctx context.Context, id uint64) (Order, error) {
	rec, err := a.pool.Swap(ctx, id)
	if err != nil {
		return Order{}, err
	}
	return SpreadOrder(rec), nil
}

// SpreadOrder wraps a spread record in the variant-independent view.
func SpreadOrder(rec swap.SpreadRecord) Order {
	return Order{
		ID:          rec.ID,
		Swapper:     rec.Swapper,
		QuoteAmount: rec.QuoteAmount,
		BaseAmount:  rec.BaseAmount,
		kind:        KindSpread,
		spread:      rec,
	}
}

type limitAdapter struct {
	pool *LimitPool
}

func (a limitAdapter) Kind() Kind           { return KindLimit }
func (a limitAdapter) Addr() common.Address { return a.pool.Address }

func (a limitAdapter) TokenPair(ctx context.Context) (common.Address, common.Address, error) {
	parsed, err := LimitPoolABI()
	if err != nil {
		return common.Address{}, common.Address{}, err
	}
	base, err := callAddress(ctx, a.pool.client, a.pool.Address, parsed, "baseToken")
	if err != nil {
		return common.Address{}, common.Address{}, err
	}
	quote, err := callAddress(ctx, a.pool.client, a.pool.Address, parsed, "quoteToken")
	if err != nil {
		return common.Address{}, common.Address{}, err
	}
	return base, quote, nil
}

func (a limitAdapter) Maker(ctx context.Context) (common.Address, error) {
	parsed, err := LimitPoolABI()
	if err != nil {
		return common.Address{}, err
	}
	return callAddress(ctx, a.pool.client, a.pool.Address, parsed, "marketMaker")
}

func (a limitAdapter) OrderCount(ctx context.Context) (uint64, error) {
	return a.pool.SwapCounter(ctx)
}

func (a limitAdapter) LatestOrder(ctx context.Context) (Order, bool, error) {
	rec, ok, err := a.pool.LatestSwap(ctx)
	if err != nil || !ok {
		return Order{}, ok, err
	}
	return LimitOrder(rec), true, nil
}

func (a limitAdapter) Order(ctx context.Context, id uint64) (Order, error) {
	rec, err := a.pool.Swap(ctx, id)
	if err != nil {
		return Order{}, err
	}
	return LimitOrder(rec), nil
}

// LimitOrder wraps a limit record in the variant-independent view.
func LimitOrder(rec swap.LimitRecord) Order {
	return Order{
		ID:          rec.ID,
		Swapper:     rec.Swapper,
		QuoteAmount: rec.QuoteAmount,
		BaseAmount:  rec.BaseAmount,
		kind:        KindLimit,
		limit:       rec,
	}
}
