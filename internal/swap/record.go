package swap

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// Flags are the lifecycle booleans a pool contract stores per swap. They are
// monotonic on chain: once cancelled or claimed no other flag becomes newly
// true, and taken precedes settled precedes claimed.
type Flags struct {
	Taken     bool
	Settled   bool
	Claimed   bool
	Cancelled bool
}

// Validate rejects flag combinations not reachable by any contract
// transition. The contract never produces these; seeing one means the read
// was corrupt or the ABI decoded the wrong tuple.
func (f Flags) Validate() error {
	if f.Cancelled && (f.Taken || f.Settled || f.Claimed) {
		return fmt.Errorf("inconsistent swap flags: cancelled combined with %s", f)
	}
	if f.Settled && !f.Taken {
		return fmt.Errorf("inconsistent swap flags: settled without taken: %s", f)
	}
	return nil
}

func (f Flags) String() string {
	return fmt.Sprintf("taken=%t settled=%t claimed=%t cancelled=%t",
		f.Taken, f.Settled, f.Claimed, f.Cancelled)
}

// SpreadRecord is the swaps(id) tuple of a spread-quote pool.
type SpreadRecord struct {
	ID           uint64
	Swapper      common.Address
	QuoteAmount  *big.Int
	BaseAmount   *big.Int
	MaxQuoteSize *big.Int
	Collateral   *big.Int
	// Expiry is a unix timestamp in seconds. Zero means no expiry is set.
	Expiry uint64
	Flags
}

// LimitRecord is the swaps(id) tuple of a limit-order pool.
type LimitRecord struct {
	ID             uint64
	Swapper        common.Address
	QuoteAmount    *big.Int
	BaseAmount     *big.Int
	MinQuoteAmount *big.Int
	Collateral     *big.Int
	// OrderExpiry is a unix timestamp in seconds; zero means no expiry.
	OrderExpiry uint64
	// SettleExpiry is a duration in seconds until the order is taken, after
	// which the contract rewrites it to an absolute deadline.
	SettleExpiry   uint64
	CollateralRate *big.Int
	Flags
}

// FilterSpreadBySwapper keeps the records whose swapper is account,
// preserving order. Untaken quotes have a zero swapper and never match.
func FilterSpreadBySwapper(records []SpreadRecord, account common.Address) []SpreadRecord {
	out := make([]SpreadRecord, 0, len(records))
	for _, rec := range records {
		if rec.Swapper == account {
			out = append(out, rec)
		}
	}
	return out
}

// FilterLimitBySwapper keeps the orders whose taker is account, preserving
// order. Untaken orders have a zero swapper and never match.
func FilterLimitBySwapper(records []LimitRecord, account common.Address) []LimitRecord {
	out := make([]LimitRecord, 0, len(records))
	for _, rec := range records {
		if rec.Swapper == account {
			out = append(out, rec)
		}
	}
	return out
}

// DecodeSpreadRecord maps the unpacked swaps(id) return values onto a
// SpreadRecord and validates the flag combination.
func DecodeSpreadRecord(id uint64, values []interface{}) (SpreadRecord, error) {
	if len(values) != 10 {
		return SpreadRecord{}, fmt.Errorf("spread swap tuple: want 10 values, got %d", len(values))
	}

	rec := SpreadRecord{ID: id}
	var err error
	if rec.Swapper, err = toAddress(values[0]); err != nil {
		return SpreadRecord{}, fmt.Errorf("swapper: %w", err)
	}
	if rec.QuoteAmount, err = toBigInt(values[1]); err != nil {
		return SpreadRecord{}, fmt.Errorf("quote amount: %w", err)
	}
	if rec.BaseAmount, err = toBigInt(values[2]); err != nil {
		return SpreadRecord{}, fmt.Errorf("base amount: %w", err)
	}
	if rec.MaxQuoteSize, err = toBigInt(values[3]); err != nil {
		return SpreadRecord{}, fmt.Errorf("max quote size: %w", err)
	}
	if rec.Collateral, err = toBigInt(values[4]); err != nil {
		return SpreadRecord{}, fmt.Errorf("collateral: %w", err)
	}
	expiry, err := toBigInt(values[5])
	if err != nil {
		return SpreadRecord{}, fmt.Errorf("expiry: %w", err)
	}
	rec.Expiry = expiry.Uint64()

	if rec.Flags, err = decodeFlags(values[6:10]); err != nil {
		return SpreadRecord{}, err
	}
	if err := rec.Flags.Validate(); err != nil {
		return SpreadRecord{}, err
	}
	return rec, nil
}

// DecodeLimitRecord maps the unpacked swaps(id) return values onto a
// LimitRecord and validates the flag combination.
func DecodeLimitRecord(id uint64, values []interface{}) (LimitRecord, error) {
	if len(values) != 12 {
		return LimitRecord{}, fmt.Errorf("limit swap tuple: want 12 values, got %d", len(values))
	}

	rec := LimitRecord{ID: id}
	var err error
	if rec.Swapper, err = toAddress(values[0]); err != nil {
		return LimitRecord{}, fmt.Errorf("swapper: %w", err)
	}
	if rec.QuoteAmount, err = toBigInt(values[1]); err != nil {
		return LimitRecord{}, fmt.Errorf("quote amount: %w", err)
	}
	if rec.BaseAmount, err = toBigInt(values[2]); err != nil {
		return LimitRecord{}, fmt.Errorf("base amount: %w", err)
	}
	if rec.MinQuoteAmount, err = toBigInt(values[3]); err != nil {
		return LimitRecord{}, fmt.Errorf("min quote amount: %w", err)
	}
	if rec.Collateral, err = toBigInt(values[4]); err != nil {
		return LimitRecord{}, fmt.Errorf("collateral: %w", err)
	}
	orderExpiry, err := toBigInt(values[5])
	if err != nil {
		return LimitRecord{}, fmt.Errorf("order expiry: %w", err)
	}
	rec.OrderExpiry = orderExpiry.Uint64()
	settleExpiry, err := toBigInt(values[6])
	if err != nil {
		return LimitRecord{}, fmt.Errorf("settle expiry: %w", err)
	}
	rec.SettleExpiry = settleExpiry.Uint64()
	if rec.CollateralRate, err = toBigInt(values[7]); err != nil {
		return LimitRecord{}, fmt.Errorf("collateral rate: %w", err)
	}

	if rec.Flags, err = decodeFlags(values[8:12]); err != nil {
		return LimitRecord{}, err
	}
	if err := rec.Flags.Validate(); err != nil {
		return LimitRecord{}, err
	}
	return rec, nil
}

func decodeFlags(values []interface{}) (Flags, error) {
	names := [4]string{"taken", "settled", "claimed", "cancelled"}
	var out [4]bool
	for i, v := range values {
		b, ok := v.(bool)
		if !ok {
			return Flags{}, fmt.Errorf("%s: unsupported bool type %T", names[i], v)
		}
		out[i] = b
	}
	return Flags{Taken: out[0], Settled: out[1], Claimed: out[2], Cancelled: out[3]}, nil
}

func toAddress(value interface{}) (common.Address, error) {
	switch v := value.(type) {
	case common.Address:
		return v, nil
	case *common.Address:
		return *v, nil
	default:
		return common.Address{}, fmt.Errorf("unsupported address type %T", value)
	}
}

func toBigInt(value interface{}) (*big.Int, error) {
	switch v := value.(type) {
	case *big.Int:
		return new(big.Int).Set(v), nil
	case big.Int:
		return new(big.Int).Set(&v), nil
	case uint64:
		return new(big.Int).SetUint64(v), nil
	case int64:
		return big.NewInt(v), nil
	default:
		return nil, fmt.Errorf("unsupported int type %T", value)
	}
}
