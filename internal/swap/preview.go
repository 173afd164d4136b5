package swap

import (
	"errors"
	"math"
	"math/big"
)

// Client-side previews of amounts the contract will itself recompute and
// enforce. They exist so a caller can surface "approve first" and "this will
// revert" before submitting; they are never authoritative.

var (
	// ErrTiersNotAscending is returned when size tiers (and their matching
	// spreads) are not strictly ascending by size. The contract enforces the
	// same ordering, so submission would revert.
	ErrTiersNotAscending = errors.New("size tiers must be strictly ascending")

	// ErrTierCountMismatch is returned when the spreads and size tier lists
	// have different lengths.
	ErrTierCountMismatch = errors.New("spreads and size tiers must have the same length")
)

var bps = big.NewInt(10000)

// SpreadMakerCollateral previews the base-token collateral a maker must hold
// allowance for before posting a spread quote: the penalty on the largest
// size tier at the current oracle price, padded by a 5% buffer so that small
// price moves between preview and submission do not flip the allowance check.
// All inputs are in on-chain integer units; penaltyRate is in basis points.
func SpreadMakerCollateral(lastSizeTier, oraclePrice, penaltyRate *big.Int) *big.Int {
	required := new(big.Int).Mul(lastSizeTier, oraclePrice)
	required.Mul(required, penaltyRate)
	required = ceilDiv(required, bps)

	buffered := new(big.Int).Mul(required, big.NewInt(105))
	return ceilDiv(buffered, big.NewInt(100))
}

// LimitTakerCollateral previews the collateral a taker locks when taking a
// limit order: collateralRate basis points of the base amount when the pool
// collects collateral in base token, of the quote amount otherwise.
func LimitTakerCollateral(baseAmount, quoteAmount, collateralRate *big.Int, collateralIsBase bool) *big.Int {
	principal := quoteAmount
	if collateralIsBase {
		principal = baseAmount
	}
	out := new(big.Int).Mul(principal, collateralRate)
	return out.Div(out, bps)
}

// SlippageBips converts a human slippage percentage (e.g. 0.5 for 0.5%) to
// basis points, truncating sub-bip precision the way the source UI did.
func SlippageBips(pct float64) int64 {
	if pct <= 0 || math.IsNaN(pct) || math.IsInf(pct, 0) {
		return 0
	}
	return int64(math.Floor(pct * 100))
}

// MinBaseAmount bounds the base amount a taker will accept:
// priceWithSpread reduced by the slippage tolerance. A zero or negative
// tolerance disables the guard entirely and the contract accepts any fill.
func MinBaseAmount(priceWithSpread *big.Int, slippageBips int64) *big.Int {
	if slippageBips <= 0 {
		return new(big.Int)
	}
	cut := new(big.Int).Mul(priceWithSpread, big.NewInt(slippageBips))
	cut.Div(cut, bps)
	return new(big.Int).Sub(priceWithSpread, cut)
}

// AllowanceSufficient reports whether the current allowance covers the
// required amount. Re-evaluate after every approve, take, or settle.
func AllowanceSufficient(allowance, required *big.Int) bool {
	if allowance == nil || required == nil {
		return false
	}
	return allowance.Cmp(required) >= 0
}

// ValidateTiers checks that spreads and size tiers pair up and that the size
// tiers are strictly ascending. Equal neighbours fail: the contract treats a
// tie as a malformed ladder.
func ValidateTiers(spreads, sizeTiers []*big.Int) error {
	if len(spreads) != len(sizeTiers) {
		return ErrTierCountMismatch
	}
	for i := 1; i < len(sizeTiers); i++ {
		if sizeTiers[i].Cmp(sizeTiers[i-1]) <= 0 {
			return ErrTiersNotAscending
		}
	}
	return nil
}

func ceilDiv(a, b *big.Int) *big.Int {
	q, r := new(big.Int).QuoRem(a, b, new(big.Int))
	if r.Sign() != 0 {
		q.Add(q, big.NewInt(1))
	}
	return q
}
