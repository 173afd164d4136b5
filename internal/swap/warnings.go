package swap

import (
	"fmt"
	"math/big"
	"time"
)

// Warnings collect client-side precondition failures for a pending
// transaction. A non-empty list disables submission; the separate contract
// guards stay in place for anything the client misses.

// SpreadTakeWarnings validates a taker's quote amount against the latest
// spread quote record and the taker's quote-token balance.
func SpreadTakeWarnings(rec SpreadRecord, amount, minQuoteSize, balance *big.Int, now time.Time) []string {
	var warnings []string

	if amount == nil || amount.Sign() <= 0 {
		warnings = append(warnings, "enter an amount to swap")
		return warnings
	}
	if status := SpreadStatus(rec, now); status != StatusOpen {
		warnings = append(warnings, fmt.Sprintf("latest quote is %s, not open", status))
	}
	if rec.MaxQuoteSize != nil && amount.Cmp(rec.MaxQuoteSize) > 0 {
		warnings = append(warnings, "amount exceeds max quote size")
	}
	if minQuoteSize != nil && minQuoteSize.Sign() > 0 && amount.Cmp(minQuoteSize) < 0 {
		warnings = append(warnings, "amount is below the pool minimum quote size")
	}
	if balance != nil && amount.Cmp(balance) > 0 {
		warnings = append(warnings, "amount exceeds quote token balance")
	}
	return warnings
}

// SpreadQuoteWarnings validates a maker's tier ladder and collateral funding
// before posting a spread quote.
func SpreadQuoteWarnings(spreads, sizeTiers []*big.Int, requiredCollateral, balance *big.Int) []string {
	var warnings []string

	if len(sizeTiers) == 0 {
		warnings = append(warnings, "at least one size tier is required")
	}
	if err := ValidateTiers(spreads, sizeTiers); err != nil {
		warnings = append(warnings, err.Error())
	}
	if balance != nil && requiredCollateral != nil && balance.Cmp(requiredCollateral) < 0 {
		warnings = append(warnings, "insufficient base token balance for required collateral")
	}
	return warnings
}

// LimitMakeParams are the maker inputs for a limit order.
type LimitMakeParams struct {
	QuoteAmount    *big.Int
	BaseAmount     *big.Int
	MinQuoteAmount *big.Int
	OrderExpiry    uint64
	SettleExpiry   uint64
	CollateralRate *big.Int
}

// LimitMakeWarnings validates maker inputs against the pool's collateral rate
// limit and the maker's base-token balance.
func LimitMakeWarnings(p LimitMakeParams, rateLimit, balance *big.Int, now time.Time) []string {
	var warnings []string

	if p.QuoteAmount == nil || p.QuoteAmount.Sign() <= 0 ||
		p.BaseAmount == nil || p.BaseAmount.Sign() <= 0 {
		warnings = append(warnings, "quote and base amounts are required")
		return warnings
	}
	if p.MinQuoteAmount != nil && p.MinQuoteAmount.Cmp(p.QuoteAmount) > 0 {
		warnings = append(warnings, "min quote amount cannot exceed quote amount")
	}
	if p.OrderExpiry <= uint64(now.Unix()) {
		warnings = append(warnings, "order expiry must be in the future")
	}
	if p.SettleExpiry == 0 {
		warnings = append(warnings, "settle expiry must be positive")
	}
	if p.CollateralRate != nil && rateLimit != nil && p.CollateralRate.Cmp(rateLimit) > 0 {
		warnings = append(warnings, "collateral rate exceeds pool limit")
	}
	if balance != nil && p.BaseAmount != nil && balance.Cmp(p.BaseAmount) < 0 {
		warnings = append(warnings, "insufficient base token balance")
	}
	return warnings
}

// LimitTakeWarnings validates a taker's fill against a limit-order record and
// the taker's collateral-token balance.
func LimitTakeWarnings(rec LimitRecord, amount, collateralBalance *big.Int, collateralIsBase bool, now time.Time) []string {
	var warnings []string

	if amount == nil || amount.Sign() <= 0 {
		warnings = append(warnings, "enter an amount to take")
		return warnings
	}
	if status := LimitStatus(rec, now); status != StatusOpen {
		warnings = append(warnings, fmt.Sprintf("order is %s, not open", status))
	}
	if rec.QuoteAmount != nil && amount.Cmp(rec.QuoteAmount) > 0 {
		warnings = append(warnings, "amount exceeds order quote amount")
	}
	if rec.MinQuoteAmount != nil && rec.MinQuoteAmount.Sign() > 0 && amount.Cmp(rec.MinQuoteAmount) < 0 {
		warnings = append(warnings, "amount is below the order minimum")
	}

	required := LimitTakerCollateral(rec.BaseAmount, rec.QuoteAmount, rec.CollateralRate, collateralIsBase)
	if collateralBalance != nil && collateralBalance.Cmp(required) < 0 {
		token := "quote"
		if collateralIsBase {
			token = "base"
		}
		warnings = append(warnings, fmt.Sprintf("insufficient %s token balance for collateral", token))
	}
	return warnings
}
