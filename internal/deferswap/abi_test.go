package deferswap

import "testing"

func TestABIsParse(t *testing.T) {
	spread, err := SpreadPoolABI()
	if err != nil {
		t.Fatalf("spread pool abi: %v", err)
	}
	for _, method := range []string{
		"baseToken", "quoteToken", "marketMaker", "swapCounter", "swaps",
		"getOraclePrice", "getEffectivePriceWithSpread", "minQuoteSize",
		"settlementPeriod", "penaltyRate", "quote", "takeSwap", "cancelSwap",
		"settleSwap", "claimSwap", "setPenaltyRate", "setMinQuoteSize",
		"setSettlementPeriod",
	} {
		if _, ok := spread.Methods[method]; !ok {
			t.Errorf("spread pool abi missing %s", method)
		}
	}

	limit, err := LimitPoolABI()
	if err != nil {
		t.Fatalf("limit pool abi: %v", err)
	}
	for _, method := range []string{
		"baseToken", "quoteToken", "marketMaker", "swapCounter", "swaps",
		"collateralIsBase", "collateralRateLimit", "makeQuote", "takeSwap",
		"paySwap", "cancelQuote",
	} {
		if _, ok := limit.Methods[method]; !ok {
			t.Errorf("limit pool abi missing %s", method)
		}
	}

	spreadFactory, err := SpreadFactoryABI()
	if err != nil {
		t.Fatalf("spread factory abi: %v", err)
	}
	if got := len(spreadFactory.Methods["createPool"].Inputs); got != 7 {
		t.Errorf("spread factory createPool inputs = %d, want 7", got)
	}

	limitFactory, err := LimitFactoryABI()
	if err != nil {
		t.Fatalf("limit factory abi: %v", err)
	}
	if got := len(limitFactory.Methods["createPool"].Inputs); got != 5 {
		t.Errorf("limit factory createPool inputs = %d, want 5", got)
	}

	if _, ok := spread.Methods["swaps"]; ok {
		if got := len(spread.Methods["swaps"].Outputs); got != 10 {
			t.Errorf("spread swaps outputs = %d, want 10", got)
		}
	}
	if got := len(limit.Methods["swaps"].Outputs); got != 12 {
		t.Errorf("limit swaps outputs = %d, want 12", got)
	}
}
