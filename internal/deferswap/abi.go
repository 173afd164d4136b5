package deferswap

import (
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

const spreadPoolABIJSON = `[
  {"inputs": [], "name": "baseToken", "outputs": [{"internalType": "address", "name": "", "type": "address"}], "stateMutability": "view", "type": "function"},
  {"inputs": [], "name": "quoteToken", "outputs": [{"internalType": "address", "name": "", "type": "address"}], "stateMutability": "view", "type": "function"},
  {"inputs": [], "name": "marketMaker", "outputs": [{"internalType": "address", "name": "", "type": "address"}], "stateMutability": "view", "type": "function"},
  {"inputs": [], "name": "priceFeed", "outputs": [{"internalType": "address", "name": "", "type": "address"}], "stateMutability": "view", "type": "function"},
  {"inputs": [], "name": "swapCounter", "outputs": [{"internalType": "uint256", "name": "", "type": "uint256"}], "stateMutability": "view", "type": "function"},
  {"inputs": [], "name": "minQuoteSize", "outputs": [{"internalType": "uint256", "name": "", "type": "uint256"}], "stateMutability": "view", "type": "function"},
  {"inputs": [], "name": "settlementPeriod", "outputs": [{"internalType": "uint256", "name": "", "type": "uint256"}], "stateMutability": "view", "type": "function"},
  {"inputs": [], "name": "penaltyRate", "outputs": [{"internalType": "uint256", "name": "", "type": "uint256"}], "stateMutability": "view", "type": "function"},
  {"inputs": [], "name": "getOraclePrice", "outputs": [{"internalType": "uint256", "name": "", "type": "uint256"}], "stateMutability": "view", "type": "function"},
  {
    "inputs": [
      {"internalType": "uint256", "name": "swapId", "type": "uint256"},
      {"internalType": "uint256", "name": "amount", "type": "uint256"}
    ],
    "name": "getEffectivePriceWithSpread",
    "outputs": [{"internalType": "uint256", "name": "", "type": "uint256"}],
    "stateMutability": "view",
    "type": "function"
  },
  {
    "inputs": [{"internalType": "uint256", "name": "", "type": "uint256"}],
    "name": "swaps",
    "outputs": [
      {"internalType": "address", "name": "swapper", "type": "address"},
      {"internalType": "uint256", "name": "quoteAmount", "type": "uint256"},
      {"internalType": "uint256", "name": "baseAmount", "type": "uint256"},
      {"internalType": "uint256", "name": "maxQuoteSize", "type": "uint256"},
      {"internalType": "uint256", "name": "collateral", "type": "uint256"},
      {"internalType": "uint256", "name": "expiry", "type": "uint256"},
      {"internalType": "bool", "name": "taken", "type": "bool"},
      {"internalType": "bool", "name": "settled", "type": "bool"},
      {"internalType": "bool", "name": "claimed", "type": "bool"},
      {"internalType": "bool", "name": "cancelled", "type": "bool"}
    ],
    "stateMutability": "view",
    "type": "function"
  },
  {
    "inputs": [
      {"internalType": "uint256[]", "name": "newSpreads", "type": "uint256[]"},
      {"internalType": "uint256[]", "name": "newSizeTiers", "type": "uint256[]"}
    ],
    "name": "quote",
    "outputs": [{"internalType": "uint256", "name": "swapId", "type": "uint256"}],
    "stateMutability": "nonpayable",
    "type": "function"
  },
  {
    "inputs": [
      {"internalType": "uint256", "name": "quoteAmount", "type": "uint256"},
      {"internalType": "uint256", "name": "minBaseAmount", "type": "uint256"}
    ],
    "name": "takeSwap",
    "outputs": [],
    "stateMutability": "nonpayable",
    "type": "function"
  },
  {"inputs": [{"internalType": "uint256", "name": "swapId", "type": "uint256"}], "name": "cancelSwap", "outputs": [], "stateMutability": "nonpayable", "type": "function"},
  {"inputs": [{"internalType": "uint256", "name": "swapId", "type": "uint256"}], "name": "settleSwap", "outputs": [], "stateMutability": "nonpayable", "type": "function"},
  {"inputs": [{"internalType": "uint256", "name": "swapId", "type": "uint256"}], "name": "claimSwap", "outputs": [], "stateMutability": "nonpayable", "type": "function"},
  {"inputs": [{"internalType": "uint256", "name": "_penaltyRate", "type": "uint256"}], "name": "setPenaltyRate", "outputs": [], "stateMutability": "nonpayable", "type": "function"},
  {"inputs": [{"internalType": "uint256", "name": "_minQuoteSize", "type": "uint256"}], "name": "setMinQuoteSize", "outputs": [], "stateMutability": "nonpayable", "type": "function"},
  {"inputs": [{"internalType": "uint256", "name": "_settlementPeriod", "type": "uint256"}], "name": "setSettlementPeriod", "outputs": [], "stateMutability": "nonpayable", "type": "function"}
]`

const limitPoolABIJSON = `[
  {"inputs": [], "name": "baseToken", "outputs": [{"internalType": "address", "name": "", "type": "address"}], "stateMutability": "view", "type": "function"},
  {"inputs": [], "name": "quoteToken", "outputs": [{"internalType": "address", "name": "", "type": "address"}], "stateMutability": "view", "type": "function"},
  {"inputs": [], "name": "marketMaker", "outputs": [{"internalType": "address", "name": "", "type": "address"}], "stateMutability": "view", "type": "function"},
  {"inputs": [], "name": "swapCounter", "outputs": [{"internalType": "uint256", "name": "", "type": "uint256"}], "stateMutability": "view", "type": "function"},
  {"inputs": [], "name": "collateralIsBase", "outputs": [{"internalType": "bool", "name": "", "type": "bool"}], "stateMutability": "view", "type": "function"},
  {"inputs": [], "name": "collateralRateLimit", "outputs": [{"internalType": "uint256", "name": "", "type": "uint256"}], "stateMutability": "view", "type": "function"},
  {
    "inputs": [{"internalType": "uint256", "name": "", "type": "uint256"}],
    "name": "swaps",
    "outputs": [
      {"internalType": "address", "name": "swapper", "type": "address"},
      {"internalType": "uint256", "name": "quoteAmount", "type": "uint256"},
      {"internalType": "uint256", "name": "baseAmount", "type": "uint256"},
      {"internalType": "uint256", "name": "minQuoteAmount", "type": "uint256"},
      {"internalType": "uint256", "name": "collateral", "type": "uint256"},
      {"internalType": "uint256", "name": "orderExpiry", "type": "uint256"},
      {"internalType": "uint256", "name": "settleExpiry", "type": "uint256"},
      {"internalType": "uint256", "name": "collateralRate", "type": "uint256"},
      {"internalType": "bool", "name": "taken", "type": "bool"},
      {"internalType": "bool", "name": "settled", "type": "bool"},
      {"internalType": "bool", "name": "claimed", "type": "bool"},
      {"internalType": "bool", "name": "cancelled", "type": "bool"}
    ],
    "stateMutability": "view",
    "type": "function"
  },
  {
    "inputs": [
      {"internalType": "uint256", "name": "quoteAmount", "type": "uint256"},
      {"internalType": "uint256", "name": "baseAmount", "type": "uint256"},
      {"internalType": "uint256", "name": "minQuoteAmount", "type": "uint256"},
      {"internalType": "uint256", "name": "orderExpiry", "type": "uint256"},
      {"internalType": "uint256", "name": "settleExpiry", "type": "uint256"},
      {"internalType": "uint256", "name": "collateralRate", "type": "uint256"}
    ],
    "name": "makeQuote",
    "outputs": [{"internalType": "uint256", "name": "swapId", "type": "uint256"}],
    "stateMutability": "nonpayable",
    "type": "function"
  },
  {
    "inputs": [
      {"internalType": "uint256", "name": "swapId", "type": "uint256"},
      {"internalType": "uint256", "name": "quoteAmount", "type": "uint256"}
    ],
    "name": "takeSwap",
    "outputs": [],
    "stateMutability": "nonpayable",
    "type": "function"
  },
  {"inputs": [{"internalType": "uint256", "name": "swapId", "type": "uint256"}], "name": "paySwap", "outputs": [], "stateMutability": "nonpayable", "type": "function"},
  {"inputs": [{"internalType": "uint256", "name": "swapId", "type": "uint256"}], "name": "cancelQuote", "outputs": [], "stateMutability": "nonpayable", "type": "function"}
]`

const spreadFactoryABIJSON = `[
  {
    "inputs": [
      {"internalType": "bool", "name": "flipOraclePrice", "type": "bool"},
      {"internalType": "address", "name": "quoteToken", "type": "address"},
      {"internalType": "address", "name": "baseToken", "type": "address"},
      {"internalType": "address", "name": "priceFeed", "type": "address"},
      {"internalType": "uint256", "name": "minQuoteSize", "type": "uint256"},
      {"internalType": "uint256", "name": "settlementPeriod", "type": "uint256"},
      {"internalType": "uint256", "name": "penaltyRate", "type": "uint256"}
    ],
    "name": "createPool",
    "outputs": [{"internalType": "address", "name": "pool", "type": "address"}],
    "stateMutability": "nonpayable",
    "type": "function"
  },
  {"inputs": [{"internalType": "uint256", "name": "", "type": "uint256"}], "name": "allPools", "outputs": [{"internalType": "address", "name": "", "type": "address"}], "stateMutability": "view", "type": "function"},
  {"inputs": [], "name": "allPoolsLength", "outputs": [{"internalType": "uint256", "name": "", "type": "uint256"}], "stateMutability": "view", "type": "function"}
]`

const limitFactoryABIJSON = `[
  {
    "inputs": [
      {"internalType": "address", "name": "quoteToken", "type": "address"},
      {"internalType": "address", "name": "baseToken", "type": "address"},
      {"internalType": "address", "name": "marketMaker", "type": "address"},
      {"internalType": "bool", "name": "collateralIsBase", "type": "bool"},
      {"internalType": "uint256", "name": "collateralRateLimit", "type": "uint256"}
    ],
    "name": "createPool",
    "outputs": [{"internalType": "address", "name": "pool", "type": "address"}],
    "stateMutability": "nonpayable",
    "type": "function"
  },
  {"inputs": [{"internalType": "uint256", "name": "", "type": "uint256"}], "name": "allPools", "outputs": [{"internalType": "address", "name": "", "type": "address"}], "stateMutability": "view", "type": "function"},
  {"inputs": [], "name": "allPoolsLength", "outputs": [{"internalType": "uint256", "name": "", "type": "uint256"}], "stateMutability": "view", "type": "function"}
]`

var (
	spreadPoolABI     abi.ABI
	spreadPoolABIOnce sync.Once
	spreadPoolABIErr  error

	limitPoolABI     abi.ABI
	limitPoolABIOnce sync.Once
	limitPoolABIErr  error

	spreadFactoryABI     abi.ABI
	spreadFactoryABIOnce sync.Once
	spreadFactoryABIErr  error

	limitFactoryABI     abi.ABI
	limitFactoryABIOnce sync.Once
	limitFactoryABIErr  error
)

// SpreadPoolABI returns the parsed spread pool ABI.
func SpreadPoolABI() (abi.ABI, error) {
	spreadPoolABIOnce.Do(func() {
		spreadPoolABI, spreadPoolABIErr = abi.JSON(strings.NewReader(spreadPoolABIJSON))
	})
	return spreadPoolABI, spreadPoolABIErr
}

// LimitPoolABI returns the parsed limit-order pool ABI.
func LimitPoolABI() (abi.ABI, error) {
	limitPoolABIOnce.Do(func() {
		limitPoolABI, limitPoolABIErr = abi.JSON(strings.NewReader(limitPoolABIJSON))
	})
	return limitPoolABI, limitPoolABIErr
}

// SpreadFactoryABI returns the parsed spread factory ABI.
func SpreadFactoryABI() (abi.ABI, error) {
	spreadFactoryABIOnce.Do(func() {
		spreadFactoryABI, spreadFactoryABIErr = abi.JSON(strings.NewReader(spreadFactoryABIJSON))
	})
	return spreadFactoryABI, spreadFactoryABIErr
}

// LimitFactoryABI returns the parsed limit-order factory ABI.
func LimitFactoryABI() (abi.ABI, error) {
	limitFactoryABIOnce.Do(func() {
		limitFactoryABI, limitFactoryABIErr = abi.JSON(strings.NewReader(limitFactoryABIJSON))
	})
	return limitFactoryABI, limitFactoryABIErr
}
