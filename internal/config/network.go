package config

// PoolDefaults are the parameters a new spread pool is deployed with unless
// overridden.
type PoolDefaults struct {
	MinQuoteSize     uint64
	SettlementPeriod uint64
	PenaltyRate      uint64
}

// Pair is a known token pair a pool can be deployed for.
type Pair struct {
	Label           string
	FlipOraclePrice bool
	BaseToken       string
	QuoteToken      string
	PriceFeed       string
}

// Network bundles everything chain-specific: endpoints, factory addresses,
// and deploy defaults. Commands receive it explicitly instead of reading
// package-level constants.
type Network struct {
	Name           string
	ChainID        uint64
	RPCURLs        []string
	ExplorerURL    string
	SpreadFactory  string
	LimitFactory   string
	SkipFirstPools uint64
	Defaults       PoolDefaults
	Pairs          []Pair
}

// BSC returns the default network. The first few factory pools are early
// test deployments and are skipped in listings.
func BSC() Network {
	return Network{
		Name:    "BSC",
		ChainID: 56,
		RPCURLs: []string{
			"https://bsc-dataseed1.binance.org",
			"https://bsc-dataseed2.binance.org",
			"https://bsc-dataseed3.binance.org",
			"https://bsc-dataseed4.binance.org",
			"https://binance.llamarpc.com",
		},
		ExplorerURL:    "https://bscscan.com",
		SpreadFactory:  "0x46569bd4cd7D8C7920c87B62176E26B7a2c64907",
		LimitFactory:   "",
		SkipFirstPools: 3,
		Defaults: PoolDefaults{
			MinQuoteSize:     0,
			SettlementPeriod: 60 * 60 * 24,
			PenaltyRate:      500,
		},
		Pairs: []Pair{
			{
				Label:           "quote:DODO base:USDC",
				FlipOraclePrice: false,
				BaseToken:       "0x8AC76a51cc950d9822D68b83fE1Ad97B32Cd580d",
				QuoteToken:      "0x67ee3Cb086F8a16f34beE3ca72FAD36F7Db929e2",
				PriceFeed:       "0x87701B15C08687341c2a847ca44eCfBc8d7873E1",
			},
			{
				Label:           "quote:USDC base:DODO",
				FlipOraclePrice: true,
				BaseToken:       "0x67ee3Cb086F8a16f34beE3ca72FAD36F7Db929e2",
				QuoteToken:      "0x8AC76a51cc950d9822D68b83fE1Ad97B32Cd580d",
				PriceFeed:       "0x87701B15C08687341c2a847ca44eCfBc8d7873E1",
			},
		},
	}
}

// PairByLabel looks up a known pair.
func (n Network) PairByLabel(label string) (Pair, bool) {
	for _, pair := range n.Pairs {
		if pair.Label == label {
			return pair, true
		}
	}
	return Pair{}, false
}
