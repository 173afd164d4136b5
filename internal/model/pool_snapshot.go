package model

// PoolSnapshot is a point-in-time view of a pool's identity and counters,
// taken by the watch loop. Big integer fields are decimal strings so the
// records survive JSON round trips without precision loss.
type PoolSnapshot struct {
	ChainID     uint64 `json:"chain_id"`
	Kind        string `json:"kind"`
	Address     string `json:"address"`
	BaseToken   string `json:"base_token"`
	QuoteToken  string `json:"quote_token"`
	MarketMaker string `json:"market_maker"`
	SwapCounter uint64 `json:"swap_counter"`
	ObservedAt  string `json:"observed_at"`
}
