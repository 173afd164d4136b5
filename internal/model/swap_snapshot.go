package model

// SwapSnapshot is a point-in-time view of one swap record. Amounts are
// decimal strings in the token's smallest unit.
type SwapSnapshot struct {
	ChainID     uint64 `json:"chain_id"`
	PoolKind    string `json:"pool_kind"`
	PoolAddress string `json:"pool_address"`
	SwapID      uint64 `json:"swap_id"`
	Swapper     string `json:"swapper"`
	QuoteAmount string `json:"quote_amount"`
	BaseAmount  string `json:"base_amount"`
	Collateral  string `json:"collateral"`
	Expiry      uint64 `json:"expiry"`
	Taken       bool   `json:"taken"`
	Settled     bool   `json:"settled"`
	Claimed     bool   `json:"claimed"`
	Cancelled   bool   `json:"cancelled"`
	Status      string `json:"status"`
	ObservedAt  string `json:"observed_at"`
}

// FetchError records a swap read that failed after retries, so a bad record
// never stalls the rest of the batch.
type FetchError struct {
	ChainID     uint64 `json:"chain_id"`
	PoolAddress string `json:"pool_address"`
	SwapID      uint64 `json:"swap_id"`
	Error       string `json:"error"`
	ObservedAt  string `json:"observed_at"`
}
