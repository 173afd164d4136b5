package chain

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/rpc"
)

// Client is the contract read/write gateway. It wraps a go-ethereum RPC
// connection; everything above it works in terms of packed calldata and
// unpacked return values.
type Client struct {
	rpcClient *rpc.Client
	ethClient *ethclient.Client
}

// NewClient connects to a single RPC URL.
func NewClient(ctx context.Context, rpcURL string) (*Client, error) {
	rpcClient, err := rpc.DialContext(ctx, rpcURL)
	if err != nil {
		return nil, err
	}

	return &Client{
		rpcClient: rpcClient,
		ethClient: ethclient.NewClient(rpcClient),
	}, nil
}

// Connect tries each RPC URL in order and returns a client for the first one
// that answers eth_chainId. With wantChainID non-zero, endpoints on the wrong
// network are rejected rather than silently used.
func Connect(ctx context.Context, rpcURLs []string, wantChainID uint64) (*Client, error) {
	if len(rpcURLs) == 0 {
		return nil, fmt.Errorf("at least one rpc url is required")
	}

	var lastErr error
	for _, url := range rpcURLs {
		client, err := NewClient(ctx, url)
		if err != nil {
			lastErr = fmt.Errorf("dial %s: %w", url, err)
			continue
		}

		chainID, err := client.ChainID(ctx)
		if err != nil {
			client.Close()
			lastErr = fmt.Errorf("chain id from %s: %w", url, err)
			continue
		}
		if wantChainID != 0 && chainID.Uint64() != wantChainID {
			client.Close()
			lastErr = fmt.Errorf("%s is chain %s, want %d", url, chainID, wantChainID)
			continue
		}
		return client, nil
	}
	return nil, lastErr
}

// Close closes the underlying RPC client.
func (c *Client) Close() {
	if c.rpcClient != nil {
		c.rpcClient.Close()
	}
}

// ChainID returns the chain ID.
func (c *Client) ChainID(ctx context.Context) (*big.Int, error) {
	return c.ethClient.ChainID(ctx)
}

// CallContract performs an eth_call against the latest block.
func (c *Client) CallContract(ctx context.Context, to common.Address, data []byte) ([]byte, error) {
	msg := ethereum.CallMsg{To: &to, Data: data}
	return c.ethClient.CallContract(ctx, msg, nil)
}

// PendingNonceAt returns the next nonce for an account.
func (c *Client) PendingNonceAt(ctx context.Context, account common.Address) (uint64, error) {
	return c.ethClient.PendingNonceAt(ctx, account)
}

// SuggestGasPrice returns the node's gas price suggestion.
func (c *Client) SuggestGasPrice(ctx context.Context) (*big.Int, error) {
	return c.ethClient.SuggestGasPrice(ctx)
}

// EstimateGas estimates gas for a contract call from the given account.
func (c *Client) EstimateGas(ctx context.Context, from, to common.Address, data []byte) (uint64, error) {
	msg := ethereum.CallMsg{From: from, To: &to, Data: data}
	return c.ethClient.EstimateGas(ctx, msg)
}

// SendTransaction broadcasts a signed transaction.
func (c *Client) SendTransaction(ctx context.Context, tx *types.Transaction) error {
	return c.ethClient.SendTransaction(ctx, tx)
}

// WaitMined polls until the transaction is mined and returns its receipt.
// Dependent reads must not be issued before this returns, or they race pending
// chain state.
func (c *Client) WaitMined(ctx context.Context, hash common.Hash) (*types.Receipt, error) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		receipt, err := c.ethClient.TransactionReceipt(ctx, hash)
		if err == nil {
			return receipt, nil
		}
		if err != ethereum.NotFound {
			return nil, fmt.Errorf("fetch receipt %s: %w", hash.Hex(), err)
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
}
