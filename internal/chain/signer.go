package chain

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
)

// Signer is the CLI's account provider: a local secp256k1 key that signs
// legacy transactions for one chain.
type Signer struct {
	key     *ecdsa.PrivateKey
	address common.Address
	chainID *big.Int
}

// NewSigner parses a hex-encoded private key (with or without 0x prefix).
func NewSigner(privateKeyHex string, chainID *big.Int) (*Signer, error) {
	if chainID == nil || chainID.Sign() <= 0 {
		return nil, fmt.Errorf("chain id is required")
	}

	keyHex := strings.TrimPrefix(strings.TrimSpace(privateKeyHex), "0x")
	if keyHex == "" {
		return nil, fmt.Errorf("private key is required")
	}

	key, err := crypto.HexToECDSA(keyHex)
	if err != nil {
		return nil, fmt.Errorf("parse private key: %w", err)
	}

	return &Signer{
		key:     key,
		address: crypto.PubkeyToAddress(key.PublicKey),
		chainID: chainID,
	}, nil
}

// Address returns the connected account address.
func (s *Signer) Address() common.Address {
	return s.address
}

// Send signs and broadcasts a contract call and returns its hash. Gas is
// estimated with a 20% margin; the estimate doubles as a pre-flight revert
// check, so client-side validation failures surface before broadcast.
func (s *Signer) Send(ctx context.Context, client *Client, to common.Address, data []byte) (common.Hash, error) {
	nonce, err := client.PendingNonceAt(ctx, s.address)
	if err != nil {
		return common.Hash{}, fmt.Errorf("fetch nonce: %w", err)
	}

	gasPrice, err := client.SuggestGasPrice(ctx)
	if err != nil {
		return common.Hash{}, fmt.Errorf("fetch gas price: %w", err)
	}

	gasLimit, err := client.EstimateGas(ctx, s.address, to, data)
	if err != nil {
		return common.Hash{}, fmt.Errorf("estimate gas: %w", err)
	}
	gasLimit += gasLimit / 5

	tx := types.NewTx(&types.LegacyTx{
		Nonce:    nonce,
		GasPrice: gasPrice,
		Gas:      gasLimit,
		To:       &to,
		Data:     data,
	})

	signed, err := types.SignTx(tx, types.LatestSignerForChainID(s.chainID), s.key)
	if err != nil {
		return common.Hash{}, fmt.Errorf("sign tx: %w", err)
	}

	if err := client.SendTransaction(ctx, signed); err != nil {
		return common.Hash{}, fmt.Errorf("send tx: %w", err)
	}
	return signed.Hash(), nil
}

// SendAndWait submits a call and blocks until its receipt is available,
// returning an error for an on-chain revert.
func (s *Signer) SendAndWait(ctx context.Context, client *Client, to common.Address, data []byte) (*types.Receipt, error) {
	hash, err := s.Send(ctx, client, to, data)
	if err != nil {
		return nil, err
	}

	receipt, err := client.WaitMined(ctx, hash)
	if err != nil {
		return nil, err
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return receipt, fmt.Errorf("tx %s reverted", hash.Hex())
	}
	return receipt, nil
}
