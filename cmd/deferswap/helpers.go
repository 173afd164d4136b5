package main

import (
	"context"
	"fmt"
	"math/big"
	"os"
	"os/signal"
	"syscall"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"deferswap/internal/chain"
	"deferswap/internal/config"
	"deferswap/internal/deferswap"
	"deferswap/internal/swap"
	"deferswap/internal/view"
)

// session bundles what every command needs after setup: merged config, a
// logger, a connected client, and a token metadata cache.
type session struct {
	cfg    config.Config
	logger *zap.Logger
	client *chain.Client
	tokens *deferswap.TokenMetaCache
}

func newSession(cmd *cobra.Command) (context.Context, context.CancelFunc, *session, error) {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(cfgFile, cmd.Flags())
	if err != nil {
		return nil, nil, nil, err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return nil, nil, nil, err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	client, err := chain.Connect(ctx, cfg.Network.RPCURLs, cfg.Network.ChainID)
	if err != nil {
		stop()
		return nil, nil, nil, fmt.Errorf("connect rpc: %w", err)
	}

	return ctx, stop, &session{
		cfg:    cfg,
		logger: logger,
		client: client,
		tokens: deferswap.NewTokenMetaCache(),
	}, nil
}

func (s *session) close() {
	s.client.Close()
	s.logger.Sync()
}

func (s *session) signer() (*chain.Signer, error) {
	if s.cfg.Key == "" {
		return nil, fmt.Errorf("a private key is required (--key or DEFERSWAP_KEY)")
	}
	return chain.NewSigner(s.cfg.Key, new(big.Int).SetUint64(s.cfg.Network.ChainID))
}

func (s *session) poolAddress() (common.Address, error) {
	return parseAddress(s.cfg.Pool, "pool")
}

func (s *session) tokenInfo(ctx context.Context, address common.Address) (view.TokenInfo, error) {
	meta, err := deferswap.NewToken(s.client, address).Meta(ctx, s.tokens, s.logger)
	if err != nil {
		return view.TokenInfo{}, fmt.Errorf("token meta %s: %w", address.Hex(), err)
	}
	return view.TokenInfo{Symbol: meta.Symbol, Decimals: meta.Decimals}, nil
}

// ensureAllowance submits an approve when the current allowance does not
// cover required, and waits for it to mine before returning.
func (s *session) ensureAllowance(ctx context.Context, signer *chain.Signer, token *deferswap.Token, spender common.Address, required *big.Int) error {
	allowance, err := token.Allowance(ctx, signer.Address(), spender)
	if err != nil {
		return fmt.Errorf("fetch allowance: %w", err)
	}
	if swap.AllowanceSufficient(allowance, required) {
		return nil
	}

	s.logger.Info("approving token",
		zap.String("token", token.Address.Hex()),
		zap.String("spender", spender.Hex()),
		zap.String("amount", required.String()),
	)
	data, err := token.ApproveCalldata(spender, required)
	if err != nil {
		return err
	}
	receipt, err := signer.SendAndWait(ctx, s.client, token.Address, data)
	if err != nil {
		return fmt.Errorf("approve: %w", err)
	}
	s.logger.Info("approve mined", zap.String("tx", receipt.TxHash.Hex()))
	return nil
}

func parseAddress(input, what string) (common.Address, error) {
	if input == "" {
		return common.Address{}, fmt.Errorf("%s address is required", what)
	}
	if !common.IsHexAddress(input) {
		return common.Address{}, fmt.Errorf("invalid %s address %q", what, input)
	}
	return common.HexToAddress(input), nil
}

// printWarnings reports client-side validation failures and returns true when
// the command must not submit.
func printWarnings(warnings []string) bool {
	if len(warnings) == 0 {
		return false
	}
	fmt.Println("not submitting:")
	for _, w := range warnings {
		fmt.Printf("  - %s\n", w)
	}
	return true
}
