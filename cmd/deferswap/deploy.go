package main

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"

	"deferswap/internal/deferswap"
)

func newDeployCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deploy",
		Short: "Deploy pools through the factories",
	}

	spread := &cobra.Command{
		Use:   "spread",
		Short: "Deploy a spread-quote pool",
		RunE:  runDeploySpread,
	}
	addNetworkFlags(spread)
	spread.Flags().String("key", "", "deployer private key, becomes the market maker")
	spread.Flags().String("spread-factory", "", "spread factory address override")
	spread.Flags().String("pair", "", "known pair label from the network config")
	spread.Flags().String("base", "", "base token address")
	spread.Flags().String("quote", "", "quote token address")
	spread.Flags().String("price-feed", "", "oracle price feed address")
	spread.Flags().Bool("flip", false, "flip the oracle price (quote per base feeds)")
	spread.Flags().Uint64("min-quote-size", 0, "minimum quote size in raw units")
	spread.Flags().Uint64("settlement-period", 0, "settlement period in seconds, 0 uses the network default")
	spread.Flags().Int64("penalty-rate", 0, "penalty rate in basis points, 0 uses the network default")

	limit := &cobra.Command{
		Use:   "limit",
		Short: "Deploy a limit-order pool",
		RunE:  runDeployLimit,
	}
	addNetworkFlags(limit)
	limit.Flags().String("key", "", "deployer private key")
	limit.Flags().String("limit-factory", "", "limit factory address override")
	limit.Flags().String("base", "", "base token address")
	limit.Flags().String("quote", "", "quote token address")
	limit.Flags().String("maker", "", "market maker address, defaults to the deployer")
	limit.Flags().Bool("collateral-is-base", false, "collect taker collateral in base token")
	limit.Flags().Int64("rate-limit", 10000, "maximum collateral rate makers may ask, in basis points")

	cmd.AddCommand(spread, limit)
	return cmd
}

func runDeploySpread(cmd *cobra.Command, _ []string) error {
	ctx, stop, s, err := newSession(cmd)
	if err != nil {
		return err
	}
	defer stop()
	defer s.close()

	signer, err := s.signer()
	if err != nil {
		return err
	}
	factoryAddr, err := parseAddress(s.cfg.Network.SpreadFactory, "factory")
	if err != nil {
		return err
	}

	params := deferswap.SpreadPoolParams{
		MinQuoteSize:     new(big.Int).SetUint64(s.cfg.Network.Defaults.MinQuoteSize),
		SettlementPeriod: new(big.Int).SetUint64(s.cfg.Network.Defaults.SettlementPeriod),
		PenaltyRate:      new(big.Int).SetUint64(s.cfg.Network.Defaults.PenaltyRate),
	}

	if label := mustString(cmd, "pair"); label != "" {
		pair, ok := s.cfg.Network.PairByLabel(label)
		if !ok {
			return fmt.Errorf("unknown pair %q", label)
		}
		params.FlipOraclePrice = pair.FlipOraclePrice
		params.BaseToken = common.HexToAddress(pair.BaseToken)
		params.QuoteToken = common.HexToAddress(pair.QuoteToken)
		params.PriceFeed = common.HexToAddress(pair.PriceFeed)
	} else {
		if params.BaseToken, err = parseAddress(mustString(cmd, "base"), "base token"); err != nil {
			return err
		}
		if params.QuoteToken, err = parseAddress(mustString(cmd, "quote"), "quote token"); err != nil {
			return err
		}
		if params.PriceFeed, err = parseAddress(mustString(cmd, "price-feed"), "price feed"); err != nil {
			return err
		}
		params.FlipOraclePrice, _ = cmd.Flags().GetBool("flip")
	}

	if cmd.Flags().Changed("min-quote-size") {
		size, _ := cmd.Flags().GetUint64("min-quote-size")
		params.MinQuoteSize = new(big.Int).SetUint64(size)
	}
	if cmd.Flags().Changed("settlement-period") {
		seconds, _ := cmd.Flags().GetUint64("settlement-period")
		params.SettlementPeriod = new(big.Int).SetUint64(seconds)
	}
	if cmd.Flags().Changed("penalty-rate") {
		rate, _ := cmd.Flags().GetInt64("penalty-rate")
		params.PenaltyRate = big.NewInt(rate)
	}

	factory := deferswap.NewSpreadFactory(s.client, factoryAddr)
	receipt, err := factory.CreatePool(ctx, signer, params)
	if err != nil {
		return err
	}
	fmt.Printf("pool deployed: %s\n", receipt.TxHash.Hex())
	fmt.Printf("%s/tx/%s\n", s.cfg.Network.ExplorerURL, receipt.TxHash.Hex())
	return nil
}

func runDeployLimit(cmd *cobra.Command, _ []string) error {
	ctx, stop, s, err := newSession(cmd)
	if err != nil {
		return err
	}
	defer stop()
	defer s.close()

	signer, err := s.signer()
	if err != nil {
		return err
	}
	factoryAddr, err := parseAddress(s.cfg.Network.LimitFactory, "factory")
	if err != nil {
		return err
	}

	var params deferswap.LimitPoolParams
	if params.BaseToken, err = parseAddress(mustString(cmd, "base"), "base token"); err != nil {
		return err
	}
	if params.QuoteToken, err = parseAddress(mustString(cmd, "quote"), "quote token"); err != nil {
		return err
	}

	params.MarketMaker = signer.Address()
	if maker := mustString(cmd, "maker"); maker != "" {
		if params.MarketMaker, err = parseAddress(maker, "maker"); err != nil {
			return err
		}
	}

	params.CollateralIsBase, _ = cmd.Flags().GetBool("collateral-is-base")
	rateLimit, _ := cmd.Flags().GetInt64("rate-limit")
	params.CollateralRateLimit = big.NewInt(rateLimit)

	factory := deferswap.NewLimitFactory(s.client, factoryAddr)
	receipt, err := factory.CreatePool(ctx, signer, params)
	if err != nil {
		return err
	}
	fmt.Printf("pool deployed: %s\n", receipt.TxHash.Hex())
	fmt.Printf("%s/tx/%s\n", s.cfg.Network.ExplorerURL, receipt.TxHash.Hex())
	return nil
}
