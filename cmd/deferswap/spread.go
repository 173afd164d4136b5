package main

import (
	"context"
	"fmt"
	"math/big"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"deferswap/internal/deferswap"
	"deferswap/internal/swap"
	"deferswap/internal/view"
)

func newSpreadCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "spread",
		Short: "Spread-quote pool flows",
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Show pool parameters and the latest quote",
		RunE:  runSpreadShow,
	}
	addNetworkFlags(show)
	show.Flags().String("pool", "", "pool address")

	history := &cobra.Command{
		Use:   "history",
		Short: "Paginated swap history, newest first",
		RunE:  runSpreadHistory,
	}
	addNetworkFlags(history)
	addPagingFlags(history)
	history.Flags().String("pool", "", "pool address")
	history.Flags().String("account", "", "only swaps taken by this account")

	quote := &cobra.Command{
		Use:   "quote",
		Short: "Post a tiered spread quote (maker)",
		RunE:  runSpreadQuote,
	}
	addNetworkFlags(quote)
	quote.Flags().String("pool", "", "pool address")
	quote.Flags().String("key", "", "maker private key")
	quote.Flags().Int64Slice("spread", nil, "spread per tier in basis points")
	quote.Flags().StringSlice("tier", nil, "size tiers in quote token units, strictly ascending")

	take := &cobra.Command{
		Use:   "take",
		Short: "Take the latest quote (taker)",
		RunE:  runSpreadTake,
	}
	addNetworkFlags(take)
	take.Flags().String("pool", "", "pool address")
	take.Flags().String("key", "", "taker private key")
	take.Flags().String("amount", "", "quote token amount to swap")
	take.Flags().Float64("slippage", 0.5, "max slippage percent; 0 disables the minimum-out guard")

	settle := &cobra.Command{
		Use:   "settle",
		Short: "Settle a taken swap by delivering base tokens (maker)",
		RunE:  runSpreadSettle,
	}
	addNetworkFlags(settle)
	settle.Flags().String("pool", "", "pool address")
	settle.Flags().String("key", "", "maker private key")
	settle.Flags().Uint64("id", 0, "swap id")

	claim := &cobra.Command{
		Use:   "claim",
		Short: "Claim a settled or defaulted swap",
		RunE:  runSpreadClaim,
	}
	addNetworkFlags(claim)
	claim.Flags().String("pool", "", "pool address")
	claim.Flags().String("key", "", "private key")
	claim.Flags().Uint64("id", 0, "swap id")

	cancel := &cobra.Command{
		Use:   "cancel",
		Short: "Cancel an untaken quote (maker)",
		RunE:  runSpreadCancel,
	}
	addNetworkFlags(cancel)
	cancel.Flags().String("pool", "", "pool address")
	cancel.Flags().String("key", "", "maker private key")
	cancel.Flags().Uint64("id", 0, "swap id")

	set := &cobra.Command{
		Use:   "set",
		Short: "Update pool parameters (maker)",
		RunE:  runSpreadSet,
	}
	addNetworkFlags(set)
	set.Flags().String("pool", "", "pool address")
	set.Flags().String("key", "", "maker private key")
	set.Flags().Int64("penalty-rate", 0, "new penalty rate in basis points")
	set.Flags().String("min-quote-size", "", "new minimum quote size in quote token units")
	set.Flags().Uint64("settlement-period", 0, "new settlement period in seconds")

	cmd.AddCommand(show, history, quote, take, settle, claim, cancel, set)
	return cmd
}

type spreadSession struct {
	*session
	pool  *deferswap.SpreadPool
	cfg   deferswap.SpreadPoolConfig
	base  view.TokenInfo
	quote view.TokenInfo
}

func openSpread(ctx context.Context, s *session) (*spreadSession, error) {
	address, err := s.poolAddress()
	if err != nil {
		return nil, err
	}
	pool := deferswap.NewSpreadPool(s.client, address)

	cfg, err := pool.Config(ctx)
	if err != nil {
		return nil, fmt.Errorf("pool config: %w", err)
	}
	base, err := s.tokenInfo(ctx, cfg.BaseToken)
	if err != nil {
		return nil, err
	}
	quote, err := s.tokenInfo(ctx, cfg.QuoteToken)
	if err != nil {
		return nil, err
	}
	return &spreadSession{session: s, pool: pool, cfg: cfg, base: base, quote: quote}, nil
}

func runSpreadShow(cmd *cobra.Command, _ []string) error {
	ctx, stop, s, err := newSession(cmd)
	if err != nil {
		return err
	}
	defer stop()
	defer s.close()

	ss, err := openSpread(ctx, s)
	if err != nil {
		return err
	}

	fmt.Printf("pool              %s\n", ss.pool.Address.Hex())
	fmt.Printf("pair              %s/%s\n", ss.quote.Symbol, ss.base.Symbol)
	fmt.Printf("market maker      %s\n", ss.cfg.MarketMaker.Hex())
	fmt.Printf("min quote size    %s %s\n", swap.FormatUnits(ss.cfg.MinQuoteSize, ss.quote.Decimals), ss.quote.Symbol)
	fmt.Printf("settlement period %s seconds\n", ss.cfg.SettlementPeriod)
	fmt.Printf("penalty rate      %s bps\n", ss.cfg.PenaltyRate)

	if price, err := ss.pool.OraclePrice(ctx); err != nil {
		ss.logger.Warn("oracle price read failed", zap.Error(err))
	} else {
		fmt.Printf("oracle price      %s\n", price)
	}

	rec, ok, err := ss.pool.LatestSwap(ctx)
	if err != nil {
		return fmt.Errorf("latest swap: %w", err)
	}
	if !ok {
		fmt.Println("no quotes yet")
		return nil
	}

	now := time.Now()
	status := swap.SpreadStatus(rec, now)
	countdown := view.FrozenCountdown
	if !rec.Claimed && !rec.Cancelled {
		countdown = view.FormatCountdown(rec.Expiry, now)
	}
	fmt.Printf("\nlatest swap #%d: %s, expires in %s\n", rec.ID, status, countdown)
	fmt.Printf("  quote %s %s / base %s %s / max size %s %s\n",
		swap.FormatUnits(rec.QuoteAmount, ss.quote.Decimals), ss.quote.Symbol,
		swap.FormatUnits(rec.BaseAmount, ss.base.Decimals), ss.base.Symbol,
		swap.FormatUnits(rec.MaxQuoteSize, ss.quote.Decimals), ss.quote.Symbol,
	)
	fmt.Printf("  maker actions: %v\n", swap.SpreadActions(rec, swap.RoleMaker, now))
	fmt.Printf("  taker actions: %v\n", swap.SpreadActions(rec, swap.RoleTaker, now))
	return nil
}

func runSpreadHistory(cmd *cobra.Command, _ []string) error {
	ctx, stop, s, err := newSession(cmd)
	if err != nil {
		return err
	}
	defer stop()
	defer s.close()

	ss, err := openSpread(ctx, s)
	if err != nil {
		return err
	}

	counter, err := ss.pool.SwapCounter(ctx)
	if err != nil {
		return fmt.Errorf("swap counter: %w", err)
	}

	records := make([]swap.SpreadRecord, 0, counter)
	for id := counter; id > 0; id-- {
		rec, err := ss.pool.Swap(ctx, id-1)
		if err != nil {
			ss.logger.Warn("swap read failed", zap.Uint64("swap_id", id-1), zap.Error(err))
			continue
		}
		records = append(records, rec)
	}

	if accountHex := mustString(cmd, "account"); accountHex != "" {
		account, err := parseAddress(accountHex, "account")
		if err != nil {
			return err
		}
		records = swap.FilterSpreadBySwapper(records, account)
	}

	page := view.PageSlice(records, s.cfg.PageSize, s.cfg.Page)
	view.SpreadHistoryTable(os.Stdout, page, ss.base, ss.quote, time.Now())
	fmt.Println(pageFooter(len(records), s.cfg.PageSize, s.cfg.Page, "records"))
	return nil
}

func runSpreadQuote(cmd *cobra.Command, _ []string) error {
	ctx, stop, s, err := newSession(cmd)
	if err != nil {
		return err
	}
	defer stop()
	defer s.close()

	ss, err := openSpread(ctx, s)
	if err != nil {
		return err
	}
	signer, err := s.signer()
	if err != nil {
		return err
	}

	spreadBips, _ := cmd.Flags().GetInt64Slice("spread")
	tierInputs, _ := cmd.Flags().GetStringSlice("tier")

	spreads := make([]*big.Int, 0, len(spreadBips))
	for _, bips := range spreadBips {
		spreads = append(spreads, big.NewInt(bips))
	}
	tiers := make([]*big.Int, 0, len(tierInputs))
	for _, input := range tierInputs {
		tier, err := swap.ParseUnits(input, ss.quote.Decimals)
		if err != nil {
			return fmt.Errorf("parse tier %q: %w", input, err)
		}
		tiers = append(tiers, tier)
	}

	price, err := ss.pool.OraclePrice(ctx)
	if err != nil {
		return fmt.Errorf("oracle price: %w", err)
	}

	var required *big.Int
	if len(tiers) > 0 {
		required = swap.SpreadMakerCollateral(tiers[len(tiers)-1], price, ss.cfg.PenaltyRate)
	}

	baseToken := deferswap.NewToken(s.client, ss.cfg.BaseToken)
	balance, err := baseToken.BalanceOf(ctx, signer.Address())
	if err != nil {
		return fmt.Errorf("base balance: %w", err)
	}

	if printWarnings(swap.SpreadQuoteWarnings(spreads, tiers, required, balance)) {
		return nil
	}

	fmt.Printf("required collateral: %s %s (5%% buffer included)\n",
		swap.FormatUnits(required, ss.base.Decimals), ss.base.Symbol)
	if err := s.ensureAllowance(ctx, signer, baseToken, ss.pool.Address, required); err != nil {
		return err
	}

	receipt, err := ss.pool.Quote(ctx, signer, spreads, tiers)
	if err != nil {
		return err
	}
	fmt.Printf("quote posted: %s\n", receipt.TxHash.Hex())
	return nil
}

func runSpreadTake(cmd *cobra.Command, _ []string) error {
	ctx, stop, s, err := newSession(cmd)
	if err != nil {
		return err
	}
	defer stop()
	defer s.close()

	ss, err := openSpread(ctx, s)
	if err != nil {
		return err
	}
	signer, err := s.signer()
	if err != nil {
		return err
	}

	amount, err := swap.ParseUnits(mustString(cmd, "amount"), ss.quote.Decimals)
	if err != nil {
		return fmt.Errorf("parse amount: %w", err)
	}

	rec, ok, err := ss.pool.LatestSwap(ctx)
	if err != nil {
		return fmt.Errorf("latest swap: %w", err)
	}
	if !ok {
		return fmt.Errorf("pool has no quotes")
	}

	quoteToken := deferswap.NewToken(s.client, ss.cfg.QuoteToken)
	balance, err := quoteToken.BalanceOf(ctx, signer.Address())
	if err != nil {
		return fmt.Errorf("quote balance: %w", err)
	}

	if printWarnings(swap.SpreadTakeWarnings(rec, amount, ss.cfg.MinQuoteSize, balance, time.Now())) {
		return nil
	}

	baseOut, err := ss.pool.EffectivePriceWithSpread(ctx, rec.ID, amount)
	if err != nil {
		return fmt.Errorf("effective price: %w", err)
	}
	minBase := swap.MinBaseAmount(baseOut, swap.SlippageBips(s.cfg.SlippagePct))
	fmt.Printf("expected out: %s %s (min %s)\n",
		swap.FormatUnits(baseOut, ss.base.Decimals), ss.base.Symbol,
		swap.FormatUnits(minBase, ss.base.Decimals))

	if err := s.ensureAllowance(ctx, signer, quoteToken, ss.pool.Address, amount); err != nil {
		return err
	}

	receipt, err := ss.pool.TakeSwap(ctx, signer, amount, minBase)
	if err != nil {
		return err
	}
	fmt.Printf("swap taken: %s\n", receipt.TxHash.Hex())
	return nil
}

func runSpreadSettle(cmd *cobra.Command, _ []string) error {
	ctx, stop, s, err := newSession(cmd)
	if err != nil {
		return err
	}
	defer stop()
	defer s.close()

	ss, err := openSpread(ctx, s)
	if err != nil {
		return err
	}
	signer, err := s.signer()
	if err != nil {
		return err
	}

	id, _ := cmd.Flags().GetUint64("id")
	rec, err := ss.pool.Swap(ctx, id)
	if err != nil {
		return fmt.Errorf("swap %d: %w", id, err)
	}
	if !swap.Eligible(swap.SpreadActions(rec, swap.RoleMaker, time.Now()), swap.ActionSettle) {
		return fmt.Errorf("swap %d is %s and cannot be settled", id, swap.SpreadStatus(rec, time.Now()))
	}

	baseToken := deferswap.NewToken(s.client, ss.cfg.BaseToken)
	if err := s.ensureAllowance(ctx, signer, baseToken, ss.pool.Address, rec.BaseAmount); err != nil {
		return err
	}

	receipt, err := ss.pool.SettleSwap(ctx, signer, id)
	if err != nil {
		return err
	}
	fmt.Printf("swap %d settled: %s\n", id, receipt.TxHash.Hex())
	return nil
}

func runSpreadClaim(cmd *cobra.Command, _ []string) error {
	ctx, stop, s, err := newSession(cmd)
	if err != nil {
		return err
	}
	defer stop()
	defer s.close()

	ss, err := openSpread(ctx, s)
	if err != nil {
		return err
	}
	signer, err := s.signer()
	if err != nil {
		return err
	}

	id, _ := cmd.Flags().GetUint64("id")
	rec, err := ss.pool.Swap(ctx, id)
	if err != nil {
		return fmt.Errorf("swap %d: %w", id, err)
	}
	now := time.Now()
	if !swap.Eligible(swap.SpreadActions(rec, swap.RoleTaker, now), swap.ActionClaim) &&
		!swap.Eligible(swap.SpreadActions(rec, swap.RoleMaker, now), swap.ActionClaim) {
		return fmt.Errorf("swap %d is %s and cannot be claimed", id, swap.SpreadStatus(rec, now))
	}

	receipt, err := ss.pool.ClaimSwap(ctx, signer, id)
	if err != nil {
		return err
	}
	fmt.Printf("swap %d claimed: %s\n", id, receipt.TxHash.Hex())
	return nil
}

func runSpreadCancel(cmd *cobra.Command, _ []string) error {
	ctx, stop, s, err := newSession(cmd)
	if err != nil {
		return err
	}
	defer stop()
	defer s.close()

	ss, err := openSpread(ctx, s)
	if err != nil {
		return err
	}
	signer, err := s.signer()
	if err != nil {
		return err
	}

	id, _ := cmd.Flags().GetUint64("id")
	rec, err := ss.pool.Swap(ctx, id)
	if err != nil {
		return fmt.Errorf("swap %d: %w", id, err)
	}
	if !swap.Eligible(swap.SpreadActions(rec, swap.RoleMaker, time.Now()), swap.ActionCancel) {
		return fmt.Errorf("swap %d is %s and cannot be cancelled", id, swap.SpreadStatus(rec, time.Now()))
	}

	receipt, err := ss.pool.CancelSwap(ctx, signer, id)
	if err != nil {
		return err
	}
	fmt.Printf("swap %d cancelled: %s\n", id, receipt.TxHash.Hex())
	return nil
}

func runSpreadSet(cmd *cobra.Command, _ []string) error {
	ctx, stop, s, err := newSession(cmd)
	if err != nil {
		return err
	}
	defer stop()
	defer s.close()

	ss, err := openSpread(ctx, s)
	if err != nil {
		return err
	}
	signer, err := s.signer()
	if err != nil {
		return err
	}

	changed := false
	if cmd.Flags().Changed("penalty-rate") {
		rate, _ := cmd.Flags().GetInt64("penalty-rate")
		receipt, err := ss.pool.SetPenaltyRate(ctx, signer, big.NewInt(rate))
		if err != nil {
			return err
		}
		fmt.Printf("penalty rate set: %s\n", receipt.TxHash.Hex())
		changed = true
	}
	if cmd.Flags().Changed("min-quote-size") {
		size, err := swap.ParseUnits(mustString(cmd, "min-quote-size"), ss.quote.Decimals)
		if err != nil {
			return fmt.Errorf("parse min quote size: %w", err)
		}
		receipt, err := ss.pool.SetMinQuoteSize(ctx, signer, size)
		if err != nil {
			return err
		}
		fmt.Printf("min quote size set: %s\n", receipt.TxHash.Hex())
		changed = true
	}
	if cmd.Flags().Changed("settlement-period") {
		seconds, _ := cmd.Flags().GetUint64("settlement-period")
		receipt, err := ss.pool.SetSettlementPeriod(ctx, signer, new(big.Int).SetUint64(seconds))
		if err != nil {
			return err
		}
		fmt.Printf("settlement period set: %s\n", receipt.TxHash.Hex())
		changed = true
	}

	if !changed {
		return fmt.Errorf("nothing to set: pass --penalty-rate, --min-quote-size, or --settlement-period")
	}
	return nil
}
