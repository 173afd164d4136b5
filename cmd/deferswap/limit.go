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

func newLimitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "limit",
		Short: "Limit-order pool flows",
	}

	history := &cobra.Command{
		Use:   "history",
		Short: "Paginated order history, newest first",
		RunE:  runLimitHistory,
	}
	addNetworkFlags(history)
	addPagingFlags(history)
	history.Flags().String("pool", "", "pool address")
	history.Flags().String("account", "", "only orders taken by this account")

	make := &cobra.Command{
		Use:   "make",
		Short: "Post a limit order (maker)",
		RunE:  runLimitMake,
	}
	addNetworkFlags(make)
	make.Flags().String("pool", "", "pool address")
	make.Flags().String("key", "", "maker private key")
	make.Flags().String("quote", "", "quote token amount offered")
	make.Flags().String("base", "", "base token amount asked")
	make.Flags().String("min-quote", "0", "minimum partial fill in quote token units")
	make.Flags().Float64("order-expiry", 24, "take window in hours from now")
	make.Flags().Float64("settle-expiry", 24, "settlement window in hours after take")
	make.Flags().Int64("rate", 500, "taker collateral rate in basis points")

	take := &cobra.Command{
		Use:   "take",
		Short: "Take an order, locking collateral (taker)",
		RunE:  runLimitTake,
	}
	addNetworkFlags(take)
	take.Flags().String("pool", "", "pool address")
	take.Flags().String("key", "", "taker private key")
	take.Flags().Uint64("id", 0, "order id")
	take.Flags().String("amount", "", "quote token amount to take")

	pay := &cobra.Command{
		Use:   "pay",
		Short: "Pay a taken order before its settlement deadline (taker)",
		RunE:  runLimitPay,
	}
	addNetworkFlags(pay)
	pay.Flags().String("pool", "", "pool address")
	pay.Flags().String("key", "", "taker private key")
	pay.Flags().Uint64("id", 0, "order id")

	cancel := &cobra.Command{
		Use:   "cancel",
		Short: "Cancel an untaken order (maker)",
		RunE:  runLimitCancel,
	}
	addNetworkFlags(cancel)
	cancel.Flags().String("pool", "", "pool address")
	cancel.Flags().String("key", "", "maker private key")
	cancel.Flags().Uint64("id", 0, "order id")

	cmd.AddCommand(history, make, take, pay, cancel)
	return cmd
}

type limitSession struct {
	*session
	pool  *deferswap.LimitPool
	cfg   deferswap.LimitPoolConfig
	base  view.TokenInfo
	quote view.TokenInfo
}

func openLimit(ctx context.Context, s *session) (*limitSession, error) {
	address, err := s.poolAddress()
	if err != nil {
		return nil, err
	}
	pool := deferswap.NewLimitPool(s.client, address)

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
	return &limitSession{session: s, pool: pool, cfg: cfg, base: base, quote: quote}, nil
}

func runLimitHistory(cmd *cobra.Command, _ []string) error {
	ctx, stop, s, err := newSession(cmd)
	if err != nil {
		return err
	}
	defer stop()
	defer s.close()

	ls, err := openLimit(ctx, s)
	if err != nil {
		return err
	}

	counter, err := ls.pool.SwapCounter(ctx)
	if err != nil {
		return fmt.Errorf("swap counter: %w", err)
	}

	records := make([]swap.LimitRecord, 0, counter)
	for id := counter; id > 0; id-- {
		rec, err := ls.pool.Swap(ctx, id-1)
		if err != nil {
			ls.logger.Warn("order read failed", zap.Uint64("swap_id", id-1), zap.Error(err))
			continue
		}
		records = append(records, rec)
	}

	if accountHex := mustString(cmd, "account"); accountHex != "" {
		account, err := parseAddress(accountHex, "account")
		if err != nil {
			return err
		}
		records = swap.FilterLimitBySwapper(records, account)
	}

	page := view.PageSlice(records, s.cfg.PageSize, s.cfg.Page)
	view.LimitHistoryTable(os.Stdout, page, ls.base, ls.quote, time.Now())
	fmt.Println(pageFooter(len(records), s.cfg.PageSize, s.cfg.Page, "orders"))
	return nil
}

func runLimitMake(cmd *cobra.Command, _ []string) error {
	ctx, stop, s, err := newSession(cmd)
	if err != nil {
		return err
	}
	defer stop()
	defer s.close()

	ls, err := openLimit(ctx, s)
	if err != nil {
		return err
	}
	signer, err := s.signer()
	if err != nil {
		return err
	}

	quoteAmount, err := swap.ParseUnits(mustString(cmd, "quote"), ls.quote.Decimals)
	if err != nil {
		return fmt.Errorf("parse quote amount: %w", err)
	}
	baseAmount, err := swap.ParseUnits(mustString(cmd, "base"), ls.base.Decimals)
	if err != nil {
		return fmt.Errorf("parse base amount: %w", err)
	}
	minQuote, err := swap.ParseUnits(mustString(cmd, "min-quote"), ls.quote.Decimals)
	if err != nil {
		return fmt.Errorf("parse min quote: %w", err)
	}

	now := time.Now()
	orderHours, _ := cmd.Flags().GetFloat64("order-expiry")
	settleHours, _ := cmd.Flags().GetFloat64("settle-expiry")
	rate, _ := cmd.Flags().GetInt64("rate")

	params := swap.LimitMakeParams{
		QuoteAmount:    quoteAmount,
		BaseAmount:     baseAmount,
		MinQuoteAmount: minQuote,
		OrderExpiry:    uint64(now.Unix()) + uint64(orderHours*3600),
		SettleExpiry:   uint64(settleHours * 3600),
		CollateralRate: big.NewInt(rate),
	}

	// The maker escrows the base amount, so balance and allowance checks run
	// against the base side.
	baseToken := deferswap.NewToken(s.client, ls.cfg.BaseToken)
	balance, err := baseToken.BalanceOf(ctx, signer.Address())
	if err != nil {
		return fmt.Errorf("base balance: %w", err)
	}

	if printWarnings(swap.LimitMakeWarnings(params, ls.cfg.CollateralRateLimit, balance, now)) {
		return nil
	}

	if err := s.ensureAllowance(ctx, signer, baseToken, ls.pool.Address, baseAmount); err != nil {
		return err
	}

	receipt, err := ls.pool.MakeQuote(ctx, signer, params)
	if err != nil {
		return err
	}
	fmt.Printf("order posted: %s\n", receipt.TxHash.Hex())
	return nil
}

func runLimitTake(cmd *cobra.Command, _ []string) error {
	ctx, stop, s, err := newSession(cmd)
	if err != nil {
		return err
	}
	defer stop()
	defer s.close()

	ls, err := openLimit(ctx, s)
	if err != nil {
		return err
	}
	signer, err := s.signer()
	if err != nil {
		return err
	}

	id, _ := cmd.Flags().GetUint64("id")
	rec, err := ls.pool.Swap(ctx, id)
	if err != nil {
		return fmt.Errorf("order %d: %w", id, err)
	}

	amount, err := swap.ParseUnits(mustString(cmd, "amount"), ls.quote.Decimals)
	if err != nil {
		return fmt.Errorf("parse amount: %w", err)
	}

	collateralToken := deferswap.NewToken(s.client, ls.cfg.QuoteToken)
	collateralInfo := ls.quote
	if ls.cfg.CollateralIsBase {
		collateralToken = deferswap.NewToken(s.client, ls.cfg.BaseToken)
		collateralInfo = ls.base
	}
	balance, err := collateralToken.BalanceOf(ctx, signer.Address())
	if err != nil {
		return fmt.Errorf("collateral balance: %w", err)
	}

	if printWarnings(swap.LimitTakeWarnings(rec, amount, balance, ls.cfg.CollateralIsBase, time.Now())) {
		return nil
	}

	required := swap.LimitTakerCollateral(rec.BaseAmount, rec.QuoteAmount, rec.CollateralRate, ls.cfg.CollateralIsBase)
	fmt.Printf("collateral to lock: %s %s\n",
		swap.FormatUnits(required, collateralInfo.Decimals), collateralInfo.Symbol)
	if err := s.ensureAllowance(ctx, signer, collateralToken, ls.pool.Address, required); err != nil {
		return err
	}

	receipt, err := ls.pool.TakeSwap(ctx, signer, id, amount)
	if err != nil {
		return err
	}
	fmt.Printf("order %d taken: %s\n", id, receipt.TxHash.Hex())
	return nil
}

func runLimitPay(cmd *cobra.Command, _ []string) error {
	ctx, stop, s, err := newSession(cmd)
	if err != nil {
		return err
	}
	defer stop()
	defer s.close()

	ls, err := openLimit(ctx, s)
	if err != nil {
		return err
	}
	signer, err := s.signer()
	if err != nil {
		return err
	}

	id, _ := cmd.Flags().GetUint64("id")
	rec, err := ls.pool.Swap(ctx, id)
	if err != nil {
		return fmt.Errorf("order %d: %w", id, err)
	}
	now := time.Now()
	if !swap.Eligible(swap.LimitActions(rec, swap.RoleTaker, now), swap.ActionPay) {
		return fmt.Errorf("order %d is %s and cannot be paid", id, swap.LimitStatus(rec, now))
	}

	quoteToken := deferswap.NewToken(s.client, ls.cfg.QuoteToken)
	if err := s.ensureAllowance(ctx, signer, quoteToken, ls.pool.Address, rec.QuoteAmount); err != nil {
		return err
	}

	receipt, err := ls.pool.PaySwap(ctx, signer, id)
	if err != nil {
		return err
	}
	fmt.Printf("order %d paid: %s\n", id, receipt.TxHash.Hex())
	return nil
}

func runLimitCancel(cmd *cobra.Command, _ []string) error {
	ctx, stop, s, err := newSession(cmd)
	if err != nil {
		return err
	}
	defer stop()
	defer s.close()

	ls, err := openLimit(ctx, s)
	if err != nil {
		return err
	}
	signer, err := s.signer()
	if err != nil {
		return err
	}

	id, _ := cmd.Flags().GetUint64("id")
	rec, err := ls.pool.Swap(ctx, id)
	if err != nil {
		return fmt.Errorf("order %d: %w", id, err)
	}
	now := time.Now()
	if !swap.Eligible(swap.LimitActions(rec, swap.RoleMaker, now), swap.ActionCancel) {
		return fmt.Errorf("order %d is %s and cannot be cancelled", id, swap.LimitStatus(rec, now))
	}

	receipt, err := ls.pool.CancelQuote(ctx, signer, id)
	if err != nil {
		return err
	}
	fmt.Printf("order %d cancelled: %s\n", id, receipt.TxHash.Hex())
	return nil
}
