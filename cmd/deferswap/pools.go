package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"deferswap/internal/deferswap"
	"deferswap/internal/swap"
	"deferswap/internal/view"
)

func addNetworkFlags(cmd *cobra.Command) {
	cmd.Flags().StringSlice("rpc", nil, "RPC URLs, first reachable wins")
	cmd.Flags().Uint64("chain-id", 56, "chain id")
	cmd.Flags().String("log-level", "info", "log level (debug, info, warn, error)")
}

func addPagingFlags(cmd *cobra.Command) {
	cmd.Flags().Int("page", 1, "page number (1-based)")
	cmd.Flags().Int("page-size", 10, "records per page")
}

func newPoolsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pools",
		Short: "List deployed pools",
		RunE:  runPools,
	}

	addNetworkFlags(cmd)
	addPagingFlags(cmd)
	cmd.Flags().String("tab", "spread", "pool kind to list (spread or limit)")
	cmd.Flags().String("spread-factory", "", "spread factory address override")
	cmd.Flags().String("limit-factory", "", "limit factory address override")
	cmd.Flags().Uint64("skip", 0, "extra pools to skip beyond the default test pools")
	cmd.Flags().Uint64("limit", 50, "maximum pools to fetch from the factory")
	cmd.Flags().Uint64("skip-first", 3, "early test pools hidden from listings")
	cmd.Flags().Bool("my-pools", false, "only pools whose market maker is --account")
	cmd.Flags().Bool("open-orders", false, "only pools whose latest record is open")
	cmd.Flags().String("account", "", "account address for --my-pools")

	return cmd
}

func runPools(cmd *cobra.Command, _ []string) error {
	ctx, stop, s, err := newSession(cmd)
	if err != nil {
		return err
	}
	defer stop()
	defer s.close()

	kind, err := deferswap.ParseKind(mustString(cmd, "tab"))
	if err != nil {
		return err
	}

	factoryAddr := s.cfg.Network.SpreadFactory
	if kind == deferswap.KindLimit {
		factoryAddr = s.cfg.Network.LimitFactory
	}
	factory, err := parseAddress(factoryAddr, "factory")
	if err != nil {
		return err
	}

	myPools, _ := cmd.Flags().GetBool("my-pools")
	openOnly, _ := cmd.Flags().GetBool("open-orders")
	var account common.Address
	if myPools {
		accountHex, _ := cmd.Flags().GetString("account")
		if account, err = parseAddress(accountHex, "account"); err != nil {
			return err
		}
	}

	var addresses []common.Address
	switch kind {
	case deferswap.KindSpread:
		addresses, err = deferswap.NewSpreadFactory(s.client, factory).Pools(ctx, s.cfg.Skip, s.cfg.Limit)
	case deferswap.KindLimit:
		addresses, err = deferswap.NewLimitFactory(s.client, factory).Pools(ctx, s.cfg.Skip, s.cfg.Limit)
	}
	if err != nil {
		return fmt.Errorf("enumerate pools: %w", err)
	}

	if n := s.cfg.Network.SkipFirstPools; uint64(len(addresses)) > n {
		addresses = addresses[n:]
	} else {
		addresses = nil
	}

	// Newest first.
	for i, j := 0, len(addresses)-1; i < j; i, j = i+1, j-1 {
		addresses[i], addresses[j] = addresses[j], addresses[i]
	}

	now := time.Now()
	rows := make([]view.PoolRow, 0, len(addresses))
	for _, address := range addresses {
		pool, err := deferswap.OpenPool(s.client, kind, address)
		if err != nil {
			return err
		}

		maker, err := pool.Maker(ctx)
		if err != nil {
			s.logger.Warn("pool read failed", zap.String("pool", address.Hex()), zap.Error(err))
			continue
		}
		if myPools && maker != account {
			continue
		}

		base, quote, err := pool.TokenPair(ctx)
		if err != nil {
			s.logger.Warn("pool read failed", zap.String("pool", address.Hex()), zap.Error(err))
			continue
		}
		baseInfo, err := s.tokenInfo(ctx, base)
		if err != nil {
			return err
		}
		quoteInfo, err := s.tokenInfo(ctx, quote)
		if err != nil {
			return err
		}

		latestID, latestState := "-", "-"
		order, ok, err := pool.LatestOrder(ctx)
		if err != nil {
			s.logger.Warn("latest record read failed", zap.String("pool", address.Hex()), zap.Error(err))
		} else if ok {
			latestID = strconv.FormatUint(order.ID, 10)
			latestState = order.Status(now).String()
		}
		if openOnly && latestState != swap.StatusOpen.String() {
			continue
		}

		rows = append(rows, view.PoolRow{
			Address:     address.Hex(),
			BaseSymbol:  baseInfo.Symbol,
			QuoteSymbol: quoteInfo.Symbol,
			MarketMaker: maker.Hex(),
			LatestID:    latestID,
			LatestState: latestState,
		})
	}

	page := view.PageSlice(rows, s.cfg.PageSize, s.cfg.Page)
	view.PoolListTable(os.Stdout, page)
	fmt.Println(pageFooter(len(rows), s.cfg.PageSize, s.cfg.Page, "pools"))
	return nil
}

func pageFooter(n, pageSize, page int, noun string) string {
	cur := clampPage(page, n, pageSize)
	out := fmt.Sprintf("page %d/%d (%d %s)", cur, view.Pages(n, pageSize), n, noun)
	if view.HasPrev(cur) {
		out += fmt.Sprintf(", --page %d for newer", cur-1)
	}
	if view.HasNext(n, pageSize, cur) {
		out += fmt.Sprintf(", --page %d for older", cur+1)
	}
	return out
}

func clampPage(page, n, pageSize int) int {
	total := view.Pages(n, pageSize)
	if total == 0 {
		return 0
	}
	if page < 1 {
		return 1
	}
	if page > total {
		return total
	}
	return page
}

func mustString(cmd *cobra.Command, name string) string {
	val, _ := cmd.Flags().GetString(name)
	return strings.TrimSpace(val)
}
