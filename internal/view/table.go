package view

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"deferswap/internal/swap"
)

// TokenInfo is the token metadata a table needs to render amounts.
type TokenInfo struct {
	Symbol   string
	Decimals uint8
}

func shortAddr(hex string) string {
	if len(hex) <= 10 {
		return hex
	}
	return hex[:6] + "..." + hex[len(hex)-4:]
}

// SpreadHistoryTable renders one page of spread swap records, newest-first.
// The countdown freezes for claimed and cancelled records.
func SpreadHistoryTable(w io.Writer, records []swap.SpreadRecord, base, quote TokenInfo, now time.Time) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tSWAPPER\tQUOTE\tBASE\tMAX SIZE\tEXPIRY IN\tSTATUS\tCLAIMED")

	for _, rec := range records {
		countdown := FrozenCountdown
		if !rec.Claimed && !rec.Cancelled {
			countdown = FormatCountdown(rec.Expiry, now)
		}
		claimed := "no"
		if rec.Claimed {
			claimed = "yes"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s %s\t%s %s\t%s %s\t%s\t%s\t%s\n",
			rec.ID,
			shortAddr(rec.Swapper.Hex()),
			swap.FormatUnits(rec.QuoteAmount, quote.Decimals), quote.Symbol,
			swap.FormatUnits(rec.BaseAmount, base.Decimals), base.Symbol,
			swap.FormatUnits(rec.MaxQuoteSize, quote.Decimals), quote.Symbol,
			countdown,
			swap.SpreadStatus(rec, now),
			claimed,
		)
	}
	tw.Flush()
}

// LimitHistoryTable renders one page of limit-order records, newest-first.
// For untaken orders the settle expiry is still a relative window and is
// shown in hours; once taken it is an absolute deadline.
func LimitHistoryTable(w io.Writer, records []swap.LimitRecord, base, quote TokenInfo, now time.Time) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tQUOTE\tBASE\tMIN QUOTE\tORDER EXPIRY\tSETTLE EXPIRY\tTAKER\tSTATUS")

	for _, rec := range records {
		taker := "-"
		if rec.Taken {
			taker = shortAddr(rec.Swapper.Hex())
		}
		settle := fmt.Sprintf("%.1f hours", float64(rec.SettleExpiry)/3600)
		if rec.Taken {
			settle = formatUnixTime(rec.SettleExpiry)
		}
		fmt.Fprintf(tw, "%d\t%s %s\t%s %s\t%s %s\t%s\t%s\t%s\t%s\n",
			rec.ID,
			swap.FormatUnits(rec.QuoteAmount, quote.Decimals), quote.Symbol,
			swap.FormatUnits(rec.BaseAmount, base.Decimals), base.Symbol,
			swap.FormatUnits(rec.MinQuoteAmount, quote.Decimals), quote.Symbol,
			formatUnixTime(rec.OrderExpiry),
			settle,
			taker,
			swap.LimitStatus(rec, now),
		)
	}
	tw.Flush()
}

// PoolRow is one pool in the all-pools listing.
type PoolRow struct {
	Address     string
	BaseSymbol  string
	QuoteSymbol string
	MarketMaker string
	LatestID    string
	LatestState string
}

// PoolListTable renders the all-pools listing.
func PoolListTable(w io.Writer, rows []PoolRow) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "POOL\tPAIR\tMAKER\tLATEST\tSTATUS")

	for _, row := range rows {
		fmt.Fprintf(tw, "%s\t%s/%s\t%s\t%s\t%s\n",
			row.Address,
			row.QuoteSymbol, row.BaseSymbol,
			shortAddr(row.MarketMaker),
			row.LatestID,
			row.LatestState,
		)
	}
	tw.Flush()
}

func formatUnixTime(ts uint64) string {
	if ts == 0 {
		return "-"
	}
	return time.Unix(int64(ts), 0).UTC().Format(time.RFC3339)
}
