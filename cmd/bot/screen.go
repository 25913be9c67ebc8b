package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"ReboundScout/internal/model"
	"ReboundScout/internal/notifier"
)

var (
	screenSymbols []string
	screenNotify  bool
)

var screenCmd = &cobra.Command{
	Use:   "screen",
	Short: "Screen the ticker universe once and record the results",
	RunE: func(cmd *cobra.Command, args []string) error {
		rec := openRecorder(cfg)
		defer rec.Close()

		sc := newScreener(cfg, rec)
		tickers, err := sc.Universe(cfg.Universe)
		if err != nil {
			return err
		}
		if len(screenSymbols) > 0 {
			tickers = selectTickers(tickers, screenSymbols)
		}

		report, err := sc.Run(cmd.Context(), tickers)
		if err != nil {
			return err
		}
		printReport(report)

		if screenNotify {
			tn := newNotifier(cfg)
			if tn == nil {
				return errors.New("--notify needs telegram.bot_token and telegram.chat_id")
			}
			return tn.SendWithRetry(cmd.Context(), notifier.FormatScreenReport(report), 3)
		}
		return nil
	},
}

func init() {
	screenCmd.Flags().StringSliceVar(&screenSymbols, "symbols", nil, "screen only these symbols")
	screenCmd.Flags().BoolVar(&screenNotify, "notify", false, "send the report to Telegram")
}

// selectTickers keeps the requested symbols, adding unknown ones as bare tickers.
func selectTickers(universe []model.Ticker, symbols []string) []model.Ticker {
	known := make(map[string]model.Ticker, len(universe))
	for _, t := range universe {
		known[t.Symbol] = t
	}
	out := make([]model.Ticker, 0, len(symbols))
	for _, s := range symbols {
		if t, ok := known[s]; ok {
			out = append(out, t)
			continue
		}
		out = append(out, model.Ticker{Symbol: s, Active: true})
	}
	return out
}

func printReport(report *model.ScreenReport) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleRounded)
	t.SetTitle("2B screen %s (%s)", report.Date, report.Source)
	t.AppendHeader(table.Row{"symbol", "market", "match", "close", "support", "detail"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 6, WidthMax: 60, WidthMaxEnforcer: text.WrapText},
	})

	for _, o := range report.Outcomes {
		row := table.Row{o.Ticker.Symbol, o.Ticker.Market, "", "", "", ""}
		switch {
		case o.Error != "":
			row[2], row[5] = "error", o.Error
		case o.Result.Matched:
			d := o.Result.Debug
			row[2] = "✅"
			row[3] = fmt.Sprintf("%.2f", d.CurrentPrice)
			row[4] = fmt.Sprintf("%.2f", d.Support)
			row[5] = fmt.Sprintf("fake break %.2f, rebound %.2f", d.FakeBreakout, d.Rebound)
		default:
			row[2] = "-"
			if o.Analysis != nil {
				row[3] = fmt.Sprintf("%.2f", o.Analysis.ClosePrice)
			}
			row[5] = strings.Join(o.Result.Reasons, "; ")
		}
		t.AppendRow(row)
	}
	t.AppendFooter(table.Row{"", "", fmt.Sprintf("%d/%d", len(report.Matched()), len(report.Outcomes))})
	t.Render()
}
