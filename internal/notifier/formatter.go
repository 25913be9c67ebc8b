package notifier

import (
	"fmt"
	"html"
	"strings"
	"time"

	"ReboundScout/internal/model"
)

// FormatScreenReport formats a batch screen into a Telegram message.
func FormatScreenReport(report *model.ScreenReport) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("🔍 <b>2B Screener</b> | %s\n\n", report.Date))

	matched := report.Matched()
	failed := report.Failed()
	b.WriteString(fmt.Sprintf("Screened: %d | Matched: %d | Failed: %d\n", len(report.Outcomes), len(matched), len(failed)))
	b.WriteString(fmt.Sprintf("Source: %s | Took: %s\n\n", report.Source, report.FinishedAt.Sub(report.StartedAt).Round(time.Millisecond)))

	if len(matched) == 0 {
		b.WriteString("No tickers fit the 2B pattern today.\n")
	} else {
		b.WriteString("✅ <b>Matches:</b>\n")
		for _, o := range matched {
			b.WriteString(formatMatchLine(o.Ticker.Symbol, o.Result.Debug))
		}
	}

	if len(failed) > 0 {
		b.WriteString("\n❌ <b>Failed:</b>\n")
		for _, o := range failed {
			b.WriteString(fmt.Sprintf("  %s: %s\n", html.EscapeString(o.Ticker.Symbol), html.EscapeString(o.Error)))
		}
	}

	return b.String()
}

// FormatMatches formats the stored matches for one day.
func FormatMatches(date string, rows []model.DailyAnalysis) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("📋 <b>2B matches</b> | %s\n\n", date))
	if len(rows) == 0 {
		b.WriteString("None recorded.")
		return b.String()
	}
	for _, r := range rows {
		b.WriteString(fmt.Sprintf("  %s (%s): close %.2f (%+.2f%%), support %.2f\n",
			html.EscapeString(r.Ticker), r.Market, r.ClosePrice, r.ChangePercent, r.SupportPrice))
	}
	return b.String()
}

func formatMatchLine(symbol string, d *model.DebugInfo) string {
	if d == nil {
		return fmt.Sprintf("  %s\n", html.EscapeString(symbol))
	}
	return fmt.Sprintf("  %s: close %.2f | support %.2f | fake break %.2f | rebound %.2f\n",
		html.EscapeString(symbol), d.CurrentPrice, d.Support, d.FakeBreakout, d.Rebound)
}
