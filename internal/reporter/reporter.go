// Package reporter renders human-readable run summaries from the bot's
// trade history and fund ledger.
package reporter

import (
	"fmt"
	"io"
	"math"
	"time"

	"dex-trading-bot/internal/fund"
	"dex-trading-bot/internal/models"

	"github.com/jedib0t/go-pretty/v6/table"
)

// Metrics aggregates performance figures over a set of terminal trades.
type Metrics struct {
	TotalTrades     int
	ClosedTrades    int
	CancelledTrades int
	WinningTrades   int
	LosingTrades    int
	WinRate         float64
	TotalProfit     float64
	AvgProfitLoss   float64
	StartTime       time.Time
	EndTime         time.Time
}

// CalculateMetrics summarizes a trade history. Cancelled trades count
// toward the total but not toward win/loss figures.
func CalculateMetrics(history []*models.Trade) *Metrics {
	m := &Metrics{TotalTrades: len(history)}

	var totalWin, totalLoss float64
	for _, tr := range history {
		if tr.Status != models.TradeStatusClosed {
			m.CancelledTrades++
			continue
		}
		m.ClosedTrades++
		m.TotalProfit += tr.Profit
		if tr.Profit > 0 {
			m.WinningTrades++
			totalWin += tr.Profit
		} else {
			m.LosingTrades++
			totalLoss += tr.Profit
		}
		if m.StartTime.IsZero() || tr.EntryTime.Before(m.StartTime) {
			m.StartTime = tr.EntryTime
		}
		if tr.ExitTime.After(m.EndTime) {
			m.EndTime = tr.ExitTime
		}
	}

	if m.ClosedTrades > 0 {
		m.WinRate = float64(m.WinningTrades) / float64(m.ClosedTrades) * 100
	}
	if m.WinningTrades > 0 && m.LosingTrades > 0 {
		avgWin := totalWin / float64(m.WinningTrades)
		avgLoss := math.Abs(totalLoss / float64(m.LosingTrades))
		m.AvgProfitLoss = avgWin / avgLoss
	}
	return m
}

// WriteFundTable renders the per-token allocation state of the ledger.
func WriteFundTable(w io.Writer, ledger *fund.Ledger) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Token", "Weight", "Total", "Cash", "Pending", "Invested"})

	var total, cash, pending, invested float64
	for _, token := range ledger.Tokens() {
		entry, ok := ledger.Entry(token)
		if !ok {
			continue
		}
		t.AppendRow(table.Row{
			token,
			fmt.Sprintf("%.2f", entry.Weight),
			fmt.Sprintf("%.2f", entry.Total),
			fmt.Sprintf("%.2f", entry.Cash),
			fmt.Sprintf("%.2f", entry.Pending),
			fmt.Sprintf("%.2f", entry.Invested),
		})
		total += entry.Total
		cash += entry.Cash
		pending += entry.Pending
		invested += entry.Invested
	}
	t.AppendFooter(table.Row{
		"",
		"",
		fmt.Sprintf("%.2f", total),
		fmt.Sprintf("%.2f", cash),
		fmt.Sprintf("%.2f", pending),
		fmt.Sprintf("%.2f", invested),
	})
	t.Render()
}

// WriteOpenTrades renders the currently held positions.
func WriteOpenTrades(w io.Writer, openTrades map[string][]*models.Trade) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Trade", "Symbol", "Direction", "Invested", "Position", "Entry Price", "Entry Time"})

	for symbol, trades := range openTrades {
		for _, tr := range trades {
			t.AppendRow(table.Row{
				tr.ID,
				symbol,
				tr.Direction,
				fmt.Sprintf("%.4f", tr.InvestedAmount),
				fmt.Sprintf("%.4f", tr.PositionSize),
				fmt.Sprintf("%.6f", tr.EntryPrice),
				tr.EntryTime.Format("2006-01-02 15:04:05"),
			})
		}
	}
	t.Render()
}

// WritePerformanceReport renders trade-by-trade results plus the aggregate
// metrics for a finished run.
func WritePerformanceReport(w io.Writer, history []*models.Trade, initialBalance, finalBalance float64) {
	m := CalculateMetrics(history)

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.SetTitle("Trade History")
	t.AppendHeader(table.Row{"Trade", "Symbol", "Direction", "Status", "Invested", "Returned", "Profit", "Exit Time"})
	for _, tr := range history {
		t.AppendRow(table.Row{
			tr.ID,
			tr.Symbol(),
			tr.Direction,
			tr.Status,
			fmt.Sprintf("%.4f", tr.InvestedAmount),
			fmt.Sprintf("%.4f", tr.NetReturn),
			fmt.Sprintf("%.4f", tr.Profit),
			formatTime(tr.ExitTime),
		})
	}
	t.Render()

	s := table.NewWriter()
	s.SetOutputMirror(w)
	s.SetStyle(table.StyleLight)
	s.SetTitle("Performance")
	s.AppendRows([]table.Row{
		{"Initial balance", fmt.Sprintf("%.2f", initialBalance)},
		{"Final balance", fmt.Sprintf("%.2f", finalBalance)},
		{"Total profit", fmt.Sprintf("%.2f", m.TotalProfit)},
		{"Return", fmt.Sprintf("%.2f%%", percentage(m.TotalProfit, initialBalance))},
		{"Trades", m.TotalTrades},
		{"Closed", m.ClosedTrades},
		{"Cancelled", m.CancelledTrades},
		{"Winning", m.WinningTrades},
		{"Losing", m.LosingTrades},
		{"Win rate", fmt.Sprintf("%.2f%%", m.WinRate)},
		{"Avg win/loss", fmt.Sprintf("%.2f", m.AvgProfitLoss)},
	})
	s.Render()
}

func percentage(part, whole float64) float64 {
	if whole == 0 {
		return 0
	}
	return part / whole * 100
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("2006-01-02 15:04:05")
}
