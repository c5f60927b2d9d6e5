package reporter

import (
	"bytes"
	"testing"
	"time"

	"dex-trading-bot/internal/fund"
	"dex-trading-bot/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func closedTrade(id string, invested, profit float64) *models.Trade {
	tr := models.NewTrade(id)
	tr.Status = models.TradeStatusClosed
	tr.Direction = models.DirectionLong
	tr.InvestedAmount = invested
	tr.NetReturn = invested + profit
	tr.Profit = profit
	tr.EntryTime = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	tr.ExitTime = time.Date(2026, 3, 1, 11, 0, 0, 0, time.UTC)
	return tr
}

func TestCalculateMetrics(t *testing.T) {
	cancelled := models.NewTrade("t3")
	cancelled.Status = models.TradeStatusCancelled

	history := []*models.Trade{
		closedTrade("t1", 40, 8),
		closedTrade("t2", 40, -4),
		cancelled,
	}

	m := CalculateMetrics(history)
	assert.Equal(t, 3, m.TotalTrades)
	assert.Equal(t, 2, m.ClosedTrades)
	assert.Equal(t, 1, m.CancelledTrades)
	assert.Equal(t, 1, m.WinningTrades)
	assert.Equal(t, 1, m.LosingTrades)
	assert.InDelta(t, 50, m.WinRate, 1e-9)
	assert.InDelta(t, 4, m.TotalProfit, 1e-9)
	assert.InDelta(t, 2, m.AvgProfitLoss, 1e-9) // avg win 8 vs avg loss 4
}

func TestCalculateMetricsEmptyHistory(t *testing.T) {
	m := CalculateMetrics(nil)
	assert.Zero(t, m.TotalTrades)
	assert.Zero(t, m.WinRate)
	assert.Zero(t, m.TotalProfit)
}

func TestWriteFundTable(t *testing.T) {
	ledger := fund.NewLedger(100)
	ledger.Configure(map[string]float64{"WHBAR": 1, "SAUCE": 1})
	require.NoError(t, ledger.Reserve("WHBAR", 20))

	var buf bytes.Buffer
	WriteFundTable(&buf, ledger)

	out := buf.String()
	assert.Contains(t, out, "WHBAR")
	assert.Contains(t, out, "SAUCE")
	assert.Contains(t, out, "20.00")  // pending
	assert.Contains(t, out, "100.00") // footer total
}

func TestWritePerformanceReport(t *testing.T) {
	history := []*models.Trade{closedTrade("t1", 40, 8)}

	var buf bytes.Buffer
	WritePerformanceReport(&buf, history, 100, 108)

	out := buf.String()
	assert.Contains(t, out, "t1")
	assert.Contains(t, out, "Win rate")
	assert.Contains(t, out, "8.00%") // return on 100
	assert.Contains(t, out, "108.00")
}
