package report

import (
	"testing"

	"github.com/SenudaJK/Software-Development-Project---MN-Electronics-sub000/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func jobsWithStatuses(statuses ...string) []model.Job {
	jobs := make([]model.Job, len(statuses))
	for i, s := range statuses {
		jobs[i] = model.Job{Status: s}
	}
	return jobs
}

func TestCompletionRate(t *testing.T) {
	tests := []struct {
		name     string
		statuses []string
		want     float64
	}{
		{
			name:     "two of three completed",
			statuses: []string{model.StatusCompleted, model.StatusCompleted, model.StatusPending},
			want:     66.67,
		},
		{
			name:     "empty set yields zero",
			statuses: nil,
			want:     0,
		},
		{
			name:     "all completed",
			statuses: []string{model.StatusCompleted, model.StatusPaid},
			want:     100,
		},
		{
			name:     "none completed",
			statuses: []string{model.StatusPending, model.StatusCannotRepair, model.StatusBookingCancelled},
			want:     0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CompletionRate(jobsWithStatuses(tt.statuses...))
			assert.Equal(t, tt.want, got)
			assert.GreaterOrEqual(t, got, 0.0)
			assert.LessOrEqual(t, got, 100.0)
		})
	}
}

func TestRevenueGrowth(t *testing.T) {
	// Zero previous revenue resolves to the documented sentinel 0,
	// never Inf or NaN.
	got := RevenueGrowth(decimal.NewFromInt(5000), decimal.Zero)
	assert.Equal(t, 0.0, got)

	got = RevenueGrowth(decimal.NewFromInt(1500), decimal.NewFromInt(1000))
	assert.Equal(t, 50.0, got)

	got = RevenueGrowth(decimal.NewFromInt(500), decimal.NewFromInt(1000))
	assert.Equal(t, -50.0, got)
}

func TestRetentionRate(t *testing.T) {
	assert.Equal(t, 0.0, RetentionRate(0, 0))
	assert.Equal(t, 25.0, RetentionRate(4, 1))
	assert.Equal(t, 100.0, RetentionRate(4, 4))

	// Monotonically non-decreasing in returning for fixed total
	prev := -1.0
	for returning := 0; returning <= 10; returning++ {
		rate := RetentionRate(10, returning)
		require.GreaterOrEqual(t, rate, prev)
		prev = rate
	}
}

func TestEfficiencyScore(t *testing.T) {
	// Same-day completions with a perfect completion rate score 100
	assert.Equal(t, 100.0, EfficiencyScore(100, 0))

	// 0.7*50 + 0.3*(100-10*5) = 35 + 15
	assert.Equal(t, 50.0, EfficiencyScore(50, 5))

	// Speed score floors at zero for very slow turnaround
	assert.Equal(t, 70.0, EfficiencyScore(100, 30))
}

func TestStockStatus(t *testing.T) {
	tests := []struct {
		name     string
		quantity int
		limit    int
		want     string
	}{
		{"below threshold", 3, 5, StockBuy},
		{"zero quantity", 0, 5, StockOut},
		{"zero quantity and zero limit", 0, 0, StockOut},
		{"at threshold", 5, 5, StockIn},
		{"above threshold", 9, 5, StockIn},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StockStatus(tt.quantity, tt.limit))
		})
	}
}

func TestStockStatusPartitions(t *testing.T) {
	// Every quantity/limit pair lands in exactly one of the three
	// documented statuses.
	for quantity := 0; quantity <= 10; quantity++ {
		for limit := 0; limit <= 10; limit++ {
			status := StockStatus(quantity, limit)
			assert.Contains(t, []string{StockOut, StockBuy, StockIn}, status)
			if quantity == 0 {
				assert.Equal(t, StockOut, status)
			}
		}
	}
}

func TestAverageRevenuePerJob(t *testing.T) {
	assert.True(t, AverageRevenuePerJob(decimal.NewFromInt(900), 0).IsZero())
	assert.Equal(t, "300", AverageRevenuePerJob(decimal.NewFromInt(900), 3).String())
}

func TestTopN(t *testing.T) {
	records := []RepairCount{
		{Description: "screen", Count: 3},
		{Description: "battery", Count: 7},
		{Description: "speaker", Count: 3},
		{Description: "board", Count: 9},
	}
	key := func(r RepairCount) float64 { return float64(r.Count) }

	top := TopN(records, key, 3)
	require.Len(t, top, 3)
	assert.Equal(t, "board", top[0].Description)
	assert.Equal(t, "battery", top[1].Description)
	// Equal keys keep their original relative order
	assert.Equal(t, "screen", top[2].Description)

	// Idempotent under re-sorting
	again := TopN(top, key, 3)
	assert.Equal(t, top, again)

	// Input is not mutated
	assert.Equal(t, "screen", records[0].Description)

	// n larger than input
	assert.Len(t, TopN(records, key, 10), 4)
}

func TestAverageCompletionDays(t *testing.T) {
	base := mustTime(t, "2026-08-01")
	oneDay := base.AddDate(0, 0, 1)
	threeDays := base.AddDate(0, 0, 3)

	jobs := []model.Job{
		{HandoverDate: base, CompletedAt: &oneDay},
		{HandoverDate: base, CompletedAt: &threeDays},
		{HandoverDate: base}, // still open, skipped
	}
	assert.Equal(t, 2.0, AverageCompletionDays(jobs))
	assert.Equal(t, 0.0, AverageCompletionDays(nil))
}

func TestReturningCustomers(t *testing.T) {
	jobs := []model.Job{
		{CustomerID: 1},
		{CustomerID: 1},
		{CustomerID: 2},
		{CustomerID: 3},
		{CustomerID: 3},
		{CustomerID: 3},
	}
	assert.Equal(t, 2, ReturningCustomers(jobs))
	assert.Equal(t, 0, ReturningCustomers(nil))
}

func TestFormatPercent(t *testing.T) {
	assert.Equal(t, "66.67%", FormatPercent(66.67))
	assert.Equal(t, "0.00%", FormatPercent(0))
	assert.Equal(t, 66.67, ParsePercent("66.67%"))
}

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "LKR 1250.50", FormatMoney(decimal.NewFromFloat(1250.5), "LKR"))
	assert.Equal(t, "LKR 0.00", FormatMoney(decimal.Zero, "LKR"))
}
