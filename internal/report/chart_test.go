package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOverviewChart(t *testing.T) {
	payload := &OverviewReport{
		RepairStatistics: RepairStatistics{Total: 6, Completed: 3, InProgress: 2, Pending: 1},
	}

	chart := OverviewChart(payload)

	assert.Equal(t, []string{"Completed", "In Progress", "Pending"}, chart.Labels)
	require.Len(t, chart.Datasets, 1)
	assert.Equal(t, "Jobs", chart.Datasets[0].Label)
	assert.Equal(t, []float64{3, 2, 1}, chart.Datasets[0].Data)
}

func TestFinancialChart(t *testing.T) {
	payload := &FinancialReport{
		Summary: FinancialSummary{TotalRevenue: 3500.50},
		MonthlyTrends: []MonthlyTrend{
			{Month: "Jun 2026", Revenue: 1000.50, Expenses: 1800.25, Profit: -799.75},
			{Month: "Jul 2026", Revenue: 2500.00, Expenses: 1600.00, Profit: 900.00},
		},
	}

	chart := FinancialChart(payload)

	assert.Equal(t, []string{"Jun 2026", "Jul 2026"}, chart.Labels)
	require.Len(t, chart.Datasets, 3)
	assert.Equal(t, "Revenue", chart.Datasets[0].Label)
	assert.Equal(t, "Expenses", chart.Datasets[1].Label)
	assert.Equal(t, "Profit", chart.Datasets[2].Label)

	// Every series is as long as the label axis
	for _, ds := range chart.Datasets {
		assert.Len(t, ds.Data, len(chart.Labels))
	}

	// The revenue series sums back to the summary total
	sum := 0.0
	for _, v := range chart.Datasets[0].Data {
		sum += v
	}
	assert.InDelta(t, payload.Summary.TotalRevenue, sum, 0.001)
}

func TestInventoryChart(t *testing.T) {
	payload := &InventoryReport{
		InventoryStatus: []StockEntry{
			{ProductName: "Screen", Quantity: 3, StockLimit: 5},
			{ProductName: "Battery", Quantity: 0, StockLimit: 5},
		},
	}

	chart := InventoryChart(payload)

	assert.Equal(t, []string{"Screen", "Battery"}, chart.Labels)
	require.Len(t, chart.Datasets, 2)
	assert.Equal(t, []float64{3, 0}, chart.Datasets[0].Data)
	assert.Equal(t, []float64{5, 5}, chart.Datasets[1].Data)
}

func TestPerformanceChart(t *testing.T) {
	payload := &PerformanceReport{
		EmployeePerformance: []EmployeePerformance{
			{Name: "Kasun", CompletionRate: "100.00%", EfficiencyScore: 97},
			{Name: "Nimal", CompletionRate: "0.00%", EfficiencyScore: 30},
		},
	}

	chart := PerformanceChart(payload)

	assert.Equal(t, []string{"Kasun", "Nimal"}, chart.Labels)
	require.Len(t, chart.Datasets, 2)
	assert.Equal(t, []float64{100, 0}, chart.Datasets[0].Data)
	assert.Equal(t, []float64{97, 30}, chart.Datasets[1].Data)
}

func TestCustomerChart(t *testing.T) {
	payload := &CustomerReport{
		TopCustomers: []CustomerRank{
			{Name: "Chamari", JobCount: 3, TotalSpent: 1200},
			{Name: "Amara", JobCount: 2, TotalSpent: 700},
		},
	}

	chart := CustomerChart(payload)

	assert.Equal(t, []string{"Chamari", "Amara"}, chart.Labels)
	require.Len(t, chart.Datasets, 2)
	assert.Equal(t, []float64{3, 2}, chart.Datasets[0].Data)
	assert.Equal(t, []float64{1200, 700}, chart.Datasets[1].Data)
}

func TestChartEmptyPayloads(t *testing.T) {
	financial := FinancialChart(&FinancialReport{})
	assert.Empty(t, financial.Labels)
	require.Len(t, financial.Datasets, 3)
	assert.Empty(t, financial.Datasets[0].Data)

	customer := CustomerChart(&CustomerReport{})
	assert.Empty(t, customer.Labels)
}
