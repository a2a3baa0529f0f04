package report

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/SenudaJK/Software-Development-Project---MN-Electronics-sub000/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStore serves canned records, filtering ranges like the real
// store. Setting err makes every method fail.
type fakeStore struct {
	jobs      []model.Job
	invoices  []model.Invoice
	employees []model.Employee
	customers []model.Customer
	levels    []ItemStock
	batches   []model.InventoryBatch
	usage     []PartUsage
	err       error
}

func (f *fakeStore) JobsInRange(_ context.Context, start, end time.Time) ([]model.Job, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []model.Job
	for _, j := range f.jobs {
		if !j.HandoverDate.Before(start) && j.HandoverDate.Before(end) {
			out = append(out, j)
		}
	}
	return out, nil
}

func (f *fakeStore) AllJobs(_ context.Context) ([]model.Job, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.jobs, nil
}

func (f *fakeStore) InvoicesInRange(_ context.Context, start, end time.Time) ([]model.Invoice, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []model.Invoice
	for _, inv := range f.invoices {
		if !inv.CreatedAt.Before(start) && inv.CreatedAt.Before(end) {
			out = append(out, inv)
		}
	}
	return out, nil
}

func (f *fakeStore) AllInvoices(_ context.Context) ([]model.Invoice, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.invoices, nil
}

func (f *fakeStore) Employees(_ context.Context) ([]model.Employee, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.employees, nil
}

func (f *fakeStore) Customers(_ context.Context) ([]model.Customer, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.customers, nil
}

func (f *fakeStore) StockLevels(_ context.Context) ([]ItemStock, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.levels, nil
}

func (f *fakeStore) BatchesInRange(_ context.Context, start, end time.Time) ([]model.InventoryBatch, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []model.InventoryBatch
	for _, b := range f.batches {
		if !b.PurchaseDate.Before(start) && b.PurchaseDate.Before(end) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeStore) PartsUsage(_ context.Context) ([]PartUsage, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.usage, nil
}

func newTestAssembler(t *testing.T, store Store, now string) *Assembler {
	t.Helper()
	a := NewAssembler(store, nil)
	fixed := mustTime(t, now)
	a.now = func() time.Time { return fixed }
	return a
}

func amount(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestOverview(t *testing.T) {
	store := &fakeStore{
		jobs: []model.Job{
			{CustomerID: 1, AssignedEmployee: 1, ProductName: "Laptop", Status: model.StatusCompleted, HandoverDate: mustTime(t, "2026-08-02")},
			{CustomerID: 2, AssignedEmployee: 1, ProductName: "Laptop", Status: model.StatusCompleted, HandoverDate: mustTime(t, "2026-08-05")},
			{CustomerID: 3, AssignedEmployee: 2, ProductName: "Phone", Status: model.StatusPending, HandoverDate: mustTime(t, "2026-08-10")},
			// Outside the month, ignored
			{CustomerID: 4, AssignedEmployee: 2, ProductName: "TV", Status: model.StatusCompleted, HandoverDate: mustTime(t, "2026-06-10")},
		},
		invoices: []model.Invoice{
			{TotalAmount: amount("5000.00"), CreatedAt: mustTime(t, "2026-08-06")},
		},
		employees: []model.Employee{
			{ID: 1, Name: "Kasun", Role: model.RoleTechnician},
			{ID: 2, Name: "Nimal", Role: model.RoleTechnician},
			{ID: 3, Name: "Senuda", Role: model.RoleOwner},
		},
	}
	a := newTestAssembler(t, store, "2026-08-15")

	payload, err := a.Overview(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "August 2026", payload.ReportPeriod)

	assert.Equal(t, 3, payload.RepairStatistics.Total)
	assert.Equal(t, 2, payload.RepairStatistics.Completed)
	assert.Equal(t, 0, payload.RepairStatistics.InProgress)
	assert.Equal(t, 1, payload.RepairStatistics.Pending)
	assert.Equal(t, "66.67%", payload.RepairStatistics.CompletionRate)

	// Previous month had no revenue: growth resolves to the sentinel
	assert.Equal(t, 5000.0, payload.FinancialMetrics.MonthlyRevenue)
	assert.Equal(t, 1, payload.FinancialMetrics.InvoiceCount)
	assert.Equal(t, 5000.0, payload.FinancialMetrics.AverageInvoice)
	assert.Equal(t, 0.0, payload.FinancialMetrics.RevenueGrowthPercentage)
	assert.Equal(t, 0.0, payload.FinancialMetrics.PreviousMonthRevenue)

	require.NotEmpty(t, payload.TopRepairs)
	assert.Equal(t, "Laptop", payload.TopRepairs[0].Description)
	assert.Equal(t, 2, payload.TopRepairs[0].Count)

	// The owner is not ranked among technicians
	require.Len(t, payload.TopTechnicians, 2)
	assert.Equal(t, "Kasun", payload.TopTechnicians[0].Name)
	assert.Equal(t, 2, payload.TopTechnicians[0].CompletedJobs)
}

func TestOverviewDataUnavailable(t *testing.T) {
	store := &fakeStore{err: errors.New("connection refused")}
	a := newTestAssembler(t, store, "2026-08-15")

	_, err := a.Overview(context.Background())
	require.Error(t, err)

	var unavailable *DataUnavailableError
	require.ErrorAs(t, err, &unavailable)
	assert.Equal(t, KindOverview, unavailable.Report)
}

func TestFinancial(t *testing.T) {
	laptop := &model.Job{ProductName: "Laptop"}
	phone := &model.Job{ProductName: "Phone"}
	store := &fakeStore{
		invoices: []model.Invoice{
			{Job: laptop, TotalAmount: amount("1000.50"), CreatedAt: mustTime(t, "2026-06-10")},
			{Job: phone, TotalAmount: amount("2000.00"), CreatedAt: mustTime(t, "2026-07-05")},
			{Job: laptop, TotalAmount: amount("500.00"), CreatedAt: mustTime(t, "2026-07-20")},
		},
		batches: []model.InventoryBatch{
			{TotalAmount: amount("300.25"), PurchaseDate: mustTime(t, "2026-06-15")},
			{TotalAmount: amount("100.00"), PurchaseDate: mustTime(t, "2026-07-15")},
		},
		employees: []model.Employee{
			{ID: 1, Name: "Kasun", Role: model.RoleTechnician, Salary: amount("1000.00")},
			{ID: 2, Name: "Nimal", Role: model.RoleTechnician, Salary: amount("500.00")},
		},
	}
	a := newTestAssembler(t, store, "2026-08-15")

	payload, err := a.Financial(context.Background(), PeriodCustom, "2026-06-01", "2026-07-31")
	require.NoError(t, err)

	assert.Equal(t, 3500.50, payload.Summary.TotalRevenue)
	// 400.25 inventory + two months of 1500 salaries
	assert.Equal(t, 3400.25, payload.Summary.TotalExpenses)
	assert.Equal(t, 100.25, payload.Summary.Profit)
	assert.Equal(t, 2.86, payload.Summary.ProfitMargin)

	assert.Equal(t, 400.25, payload.ExpenseBreakdown.Inventory)
	assert.Equal(t, 3000.0, payload.ExpenseBreakdown.Salaries)

	require.Len(t, payload.MonthlyTrends, 2)
	assert.Equal(t, "Jun 2026", payload.MonthlyTrends[0].Month)
	assert.Equal(t, 1000.50, payload.MonthlyTrends[0].Revenue)
	assert.Equal(t, 1800.25, payload.MonthlyTrends[0].Expenses)
	assert.Equal(t, 2500.0, payload.MonthlyTrends[1].Revenue)

	require.Len(t, payload.RevenueByService, 2)
	assert.Equal(t, "Phone", payload.RevenueByService[0].Service)
	assert.Equal(t, 2000.0, payload.RevenueByService[0].Revenue)
	assert.Equal(t, "Laptop", payload.RevenueByService[1].Service)
	assert.Equal(t, 1500.50, payload.RevenueByService[1].Revenue)
	assert.Equal(t, 2, payload.RevenueByService[1].JobCount)
}

func TestFinancialZeroRevenue(t *testing.T) {
	// No invoices at all: margin is the sentinel 0, not NaN
	store := &fakeStore{}
	a := newTestAssembler(t, store, "2026-08-15")

	payload, err := a.Financial(context.Background(), PeriodMonth, "", "")
	require.NoError(t, err)
	assert.Equal(t, 0.0, payload.Summary.TotalRevenue)
	assert.Equal(t, 0.0, payload.Summary.ProfitMargin)
}

func TestInventory(t *testing.T) {
	store := &fakeStore{
		levels: []ItemStock{
			{ItemID: 1, Name: "Screen", StockLimit: 5, Quantity: 3, UnitCost: amount("2.50")},
			{ItemID: 2, Name: "Battery", StockLimit: 5, Quantity: 0, UnitCost: amount("4.00")},
			{ItemID: 3, Name: "Cable", StockLimit: 5, Quantity: 10, UnitCost: amount("1.00")},
		},
		usage: []PartUsage{
			{ItemID: 3, Name: "Cable", Used: 12},
			{ItemID: 1, Name: "Screen", Used: 4},
		},
		batches: []model.InventoryBatch{
			{TotalAmount: amount("250.00"), PurchaseDate: mustTime(t, "2026-07-10")},
			{TotalAmount: amount("150.00"), PurchaseDate: mustTime(t, "2026-07-20")},
			{TotalAmount: amount("80.00"), PurchaseDate: mustTime(t, "2026-08-01")},
		},
	}
	a := newTestAssembler(t, store, "2026-08-15")

	payload, err := a.Inventory(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 17.5, payload.Summary.TotalInventoryValue)
	assert.Equal(t, 3, payload.Summary.TotalItems)
	assert.Equal(t, 2, payload.Summary.LowStockCount)

	require.Len(t, payload.InventoryStatus, 3)
	assert.Equal(t, StockBuy, payload.InventoryStatus[0].Status)
	assert.Equal(t, StockOut, payload.InventoryStatus[1].Status)
	assert.Equal(t, StockIn, payload.InventoryStatus[2].Status)

	require.Len(t, payload.LowStockItems, 2)
	assert.Equal(t, "Screen", payload.LowStockItems[0].ProductName)
	assert.Equal(t, "Battery", payload.LowStockItems[1].ProductName)

	require.Len(t, payload.MostUsedParts, 2)
	assert.Equal(t, "Cable", payload.MostUsedParts[0].ProductName)
	assert.Equal(t, 12, payload.MostUsedParts[0].UsedCount)

	require.Len(t, payload.PurchaseSummary, 2)
	assert.Equal(t, "Jul 2026", payload.PurchaseSummary[0].Month)
	assert.Equal(t, 400.0, payload.PurchaseSummary[0].TotalAmount)
	assert.Equal(t, 2, payload.PurchaseSummary[0].BatchCount)
}

func TestPerformance(t *testing.T) {
	done1 := mustTime(t, "2026-08-03")
	done2 := mustTime(t, "2026-08-06")
	jobs := []model.Job{
		{AssignedEmployee: 1, Status: model.StatusCompleted, HandoverDate: mustTime(t, "2026-08-02"), CompletedAt: &done1},
		{AssignedEmployee: 1, Status: model.StatusCompleted, HandoverDate: mustTime(t, "2026-08-05"), CompletedAt: &done2},
		{AssignedEmployee: 2, Status: model.StatusPending, HandoverDate: mustTime(t, "2026-08-10")},
	}
	store := &fakeStore{
		jobs: jobs,
		invoices: []model.Invoice{
			{Job: &jobs[0], TotalAmount: amount("500.00"), CreatedAt: mustTime(t, "2026-08-04")},
			{Job: &jobs[1], TotalAmount: amount("300.00"), CreatedAt: mustTime(t, "2026-08-07")},
		},
		employees: []model.Employee{
			{ID: 1, Name: "Kasun", Role: model.RoleTechnician},
			{ID: 2, Name: "Nimal", Role: model.RoleTechnician},
			{ID: 3, Name: "Senuda", Role: model.RoleOwner},
		},
	}
	a := newTestAssembler(t, store, "2026-08-15")

	payload, err := a.Performance(context.Background(), "2026-08-01", "2026-08-31")
	require.NoError(t, err)

	require.Len(t, payload.EmployeePerformance, 2)

	kasun := payload.EmployeePerformance[0]
	assert.Equal(t, "Kasun", kasun.Name)
	assert.Equal(t, 2, kasun.AssignedJobs)
	assert.Equal(t, 2, kasun.CompletedJobs)
	assert.Equal(t, "100.00%", kasun.CompletionRate)
	assert.Equal(t, 1.0, kasun.AvgCompletionDays)
	assert.Equal(t, 800.0, kasun.RevenueGenerated)
	// 0.7*100 + 0.3*(100-10*1)
	assert.Equal(t, 97.0, kasun.EfficiencyScore)

	nimal := payload.EmployeePerformance[1]
	assert.Equal(t, "0.00%", nimal.CompletionRate)
	assert.Equal(t, 0.0, nimal.RevenueGenerated)

	assert.Equal(t, 50.0, payload.TeamAverages.AvgCompletionRate)
	assert.Equal(t, 400.0, payload.TeamAverages.AvgRevenuePerEmployee)
}

func TestCustomer(t *testing.T) {
	store := &fakeStore{
		customers: []model.Customer{
			{ID: 1, FirstName: "Amara"},
			{ID: 2, FirstName: "Bimal"},
			{ID: 3, FirstName: "Chamari"},
			{ID: 4, FirstName: "Dilan"},
		},
		jobs: []model.Job{
			{CustomerID: 1, RepairDescription: "Screen replacement"},
			{CustomerID: 1, RepairDescription: "Battery replacement"},
			{CustomerID: 2, RepairDescription: "Screen replacement"},
			{CustomerID: 3, RepairDescription: "Screen replacement"},
			{CustomerID: 3, RepairDescription: "Water damage"},
			{CustomerID: 3, RepairDescription: "Screen replacement"},
		},
		invoices: []model.Invoice{
			{CustomerID: 1, TotalAmount: amount("700.00")},
			{CustomerID: 3, TotalAmount: amount("1200.00")},
		},
	}
	a := newTestAssembler(t, store, "2026-08-15")

	payload, err := a.Customer(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 4, payload.CustomerStatistics.TotalCustomers)
	assert.Equal(t, 2, payload.CustomerStatistics.ReturningCustomers)
	assert.Equal(t, "50.00%", payload.CustomerStatistics.RetentionRate)

	// Customers without jobs are not ranked
	require.Len(t, payload.TopCustomers, 3)
	assert.Equal(t, "Chamari", payload.TopCustomers[0].Name)
	assert.Equal(t, 3, payload.TopCustomers[0].JobCount)
	assert.Equal(t, 1200.0, payload.TopCustomers[0].TotalSpent)

	require.NotEmpty(t, payload.CommonRepairs)
	assert.Equal(t, "Screen replacement", payload.CommonRepairs[0].Description)
	assert.Equal(t, 4, payload.CommonRepairs[0].Count)
}
