package report

import (
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
)

// Panel builders: flatten a report payload into the sections captured
// by the exporter. Each panel carries the interactive controls the
// report view renders alongside it; all are print-hidden.

func money(v float64, currency string) string {
	return FormatMoney(decimal.NewFromFloat(v), currency)
}

// OverviewPanel lays out the overview payload for capture
func OverviewPanel(r *OverviewReport, currency string) *Panel {
	p := &Panel{Title: "Overview Report - " + r.ReportPeriod}
	p.AddControl("Download PDF")

	s := r.RepairStatistics
	p.AddSection("Repair Statistics", []string{"Metric", "Value"}, [][]string{
		{"Total Jobs", strconv.Itoa(s.Total)},
		{"Completed", strconv.Itoa(s.Completed)},
		{"In Progress", strconv.Itoa(s.InProgress)},
		{"Pending", strconv.Itoa(s.Pending)},
		{"Completion Rate", s.CompletionRate},
	})

	m := r.FinancialMetrics
	p.AddSection("Financial Metrics", []string{"Metric", "Value"}, [][]string{
		{"Monthly Revenue", money(m.MonthlyRevenue, currency)},
		{"Invoices", strconv.Itoa(m.InvoiceCount)},
		{"Average Invoice", money(m.AverageInvoice, currency)},
		{"Revenue Growth", FormatPercent(m.RevenueGrowthPercentage)},
		{"Previous Month Revenue", money(m.PreviousMonthRevenue, currency)},
	})

	rows := make([][]string, 0, len(r.TopRepairs))
	for _, t := range r.TopRepairs {
		rows = append(rows, []string{t.Description, strconv.Itoa(t.Count)})
	}
	p.AddSection("Top Repairs", []string{"Repair", "Count"}, rows)

	rows = make([][]string, 0, len(r.TopTechnicians))
	for _, t := range r.TopTechnicians {
		rows = append(rows, []string{t.Name, strconv.Itoa(t.CompletedJobs)})
	}
	p.AddSection("Top Technicians", []string{"Technician", "Completed Jobs"}, rows)
	return p
}

// FinancialPanel lays out the financial payload for capture
func FinancialPanel(r *FinancialReport, currency string) *Panel {
	p := &Panel{Title: "Financial Report - " + r.ReportPeriod}
	p.AddControl("Download PDF")
	p.AddControl("Date Range Picker")

	p.AddSection("Summary", []string{"Metric", "Value"}, [][]string{
		{"Total Revenue", money(r.Summary.TotalRevenue, currency)},
		{"Total Expenses", money(r.Summary.TotalExpenses, currency)},
		{"Profit", money(r.Summary.Profit, currency)},
		{"Profit Margin", FormatPercent(r.Summary.ProfitMargin)},
	})

	p.AddSection("Expense Breakdown", []string{"Source", "Amount"}, [][]string{
		{"Inventory", money(r.ExpenseBreakdown.Inventory, currency)},
		{"Salaries", money(r.ExpenseBreakdown.Salaries, currency)},
	})

	rows := make([][]string, 0, len(r.RevenueByService))
	for _, s := range r.RevenueByService {
		rows = append(rows, []string{s.Service, money(s.Revenue, currency), strconv.Itoa(s.JobCount)})
	}
	p.AddSection("Revenue by Service", []string{"Service", "Revenue", "Jobs"}, rows)

	rows = make([][]string, 0, len(r.MonthlyTrends))
	for _, t := range r.MonthlyTrends {
		rows = append(rows, []string{t.Month, money(t.Revenue, currency), money(t.Expenses, currency), money(t.Profit, currency)})
	}
	p.AddSection("Monthly Trends", []string{"Month", "Revenue", "Expenses", "Profit"}, rows)
	return p
}

// InventoryPanel lays out the inventory payload for capture
func InventoryPanel(r *InventoryReport, currency string) *Panel {
	p := &Panel{Title: "Inventory Report"}
	p.AddControl("Download PDF")

	p.AddSection("Summary", []string{"Metric", "Value"}, [][]string{
		{"Total Inventory Value", money(r.Summary.TotalInventoryValue, currency)},
		{"Total Items", strconv.Itoa(r.Summary.TotalItems)},
		{"Low Stock Items", strconv.Itoa(r.Summary.LowStockCount)},
		{"Last Updated", r.Summary.LastUpdated},
	})

	rows := make([][]string, 0, len(r.InventoryStatus))
	for _, e := range r.InventoryStatus {
		rows = append(rows, []string{e.ProductName, strconv.Itoa(e.Quantity), strconv.Itoa(e.StockLimit), e.Status})
	}
	p.AddSection("Inventory Status", []string{"Item", "Quantity", "Stock Limit", "Status"}, rows)

	rows = make([][]string, 0, len(r.MostUsedParts))
	for _, u := range r.MostUsedParts {
		rows = append(rows, []string{u.ProductName, strconv.Itoa(u.UsedCount)})
	}
	p.AddSection("Most Used Parts", []string{"Item", "Used"}, rows)

	rows = make([][]string, 0, len(r.PurchaseSummary))
	for _, m := range r.PurchaseSummary {
		rows = append(rows, []string{m.Month, money(m.TotalAmount, currency), strconv.Itoa(m.BatchCount)})
	}
	p.AddSection("Purchase Summary", []string{"Month", "Total", "Batches"}, rows)
	return p
}

// PerformancePanel lays out the performance payload for capture
func PerformancePanel(r *PerformanceReport, currency string) *Panel {
	p := &Panel{Title: "Performance Report - " + r.ReportPeriod}
	p.AddControl("Download PDF")
	p.AddControl("Date Range Picker")

	rows := make([][]string, 0, len(r.EmployeePerformance))
	for _, e := range r.EmployeePerformance {
		rows = append(rows, []string{
			e.Name,
			strconv.Itoa(e.AssignedJobs),
			strconv.Itoa(e.CompletedJobs),
			e.CompletionRate,
			fmt.Sprintf("%.2f", e.AvgCompletionDays),
			money(e.RevenueGenerated, currency),
			fmt.Sprintf("%.2f", e.EfficiencyScore),
		})
	}
	p.AddSection("Employee Performance",
		[]string{"Employee", "Assigned", "Completed", "Rate", "Avg Days", "Revenue", "Score"}, rows)

	p.AddSection("Team Averages", []string{"Metric", "Value"}, [][]string{
		{"Average Completion Rate", FormatPercent(r.TeamAverages.AvgCompletionRate)},
		{"Average Revenue per Employee", money(r.TeamAverages.AvgRevenuePerEmployee, currency)},
	})
	return p
}

// CustomerPanel lays out the customer payload for capture
func CustomerPanel(r *CustomerReport, currency string) *Panel {
	p := &Panel{Title: "Customer Report"}
	p.AddControl("Download PDF")

	p.AddSection("Customer Statistics", []string{"Metric", "Value"}, [][]string{
		{"Total Customers", strconv.Itoa(r.CustomerStatistics.TotalCustomers)},
		{"Returning Customers", strconv.Itoa(r.CustomerStatistics.ReturningCustomers)},
		{"Retention Rate", r.CustomerStatistics.RetentionRate},
	})

	rows := make([][]string, 0, len(r.TopCustomers))
	for _, c := range r.TopCustomers {
		rows = append(rows, []string{c.Name, strconv.Itoa(c.JobCount), money(c.TotalSpent, currency)})
	}
	p.AddSection("Top Customers", []string{"Customer", "Jobs", "Total Spent"}, rows)

	rows = make([][]string, 0, len(r.CommonRepairs))
	for _, c := range r.CommonRepairs {
		rows = append(rows, []string{c.Description, strconv.Itoa(c.Count)})
	}
	p.AddSection("Common Repairs", []string{"Repair", "Count"}, rows)
	return p
}
