package report

import (
	"context"
	"fmt"
	"time"

	"github.com/SenudaJK/Software-Development-Project---MN-Electronics-sub000/internal/model"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Report kinds
const (
	KindOverview    = "overview"
	KindFinancial   = "financial"
	KindInventory   = "inventory"
	KindPerformance = "performance"
	KindCustomer    = "customer"
)

// How many entries the ranked report sections carry
const topEntries = 5

// DataUnavailableError reports that the records backing a report could
// not be fetched. The payload is never partially populated.
type DataUnavailableError struct {
	Report string
	Err    error
}

func (e *DataUnavailableError) Error() string {
	return fmt.Sprintf("%s report data unavailable: %v", e.Report, e.Err)
}

func (e *DataUnavailableError) Unwrap() error { return e.Err }

// ── Payload shapes ──────────────────────────────────────────────

// RepairStatistics summarizes job counts for the overview report
type RepairStatistics struct {
	Total          int    `json:"total"`
	Completed      int    `json:"completed"`
	InProgress     int    `json:"in_progress"`
	Pending        int    `json:"pending"`
	CompletionRate string `json:"completion_rate"`
}

// FinancialMetrics summarizes the month's invoicing for the overview
type FinancialMetrics struct {
	MonthlyRevenue          float64 `json:"monthly_revenue"`
	InvoiceCount            int     `json:"invoice_count"`
	AverageInvoice          float64 `json:"average_invoice"`
	RevenueGrowthPercentage float64 `json:"revenue_growth_percentage"`
	PreviousMonthRevenue    float64 `json:"previous_month_revenue"`
}

// RepairCount is a ranked repair type with its occurrence count
type RepairCount struct {
	Description string `json:"description"`
	Count       int    `json:"count"`
}

// TechnicianRank is a ranked technician by completed jobs
type TechnicianRank struct {
	EmployeeID    uint   `json:"employee_id"`
	Name          string `json:"name"`
	CompletedJobs int    `json:"completed_jobs"`
}

// OverviewReport is the dashboard overview payload
type OverviewReport struct {
	ReportPeriod     string           `json:"report_period"`
	RepairStatistics RepairStatistics `json:"repair_statistics"`
	FinancialMetrics FinancialMetrics `json:"financial_metrics"`
	TopRepairs       []RepairCount    `json:"top_repairs"`
	TopTechnicians   []TechnicianRank `json:"top_technicians"`
}

// FinancialSummary carries the headline figures of a financial report
type FinancialSummary struct {
	TotalRevenue  float64 `json:"total_revenue"`
	TotalExpenses float64 `json:"total_expenses"`
	Profit        float64 `json:"profit"`
	ProfitMargin  float64 `json:"profit_margin"`
}

// ExpenseBreakdown splits expenses into their two sources
type ExpenseBreakdown struct {
	Inventory float64 `json:"inventory"`
	Salaries  float64 `json:"salaries"`
}

// ServiceRevenue is revenue grouped by the serviced product type
type ServiceRevenue struct {
	Service  string  `json:"service"`
	Revenue  float64 `json:"revenue"`
	JobCount int     `json:"job_count"`
}

// MonthlyTrend is one month of the revenue/expense series
type MonthlyTrend struct {
	Month    string  `json:"month"`
	Revenue  float64 `json:"revenue"`
	Expenses float64 `json:"expenses"`
	Profit   float64 `json:"profit"`
}

// FinancialReport is the financial report payload
type FinancialReport struct {
	ReportPeriod     string           `json:"report_period"`
	Summary          FinancialSummary `json:"summary"`
	ExpenseBreakdown ExpenseBreakdown `json:"expense_breakdown"`
	RevenueByService []ServiceRevenue `json:"revenue_by_service"`
	MonthlyTrends    []MonthlyTrend   `json:"monthly_trends"`
}

// InventorySummary carries the headline inventory figures
type InventorySummary struct {
	TotalInventoryValue float64 `json:"total_inventory_value"`
	TotalItems          int     `json:"total_items"`
	LowStockCount       int     `json:"low_stock_count"`
	LastUpdated         string  `json:"last_updated"`
}

// StockEntry is one inventory item with its classified status
type StockEntry struct {
	ItemID      uint   `json:"item_id"`
	ProductName string `json:"product_name"`
	Quantity    int    `json:"quantity"`
	StockLimit  int    `json:"stock_limit"`
	Status      string `json:"status"`
}

// PartUsageEntry is a ranked part by recorded consumption
type PartUsageEntry struct {
	ProductName string `json:"product_name"`
	UsedCount   int    `json:"used_count"`
}

// PurchaseMonth is one month of inventory purchasing
type PurchaseMonth struct {
	Month       string  `json:"month"`
	TotalAmount float64 `json:"total_amount"`
	BatchCount  int     `json:"batch_count"`
}

// InventoryReport is the inventory report payload
type InventoryReport struct {
	Summary         InventorySummary `json:"summary"`
	LowStockItems   []StockEntry     `json:"low_stock_items"`
	InventoryStatus []StockEntry     `json:"inventory_status"`
	MostUsedParts   []PartUsageEntry `json:"most_used_parts"`
	PurchaseSummary []PurchaseMonth  `json:"purchase_summary"`
}

// EmployeePerformance is one employee's figures for the window
type EmployeePerformance struct {
	EmployeeID        uint    `json:"employee_id"`
	Name              string  `json:"name"`
	AssignedJobs      int     `json:"assigned_jobs"`
	CompletedJobs     int     `json:"completed_jobs"`
	CompletionRate    string  `json:"completion_rate"`
	AvgCompletionDays float64 `json:"avg_completion_days"`
	RevenueGenerated  float64 `json:"revenue_generated"`
	EfficiencyScore   float64 `json:"efficiency_score"`
}

// TeamAverages aggregates employee performance across the team
type TeamAverages struct {
	AvgCompletionRate     float64 `json:"avg_completion_rate"`
	AvgRevenuePerEmployee float64 `json:"avg_revenue_per_employee"`
}

// PerformanceReport is the employee performance payload
type PerformanceReport struct {
	ReportPeriod        string                `json:"report_period"`
	EmployeePerformance []EmployeePerformance `json:"employee_performance"`
	TeamAverages        TeamAverages          `json:"team_averages"`
}

// CustomerStatistics carries the headline customer figures
type CustomerStatistics struct {
	TotalCustomers     int    `json:"total_customers"`
	ReturningCustomers int    `json:"returning_customers"`
	RetentionRate      string `json:"retention_rate"`
}

// CustomerRank is a ranked customer by number of jobs
type CustomerRank struct {
	CustomerID uint    `json:"customer_id"`
	Name       string  `json:"name"`
	JobCount   int     `json:"job_count"`
	TotalSpent float64 `json:"total_spent"`
}

// CustomerReport is the customer report payload
type CustomerReport struct {
	CustomerStatistics CustomerStatistics `json:"customer_statistics"`
	TopCustomers       []CustomerRank     `json:"top_customers"`
	CommonRepairs      []RepairCount      `json:"common_repairs"`
}

// ── Assembler ───────────────────────────────────────────────────

// Assembler builds the named report payloads from the record store.
// It owns no aggregation math of its own; every derived number comes
// from the aggregate functions.
type Assembler struct {
	store Store
	log   *zap.Logger
	now   func() time.Time
}

// NewAssembler creates an Assembler over the given store
func NewAssembler(store Store, log *zap.Logger) *Assembler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Assembler{store: store, log: log, now: time.Now}
}

func (a *Assembler) unavailable(kind string, err error) error {
	a.log.Error("Report data fetch failed", zap.String("report", kind), zap.Error(err))
	return &DataUnavailableError{Report: kind, Err: err}
}

// Overview builds the dashboard overview for the current calendar
// month, comparing revenue against the previous month.
func (a *Assembler) Overview(ctx context.Context) (*OverviewReport, error) {
	now := a.now()
	current, err := ResolvePeriod(PeriodMonth, "", "", now)
	if err != nil {
		return nil, err
	}
	previous := PreviousMonth(now)

	jobs, err := a.store.JobsInRange(ctx, current.Start, current.End)
	if err != nil {
		return nil, a.unavailable(KindOverview, err)
	}
	invoices, err := a.store.InvoicesInRange(ctx, current.Start, current.End)
	if err != nil {
		return nil, a.unavailable(KindOverview, err)
	}
	prevInvoices, err := a.store.InvoicesInRange(ctx, previous.Start, previous.End)
	if err != nil {
		return nil, a.unavailable(KindOverview, err)
	}
	employees, err := a.store.Employees(ctx)
	if err != nil {
		return nil, a.unavailable(KindOverview, err)
	}

	stats := RepairStatistics{Total: len(jobs)}
	for i := range jobs {
		switch {
		case jobs[i].IsCompleted():
			stats.Completed++
		case jobs[i].Status == model.StatusInProgress:
			stats.InProgress++
		case jobs[i].Status == model.StatusPending:
			stats.Pending++
		}
	}
	stats.CompletionRate = FormatPercent(CompletionRate(jobs))

	revenue := SumInvoiceTotals(invoices)
	prevRevenue := SumInvoiceTotals(prevInvoices)
	metrics := FinancialMetrics{
		MonthlyRevenue:          MoneyValue(revenue),
		InvoiceCount:            len(invoices),
		AverageInvoice:          MoneyValue(AverageRevenuePerJob(revenue, len(invoices))),
		RevenueGrowthPercentage: RevenueGrowth(revenue, prevRevenue),
		PreviousMonthRevenue:    MoneyValue(prevRevenue),
	}

	return &OverviewReport{
		ReportPeriod:     current.Label,
		RepairStatistics: stats,
		FinancialMetrics: metrics,
		TopRepairs:       topRepairsByProduct(jobs),
		TopTechnicians:   topTechnicians(jobs, employees),
	}, nil
}

// Financial builds the financial report over the requested window
func (a *Assembler) Financial(ctx context.Context, period, startDate, endDate string) (*FinancialReport, error) {
	window, err := ResolvePeriod(period, startDate, endDate, a.now())
	if err != nil {
		return nil, err
	}

	invoices, err := a.store.InvoicesInRange(ctx, window.Start, window.End)
	if err != nil {
		return nil, a.unavailable(KindFinancial, err)
	}
	batches, err := a.store.BatchesInRange(ctx, window.Start, window.End)
	if err != nil {
		return nil, a.unavailable(KindFinancial, err)
	}
	employees, err := a.store.Employees(ctx)
	if err != nil {
		return nil, a.unavailable(KindFinancial, err)
	}

	monthlySalaries := decimal.Zero
	for i := range employees {
		monthlySalaries = monthlySalaries.Add(employees[i].Salary)
	}

	months := monthsIn(window)
	trends := make([]MonthlyTrend, 0, len(months))
	totalRevenue := decimal.Zero
	totalInventoryExpense := decimal.Zero
	for _, m := range months {
		monthEnd := m.AddDate(0, 1, 0)
		rev := decimal.Zero
		for i := range invoices {
			at := invoices[i].CreatedAt
			if !at.Before(m) && at.Before(monthEnd) {
				rev = rev.Add(invoices[i].TotalAmount)
			}
		}
		exp := decimal.Zero
		for i := range batches {
			at := batches[i].PurchaseDate
			if !at.Before(m) && at.Before(monthEnd) {
				exp = exp.Add(batches[i].TotalAmount)
			}
		}
		totalRevenue = totalRevenue.Add(rev)
		totalInventoryExpense = totalInventoryExpense.Add(exp)
		monthTotal := exp.Add(monthlySalaries)
		trends = append(trends, MonthlyTrend{
			Month:    m.Format("Jan 2006"),
			Revenue:  MoneyValue(rev),
			Expenses: MoneyValue(monthTotal),
			Profit:   MoneyValue(rev.Sub(monthTotal)),
		})
	}

	salaryExpense := monthlySalaries.Mul(decimal.NewFromInt(int64(len(months))))
	totalExpenses := totalInventoryExpense.Add(salaryExpense)
	profit := totalRevenue.Sub(totalExpenses)

	margin := 0.0
	if !totalRevenue.IsZero() {
		margin = Round2(profit.Div(totalRevenue).Mul(decimal.NewFromInt(100)).InexactFloat64())
	}

	return &FinancialReport{
		ReportPeriod: window.Label,
		Summary: FinancialSummary{
			TotalRevenue:  MoneyValue(totalRevenue),
			TotalExpenses: MoneyValue(totalExpenses),
			Profit:        MoneyValue(profit),
			ProfitMargin:  margin,
		},
		ExpenseBreakdown: ExpenseBreakdown{
			Inventory: MoneyValue(totalInventoryExpense),
			Salaries:  MoneyValue(salaryExpense),
		},
		RevenueByService: revenueByService(invoices),
		MonthlyTrends:    trends,
	}, nil
}

// Inventory builds the stock report over the current state of the
// store plus the trailing twelve months of purchases.
func (a *Assembler) Inventory(ctx context.Context) (*InventoryReport, error) {
	now := a.now()

	levels, err := a.store.StockLevels(ctx)
	if err != nil {
		return nil, a.unavailable(KindInventory, err)
	}
	usage, err := a.store.PartsUsage(ctx)
	if err != nil {
		return nil, a.unavailable(KindInventory, err)
	}
	yearStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, -11, 0)
	batches, err := a.store.BatchesInRange(ctx, yearStart, now)
	if err != nil {
		return nil, a.unavailable(KindInventory, err)
	}

	status := make([]StockEntry, 0, len(levels))
	var lowStock []StockEntry
	totalValue := decimal.Zero
	for _, lvl := range levels {
		entry := StockEntry{
			ItemID:      lvl.ItemID,
			ProductName: lvl.Name,
			Quantity:    lvl.Quantity,
			StockLimit:  lvl.StockLimit,
			Status:      StockStatus(lvl.Quantity, lvl.StockLimit),
		}
		status = append(status, entry)
		if entry.Status != StockIn {
			lowStock = append(lowStock, entry)
		}
		if lvl.Quantity > 0 {
			totalValue = totalValue.Add(lvl.UnitCost.Mul(decimal.NewFromInt(int64(lvl.Quantity))))
		}
	}

	ranked := TopN(usage, func(u PartUsage) float64 { return float64(u.Used) }, topEntries)
	mostUsed := make([]PartUsageEntry, 0, len(ranked))
	for _, u := range ranked {
		mostUsed = append(mostUsed, PartUsageEntry{ProductName: u.Name, UsedCount: u.Used})
	}

	return &InventoryReport{
		Summary: InventorySummary{
			TotalInventoryValue: MoneyValue(totalValue),
			TotalItems:          len(levels),
			LowStockCount:       len(lowStock),
			LastUpdated:         now.Format(time.RFC3339),
		},
		LowStockItems:   lowStock,
		InventoryStatus: status,
		MostUsedParts:   mostUsed,
		PurchaseSummary: purchaseSummary(batches),
	}, nil
}

// Performance builds the employee performance report. Without explicit
// dates the window defaults to the current calendar month.
func (a *Assembler) Performance(ctx context.Context, startDate, endDate string) (*PerformanceReport, error) {
	period := PeriodMonth
	if startDate != "" || endDate != "" {
		period = PeriodCustom
	}
	window, err := ResolvePeriod(period, startDate, endDate, a.now())
	if err != nil {
		return nil, err
	}

	jobs, err := a.store.JobsInRange(ctx, window.Start, window.End)
	if err != nil {
		return nil, a.unavailable(KindPerformance, err)
	}
	invoices, err := a.store.InvoicesInRange(ctx, window.Start, window.End)
	if err != nil {
		return nil, a.unavailable(KindPerformance, err)
	}
	employees, err := a.store.Employees(ctx)
	if err != nil {
		return nil, a.unavailable(KindPerformance, err)
	}

	jobsByEmployee := make(map[uint][]model.Job)
	for i := range jobs {
		id := jobs[i].AssignedEmployee
		jobsByEmployee[id] = append(jobsByEmployee[id], jobs[i])
	}
	revenueByEmployee := make(map[uint]decimal.Decimal)
	for i := range invoices {
		if invoices[i].Job == nil {
			continue
		}
		id := invoices[i].Job.AssignedEmployee
		revenueByEmployee[id] = revenueByEmployee[id].Add(invoices[i].TotalAmount)
	}

	var perf []EmployeePerformance
	rateSum := 0.0
	totalRevenue := decimal.Zero
	for i := range employees {
		emp := &employees[i]
		if emp.Role != model.RoleTechnician && len(jobsByEmployee[emp.ID]) == 0 {
			continue
		}
		assigned := jobsByEmployee[emp.ID]
		completed := 0
		for j := range assigned {
			if assigned[j].IsCompleted() {
				completed++
			}
		}
		rate := CompletionRate(assigned)
		avgDays := AverageCompletionDays(assigned)
		revenue := revenueByEmployee[emp.ID]
		perf = append(perf, EmployeePerformance{
			EmployeeID:        emp.ID,
			Name:              emp.Name,
			AssignedJobs:      len(assigned),
			CompletedJobs:     completed,
			CompletionRate:    FormatPercent(rate),
			AvgCompletionDays: avgDays,
			RevenueGenerated:  MoneyValue(revenue),
			EfficiencyScore:   EfficiencyScore(rate, avgDays),
		})
		rateSum += rate
		totalRevenue = totalRevenue.Add(revenue)
	}

	averages := TeamAverages{}
	if len(perf) > 0 {
		averages.AvgCompletionRate = Round2(rateSum / float64(len(perf)))
		averages.AvgRevenuePerEmployee = MoneyValue(AverageRevenuePerJob(totalRevenue, len(perf)))
	}

	return &PerformanceReport{
		ReportPeriod:        window.Label,
		EmployeePerformance: perf,
		TeamAverages:        averages,
	}, nil
}

// Customer builds the customer report over the full job history
func (a *Assembler) Customer(ctx context.Context) (*CustomerReport, error) {
	customers, err := a.store.Customers(ctx)
	if err != nil {
		return nil, a.unavailable(KindCustomer, err)
	}
	jobs, err := a.store.AllJobs(ctx)
	if err != nil {
		return nil, a.unavailable(KindCustomer, err)
	}
	invoices, err := a.store.AllInvoices(ctx)
	if err != nil {
		return nil, a.unavailable(KindCustomer, err)
	}

	returning := ReturningCustomers(jobs)

	jobCounts := make(map[uint]int)
	for i := range jobs {
		jobCounts[jobs[i].CustomerID]++
	}
	spent := make(map[uint]decimal.Decimal)
	for i := range invoices {
		id := invoices[i].CustomerID
		spent[id] = spent[id].Add(invoices[i].TotalAmount)
	}

	ranks := make([]CustomerRank, 0, len(customers))
	for i := range customers {
		c := &customers[i]
		if jobCounts[c.ID] == 0 {
			continue
		}
		ranks = append(ranks, CustomerRank{
			CustomerID: c.ID,
			Name:       c.FullName(),
			JobCount:   jobCounts[c.ID],
			TotalSpent: MoneyValue(spent[c.ID]),
		})
	}
	top := TopN(ranks, func(r CustomerRank) float64 { return float64(r.JobCount) }, topEntries)

	return &CustomerReport{
		CustomerStatistics: CustomerStatistics{
			TotalCustomers:     len(customers),
			ReturningCustomers: returning,
			RetentionRate:      FormatPercent(RetentionRate(len(customers), returning)),
		},
		TopCustomers:  top,
		CommonRepairs: commonRepairs(jobs),
	}, nil
}

// ── Grouping helpers ────────────────────────────────────────────

func topRepairsByProduct(jobs []model.Job) []RepairCount {
	counts := make(map[string]int)
	var order []string
	for i := range jobs {
		name := jobs[i].ProductName
		if _, seen := counts[name]; !seen {
			order = append(order, name)
		}
		counts[name]++
	}
	grouped := make([]RepairCount, 0, len(order))
	for _, name := range order {
		grouped = append(grouped, RepairCount{Description: name, Count: counts[name]})
	}
	return TopN(grouped, func(r RepairCount) float64 { return float64(r.Count) }, topEntries)
}

func commonRepairs(jobs []model.Job) []RepairCount {
	counts := make(map[string]int)
	var order []string
	for i := range jobs {
		desc := jobs[i].RepairDescription
		if _, seen := counts[desc]; !seen {
			order = append(order, desc)
		}
		counts[desc]++
	}
	grouped := make([]RepairCount, 0, len(order))
	for _, desc := range order {
		grouped = append(grouped, RepairCount{Description: desc, Count: counts[desc]})
	}
	return TopN(grouped, func(r RepairCount) float64 { return float64(r.Count) }, topEntries)
}

func topTechnicians(jobs []model.Job, employees []model.Employee) []TechnicianRank {
	completed := make(map[uint]int)
	for i := range jobs {
		if jobs[i].IsCompleted() {
			completed[jobs[i].AssignedEmployee]++
		}
	}
	ranks := make([]TechnicianRank, 0, len(employees))
	for i := range employees {
		emp := &employees[i]
		if emp.Role != model.RoleTechnician {
			continue
		}
		ranks = append(ranks, TechnicianRank{
			EmployeeID:    emp.ID,
			Name:          emp.Name,
			CompletedJobs: completed[emp.ID],
		})
	}
	return TopN(ranks, func(r TechnicianRank) float64 { return float64(r.CompletedJobs) }, topEntries)
}

func revenueByService(invoices []model.Invoice) []ServiceRevenue {
	revenue := make(map[string]decimal.Decimal)
	jobCount := make(map[string]int)
	var order []string
	for i := range invoices {
		service := "Unknown"
		if invoices[i].Job != nil {
			service = invoices[i].Job.ProductName
		}
		if _, seen := revenue[service]; !seen {
			order = append(order, service)
		}
		revenue[service] = revenue[service].Add(invoices[i].TotalAmount)
		jobCount[service]++
	}
	grouped := make([]ServiceRevenue, 0, len(order))
	for _, service := range order {
		grouped = append(grouped, ServiceRevenue{
			Service:  service,
			Revenue:  MoneyValue(revenue[service]),
			JobCount: jobCount[service],
		})
	}
	return TopN(grouped, func(s ServiceRevenue) float64 { return s.Revenue }, -1)
}

func purchaseSummary(batches []model.InventoryBatch) []PurchaseMonth {
	totals := make(map[string]decimal.Decimal)
	counts := make(map[string]int)
	var order []string
	for i := range batches {
		month := batches[i].PurchaseDate.Format("Jan 2006")
		if _, seen := totals[month]; !seen {
			order = append(order, month)
		}
		totals[month] = totals[month].Add(batches[i].TotalAmount)
		counts[month]++
	}
	summary := make([]PurchaseMonth, 0, len(order))
	for _, month := range order {
		summary = append(summary, PurchaseMonth{
			Month:       month,
			TotalAmount: MoneyValue(totals[month]),
			BatchCount:  counts[month],
		})
	}
	return summary
}
