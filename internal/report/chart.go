package report

// Dataset is one named series of a chart
type Dataset struct {
	Label string    `json:"label"`
	Data  []float64 `json:"data"`
}

// ChartData is the labels-plus-datasets structure the rendering
// widgets consume. Every report payload maps to exactly one shape;
// nothing is aggregated here, payload numbers are only rearranged.
type ChartData struct {
	Labels   []string  `json:"labels"`
	Datasets []Dataset `json:"datasets"`
}

// OverviewChart maps the overview payload to a job status breakdown
func OverviewChart(r *OverviewReport) ChartData {
	s := r.RepairStatistics
	return ChartData{
		Labels: []string{"Completed", "In Progress", "Pending"},
		Datasets: []Dataset{
			{Label: "Jobs", Data: []float64{float64(s.Completed), float64(s.InProgress), float64(s.Pending)}},
		},
	}
}

// FinancialChart maps the financial payload to the monthly trend series
func FinancialChart(r *FinancialReport) ChartData {
	labels := make([]string, 0, len(r.MonthlyTrends))
	revenue := make([]float64, 0, len(r.MonthlyTrends))
	expenses := make([]float64, 0, len(r.MonthlyTrends))
	profit := make([]float64, 0, len(r.MonthlyTrends))
	for _, t := range r.MonthlyTrends {
		labels = append(labels, t.Month)
		revenue = append(revenue, t.Revenue)
		expenses = append(expenses, t.Expenses)
		profit = append(profit, t.Profit)
	}
	return ChartData{
		Labels: labels,
		Datasets: []Dataset{
			{Label: "Revenue", Data: revenue},
			{Label: "Expenses", Data: expenses},
			{Label: "Profit", Data: profit},
		},
	}
}

// InventoryChart maps the inventory payload to per-item stock levels
func InventoryChart(r *InventoryReport) ChartData {
	labels := make([]string, 0, len(r.InventoryStatus))
	quantities := make([]float64, 0, len(r.InventoryStatus))
	limits := make([]float64, 0, len(r.InventoryStatus))
	for _, e := range r.InventoryStatus {
		labels = append(labels, e.ProductName)
		quantities = append(quantities, float64(e.Quantity))
		limits = append(limits, float64(e.StockLimit))
	}
	return ChartData{
		Labels: labels,
		Datasets: []Dataset{
			{Label: "Quantity", Data: quantities},
			{Label: "Stock Limit", Data: limits},
		},
	}
}

// PerformanceChart maps the performance payload to per-employee scores
func PerformanceChart(r *PerformanceReport) ChartData {
	labels := make([]string, 0, len(r.EmployeePerformance))
	rates := make([]float64, 0, len(r.EmployeePerformance))
	scores := make([]float64, 0, len(r.EmployeePerformance))
	for _, e := range r.EmployeePerformance {
		labels = append(labels, e.Name)
		rates = append(rates, ParsePercent(e.CompletionRate))
		scores = append(scores, e.EfficiencyScore)
	}
	return ChartData{
		Labels: labels,
		Datasets: []Dataset{
			{Label: "Completion Rate", Data: rates},
			{Label: "Efficiency Score", Data: scores},
		},
	}
}

// CustomerChart maps the customer payload to the top customer ranking
func CustomerChart(r *CustomerReport) ChartData {
	labels := make([]string, 0, len(r.TopCustomers))
	jobs := make([]float64, 0, len(r.TopCustomers))
	spent := make([]float64, 0, len(r.TopCustomers))
	for _, c := range r.TopCustomers {
		labels = append(labels, c.Name)
		jobs = append(jobs, float64(c.JobCount))
		spent = append(spent, c.TotalSpent)
	}
	return ChartData{
		Labels: labels,
		Datasets: []Dataset{
			{Label: "Jobs", Data: jobs},
			{Label: "Total Spent", Data: spent},
		},
	}
}
