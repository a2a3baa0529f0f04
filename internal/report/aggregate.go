package report

import (
	"math"
	"sort"

	"github.com/SenudaJK/Software-Development-Project---MN-Electronics-sub000/internal/model"

	"github.com/shopspring/decimal"
)

// Stock statuses reported for inventory items
const (
	StockOut = "Out of Stock"
	StockBuy = "Buy Items"
	StockIn  = "In Stock"
)

// Efficiency score weights. The score is a composite of the
// completion rate and a speed score derived from the average number
// of days a job takes:
//
//	speedScore = clamp(100 - 10*avgCompletionDays, 0, 100)
//	efficiency = 0.7*completionRate + 0.3*speedScore
//
// A technician finishing every job same-day scores 100.
const (
	completionWeight = 0.7
	speedWeight      = 0.3
	daysPenalty      = 10.0
)

// Round2 rounds v to two decimal places
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// CompletionRate returns the percentage of completed jobs in the set,
// rounded to two decimals. An empty set yields 0, never NaN.
// Paid jobs count as completed work.
func CompletionRate(jobs []model.Job) float64 {
	if len(jobs) == 0 {
		return 0
	}
	completed := 0
	for i := range jobs {
		if jobs[i].IsCompleted() {
			completed++
		}
	}
	return Round2(float64(completed) / float64(len(jobs)) * 100)
}

// RevenueGrowth returns the percentage change from previous to current.
// When the previous period had no revenue the growth is reported as 0,
// the documented sentinel, so the value never becomes Inf or NaN.
func RevenueGrowth(current, previous decimal.Decimal) float64 {
	if previous.IsZero() {
		return 0
	}
	growth := current.Sub(previous).Div(previous).Mul(decimal.NewFromInt(100))
	return Round2(growth.InexactFloat64())
}

// RetentionRate returns the percentage of customers with more than one
// job. Zero total customers yields 0.
func RetentionRate(totalCustomers, returningCustomers int) float64 {
	if totalCustomers == 0 {
		return 0
	}
	return Round2(float64(returningCustomers) / float64(totalCustomers) * 100)
}

// EfficiencyScore combines a completion rate with average completion
// time into a single 0-100 score using the documented weights.
func EfficiencyScore(completionRate, avgCompletionDays float64) float64 {
	speed := 100 - daysPenalty*avgCompletionDays
	if speed < 0 {
		speed = 0
	}
	if speed > 100 {
		speed = 100
	}
	return Round2(completionWeight*completionRate + speedWeight*speed)
}

// StockStatus classifies an inventory level. Zero quantity is always
// out of stock regardless of the reorder threshold.
func StockStatus(quantity, stockLimit int) string {
	switch {
	case quantity <= 0:
		return StockOut
	case quantity < stockLimit:
		return StockBuy
	default:
		return StockIn
	}
}

// AverageRevenuePerJob divides revenue over the job count, returning
// zero when there are no jobs.
func AverageRevenuePerJob(totalRevenue decimal.Decimal, jobCount int) decimal.Decimal {
	if jobCount == 0 {
		return decimal.Zero
	}
	return totalRevenue.DivRound(decimal.NewFromInt(int64(jobCount)), 2)
}

// TopN returns the n records with the highest key, sorted descending.
// The sort is stable: records with equal keys keep their original
// relative order.
func TopN[T any](records []T, key func(T) float64, n int) []T {
	out := make([]T, len(records))
	copy(out, records)
	sort.SliceStable(out, func(i, j int) bool {
		return key(out[i]) > key(out[j])
	})
	if n >= 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

// SumInvoiceTotals adds up the total amounts of a set of invoices
func SumInvoiceTotals(invoices []model.Invoice) decimal.Decimal {
	sum := decimal.Zero
	for i := range invoices {
		sum = sum.Add(invoices[i].TotalAmount)
	}
	return sum
}

// AverageCompletionDays returns the mean handover-to-completion time in
// days over the jobs that carry a completion timestamp. Jobs without
// one are skipped; no completed jobs yields 0.
func AverageCompletionDays(jobs []model.Job) float64 {
	var total float64
	counted := 0
	for i := range jobs {
		j := &jobs[i]
		if j.CompletedAt == nil || j.CompletedAt.Before(j.HandoverDate) {
			continue
		}
		total += j.CompletedAt.Sub(j.HandoverDate).Hours() / 24
		counted++
	}
	if counted == 0 {
		return 0
	}
	return Round2(total / float64(counted))
}

// ReturningCustomers counts customers appearing on more than one job
func ReturningCustomers(jobs []model.Job) int {
	perCustomer := make(map[uint]int)
	for i := range jobs {
		perCustomer[jobs[i].CustomerID]++
	}
	returning := 0
	for _, n := range perCustomer {
		if n > 1 {
			returning++
		}
	}
	return returning
}
