package scheduler

import (
	"context"
	"strconv"
	"time"

	"github.com/SenudaJK/Software-Development-Project---MN-Electronics-sub000/internal/report"
	"github.com/SenudaJK/Software-Development-Project---MN-Electronics-sub000/prometheus"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// StockMonitor periodically recomputes inventory levels, refreshes the
// stock gauges and logs any item that needs reordering.
type StockMonitor struct {
	cron   *cron.Cron
	store  report.Store
	logger *zap.Logger
}

// NewStockMonitor creates a monitor over the given store
func NewStockMonitor(store report.Store, logger *zap.Logger) *StockMonitor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StockMonitor{
		cron:   cron.New(),
		store:  store,
		logger: logger,
	}
}

// Start schedules the daily refresh at 08:00 and runs one refresh
// immediately so the gauges are populated from startup.
func (m *StockMonitor) Start() {
	m.logger.Info("starting stock monitor")

	if _, err := m.cron.AddFunc("0 8 * * *", m.refresh); err != nil {
		m.logger.Error("failed to schedule stock refresh", zap.Error(err))
	}
	m.cron.Start()

	go m.refresh()
}

// Stop stops the scheduler
func (m *StockMonitor) Stop() {
	m.logger.Info("stopping stock monitor")
	m.cron.Stop()
}

func (m *StockMonitor) refresh() {
	ctx, cancel := context.WithTimeout(context.Background(), 1*time.Minute)
	defer cancel()

	levels, err := m.store.StockLevels(ctx)
	if err != nil {
		m.logger.Error("failed to refresh stock levels", zap.Error(err))
		return
	}

	lowStock := 0
	for _, lvl := range levels {
		prometheus.UpdateItemStock(strconv.FormatUint(uint64(lvl.ItemID), 10), lvl.Name, float64(lvl.Quantity))
		status := report.StockStatus(lvl.Quantity, lvl.StockLimit)
		if status == report.StockIn {
			continue
		}
		lowStock++
		m.logger.Warn("item needs reordering",
			zap.String("item", lvl.Name),
			zap.Int("quantity", lvl.Quantity),
			zap.Int("stock_limit", lvl.StockLimit),
			zap.String("status", status))
	}
	prometheus.LowStockGauge.Set(float64(lowStock))

	m.logger.Info("stock levels refreshed",
		zap.Int("items", len(levels)),
		zap.Int("low_stock", lowStock))
}
