package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/SenudaJK/Software-Development-Project---MN-Electronics-sub000/internal/report"
	"github.com/SenudaJK/Software-Development-Project---MN-Electronics-sub000/pkg/config"
	"github.com/SenudaJK/Software-Development-Project---MN-Electronics-sub000/pkg/logger"
	"github.com/SenudaJK/Software-Development-Project---MN-Electronics-sub000/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// ReportHandler serves the five report endpoints and their PDF
// exports. Each report kind has its own exporter so that concurrent
// exports of different reports do not block each other, while a
// second export of the same report is rejected until the first
// finishes.
type ReportHandler struct {
	assembler *report.Assembler
	shop      config.ShopConfig
	exporters map[string]*report.Exporter
}

// NewReportHandler wires the report endpoints over the given store
func NewReportHandler(store report.Store, shop config.ShopConfig) *ReportHandler {
	exporters := make(map[string]*report.Exporter)
	for _, kind := range []string{
		report.KindOverview,
		report.KindFinancial,
		report.KindInventory,
		report.KindPerformance,
		report.KindCustomer,
	} {
		exporters[kind] = report.NewExporter(shop)
	}
	return &ReportHandler{
		assembler: report.NewAssembler(store, logger.GetLogger()),
		shop:      shop,
		exporters: exporters,
	}
}

func (h *ReportHandler) fail(c echo.Context, kind string, err error) error {
	log := logger.FromContext(c)
	if errors.Is(err, report.ErrInvalidPeriod) {
		log.Warn("Invalid report period", zap.String("report", kind), zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	var unavailable *report.DataUnavailableError
	if errors.As(err, &unavailable) {
		log.Error("Report data unavailable", zap.String("report", kind), zap.Error(err))
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": unavailable.Error()})
	}
	log.Error("Report build failed", zap.String("report", kind), zap.Error(err))
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to build report"})
}

// Overview handles GET /api/reports/overview
func (h *ReportHandler) Overview(c echo.Context) error {
	prometheus.RecordReportRequest(report.KindOverview)
	defer trackReportBuild(report.KindOverview)(time.Now())

	payload, err := h.assembler.Overview(c.Request().Context())
	if err != nil {
		return h.fail(c, report.KindOverview, err)
	}
	return c.JSON(http.StatusOK, payload)
}

// Financial handles GET /api/reports/financial
func (h *ReportHandler) Financial(c echo.Context) error {
	prometheus.RecordReportRequest(report.KindFinancial)
	defer trackReportBuild(report.KindFinancial)(time.Now())

	payload, err := h.assembler.Financial(c.Request().Context(),
		c.QueryParam("period"),
		c.QueryParam("startDate"),
		c.QueryParam("endDate"))
	if err != nil {
		return h.fail(c, report.KindFinancial, err)
	}
	return c.JSON(http.StatusOK, payload)
}

// Inventory handles GET /api/reports/inventory
func (h *ReportHandler) Inventory(c echo.Context) error {
	prometheus.RecordReportRequest(report.KindInventory)
	defer trackReportBuild(report.KindInventory)(time.Now())

	payload, err := h.assembler.Inventory(c.Request().Context())
	if err != nil {
		return h.fail(c, report.KindInventory, err)
	}
	return c.JSON(http.StatusOK, payload)
}

// Performance handles GET /api/reports/performance
func (h *ReportHandler) Performance(c echo.Context) error {
	prometheus.RecordReportRequest(report.KindPerformance)
	defer trackReportBuild(report.KindPerformance)(time.Now())

	payload, err := h.assembler.Performance(c.Request().Context(),
		c.QueryParam("startDate"),
		c.QueryParam("endDate"))
	if err != nil {
		return h.fail(c, report.KindPerformance, err)
	}
	return c.JSON(http.StatusOK, payload)
}

// Customer handles GET /api/reports/customer
func (h *ReportHandler) Customer(c echo.Context) error {
	prometheus.RecordReportRequest(report.KindCustomer)
	defer trackReportBuild(report.KindCustomer)(time.Now())

	payload, err := h.assembler.Customer(c.Request().Context())
	if err != nil {
		return h.fail(c, report.KindCustomer, err)
	}
	return c.JSON(http.StatusOK, payload)
}

// Export handles GET /api/reports/:kind/export, streaming the report
// as a PDF download.
func (h *ReportHandler) Export(c echo.Context) error {
	log := logger.FromContext(c)
	kind := c.Param("kind")
	ctx := c.Request().Context()

	exporter, ok := h.exporters[kind]
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "unknown report kind"})
	}

	var (
		panel *report.Panel
		title string
		err   error
	)
	currency := h.shop.CurrencyCode
	switch kind {
	case report.KindOverview:
		var payload *report.OverviewReport
		if payload, err = h.assembler.Overview(ctx); err == nil {
			panel, title = report.OverviewPanel(payload, currency), "Overview Report"
		}
	case report.KindFinancial:
		var payload *report.FinancialReport
		payload, err = h.assembler.Financial(ctx,
			c.QueryParam("period"), c.QueryParam("startDate"), c.QueryParam("endDate"))
		if err == nil {
			panel, title = report.FinancialPanel(payload, currency), "Financial Report"
		}
	case report.KindInventory:
		var payload *report.InventoryReport
		if payload, err = h.assembler.Inventory(ctx); err == nil {
			panel, title = report.InventoryPanel(payload, currency), "Inventory Report"
		}
	case report.KindPerformance:
		var payload *report.PerformanceReport
		payload, err = h.assembler.Performance(ctx, c.QueryParam("startDate"), c.QueryParam("endDate"))
		if err == nil {
			panel, title = report.PerformancePanel(payload, currency), "Performance Report"
		}
	case report.KindCustomer:
		var payload *report.CustomerReport
		if payload, err = h.assembler.Customer(ctx); err == nil {
			panel, title = report.CustomerPanel(payload, currency), "Customer Report"
		}
	}
	if err != nil {
		prometheus.RecordReportExport(kind, "error")
		return h.fail(c, kind, err)
	}

	doc, filename, err := exporter.Export(panel, title)
	if err != nil {
		if errors.Is(err, report.ErrExportInProgress) {
			prometheus.RecordReportExport(kind, "rejected")
			log.Warn("Export rejected, already generating", zap.String("report", kind))
			return c.JSON(http.StatusConflict, echo.Map{"error": "an export of this report is already in progress"})
		}
		prometheus.RecordReportExport(kind, "error")
		log.Error("Export failed", zap.String("report", kind), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to export report"})
	}

	prometheus.RecordReportExport(kind, "success")
	log.Info("Report exported",
		zap.String("report", kind),
		zap.String("filename", filename),
		zap.Int("bytes", len(doc)))

	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Blob(http.StatusOK, "application/pdf", doc)
}

func trackReportBuild(kind string) func(start time.Time) {
	return func(start time.Time) {
		prometheus.ReportBuildDuration.WithLabelValues(kind).Observe(time.Since(start).Seconds())
	}
}
