package handler

import (
	"net/http"

	"github.com/SenudaJK/Software-Development-Project---MN-Electronics-sub000/internal/middleware"
	"github.com/SenudaJK/Software-Development-Project---MN-Electronics-sub000/internal/model"
	"github.com/SenudaJK/Software-Development-Project---MN-Electronics-sub000/pkg/database"
	"github.com/SenudaJK/Software-Development-Project---MN-Electronics-sub000/pkg/logger"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// InvoiceRequest defines the structure for invoice creation/update
// requests. The total is computed server-side from parts and labour;
// any client-supplied total is ignored.
type InvoiceRequest struct {
	JobID            uint            `json:"job_id" validate:"required"`
	PartsCost        decimal.Decimal `json:"parts_cost"`
	LabourCost       decimal.Decimal `json:"labour_cost"`
	AdvanceAmount    decimal.Decimal `json:"advance_amount"`
	WarrantyEligible bool            `json:"warranty_eligible"`
}

func (r *InvoiceRequest) validate() string {
	if r.JobID == 0 {
		return "job_id is required"
	}
	if r.PartsCost.IsNegative() || r.LabourCost.IsNegative() || r.AdvanceAmount.IsNegative() {
		return "amounts must not be negative"
	}
	if r.AdvanceAmount.GreaterThan(r.PartsCost.Add(r.LabourCost)) {
		return "advance_amount cannot exceed the invoice total"
	}
	return ""
}

// ListInvoices handles retrieving all invoices
func ListInvoices(c echo.Context) error {
	log := logger.FromContext(c)

	var invoices []model.Invoice
	query := database.GetDB().Preload("Job")
	if customerID := c.QueryParam("customer_id"); customerID != "" {
		query = query.Where("customer_id = ?", customerID)
	}

	result := query.Order("id").Find(&invoices)
	if result.Error != nil {
		log.Error("Failed to list invoices", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to retrieve invoices",
		})
	}

	log.Info("Invoices retrieved successfully", zap.Int("count", len(invoices)))
	return c.JSON(http.StatusOK, invoices)
}

// GetInvoice handles retrieving a single invoice by ID
func GetInvoice(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")

	var invoice model.Invoice
	result := database.GetDB().Preload("Job").First(&invoice, id)
	if result.Error != nil {
		log.Error("Invoice not found",
			zap.String("invoice_id", id),
			zap.Error(result.Error))
		return c.JSON(http.StatusNotFound, echo.Map{
			"error": "Invoice not found",
		})
	}

	return c.JSON(http.StatusOK, invoice)
}

// CreateInvoice handles raising an invoice against a job
func CreateInvoice(c echo.Context) error {
	log := logger.FromContext(c)

	var req InvoiceRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid request data",
		})
	}
	if msg := req.validate(); msg != "" {
		log.Warn("Invoice validation failed", zap.String("reason", msg))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	var job model.Job
	if err := database.GetDB().First(&job, req.JobID).Error; err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "job does not exist"})
	}

	var count int64
	database.GetDB().Model(&model.Invoice{}).Where("job_id = ?", req.JobID).Count(&count)
	if count > 0 {
		return c.JSON(http.StatusConflict, echo.Map{
			"error": "An invoice already exists for this job",
		})
	}

	ownerID, _ := middleware.GetUserIDFromContext(c)

	invoice := model.Invoice{
		JobID:            req.JobID,
		CustomerID:       job.CustomerID,
		OwnerID:          ownerID,
		PartsCost:        req.PartsCost,
		LabourCost:       req.LabourCost,
		AdvanceAmount:    req.AdvanceAmount,
		WarrantyEligible: req.WarrantyEligible,
	}
	invoice.ComputeTotal()

	result := database.GetDB().Create(&invoice)
	if result.Error != nil {
		log.Error("Failed to create invoice",
			zap.Uint("job_id", req.JobID),
			zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to create invoice",
		})
	}

	log.Info("Invoice created successfully",
		zap.Uint("invoice_id", invoice.ID),
		zap.Uint("job_id", invoice.JobID),
		zap.String("total", invoice.TotalAmount.StringFixed(2)))
	return c.JSON(http.StatusCreated, invoice)
}

// UpdateInvoice handles updating an invoice's cost components
func UpdateInvoice(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")

	var req InvoiceRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}
	if msg := req.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	var invoice model.Invoice
	result := database.GetDB().First(&invoice, id)
	if result.Error != nil {
		log.Error("Invoice not found for update",
			zap.String("invoice_id", id),
			zap.Error(result.Error))
		return c.JSON(http.StatusNotFound, echo.Map{
			"error": "Invoice not found",
		})
	}

	invoice.PartsCost = req.PartsCost
	invoice.LabourCost = req.LabourCost
	invoice.AdvanceAmount = req.AdvanceAmount
	invoice.WarrantyEligible = req.WarrantyEligible
	invoice.ComputeTotal()

	result = database.GetDB().Save(&invoice)
	if result.Error != nil {
		log.Error("Failed to update invoice",
			zap.String("invoice_id", id),
			zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to update invoice",
		})
	}

	log.Info("Invoice updated successfully",
		zap.String("invoice_id", id),
		zap.String("total", invoice.TotalAmount.StringFixed(2)))
	return c.JSON(http.StatusOK, invoice)
}

// DeleteInvoice handles deleting an invoice (soft delete)
func DeleteInvoice(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")

	result := database.GetDB().Delete(&model.Invoice{}, id)
	if result.Error != nil {
		log.Error("Failed to delete invoice",
			zap.String("invoice_id", id),
			zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to delete invoice",
		})
	}
	if result.RowsAffected == 0 {
		return c.JSON(http.StatusNotFound, echo.Map{
			"error": "Invoice not found",
		})
	}

	log.Info("Invoice deleted successfully", zap.String("invoice_id", id))
	return c.JSON(http.StatusOK, echo.Map{
		"message": "Invoice deleted successfully",
	})
}
