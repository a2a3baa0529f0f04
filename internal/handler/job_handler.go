package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/SenudaJK/Software-Development-Project---MN-Electronics-sub000/internal/model"
	"github.com/SenudaJK/Software-Development-Project---MN-Electronics-sub000/pkg/database"
	"github.com/SenudaJK/Software-Development-Project---MN-Electronics-sub000/pkg/logger"
	"github.com/SenudaJK/Software-Development-Project---MN-Electronics-sub000/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// JobRequest defines the structure for job creation/update requests
type JobRequest struct {
	CustomerID        uint   `json:"customer_id" validate:"required"`
	AssignedEmployee  uint   `json:"assigned_employee"`
	ProductName       string `json:"product_name" validate:"required"`
	ModelNumber       string `json:"model_number"`
	RepairDescription string `json:"repair_description" validate:"required"`
	Status            string `json:"repair_status"`
	HandoverDate      string `json:"handover_date"`
}

func (r *JobRequest) validate() string {
	if r.CustomerID == 0 {
		return "customer_id is required"
	}
	if strings.TrimSpace(r.ProductName) == "" {
		return "product_name is required"
	}
	if strings.TrimSpace(r.RepairDescription) == "" {
		return "repair_description is required"
	}
	if r.Status != "" && !model.ValidStatus(r.Status) {
		return "invalid repair_status"
	}
	return ""
}

// ListJobs handles retrieving all jobs with optional status and
// employee filtering
func ListJobs(c echo.Context) error {
	log := logger.FromContext(c)

	var jobs []model.Job
	query := database.GetDB().Preload("Customer").Preload("Employee")

	if status := c.QueryParam("status"); status != "" {
		if !model.ValidStatus(status) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid status filter"})
		}
		query = query.Where("status = ?", status)
	}
	if employee := c.QueryParam("assigned_employee"); employee != "" {
		query = query.Where("assigned_employee = ?", employee)
	}

	result := query.Order("id").Find(&jobs)
	if result.Error != nil {
		log.Error("Failed to list jobs", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to retrieve jobs",
		})
	}

	log.Info("Jobs retrieved successfully", zap.Int("count", len(jobs)))
	return c.JSON(http.StatusOK, jobs)
}

// GetJob handles retrieving a single job by ID
func GetJob(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")

	var job model.Job
	result := database.GetDB().Preload("Customer").Preload("Employee").First(&job, id)
	if result.Error != nil {
		log.Error("Job not found",
			zap.String("job_id", id),
			zap.Error(result.Error))
		return c.JSON(http.StatusNotFound, echo.Map{
			"error": "Job not found",
		})
	}

	return c.JSON(http.StatusOK, job)
}

// CreateJob handles registering a new repair job
func CreateJob(c echo.Context) error {
	log := logger.FromContext(c)

	var req JobRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid request data",
		})
	}
	if msg := req.validate(); msg != "" {
		log.Warn("Job validation failed", zap.String("reason", msg))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	var customer model.Customer
	if err := database.GetDB().First(&customer, req.CustomerID).Error; err != nil {
		log.Warn("Job references unknown customer", zap.Uint("customer_id", req.CustomerID))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "customer does not exist"})
	}

	handover := time.Now()
	if req.HandoverDate != "" {
		parsed, err := time.Parse("2006-01-02", req.HandoverDate)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "handover_date must be YYYY-MM-DD"})
		}
		handover = parsed
	}

	status := req.Status
	if status == "" {
		status = model.StatusPending
	}

	job := model.Job{
		CustomerID:        req.CustomerID,
		AssignedEmployee:  req.AssignedEmployee,
		ProductName:       req.ProductName,
		ModelNumber:       req.ModelNumber,
		RepairDescription: req.RepairDescription,
		Status:            status,
		HandoverDate:      handover,
	}
	if job.IsCompleted() {
		now := time.Now()
		job.CompletedAt = &now
	}

	result := database.GetDB().Create(&job)
	if result.Error != nil {
		log.Error("Failed to create job", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to create job",
		})
	}

	prometheus.RecordJobOperation("create")
	log.Info("Job created successfully",
		zap.Uint("job_id", job.ID),
		zap.Uint("customer_id", job.CustomerID),
		zap.String("status", job.Status))
	return c.JSON(http.StatusCreated, job)
}

// UpdateJob handles updating a job. Moving a job into a completed
// state stamps the completion time; moving it back clears it.
func UpdateJob(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")

	var req JobRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data",
			zap.String("job_id", id),
			zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid request data",
		})
	}
	if msg := req.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	var job model.Job
	result := database.GetDB().First(&job, id)
	if result.Error != nil {
		log.Error("Job not found for update",
			zap.String("job_id", id),
			zap.Error(result.Error))
		return c.JSON(http.StatusNotFound, echo.Map{
			"error": "Job not found",
		})
	}

	wasCompleted := job.IsCompleted()

	job.CustomerID = req.CustomerID
	job.AssignedEmployee = req.AssignedEmployee
	job.ProductName = req.ProductName
	job.ModelNumber = req.ModelNumber
	job.RepairDescription = req.RepairDescription
	if req.Status != "" {
		job.Status = req.Status
	}

	if job.IsCompleted() && !wasCompleted {
		now := time.Now()
		job.CompletedAt = &now
	} else if !job.IsCompleted() && wasCompleted {
		job.CompletedAt = nil
	}

	result = database.GetDB().Save(&job)
	if result.Error != nil {
		log.Error("Failed to update job",
			zap.String("job_id", id),
			zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to update job",
		})
	}

	prometheus.RecordJobOperation("update")
	log.Info("Job updated successfully",
		zap.String("job_id", id),
		zap.String("status", job.Status))
	return c.JSON(http.StatusOK, job)
}

// DeleteJob handles deleting a job (soft delete)
func DeleteJob(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")

	result := database.GetDB().Delete(&model.Job{}, id)
	if result.Error != nil {
		log.Error("Failed to delete job",
			zap.String("job_id", id),
			zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to delete job",
		})
	}
	if result.RowsAffected == 0 {
		return c.JSON(http.StatusNotFound, echo.Map{
			"error": "Job not found",
		})
	}

	prometheus.RecordJobOperation("delete")
	log.Info("Job deleted successfully", zap.String("job_id", id))
	return c.JSON(http.StatusOK, echo.Map{
		"message": "Job deleted successfully",
	})
}

// RecordJobInventoryUsage records parts consumed by a job
func RecordJobInventoryUsage(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")

	var req struct {
		ItemID   uint `json:"inventory_item_id"`
		Quantity int  `json:"quantity_used"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}
	if req.ItemID == 0 || req.Quantity <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "inventory_item_id and a positive quantity_used are required"})
	}

	var job model.Job
	if err := database.GetDB().First(&job, id).Error; err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Job not found"})
	}
	var item model.InventoryItem
	if err := database.GetDB().First(&item, req.ItemID).Error; err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "inventory item does not exist"})
	}

	usage := model.JobUsedInventory{
		JobID:    job.ID,
		ItemID:   req.ItemID,
		Quantity: req.Quantity,
	}
	if err := database.GetDB().Create(&usage).Error; err != nil {
		log.Error("Failed to record inventory usage",
			zap.Uint("job_id", job.ID),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to record inventory usage",
		})
	}

	log.Info("Inventory usage recorded",
		zap.Uint("job_id", job.ID),
		zap.Uint("item_id", req.ItemID),
		zap.Int("quantity", req.Quantity))
	return c.JSON(http.StatusCreated, usage)
}
