package handler

import (
	"net/http"
	"strings"

	"github.com/SenudaJK/Software-Development-Project---MN-Electronics-sub000/internal/model"
	"github.com/SenudaJK/Software-Development-Project---MN-Electronics-sub000/pkg/database"
	"github.com/SenudaJK/Software-Development-Project---MN-Electronics-sub000/pkg/logger"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// CustomerRequest defines the structure for customer creation/update requests
type CustomerRequest struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone_number"`
}

func (r *CustomerRequest) validate() string {
	if strings.TrimSpace(r.FirstName) == "" {
		return "firstName is required"
	}
	if r.Email != "" && !strings.Contains(r.Email, "@") {
		return "email is invalid"
	}
	return ""
}

// ListCustomers handles retrieving all customers with optional name filtering
func ListCustomers(c echo.Context) error {
	log := logger.FromContext(c)

	db := database.GetDB()
	var customers []model.Customer

	query := db
	if search := c.QueryParam("search"); search != "" {
		like := "%" + search + "%"
		query = query.Where("first_name ILIKE ? OR last_name ILIKE ? OR email ILIKE ?", like, like, like)
	}

	result := query.Order("id").Find(&customers)
	if result.Error != nil {
		log.Error("Failed to list customers", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to retrieve customers",
		})
	}

	log.Info("Customers retrieved successfully", zap.Int("count", len(customers)))
	return c.JSON(http.StatusOK, customers)
}

// GetCustomer handles retrieving a single customer by ID
func GetCustomer(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")

	var customer model.Customer
	result := database.GetDB().First(&customer, id)
	if result.Error != nil {
		log.Error("Customer not found",
			zap.String("customer_id", id),
			zap.Error(result.Error))
		return c.JSON(http.StatusNotFound, echo.Map{
			"error": "Customer not found",
		})
	}

	return c.JSON(http.StatusOK, customer)
}

// CreateCustomer handles creating a new customer
func CreateCustomer(c echo.Context) error {
	log := logger.FromContext(c)

	var req CustomerRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid request data",
		})
	}
	if msg := req.validate(); msg != "" {
		log.Warn("Customer validation failed", zap.String("reason", msg))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	// Check for duplicate email
	if req.Email != "" {
		var count int64
		database.GetDB().Model(&model.Customer{}).Where("email = ?", req.Email).Count(&count)
		if count > 0 {
			log.Warn("Customer with this email already exists", zap.String("email", req.Email))
			return c.JSON(http.StatusConflict, echo.Map{
				"error": "Customer with this email already exists",
			})
		}
	}

	customer := model.Customer{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
	}

	result := database.GetDB().Create(&customer)
	if result.Error != nil {
		log.Error("Failed to create customer",
			zap.String("email", req.Email),
			zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to create customer",
		})
	}

	log.Info("Customer created successfully",
		zap.Uint("customer_id", customer.ID),
		zap.String("name", customer.FullName()))
	return c.JSON(http.StatusCreated, customer)
}

// UpdateCustomer handles updating an existing customer
func UpdateCustomer(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")

	var req CustomerRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data",
			zap.String("customer_id", id),
			zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid request data",
		})
	}
	if msg := req.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	var customer model.Customer
	result := database.GetDB().First(&customer, id)
	if result.Error != nil {
		log.Error("Customer not found for update",
			zap.String("customer_id", id),
			zap.Error(result.Error))
		return c.JSON(http.StatusNotFound, echo.Map{
			"error": "Customer not found",
		})
	}

	if req.Email != "" && req.Email != customer.Email {
		var count int64
		database.GetDB().Model(&model.Customer{}).Where("email = ? AND id != ?", req.Email, id).Count(&count)
		if count > 0 {
			return c.JSON(http.StatusConflict, echo.Map{
				"error": "Customer with this email already exists",
			})
		}
	}

	customer.FirstName = req.FirstName
	customer.LastName = req.LastName
	customer.Email = req.Email
	customer.Phone = req.Phone

	result = database.GetDB().Save(&customer)
	if result.Error != nil {
		log.Error("Failed to update customer",
			zap.String("customer_id", id),
			zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to update customer",
		})
	}

	log.Info("Customer updated successfully", zap.String("customer_id", id))
	return c.JSON(http.StatusOK, customer)
}

// DeleteCustomer handles deleting a customer (soft delete)
func DeleteCustomer(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")

	result := database.GetDB().Delete(&model.Customer{}, id)
	if result.Error != nil {
		log.Error("Failed to delete customer",
			zap.String("customer_id", id),
			zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to delete customer",
		})
	}
	if result.RowsAffected == 0 {
		return c.JSON(http.StatusNotFound, echo.Map{
			"error": "Customer not found",
		})
	}

	log.Info("Customer deleted successfully", zap.String("customer_id", id))
	return c.JSON(http.StatusOK, echo.Map{
		"message": "Customer deleted successfully",
	})
}
