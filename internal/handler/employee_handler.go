package handler

import (
	"net/http"
	"strings"

	"github.com/SenudaJK/Software-Development-Project---MN-Electronics-sub000/internal/model"
	"github.com/SenudaJK/Software-Development-Project---MN-Electronics-sub000/pkg/database"
	"github.com/SenudaJK/Software-Development-Project---MN-Electronics-sub000/pkg/logger"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// EmployeeRequest defines the structure for employee creation/update requests
type EmployeeRequest struct {
	Name           string          `json:"name" validate:"required"`
	Email          string          `json:"email" validate:"required,email"`
	Phone          string          `json:"phone_number"`
	Role           string          `json:"role"`
	EmploymentType string          `json:"employment_type"`
	Salary         decimal.Decimal `json:"salary"`
	Password       string          `json:"password"`
}

func (r *EmployeeRequest) validate(creating bool) string {
	if strings.TrimSpace(r.Name) == "" {
		return "name is required"
	}
	if !strings.Contains(r.Email, "@") {
		return "email is invalid"
	}
	if r.Role != "" && !model.ValidRole(r.Role) {
		return "role must be owner or technician"
	}
	if r.EmploymentType != "" && !model.ValidEmploymentType(r.EmploymentType) {
		return "employment_type must be full-time, part-time or contract"
	}
	if r.Salary.IsNegative() {
		return "salary must not be negative"
	}
	if creating && len(r.Password) < 6 {
		return "password must be at least 6 characters"
	}
	return ""
}

// ListEmployees handles retrieving all employees with optional role filtering
func ListEmployees(c echo.Context) error {
	log := logger.FromContext(c)

	var employees []model.Employee
	query := database.GetDB()
	if role := c.QueryParam("role"); role != "" {
		query = query.Where("role = ?", role)
	}

	result := query.Order("id").Find(&employees)
	if result.Error != nil {
		log.Error("Failed to list employees", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to retrieve employees",
		})
	}

	log.Info("Employees retrieved successfully", zap.Int("count", len(employees)))
	return c.JSON(http.StatusOK, employees)
}

// GetEmployee handles retrieving a single employee by ID
func GetEmployee(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")

	var employee model.Employee
	result := database.GetDB().First(&employee, id)
	if result.Error != nil {
		log.Error("Employee not found",
			zap.String("employee_id", id),
			zap.Error(result.Error))
		return c.JSON(http.StatusNotFound, echo.Map{
			"error": "Employee not found",
		})
	}

	return c.JSON(http.StatusOK, employee)
}

// CreateEmployee handles creating a new employee
func CreateEmployee(c echo.Context) error {
	log := logger.FromContext(c)

	var req EmployeeRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid request data",
		})
	}
	if msg := req.validate(true); msg != "" {
		log.Warn("Employee validation failed", zap.String("reason", msg))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	var count int64
	database.GetDB().Model(&model.Employee{}).Where("email = ?", req.Email).Count(&count)
	if count > 0 {
		log.Warn("Employee with this email already exists", zap.String("email", req.Email))
		return c.JSON(http.StatusConflict, echo.Map{
			"error": "Employee with this email already exists",
		})
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Error("Failed to hash password", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to create employee",
		})
	}

	role := req.Role
	if role == "" {
		role = model.RoleTechnician
	}
	employmentType := req.EmploymentType
	if employmentType == "" {
		employmentType = model.EmploymentFullTime
	}

	employee := model.Employee{
		Name:           req.Name,
		Email:          req.Email,
		Phone:          req.Phone,
		Role:           role,
		EmploymentType: employmentType,
		Salary:         req.Salary,
		Password:       string(hash),
	}

	result := database.GetDB().Create(&employee)
	if result.Error != nil {
		log.Error("Failed to create employee",
			zap.String("email", req.Email),
			zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to create employee",
		})
	}

	log.Info("Employee created successfully",
		zap.Uint("employee_id", employee.ID),
		zap.String("role", employee.Role))
	return c.JSON(http.StatusCreated, employee)
}

// UpdateEmployee handles updating an existing employee
func UpdateEmployee(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")

	var req EmployeeRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data",
			zap.String("employee_id", id),
			zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid request data",
		})
	}
	if msg := req.validate(false); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	var employee model.Employee
	result := database.GetDB().First(&employee, id)
	if result.Error != nil {
		log.Error("Employee not found for update",
			zap.String("employee_id", id),
			zap.Error(result.Error))
		return c.JSON(http.StatusNotFound, echo.Map{
			"error": "Employee not found",
		})
	}

	if req.Email != employee.Email {
		var count int64
		database.GetDB().Model(&model.Employee{}).Where("email = ? AND id != ?", req.Email, id).Count(&count)
		if count > 0 {
			return c.JSON(http.StatusConflict, echo.Map{
				"error": "Employee with this email already exists",
			})
		}
	}

	employee.Name = req.Name
	employee.Email = req.Email
	employee.Phone = req.Phone
	if req.Role != "" {
		employee.Role = req.Role
	}
	if req.EmploymentType != "" {
		employee.EmploymentType = req.EmploymentType
	}
	employee.Salary = req.Salary
	if req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			log.Error("Failed to hash password", zap.Error(err))
			return c.JSON(http.StatusInternalServerError, echo.Map{
				"error": "Failed to update employee",
			})
		}
		employee.Password = string(hash)
	}

	result = database.GetDB().Save(&employee)
	if result.Error != nil {
		log.Error("Failed to update employee",
			zap.String("employee_id", id),
			zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to update employee",
		})
	}

	log.Info("Employee updated successfully", zap.String("employee_id", id))
	return c.JSON(http.StatusOK, employee)
}

// DeleteEmployee handles deleting an employee (soft delete)
func DeleteEmployee(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")

	result := database.GetDB().Delete(&model.Employee{}, id)
	if result.Error != nil {
		log.Error("Failed to delete employee",
			zap.String("employee_id", id),
			zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to delete employee",
		})
	}
	if result.RowsAffected == 0 {
		return c.JSON(http.StatusNotFound, echo.Map{
			"error": "Employee not found",
		})
	}

	log.Info("Employee deleted successfully", zap.String("employee_id", id))
	return c.JSON(http.StatusOK, echo.Map{
		"message": "Employee deleted successfully",
	})
}
