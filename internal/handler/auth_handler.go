package handler

import (
	"net/http"
	"time"

	"github.com/SenudaJK/Software-Development-Project---MN-Electronics-sub000/internal/model"
	"github.com/SenudaJK/Software-Development-Project---MN-Electronics-sub000/pkg/database"
	"github.com/SenudaJK/Software-Development-Project---MN-Electronics-sub000/pkg/jwtutil"
	"github.com/SenudaJK/Software-Development-Project---MN-Electronics-sub000/pkg/logger"
	"github.com/SenudaJK/Software-Development-Project---MN-Electronics-sub000/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Login authenticates an employee and returns their identity with a
// signed token.
func Login(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.LoginCounter.Inc()

	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}

	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse login request", zap.Error(err))
		prometheus.RecordAuthError("invalid_request")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	// The username is the employee's email address
	defer prometheus.TrackDBOperation("query")(time.Now())
	var employee model.Employee
	result := database.GetDB().Where("email = ?", req.Username).First(&employee)
	if result.Error != nil {
		log.Error("Employee not found", zap.String("username", req.Username))
		prometheus.RecordAuthError("user_not_found")
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}

	// Verify password
	if err := bcrypt.CompareHashAndPassword([]byte(employee.Password), []byte(req.Password)); err != nil {
		log.Error("Invalid password", zap.String("username", req.Username))
		prometheus.RecordAuthError("invalid_password")
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}

	token, err := jwtutil.GenerateToken(employee.Email, employee.ID, employee.Role)
	if err != nil {
		log.Error("Failed to generate token", zap.Error(err))
		prometheus.RecordAuthError("token_generation_failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to generate token"})
	}

	log.Info("Employee logged in",
		zap.Uint("employee_id", employee.ID),
		zap.String("role", employee.Role))

	return c.JSON(http.StatusOK, echo.Map{
		"id":       employee.ID,
		"role":     employee.Role,
		"username": employee.Email,
		"token":    token,
	})
}
