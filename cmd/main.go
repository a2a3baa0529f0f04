package main

import (
	"github.com/SenudaJK/Software-Development-Project---MN-Electronics-sub000/internal/handler"
	mid "github.com/SenudaJK/Software-Development-Project---MN-Electronics-sub000/internal/middleware"
	"github.com/SenudaJK/Software-Development-Project---MN-Electronics-sub000/internal/report"
	"github.com/SenudaJK/Software-Development-Project---MN-Electronics-sub000/internal/scheduler"
	"github.com/SenudaJK/Software-Development-Project---MN-Electronics-sub000/pkg/config"
	"github.com/SenudaJK/Software-Development-Project---MN-Electronics-sub000/pkg/database"
	"github.com/SenudaJK/Software-Development-Project---MN-Electronics-sub000/pkg/jwtutil"
	"github.com/SenudaJK/Software-Development-Project---MN-Electronics-sub000/pkg/logger"
	"github.com/SenudaJK/Software-Development-Project---MN-Electronics-sub000/prometheus"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		// Can't use structured logger yet since it's not initialized
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	logger.InitLogger(appConfig)
	log := logger.GetLogger()
	defer log.Sync()

	log.Info("Starting repair shop service",
		zap.String("environment", appConfig.Server.Env),
		zap.String("port", appConfig.Server.Port))

	// Initialize JWT utility
	jwtutil.Initialize(&appConfig.JWT)
	log.Info("JWT utility initialized")

	// Initialize Prometheus metrics
	prometheus.InitMetrics(appConfig)
	log.Info("Prometheus metrics initialized",
		zap.String("metrics_prefix", appConfig.Metrics.Prefix))

	// Initialize database
	err = database.InitDB(appConfig)
	if err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}
	log.Info("Database connection established")

	// Report layer over the application database
	reportStore := report.NewGormStore(database.GetDB())
	reportHandler := handler.NewReportHandler(reportStore, appConfig.Shop)

	// Background stock monitor
	stockMonitor := scheduler.NewStockMonitor(reportStore, log)
	stockMonitor.Start()
	defer stockMonitor.Stop()

	// Initialize Echo instance
	e := echo.New()

	// Middleware
	e.Use(middleware.Recover())
	e.Use(mid.RequestIDMiddleware)
	e.Use(mid.MetricsMiddleware)

	// Metrics endpoint
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Health check endpoint
	e.GET("/health", handler.Health)

	// Authentication
	e.POST("/api/login", handler.Login)

	// Customer API routes
	customerAPI := e.Group("/api/customers", mid.AuthMiddleware)
	customerAPI.GET("", handler.ListCustomers)
	customerAPI.GET("/:id", handler.GetCustomer)
	customerAPI.POST("", handler.CreateCustomer)
	customerAPI.PUT("/:id", handler.UpdateCustomer)
	customerAPI.DELETE("/:id", handler.DeleteCustomer)

	// Employee API routes - management restricted to the owner
	employeeAPI := e.Group("/api/employees", mid.AuthMiddleware)
	employeeAPI.GET("", handler.ListEmployees)
	employeeAPI.GET("/:id", handler.GetEmployee)
	employeeAPI.POST("", handler.CreateEmployee, mid.OwnerOnly)
	employeeAPI.PUT("/:id", handler.UpdateEmployee, mid.OwnerOnly)
	employeeAPI.DELETE("/:id", handler.DeleteEmployee, mid.OwnerOnly)

	// Job API routes
	jobAPI := e.Group("/api/jobs", mid.AuthMiddleware)
	jobAPI.GET("", handler.ListJobs)
	jobAPI.GET("/:id", handler.GetJob)
	jobAPI.POST("", handler.CreateJob)
	jobAPI.PUT("/:id", handler.UpdateJob)
	jobAPI.DELETE("/:id", handler.DeleteJob)
	jobAPI.POST("/:id/inventory", handler.RecordJobInventoryUsage)

	// Inventory API routes
	inventoryAPI := e.Group("/api/inventory", mid.AuthMiddleware)
	inventoryAPI.GET("", handler.ListInventory)
	inventoryAPI.GET("/:id", handler.GetInventoryItem)
	inventoryAPI.POST("", handler.CreateInventoryItem)
	inventoryAPI.PUT("/:id", handler.UpdateInventoryItem)
	inventoryAPI.DELETE("/:id", handler.DeleteInventoryItem)
	inventoryAPI.POST("/:id/batches", handler.AddInventoryBatch)

	// Invoice API routes
	invoiceAPI := e.Group("/api/invoices", mid.AuthMiddleware)
	invoiceAPI.GET("", handler.ListInvoices)
	invoiceAPI.GET("/:id", handler.GetInvoice)
	invoiceAPI.POST("", handler.CreateInvoice)
	invoiceAPI.PUT("/:id", handler.UpdateInvoice)
	invoiceAPI.DELETE("/:id", handler.DeleteInvoice)

	// Report API routes
	reportAPI := e.Group("/api/reports", mid.AuthMiddleware)
	reportAPI.GET("/overview", reportHandler.Overview)
	reportAPI.GET("/financial", reportHandler.Financial)
	reportAPI.GET("/inventory", reportHandler.Inventory)
	reportAPI.GET("/performance", reportHandler.Performance)
	reportAPI.GET("/customer", reportHandler.Customer)
	reportAPI.GET("/:kind/export", reportHandler.Export)

	// Start server
	port := appConfig.Server.Port
	log.Info("Starting server", zap.String("port", port))
	if err := e.Start(":" + port); err != nil {
		log.Fatal("Server error", zap.Error(err))
	}
}
