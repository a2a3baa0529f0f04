package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/SenudaJK/Software-Development-Project---MN-Electronics-sub000/internal/model"
	"github.com/SenudaJK/Software-Development-Project---MN-Electronics-sub000/internal/report"
	"github.com/SenudaJK/Software-Development-Project---MN-Electronics-sub000/pkg/database"
	"github.com/SenudaJK/Software-Development-Project---MN-Electronics-sub000/pkg/logger"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// InventoryItemRequest defines the structure for item creation/update requests
type InventoryItemRequest struct {
	ProductName string `json:"product_name" validate:"required"`
	StockLimit  int    `json:"stock_limit"`
}

// InventoryBatchRequest defines the structure for batch registration requests
type InventoryBatchRequest struct {
	Quantity     int             `json:"quantity" validate:"required,gt=0"`
	CostPerItem  decimal.Decimal `json:"cost_per_item" validate:"required"`
	PurchaseDate string          `json:"purchase_date"`
}

// ListInventory handles retrieving all items with their derived stock
// levels and status.
func ListInventory(c echo.Context) error {
	log := logger.FromContext(c)

	store := report.NewGormStore(database.GetDB())
	levels, err := store.StockLevels(c.Request().Context())
	if err != nil {
		log.Error("Failed to list inventory", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to retrieve inventory",
		})
	}

	type entry struct {
		ID          uint   `json:"id"`
		ProductName string `json:"product_name"`
		StockLimit  int    `json:"stock_limit"`
		Quantity    int    `json:"current_quantity"`
		Status      string `json:"status"`
	}
	out := make([]entry, 0, len(levels))
	for _, lvl := range levels {
		out = append(out, entry{
			ID:          lvl.ItemID,
			ProductName: lvl.Name,
			StockLimit:  lvl.StockLimit,
			Quantity:    lvl.Quantity,
			Status:      report.StockStatus(lvl.Quantity, lvl.StockLimit),
		})
	}

	log.Info("Inventory retrieved successfully", zap.Int("count", len(out)))
	return c.JSON(http.StatusOK, out)
}

// GetInventoryItem handles retrieving a single item with its batches
func GetInventoryItem(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")

	var item model.InventoryItem
	if err := database.GetDB().First(&item, id).Error; err != nil {
		log.Error("Inventory item not found",
			zap.String("item_id", id),
			zap.Error(err))
		return c.JSON(http.StatusNotFound, echo.Map{
			"error": "Inventory item not found",
		})
	}

	var batches []model.InventoryBatch
	if err := database.GetDB().Where("item_id = ?", item.ID).Order("purchase_date").Find(&batches).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to retrieve batches",
		})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"item":    item,
		"batches": batches,
	})
}

// CreateInventoryItem handles creating a new inventory item
func CreateInventoryItem(c echo.Context) error {
	log := logger.FromContext(c)

	var req InventoryItemRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid request data",
		})
	}
	if strings.TrimSpace(req.ProductName) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "product_name is required"})
	}
	if req.StockLimit < 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "stock_limit must not be negative"})
	}

	var count int64
	database.GetDB().Model(&model.InventoryItem{}).Where("product_name = ?", req.ProductName).Count(&count)
	if count > 0 {
		return c.JSON(http.StatusConflict, echo.Map{
			"error": "Inventory item with this name already exists",
		})
	}

	item := model.InventoryItem{
		ProductName: req.ProductName,
		StockLimit:  req.StockLimit,
	}
	if err := database.GetDB().Create(&item).Error; err != nil {
		log.Error("Failed to create inventory item", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to create inventory item",
		})
	}

	log.Info("Inventory item created successfully",
		zap.Uint("item_id", item.ID),
		zap.String("product_name", item.ProductName))
	return c.JSON(http.StatusCreated, item)
}

// UpdateInventoryItem handles updating name and reorder threshold
func UpdateInventoryItem(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")

	var req InventoryItemRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}
	if strings.TrimSpace(req.ProductName) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "product_name is required"})
	}
	if req.StockLimit < 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "stock_limit must not be negative"})
	}

	var item model.InventoryItem
	if err := database.GetDB().First(&item, id).Error; err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Inventory item not found"})
	}

	item.ProductName = req.ProductName
	item.StockLimit = req.StockLimit
	if err := database.GetDB().Save(&item).Error; err != nil {
		log.Error("Failed to update inventory item",
			zap.String("item_id", id),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to update inventory item",
		})
	}

	log.Info("Inventory item updated successfully", zap.String("item_id", id))
	return c.JSON(http.StatusOK, item)
}

// DeleteInventoryItem handles deleting an item (soft delete)
func DeleteInventoryItem(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")

	result := database.GetDB().Delete(&model.InventoryItem{}, id)
	if result.Error != nil {
		log.Error("Failed to delete inventory item",
			zap.String("item_id", id),
			zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to delete inventory item",
		})
	}
	if result.RowsAffected == 0 {
		return c.JSON(http.StatusNotFound, echo.Map{
			"error": "Inventory item not found",
		})
	}

	log.Info("Inventory item deleted successfully", zap.String("item_id", id))
	return c.JSON(http.StatusOK, echo.Map{
		"message": "Inventory item deleted successfully",
	})
}

// AddInventoryBatch registers a purchase batch against an item. The
// batch total is always quantity times cost per item.
func AddInventoryBatch(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")

	var req InventoryBatchRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}
	if req.Quantity <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "quantity must be positive"})
	}
	if req.CostPerItem.IsNegative() {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "cost_per_item must not be negative"})
	}

	var item model.InventoryItem
	if err := database.GetDB().First(&item, id).Error; err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Inventory item not found"})
	}

	purchaseDate := time.Now()
	if req.PurchaseDate != "" {
		parsed, err := time.Parse("2006-01-02", req.PurchaseDate)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "purchase_date must be YYYY-MM-DD"})
		}
		purchaseDate = parsed
	}

	batch := model.InventoryBatch{
		ItemID:       item.ID,
		Quantity:     req.Quantity,
		CostPerItem:  req.CostPerItem,
		PurchaseDate: purchaseDate,
	}
	batch.ComputeTotal()

	if err := database.GetDB().Create(&batch).Error; err != nil {
		log.Error("Failed to create inventory batch",
			zap.Uint("item_id", item.ID),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to create inventory batch",
		})
	}

	log.Info("Inventory batch registered",
		zap.Uint("item_id", item.ID),
		zap.Uint("batch_id", batch.ID),
		zap.Int("quantity", batch.Quantity))
	return c.JSON(http.StatusCreated, batch)
}
