package model

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// InventoryItem represents a stocked spare part. Current quantity is
// derived from its batches minus recorded usage, never stored directly.
type InventoryItem struct {
	ID          uint           `json:"id" gorm:"primarykey"`
	ProductName string         `json:"product_name" gorm:"type:varchar(255);not null;unique"`
	StockLimit  int            `json:"stock_limit" gorm:"not null;default:0"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}

// InventoryBatch represents one purchase lot of an inventory item
type InventoryBatch struct {
	ID           uint            `json:"id" gorm:"primarykey"`
	ItemID       uint            `json:"inventory_item_id" gorm:"index;not null"`
	Item         *InventoryItem  `json:"item,omitempty" gorm:"foreignKey:ItemID"`
	Quantity     int             `json:"quantity" gorm:"not null"`
	CostPerItem  decimal.Decimal `json:"cost_per_item" gorm:"type:numeric(12,2)"`
	TotalAmount  decimal.Decimal `json:"total_amount" gorm:"type:numeric(12,2)"`
	PurchaseDate time.Time       `json:"purchase_date"`
	CreatedAt    time.Time       `json:"created_at"`
	DeletedAt    gorm.DeletedAt  `json:"deleted_at,omitempty" gorm:"index"`
}

// ComputeTotal recalculates TotalAmount as quantity x cost per item
func (b *InventoryBatch) ComputeTotal() {
	b.TotalAmount = b.CostPerItem.Mul(decimal.NewFromInt(int64(b.Quantity)))
}

// JobUsedInventory records parts consumed by a repair job
type JobUsedInventory struct {
	ID        uint           `json:"id" gorm:"primarykey"`
	JobID     uint           `json:"job_id" gorm:"index;not null"`
	ItemID    uint           `json:"inventory_item_id" gorm:"index;not null"`
	Item      *InventoryItem `json:"item,omitempty" gorm:"foreignKey:ItemID"`
	Quantity  int            `json:"quantity_used" gorm:"not null"`
	CreatedAt time.Time      `json:"created_at"`
}
