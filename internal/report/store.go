package report

import (
	"context"
	"time"

	"github.com/SenudaJK/Software-Development-Project---MN-Electronics-sub000/internal/model"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ItemStock is an inventory item with its derived current quantity and
// the unit cost of its most recent batch.
type ItemStock struct {
	ItemID     uint
	Name       string
	StockLimit int
	Quantity   int
	UnitCost   decimal.Decimal
}

// PartUsage is the total consumption recorded against one item
type PartUsage struct {
	ItemID uint
	Name   string
	Used   int
}

// Store is the read-only record source the report assembler pulls
// from. All range queries treat start as inclusive and end as
// exclusive.
type Store interface {
	JobsInRange(ctx context.Context, start, end time.Time) ([]model.Job, error)
	AllJobs(ctx context.Context) ([]model.Job, error)
	InvoicesInRange(ctx context.Context, start, end time.Time) ([]model.Invoice, error)
	AllInvoices(ctx context.Context) ([]model.Invoice, error)
	Employees(ctx context.Context) ([]model.Employee, error)
	Customers(ctx context.Context) ([]model.Customer, error)
	StockLevels(ctx context.Context) ([]ItemStock, error)
	BatchesInRange(ctx context.Context, start, end time.Time) ([]model.InventoryBatch, error)
	PartsUsage(ctx context.Context) ([]PartUsage, error)
}

// GormStore implements Store on the application database
type GormStore struct {
	db *gorm.DB
}

// NewGormStore wraps the given database handle
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) JobsInRange(ctx context.Context, start, end time.Time) ([]model.Job, error) {
	var jobs []model.Job
	err := s.db.WithContext(ctx).
		Preload("Customer").
		Where("handover_date >= ? AND handover_date < ?", start, end).
		Order("id").
		Find(&jobs).Error
	return jobs, err
}

func (s *GormStore) AllJobs(ctx context.Context) ([]model.Job, error) {
	var jobs []model.Job
	err := s.db.WithContext(ctx).Order("id").Find(&jobs).Error
	return jobs, err
}

func (s *GormStore) InvoicesInRange(ctx context.Context, start, end time.Time) ([]model.Invoice, error) {
	var invoices []model.Invoice
	err := s.db.WithContext(ctx).
		Preload("Job").
		Where("created_at >= ? AND created_at < ?", start, end).
		Order("id").
		Find(&invoices).Error
	return invoices, err
}

func (s *GormStore) AllInvoices(ctx context.Context) ([]model.Invoice, error) {
	var invoices []model.Invoice
	err := s.db.WithContext(ctx).Preload("Job").Order("id").Find(&invoices).Error
	return invoices, err
}

func (s *GormStore) Employees(ctx context.Context) ([]model.Employee, error) {
	var employees []model.Employee
	err := s.db.WithContext(ctx).Order("id").Find(&employees).Error
	return employees, err
}

func (s *GormStore) Customers(ctx context.Context) ([]model.Customer, error) {
	var customers []model.Customer
	err := s.db.WithContext(ctx).Order("id").Find(&customers).Error
	return customers, err
}

// StockLevels derives each item's current quantity as the sum of its
// batch quantities minus everything consumed by jobs. The unit cost is
// taken from the most recent purchase batch.
func (s *GormStore) StockLevels(ctx context.Context) ([]ItemStock, error) {
	var items []model.InventoryItem
	if err := s.db.WithContext(ctx).Order("id").Find(&items).Error; err != nil {
		return nil, err
	}

	type qtyRow struct {
		ItemID uint
		Total  int
	}
	var purchased []qtyRow
	if err := s.db.WithContext(ctx).Model(&model.InventoryBatch{}).
		Select("item_id, COALESCE(SUM(quantity),0) AS total").
		Group("item_id").
		Scan(&purchased).Error; err != nil {
		return nil, err
	}
	var used []qtyRow
	if err := s.db.WithContext(ctx).Model(&model.JobUsedInventory{}).
		Select("item_id, COALESCE(SUM(quantity),0) AS total").
		Group("item_id").
		Scan(&used).Error; err != nil {
		return nil, err
	}

	purchasedByItem := make(map[uint]int, len(purchased))
	for _, row := range purchased {
		purchasedByItem[row.ItemID] = row.Total
	}
	usedByItem := make(map[uint]int, len(used))
	for _, row := range used {
		usedByItem[row.ItemID] = row.Total
	}

	levels := make([]ItemStock, 0, len(items))
	for i := range items {
		item := &items[i]
		var latest model.InventoryBatch
		cost := decimal.Zero
		err := s.db.WithContext(ctx).
			Where("item_id = ?", item.ID).
			Order("purchase_date DESC, id DESC").
			First(&latest).Error
		if err == nil {
			cost = latest.CostPerItem
		} else if err != gorm.ErrRecordNotFound {
			return nil, err
		}
		levels = append(levels, ItemStock{
			ItemID:     item.ID,
			Name:       item.ProductName,
			StockLimit: item.StockLimit,
			Quantity:   purchasedByItem[item.ID] - usedByItem[item.ID],
			UnitCost:   cost,
		})
	}
	return levels, nil
}

func (s *GormStore) BatchesInRange(ctx context.Context, start, end time.Time) ([]model.InventoryBatch, error) {
	var batches []model.InventoryBatch
	err := s.db.WithContext(ctx).
		Where("purchase_date >= ? AND purchase_date < ?", start, end).
		Order("id").
		Find(&batches).Error
	return batches, err
}

func (s *GormStore) PartsUsage(ctx context.Context) ([]PartUsage, error) {
	var usage []PartUsage
	err := s.db.WithContext(ctx).Model(&model.JobUsedInventory{}).
		Select("job_used_inventories.item_id AS item_id, inventory_items.product_name AS name, COALESCE(SUM(job_used_inventories.quantity),0) AS used").
		Joins("JOIN inventory_items ON inventory_items.id = job_used_inventories.item_id").
		Group("job_used_inventories.item_id, inventory_items.product_name").
		Order("used DESC").
		Scan(&usage).Error
	return usage, err
}
