package model

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Invoice represents the bill raised against a finished job.
// TotalAmount is always PartsCost + LabourCost; the advance is a
// partial payment already collected, never added to the total.
type Invoice struct {
	ID               uint            `json:"id" gorm:"primarykey"`
	JobID            uint            `json:"job_id" gorm:"index;not null"`
	Job              *Job            `json:"job,omitempty" gorm:"foreignKey:JobID"`
	CustomerID       uint            `json:"customer_id" gorm:"index;not null"`
	OwnerID          uint            `json:"owner_id" gorm:"index"`
	PartsCost        decimal.Decimal `json:"parts_cost" gorm:"type:numeric(12,2)"`
	LabourCost       decimal.Decimal `json:"labour_cost" gorm:"type:numeric(12,2)"`
	AdvanceAmount    decimal.Decimal `json:"advance_amount" gorm:"type:numeric(12,2)"`
	TotalAmount      decimal.Decimal `json:"total_amount" gorm:"type:numeric(12,2)"`
	WarrantyEligible bool            `json:"warranty_eligible" gorm:"default:false"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
	DeletedAt        gorm.DeletedAt  `json:"deleted_at,omitempty" gorm:"index"`
}

// ComputeTotal recalculates TotalAmount from the cost components
func (i *Invoice) ComputeTotal() {
	i.TotalAmount = i.PartsCost.Add(i.LabourCost)
}

// BalanceDue returns the amount still owed after the advance payment
func (i *Invoice) BalanceDue() decimal.Decimal {
	return i.TotalAmount.Sub(i.AdvanceAmount)
}
