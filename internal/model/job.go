package model

import (
	"time"

	"gorm.io/gorm"
)

// Job statuses
const (
	StatusPending          = "Pending"
	StatusInProgress       = "In Progress"
	StatusCompleted        = "Completed"
	StatusCannotRepair     = "Cannot Repair"
	StatusBookingCancelled = "Booking Cancelled"
	StatusPaid             = "Paid"
)

// Job represents a single repair job handed over by a customer
type Job struct {
	ID                uint           `json:"id" gorm:"primarykey"`
	CustomerID        uint           `json:"customer_id" gorm:"index;not null"`
	Customer          *Customer      `json:"customer,omitempty" gorm:"foreignKey:CustomerID"`
	AssignedEmployee  uint           `json:"assigned_employee" gorm:"index"`
	Employee          *Employee      `json:"employee,omitempty" gorm:"foreignKey:AssignedEmployee"`
	ProductName       string         `json:"product_name" gorm:"type:varchar(255);not null"`
	ModelNumber       string         `json:"model_number" gorm:"type:varchar(100)"`
	RepairDescription string         `json:"repair_description" gorm:"type:text;not null"`
	Status            string         `json:"repair_status" gorm:"type:varchar(30);not null;default:'Pending'"`
	HandoverDate      time.Time      `json:"handover_date"`
	CompletedAt       *time.Time     `json:"completed_at,omitempty"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
	DeletedAt         gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}

// ValidStatus reports whether s is a known job status
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted,
		StatusCannotRepair, StatusBookingCancelled, StatusPaid:
		return true
	}
	return false
}

// IsCompleted reports whether the job has been finished by a technician.
// Paid jobs count as completed work for reporting purposes.
func (j *Job) IsCompleted() bool {
	return j.Status == StatusCompleted || j.Status == StatusPaid
}
