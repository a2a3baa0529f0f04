package model

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Employee roles
const (
	RoleOwner      = "owner"
	RoleTechnician = "technician"
)

// Employment types
const (
	EmploymentFullTime = "full-time"
	EmploymentPartTime = "part-time"
	EmploymentContract = "contract"
)

// Employee represents a shop employee (owner or technician)
type Employee struct {
	ID             uint            `json:"id" gorm:"primarykey"`
	Name           string          `json:"name" gorm:"type:varchar(150);not null"`
	Email          string          `json:"email" gorm:"type:varchar(255);unique;not null"`
	Phone          string          `json:"phone_number" gorm:"type:varchar(30)"`
	Role           string          `json:"role" gorm:"type:varchar(20);not null;default:'technician'"`
	EmploymentType string          `json:"employment_type" gorm:"type:varchar(20);not null;default:'full-time'"`
	Salary         decimal.Decimal `json:"salary" gorm:"type:numeric(12,2)"`
	Password       string          `json:"-" gorm:"type:varchar(255);not null"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
	DeletedAt      gorm.DeletedAt  `json:"deleted_at,omitempty" gorm:"index"`
}

// ValidRole reports whether role is one of the known employee roles
func ValidRole(role string) bool {
	return role == RoleOwner || role == RoleTechnician
}

// ValidEmploymentType reports whether t is a known employment type
func ValidEmploymentType(t string) bool {
	switch t {
	case EmploymentFullTime, EmploymentPartTime, EmploymentContract:
		return true
	}
	return false
}
