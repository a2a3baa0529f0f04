package model

import (
	"time"

	"gorm.io/gorm"
)

// Customer represents a repair-shop customer
type Customer struct {
	ID        uint           `json:"id" gorm:"primarykey"`
	FirstName string         `json:"firstName" gorm:"type:varchar(100);not null"`
	LastName  string         `json:"lastName" gorm:"type:varchar(100)"`
	Email     string         `json:"email" gorm:"type:varchar(255);unique"`
	Phone     string         `json:"phone_number" gorm:"type:varchar(30)"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}

// FullName returns the customer's display name
func (c *Customer) FullName() string {
	if c.LastName == "" {
		return c.FirstName
	}
	return c.FirstName + " " + c.LastName
}
