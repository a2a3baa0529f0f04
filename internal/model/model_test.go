package model

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestInvoiceComputeTotal(t *testing.T) {
	inv := Invoice{
		PartsCost:     decimal.RequireFromString("1250.50"),
		LabourCost:    decimal.RequireFromString("300.00"),
		AdvanceAmount: decimal.RequireFromString("500.00"),
	}
	inv.ComputeTotal()

	assert.True(t, inv.TotalAmount.Equal(decimal.RequireFromString("1550.50")))
	assert.True(t, inv.BalanceDue().Equal(decimal.RequireFromString("1050.50")))
}

func TestJobIsCompleted(t *testing.T) {
	tests := []struct {
		status string
		want   bool
	}{
		{StatusPending, false},
		{StatusInProgress, false},
		{StatusCompleted, true},
		{StatusPaid, true},
		{StatusCannotRepair, false},
		{StatusBookingCancelled, false},
	}
	for _, tt := range tests {
		j := Job{Status: tt.status}
		assert.Equal(t, tt.want, j.IsCompleted(), tt.status)
	}
}

func TestValidStatus(t *testing.T) {
	assert.True(t, ValidStatus(StatusCompleted))
	assert.True(t, ValidStatus(StatusBookingCancelled))
	assert.False(t, ValidStatus("Done"))
	assert.False(t, ValidStatus(""))
}

func TestValidRole(t *testing.T) {
	assert.True(t, ValidRole(RoleOwner))
	assert.True(t, ValidRole(RoleTechnician))
	assert.False(t, ValidRole("manager"))
}

func TestCustomerFullName(t *testing.T) {
	c := Customer{FirstName: "Amara", LastName: "Perera"}
	assert.Equal(t, "Amara Perera", c.FullName())

	c.LastName = ""
	assert.Equal(t, "Amara", c.FullName())
}
