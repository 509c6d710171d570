package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type SaleStatus string

const (
	SalePending SaleStatus = "pending" // amount_paid < total_price, the remainder is a debt
	SalePaid    SaleStatus = "paid"    // amount_paid == total_price
)

// Sale is the unit of debt: the owed amount is always TotalPrice - AmountPaid.
// CustomerID is nil for a plain cash sale; a pending sale must carry one.
type Sale struct {
	BaseModel
	ProductID  uuid.UUID  `gorm:"type:uuid;not null;index" json:"product_id" validate:"uuid_required"`
	Product    Product    `json:"product" validate:"-"` // Relation - skip validation
	CustomerID *uuid.UUID `gorm:"type:uuid;index" json:"customer_id,omitempty"`
	Customer   *Customer  `json:"customer,omitempty" validate:"-"`

	Quantity   int             `gorm:"not null" json:"quantity" validate:"required,gt=0"`
	TotalPrice decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total_price"` // Snapshot quantity * unit price, immutable
	AmountPaid decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"amount_paid"`
	Status     SaleStatus      `gorm:"type:varchar(10);not null;index" json:"status" validate:"-"`

	// User tracking
	SalespersonID *string `gorm:"type:varchar(255)" json:"salesperson_id,omitempty"`
	Salesperson   *User   `gorm:"foreignKey:SalespersonID;references:ID" json:"salesperson,omitempty"`

	// Relations
	Payments []Payment `json:"payments,omitempty"`
}

// Owed returns the unpaid remainder of the sale.
func (s *Sale) Owed() decimal.Decimal {
	return s.TotalPrice.Sub(s.AmountPaid)
}

// StatusFor derives the sale status from a paid amount, keeping invariant
// "paid iff amount_paid == total_price" in one place.
func (s *Sale) StatusFor(amountPaid decimal.Decimal) SaleStatus {
	if amountPaid.GreaterThanOrEqual(s.TotalPrice) {
		return SalePaid
	}
	return SalePending
}
