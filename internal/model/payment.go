package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Payment is the append-only audit trail of money received against a sale.
// Rows never mutate; the sum of a sale's payments equals its amount_paid.
type Payment struct {
	BaseModel
	SaleID uuid.UUID       `gorm:"type:uuid;not null;index" json:"sale_id" validate:"uuid_required"`
	Sale   Sale            `json:"sale" validate:"-"` // Relation - skip validation
	Amount decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"amount" validate:"decimal_positive"`
}
