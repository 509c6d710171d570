package repository

import (
	"go-pos-ledger/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type PaymentRepository interface {
	Create(tx *gorm.DB, payment *model.Payment) error
	FindByCustomer(customerID uuid.UUID) ([]model.Payment, error)
	SumBySale(saleID uuid.UUID) (decimal.Decimal, error)
	DeleteBySale(tx *gorm.DB, saleID uuid.UUID) error
}

type paymentRepo struct {
	db *gorm.DB
}

func NewPaymentRepo(db *gorm.DB) PaymentRepository {
	return &paymentRepo{db}
}

func (r *paymentRepo) Create(tx *gorm.DB, payment *model.Payment) error {
	return tx.Create(payment).Error
}

// FindByCustomer lists every payment made against the customer's sales,
// newest first, with the sale and product preloaded for display. Sales are
// only ever hard-deleted, and DeleteBySale removes their payments in the
// same transaction, so the join cannot surface orphaned rows.
func (r *paymentRepo) FindByCustomer(customerID uuid.UUID) ([]model.Payment, error) {
	var payments []model.Payment
	err := r.db.Preload("Sale").Preload("Sale.Product").
		Joins("JOIN sales ON sales.id = payments.sale_id").
		Where("sales.customer_id = ?", customerID).
		Order("payments.created_at DESC").
		Find(&payments).Error
	return payments, err
}

func (r *paymentRepo) SumBySale(saleID uuid.UUID) (decimal.Decimal, error) {
	var total decimal.NullDecimal
	err := r.db.Model(&model.Payment{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("sale_id = ?", saleID).
		Scan(&total).Error
	if err != nil {
		return decimal.Zero, err
	}
	if !total.Valid {
		return decimal.Zero, nil
	}
	return total.Decimal, nil
}

// DeleteBySale removes the payment audit rows of a deleted sale (cascading
// part of the compensating transaction). Unscoped: the delete is for real.
func (r *paymentRepo) DeleteBySale(tx *gorm.DB, saleID uuid.UUID) error {
	return tx.Unscoped().Where("sale_id = ?", saleID).Delete(&model.Payment{}).Error
}
