package repository

import (
	"time"

	"go-pos-ledger/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type SaleRepository interface {
	Create(tx *gorm.DB, sale *model.Sale) error
	FindByID(id uuid.UUID) (*model.Sale, error)
	FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.Sale, error)
	FindPendingByCustomer(tx *gorm.DB, customerID uuid.UUID) ([]model.Sale, error)
	FindPendingWithProduct(customerID uuid.UUID) ([]model.Sale, error)
	FindByDay(day time.Time, salespersonID *string) ([]model.Sale, error)
	ApplyPayment(tx *gorm.DB, saleID uuid.UUID, previousPaid, newPaid decimal.Decimal, status model.SaleStatus) (int64, error)
	HardDelete(tx *gorm.DB, saleID uuid.UUID) error
	ExistsForProduct(productID uuid.UUID) (bool, error)
}

type saleRepo struct {
	db *gorm.DB
}

func NewSaleRepo(db *gorm.DB) SaleRepository {
	return &saleRepo{db}
}

func (r *saleRepo) Create(tx *gorm.DB, sale *model.Sale) error {
	return tx.Create(sale).Error
}

func (r *saleRepo) FindByID(id uuid.UUID) (*model.Sale, error) {
	var sale model.Sale
	err := r.db.Preload("Product").Preload("Customer").Preload("Payments").
		First(&sale, "id = ?", id).Error
	return &sale, err
}

func (r *saleRepo) FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.Sale, error) {
	var sale model.Sale
	err := tx.First(&sale, "id = ?", id).Error
	return &sale, err
}

// FindPendingByCustomer returns the customer's open debts oldest first, the
// order customer payments are allocated in (FIFO).
func (r *saleRepo) FindPendingByCustomer(tx *gorm.DB, customerID uuid.UUID) ([]model.Sale, error) {
	var sales []model.Sale
	err := tx.
		Where("customer_id = ? AND status = ?", customerID, model.SalePending).
		Order("created_at ASC").
		Find(&sales).Error
	return sales, err
}

// FindPendingWithProduct is the read-side variant of the pending query,
// with products preloaded for display.
func (r *saleRepo) FindPendingWithProduct(customerID uuid.UUID) ([]model.Sale, error) {
	var sales []model.Sale
	err := r.db.Preload("Product").
		Where("customer_id = ? AND status = ?", customerID, model.SalePending).
		Order("created_at ASC").
		Find(&sales).Error
	return sales, err
}

func (r *saleRepo) FindByDay(day time.Time, salespersonID *string) ([]model.Sale, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	end := start.AddDate(0, 0, 1)

	query := r.db.Preload("Product").Preload("Customer").
		Where("created_at >= ? AND created_at < ?", start, end).
		Order("created_at DESC")
	if salespersonID != nil {
		query = query.Where("salesperson_id = ?", *salespersonID)
	}

	var sales []model.Sale
	err := query.Find(&sales).Error
	return sales, err
}

// ApplyPayment moves amount_paid from previousPaid to newPaid with a
// compare-and-swap guard on the value the caller read. Zero rows affected
// means a concurrent payment landed in between; the caller must roll back
// and retry from a fresh read so no update is lost.
func (r *saleRepo) ApplyPayment(tx *gorm.DB, saleID uuid.UUID, previousPaid, newPaid decimal.Decimal, status model.SaleStatus) (int64, error) {
	res := tx.Model(&model.Sale{}).
		Where("id = ? AND amount_paid = ?", saleID, previousPaid).
		Updates(map[string]interface{}{
			"amount_paid": newPaid,
			"status":      status,
		})
	return res.RowsAffected, res.Error
}

// HardDelete removes the sale row for real (no soft-delete ghost); the
// ledger's DeleteSale is a destructive administrative override.
func (r *saleRepo) HardDelete(tx *gorm.DB, saleID uuid.UUID) error {
	return tx.Unscoped().Delete(&model.Sale{}, "id = ?", saleID).Error
}

func (r *saleRepo) ExistsForProduct(productID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.Model(&model.Sale{}).Where("product_id = ?", productID).Count(&count).Error
	return count > 0, err
}
