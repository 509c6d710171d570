package repository

import (
	"go-pos-ledger/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ProductRepository interface {
	Create(product *model.Product) error
	FindAll() ([]model.Product, error)
	FindByID(id uuid.UUID) (*model.Product, error)
	FindBySKU(sku string) (*model.Product, error)
	Update(product *model.Product) error
	Delete(id uuid.UUID, deletedBy string) error
	AdjustQuantity(tx *gorm.DB, id uuid.UUID, delta int, updatedBy string) (int64, error)
	GetCatalogStats() (*CatalogStats, error)
}

// CatalogStats for the manager dashboard cards
type CatalogStats struct {
	TotalProducts int64           `json:"total_products"`
	LowStockCount int64           `json:"low_stock_count"`
	TotalValue    decimal.Decimal `json:"total_value"`
}

type productRepo struct {
	db *gorm.DB
}

func NewProductRepo(db *gorm.DB) ProductRepository {
	return &productRepo{db}
}

func (r *productRepo) Create(product *model.Product) error {
	return r.db.Create(product).Error
}

func (r *productRepo) FindAll() ([]model.Product, error) {
	var products []model.Product
	err := r.db.Order("created_at DESC").Find(&products).Error
	return products, err
}

func (r *productRepo) FindByID(id uuid.UUID) (*model.Product, error) {
	var product model.Product
	err := r.db.First(&product, "id = ?", id).Error
	return &product, err
}

func (r *productRepo) FindBySKU(sku string) (*model.Product, error) {
	var product model.Product
	err := r.db.First(&product, "sku = ?", sku).Error
	return &product, err
}

func (r *productRepo) Update(product *model.Product) error {
	return r.db.Save(product).Error
}

func (r *productRepo) Delete(id uuid.UUID, deletedBy string) error {
	if err := r.db.Model(&model.Product{}).Where("id = ?", id).
		Update("deleted_by", deletedBy).Error; err != nil {
		return err
	}
	return r.db.Delete(&model.Product{}, "id = ?", id).Error
}

// AdjustQuantity applies a stock delta inside the caller's transaction. The
// WHERE guard keeps quantity non-negative under concurrent sales: zero rows
// affected means another writer consumed the stock first (or the product is
// gone), and the caller must re-read and decide.
// Unscoped so DeleteSale can restore stock on a soft-deleted product.
func (r *productRepo) AdjustQuantity(tx *gorm.DB, id uuid.UUID, delta int, updatedBy string) (int64, error) {
	res := tx.Unscoped().Model(&model.Product{}).
		Where("id = ? AND quantity + ? >= 0", id, delta).
		Updates(map[string]interface{}{
			"quantity":   gorm.Expr("quantity + ?", delta),
			"updated_by": updatedBy,
		})
	return res.RowsAffected, res.Error
}

func (r *productRepo) GetCatalogStats() (*CatalogStats, error) {
	var stats CatalogStats

	// Total Products
	if err := r.db.Model(&model.Product{}).Count(&stats.TotalProducts).Error; err != nil {
		return nil, err
	}

	// Low Stock Count (quantity < 10)
	if err := r.db.Model(&model.Product{}).Where("quantity < ?", 10).
		Count(&stats.LowStockCount).Error; err != nil {
		return nil, err
	}

	// Total Valuation (SUM of price * quantity)
	var total decimal.NullDecimal
	if err := r.db.Model(&model.Product{}).
		Select("COALESCE(SUM(price * quantity), 0)").
		Scan(&total).Error; err != nil {
		return nil, err
	}
	if total.Valid {
		stats.TotalValue = total.Decimal
	}

	return &stats, nil
}
