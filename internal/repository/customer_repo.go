package repository

import (
	"errors"

	"go-pos-ledger/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CustomerRepository interface {
	FindAll() ([]model.Customer, error)
	FindByID(id uuid.UUID) (*model.Customer, error)
	FindOrCreate(name, phone, createdBy string) (*model.Customer, error)
	FindWithPendingSales() ([]model.Customer, error)
}

type customerRepo struct {
	db *gorm.DB
}

func NewCustomerRepo(db *gorm.DB) CustomerRepository {
	return &customerRepo{db}
}

func (r *customerRepo) FindAll() ([]model.Customer, error) {
	var customers []model.Customer
	err := r.db.Order("name ASC").Find(&customers).Error
	return customers, err
}

func (r *customerRepo) FindByID(id uuid.UUID) (*model.Customer, error) {
	var customer model.Customer
	err := r.db.First(&customer, "id = ?", id).Error
	return &customer, err
}

// FindOrCreate resolves a customer by name, creating the record on demand
// during a credit sale.
func (r *customerRepo) FindOrCreate(name, phone, createdBy string) (*model.Customer, error) {
	var customer model.Customer
	err := r.db.Where("name = ?", name).First(&customer).Error
	if err == nil {
		return &customer, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	customer = model.Customer{Name: name, Phone: phone}
	customer.CreatedBy = createdBy
	customer.UpdatedBy = createdBy
	if err := r.db.Create(&customer).Error; err != nil {
		return nil, err
	}
	return &customer, nil
}

// FindWithPendingSales lists customers holding at least one pending sale,
// de-duplicated by customer id. No deleted_at guard on the join: sales are
// only ever hard-deleted.
func (r *customerRepo) FindWithPendingSales() ([]model.Customer, error) {
	var customers []model.Customer
	err := r.db.
		Joins("JOIN sales ON sales.customer_id = customers.id").
		Where("sales.status = ?", model.SalePending).
		Distinct("customers.*").
		Order("customers.name ASC").
		Find(&customers).Error
	return customers, err
}
