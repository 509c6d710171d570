package service

import (
	"encoding/json"
	"errors"
	"fmt"

	"go-pos-ledger/internal/model"
	"go-pos-ledger/internal/repository"
	"go-pos-ledger/internal/ws"
	"go-pos-ledger/pkg/validator"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrSKUExists      = errors.New("SKU already exists")
	ErrProductHasSale = errors.New("product has recorded sales and cannot be deleted")
)

type CatalogService interface {
	CreateProduct(req *model.Product, userID, userName string) error
	UpdateProduct(id uuid.UUID, req *model.Product, userID, userName string) (*model.Product, error)
	DeleteProduct(id uuid.UUID, userID, userName string) error
	GetAllProducts() ([]model.Product, error)
	FindOrCreateCustomer(name, phone, userID string) (*model.Customer, error)
	GetAllCustomers() ([]model.Customer, error)
}

type catalogService struct {
	productRepo  repository.ProductRepository
	customerRepo repository.CustomerRepository
	saleRepo     repository.SaleRepository
	db           *gorm.DB
	wsHub        *ws.Hub
}

func NewCatalogService(
	productRepo repository.ProductRepository,
	customerRepo repository.CustomerRepository,
	saleRepo repository.SaleRepository,
	db *gorm.DB,
	hub *ws.Hub,
) CatalogService {
	return &catalogService{
		productRepo:  productRepo,
		customerRepo: customerRepo,
		saleRepo:     saleRepo,
		db:           db,
		wsHub:        hub,
	}
}

func (s *catalogService) CreateProduct(req *model.Product, userID, userName string) error {
	// 1. Basic struct validation
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return fmt.Errorf("validation failed: field '%s' failed on tag '%s'", firstErr.FailedField, firstErr.Tag)
	}

	// 2. SKU dedup (business logic validation)
	existing, _ := s.productRepo.FindBySKU(req.SKU)
	if existing != nil && existing.ID != uuid.Nil {
		return ErrSKUExists
	}

	// 3. Set audit fields
	req.CreatedBy = userID
	req.UpdatedBy = userID
	req.CreatedByUserID = &userID
	req.UpdatedByUserID = &userID

	// 4. Save
	if err := s.productRepo.Create(req); err != nil {
		return err
	}

	// 5. Broadcast so open product grids refresh
	s.broadcastProduct("product_created", req, userID, userName,
		fmt.Sprintf("%s created product '%s'", userName, req.Name))

	return nil
}

func (s *catalogService) UpdateProduct(id uuid.UUID, req *model.Product, userID, userName string) (*model.Product, error) {
	var updated *model.Product

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var existing model.Product
		if err := tx.First(&existing, "id = ?", id).Error; err != nil {
			return ErrProductNotFound
		}

		// Plain catalog edit: name, sku, price, description, quantity.
		// Quantity changes here are restocks/corrections, not sales.
		existing.Name = req.Name
		existing.SKU = req.SKU
		existing.Description = req.Description
		existing.Price = req.Price
		existing.Quantity = req.Quantity
		existing.UpdatedBy = userID
		existing.UpdatedByUserID = &userID

		if err := tx.Save(&existing).Error; err != nil {
			return err
		}

		updated = &existing
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.broadcastProduct("product_updated", updated, userID, userName,
		fmt.Sprintf("%s updated product '%s'", userName, updated.Name))

	return updated, nil
}

// DeleteProduct soft-deletes a catalog entry. A product referenced by any
// sale is kept so existing sale and payment rows stay resolvable.
func (s *catalogService) DeleteProduct(id uuid.UUID, userID, userName string) error {
	product, err := s.productRepo.FindByID(id)
	if err != nil {
		return ErrProductNotFound
	}

	referenced, err := s.saleRepo.ExistsForProduct(id)
	if err != nil {
		return err
	}
	if referenced {
		return ErrProductHasSale
	}

	if err := s.productRepo.Delete(id, userID); err != nil {
		return err
	}

	s.broadcastProduct("product_deleted", product, userID, userName,
		fmt.Sprintf("%s deleted product '%s'", userName, product.Name))

	return nil
}

func (s *catalogService) GetAllProducts() ([]model.Product, error) {
	return s.productRepo.FindAll()
}

func (s *catalogService) FindOrCreateCustomer(name, phone, userID string) (*model.Customer, error) {
	if name == "" {
		return nil, errors.New("customer name is required")
	}
	return s.customerRepo.FindOrCreate(name, phone, userID)
}

func (s *catalogService) GetAllCustomers() ([]model.Customer, error) {
	return s.customerRepo.FindAll()
}

func (s *catalogService) broadcastProduct(action string, product *model.Product, userID, userName, message string) {
	if s.wsHub == nil {
		return
	}
	go func() {
		payload := map[string]interface{}{
			"type":   "ledger_update",
			"action": action,
			"product": map[string]interface{}{
				"id":       product.ID,
				"sku":      product.SKU,
				"name":     product.Name,
				"quantity": product.Quantity,
				"price":    product.Price,
			},
			"user": map[string]interface{}{
				"id":   userID,
				"name": userName,
			},
			"message": message,
		}
		msg, _ := json.Marshal(payload)
		s.wsHub.Broadcast <- msg
	}()
}
