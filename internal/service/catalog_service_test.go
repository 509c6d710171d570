package service

import (
	"errors"
	"testing"
	"time"

	"go-pos-ledger/internal/model"
	"go-pos-ledger/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

func newTestCatalog(db *gorm.DB) CatalogService {
	return NewCatalogService(
		repository.NewProductRepo(db),
		repository.NewCustomerRepo(db),
		repository.NewSaleRepo(db),
		db,
		nil,
	)
}

func TestCreateProductDuplicateSKU(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestCatalog(db)
	seedProduct(t, db, "SKU-1", "10.00", 5)

	err := svc.CreateProduct(&model.Product{
		SKU:   "SKU-1",
		Name:  "Duplicate",
		Price: mustDecimal(t, "5.00"),
	}, "user-1", "Alice")
	if !errors.Is(err, ErrSKUExists) {
		t.Fatalf("err = %v, want ErrSKUExists", err)
	}
}

func TestCreateProductValidation(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestCatalog(db)

	tests := []struct {
		name    string
		product model.Product
	}{
		{"missing sku", model.Product{Name: "No SKU", Price: mustDecimal(t, "1.00")}},
		{"missing name", model.Product{SKU: "SKU-X", Price: mustDecimal(t, "1.00")}},
		{"negative price", model.Product{SKU: "SKU-X", Name: "Bad", Price: mustDecimal(t, "-1.00")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := svc.CreateProduct(&tt.product, "user-1", "Alice"); err == nil {
				t.Errorf("CreateProduct accepted invalid input")
			}
		})
	}
}

func TestUpdateProduct(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestCatalog(db)
	product := seedProduct(t, db, "SKU-1", "10.00", 5)

	updated, err := svc.UpdateProduct(product.ID, &model.Product{
		SKU:      "SKU-1",
		Name:     "Renamed",
		Price:    mustDecimal(t, "12.50"),
		Quantity: 8,
	}, "user-2", "Bob")
	if err != nil {
		t.Fatalf("UpdateProduct: %v", err)
	}

	if updated.Name != "Renamed" {
		t.Errorf("name = %q, want Renamed", updated.Name)
	}
	if !updated.Price.Equal(mustDecimal(t, "12.50")) {
		t.Errorf("price = %s, want 12.50", updated.Price)
	}
	if updated.Quantity != 8 {
		t.Errorf("quantity = %d, want 8", updated.Quantity)
	}
	if updated.UpdatedBy != "user-2" {
		t.Errorf("updated_by = %q, want user-2", updated.UpdatedBy)
	}
}

func TestUpdateProductNotFound(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestCatalog(db)

	_, err := svc.UpdateProduct(uuid.New(), &model.Product{SKU: "X", Name: "X"}, "user-1", "Alice")
	if !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("err = %v, want ErrProductNotFound", err)
	}
}

func TestDeleteProductWithSalesRejected(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestCatalog(db)
	product := seedProduct(t, db, "SKU-1", "10.00", 5)
	customer := seedCustomer(t, db, "Bob")
	seedPendingSale(t, db, product.ID, customer.ID, "10.00", "0", time.Now().UTC())

	err := svc.DeleteProduct(product.ID, "user-1", "Alice")
	if !errors.Is(err, ErrProductHasSale) {
		t.Fatalf("err = %v, want ErrProductHasSale", err)
	}
}

func TestDeleteProductUnreferenced(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestCatalog(db)
	product := seedProduct(t, db, "SKU-1", "10.00", 5)

	if err := svc.DeleteProduct(product.ID, "user-1", "Alice"); err != nil {
		t.Fatalf("DeleteProduct: %v", err)
	}

	// Soft-deleted: invisible to catalog reads, still present unscoped
	products, err := svc.GetAllProducts()
	if err != nil {
		t.Fatalf("GetAllProducts: %v", err)
	}
	if len(products) != 0 {
		t.Errorf("products = %d, want 0 after delete", len(products))
	}
	if got := reloadProduct(t, db, product.ID); got.DeletedBy != "user-1" {
		t.Errorf("deleted_by = %q, want user-1", got.DeletedBy)
	}
}

func TestFindOrCreateCustomerIdempotent(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestCatalog(db)

	first, err := svc.FindOrCreateCustomer("Bob", "08123", "user-1")
	if err != nil {
		t.Fatalf("first call: %v", err)
	}
	second, err := svc.FindOrCreateCustomer("Bob", "ignored", "user-1")
	if err != nil {
		t.Fatalf("second call: %v", err)
	}

	if first.ID != second.ID {
		t.Errorf("second call created a new customer")
	}
	if got := countRows(t, db, &model.Customer{}); got != 1 {
		t.Errorf("customer rows = %d, want 1", got)
	}
}

func TestFindOrCreateCustomerEmptyName(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestCatalog(db)

	if _, err := svc.FindOrCreateCustomer("", "", "user-1"); err == nil {
		t.Fatal("empty name accepted")
	}
}
