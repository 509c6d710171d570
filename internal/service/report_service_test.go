package service

import (
	"testing"
	"time"

	"go-pos-ledger/internal/repository"

	"gorm.io/gorm"
)

func newTestReport(db *gorm.DB) ReportService {
	return NewReportService(
		repository.NewSaleRepo(db),
		repository.NewProductRepo(db),
	)
}

func TestGetDailySalesTotalCollected(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestReport(db)
	product := seedProduct(t, db, "SKU-1", "10.00", 50)
	customer := seedCustomer(t, db, "Bob")

	today := time.Now().UTC()
	seedPendingSale(t, db, product.ID, customer.ID, "30.00", "30.00", today)
	seedPendingSale(t, db, product.ID, customer.ID, "50.00", "20.00", today)
	// Yesterday's sale stays out of today's report
	seedPendingSale(t, db, product.ID, customer.ID, "99.00", "99.00", today.AddDate(0, 0, -1))

	report, err := svc.GetDailySales(today, nil)
	if err != nil {
		t.Fatalf("GetDailySales: %v", err)
	}

	if len(report.Sales) != 2 {
		t.Fatalf("sales = %d, want 2", len(report.Sales))
	}
	// Collected money, not invoiced: 30 + 20, the unpaid 30 is debt
	if !report.TotalCollected.Equal(mustDecimal(t, "50.00")) {
		t.Errorf("total_collected = %s, want 50.00", report.TotalCollected)
	}
	if report.Date != today.Format("2006-01-02") {
		t.Errorf("date = %q, want %q", report.Date, today.Format("2006-01-02"))
	}
}

func TestGetDailySalesSalespersonFilter(t *testing.T) {
	db := setupTestDB(t)
	ledger := newTestLedger(db)
	svc := newTestReport(db)
	product := seedProduct(t, db, "SKU-1", "10.00", 50)

	if _, err := ledger.RecordSale(&RecordSaleRequest{
		ProductID:      product.ID,
		Quantity:       1,
		Price:          mustDecimal(t, "10.00"),
		AmountTendered: mustDecimal(t, "10.00"),
	}, "seller-a", "Alice"); err != nil {
		t.Fatalf("sale by seller-a: %v", err)
	}
	if _, err := ledger.RecordSale(&RecordSaleRequest{
		ProductID:      product.ID,
		Quantity:       2,
		Price:          mustDecimal(t, "10.00"),
		AmountTendered: mustDecimal(t, "20.00"),
	}, "seller-b", "Bob"); err != nil {
		t.Fatalf("sale by seller-b: %v", err)
	}

	sellerB := "seller-b"
	report, err := svc.GetDailySales(time.Now(), &sellerB)
	if err != nil {
		t.Fatalf("GetDailySales: %v", err)
	}

	if len(report.Sales) != 1 {
		t.Fatalf("sales = %d, want 1 for seller-b", len(report.Sales))
	}
	if !report.TotalCollected.Equal(mustDecimal(t, "20.00")) {
		t.Errorf("total_collected = %s, want 20.00", report.TotalCollected)
	}
}

func TestGetDailySalesEmptyDay(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestReport(db)

	report, err := svc.GetDailySales(time.Now(), nil)
	if err != nil {
		t.Fatalf("GetDailySales: %v", err)
	}
	if len(report.Sales) != 0 {
		t.Errorf("sales = %d, want 0", len(report.Sales))
	}
	if !report.TotalCollected.IsZero() {
		t.Errorf("total_collected = %s, want 0", report.TotalCollected)
	}
}

func TestGetCatalogStats(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestReport(db)

	seedProduct(t, db, "SKU-1", "10.00", 5)  // low stock
	seedProduct(t, db, "SKU-2", "20.00", 30) // healthy

	stats, err := svc.GetCatalogStats()
	if err != nil {
		t.Fatalf("GetCatalogStats: %v", err)
	}

	if stats.TotalProducts != 2 {
		t.Errorf("total_products = %d, want 2", stats.TotalProducts)
	}
	if stats.LowStockCount != 1 {
		t.Errorf("low_stock_count = %d, want 1", stats.LowStockCount)
	}
	// 10*5 + 20*30
	if !stats.TotalValue.Equal(mustDecimal(t, "650.00")) {
		t.Errorf("total_value = %s, want 650.00", stats.TotalValue)
	}
}
