package service

import (
	"time"

	"go-pos-ledger/internal/model"
	"go-pos-ledger/internal/repository"

	"github.com/shopspring/decimal"
)

// DailySalesReport holds one calendar day of sales, newest first, with the
// day's collected total (sum of amount_paid, not of total_price: unpaid
// debt is not money in the till).
type DailySalesReport struct {
	Date           string          `json:"date"`
	Sales          []model.Sale    `json:"sales"`
	TotalCollected decimal.Decimal `json:"total_collected"`
}

type ReportService interface {
	GetDailySales(day time.Time, salespersonID *string) (*DailySalesReport, error)
	GetCatalogStats() (*repository.CatalogStats, error)
}

type reportService struct {
	saleRepo    repository.SaleRepository
	productRepo repository.ProductRepository
}

func NewReportService(saleRepo repository.SaleRepository, productRepo repository.ProductRepository) ReportService {
	return &reportService{saleRepo: saleRepo, productRepo: productRepo}
}

// GetDailySales returns the sales of one day. salespersonID is passed
// explicitly by the caller: a restricted role gets its own id forced in,
// a manager may pass nil to see everyone.
func (s *reportService) GetDailySales(day time.Time, salespersonID *string) (*DailySalesReport, error) {
	sales, err := s.saleRepo.FindByDay(day, salespersonID)
	if err != nil {
		return nil, err
	}

	total := decimal.Zero
	for i := range sales {
		total = total.Add(sales[i].AmountPaid)
	}

	return &DailySalesReport{
		Date:           day.Format("2006-01-02"),
		Sales:          sales,
		TotalCollected: total,
	}, nil
}

func (s *reportService) GetCatalogStats() (*repository.CatalogStats, error) {
	return s.productRepo.GetCatalogStats()
}
