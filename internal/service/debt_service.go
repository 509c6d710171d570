package service

import (
	"time"

	"go-pos-ledger/internal/model"
	"go-pos-ledger/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OutstandingSale is the read model for one open debt of a customer.
type OutstandingSale struct {
	SaleID      uuid.UUID       `json:"sale_id"`
	CreatedAt   time.Time       `json:"created_at"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	TotalPrice  decimal.Decimal `json:"total_price"`
	AmountPaid  decimal.Decimal `json:"amount_paid"`
	Owed        decimal.Decimal `json:"owed"`
}

// PaymentRecord is one row of a customer's payment history, annotated with
// the product the payment went toward.
type PaymentRecord struct {
	PaymentID   uuid.UUID       `json:"payment_id"`
	SaleID      uuid.UUID       `json:"sale_id"`
	CreatedAt   time.Time       `json:"created_at"`
	Amount      decimal.Decimal `json:"amount"`
	ProductName string          `json:"product_name"`
}

// DebtService is the read side of the ledger: projections over the same
// store the ledger writes to, reflecting the latest committed state.
type DebtService interface {
	ListCustomersWithDebt() ([]model.Customer, error)
	ListOutstandingSales(customerID uuid.UUID) ([]OutstandingSale, error)
	ListPayments(customerID uuid.UUID) ([]PaymentRecord, error)
}

type debtService struct {
	customerRepo repository.CustomerRepository
	saleRepo     repository.SaleRepository
	paymentRepo  repository.PaymentRepository
}

func NewDebtService(
	customerRepo repository.CustomerRepository,
	saleRepo repository.SaleRepository,
	paymentRepo repository.PaymentRepository,
) DebtService {
	return &debtService{
		customerRepo: customerRepo,
		saleRepo:     saleRepo,
		paymentRepo:  paymentRepo,
	}
}

func (s *debtService) ListCustomersWithDebt() ([]model.Customer, error) {
	return s.customerRepo.FindWithPendingSales()
}

func (s *debtService) ListOutstandingSales(customerID uuid.UUID) ([]OutstandingSale, error) {
	if _, err := s.customerRepo.FindByID(customerID); err != nil {
		return nil, ErrCustomerNotFound
	}

	sales, err := s.saleRepo.FindPendingWithProduct(customerID)
	if err != nil {
		return nil, err
	}

	result := make([]OutstandingSale, len(sales))
	for i, sale := range sales {
		result[i] = OutstandingSale{
			SaleID:      sale.ID,
			CreatedAt:   sale.CreatedAt,
			ProductName: sale.Product.Name,
			Quantity:    sale.Quantity,
			TotalPrice:  sale.TotalPrice,
			AmountPaid:  sale.AmountPaid,
			Owed:        sale.Owed(),
		}
	}
	return result, nil
}

func (s *debtService) ListPayments(customerID uuid.UUID) ([]PaymentRecord, error) {
	if _, err := s.customerRepo.FindByID(customerID); err != nil {
		return nil, ErrCustomerNotFound
	}

	payments, err := s.paymentRepo.FindByCustomer(customerID)
	if err != nil {
		return nil, err
	}

	result := make([]PaymentRecord, len(payments))
	for i, payment := range payments {
		result[i] = PaymentRecord{
			PaymentID:   payment.ID,
			SaleID:      payment.SaleID,
			CreatedAt:   payment.CreatedAt,
			Amount:      payment.Amount,
			ProductName: payment.Sale.Product.Name,
		}
	}
	return result, nil
}
