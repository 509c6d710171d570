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
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Error definitions
var (
	ErrProductNotFound      = errors.New("product not found")
	ErrCustomerNotFound     = errors.New("customer not found")
	ErrInsufficientStock    = errors.New("insufficient stock remaining")
	ErrMissingCustomer      = errors.New("credit sale requires a customer")
	ErrSaleNotFound         = errors.New("sale not found")
	ErrNoOutstandingDebt    = errors.New("no outstanding debt")
	ErrInvalidPaymentAmount = errors.New("payment amount must be greater than zero")
	ErrTransientConflict    = errors.New("transaction conflict, please retry")
)

// errStaleRow signals that a compare-and-swap write lost against a
// concurrent transaction; the enclosing transaction rolls back and the
// operation is retried from a fresh read.
var errStaleRow = errors.New("row changed by a concurrent transaction")

// maxTxRetries bounds internal retries before ErrTransientConflict is
// surfaced to the caller. No operation blocks indefinitely.
const maxTxRetries = 3

type RecordSaleRequest struct {
	ProductID      uuid.UUID       `json:"product_id" validate:"uuid_required"`
	Quantity       int             `json:"quantity" validate:"required,gt=0"`
	Price          decimal.Decimal `json:"price" validate:"decimal_nonneg"` // Unit price charged, normally the catalog price
	CustomerID     *uuid.UUID      `json:"customer_id"`
	AmountTendered decimal.Decimal `json:"amount_tendered" validate:"decimal_nonneg"`
}

// PaymentAllocation reports how much of a customer payment landed on one sale.
type PaymentAllocation struct {
	SaleID uuid.UUID       `json:"sale_id"`
	Amount decimal.Decimal `json:"amount"`
}

type LedgerService interface {
	RecordSale(req *RecordSaleRequest, userID, userName string) (*model.Sale, error)
	RecordItemPayment(saleID uuid.UUID, amount decimal.Decimal, userID, userName string) (decimal.Decimal, error)
	RecordCustomerPayment(customerID uuid.UUID, amount decimal.Decimal, userID, userName string) ([]PaymentAllocation, error)
	DeleteSale(saleID uuid.UUID, userID, userName string) error
}

type ledgerService struct {
	productRepo  repository.ProductRepository
	customerRepo repository.CustomerRepository
	saleRepo     repository.SaleRepository
	paymentRepo  repository.PaymentRepository
	db           *gorm.DB
	wsHub        *ws.Hub
}

func NewLedgerService(
	productRepo repository.ProductRepository,
	customerRepo repository.CustomerRepository,
	saleRepo repository.SaleRepository,
	paymentRepo repository.PaymentRepository,
	db *gorm.DB,
	hub *ws.Hub,
) LedgerService {
	return &ledgerService{
		productRepo:  productRepo,
		customerRepo: customerRepo,
		saleRepo:     saleRepo,
		paymentRepo:  paymentRepo,
		db:           db,
		wsHub:        hub,
	}
}

// runWithRetry executes fn as one atomic transaction, retrying a bounded
// number of times when a compare-and-swap guard reports a stale read.
func (s *ledgerService) runWithRetry(fn func(tx *gorm.DB) error) error {
	var err error
	for attempt := 0; attempt < maxTxRetries; attempt++ {
		err = s.db.Transaction(fn)
		if !errors.Is(err, errStaleRow) {
			return err
		}
	}
	return ErrTransientConflict
}

func (s *ledgerService) RecordSale(req *RecordSaleRequest, userID, userName string) (*model.Sale, error) {
	// 1. Validate input (fail fast, before any mutation)
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return nil, fmt.Errorf("validation failed: field '%s' failed on tag '%s'", firstErr.FailedField, firstErr.Tag)
	}

	// 2. Derive the money side of the sale. total_price is a snapshot of
	// quantity * unit price and never recomputed afterwards.
	total := req.Price.Mul(decimal.NewFromInt(int64(req.Quantity)))
	paid := decimal.Min(req.AmountTendered, total)

	// 3. An underpaid sale is a debt and must be attributable to a customer
	if paid.LessThan(total) && req.CustomerID == nil {
		return nil, ErrMissingCustomer
	}

	var sale *model.Sale

	// 4. Atomic unit: stock check, stock decrement, sale insert, payment insert
	err := s.runWithRetry(func(tx *gorm.DB) error {
		var product model.Product
		if err := tx.First(&product, "id = ?", req.ProductID).Error; err != nil {
			return ErrProductNotFound
		}
		if product.Quantity < req.Quantity {
			return ErrInsufficientStock
		}

		if req.CustomerID != nil {
			var customer model.Customer
			if err := tx.First(&customer, "id = ?", *req.CustomerID).Error; err != nil {
				return ErrCustomerNotFound
			}
		}

		// Guarded decrement: the WHERE clause keeps stock non-negative even
		// when two sales race on the same product. Zero rows affected means
		// a concurrent sale consumed the stock after our read.
		affected, err := s.productRepo.AdjustQuantity(tx, product.ID, -req.Quantity, userID)
		if err != nil {
			return err
		}
		if affected == 0 {
			return errStaleRow
		}

		sale = &model.Sale{
			ProductID:     product.ID,
			CustomerID:    req.CustomerID,
			Quantity:      req.Quantity,
			TotalPrice:    total,
			AmountPaid:    paid,
			SalespersonID: &userID,
		}
		sale.Status = sale.StatusFor(paid)
		sale.CreatedBy = userID
		sale.UpdatedBy = userID
		if err := s.saleRepo.Create(tx, sale); err != nil {
			return err
		}

		// Money received at the counter gets its own audit row
		if paid.IsPositive() {
			payment := &model.Payment{SaleID: sale.ID, Amount: paid}
			payment.CreatedBy = userID
			payment.UpdatedBy = userID
			if err := s.paymentRepo.Create(tx, payment); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.broadcast("sale_recorded", map[string]interface{}{
		"sale_id":     sale.ID,
		"product_id":  sale.ProductID,
		"quantity":    sale.Quantity,
		"total_price": sale.TotalPrice,
		"amount_paid": sale.AmountPaid,
		"status":      sale.Status,
	}, userID, userName, fmt.Sprintf("%s recorded a sale of %d unit(s)", userName, sale.Quantity))

	return sale, nil
}

// RecordItemPayment applies a payment to one sale. An amount above the
// remaining balance is clamped to it rather than rejected, so a rounded
// tender is not blocked by a few cents of overage; the amount actually
// applied is returned for caller confirmation.
func (s *ledgerService) RecordItemPayment(saleID uuid.UUID, amount decimal.Decimal, userID, userName string) (decimal.Decimal, error) {
	// 1. Validate input
	if !amount.IsPositive() {
		return decimal.Zero, ErrInvalidPaymentAmount
	}

	var applied decimal.Decimal

	// 2. Atomic unit: read sale, clamp, bump amount_paid, insert payment row
	err := s.runWithRetry(func(tx *gorm.DB) error {
		sale, err := s.saleRepo.FindByIDTx(tx, saleID)
		if err != nil {
			return ErrSaleNotFound
		}

		owed := sale.Owed()
		if !owed.IsPositive() {
			// Nothing left to pay; clamping to zero would create a zero
			// payment row, which the audit trail forbids
			return ErrNoOutstandingDebt
		}

		applied = decimal.Min(amount, owed)
		newPaid := sale.AmountPaid.Add(applied)

		affected, err := s.saleRepo.ApplyPayment(tx, sale.ID, sale.AmountPaid, newPaid, sale.StatusFor(newPaid))
		if err != nil {
			return err
		}
		if affected == 0 {
			return errStaleRow
		}

		payment := &model.Payment{SaleID: sale.ID, Amount: applied}
		payment.CreatedBy = userID
		payment.UpdatedBy = userID
		return s.paymentRepo.Create(tx, payment)
	})
	if err != nil {
		return decimal.Zero, err
	}

	s.broadcast("item_payment_recorded", map[string]interface{}{
		"sale_id": saleID,
		"amount":  applied,
	}, userID, userName, fmt.Sprintf("%s recorded a payment of %s", userName, applied.StringFixed(2)))

	return applied, nil
}

// RecordCustomerPayment distributes one payment across the customer's
// pending sales, oldest first, one payment row per sale touched. Any amount
// left over once every debt is settled is discarded, not banked as credit;
// the returned allocations let the caller compute the unapplied remainder.
func (s *ledgerService) RecordCustomerPayment(customerID uuid.UUID, amount decimal.Decimal, userID, userName string) ([]PaymentAllocation, error) {
	// 1. Validate input
	if !amount.IsPositive() {
		return nil, ErrInvalidPaymentAmount
	}

	var allocations []PaymentAllocation

	// 2. Atomic unit: read pending sales FIFO, allocate until exhausted.
	// The per-sale compare-and-swap serializes racing payments for the same
	// customer: a concurrent payment invalidates the guard, rolls this
	// transaction back, and the retry re-reads the pending list.
	err := s.runWithRetry(func(tx *gorm.DB) error {
		allocations = allocations[:0]

		if err := tx.First(&model.Customer{}, "id = ?", customerID).Error; err != nil {
			return ErrCustomerNotFound
		}

		pending, err := s.saleRepo.FindPendingByCustomer(tx, customerID)
		if err != nil {
			return err
		}
		if len(pending) == 0 {
			return ErrNoOutstandingDebt
		}

		remaining := amount
		for i := range pending {
			if !remaining.IsPositive() {
				break
			}
			sale := &pending[i]

			portion := decimal.Min(remaining, sale.Owed())
			newPaid := sale.AmountPaid.Add(portion)

			affected, err := s.saleRepo.ApplyPayment(tx, sale.ID, sale.AmountPaid, newPaid, sale.StatusFor(newPaid))
			if err != nil {
				return err
			}
			if affected == 0 {
				return errStaleRow
			}

			payment := &model.Payment{SaleID: sale.ID, Amount: portion}
			payment.CreatedBy = userID
			payment.UpdatedBy = userID
			if err := s.paymentRepo.Create(tx, payment); err != nil {
				return err
			}

			allocations = append(allocations, PaymentAllocation{SaleID: sale.ID, Amount: portion})
			remaining = remaining.Sub(portion)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.broadcast("customer_payment_recorded", map[string]interface{}{
		"customer_id": customerID,
		"amount":      amount,
		"allocations": allocations,
	}, userID, userName, fmt.Sprintf("%s recorded a customer payment of %s", userName, amount.StringFixed(2)))

	return allocations, nil
}

// DeleteSale is the compensating transaction for a mis-entered sale: it
// restores the product's stock and removes the sale with its payment rows.
// Destructive and non-reversible; route access is gated to the manager role.
func (s *ledgerService) DeleteSale(saleID uuid.UUID, userID, userName string) error {
	var restored int

	err := s.runWithRetry(func(tx *gorm.DB) error {
		sale, err := s.saleRepo.FindByIDTx(tx, saleID)
		if err != nil {
			return ErrSaleNotFound
		}

		// Put the deducted quantity back; restoring never violates the
		// non-negative guard
		if _, err := s.productRepo.AdjustQuantity(tx, sale.ProductID, sale.Quantity, userID); err != nil {
			return err
		}
		restored = sale.Quantity

		if err := s.paymentRepo.DeleteBySale(tx, sale.ID); err != nil {
			return err
		}
		return s.saleRepo.HardDelete(tx, sale.ID)
	})
	if err != nil {
		return err
	}

	s.broadcast("sale_deleted", map[string]interface{}{
		"sale_id":           saleID,
		"restored_quantity": restored,
	}, userID, userName, fmt.Sprintf("%s deleted a sale and restored %d unit(s)", userName, restored))

	return nil
}

// broadcast pushes a ledger change event so connected clients can re-query.
func (s *ledgerService) broadcast(action string, data map[string]interface{}, userID, userName, message string) {
	if s.wsHub == nil {
		return
	}
	go func() {
		payload := map[string]interface{}{
			"type":   "ledger_update",
			"action": action,
			"data":   data,
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
