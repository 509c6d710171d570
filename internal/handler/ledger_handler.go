package handler

import (
	"errors"

	"go-pos-ledger/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type LedgerHandler struct {
	service service.LedgerService
}

func NewLedgerHandler(s service.LedgerService) *LedgerHandler {
	return &LedgerHandler{service: s}
}

// ledgerErrorStatus maps the ledger error taxonomy to HTTP statuses:
// stale references are 404, retryable contention is 409, the rest are
// caller mistakes.
func ledgerErrorStatus(err error) int {
	switch {
	case errors.Is(err, service.ErrProductNotFound),
		errors.Is(err, service.ErrCustomerNotFound),
		errors.Is(err, service.ErrSaleNotFound):
		return 404
	case errors.Is(err, service.ErrTransientConflict):
		return 409
	default:
		return 400
	}
}

// RecordSale records a cash or credit sale
// POST /api/v1/sales
func (h *LedgerHandler) RecordSale(c *fiber.Ctx) error {
	var req service.RecordSaleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	sale, err := h.service.RecordSale(&req, getUserID(c), getUserName(c))
	if err != nil {
		return c.Status(ledgerErrorStatus(err)).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(201).JSON(fiber.Map{"message": "Sale recorded", "data": sale})
}

// DeleteSale removes a mis-entered sale and restores its stock
// DELETE /api/v1/sales/:id
func (h *LedgerHandler) DeleteSale(c *fiber.Ctx) error {
	saleID, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid sale ID"})
	}

	if err := h.service.DeleteSale(saleID, getUserID(c), getUserName(c)); err != nil {
		return c.Status(ledgerErrorStatus(err)).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{"message": "Sale deleted, stock restored"})
}

// ItemPaymentRequest pays down one specific sale
type ItemPaymentRequest struct {
	SaleID uuid.UUID       `json:"sale_id"`
	Amount decimal.Decimal `json:"amount"`
}

// RecordItemPayment applies a payment to a single sale
// POST /api/v1/payments/item
func (h *LedgerHandler) RecordItemPayment(c *fiber.Ctx) error {
	var req ItemPaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	applied, err := h.service.RecordItemPayment(req.SaleID, req.Amount, getUserID(c), getUserName(c))
	if err != nil {
		return c.Status(ledgerErrorStatus(err)).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(201).JSON(fiber.Map{
		"message":        "Payment recorded",
		"amount_applied": applied,
	})
}

// CustomerPaymentRequest pays a customer's total debt, oldest sales first
type CustomerPaymentRequest struct {
	CustomerID uuid.UUID       `json:"customer_id"`
	Amount     decimal.Decimal `json:"amount"`
}

// RecordCustomerPayment distributes a payment across a customer's debts
// POST /api/v1/payments/customer
func (h *LedgerHandler) RecordCustomerPayment(c *fiber.Ctx) error {
	var req CustomerPaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	allocations, err := h.service.RecordCustomerPayment(req.CustomerID, req.Amount, getUserID(c), getUserName(c))
	if err != nil {
		return c.Status(ledgerErrorStatus(err)).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(201).JSON(fiber.Map{
		"message":     "Payment recorded",
		"allocations": allocations,
	})
}
