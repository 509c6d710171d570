package handler

import (
	"go-pos-ledger/internal/service"

	"github.com/gofiber/fiber/v2"
)

type DebtHandler struct {
	service service.DebtService
}

func NewDebtHandler(s service.DebtService) *DebtHandler {
	return &DebtHandler{service: s}
}

// GetCustomersWithDebt lists customers holding at least one pending sale
// GET /api/v1/debts/customers
func (h *DebtHandler) GetCustomersWithDebt(c *fiber.Ctx) error {
	customers, err := h.service.ListCustomersWithDebt()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch debtors"})
	}
	return c.JSON(customers)
}

// GetOutstandingSales lists a customer's open debts with owed amounts
// GET /api/v1/debts/customers/:id/sales
func (h *DebtHandler) GetOutstandingSales(c *fiber.Ctx) error {
	customerID, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid customer ID"})
	}

	sales, err := h.service.ListOutstandingSales(customerID)
	if err != nil {
		if err == service.ErrCustomerNotFound {
			return c.Status(404).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch outstanding sales"})
	}
	return c.JSON(sales)
}

// GetPayments lists a customer's payment history, newest first
// GET /api/v1/debts/customers/:id/payments
func (h *DebtHandler) GetPayments(c *fiber.Ctx) error {
	customerID, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid customer ID"})
	}

	payments, err := h.service.ListPayments(customerID)
	if err != nil {
		if err == service.ErrCustomerNotFound {
			return c.Status(404).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch payments"})
	}
	return c.JSON(payments)
}
