package handler

import (
	"time"

	"go-pos-ledger/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ReportHandler struct {
	service service.ReportService
}

func NewReportHandler(s service.ReportService) *ReportHandler {
	return &ReportHandler{service: s}
}

// GetDailySales returns the sales report for one day
// GET /api/v1/reports/daily?date=YYYY-MM-DD (default today)
// Salespersons without sale:view_all only ever see their own sales.
func (h *ReportHandler) GetDailySales(c *fiber.Ctx) error {
	day := time.Now()
	if dateStr := c.Query("date"); dateStr != "" {
		parsed, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid date format, use YYYY-MM-DD"})
		}
		day = parsed
	}

	var salespersonID *string
	if !hasPrivilege(c, "sale:view_all") {
		ownID := getUserID(c)
		salespersonID = &ownID
	} else if filter := c.Query("salesperson_id"); filter != "" {
		salespersonID = &filter
	}

	report, err := h.service.GetDailySales(day, salespersonID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch daily sales"})
	}

	return c.JSON(report)
}

// GetCatalogStats returns the dashboard overview cards
// GET /api/v1/dashboard/stats
func (h *ReportHandler) GetCatalogStats(c *fiber.Ctx) error {
	stats, err := h.service.GetCatalogStats()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch dashboard stats"})
	}

	return c.JSON(stats)
}
