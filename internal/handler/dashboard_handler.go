package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"agriko-backend/internal/service"
)

type DashboardHandler struct {
	service service.DashboardService
}

func NewDashboardHandler(s service.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: s}
}

// GetStats returns overview statistics
// GET /api/v1/dashboard/stats
func (h *DashboardHandler) GetStats(c *fiber.Ctx) error {
	stats, err := h.service.GetStats()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch dashboard stats"})
	}
	return c.JSON(stats)
}

// GetSalesChart returns per-day gross sales for charts
// GET /api/v1/dashboard/sales-chart?days=30
func (h *DashboardHandler) GetSalesChart(c *fiber.Ctx) error {
	days, err := strconv.Atoi(c.Query("days", "30"))
	if err != nil || days <= 0 {
		days = 30
	}

	data, err := h.service.GetSalesChart(days)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch sales chart"})
	}

	return c.JSON(fiber.Map{
		"period": days,
		"data":   data,
	})
}
