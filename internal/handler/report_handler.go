package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"agriko-backend/internal/service"
)

type ReportHandler struct {
	service service.ReportService
}

func NewReportHandler(s service.ReportService) *ReportHandler {
	return &ReportHandler{service: s}
}

// parseReportRange reads ?start=YYYY-MM-DD&end=YYYY-MM-DD, defaulting to the
// current day. The end date is inclusive.
func parseReportRange(c *fiber.Ctx) (time.Time, time.Time, error) {
	now := time.Now()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	end := start.AddDate(0, 0, 1).Add(-time.Nanosecond)

	if raw := c.Query("start"); raw != "" {
		parsed, err := time.ParseInLocation("2006-01-02", raw, now.Location())
		if err != nil {
			return start, end, err
		}
		start = parsed
	}
	if raw := c.Query("end"); raw != "" {
		parsed, err := time.ParseInLocation("2006-01-02", raw, now.Location())
		if err != nil {
			return start, end, err
		}
		end = parsed.AddDate(0, 0, 1).Add(-time.Nanosecond)
	}
	return start, end, nil
}

func cashierFilter(c *fiber.Ctx) *string {
	if raw := c.Query("cashier_id"); raw != "" {
		return &raw
	}
	return nil
}

// GetSalesSummary returns aggregated sales for a date range
// GET /api/v1/reports/sales?start=&end=&cashier_id=
func (h *ReportHandler) GetSalesSummary(c *fiber.Ctx) error {
	start, end, err := parseReportRange(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Dates must be formatted YYYY-MM-DD"})
	}

	summary, err := h.service.GetSalesSummary(start, end, cashierFilter(c))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to build sales summary"})
	}
	return c.JSON(summary)
}

// ExportSalesSummary streams the sales summary as an Excel workbook
// GET /api/v1/reports/sales/export?start=&end=&cashier_id=
func (h *ReportHandler) ExportSalesSummary(c *fiber.Ctx) error {
	start, end, err := parseReportRange(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Dates must be formatted YYYY-MM-DD"})
	}

	file, err := h.service.ExportSalesSummary(start, end, cashierFilter(c))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to build export"})
	}

	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="Summary.xlsx"`)
	return file.Write(c.Response().BodyWriter())
}
