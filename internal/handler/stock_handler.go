package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"agriko-backend/internal/service"
)

type StockHandler struct {
	stockService      service.StockService
	productionService service.ProductionService
}

func NewStockHandler(stockService service.StockService, productionService service.ProductionService) *StockHandler {
	return &StockHandler{
		stockService:      stockService,
		productionService: productionService,
	}
}

// AdjustStock sets a new quantity on one stock row with an audit trail
// POST /api/v1/stock/adjust
func (h *StockHandler) AdjustStock(c *fiber.Ctx) error {
	var req service.AdjustStockRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	if err := h.stockService.AdjustStock(&req, getUserID(c), getUserName(c)); err != nil {
		switch {
		case errors.Is(err, service.ErrStockRowNotFound):
			return c.Status(404).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, service.ErrNegativeQuantity), errors.Is(err, service.ErrUnknownStockKind):
			return c.Status(400).JSON(fiber.Map{"error": err.Error()})
		default:
			return c.Status(500).JSON(fiber.Map{"error": "Failed to adjust stock"})
		}
	}

	return c.JSON(fiber.Map{"message": "Stock adjusted"})
}

// GetOfficeStock lists per-office retail stock
// GET /api/v1/offices/:id/stock
func (h *StockHandler) GetOfficeStock(c *fiber.Ctx) error {
	officeID, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid office ID"})
	}

	rows, err := h.stockService.GetOfficeStock(officeID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch office stock"})
	}
	return c.JSON(rows)
}

// GetFinalStock lists warehouse finished goods
// GET /api/v1/stock/final-products
func (h *StockHandler) GetFinalStock(c *fiber.Ctx) error {
	rows, err := h.stockService.GetFinalStock()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch final product stock"})
	}
	return c.JSON(rows)
}

// GetRawMaterialStock lists raw material stock
// GET /api/v1/stock/raw-materials
func (h *StockHandler) GetRawMaterialStock(c *fiber.Ctx) error {
	activeOnly := c.Query("active") == "true"
	rows, err := h.stockService.GetRawMaterials(activeOnly)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch raw materials"})
	}
	return c.JSON(rows)
}

// AddProduction records finished goods and deducts raw materials per the
// product's bill of materials
// POST /api/v1/production
func (h *StockHandler) AddProduction(c *fiber.Ctx) error {
	var req service.ProductionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	if err := h.productionService.AddFinalProduct(&req, getUserID(c), getUserName(c)); err != nil {
		switch {
		case errors.Is(err, service.ErrProductNotFound):
			return c.Status(404).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, service.ErrInvalidProdMode), errors.Is(err, service.ErrQuantityNotAbove):
			return c.Status(400).JSON(fiber.Map{"error": err.Error()})
		default:
			return c.Status(500).JSON(fiber.Map{"error": "Failed to record production"})
		}
	}

	return c.Status(201).JSON(fiber.Map{"message": "Production recorded"})
}
