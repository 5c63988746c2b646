package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"agriko-backend/internal/service"
)

// Helpers to pull user info from JWT context (set by auth middleware)
func getUserID(c *fiber.Ctx) string {
	userID := c.Locals("user_id")
	if userID == nil {
		return "system" // Fallback (shouldn't happen in protected routes)
	}
	return userID.(string)
}

func getUserName(c *fiber.Ctx) string {
	userName := c.Locals("user_name")
	if userName == nil {
		return "Unknown"
	}
	return userName.(string)
}

func parseUUID(id string) (uuid.UUID, error) {
	return uuid.Parse(id)
}

type CatalogHandler struct {
	service service.CatalogService
}

func NewCatalogHandler(s service.CatalogService) *CatalogHandler {
	return &CatalogHandler{service: s}
}

// CreateProduct creates a product with its bill of materials
// POST /api/v1/products
func (h *CatalogHandler) CreateProduct(c *fiber.Ctx) error {
	var req service.ProductRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	product, err := h.service.CreateProduct(&req, getUserID(c))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(201).JSON(fiber.Map{"message": "Product created", "data": product})
}

// GetProducts lists products. ?active=true limits to sellable ones.
// GET /api/v1/products
func (h *CatalogHandler) GetProducts(c *fiber.Ctx) error {
	activeOnly := c.Query("active") == "true"
	products, err := h.service.GetProducts(activeOnly)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch products"})
	}
	return c.JSON(products)
}

// GetProduct returns one product with its bill of materials
// GET /api/v1/products/:id
func (h *CatalogHandler) GetProduct(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	product, err := h.service.GetProductByID(id)
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Product not found"})
	}
	return c.JSON(product)
}

// UpdateProduct replaces product fields and its bill of materials
// PUT /api/v1/products/:id
func (h *CatalogHandler) UpdateProduct(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	var req service.ProductRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	product, err := h.service.UpdateProduct(id, &req, getUserID(c))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{"message": "Product updated", "data": product})
}

// DeleteProduct soft-deletes a product
// DELETE /api/v1/products/:id
func (h *CatalogHandler) DeleteProduct(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	if err := h.service.DeleteProduct(id); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"message": "Product deleted"})
}

// CreateRawMaterial creates a raw material
// POST /api/v1/raw-materials
func (h *CatalogHandler) CreateRawMaterial(c *fiber.Ctx) error {
	var req service.RawMaterialRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	material, err := h.service.CreateRawMaterial(&req, getUserID(c))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(201).JSON(fiber.Map{"message": "Raw material created", "data": material})
}

// GetRawMaterials lists raw materials
// GET /api/v1/raw-materials
func (h *CatalogHandler) GetRawMaterials(c *fiber.Ctx) error {
	activeOnly := c.Query("active") == "true"
	materials, err := h.service.GetRawMaterials(activeOnly)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch raw materials"})
	}
	return c.JSON(materials)
}

// UpdateRawMaterial updates a raw material
// PUT /api/v1/raw-materials/:id
func (h *CatalogHandler) UpdateRawMaterial(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid raw material ID"})
	}

	var req service.RawMaterialRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	material, err := h.service.UpdateRawMaterial(id, &req, getUserID(c))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{"message": "Raw material updated", "data": material})
}

// DeleteRawMaterial soft-deletes a raw material
// DELETE /api/v1/raw-materials/:id
func (h *CatalogHandler) DeleteRawMaterial(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid raw material ID"})
	}

	if err := h.service.DeleteRawMaterial(id); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"message": "Raw material deleted"})
}

// CreateOffice creates an office
// POST /api/v1/offices
func (h *CatalogHandler) CreateOffice(c *fiber.Ctx) error {
	var req service.OfficeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	office, err := h.service.CreateOffice(&req, getUserID(c))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(201).JSON(fiber.Map{"message": "Office created", "data": office})
}

// GetOffices lists all offices
// GET /api/v1/offices
func (h *CatalogHandler) GetOffices(c *fiber.Ctx) error {
	offices, err := h.service.GetOffices()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch offices"})
	}
	return c.JSON(offices)
}

// GetOffice returns one office
// GET /api/v1/offices/:id
func (h *CatalogHandler) GetOffice(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid office ID"})
	}

	office, err := h.service.GetOfficeByID(id)
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Office not found"})
	}
	return c.JSON(office)
}

// UpdateOffice updates an office
// PUT /api/v1/offices/:id
func (h *CatalogHandler) UpdateOffice(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid office ID"})
	}

	var req service.OfficeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	office, err := h.service.UpdateOffice(id, &req, getUserID(c))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{"message": "Office updated", "data": office})
}

// DeleteOffice soft-deletes an office
// DELETE /api/v1/offices/:id
func (h *CatalogHandler) DeleteOffice(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid office ID"})
	}

	if err := h.service.DeleteOffice(id); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"message": "Office deleted"})
}
