package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"agriko-backend/internal/service"
)

type OrderHandler struct {
	service service.OrderService
}

func NewOrderHandler(s service.OrderService) *OrderHandler {
	return &OrderHandler{service: s}
}

// Checkout creates an order transaction with its line items
// POST /api/v1/orders
func (h *OrderHandler) Checkout(c *fiber.Ctx) error {
	var req service.CheckoutRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	order, err := h.service.Checkout(&req, getUserID(c), getUserName(c))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOfficeNotFound), errors.Is(err, service.ErrCustomerNotFound):
			return c.Status(404).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, service.ErrEmptyCart),
			errors.Is(err, service.ErrCustomerRequired),
			errors.Is(err, service.ErrInactiveProduct):
			return c.Status(400).JSON(fiber.Map{"error": err.Error()})
		default:
			return c.Status(500).JSON(fiber.Map{"error": "Checkout failed"})
		}
	}

	return c.Status(201).JSON(fiber.Map{"message": "Order created", "data": order})
}

// GetOrder returns one order with its lines
// GET /api/v1/orders/:id
func (h *OrderHandler) GetOrder(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid order ID"})
	}

	order, err := h.service.GetOrderByID(id)
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Order not found"})
	}
	return c.JSON(order)
}

// GetReceipt returns the printable receipt view of an order
// GET /api/v1/orders/:id/receipt
func (h *OrderHandler) GetReceipt(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid order ID"})
	}

	receipt, err := h.service.GetReceipt(id)
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Order not found"})
	}
	return c.JSON(receipt)
}

// CancelOrderedProduct voids a single line on an order
// POST /api/v1/ordered-products/:id/cancel
func (h *OrderHandler) CancelOrderedProduct(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid ordered product ID"})
	}

	if err := h.service.CancelOrderedProduct(id, getUserID(c), getUserName(c)); err != nil {
		switch {
		case errors.Is(err, service.ErrLineNotFound):
			return c.Status(404).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, service.ErrLineAlreadyVoided):
			return c.Status(409).JSON(fiber.Map{"error": err.Error()})
		default:
			return c.Status(500).JSON(fiber.Map{"error": "Failed to cancel ordered product"})
		}
	}

	return c.JSON(fiber.Map{"message": "Ordered product canceled"})
}

// SearchCustomers finds customers by name for the POS autocomplete
// GET /api/v1/customers?q=
func (h *OrderHandler) SearchCustomers(c *fiber.Ctx) error {
	customers, err := h.service.SearchCustomers(c.Query("q"))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to search customers"})
	}
	return c.JSON(customers)
}
