package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"agriko-backend/internal/model"
	"agriko-backend/internal/service"
)

type TransferHandler struct {
	service service.TransferService
}

func NewTransferHandler(s service.TransferService) *TransferHandler {
	return &TransferHandler{service: s}
}

// CreateTransfer dispatches finished goods from the warehouse to an office
// POST /api/v1/transfers
func (h *TransferHandler) CreateTransfer(c *fiber.Ctx) error {
	var req service.CreateTransferRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	transfer, err := h.service.CreateTransfer(&req, getUserID(c), getUserName(c))
	if err != nil {
		var overdraw *service.OverdrawError
		switch {
		case errors.As(err, &overdraw):
			// Nothing was written; the client shows which line overdraws.
			return c.Status(422).JSON(fiber.Map{
				"error":     overdraw.Error(),
				"product":   overdraw.ProductName,
				"requested": overdraw.Requested,
				"available": overdraw.Available,
			})
		case errors.Is(err, service.ErrOfficeNotFound):
			return c.Status(404).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, service.ErrTransferEmpty), errors.Is(err, service.ErrTransferToSelf):
			return c.Status(400).JSON(fiber.Map{"error": err.Error()})
		default:
			return c.Status(400).JSON(fiber.Map{"error": err.Error()})
		}
	}

	return c.Status(201).JSON(fiber.Map{"message": "Transfer dispatched", "data": transfer})
}

// ReceiveTransfer accepts a pending transfer into office stock
// POST /api/v1/transfers/:id/receive
func (h *TransferHandler) ReceiveTransfer(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid transfer ID"})
	}

	transfer, err := h.service.ReceiveTransfer(id, getUserID(c), getUserName(c))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAlreadyReceived):
			return c.Status(409).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, service.ErrTransferNotFound):
			return c.Status(404).JSON(fiber.Map{"error": err.Error()})
		default:
			return c.Status(500).JSON(fiber.Map{"error": "Failed to receive transfer"})
		}
	}

	return c.JSON(fiber.Map{"message": "Transfer received", "data": transfer})
}

// GetTransfers lists transfers, optionally filtered by office and status
// GET /api/v1/transfers?office_id=&status=
func (h *TransferHandler) GetTransfers(c *fiber.Ctx) error {
	var officeID *uuid.UUID
	if raw := c.Query("office_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid office_id"})
		}
		officeID = &id
	}

	status := model.TransferStatus(c.Query("status"))

	transfers, err := h.service.GetTransfers(officeID, status)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch transfers"})
	}
	return c.JSON(transfers)
}

// GetTransfer returns one transfer with its line snapshot
// GET /api/v1/transfers/:id
func (h *TransferHandler) GetTransfer(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid transfer ID"})
	}

	transfer, err := h.service.GetTransferByID(id)
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Transfer not found"})
	}
	return c.JSON(transfer)
}
