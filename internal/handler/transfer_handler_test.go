package handler

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"agriko-backend/internal/model"
	"agriko-backend/internal/service"
)

// stubTransferService lets handler tests script service outcomes.
type stubTransferService struct {
	createErr  error
	receiveErr error
	transfer   *model.TransferTransaction
}

func (s *stubTransferService) CreateTransfer(req *service.CreateTransferRequest, userID, userName string) (*model.TransferTransaction, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	return s.transfer, nil
}

func (s *stubTransferService) ReceiveTransfer(id uuid.UUID, userID, userName string) (*model.TransferTransaction, error) {
	if s.receiveErr != nil {
		return nil, s.receiveErr
	}
	return s.transfer, nil
}

func (s *stubTransferService) GetTransfers(officeID *uuid.UUID, status model.TransferStatus) ([]model.TransferTransaction, error) {
	return nil, nil
}

func (s *stubTransferService) GetTransferByID(id uuid.UUID) (*model.TransferTransaction, error) {
	return s.transfer, nil
}

func newTransferApp(stub *stubTransferService) *fiber.App {
	app := fiber.New()
	h := NewTransferHandler(stub)
	app.Post("/transfers", h.CreateTransfer)
	app.Post("/transfers/:id/receive", h.ReceiveTransfer)
	return app
}

func TestCreateTransferOverdrawReturns422(t *testing.T) {
	stub := &stubTransferService{
		createErr: &service.OverdrawError{
			ProductName: "Turmeric Tea",
			Requested:   decimal.NewFromInt(10),
			Available:   decimal.NewFromInt(4),
		},
	}
	app := newTransferApp(stub)

	body := `{"office_id":"` + uuid.New().String() + `","transfer_date":"2025-06-01","lines":[{"product_id":"` + uuid.New().String() + `","quantity":"10"}]}`
	req := httptest.NewRequest("POST", "/transfers", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != 422 {
		t.Fatalf("expected 422 for overdraw, got %d", resp.StatusCode)
	}
}

func TestReceiveTransferTwiceReturns409(t *testing.T) {
	stub := &stubTransferService{receiveErr: service.ErrAlreadyReceived}
	app := newTransferApp(stub)

	req := httptest.NewRequest("POST", "/transfers/"+uuid.New().String()+"/receive", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != 409 {
		t.Fatalf("expected 409 for double receive, got %d", resp.StatusCode)
	}
}

func TestReceiveTransferBadIDReturns400(t *testing.T) {
	app := newTransferApp(&stubTransferService{})

	req := httptest.NewRequest("POST", "/transfers/not-a-uuid/receive", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != 400 {
		t.Fatalf("expected 400 for malformed id, got %d", resp.StatusCode)
	}
}
