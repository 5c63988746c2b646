package service

import (
	"errors"
	"fmt"
	"time"

	"agriko-backend/internal/model"
	"agriko-backend/internal/repository"
	"agriko-backend/internal/ws"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrTransferEmpty    = errors.New("transfer needs at least one line with quantity above zero")
	ErrTransferNotFound = errors.New("transfer transaction not found")
	ErrAlreadyReceived  = errors.New("transfer has already been received")
	ErrOfficeNotFound   = errors.New("office not found")
	ErrTransferToSelf   = errors.New("cannot transfer to a warehouse office")
)

// OverdrawError reports a line that asks for more than the warehouse holds.
type OverdrawError struct {
	ProductName string
	Requested   decimal.Decimal
	Available   decimal.Decimal
}

func (e *OverdrawError) Error() string {
	return fmt.Sprintf("insufficient stock of %s: requested %s, available %s",
		e.ProductName, e.Requested.String(), e.Available.String())
}

type TransferLine struct {
	ProductID uuid.UUID       `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
}

type CreateTransferRequest struct {
	OfficeID     uuid.UUID      `json:"office_id"`
	TransferDate string         `json:"transfer_date"` // YYYY-MM-DD
	Memo         string         `json:"memo"`
	Lines        []TransferLine `json:"lines"`
}

type TransferService interface {
	CreateTransfer(req *CreateTransferRequest, userID, userName string) (*model.TransferTransaction, error)
	ReceiveTransfer(id uuid.UUID, userID, userName string) (*model.TransferTransaction, error)
	GetTransfers(officeID *uuid.UUID, status model.TransferStatus) ([]model.TransferTransaction, error)
	GetTransferByID(id uuid.UUID) (*model.TransferTransaction, error)
}

type transferService struct {
	transferRepo repository.TransferRepository
	stockRepo    repository.StockRepository
	productRepo  repository.ProductRepository
	officeRepo   repository.OfficeRepository
	auditRepo    repository.AuditRepository
	db           *gorm.DB
	wsHub        *ws.Hub
}

func NewTransferService(
	transferRepo repository.TransferRepository,
	stockRepo repository.StockRepository,
	productRepo repository.ProductRepository,
	officeRepo repository.OfficeRepository,
	auditRepo repository.AuditRepository,
	db *gorm.DB,
	hub *ws.Hub,
) TransferService {
	return &transferService{
		transferRepo: transferRepo,
		stockRepo:    stockRepo,
		productRepo:  productRepo,
		officeRepo:   officeRepo,
		auditRepo:    auditRepo,
		db:           db,
		wsHub:        hub,
	}
}

// ValidateTransferLines checks every line against available warehouse stock
// before anything is written. The first overdrawn line fails the whole
// transfer; a product missing from stock entirely counts as zero available.
func ValidateTransferLines(lines []TransferLine, available map[uuid.UUID]decimal.Decimal, names map[uuid.UUID]string) error {
	for _, line := range lines {
		stock := available[line.ProductID]
		if line.Quantity.GreaterThan(stock) {
			name := names[line.ProductID]
			if name == "" {
				name = line.ProductID.String()
			}
			return &OverdrawError{ProductName: name, Requested: line.Quantity, Available: stock}
		}
	}
	return nil
}

// CreateTransfer deducts warehouse stock and records the shipment in one
// transaction. The transfer row embeds a snapshot of the lines so later
// catalog edits cannot rewrite history.
func (s *transferService) CreateTransfer(req *CreateTransferRequest, userID, userName string) (*model.TransferTransaction, error) {
	lines := make([]TransferLine, 0, len(req.Lines))
	for _, l := range req.Lines {
		if l.Quantity.IsPositive() {
			lines = append(lines, l)
		}
	}
	if len(lines) == 0 {
		return nil, ErrTransferEmpty
	}

	office, err := s.officeRepo.FindByID(req.OfficeID)
	if err != nil {
		return nil, ErrOfficeNotFound
	}
	if office.Type == model.OfficeWarehouse {
		return nil, ErrTransferToSelf
	}

	transferDate, err := time.Parse("2006-01-02", req.TransferDate)
	if err != nil {
		return nil, errors.New("transfer_date must be formatted YYYY-MM-DD")
	}

	productIDs := make([]uuid.UUID, len(lines))
	for i, l := range lines {
		productIDs[i] = l.ProductID
	}
	products, err := s.productRepo.FindByIDs(productIDs)
	if err != nil {
		return nil, err
	}
	productByID := make(map[uuid.UUID]model.Product, len(products))
	names := make(map[uuid.UUID]string, len(products))
	for _, p := range products {
		productByID[p.ID] = p
		names[p.ID] = p.Name
	}

	var transfer *model.TransferTransaction

	err = s.db.Transaction(func(tx *gorm.DB) error {
		stock, err := s.stockRepo.FindFinalProductsForUpdate(tx, productIDs)
		if err != nil {
			return err
		}
		available := make(map[uuid.UUID]decimal.Decimal, len(stock))
		stockByProduct := make(map[uuid.UUID]model.FinalProduct, len(stock))
		for _, fp := range stock {
			available[fp.ProductID] = fp.Quantity
			stockByProduct[fp.ProductID] = fp
		}

		// All lines validated up front: an overdraw on any line aborts
		// before a single quantity is touched.
		if err := ValidateTransferLines(lines, available, names); err != nil {
			return err
		}

		snapshot := make(model.TransferProducts, 0, len(lines))
		logs := make([]model.ChangeLog, 0, len(lines))

		for _, line := range lines {
			fp := stockByProduct[line.ProductID]
			product := productByID[line.ProductID]

			remaining := fp.Quantity.Sub(line.Quantity)
			if err := s.stockRepo.UpdateFinalProductQuantity(tx, fp.ID, remaining, userID); err != nil {
				return err
			}

			snapshot = append(snapshot, model.TransferProduct{
				ProductID: product.ID,
				Name:      product.Name,
				Size:      product.DisplaySize(),
				Category:  product.Category,
				Quantity:  line.Quantity,
			})
			logs = append(logs, model.ChangeLog{
				UserID:     userID,
				EntityType: model.AuditFinalProduct,
				EntityID:   fp.ID,
				Message: fmt.Sprintf("Transferred %s x %s to %s, warehouse stock now %s",
					product.Name, line.Quantity.String(), office.Name, remaining.String()),
			})
		}

		transfer = &model.TransferTransaction{
			OfficeID:     office.ID,
			TransferDate: transferDate,
			Memo:         req.Memo,
			Status:       model.TransferToReceive,
			Products:     snapshot,
			TransferedBy: userName,
		}
		transfer.CreatedBy = userID
		transfer.UpdatedBy = userID
		if err := s.transferRepo.Create(tx, transfer); err != nil {
			return err
		}

		return s.auditRepo.CreateChangeLogs(tx, logs)
	})

	if err != nil {
		var overdraw *OverdrawError
		if !errors.As(err, &overdraw) {
			recordError(s.auditRepo, "CreateTransfer", "transfer_transactions", req, err)
		}
		return nil, err
	}

	s.wsHub.Publish(ws.Event{
		Type:    ws.EventTransferCreated,
		Message: fmt.Sprintf("%s dispatched %d product(s) to %s", userName, len(transfer.Products), office.Name),
		Payload: map[string]interface{}{
			"transfer_id": transfer.ID,
			"office_id":   office.ID,
			"office_name": office.Name,
			"line_count":  len(transfer.Products),
		},
	})

	return transfer, nil
}

// ReceiveTransfer converts a pending transfer into office stock. The status
// flip is a conditional update executed first inside the transaction, so a
// concurrent second receive finds zero affected rows and aborts: stock can
// never be credited twice.
func (s *transferService) ReceiveTransfer(id uuid.UUID, userID, userName string) (*model.TransferTransaction, error) {
	transfer, err := s.transferRepo.FindByID(id)
	if err != nil {
		return nil, ErrTransferNotFound
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		affected, err := s.transferRepo.MarkReceived(tx, transfer.ID, userName)
		if err != nil {
			return err
		}
		if affected == 0 {
			return ErrAlreadyReceived
		}

		productIDs := make([]uuid.UUID, len(transfer.Products))
		for i, p := range transfer.Products {
			productIDs[i] = p.ProductID
		}
		existing, err := s.stockRepo.FindOfficeProductsForUpdate(tx, transfer.OfficeID, productIDs)
		if err != nil {
			return err
		}
		existingByProduct := make(map[uuid.UUID]model.OfficeProduct, len(existing))
		for _, op := range existing {
			existingByProduct[op.ProductID] = op
		}

		logs := make([]model.ChangeLog, 0, len(transfer.Products))
		for _, line := range transfer.Products {
			if op, ok := existingByProduct[line.ProductID]; ok {
				newQty := op.Quantity.Add(line.Quantity)
				if err := s.stockRepo.UpdateOfficeProductQuantity(tx, op.ID, newQty, userID); err != nil {
					return err
				}
				logs = append(logs, model.ChangeLog{
					UserID:     userID,
					EntityType: model.AuditOfficeProduct,
					EntityID:   op.ID,
					Message: fmt.Sprintf("Received %s x %s from warehouse, office stock now %s",
						line.Name, line.Quantity.String(), newQty.String()),
				})
			} else {
				op := &model.OfficeProduct{
					OfficeID:  transfer.OfficeID,
					ProductID: line.ProductID,
					Quantity:  line.Quantity,
				}
				op.CreatedBy = userID
				op.UpdatedBy = userID
				if err := s.stockRepo.CreateOfficeProduct(tx, op); err != nil {
					return err
				}
				logs = append(logs, model.ChangeLog{
					UserID:     userID,
					EntityType: model.AuditOfficeProduct,
					EntityID:   op.ID,
					Message: fmt.Sprintf("Received %s x %s from warehouse (new product at this office)",
						line.Name, line.Quantity.String()),
				})
			}
		}

		return s.auditRepo.CreateChangeLogs(tx, logs)
	})

	if err != nil {
		if !errors.Is(err, ErrAlreadyReceived) {
			recordError(s.auditRepo, "ReceiveTransfer", "transfer_transactions", map[string]string{"id": id.String()}, err)
		}
		return nil, err
	}

	// Reload to reflect the status flip
	received, err := s.transferRepo.FindByID(id)
	if err != nil {
		return nil, err
	}

	s.wsHub.Publish(ws.Event{
		Type:    ws.EventTransferReceived,
		Message: fmt.Sprintf("%s received transfer of %d product(s)", userName, len(received.Products)),
		Payload: map[string]interface{}{
			"transfer_id": received.ID,
			"office_id":   received.OfficeID,
		},
	})

	return received, nil
}

func (s *transferService) GetTransfers(officeID *uuid.UUID, status model.TransferStatus) ([]model.TransferTransaction, error) {
	return s.transferRepo.FindAll(officeID, status)
}

func (s *transferService) GetTransferByID(id uuid.UUID) (*model.TransferTransaction, error) {
	return s.transferRepo.FindByID(id)
}
