package service

import (
	"errors"
	"fmt"

	"agriko-backend/internal/model"
	"agriko-backend/internal/repository"
	"agriko-backend/internal/ws"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrNegativeQuantity = errors.New("quantity cannot be negative")
	ErrStockRowNotFound = errors.New("stock row not found")
	ErrUnknownStockKind = errors.New("unknown stock target kind")
)

// StockTarget selects which ledger an adjustment applies to.
type StockTarget string

const (
	TargetOfficeProduct StockTarget = "office_product"
	TargetRawMaterial   StockTarget = "raw_material"
	TargetFinalProduct  StockTarget = "final_product"
)

type AdjustStockRequest struct {
	Target      StockTarget     `json:"target"`
	TargetID    uuid.UUID       `json:"target_id"`
	NewQuantity decimal.Decimal `json:"new_quantity"`
	Remarks     string          `json:"remarks"`
}

type StockService interface {
	AdjustStock(req *AdjustStockRequest, userID, userName string) error
	GetOfficeStock(officeID uuid.UUID) ([]model.OfficeProduct, error)
	GetFinalStock() ([]model.FinalProduct, error)
	GetRawMaterials(activeOnly bool) ([]model.RawMaterial, error)
}

type stockService struct {
	stockRepo       repository.StockRepository
	rawMaterialRepo repository.RawMaterialRepository
	productRepo     repository.ProductRepository
	auditRepo       repository.AuditRepository
	db              *gorm.DB
	wsHub           *ws.Hub
}

func NewStockService(
	stockRepo repository.StockRepository,
	rawMaterialRepo repository.RawMaterialRepository,
	productRepo repository.ProductRepository,
	auditRepo repository.AuditRepository,
	db *gorm.DB,
	hub *ws.Hub,
) StockService {
	return &stockService{
		stockRepo:       stockRepo,
		rawMaterialRepo: rawMaterialRepo,
		productRepo:     productRepo,
		auditRepo:       auditRepo,
		db:              db,
		wsHub:           hub,
	}
}

// AdjustStock sets a single stock row to a new quantity and writes one
// audit row describing old -> new with the operator's remarks. The write
// and its audit row share one transaction.
func (s *stockService) AdjustStock(req *AdjustStockRequest, userID, userName string) error {
	if req.NewQuantity.IsNegative() {
		return ErrNegativeQuantity
	}

	var (
		oldQty decimal.Decimal
		label  string
		warnAt decimal.Decimal
		entity model.AuditEntity
	)

	err := s.db.Transaction(func(tx *gorm.DB) error {
		switch req.Target {
		case TargetOfficeProduct:
			row, err := s.stockRepo.FindOfficeProductForUpdate(tx, req.TargetID)
			if err != nil {
				return ErrStockRowNotFound
			}
			oldQty = row.Quantity
			entity = model.AuditOfficeProduct
			product, err := s.productRepo.FindByID(row.ProductID)
			if err == nil {
				label = product.Name
				warnAt = product.QuantityWarning
			}
			if err := s.stockRepo.UpdateOfficeProductQuantity(tx, row.ID, req.NewQuantity, userID); err != nil {
				return err
			}

		case TargetRawMaterial:
			var material model.RawMaterial
			if err := lockRow(tx, &material, req.TargetID); err != nil {
				return ErrStockRowNotFound
			}
			oldQty = material.Quantity
			label = material.Name
			warnAt = material.QuantityWarning
			entity = model.AuditRawMaterial
			if err := s.rawMaterialRepo.UpdateQuantity(tx, material.ID, req.NewQuantity, userID); err != nil {
				return err
			}

		case TargetFinalProduct:
			row, err := s.stockRepo.FindFinalProductByID(req.TargetID)
			if err != nil {
				return ErrStockRowNotFound
			}
			locked, err := s.stockRepo.FindFinalProductForUpdate(tx, row.ProductID)
			if err != nil {
				return ErrStockRowNotFound
			}
			oldQty = locked.Quantity
			entity = model.AuditFinalProduct
			product, err := s.productRepo.FindByID(locked.ProductID)
			if err == nil {
				label = product.Name
				warnAt = product.QuantityWarning
			}
			if err := s.stockRepo.UpdateFinalProductQuantity(tx, locked.ID, req.NewQuantity, userID); err != nil {
				return err
			}

		default:
			return ErrUnknownStockKind
		}

		logRow := &model.ChangeLog{
			UserID:     userID,
			EntityType: entity,
			EntityID:   req.TargetID,
			Message:    AdjustmentMessage(label, oldQty, req.NewQuantity, req.Remarks),
		}
		return s.auditRepo.CreateChangeLog(tx, logRow)
	})

	if err != nil {
		if !errors.Is(err, ErrStockRowNotFound) && !errors.Is(err, ErrUnknownStockKind) {
			recordError(s.auditRepo, "AdjustStock", string(req.Target), req, err)
		}
		return err
	}

	s.wsHub.Publish(ws.Event{
		Type:    ws.EventStockAdjusted,
		Message: fmt.Sprintf("%s adjusted stock of %s: %s -> %s", userName, label, oldQty.String(), req.NewQuantity.String()),
		Payload: map[string]interface{}{
			"target":       req.Target,
			"target_id":    req.TargetID,
			"old_quantity": oldQty.String(),
			"new_quantity": req.NewQuantity.String(),
		},
	})
	s.notifyLowStock(label, req.NewQuantity, warnAt)

	return nil
}

func (s *stockService) GetOfficeStock(officeID uuid.UUID) ([]model.OfficeProduct, error) {
	return s.stockRepo.FindOfficeProducts(officeID)
}

func (s *stockService) GetFinalStock() ([]model.FinalProduct, error) {
	return s.stockRepo.FindFinalProducts()
}

func (s *stockService) GetRawMaterials(activeOnly bool) ([]model.RawMaterial, error) {
	return s.rawMaterialRepo.FindAll(activeOnly)
}

func (s *stockService) notifyLowStock(label string, quantity, warnAt decimal.Decimal) {
	if warnAt.IsZero() || quantity.GreaterThan(warnAt) {
		return
	}
	s.wsHub.Publish(ws.Event{
		Type:    ws.EventLowStock,
		Message: fmt.Sprintf("Low stock: %s is down to %s (warning threshold %s)", label, quantity.String(), warnAt.String()),
		Payload: map[string]interface{}{
			"name":     label,
			"quantity": quantity.String(),
			"warn_at":  warnAt.String(),
		},
	})
}

// AdjustmentMessage formats the audit trail line for a manual adjustment.
func AdjustmentMessage(label string, oldQty, newQty decimal.Decimal, remarks string) string {
	msg := fmt.Sprintf("Adjusted quantity of %s from %s to %s", label, oldQty.String(), newQty.String())
	if remarks != "" {
		msg += ". Remarks: " + remarks
	}
	return msg
}

// lockRow fetches a row by primary key with a FOR UPDATE lock.
func lockRow(tx *gorm.DB, dest interface{}, id uuid.UUID) error {
	return tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(dest, "id = ?", id).Error
}
