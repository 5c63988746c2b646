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
)

var (
	ErrProductNotFound  = errors.New("product not found")
	ErrInvalidProdMode  = errors.New("mode must be 'add' or 'adjust'")
	ErrQuantityNotAbove = errors.New("quantity must be greater than zero")
)

// Production modes. "add" produces new units and consumes raw materials per
// the bill of materials; "adjust" overwrites the finished-goods count
// without touching raw materials.
const (
	ProductionAdd    = "add"
	ProductionAdjust = "adjust"
)

type ProductionRequest struct {
	ProductID uuid.UUID       `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	Mode      string          `json:"mode"`
	Remarks   string          `json:"remarks"`
}

// Deduction is one planned raw-material consumption.
type Deduction struct {
	Material    model.RawMaterial
	Deduct      decimal.Decimal
	NewQuantity decimal.Decimal
}

type ProductionService interface {
	AddFinalProduct(req *ProductionRequest, userID, userName string) error
}

type productionService struct {
	productRepo     repository.ProductRepository
	rawMaterialRepo repository.RawMaterialRepository
	stockRepo       repository.StockRepository
	auditRepo       repository.AuditRepository
	db              *gorm.DB
	wsHub           *ws.Hub
}

func NewProductionService(
	productRepo repository.ProductRepository,
	rawMaterialRepo repository.RawMaterialRepository,
	stockRepo repository.StockRepository,
	auditRepo repository.AuditRepository,
	db *gorm.DB,
	hub *ws.Hub,
) ProductionService {
	return &productionService{
		productRepo:     productRepo,
		rawMaterialRepo: rawMaterialRepo,
		stockRepo:       stockRepo,
		auditRepo:       auditRepo,
		db:              db,
		wsHub:           hub,
	}
}

// BuildDeductionPlan computes, per bill-of-materials line, how much raw
// material a production run of produced units consumes. Lines whose raw
// material is absent from the in-stock set are skipped: no deduction, no
// audit row. Deductions may drive a material negative; stock counts are
// reconciled by manual adjustment, not blocked here.
func BuildDeductionPlan(bom []model.ProductMaterial, inStock []model.RawMaterial, produced decimal.Decimal) []Deduction {
	byID := make(map[uuid.UUID]model.RawMaterial, len(inStock))
	for _, m := range inStock {
		byID[m.ID] = m
	}

	var plan []Deduction
	for _, line := range bom {
		material, ok := byID[line.RawMaterialID]
		if !ok {
			continue
		}
		deduct := line.QuantityPer.Mul(produced)
		plan = append(plan, Deduction{
			Material:    material,
			Deduct:      deduct,
			NewQuantity: material.Quantity.Sub(deduct),
		})
	}
	return plan
}

// AddFinalProduct increases finished-goods stock for a product and, in
// "add" mode, deducts the raw materials its bill of materials calls for.
// The finished-goods upsert, the deductions and all audit rows commit as
// one transaction.
func (s *productionService) AddFinalProduct(req *ProductionRequest, userID, userName string) error {
	if req.Mode != ProductionAdd && req.Mode != ProductionAdjust {
		return ErrInvalidProdMode
	}
	if !req.Quantity.IsPositive() {
		return ErrQuantityNotAbove
	}

	product, err := s.productRepo.FindByID(req.ProductID)
	if err != nil {
		return ErrProductNotFound
	}

	var (
		newQty decimal.Decimal
		plan   []Deduction
	)

	err = s.db.Transaction(func(tx *gorm.DB) error {
		// Upsert the finished-goods row
		row, err := s.stockRepo.FindFinalProductForUpdate(tx, product.ID)
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			newQty = req.Quantity
			row = &model.FinalProduct{ProductID: product.ID, Quantity: newQty}
			row.CreatedBy = userID
			row.UpdatedBy = userID
			if err := s.stockRepo.CreateFinalProduct(tx, row); err != nil {
				return err
			}
		case err != nil:
			return err
		default:
			if req.Mode == ProductionAdjust {
				newQty = req.Quantity
			} else {
				newQty = row.Quantity.Add(req.Quantity)
			}
			if err := s.stockRepo.UpdateFinalProductQuantity(tx, row.ID, newQty, userID); err != nil {
				return err
			}
		}

		logs := []model.ChangeLog{{
			UserID:     userID,
			EntityType: model.AuditFinalProduct,
			EntityID:   row.ID,
			Message:    productionMessage(product.Name, req.Mode, req.Quantity, newQty, req.Remarks),
		}}

		// Raw-material deduction only applies to real production runs.
		if req.Mode == ProductionAdd && len(product.Materials) > 0 {
			ids := make([]uuid.UUID, len(product.Materials))
			for i, m := range product.Materials {
				ids[i] = m.RawMaterialID
			}
			inStock, err := s.rawMaterialRepo.FindInStockForUpdate(tx, ids)
			if err != nil {
				return err
			}

			plan = BuildDeductionPlan(product.Materials, inStock, req.Quantity)
			for _, d := range plan {
				if err := s.rawMaterialRepo.UpdateQuantity(tx, d.Material.ID, d.NewQuantity, userID); err != nil {
					return err
				}
				logs = append(logs, model.ChangeLog{
					UserID:     userID,
					EntityType: model.AuditRawMaterial,
					EntityID:   d.Material.ID,
					Message: fmt.Sprintf("Deducted %s %s of %s for production of %s x %s",
						d.Deduct.String(), d.Material.Unit, d.Material.Name, product.Name, req.Quantity.String()),
				})
			}
		}

		return s.auditRepo.CreateChangeLogs(tx, logs)
	})

	if err != nil {
		recordError(s.auditRepo, "AddFinalProduct", "final_products", req, err)
		return err
	}

	s.wsHub.Publish(ws.Event{
		Type:    ws.EventProductionAdded,
		Message: fmt.Sprintf("%s recorded production of %s x %s", userName, product.Name, req.Quantity.String()),
		Payload: map[string]interface{}{
			"product_id":   product.ID,
			"product_name": product.Name,
			"quantity":     req.Quantity.String(),
			"new_stock":    newQty.String(),
			"mode":         req.Mode,
		},
	})
	for _, d := range plan {
		if !d.Material.QuantityWarning.IsZero() && !d.NewQuantity.GreaterThan(d.Material.QuantityWarning) {
			s.wsHub.Publish(ws.Event{
				Type:    ws.EventLowStock,
				Message: fmt.Sprintf("Low stock: %s is down to %s %s", d.Material.Name, d.NewQuantity.String(), d.Material.Unit),
				Payload: map[string]interface{}{
					"raw_material_id": d.Material.ID,
					"name":            d.Material.Name,
					"quantity":        d.NewQuantity.String(),
				},
			})
		}
	}

	return nil
}

func productionMessage(name, mode string, qty, newQty decimal.Decimal, remarks string) string {
	var msg string
	if mode == ProductionAdjust {
		msg = fmt.Sprintf("Adjusted finished stock of %s to %s", name, newQty.String())
	} else {
		msg = fmt.Sprintf("Produced %s x %s, finished stock now %s", name, qty.String(), newQty.String())
	}
	if remarks != "" {
		msg += ". Remarks: " + remarks
	}
	return msg
}
