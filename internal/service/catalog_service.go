package service

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"agriko-backend/internal/model"
	"agriko-backend/internal/repository"
	"agriko-backend/pkg/validator"
)

var (
	ErrRawMaterialNotFound = errors.New("raw material not found")
	ErrDiscountNotLower    = errors.New("discounted price must be lower than the regular price")
	ErrBadMaterialRef      = errors.New("bill of materials references an unknown raw material")
)

type CatalogService interface {
	// Products
	CreateProduct(req *ProductRequest, actorID string) (*model.Product, error)
	UpdateProduct(id uuid.UUID, req *ProductRequest, actorID string) (*model.Product, error)
	DeleteProduct(id uuid.UUID) error
	GetProducts(activeOnly bool) ([]model.Product, error)
	GetProductByID(id uuid.UUID) (*model.Product, error)

	// Raw materials
	CreateRawMaterial(req *RawMaterialRequest, actorID string) (*model.RawMaterial, error)
	UpdateRawMaterial(id uuid.UUID, req *RawMaterialRequest, actorID string) (*model.RawMaterial, error)
	DeleteRawMaterial(id uuid.UUID) error
	GetRawMaterials(activeOnly bool) ([]model.RawMaterial, error)

	// Offices
	CreateOffice(req *OfficeRequest, actorID string) (*model.Office, error)
	UpdateOffice(id uuid.UUID, req *OfficeRequest, actorID string) (*model.Office, error)
	DeleteOffice(id uuid.UUID) error
	GetOffices() ([]model.Office, error)
	GetOfficeByID(id uuid.UUID) (*model.Office, error)
}

type MaterialLine struct {
	RawMaterialID uuid.UUID       `json:"raw_material_id" validate:"uuid_required"`
	QuantityPer   decimal.Decimal `json:"quantity_per" validate:"decimal_gt0"`
}

type ProductRequest struct {
	Name            string          `json:"name" validate:"required"`
	Size            string          `json:"size"`
	CustomSize      string          `json:"custom_size"`
	Category        string          `json:"category"`
	Price           decimal.Decimal `json:"price" validate:"decimal_gte0"`
	HasDiscount     bool            `json:"has_discount"`
	DiscountedPrice decimal.Decimal `json:"discounted_price"`
	QuantityWarning decimal.Decimal `json:"quantity_warning"`
	Status          string          `json:"status" validate:"omitempty,oneof=Active Inactive"`
	Materials       []MaterialLine  `json:"materials" validate:"dive"`
}

type RawMaterialRequest struct {
	Name            string          `json:"name" validate:"required"`
	Unit            string          `json:"unit"`
	QuantityWarning decimal.Decimal `json:"quantity_warning"`
	Status          string          `json:"status" validate:"omitempty,oneof=Active Inactive"`
}

type OfficeRequest struct {
	Name     string `json:"name" validate:"required"`
	Type     string `json:"type" validate:"required,oneof=WAREHOUSE RETAIL"`
	Address  string `json:"address"`
	IsActive *bool  `json:"is_active"`
}

type catalogService struct {
	productRepo     repository.ProductRepository
	rawMaterialRepo repository.RawMaterialRepository
	officeRepo      repository.OfficeRepository
}

func NewCatalogService(productRepo repository.ProductRepository, rawMaterialRepo repository.RawMaterialRepository, officeRepo repository.OfficeRepository) CatalogService {
	return &catalogService{
		productRepo:     productRepo,
		rawMaterialRepo: rawMaterialRepo,
		officeRepo:      officeRepo,
	}
}

func validateRequest(req interface{}) error {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return fmt.Errorf("Validation failed: Field '%s' failed on tag '%s'", firstErr.FailedField, firstErr.Tag)
	}
	return nil
}

// checkProductRules enforces the discount invariant and verifies every
// bill-of-materials line points at a raw material that actually exists.
func (s *catalogService) checkProductRules(req *ProductRequest) error {
	if req.HasDiscount && req.DiscountedPrice.GreaterThanOrEqual(req.Price) {
		return ErrDiscountNotLower
	}
	for _, line := range req.Materials {
		if _, err := s.rawMaterialRepo.FindByID(line.RawMaterialID); err != nil {
			return ErrBadMaterialRef
		}
	}
	return nil
}

func (s *catalogService) CreateProduct(req *ProductRequest, actorID string) (*model.Product, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	if err := s.checkProductRules(req); err != nil {
		return nil, err
	}

	product := &model.Product{
		Name:            req.Name,
		Size:            req.Size,
		CustomSize:      req.CustomSize,
		Category:        req.Category,
		Price:           req.Price,
		HasDiscount:     req.HasDiscount,
		DiscountedPrice: req.DiscountedPrice,
		QuantityWarning: req.QuantityWarning,
		Status:          model.ProductActive,
	}
	if req.Status != "" {
		product.Status = model.ProductStatus(req.Status)
	}
	for i, line := range req.Materials {
		product.Materials = append(product.Materials, model.ProductMaterial{
			RawMaterialID: line.RawMaterialID,
			QuantityPer:   line.QuantityPer,
			SortOrder:     i,
		})
	}
	product.CreatedBy = actorID
	product.UpdatedBy = actorID

	if err := s.productRepo.Create(product); err != nil {
		return nil, err
	}
	return s.productRepo.FindByID(product.ID)
}

func (s *catalogService) UpdateProduct(id uuid.UUID, req *ProductRequest, actorID string) (*model.Product, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	if err := s.checkProductRules(req); err != nil {
		return nil, err
	}

	product, err := s.productRepo.FindByID(id)
	if err != nil {
		return nil, ErrProductNotFound
	}

	product.Name = req.Name
	product.Size = req.Size
	product.CustomSize = req.CustomSize
	product.Category = req.Category
	product.Price = req.Price
	product.HasDiscount = req.HasDiscount
	product.DiscountedPrice = req.DiscountedPrice
	product.QuantityWarning = req.QuantityWarning
	if req.Status != "" {
		product.Status = model.ProductStatus(req.Status)
	}
	product.UpdatedBy = actorID
	product.Materials = nil

	if err := s.productRepo.Update(product); err != nil {
		return nil, err
	}

	materials := make([]model.ProductMaterial, 0, len(req.Materials))
	for _, line := range req.Materials {
		materials = append(materials, model.ProductMaterial{
			RawMaterialID: line.RawMaterialID,
			QuantityPer:   line.QuantityPer,
		})
	}
	if err := s.productRepo.ReplaceMaterials(id, materials); err != nil {
		return nil, err
	}

	return s.productRepo.FindByID(id)
}

func (s *catalogService) DeleteProduct(id uuid.UUID) error {
	if _, err := s.productRepo.FindByID(id); err != nil {
		return ErrProductNotFound
	}
	return s.productRepo.Delete(id)
}

func (s *catalogService) GetProducts(activeOnly bool) ([]model.Product, error) {
	return s.productRepo.FindAll(activeOnly)
}

func (s *catalogService) GetProductByID(id uuid.UUID) (*model.Product, error) {
	product, err := s.productRepo.FindByID(id)
	if err != nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}

func (s *catalogService) CreateRawMaterial(req *RawMaterialRequest, actorID string) (*model.RawMaterial, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	material := &model.RawMaterial{
		Name:            req.Name,
		Unit:            req.Unit,
		QuantityWarning: req.QuantityWarning,
		Status:          model.ProductActive,
	}
	if req.Status != "" {
		material.Status = model.ProductStatus(req.Status)
	}
	material.CreatedBy = actorID
	material.UpdatedBy = actorID

	if err := s.rawMaterialRepo.Create(material); err != nil {
		return nil, err
	}
	return material, nil
}

func (s *catalogService) UpdateRawMaterial(id uuid.UUID, req *RawMaterialRequest, actorID string) (*model.RawMaterial, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	material, err := s.rawMaterialRepo.FindByID(id)
	if err != nil {
		return nil, ErrRawMaterialNotFound
	}

	material.Name = req.Name
	material.Unit = req.Unit
	material.QuantityWarning = req.QuantityWarning
	if req.Status != "" {
		material.Status = model.ProductStatus(req.Status)
	}
	material.UpdatedBy = actorID

	if err := s.rawMaterialRepo.Update(material); err != nil {
		return nil, err
	}
	return material, nil
}

func (s *catalogService) DeleteRawMaterial(id uuid.UUID) error {
	if _, err := s.rawMaterialRepo.FindByID(id); err != nil {
		return ErrRawMaterialNotFound
	}
	return s.rawMaterialRepo.Delete(id)
}

func (s *catalogService) GetRawMaterials(activeOnly bool) ([]model.RawMaterial, error) {
	return s.rawMaterialRepo.FindAll(activeOnly)
}

func (s *catalogService) CreateOffice(req *OfficeRequest, actorID string) (*model.Office, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	office := &model.Office{
		Name:     req.Name,
		Type:     model.OfficeType(req.Type),
		Address:  req.Address,
		IsActive: true,
	}
	if req.IsActive != nil {
		office.IsActive = *req.IsActive
	}
	office.CreatedBy = actorID
	office.UpdatedBy = actorID

	if err := s.officeRepo.Create(office); err != nil {
		return nil, err
	}
	return office, nil
}

func (s *catalogService) UpdateOffice(id uuid.UUID, req *OfficeRequest, actorID string) (*model.Office, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	office, err := s.officeRepo.FindByID(id)
	if err != nil {
		return nil, ErrOfficeNotFound
	}

	office.Name = req.Name
	office.Type = model.OfficeType(req.Type)
	office.Address = req.Address
	if req.IsActive != nil {
		office.IsActive = *req.IsActive
	}
	office.UpdatedBy = actorID

	if err := s.officeRepo.Update(office); err != nil {
		return nil, err
	}
	return office, nil
}

func (s *catalogService) DeleteOffice(id uuid.UUID) error {
	if _, err := s.officeRepo.FindByID(id); err != nil {
		return ErrOfficeNotFound
	}
	return s.officeRepo.Delete(id)
}

func (s *catalogService) GetOffices() ([]model.Office, error) {
	return s.officeRepo.FindAll()
}

func (s *catalogService) GetOfficeByID(id uuid.UUID) (*model.Office, error) {
	office, err := s.officeRepo.FindByID(id)
	if err != nil {
		return nil, ErrOfficeNotFound
	}
	return office, nil
}
