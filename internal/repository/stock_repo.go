package repository

import (
	"agriko-backend/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// StockRepository covers the two stock ledgers: office products (per-office
// retail stock) and final products (warehouse finished goods).
type StockRepository interface {
	// Office products
	FindOfficeProducts(officeID uuid.UUID) ([]model.OfficeProduct, error)
	FindOfficeProductByID(id uuid.UUID) (*model.OfficeProduct, error)
	FindOfficeProductForUpdate(tx *gorm.DB, id uuid.UUID) (*model.OfficeProduct, error)
	FindOfficeProductsForUpdate(tx *gorm.DB, officeID uuid.UUID, productIDs []uuid.UUID) ([]model.OfficeProduct, error)
	CreateOfficeProduct(tx *gorm.DB, op *model.OfficeProduct) error
	UpdateOfficeProductQuantity(tx *gorm.DB, id uuid.UUID, quantity decimal.Decimal, updatedBy string) error

	// Final products
	FindFinalProducts() ([]model.FinalProduct, error)
	FindFinalProductByID(id uuid.UUID) (*model.FinalProduct, error)
	FindFinalProductForUpdate(tx *gorm.DB, productID uuid.UUID) (*model.FinalProduct, error)
	FindFinalProductsForUpdate(tx *gorm.DB, productIDs []uuid.UUID) ([]model.FinalProduct, error)
	CreateFinalProduct(tx *gorm.DB, fp *model.FinalProduct) error
	UpdateFinalProductQuantity(tx *gorm.DB, id uuid.UUID, quantity decimal.Decimal, updatedBy string) error
}

type stockRepo struct {
	db *gorm.DB
}

func NewStockRepo(db *gorm.DB) StockRepository {
	return &stockRepo{db}
}

func (r *stockRepo) FindOfficeProducts(officeID uuid.UUID) ([]model.OfficeProduct, error) {
	var rows []model.OfficeProduct
	err := r.db.Preload("Product").
		Where("office_id = ?", officeID).
		Joins("JOIN products ON products.id = office_products.product_id").
		Order("products.name ASC").
		Find(&rows).Error
	return rows, err
}

func (r *stockRepo) FindOfficeProductByID(id uuid.UUID) (*model.OfficeProduct, error) {
	var row model.OfficeProduct
	if err := r.db.Preload("Product").Preload("Office").First(&row, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *stockRepo) FindOfficeProductForUpdate(tx *gorm.DB, id uuid.UUID) (*model.OfficeProduct, error) {
	var row model.OfficeProduct
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&row, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *stockRepo) FindOfficeProductsForUpdate(tx *gorm.DB, officeID uuid.UUID, productIDs []uuid.UUID) ([]model.OfficeProduct, error) {
	var rows []model.OfficeProduct
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("office_id = ? AND product_id IN ?", officeID, productIDs).
		Find(&rows).Error
	return rows, err
}

func (r *stockRepo) CreateOfficeProduct(tx *gorm.DB, op *model.OfficeProduct) error {
	return tx.Create(op).Error
}

func (r *stockRepo) UpdateOfficeProductQuantity(tx *gorm.DB, id uuid.UUID, quantity decimal.Decimal, updatedBy string) error {
	return tx.Model(&model.OfficeProduct{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"quantity":   quantity,
			"updated_by": updatedBy,
		}).Error
}

func (r *stockRepo) FindFinalProducts() ([]model.FinalProduct, error) {
	var rows []model.FinalProduct
	err := r.db.Preload("Product").
		Joins("JOIN products ON products.id = final_products.product_id").
		Order("products.name ASC").
		Find(&rows).Error
	return rows, err
}

func (r *stockRepo) FindFinalProductByID(id uuid.UUID) (*model.FinalProduct, error) {
	var row model.FinalProduct
	if err := r.db.Preload("Product").First(&row, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *stockRepo) FindFinalProductForUpdate(tx *gorm.DB, productID uuid.UUID) (*model.FinalProduct, error) {
	var row model.FinalProduct
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&row, "product_id = ?", productID).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *stockRepo) FindFinalProductsForUpdate(tx *gorm.DB, productIDs []uuid.UUID) ([]model.FinalProduct, error) {
	var rows []model.FinalProduct
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("product_id IN ?", productIDs).
		Find(&rows).Error
	return rows, err
}

func (r *stockRepo) CreateFinalProduct(tx *gorm.DB, fp *model.FinalProduct) error {
	return tx.Create(fp).Error
}

func (r *stockRepo) UpdateFinalProductQuantity(tx *gorm.DB, id uuid.UUID, quantity decimal.Decimal, updatedBy string) error {
	return tx.Model(&model.FinalProduct{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"quantity":   quantity,
			"updated_by": updatedBy,
		}).Error
}
