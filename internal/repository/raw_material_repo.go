package repository

import (
	"agriko-backend/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RawMaterialRepository interface {
	Create(material *model.RawMaterial) error
	FindAll(activeOnly bool) ([]model.RawMaterial, error)
	FindByID(id uuid.UUID) (*model.RawMaterial, error)
	Update(material *model.RawMaterial) error
	Delete(id uuid.UUID) error

	// FindInStockForUpdate locks and returns the raw materials among ids
	// that currently exist in stock. Materials missing from the result are
	// the caller's problem (production skips them).
	FindInStockForUpdate(tx *gorm.DB, ids []uuid.UUID) ([]model.RawMaterial, error)
	UpdateQuantity(tx *gorm.DB, id uuid.UUID, quantity decimal.Decimal, updatedBy string) error
}

type rawMaterialRepo struct {
	db *gorm.DB
}

func NewRawMaterialRepo(db *gorm.DB) RawMaterialRepository {
	return &rawMaterialRepo{db}
}

func (r *rawMaterialRepo) Create(material *model.RawMaterial) error {
	return r.db.Create(material).Error
}

func (r *rawMaterialRepo) FindAll(activeOnly bool) ([]model.RawMaterial, error) {
	var materials []model.RawMaterial
	q := r.db.Order("name ASC")
	if activeOnly {
		q = q.Where("status = ?", model.ProductActive)
	}
	err := q.Find(&materials).Error
	return materials, err
}

func (r *rawMaterialRepo) FindByID(id uuid.UUID) (*model.RawMaterial, error) {
	var material model.RawMaterial
	if err := r.db.First(&material, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &material, nil
}

func (r *rawMaterialRepo) Update(material *model.RawMaterial) error {
	return r.db.Save(material).Error
}

func (r *rawMaterialRepo) Delete(id uuid.UUID) error {
	return r.db.Delete(&model.RawMaterial{}, "id = ?", id).Error
}

func (r *rawMaterialRepo) FindInStockForUpdate(tx *gorm.DB, ids []uuid.UUID) ([]model.RawMaterial, error) {
	var materials []model.RawMaterial
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id IN ?", ids).
		Find(&materials).Error
	return materials, err
}

func (r *rawMaterialRepo) UpdateQuantity(tx *gorm.DB, id uuid.UUID, quantity decimal.Decimal, updatedBy string) error {
	return tx.Model(&model.RawMaterial{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"quantity":   quantity,
			"updated_by": updatedBy,
		}).Error
}
