package repository

import (
	"agriko-backend/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OfficeRepository interface {
	Create(office *model.Office) error
	FindAll() ([]model.Office, error)
	FindByID(id uuid.UUID) (*model.Office, error)
	Update(office *model.Office) error
	Delete(id uuid.UUID) error
}

type officeRepo struct {
	db *gorm.DB
}

func NewOfficeRepo(db *gorm.DB) OfficeRepository {
	return &officeRepo{db}
}

func (r *officeRepo) Create(office *model.Office) error {
	return r.db.Create(office).Error
}

func (r *officeRepo) FindAll() ([]model.Office, error) {
	var offices []model.Office
	err := r.db.Order("name ASC").Find(&offices).Error
	return offices, err
}

func (r *officeRepo) FindByID(id uuid.UUID) (*model.Office, error) {
	var office model.Office
	if err := r.db.First(&office, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &office, nil
}

func (r *officeRepo) Update(office *model.Office) error {
	return r.db.Save(office).Error
}

func (r *officeRepo) Delete(id uuid.UUID) error {
	return r.db.Delete(&model.Office{}, "id = ?", id).Error
}
