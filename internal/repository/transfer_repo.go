package repository

import (
	"time"

	"agriko-backend/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TransferRepository interface {
	Create(tx *gorm.DB, transfer *model.TransferTransaction) error
	FindAll(officeID *uuid.UUID, status model.TransferStatus) ([]model.TransferTransaction, error)
	FindByID(id uuid.UUID) (*model.TransferTransaction, error)

	// MarkReceived flips status conditionally. Returns the number of rows
	// updated: zero means the transfer was already received (or missing),
	// which is how double-receive is rejected at the data layer.
	MarkReceived(tx *gorm.DB, id uuid.UUID, receivedBy string) (int64, error)
}

type transferRepo struct {
	db *gorm.DB
}

func NewTransferRepo(db *gorm.DB) TransferRepository {
	return &transferRepo{db}
}

func (r *transferRepo) Create(tx *gorm.DB, transfer *model.TransferTransaction) error {
	return tx.Create(transfer).Error
}

func (r *transferRepo) FindAll(officeID *uuid.UUID, status model.TransferStatus) ([]model.TransferTransaction, error) {
	var transfers []model.TransferTransaction
	q := r.db.Preload("Office").Order("transfer_date DESC, created_at DESC")
	if officeID != nil {
		q = q.Where("office_id = ?", *officeID)
	}
	if status != "" {
		q = q.Where("status = ?", status)
	}
	err := q.Find(&transfers).Error
	return transfers, err
}

func (r *transferRepo) FindByID(id uuid.UUID) (*model.TransferTransaction, error) {
	var transfer model.TransferTransaction
	if err := r.db.Preload("Office").First(&transfer, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &transfer, nil
}

func (r *transferRepo) MarkReceived(tx *gorm.DB, id uuid.UUID, receivedBy string) (int64, error) {
	now := time.Now()
	result := tx.Model(&model.TransferTransaction{}).
		Where("id = ? AND status = ?", id, model.TransferToReceive).
		Updates(map[string]interface{}{
			"status":      model.TransferReceived,
			"received_by": receivedBy,
			"received_at": now,
			"updated_by":  receivedBy,
		})
	return result.RowsAffected, result.Error
}
