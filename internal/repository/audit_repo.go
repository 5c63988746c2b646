package repository

import (
	"agriko-backend/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AuditRepository interface {
	// CreateChangeLog writes an audit row inside the caller's transaction.
	CreateChangeLog(tx *gorm.DB, log *model.ChangeLog) error
	CreateChangeLogs(tx *gorm.DB, logs []model.ChangeLog) error
	FindChangeLogs(entityType model.AuditEntity, entityID *uuid.UUID, limit, offset int) ([]model.ChangeLog, int64, error)

	// CreateErrorLog is written outside any transaction, best effort.
	CreateErrorLog(log *model.ErrorLog) error
}

type auditRepo struct {
	db *gorm.DB
}

func NewAuditRepo(db *gorm.DB) AuditRepository {
	return &auditRepo{db}
}

func (r *auditRepo) CreateChangeLog(tx *gorm.DB, log *model.ChangeLog) error {
	return tx.Create(log).Error
}

func (r *auditRepo) CreateChangeLogs(tx *gorm.DB, logs []model.ChangeLog) error {
	if len(logs) == 0 {
		return nil
	}
	return tx.Create(&logs).Error
}

func (r *auditRepo) FindChangeLogs(entityType model.AuditEntity, entityID *uuid.UUID, limit, offset int) ([]model.ChangeLog, int64, error) {
	var logs []model.ChangeLog
	var total int64

	q := r.db.Model(&model.ChangeLog{})
	if entityType != "" {
		q = q.Where("entity_type = ?", entityType)
	}
	if entityID != nil {
		q = q.Where("entity_id = ?", *entityID)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.Order("created_at DESC").Limit(limit).Offset(offset).Find(&logs).Error
	return logs, total, err
}

func (r *auditRepo) CreateErrorLog(log *model.ErrorLog) error {
	return r.db.Create(log).Error
}
