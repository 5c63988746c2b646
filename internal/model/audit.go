package model

import "github.com/google/uuid"

// Audit entity kinds. The change log stores a (kind, id) pair instead of
// one nullable FK column per referenced table.
type AuditEntity string

const (
	AuditOfficeProduct AuditEntity = "office_product"
	AuditRawMaterial   AuditEntity = "raw_material"
	AuditFinalProduct  AuditEntity = "final_product"
	AuditProduct       AuditEntity = "product"
	AuditTransfer      AuditEntity = "transfer_transaction"
	AuditOrder         AuditEntity = "order_transaction"
	AuditOrderedItem   AuditEntity = "ordered_product"
)

// ChangeLog is an append-only, human-readable audit trail row.
// Rows are written inside the transaction of the change they describe,
// so a failed workflow leaves no orphan log entries.
type ChangeLog struct {
	BaseModel
	UserID     string      `gorm:"type:varchar(255);not null;index" json:"user_id"`
	EntityType AuditEntity `gorm:"type:varchar(50);not null;index:idx_change_logs_entity" json:"entity_type"`
	EntityID   uuid.UUID   `gorm:"type:uuid;not null;index:idx_change_logs_entity" json:"entity_id"`
	Message    string      `gorm:"type:text;not null" json:"message"`
}

func (ChangeLog) TableName() string {
	return "change_logs"
}

// ErrorLog is an append-only diagnostic row written when a workflow fails.
// Fire-and-forget: never read back by the application.
type ErrorLog struct {
	BaseModel
	System      string `gorm:"type:varchar(50);not null;default:'agriko'" json:"system"`
	Transaction string `gorm:"type:varchar(100);not null" json:"transaction"`
	TableName_  string `gorm:"column:table_name;type:varchar(100)" json:"table_name"`
	Payload     string `gorm:"type:text" json:"payload"`
	Message     string `gorm:"type:text;not null" json:"message"`
}

func (ErrorLog) TableName() string {
	return "error_logs"
}
