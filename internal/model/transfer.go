package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type TransferStatus string

const (
	TransferToReceive TransferStatus = "To Receive"
	TransferReceived  TransferStatus = "Received"
)

// TransferProduct is one line of a transfer, snapshotted at dispatch time.
// The snapshot is deliberately denormalized: later edits to the product
// catalog must not change historical transfer records.
type TransferProduct struct {
	ProductID uuid.UUID       `json:"product_id"`
	Name      string          `json:"name"`
	Size      string          `json:"size"`
	Category  string          `json:"category"`
	Quantity  decimal.Decimal `json:"quantity"`
}

// TransferProducts stores the line snapshot as a jsonb column.
type TransferProducts []TransferProduct

func (t TransferProducts) Value() (driver.Value, error) {
	return json.Marshal(t)
}

func (t *TransferProducts) Scan(value interface{}) error {
	b, ok := value.([]byte)
	if !ok {
		if s, ok := value.(string); ok {
			b = []byte(s)
		} else {
			return errors.New("transfer products: unsupported scan type")
		}
	}
	return json.Unmarshal(b, t)
}

// TransferTransaction is a shipment of final products from the warehouse
// to a destination office. Lifecycle: "To Receive" -> "Received", once.
type TransferTransaction struct {
	BaseModel
	OfficeID     uuid.UUID        `gorm:"type:uuid;not null;index" json:"office_id" validate:"uuid_required"`
	Office       *Office          `gorm:"foreignKey:OfficeID" json:"office,omitempty"`
	TransferDate time.Time        `gorm:"type:date;not null" json:"transfer_date" validate:"required"`
	Memo         string           `gorm:"type:text" json:"memo"`
	Status       TransferStatus   `gorm:"type:varchar(20);not null;default:'To Receive'" json:"status"`
	Products     TransferProducts `gorm:"type:jsonb;not null" json:"products"`
	TransferedBy string           `gorm:"type:varchar(255)" json:"transfered_by"`
	ReceivedBy   string           `gorm:"type:varchar(255)" json:"received_by"`
	ReceivedAt   *time.Time       `json:"received_at,omitempty"`
}

func (TransferTransaction) TableName() string {
	return "transfer_transactions"
}
