package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// FinalProduct is finished-goods stock held at the warehouse, before
// transfer to an office. One row per product.
type FinalProduct struct {
	BaseModel
	ProductID uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex" json:"product_id" validate:"uuid_required"`
	Product   *Product        `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Quantity  decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"quantity"`
}

func (FinalProduct) TableName() string {
	return "final_products"
}
