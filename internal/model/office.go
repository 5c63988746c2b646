package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OfficeType string

const (
	OfficeWarehouse OfficeType = "WAREHOUSE"
	OfficeRetail    OfficeType = "RETAIL"
)

// Office is a physical location (retail store or warehouse) holding its own stock ledger.
type Office struct {
	BaseModel
	Name     string     `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	Type     OfficeType `gorm:"type:varchar(20);not null;default:'RETAIL'" json:"type" validate:"required,oneof=WAREHOUSE RETAIL"`
	Address  string     `gorm:"type:text" json:"address"`
	IsActive bool       `gorm:"default:true" json:"is_active"`
}

// OfficeProduct is in-stock quantity of a product at a specific office.
// One row per (office, product) pair, enforced by a unique index.
type OfficeProduct struct {
	BaseModel
	OfficeID  uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_office_product" json:"office_id" validate:"uuid_required"`
	Office    *Office         `gorm:"foreignKey:OfficeID" json:"office,omitempty"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_office_product" json:"product_id" validate:"uuid_required"`
	Product   *Product        `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Quantity  decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"quantity"`
}

func (OfficeProduct) TableName() string {
	return "office_products"
}
