package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product sizes. "Custom Size" carries its free-text value in CustomSize.
const (
	SizeCustom = "Custom Size"
)

type ProductStatus string

const (
	ProductActive   ProductStatus = "Active"
	ProductInactive ProductStatus = "Inactive"
)

type Product struct {
	BaseModel
	Name       string `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	Size       string `gorm:"type:varchar(50)" json:"size"`
	CustomSize string `gorm:"type:varchar(50)" json:"custom_size"`
	Category   string `gorm:"type:varchar(100)" json:"category"`

	Price           decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"price"`
	HasDiscount     bool            `gorm:"default:false" json:"has_discount"`
	DiscountedPrice decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"discounted_price"`

	QuantityWarning decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"quantity_warning"`
	Status          ProductStatus   `gorm:"type:varchar(20);not null;default:'Active'" json:"status" validate:"omitempty,oneof=Active Inactive"`

	// Bill of materials: raw materials consumed per unit produced
	Materials []ProductMaterial `gorm:"foreignKey:ProductID" json:"materials,omitempty"`
}

// DisplaySize resolves the size label shown on receipts and snapshots.
func (p *Product) DisplaySize() string {
	if p.Size == SizeCustom && p.CustomSize != "" {
		return p.CustomSize
	}
	return p.Size
}

// SellingPrice is the effective unit price at sale time.
func (p *Product) SellingPrice() decimal.Decimal {
	if p.HasDiscount {
		return p.DiscountedPrice
	}
	return p.Price
}

// ProductMaterial is one bill-of-materials line: quantity of a raw material
// consumed per unit of the final product.
type ProductMaterial struct {
	BaseModel
	ProductID     uuid.UUID       `gorm:"type:uuid;not null;index" json:"product_id"`
	RawMaterialID uuid.UUID       `gorm:"type:uuid;not null" json:"raw_material_id" validate:"uuid_required"`
	RawMaterial   *RawMaterial    `gorm:"foreignKey:RawMaterialID" json:"raw_material,omitempty"`
	QuantityPer   decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"quantity_per"`
	SortOrder     int             `gorm:"default:0" json:"sort_order"`
}

func (ProductMaterial) TableName() string {
	return "product_materials"
}
