package model

import "github.com/shopspring/decimal"

// RawMaterial is production-side input stock (e.g. turmeric, honey).
// Quantity is decimal because purchases arrive in fractional units (kg, liters).
type RawMaterial struct {
	BaseModel
	Name            string          `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	Unit            string          `gorm:"type:varchar(20)" json:"unit"`
	Quantity        decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"quantity"`
	QuantityWarning decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"quantity_warning"`
	Status          ProductStatus   `gorm:"type:varchar(20);not null;default:'Active'" json:"status" validate:"omitempty,oneof=Active Inactive"`
}
