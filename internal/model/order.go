package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Customer struct {
	BaseModel
	Name        string `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	PhoneNumber string `gorm:"type:varchar(20)" json:"phone_number"`
}

type OrderedProductStatus string

const (
	OrderedActive   OrderedProductStatus = "Active"
	OrderedCanceled OrderedProductStatus = "Canceled"
)

// OrderTransaction is one POS checkout. Totals are computed server-side
// from the cart; the client never supplies prices.
type OrderTransaction struct {
	BaseModel
	CustomerID  uuid.UUID       `gorm:"type:uuid;not null;index" json:"customer_id"`
	Customer    *Customer       `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	OfficeID    uuid.UUID       `gorm:"type:uuid;not null;index" json:"office_id"`
	Office      *Office         `gorm:"foreignKey:OfficeID" json:"office,omitempty"`
	TotalAmount decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"total_amount"`
	CashAmount  decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"cash_amount"`
	ChangeDue   decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"change_due"`

	CashierID *string `gorm:"type:varchar(255);index" json:"cashier_id,omitempty"`
	Cashier   *User   `gorm:"foreignKey:CashierID;references:ID" json:"cashier,omitempty"`

	Products []OrderedProduct `gorm:"foreignKey:OrderTransactionID" json:"products,omitempty"`
}

func (OrderTransaction) TableName() string {
	return "order_transactions"
}

// OrderedProduct is one cart line, carrying a denormalized snapshot of the
// product's price, size and category at sale time.
type OrderedProduct struct {
	BaseModel
	OrderTransactionID uuid.UUID `gorm:"type:uuid;not null;index" json:"order_transaction_id"`
	ProductID          uuid.UUID `gorm:"type:uuid;not null;index" json:"product_id"`
	Product            *Product  `gorm:"foreignKey:ProductID" json:"product,omitempty"`

	ProductName string          `gorm:"type:varchar(255);not null" json:"product_name"`
	Size        string          `gorm:"type:varchar(50)" json:"size"`
	Category    string          `gorm:"type:varchar(100)" json:"category"`
	Price       decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"price"`
	Quantity    decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"quantity"`
	SubTotal    decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"sub_total"`

	// Discount applied to this line (original price minus discounted price, times qty)
	DiscountTotal decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"discount_total"`

	Status OrderedProductStatus `gorm:"type:varchar(20);not null;default:'Active'" json:"status"`
}

func (OrderedProduct) TableName() string {
	return "ordered_products"
}
