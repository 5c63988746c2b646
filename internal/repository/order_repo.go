package repository

import (
	"time"

	"agriko-backend/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type OrderRepository interface {
	CreateCustomer(customer *model.Customer) error
	FindCustomerByID(id uuid.UUID) (*model.Customer, error)
	SearchCustomers(query string) ([]model.Customer, error)

	CreateOrder(tx *gorm.DB, order *model.OrderTransaction) error
	CreateOrderedProducts(tx *gorm.DB, lines []model.OrderedProduct) error
	FindOrderByID(id uuid.UUID) (*model.OrderTransaction, error)
	FindOrders(officeID *uuid.UUID, start, end time.Time) ([]model.OrderTransaction, error)

	FindOrderedProductForUpdate(tx *gorm.DB, id uuid.UUID) (*model.OrderedProduct, error)
	UpdateOrderedProductStatus(tx *gorm.DB, id uuid.UUID, status model.OrderedProductStatus, updatedBy string) error

	// FindOrderedProductsInRange feeds the sales report and the Excel export.
	FindOrderedProductsInRange(start, end time.Time, cashierID *string) ([]model.OrderedProduct, error)

	// DailyGross returns per-day gross sales of non-canceled lines, for the
	// dashboard chart.
	DailyGross(start, end time.Time) ([]DailySales, error)
}

type DailySales struct {
	Date  string `json:"date"`
	Gross string `json:"gross"`
}

type orderRepo struct {
	db *gorm.DB
}

func NewOrderRepo(db *gorm.DB) OrderRepository {
	return &orderRepo{db}
}

func (r *orderRepo) CreateCustomer(customer *model.Customer) error {
	return r.db.Create(customer).Error
}

func (r *orderRepo) FindCustomerByID(id uuid.UUID) (*model.Customer, error) {
	var customer model.Customer
	if err := r.db.First(&customer, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &customer, nil
}

func (r *orderRepo) SearchCustomers(query string) ([]model.Customer, error) {
	var customers []model.Customer
	q := r.db.Order("name ASC").Limit(50)
	if query != "" {
		q = q.Where("name ILIKE ?", "%"+query+"%")
	}
	err := q.Find(&customers).Error
	return customers, err
}

func (r *orderRepo) CreateOrder(tx *gorm.DB, order *model.OrderTransaction) error {
	return tx.Omit(clause.Associations).Create(order).Error
}

func (r *orderRepo) CreateOrderedProducts(tx *gorm.DB, lines []model.OrderedProduct) error {
	if len(lines) == 0 {
		return nil
	}
	return tx.Omit(clause.Associations).Create(&lines).Error
}

func (r *orderRepo) FindOrderByID(id uuid.UUID) (*model.OrderTransaction, error) {
	var order model.OrderTransaction
	err := r.db.Preload("Customer").Preload("Office").Preload("Cashier").Preload("Products").
		First(&order, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepo) FindOrders(officeID *uuid.UUID, start, end time.Time) ([]model.OrderTransaction, error) {
	var orders []model.OrderTransaction
	q := r.db.Preload("Customer").Preload("Products").
		Where("created_at BETWEEN ? AND ?", start, end).
		Order("created_at DESC")
	if officeID != nil {
		q = q.Where("office_id = ?", *officeID)
	}
	err := q.Find(&orders).Error
	return orders, err
}

func (r *orderRepo) FindOrderedProductForUpdate(tx *gorm.DB, id uuid.UUID) (*model.OrderedProduct, error) {
	var line model.OrderedProduct
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&line, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &line, nil
}

func (r *orderRepo) UpdateOrderedProductStatus(tx *gorm.DB, id uuid.UUID, status model.OrderedProductStatus, updatedBy string) error {
	return tx.Model(&model.OrderedProduct{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_by": updatedBy,
		}).Error
}

func (r *orderRepo) FindOrderedProductsInRange(start, end time.Time, cashierID *string) ([]model.OrderedProduct, error) {
	var lines []model.OrderedProduct
	q := r.db.Where("ordered_products.created_at BETWEEN ? AND ?", start, end).
		Order("ordered_products.created_at ASC")
	if cashierID != nil {
		q = q.Joins("JOIN order_transactions ON order_transactions.id = ordered_products.order_transaction_id").
			Where("order_transactions.cashier_id = ?", *cashierID)
	}
	err := q.Find(&lines).Error
	return lines, err
}

func (r *orderRepo) DailyGross(start, end time.Time) ([]DailySales, error) {
	var results []DailySales

	rows, err := r.db.Model(&model.OrderedProduct{}).
		Select(`DATE(created_at) as date, COALESCE(SUM(sub_total), 0) as gross`).
		Where("created_at BETWEEN ? AND ? AND status <> ?", start, end, model.OrderedCanceled).
		Group("DATE(created_at)").
		Order("date ASC").
		Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var data DailySales
		if err := rows.Scan(&data.Date, &data.Gross); err != nil {
			return nil, err
		}
		results = append(results, data)
	}

	return results, nil
}
