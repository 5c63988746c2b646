package service

import (
	"errors"
	"fmt"

	"agriko-backend/internal/model"
	"agriko-backend/internal/repository"
	"agriko-backend/internal/ws"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrEmptyCart         = errors.New("cart must contain at least one line")
	ErrCustomerRequired  = errors.New("either customer_id or customer_name is required")
	ErrCustomerNotFound  = errors.New("customer not found")
	ErrOrderNotFound     = errors.New("order transaction not found")
	ErrLineNotFound      = errors.New("ordered product not found")
	ErrLineAlreadyVoided = errors.New("ordered product is already canceled")
	ErrInactiveProduct   = errors.New("cart contains an inactive or unknown product")
)

type CartLine struct {
	ProductID uuid.UUID       `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
}

type CheckoutRequest struct {
	CustomerID    *uuid.UUID `json:"customer_id"`
	CustomerName  string     `json:"customer_name"`
	CustomerPhone string     `json:"customer_phone"`

	OfficeID uuid.UUID       `json:"office_id"`
	Cash     decimal.Decimal `json:"cash"`
	Lines    []CartLine      `json:"lines"`
}

// ReceiptLine is one printable line item.
type ReceiptLine struct {
	Quantity    decimal.Decimal `json:"quantity"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Canceled    bool            `json:"canceled"`
}

// Receipt is the structured payload the client renders into its
// fixed-width print layout.
type Receipt struct {
	StoreName    string          `json:"store_name"`
	OfficeName   string          `json:"office_name"`
	OrderID      uuid.UUID       `json:"order_id"`
	CustomerName string          `json:"customer_name"`
	CashierName  string          `json:"cashier_name"`
	Lines        []ReceiptLine   `json:"lines"`
	Total        decimal.Decimal `json:"total"`
	Cash         decimal.Decimal `json:"cash"`
	Change       decimal.Decimal `json:"change"`
	IssuedAt     string          `json:"issued_at"`
}

type OrderService interface {
	Checkout(req *CheckoutRequest, userID, userName string) (*model.OrderTransaction, error)
	CancelOrderedProduct(lineID uuid.UUID, userID, userName string) error
	GetOrderByID(id uuid.UUID) (*model.OrderTransaction, error)
	GetReceipt(orderID uuid.UUID) (*Receipt, error)
	SearchCustomers(query string) ([]model.Customer, error)
}

type orderService struct {
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
	officeRepo  repository.OfficeRepository
	auditRepo   repository.AuditRepository
	db          *gorm.DB
	wsHub       *ws.Hub
}

func NewOrderService(
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	officeRepo repository.OfficeRepository,
	auditRepo repository.AuditRepository,
	db *gorm.DB,
	hub *ws.Hub,
) OrderService {
	return &orderService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		officeRepo:  officeRepo,
		auditRepo:   auditRepo,
		db:          db,
		wsHub:       hub,
	}
}

// CartTotal sums line sub-totals.
func CartTotal(lines []model.OrderedProduct) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.SubTotal)
	}
	return total
}

// ChangeDue is cash minus total, clamped at zero. The till never reports
// negative change; under-tender is the cashier's call.
func ChangeDue(cash, total decimal.Decimal) decimal.Decimal {
	change := cash.Sub(total)
	if change.IsNegative() {
		return decimal.Zero
	}
	return change
}

// Checkout resolves the customer, prices the cart from the live catalog
// (never client-supplied prices), and persists the order with one
// denormalized line row per cart entry.
//
// Office stock is deliberately not decremented here; POS sales and the
// office stock ledger are reconciled via manual adjustment.
func (s *orderService) Checkout(req *CheckoutRequest, userID, userName string) (*model.OrderTransaction, error) {
	if len(req.Lines) == 0 {
		return nil, ErrEmptyCart
	}
	if _, err := s.officeRepo.FindByID(req.OfficeID); err != nil {
		return nil, ErrOfficeNotFound
	}

	// Resolve or create the customer
	var customer *model.Customer
	switch {
	case req.CustomerID != nil:
		found, err := s.orderRepo.FindCustomerByID(*req.CustomerID)
		if err != nil {
			return nil, ErrCustomerNotFound
		}
		customer = found
	case req.CustomerName != "":
		customer = &model.Customer{Name: req.CustomerName, PhoneNumber: req.CustomerPhone}
		customer.CreatedBy = userID
		customer.UpdatedBy = userID
		if err := s.orderRepo.CreateCustomer(customer); err != nil {
			return nil, err
		}
	default:
		return nil, ErrCustomerRequired
	}

	// Price the cart from the catalog
	productIDs := make([]uuid.UUID, len(req.Lines))
	for i, l := range req.Lines {
		productIDs[i] = l.ProductID
	}
	products, err := s.productRepo.FindByIDs(productIDs)
	if err != nil {
		return nil, err
	}
	productByID := make(map[uuid.UUID]model.Product, len(products))
	for _, p := range products {
		productByID[p.ID] = p
	}

	lines := make([]model.OrderedProduct, 0, len(req.Lines))
	for _, cartLine := range req.Lines {
		if !cartLine.Quantity.IsPositive() {
			continue
		}
		product, ok := productByID[cartLine.ProductID]
		if !ok || product.Status != model.ProductActive {
			return nil, ErrInactiveProduct
		}

		price := product.SellingPrice()
		discount := decimal.Zero
		if product.HasDiscount {
			discount = product.Price.Sub(product.DiscountedPrice).Mul(cartLine.Quantity)
		}

		line := model.OrderedProduct{
			ProductID:     product.ID,
			ProductName:   product.Name,
			Size:          product.DisplaySize(),
			Category:      product.Category,
			Price:         price,
			Quantity:      cartLine.Quantity,
			SubTotal:      price.Mul(cartLine.Quantity),
			DiscountTotal: discount,
			Status:        model.OrderedActive,
		}
		line.CreatedBy = userID
		line.UpdatedBy = userID
		lines = append(lines, line)
	}
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}

	total := CartTotal(lines)
	change := ChangeDue(req.Cash, total)

	order := &model.OrderTransaction{
		CustomerID:  customer.ID,
		OfficeID:    req.OfficeID,
		TotalAmount: total,
		CashAmount:  req.Cash,
		ChangeDue:   change,
	}
	cashier := userID
	order.CashierID = &cashier
	order.CreatedBy = userID
	order.UpdatedBy = userID

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.orderRepo.CreateOrder(tx, order); err != nil {
			return err
		}
		for i := range lines {
			lines[i].OrderTransactionID = order.ID
		}
		if err := s.orderRepo.CreateOrderedProducts(tx, lines); err != nil {
			return err
		}
		return s.auditRepo.CreateChangeLog(tx, &model.ChangeLog{
			UserID:     userID,
			EntityType: model.AuditOrder,
			EntityID:   order.ID,
			Message: fmt.Sprintf("Checkout for %s: %d line(s), total %s, cash %s, change %s",
				customer.Name, len(lines), total.String(), req.Cash.String(), change.String()),
		})
	})

	if err != nil {
		recordError(s.auditRepo, "Checkout", "order_transactions", req, err)
		return nil, err
	}
	order.Products = lines
	order.Customer = customer

	s.wsHub.Publish(ws.Event{
		Type:    ws.EventOrderCreated,
		Message: fmt.Sprintf("%s rang up a sale of %s", userName, total.String()),
		Payload: map[string]interface{}{
			"order_id":  order.ID,
			"office_id": req.OfficeID,
			"total":     total.String(),
		},
	})

	return order, nil
}

// CancelOrderedProduct marks a single sold line as canceled (refund).
func (s *orderService) CancelOrderedProduct(lineID uuid.UUID, userID, userName string) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		line, err := s.orderRepo.FindOrderedProductForUpdate(tx, lineID)
		if err != nil {
			return ErrLineNotFound
		}
		if line.Status == model.OrderedCanceled {
			return ErrLineAlreadyVoided
		}
		if err := s.orderRepo.UpdateOrderedProductStatus(tx, line.ID, model.OrderedCanceled, userID); err != nil {
			return err
		}
		return s.auditRepo.CreateChangeLog(tx, &model.ChangeLog{
			UserID:     userID,
			EntityType: model.AuditOrderedItem,
			EntityID:   line.ID,
			Message: fmt.Sprintf("Canceled %s x %s (refund %s)",
				line.ProductName, line.Quantity.String(), line.SubTotal.String()),
		})
	})

	if err != nil {
		if !errors.Is(err, ErrLineNotFound) && !errors.Is(err, ErrLineAlreadyVoided) {
			recordError(s.auditRepo, "CancelOrderedProduct", "ordered_products", map[string]string{"id": lineID.String()}, err)
		}
		return err
	}
	return nil
}

func (s *orderService) GetOrderByID(id uuid.UUID) (*model.OrderTransaction, error) {
	order, err := s.orderRepo.FindOrderByID(id)
	if err != nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// GetReceipt builds the printable payload for an order.
func (s *orderService) GetReceipt(orderID uuid.UUID) (*Receipt, error) {
	order, err := s.orderRepo.FindOrderByID(orderID)
	if err != nil {
		return nil, ErrOrderNotFound
	}

	receipt := &Receipt{
		StoreName: "Agriko Multi-Trade",
		OrderID:   order.ID,
		Total:     order.TotalAmount,
		Cash:      order.CashAmount,
		Change:    order.ChangeDue,
		IssuedAt:  order.CreatedAt.Format("2006-01-02 15:04:05"),
	}
	if order.Office != nil {
		receipt.OfficeName = order.Office.Name
	}
	if order.Customer != nil {
		receipt.CustomerName = order.Customer.Name
	}
	if order.Cashier != nil {
		receipt.CashierName = order.Cashier.FullName
	}

	for _, line := range order.Products {
		description := line.ProductName
		if line.Size != "" {
			description += " " + line.Size
		}
		receipt.Lines = append(receipt.Lines, ReceiptLine{
			Quantity:    line.Quantity,
			Description: description,
			Amount:      line.SubTotal,
			Canceled:    line.Status == model.OrderedCanceled,
		})
	}

	return receipt, nil
}

func (s *orderService) SearchCustomers(query string) ([]model.Customer, error) {
	return s.orderRepo.SearchCustomers(query)
}
