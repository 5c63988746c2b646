package service

import (
	"time"

	"github.com/shopspring/decimal"

	"agriko-backend/internal/model"
	"agriko-backend/internal/repository"
)

type DashboardService interface {
	GetStats() (*DashboardStats, error)
	GetSalesChart(days int) ([]repository.DailySales, error)
}

type DashboardStats struct {
	TotalProducts    int             `json:"total_products"`
	TodayGross       decimal.Decimal `json:"today_gross"`
	TodayOrders      int             `json:"today_orders"`
	PendingTransfers int             `json:"pending_transfers"`
	LowRawMaterials  int             `json:"low_raw_materials"`
	LowFinalProducts int             `json:"low_final_products"`
}

type dashboardService struct {
	productRepo     repository.ProductRepository
	rawMaterialRepo repository.RawMaterialRepository
	stockRepo       repository.StockRepository
	transferRepo    repository.TransferRepository
	orderRepo       repository.OrderRepository
}

func NewDashboardService(
	productRepo repository.ProductRepository,
	rawMaterialRepo repository.RawMaterialRepository,
	stockRepo repository.StockRepository,
	transferRepo repository.TransferRepository,
	orderRepo repository.OrderRepository,
) DashboardService {
	return &dashboardService{
		productRepo:     productRepo,
		rawMaterialRepo: rawMaterialRepo,
		stockRepo:       stockRepo,
		transferRepo:    transferRepo,
		orderRepo:       orderRepo,
	}
}

// LowRawMaterialCount counts materials at or below their warning threshold.
// Rows with a zero threshold never count as low.
func LowRawMaterialCount(materials []model.RawMaterial) int {
	count := 0
	for _, m := range materials {
		if m.QuantityWarning.IsPositive() && m.Quantity.LessThanOrEqual(m.QuantityWarning) {
			count++
		}
	}
	return count
}

// LowFinalProductCount counts warehouse rows at or below the product's
// warning threshold. Rows without a preloaded product are skipped.
func LowFinalProductCount(rows []model.FinalProduct) int {
	count := 0
	for _, row := range rows {
		if row.Product == nil {
			continue
		}
		if row.Product.QuantityWarning.IsPositive() && row.Quantity.LessThanOrEqual(row.Product.QuantityWarning) {
			count++
		}
	}
	return count
}

func (s *dashboardService) GetStats() (*DashboardStats, error) {
	stats := &DashboardStats{TodayGross: decimal.Zero}

	products, err := s.productRepo.FindAll(true)
	if err != nil {
		return nil, err
	}
	stats.TotalProducts = len(products)

	materials, err := s.rawMaterialRepo.FindAll(true)
	if err != nil {
		return nil, err
	}
	stats.LowRawMaterials = LowRawMaterialCount(materials)

	finals, err := s.stockRepo.FindFinalProducts()
	if err != nil {
		return nil, err
	}
	stats.LowFinalProducts = LowFinalProductCount(finals)

	pending, err := s.transferRepo.FindAll(nil, model.TransferToReceive)
	if err != nil {
		return nil, err
	}
	stats.PendingTransfers = len(pending)

	now := time.Now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	orders, err := s.orderRepo.FindOrders(nil, dayStart, now)
	if err != nil {
		return nil, err
	}
	stats.TodayOrders = len(orders)
	for _, order := range orders {
		stats.TodayGross = stats.TodayGross.Add(order.TotalAmount)
	}

	return stats, nil
}

func (s *dashboardService) GetSalesChart(days int) ([]repository.DailySales, error) {
	if days <= 0 {
		days = 30
	}
	end := time.Now()
	start := end.AddDate(0, 0, -days)
	return s.orderRepo.DailyGross(start, end)
}
