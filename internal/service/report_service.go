package service

import (
	"fmt"
	"hash/fnv"
	"time"

	"agriko-backend/internal/model"
	"agriko-backend/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// ChartPalette holds the chart colors; a product maps to a palette slot by
// hashing its id, so the same product keeps the same color across renders.
var ChartPalette = [11]string{
	"#16a34a", "#2563eb", "#d97706", "#dc2626", "#7c3aed",
	"#0891b2", "#be185d", "#65a30d", "#ea580c", "#475569", "#ca8a04",
}

// ChartColor picks the palette slot for a product.
func ChartColor(productID uuid.UUID) string {
	h := fnv.New32a()
	h.Write(productID[:])
	return ChartPalette[h.Sum32()%uint32(len(ChartPalette))]
}

// ProductBucket aggregates one product's sales for the chart.
type ProductBucket struct {
	ProductID uuid.UUID       `json:"product_id"`
	Name      string          `json:"name"`
	Quantity  decimal.Decimal `json:"quantity"`
	Total     decimal.Decimal `json:"total"`
	Color     string          `json:"color"`
}

// SalesSummary is the on-screen report: gross over all lines, refund total
// of canceled lines, discount total, and net = gross - (refunds + discounts).
type SalesSummary struct {
	GrossSales decimal.Decimal `json:"gross_sales"`
	Refunds    decimal.Decimal `json:"refunds"`
	Discounts  decimal.Decimal `json:"discounts"`
	NetSales   decimal.Decimal `json:"net_sales"`
	LineCount  int             `json:"line_count"`
	PerProduct []ProductBucket `json:"per_product"`
}

// Summarize folds ordered-product lines into the sales summary.
func Summarize(lines []model.OrderedProduct) SalesSummary {
	summary := SalesSummary{
		GrossSales: decimal.Zero,
		Refunds:    decimal.Zero,
		Discounts:  decimal.Zero,
		NetSales:   decimal.Zero,
		LineCount:  len(lines),
	}

	buckets := make(map[uuid.UUID]*ProductBucket)
	var order []uuid.UUID

	for _, line := range lines {
		summary.Discounts = summary.Discounts.Add(line.DiscountTotal)
		summary.GrossSales = summary.GrossSales.Add(line.Price.Mul(line.Quantity))

		if line.Status == model.OrderedCanceled {
			// Canceled lines stay in gross; their refund is netted out below.
			summary.Refunds = summary.Refunds.Add(line.SubTotal)
			continue
		}

		bucket, ok := buckets[line.ProductID]
		if !ok {
			bucket = &ProductBucket{
				ProductID: line.ProductID,
				Name:      line.ProductName,
				Quantity:  decimal.Zero,
				Total:     decimal.Zero,
				Color:     ChartColor(line.ProductID),
			}
			buckets[line.ProductID] = bucket
			order = append(order, line.ProductID)
		}
		bucket.Quantity = bucket.Quantity.Add(line.Quantity)
		bucket.Total = bucket.Total.Add(line.SubTotal)
	}

	summary.NetSales = summary.GrossSales.Sub(summary.Refunds.Add(summary.Discounts))

	summary.PerProduct = make([]ProductBucket, 0, len(order))
	for _, id := range order {
		summary.PerProduct = append(summary.PerProduct, *buckets[id])
	}
	return summary
}

type ReportService interface {
	GetSalesSummary(start, end time.Time, cashierID *string) (*SalesSummary, error)
	ExportSalesSummary(start, end time.Time, cashierID *string) (*excelize.File, error)
}

type reportService struct {
	orderRepo repository.OrderRepository
}

func NewReportService(orderRepo repository.OrderRepository) ReportService {
	return &reportService{orderRepo: orderRepo}
}

func (s *reportService) GetSalesSummary(start, end time.Time, cashierID *string) (*SalesSummary, error) {
	lines, err := s.orderRepo.FindOrderedProductsInRange(start, end, cashierID)
	if err != nil {
		return nil, err
	}
	summary := Summarize(lines)
	return &summary, nil
}

// ExportSalesSummary renders the same range into a workbook with columns
// [#, Product, Unit Price, Quantity, Sub Total, Status], downloaded by the
// client as Summary.xlsx.
func (s *reportService) ExportSalesSummary(start, end time.Time, cashierID *string) (*excelize.File, error) {
	lines, err := s.orderRepo.FindOrderedProductsInRange(start, end, cashierID)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	sheet := "Sheet1"
	if _, err := f.NewSheet(sheet); err != nil {
		return nil, err
	}

	headers := []string{"#", "Product", "Unit Price", "Quantity", "Sub Total", "Status"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	for i, line := range lines {
		row := i + 2
		name := line.ProductName
		if line.Size != "" {
			name = fmt.Sprintf("%s (%s)", line.ProductName, line.Size)
		}
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), i+1)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), name)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), line.Price.InexactFloat64())
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), line.Quantity.InexactFloat64())
		f.SetCellValue(sheet, fmt.Sprintf("E%d", row), line.SubTotal.InexactFloat64())
		f.SetCellValue(sheet, fmt.Sprintf("F%d", row), string(line.Status))
	}

	// Totals footer
	summary := Summarize(lines)
	footer := len(lines) + 3
	f.SetCellValue(sheet, fmt.Sprintf("B%d", footer), "Gross Sales")
	f.SetCellValue(sheet, fmt.Sprintf("E%d", footer), summary.GrossSales.InexactFloat64())
	f.SetCellValue(sheet, fmt.Sprintf("B%d", footer+1), "Refunds")
	f.SetCellValue(sheet, fmt.Sprintf("E%d", footer+1), summary.Refunds.InexactFloat64())
	f.SetCellValue(sheet, fmt.Sprintf("B%d", footer+2), "Discounts")
	f.SetCellValue(sheet, fmt.Sprintf("E%d", footer+2), summary.Discounts.InexactFloat64())
	f.SetCellValue(sheet, fmt.Sprintf("B%d", footer+3), "Net Sales")
	f.SetCellValue(sheet, fmt.Sprintf("E%d", footer+3), summary.NetSales.InexactFloat64())

	return f, nil
}
