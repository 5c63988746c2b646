package service

import (
	"testing"

	"github.com/google/uuid"

	"agriko-backend/internal/model"
)

func TestSummarizeNetsRefundsAndDiscounts(t *testing.T) {
	productA, productB := uuid.New(), uuid.New()

	lines := []model.OrderedProduct{
		{
			ProductID:     productA,
			ProductName:   "Turmeric Tea",
			Price:         dec("10"),
			Quantity:      dec("2"),
			SubTotal:      dec("20"),
			DiscountTotal: dec("5"),
			Status:        model.OrderedActive,
		},
		{
			ProductID:   productB,
			ProductName: "Honey 250ml",
			Price:       dec("10"),
			Quantity:    dec("1"),
			SubTotal:    dec("10"),
			Status:      model.OrderedCanceled,
		},
	}

	summary := Summarize(lines)

	if !summary.GrossSales.Equal(dec("30")) {
		t.Fatalf("gross must count every line including canceled: expected 30, got %s", summary.GrossSales)
	}
	if !summary.Refunds.Equal(dec("10")) {
		t.Fatalf("expected refunds 10, got %s", summary.Refunds)
	}
	if !summary.Discounts.Equal(dec("5")) {
		t.Fatalf("expected discounts 5, got %s", summary.Discounts)
	}
	if !summary.NetSales.Equal(dec("15")) {
		t.Fatalf("expected net 15 (gross - refunds - discounts), got %s", summary.NetSales)
	}
	if summary.LineCount != 2 {
		t.Fatalf("expected 2 lines, got %d", summary.LineCount)
	}
}

func TestSummarizeExcludesCanceledFromBuckets(t *testing.T) {
	product := uuid.New()
	lines := []model.OrderedProduct{
		{ProductID: product, ProductName: "Lemongrass Oil", Price: dec("50"), Quantity: dec("1"), SubTotal: dec("50"), Status: model.OrderedActive},
		{ProductID: product, ProductName: "Lemongrass Oil", Price: dec("50"), Quantity: dec("2"), SubTotal: dec("100"), Status: model.OrderedCanceled},
	}

	summary := Summarize(lines)
	if len(summary.PerProduct) != 1 {
		t.Fatalf("expected 1 bucket, got %d", len(summary.PerProduct))
	}
	bucket := summary.PerProduct[0]
	if !bucket.Quantity.Equal(dec("1")) {
		t.Fatalf("canceled quantity must not be bucketed: expected 1, got %s", bucket.Quantity)
	}
	if !bucket.Total.Equal(dec("50")) {
		t.Fatalf("expected bucket total 50, got %s", bucket.Total)
	}
}

func TestSummarizeBucketsKeepFirstSeenOrder(t *testing.T) {
	first, second := uuid.New(), uuid.New()
	lines := []model.OrderedProduct{
		{ProductID: first, ProductName: "A", Price: dec("1"), Quantity: dec("1"), SubTotal: dec("1"), Status: model.OrderedActive},
		{ProductID: second, ProductName: "B", Price: dec("1"), Quantity: dec("1"), SubTotal: dec("1"), Status: model.OrderedActive},
		{ProductID: first, ProductName: "A", Price: dec("1"), Quantity: dec("1"), SubTotal: dec("1"), Status: model.OrderedActive},
	}

	summary := Summarize(lines)
	if len(summary.PerProduct) != 2 {
		t.Fatalf("expected 2 buckets, got %d", len(summary.PerProduct))
	}
	if summary.PerProduct[0].ProductID != first || summary.PerProduct[1].ProductID != second {
		t.Fatalf("buckets must keep first-seen order")
	}
	if !summary.PerProduct[0].Quantity.Equal(dec("2")) {
		t.Fatalf("expected merged quantity 2, got %s", summary.PerProduct[0].Quantity)
	}
}

func TestChartColorIsDeterministic(t *testing.T) {
	id := uuid.New()
	first := ChartColor(id)
	for i := 0; i < 10; i++ {
		if got := ChartColor(id); got != first {
			t.Fatalf("same product must map to same color: %s vs %s", first, got)
		}
	}

	found := false
	for _, c := range ChartPalette {
		if c == first {
			found = true
			break
		}
	}
	if !found {
		t.Fatalf("color %s not in palette", first)
	}
}
