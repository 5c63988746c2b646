package service

import (
	"testing"

	"github.com/shopspring/decimal"

	"agriko-backend/internal/model"
)

func TestCartTotalSumsSubTotals(t *testing.T) {
	lines := []model.OrderedProduct{
		{SubTotal: dec("120.50")},
		{SubTotal: dec("79.50")},
		{SubTotal: dec("0.25")},
	}
	if total := CartTotal(lines); !total.Equal(dec("200.25")) {
		t.Fatalf("expected 200.25, got %s", total)
	}
}

func TestCartTotalEmptyCartIsZero(t *testing.T) {
	if total := CartTotal(nil); !total.IsZero() {
		t.Fatalf("expected zero, got %s", total)
	}
}

func TestChangeDue(t *testing.T) {
	cases := []struct {
		name  string
		cash  string
		total string
		want  string
	}{
		{"exact", "100", "100", "0"},
		{"overpay", "500", "342.75", "157.25"},
		{"underpay clamps to zero", "50", "80", "0"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ChangeDue(dec(tc.cash), dec(tc.total))
			if !got.Equal(dec(tc.want)) {
				t.Fatalf("expected %s, got %s", tc.want, got)
			}
		})
	}
}

func TestDiscountedLinePricing(t *testing.T) {
	product := model.Product{
		Name:            "Turmeric Tea",
		Price:           dec("100"),
		HasDiscount:     true,
		DiscountedPrice: dec("80"),
	}

	price := product.SellingPrice()
	if !price.Equal(dec("80")) {
		t.Fatalf("expected selling price 80, got %s", price)
	}

	qty := dec("3")
	discount := product.Price.Sub(product.DiscountedPrice).Mul(qty)
	if !discount.Equal(dec("60")) {
		t.Fatalf("expected line discount 60, got %s", discount)
	}
	if sub := price.Mul(qty); !sub.Equal(dec("240")) {
		t.Fatalf("expected sub total 240, got %s", sub)
	}
}

func TestChangeDueNeverNegative(t *testing.T) {
	change := ChangeDue(decimal.Zero, dec("999"))
	if change.IsNegative() {
		t.Fatalf("change must never be negative, got %s", change)
	}
}
