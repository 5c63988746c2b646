package service

import (
	"testing"

	"agriko-backend/internal/model"
)

func TestAdjustmentMessage(t *testing.T) {
	msg := AdjustmentMessage("Turmeric Tea", dec("12"), dec("9"), "spoilage")
	want := "Adjusted quantity of Turmeric Tea from 12 to 9. Remarks: spoilage"
	if msg != want {
		t.Fatalf("got %q, want %q", msg, want)
	}

	msg = AdjustmentMessage("Honey 250ml", dec("0"), dec("40"), "")
	want = "Adjusted quantity of Honey 250ml from 0 to 40"
	if msg != want {
		t.Fatalf("got %q, want %q", msg, want)
	}
}

func TestLowRawMaterialCount(t *testing.T) {
	materials := []model.RawMaterial{
		{Quantity: dec("2"), QuantityWarning: dec("5")},  // low
		{Quantity: dec("5"), QuantityWarning: dec("5")},  // at threshold counts as low
		{Quantity: dec("50"), QuantityWarning: dec("5")}, // fine
		{Quantity: dec("0"), QuantityWarning: dec("0")},  // no threshold set
	}
	if got := LowRawMaterialCount(materials); got != 2 {
		t.Fatalf("expected 2 low materials, got %d", got)
	}
}

func TestLowFinalProductCount(t *testing.T) {
	warned := model.Product{QuantityWarning: dec("10")}
	unwarned := model.Product{}

	rows := []model.FinalProduct{
		{Product: &warned, Quantity: dec("3")},
		{Product: &warned, Quantity: dec("30")},
		{Product: &unwarned, Quantity: dec("0")},
		{Product: nil, Quantity: dec("0")},
	}
	if got := LowFinalProductCount(rows); got != 1 {
		t.Fatalf("expected 1 low final product, got %d", got)
	}
}
