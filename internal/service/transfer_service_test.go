package service

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func TestValidateTransferLinesPassesWhenStockCovers(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	lines := []TransferLine{
		{ProductID: a, Quantity: dec("5")},
		{ProductID: b, Quantity: dec("3")},
	}
	available := map[uuid.UUID]decimal.Decimal{a: dec("5"), b: dec("10")}

	if err := ValidateTransferLines(lines, available, nil); err != nil {
		t.Fatalf("expected valid transfer, got %v", err)
	}
}

func TestValidateTransferLinesRejectsAnyOverdraw(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	lines := []TransferLine{
		{ProductID: a, Quantity: dec("2")},
		{ProductID: b, Quantity: dec("7")},
	}
	available := map[uuid.UUID]decimal.Decimal{a: dec("100"), b: dec("6")}
	names := map[uuid.UUID]string{b: "Honey 250ml"}

	err := ValidateTransferLines(lines, available, names)
	if err == nil {
		t.Fatalf("expected overdraw error")
	}

	var overdraw *OverdrawError
	if !errors.As(err, &overdraw) {
		t.Fatalf("expected *OverdrawError, got %T", err)
	}
	if overdraw.ProductName != "Honey 250ml" {
		t.Fatalf("expected product name in error, got %q", overdraw.ProductName)
	}
	if !overdraw.Requested.Equal(dec("7")) || !overdraw.Available.Equal(dec("6")) {
		t.Fatalf("unexpected amounts: requested %s, available %s", overdraw.Requested, overdraw.Available)
	}
}

func TestValidateTransferLinesTreatsMissingStockAsZero(t *testing.T) {
	unknown := uuid.New()
	lines := []TransferLine{{ProductID: unknown, Quantity: dec("1")}}

	err := ValidateTransferLines(lines, map[uuid.UUID]decimal.Decimal{}, nil)
	var overdraw *OverdrawError
	if !errors.As(err, &overdraw) {
		t.Fatalf("expected overdraw for product absent from warehouse, got %v", err)
	}
	if !overdraw.Available.IsZero() {
		t.Fatalf("expected zero available, got %s", overdraw.Available)
	}
}

func TestOverdrawErrorMessage(t *testing.T) {
	err := &OverdrawError{ProductName: "Turmeric Tea", Requested: dec("12"), Available: dec("4")}
	want := "insufficient stock of Turmeric Tea: requested 12, available 4"
	if err.Error() != want {
		t.Fatalf("got %q, want %q", err.Error(), want)
	}
}
