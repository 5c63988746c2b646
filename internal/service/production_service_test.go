package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"agriko-backend/internal/model"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func rawMaterial(id uuid.UUID, name, qty string) model.RawMaterial {
	m := model.RawMaterial{Name: name, Quantity: dec(qty)}
	m.ID = id
	return m
}

func TestBuildDeductionPlanMultipliesPerUnit(t *testing.T) {
	turmeric := uuid.New()
	honey := uuid.New()

	bom := []model.ProductMaterial{
		{RawMaterialID: turmeric, QuantityPer: dec("0.5")},
		{RawMaterialID: honey, QuantityPer: dec("0.25")},
	}
	inStock := []model.RawMaterial{
		rawMaterial(turmeric, "Turmeric", "10"),
		rawMaterial(honey, "Honey", "3"),
	}

	plan := BuildDeductionPlan(bom, inStock, dec("8"))
	if len(plan) != 2 {
		t.Fatalf("expected 2 deductions, got %d", len(plan))
	}

	if !plan[0].Deduct.Equal(dec("4")) {
		t.Fatalf("turmeric deduction: expected 4, got %s", plan[0].Deduct)
	}
	if !plan[0].NewQuantity.Equal(dec("6")) {
		t.Fatalf("turmeric remaining: expected 6, got %s", plan[0].NewQuantity)
	}
	if !plan[1].Deduct.Equal(dec("2")) {
		t.Fatalf("honey deduction: expected 2, got %s", plan[1].Deduct)
	}
}

func TestBuildDeductionPlanSkipsMissingMaterials(t *testing.T) {
	present := uuid.New()
	missing := uuid.New()

	bom := []model.ProductMaterial{
		{RawMaterialID: missing, QuantityPer: dec("1")},
		{RawMaterialID: present, QuantityPer: dec("2")},
	}
	inStock := []model.RawMaterial{
		rawMaterial(present, "Lemongrass", "50"),
	}

	plan := BuildDeductionPlan(bom, inStock, dec("5"))
	if len(plan) != 1 {
		t.Fatalf("expected 1 deduction (missing material skipped), got %d", len(plan))
	}
	if plan[0].Material.ID != present {
		t.Fatalf("expected the in-stock material to be deducted")
	}
	if !plan[0].NewQuantity.Equal(dec("40")) {
		t.Fatalf("expected remaining 40, got %s", plan[0].NewQuantity)
	}
}

func TestBuildDeductionPlanAllowsNegativeResult(t *testing.T) {
	id := uuid.New()
	bom := []model.ProductMaterial{{RawMaterialID: id, QuantityPer: dec("3")}}
	inStock := []model.RawMaterial{rawMaterial(id, "Ginger", "5")}

	plan := BuildDeductionPlan(bom, inStock, dec("4"))
	if len(plan) != 1 {
		t.Fatalf("expected 1 deduction, got %d", len(plan))
	}
	if !plan[0].NewQuantity.Equal(dec("-7")) {
		t.Fatalf("expected -7 (deduction past zero is allowed), got %s", plan[0].NewQuantity)
	}
}

func TestProductionMessage(t *testing.T) {
	msg := productionMessage("Turmeric Tea", ProductionAdd, dec("10"), dec("35"), "batch 12")
	want := "Produced Turmeric Tea x 10, finished stock now 35. Remarks: batch 12"
	if msg != want {
		t.Fatalf("got %q, want %q", msg, want)
	}

	msg = productionMessage("Turmeric Tea", ProductionAdjust, dec("20"), dec("20"), "")
	want = "Adjusted finished stock of Turmeric Tea to 20"
	if msg != want {
		t.Fatalf("got %q, want %q", msg, want)
	}
}
