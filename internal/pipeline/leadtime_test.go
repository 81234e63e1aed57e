package pipeline

import (
	"testing"

	"supplierboard/internal"
)

func TestDeriveLeadTime(t *testing.T) {
	grid := internal.RawGrid{
		{"Vendor", "Order Date", "Arrival Date"},
		{"Acme", "2024-01-01", "2024-01-15"},
		{"Acme", "2024-01-10", "2024-01-05"}, // arrival before order
		{"Acme", "sometime", "2024-01-20"},   // unparseable order date
	}

	ds := Normalize(grid, 0)
	DeriveLeadTime(ds)

	if !ds.Columns[internal.ColLeadTime] {
		t.Fatal("lead time column not derived")
	}
	if lt := ds.Records[0].LeadTimeDays; lt == nil || *lt != 14 {
		t.Fatalf("lead time=%v want 14", lt)
	}
	if ds.Records[1].LeadTimeDays != nil {
		t.Fatalf("negative lead time must be missing, got %v", *ds.Records[1].LeadTimeDays)
	}
	if ds.Records[2].LeadTimeDays != nil {
		t.Fatal("lead time from unparseable date must be missing")
	}
}

func TestDeriveLeadTimeAbsentColumn(t *testing.T) {
	grid := internal.RawGrid{
		{"Vendor", "Order Date"},
		{"Acme", "2024-01-01"},
	}

	ds := Normalize(grid, 0)
	DeriveLeadTime(ds)

	if ds.Columns[internal.ColLeadTime] {
		t.Fatal("lead time column must stay absent when a date column is missing")
	}
	if ds.Records[0].LeadTimeDays != nil {
		t.Fatal("lead time must not be zero-filled")
	}
}
