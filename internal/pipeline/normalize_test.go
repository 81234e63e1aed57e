package pipeline

import (
	"testing"

	"supplierboard/internal"
)

func TestNormalizeSynonyms(t *testing.T) {
	grid := internal.RawGrid{
		{" vendor name ", "ORDER NO.", "Item Description", "item cost", "A/P Terms", "Warehouse"},
		{"Acme", "PO-1", "Widget", "10.50", "30", "North"},
	}

	ds := Normalize(grid, 0)
	if len(ds.Records) != 1 {
		t.Fatalf("records=%d", len(ds.Records))
	}
	for _, col := range []string{
		internal.ColVendor, internal.ColOrder, internal.ColItem,
		internal.ColItemCost, internal.ColAPTerms,
	} {
		if !ds.Columns[col] {
			t.Fatalf("column %q not mapped", col)
		}
	}

	rec := ds.Records[0]
	if rec.Vendor != "Acme" {
		t.Fatalf("vendor=%q", rec.Vendor)
	}
	if rec.ItemCost == nil || *rec.ItemCost != 10.5 {
		t.Fatalf("item cost=%v", rec.ItemCost)
	}
	if rec.APTerms == nil || *rec.APTerms != 30 {
		t.Fatalf("ap terms=%v", rec.APTerms)
	}
	if rec.Extra["Warehouse"] != "North" {
		t.Fatalf("unmapped column lost: %v", rec.Extra)
	}
}

func TestNormalizeCanonicalPassthrough(t *testing.T) {
	// A header that already uses canonical names is a no-op rename.
	grid := internal.RawGrid{
		{"Vendor", "Order", "Item", "Item Cost", "AP Terms"},
		{"Acme", "PO-1", "Widget", "10", "30"},
	}

	ds := Normalize(grid, 0)
	for _, col := range []string{
		internal.ColVendor, internal.ColOrder, internal.ColItem,
		internal.ColItemCost, internal.ColAPTerms,
	} {
		if !ds.Columns[col] {
			t.Fatalf("column %q missing", col)
		}
	}
	if len(ds.Records[0].Extra) != 0 {
		t.Fatalf("unexpected extra columns: %v", ds.Records[0].Extra)
	}
}

func TestNormalizeDropsPreambleAndEmptyRows(t *testing.T) {
	grid := internal.RawGrid{
		{"Quarterly orders"},
		{"Vendor", "Order"},
		{"", ""},
		{"Acme", "PO-1"},
		{},
		{"Blue Supply", "PO-2"},
	}

	ds := Normalize(grid, 1)
	if ds.HeaderRow != 1 {
		t.Fatalf("header row=%d", ds.HeaderRow)
	}
	if len(ds.Records) != 2 {
		t.Fatalf("records=%d", len(ds.Records))
	}
}

func TestNormalizeCoercionFailureIsPerCell(t *testing.T) {
	grid := internal.RawGrid{
		{"Vendor", "Item Cost", "Quantity"},
		{"Acme", "not a number", "5"},
	}

	ds := Normalize(grid, 0)
	rec := ds.Records[0]
	if rec.ItemCost != nil {
		t.Fatalf("want missing item cost, got %v", *rec.ItemCost)
	}
	if rec.Quantity == nil || *rec.Quantity != 5 {
		t.Fatalf("quantity=%v", rec.Quantity)
	}
}

func TestNormalizeDuplicateLabelFirstWins(t *testing.T) {
	grid := internal.RawGrid{
		{"Vendor", "vendor name"},
		{"Acme", "Shadow Corp"},
	}

	ds := Normalize(grid, 0)
	if ds.Records[0].Vendor != "Acme" {
		t.Fatalf("vendor=%q, want first occurrence", ds.Records[0].Vendor)
	}
}

func TestNormalizeEmptyAfterHeader(t *testing.T) {
	grid := internal.RawGrid{{"Vendor", "Order"}}

	ds := Normalize(grid, 0)
	if len(ds.Records) != 0 {
		t.Fatalf("records=%d, want 0", len(ds.Records))
	}
}

func TestNormalizeRaggedRows(t *testing.T) {
	grid := internal.RawGrid{
		{"Vendor", "Order", "Item Cost"},
		{"Acme"},
		{"Blue Supply", "PO-2", "12", "stray"},
	}

	ds := Normalize(grid, 0)
	if len(ds.Records) != 2 {
		t.Fatalf("records=%d", len(ds.Records))
	}
	if ds.Records[0].Order != nil {
		t.Fatalf("short row should have missing order")
	}
	if ds.Records[1].ItemCost == nil || *ds.Records[1].ItemCost != 12 {
		t.Fatalf("item cost=%v", ds.Records[1].ItemCost)
	}
}
