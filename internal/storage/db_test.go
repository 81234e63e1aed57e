package storage

import (
	"fmt"
	"path/filepath"
	"testing"

	"supplierboard/internal"
)

func fp(v float64) *float64 { return &v }

func openTestDB(t *testing.T, maxEntries int) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "app.db"), maxEntries)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestDatasetRoundTrip(t *testing.T) {
	db := openTestDB(t, 4)

	ds := &internal.Dataset{
		HeaderRow: 2,
		Columns:   internal.ColumnSet{internal.ColVendor: true, internal.ColItemCost: true},
		Records: []internal.CanonicalRecord{
			{Vendor: "Acme", ItemCost: fp(10.5), Extra: map[string]string{"Warehouse": "North"}},
			{Vendor: "Blue Supply"},
		},
	}

	if err := db.PutDataset("hash-1", "orders.xlsx", ds); err != nil {
		t.Fatal(err)
	}

	got, err := db.GetDataset("hash-1")
	if err != nil {
		t.Fatal(err)
	}
	if got == nil {
		t.Fatal("cache miss for stored hash")
	}
	if got.HeaderRow != 2 || len(got.Records) != 2 {
		t.Fatalf("got %+v", got)
	}
	if !got.Columns[internal.ColItemCost] {
		t.Fatalf("columns lost: %v", got.Columns)
	}
	if got.Records[0].ItemCost == nil || *got.Records[0].ItemCost != 10.5 {
		t.Fatalf("record lost: %+v", got.Records[0])
	}
	if got.Records[0].Extra["Warehouse"] != "North" {
		t.Fatalf("extra columns lost: %+v", got.Records[0].Extra)
	}

	miss, err := db.GetDataset("no-such-hash")
	if err != nil {
		t.Fatal(err)
	}
	if miss != nil {
		t.Fatalf("want nil on miss, got %+v", miss)
	}
}

func TestDatasetEvictionBound(t *testing.T) {
	db := openTestDB(t, 2)

	ds := &internal.Dataset{Columns: internal.ColumnSet{}, Records: nil}
	for i := 0; i < 5; i++ {
		if err := db.PutDataset(fmt.Sprintf("hash-%d", i), "orders.xlsx", ds); err != nil {
			t.Fatal(err)
		}
	}

	n, err := db.CountDatasets()
	if err != nil {
		t.Fatal(err)
	}
	if n > 2 {
		t.Fatalf("cache holds %d entries, bound is 2", n)
	}
}

func TestInsertRun(t *testing.T) {
	db := openTestDB(t, 4)
	err := db.InsertRun("trace-1", "hash-1",
		map[string]float64{"totalMs": 12},
		map[string]int{"records": 3})
	if err != nil {
		t.Fatal(err)
	}
}
