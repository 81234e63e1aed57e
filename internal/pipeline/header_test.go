package pipeline

import (
	"errors"
	"testing"

	"supplierboard/internal"
)

func TestLocateHeader(t *testing.T) {
	cases := []struct {
		name string
		grid internal.RawGrid
		want int
	}{
		{
			name: "first row",
			grid: internal.RawGrid{{"Vendor", "Order", "Item Cost"}},
			want: 0,
		},
		{
			name: "below title block",
			grid: internal.RawGrid{
				{"Procurement Report Q3"},
				{},
				{"Vendor Name", "Order No.", "Item Cost"},
				{"Acme", "PO-1", "10"},
			},
			want: 2,
		},
		{
			name: "case insensitive substring",
			grid: internal.RawGrid{
				{"notes"},
				{"preferred vendor list", "x"},
			},
			want: 1,
		},
		{
			name: "lowest matching row wins",
			grid: internal.RawGrid{
				{"Vendor summary"},
				{"Vendor", "Order"},
			},
			want: 0,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := LocateHeader(tc.grid)
			if err != nil {
				t.Fatal(err)
			}
			if got != tc.want {
				t.Fatalf("got row %d want %d", got, tc.want)
			}
		})
	}
}

func TestLocateHeaderNotFound(t *testing.T) {
	grids := []internal.RawGrid{
		{},
		{{"Supplier", "Order"}, {"Acme", "PO-1"}},
		// Marker outside the five-row scan window.
		{{"a"}, {"b"}, {"c"}, {"d"}, {"e"}, {"Vendor", "Order"}},
	}

	for _, grid := range grids {
		if _, err := LocateHeader(grid); !errors.Is(err, ErrHeaderNotFound) {
			t.Fatalf("want ErrHeaderNotFound, got %v", err)
		}
	}
}
