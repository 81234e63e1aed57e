package pipeline

import (
	"strings"

	"supplierboard/internal"
	"supplierboard/internal/util"
)

// Case-insensitive synonym table mapping free-form spreadsheet labels
// to canonical column names. Labels with no entry pass through as-is
// and are ignored by aggregation and scoring.
var columnSynonyms = map[string]string{
	"vendor":           internal.ColVendor,
	"vendor name":      internal.ColVendor,
	"vendor no":        internal.ColVendorNo,
	"vendor no.":       internal.ColVendorNo,
	"order":            internal.ColOrder,
	"order no":         internal.ColOrder,
	"order no.":        internal.ColOrder,
	"item no":          internal.ColItemNo,
	"item no.":         internal.ColItemNo,
	"item":             internal.ColItem,
	"item description": internal.ColItem,
	"item cost":        internal.ColItemCost,
	"quantity":         internal.ColQuantity,
	"cost per order":   internal.ColCostPerOrder,
	"ap terms":         internal.ColAPTerms,
	"a/p terms":        internal.ColAPTerms,
	"order date":       internal.ColOrderDate,
	"arrival date":     internal.ColArrivalDate,
}

// Normalize turns a raw grid and a located header row into a Dataset:
// header labels are trimmed and mapped through the synonym table, rows
// at or above the header are dropped, fully empty rows are dropped, and
// numeric/date cells are coerced per cell, failures becoming missing
// values rather than row failures.
//
// When two labels map to the same canonical column the first occurrence
// wins; later duplicates are ignored. Zero data rows after the header is
// a valid "no data" outcome, not an error.
func Normalize(grid internal.RawGrid, headerRow int) *internal.Dataset {
	labels := make([]string, 0, len(grid[headerRow]))
	for _, cell := range grid[headerRow] {
		label := strings.TrimSpace(cell)
		if mapped, ok := columnSynonyms[strings.ToLower(label)]; ok {
			label = mapped
		}
		labels = append(labels, label)
	}

	colIdx := map[string]int{}
	for i, label := range labels {
		if label == "" {
			continue
		}
		if _, seen := colIdx[label]; !seen {
			colIdx[label] = i
		}
	}

	columns := internal.ColumnSet{}
	for _, canonical := range []string{
		internal.ColVendor, internal.ColVendorNo, internal.ColOrder,
		internal.ColItemNo, internal.ColItem, internal.ColItemCost,
		internal.ColQuantity, internal.ColCostPerOrder, internal.ColAPTerms,
		internal.ColOrderDate, internal.ColArrivalDate,
	} {
		if _, ok := colIdx[canonical]; ok {
			columns[canonical] = true
		}
	}

	records := make([]internal.CanonicalRecord, 0, len(grid)-headerRow-1)
	for _, row := range grid[headerRow+1:] {
		if rowEmpty(row) {
			continue
		}

		rec := internal.CanonicalRecord{
			Vendor:       cellAt(row, colIdx, internal.ColVendor),
			VendorNo:     stringCell(row, colIdx, internal.ColVendorNo),
			Order:        stringCell(row, colIdx, internal.ColOrder),
			ItemNo:       stringCell(row, colIdx, internal.ColItemNo),
			Item:         stringCell(row, colIdx, internal.ColItem),
			ItemCost:     util.ParseNumber(cellAt(row, colIdx, internal.ColItemCost)),
			Quantity:     util.ParseNumber(cellAt(row, colIdx, internal.ColQuantity)),
			CostPerOrder: util.ParseNumber(cellAt(row, colIdx, internal.ColCostPerOrder)),
			APTerms:      util.ParseNumber(cellAt(row, colIdx, internal.ColAPTerms)),
			OrderDate:    util.ParseDate(cellAt(row, colIdx, internal.ColOrderDate)),
			ArrivalDate:  util.ParseDate(cellAt(row, colIdx, internal.ColArrivalDate)),
		}

		for label, idx := range colIdx {
			if columns[label] {
				continue
			}
			if value := strings.TrimSpace(cellOf(row, idx)); value != "" {
				if rec.Extra == nil {
					rec.Extra = map[string]string{}
				}
				rec.Extra[label] = value
			}
		}

		records = append(records, rec)
	}

	return &internal.Dataset{HeaderRow: headerRow, Columns: columns, Records: records}
}

func rowEmpty(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// Rows below the header are not guaranteed to carry a cell for every
// column, so all access is bounds-checked.
func cellOf(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

func cellAt(row []string, colIdx map[string]int, column string) string {
	idx, ok := colIdx[column]
	if !ok {
		return ""
	}
	return strings.TrimSpace(cellOf(row, idx))
}

func stringCell(row []string, colIdx map[string]int, column string) *string {
	value := cellAt(row, colIdx, column)
	if value == "" {
		return nil
	}
	return util.StringPtr(value)
}
