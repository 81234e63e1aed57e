package pipeline

import (
	"supplierboard/internal"
)

// Range is an inclusive numeric interval.
type Range struct {
	Min float64
	Max float64
}

func (r Range) contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// Filter describes a record subset. Zero values mean "no restriction".
// Range filters apply only when the corresponding column is present in
// the dataset; a record with a missing value never satisfies a range.
type Filter struct {
	Vendors  []string
	LeadTime *Range
	APTerms  *Range
	ItemCost *Range
	Product  string
}

// ApplyFilter returns a new subset; the canonical record slice is never
// mutated. An empty result is the "no data" signal, not an error.
func ApplyFilter(ds *internal.Dataset, f Filter) []internal.CanonicalRecord {
	allowed := map[string]bool{}
	for _, v := range f.Vendors {
		allowed[v] = true
	}

	itemCol, hasItemCol := ItemColumn(ds.Columns)

	out := make([]internal.CanonicalRecord, 0, len(ds.Records))
	for _, rec := range ds.Records {
		if len(allowed) > 0 && !allowed[rec.Vendor] {
			continue
		}
		if f.LeadTime != nil && ds.Columns[internal.ColLeadTime] && !inRange(rec.LeadTimeDays, *f.LeadTime) {
			continue
		}
		if f.APTerms != nil && ds.Columns[internal.ColAPTerms] && !inRange(rec.APTerms, *f.APTerms) {
			continue
		}
		if f.ItemCost != nil && ds.Columns[internal.ColItemCost] && !inRange(rec.ItemCost, *f.ItemCost) {
			continue
		}
		if f.Product != "" {
			if !hasItemCol || itemValue(rec, itemCol) != f.Product {
				continue
			}
		}
		out = append(out, rec)
	}
	return out
}

func inRange(v *float64, r Range) bool {
	return v != nil && r.contains(*v)
}

// ItemColumn picks the product partition key: the description column
// when present, the item number as fallback.
func ItemColumn(cols internal.ColumnSet) (string, bool) {
	if cols[internal.ColItem] {
		return internal.ColItem, true
	}
	if cols[internal.ColItemNo] {
		return internal.ColItemNo, true
	}
	return "", false
}

func itemValue(rec internal.CanonicalRecord, column string) string {
	var v *string
	switch column {
	case internal.ColItem:
		v = rec.Item
	case internal.ColItemNo:
		v = rec.ItemNo
	}
	if v == nil {
		return ""
	}
	return *v
}

// Vendors lists the distinct non-empty vendor names in record order.
func Vendors(records []internal.CanonicalRecord) []string {
	seen := map[string]bool{}
	out := []string{}
	for _, rec := range records {
		if rec.Vendor == "" || seen[rec.Vendor] {
			continue
		}
		seen[rec.Vendor] = true
		out = append(out, rec.Vendor)
	}
	return out
}
