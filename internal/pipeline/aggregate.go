package pipeline

import (
	"supplierboard/internal"
	"supplierboard/internal/util"
)

// The mean-aggregated metrics, as a fixed dispatch table: column
// presence is decided once against the dataset schema, not per record.
var meanMetrics = []struct {
	column string
	value  func(internal.CanonicalRecord) *float64
}{
	{internal.ColLeadTime, func(r internal.CanonicalRecord) *float64 { return r.LeadTimeDays }},
	{internal.ColAPTerms, func(r internal.CanonicalRecord) *float64 { return r.APTerms }},
	{internal.ColItemCost, func(r internal.CanonicalRecord) *float64 { return r.ItemCost }},
}

type meanAcc struct {
	sum float64
	n   int
}

type vendorAcc struct {
	orders int
	means  map[string]*meanAcc
	spend  float64
}

// Summarize groups records by vendor and computes the per-group summary
// statistics. Records with an empty vendor are excluded outright; they
// must not collapse into an empty-string bucket. Group order is
// first-encounter order over the input; callers sort explicitly.
//
// Means skip missing values; a group with no measurable values keeps a
// nil metric. A metric column absent from the dataset schema is
// synthesized as a constant 0 across all groups so downstream scoring
// can assume its presence. Empty input yields an empty table.
func Summarize(records []internal.CanonicalRecord, cols internal.ColumnSet) []internal.SupplierSummary {
	order := []string{}
	accs := map[string]*vendorAcc{}

	for _, rec := range records {
		if rec.Vendor == "" {
			continue
		}
		acc, ok := accs[rec.Vendor]
		if !ok {
			acc = &vendorAcc{means: map[string]*meanAcc{}}
			accs[rec.Vendor] = acc
			order = append(order, rec.Vendor)
		}

		acc.orders++
		for _, metric := range meanMetrics {
			if !cols[metric.column] {
				continue
			}
			if v := metric.value(rec); v != nil {
				m := acc.means[metric.column]
				if m == nil {
					m = &meanAcc{}
					acc.means[metric.column] = m
				}
				m.sum += *v
				m.n++
			}
		}
		if cols[internal.ColCostPerOrder] && rec.CostPerOrder != nil {
			acc.spend += *rec.CostPerOrder
		}
	}

	out := make([]internal.SupplierSummary, 0, len(order))
	for _, vendor := range order {
		acc := accs[vendor]
		out = append(out, internal.SupplierSummary{
			Vendor:      vendor,
			Orders:      acc.orders,
			AvgLeadDays: metricMean(acc, cols, internal.ColLeadTime),
			AvgAPTerms:  metricMean(acc, cols, internal.ColAPTerms),
			AvgItemCost: metricMean(acc, cols, internal.ColItemCost),
			TotalSpend:  acc.spend,
		})
	}
	return out
}

func metricMean(acc *vendorAcc, cols internal.ColumnSet, column string) *float64 {
	if !cols[column] {
		// Absent column, synthesized as 0 for every group.
		return util.FloatPtr(0)
	}
	m := acc.means[column]
	if m == nil || m.n == 0 {
		return nil
	}
	return util.FloatPtr(m.sum / float64(m.n))
}
