package pipeline

import (
	"fmt"
	"sort"
	"strings"

	"supplierboard/internal"
)

// Fixed composite weights. Lower lead time and lower cost are better
// (inverted terms), a longer payment deadline is better for the buyer.
const (
	weightLeadTime = 0.4
	weightItemCost = 0.4
	weightAPTerms  = 0.2
)

// Score computes the composite score for each summary row in place and
// returns the slice. Each scored column is min-max normalized across
// the table; a flat distribution (max == min) normalizes to 0 uniformly
// since it cannot distinguish suppliers. A row with a missing metric
// receives zero contribution from that metric's term. Scores are only
// comparable within the table they were computed over.
func Score(summaries []internal.SupplierSummary) []internal.SupplierSummary {
	if len(summaries) == 0 {
		return summaries
	}

	normLead := normalizeColumn(summaries, func(s internal.SupplierSummary) *float64 { return s.AvgLeadDays })
	normCost := normalizeColumn(summaries, func(s internal.SupplierSummary) *float64 { return s.AvgItemCost })
	normAP := normalizeColumn(summaries, func(s internal.SupplierSummary) *float64 { return s.AvgAPTerms })

	for i := range summaries {
		score := 0.0
		if normLead[i] != nil {
			score += weightLeadTime * (1 - *normLead[i])
		}
		if normCost[i] != nil {
			score += weightItemCost * (1 - *normCost[i])
		}
		if normAP[i] != nil {
			score += weightAPTerms * *normAP[i]
		}
		summaries[i].CompositeScore = score
	}
	return summaries
}

func normalizeColumn(summaries []internal.SupplierSummary, value func(internal.SupplierSummary) *float64) []*float64 {
	min, max := 0.0, 0.0
	seen := false
	for _, s := range summaries {
		v := value(s)
		if v == nil {
			continue
		}
		if !seen || *v < min {
			min = *v
		}
		if !seen || *v > max {
			max = *v
		}
		seen = true
	}

	out := make([]*float64, len(summaries))
	for i, s := range summaries {
		v := value(s)
		if v == nil {
			continue
		}
		norm := 0.0
		if max > min {
			norm = (*v - min) / (max - min)
		}
		out[i] = &norm
	}
	return out
}

// SortSummaries orders a summary table by any of its columns. Rows with
// a missing metric sort after rows with values in either direction.
func SortSummaries(summaries []internal.SupplierSummary, column string, ascending bool) error {
	var key func(internal.SupplierSummary) float64
	var ptrKey func(internal.SupplierSummary) *float64

	switch column {
	case internal.SumVendor:
		sort.SliceStable(summaries, func(i, j int) bool {
			if ascending {
				return summaries[i].Vendor < summaries[j].Vendor
			}
			return summaries[i].Vendor > summaries[j].Vendor
		})
		return nil
	case internal.SumOrders:
		key = func(s internal.SupplierSummary) float64 { return float64(s.Orders) }
	case internal.SumAvgLeadDays:
		ptrKey = func(s internal.SupplierSummary) *float64 { return s.AvgLeadDays }
	case internal.SumAvgAPTerms:
		ptrKey = func(s internal.SupplierSummary) *float64 { return s.AvgAPTerms }
	case internal.SumAvgItemCost:
		ptrKey = func(s internal.SupplierSummary) *float64 { return s.AvgItemCost }
	case internal.SumTotalSpend:
		key = func(s internal.SupplierSummary) float64 { return s.TotalSpend }
	case internal.SumComposite:
		key = func(s internal.SupplierSummary) float64 { return s.CompositeScore }
	default:
		return fmt.Errorf("unknown summary column: %q (one of %s)", column, strings.Join(SummaryColumns(), ", "))
	}

	sort.SliceStable(summaries, func(i, j int) bool {
		var a, b float64
		if ptrKey != nil {
			pa, pb := ptrKey(summaries[i]), ptrKey(summaries[j])
			if pa == nil {
				return false
			}
			if pb == nil {
				return true
			}
			a, b = *pa, *pb
		} else {
			a, b = key(summaries[i]), key(summaries[j])
		}
		if ascending {
			return a < b
		}
		return a > b
	})
	return nil
}

func SummaryColumns() []string {
	return []string{
		internal.SumVendor, internal.SumOrders, internal.SumAvgLeadDays,
		internal.SumAvgAPTerms, internal.SumAvgItemCost,
		internal.SumTotalSpend, internal.SumComposite,
	}
}
