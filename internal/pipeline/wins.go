package pipeline

import (
	"sort"

	"supplierboard/internal"
)

// TallyWins partitions the record subset by product, scores each
// partition's supplier summary, and counts how often each vendor comes
// out on top. Partitions yielding an empty summary contribute no win.
//
// Ties on the maximum composite score go to the first summary row
// encountered, which is group-discovery order, which in turn is record
// order — deterministic for a given input.
func TallyWins(records []internal.CanonicalRecord, cols internal.ColumnSet) []internal.VendorWins {
	itemCol, ok := ItemColumn(cols)
	if !ok {
		return nil
	}

	partitions := []string{}
	byItem := map[string][]internal.CanonicalRecord{}
	for _, rec := range records {
		item := itemValue(rec, itemCol)
		if item == "" {
			continue
		}
		if _, seen := byItem[item]; !seen {
			partitions = append(partitions, item)
		}
		byItem[item] = append(byItem[item], rec)
	}

	order := []string{}
	wins := map[string]int{}
	for _, item := range partitions {
		summaries := Score(Summarize(byItem[item], cols))
		if len(summaries) == 0 {
			continue
		}

		winner := summaries[0]
		for _, s := range summaries[1:] {
			if s.CompositeScore > winner.CompositeScore {
				winner = s
			}
		}
		if _, seen := wins[winner.Vendor]; !seen {
			order = append(order, winner.Vendor)
		}
		wins[winner.Vendor]++
	}

	out := make([]internal.VendorWins, 0, len(order))
	for _, vendor := range order {
		out = append(out, internal.VendorWins{Vendor: vendor, Wins: wins[vendor]})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Wins > out[j].Wins })
	return out
}
