package pipeline

import (
	"testing"

	"supplierboard/internal"
)

func TestTallyWins(t *testing.T) {
	records := []internal.CanonicalRecord{
		// Widget: B wins (cheaper, faster is split; AP favors B).
		{Vendor: "A", Item: sp("Widget"), LeadTimeDays: fp(5), ItemCost: fp(10), APTerms: fp(30)},
		{Vendor: "B", Item: sp("Widget"), LeadTimeDays: fp(10), ItemCost: fp(5), APTerms: fp(60)},
		// Gadget: only A bids, so A wins by default.
		{Vendor: "A", Item: sp("Gadget"), LeadTimeDays: fp(3), ItemCost: fp(2), APTerms: fp(30)},
		// Bolt: only B bids.
		{Vendor: "B", Item: sp("Bolt"), LeadTimeDays: fp(1), ItemCost: fp(1), APTerms: fp(10)},
		// No item value: contributes to no partition.
		{Vendor: "A", LeadTimeDays: fp(1), ItemCost: fp(1), APTerms: fp(1)},
	}

	wins := TallyWins(records, metricCols())
	if len(wins) != 2 {
		t.Fatalf("wins=%+v", wins)
	}

	total := 0
	byVendor := map[string]int{}
	for _, w := range wins {
		byVendor[w.Vendor] = w.Wins
		total += w.Wins
	}
	if byVendor["B"] != 2 || byVendor["A"] != 1 {
		t.Fatalf("tally=%v", byVendor)
	}
	// Sum of tallies equals the number of non-empty partitions.
	if total != 3 {
		t.Fatalf("total=%d want 3", total)
	}
	if wins[0].Vendor != "B" {
		t.Fatalf("tally not sorted descending: %+v", wins)
	}
}

func TestTallyWinsTieBreakFirstEncountered(t *testing.T) {
	// Identical metrics: every term normalizes flat, both vendors score
	// the same, and the first-encountered group keeps the win.
	records := []internal.CanonicalRecord{
		{Vendor: "Second", Item: sp("Widget"), LeadTimeDays: fp(5), ItemCost: fp(10), APTerms: fp(30)},
		{Vendor: "First", Item: sp("Widget"), LeadTimeDays: fp(5), ItemCost: fp(10), APTerms: fp(30)},
	}

	wins := TallyWins(records, metricCols())
	if len(wins) != 1 || wins[0].Vendor != "Second" {
		t.Fatalf("wins=%+v", wins)
	}
}

func TestTallyWinsNoItemColumn(t *testing.T) {
	records := []internal.CanonicalRecord{
		{Vendor: "A", LeadTimeDays: fp(5)},
	}
	cols := internal.ColumnSet{internal.ColVendor: true, internal.ColLeadTime: true}

	if wins := TallyWins(records, cols); len(wins) != 0 {
		t.Fatalf("wins=%+v, want none without a partition key", wins)
	}
}

func TestTallyWinsVendorlessPartition(t *testing.T) {
	// A partition whose records all lack a vendor yields an empty
	// summary and no tally entry.
	records := []internal.CanonicalRecord{
		{Vendor: "", Item: sp("Widget"), LeadTimeDays: fp(5)},
		{Vendor: "A", Item: sp("Gadget"), LeadTimeDays: fp(5)},
	}

	wins := TallyWins(records, metricCols())
	if len(wins) != 1 || wins[0].Vendor != "A" || wins[0].Wins != 1 {
		t.Fatalf("wins=%+v", wins)
	}
}
