package internal

import "time"

// Canonical column names. The normalizer maps free-form spreadsheet
// headers onto this closed set; everything else passes through unmapped.
const (
	ColVendor       = "Vendor"
	ColVendorNo     = "Vendor No"
	ColOrder        = "Order"
	ColItemNo       = "Item No"
	ColItem         = "Item"
	ColItemCost     = "Item Cost"
	ColQuantity     = "Quantity"
	ColCostPerOrder = "Cost per order"
	ColAPTerms      = "AP Terms"
	ColOrderDate    = "Order Date"
	ColArrivalDate  = "Arrival Date"
	ColLeadTime     = "Lead Time"
)

// Summary column names, used for sorting and export.
const (
	SumVendor      = "Vendor"
	SumOrders      = "Orders"
	SumAvgLeadDays = "Avg_Lead_Days"
	SumAvgAPTerms  = "Avg_AP_Terms"
	SumAvgItemCost = "Avg_Item_Cost"
	SumTotalSpend  = "Total_Spend"
	SumComposite   = "Composite_Score"
)

// RawGrid is the decoded spreadsheet: rows of text cells, no fixed
// column count guaranteed per row.
type RawGrid [][]string

// ColumnSet records which canonical columns a dataset actually carries.
type ColumnSet map[string]bool

type CanonicalRecord struct {
	Vendor       string            `json:"vendor"`
	VendorNo     *string           `json:"vendorNo,omitempty"`
	Order        *string           `json:"order,omitempty"`
	ItemNo       *string           `json:"itemNo,omitempty"`
	Item         *string           `json:"item,omitempty"`
	ItemCost     *float64          `json:"itemCost,omitempty"`
	Quantity     *float64          `json:"quantity,omitempty"`
	CostPerOrder *float64          `json:"costPerOrder,omitempty"`
	APTerms      *float64          `json:"apTerms,omitempty"`
	OrderDate    *time.Time        `json:"orderDate,omitempty"`
	ArrivalDate  *time.Time        `json:"arrivalDate,omitempty"`
	LeadTimeDays *float64          `json:"leadTimeDays,omitempty"`
	Extra        map[string]string `json:"extra,omitempty"`
}

// Dataset is the output of the normalization stage: the canonical
// records plus the discovered header row index for diagnostics.
// Built once per input and never mutated; filters produce new subsets.
type Dataset struct {
	HeaderRow int               `json:"headerRow"`
	Columns   ColumnSet         `json:"columns"`
	Records   []CanonicalRecord `json:"records"`
}

// SupplierSummary is one row of a per-vendor metrics table. The avg
// metrics are nil when the group had no measurable values; a column
// absent from the input schema is synthesized as 0 across all groups,
// so callers must treat 0 as a weak default, not a measured value.
type SupplierSummary struct {
	Vendor         string   `json:"vendor"`
	Orders         int      `json:"orders"`
	AvgLeadDays    *float64 `json:"avgLeadDays"`
	AvgAPTerms     *float64 `json:"avgApTerms"`
	AvgItemCost    *float64 `json:"avgItemCost"`
	TotalSpend     float64  `json:"totalSpend"`
	CompositeScore float64  `json:"compositeScore"`
}

type VendorWins struct {
	Vendor string `json:"vendor"`
	Wins   int    `json:"wins"`
}
