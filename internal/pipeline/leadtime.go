package pipeline

import (
	"math"

	"supplierboard/internal"
	"supplierboard/internal/util"
)

// DeriveLeadTime computes lead time as the whole-day difference between
// order and arrival dates. It only runs when both date columns exist in
// the dataset schema; otherwise the lead-time column stays absent
// entirely rather than being zero-filled. A negative difference is
// physically impossible and becomes missing, not zero.
func DeriveLeadTime(ds *internal.Dataset) {
	if !ds.Columns[internal.ColOrderDate] || !ds.Columns[internal.ColArrivalDate] {
		return
	}

	ds.Columns[internal.ColLeadTime] = true
	for i := range ds.Records {
		rec := &ds.Records[i]
		if rec.OrderDate == nil || rec.ArrivalDate == nil {
			continue
		}
		days := math.Floor(rec.ArrivalDate.Sub(*rec.OrderDate).Hours() / 24)
		if days < 0 {
			continue
		}
		rec.LeadTimeDays = util.FloatPtr(days)
	}
}
