package dataset

import "time"

// DateRange is an inclusive pair of calendar dates.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// NewDateRange truncates both bounds to their calendar day in UTC.
func NewDateRange(start, end time.Time) DateRange {
	return DateRange{Start: CalendarDay(start), End: CalendarDay(end)}
}

// Valid reports whether Start is not after End.
func (r DateRange) Valid() bool {
	return !r.Start.After(r.End)
}

// Contains reports whether ts falls on any day from Start through End.
func (r DateRange) Contains(ts time.Time) bool {
	if !r.Valid() {
		return false
	}
	ts = ts.UTC()
	return !ts.Before(r.Start) && ts.Before(r.End.AddDate(0, 0, 1))
}

// Filter returns the records approved within r. Records without an approval
// timestamp never qualify. An inverted range yields an empty dataset. The
// result's Quality reports the rows kept and the rows skipped for lacking a
// timestamp.
func Filter(ds *Dataset, r DateRange) *Dataset {
	if !r.Valid() {
		return Empty()
	}

	var (
		kept    []OrderRecord
		skipped int
	)
	for _, rec := range ds.Records() {
		if rec.OrderApprovedAt == nil {
			skipped++
			continue
		}
		if r.Contains(*rec.OrderApprovedAt) {
			kept = append(kept, rec)
		}
	}
	return New(kept, Quality{RowsRead: len(kept), MissingApprovedAt: skipped})
}
