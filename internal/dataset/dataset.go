package dataset

import "time"

// Quality tallies the data issues seen while building a dataset.
type Quality struct {
	RowsRead           int `json:"rows_read"`
	RowsRejected       int `json:"rows_rejected"`
	MissingApprovedAt  int `json:"missing_approved_at"`
	InvalidApprovedAt  int `json:"invalid_approved_at"`
	MissingReviewScore int `json:"missing_review_score"`
	MissingCategory    int `json:"missing_category"`
	MissingPrice       int `json:"missing_price"`
}

// HasIssues reports whether any row was rejected or carries a gap.
func (q Quality) HasIssues() bool {
	return q.RowsRejected > 0 || q.MissingApprovedAt > 0 || q.InvalidApprovedAt > 0 ||
		q.MissingReviewScore > 0 || q.MissingCategory > 0 || q.MissingPrice > 0
}

// Dataset is an immutable, in-memory collection of order records. It is the
// explicit handle every pipeline stage receives; nothing mutates it after New.
type Dataset struct {
	records []OrderRecord
	quality Quality
}

// New wraps records into a dataset. The slice is owned by the dataset afterwards.
func New(records []OrderRecord, quality Quality) *Dataset {
	return &Dataset{records: records, quality: quality}
}

// Empty returns a dataset without records.
func Empty() *Dataset {
	return &Dataset{}
}

// Records exposes the rows. Callers must treat the slice as read-only.
func (d *Dataset) Records() []OrderRecord {
	if d == nil {
		return nil
	}
	return d.records
}

// Len returns the number of records.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.records)
}

// Quality returns the issue tally captured when the dataset was built.
func (d *Dataset) Quality() Quality {
	if d == nil {
		return Quality{}
	}
	return d.quality
}

// Bounds returns the earliest and latest approval timestamps. ok is false when
// no record carries a timestamp.
func (d *Dataset) Bounds() (first, last time.Time, ok bool) {
	for _, rec := range d.Records() {
		if rec.OrderApprovedAt == nil {
			continue
		}
		ts := *rec.OrderApprovedAt
		if !ok {
			first, last, ok = ts, ts, true
			continue
		}
		if ts.Before(first) {
			first = ts
		}
		if ts.After(last) {
			last = ts
		}
	}
	return first, last, ok
}
