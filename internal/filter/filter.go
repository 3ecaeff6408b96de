// Package filter narrows classified reviews to the records that may be
// aggregated: a canonical sentiment first, then an inclusive date range.
package filter

import (
	"time"

	"github.com/ppiankov/absa/internal/model"
)

// Valid keeps records with a canonical sentiment. Records without a date
// are kept; the date range stage decides on them.
func Valid(records []model.ClassifiedReview) []model.ClassifiedReview {
	out := make([]model.ClassifiedReview, 0, len(records))
	for _, r := range records {
		if r.Sentiment != model.SentimentNone {
			out = append(out, r)
		}
	}
	return out
}

// Range is an inclusive calendar-day range. A zero Start or End means the
// end is open until Clamp fills it in.
type Range struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether d falls on or between Start and End.
// A zero date is never contained.
func (r Range) Contains(d time.Time) bool {
	if d.IsZero() {
		return false
	}
	d = day(d)
	if !r.Start.IsZero() && d.Before(day(r.Start)) {
		return false
	}
	if !r.End.IsZero() && d.After(day(r.End)) {
		return false
	}
	return true
}

// Clamp fills unset ends from bounds and pulls an end back inside bounds
// when it overshoots on its own side. A Start after the last observed day
// or an End before the first one is kept, so a range lying wholly outside
// the data stays empty instead of collapsing onto a boundary day.
// Start > End survives and selects nothing.
func (r Range) Clamp(bounds Range) Range {
	out := Range{Start: day(r.Start), End: day(r.End)}
	if out.Start.IsZero() || (!bounds.Start.IsZero() && out.Start.Before(bounds.Start)) {
		out.Start = bounds.Start
	}
	if out.End.IsZero() || (!bounds.End.IsZero() && out.End.After(bounds.End)) {
		out.End = bounds.End
	}
	return out
}

// ToModel converts the range for reporting
func (r Range) ToModel() model.DateRange {
	return model.DateRange{Start: r.Start, End: r.End}
}

// ByDate keeps records whose date lies inside r. Undated records are dropped.
func ByDate(records []model.ClassifiedReview, r Range) []model.ClassifiedReview {
	out := make([]model.ClassifiedReview, 0, len(records))
	for _, rec := range records {
		if r.Contains(rec.Date) {
			out = append(out, rec)
		}
	}
	return out
}

// Bounds returns the earliest and latest date among records. ok is false
// when no record has a date.
func Bounds(records []model.ClassifiedReview) (Range, bool) {
	var b Range
	for _, rec := range records {
		if !rec.HasDate() {
			continue
		}
		d := day(rec.Date)
		if b.Start.IsZero() || d.Before(b.Start) {
			b.Start = d
		}
		if b.End.IsZero() || d.After(b.End) {
			b.End = d
		}
	}
	return b, !b.Start.IsZero()
}

func day(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
