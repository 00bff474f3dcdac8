package invoice

import (
	"time"

	"github.com/billfold/billfold/types"
)

// AgingBucket is a named range of days-overdue used for grouping
// outstanding invoices in reports.
type AgingBucket string

const (
	BucketCurrent AgingBucket = "current"
	Bucket0To30   AgingBucket = "0-30"
	Bucket31To60  AgingBucket = "31-60"
	Bucket61To90  AgingBucket = "61-90"
	Bucket90Plus  AgingBucket = "90+"
)

// Buckets lists every aging bucket in display order.
var Buckets = []AgingBucket{BucketCurrent, Bucket0To30, Bucket31To60, Bucket61To90, Bucket90Plus}

// DaysOverdue returns the number of whole days between the due date and
// now, floored at zero. "now" is injected rather than read ambiently so
// classification is deterministic under test.
func DaysOverdue(due types.Date, now time.Time) int {
	days := due.DaysUntil(dateOf(now))
	if days < 0 {
		return 0
	}
	return days
}

// BucketForDays maps a days-overdue count onto its aging bucket.
// First match wins: 0 is current, then 30-day bands up to 90+.
func BucketForDays(days int) AgingBucket {
	switch {
	case days == 0:
		return BucketCurrent
	case days <= 30:
		return Bucket0To30
	case days <= 60:
		return Bucket31To60
	case days <= 90:
		return Bucket61To90
	default:
		return Bucket90Plus
	}
}

// BucketFor classifies a due date directly.
func BucketFor(due types.Date, now time.Time) AgingBucket {
	return BucketForDays(DaysOverdue(due, now))
}

// Classify buckets an outstanding invoice by how late it is. The second
// return is false when the invoice is not classifiable: already paid or
// cancelled, or carrying no due date (excluded from aging aggregates
// rather than zero-filled). Classify never mutates the invoice; callers
// decide whether to persist a derived overdue status.
func Classify(inv *Invoice, now time.Time) (AgingBucket, bool) {
	if inv.Status == StatusPaid || inv.Status == StatusCancelled {
		return "", false
	}
	if inv.DueDate.IsZero() {
		return "", false
	}
	return BucketForDays(DaysOverdue(inv.DueDate, now)), true
}

func dateOf(t time.Time) types.Date { return types.DateOf(t) }
