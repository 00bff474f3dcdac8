package invoice

import (
	"testing"
	"time"

	"github.com/billfold/billfold/types"
)

func TestDaysOverdue(t *testing.T) {
	now := time.Date(2026, 6, 30, 9, 30, 0, 0, time.UTC)

	tests := []struct {
		name string
		due  types.Date
		want int
	}{
		{"DueToday", types.NewDate(2026, 6, 30), 0},
		{"DueTomorrow", types.NewDate(2026, 7, 1), 0},
		{"DueNextMonth", types.NewDate(2026, 7, 30), 0},
		{"OneDayLate", types.NewDate(2026, 6, 29), 1},
		{"ThirtyDaysLate", types.NewDate(2026, 5, 31), 30},
		{"AcrossMonths", types.NewDate(2026, 4, 30), 61},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DaysOverdue(tt.due, now); got != tt.want {
				t.Errorf("DaysOverdue = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestBucketForDays(t *testing.T) {
	tests := []struct {
		days int
		want AgingBucket
	}{
		{0, BucketCurrent},
		{1, Bucket0To30},
		{30, Bucket0To30},
		{31, Bucket31To60},
		{60, Bucket31To60},
		{61, Bucket61To90},
		{90, Bucket61To90},
		{91, Bucket90Plus},
		{365, Bucket90Plus},
	}

	for _, tt := range tests {
		t.Run(string(tt.want), func(t *testing.T) {
			if got := BucketForDays(tt.days); got != tt.want {
				t.Errorf("BucketForDays(%d) = %q, want %q", tt.days, got, tt.want)
			}
		})
	}
}

func TestClassify(t *testing.T) {
	now := time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		status     Status
		due        types.Date
		wantBucket AgingBucket
		wantOK     bool
	}{
		{"SentDueToday", StatusSent, types.NewDate(2026, 6, 30), BucketCurrent, true},
		{"SentDueInFuture", StatusSent, types.NewDate(2026, 8, 1), BucketCurrent, true},
		{"Sent31DaysLate", StatusSent, types.NewDate(2026, 5, 30), Bucket31To60, true},
		{"Overdue91DaysLate", StatusOverdue, types.NewDate(2026, 3, 31), Bucket90Plus, true},
		{"DraftLate", StatusDraft, types.NewDate(2026, 5, 1), Bucket31To60, true},
		{"PaidExcluded", StatusPaid, types.NewDate(2026, 5, 1), "", false},
		{"CancelledExcluded", StatusCancelled, types.NewDate(2026, 5, 1), "", false},
		{"NoDueDateExcluded", StatusSent, types.Date{}, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := &Invoice{Status: tt.status, DueDate: tt.due}
			bucket, ok := Classify(inv, now)
			if ok != tt.wantOK {
				t.Fatalf("Classify ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && bucket != tt.wantBucket {
				t.Errorf("Classify bucket = %q, want %q", bucket, tt.wantBucket)
			}
		})
	}
}

func TestBucketsOrder(t *testing.T) {
	want := []AgingBucket{BucketCurrent, Bucket0To30, Bucket31To60, Bucket61To90, Bucket90Plus}
	if len(Buckets) != len(want) {
		t.Fatalf("got %d buckets, want %d", len(Buckets), len(want))
	}
	for i, b := range want {
		if Buckets[i] != b {
			t.Errorf("Buckets[%d] = %q, want %q", i, Buckets[i], b)
		}
	}
}
