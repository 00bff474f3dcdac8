package invoice

import (
	"testing"
	"time"

	"github.com/billfold/billfold/types"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name string
		from Status
		to   Status
		want bool
	}{
		{"DraftToSent", StatusDraft, StatusSent, true},
		{"SentToPaid", StatusSent, StatusPaid, true},
		{"SentToCancelled", StatusSent, StatusCancelled, true},
		{"PaidBackToDraft", StatusPaid, StatusDraft, true},
		{"CancelledToSent", StatusCancelled, StatusSent, true},
		{"SameStatus", StatusSent, StatusSent, true},
		{"ManualOverdueFromSent", StatusSent, StatusOverdue, false},
		{"ManualOverdueFromDraft", StatusDraft, StatusOverdue, false},
		{"OverdueToPaid", StatusOverdue, StatusPaid, true},
		{"UnknownFrom", Status("archived"), StatusSent, false},
		{"UnknownTo", StatusSent, Status("archived"), false},
		{"EmptyTo", StatusSent, Status(""), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanTransition(tt.from, tt.to); got != tt.want {
				t.Errorf("CanTransition(%q, %q) = %v, want %v", tt.from, tt.to, got, tt.want)
			}
		})
	}
}

func TestPastDue(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		status Status
		due    types.Date
		want   bool
	}{
		{"SentPastDue", StatusSent, types.NewDate(2026, 3, 1), true},
		{"SentDueToday", StatusSent, types.NewDate(2026, 3, 15), false},
		{"SentDueTomorrow", StatusSent, types.NewDate(2026, 3, 16), false},
		{"DraftPastDue", StatusDraft, types.NewDate(2026, 3, 1), false},
		{"PaidPastDue", StatusPaid, types.NewDate(2026, 3, 1), false},
		{"CancelledPastDue", StatusCancelled, types.NewDate(2026, 3, 1), false},
		{"OverdueAlready", StatusOverdue, types.NewDate(2026, 3, 1), false},
		{"SentNoDueDate", StatusSent, types.Date{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := &Invoice{Status: tt.status, DueDate: tt.due}
			if got := inv.PastDue(now); got != tt.want {
				t.Errorf("PastDue = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsReadOnly(t *testing.T) {
	tests := []struct {
		status Status
		want   bool
	}{
		{StatusDraft, false},
		{StatusSent, false},
		{StatusOverdue, false},
		{StatusPaid, true},
		{StatusCancelled, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			inv := &Invoice{Status: tt.status}
			if got := inv.IsReadOnly(); got != tt.want {
				t.Errorf("IsReadOnly() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestValidStatus(t *testing.T) {
	for _, s := range []Status{StatusDraft, StatusSent, StatusPaid, StatusOverdue, StatusCancelled} {
		if !ValidStatus(s) {
			t.Errorf("ValidStatus(%q) = false, want true", s)
		}
	}
	for _, s := range []Status{"", "archived", "Draft", "SENT"} {
		if ValidStatus(s) {
			t.Errorf("ValidStatus(%q) = true, want false", s)
		}
	}
}
