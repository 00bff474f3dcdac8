package invoice

import "time"

// The status machine: draft → sent → {paid, cancelled} is the nominal
// path, but users may move an invoice between draft, sent, paid, and
// cancelled in any direction. Overdue is never a legal manual target; it
// is derived from sent when the due date passes (see PastDue) and checked
// opportunistically on load/list rather than by a scheduler.

// CanTransition reports whether a manual status change from one state to
// another is legal. Self-transitions are legal but callers treat them as
// no-ops (no persistence, no side effects).
func CanTransition(from, to Status) bool {
	if !ValidStatus(from) || !ValidStatus(to) {
		return false
	}
	// Overdue is system-derived only.
	return to != StatusOverdue
}

// PastDue reports whether a sent invoice's due date has passed and the
// system should derive the overdue status. It is false for any other
// state: draft invoices are not yet owed, and paid/cancelled/overdue
// invoices have nothing left to derive.
func (inv *Invoice) PastDue(now time.Time) bool {
	if inv.Status != StatusSent || inv.DueDate.IsZero() {
		return false
	}
	return inv.DueDate.DaysUntil(dateOf(now)) > 0
}
