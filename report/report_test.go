package report

import (
	"math"
	"testing"
	"time"

	"github.com/billfold/billfold/id"
	"github.com/billfold/billfold/invoice"
	"github.com/billfold/billfold/types"
)

var now = time.Date(2026, 6, 30, 12, 0, 0, 0, time.UTC)

func mk(status invoice.Status, amount float64, due types.Date) *invoice.Invoice {
	return &invoice.Invoice{
		ID:      id.NewInvoiceID(),
		Status:  status,
		DueDate: due,
		Items:   []invoice.LineItem{{Quantity: 1, Price: amount}},
	}
}

func TestBuildDashboard(t *testing.T) {
	invoices := []*invoice.Invoice{
		mk(invoice.StatusDraft, 100, types.Date{}),
		mk(invoice.StatusSent, 200, types.NewDate(2026, 7, 15)),
		mk(invoice.StatusSent, 300, types.NewDate(2026, 6, 1)), // past due, not yet flipped
		mk(invoice.StatusOverdue, 400, types.NewDate(2026, 5, 1)),
		mk(invoice.StatusPaid, 500, types.NewDate(2026, 6, 1)),
		mk(invoice.StatusCancelled, 600, types.NewDate(2026, 6, 1)),
	}

	d := BuildDashboard(invoices, now)

	if d.TotalInvoices != 6 {
		t.Errorf("TotalInvoices = %d, want 6", d.TotalInvoices)
	}
	if d.TotalRevenue != 500 {
		t.Errorf("TotalRevenue = %v, want 500", d.TotalRevenue)
	}
	// draft + both sent + overdue; cancelled excluded
	if d.OutstandingAmount != 1000 {
		t.Errorf("OutstandingAmount = %v, want 1000", d.OutstandingAmount)
	}
	// explicit overdue plus the past-due sent invoice
	if d.OverdueCount != 2 {
		t.Errorf("OverdueCount = %d, want 2", d.OverdueCount)
	}

	wantStatuses := []invoice.Status{
		invoice.StatusDraft, invoice.StatusSent, invoice.StatusOverdue,
		invoice.StatusPaid, invoice.StatusCancelled,
	}
	if len(d.ByStatus) != len(wantStatuses) {
		t.Fatalf("ByStatus has %d rows, want %d", len(d.ByStatus), len(wantStatuses))
	}
	for i, s := range wantStatuses {
		if d.ByStatus[i].Status != s {
			t.Errorf("ByStatus[%d] = %q, want %q", i, d.ByStatus[i].Status, s)
		}
	}
	if d.ByStatus[1].Count != 2 || d.ByStatus[1].Total != 500 {
		t.Errorf("sent summary = %+v, want count 2 total 500", d.ByStatus[1])
	}
}

func TestBuildDashboardEmpty(t *testing.T) {
	d := BuildDashboard(nil, now)
	if d.TotalInvoices != 0 || d.TotalRevenue != 0 || d.OutstandingAmount != 0 {
		t.Errorf("empty dashboard should be zero, got %+v", d)
	}
	if len(d.ByStatus) != 0 {
		t.Errorf("empty dashboard should have no status rows, got %d", len(d.ByStatus))
	}
}

func TestBuildCustomerSummaries(t *testing.T) {
	alice := id.NewCustomerID()
	bob := id.NewCustomerID()
	names := map[string]string{alice.String(): "Alice LLC", bob.String(): "Bob & Co"}

	paidLate := mk(invoice.StatusPaid, 100, types.NewDate(2026, 6, 1))
	paidLate.CustomerID = alice
	paidAt := time.Date(2026, 6, 11, 0, 0, 0, 0, time.UTC) // 10 days late
	paidLate.PaidAt = &paidAt

	paidOnTime := mk(invoice.StatusPaid, 50, types.NewDate(2026, 6, 20))
	paidOnTime.CustomerID = alice
	onTime := time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)
	paidOnTime.PaidAt = &onTime

	outstanding := mk(invoice.StatusSent, 200, types.NewDate(2026, 7, 1))
	outstanding.CustomerID = alice

	bobInvoice := mk(invoice.StatusSent, 1000, types.NewDate(2026, 7, 1))
	bobInvoice.CustomerID = bob

	anonymous := mk(invoice.StatusSent, 9999, types.NewDate(2026, 7, 1))

	got := BuildCustomerSummaries(
		[]*invoice.Invoice{paidLate, paidOnTime, outstanding, bobInvoice, anonymous},
		names,
	)

	if len(got) != 2 {
		t.Fatalf("got %d summaries, want 2", len(got))
	}
	// sorted by total billed, highest first
	if got[0].Name != "Bob & Co" {
		t.Errorf("first summary = %q, want Bob & Co", got[0].Name)
	}

	a := got[1]
	if a.Name != "Alice LLC" {
		t.Fatalf("second summary = %q, want Alice LLC", a.Name)
	}
	if a.InvoiceCount != 3 {
		t.Errorf("InvoiceCount = %d, want 3", a.InvoiceCount)
	}
	if a.TotalBilled != 350 {
		t.Errorf("TotalBilled = %v, want 350", a.TotalBilled)
	}
	if a.TotalPaid != 150 {
		t.Errorf("TotalPaid = %v, want 150", a.TotalPaid)
	}
	if a.Outstanding != 200 {
		t.Errorf("Outstanding = %v, want 200", a.Outstanding)
	}
	// only the late payment counts; the on-time one does not pull it down
	if a.AvgDaysLate != 10 {
		t.Errorf("AvgDaysLate = %v, want 10", a.AvgDaysLate)
	}
}

func TestBuildCustomerSummariesNoLatePayments(t *testing.T) {
	cust := id.NewCustomerID()
	inv := mk(invoice.StatusPaid, 100, types.Date{})
	inv.CustomerID = cust
	paidAt := now
	inv.PaidAt = &paidAt

	got := BuildCustomerSummaries([]*invoice.Invoice{inv}, nil)
	if len(got) != 1 {
		t.Fatalf("got %d summaries, want 1", len(got))
	}
	if got[0].AvgDaysLate != 0 || math.IsNaN(got[0].AvgDaysLate) {
		t.Errorf("AvgDaysLate = %v, want 0", got[0].AvgDaysLate)
	}
}

func TestBuildAgingSummary(t *testing.T) {
	invoices := []*invoice.Invoice{
		mk(invoice.StatusSent, 100, types.NewDate(2026, 7, 15)),    // current
		mk(invoice.StatusSent, 200, types.NewDate(2026, 6, 15)),    // 15 days
		mk(invoice.StatusOverdue, 300, types.NewDate(2026, 5, 15)), // 46 days
		mk(invoice.StatusOverdue, 400, types.NewDate(2026, 2, 1)),  // 149 days
		mk(invoice.StatusPaid, 999, types.NewDate(2026, 5, 1)),     // excluded
		mk(invoice.StatusSent, 999, types.Date{}),                  // no due date, excluded
	}

	got := BuildAgingSummary(invoices, now)
	if len(got) != len(invoice.Buckets) {
		t.Fatalf("got %d rows, want %d", len(got), len(invoice.Buckets))
	}

	want := map[invoice.AgingBucket]AgingSummary{
		invoice.BucketCurrent: {Count: 1, Total: 100},
		invoice.Bucket0To30:   {Count: 1, Total: 200},
		invoice.Bucket31To60:  {Count: 1, Total: 300},
		invoice.Bucket61To90:  {Count: 0, Total: 0},
		invoice.Bucket90Plus:  {Count: 1, Total: 400},
	}
	for _, row := range got {
		w := want[row.Bucket]
		if row.Count != w.Count || row.Total != w.Total {
			t.Errorf("bucket %q = count %d total %v, want count %d total %v",
				row.Bucket, row.Count, row.Total, w.Count, w.Total)
		}
	}
}
