// Package report computes read-only aggregates over invoices: dashboard
// metrics, per-status summaries, per-customer breakdowns, and aging
// summaries. Every function is pure over the invoice slice it is handed,
// with time injected, so results are deterministic under test and the
// package never touches a store.
package report

import (
	"sort"
	"time"

	"github.com/billfold/billfold/id"
	"github.com/billfold/billfold/invoice"
	"github.com/billfold/billfold/types"
)

// StatusSummary is the count and total value of invoices in one status.
type StatusSummary struct {
	Status invoice.Status `json:"status"`
	Count  int            `json:"count"`
	Total  float64        `json:"total"`
}

// Dashboard is the headline view over all invoices.
type Dashboard struct {
	TotalInvoices     int             `json:"total_invoices"`
	TotalRevenue      float64         `json:"total_revenue"`      // paid invoices only
	OutstandingAmount float64         `json:"outstanding_amount"` // neither paid nor cancelled
	OverdueCount      int             `json:"overdue_count"`
	ByStatus          []StatusSummary `json:"by_status"`
}

// CustomerSummary aggregates one customer's invoices.
type CustomerSummary struct {
	CustomerID   id.CustomerID `json:"customer_id"`
	Name         string        `json:"name"`
	InvoiceCount int           `json:"invoice_count"`
	TotalBilled  float64       `json:"total_billed"`
	TotalPaid    float64       `json:"total_paid"`
	Outstanding  float64       `json:"outstanding"`
	// AvgDaysLate averages days-past-due over invoices that were paid
	// after their due date. Zero when no invoice qualifies; on-time
	// payments do not drag the average toward zero.
	AvgDaysLate float64 `json:"avg_days_late"`
}

// AgingSummary is one row of an accounts-receivable aging report.
type AgingSummary struct {
	Bucket invoice.AgingBucket `json:"bucket"`
	Count  int                 `json:"count"`
	Total  float64             `json:"total"`
}

// statusOrder fixes the display order of status summaries.
var statusOrder = []invoice.Status{
	invoice.StatusDraft,
	invoice.StatusSent,
	invoice.StatusOverdue,
	invoice.StatusPaid,
	invoice.StatusCancelled,
}

// BuildDashboard computes the headline metrics over the given invoices.
func BuildDashboard(invoices []*invoice.Invoice, now time.Time) Dashboard {
	d := Dashboard{TotalInvoices: len(invoices)}
	counts := map[invoice.Status]int{}
	totals := map[invoice.Status]float64{}

	for _, inv := range invoices {
		total := inv.Totals().GrandTotal
		counts[inv.Status]++
		totals[inv.Status] += total

		switch inv.Status {
		case invoice.StatusPaid:
			d.TotalRevenue += total
		case invoice.StatusCancelled:
			// excluded from both revenue and outstanding
		default:
			d.OutstandingAmount += total
		}
		if inv.Status == invoice.StatusOverdue || inv.PastDue(now) {
			d.OverdueCount++
		}
	}

	for _, s := range statusOrder {
		if counts[s] == 0 {
			continue
		}
		d.ByStatus = append(d.ByStatus, StatusSummary{Status: s, Count: counts[s], Total: totals[s]})
	}
	return d
}

// BuildCustomerSummaries groups invoices by customer and aggregates each
// group. Invoices without a customer reference are skipped. Results are
// sorted by total billed, highest first.
func BuildCustomerSummaries(invoices []*invoice.Invoice, names map[string]string) []CustomerSummary {
	byCustomer := map[string]*CustomerSummary{}
	lateDays := map[string][]int{}

	for _, inv := range invoices {
		if inv.CustomerID.IsNil() {
			continue
		}
		key := inv.CustomerID.String()
		cs := byCustomer[key]
		if cs == nil {
			cs = &CustomerSummary{CustomerID: inv.CustomerID, Name: names[key]}
			byCustomer[key] = cs
		}

		total := inv.Totals().GrandTotal
		cs.InvoiceCount++
		cs.TotalBilled += total

		switch inv.Status {
		case invoice.StatusPaid:
			cs.TotalPaid += total
			if days := paidDaysLate(inv); days > 0 {
				lateDays[key] = append(lateDays[key], days)
			}
		case invoice.StatusCancelled:
		default:
			cs.Outstanding += total
		}
	}

	out := make([]CustomerSummary, 0, len(byCustomer))
	for key, cs := range byCustomer {
		if days := lateDays[key]; len(days) > 0 {
			sum := 0
			for _, d := range days {
				sum += d
			}
			cs.AvgDaysLate = float64(sum) / float64(len(days))
		}
		out = append(out, *cs)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].TotalBilled != out[j].TotalBilled {
			return out[i].TotalBilled > out[j].TotalBilled
		}
		return out[i].CustomerID.String() < out[j].CustomerID.String()
	})
	return out
}

// BuildAgingSummary buckets outstanding invoices by how late they are.
// Every bucket appears in the result, zero-filled if empty, so callers
// can render a fixed-shape table. Paid, cancelled, and undated invoices
// are excluded entirely rather than counted as current.
func BuildAgingSummary(invoices []*invoice.Invoice, now time.Time) []AgingSummary {
	counts := map[invoice.AgingBucket]int{}
	totals := map[invoice.AgingBucket]float64{}

	for _, inv := range invoices {
		bucket, ok := invoice.Classify(inv, now)
		if !ok {
			continue
		}
		counts[bucket]++
		totals[bucket] += inv.Totals().GrandTotal
	}

	out := make([]AgingSummary, 0, len(invoice.Buckets))
	for _, b := range invoice.Buckets {
		out = append(out, AgingSummary{Bucket: b, Count: counts[b], Total: totals[b]})
	}
	return out
}

// paidDaysLate returns how many days past due a paid invoice settled,
// or 0 when it cannot be determined (no due date, no paid timestamp, or
// paid on time).
func paidDaysLate(inv *invoice.Invoice) int {
	if inv.PaidAt == nil || inv.DueDate.IsZero() {
		return 0
	}
	days := inv.DueDate.DaysUntil(types.DateOf(*inv.PaidAt))
	if days < 0 {
		return 0
	}
	return days
}
