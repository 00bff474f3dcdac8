package billfold_test

import (
	"context"
	"errors"
	"testing"
	"time"

	billfold "github.com/billfold/billfold"
	"github.com/billfold/billfold/customer"
	"github.com/billfold/billfold/invoice"
	"github.com/billfold/billfold/product"
	"github.com/billfold/billfold/store/memory"
	"github.com/billfold/billfold/types"
)

// The clock is pinned so due dates and overdue derivation are
// deterministic.
var testNow = time.Date(2026, 6, 15, 10, 0, 0, 0, time.UTC)

func newTestEngine(t *testing.T, opts ...billfold.Option) *billfold.Engine {
	t.Helper()
	opts = append([]billfold.Option{billfold.WithClock(func() time.Time { return testNow })}, opts...)
	e := billfold.New(memory.New(), opts...)
	if err := e.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	t.Cleanup(func() { _ = e.Stop() })
	return e
}

func authedCtx() context.Context {
	return context.WithValue(context.Background(), "user_id", "user_test")
}

func draftInvoice(t *testing.T, e *billfold.Engine, ctx context.Context) *invoice.Invoice {
	t.Helper()
	inv, err := e.NewDraft(ctx)
	if err != nil {
		t.Fatalf("NewDraft: %v", err)
	}
	inv.Company = "Acme Corp"
	inv.CompanyAddress = "1 Main St"
	inv.Client = "Globex"
	inv.ClientAddress = "2 Side St"
	inv.Items = []invoice.LineItem{
		{Description: "Consulting", Quantity: 10, Price: 150, TaxRate: 10},
	}
	return inv
}

func TestNewDraft(t *testing.T) {
	e := newTestEngine(t, billfold.WithNetDays(14))
	ctx := authedCtx()

	inv, err := e.NewDraft(ctx)
	if err != nil {
		t.Fatalf("NewDraft: %v", err)
	}

	if inv.InvoiceNumber != "INV-000001" {
		t.Errorf("InvoiceNumber = %q, want INV-000001", inv.InvoiceNumber)
	}
	if inv.Status != invoice.StatusDraft {
		t.Errorf("Status = %q, want draft", inv.Status)
	}
	if !inv.IssueDate.Equal(types.DateOf(testNow)) {
		t.Errorf("IssueDate = %v, want today", inv.IssueDate)
	}
	if want := types.DateOf(testNow).AddDays(14); !inv.DueDate.Equal(want) {
		t.Errorf("DueDate = %v, want %v", inv.DueDate, want)
	}
	if !inv.ID.IsNil() {
		t.Error("draft should not be persisted yet")
	}

	// Numbers come from a store sequence, so drafts never collide.
	next, err := e.NewDraft(ctx)
	if err != nil {
		t.Fatalf("NewDraft: %v", err)
	}
	if next.InvoiceNumber != "INV-000002" {
		t.Errorf("second InvoiceNumber = %q, want INV-000002", next.InvoiceNumber)
	}
}

func TestNewDraftUnauthorized(t *testing.T) {
	e := newTestEngine(t)

	_, err := e.NewDraft(context.Background())
	if !errors.Is(err, billfold.ErrUnauthorized) {
		t.Errorf("err = %v, want ErrUnauthorized", err)
	}
}

func TestSaveInvoiceCreateAndUpdate(t *testing.T) {
	e := newTestEngine(t)
	ctx := authedCtx()

	inv := draftInvoice(t, e, ctx)
	if err := e.SaveInvoice(ctx, inv); err != nil {
		t.Fatalf("SaveInvoice: %v", err)
	}

	if inv.ID.IsNil() {
		t.Fatal("SaveInvoice should assign an ID on create")
	}
	if inv.Items[0].ID.IsNil() {
		t.Error("SaveInvoice should assign line item IDs")
	}

	inv.Notes = "net 30, thank you"
	if err := e.SaveInvoice(ctx, inv); err != nil {
		t.Fatalf("SaveInvoice update: %v", err)
	}

	got, err := e.GetInvoice(ctx, inv.ID)
	if err != nil {
		t.Fatalf("GetInvoice: %v", err)
	}
	if got.Notes != "net 30, thank you" {
		t.Errorf("Notes = %q after update", got.Notes)
	}
}

func TestSaveInvoiceValidation(t *testing.T) {
	e := newTestEngine(t)
	ctx := authedCtx()

	inv, err := e.NewDraft(ctx)
	if err != nil {
		t.Fatalf("NewDraft: %v", err)
	}
	// No company, no client, no items.
	err = e.SaveInvoice(ctx, inv)
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !billfold.IsValidation(err) {
		t.Errorf("err = %v, want validation error", err)
	}

	var multi billfold.MultiError
	if !errors.As(err, &multi) {
		t.Fatalf("err = %T, want MultiError", err)
	}
	// Validation collects every failing field, not just the first.
	if len(multi.Errors) < 3 {
		t.Errorf("got %d errors, want all failing fields reported", len(multi.Errors))
	}
}

func TestSaveInvoiceRejectsBadLineItems(t *testing.T) {
	e := newTestEngine(t)
	ctx := authedCtx()

	inv := draftInvoice(t, e, ctx)
	inv.Items = []invoice.LineItem{
		{Description: "", Quantity: 0, Price: -5},
	}

	err := e.SaveInvoice(ctx, inv)
	if !billfold.IsValidation(err) {
		t.Fatalf("err = %v, want validation error", err)
	}
}

func TestSaveInvoicePaidIsReadOnly(t *testing.T) {
	e := newTestEngine(t)
	ctx := authedCtx()

	inv := draftInvoice(t, e, ctx)
	if err := e.SaveInvoice(ctx, inv); err != nil {
		t.Fatalf("SaveInvoice: %v", err)
	}
	if err := e.ChangeStatus(ctx, inv.ID, invoice.StatusSent); err != nil {
		t.Fatalf("ChangeStatus sent: %v", err)
	}
	if err := e.ChangeStatus(ctx, inv.ID, invoice.StatusPaid); err != nil {
		t.Fatalf("ChangeStatus paid: %v", err)
	}

	// The edit must be rejected before any write, leaving the stored
	// record untouched.
	inv.Client = "Tampered"
	err := e.SaveInvoice(ctx, inv)
	if !errors.Is(err, billfold.ErrInvoiceReadOnly) {
		t.Fatalf("err = %v, want ErrInvoiceReadOnly", err)
	}

	stored, err := e.GetInvoice(ctx, inv.ID)
	if err != nil {
		t.Fatalf("GetInvoice: %v", err)
	}
	if stored.Client != "Globex" {
		t.Errorf("stored Client = %q, want unchanged", stored.Client)
	}
}

func TestChangeStatus(t *testing.T) {
	e := newTestEngine(t)
	ctx := authedCtx()

	inv := draftInvoice(t, e, ctx)
	if err := e.SaveInvoice(ctx, inv); err != nil {
		t.Fatalf("SaveInvoice: %v", err)
	}

	if err := e.ChangeStatus(ctx, inv.ID, invoice.StatusSent); err != nil {
		t.Fatalf("draft -> sent: %v", err)
	}

	// Same-status change is a silent no-op.
	if err := e.ChangeStatus(ctx, inv.ID, invoice.StatusSent); err != nil {
		t.Errorf("sent -> sent: %v, want nil", err)
	}

	// Overdue is derived, never set.
	if err := e.ChangeStatus(ctx, inv.ID, invoice.StatusOverdue); !errors.Is(err, billfold.ErrManualOverdue) {
		t.Errorf("sent -> overdue: %v, want ErrManualOverdue", err)
	}

	if err := e.ChangeStatus(ctx, inv.ID, invoice.Status("bogus")); !errors.Is(err, billfold.ErrInvalidStatus) {
		t.Errorf("sent -> bogus: %v, want ErrInvalidStatus", err)
	}

	if err := e.ChangeStatus(ctx, inv.ID, invoice.StatusPaid); err != nil {
		t.Fatalf("sent -> paid: %v", err)
	}
	got, err := e.GetInvoice(ctx, inv.ID)
	if err != nil {
		t.Fatalf("GetInvoice: %v", err)
	}
	if got.PaidAt == nil || !got.PaidAt.Equal(testNow) {
		t.Errorf("PaidAt = %v, want clock time", got.PaidAt)
	}
}

func TestOverdueDerivedOnLoad(t *testing.T) {
	e := newTestEngine(t)
	ctx := authedCtx()

	inv := draftInvoice(t, e, ctx)
	inv.DueDate = types.NewDate(2026, 6, 1) // two weeks before the clock
	if err := e.SaveInvoice(ctx, inv); err != nil {
		t.Fatalf("SaveInvoice: %v", err)
	}
	if err := e.ChangeStatus(ctx, inv.ID, invoice.StatusSent); err != nil {
		t.Fatalf("ChangeStatus: %v", err)
	}

	got, err := e.GetInvoice(ctx, inv.ID)
	if err != nil {
		t.Fatalf("GetInvoice: %v", err)
	}
	if got.Status != invoice.StatusOverdue {
		t.Fatalf("Status = %q, want overdue derived on load", got.Status)
	}

	// The derivation is persisted, not just decorated on the response.
	again, err := e.GetInvoice(ctx, inv.ID)
	if err != nil {
		t.Fatalf("GetInvoice: %v", err)
	}
	if again.Status != invoice.StatusOverdue {
		t.Errorf("Status = %q on reload, want overdue", again.Status)
	}

	// An overdue invoice can still be settled.
	if err := e.ChangeStatus(ctx, inv.ID, invoice.StatusPaid); err != nil {
		t.Errorf("overdue -> paid: %v", err)
	}
}

func TestListInvoicesFiltering(t *testing.T) {
	e := newTestEngine(t)
	ctx := authedCtx()

	for i := 0; i < 3; i++ {
		inv := draftInvoice(t, e, ctx)
		if err := e.SaveInvoice(ctx, inv); err != nil {
			t.Fatalf("SaveInvoice: %v", err)
		}
		if i == 0 {
			if err := e.ChangeStatus(ctx, inv.ID, invoice.StatusSent); err != nil {
				t.Fatalf("ChangeStatus: %v", err)
			}
		}
	}

	sent, total, err := e.ListInvoices(ctx, invoice.ListOpts{Status: invoice.StatusSent})
	if err != nil {
		t.Fatalf("ListInvoices: %v", err)
	}
	if len(sent) != 1 || total != 1 {
		t.Errorf("sent: got %d (total %d), want 1", len(sent), total)
	}

	page, total, err := e.ListInvoices(ctx, invoice.ListOpts{Limit: 2})
	if err != nil {
		t.Fatalf("ListInvoices: %v", err)
	}
	if len(page) != 2 {
		t.Errorf("page size = %d, want 2", len(page))
	}
	if total != 3 {
		t.Errorf("total = %d, want 3", total)
	}
}

func TestDeleteCustomerInUse(t *testing.T) {
	e := newTestEngine(t)
	ctx := authedCtx()

	c := &customer.Customer{Name: "Globex", Email: "ap@globex.test"}
	if err := e.SaveCustomer(ctx, c); err != nil {
		t.Fatalf("SaveCustomer: %v", err)
	}

	inv := draftInvoice(t, e, ctx)
	inv.CustomerID = c.ID
	if err := e.SaveInvoice(ctx, inv); err != nil {
		t.Fatalf("SaveInvoice: %v", err)
	}

	if err := e.DeleteCustomer(ctx, c.ID); !errors.Is(err, billfold.ErrCustomerInUse) {
		t.Fatalf("DeleteCustomer: %v, want ErrCustomerInUse", err)
	}

	if err := e.DeleteInvoice(ctx, inv.ID); err != nil {
		t.Fatalf("DeleteInvoice: %v", err)
	}
	if err := e.DeleteCustomer(ctx, c.ID); err != nil {
		t.Errorf("DeleteCustomer after invoice removed: %v", err)
	}
}

func TestAddProductLine(t *testing.T) {
	e := newTestEngine(t)
	ctx := authedCtx()

	p := &product.Product{Name: "Support Plan", UnitPrice: 99.5, TaxRate: 20}
	if err := e.SaveProduct(ctx, p); err != nil {
		t.Fatalf("SaveProduct: %v", err)
	}
	if !p.Active {
		t.Error("new product should default to active")
	}

	inv := draftInvoice(t, e, ctx)
	if err := e.AddProductLine(ctx, inv, p.ID, 3); err != nil {
		t.Fatalf("AddProductLine: %v", err)
	}

	line := inv.Items[len(inv.Items)-1]
	if line.Description != "Support Plan" || line.Price != 99.5 || line.TaxRate != 20 || line.Quantity != 3 {
		t.Errorf("line = %+v, want product fields copied", line)
	}
	if err := e.SaveInvoice(ctx, inv); err != nil {
		t.Fatalf("SaveInvoice: %v", err)
	}

	// The line keeps its captured price even if the catalog changes.
	p.UnitPrice = 500
	if err := e.SaveProduct(ctx, p); err != nil {
		t.Fatalf("SaveProduct update: %v", err)
	}
	got, err := e.GetInvoice(ctx, inv.ID)
	if err != nil {
		t.Fatalf("GetInvoice: %v", err)
	}
	if got.Items[len(got.Items)-1].Price != 99.5 {
		t.Errorf("Price = %v after catalog edit, want 99.5", got.Items[len(got.Items)-1].Price)
	}

	// And the product cannot be deleted while referenced.
	if err := e.DeleteProduct(ctx, p.ID); !errors.Is(err, billfold.ErrProductInUse) {
		t.Errorf("DeleteProduct: %v, want ErrProductInUse", err)
	}
}

func TestDashboardReport(t *testing.T) {
	e := newTestEngine(t)
	ctx := authedCtx()

	paid := draftInvoice(t, e, ctx)
	if err := e.SaveInvoice(ctx, paid); err != nil {
		t.Fatalf("SaveInvoice: %v", err)
	}
	if err := e.ChangeStatus(ctx, paid.ID, invoice.StatusSent); err != nil {
		t.Fatalf("ChangeStatus: %v", err)
	}
	if err := e.ChangeStatus(ctx, paid.ID, invoice.StatusPaid); err != nil {
		t.Fatalf("ChangeStatus: %v", err)
	}

	open := draftInvoice(t, e, ctx)
	if err := e.SaveInvoice(ctx, open); err != nil {
		t.Fatalf("SaveInvoice: %v", err)
	}
	if err := e.ChangeStatus(ctx, open.ID, invoice.StatusSent); err != nil {
		t.Fatalf("ChangeStatus: %v", err)
	}

	d, err := e.Dashboard(ctx, types.Date{}, types.Date{})
	if err != nil {
		t.Fatalf("Dashboard: %v", err)
	}

	// Each invoice grand totals 10 * 150 * 1.10 = 1650.
	if d.TotalInvoices != 2 {
		t.Errorf("TotalInvoices = %d, want 2", d.TotalInvoices)
	}
	if d.TotalRevenue != 1650 {
		t.Errorf("TotalRevenue = %v, want 1650", d.TotalRevenue)
	}
	if d.OutstandingAmount != 1650 {
		t.Errorf("OutstandingAmount = %v, want 1650", d.OutstandingAmount)
	}
}

func TestAgingReport(t *testing.T) {
	e := newTestEngine(t)
	ctx := authedCtx()

	inv := draftInvoice(t, e, ctx)
	inv.DueDate = types.NewDate(2026, 5, 1) // 45 days before the clock
	if err := e.SaveInvoice(ctx, inv); err != nil {
		t.Fatalf("SaveInvoice: %v", err)
	}
	if err := e.ChangeStatus(ctx, inv.ID, invoice.StatusSent); err != nil {
		t.Fatalf("ChangeStatus: %v", err)
	}

	buckets, err := e.AgingReport(ctx)
	if err != nil {
		t.Fatalf("AgingReport: %v", err)
	}

	found := false
	for _, b := range buckets {
		if b.Bucket == invoice.Bucket31To60 {
			found = true
			if b.Count != 1 {
				t.Errorf("31-60 Count = %d, want 1", b.Count)
			}
		}
	}
	if !found {
		t.Error("missing 31-60 bucket in aging report")
	}
}

// recordingPlugin captures lifecycle emissions for assertions.
type recordingPlugin struct {
	created       int
	statusChanges []string
	paid          int
	overdue       int
}

func (p *recordingPlugin) Name() string { return "recording" }

func (p *recordingPlugin) OnInvoiceCreated(_ context.Context, _ interface{}) error {
	p.created++
	return nil
}

func (p *recordingPlugin) OnInvoiceStatusChanged(_ context.Context, _ interface{}, from, to string) error {
	p.statusChanges = append(p.statusChanges, from+">"+to)
	return nil
}

func (p *recordingPlugin) OnInvoicePaid(_ context.Context, _ interface{}, _ time.Time) error {
	p.paid++
	return nil
}

func (p *recordingPlugin) OnInvoiceOverdue(_ context.Context, _ interface{}, _ int) error {
	p.overdue++
	return nil
}

func TestPluginLifecycleEvents(t *testing.T) {
	rec := &recordingPlugin{}
	e := newTestEngine(t, billfold.WithPlugin(rec))
	ctx := authedCtx()

	inv := draftInvoice(t, e, ctx)
	inv.DueDate = types.NewDate(2026, 6, 1)
	if err := e.SaveInvoice(ctx, inv); err != nil {
		t.Fatalf("SaveInvoice: %v", err)
	}
	if err := e.ChangeStatus(ctx, inv.ID, invoice.StatusSent); err != nil {
		t.Fatalf("ChangeStatus: %v", err)
	}
	if _, err := e.GetInvoice(ctx, inv.ID); err != nil { // triggers overdue derivation
		t.Fatalf("GetInvoice: %v", err)
	}
	if err := e.ChangeStatus(ctx, inv.ID, invoice.StatusPaid); err != nil {
		t.Fatalf("ChangeStatus: %v", err)
	}

	if rec.created != 1 {
		t.Errorf("created = %d, want 1", rec.created)
	}
	if rec.overdue != 1 {
		t.Errorf("overdue = %d, want 1", rec.overdue)
	}
	if rec.paid != 1 {
		t.Errorf("paid = %d, want 1", rec.paid)
	}
	want := []string{"draft>sent", "sent>overdue", "overdue>paid"}
	if len(rec.statusChanges) != len(want) {
		t.Fatalf("statusChanges = %v, want %v", rec.statusChanges, want)
	}
	for i := range want {
		if rec.statusChanges[i] != want[i] {
			t.Errorf("statusChanges[%d] = %q, want %q", i, rec.statusChanges[i], want[i])
		}
	}
}
