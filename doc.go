// Package billfold provides a composable invoicing engine for small
// businesses, built as a library rather than a service. Import it
// directly into your Go application and put any presentation layer you
// like on top. It provides:
//
//   - Invoice drafting, validation, and persistence with pluggable stores
//   - Exact (unrounded) totals with per-currency display formatting
//   - A status lifecycle with system-derived overdue detection
//   - Accounts-receivable aging and per-customer reporting
//   - A customer and product catalog with referential delete guards
//   - Extension points for notifications, metrics, and export formats
//
// # Quick Start
//
// Create an engine with your preferred store:
//
//	import (
//	    "github.com/billfold/billfold"
//	    "github.com/billfold/billfold/store/sqlite"
//	)
//
//	// Initialize store
//	store, err := sqlite.New("billfold.db")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Create engine
//	engine := billfold.New(store)
//
//	// Start the engine (runs migrations, initializes plugins)
//	if err := engine.Start(ctx); err != nil {
//	    log.Fatal(err)
//	}
//	defer engine.Stop()
//
// # Core Concepts
//
// Drafts come pre-filled with the next invoice number and default terms:
//
//	inv, err := engine.NewDraft(ctx)
//	inv.Company = "Studio North"
//	inv.Client = "Acme Corp"
//	inv.Items = append(inv.Items, invoice.LineItem{
//	    Description: "Design work", Quantity: 2, Price: 50, TaxRate: 10,
//	})
//	err = engine.SaveInvoice(ctx, inv)
//
// Totals are computed, never stored, and stay exact until formatting:
//
//	t := inv.Totals()
//	fmt.Println(currency.FormatCode(t.GrandTotal, inv.CurrencyCode))
//
// Status changes go through the state machine; overdue is derived, not
// set:
//
//	err = engine.ChangeStatus(ctx, inv.ID, invoice.StatusPaid)
//
// # Amounts
//
// Monetary values are float64 and kept unrounded through every
// calculation; rounding happens exactly once, in the currency formatter.
// Summing pre-rounded line amounts would drift across large invoices.
//
// # TypeID
//
// All entities use TypeID for globally unique, type-safe identifiers:
//
//	inv_01h455vb4pex5vsknk084sn02q   // Invoice ID
//	cust_01h2xcejqtf2nbrexx3vqjhp41  // Customer ID
//	prod_01h2xcejqtf2nbrexx3vqjhp41  // Product ID
//
// TypeIDs are K-sortable, making them ideal for database indexes and
// providing natural time-ordering of entities.
package billfold
