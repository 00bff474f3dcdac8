package sqlite

import (
	"context"

	"github.com/xraph/grove/migrate"
)

// Migrations is the grove migration group for the Billfold store (SQLite).
var Migrations = migrate.NewGroup("billfold")

func init() {
	Migrations.MustRegister(
		&migrate.Migration{
			Name:    "create_billfold_invoices",
			Version: "20240101000001",
			Up: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `
CREATE TABLE IF NOT EXISTS billfold_invoices (
    id                   TEXT PRIMARY KEY,
    invoice_number       TEXT NOT NULL DEFAULT '',
    company              TEXT NOT NULL DEFAULT '',
    company_address      TEXT NOT NULL DEFAULT '',
    client               TEXT NOT NULL DEFAULT '',
    client_address       TEXT NOT NULL DEFAULT '',
    customer_id          TEXT NOT NULL DEFAULT '',
    items                TEXT NOT NULL DEFAULT '[]',
    issue_date           TEXT NOT NULL DEFAULT '',
    due_date             TEXT NOT NULL DEFAULT '',
    status               TEXT NOT NULL DEFAULT 'draft',
    currency             TEXT NOT NULL DEFAULT 'usd',
    template_id          TEXT NOT NULL DEFAULT '',
    discount             REAL NOT NULL DEFAULT 0,
    shipping_cost        REAL NOT NULL DEFAULT 0,
    shipping_carrier     TEXT NOT NULL DEFAULT '',
    show_discount        INTEGER NOT NULL DEFAULT 0,
    show_shipping        INTEGER NOT NULL DEFAULT 0,
    show_tax_column      INTEGER NOT NULL DEFAULT 0,
    show_signature       INTEGER NOT NULL DEFAULT 0,
    show_payment_details INTEGER NOT NULL DEFAULT 0,
    paid_at              TEXT,
    notes                TEXT NOT NULL DEFAULT '',
    payment_details      TEXT NOT NULL DEFAULT '',
    metadata             TEXT NOT NULL DEFAULT '{}',
    created_at           TEXT NOT NULL DEFAULT (datetime('now')),
    updated_at           TEXT NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_billfold_invoices_status ON billfold_invoices (status);
CREATE INDEX IF NOT EXISTS idx_billfold_invoices_customer ON billfold_invoices (customer_id);
CREATE INDEX IF NOT EXISTS idx_billfold_invoices_due ON billfold_invoices (due_date);
`)
				return err
			},
			Down: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `DROP TABLE IF EXISTS billfold_invoices`)
				return err
			},
		},
		&migrate.Migration{
			Name:    "create_billfold_customers",
			Version: "20240101000002",
			Up: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `
CREATE TABLE IF NOT EXISTS billfold_customers (
    id         TEXT PRIMARY KEY,
    name       TEXT NOT NULL DEFAULT '',
    email      TEXT NOT NULL DEFAULT '',
    phone      TEXT NOT NULL DEFAULT '',
    address    TEXT NOT NULL DEFAULT '',
    tax_id     TEXT NOT NULL DEFAULT '',
    notes      TEXT NOT NULL DEFAULT '',
    metadata   TEXT NOT NULL DEFAULT '{}',
    created_at TEXT NOT NULL DEFAULT (datetime('now')),
    updated_at TEXT NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_billfold_customers_name ON billfold_customers (name);
`)
				return err
			},
			Down: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `DROP TABLE IF EXISTS billfold_customers`)
				return err
			},
		},
		&migrate.Migration{
			Name:    "create_billfold_products",
			Version: "20240101000003",
			Up: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `
CREATE TABLE IF NOT EXISTS billfold_products (
    id          TEXT PRIMARY KEY,
    name        TEXT NOT NULL DEFAULT '',
    description TEXT NOT NULL DEFAULT '',
    unit_price  REAL NOT NULL DEFAULT 0,
    tax_rate    REAL NOT NULL DEFAULT 0,
    unit        TEXT NOT NULL DEFAULT '',
    active      INTEGER NOT NULL DEFAULT 1,
    metadata    TEXT NOT NULL DEFAULT '{}',
    created_at  TEXT NOT NULL DEFAULT (datetime('now')),
    updated_at  TEXT NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_billfold_products_name ON billfold_products (name);
CREATE INDEX IF NOT EXISTS idx_billfold_products_active ON billfold_products (active);
`)
				return err
			},
			Down: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `DROP TABLE IF EXISTS billfold_products`)
				return err
			},
		},
		&migrate.Migration{
			Name:    "create_billfold_sequences",
			Version: "20240101000004",
			Up: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `
CREATE TABLE IF NOT EXISTS billfold_sequences (
    name  TEXT PRIMARY KEY,
    value INTEGER NOT NULL DEFAULT 0
);

INSERT OR IGNORE INTO billfold_sequences (name, value) VALUES ('invoice_number', 0);
`)
				return err
			},
			Down: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `DROP TABLE IF EXISTS billfold_sequences`)
				return err
			},
		},
	)
}
