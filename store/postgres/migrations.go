package postgres

import (
	"context"

	"github.com/xraph/grove/migrate"
)

// Migrations is the grove migration group for the Billfold store.
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
    items                JSONB NOT NULL DEFAULT '[]',
    issue_date           TEXT NOT NULL DEFAULT '',
    due_date             TEXT NOT NULL DEFAULT '',
    status               TEXT NOT NULL DEFAULT 'draft',
    currency             TEXT NOT NULL DEFAULT 'usd',
    template_id          TEXT NOT NULL DEFAULT '',
    discount             DOUBLE PRECISION NOT NULL DEFAULT 0,
    shipping_cost        DOUBLE PRECISION NOT NULL DEFAULT 0,
    shipping_carrier     TEXT NOT NULL DEFAULT '',
    show_discount        BOOLEAN NOT NULL DEFAULT FALSE,
    show_shipping        BOOLEAN NOT NULL DEFAULT FALSE,
    show_tax_column      BOOLEAN NOT NULL DEFAULT FALSE,
    show_signature       BOOLEAN NOT NULL DEFAULT FALSE,
    show_payment_details BOOLEAN NOT NULL DEFAULT FALSE,
    paid_at              TIMESTAMPTZ,
    notes                TEXT NOT NULL DEFAULT '',
    payment_details      TEXT NOT NULL DEFAULT '',
    metadata             JSONB NOT NULL DEFAULT '{}',
    created_at           TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at           TIMESTAMPTZ NOT NULL DEFAULT NOW()
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
    metadata   JSONB NOT NULL DEFAULT '{}',
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
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
    unit_price  DOUBLE PRECISION NOT NULL DEFAULT 0,
    tax_rate    DOUBLE PRECISION NOT NULL DEFAULT 0,
    unit        TEXT NOT NULL DEFAULT '',
    active      BOOLEAN NOT NULL DEFAULT TRUE,
    metadata    JSONB NOT NULL DEFAULT '{}',
    created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
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
    value BIGINT NOT NULL DEFAULT 0
);

INSERT INTO billfold_sequences (name, value) VALUES ('invoice_number', 0)
ON CONFLICT (name) DO NOTHING;
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
