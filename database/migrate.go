package database

import (
	"fmt"

	"gorm.io/gorm"
)

// Migrate applies the idempotent raw-SQL migrations AutoMigrate cannot express:
// - money column types (NUMERIC(12,2))
// - helpful indexes
// - basic CHECK constraints on quantities and amounts
func Migrate() error {
	return DB.Transaction(func(tx *gorm.DB) error {
		// --- Enforce money columns as NUMERIC (idempotent ALTERs) ---
		alters := []string{
			`ALTER TABLE invoices      ALTER COLUMN tax_rate        TYPE numeric(5,2)`,
			`ALTER TABLE invoices      ALTER COLUMN discount_amount TYPE numeric(12,2)`,
			`ALTER TABLE invoices      ALTER COLUMN subtotal        TYPE numeric(12,2)`,
			`ALTER TABLE invoices      ALTER COLUMN tax_amount      TYPE numeric(12,2)`,
			`ALTER TABLE invoices      ALTER COLUMN total_amount    TYPE numeric(12,2)`,
			`ALTER TABLE invoice_items ALTER COLUMN quantity        TYPE numeric(12,3)`,
			`ALTER TABLE invoice_items ALTER COLUMN unit_price      TYPE numeric(12,2)`,
			`ALTER TABLE invoice_items ALTER COLUMN line_total      TYPE numeric(12,2)`,
		}
		for _, stmt := range alters {
			if err := tx.Exec(stmt).Error; err != nil {
				return fmt.Errorf("money type migration failed on: %s - %w", stmt, err)
			}
		}

		// --- Composite / helpful indexes (idempotent) ---
		indexes := []string{
			`CREATE INDEX IF NOT EXISTS idx_invoices_user_created ON invoices (user_id, created_at)`,
			`CREATE INDEX IF NOT EXISTS idx_invoices_user_status ON invoices (user_id, status)`,
			`CREATE INDEX IF NOT EXISTS idx_invoice_items_invoice ON invoice_items (invoice_id)`,
			`CREATE UNIQUE INDEX IF NOT EXISTS idx_idempotency_keys_key ON idempotency_keys (key)`,
		}
		for _, stmt := range indexes {
			if err := tx.Exec(stmt).Error; err != nil {
				return fmt.Errorf("index migration failed on: %s - %w", stmt, err)
			}
		}

		// --- Basic CHECK constraints (idempotent) ---
		// Note: total_amount is deliberately unconstrained; a discount larger
		// than subtotal+tax yields a negative total that is stored as-is.
		checks := []string{
			`DO $$
			BEGIN
				IF NOT EXISTS (
					SELECT 1 FROM pg_constraint
					WHERE conrelid = 'invoice_items'::regclass
					  AND conname  = 'chk_invoice_items_quantity_nonneg'
				) THEN
					ALTER TABLE invoice_items
					ADD CONSTRAINT chk_invoice_items_quantity_nonneg
					CHECK (quantity >= 0);
				END IF;
			END $$;`,
			`DO $$
			BEGIN
				IF NOT EXISTS (
					SELECT 1 FROM pg_constraint
					WHERE conrelid = 'invoice_items'::regclass
					  AND conname  = 'chk_invoice_items_unit_price_nonneg'
				) THEN
					ALTER TABLE invoice_items
					ADD CONSTRAINT chk_invoice_items_unit_price_nonneg
					CHECK (unit_price >= 0);
				END IF;
			END $$;`,
			`DO $$
			BEGIN
				IF NOT EXISTS (
					SELECT 1 FROM pg_constraint
					WHERE conrelid = 'invoices'::regclass
					  AND conname  = 'chk_invoices_discount_nonneg'
				) THEN
					ALTER TABLE invoices
					ADD CONSTRAINT chk_invoices_discount_nonneg
					CHECK (discount_amount >= 0);
				END IF;
			END $$;`,
			`DO $$
			BEGIN
				IF NOT EXISTS (
					SELECT 1 FROM pg_constraint
					WHERE conrelid = 'invoices'::regclass
					  AND conname  = 'chk_invoices_tax_rate_nonneg'
				) THEN
					ALTER TABLE invoices
					ADD CONSTRAINT chk_invoices_tax_rate_nonneg
					CHECK (tax_rate >= 0);
				END IF;
			END $$;`,
		}
		for _, stmt := range checks {
			if err := tx.Exec(stmt).Error; err != nil {
				return fmt.Errorf("check constraint migration failed: %w", err)
			}
		}

		return nil
	})
}
