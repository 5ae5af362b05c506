package migrate_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func readMigration(t *testing.T, pattern string) string {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join("migrations", pattern))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no migration file found for %s", pattern)
	}
	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	return string(data)
}

func assertContains(t *testing.T, content string, checks []string) {
	t.Helper()
	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestProductsMigrationContainsSchema(t *testing.T) {
	content := readMigration(t, "*_create_products.sql")
	assertContains(t, content, []string{
		"CREATE TABLE IF NOT EXISTS products",
		"price NUMERIC(10,2) NOT NULL CHECK (price > 0)",
		"CREATE INDEX IF NOT EXISTS idx_products_category",
		"DROP TABLE IF EXISTS products",
	})
}

func TestInventoryMigrationContainsConstraints(t *testing.T) {
	content := readMigration(t, "*_create_inventory.sql")
	assertContains(t, content, []string{
		"CREATE TABLE IF NOT EXISTS inventory (",
		"FOREIGN KEY (product_id) REFERENCES products(id) ON DELETE CASCADE",
		"CHECK (stock >= 0)",
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_inventory_product_id",
		"DROP TABLE IF EXISTS inventory;",
	})
}

func TestInventoryLogMigrationContainsReasons(t *testing.T) {
	content := readMigration(t, "*_create_inventory_log.sql")
	assertContains(t, content, []string{
		"CREATE TABLE IF NOT EXISTS inventory_log",
		"'initial stock', 'manual adjustment', 'sale'",
		"idx_inventory_log_product_changed ON inventory_log(product_id, changed_at)",
		"DROP TABLE IF EXISTS inventory_log",
	})
}

func TestSalesMigrationContainsConstraints(t *testing.T) {
	content := readMigration(t, "*_create_sales.sql")
	assertContains(t, content, []string{
		"CREATE TABLE IF NOT EXISTS sales",
		"sale_date DATE NOT NULL",
		"total_amount NUMERIC(10,2) NOT NULL",
		"CHECK (quantity > 0)",
		"FOREIGN KEY (product_id) REFERENCES products(id)",
		"DROP TABLE IF EXISTS sales",
	})
}
