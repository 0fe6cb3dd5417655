package migrate

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func readMigration(t *testing.T, suffix string) string {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join("migrations", "*_"+suffix+".sql"))
	require.NoError(t, err)
	require.NotEmpty(t, matches, "no %s migration found", suffix)

	data, err := os.ReadFile(matches[0])
	require.NoError(t, err)
	return string(data)
}

func TestOrdersMigrationContainsConstraints(t *testing.T) {
	content := readMigration(t, "create_orders_tables")

	checks := []string{
		"CREATE TABLE IF NOT EXISTS orders",
		"CONSTRAINT orders_order_number_key UNIQUE (order_number)",
		"CHECK (subtotal >= 0 AND shipping >= 0 AND discount >= 0 AND total >= 0)",
		"CREATE TABLE IF NOT EXISTS order_items",
		"FOREIGN KEY (order_id) REFERENCES orders(id) ON DELETE CASCADE",
		"FOREIGN KEY (product_id) REFERENCES products(id) ON DELETE SET NULL",
		"FOREIGN KEY (product_variant_id) REFERENCES product_variants(id) ON DELETE SET NULL",
		"DROP TABLE IF EXISTS orders",
	}
	for _, sub := range checks {
		require.Contains(t, content, sub)
	}
}

func TestAddressesMigrationEnforcesSingleDefault(t *testing.T) {
	content := readMigration(t, "create_addresses_table")
	require.Contains(t, content, "CREATE UNIQUE INDEX IF NOT EXISTS idx_addresses_one_default_per_user ON addresses (user_id) WHERE is_default")
	require.Contains(t, content, "ON DELETE CASCADE")
}

func TestCatalogMigrationContainsUniqueSlugs(t *testing.T) {
	content := readMigration(t, "create_catalog_tables")
	for _, sub := range []string{
		"CONSTRAINT categories_slug_key UNIQUE (slug)",
		"CONSTRAINT products_slug_key UNIQUE (slug)",
		"CONSTRAINT product_variants_slug_key UNIQUE (slug)",
		"CHECK (price_in_cents > 0)",
	} {
		require.Contains(t, content, sub)
	}
}

func TestCartMigrationKeepsOneLinePerVariant(t *testing.T) {
	content := readMigration(t, "create_carts_tables")
	require.Contains(t, content, "CONSTRAINT carts_user_id_key UNIQUE (user_id)")
	require.Contains(t, content, "UNIQUE (cart_id, product_variant_id)")
}

func TestValidateDirAcceptsShippedMigrations(t *testing.T) {
	require.NoError(t, ValidateDir("migrations"))
}

func TestEmbeddedMigrationsMatchDisk(t *testing.T) {
	onDisk, err := filepath.Glob(filepath.Join("migrations", "*.sql"))
	require.NoError(t, err)

	entries, err := embedded.ReadDir(embeddedDir)
	require.NoError(t, err)
	require.Len(t, entries, len(onDisk))
}

func TestCreateSQLMigrationWritesTemplate(t *testing.T) {
	dir := t.TempDir()

	path, err := CreateSQLMigration(dir, "Add Coupons Table!")
	require.NoError(t, err)
	require.True(t, strings.HasSuffix(path, "_add_coupons_table.sql"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), upMarker)
	require.Contains(t, string(data), downMarker)

	require.NoError(t, ValidateDir(dir))
}

func TestValidateDirRejectsBadFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad-name.sql"), []byte(upMarker+"\n"+downMarker), 0o644))
	require.Error(t, ValidateDir(dir))

	dir = t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "20260101000000_missing_down.sql"), []byte(upMarker), 0o644))
	require.Error(t, ValidateDir(dir))

	require.Error(t, ValidateDir(t.TempDir()))
}

func TestParseVersion(t *testing.T) {
	v, err := parseVersion("20260301090400")
	require.NoError(t, err)
	require.Equal(t, int64(20260301090400), v)

	_, err = parseVersion("42")
	require.Error(t, err)
	_, err = parseVersion("")
	require.Error(t, err)
}
