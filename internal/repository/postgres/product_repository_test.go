//go:build !integration

package postgres

import (
	"strings"
	"testing"

	"myStorefront/domain"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// dryRunDB renders SQL without a server; the pgx pool never dials.
func dryRunDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(
		postgres.New(postgres.Config{DSN: "host=127.0.0.1 user=test dbname=test sslmode=disable"}),
		&gorm.Config{DryRun: true, DisableAutomaticPing: true, Logger: logger.Discard},
	)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	return db
}

func TestUpdateProduct_WritesZeroValuedColumns(t *testing.T) {
	db := dryRunDB(t)
	p := &domain.Product{ID: 5, ProductName: "Boot", ProductCategory: "shoes", NormalPrice: 100}

	sql := db.ToSQL(func(tx *gorm.DB) *gorm.DB { return updateProduct(tx, p) })

	for _, want := range []string{`UPDATE "products"`, `"sale_price"=0`, `"quantity"=0`, `"rating"`, `"features"`, "WHERE id = 5"} {
		if !strings.Contains(sql, want) {
			t.Errorf("sql %q missing %q", sql, want)
		}
	}
	if strings.Contains(sql, `"created_at"`) {
		t.Errorf("sql %q touches created_at", sql)
	}
}

func TestInsertProduct_LeavesIDToDatabase(t *testing.T) {
	db := dryRunDB(t)
	p := &domain.Product{ProductName: "Boot", ProductCategory: "shoes", NormalPrice: 100, Rating: 4.5}

	sql := db.ToSQL(func(tx *gorm.DB) *gorm.DB { return insertProduct(tx, p) })

	if !strings.Contains(sql, `INSERT INTO "products"`) || !strings.Contains(sql, `"rating"`) {
		t.Fatalf("sql = %q", sql)
	}
	if strings.Contains(sql, `("id"`) {
		t.Fatalf("sql %q inserts id", sql)
	}
}

func TestListCatalog_OrdersByID(t *testing.T) {
	db := dryRunDB(t)

	var out []domain.Product
	sql := db.ToSQL(func(tx *gorm.DB) *gorm.DB { return listCatalog(tx, &out) })

	if !strings.HasSuffix(sql, `ORDER BY "id"`) {
		t.Fatalf("sql = %q", sql)
	}
}

func TestDeleteProduct_ScopedToID(t *testing.T) {
	db := dryRunDB(t)

	sql := db.ToSQL(func(tx *gorm.DB) *gorm.DB { return deleteProduct(tx, 9) })

	if sql != `DELETE FROM "products" WHERE id = 9` {
		t.Fatalf("sql = %q", sql)
	}
}
