package sqlxrepos

import (
	"os"
	"testing"

	"github.com/jmoiron/sqlx"
)

// openTestDB connects to the Postgres pointed at by TEST_DATABASE_URL and
// hands back an empty schema; without that env var the test is skipped.
func openTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set; skipping Postgres tests")
	}

	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		t.Fatalf("sqlx.Connect(): %v", err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Errorf("db.Close(): %v", err)
		}
	})

	if err := CreateTables(db); err != nil {
		t.Fatalf("CreateTables(): %v", err)
	}
	if _, err := db.Exec(`TRUNCATE users, classes, attendance, notifications RESTART IDENTITY`); err != nil {
		t.Fatalf("truncating tables: %v", err)
	}
	return db
}
