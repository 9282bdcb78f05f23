package db

import (
	"context"
	"database/sql"
	"testing"

	_ "modernc.org/sqlite"
)

func TestRunMigrationsSqlite_Idempotent(t *testing.T) {
	dbConn, err := sql.Open("sqlite", "file:test_migrations?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	dbConn.SetMaxOpenConns(1)
	defer func() { _ = dbConn.Close() }()

	for i := 0; i < 2; i++ {
		if err := RunMigrations(dbConn, TypeSQLite); err != nil {
			t.Fatalf("RunMigrations run %d failed: %v", i+1, err)
		}
	}

	var count int
	if err := dbConn.QueryRow("SELECT COUNT(*) FROM schema_migrations WHERE version = ?", "000001_create_quiz_tables").Scan(&count); err != nil {
		t.Fatalf("query schema_migrations failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected migration recorded once, got %d", count)
	}

	for _, table := range []string{"admins", "themes", "questions", "answers"} {
		var name string
		if err := dbConn.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name = ?", table).Scan(&name); err != nil {
			t.Fatalf("table %s missing: %v", table, err)
		}
	}
}

func TestEmbeddedMigrationsForEveryDialect(t *testing.T) {
	for _, dbType := range []string{TypeSQLite, TypePostgres, TypeMySQL} {
		data, err := embeddedMigrations.ReadFile("migrations/" + dbType + "/000001_create_quiz_tables.up.sql")
		if err != nil {
			t.Fatalf("%s: %v", dbType, err)
		}
		if n := len(splitStatements(string(data))); n < 4 {
			t.Fatalf("%s: expected at least 4 statements, got %d", dbType, n)
		}
	}
}

func TestUnsupportedDatabaseType(t *testing.T) {
	if _, err := NewStoreFromDSN("oracle", "x"); err == nil {
		t.Fatalf("expected error for unsupported database type")
	}
}

func TestRunDBMaintenanceSqlite_Smoke(t *testing.T) {
	dsn := "file:" + t.TempDir() + "/maint.db"
	s, err := NewStoreFromDSN(TypeSQLite, dsn)
	if err != nil {
		t.Fatalf("NewStoreFromDSN: %v", err)
	}
	_ = s.Close()
	if err := RunDBMaintenance(context.Background(), TypeSQLite, dsn); err != nil {
		t.Fatalf("RunDBMaintenance failed: %v", err)
	}
}

func TestRunStoreMaintenanceKeepsData(t *testing.T) {
	s, err := NewStoreFromDSN(TypeSQLite, "file:"+t.TempDir()+"/store_maint.db")
	if err != nil {
		t.Fatalf("NewStoreFromDSN: %v", err)
	}
	defer func() { _ = s.Close() }()
	ctx := context.Background()
	if _, err := s.InsertTheme(ctx, "History"); err != nil {
		t.Fatalf("InsertTheme: %v", err)
	}
	if s.Type() != TypeSQLite {
		t.Fatalf("unexpected store type %q", s.Type())
	}
	if err := RunStoreMaintenance(ctx, s); err != nil {
		t.Fatalf("RunStoreMaintenance: %v", err)
	}
	themes, err := s.ListThemes(ctx)
	if err != nil || len(themes) != 1 {
		t.Fatalf("expected the theme to survive maintenance, got %v (%v)", themes, err)
	}
}
