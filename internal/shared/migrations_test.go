package shared

import (
	"errors"
	"path/filepath"
	"testing"
)

func TestMigrationRunner(t *testing.T) {
	t.Run("loadMigrations", func(t *testing.T) {
		migrations, err := loadMigrations()
		if err != nil {
			t.Fatalf("failed to load migrations: %v", err)
		}

		if len(migrations) == 0 {
			t.Fatal("expected at least one migration")
		}

		for i := 1; i < len(migrations); i++ {
			if migrations[i].Version <= migrations[i-1].Version {
				t.Errorf("migrations not sorted: version %d comes after %d", migrations[i].Version, migrations[i-1].Version)
			}
		}

		for _, m := range migrations {
			if m.Up == "" {
				t.Errorf("migration version %d missing up SQL", m.Version)
			}
			if m.Down == "" {
				t.Errorf("migration version %d missing down SQL", m.Version)
			}
		}

		if migrations[0].Name != "create_tables" {
			t.Errorf("expected first migration name create_tables, got %q", migrations[0].Name)
		}
	})

	t.Run("RunMigrations And Rollback", func(t *testing.T) {
		db, err := NewDatabase(MemoryPath, 0)
		if err != nil {
			t.Fatalf("failed to create database: %v", err)
		}
		defer db.Close()

		if err := RunMigrations(db); err != nil {
			t.Fatalf("failed to run migrations: %v", err)
		}

		var count int
		err = db.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&count)
		if err != nil {
			t.Fatalf("failed to query schema_migrations: %v", err)
		}
		if count == 0 {
			t.Error("expected at least one migration to be applied")
		}

		for _, table := range []string{"users", "artifacts"} {
			if _, err := db.Exec("SELECT 1 FROM " + table + " LIMIT 1"); err != nil {
				t.Errorf("%s table should exist after migrations: %v", table, err)
			}
		}

		version, err := RollbackMigration(db)
		if err != nil {
			t.Fatalf("failed to rollback migration: %v", err)
		}
		if version != 1 {
			t.Errorf("expected to roll back version 1, got %d", version)
		}

		var newCount int
		err = db.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&newCount)
		if err != nil {
			t.Fatalf("failed to query schema_migrations after rollback: %v", err)
		}
		if newCount >= count {
			t.Errorf("expected migration count to decrease after rollback, got %d (was %d)", newCount, count)
		}
	})

	t.Run("Rollback everything", func(t *testing.T) {
		db, err := NewDatabase(MemoryPath, 0)
		if err != nil {
			t.Fatalf("failed to create database: %v", err)
		}
		defer db.Close()

		m, err := NewMigrator(db)
		if err != nil {
			t.Fatalf("NewMigrator() error = %v", err)
		}

		applied, err := m.Up()
		if err != nil {
			t.Fatalf("Up() error = %v", err)
		}

		for range applied {
			if _, err := m.Rollback(); err != nil {
				t.Fatalf("Rollback() error = %v", err)
			}
		}

		if _, err := db.Exec("SELECT 1 FROM artifacts LIMIT 1"); err == nil {
			t.Error("artifacts table should be dropped after full rollback")
		}

		if _, err := m.Rollback(); err == nil {
			t.Error("expected error when nothing is left to roll back")
		}

		pending, err := m.Pending()
		if err != nil {
			t.Fatalf("Pending() error = %v", err)
		}
		if len(pending) != len(applied) {
			t.Errorf("expected %d pending migrations, got %d", len(applied), len(pending))
		}
	})

	t.Run("Idempotent Migrations", func(t *testing.T) {
		db, err := NewDatabase(MemoryPath, 0)
		if err != nil {
			t.Fatalf("failed to create database: %v", err)
		}
		defer db.Close()

		m, err := NewMigrator(db)
		if err != nil {
			t.Fatalf("NewMigrator() error = %v", err)
		}

		if _, err := m.Up(); err != nil {
			t.Fatalf("failed to run migrations first time: %v", err)
		}

		applied, err := m.Up()
		if err != nil {
			t.Fatalf("failed to run migrations second time: %v", err)
		}
		if len(applied) != 0 {
			t.Errorf("second run should apply nothing, applied %v", applied)
		}

		migrations, _ := loadMigrations()
		version, err := m.Version()
		if err != nil {
			t.Fatalf("Version() error = %v", err)
		}
		if version != migrations[len(migrations)-1].Version {
			t.Errorf("expected version %d, got %d", migrations[len(migrations)-1].Version, version)
		}
	})
}

func TestSplitStatements(t *testing.T) {
	script := `
-- leading comment
CREATE TABLE a (id INTEGER); -- trailing comment

CREATE TABLE b (id INTEGER);
`
	stmts := splitStatements(script)
	if len(stmts) != 2 {
		t.Fatalf("expected 2 statements, got %d: %q", len(stmts), stmts)
	}
	if stmts[0] != "CREATE TABLE a (id INTEGER)" {
		t.Errorf("unexpected first statement %q", stmts[0])
	}
}

func TestNewDatabase(t *testing.T) {
	t.Run("file database", func(t *testing.T) {
		db, err := NewDatabase(filepath.Join(t.TempDir(), "tunevault.db"), 10000)
		if err != nil {
			t.Fatalf("NewDatabase() error = %v", err)
		}
		defer db.Close()

		if err := RunMigrations(db); err != nil {
			t.Fatalf("RunMigrations() error = %v", err)
		}
	})

	t.Run("unreachable path is unavailable", func(t *testing.T) {
		_, err := NewDatabase(filepath.Join(t.TempDir(), "missing", "dir", "tunevault.db"), 0)
		if !errors.Is(err, ErrStorageUnavailable) {
			t.Errorf("expected ErrStorageUnavailable, got %v", err)
		}
	})

	t.Run("closed database is unavailable", func(t *testing.T) {
		db, err := NewDatabase(MemoryPath, 0)
		if err != nil {
			t.Fatalf("NewDatabase() error = %v", err)
		}
		db.Close()

		_, err = db.Exec("SELECT 1")
		if !IsUnavailable(err) {
			t.Errorf("expected closed database to be unavailable, got %v", err)
		}
	})

	t.Run("statement errors are not unavailability", func(t *testing.T) {
		db, err := NewDatabase(MemoryPath, 0)
		if err != nil {
			t.Fatalf("NewDatabase() error = %v", err)
		}
		defer db.Close()

		_, err = db.Exec("SELECT * FROM no_such_table")
		if err == nil {
			t.Fatal("expected error for missing table")
		}
		if IsUnavailable(err) {
			t.Errorf("missing table should not count as unavailable: %v", err)
		}
	})
}
