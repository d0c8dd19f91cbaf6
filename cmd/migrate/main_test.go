package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDescriptionFromFilename(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"2026-10-19-001-create-migrations.sql", "create migrations"},
		{"2026-10-19-004-create-daily-log.sql", "create daily log"},
		{"no-prefix.sql", "no prefix"},
	}
	for _, tt := range tests {
		if got := descriptionFromFilename(tt.in); got != tt.want {
			t.Errorf("descriptionFromFilename(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestMigrationFilesAndPending(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"2026-10-19-002-b.sql", "2026-10-19-001-a.sql", "notes.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("SELECT 1;"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	files, err := migrationFiles(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 2 || filepath.Base(files[0]) != "2026-10-19-001-a.sql" {
		t.Fatalf("unexpected files: %v", files)
	}

	pending := pendingMigrations(files, map[string]bool{"2026-10-19-001-a.sql": true})
	if len(pending) != 1 || filepath.Base(pending[0]) != "2026-10-19-002-b.sql" {
		t.Errorf("unexpected pending: %v", pending)
	}

	if _, err := migrationFiles(t.TempDir()); err == nil {
		t.Error("expected error for empty dir")
	}
}

func TestRepoMigrationsAreOrdered(t *testing.T) {
	files, err := migrationFiles(filepath.Join("..", "..", "db"))
	if err != nil {
		t.Fatal(err)
	}
	if got := filepath.Base(files[0]); got != "2026-10-19-001-create-migrations.sql" {
		t.Errorf("first migration = %s, want the migrations table", got)
	}
}
