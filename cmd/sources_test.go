package cmd

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/csvdelta/csvdelta/cmd/compressors"
)

func TestQueryTable(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()

	rows := sqlmock.NewRows([]string{"ID", "Name", "Score"}).
		AddRow("1", "Alice", "10").
		AddRow("2", nil, "20")
	mock.ExpectQuery(`SELECT \* FROM "users"`).WillReturnRows(rows)

	table, err := queryTable(context.Background(), db, "users", "source1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if table.Name != "source1" {
		t.Errorf("table name = %q, want source1", table.Name)
	}
	if len(table.Columns) != 3 || table.Columns[0] != "ID" {
		t.Errorf("unexpected columns: %v", table.Columns)
	}
	if len(table.Rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(table.Rows))
	}
	if table.Rows[0]["Name"] != "Alice" {
		t.Errorf("Rows[0][Name] = %q, want Alice", table.Rows[0]["Name"])
	}

	// NULL must decode as an absent cell, not an empty string
	if _, present := table.Rows[1]["Name"]; present {
		t.Error("NULL cell should be absent from the row map")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestQueryTableError(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`SELECT \* FROM "missing"`).WillReturnError(os.ErrNotExist)

	if _, err := queryTable(context.Background(), db, "missing", "source1"); err == nil {
		t.Fatal("expected an error for a failing query")
	}
}

func TestLoadTableFromFile(t *testing.T) {
	dir := t.TempDir()

	t.Run("PlainCSV", func(t *testing.T) {
		path := filepath.Join(dir, "input.csv")
		if err := os.WriteFile(path, []byte("ID,Score\n1,10\n2,20\n"), 0o644); err != nil {
			t.Fatalf("failed to write fixture: %v", err)
		}

		table, err := loadTableFromFile("source1", path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(table.Rows) != 2 || table.Rows[1]["Score"] != "20" {
			t.Errorf("unexpected table contents: %+v", table.Rows)
		}
	})

	t.Run("GzipCSV", func(t *testing.T) {
		compressor := compressors.NewGzipCompressor()
		data, err := compressor.Compress([]byte("ID,Score\n1,10\n"), compressor.DefaultLevel())
		if err != nil {
			t.Fatalf("failed to compress fixture: %v", err)
		}
		path := filepath.Join(dir, "input.csv.gz")
		if err := os.WriteFile(path, data, 0o644); err != nil {
			t.Fatalf("failed to write fixture: %v", err)
		}

		table, err := loadTableFromFile("source1", path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(table.Rows) != 1 || table.Rows[0]["ID"] != "1" {
			t.Errorf("unexpected table contents: %+v", table.Rows)
		}
	})

	t.Run("JSONL", func(t *testing.T) {
		path := filepath.Join(dir, "input.jsonl")
		if err := os.WriteFile(path, []byte(`{"ID":"1","Score":10}`+"\n"), 0o644); err != nil {
			t.Fatalf("failed to write fixture: %v", err)
		}

		table, err := loadTableFromFile("source2", path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(table.Rows) != 1 || table.Rows[0]["Score"] != "10" {
			t.Errorf("unexpected table contents: %+v", table.Rows)
		}
	})

	t.Run("MissingFile", func(t *testing.T) {
		if _, err := loadTableFromFile("source1", filepath.Join(dir, "nope.csv")); err == nil {
			t.Fatal("expected an error for a missing file")
		}
	})
}

func TestLoadTableUnknownSourceType(t *testing.T) {
	_, err := loadTable(context.Background(), "source1", &SourceConfig{Type: "ftp"})
	if err == nil {
		t.Fatal("expected an error for an unknown source type")
	}
}
