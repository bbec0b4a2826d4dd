package export

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestFilenameEmbedsDate(t *testing.T) {
	at := time.Date(2026, 3, 9, 14, 30, 0, 0, time.UTC)

	cases := []struct {
		kind        string
		contentType string
		want        string
	}{
		{"requests", "text/csv; charset=utf-8", "requests-2026-03-09.csv"},
		{"summary", "application/pdf", "summary-2026-03-09.pdf"},
		{"revenue", "", "revenue-2026-03-09.bin"},
	}

	for _, tc := range cases {
		if got := Filename(tc.kind, tc.contentType, at); got != tc.want {
			t.Errorf("Filename(%q, %q) = %q, want %q", tc.kind, tc.contentType, got, tc.want)
		}
	}
}

func TestSaveWritesAndOverwrites(t *testing.T) {
	dir := t.TempDir()
	at := time.Date(2026, 3, 9, 10, 0, 0, 0, time.UTC)

	path, err := Save(dir, "requests", "text/csv", []byte("id,status\n"), at)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if filepath.Base(path) != "requests-2026-03-09.csv" {
		t.Errorf("path = %s", path)
	}

	// Same kind on the same day replaces the file.
	path2, err := Save(dir, "requests", "text/csv", []byte("id,status\nr-1,filed\n"), at)
	if err != nil {
		t.Fatalf("Save (second): %v", err)
	}
	if path2 != path {
		t.Errorf("second path = %s, want %s", path2, path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(data) != "id,status\nr-1,filed\n" {
		t.Errorf("contents = %q", data)
	}
}
