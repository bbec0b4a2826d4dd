package main

import (
	"strings"
	"testing"
)

func TestTotalPages(t *testing.T) {
	cases := []struct {
		total, pageSize, want int
	}{
		{0, 20, 1},
		{1, 20, 1},
		{20, 20, 1},
		{21, 20, 2},
		{100, 25, 4},
		{5, 0, 1},
	}
	for _, c := range cases {
		if got := totalPages(c.total, c.pageSize); got != c.want {
			t.Errorf("totalPages(%d, %d) = %d, want %d", c.total, c.pageSize, got, c.want)
		}
	}
}

func TestRenderTable(t *testing.T) {
	out := renderTable(
		[]string{"ID", "NAME"},
		[][]string{{"r-1", "City Police"}, {"r-2", "County Sheriff"}},
	)
	if !strings.Contains(out, "ID") || !strings.Contains(out, "NAME") {
		t.Fatalf("missing headers:\n%s", out)
	}
	if !strings.Contains(out, "City Police") || !strings.Contains(out, "County Sheriff") {
		t.Fatalf("missing rows:\n%s", out)
	}
}

func TestRenderTableEmptyHeaders(t *testing.T) {
	if out := renderTable(nil, nil); out != "" {
		t.Fatalf("expected empty output, got %q", out)
	}
}

func TestRenderTableShortRow(t *testing.T) {
	// Rows narrower than the header set must pad, not panic.
	out := renderTable([]string{"A", "B", "C"}, [][]string{{"only"}})
	if !strings.Contains(out, "only") {
		t.Fatalf("missing row value:\n%s", out)
	}
}
