package pager

import "testing"

func TestTotalPagesDerivation(t *testing.T) {
	cases := []struct {
		total, pageSize, want int
	}{
		{0, 20, 1},
		{1, 20, 1},
		{20, 20, 1},
		{21, 20, 2},
		{41, 20, 3},
	}

	for _, tc := range cases {
		p := New[string](tc.pageSize)
		p.Apply(p.Begin(), nil, tc.total)
		if got := p.TotalPages(); got != tc.want {
			t.Errorf("total %d size %d: TotalPages = %d, want %d",
				tc.total, tc.pageSize, got, tc.want)
		}
	}
}

func TestNavigationClamped(t *testing.T) {
	p := New[string](10)
	p.Apply(p.Begin(), nil, 25) // 3 pages

	if p.Prev() {
		t.Error("Prev from page 1 must be a no-op")
	}
	if !p.Next() || !p.Next() {
		t.Fatal("Next within range must succeed")
	}
	if p.Page() != 3 {
		t.Fatalf("Page = %d, want 3", p.Page())
	}
	if p.Next() {
		t.Error("Next past the last page must be a no-op")
	}
	if p.Page() != 3 {
		t.Errorf("Page = %d after clamped Next, want 3", p.Page())
	}
}

func TestFilterChangeResetsPage(t *testing.T) {
	p := New[string](10)
	p.Apply(p.Begin(), nil, 50)
	p.Next()
	p.Next()
	if p.Page() != 3 {
		t.Fatalf("Page = %d, want 3", p.Page())
	}

	if !p.SetFilter("status", "submitted") {
		t.Fatal("SetFilter with a new value must report a change")
	}
	if p.Page() != 1 {
		t.Errorf("Page = %d after filter change, want 1", p.Page())
	}

	// Setting the same value again must not disturb paging.
	p.Next()
	if p.SetFilter("status", "submitted") {
		t.Error("SetFilter with an unchanged value must be a no-op")
	}
	if p.Page() != 2 {
		t.Errorf("Page = %d, want 2", p.Page())
	}
}

func TestStaleResponseDiscarded(t *testing.T) {
	p := New[string](10)

	// First fetch starts, then a filter change supersedes it.
	stale := p.Begin()
	p.SetFilter("status", "denied")
	fresh := p.Begin()

	// Fresh response resolves first.
	if !p.Apply(fresh, []string{"denied-1"}, 1) {
		t.Fatal("fresh result rejected")
	}

	// Stale response resolves afterwards and must be discarded.
	if p.Apply(stale, []string{"old-1", "old-2"}, 2) {
		t.Fatal("stale result applied")
	}

	items := p.Items()
	if len(items) != 1 || items[0] != "denied-1" {
		t.Errorf("items = %v, want the fresh response's data", items)
	}
	if p.Total() != 1 {
		t.Errorf("Total = %d, want 1", p.Total())
	}
}

func TestApplyClampsOutOfRangePage(t *testing.T) {
	p := New[string](10)
	p.Apply(p.Begin(), nil, 30)
	p.Next()
	p.Next() // page 3

	// The collection shrank server-side; page 3 no longer exists.
	tok := p.Begin()
	if !p.Apply(tok, []string{"only"}, 5) {
		t.Fatal("apply rejected")
	}
	if p.Page() != 1 {
		t.Errorf("Page = %d after shrink, want clamped to 1", p.Page())
	}
}

func TestClearFilters(t *testing.T) {
	p := New[int](10)
	p.SetFilter("status", "draft")
	p.Apply(p.Begin(), []int{1}, 40)
	p.Next()

	if !p.ClearFilters() {
		t.Fatal("ClearFilters with active filters must report a change")
	}
	if p.Page() != 1 {
		t.Errorf("Page = %d, want 1", p.Page())
	}
	if p.ClearFilters() {
		t.Error("ClearFilters with no filters must be a no-op")
	}
}
