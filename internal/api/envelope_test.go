package api

import (
	"testing"

	"github.com/foiadesk/foiadesk/internal/model"
)

func TestDecodePageEnvelope(t *testing.T) {
	raw := []byte(`{
		"items": [
			{"id": "a-1", "name": "City Police Department"},
			{"id": "a-2", "name": "County Clerk"}
		],
		"total": 41,
		"page": 2,
		"page_size": 2
	}`)

	page, err := DecodePage[model.Agency](raw)
	if err != nil {
		t.Fatalf("DecodePage: %v", err)
	}
	if len(page.Items) != 2 {
		t.Fatalf("len(Items) = %d, want 2", len(page.Items))
	}
	if page.Items[0].ID != "a-1" || page.Items[1].Name != "County Clerk" {
		t.Errorf("items decoded wrong: %+v", page.Items)
	}
	if page.Total != 41 || page.Page != 2 || page.PageSize != 2 {
		t.Errorf("paging = total %d page %d size %d", page.Total, page.Page, page.PageSize)
	}
}

func TestDecodePageLegacyBareArray(t *testing.T) {
	raw := []byte(` [
		{"id": "r-1", "subject": "Use-of-force reports"},
		{"id": "r-2", "subject": "Contract ledger"},
		{"id": "r-3", "subject": "Bodycam footage"}
	]`)

	page, err := DecodePage[model.Request](raw)
	if err != nil {
		t.Fatalf("DecodePage: %v", err)
	}
	if len(page.Items) != 3 {
		t.Fatalf("len(Items) = %d, want 3", len(page.Items))
	}
	if page.Total != 3 {
		t.Errorf("Total = %d, want 3 (bare arrays report their own length)", page.Total)
	}
	if page.Page != 1 {
		t.Errorf("Page = %d, want 1", page.Page)
	}
}

func TestDecodePageEmptyEnvelope(t *testing.T) {
	page, err := DecodePage[model.Notification]([]byte(`{"items": [], "total": 0}`))
	if err != nil {
		t.Fatalf("DecodePage: %v", err)
	}
	if len(page.Items) != 0 || page.Total != 0 {
		t.Errorf("expected empty page, got %+v", page)
	}
	if page.Page != 1 {
		t.Errorf("Page = %d, want clamped to 1", page.Page)
	}
}

func TestDecodePageMalformed(t *testing.T) {
	if _, err := DecodePage[model.Agency]([]byte(`{"items": "nope"}`)); err == nil {
		t.Error("expected error for non-array items")
	}
	if _, err := DecodePage[model.Agency]([]byte(`[{"id": 3}]`)); err == nil {
		t.Error("expected error for mistyped item fields")
	}
}
