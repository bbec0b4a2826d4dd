package help

import (
	"strings"
	"testing"

	"github.com/foiadesk/foiadesk/internal/keys"
)

func TestViewGroupsBindingsBySection(t *testing.T) {
	m := New(keys.DefaultKeyMap(), 80, 40)
	out := m.View()

	for _, section := range []string{"Views", "Navigation", "Filters and search", "Actions"} {
		if !strings.Contains(out, section) {
			t.Errorf("missing section %q:\n%s", section, out)
		}
	}

	// One representative binding per section.
	for _, desc := range []string{"requests", "next page", "cycle status filter", "mark all read"} {
		if !strings.Contains(out, desc) {
			t.Errorf("missing binding description %q", desc)
		}
	}
}
