package ui

import (
	"strings"
	"testing"
)

func TestContentHeightAccountsForFrame(t *testing.T) {
	l := NewLayout(80, 24)
	if got := l.ContentHeight(); got != 22 {
		t.Errorf("ContentHeight() = %d, want 22", got)
	}
	if got := l.ContentWidth(); got != 80 {
		t.Errorf("ContentWidth() = %d, want 80", got)
	}
}

func TestRenderHeaderUnreadBadge(t *testing.T) {
	l := NewLayout(80, 24)

	withUnread := l.RenderHeader("FOIA Desk", 3, "jo")
	if !strings.Contains(withUnread, "3 unread") {
		t.Errorf("expected unread badge in header:\n%s", withUnread)
	}

	noUnread := l.RenderHeader("FOIA Desk", 0, "jo")
	if strings.Contains(noUnread, "unread") {
		t.Errorf("unexpected badge with zero unread:\n%s", noUnread)
	}
	if !strings.Contains(noUnread, "FOIA Desk") || !strings.Contains(noUnread, "jo") {
		t.Errorf("missing title or status:\n%s", noUnread)
	}
}

func TestRenderStatusBarToastPreemptsHints(t *testing.T) {
	l := NewLayout(80, 24)

	bar := l.RenderStatusBar("Response received on F-2026-01441", "q quit | ? help")
	if !strings.Contains(bar, "Response received on F-2026-01441") {
		t.Errorf("toast missing from status bar:\n%s", bar)
	}
	if strings.Contains(bar, "q quit") {
		t.Errorf("hints should be hidden while a toast is showing:\n%s", bar)
	}

	bar = l.RenderStatusBar("", "q quit | ? help")
	if !strings.Contains(bar, "q quit | ? help") {
		t.Errorf("hints missing with no toast:\n%s", bar)
	}
}
