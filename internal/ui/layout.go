package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/foiadesk/foiadesk/internal/theme"
)

// frameLines is the header line plus the status bar line.
const frameLines = 2

// Layout owns the dashboard frame: a title bar carrying the unread
// badge and session status, the content area, and a status bar where a
// transient toast preempts the key hints.
type Layout struct {
	Width  int
	Height int
}

// NewLayout creates a Layout with the given terminal dimensions.
func NewLayout(width, height int) Layout {
	return Layout{Width: width, Height: height}
}

// ContentWidth returns the full available width.
func (l Layout) ContentWidth() int {
	return l.Width
}

// ContentHeight returns the rows left for the active view.
func (l Layout) ContentHeight() int {
	return l.Height - frameLines
}

// RenderHeader renders the title bar. A positive unread count places a
// badge next to the title; status sits right-aligned.
func (l Layout) RenderHeader(title string, unread int, status string) string {
	left := theme.HeaderStyle.Render(title)
	if unread > 0 {
		badge := theme.BadgeStyle.Render(fmt.Sprintf("%d unread", unread))
		left = lipgloss.JoinHorizontal(lipgloss.Top, left, badge)
	}
	right := theme.HeaderStyle.Render(status)

	gap := l.Width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}
	filler := theme.HeaderStyle.Render(
		lipgloss.NewStyle().
			Width(gap).
			Background(theme.HeaderStyle.GetBackground()).
			Render(""),
	)

	return lipgloss.JoinHorizontal(lipgloss.Top, left, filler, right)
}

// RenderStatusBar renders the keyboard hints. A non-empty toast takes
// the line instead until the next refresh clears it.
func (l Layout) RenderStatusBar(toast, hints string) string {
	var rendered string
	if toast != "" {
		rendered = theme.ToastStyle.Render(toast)
	} else {
		rendered = theme.StatusBarStyle.Render(hints)
	}

	gap := l.Width - lipgloss.Width(rendered)
	if gap < 0 {
		gap = 0
	}
	filler := theme.StatusBarStyle.Render(
		lipgloss.NewStyle().
			Width(gap).
			Background(theme.StatusBarStyle.GetBackground()).
			Render(""),
	)

	return lipgloss.JoinHorizontal(lipgloss.Top, rendered, filler)
}

// RenderWithFrame composes the full terminal view by vertically joining
// the header, content area, and status bar.
func (l Layout) RenderWithFrame(header, content, statusBar string) string {
	return lipgloss.JoinVertical(
		lipgloss.Left,
		header,
		content,
		statusBar,
	)
}
