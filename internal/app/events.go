package app

import (
	"encoding/json"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/foiadesk/foiadesk/internal/push"
	appsync "github.com/foiadesk/foiadesk/internal/sync"
)

// PushEventMsg is the tea.Msg form of one backend push event. Feed names
// the list that should refresh; Toast is the one-line status message.
type PushEventMsg struct {
	Type  string
	Feed  appsync.Feed
	Toast string
}

type responsePayload struct {
	RequestID      string `json:"request_id"`
	TrackingNumber string `json:"tracking_number"`
}

type scanPayload struct {
	NewArticles int `json:"new_articles"`
}

type videoPayload struct {
	VideoID string `json:"video_id"`
	Title   string `json:"title"`
}

// pushHandlers builds the handler registry. Handlers run on the push
// client's goroutine, so they only translate payloads into messages on
// the event channel; the Bubble Tea loop does the rest.
func (m *Model) pushHandlers() push.HandlerMap {
	emit := func(msg PushEventMsg) {
		select {
		case m.eventCh <- msg:
		default:
			// UI is behind; the polling backstop covers the gap.
		}
	}

	return push.HandlerMap{
		push.EventFOIAResponseReceived: func(data json.RawMessage) {
			var p responsePayload
			_ = json.Unmarshal(data, &p)
			toast := "Agency response received"
			if p.TrackingNumber != "" {
				toast = "Response received on " + p.TrackingNumber
			}
			emit(PushEventMsg{
				Type:  push.EventFOIAResponseReceived,
				Feed:  appsync.FeedRequests,
				Toast: toast,
			})
		},
		push.EventFOIASubmitted: func(data json.RawMessage) {
			emit(PushEventMsg{
				Type:  push.EventFOIASubmitted,
				Feed:  appsync.FeedRequests,
				Toast: "Request submitted",
			})
		},
		push.EventScanComplete: func(data json.RawMessage) {
			var p scanPayload
			_ = json.Unmarshal(data, &p)
			emit(PushEventMsg{
				Type:  push.EventScanComplete,
				Feed:  appsync.FeedArticles,
				Toast: fmt.Sprintf("News scan finished: %d new articles", p.NewArticles),
			})
		},
		push.EventVideoPublished: func(data json.RawMessage) {
			var p videoPayload
			_ = json.Unmarshal(data, &p)
			toast := "Video published"
			if p.Title != "" {
				toast = "Published: " + p.Title
			}
			emit(PushEventMsg{
				Type:  push.EventVideoPublished,
				Feed:  appsync.FeedVideos,
				Toast: toast,
			})
		},
		push.EventVideoStatusChanged: func(data json.RawMessage) {
			emit(PushEventMsg{
				Type: push.EventVideoStatusChanged,
				Feed: appsync.FeedVideos,
			})
		},
		push.EventVideoScheduled: func(data json.RawMessage) {
			var p videoPayload
			_ = json.Unmarshal(data, &p)
			toast := "Video scheduled for publication"
			if p.Title != "" {
				toast = "Scheduled: " + p.Title
			}
			emit(PushEventMsg{
				Type:  push.EventVideoScheduled,
				Feed:  appsync.FeedVideos,
				Toast: toast,
			})
		},
	}
}

// waitForPushEvent blocks on the event channel and delivers the next
// push event to the runtime. Re-issued after every PushEventMsg.
func (m Model) waitForPushEvent() tea.Cmd {
	ch := m.eventCh
	return func() tea.Msg {
		return <-ch
	}
}
