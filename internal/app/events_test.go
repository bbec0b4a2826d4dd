package app

import (
	"encoding/json"
	"testing"

	"github.com/foiadesk/foiadesk/internal/push"
	appsync "github.com/foiadesk/foiadesk/internal/sync"
)

func TestPushHandlersTranslateEvents(t *testing.T) {
	m := &Model{eventCh: make(chan PushEventMsg, 4)}
	handlers := m.pushHandlers()

	handlers[push.EventFOIAResponseReceived](json.RawMessage(
		`{"request_id":"r-1","tracking_number":"F-2026-01441"}`))

	got := <-m.eventCh
	if got.Feed != appsync.FeedRequests {
		t.Errorf("feed = %s, want %s", got.Feed, appsync.FeedRequests)
	}
	if got.Toast != "Response received on F-2026-01441" {
		t.Errorf("toast = %q", got.Toast)
	}

	handlers[push.EventVideoPublished](json.RawMessage(`{"video_id":"v-1","title":"Bodycam"}`))
	got = <-m.eventCh
	if got.Feed != appsync.FeedVideos || got.Toast != "Published: Bodycam" {
		t.Errorf("video event = %+v", got)
	}
}

func TestPushHandlersDropWhenChannelFull(t *testing.T) {
	m := &Model{eventCh: make(chan PushEventMsg, 1)}
	handlers := m.pushHandlers()

	payload := json.RawMessage(`{}`)
	handlers[push.EventFOIASubmitted](payload)
	// Channel is full now; further events must not block the push
	// client's dispatch goroutine.
	handlers[push.EventFOIASubmitted](payload)
	handlers[push.EventFOIASubmitted](payload)

	if n := len(m.eventCh); n != 1 {
		t.Errorf("buffered events = %d, want 1", n)
	}
}
