package push

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/foiadesk/foiadesk/internal/logging"
)

// streamConn is one accepted stream connection under test control.
type streamConn struct {
	frames chan string
	token  string
}

// send writes a raw frame to the connection.
func (c *streamConn) send(frame string) {
	c.frames <- frame
}

// drop closes the connection from the server side.
func (c *streamConn) drop() {
	close(c.frames)
}

// streamServer is an SSE endpoint whose connections are scripted by the
// test: each accepted connection is handed over on the accept channel.
type streamServer struct {
	srv    *httptest.Server
	accept chan *streamConn

	mu    sync.Mutex
	conns int
}

func newStreamServer(t *testing.T) *streamServer {
	t.Helper()
	s := &streamServer{accept: make(chan *streamConn, 8)}
	s.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		flusher, ok := w.(http.Flusher)
		if !ok {
			t.Error("response writer is not a flusher")
			return
		}
		w.Header().Set("Content-Type", "text/event-stream")
		w.WriteHeader(http.StatusOK)
		flusher.Flush()

		conn := &streamConn{
			frames: make(chan string),
			token:  r.URL.Query().Get("token"),
		}
		s.mu.Lock()
		s.conns++
		s.mu.Unlock()
		s.accept <- conn

		for {
			select {
			case frame, open := <-conn.frames:
				if !open {
					return
				}
				_, _ = io.WriteString(w, frame)
				flusher.Flush()
			case <-r.Context().Done():
				return
			}
		}
	}))
	t.Cleanup(s.srv.Close)
	return s
}

func (s *streamServer) connCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conns
}

// waitConn waits for the next accepted connection.
func (s *streamServer) waitConn(t *testing.T) *streamConn {
	t.Helper()
	select {
	case conn := <-s.accept:
		return conn
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for a stream connection")
		return nil
	}
}

func newTestClient(s *streamServer) *Client {
	c := NewClient(s.srv.URL, func() string { return "tok-stream" }, logging.Discard())
	c.SetReconnectDelay(150 * time.Millisecond)
	return c
}

// waitMsg waits for one payload on ch.
func waitMsg(t *testing.T, ch <-chan string) string {
	t.Helper()
	select {
	case v := <-ch:
		return v
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for a dispatched event")
		return ""
	}
}

func TestTokenPassedAsQueryParameter(t *testing.T) {
	s := newStreamServer(t)
	c := newTestClient(s)
	defer c.Stop()

	c.Start()
	conn := s.waitConn(t)
	if conn.token != "tok-stream" {
		t.Errorf("stream opened with token %q, want tok-stream", conn.token)
	}
	conn.drop()
}

func TestStartWithoutCredentialIsNoOp(t *testing.T) {
	s := newStreamServer(t)
	c := NewClient(s.srv.URL, func() string { return "" }, logging.Discard())
	c.Start()
	defer c.Stop()

	time.Sleep(100 * time.Millisecond)
	if got := s.connCount(); got != 0 {
		t.Errorf("connections = %d, want 0 without a credential", got)
	}
}

func TestDispatchToRegisteredHandler(t *testing.T) {
	s := newStreamServer(t)
	c := newTestClient(s)
	defer c.Stop()

	got := make(chan string, 1)
	c.SetHandlers(HandlerMap{
		EventFOIASubmitted: func(data json.RawMessage) {
			got <- string(data)
		},
	})

	c.Start()
	conn := s.waitConn(t)
	conn.send("event: foia_submitted\ndata: {\"request_id\":\"r-9\"}\n\n")

	if payload := waitMsg(t, got); payload != `{"request_id":"r-9"}` {
		t.Errorf("payload = %s", payload)
	}
	conn.drop()
}

func TestReconnectWaitsFixedDelay(t *testing.T) {
	s := newStreamServer(t)
	c := newTestClient(s)
	defer c.Stop()

	c.Start()
	conn := s.waitConn(t)
	conn.drop()

	// Well before the 150ms delay: no reopen yet.
	time.Sleep(50 * time.Millisecond)
	if got := s.connCount(); got != 1 {
		t.Fatalf("connections = %d before the delay elapsed, want 1", got)
	}

	// After the delay: exactly one reopen, not a storm.
	s.waitConn(t)
	time.Sleep(50 * time.Millisecond)
	if got := s.connCount(); got != 2 {
		t.Errorf("connections = %d after one error, want exactly 2", got)
	}
}

func TestStopDuringPendingReconnect(t *testing.T) {
	s := newStreamServer(t)
	c := newTestClient(s)
	c.SetReconnectDelay(300 * time.Millisecond)

	c.Start()
	conn := s.waitConn(t)
	conn.drop()

	// The reconnect timer is now pending; teardown must cancel it.
	time.Sleep(50 * time.Millisecond)
	c.Stop()
	c.Stop() // idempotent

	time.Sleep(500 * time.Millisecond)
	if got := s.connCount(); got != 1 {
		t.Errorf("connections = %d after Stop, want 1 (stale reconnect must abort)", got)
	}
}

func TestRestartClosesBeforeOpening(t *testing.T) {
	s := newStreamServer(t)
	c := newTestClient(s)
	defer c.Stop()

	c.Start()
	first := s.waitConn(t)

	done := make(chan struct{})
	go func() {
		c.Restart()
		close(done)
	}()

	// Restart blocks in Stop until the old connection's loop exits.
	first.drop()
	<-done

	second := s.waitConn(t)
	second.drop()
	if got := s.connCount(); got != 2 {
		t.Errorf("connections = %d after restart, want 2", got)
	}
}

func TestHandlerFreshnessAcrossReplacement(t *testing.T) {
	s := newStreamServer(t)
	c := newTestClient(s)
	defer c.Stop()

	first := make(chan string, 1)
	c.SetHandlers(HandlerMap{
		EventVideoStatusChanged: func(data json.RawMessage) {
			first <- string(data)
		},
	})

	c.Start()
	conn := s.waitConn(t)
	conn.send("event: video_status_changed\ndata: {\"id\":\"v-1\"}\n\n")
	waitMsg(t, first)

	// Replace the registry between two events of the same type. The
	// second event must reach the new handler without a reconnect.
	second := make(chan string, 1)
	c.SetHandlers(HandlerMap{
		EventVideoStatusChanged: func(data json.RawMessage) {
			second <- string(data)
		},
	})

	conn.send("event: video_status_changed\ndata: {\"id\":\"v-2\"}\n\n")
	if payload := waitMsg(t, second); payload != `{"id":"v-2"}` {
		t.Errorf("payload = %s", payload)
	}
	select {
	case stale := <-first:
		t.Errorf("stale handler received %s after replacement", stale)
	default:
	}
	if got := s.connCount(); got != 1 {
		t.Errorf("connections = %d, want 1 (no reconnect on handler swap)", got)
	}
	conn.drop()
}

func TestMalformedPayloadDoesNotBreakStream(t *testing.T) {
	s := newStreamServer(t)
	c := newTestClient(s)
	defer c.Stop()

	got := make(chan string, 2)
	c.SetHandlers(HandlerMap{
		EventScanComplete: func(data json.RawMessage) {
			got <- string(data)
		},
	})

	c.Start()
	conn := s.waitConn(t)
	conn.send("event: scan_complete\ndata: {not json at all\n\n")
	conn.send("event: scan_complete\ndata: {\"articles\":4}\n\n")

	if payload := waitMsg(t, got); payload != `{"articles":4}` {
		t.Errorf("payload = %s, want the well-formed follow-up", payload)
	}
	if got := s.connCount(); got != 1 {
		t.Errorf("connections = %d, want 1 (bad payload must not reconnect)", got)
	}
	conn.drop()
}

func TestUnknownEventTypeIsIgnored(t *testing.T) {
	s := newStreamServer(t)
	c := newTestClient(s)
	defer c.Stop()

	got := make(chan string, 1)
	c.SetHandlers(HandlerMap{
		EventFOIAResponseReceived: func(data json.RawMessage) {
			got <- string(data)
		},
	})

	c.Start()
	conn := s.waitConn(t)

	// No handler registered for video_published: no dispatch, no error,
	// and the connection keeps delivering later events.
	conn.send("event: video_published\ndata: {\"id\":\"v-3\"}\n\n")
	conn.send("event: foia_response_received\ndata: {\"request_id\":\"r-2\"}\n\n")

	if payload := waitMsg(t, got); payload != `{"request_id":"r-2"}` {
		t.Errorf("payload = %s", payload)
	}
	if got := s.connCount(); got != 1 {
		t.Errorf("connections = %d, want 1", got)
	}
	conn.drop()
}

func TestNoDispatchAfterStop(t *testing.T) {
	s := newStreamServer(t)
	c := newTestClient(s)

	var mu sync.Mutex
	delivered := 0
	c.SetHandlers(HandlerMap{
		EventVideoPublished: func(json.RawMessage) {
			mu.Lock()
			delivered++
			mu.Unlock()
		},
	})

	c.Start()
	conn := s.waitConn(t)
	conn.send("event: video_published\ndata: {}\n\n")

	// Stop blocks until the run loop exits; nothing may fire afterwards.
	c.Stop()
	mu.Lock()
	after := delivered
	mu.Unlock()

	time.Sleep(100 * time.Millisecond)
	mu.Lock()
	if delivered != after {
		t.Errorf("handler fired after Stop (%d -> %d)", after, delivered)
	}
	mu.Unlock()
}
