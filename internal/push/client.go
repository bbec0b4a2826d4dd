// Package push maintains the live event subscription to the records
// backend: one SSE connection per authenticated session, named events
// dispatched to registered handlers, transparent reconnection after
// transient failures.
package push

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"sync"
	"time"
)

// Event type tags emitted by the backend. The set is open; tags without
// a registered handler are ignored.
const (
	EventScanComplete         = "scan_complete"
	EventFOIAResponseReceived = "foia_response_received"
	EventFOIASubmitted        = "foia_submitted"
	EventVideoPublished       = "video_published"
	EventVideoStatusChanged   = "video_status_changed"
	EventVideoScheduled       = "video_scheduled_publish"
)

// Handler consumes the JSON payload of one event.
type Handler func(data json.RawMessage)

// HandlerMap routes event type tags to handlers.
type HandlerMap map[string]Handler

// reconnectDelay is the fixed backoff between a connection error and
// the next attempt. Deliberately not exponential: a steady retry rate
// every few seconds is the accepted behavior for this backend.
const reconnectDelay = 5 * time.Second

// Client owns one live SSE connection. Connection errors are absorbed
// by the reconnect loop and never surfaced to the user; the only
// observable symptom of an outage is staleness, which the polling
// backstop bounds.
//
// Start/Stop/Restart are caller-driven teardown points and always win
// over the error-driven reconnect loop: cancelling the run context
// aborts a pending reconnect sleep, so a stale attempt can never open a
// second connection alongside a new one.
type Client struct {
	streamURL string
	token     func() string
	log       *slog.Logger

	httpClient *http.Client

	// delay is reconnectDelay in production; tests shorten it.
	delay time.Duration

	mu       sync.Mutex
	handlers HandlerMap
	cancel   context.CancelFunc
	done     chan struct{}
}

// NewClient creates a push client for the given absolute stream URL.
// token is read at every connection attempt so credential rotation takes
// effect on the next connect. A nil logger falls back to slog.Default.
func NewClient(streamURL string, token func() string, log *slog.Logger) *Client {
	if log == nil {
		log = slog.Default()
	}
	return &Client{
		streamURL: streamURL,
		token:     token,
		log:       log,
		// No overall timeout: the stream is long-lived by design.
		httpClient: &http.Client{},
		delay:      reconnectDelay,
		handlers:   HandlerMap{},
	}
}

// SetReconnectDelay overrides the fixed reconnect delay.
func (c *Client) SetReconnectDelay(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.delay = d
}

// SetHandlers replaces the handler registry. Dispatch always reads the
// current registry, so replacing it takes effect for the very next
// event without reconnecting.
func (c *Client) SetHandlers(handlers HandlerMap) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.handlers = handlers
}

// Start opens the subscription. It is a no-op when already running or
// when no credential is available.
func (c *Client) Start() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cancel != nil {
		return
	}
	if c.token() == "" {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	c.cancel = cancel
	c.done = make(chan struct{})
	go c.run(ctx, c.done)
}

// Stop tears down the connection and any pending reconnect. It blocks
// until the run loop has exited, so no handler fires after Stop
// returns. Calling Stop twice (or without Start) is safe.
func (c *Client) Stop() {
	c.mu.Lock()
	cancel := c.cancel
	done := c.done
	c.cancel = nil
	c.done = nil
	c.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

// Restart tears down the current connection and opens a new one with
// the current credential. Used on login/logout: the old connection is
// fully closed before the new one opens.
func (c *Client) Restart() {
	c.Stop()
	c.Start()
}

// run is the connect/reconnect loop.
func (c *Client) run(ctx context.Context, done chan struct{}) {
	defer close(done)

	for {
		if ctx.Err() != nil {
			return
		}

		token := c.token()
		if token == "" {
			// Credential disappeared mid-session; the session
			// subscriber will Restart after the next login.
			return
		}

		err := c.connect(ctx, token)
		if ctx.Err() != nil {
			return
		}
		c.log.Debug("push connection lost", "error", err)

		c.mu.Lock()
		delay := c.delay
		c.mu.Unlock()

		// Fixed backoff; one reopen per error, no retry storm.
		select {
		case <-ctx.Done():
			return
		case <-time.After(delay):
		}
	}
}

// connect opens the stream and dispatches events until the transport
// fails or ctx is cancelled.
func (c *Client) connect(ctx context.Context, token string) error {
	streamURL := c.streamURL
	if u, err := url.Parse(streamURL); err == nil {
		q := u.Query()
		q.Set("token", token)
		u.RawQuery = q.Encode()
		streamURL = u.String()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, streamURL, nil)
	if err != nil {
		return fmt.Errorf("creating stream request: %w", err)
	}
	req.Header.Set("Accept", "text/event-stream")
	req.Header.Set("Cache-Control", "no-cache")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("opening stream: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("stream endpoint returned %d", resp.StatusCode)
	}

	c.log.Debug("push connection open")

	reader := NewReader(resp.Body)
	for {
		evt, err := reader.Next()
		if err != nil {
			return err
		}
		c.dispatch(evt)
	}
}

// dispatch routes one event to the currently registered handler for its
// type. Unknown types are skipped; malformed payloads are dropped
// without affecting the connection.
func (c *Client) dispatch(evt Event) {
	c.mu.Lock()
	handler := c.handlers[evt.Type]
	c.mu.Unlock()

	if handler == nil {
		return
	}
	if !json.Valid(evt.Data) {
		c.log.Debug("dropping malformed push payload", "type", evt.Type)
		return
	}
	handler(evt.Data)
}
