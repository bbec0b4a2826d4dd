package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/foiadesk/foiadesk/internal/session"
)

// ErrUnauthorized is returned when the backend rejects the credential.
// The transport has already cleared the session and fired the
// auth-failure callback by the time callers see it.
var ErrUnauthorized = errors.New("authentication failed (401)")

// APIError is a non-2xx response from the backend, preserving the
// server-supplied message when one was present.
type APIError struct {
	StatusCode int
	Method     string
	Path       string
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api error (%d) on %s %s: %s",
			e.StatusCode, e.Method, e.Path, e.Message)
	}
	return fmt.Sprintf("unexpected status %d on %s %s",
		e.StatusCode, e.Method, e.Path)
}

// errorBody is the backend's error envelope.
type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// Client is the authenticated HTTP transport for the records backend.
// It attaches the bearer credential from the session store to every
// request and handles authentication failure globally: a 401 clears the
// stored credential and invokes the auth-failure callback before
// propagating ErrUnauthorized to the caller.
type Client struct {
	baseURL    string
	sess       *session.Store
	httpClient *http.Client
	entropy    io.Reader

	// onAuthFailure is invoked once per 401, after the session is
	// cleared. The TUI uses it to route to the login view.
	onAuthFailure func()
}

// NewClient creates a transport rooted at baseURL using the given
// session store.
func NewClient(baseURL string, sess *session.Store) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		sess:    sess,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		entropy: ulid.Monotonic(rand.New(rand.NewSource(time.Now().UnixNano())), 0),
	}
}

// OnAuthFailure registers the global authentication-failure handler.
func (c *Client) OnAuthFailure(fn func()) {
	c.onAuthFailure = fn
}

// BaseURL returns the configured backend root.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Session returns the session store backing this transport.
func (c *Client) Session() *session.Store {
	return c.sess
}

// Get performs an HTTP GET request and unmarshals the JSON response.
func (c *Client) Get(
	ctx context.Context,
	path string,
	query url.Values,
	result interface{},
) error {
	raw, _, err := c.do(ctx, http.MethodGet, path, query, nil)
	if err != nil {
		return err
	}
	return decodeInto(raw, result)
}

// Post performs an HTTP POST request with a JSON body and unmarshals
// the JSON response.
func (c *Client) Post(
	ctx context.Context,
	path string,
	body interface{},
	result interface{},
) error {
	raw, _, err := c.do(ctx, http.MethodPost, path, nil, body)
	if err != nil {
		return err
	}
	return decodeInto(raw, result)
}

// Put performs an HTTP PUT request with a JSON body and unmarshals the
// JSON response.
func (c *Client) Put(
	ctx context.Context,
	path string,
	body interface{},
	result interface{},
) error {
	raw, _, err := c.do(ctx, http.MethodPut, path, nil, body)
	if err != nil {
		return err
	}
	return decodeInto(raw, result)
}

// GetRaw performs an HTTP GET and returns the undecoded response body.
// List endpoints use it so the envelope normalizer can inspect the
// payload shape.
func (c *Client) GetRaw(
	ctx context.Context,
	path string,
	query url.Values,
) ([]byte, error) {
	raw, _, err := c.do(ctx, http.MethodGet, path, query, nil)
	return raw, err
}

// GetBlob performs an HTTP GET for a binary payload (CSV/PDF exports)
// and returns the bytes with the server content type.
func (c *Client) GetBlob(
	ctx context.Context,
	path string,
	query url.Values,
) ([]byte, string, error) {
	return c.doRaw(ctx, http.MethodGet, path, query, nil, "")
}

// do builds and executes a JSON request, handling auth and error
// translation.
func (c *Client) do(
	ctx context.Context,
	method string,
	path string,
	query url.Values,
	body interface{},
) ([]byte, string, error) {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, "", fmt.Errorf("marshaling request body: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	contentType := ""
	if body != nil {
		contentType = "application/json"
	}
	return c.doRaw(ctx, method, path, query, bodyReader, contentType)
}

// doRaw is the core request path shared by JSON and binary calls.
func (c *Client) doRaw(
	ctx context.Context,
	method string,
	path string,
	query url.Values,
	bodyReader io.Reader,
	contentType string,
) ([]byte, string, error) {
	reqURL := c.baseURL + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, bodyReader)
	if err != nil {
		return nil, "", fmt.Errorf("creating request: %w", err)
	}

	// Snapshot the credential at time of use.
	if token := c.sess.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", ulid.MustNew(ulid.Timestamp(time.Now()), c.entropy).String())
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("executing request %s %s: %w", method, path, err)
	}

	respBody, readErr := io.ReadAll(resp.Body)
	resp.Body.Close()
	if readErr != nil {
		return nil, "", fmt.Errorf("reading response body: %w", readErr)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		// Fail closed: the session is dead, drop the credential and
		// let the registered handler route to login.
		_ = c.sess.Clear()
		if c.onAuthFailure != nil {
			c.onAuthFailure()
		}
		return nil, "", ErrUnauthorized
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{
			StatusCode: resp.StatusCode,
			Method:     method,
			Path:       path,
		}
		var eb errorBody
		if json.Unmarshal(respBody, &eb) == nil {
			if eb.Message != "" {
				apiErr.Message = eb.Message
			} else if eb.Error != "" {
				apiErr.Message = eb.Error
			}
		}
		return nil, "", apiErr
	}

	return respBody, resp.Header.Get("Content-Type"), nil
}

// decodeInto unmarshals raw into result, tolerating empty bodies
// (e.g. 204 responses) and nil results.
func decodeInto(raw []byte, result interface{}) error {
	if result == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, result); err != nil {
		return fmt.Errorf("parsing response: %w", err)
	}
	return nil
}
