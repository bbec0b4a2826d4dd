package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/foiadesk/foiadesk/internal/session"
)

func TestClientAttachesBearerToken(t *testing.T) {
	var gotAuth, gotRequestID string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotRequestID = r.Header.Get("X-Request-ID")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	sess := session.NewMemoryStore("tok-123")
	c := NewClient(srv.URL, sess)

	var out struct {
		OK bool `json:"ok"`
	}
	if err := c.Get(context.Background(), "/ping", nil, &out); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if gotAuth != "Bearer tok-123" {
		t.Errorf("Authorization = %q, want Bearer tok-123", gotAuth)
	}
	if gotRequestID == "" {
		t.Error("X-Request-ID header missing")
	}
	if !out.OK {
		t.Error("response not decoded")
	}
}

func TestClientOmitsAuthHeaderWhenLoggedOut(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, session.NewMemoryStore(""))
	if err := c.Get(context.Background(), "/ping", nil, nil); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if gotAuth != "" {
		t.Errorf("Authorization = %q, want empty", gotAuth)
	}
}

func TestClientHandles401Globally(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	sess := session.NewMemoryStore("stale-token")
	c := NewClient(srv.URL, sess)

	callbackFired := 0
	c.OnAuthFailure(func() { callbackFired++ })

	err := c.Get(context.Background(), "/requests", nil, nil)
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("err = %v, want ErrUnauthorized", err)
	}
	if sess.Authenticated() {
		t.Error("session still holds a credential after 401")
	}
	if callbackFired != 1 {
		t.Errorf("auth-failure callback fired %d times, want 1", callbackFired)
	}
}

func TestClientSurfacesServerErrorMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"error":"agency has no contact email"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, session.NewMemoryStore("tok"))

	err := c.Post(context.Background(), "/requests/abc/submit", nil, nil)
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("err = %T (%v), want *APIError", err, err)
	}
	if apiErr.StatusCode != http.StatusUnprocessableEntity {
		t.Errorf("StatusCode = %d, want 422", apiErr.StatusCode)
	}
	if apiErr.Message != "agency has no contact email" {
		t.Errorf("Message = %q", apiErr.Message)
	}
}

func TestGetBlobReturnsContentType(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/csv")
		_, _ = w.Write([]byte("id,subject\n1,records\n"))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, session.NewMemoryStore("tok"))
	data, contentType, err := c.GetBlob(context.Background(), "/exports/requests.csv", nil)
	if err != nil {
		t.Fatalf("GetBlob: %v", err)
	}
	if contentType != "text/csv" {
		t.Errorf("contentType = %q, want text/csv", contentType)
	}
	if len(data) == 0 {
		t.Error("empty blob")
	}
}
