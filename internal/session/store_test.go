package session

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestStoreSnapshotSemantics(t *testing.T) {
	s := NewMemoryStore("tok-1")

	if got := s.Token(); got != "tok-1" {
		t.Fatalf("Token() = %q, want tok-1", got)
	}
	if !s.Authenticated() {
		t.Fatal("Authenticated() = false with token present")
	}

	if err := s.SetToken("tok-2"); err != nil {
		t.Fatalf("SetToken: %v", err)
	}
	if got := s.Token(); got != "tok-2" {
		t.Fatalf("Token() after SetToken = %q, want tok-2", got)
	}

	if err := s.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if s.Authenticated() {
		t.Fatal("Authenticated() = true after Clear")
	}
}

func TestStoreNotifiesSubscribers(t *testing.T) {
	s := NewMemoryStore("")

	var seen []string
	s.Subscribe(func(token string) {
		seen = append(seen, token)
	})

	_ = s.SetToken("tok-a")
	_ = s.SetToken("tok-b")
	_ = s.Clear()

	want := []string{"tok-a", "tok-b", ""}
	if len(seen) != len(want) {
		t.Fatalf("subscriber saw %d changes, want %d", len(seen), len(want))
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Errorf("change %d = %q, want %q", i, seen[i], want[i])
		}
	}
}

func TestExpiresAt(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "ops",
		"exp": exp.Unix(),
	})
	signed, err := token.SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("signing token: %v", err)
	}

	s := NewMemoryStore(signed)
	if got := s.ExpiresAt(); !got.Equal(exp) {
		t.Errorf("ExpiresAt() = %v, want %v", got, exp)
	}
	if s.Expired(time.Now()) {
		t.Error("Expired() = true for a token valid for an hour")
	}
	if !s.Expired(exp.Add(time.Minute)) {
		t.Error("Expired() = false past the expiry claim")
	}
}

func TestExpiresAtOpaqueToken(t *testing.T) {
	s := NewMemoryStore("not-a-jwt")
	if got := s.ExpiresAt(); !got.IsZero() {
		t.Errorf("ExpiresAt() = %v for opaque token, want zero", got)
	}
	if s.Expired(time.Now()) {
		t.Error("opaque tokens must never report expired")
	}
}
