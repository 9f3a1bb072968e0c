package odin

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newOdinServer(t *testing.T, status int, body map[string]any) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/tokens/verify" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("X-Api-Key") != "secret" {
			t.Errorf("missing api key header")
		}
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newTestVerifier(t *testing.T, baseURL string) *Verifier {
	t.Helper()

	client, err := NewClient(Config{BaseURL: baseURL, APIKey: "secret"})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return NewVerifier(client)
}

func TestVerifyReturnsClaims(t *testing.T) {
	srv := newOdinServer(t, http.StatusOK, map[string]any{
		"user_id":      "u1",
		"email":        "ana@example.com",
		"display_name": "Ana Pérez",
	})

	claims, err := newTestVerifier(t, srv.URL).Verify(context.Background(), "tok")
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if claims.UserID != "u1" || claims.Email != "ana@example.com" || claims.DisplayName != "Ana Pérez" {
		t.Fatalf("claims = %+v", claims)
	}
}

func TestVerifyUnauthorized(t *testing.T) {
	srv := newOdinServer(t, http.StatusUnauthorized, nil)

	_, err := newTestVerifier(t, srv.URL).Verify(context.Background(), "bad")
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("err = %v, want ErrUnauthorized", err)
	}
}

func TestVerifyUpstreamError(t *testing.T) {
	srv := newOdinServer(t, http.StatusBadGateway, nil)

	_, err := newTestVerifier(t, srv.URL).Verify(context.Background(), "tok")
	if !errors.Is(err, ErrUpstream) {
		t.Fatalf("err = %v, want ErrUpstream", err)
	}
}

func TestVerifyRejectsEmptyToken(t *testing.T) {
	v := newTestVerifier(t, "http://localhost:0")

	if _, err := v.Verify(context.Background(), "  "); !errors.Is(err, ErrTokenEmpty) {
		t.Fatalf("err = %v, want ErrTokenEmpty", err)
	}
}

func TestVerifyMissingUserID(t *testing.T) {
	srv := newOdinServer(t, http.StatusOK, map[string]any{"email": "x@example.com"})

	if _, err := newTestVerifier(t, srv.URL).Verify(context.Background(), "tok"); err == nil {
		t.Fatal("expected error for response without user_id")
	}
}
