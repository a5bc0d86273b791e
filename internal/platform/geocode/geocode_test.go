package geocode

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestClient_Forward(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("q"); got != "800 Drillfield Dr, Blacksburg, VA" {
			t.Errorf("q: got %q", got)
		}
		if got := r.URL.Query().Get("key"); got != "test-key" {
			t.Errorf("key: got %q", got)
		}
		_, _ = w.Write([]byte(`{"results":[{"geometry":{"lat":37.2284,"lng":-80.4234}}]}`))
	}))
	defer srv.Close()

	c := New(srv.URL, "test-key", nil)
	coords, err := c.Forward(context.Background(), "800 Drillfield Dr, Blacksburg, VA")
	if err != nil {
		t.Fatalf("Forward failed: %v", err)
	}
	if coords == nil {
		t.Fatal("expected coordinates")
	}
	if coords.Latitude != 37.2284 || coords.Longitude != -80.4234 {
		t.Errorf("got %+v", coords)
	}
}

func TestClient_Forward_NoMatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"results":[]}`))
	}))
	defer srv.Close()

	c := New(srv.URL, "test-key", nil)
	coords, err := c.Forward(context.Background(), "nowhere at all")
	if err != nil {
		t.Fatalf("Forward failed: %v", err)
	}
	if coords != nil {
		t.Errorf("expected nil coordinates, got %+v", coords)
	}
}

func TestClient_Forward_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusPaymentRequired)
	}))
	defer srv.Close()

	c := New(srv.URL, "test-key", nil)
	if _, err := c.Forward(context.Background(), "anywhere"); err == nil {
		t.Error("expected an error for non-200 status")
	}
}
