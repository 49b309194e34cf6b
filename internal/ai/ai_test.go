package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/cohortapp/cohort-cli/internal/constants"
)

func TestStatic_ReturnsFallbacks(t *testing.T) {
	var g Generator = Static{}
	if got := g.Motto(context.Background(), "Amy"); got != constants.FallbackMotto {
		t.Errorf("Motto = %q", got)
	}
	if got := g.HealthTip(context.Background(), "en"); got != constants.FallbackHealthTip {
		t.Errorf("HealthTip = %q", got)
	}
}

func TestClient_UsesGeneratedText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/generate" {
			t.Errorf("Unexpected path %s", r.URL.Path)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer test-key" {
			t.Errorf("Authorization = %q", auth)
		}
		var req generateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("Decoding request failed: %v", err)
		}
		json.NewEncoder(w).Encode(generateResponse{Text: "Run happy."})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "test-key")
	if got := c.Motto(context.Background(), "Amy"); got != "Run happy." {
		t.Errorf("Motto = %q, want generated text", got)
	}
}

func TestClient_DegradesOnServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "test-key")
	if got := c.HealthTip(context.Background(), "en"); got != constants.FallbackHealthTip {
		t.Errorf("HealthTip = %q, want fallback", got)
	}
}

func TestClient_DegradesOnMalformedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "test-key")
	if got := c.Motto(context.Background(), "Amy"); got != constants.FallbackMotto {
		t.Errorf("Motto = %q, want fallback", got)
	}
}

func TestClient_DegradesOnCanceledContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := NewClient(srv.URL, "test-key")
	if got := c.Motto(ctx, "Amy"); got != constants.FallbackMotto {
		t.Errorf("Motto = %q, want fallback", got)
	}
}
