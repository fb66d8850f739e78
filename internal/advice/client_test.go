package advice

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRequestSuccess(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		var req request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Prompt == "" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		_ = json.NewEncoder(w).Encode(Advice{
			Summary:        "Solid week.",
			Recommendation: "Hold calories steady.",
			Adjustment:     "maintain",
		})
	}))
	defer srv.Close()

	c := New(srv.URL, "test-key")
	got, ok := c.Request(context.Background(), "metrics go here")
	if !ok {
		t.Fatal("expected advice")
	}
	if got.Summary != "Solid week." || got.Adjustment != "maintain" {
		t.Errorf("advice = %+v", got)
	}
	if gotAuth != "Bearer test-key" {
		t.Errorf("auth header = %q, want bearer key", gotAuth)
	}
}

func TestRequestAbsenceOnFailure(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"server error", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}},
		{"rate limited", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		}},
		{"malformed body", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("not json"))
		}},
		{"empty result", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("{}"))
		}},
	}
	for _, tt := range tests {
		srv := httptest.NewServer(tt.handler)
		c := New(srv.URL, "test-key")
		if _, ok := c.Request(context.Background(), "prompt"); ok {
			t.Errorf("%s: expected absence", tt.name)
		}
		srv.Close()
	}
}

func TestRequestMissingCredential(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("request should not be sent without a key")
	}))
	defer srv.Close()

	c := New(srv.URL, "")
	if _, ok := c.Request(context.Background(), "prompt"); ok {
		t.Error("expected absence without a credential")
	}
}
