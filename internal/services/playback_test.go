package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/tidalq/tidalq/internal/shared"
)

func TestAudioServiceHealth(t *testing.T) {
	t.Run("healthy backend", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/health" {
				t.Errorf("unexpected path %s", r.URL.Path)
			}
			w.WriteHeader(http.StatusOK)
		}))
		defer srv.Close()

		svc := NewAudioService(srv.URL, nil)
		if err := svc.Health(context.Background()); err != nil {
			t.Errorf("expected no error, got %v", err)
		}
	})

	t.Run("error status", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer srv.Close()

		svc := NewAudioService(srv.URL, nil)
		if err := svc.Health(context.Background()); !errors.Is(err, shared.ErrPlayerUnavailable) {
			t.Errorf("expected ErrPlayerUnavailable, got %v", err)
		}
	})

	t.Run("unreachable backend", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		srv.Close()

		svc := NewAudioService(srv.URL, nil)
		if err := svc.Health(context.Background()); !errors.Is(err, shared.ErrPlayerUnavailable) {
			t.Errorf("expected ErrPlayerUnavailable, got %v", err)
		}
	})
}

func TestAudioServiceEnqueue(t *testing.T) {
	t.Run("posts the search query", func(t *testing.T) {
		var body map[string]string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/api/queue" {
				t.Errorf("unexpected path %s", r.URL.Path)
			}
			if r.Method != http.MethodPost {
				t.Errorf("unexpected method %s", r.Method)
			}
			if ct := r.Header.Get("Content-Type"); ct != "application/json" {
				t.Errorf("unexpected content type %s", ct)
			}
			if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
				t.Errorf("failed to decode body: %v", err)
			}
			w.WriteHeader(http.StatusAccepted)
		}))
		defer srv.Close()

		svc := NewAudioService(srv.URL, nil)
		if err := svc.Enqueue(context.Background(), "Artist - Song"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if body["query"] != "Artist - Song" {
			t.Errorf("expected query in body, got %v", body)
		}
		if _, ok := body["url"]; ok {
			t.Error("expected url to be omitted for query submissions")
		}
	})

	t.Run("posts the direct URL", func(t *testing.T) {
		var body map[string]string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewDecoder(r.Body).Decode(&body)
		}))
		defer srv.Close()

		svc := NewAudioService(srv.URL, nil)
		if err := svc.EnqueueURL(context.Background(), "https://tidal.com/track/7"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if body["url"] != "https://tidal.com/track/7" {
			t.Errorf("expected url in body, got %v", body)
		}
	})

	t.Run("rejection maps to ErrSubmissionFailed", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
		}))
		defer srv.Close()

		svc := NewAudioService(srv.URL, nil)
		if err := svc.Enqueue(context.Background(), "bad"); !errors.Is(err, shared.ErrSubmissionFailed) {
			t.Errorf("expected ErrSubmissionFailed, got %v", err)
		}
	})
}
