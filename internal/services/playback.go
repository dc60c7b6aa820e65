// HTTP client for the audio playback backend.
//
// The backend owns search, transcoding, and the actual queue; this adapter
// only submits work and checks liveness.
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/tidalq/tidalq/internal/shared"
)

const defaultAudioBaseURL = "http://localhost:9090"

// AudioService implements [Player] against the audio backend's HTTP API.
type AudioService struct {
	baseURL    string
	httpClient *http.Client
}

// NewAudioService creates a new playback client.
func NewAudioService(baseURL string, client *http.Client) *AudioService {
	if baseURL == "" {
		baseURL = defaultAudioBaseURL
	}
	if client == nil {
		client = http.DefaultClient
	}

	return &AudioService{
		baseURL:    baseURL,
		httpClient: client,
	}
}

// queueRequest is the JSON body for queue submissions.
type queueRequest struct {
	Query string `json:"query,omitempty"`
	URL   string `json:"url,omitempty"`
}

// Health reports whether the playback backend is reachable and ready.
func (a *AudioService) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.baseURL+"/health", nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrPlayerUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: status %d", shared.ErrPlayerUnavailable, resp.StatusCode)
	}

	return nil
}

// Enqueue submits a free-text search query for queuing.
func (a *AudioService) Enqueue(ctx context.Context, query string) error {
	return a.submit(ctx, queueRequest{Query: query})
}

// EnqueueURL submits a direct URL for queuing.
func (a *AudioService) EnqueueURL(ctx context.Context, url string) error {
	return a.submit(ctx, queueRequest{URL: url})
}

func (a *AudioService) submit(ctx context.Context, body queueRequest) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal queue request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL+"/api/queue", bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrSubmissionFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: status %d", shared.ErrSubmissionFailed, resp.StatusCode)
	}

	return nil
}
