// Device authorization flow for Tidal.
//
// The device flow is the catalog's interactive login: the user visits a
// verification URL while the CLI polls the token endpoint until the grant is
// approved, denied, or the window elapses.
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/tidalq/tidalq/internal/shared"
	"golang.org/x/oauth2"
)

const (
	tidalDeviceAuthURL = "https://auth.tidal.com/v1/oauth2/device_authorization"

	// AuthWindow bounds how long an authorization attempt may remain pending.
	AuthWindow = 300 * time.Second
)

// DeviceAuthorization is the response of the device authorization endpoint.
type DeviceAuthorization struct {
	DeviceCode              string `json:"deviceCode"`
	UserCode                string `json:"userCode"`
	VerificationURI         string `json:"verificationUri"`
	VerificationURIComplete string `json:"verificationUriComplete"`
	ExpiresIn               int    `json:"expiresIn"`
	Interval                int    `json:"interval"`
}

// deviceToken is the token endpoint response during polling.
type deviceToken struct {
	TokenType    string `json:"token_type"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"`
	Error        string `json:"error"`
}

// DeviceResult contains the outcome of a device authorization flow.
type DeviceResult struct {
	Token *oauth2.Token
	err   error
}

func (d *DeviceResult) Error() error {
	return d.err
}

// DeviceFlow runs the device authorization grant against Tidal's auth server.
//
// Exactly one [DeviceResult] is delivered on the Result channel, which is then
// closed. Nothing is persisted here: on timeout or failure the caller's
// session store is left untouched.
type DeviceFlow struct {
	config     *oauth2.Config
	httpClient *http.Client
	resultChan chan DeviceResult
	once       sync.Once
}

// NewDeviceFlow creates a device flow for the given OAuth2 config.
func NewDeviceFlow(config *oauth2.Config) *DeviceFlow {
	return &DeviceFlow{
		config:     config,
		httpClient: http.DefaultClient,
		resultChan: make(chan DeviceResult, 1),
	}
}

// Authorize requests a device code and returns the verification details the
// user needs. Polling does not start until [DeviceFlow.Poll] is called.
func (f *DeviceFlow) Authorize(ctx context.Context) (*DeviceAuthorization, error) {
	form := url.Values{}
	form.Set("client_id", f.config.ClientID)
	form.Set("scope", strings.Join(f.config.Scopes, " "))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, tidalDeviceAuthURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: device authorization status %d", shared.ErrAuthFailed, resp.StatusCode)
	}

	var auth DeviceAuthorization
	if err := json.NewDecoder(resp.Body).Decode(&auth); err != nil {
		return nil, fmt.Errorf("failed to decode device authorization: %w", err)
	}

	if auth.Interval <= 0 {
		auth.Interval = 2
	}

	return &auth, nil
}

// Poll polls the token endpoint on a goroutine until the grant resolves, the
// authorization window elapses, or ctx is cancelled.
//
// The wait is bounded by [AuthWindow] even when the server advertises a longer
// expiry.
func (f *DeviceFlow) Poll(ctx context.Context, auth *DeviceAuthorization) {
	go func() {
		deadline := time.Now().Add(AuthWindow)
		if serverExpiry := time.Now().Add(time.Duration(auth.ExpiresIn) * time.Second); auth.ExpiresIn > 0 && serverExpiry.Before(deadline) {
			deadline = serverExpiry
		}

		ticker := time.NewTicker(time.Duration(auth.Interval) * time.Second)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				f.send(DeviceResult{err: fmt.Errorf("%w: authorization cancelled", shared.ErrAuthFailed)})
				return
			case <-ticker.C:
				if time.Now().After(deadline) {
					f.send(DeviceResult{err: fmt.Errorf("%w: authorization window of %v elapsed", shared.ErrTimeout, AuthWindow)})
					return
				}

				token, pending, err := f.fetchToken(ctx, auth.DeviceCode)
				if pending {
					continue
				}
				if err != nil {
					f.send(DeviceResult{err: err})
					return
				}

				f.send(DeviceResult{Token: token})
				return
			}
		}
	}()
}

// Result returns the channel delivering the single flow outcome.
func (f *DeviceFlow) Result() <-chan DeviceResult {
	return f.resultChan
}

// send delivers the result exactly once and closes the channel.
func (f *DeviceFlow) send(result DeviceResult) {
	f.once.Do(func() {
		f.resultChan <- result
		close(f.resultChan)
	})
}

// fetchToken attempts one token exchange for the device code.
//
// pending is true while the user has not yet completed the verification.
func (f *DeviceFlow) fetchToken(ctx context.Context, deviceCode string) (*oauth2.Token, bool, error) {
	form := url.Values{}
	form.Set("client_id", f.config.ClientID)
	form.Set("device_code", deviceCode)
	form.Set("grant_type", "urn:ietf:params:oauth:grant-type:device_code")
	form.Set("scope", strings.Join(f.config.Scopes, " "))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.config.Endpoint.TokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, false, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth(f.config.ClientID, f.config.ClientSecret)

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, false, fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}
	defer resp.Body.Close()

	var tok deviceToken
	if err := json.NewDecoder(resp.Body).Decode(&tok); err != nil {
		return nil, false, fmt.Errorf("failed to decode token response: %w", err)
	}

	if tok.Error == "authorization_pending" {
		return nil, true, nil
	}
	if tok.Error != "" {
		return nil, false, fmt.Errorf("%w: %s", shared.ErrAuthFailed, tok.Error)
	}
	if tok.AccessToken == "" {
		return nil, false, fmt.Errorf("%w: empty token response", shared.ErrAuthFailed)
	}

	return &oauth2.Token{
		TokenType:    tok.TokenType,
		AccessToken:  tok.AccessToken,
		RefreshToken: tok.RefreshToken,
		Expiry:       time.Now().Add(time.Duration(tok.ExpiresIn) * time.Second),
	}, false, nil
}
