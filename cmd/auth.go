package main

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/tidalq/tidalq/internal/models"
	"github.com/tidalq/tidalq/internal/server"
	"github.com/tidalq/tidalq/internal/services"
	"github.com/tidalq/tidalq/internal/shared"
	"github.com/urfave/cli/v3"
	"golang.org/x/oauth2"
)

// SetupAuth performs Tidal authorization and persists the session.
//
// The device flow is the default; --callback runs the browser redirect flow
// with a local HTTP server instead. The session store is written only after a
// token is in hand, so a failed or timed-out attempt leaves it untouched.
func (r *Runner) SetupAuth(ctx context.Context, cmd *cli.Command) error {
	if err := r.ensureStore(); err != nil {
		return err
	}
	if r.resolver == nil || r.gate == nil {
		return fmt.Errorf("%w: Tidal client_id must be set in config.toml", shared.ErrMissingCredentials)
	}

	if err := r.gate.BeginAuth(); err != nil {
		return err
	}
	defer r.gate.EndAuth()

	var token *oauth2.Token
	var err error

	if cmd.Bool("callback") {
		if r.config.Credentials.Tidal.ClientSecret == "" {
			return fmt.Errorf("%w: the callback flow requires client_secret in config.toml", shared.ErrMissingCredentials)
		}
		token, err = r.doOAuth(r.config, r.resolver)
	} else {
		token, err = r.doDeviceAuth(ctx, r.resolver)
	}
	if err != nil {
		return err
	}

	if err := r.gate.Commit(ctx, models.CredentialsFromToken(token)); err != nil {
		return fmt.Errorf("failed to store session: %w", err)
	}

	r.writePlainln("✓ Authorization successful")
	r.writePlain("✓ Session saved. You can now use: tidalq play <url>\n")

	return nil
}

// doDeviceAuth runs the device authorization grant: print the verification
// link, open the browser, and block on the poller's single result.
func (r *Runner) doDeviceAuth(ctx context.Context, svc *services.TidalService) (*oauth2.Token, error) {
	flow := services.NewDeviceFlow(svc.OAuthConfig())

	auth, err := flow.Authorize(ctx)
	if err != nil {
		return nil, fmt.Errorf("device authorization failed: %w", err)
	}

	verification := auth.VerificationURIComplete
	if verification == "" {
		verification = auth.VerificationURI
	}
	if !strings.HasPrefix(verification, "http") {
		verification = "https://" + verification
	}

	r.writePlain("→ Visit %s\n", verification)
	r.writePlain("→ Confirm code: %s\n", auth.UserCode)

	if err := shared.OpenBrowser(verification); err != nil {
		r.logger.Warnf("failed to open browser automatically %v", err)
		r.writePlainln("⚠ Could not open browser automatically.")
	}

	r.writePlain("→ Waiting for authorization (%v timeout)...\n", services.AuthWindow)

	flow.Poll(ctx, auth)

	result, ok := <-flow.Result()
	if !ok {
		return nil, fmt.Errorf("%w: device flow closed without a result", shared.ErrAuthFailed)
	}
	if result.Error() != nil {
		return nil, result.Error()
	}
	if result.Token == nil {
		return nil, fmt.Errorf("%w: no token received", shared.ErrAuthFailed)
	}

	return result.Token, nil
}

// doOAuth executes the OAuth2 authorization flow with a local HTTP server.
func (r *Runner) doOAuth(config *shared.Config, svc *services.TidalService) (*oauth2.Token, error) {
	state, err := shared.GenerateState()
	if err != nil {
		return nil, fmt.Errorf("failed to generate state token: %w", err)
	}

	authURL := svc.AuthURL(state)
	oauthHandler := server.NewOAuthHandler(svc.OAuthConfig(), state)
	router := server.NewBasicRouter()
	router.Handler(oauthHandler)

	serverAddr := fmt.Sprintf("%s:%d", config.Server.Host, config.Server.Port)
	httpServer := &http.Server{
		Addr:    serverAddr,
		Handler: router,
	}

	serverErrors := make(chan error, 1)
	go func() {
		r.logger.Infof("starting OAuth callback server at %v", serverAddr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrors <- err
		}
	}()

	time.Sleep(100 * time.Millisecond)

	r.writePlain("→ Opening browser for Tidal authorization...\n")
	if err := shared.OpenBrowser(authURL); err != nil {
		r.logger.Warnf("failed to open browser automatically %v", err)
		r.writePlainln("⚠ Could not open browser automatically.")
		r.writePlain("Please open this URL in your browser:\n%s\n\n", authURL)
	}

	r.writePlain("→ Waiting for authorization (%v timeout)...\n", services.AuthWindow)

	timeout := time.NewTimer(services.AuthWindow)
	defer timeout.Stop()

	var result server.OAuthResult

	select {
	case result = <-oauthHandler.Result():
		// Got result from callback
	case err := <-serverErrors:
		return nil, fmt.Errorf("server error: %w", err)
	case <-timeout.C:
		return nil, fmt.Errorf("%w: authorization window of %v elapsed", shared.ErrTimeout, services.AuthWindow)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		r.logger.Warn("error shutting down server", "error", err)
	}

	if result.Error() != nil {
		return nil, fmt.Errorf("authorization failed: %w", result.Error())
	}

	if result.Token == nil {
		return nil, fmt.Errorf("%w: no token received", shared.ErrAuthFailed)
	}

	return result.Token, nil
}
