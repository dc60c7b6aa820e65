package tasks

import (
	"context"
	"fmt"
	"sync"

	"github.com/tidalq/tidalq/internal/models"
	"github.com/tidalq/tidalq/internal/services"
	"github.com/tidalq/tidalq/internal/shared"
)

// CredentialStore is the slice of the session store the gatekeeper needs.
type CredentialStore interface {
	Load() (models.Credentials, error)
	Save(models.Credentials) error
}

// Gatekeeper decides whether authenticated catalog operations may proceed.
//
// Wraps the credential store and the resolver's session behind an explicit
// lifecycle: [Gatekeeper.Ensure] before authenticated work,
// [Gatekeeper.Invalidate] when a session is known stale.
type Gatekeeper struct {
	store    CredentialStore
	resolver services.Resolver
	holder   services.SessionHolder
	executor *Executor

	mu          sync.Mutex
	validated   bool
	authorizing bool
}

// NewGatekeeper creates a Gatekeeper over the given store and resolver.
//
// The resolver must also implement [services.SessionHolder] so tokens can be
// installed on it.
func NewGatekeeper(store CredentialStore, resolver services.Resolver, executor *Executor) (*Gatekeeper, error) {
	holder, ok := resolver.(services.SessionHolder)
	if !ok {
		return nil, fmt.Errorf("%w: resolver %s cannot hold a session", shared.ErrInvalidArgument, resolver.Name())
	}

	if executor == nil {
		executor = NewExecutor(1)
	}

	return &Gatekeeper{
		store:    store,
		resolver: resolver,
		holder:   holder,
		executor: executor,
	}, nil
}

// Ensure loads stored credentials, installs them on the resolver, and
// validates the session against the catalog's authority.
//
// Incomplete credentials return [shared.ErrNotAuthenticated] without any
// network call. Validation runs through the bounded executor because it is
// blocking I/O. The result is cached: subsequent calls are free until
// [Gatekeeper.Invalidate].
func (g *Gatekeeper) Ensure(ctx context.Context) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.validated {
		return nil
	}

	creds, err := g.store.Load()
	if err != nil {
		return fmt.Errorf("failed to load credentials: %w", err)
	}

	if !creds.Complete() {
		return fmt.Errorf("%w: run 'tidalq setup auth' first", shared.ErrNotAuthenticated)
	}

	g.holder.SetToken(ctx, creds.Token())

	err = g.executor.Do(ctx, func(ctx context.Context) error {
		return g.resolver.CheckLogin(ctx)
	})
	if err != nil {
		return fmt.Errorf("%w: session validation failed (run 'tidalq setup auth'): %v", shared.ErrNotAuthenticated, err)
	}

	g.validated = true
	return nil
}

// Invalidate drops the cached validation so the next Ensure revalidates.
func (g *Gatekeeper) Invalidate() {
	g.mu.Lock()
	g.validated = false
	g.mu.Unlock()
}

// BeginAuth claims the authorization slot. Only one authorization flow may
// run at a time; a second attempt while one is in flight is rejected rather
// than racing it to the store.
func (g *Gatekeeper) BeginAuth() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.authorizing {
		return fmt.Errorf("%w: an authorization is already in progress", shared.ErrAuthFailed)
	}
	g.authorizing = true
	return nil
}

// EndAuth releases the authorization slot claimed by [Gatekeeper.BeginAuth].
func (g *Gatekeeper) EndAuth() {
	g.mu.Lock()
	g.authorizing = false
	g.mu.Unlock()
}

// Commit persists credentials after a successful authorization and installs
// them on the resolver. Never called on a timed-out or failed flow, so the
// store is untouched in those cases.
func (g *Gatekeeper) Commit(ctx context.Context, creds models.Credentials) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !creds.Complete() {
		return fmt.Errorf("%w: refusing to persist incomplete credentials", shared.ErrInvalidCredentials)
	}

	if err := g.store.Save(creds); err != nil {
		return fmt.Errorf("failed to persist credentials: %w", err)
	}

	g.holder.SetToken(ctx, creds.Token())
	g.validated = false
	return nil
}
