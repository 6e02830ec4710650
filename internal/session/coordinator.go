// Package session owns the access/refresh credential pair and wraps
// the request executor with the refresh-and-retry protocol: a 401 on
// an authenticated call triggers one token refresh, then the original
// call is reissued exactly once.
package session

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/fjod/shop_client/apierr"
	"github.com/fjod/shop_client/domain"
	"github.com/fjod/shop_client/internal/transport"
)

// RefreshTimeout bounds the refresh call itself. It is deliberately
// shorter than the regular request budget so a dead backend fails the
// whole chain within one timeout window.
const RefreshTimeout = 10 * time.Second

const refreshPath = "/token/refresh"

type Config struct {
	Executor *transport.Executor
	// OnTokenChanged fires after a successful login/refresh rotates the
	// pair, so the external secure store can persist it.
	OnTokenChanged func(domain.TokenPair)
	// OnSessionExpired fires when the pair is cleared after an
	// irrecoverable refresh failure. The callback drives the global
	// logout; the coordinator itself never touches UI state.
	OnSessionExpired func()
}

type Coordinator struct {
	exec             *transport.Executor
	onTokenChanged   func(domain.TokenPair)
	onSessionExpired func()

	mu     sync.Mutex
	tokens domain.TokenPair

	// sf collapses concurrent refreshes: when two calls hit 401 at the
	// same time, the second awaits the in-flight refresh instead of
	// issuing its own.
	sf singleflight.Group
}

func New(cfg Config) *Coordinator {
	return &Coordinator{
		exec:             cfg.Executor,
		onTokenChanged:   cfg.OnTokenChanged,
		onSessionExpired: cfg.OnSessionExpired,
	}
}

// SetTokens installs a new pair (login, verification, password reset)
// and notifies the token-changed observer.
func (c *Coordinator) SetTokens(tokens domain.TokenPair) {
	c.mu.Lock()
	c.tokens = tokens
	c.mu.Unlock()

	if c.onTokenChanged != nil {
		c.onTokenChanged(tokens)
	}
}

// RestoreTokens installs a pair loaded from persistent storage without
// notifying the observer; the store already has it.
func (c *Coordinator) RestoreTokens(tokens domain.TokenPair) {
	c.mu.Lock()
	c.tokens = tokens
	c.mu.Unlock()
}

// ClearTokens drops the pair silently. Used for user-driven logout;
// the session-expired observer only fires on refresh failure.
func (c *Coordinator) ClearTokens() {
	c.mu.Lock()
	c.tokens = domain.TokenPair{}
	c.mu.Unlock()
}

func (c *Coordinator) Tokens() domain.TokenPair {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.tokens
}

// HasSession reports whether any credentials are held. Callers use it
// to decide the requiresAuth flag on conditionally authenticated reads.
func (c *Coordinator) HasSession() bool {
	return !c.Tokens().IsZero()
}

// Do runs one logical call. Unauthenticated calls pass through
// untouched. For authenticated calls: attempt with the current access
// token; on 401 refresh once (single-flight) and retry exactly once.
// Whatever the retry returns is final, even a second 401. When the
// refresh itself fails the caller receives the original 401-derived
// error, not the refresh error.
func (c *Coordinator) Do(ctx context.Context, req transport.Request, requiresAuth bool) (json.RawMessage, *apierr.Error) {
	if requiresAuth {
		req.BearerToken = c.Tokens().Access
	}

	raw, callErr := c.exec.Do(ctx, req)
	if callErr == nil || !requiresAuth || callErr.Status != http.StatusUnauthorized {
		return raw, callErr
	}

	if !c.refresh(ctx) {
		return nil, callErr
	}

	// Re-read rather than use the flight's result: a fresher token may
	// have been written by another call's refresh in the meantime.
	req.BearerToken = c.Tokens().Access
	return c.exec.Do(ctx, req)
}

func (c *Coordinator) refresh(ctx context.Context) bool {
	// The flight outcome is shared between callers, so it must not die
	// with whichever caller happens to execute it.
	ctx = context.WithoutCancel(ctx)

	ok, _, _ := c.sf.Do("refresh", func() (any, error) {
		return c.doRefresh(ctx), nil
	})
	return ok.(bool)
}

func (c *Coordinator) doRefresh(ctx context.Context) bool {
	refresh := c.Tokens().Refresh
	if refresh == "" {
		c.expire()
		return false
	}

	raw, err := c.exec.Do(ctx, transport.Request{
		Method:  http.MethodPost,
		Path:    refreshPath,
		Body:    map[string]string{"refresh": refresh},
		Timeout: RefreshTimeout,
	})
	if err != nil {
		c.expire()
		return false
	}

	var payload struct {
		Access  string `json:"access"`
		Refresh string `json:"refresh"`
	}
	if json.Unmarshal(raw, &payload) != nil || payload.Access == "" {
		c.expire()
		return false
	}

	c.mu.Lock()
	c.tokens.Access = payload.Access
	if payload.Refresh != "" {
		c.tokens.Refresh = payload.Refresh
	}
	tokens := c.tokens
	c.mu.Unlock()

	if c.onTokenChanged != nil {
		c.onTokenChanged(tokens)
	}
	return true
}

// expire clears the pair and fires the session-expired observer, at
// most once per teardown: concurrent failures race on the same clear
// but only the one that actually drops credentials notifies.
func (c *Coordinator) expire() {
	c.mu.Lock()
	hadTokens := !c.tokens.IsZero()
	c.tokens = domain.TokenPair{}
	c.mu.Unlock()

	if hadTokens && c.onSessionExpired != nil {
		c.onSessionExpired()
	}
}
