// Package client is the typed storefront API surface. It layers narrow
// domain operations on the session coordinator, which transparently
// refreshes expired credentials and retries once. Operations do no
// input validation; that stays with the caller.
package client

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"golang.org/x/text/currency"

	"github.com/fjod/shop_client/apierr"
	"github.com/fjod/shop_client/domain"
	"github.com/fjod/shop_client/internal/session"
	"github.com/fjod/shop_client/internal/transport"
	"github.com/fjod/shop_client/tokenstore"
)

type Config struct {
	// BaseURL is the backend root, e.g. https://api.example.com/v1.
	BaseURL string
	// HTTPClient overrides the default transport when set.
	HTTPClient *http.Client
	// Timeout is the per-request budget. Zero means 30s.
	Timeout time.Duration
	// TokenStore persists the credential pair across restarts. Nil
	// keeps the session in memory only.
	TokenStore tokenstore.Store
	// Currency is the catalog currency. Zero value means USD.
	Currency currency.Unit
	// OnTokenChanged is invoked after the pair rotates (login, refresh),
	// in addition to the store mirroring.
	OnTokenChanged func(domain.TokenPair)
	// OnSessionExpired is invoked when credentials become irrecoverable.
	// The handler is expected to drive a full logout in the UI.
	OnSessionExpired func()
}

type Client struct {
	session  *session.Coordinator
	store    tokenstore.Store
	currency currency.Unit

	onTokenChanged   func(domain.TokenPair)
	onSessionExpired func()
}

func New(cfg Config) (*Client, error) {
	exec, err := transport.New(transport.Config{
		BaseURL:    cfg.BaseURL,
		HTTPClient: cfg.HTTPClient,
		Timeout:    cfg.Timeout,
	})
	if err != nil {
		return nil, err
	}

	unit := cfg.Currency
	if unit == (currency.Unit{}) {
		unit = currency.USD
	}

	c := &Client{
		store:            cfg.TokenStore,
		currency:         unit,
		onTokenChanged:   cfg.OnTokenChanged,
		onSessionExpired: cfg.OnSessionExpired,
	}
	c.session = session.New(session.Config{
		Executor:         exec,
		OnTokenChanged:   c.tokensChanged,
		OnSessionExpired: c.sessionExpired,
	})
	c.restoreTokens()

	return c, nil
}

// HasSession reports whether credentials are currently held.
func (c *Client) HasSession() bool {
	return c.session.HasSession()
}

// Logout drops the credential pair locally. There is no server-side
// call; bearer tokens simply stop being sent. The session-expired
// handler does not fire for a user-driven logout.
func (c *Client) Logout() {
	c.session.ClearTokens()
	c.deleteStoredTokens()
}

func (c *Client) restoreTokens() {
	if c.store == nil {
		return
	}

	access, err := c.store.Read(tokenstore.KeyAccessToken)
	if err != nil && !errors.Is(err, tokenstore.ErrNotFound) {
		log.Printf("token store read error: %v", err)
		return
	}
	refresh, err := c.store.Read(tokenstore.KeyRefreshToken)
	if err != nil && !errors.Is(err, tokenstore.ErrNotFound) {
		log.Printf("token store read error: %v", err)
		return
	}

	pair := domain.TokenPair{Access: access, Refresh: refresh}
	if !pair.IsZero() {
		c.session.RestoreTokens(pair)
	}
}

// tokensChanged mirrors the new pair into the store, then forwards to
// the user observer. Store failures are logged, not surfaced; the
// in-memory session stays usable either way.
func (c *Client) tokensChanged(pair domain.TokenPair) {
	if c.store != nil {
		if err := c.store.Write(tokenstore.KeyAccessToken, pair.Access); err != nil {
			log.Printf("token store write error: %v", err)
		}
		if err := c.store.Write(tokenstore.KeyRefreshToken, pair.Refresh); err != nil {
			log.Printf("token store write error: %v", err)
		}
	}
	if c.onTokenChanged != nil {
		c.onTokenChanged(pair)
	}
}

func (c *Client) sessionExpired() {
	c.deleteStoredTokens()
	if c.onSessionExpired != nil {
		c.onSessionExpired()
	}
}

func (c *Client) deleteStoredTokens() {
	if c.store == nil {
		return
	}
	if err := c.store.Delete(tokenstore.KeyAccessToken); err != nil {
		log.Printf("token store delete error: %v", err)
	}
	if err := c.store.Delete(tokenstore.KeyRefreshToken); err != nil {
		log.Printf("token store delete error: %v", err)
	}
}

// decode unmarshals a response body, mapping malformed payloads onto
// the format kind so callers only ever see the taxonomy.
func decode(raw json.RawMessage, v any) error {
	if err := json.Unmarshal(raw, v); err != nil {
		return apierr.Format("the server returned an unexpected response shape")
	}
	return nil
}
