package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fjod/shop_client/apierr"
	"github.com/fjod/shop_client/domain"
	"github.com/fjod/shop_client/tokenstore"
)

// newFakeStore spins up a minimal storefront backend. Credentials:
// user@shop.test / secret; valid access token "access-1".
func newFakeStore(t *testing.T) *httptest.Server {
	t.Helper()

	r := chi.NewRouter()

	r.Post("/login", func(w http.ResponseWriter, req *http.Request) {
		var body map[string]string
		json.NewDecoder(req.Body).Decode(&body)
		if body["email"] != "user@shop.test" || body["password"] != "secret" {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"details": {"email": ["Invalid credentials."]}}`))
			return
		}
		w.Write([]byte(`{
			"access": "access-1",
			"refresh": "refresh-1",
			"user": {"name": "Test User", "email": "user@shop.test"}
		}`))
	})

	r.Get("/categories", func(w http.ResponseWriter, req *http.Request) {
		w.Write([]byte(`[{"id": 1, "name": "Drinks"}, {"id": 2, "name": "Snacks"}]`))
	})

	r.Get("/products", func(w http.ResponseWriter, req *http.Request) {
		// The favorite flag only appears for authenticated reads.
		fav := "false"
		if req.Header.Get("Authorization") == "Bearer access-1" {
			fav = "true"
		}
		w.Write([]byte(`{
			"count": 1,
			"results": [{
				"id": "p1", "name": "Cola", "price": 2.5,
				"stock": 10, "in_stock": true,
				"category_name": "Drinks", "is_favorite": ` + fav + `
			}]
		}`))
	})

	r.Get("/profile", func(w http.ResponseWriter, req *http.Request) {
		if req.Header.Get("Authorization") != "Bearer access-1" {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"detail": "Authentication credentials were not provided."}`))
			return
		}
		w.Write([]byte(`{"name": "Test User", "email": "user@shop.test", "phone": "123"}`))
	})

	r.Post("/favorites/toggle", func(w http.ResponseWriter, req *http.Request) {
		w.Write([]byte(`{"is_favorite": true}`))
	})

	r.Post("/orders/create", func(w http.ResponseWriter, req *http.Request) {
		var body struct {
			Items          []OrderLineInput `json:"items"`
			IdempotencyKey string           `json:"idempotency_key"`
		}
		json.NewDecoder(req.Body).Decode(&body)
		if body.IdempotencyKey == "" {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"detail": "idempotency_key is required"}`))
			return
		}
		w.Write([]byte(`{
			"id": 77, "status": "PENDING", "total_amount": 5.0,
			"items": [{"product_id": "p1", "product_name": "Cola", "quantity": 2, "price": 2.5}],
			"created_at": "2026-01-10T12:00:00Z"
		}`))
	})

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func newClient(t *testing.T, srv *httptest.Server, store tokenstore.Store) *Client {
	t.Helper()
	c, err := New(Config{
		BaseURL:    srv.URL,
		HTTPClient: srv.Client(),
		TokenStore: store,
	})
	require.NoError(t, err)
	return c
}

func TestLogin_InstallsAndPersistsTokens(t *testing.T) {
	srv := newFakeStore(t)
	store := tokenstore.NewMemory()
	c := newClient(t, srv, store)

	profile, err := c.Login(context.Background(), "user@shop.test", "secret")

	require.NoError(t, err)
	assert.Equal(t, "Test User", profile.Name)
	assert.True(t, c.HasSession())

	access, err := store.Read(tokenstore.KeyAccessToken)
	require.NoError(t, err)
	assert.Equal(t, "access-1", access)
	refresh, err := store.Read(tokenstore.KeyRefreshToken)
	require.NoError(t, err)
	assert.Equal(t, "refresh-1", refresh)
}

func TestLogin_FieldErrorsSurface(t *testing.T) {
	srv := newFakeStore(t)
	c := newClient(t, srv, nil)

	_, err := c.Login(context.Background(), "user@shop.test", "wrong")

	var apiErr *apierr.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, apierr.KindHTTP, apiErr.Kind)
	assert.Equal(t, "Invalid credentials.", apiErr.FirstFieldError())
	assert.False(t, c.HasSession())
}

func TestNew_RestoresSessionFromStore(t *testing.T) {
	srv := newFakeStore(t)
	store := tokenstore.NewMemory()
	require.NoError(t, store.Write(tokenstore.KeyAccessToken, "access-1"))
	require.NoError(t, store.Write(tokenstore.KeyRefreshToken, "refresh-1"))

	c := newClient(t, srv, store)

	assert.True(t, c.HasSession())
	profile, err := c.Profile(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "user@shop.test", profile.Email)
}

func TestProducts_ConditionalAuth(t *testing.T) {
	srv := newFakeStore(t)
	c := newClient(t, srv, nil)

	// Anonymous read: no favorite flags.
	page, err := c.Products(context.Background(), ProductQuery{})
	require.NoError(t, err)
	require.Len(t, page.Products, 1)
	assert.False(t, page.Products[0].IsFavorite)

	// Authenticated read sends the bearer token and gets the flag.
	_, err = c.Login(context.Background(), "user@shop.test", "secret")
	require.NoError(t, err)

	page, err = c.Products(context.Background(), ProductQuery{})
	require.NoError(t, err)
	assert.True(t, page.Products[0].IsFavorite)
	assert.True(t, decimal.NewFromFloat(2.5).Equal(page.Products[0].Price.Amount))
}

func TestCategories(t *testing.T) {
	srv := newFakeStore(t)
	c := newClient(t, srv, nil)

	categories, err := c.Categories(context.Background())

	require.NoError(t, err)
	require.Len(t, categories, 2)
	assert.Equal(t, "1", categories[0].ID, "numeric ids map to strings")
	assert.Equal(t, "Drinks", categories[0].Name)
}

func TestToggleFavorite(t *testing.T) {
	srv := newFakeStore(t)
	c := newClient(t, srv, nil)
	_, err := c.Login(context.Background(), "user@shop.test", "secret")
	require.NoError(t, err)

	fav, err := c.ToggleFavorite(context.Background(), "p1")

	require.NoError(t, err)
	assert.True(t, fav)
}

func TestCreateOrder(t *testing.T) {
	srv := newFakeStore(t)
	c := newClient(t, srv, nil)
	_, err := c.Login(context.Background(), "user@shop.test", "secret")
	require.NoError(t, err)

	order, err := c.CreateOrder(context.Background(),
		[]OrderLineInput{{ProductID: "p1", Quantity: 2}}, "key-1")

	require.NoError(t, err)
	assert.Equal(t, "77", order.ID)
	assert.Equal(t, domain.OrderStatusPending, order.Status)
	require.Len(t, order.Items, 1)
	assert.Equal(t, 2, order.Items[0].Quantity)
	assert.True(t, decimal.NewFromFloat(5.0).Equal(order.TotalAmount.Amount))
}

func TestLogout_ClearsSessionAndStore(t *testing.T) {
	srv := newFakeStore(t)
	store := tokenstore.NewMemory()
	c := newClient(t, srv, store)
	_, err := c.Login(context.Background(), "user@shop.test", "secret")
	require.NoError(t, err)

	c.Logout()

	assert.False(t, c.HasSession())
	_, err = store.Read(tokenstore.KeyAccessToken)
	assert.ErrorIs(t, err, tokenstore.ErrNotFound)
}

func TestSessionExpired_DeletesStoredTokens(t *testing.T) {
	srv := newFakeStore(t)
	store := tokenstore.NewMemory()

	expired := 0
	c, err := New(Config{
		BaseURL:          srv.URL,
		HTTPClient:       srv.Client(),
		TokenStore:       store,
		OnSessionExpired: func() { expired++ },
	})
	require.NoError(t, err)

	// Stale pair: /profile 401s and /token/refresh is not routed, so
	// the refresh fails and the session is torn down.
	c.session.RestoreTokens(domain.TokenPair{Access: "stale", Refresh: "stale"})
	require.NoError(t, store.Write(tokenstore.KeyAccessToken, "stale"))
	require.NoError(t, store.Write(tokenstore.KeyRefreshToken, "stale"))

	_, err = c.Profile(context.Background())

	var apiErr *apierr.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.Equal(t, 1, expired)
	assert.False(t, c.HasSession())
	_, readErr := store.Read(tokenstore.KeyAccessToken)
	assert.ErrorIs(t, readErr, tokenstore.ErrNotFound)
}
