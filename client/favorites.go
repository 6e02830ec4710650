package client

import (
	"context"
	"net/http"
	"net/url"

	"github.com/fjod/shop_client/domain"
	"github.com/fjod/shop_client/internal/transport"
)

// Favorites lists the signed-in user's favorite products.
func (c *Client) Favorites(ctx context.Context) ([]domain.Product, error) {
	raw, apiErr := c.session.Do(ctx, transport.Request{
		Method: http.MethodGet,
		Path:   "/favorites",
	}, true)
	if apiErr != nil {
		return nil, apiErr
	}

	var dtos []productDTO
	if err := decode(raw, &dtos); err != nil {
		return nil, err
	}
	products := make([]domain.Product, 0, len(dtos))
	for _, dto := range dtos {
		products = append(products, dto.toDomain(c.currency))
	}
	return products, nil
}

// ToggleFavorite flips the favorite flag for a product and returns the
// resulting state.
func (c *Client) ToggleFavorite(ctx context.Context, productID string) (bool, error) {
	raw, apiErr := c.session.Do(ctx, transport.Request{
		Method: http.MethodPost,
		Path:   "/favorites/toggle",
		Body:   map[string]string{"product_id": productID},
	}, true)
	if apiErr != nil {
		return false, apiErr
	}

	var dto struct {
		IsFavorite bool `json:"is_favorite"`
	}
	if err := decode(raw, &dto); err != nil {
		return false, err
	}
	return dto.IsFavorite, nil
}

// RemoveFavorite unfavorites a product unconditionally.
func (c *Client) RemoveFavorite(ctx context.Context, productID string) error {
	_, apiErr := c.session.Do(ctx, transport.Request{
		Method: http.MethodDelete,
		Path:   "/favorites/" + url.PathEscape(productID),
	}, true)
	if apiErr != nil {
		return apiErr
	}
	return nil
}
