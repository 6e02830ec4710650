package client

import (
	"context"
	"net/http"

	"github.com/fjod/shop_client/domain"
	"github.com/fjod/shop_client/internal/transport"
)

// Profile fetches the signed-in user's profile.
func (c *Client) Profile(ctx context.Context) (domain.Profile, error) {
	raw, apiErr := c.session.Do(ctx, transport.Request{
		Method: http.MethodGet,
		Path:   "/profile",
	}, true)
	if apiErr != nil {
		return domain.Profile{}, apiErr
	}

	var dto profileDTO
	if err := decode(raw, &dto); err != nil {
		return domain.Profile{}, err
	}
	return dto.toDomain(), nil
}

type ProfileInput struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// UpdateProfile replaces the editable profile fields and returns the
// stored result.
func (c *Client) UpdateProfile(ctx context.Context, input ProfileInput) (domain.Profile, error) {
	raw, apiErr := c.session.Do(ctx, transport.Request{
		Method: http.MethodPut,
		Path:   "/profile",
		Body:   input,
	}, true)
	if apiErr != nil {
		return domain.Profile{}, apiErr
	}

	var dto profileDTO
	if err := decode(raw, &dto); err != nil {
		return domain.Profile{}, err
	}
	return dto.toDomain(), nil
}
