package client

import (
	"context"
	"net/http"
	"net/url"

	"github.com/fjod/shop_client/domain"
	"github.com/fjod/shop_client/internal/transport"
)

// OrderLineInput is one requested order line.
type OrderLineInput struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// Orders lists the signed-in user's orders, newest first.
func (c *Client) Orders(ctx context.Context) ([]domain.Order, error) {
	raw, apiErr := c.session.Do(ctx, transport.Request{
		Method: http.MethodGet,
		Path:   "/orders",
	}, true)
	if apiErr != nil {
		return nil, apiErr
	}

	var dtos []orderDTO
	if err := decode(raw, &dtos); err != nil {
		return nil, err
	}
	orders := make([]domain.Order, 0, len(dtos))
	for _, dto := range dtos {
		orders = append(orders, dto.toDomain(c.currency))
	}
	return orders, nil
}

// Order fetches one order.
func (c *Client) Order(ctx context.Context, id string) (domain.Order, error) {
	raw, apiErr := c.session.Do(ctx, transport.Request{
		Method: http.MethodGet,
		Path:   "/orders/" + url.PathEscape(id),
	}, true)
	if apiErr != nil {
		return domain.Order{}, apiErr
	}

	var dto orderDTO
	if err := decode(raw, &dto); err != nil {
		return domain.Order{}, err
	}
	return dto.toDomain(c.currency), nil
}

// CreateOrder submits an order. The idempotency key guards against
// duplicate submissions when a response is lost; Checkout generates
// one automatically.
func (c *Client) CreateOrder(ctx context.Context, items []OrderLineInput, idempotencyKey string) (domain.Order, error) {
	raw, apiErr := c.session.Do(ctx, transport.Request{
		Method: http.MethodPost,
		Path:   "/orders/create",
		Body: map[string]any{
			"items":           items,
			"idempotency_key": idempotencyKey,
		},
	}, true)
	if apiErr != nil {
		return domain.Order{}, apiErr
	}

	var dto orderDTO
	if err := decode(raw, &dto); err != nil {
		return domain.Order{}, err
	}
	return dto.toDomain(c.currency), nil
}

// CancelOrder cancels a pending order and returns its new state.
func (c *Client) CancelOrder(ctx context.Context, id string) (domain.Order, error) {
	raw, apiErr := c.session.Do(ctx, transport.Request{
		Method: http.MethodPost,
		Path:   "/orders/" + url.PathEscape(id) + "/cancel",
	}, true)
	if apiErr != nil {
		return domain.Order{}, apiErr
	}

	var dto orderDTO
	if err := decode(raw, &dto); err != nil {
		return domain.Order{}, err
	}
	return dto.toDomain(c.currency), nil
}
