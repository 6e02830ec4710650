package client

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/fjod/shop_client/cart"
	"github.com/fjod/shop_client/domain"
)

var (
	// ErrEmptyCart blocks checkout before any network call when there is
	// nothing to order.
	ErrEmptyCart = errors.New("cart is empty, nothing to checkout")
	// ErrUnavailableItems blocks checkout while the cart holds lines
	// that are out of stock or over the known stock; the caller should
	// surface cart.InvalidItems for correction.
	ErrUnavailableItems = errors.New("cart has unavailable items")
)

// Checkout enforces the client-side preconditions and submits the cart
// as an order. The caller clears the cart after a successful return;
// the engine itself is never touched from here.
func (c *Client) Checkout(ctx context.Context, crt cart.Cart) (domain.Order, error) {
	if crt.IsEmpty() {
		return domain.Order{}, ErrEmptyCart
	}
	if !crt.IsValid() {
		return domain.Order{}, ErrUnavailableItems
	}

	lines := crt.Items()
	items := make([]OrderLineInput, 0, len(lines))
	for _, line := range lines {
		items = append(items, OrderLineInput{
			ProductID: line.Product.ID,
			Quantity:  line.Quantity,
		})
	}

	return c.CreateOrder(ctx, items, uuid.NewString())
}
