package cart

import "github.com/fjod/shop_client/domain"

// Summary is a derived view of a cart snapshot; it is recomputed on
// demand and never stored.
type Summary struct {
	ItemsCount  int
	Subtotal    domain.Money
	Discount    domain.Money
	DeliveryFee domain.Money
	Total       domain.Money
}

// Summarize computes the checkout figures for the current cart state.
// Discount and delivery fee come from the caller (promotions and
// delivery quotes are server concerns); either may be the zero value.
func (c Cart) Summarize(discount, deliveryFee domain.Money) Summary {
	subtotal := c.TotalAmount()
	return Summary{
		ItemsCount:  c.TotalItems(),
		Subtotal:    subtotal,
		Discount:    discount,
		DeliveryFee: deliveryFee,
		Total:       subtotal.Sub(discount).Add(deliveryFee),
	}
}
