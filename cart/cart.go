// Package cart implements the local cart as an immutable value type.
// Every mutation returns a new Cart; two carts built from the same
// operations compare equal structurally. The engine is independent of
// network and auth state and never fails: requested quantities are
// clamped to the product's known stock.
package cart

import (
	"github.com/fjod/shop_client/domain"
)

// Line is one product entry paired with a quantity. The product is a
// value copy of the snapshot that was current when the line was last
// touched.
type Line struct {
	Product  domain.Product
	Quantity int
}

// Valid reports whether the line can be checked out: the product must
// be in stock and the quantity within [1, stock].
func (l Line) Valid() bool {
	return l.Product.InStock && l.Quantity >= 1 && l.Quantity <= l.Product.Stock
}

// Subtotal is price times quantity for this line.
func (l Line) Subtotal() domain.Money {
	return l.Product.Price.Mul(l.Quantity)
}

// Cart is an insertion-ordered collection of lines keyed by product id.
// The zero value is an empty cart.
type Cart struct {
	lines []Line
}

func Empty() Cart {
	return Cart{}
}

// Add inserts the product or merges into an existing line for the same
// product id. The resulting quantity is clamped to the product's stock;
// the second return value reports whether clamping reduced the request.
// Adding a zero-stock product is permitted and yields a quantity-0 line
// that is excluded from counts but surfaced by InvalidItems.
func (c Cart) Add(p domain.Product, quantity int) (Cart, bool) {
	if quantity < 0 {
		quantity = 0
	}

	for i, line := range c.lines {
		if line.Product.ID != p.ID {
			continue
		}
		wanted := line.Quantity + quantity
		next := c.copyLines()
		// Refresh the snapshot too: the caller's copy is newer.
		next[i] = Line{Product: p, Quantity: clamp(wanted, p.Stock)}
		return Cart{lines: next}, wanted > p.Stock
	}

	next := append(c.copyLines(), Line{Product: p, Quantity: clamp(quantity, p.Stock)})
	return Cart{lines: next}, quantity > p.Stock
}

// Remove drops the line for the product id; no-op when absent.
func (c Cart) Remove(productID string) Cart {
	for i, line := range c.lines {
		if line.Product.ID == productID {
			next := make([]Line, 0, len(c.lines)-1)
			next = append(next, c.lines[:i]...)
			next = append(next, c.lines[i+1:]...)
			return Cart{lines: next}
		}
	}
	return c
}

// SetQuantity replaces the line's quantity. n <= 0 removes the line;
// otherwise the quantity is clamped to [1, stock]. No-op when the
// product id is absent. The second return value reports clamping.
func (c Cart) SetQuantity(productID string, n int) (Cart, bool) {
	if n <= 0 {
		return c.Remove(productID), false
	}
	for i, line := range c.lines {
		if line.Product.ID != productID {
			continue
		}
		next := c.copyLines()
		// The lower bound of 1 only applies when stock allows it; a
		// zero-stock line stays at quantity 0.
		next[i].Quantity = clamp(n, line.Product.Stock)
		if next[i].Quantity < 1 && line.Product.Stock >= 1 {
			next[i].Quantity = 1
		}
		return Cart{lines: next}, n > line.Product.Stock
	}
	return c, false
}

// Increment raises the line's quantity by one, clamped at stock.
func (c Cart) Increment(productID string) Cart {
	line, ok := c.Line(productID)
	if !ok {
		return c
	}
	next, _ := c.SetQuantity(productID, line.Quantity+1)
	return next
}

// Decrement lowers the line's quantity by one; going below one removes
// the line. No-op on an absent product id.
func (c Cart) Decrement(productID string) Cart {
	line, ok := c.Line(productID)
	if !ok {
		return c
	}
	next, _ := c.SetQuantity(productID, line.Quantity-1)
	return next
}

func (c Cart) Clear() Cart {
	return Cart{}
}

// Line returns the line for a product id.
func (c Cart) Line(productID string) (Line, bool) {
	for _, line := range c.lines {
		if line.Product.ID == productID {
			return line, true
		}
	}
	return Line{}, false
}

// Items returns the lines in insertion order. The slice is a copy;
// mutating it does not affect the cart.
func (c Cart) Items() []Line {
	return c.copyLines()
}

func (c Cart) Len() int {
	return len(c.lines)
}

func (c Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

// TotalItems is the sum of quantities across lines. Quantity-0 lines
// (zero-stock additions) do not count.
func (c Cart) TotalItems() int {
	total := 0
	for _, line := range c.lines {
		total += line.Quantity
	}
	return total
}

// TotalAmount is the sum of price times quantity across lines.
func (c Cart) TotalAmount() domain.Money {
	var total domain.Money
	for _, line := range c.lines {
		total = total.Add(line.Subtotal())
	}
	return total
}

// IsValid reports whether every line can be checked out. An empty cart
// is valid but fails the separate non-empty checkout precondition.
func (c Cart) IsValid() bool {
	for _, line := range c.lines {
		if !line.Valid() {
			return false
		}
	}
	return true
}

// InvalidItems returns the lines blocking checkout, surfaced so the
// caller can prompt for correction. Invalid lines are never removed
// automatically.
func (c Cart) InvalidItems() []Line {
	var invalid []Line
	for _, line := range c.lines {
		if !line.Valid() {
			invalid = append(invalid, line)
		}
	}
	return invalid
}

func (c Cart) copyLines() []Line {
	if len(c.lines) == 0 {
		return nil
	}
	next := make([]Line, len(c.lines))
	copy(next, c.lines)
	return next
}

func clamp(quantity, stock int) int {
	if stock < 0 {
		stock = 0
	}
	if quantity > stock {
		return stock
	}
	return quantity
}
