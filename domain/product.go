package domain

// Product is a read-only snapshot of server product state, captured
// when it was last fetched. The cart keeps a value copy; a snapshot in
// a cart may be stale relative to the server.
type Product struct {
	ID           string
	Name         string
	Price        Money
	Stock        int
	InStock      bool
	CategoryName string
	Image        string
	IsFavorite   bool
}

type Category struct {
	ID    string
	Name  string
	Image string
}

// ProductPage is one page of a paginated catalog listing.
type ProductPage struct {
	Count    int
	Next     string
	Previous string
	Products []Product
}
