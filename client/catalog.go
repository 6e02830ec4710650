package client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/fjod/shop_client/domain"
	"github.com/fjod/shop_client/internal/transport"
)

// ProductQuery narrows and paginates a catalog listing. Zero fields
// are omitted from the request.
type ProductQuery struct {
	Page     int
	PageSize int
	Category string
	Search   string
}

func (q ProductQuery) values() url.Values {
	values := url.Values{}
	if q.Page > 0 {
		values.Set("page", strconv.Itoa(q.Page))
	}
	if q.PageSize > 0 {
		values.Set("page_size", strconv.Itoa(q.PageSize))
	}
	if q.Category != "" {
		values.Set("category", q.Category)
	}
	if q.Search != "" {
		values.Set("search", q.Search)
	}
	return values
}

// Categories lists the catalog categories. Public, no auth.
func (c *Client) Categories(ctx context.Context) ([]domain.Category, error) {
	raw, apiErr := c.session.Do(ctx, transport.Request{
		Method: http.MethodGet,
		Path:   "/categories",
	}, false)
	if apiErr != nil {
		return nil, apiErr
	}

	var dtos []categoryDTO
	if err := decode(raw, &dtos); err != nil {
		return nil, err
	}
	categories := make([]domain.Category, 0, len(dtos))
	for _, dto := range dtos {
		categories = append(categories, dto.toDomain())
	}
	return categories, nil
}

// Products lists one catalog page. The call is public, but when a
// session is present the token is sent so the response carries
// per-product favorite flags.
func (c *Client) Products(ctx context.Context, query ProductQuery) (domain.ProductPage, error) {
	raw, apiErr := c.session.Do(ctx, transport.Request{
		Method: http.MethodGet,
		Path:   "/products",
		Query:  query.values(),
	}, c.session.HasSession())
	if apiErr != nil {
		return domain.ProductPage{}, apiErr
	}

	var dto productPageDTO
	if err := decode(raw, &dto); err != nil {
		return domain.ProductPage{}, err
	}
	return dto.toDomain(c.currency), nil
}

// Product fetches one product snapshot. Auth is conditional, as with
// Products.
func (c *Client) Product(ctx context.Context, id string) (domain.Product, error) {
	raw, apiErr := c.session.Do(ctx, transport.Request{
		Method: http.MethodGet,
		Path:   "/products/" + url.PathEscape(id),
	}, c.session.HasSession())
	if apiErr != nil {
		return domain.Product{}, apiErr
	}

	var dto productDTO
	if err := decode(raw, &dto); err != nil {
		return domain.Product{}, err
	}
	return dto.toDomain(c.currency), nil
}
