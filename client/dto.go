package client

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"

	"github.com/fjod/shop_client/domain"
)

// flexID accepts both string and numeric ids, since the backend has
// historically emitted either depending on the endpoint.
type flexID string

func (id *flexID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = flexID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*id = flexID(n.String())
	return nil
}

type productDTO struct {
	ID           flexID          `json:"id"`
	Name         string          `json:"name"`
	Price        decimal.Decimal `json:"price"`
	Stock        int             `json:"stock"`
	InStock      bool            `json:"in_stock"`
	CategoryName string          `json:"category_name"`
	Image        string          `json:"image"`
	IsFavorite   bool            `json:"is_favorite"`
}

func (d productDTO) toDomain(unit currency.Unit) domain.Product {
	return domain.Product{
		ID:           string(d.ID),
		Name:         d.Name,
		Price:        domain.NewMoney(d.Price, unit),
		Stock:        d.Stock,
		InStock:      d.InStock,
		CategoryName: d.CategoryName,
		Image:        d.Image,
		IsFavorite:   d.IsFavorite,
	}
}

type categoryDTO struct {
	ID    flexID `json:"id"`
	Name  string `json:"name"`
	Image string `json:"image"`
}

func (d categoryDTO) toDomain() domain.Category {
	return domain.Category{ID: string(d.ID), Name: d.Name, Image: d.Image}
}

type productPageDTO struct {
	Count    int          `json:"count"`
	Next     string       `json:"next"`
	Previous string       `json:"previous"`
	Results  []productDTO `json:"results"`
}

func (d productPageDTO) toDomain(unit currency.Unit) domain.ProductPage {
	page := domain.ProductPage{
		Count:    d.Count,
		Next:     d.Next,
		Previous: d.Previous,
		Products: make([]domain.Product, 0, len(d.Results)),
	}
	for _, p := range d.Results {
		page.Products = append(page.Products, p.toDomain(unit))
	}
	return page
}

type profileDTO struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

func (d profileDTO) toDomain() domain.Profile {
	return domain.Profile{Name: d.Name, Email: d.Email, Phone: d.Phone, Address: d.Address}
}

type tokensDTO struct {
	Access  string      `json:"access"`
	Refresh string      `json:"refresh"`
	User    *profileDTO `json:"user"`
}

func (d tokensDTO) pair() domain.TokenPair {
	return domain.TokenPair{Access: d.Access, Refresh: d.Refresh}
}

type orderItemDTO struct {
	ProductID   flexID          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
}

type orderDTO struct {
	ID          flexID          `json:"id"`
	Status      string          `json:"status"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	Items       []orderItemDTO  `json:"items"`
	CreatedAt   time.Time       `json:"created_at"`
}

func (d orderDTO) toDomain(unit currency.Unit) domain.Order {
	order := domain.Order{
		ID:          string(d.ID),
		Status:      domain.OrderStatus(d.Status),
		TotalAmount: domain.NewMoney(d.TotalAmount, unit),
		Items:       make([]domain.OrderItem, 0, len(d.Items)),
		CreatedAt:   d.CreatedAt,
	}
	for _, item := range d.Items {
		order.Items = append(order.Items, domain.OrderItem{
			ProductID:   string(item.ProductID),
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			Price:       domain.NewMoney(item.Price, unit),
		})
	}
	return order
}
