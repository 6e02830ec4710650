package domain

import "time"

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusConfirmed OrderStatus = "CONFIRMED"
	OrderStatusShipped   OrderStatus = "SHIPPED"
	OrderStatusDelivered OrderStatus = "DELIVERED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

type OrderItem struct {
	ProductID   string
	ProductName string
	Quantity    int
	Price       Money
}

type Order struct {
	ID          string
	Status      OrderStatus
	TotalAmount Money
	Items       []OrderItem
	CreatedAt   time.Time
}
