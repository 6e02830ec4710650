package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/fjod/shop_client/cart"
	"github.com/fjod/shop_client/client"
	"github.com/fjod/shop_client/domain"
	"github.com/fjod/shop_client/tokenstore"
)

// shopcli is a smoke-test harness for the SDK: sign in, browse the
// catalog, fill a cart and print the checkout summary.
func main() {
	// Optional .env next to the binary; real env wins.
	_ = godotenv.Load()

	baseURL := getEnv("SHOP_BASE_URL", "http://localhost:8000/api")
	email := getEnv("SHOP_EMAIL", "")
	password := getEnv("SHOP_PASSWORD", "")

	tokenPath, err := tokenstore.DefaultPath("shopcli")
	if err != nil {
		log.Fatalf("Failed to resolve token path: %v", err)
	}
	store, err := tokenstore.NewFile(tokenPath)
	if err != nil {
		log.Fatalf("Failed to open token store: %v", err)
	}

	c, err := client.New(client.Config{
		BaseURL:    baseURL,
		TokenStore: store,
		OnSessionExpired: func() {
			log.Printf("Session expired, please log in again")
		},
	})
	if err != nil {
		log.Fatalf("Failed to build client: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if !c.HasSession() {
		if email == "" || password == "" {
			log.Fatalf("No stored session; set SHOP_EMAIL and SHOP_PASSWORD")
		}
		profile, err := c.Login(ctx, email, password)
		if err != nil {
			log.Fatalf("Login failed: %v", err)
		}
		log.Printf("Signed in as %s", profile.Email)
	}

	page, err := c.Products(ctx, client.ProductQuery{PageSize: 5})
	if err != nil {
		log.Fatalf("Failed to list products: %v", err)
	}
	log.Printf("Catalog has %d products, showing %d", page.Count, len(page.Products))

	crt := cart.Empty()
	for _, p := range page.Products {
		if !p.InStock {
			continue
		}
		var clamped bool
		crt, clamped = crt.Add(p, 1)
		if clamped {
			log.Printf("Quantity for %s reduced to stock", p.Name)
		}
	}

	summary := crt.Summarize(domain.Money{}, domain.Money{})
	log.Printf("Cart: %d items, subtotal %s, total %s",
		summary.ItemsCount, summary.Subtotal, summary.Total)

	if crt.IsEmpty() || !crt.IsValid() {
		log.Printf("Cart not ready for checkout, skipping order")
		return
	}

	order, err := c.Checkout(ctx, crt)
	if err != nil {
		log.Fatalf("Checkout failed: %v", err)
	}
	log.Printf("Order %s created, status %s, total %s", order.ID, order.Status, order.TotalAmount)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
