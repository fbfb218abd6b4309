// Package state holds the client-side mirror of the storefront: the product
// catalog and the authenticated user's cart, synchronized to the server on
// every mutation. Mutations are delta-based and the server's merged cart is
// adopted as the authoritative result, so concurrent tabs or devices
// converge instead of overwriting each other.
package state

import (
	"context"
	"math"
	"sync"

	"dorpon-store/models"
)

type AppState struct {
	mu       sync.RWMutex
	api      *Client
	user     *models.User
	products []models.Product
	cart     models.CartItems
}

func NewAppState(api *Client) *AppState {
	return &AppState{
		api:  api,
		cart: models.CartItems{},
	}
}

// Load fetches the catalog and, when a session token is present, the user's
// profile and stored cart.
func (s *AppState) Load(ctx context.Context) error {
	products, err := s.api.FetchProducts(ctx)
	if err != nil {
		return err
	}

	if s.api.token == "" {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.products = products
		s.user = nil
		s.cart = models.CartItems{}
		return nil
	}

	user, err := s.api.FetchUser(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.products = products
	s.user = user
	s.cart = user.CartItems.Pruned()
	return nil
}

// AddToCart adds one unit of the product and adopts the server's merged cart.
func (s *AppState) AddToCart(ctx context.Context, productID string) error {
	cart, err := s.api.AddCartItem(ctx, productID, 1)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.cart = cart
	s.mu.Unlock()
	return nil
}

// SetQuantity sets the explicit quantity for a product; zero removes it.
func (s *AppState) SetQuantity(ctx context.Context, productID string, quantity int) error {
	cart, err := s.api.SetCartItem(ctx, productID, quantity)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.cart = cart
	s.mu.Unlock()
	return nil
}

func (s *AppState) User() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

func (s *AppState) Products() []models.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Product, len(s.products))
	copy(out, s.products)
	return out
}

func (s *AppState) CartItems() models.CartItems {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := models.CartItems{}
	for id, qty := range s.cart {
		out[id] = qty
	}
	return out
}

// CartCount is the total number of units across the cart.
func (s *AppState) CartCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	count := 0
	for _, qty := range s.cart {
		count += qty
	}
	return count
}

// CartAmount is the cart's monetary total over catalog-joined items, using
// the offer price when one is set, floored to 2 decimal places.
func (s *AppState) CartAmount() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	total := 0.0
	for id, qty := range s.cart {
		if qty <= 0 {
			continue
		}
		for i := range s.products {
			if s.products[i].ID == id {
				total += s.products[i].EffectivePrice() * float64(qty)
				break
			}
		}
	}
	return math.Floor(total*100) / 100
}
