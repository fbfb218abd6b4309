package models

import "time"

// CartItems maps a product ID to a positive quantity. Entries whose quantity
// drops to zero are removed rather than stored as zero.
type CartItems map[string]int

// Pruned returns a copy with all non-positive quantities removed.
func (c CartItems) Pruned() CartItems {
	pruned := CartItems{}
	for id, qty := range c {
		if qty > 0 {
			pruned[id] = qty
		}
	}
	return pruned
}

// User mirrors the identity provider's record plus the embedded cart.
// The ID is assigned by the provider, not by this service.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	ImageURL  string    `json:"imageUrl"`
	CartItems CartItems `json:"cartItems"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
