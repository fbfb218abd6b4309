package models

import "time"

// Categories is the fixed set a product must belong to.
var Categories = []string{
	"Earphone",
	"Headphone",
	"Watch",
	"Smartphone",
	"Laptop",
	"Camera",
	"Accessories",
}

func IsValidCategory(category string) bool {
	for _, c := range Categories {
		if c == category {
			return true
		}
	}
	return false
}

// ProductImage is one hosted image: the serving URL plus the media host's
// identifier, kept so the remote copy can be deleted later.
type ProductImage struct {
	URL      string `json:"url"`
	PublicID string `json:"public_id"`
}

type Product struct {
	ID          string         `json:"id"`
	SellerID    string         `json:"sellerId"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Category    string         `json:"category"`
	Price       float64        `json:"price"`
	OfferPrice  *float64       `json:"offerPrice,omitempty"`
	Images      []ProductImage `json:"images"`
	CreatedAt   time.Time      `json:"createdAt"`
}

// EffectivePrice is what a unit actually costs: the offer price when one is
// set, the base price otherwise.
func (p *Product) EffectivePrice() float64 {
	if p.OfferPrice != nil {
		return *p.OfferPrice
	}
	return p.Price
}
