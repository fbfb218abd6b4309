package state

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"dorpon-store/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// storeServer is a minimal in-memory stand-in for the storefront API.
type storeServer struct {
	user     models.User
	products []models.Product
}

func (s *storeServer) handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/product/list", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": true, "message": "Products retrieved", "data": s.products,
		})
	})

	mux.HandleFunc("/user/data", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") == "" {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"success": false, "message": "Authentication required",
			})
			return
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": true, "user": s.user,
		})
	})

	mux.HandleFunc("/cart/add", func(w http.ResponseWriter, r *http.Request) {
		var req models.CartItemRequest
		json.NewDecoder(r.Body).Decode(&req)
		delta := req.Quantity
		if delta == 0 {
			delta = 1
		}
		next := s.user.CartItems[req.ProductID] + delta
		if next <= 0 {
			delete(s.user.CartItems, req.ProductID)
		} else {
			s.user.CartItems[req.ProductID] = next
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": true, "message": "Cart updated successfully", "data": s.user.CartItems,
		})
	})

	mux.HandleFunc("/cart/item", func(w http.ResponseWriter, r *http.Request) {
		var req models.CartItemRequest
		json.NewDecoder(r.Body).Decode(&req)
		if req.Quantity <= 0 {
			delete(s.user.CartItems, req.ProductID)
		} else {
			s.user.CartItems[req.ProductID] = req.Quantity
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": true, "message": "Cart updated successfully", "data": s.user.CartItems,
		})
	})

	return mux
}

func newLoadedState(t *testing.T, server *storeServer) *AppState {
	t.Helper()
	ts := httptest.NewServer(server.handler())
	t.Cleanup(ts.Close)

	state := NewAppState(NewClient(ts.URL, "test-token"))
	require.NoError(t, state.Load(context.Background()))
	return state
}

func offer(v float64) *float64 { return &v }

func testCatalog() []models.Product {
	return []models.Product{
		{ID: "p1", Name: "Earbuds", Price: 33.333},
		{ID: "p2", Name: "Watch", Price: 100, OfferPrice: offer(80.5)},
	}
}

func TestLoadMirrorsServerState(t *testing.T) {
	server := &storeServer{
		user:     models.User{ID: "u1", CartItems: models.CartItems{"p1": 2, "stale": 0}},
		products: testCatalog(),
	}
	state := newLoadedState(t, server)

	assert.Len(t, state.Products(), 2)
	// zero-quantity entries from the server never enter the mirror
	assert.Equal(t, models.CartItems{"p1": 2}, state.CartItems())
	assert.Equal(t, "u1", state.User().ID)
}

func TestLoadWithoutTokenMirrorsCatalogOnly(t *testing.T) {
	server := &storeServer{
		user:     models.User{ID: "u1", CartItems: models.CartItems{"p1": 2}},
		products: testCatalog(),
	}
	ts := httptest.NewServer(server.handler())
	t.Cleanup(ts.Close)

	state := NewAppState(NewClient(ts.URL, ""))
	require.NoError(t, state.Load(context.Background()))

	assert.Len(t, state.Products(), 2)
	assert.Nil(t, state.User())
	assert.Empty(t, state.CartItems())
}

func TestAddToCartAdoptsMergedCart(t *testing.T) {
	server := &storeServer{
		user:     models.User{ID: "u1", CartItems: models.CartItems{}},
		products: testCatalog(),
	}
	state := newLoadedState(t, server)

	require.NoError(t, state.AddToCart(context.Background(), "p1"))
	require.NoError(t, state.AddToCart(context.Background(), "p1"))

	assert.Equal(t, 2, state.CartItems()["p1"])
	assert.Equal(t, 2, server.user.CartItems["p1"])
}

func TestSetQuantityZeroRemoves(t *testing.T) {
	server := &storeServer{
		user:     models.User{ID: "u1", CartItems: models.CartItems{"p1": 3}},
		products: testCatalog(),
	}
	state := newLoadedState(t, server)

	require.NoError(t, state.SetQuantity(context.Background(), "p1", 0))

	_, present := state.CartItems()["p1"]
	assert.False(t, present)
}

func TestCartCount(t *testing.T) {
	server := &storeServer{
		user:     models.User{ID: "u1", CartItems: models.CartItems{"p1": 3, "p2": 2}},
		products: testCatalog(),
	}
	state := newLoadedState(t, server)

	assert.Equal(t, 5, state.CartCount())
}

func TestCartAmountFloorsToTwoDecimals(t *testing.T) {
	server := &storeServer{
		user:     models.User{ID: "u1", CartItems: models.CartItems{"p1": 3}},
		products: testCatalog(),
	}
	state := newLoadedState(t, server)

	// 3 x 33.333 = 99.999, floored to 99.99 rather than rounded to 100.00
	assert.Equal(t, 99.99, state.CartAmount())
}

func TestCartAmountPrefersOfferPrice(t *testing.T) {
	server := &storeServer{
		user:     models.User{ID: "u1", CartItems: models.CartItems{"p2": 2}},
		products: testCatalog(),
	}
	state := newLoadedState(t, server)

	// 2 x 80.5 offer price, not 2 x 100 base price
	assert.Equal(t, 161.0, state.CartAmount())
}

func TestCartAmountSkipsUnknownProducts(t *testing.T) {
	server := &storeServer{
		user:     models.User{ID: "u1", CartItems: models.CartItems{"ghost": 4, "p2": 1}},
		products: testCatalog(),
	}
	state := newLoadedState(t, server)

	assert.Equal(t, 80.5, state.CartAmount())
}
