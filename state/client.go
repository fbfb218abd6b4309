package state

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"dorpon-store/models"
)

// Client talks to the storefront REST API on behalf of one user session.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

type listResponse struct {
	Success bool             `json:"success"`
	Message string           `json:"message"`
	Data    []models.Product `json:"data"`
}

type cartResponse struct {
	Success bool             `json:"success"`
	Message string           `json:"message"`
	Data    models.CartItems `json:"data"`
}

type userResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	User    *models.User `json:"user"`
}

func (c *Client) do(ctx context.Context, method, path string, payload, out interface{}) error {
	var body *bytes.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(data)
	} else {
		body = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *Client) FetchProducts(ctx context.Context) ([]models.Product, error) {
	var out listResponse
	if err := c.do(ctx, http.MethodGet, "/product/list", nil, &out); err != nil {
		return nil, err
	}
	if !out.Success {
		return nil, fmt.Errorf("fetch products: %s", out.Message)
	}
	return out.Data, nil
}

func (c *Client) FetchUser(ctx context.Context) (*models.User, error) {
	var out userResponse
	if err := c.do(ctx, http.MethodGet, "/user/data", nil, &out); err != nil {
		return nil, err
	}
	if !out.Success || out.User == nil {
		return nil, fmt.Errorf("fetch user: %s", out.Message)
	}
	return out.User, nil
}

// AddCartItem sends a quantity delta; the server returns the merged cart.
func (c *Client) AddCartItem(ctx context.Context, productID string, quantity int) (models.CartItems, error) {
	var out cartResponse
	req := models.CartItemRequest{ProductID: productID, Quantity: quantity}
	if err := c.do(ctx, http.MethodPost, "/cart/add", req, &out); err != nil {
		return nil, err
	}
	if !out.Success {
		return nil, fmt.Errorf("add cart item: %s", out.Message)
	}
	return out.Data, nil
}

// SetCartItem sets an explicit quantity; zero removes the product.
func (c *Client) SetCartItem(ctx context.Context, productID string, quantity int) (models.CartItems, error) {
	var out cartResponse
	req := models.CartItemRequest{ProductID: productID, Quantity: quantity}
	if err := c.do(ctx, http.MethodPost, "/cart/item", req, &out); err != nil {
		return nil, err
	}
	if !out.Success {
		return nil, fmt.Errorf("set cart item: %s", out.Message)
	}
	return out.Data, nil
}

func (c *Client) ReplaceCart(ctx context.Context, cart models.CartItems) (models.CartItems, error) {
	var out cartResponse
	req := models.CartUpdateRequest{CartData: cart}
	if err := c.do(ctx, http.MethodPost, "/cart/update", req, &out); err != nil {
		return nil, err
	}
	if !out.Success {
		return nil, fmt.Errorf("replace cart: %s", out.Message)
	}
	return out.Data, nil
}
