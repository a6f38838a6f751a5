// Package catalogapi is a thin http client of the product catalog API.
package catalogapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// Category is a product category registered in the catalog.
type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// ProductDetail describes a single product in catalog API requests.
type ProductDetail struct {
	Barcode          string  `json:"barcode"`
	Name             string  `json:"name"`
	Amount           float64 `json:"amount"`
	Brand            string  `json:"brand"`
	Unit             string  `json:"unit"`
	CategoryID       int64   `json:"category_id"`
	SourceImage      string  `json:"source_image"`
	IsBarcodeChecked bool    `json:"is_barcode_checked"`
}

// ProductPayload is the body of a catalog product creation request.
type ProductPayload struct {
	Product ProductDetail `json:"product"`
	Price   float64       `json:"price"`
	ShopID  int           `json:"shop_id"`
}

type categoriesResponse struct {
	Categories []Category `json:"categories"`
}

// Client builds http requests and calls the catalog API.
// The token authenticates requests through the user-id header.
type Client struct {
	client  *http.Client
	baseURL string
	token   string
}

// NewClient returns new catalog API Client.
func NewClient(client *http.Client, baseURL string, token string) *Client {
	return &Client{
		client:  client,
		baseURL: baseURL,
		token:   token,
	}
}

// Categories returns all product categories registered in the catalog.
func (c *Client) Categories(ctx context.Context) ([]Category, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/categories", nil)
	if err != nil {
		return nil, fmt.Errorf("can't build http request: %w", err)
	}

	req.Header.Add("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("can't get http response: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, ErrStatusNotOK
	}

	var decoded categoriesResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("can't decode categories response: %w", err)
	}

	return decoded.Categories, nil
}

// CreateProduct registers provided product in the catalog.
func (c *Client) CreateProduct(ctx context.Context, payload ProductPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("can't encode product payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/products", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("can't build http request: %w", err)
	}

	req.Header.Add("Content-Type", "application/json")
	req.Header.Add("user-id", c.token)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("can't get http response: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return ErrStatusNotOK
	}

	return nil
}
