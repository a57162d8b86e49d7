package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// AnalyzeProduct asks the backend to scrape an external product page.
func (c *Client) AnalyzeProduct(ctx context.Context, productURL string) (*Product, error) {
	productURL = strings.TrimSpace(productURL)
	if productURL == "" {
		return nil, ErrMissingProductURL
	}
	var p Product
	err := c.do(ctx, http.MethodGet, "/products/analyze", &p, WithQuery(url.Values{"url": {productURL}}))
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// ListProducts returns the whole catalogue. The catalogue is public.
func (c *Client) ListProducts(ctx context.Context) ([]Product, error) {
	var products []Product
	if err := c.do(ctx, http.MethodGet, "/products/all", &products, WithoutAuth()); err != nil {
		return nil, err
	}
	return products, nil
}

// GetProduct returns a single product. Product pages are public.
func (c *Client) GetProduct(ctx context.Context, id int64) (*Product, error) {
	var p Product
	if err := c.do(ctx, http.MethodGet, productPath(id), &p, WithoutAuth()); err != nil {
		return nil, err
	}
	return &p, nil
}

// DeleteProduct removes a product. Admin only.
func (c *Client) DeleteProduct(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, productPath(id), nil)
}

func productPath(id int64) string {
	return "/products/" + strconv.FormatInt(id, 10)
}
