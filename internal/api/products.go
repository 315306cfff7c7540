package api

import (
	"context"
	"fmt"
	"net/http"
)

type productsPayload struct {
	Products []ProductResponse `json:"products"`
}

type productPayload struct {
	Product ProductResponse `json:"product"`
}

// ListProducts fetches all products.
func (c *Client) ListProducts(ctx context.Context) ([]ProductResponse, error) {
	var out productsPayload
	if err := c.do(ctx, http.MethodGet, "/products", nil, &out); err != nil {
		return nil, err
	}
	return out.Products, nil
}

// GetProduct fetches one product by id.
func (c *Client) GetProduct(ctx context.Context, id int64) (ProductResponse, error) {
	var out productPayload
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/products/%d", id), nil, &out); err != nil {
		return ProductResponse{}, err
	}
	return out.Product, nil
}

// CreateProduct creates a product.
func (c *Client) CreateProduct(ctx context.Context, req CreateProductRequest) (ProductResponse, error) {
	var out ProductResponse
	if err := c.do(ctx, http.MethodPost, "/products", req, &out); err != nil {
		return ProductResponse{}, err
	}
	return out, nil
}

// UpdateProduct updates a product; the target id travels in the body.
func (c *Client) UpdateProduct(ctx context.Context, req UpdateProductRequest) (ProductResponse, error) {
	var out ProductResponse
	if err := c.do(ctx, http.MethodPut, "/products", req, &out); err != nil {
		return ProductResponse{}, err
	}
	return out, nil
}
