package api

import (
	"context"
	"fmt"
	"net/http"
)

type customersPayload struct {
	Customers []CustomerResponse `json:"customers"`
}

type customerPayload struct {
	Customer CustomerResponse `json:"customer"`
}

// ListCustomers fetches all customers.
func (c *Client) ListCustomers(ctx context.Context) ([]CustomerResponse, error) {
	var out customersPayload
	if err := c.do(ctx, http.MethodGet, "/customers", nil, &out); err != nil {
		return nil, err
	}
	return out.Customers, nil
}

// GetCustomer fetches one customer by id.
func (c *Client) GetCustomer(ctx context.Context, id int64) (CustomerResponse, error) {
	var out customerPayload
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/customers/%d", id), nil, &out); err != nil {
		return CustomerResponse{}, err
	}
	return out.Customer, nil
}

// CreateCustomer creates a customer.
func (c *Client) CreateCustomer(ctx context.Context, req CreateCustomerRequest) (CustomerResponse, error) {
	var out CustomerResponse
	if err := c.do(ctx, http.MethodPost, "/customers", req, &out); err != nil {
		return CustomerResponse{}, err
	}
	return out, nil
}

// UpdateCustomer updates the given fields of a customer.
func (c *Client) UpdateCustomer(ctx context.Context, id int64, req UpdateCustomerRequest) (CustomerResponse, error) {
	var out CustomerResponse
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/customers/%d", id), req, &out); err != nil {
		return CustomerResponse{}, err
	}
	return out, nil
}
