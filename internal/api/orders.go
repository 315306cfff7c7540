package api

import (
	"context"
	"fmt"
	"net/http"
)

type ordersPayload struct {
	Orders []OrderResponse `json:"orders"`
}

type orderPayload struct {
	Order OrderResponse `json:"order"`
}

// ListOrders fetches all orders.
func (c *Client) ListOrders(ctx context.Context) ([]OrderResponse, error) {
	var out ordersPayload
	if err := c.do(ctx, http.MethodGet, "/orders", nil, &out); err != nil {
		return nil, err
	}
	return out.Orders, nil
}

// GetOrder fetches one order with its items.
func (c *Client) GetOrder(ctx context.Context, id int64) (OrderResponse, error) {
	var out orderPayload
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/orders/%d", id), nil, &out); err != nil {
		return OrderResponse{}, err
	}
	return out.Order, nil
}

// CreateOrder submits a complete order atomically. Creation is not
// idempotent by itself, so idempotencyKey (one uuid per submission
// attempt) lets the backend drop an accidental double-fire. Items with
// an INVENTORY source are checked against their carried version; any
// stale version rejects the whole order with ErrVersionConflict.
func (c *Client) CreateOrder(ctx context.Context, req CreateOrderRequest, idempotencyKey string) (OrderResponse, error) {
	var headers map[string]string
	if idempotencyKey != "" {
		headers = map[string]string{idempotencyHeader: idempotencyKey}
	}
	var out orderPayload
	if err := c.doHeaders(ctx, http.MethodPost, "/orders", headers, req, &out); err != nil {
		return OrderResponse{}, err
	}
	return out.Order, nil
}

// UpdateOrder updates order-level fields; items are not editable here.
func (c *Client) UpdateOrder(ctx context.Context, id int64, req UpdateOrderRequest) (OrderResponse, error) {
	var out orderPayload
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/orders/%d", id), req, &out); err != nil {
		return OrderResponse{}, err
	}
	return out.Order, nil
}

// DeleteOrder deletes an order as a unit. The backend restores stock
// for INVENTORY-sourced items; the client does not reproduce that.
func (c *Client) DeleteOrder(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/orders/%d", id), nil, nil)
}
