package api

import (
	"context"
	"fmt"
	"net/http"
)

type inventoriesPayload struct {
	Inventories []InventoryWithProductResponse `json:"inventories"`
}

type historiesPayload struct {
	InventoryHistories []InventoryHistoryResponse `json:"inventory_histories"`
}

// ListInventories fetches every inventory record with its product.
func (c *Client) ListInventories(ctx context.Context) ([]InventoryWithProductResponse, error) {
	var out inventoriesPayload
	if err := c.do(ctx, http.MethodGet, "/inventory", nil, &out); err != nil {
		return nil, err
	}
	return out.Inventories, nil
}

// ProductInventory fetches the inventory record for one product. The
// returned Version is the stamp a following mutation must echo back.
func (c *Client) ProductInventory(ctx context.Context, productID int64) (InventoryResponse, error) {
	var out InventoryResponse
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/products/%d/inventories", productID), nil, &out); err != nil {
		return InventoryResponse{}, err
	}
	return out, nil
}

// UpdateInventoryQuantity sets an absolute quantity under the version
// guard. A stale version yields ErrVersionConflict and leaves the
// stored quantity untouched; the caller must re-read and resubmit.
func (c *Client) UpdateInventoryQuantity(ctx context.Context, productID int64, req UpdateInventoryQuantityRequest) (InventoryResponse, error) {
	var out InventoryResponse
	path := fmt.Sprintf("/products/%d/inventories/quantity", productID)
	if err := c.do(ctx, http.MethodPut, path, req, &out); err != nil {
		return InventoryResponse{}, err
	}
	return out, nil
}

// InventoryHistory fetches the quantity audit trail for a product.
func (c *Client) InventoryHistory(ctx context.Context, productID int64) ([]InventoryHistoryResponse, error) {
	var out historiesPayload
	path := fmt.Sprintf("/products/%d/inventories/histories", productID)
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out.InventoryHistories, nil
}
