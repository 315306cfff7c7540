package orders

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/tiemhang/tiemhang/internal/api"
	"github.com/tiemhang/tiemhang/internal/draft"
)

// inventoryFanout caps concurrent per-product inventory fetches.
const inventoryFanout = 8

// Catalog is one consistent fetch of products and their inventories.
// It backs the draft as its snapshot; it is never authoritative beyond
// the form session, a refresh replaces it wholesale.
type Catalog struct {
	products    map[int64]api.ProductResponse
	inventories map[int64]api.InventoryResponse
}

// Product implements draft.Snapshot.
func (c *Catalog) Product(id int64) (draft.ProductInfo, bool) {
	p, ok := c.products[id]
	if !ok {
		return draft.ProductInfo{}, false
	}
	return draft.ProductInfo{ID: p.ID, Name: p.Name, Spec: p.Spec, OriginalPrice: p.OriginalPrice}, true
}

// Inventory implements draft.Snapshot.
func (c *Catalog) Inventory(productID int64) (draft.InventoryInfo, bool) {
	inv, ok := c.inventories[productID]
	if !ok {
		return draft.InventoryInfo{}, false
	}
	return draft.InventoryInfo{Quantity: inv.Quantity, Version: inv.Version}, true
}

// Products lists the catalog's products ordered by id.
func (c *Catalog) Products() []api.ProductResponse {
	out := make([]api.ProductResponse, 0, len(c.products))
	for _, p := range c.products {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// InventoryRecord returns the raw inventory record for a product.
func (c *Catalog) InventoryRecord(productID int64) (api.InventoryResponse, bool) {
	inv, ok := c.inventories[productID]
	return inv, ok
}

// CatalogBackend is the slice of the API the catalog load needs.
type CatalogBackend interface {
	ListProducts(ctx context.Context) ([]api.ProductResponse, error)
	ProductInventory(ctx context.Context, productID int64) (api.InventoryResponse, error)
}

// LoadCatalog fetches all products and fans out their inventory reads
// concurrently. Any failed fetch fails the load; a catalog with holes
// would silently disable stock warnings and version stamping.
func LoadCatalog(ctx context.Context, backend CatalogBackend) (*Catalog, error) {
	products, err := backend.ListProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("orders: list products: %w", err)
	}

	cat := &Catalog{
		products:    make(map[int64]api.ProductResponse, len(products)),
		inventories: make(map[int64]api.InventoryResponse, len(products)),
	}
	for _, p := range products {
		cat.products[p.ID] = p
	}

	var mu sync.Mutex
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(inventoryFanout)
	for _, p := range products {
		p := p
		g.Go(func() error {
			inv, err := backend.ProductInventory(ctx, p.ID)
			if err != nil {
				return fmt.Errorf("orders: inventory for product %d: %w", p.ID, err)
			}
			mu.Lock()
			cat.inventories[p.ID] = inv
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return cat, nil
}
