package apitest_test

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/tiemhang/tiemhang/internal/api"
	"github.com/tiemhang/tiemhang/internal/api/apitest"
)

func newClient(t *testing.T, server *apitest.Server) *api.Client {
	t.Helper()
	srv := httptest.NewServer(server.Handler())
	t.Cleanup(srv.Close)
	return api.NewClient(srv.URL, 5*time.Second, nil)
}

func TestQuantityUpdateWithCurrentVersion(t *testing.T) {
	server := apitest.NewServer()
	p := server.AddProduct("Rice paper", 12, 1000, 10)
	client := newClient(t, server)
	ctx := context.Background()

	inv, err := client.ProductInventory(ctx, p.ID)
	require.NoError(t, err)

	updated, err := client.UpdateInventoryQuantity(ctx, p.ID, api.UpdateInventoryQuantityRequest{
		Quantity: 25,
		Note:     "stock take",
		Version:  inv.Version,
	})
	require.NoError(t, err)
	require.Equal(t, int64(25), updated.Quantity)
	// The version must rotate on every successful mutation.
	require.NotEqual(t, inv.Version, updated.Version)
}

func TestQuantityUpdateWithStaleVersionRejected(t *testing.T) {
	server := apitest.NewServer()
	p := server.AddProduct("Rice paper", 12, 1000, 10)
	client := newClient(t, server)
	ctx := context.Background()

	inv, err := client.ProductInventory(ctx, p.ID)
	require.NoError(t, err)

	// Another writer moves the record forward between read and write.
	server.RotateVersion(p.ID)

	_, err = client.UpdateInventoryQuantity(ctx, p.ID, api.UpdateInventoryQuantityRequest{
		Quantity: 25,
		Version:  inv.Version,
	})
	require.ErrorIs(t, err, api.ErrVersionConflict)
	// A rejected mutation must not change the stored quantity.
	require.Equal(t, int64(10), server.InventoryQuantity(p.ID))
}

func TestOrderCreateDecrementsInventoryStock(t *testing.T) {
	server := apitest.NewServer()
	p := server.AddProduct("Rice paper", 12, 1000, 100)
	ext := server.AddProduct("Fish sauce", 24, 15000, 5)
	cust := server.AddCustomer("Quan An Ngon", "0903", "12 PCT")
	client := newClient(t, server)
	ctx := context.Background()

	order, err := client.CreateOrder(ctx, api.CreateOrderRequest{
		CustomerID:     cust.ID,
		OrderDate:      "2026-08-30T00:00:00Z",
		DeliveryStatus: "PENDING",
		OrderItems: []api.OrderItemRequest{
			{ProductID: p.ID, Quantity: 30, SellingPrice: 2000, Version: p.Inventory.Version, ExportFrom: "INVENTORY"},
			{ProductID: ext.ID, Quantity: 50, SellingPrice: 20000, ExportFrom: "EXTERNAL"},
		},
	}, "")
	require.NoError(t, err)
	require.Len(t, order.OrderItems, 2)

	// INVENTORY line decrements stock and rotates the version.
	require.Equal(t, int64(70), server.InventoryQuantity(p.ID))
	require.NotEqual(t, p.Inventory.Version, server.InventoryVersion(p.ID))
	// EXTERNAL lines have no inventory effect, even overselling.
	require.Equal(t, int64(5), server.InventoryQuantity(ext.ID))

	histories, err := client.InventoryHistory(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, histories, 1)
	require.Equal(t, int64(-30), histories[0].Quantity)
	require.Equal(t, int64(70), histories[0].FinalQuantity)
	require.Equal(t, order.ID, histories[0].ReferenceID)
}

func TestOrderCreateStaleVersionIsAllOrNothing(t *testing.T) {
	server := apitest.NewServer()
	p1 := server.AddProduct("Rice paper", 12, 1000, 100)
	p2 := server.AddProduct("Fish sauce", 24, 15000, 50)
	cust := server.AddCustomer("Chi Hoa", "0938", "45 LL")
	client := newClient(t, server)
	ctx := context.Background()

	// Second line's version goes stale before submission.
	server.RotateVersion(p2.ID)

	_, err := client.CreateOrder(ctx, api.CreateOrderRequest{
		CustomerID:     cust.ID,
		OrderDate:      "2026-08-30T00:00:00Z",
		DeliveryStatus: "PENDING",
		OrderItems: []api.OrderItemRequest{
			{ProductID: p1.ID, Quantity: 10, SellingPrice: 2000, Version: p1.Inventory.Version, ExportFrom: "INVENTORY"},
			{ProductID: p2.ID, Quantity: 10, SellingPrice: 20000, Version: p2.Inventory.Version, ExportFrom: "INVENTORY"},
		},
	}, "")
	require.ErrorIs(t, err, api.ErrVersionConflict)
	// Neither line may touch stock.
	require.Equal(t, int64(100), server.InventoryQuantity(p1.ID))
	require.Equal(t, int64(50), server.InventoryQuantity(p2.ID))
}

func TestOrderCreateIdempotencyKeyDropsDoubleFire(t *testing.T) {
	server := apitest.NewServer()
	p := server.AddProduct("Rice paper", 12, 1000, 100)
	cust := server.AddCustomer("Quan An Ngon", "0903", "12 PCT")
	client := newClient(t, server)
	ctx := context.Background()

	req := api.CreateOrderRequest{
		CustomerID:     cust.ID,
		OrderDate:      "2026-08-30T00:00:00Z",
		DeliveryStatus: "PENDING",
		OrderItems: []api.OrderItemRequest{
			{ProductID: p.ID, Quantity: 10, SellingPrice: 2000, Version: p.Inventory.Version, ExportFrom: "INVENTORY"},
		},
	}
	first, err := client.CreateOrder(ctx, req, "same-key")
	require.NoError(t, err)
	second, err := client.CreateOrder(ctx, req, "same-key")
	require.NoError(t, err)
	require.Equal(t, first.ID, second.ID)
	// Stock moved once, not twice.
	require.Equal(t, int64(90), server.InventoryQuantity(p.ID))
}

func TestOrderDeleteRestoresStock(t *testing.T) {
	server := apitest.NewServer()
	p := server.AddProduct("Rice paper", 12, 1000, 100)
	cust := server.AddCustomer("Quan An Ngon", "0903", "12 PCT")
	client := newClient(t, server)
	ctx := context.Background()

	order, err := client.CreateOrder(ctx, api.CreateOrderRequest{
		CustomerID:     cust.ID,
		OrderDate:      "2026-08-30T00:00:00Z",
		DeliveryStatus: "PENDING",
		OrderItems: []api.OrderItemRequest{
			{ProductID: p.ID, Quantity: 30, SellingPrice: 2000, Version: p.Inventory.Version, ExportFrom: "INVENTORY"},
		},
	}, "")
	require.NoError(t, err)
	require.Equal(t, int64(70), server.InventoryQuantity(p.ID))

	versionBefore := server.InventoryVersion(p.ID)
	require.NoError(t, client.DeleteOrder(ctx, order.ID))
	require.Equal(t, int64(100), server.InventoryQuantity(p.ID))
	require.NotEqual(t, versionBefore, server.InventoryVersion(p.ID))
}

func TestOrderProfitComputedAgainstCurrentCost(t *testing.T) {
	server := apitest.NewServer()
	p := server.AddProduct("Rice paper", 12, 1000, 100)
	cust := server.AddCustomer("Quan An Ngon", "0903", "12 PCT")
	client := newClient(t, server)
	ctx := context.Background()

	order, err := client.CreateOrder(ctx, api.CreateOrderRequest{
		CustomerID:     cust.ID,
		OrderDate:      "2026-08-30T00:00:00Z",
		DeliveryStatus: "PENDING",
		OrderItems: []api.OrderItemRequest{
			{ProductID: p.ID, Quantity: 50, SellingPrice: 1500, Version: p.Inventory.Version, ExportFrom: "INVENTORY"},
		},
	}, "")
	require.NoError(t, err)
	require.NotNil(t, order.TotalProfitLoss)
	require.InDelta(t, 25000.0, *order.TotalProfitLoss, 0.0001)
	require.InDelta(t, 50.0, *order.TotalProfitLossPct, 0.0001)

	// Raising the product cost changes historical profit: the model
	// uses the live cost, not a snapshot from order time.
	_, err = client.UpdateProduct(ctx, api.UpdateProductRequest{ID: p.ID, Name: p.Name, Spec: p.Spec, OriginalPrice: 1500})
	require.NoError(t, err)
	fetched, err := client.GetOrder(ctx, order.ID)
	require.NoError(t, err)
	require.InDelta(t, 0.0, *fetched.TotalProfitLoss, 0.0001)
}
