package orders

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tiemhang/tiemhang/internal/api"
	"github.com/tiemhang/tiemhang/internal/draft"
	"github.com/tiemhang/tiemhang/internal/reconcile"
)

// memoryBackend is an in-memory Backend fake.
type memoryBackend struct {
	products    []api.ProductResponse
	inventories map[int64]api.InventoryResponse

	listErr      error
	inventoryErr error
	createErr    error

	createdReq api.CreateOrderRequest
	createdKey string
	createQty  int
}

func (m *memoryBackend) ListProducts(ctx context.Context) ([]api.ProductResponse, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.products, nil
}

func (m *memoryBackend) ProductInventory(ctx context.Context, productID int64) (api.InventoryResponse, error) {
	if m.inventoryErr != nil {
		return api.InventoryResponse{}, m.inventoryErr
	}
	inv, ok := m.inventories[productID]
	if !ok {
		return api.InventoryResponse{}, &api.Error{StatusCode: 404, Message: "inventory not found"}
	}
	return inv, nil
}

func (m *memoryBackend) CreateOrder(ctx context.Context, req api.CreateOrderRequest, idempotencyKey string) (api.OrderResponse, error) {
	m.createQty++
	m.createdReq = req
	m.createdKey = idempotencyKey
	if m.createErr != nil {
		return api.OrderResponse{}, m.createErr
	}
	return api.OrderResponse{ID: 99, OrderDate: req.OrderDate}, nil
}

func newBackend() *memoryBackend {
	return &memoryBackend{
		products: []api.ProductResponse{
			{ID: 1, Name: "Rice paper", Spec: 12, OriginalPrice: 1000},
			{ID: 2, Name: "Fish sauce", Spec: 24, OriginalPrice: 15000},
		},
		inventories: map[int64]api.InventoryResponse{
			1: {ID: 10, ProductID: 1, Quantity: 100, Version: "v-rice-2"},
			2: {ID: 20, ProductID: 2, Quantity: 40, Version: "v-sauce-5"},
		},
	}
}

func validDraft() *draft.Order {
	return &draft.Order{
		CustomerID:     7,
		OrderDate:      "2026-08-30",
		DeliveryStatus: "PENDING",
		Items: []draft.Line{
			{ProductID: 1, Quantity: 30, SellingPrice: 2000, Version: "v-rice-1", ExportFrom: reconcile.SourceInventory},
			{ProductID: 2, Quantity: 5, SellingPrice: 20000, ExportFrom: reconcile.SourceExternal},
		},
	}
}

func TestValidate(t *testing.T) {
	svc := NewService(newBackend(), nil)

	cases := []struct {
		name    string
		mutate  func(*draft.Order)
		line    int
		field   string
		message string
	}{
		{
			name:    "missing customer",
			mutate:  func(d *draft.Order) { d.CustomerID = 0 },
			field:   "customer_id",
			message: "select a customer",
		},
		{
			name:    "no items",
			mutate:  func(d *draft.Order) { d.Items = nil },
			field:   "order_items",
			message: "add at least one order item",
		},
		{
			name:    "missing product",
			mutate:  func(d *draft.Order) { d.Items[1].ProductID = 0 },
			line:    2,
			field:   "ProductID",
			message: "select a product for line 2",
		},
		{
			name:    "zero quantity",
			mutate:  func(d *draft.Order) { d.Items[0].Quantity = 0 },
			line:    1,
			field:   "Quantity",
			message: "quantity must be greater than 0 on line 1",
		},
		{
			name:    "zero price",
			mutate:  func(d *draft.Order) { d.Items[0].SellingPrice = 0 },
			line:    1,
			field:   "SellingPrice",
			message: "selling price must be greater than 0 on line 1",
		},
		{
			name:   "discount over 100",
			mutate: func(d *draft.Order) { d.Items[0].Discount = 101 },
			line:   1,
			field:  "Discount",
		},
		{
			name:   "missing source",
			mutate: func(d *draft.Order) { d.Items[0].ExportFrom = "" },
			line:   1,
			field:  "ExportFrom",
		},
		{
			name:   "bogus source",
			mutate: func(d *draft.Order) { d.Items[0].ExportFrom = "WAREHOUSE_9" },
			line:   1,
			field:  "ExportFrom",
		},
		{
			name: "duplicate product and source",
			mutate: func(d *draft.Order) {
				d.Items[1] = d.Items[0]
			},
			field: "export_from",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d := validDraft()
			tc.mutate(d)
			err := svc.Validate(d)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			require.Equal(t, tc.line, verr.Line)
			require.Equal(t, tc.field, verr.Field)
			if tc.message != "" {
				require.Equal(t, tc.message, verr.Message)
			}
		})
	}
}

func TestValidateAcceptsCompleteDraft(t *testing.T) {
	svc := NewService(newBackend(), nil)
	require.NoError(t, svc.Validate(validDraft()))
}

func TestValidateAllowsSameProductFromBothSources(t *testing.T) {
	svc := NewService(newBackend(), nil)
	d := validDraft()
	d.Items[1] = d.Items[0]
	d.Items[1].ExportFrom = reconcile.SourceExternal
	require.NoError(t, svc.Validate(d))
}

func TestSubmitRestampsVersionsBeforeSending(t *testing.T) {
	backend := newBackend()
	svc := NewService(backend, nil)
	d := validDraft()

	resp, err := svc.Submit(context.Background(), d)
	require.NoError(t, err)
	require.Equal(t, int64(99), resp.ID)

	req := backend.createdReq
	require.Len(t, req.OrderItems, 2)
	// The stale draft version is replaced by the backend's current one.
	require.Equal(t, "v-rice-2", req.OrderItems[0].Version)
	require.Equal(t, "v-sauce-5", req.OrderItems[1].Version)
	require.NotEmpty(t, backend.createdKey)
}

func TestSubmitNormalizesOrderDate(t *testing.T) {
	backend := newBackend()
	svc := NewService(backend, nil)

	_, err := svc.Submit(context.Background(), validDraft())
	require.NoError(t, err)
	require.Equal(t, "2026-08-30T00:00:00Z", backend.createdReq.OrderDate)
}

func TestSubmitBlockedByValidation(t *testing.T) {
	backend := newBackend()
	svc := NewService(backend, nil)
	d := validDraft()
	d.CustomerID = 0

	_, err := svc.Submit(context.Background(), d)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	// Nothing reaches the network on a validation failure.
	require.Zero(t, backend.createQty)
}

func TestSubmitRejectsBadOrderDate(t *testing.T) {
	backend := newBackend()
	svc := NewService(backend, nil)
	d := validDraft()
	d.OrderDate = "30/08/2026"

	_, err := svc.Submit(context.Background(), d)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Equal(t, "order_date", verr.Field)
	require.Zero(t, backend.createQty)
}

func TestSubmitPropagatesConflict(t *testing.T) {
	backend := newBackend()
	backend.createErr = &api.Error{
		StatusCode: 409,
		Errors:     []api.FieldError{{Code: "VERSION_CONFLICT", Field: "version", Message: "refresh and try again"}},
	}
	svc := NewService(backend, nil)

	_, err := svc.Submit(context.Background(), validDraft())
	require.ErrorIs(t, err, api.ErrVersionConflict)
	// One attempt only; a conflict is never retried automatically.
	require.Equal(t, 1, backend.createQty)
}

func TestLoadCatalog(t *testing.T) {
	backend := newBackend()
	cat, err := LoadCatalog(context.Background(), backend)
	require.NoError(t, err)

	p, ok := cat.Product(1)
	require.True(t, ok)
	require.Equal(t, int64(12), p.Spec)

	inv, ok := cat.Inventory(2)
	require.True(t, ok)
	require.Equal(t, int64(40), inv.Quantity)
	require.Equal(t, "v-sauce-5", inv.Version)

	_, ok = cat.Product(999)
	require.False(t, ok)

	listed := cat.Products()
	require.Len(t, listed, 2)
	require.Equal(t, int64(1), listed[0].ID)
}

func TestLoadCatalogFailsOnAnyHole(t *testing.T) {
	backend := newBackend()
	backend.inventoryErr = errors.New("backend down")

	_, err := LoadCatalog(context.Background(), backend)
	require.Error(t, err)
	require.Contains(t, err.Error(), "inventory for product")
}

func TestClassify(t *testing.T) {
	require.Equal(t, FailureNone, Classify(nil))
	require.Equal(t, FailureValidation, Classify(&ValidationError{Message: "select a customer"}))
	require.Equal(t, FailureConflict, Classify(&api.Error{StatusCode: 409}))
	require.Equal(t, FailureConflict, Classify(fmt.Errorf("submit: %w", &api.Error{StatusCode: 409})))
	require.Equal(t, FailureNetwork, Classify(errors.New("connection refused")))
	require.Equal(t, FailureNetwork, Classify(&api.Error{StatusCode: 500}))
}
