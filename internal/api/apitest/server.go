// Package apitest is an in-memory double of the order-management
// backend, faithful to its response envelopes and to the inventory
// version guard: every successful mutation rotates the version, a
// stale version rejects the whole request and changes nothing. It
// backs the client protocol tests and the local dev server.
package apitest

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/tiemhang/tiemhang/internal/api"
	"github.com/tiemhang/tiemhang/internal/pricing"
)

// Server holds the in-memory state behind the HTTP handler. All
// access is serialized; the double favors obviousness over
// throughput.
type Server struct {
	mu        sync.Mutex
	products  map[int64]api.ProductResponse
	invs      map[int64]api.InventoryResponse
	customers map[int64]api.CustomerResponse
	orders    map[int64]api.OrderResponse
	histories map[int64][]api.InventoryHistoryResponse
	seenKeys  map[string]int64
	nextID    int64
	router    *chi.Mux
}

// NewServer builds an empty backend double.
func NewServer() *Server {
	s := &Server{
		products:  make(map[int64]api.ProductResponse),
		invs:      make(map[int64]api.InventoryResponse),
		customers: make(map[int64]api.CustomerResponse),
		orders:    make(map[int64]api.OrderResponse),
		histories: make(map[int64][]api.InventoryHistoryResponse),
		seenKeys:  make(map[string]int64),
	}
	r := chi.NewRouter()
	r.Post("/auth/login", s.handleLogin)
	r.Route("/products", func(r chi.Router) {
		r.Get("/", s.handleListProducts)
		r.Post("/", s.handleCreateProduct)
		r.Put("/", s.handleUpdateProduct)
		r.Get("/{id}", s.handleGetProduct)
		r.Get("/{id}/inventories", s.handleGetInventory)
		r.Put("/{id}/inventories/quantity", s.handleUpdateQuantity)
		r.Get("/{id}/inventories/histories", s.handleHistories)
	})
	r.Get("/inventory", s.handleListInventories)
	r.Route("/customers", func(r chi.Router) {
		r.Get("/", s.handleListCustomers)
		r.Post("/", s.handleCreateCustomer)
		r.Get("/{id}", s.handleGetCustomer)
		r.Put("/{id}", s.handleUpdateCustomer)
	})
	r.Route("/orders", func(r chi.Router) {
		r.Get("/", s.handleListOrders)
		r.Post("/", s.handleCreateOrder)
		r.Get("/{id}", s.handleGetOrder)
		r.Put("/{id}", s.handleUpdateOrder)
		r.Delete("/{id}", s.handleDeleteOrder)
	})
	// No /statistics/dashboard on purpose: the double plays an older
	// backend revision so the client-side fallback stays exercised.
	s.router = r
	return s
}

// Handler returns the HTTP handler for httptest or a dev listener.
func (s *Server) Handler() http.Handler {
	return s.router
}

// AddProduct seeds a product with stock and returns it with the
// freshly minted inventory version.
func (s *Server) AddProduct(name string, spec, originalPrice, quantity int64) api.ProductResponse {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	id := s.nextID
	p := api.ProductResponse{ID: id, Name: name, Spec: spec, OriginalPrice: originalPrice}
	s.products[id] = p
	s.nextID++
	s.invs[id] = api.InventoryResponse{ID: s.nextID, ProductID: id, Quantity: quantity, Version: uuid.NewString()}
	return s.withInventory(p)
}

// AddCustomer seeds a customer.
func (s *Server) AddCustomer(name, phone, address string) api.CustomerResponse {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	c := api.CustomerResponse{ID: s.nextID, Name: name, Phone: phone, Address: address}
	s.customers[c.ID] = c
	return c
}

// InventoryVersion returns the current version stamp for a product.
func (s *Server) InventoryVersion(productID int64) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.invs[productID].Version
}

// InventoryQuantity returns the current on-hand quantity.
func (s *Server) InventoryQuantity(productID int64) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.invs[productID].Quantity
}

// RotateVersion forces a version change, simulating another writer
// moving the record forward between a client's read and write.
func (s *Server) RotateVersion(productID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	inv := s.invs[productID]
	inv.Version = uuid.NewString()
	s.invs[productID] = inv
}

func (s *Server) withInventory(p api.ProductResponse) api.ProductResponse {
	if inv, ok := s.invs[p.ID]; ok {
		p.Inventory = &api.InventoryInfo{Quantity: inv.Quantity, Version: inv.Version}
	}
	return p
}

func (s *Server) addHistory(productID, delta, final int64, importer, note string, refID int64) {
	s.nextID++
	s.histories[productID] = append(s.histories[productID], api.InventoryHistoryResponse{
		ID:            s.nextID,
		ProductID:     productID,
		Quantity:      delta,
		FinalQuantity: final,
		ImporterName:  importer,
		ImportedAt:    time.Now().UTC().Format(time.RFC3339),
		Note:          note,
		ReferenceID:   refID,
	})
}

// decorateOrder fills the derived money fields the backend computes,
// using the product's current cost for profit/loss.
func (s *Server) decorateOrder(o api.OrderResponse) api.OrderResponse {
	var total, totalProfit, totalCost float64
	for i := range o.OrderItems {
		it := &o.OrderItems[i]
		p := s.products[it.ProductID]
		a := pricing.CalculateLineAmounts(it.Quantity, it.SellingPrice, it.Discount, p.OriginalPrice)
		amount := a.FinalAmount
		profit := a.ProfitLoss
		pct := a.ProfitLossPercent
		op := p.OriginalPrice
		it.ProductName = p.Name
		it.FinalAmount = &amount
		it.OriginalPrice = &op
		it.ProfitLoss = &profit
		it.ProfitLossPercent = &pct
		total += amount
		totalProfit += profit
		totalCost += a.OriginalCost
	}
	o.TotalAmount = total
	tp := totalProfit + float64(o.AdditionalCost)
	o.TotalProfitLoss = &tp
	var tpp float64
	if totalCost > 0 {
		tpp = tp / totalCost * 100
	}
	o.TotalProfitLossPct = &tpp
	return o
}

func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	return id, err == nil && id > 0
}
