package apitest

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/tiemhang/tiemhang/internal/api"
)

type successEnvelope struct {
	Success bool `json:"success"`
	Data    any  `json:"data"`
}

type failureEnvelope struct {
	Success bool             `json:"success"`
	Message string           `json:"message,omitempty"`
	Errors  []api.FieldError `json:"errors,omitempty"`
}

func respond(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(successEnvelope{Success: true, Data: data})
}

func respondFieldError(w http.ResponseWriter, status int, code, field, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(failureEnvelope{
		Success: false,
		Errors:  []api.FieldError{{Code: code, Field: field, Message: message}},
	})
}

func respondMessage(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(failureEnvelope{Success: false, Message: message})
}

func decode(w http.ResponseWriter, r *http.Request, target any) bool {
	if err := json.NewDecoder(r.Body).Decode(target); err != nil {
		respondMessage(w, http.StatusBadRequest, "malformed request body")
		return false
	}
	return true
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req api.LoginRequest
	if !decode(w, r, &req) {
		return
	}
	if req.Username == "" || req.Password == "" {
		respondFieldError(w, http.StatusUnauthorized, "INVALID_CREDENTIALS", "username", "invalid username or password")
		return
	}
	respond(w, http.StatusOK, api.LoginResponse{Token: uuid.NewString(), Username: req.Username})
}

func (s *Server) handleListProducts(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]api.ProductResponse, 0, len(s.products))
	for _, p := range s.products {
		out = append(out, s.withInventory(p))
	}
	respond(w, http.StatusOK, map[string]any{"products": out})
}

func (s *Server) handleGetProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	p, found := s.products[id]
	if !ok || !found {
		respondMessage(w, http.StatusNotFound, "product not found")
		return
	}
	respond(w, http.StatusOK, map[string]any{"product": s.withInventory(p)})
}

func (s *Server) handleCreateProduct(w http.ResponseWriter, r *http.Request) {
	var req api.CreateProductRequest
	if !decode(w, r, &req) {
		return
	}
	if req.Name == "" {
		respondFieldError(w, http.StatusBadRequest, "REQUIRED", "name", "product name is required")
		return
	}
	if req.Spec <= 0 {
		respondFieldError(w, http.StatusBadRequest, "INVALID", "spec", "spec must be a positive integer")
		return
	}
	if req.OriginalPrice < 0 {
		respondFieldError(w, http.StatusBadRequest, "INVALID", "original_price", "original price must not be negative")
		return
	}
	p := s.AddProduct(req.Name, req.Spec, req.OriginalPrice, 0)
	respond(w, http.StatusCreated, p)
}

func (s *Server) handleUpdateProduct(w http.ResponseWriter, r *http.Request) {
	var req api.UpdateProductRequest
	if !decode(w, r, &req) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	p, found := s.products[req.ID]
	if !found {
		respondMessage(w, http.StatusNotFound, "product not found")
		return
	}
	p.Name = req.Name
	p.Spec = req.Spec
	p.OriginalPrice = req.OriginalPrice
	s.products[req.ID] = p
	respond(w, http.StatusOK, s.withInventory(p))
}

func (s *Server) handleGetInventory(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	inv, found := s.invs[id]
	if !ok || !found {
		respondMessage(w, http.StatusNotFound, "inventory not found")
		return
	}
	respond(w, http.StatusOK, inv)
}

func (s *Server) handleListInventories(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]api.InventoryWithProductResponse, 0, len(s.invs))
	for pid, inv := range s.invs {
		p := s.products[pid]
		out = append(out, api.InventoryWithProductResponse{
			ID:        inv.ID,
			ProductID: pid,
			Quantity:  inv.Quantity,
			Version:   inv.Version,
			Product:   api.ProductInfo{ID: p.ID, Name: p.Name, Spec: p.Spec, OriginalPrice: p.OriginalPrice},
		})
	}
	respond(w, http.StatusOK, map[string]any{"inventories": out})
}

// handleUpdateQuantity is the version guard for direct adjustments: a
// stale version rejects the write and leaves quantity untouched; a
// current one applies the new quantity and rotates the version.
func (s *Server) handleUpdateQuantity(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	var req api.UpdateInventoryQuantityRequest
	if !decode(w, r, &req) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	inv, found := s.invs[id]
	if !ok || !found {
		respondMessage(w, http.StatusNotFound, "inventory not found")
		return
	}
	if req.Version != inv.Version {
		respondFieldError(w, http.StatusConflict, "VERSION_CONFLICT", "version",
			"inventory was changed by another user, refresh and try again")
		return
	}
	delta := req.Quantity - inv.Quantity
	inv.Quantity = req.Quantity
	inv.Version = uuid.NewString()
	s.invs[id] = inv
	s.addHistory(id, delta, inv.Quantity, "manual", req.Note, 0)
	respond(w, http.StatusOK, inv)
}

func (s *Server) handleHistories(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	if !ok {
		respondMessage(w, http.StatusNotFound, "inventory not found")
		return
	}
	entries := s.histories[id]
	out := make([]api.InventoryHistoryResponse, len(entries))
	copy(out, entries)
	respond(w, http.StatusOK, map[string]any{"inventory_histories": out})
}

func (s *Server) handleListCustomers(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]api.CustomerResponse, 0, len(s.customers))
	for _, c := range s.customers {
		out = append(out, c)
	}
	respond(w, http.StatusOK, map[string]any{"customers": out})
}

func (s *Server) handleGetCustomer(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	c, found := s.customers[id]
	if !ok || !found {
		respondMessage(w, http.StatusNotFound, "customer not found")
		return
	}
	respond(w, http.StatusOK, map[string]any{"customer": c})
}

func (s *Server) handleCreateCustomer(w http.ResponseWriter, r *http.Request) {
	var req api.CreateCustomerRequest
	if !decode(w, r, &req) {
		return
	}
	if req.Name == "" {
		respondFieldError(w, http.StatusBadRequest, "REQUIRED", "name", "customer name is required")
		return
	}
	c := s.AddCustomer(req.Name, req.Phone, req.Address)
	respond(w, http.StatusCreated, c)
}

func (s *Server) handleUpdateCustomer(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	var req api.UpdateCustomerRequest
	if !decode(w, r, &req) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	c, found := s.customers[id]
	if !ok || !found {
		respondMessage(w, http.StatusNotFound, "customer not found")
		return
	}
	if req.Name != nil {
		c.Name = *req.Name
	}
	if req.Phone != nil {
		c.Phone = *req.Phone
	}
	if req.Address != nil {
		c.Address = *req.Address
	}
	s.customers[id] = c
	respond(w, http.StatusOK, c)
}
