package apitest

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/tiemhang/tiemhang/internal/api"
	"github.com/tiemhang/tiemhang/internal/reconcile"
)

func (s *Server) handleListOrders(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]api.OrderResponse, 0, len(s.orders))
	for _, o := range s.orders {
		out = append(out, s.decorateOrder(o))
	}
	respond(w, http.StatusOK, map[string]any{"orders": out})
}

func (s *Server) handleGetOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	o, found := s.orders[id]
	if !ok || !found {
		respondMessage(w, http.StatusNotFound, "order not found")
		return
	}
	respond(w, http.StatusOK, map[string]any{"order": s.decorateOrder(o)})
}

// handleCreateOrder applies the whole order or none of it: every
// INVENTORY line's version is checked before any stock moves, so a
// single stale line rejects the request without touching quantities.
func (s *Server) handleCreateOrder(w http.ResponseWriter, r *http.Request) {
	var req api.CreateOrderRequest
	if !decode(w, r, &req) {
		return
	}
	key := r.Header.Get("Idempotency-Key")

	s.mu.Lock()
	defer s.mu.Unlock()

	if key != "" {
		if orderID, seen := s.seenKeys[key]; seen {
			respond(w, http.StatusOK, map[string]any{"order": s.decorateOrder(s.orders[orderID])})
			return
		}
	}

	customer, found := s.customers[req.CustomerID]
	if !found {
		respondFieldError(w, http.StatusBadRequest, "INVALID", "customer_id", "customer does not exist")
		return
	}
	if len(req.OrderItems) == 0 {
		respondFieldError(w, http.StatusBadRequest, "REQUIRED", "order_items", "order must contain at least one item")
		return
	}
	seen := make(map[string]struct{})
	for i, it := range req.OrderItems {
		if _, ok := s.products[it.ProductID]; !ok {
			respondFieldError(w, http.StatusBadRequest, "INVALID", "product_id", fmt.Sprintf("unknown product on line %d", i+1))
			return
		}
		if it.Quantity <= 0 {
			respondFieldError(w, http.StatusBadRequest, "INVALID", "quantity", fmt.Sprintf("quantity must be positive on line %d", i+1))
			return
		}
		src := reconcile.Source(it.ExportFrom)
		if !src.Valid() {
			respondFieldError(w, http.StatusBadRequest, "REQUIRED", "export_from", fmt.Sprintf("export_from is required on line %d", i+1))
			return
		}
		pairKey := fmt.Sprintf("%d/%s", it.ProductID, it.ExportFrom)
		if _, dup := seen[pairKey]; dup {
			respondFieldError(w, http.StatusBadRequest, "DUPLICATE", "export_from", fmt.Sprintf("product %d appears twice from %s", it.ProductID, it.ExportFrom))
			return
		}
		seen[pairKey] = struct{}{}
	}

	// Version guard first, over all INVENTORY lines.
	for _, it := range req.OrderItems {
		if reconcile.Source(it.ExportFrom) != reconcile.SourceInventory {
			continue
		}
		if inv := s.invs[it.ProductID]; it.Version != inv.Version {
			respondFieldError(w, http.StatusConflict, "VERSION_CONFLICT", "version",
				fmt.Sprintf("inventory for product %d was changed by another user, refresh and try again", it.ProductID))
			return
		}
	}

	s.nextID++
	order := api.OrderResponse{
		ID:                 s.nextID,
		OrderDate:          req.OrderDate,
		DeliveryStatus:     req.DeliveryStatus,
		DebtStatus:         req.DebtStatus,
		AdditionalCost:     req.AdditionalCost,
		AdditionalCostNote: req.AdditionalCostNote,
		Customer:           customer,
	}
	for _, it := range req.OrderItems {
		s.nextID++
		order.OrderItems = append(order.OrderItems, api.OrderItemResponse{
			ID:            s.nextID,
			OrderID:       order.ID,
			ProductID:     it.ProductID,
			NumberOfBoxes: it.NumberOfBoxes,
			Spec:          it.Spec,
			Quantity:      it.Quantity,
			SellingPrice:  it.SellingPrice,
			Discount:      it.Discount,
			ExportFrom:    it.ExportFrom,
		})
		if reconcile.Source(it.ExportFrom) == reconcile.SourceInventory {
			inv := s.invs[it.ProductID]
			inv.Quantity -= it.Quantity
			inv.Version = uuid.NewString()
			s.invs[it.ProductID] = inv
			s.addHistory(it.ProductID, -it.Quantity, inv.Quantity, "order", fmt.Sprintf("order #%d", order.ID), order.ID)
		}
	}
	s.orders[order.ID] = order
	if key != "" {
		s.seenKeys[key] = order.ID
	}
	respond(w, http.StatusCreated, map[string]any{"order": s.decorateOrder(order)})
}

func (s *Server) handleUpdateOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	var req api.UpdateOrderRequest
	if !decode(w, r, &req) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	o, found := s.orders[id]
	if !ok || !found {
		respondMessage(w, http.StatusNotFound, "order not found")
		return
	}
	if req.CustomerID != nil {
		c, exists := s.customers[*req.CustomerID]
		if !exists {
			respondFieldError(w, http.StatusBadRequest, "INVALID", "customer_id", "customer does not exist")
			return
		}
		o.Customer = c
	}
	if req.OrderDate != nil {
		o.OrderDate = *req.OrderDate
	}
	if req.DeliveryStatus != nil {
		o.DeliveryStatus = *req.DeliveryStatus
	}
	if req.DebtStatus != nil {
		o.DebtStatus = *req.DebtStatus
	}
	if req.AdditionalCost != nil {
		o.AdditionalCost = *req.AdditionalCost
	}
	if req.AdditionalCostNote != nil {
		o.AdditionalCostNote = *req.AdditionalCostNote
	}
	s.orders[id] = o
	respond(w, http.StatusOK, map[string]any{"order": s.decorateOrder(o)})
}

// handleDeleteOrder removes the order as a unit and restores stock for
// its INVENTORY-sourced lines, rotating each touched version.
func (s *Server) handleDeleteOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	o, found := s.orders[id]
	if !ok || !found {
		respondMessage(w, http.StatusNotFound, "order not found")
		return
	}
	for _, it := range o.OrderItems {
		if reconcile.Source(it.ExportFrom) != reconcile.SourceInventory {
			continue
		}
		inv := s.invs[it.ProductID]
		inv.Quantity += it.Quantity
		inv.Version = uuid.NewString()
		s.invs[it.ProductID] = inv
		s.addHistory(it.ProductID, it.Quantity, inv.Quantity, "order", fmt.Sprintf("order #%d deleted", id), id)
	}
	delete(s.orders, id)
	respond(w, http.StatusOK, map[string]any{"deleted": true})
}
