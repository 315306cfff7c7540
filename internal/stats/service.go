// Package stats assembles the dashboard summary. It prefers the
// backend's statistics endpoint and falls back to deriving the same
// figures from the list endpoints when the endpoint is missing.
package stats

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/tiemhang/tiemhang/internal/api"
)

const inventoryFanout = 8

// Backend is the slice of the API the dashboard needs.
type Backend interface {
	DashboardStats(ctx context.Context) (api.DashboardStats, error)
	ListProducts(ctx context.Context) ([]api.ProductResponse, error)
	ListCustomers(ctx context.Context) ([]api.CustomerResponse, error)
	ListOrders(ctx context.Context) ([]api.OrderResponse, error)
	ProductInventory(ctx context.Context, productID int64) (api.InventoryResponse, error)
}

// Service computes dashboard statistics.
type Service struct {
	backend           Backend
	logger            *slog.Logger
	lowStockThreshold int64
}

// NewService builds a Service. lowStockThreshold is the on-hand
// quantity at or below which a product counts as low stock in the
// fallback computation.
func NewService(backend Backend, lowStockThreshold int64, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{backend: backend, logger: logger, lowStockThreshold: lowStockThreshold}
}

// Dashboard returns the summary block. When the backend lacks the
// statistics endpoint the figures are computed client side with a
// concurrent inventory fan-out.
func (s *Service) Dashboard(ctx context.Context) (api.DashboardStats, error) {
	stats, err := s.backend.DashboardStats(ctx)
	if err == nil {
		return stats, nil
	}
	if !errors.Is(err, api.ErrNotFound) {
		return api.DashboardStats{}, err
	}
	s.logger.Debug("statistics endpoint missing, computing dashboard locally")
	return s.compute(ctx)
}

func (s *Service) compute(ctx context.Context) (api.DashboardStats, error) {
	var (
		products  []api.ProductResponse
		customers []api.CustomerResponse
		orders    []api.OrderResponse
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		products, err = s.backend.ListProducts(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		customers, err = s.backend.ListCustomers(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		orders, err = s.backend.ListOrders(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return api.DashboardStats{}, err
	}

	var totalUnits, lowStock atomic.Int64
	ig, ictx := errgroup.WithContext(ctx)
	ig.SetLimit(inventoryFanout)
	for _, p := range products {
		p := p
		ig.Go(func() error {
			inv, err := s.backend.ProductInventory(ictx, p.ID)
			if err != nil {
				return err
			}
			totalUnits.Add(inv.Quantity)
			if inv.Quantity <= s.lowStockThreshold {
				lowStock.Add(1)
			}
			return nil
		})
	}
	if err := ig.Wait(); err != nil {
		return api.DashboardStats{}, err
	}

	var pending int64
	for _, o := range orders {
		if o.DeliveryStatus == "PENDING" {
			pending++
		}
	}
	return api.DashboardStats{
		TotalProducts:       int64(len(products)),
		TotalCustomers:      int64(len(customers)),
		TotalInventoryItems: totalUnits.Load(),
		LowStockProducts:    lowStock.Load(),
		TotalOrders:         int64(len(orders)),
		PendingOrders:       pending,
	}, nil
}
