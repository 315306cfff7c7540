// Package orders turns a finished draft into one atomic create-order
// request: local validation first, then a fresh inventory version
// stamp for every line, then a single submission carrying an
// idempotency key. Nothing is sent when validation fails.
package orders

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/tiemhang/tiemhang/internal/api"
	"github.com/tiemhang/tiemhang/internal/draft"
	"github.com/tiemhang/tiemhang/internal/reconcile"
)

// Backend is the slice of the API the submission service needs.
type Backend interface {
	CatalogBackend
	CreateOrder(ctx context.Context, req api.CreateOrderRequest, idempotencyKey string) (api.OrderResponse, error)
}

// Service validates and submits order drafts.
type Service struct {
	backend  Backend
	validate *validator.Validate
	logger   *slog.Logger
}

// NewService builds a Service.
func NewService(backend Backend, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		backend:  backend,
		validate: validator.New(),
		logger:   logger,
	}
}

// ValidationError is a pre-network rejection of the draft. Line is
// 1-based; zero means the order level.
type ValidationError struct {
	Line    int
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

type lineSubmission struct {
	ProductID    int64  `validate:"required,gt=0"`
	Quantity     int64  `validate:"required,gt=0"`
	SellingPrice int64  `validate:"required,gt=0"`
	Discount     int64  `validate:"gte=0,lte=100"`
	ExportFrom   string `validate:"required,oneof=INVENTORY EXTERNAL"`
}

var lineFieldMessages = map[string]string{
	"ProductID":    "select a product for line %d",
	"Quantity":     "quantity must be greater than 0 on line %d",
	"SellingPrice": "selling price must be greater than 0 on line %d",
	"Discount":     "discount must be between 0 and 100 on line %d",
	"ExportFrom":   "select a supply source (INVENTORY or EXTERNAL) for line %d",
}

// Validate checks the draft without touching the network. The first
// violation is returned; submission is blocked until it is fixed.
func (s *Service) Validate(d *draft.Order) error {
	if d.CustomerID == 0 {
		return &ValidationError{Field: "customer_id", Message: "select a customer"}
	}
	if len(d.Items) == 0 {
		return &ValidationError{Field: "order_items", Message: "add at least one order item"}
	}
	for i, l := range d.Items {
		sub := lineSubmission{
			ProductID:    l.ProductID,
			Quantity:     l.Quantity,
			SellingPrice: l.SellingPrice,
			Discount:     l.Discount,
			ExportFrom:   string(l.ExportFrom),
		}
		if err := s.validate.Struct(sub); err != nil {
			var verrs validator.ValidationErrors
			if errors.As(err, &verrs) && len(verrs) > 0 {
				field := verrs[0].StructField()
				msg, ok := lineFieldMessages[field]
				if !ok {
					msg = "invalid value on line %d"
				}
				return &ValidationError{Line: i + 1, Field: field, Message: fmt.Sprintf(msg, i+1)}
			}
			return err
		}
	}
	lines := make([]reconcile.Line, len(d.Items))
	for i, l := range d.Items {
		lines[i] = reconcile.Line{ProductID: l.ProductID, Quantity: l.Quantity, Source: l.ExportFrom}
	}
	if err := reconcile.ValidateUnique(lines); err != nil {
		return &ValidationError{Field: "export_from", Message: err.Error()}
	}
	return nil
}

// Submit validates the draft, re-reads every inventory version, and
// sends the order as one request. A stale version on any INVENTORY
// line rejects the whole order with api.ErrVersionConflict; the
// service never retries, the user refreshes and resubmits.
func (s *Service) Submit(ctx context.Context, d *draft.Order) (api.OrderResponse, error) {
	if err := s.Validate(d); err != nil {
		return api.OrderResponse{}, err
	}

	cat, err := LoadCatalog(ctx, s.backend)
	if err != nil {
		return api.OrderResponse{}, err
	}
	d.RefreshVersions(cat)

	req, err := BuildRequest(d)
	if err != nil {
		return api.OrderResponse{}, err
	}

	key := uuid.NewString()
	resp, err := s.backend.CreateOrder(ctx, req, key)
	if err != nil {
		s.logger.Warn("order submission failed",
			slog.String("idempotency_key", key),
			slog.Any("error", err))
		return api.OrderResponse{}, err
	}
	s.logger.Info("order created",
		slog.Int64("order_id", resp.ID),
		slog.Int("items", len(resp.OrderItems)))
	return resp, nil
}

// BuildRequest maps a draft onto the wire request. The order date is
// normalized to RFC3339 at midnight UTC, matching what the backend
// stores.
func BuildRequest(d *draft.Order) (api.CreateOrderRequest, error) {
	day, err := time.Parse("2006-01-02", d.OrderDate)
	if err != nil {
		return api.CreateOrderRequest{}, &ValidationError{Field: "order_date", Message: fmt.Sprintf("invalid order date %q", d.OrderDate)}
	}
	req := api.CreateOrderRequest{
		CustomerID:         d.CustomerID,
		OrderDate:          day.UTC().Format(time.RFC3339),
		DeliveryStatus:     d.DeliveryStatus,
		DebtStatus:         d.DebtStatus,
		AdditionalCost:     d.AdditionalCost,
		AdditionalCostNote: d.AdditionalCostNote,
		OrderItems:         make([]api.OrderItemRequest, len(d.Items)),
	}
	for i, l := range d.Items {
		amount := l.FinalAmount
		req.OrderItems[i] = api.OrderItemRequest{
			ProductID:     l.ProductID,
			NumberOfBoxes: l.NumberOfBoxes,
			Spec:          l.Spec,
			Quantity:      l.Quantity,
			SellingPrice:  l.SellingPrice,
			Discount:      l.Discount,
			FinalAmount:   &amount,
			Version:       l.Version,
			ExportFrom:    string(l.ExportFrom),
		}
	}
	return req, nil
}

// FailureKind classifies a submission failure for the caller. The
// conflict path is deliberately distinct: it requires a manual refresh
// and resubmit, never an automatic retry.
type FailureKind int

const (
	FailureNone FailureKind = iota
	FailureValidation
	FailureConflict
	FailureNetwork
)

// Classify maps an error from Submit onto its failure kind.
func Classify(err error) FailureKind {
	if err == nil {
		return FailureNone
	}
	var verr *ValidationError
	if errors.As(err, &verr) {
		return FailureValidation
	}
	if errors.Is(err, api.ErrVersionConflict) {
		return FailureConflict
	}
	return FailureNetwork
}
