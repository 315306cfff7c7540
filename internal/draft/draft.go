// Package draft models an in-progress create-order form: the line
// field-edit rules (boxes×spec versus direct quantity entry), derived
// amounts, inventory version stamping, and persistence of the draft
// across sessions.
package draft

import (
	"errors"
	"time"

	"github.com/tiemhang/tiemhang/internal/pricing"
	"github.com/tiemhang/tiemhang/internal/reconcile"
)

// ErrNoSuchLine is returned for an out-of-range line index.
var ErrNoSuchLine = errors.New("draft: no such line")

// ProductInfo is the product data a draft needs for derivation.
type ProductInfo struct {
	ID            int64
	Name          string
	Spec          int64
	OriginalPrice int64
}

// InventoryInfo is the last-read stock snapshot for a product.
type InventoryInfo struct {
	Quantity int64
	Version  string
}

// Snapshot supplies product and inventory data from the last fetch.
// The draft never treats it as authoritative beyond the form session;
// RefreshVersions re-stamps every line after a re-read.
type Snapshot interface {
	Product(id int64) (ProductInfo, bool)
	Inventory(productID int64) (InventoryInfo, bool)
}

// Line is one order line under edit. NumberOfBoxes and Spec are nil
// when unset; a zero value is treated the same as unset for deciding
// the input mode.
type Line struct {
	ProductID     int64            `json:"product_id"`
	NumberOfBoxes *int64           `json:"number_of_boxes,omitempty"`
	Spec          *int64           `json:"spec,omitempty"`
	Quantity      int64            `json:"quantity"`
	SellingPrice  int64            `json:"selling_price"`
	Discount      int64            `json:"discount"`
	FinalAmount   float64          `json:"final_amount"`
	Version       string           `json:"version"`
	ExportFrom    reconcile.Source `json:"export_from"`
}

// Order is the draft form state. It is persisted verbatim, so field
// names match the stored JSON.
type Order struct {
	CustomerID         int64  `json:"customer_id"`
	OrderDate          string `json:"order_date"`
	DeliveryStatus     string `json:"delivery_status"`
	DebtStatus         string `json:"debt_status"`
	AdditionalCost     int64  `json:"additional_cost"`
	AdditionalCostNote string `json:"additional_cost_note"`
	Items              []Line `json:"order_items"`
}

// New returns an empty draft dated today with the default status.
func New() *Order {
	return &Order{
		OrderDate:      time.Now().Format("2006-01-02"),
		DeliveryStatus: "PENDING",
		Items:          []Line{},
	}
}

// AddItem appends an empty line and returns its index.
func (o *Order) AddItem() int {
	o.Items = append(o.Items, Line{})
	return len(o.Items) - 1
}

// RemoveItem deletes the line at index i.
func (o *Order) RemoveItem(i int) error {
	if i < 0 || i >= len(o.Items) {
		return ErrNoSuchLine
	}
	o.Items = append(o.Items[:i], o.Items[i+1:]...)
	return nil
}

func (o *Order) line(i int) (*Line, error) {
	if i < 0 || i >= len(o.Items) {
		return nil, ErrNoSuchLine
	}
	return &o.Items[i], nil
}

// SetProduct points the line at a product, resetting every derived
// field and stamping the version from the current inventory snapshot.
func (o *Order) SetProduct(i int, productID int64, snap Snapshot) error {
	l, err := o.line(i)
	if err != nil {
		return err
	}
	version := ""
	if inv, ok := snap.Inventory(productID); ok {
		version = inv.Version
	}
	*l = Line{ProductID: productID, Version: version}
	return nil
}

// SetBoxes sets or clears the box count and re-derives the quantity.
// When the spec is still unset the product's default spec is filled
// in. nil clears the field.
func (o *Order) SetBoxes(i int, boxes *int64, snap Snapshot) error {
	l, err := o.line(i)
	if err != nil {
		return err
	}
	l.NumberOfBoxes = boxes
	var productSpec int64
	if p, ok := snap.Product(l.ProductID); ok {
		productSpec = p.Spec
	}
	l.Quantity, l.Spec = pricing.DeriveQuantityFromBoxes(l.NumberOfBoxes, l.Spec, productSpec, l.Quantity)
	o.recompute(l)
	return nil
}

// SetSpec sets or clears the per-line packaging spec and re-derives
// the quantity. A spec without a box count leaves the quantity at
// zero until the box count arrives; no default is filled in here.
func (o *Order) SetSpec(i int, spec *int64) error {
	l, err := o.line(i)
	if err != nil {
		return err
	}
	l.Spec = spec
	l.Quantity = pricing.DeriveQuantityFromSpec(l.NumberOfBoxes, l.Spec)
	o.recompute(l)
	return nil
}

// SetQuantity enters the quantity directly. Direct entry wins: the box
// count and spec are cleared and stay locked while the quantity is
// positive.
func (o *Order) SetQuantity(i int, quantity int64) error {
	l, err := o.line(i)
	if err != nil {
		return err
	}
	l.Quantity = quantity
	l.NumberOfBoxes = nil
	l.Spec = nil
	o.recompute(l)
	return nil
}

// SetSellingPrice sets the per-unit price and recomputes the amount.
func (o *Order) SetSellingPrice(i int, price int64) error {
	l, err := o.line(i)
	if err != nil {
		return err
	}
	l.SellingPrice = price
	o.recompute(l)
	return nil
}

// SetDiscount sets the discount percentage and recomputes the amount.
func (o *Order) SetDiscount(i int, discount int64) error {
	l, err := o.line(i)
	if err != nil {
		return err
	}
	l.Discount = discount
	o.recompute(l)
	return nil
}

// SetExportFrom selects the line's supply channel.
func (o *Order) SetExportFrom(i int, src reconcile.Source) error {
	l, err := o.line(i)
	if err != nil {
		return err
	}
	l.ExportFrom = src
	return nil
}

// BoxSpecLocked reports whether the boxes and spec inputs are locked
// for the line: a positive quantity with both fields unset means the
// quantity was entered directly, and stays direct until cleared.
func (o *Order) BoxSpecLocked(i int) bool {
	l, err := o.line(i)
	if err != nil {
		return false
	}
	return l.Quantity > 0 && !pricing.HasBoxSpecInput(l.NumberOfBoxes, l.Spec)
}

// RefreshVersions rewrites the version stamp of every line that
// references a product, from a freshly fetched snapshot. Call it after
// a full data refresh and before submission when staleness is likely.
func (o *Order) RefreshVersions(snap Snapshot) {
	for i := range o.Items {
		l := &o.Items[i]
		if l.ProductID == 0 {
			continue
		}
		if inv, ok := snap.Inventory(l.ProductID); ok {
			l.Version = inv.Version
		} else {
			l.Version = ""
		}
	}
}

// Warnings runs the advisory stock check over all lines.
func (o *Order) Warnings(snap Snapshot) []reconcile.Warning {
	var warnings []reconcile.Warning
	for _, l := range o.Items {
		inv, ok := snap.Inventory(l.ProductID)
		if !ok {
			continue
		}
		rl := reconcile.Line{ProductID: l.ProductID, Quantity: l.Quantity, Source: l.ExportFrom}
		if w, raised := reconcile.CheckStock(rl, inv.Quantity); raised {
			warnings = append(warnings, w)
		}
	}
	return warnings
}

// TakenSources lists supply channels already used for a product by
// lines other than the one at exclude.
func (o *Order) TakenSources(productID int64, exclude int) []reconcile.Source {
	lines := make([]reconcile.Line, len(o.Items))
	for i, l := range o.Items {
		lines[i] = reconcile.Line{ProductID: l.ProductID, Quantity: l.Quantity, Source: l.ExportFrom}
	}
	return reconcile.TakenSources(lines, productID, exclude)
}

// Totals folds the draft into order-level figures.
func (o *Order) Totals(snap Snapshot) pricing.OrderTotals {
	lines := make([]pricing.AggregateLine, len(o.Items))
	for i, l := range o.Items {
		var originalPrice int64
		if p, ok := snap.Product(l.ProductID); ok {
			originalPrice = p.OriginalPrice
		}
		lines[i] = pricing.AggregateLine{
			Quantity:      l.Quantity,
			SellingPrice:  l.SellingPrice,
			Discount:      l.Discount,
			OriginalPrice: originalPrice,
			FinalAmount:   l.FinalAmount,
		}
	}
	return pricing.CalculateOrderTotals(lines, o.AdditionalCost)
}

func (o *Order) recompute(l *Line) {
	a := pricing.CalculateLineAmounts(l.Quantity, l.SellingPrice, l.Discount, 0)
	l.FinalAmount = a.FinalAmount
}
