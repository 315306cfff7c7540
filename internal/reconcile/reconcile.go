// Package reconcile classifies order line supply sources against the
// last-fetched inventory snapshot. Its stock check is advisory only;
// the authoritative check happens server side under the version guard.
package reconcile

import "fmt"

// Source is the supply channel for an order line.
type Source string

const (
	// SourceInventory decrements the product's on-hand stock.
	SourceInventory Source = "INVENTORY"
	// SourceExternal is procured outside existing stock.
	SourceExternal Source = "EXTERNAL"
)

// Valid reports whether s is one of the two known channels.
func (s Source) Valid() bool {
	return s == SourceInventory || s == SourceExternal
}

// Line is the subset of an order line the reconciler cares about.
type Line struct {
	ProductID int64
	Quantity  int64
	Source    Source
}

// Warning flags a line that would oversell on-hand stock.
type Warning struct {
	ProductID int64
	Requested int64
	OnHand    int64
}

func (w Warning) Message() string {
	return fmt.Sprintf("quantity exceeds on-hand stock (%d units available); switch the supply source to EXTERNAL or reduce the quantity", w.OnHand)
}

// CheckStock returns a warning when an INVENTORY-sourced line requests
// more than the on-hand snapshot. EXTERNAL lines never warn, whatever
// the quantity. Lines without a product or quantity are skipped.
func CheckStock(line Line, onHand int64) (Warning, bool) {
	if line.ProductID == 0 || line.Quantity == 0 {
		return Warning{}, false
	}
	if line.Source != SourceInventory || line.Quantity <= onHand {
		return Warning{}, false
	}
	return Warning{ProductID: line.ProductID, Requested: line.Quantity, OnHand: onHand}, true
}

// TakenSources lists the supply channels already used by other lines
// for the given product, so the caller can block a duplicate
// (product, source) pair before it is entered. exclude is the index of
// the line being edited, or -1.
func TakenSources(lines []Line, productID int64, exclude int) []Source {
	var taken []Source
	for i, l := range lines {
		if i == exclude || l.ProductID != productID || l.Source == "" {
			continue
		}
		taken = append(taken, l.Source)
	}
	return taken
}

// ValidateUnique rejects a line set containing the same product twice
// from the same supply channel. The same product may appear once per
// channel.
func ValidateUnique(lines []Line) error {
	type key struct {
		productID int64
		source    Source
	}
	seen := make(map[key]struct{}, len(lines))
	for _, l := range lines {
		if l.ProductID == 0 || l.Source == "" {
			continue
		}
		k := key{l.ProductID, l.Source}
		if _, dup := seen[k]; dup {
			return fmt.Errorf("product %d already sourced from %s in this order", l.ProductID, l.Source)
		}
		seen[k] = struct{}{}
	}
	return nil
}
