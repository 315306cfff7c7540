// Package pricing implements the order line and order level money
// calculations: derived quantity from boxes and packaging spec,
// discounted line amounts, and profit/loss against product cost.
// All functions are pure; rounding is left to the presentation layer.
package pricing

// HasValue reports whether an optional count carries a usable value.
// Zero counts as unset for input-mode detection.
func HasValue(v *int64) bool {
	return v != nil && *v > 0
}

// HasBoxSpecInput reports whether the line is in boxes-and-spec entry
// mode, i.e. at least one of the two fields carries a positive value.
func HasBoxSpecInput(boxes, spec *int64) bool {
	return HasValue(boxes) || HasValue(spec)
}

// DeriveQuantityFromBoxes applies a box-count edit. With both fields
// present the quantity is their product; with only the box count
// present the product's default spec is filled in, and the filled
// value is returned so the caller can persist it on the line. A
// cleared box count clears the quantity. Without any spec to apply,
// the previous quantity is kept.
func DeriveQuantityFromBoxes(boxes, spec *int64, productSpec, current int64) (quantity int64, filledSpec *int64) {
	switch {
	case HasValue(boxes) && HasValue(spec):
		return *boxes * *spec, spec
	case HasValue(boxes) && productSpec > 0:
		s := productSpec
		return *boxes * s, &s
	case HasValue(boxes):
		return current, spec
	default:
		return 0, spec
	}
}

// DeriveQuantityFromSpec applies a spec edit. A spec without a box
// count is ambiguous and resolves to zero quantity, as does clearing
// either field. No default is filled in on spec edits.
func DeriveQuantityFromSpec(boxes, spec *int64) int64 {
	if HasValue(boxes) && HasValue(spec) {
		return *boxes * *spec
	}
	return 0
}

// LineAmounts holds the derived monetary figures for one order line.
// Amounts are in VND; arithmetic is exact, nothing is pre-rounded.
type LineAmounts struct {
	GrossAmount       float64
	DiscountAmount    float64
	FinalAmount       float64
	OriginalCost      float64
	ProfitLoss        float64
	ProfitLossPercent float64
}

// CalculateLineAmounts computes the money figures for one line.
// discountPercent is expected in [0,100]; originalPrice is the
// product's current unit cost, used for profit/loss only.
func CalculateLineAmounts(quantity, sellingPrice, discountPercent, originalPrice int64) LineAmounts {
	gross := float64(quantity) * float64(sellingPrice)
	discount := gross * float64(discountPercent) / 100
	final := gross - discount
	cost := float64(quantity) * float64(originalPrice)
	profit := final - cost
	var pct float64
	if cost > 0 {
		pct = profit / cost * 100
	}
	return LineAmounts{
		GrossAmount:       gross,
		DiscountAmount:    discount,
		FinalAmount:       final,
		OriginalCost:      cost,
		ProfitLoss:        profit,
		ProfitLossPercent: pct,
	}
}
