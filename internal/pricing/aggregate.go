package pricing

// AggregateLine carries the per-line inputs the order fold needs.
// FinalAmount is the already-derived line amount; lines the user has
// not finished entering contribute zero.
type AggregateLine struct {
	Quantity      int64
	SellingPrice  int64
	Discount      int64
	OriginalPrice int64
	FinalAmount   float64
}

// OrderTotals holds order-level derived figures.
type OrderTotals struct {
	OrderTotal             float64
	TotalAfterCost         float64
	TotalOriginalCost      float64
	TotalProfitLoss        float64
	TotalProfitLossPercent float64
}

// CalculateOrderTotals folds line amounts and the order-level
// additional cost into order totals. additionalCost may be negative
// (a discount or refund); it counts directly toward profit, not cost.
// Lines without both a positive quantity and selling price do not
// contribute to profit/loss, matching the line-entry semantics where
// such lines are still incomplete.
func CalculateOrderTotals(lines []AggregateLine, additionalCost int64) OrderTotals {
	var t OrderTotals
	for _, l := range lines {
		t.OrderTotal += l.FinalAmount
		if l.Quantity > 0 {
			t.TotalOriginalCost += float64(l.Quantity) * float64(l.OriginalPrice)
		}
		if l.Quantity > 0 && l.SellingPrice > 0 {
			a := CalculateLineAmounts(l.Quantity, l.SellingPrice, l.Discount, l.OriginalPrice)
			t.TotalProfitLoss += a.ProfitLoss
		}
	}
	t.TotalProfitLoss += float64(additionalCost)
	t.TotalAfterCost = t.OrderTotal + float64(additionalCost)
	if t.TotalOriginalCost > 0 {
		t.TotalProfitLossPercent = t.TotalProfitLoss / t.TotalOriginalCost * 100
	}
	return t
}
