package pricing

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCalculateOrderTotals(t *testing.T) {
	lines := []AggregateLine{
		{Quantity: 100, SellingPrice: 2000, Discount: 10, OriginalPrice: 1500, FinalAmount: 180000},
		{Quantity: 50, SellingPrice: 1500, Discount: 0, OriginalPrice: 1000, FinalAmount: 75000},
	}
	totals := CalculateOrderTotals(lines, 0)
	require.InDelta(t, 255000.0, totals.OrderTotal, 0.0001)
	require.InDelta(t, 255000.0, totals.TotalAfterCost, 0.0001)
	require.InDelta(t, 200000.0, totals.TotalOriginalCost, 0.0001)
	// 180000-150000 + 75000-50000
	require.InDelta(t, 55000.0, totals.TotalProfitLoss, 0.0001)
	require.InDelta(t, 27.5, totals.TotalProfitLossPercent, 0.0001)
}

func TestCalculateOrderTotalsNegativeAdditionalCost(t *testing.T) {
	lines := []AggregateLine{
		{Quantity: 100, SellingPrice: 2000, Discount: 10, OriginalPrice: 2000, FinalAmount: 180000},
		{}, // empty line contributes nothing
	}
	totals := CalculateOrderTotals(lines, -5000)
	require.InDelta(t, 180000.0, totals.OrderTotal, 0.0001)
	require.InDelta(t, 175000.0, totals.TotalAfterCost, 0.0001)
	// -20000 from the line, -5000 from the refund
	require.InDelta(t, -25000.0, totals.TotalProfitLoss, 0.0001)
}

func TestCalculateOrderTotalsSkipsIncompleteLines(t *testing.T) {
	lines := []AggregateLine{
		{Quantity: 10, SellingPrice: 0, OriginalPrice: 1000, FinalAmount: 0},
	}
	totals := CalculateOrderTotals(lines, 0)
	// Quantity counts toward cost, but no price means no profit yet.
	require.InDelta(t, 10000.0, totals.TotalOriginalCost, 0.0001)
	require.Zero(t, totals.TotalProfitLoss)
}

func TestCalculateOrderTotalsZeroCostPercent(t *testing.T) {
	totals := CalculateOrderTotals(nil, 10000)
	require.InDelta(t, 10000.0, totals.TotalProfitLoss, 0.0001)
	require.Zero(t, totals.TotalProfitLossPercent)
}
