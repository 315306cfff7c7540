package pricing

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func ptr(v int64) *int64 { return &v }

func TestDeriveQuantityFromBoxes(t *testing.T) {
	// Both values present: quantity is their product.
	qty, spec := DeriveQuantityFromBoxes(ptr(5), ptr(12), 0, 0)
	require.Equal(t, int64(60), qty)
	require.Equal(t, int64(12), *spec)

	// Boxes only: product default spec fills in.
	qty, spec = DeriveQuantityFromBoxes(ptr(5), nil, 12, 0)
	require.Equal(t, int64(60), qty)
	require.NotNil(t, spec)
	require.Equal(t, int64(12), *spec)

	// Boxes only, product without a default spec: quantity untouched.
	qty, spec = DeriveQuantityFromBoxes(ptr(5), nil, 0, 7)
	require.Equal(t, int64(7), qty)
	require.Nil(t, spec)

	// Clearing the box count clears the quantity.
	qty, _ = DeriveQuantityFromBoxes(nil, ptr(12), 12, 60)
	require.Equal(t, int64(0), qty)

	// A zero box count behaves like unset.
	qty, _ = DeriveQuantityFromBoxes(ptr(0), ptr(12), 12, 60)
	require.Equal(t, int64(0), qty)
}

func TestDeriveQuantityFromSpec(t *testing.T) {
	require.Equal(t, int64(60), DeriveQuantityFromSpec(ptr(5), ptr(12)))

	// Spec without boxes is ambiguous.
	require.Equal(t, int64(0), DeriveQuantityFromSpec(nil, ptr(12)))

	// Clearing the spec clears the quantity.
	require.Equal(t, int64(0), DeriveQuantityFromSpec(ptr(5), nil))

	// Zero spec behaves like unset.
	require.Equal(t, int64(0), DeriveQuantityFromSpec(ptr(5), ptr(0)))
}

func TestCalculateLineAmounts(t *testing.T) {
	a := CalculateLineAmounts(100, 2000, 10, 0)
	require.InDelta(t, 200000.0, a.GrossAmount, 0.0001)
	require.InDelta(t, 20000.0, a.DiscountAmount, 0.0001)
	require.InDelta(t, 180000.0, a.FinalAmount, 0.0001)
}

func TestCalculateLineAmountsDiscountBounds(t *testing.T) {
	zero := CalculateLineAmounts(50, 1500, 0, 0)
	require.InDelta(t, 75000.0, zero.FinalAmount, 0.0001)

	full := CalculateLineAmounts(50, 1500, 100, 0)
	require.InDelta(t, 0.0, full.FinalAmount, 0.0001)
}

func TestCalculateLineProfitLoss(t *testing.T) {
	a := CalculateLineAmounts(50, 1500, 0, 1000)
	require.InDelta(t, 25000.0, a.ProfitLoss, 0.0001)
	require.InDelta(t, 50.0, a.ProfitLossPercent, 0.0001)
}

func TestProfitLossPercentZeroCost(t *testing.T) {
	a := CalculateLineAmounts(10, 500, 0, 0)
	require.Zero(t, a.ProfitLossPercent)
}

func TestCalculateLineAmountsPure(t *testing.T) {
	first := CalculateLineAmounts(37, 4100, 13, 2900)
	second := CalculateLineAmounts(37, 4100, 13, 2900)
	require.Equal(t, first, second)
}
