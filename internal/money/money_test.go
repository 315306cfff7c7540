package money

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestVND(t *testing.T) {
	require.Equal(t, "180.000 ₫", VND(180000))
	require.Equal(t, "1.500.000 ₫", VND(1500000))
	require.Equal(t, "0 ₫", VND(0))
	require.Equal(t, "-5.000 ₫", VND(-5000))
	// Fractional amounts round to whole dong for display.
	require.Equal(t, "1.000 ₫", VND(999.6))
}

func TestPercent(t *testing.T) {
	require.Equal(t, "+50,0%", Percent(50))
	require.Equal(t, "-12,5%", Percent(-12.5))
	require.Equal(t, "0,0%", Percent(0))
	require.Equal(t, "+2,8%", Percent(2.78))
}
