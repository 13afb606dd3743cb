package math

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLinearInterpolation(t *testing.T) {
	tests := []struct {
		name       string
		x, y, i, n uint64
		want       uint64
	}{
		{"start", 9_000, 1_000, 0, 100, 9_000},
		{"midpoint", 9_000, 1_000, 50, 100, 5_000},
		{"end", 9_000, 1_000, 100, 100, 1_000},
		{"ascending", 1_000, 9_000, 25, 100, 3_000},
		{"clamped past end", 9_000, 1_000, 250, 100, 1_000},
		{"flat schedule", 5_000, 5_000, 40, 100, 5_000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := LinearInterpolation(tt.x, tt.y, tt.i, tt.n)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}

	_, err := LinearInterpolation(9_000, 1_000, 1, 0)
	require.ErrorIs(t, err, ErrDivisionByZero)
}

func TestGetAmountOutEqualWeights(t *testing.T) {
	// With equal weights the curve degenerates to constant product:
	// out = reserveOut * in / (reserveIn + in).
	reserveIn := 1_000 * WAD
	reserveOut := 1_000 * WAD
	amountIn := 100 * WAD

	got, err := GetAmountOut(amountIn, reserveIn, reserveOut, 5_000, 5_000)
	require.NoError(t, err)
	require.InDelta(t, 90.909090909*float64(WAD), float64(got), float64(WAD)/100)
}

func TestGetAmountOutSkewedWeights(t *testing.T) {
	// 90/10: out = reserveOut * (1 - (10/11)^9).
	got, err := GetAmountOut(100*WAD, 1_000*WAD, 1_000*WAD, 9_000, 1_000)
	require.NoError(t, err)
	require.InDelta(t, 575.902381628*float64(WAD), float64(got), float64(WAD)/100)
}

func TestGetAmountOutMonotonic(t *testing.T) {
	small, err := GetAmountOut(50*WAD, 1_000*WAD, 1_000*WAD, 8_000, 2_000)
	require.NoError(t, err)
	large, err := GetAmountOut(100*WAD, 1_000*WAD, 1_000*WAD, 8_000, 2_000)
	require.NoError(t, err)
	require.Greater(t, large, small)
	require.Less(t, large, 1_000*WAD)
}

func TestGetAmountOutCapsInput(t *testing.T) {
	// 30% of reserveIn is the largest single trade.
	_, err := GetAmountOut(301*WAD, 1_000*WAD, 1_000*WAD, 5_000, 5_000)
	require.ErrorIs(t, err, ErrAmountInTooLarge)

	_, err = GetAmountOut(300*WAD, 1_000*WAD, 1_000*WAD, 5_000, 5_000)
	require.NoError(t, err)
}

func TestGetAmountOutDustInput(t *testing.T) {
	// One base unit against a huge reserve rounds the invariant ratio up
	// to exactly one; the trade quotes zero output rather than erroring.
	got, err := GetAmountOut(1, 1_000_000*WAD, 1_000_000*WAD, 5_000, 5_000)
	require.NoError(t, err)
	require.Equal(t, uint64(0), got)
}

func TestGetAmountOutZeroReserves(t *testing.T) {
	_, err := GetAmountOut(10*WAD, 0, 1_000*WAD, 5_000, 5_000)
	require.ErrorIs(t, err, ErrLogarithmUndefined)

	_, err = GetAmountOut(10*WAD, 1_000*WAD, 0, 5_000, 5_000)
	require.ErrorIs(t, err, ErrLogarithmUndefined)
}

func TestGetAmountInEqualWeights(t *testing.T) {
	// in = reserveIn * out / (reserveOut - out).
	got, err := GetAmountIn(100*WAD, 1_000*WAD, 1_000*WAD, 5_000, 5_000)
	require.NoError(t, err)
	require.InDelta(t, 111.111111111*float64(WAD), float64(got), float64(WAD)/100)
}

func TestGetAmountInCapsOutput(t *testing.T) {
	_, err := GetAmountIn(301*WAD, 1_000*WAD, 1_000*WAD, 5_000, 5_000)
	require.ErrorIs(t, err, ErrAmountOutTooLarge)
}

func TestGetAmountRoundTrip(t *testing.T) {
	// Quoting the exact-in output back through exact-out lands within a
	// rounding margin of the original input.
	amountIn := 100 * WAD
	out, err := GetAmountOut(amountIn, 1_000*WAD, 1_000*WAD, 7_000, 3_000)
	require.NoError(t, err)

	back, err := GetAmountIn(out, 1_000*WAD, 1_000*WAD, 7_000, 3_000)
	require.NoError(t, err)
	require.InDelta(t, float64(amountIn), float64(back), float64(WAD)/100)
}
