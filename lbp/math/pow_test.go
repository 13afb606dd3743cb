package math

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPowWad(t *testing.T) {
	// 4^0.5 = 2
	got, err := PowWad(4*WAD, WAD/2)
	require.NoError(t, err)
	require.InDelta(t, 2*WAD, got, 2)

	// 2^3 = 8
	got, err = PowWad(2*WAD, 3*WAD)
	require.NoError(t, err)
	require.InDelta(t, 8*WAD, got, 2)

	// Fractional base below one stays below one.
	got, err = PowWad(WAD/2, 2*WAD)
	require.NoError(t, err)
	require.InDelta(t, WAD/4, got, 2)
}

func TestPowWadIdentities(t *testing.T) {
	got, err := PowWad(5*WAD, 0)
	require.NoError(t, err)
	require.Equal(t, WAD, got)

	got, err = PowWad(WAD, 7*WAD)
	require.NoError(t, err)
	require.Equal(t, WAD, got)

	_, err = PowWad(0, WAD)
	require.ErrorIs(t, err, ErrLogarithmUndefined)
}

func TestPowWadUp(t *testing.T) {
	down, err := PowWad(4*WAD, WAD/2)
	require.NoError(t, err)
	up, err := PowWadUp(4*WAD, WAD/2)
	require.NoError(t, err)
	require.Equal(t, down+1, up)
}

func TestLnWad(t *testing.T) {
	got, err := LnWad(WAD)
	require.NoError(t, err)
	require.Equal(t, int64(0), got)

	// ln(e) = 1 at WAD scale.
	got, err = LnWad(2_718_281_828)
	require.NoError(t, err)
	require.InDelta(t, WAD, got, 2)

	// ln of a fraction is negative.
	got, err = LnWad(WAD / 2)
	require.NoError(t, err)
	require.Less(t, got, int64(0))

	_, err = LnWad(0)
	require.ErrorIs(t, err, ErrLogarithmUndefined)
}
