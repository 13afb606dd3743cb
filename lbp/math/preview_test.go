package math

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func basePreviewArgs() *PreviewAmountArgs {
	return &PreviewAmountArgs{
		Assets:                 1_000 * WAD,
		AssetTokenDecimals:     9,
		Shares:                 1_000 * WAD,
		ShareTokenDecimals:     9,
		MaxSharePrice:          100 * WAD,
		CurrentTime:            500,
		SaleStartTime:          0,
		SaleEndTime:            1_000,
		StartWeightBasisPoints: 5_000,
		EndWeightBasisPoints:   5_000,
	}
}

func TestCalculateFee(t *testing.T) {
	require.Equal(t, uint64(250), CalculateFee(10_000, 250))
	require.Equal(t, uint64(9), CalculateFee(999, 100))
	require.Equal(t, uint64(0), CalculateFee(1_000_000, 0))
	// Truncates toward zero.
	require.Equal(t, uint64(0), CalculateFee(33, 100))
}

func TestComputeReservesAndWeights(t *testing.T) {
	args := basePreviewArgs()
	args.VirtualAssets = 50 * WAD
	args.VirtualShares = 10 * WAD
	args.TotalPurchased = 200 * WAD
	args.StartWeightBasisPoints = 9_000
	args.EndWeightBasisPoints = 1_000

	rw, err := ComputeReservesAndWeights(args)
	require.NoError(t, err)
	require.Equal(t, 1_050*WAD, rw.AssetReserve)
	require.Equal(t, 810*WAD, rw.ShareReserve)
	require.Equal(t, uint64(5_000), rw.AssetWeight)
	require.Equal(t, uint64(5_000), rw.ShareWeight)
}

func TestComputeReservesAndWeightsClampsTime(t *testing.T) {
	args := basePreviewArgs()
	args.StartWeightBasisPoints = 9_000
	args.EndWeightBasisPoints = 1_000

	args.CurrentTime = -100
	rw, err := ComputeReservesAndWeights(args)
	require.NoError(t, err)
	require.Equal(t, uint64(9_000), rw.AssetWeight)

	args.CurrentTime = 5_000
	rw, err = ComputeReservesAndWeights(args)
	require.NoError(t, err)
	require.Equal(t, uint64(1_000), rw.AssetWeight)
}

func TestComputeReservesAndWeightsBadWindow(t *testing.T) {
	args := basePreviewArgs()
	args.SaleEndTime = args.SaleStartTime
	_, err := ComputeReservesAndWeights(args)
	require.ErrorIs(t, err, ErrDivisionByZero)
}

func TestPreviewSharesOut(t *testing.T) {
	got, err := PreviewSharesOut(basePreviewArgs(), 100*WAD)
	require.NoError(t, err)
	require.InDelta(t, 90.909090909*float64(WAD), float64(got), float64(WAD)/100)
}

func TestPreviewSharesOutMixedDecimals(t *testing.T) {
	args := basePreviewArgs()
	args.AssetTokenDecimals = 6
	args.Assets = 1_000_000_000 // 1000 tokens at 6 decimals

	got, err := PreviewSharesOut(args, 100_000_000)
	require.NoError(t, err)
	require.InDelta(t, 90.909090909*float64(WAD), float64(got), float64(WAD)/100)
}

func TestPreviewSharesOutMaxPriceClamp(t *testing.T) {
	args := basePreviewArgs()
	// The pool quotes roughly 1.1 assets per share here; cap the price at
	// 0.5 and the buyer fills at the cap instead.
	args.MaxSharePrice = WAD / 2

	got, err := PreviewSharesOut(args, 100*WAD)
	require.NoError(t, err)
	require.Equal(t, 200*WAD, got)
}

func TestPreviewAssetsIn(t *testing.T) {
	got, err := PreviewAssetsIn(basePreviewArgs(), 100*WAD)
	require.NoError(t, err)
	require.InDelta(t, 111.111111111*float64(WAD), float64(got), float64(WAD)/100)
}

func TestPreviewAssetsInMaxPriceClamp(t *testing.T) {
	args := basePreviewArgs()
	args.MaxSharePrice = WAD / 2

	got, err := PreviewAssetsIn(args, 100*WAD)
	require.NoError(t, err)
	require.Equal(t, 50*WAD, got)
}

func TestPreviewAssetsOut(t *testing.T) {
	got, err := PreviewAssetsOut(basePreviewArgs(), 100*WAD)
	require.NoError(t, err)
	require.InDelta(t, 90.909090909*float64(WAD), float64(got), float64(WAD)/100)
}

func TestPreviewSharesIn(t *testing.T) {
	got, err := PreviewSharesIn(basePreviewArgs(), 100*WAD)
	require.NoError(t, err)
	require.InDelta(t, 111.111111111*float64(WAD), float64(got), float64(WAD)/100)
}

func TestPreviewBuySellAsymmetry(t *testing.T) {
	// Selling the shares a buy produced can never return more assets than
	// the buy cost.
	args := basePreviewArgs()
	args.StartWeightBasisPoints = 8_000
	args.EndWeightBasisPoints = 2_000

	shares, err := PreviewSharesOut(args, 100*WAD)
	require.NoError(t, err)
	assetsBack, err := PreviewAssetsOut(args, shares)
	require.NoError(t, err)
	require.LessOrEqual(t, assetsBack, 100*WAD)
}
