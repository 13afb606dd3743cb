package math

import "math/bits"

// PreviewAmountArgs carries the pool snapshot a pricing computation works
// against: raw token balances, virtual reserves, mint decimals, running
// totals, and the weight schedule.
type PreviewAmountArgs struct {
	Assets                 uint64
	VirtualAssets          uint64
	AssetTokenDecimals     uint8
	Shares                 uint64
	VirtualShares          uint64
	ShareTokenDecimals     uint8
	TotalPurchased         uint64
	MaxSharePrice          uint64
	CurrentTime            int64
	SaleStartTime          int64
	SaleEndTime            int64
	StartWeightBasisPoints uint16
	EndWeightBasisPoints   uint16
}

// ReservesAndWeights is the pool state the invariant prices against:
// virtual reserves folded in, weights interpolated to the current time.
type ReservesAndWeights struct {
	AssetReserve uint64
	ShareReserve uint64
	AssetWeight  uint64
	ShareWeight  uint64
}

// CalculateFee returns amount * feeBips / 10000. The fee rate never
// exceeds the denominator, so the quotient always fits in 64 bits.
func CalculateFee(amount uint64, feeBips uint16) uint64 {
	hi, lo := bits.Mul64(amount, uint64(feeBips))
	q, _ := bits.Div64(hi, lo, BasisPointMax)
	return q
}

// ComputeReservesAndWeights derives the effective reserves and the
// time-interpolated weights. Weights are recomputed from scratch on every
// call; elapsed time is clamped to the sale window so the interpolation
// never extrapolates.
func ComputeReservesAndWeights(args *PreviewAmountArgs) (ReservesAndWeights, error) {
	assetReserve, err := SafeAdd(args.Assets, args.VirtualAssets)
	if err != nil {
		return ReservesAndWeights{}, err
	}
	grossShares, err := SafeAdd(args.Shares, args.VirtualShares)
	if err != nil {
		return ReservesAndWeights{}, err
	}
	shareReserve, err := SafeSub(grossShares, args.TotalPurchased)
	if err != nil {
		return ReservesAndWeights{}, err
	}

	if args.SaleEndTime <= args.SaleStartTime {
		return ReservesAndWeights{}, ErrDivisionByZero
	}
	totalSeconds := uint64(args.SaleEndTime - args.SaleStartTime)
	var secondsElapsed uint64
	if args.CurrentTime > args.SaleStartTime {
		secondsElapsed = uint64(args.CurrentTime - args.SaleStartTime)
	}

	assetWeight, err := LinearInterpolation(
		uint64(args.StartWeightBasisPoints),
		uint64(args.EndWeightBasisPoints),
		secondsElapsed,
		totalSeconds,
	)
	if err != nil {
		return ReservesAndWeights{}, err
	}

	return ReservesAndWeights{
		AssetReserve: assetReserve,
		ShareReserve: shareReserve,
		AssetWeight:  assetWeight,
		ShareWeight:  BasisPointMax - assetWeight,
	}, nil
}

// PreviewSharesOut prices a buy with an exact asset input. assetsIn must
// already be net of swap fees.
func PreviewSharesOut(args *PreviewAmountArgs, assetsIn uint64) (uint64, error) {
	rw, err := ComputeReservesAndWeights(args)
	if err != nil {
		return 0, err
	}
	assetReserve, shareReserve, err := scaledReserves(args, rw)
	if err != nil {
		return 0, err
	}
	assetsInScaled, err := scaleToWad(args.AssetTokenDecimals, assetsIn)
	if err != nil {
		return 0, err
	}

	sharesOut, err := GetAmountOut(assetsInScaled, assetReserve, shareReserve, rw.AssetWeight, rw.ShareWeight)
	if err != nil {
		return 0, err
	}

	capped := sharesOut == 0
	if !capped {
		price, err := DivWad(assetsInScaled, sharesOut)
		if err != nil {
			return 0, err
		}
		capped = price > args.MaxSharePrice
	}
	if capped {
		sharesOut, err = DivWad(assetsInScaled, args.MaxSharePrice)
		if err != nil {
			return 0, err
		}
	}

	return scaleFromWad(args.ShareTokenDecimals, sharesOut)
}

// PreviewAssetsIn prices a buy with an exact share output, returning the
// gross invariant input before swap fees.
func PreviewAssetsIn(args *PreviewAmountArgs, sharesOut uint64) (uint64, error) {
	rw, err := ComputeReservesAndWeights(args)
	if err != nil {
		return 0, err
	}
	assetReserve, shareReserve, err := scaledReserves(args, rw)
	if err != nil {
		return 0, err
	}
	sharesOutScaled, err := scaleToWad(args.ShareTokenDecimals, sharesOut)
	if err != nil {
		return 0, err
	}

	assetsIn, err := GetAmountIn(sharesOutScaled, assetReserve, shareReserve, rw.AssetWeight, rw.ShareWeight)
	if err != nil {
		return 0, err
	}

	if sharesOutScaled != 0 {
		price, err := DivWad(assetsIn, sharesOutScaled)
		if err != nil {
			return 0, err
		}
		if price > args.MaxSharePrice {
			assetsIn, err = MulWadUp(sharesOutScaled, args.MaxSharePrice)
			if err != nil {
				return 0, err
			}
		}
	}

	return scaleFromWadUp(args.AssetTokenDecimals, assetsIn)
}

// PreviewAssetsOut prices a sell with an exact share input. sharesIn must
// already be net of swap fees.
func PreviewAssetsOut(args *PreviewAmountArgs, sharesIn uint64) (uint64, error) {
	rw, err := ComputeReservesAndWeights(args)
	if err != nil {
		return 0, err
	}
	assetReserve, shareReserve, err := scaledReserves(args, rw)
	if err != nil {
		return 0, err
	}
	sharesInScaled, err := scaleToWad(args.ShareTokenDecimals, sharesIn)
	if err != nil {
		return 0, err
	}

	assetsOut, err := GetAmountOut(sharesInScaled, shareReserve, assetReserve, rw.ShareWeight, rw.AssetWeight)
	if err != nil {
		return 0, err
	}

	if sharesInScaled != 0 {
		price, err := DivWad(assetsOut, sharesInScaled)
		if err != nil {
			return 0, err
		}
		if price > args.MaxSharePrice {
			assetsOut, err = MulWad(sharesInScaled, args.MaxSharePrice)
			if err != nil {
				return 0, err
			}
		}
	}

	return scaleFromWad(args.AssetTokenDecimals, assetsOut)
}

// PreviewSharesIn prices a sell with an exact asset output, returning the
// gross invariant input before swap fees.
func PreviewSharesIn(args *PreviewAmountArgs, assetsOut uint64) (uint64, error) {
	rw, err := ComputeReservesAndWeights(args)
	if err != nil {
		return 0, err
	}
	assetReserve, shareReserve, err := scaledReserves(args, rw)
	if err != nil {
		return 0, err
	}
	assetsOutScaled, err := scaleToWad(args.AssetTokenDecimals, assetsOut)
	if err != nil {
		return 0, err
	}

	sharesIn, err := GetAmountIn(assetsOutScaled, shareReserve, assetReserve, rw.ShareWeight, rw.AssetWeight)
	if err != nil {
		return 0, err
	}

	if sharesIn != 0 {
		price, err := DivWad(assetsOutScaled, sharesIn)
		if err != nil {
			return 0, err
		}
		if price > args.MaxSharePrice {
			sharesIn, err = DivWadUp(assetsOutScaled, args.MaxSharePrice)
			if err != nil {
				return 0, err
			}
		}
	}

	return scaleFromWadUp(args.ShareTokenDecimals, sharesIn)
}

func scaledReserves(args *PreviewAmountArgs, rw ReservesAndWeights) (uint64, uint64, error) {
	assetReserve, err := scaleToWad(args.AssetTokenDecimals, rw.AssetReserve)
	if err != nil {
		return 0, 0, err
	}
	shareReserve, err := scaleToWad(args.ShareTokenDecimals, rw.ShareReserve)
	if err != nil {
		return 0, 0, err
	}
	return assetReserve, shareReserve, nil
}

// scaleToWad normalizes a raw token amount to the 9-decimal scale the
// invariant math runs at.
func scaleToWad(decimals uint8, amount uint64) (uint64, error) {
	if decimals == 9 {
		return amount, nil
	}
	if decimals < 9 {
		factor, err := pow10(9 - decimals)
		if err != nil {
			return 0, err
		}
		return SafeMul(amount, factor)
	}
	factor, err := pow10(decimals - 9)
	if err != nil {
		return 0, err
	}
	return amount / factor, nil
}

// scaleFromWad converts a 9-decimal amount back to the token's raw scale,
// truncating toward zero.
func scaleFromWad(decimals uint8, amount uint64) (uint64, error) {
	if decimals == 9 {
		return amount, nil
	}
	if decimals < 9 {
		factor, err := pow10(9 - decimals)
		if err != nil {
			return 0, err
		}
		return amount / factor, nil
	}
	factor, err := pow10(decimals - 9)
	if err != nil {
		return 0, err
	}
	return SafeMul(amount, factor)
}

// scaleFromWadUp is scaleFromWad rounded up, for required-input amounts.
func scaleFromWadUp(decimals uint8, amount uint64) (uint64, error) {
	if decimals >= 9 {
		return scaleFromWad(decimals, amount)
	}
	factor, err := pow10(9 - decimals)
	if err != nil {
		return 0, err
	}
	q := amount / factor
	if amount%factor != 0 {
		return SafeAdd(q, 1)
	}
	return q, nil
}

func pow10(n uint8) (uint64, error) {
	result := uint64(1)
	for i := uint8(0); i < n; i++ {
		var err error
		result, err = SafeMul(result, 10)
		if err != nil {
			return 0, err
		}
	}
	return result, nil
}
