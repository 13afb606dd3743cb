package math

const (
	BasisPointMax uint64 = 10_000

	// Largest fraction of reserveIn a single exact-in trade may supply,
	// in basis points. Trades past this point sit on the degenerate end
	// of the invariant curve.
	MaxPercentageIn uint64 = 3_000

	// Largest fraction of reserveOut a single exact-out trade may drain,
	// in basis points.
	MaxPercentageOut uint64 = 3_000
)

// LinearInterpolation moves x toward y by min(i, n)/n of the distance:
//
//	x ± (|x - y| * min(i, n)) / n
func LinearInterpolation(x, y, i, n uint64) (uint64, error) {
	if n == 0 {
		return 0, ErrDivisionByZero
	}
	if i > n {
		i = n
	}
	if x > y {
		step, err := MulDiv(x-y, i, n)
		if err != nil {
			return 0, err
		}
		return x - step, nil
	}
	step, err := MulDiv(y-x, i, n)
	if err != nil {
		return 0, err
	}
	return x + step, nil
}

// GetAmountOut returns the output amount obtained by supplying amountIn
// against the weighted constant-power invariant:
//
//	amountOut = reserveOut * (1 - (reserveIn / (reserveIn + amountIn))^(weightIn/weightOut))
//
// All amounts are WAD-scaled; weights are basis points. Rounding always
// favors the pool.
func GetAmountOut(amountIn, reserveIn, reserveOut, weightIn, weightOut uint64) (uint64, error) {
	if reserveIn == 0 || reserveOut == 0 || weightIn == 0 || weightOut == 0 {
		return 0, ErrLogarithmUndefined
	}
	maxIn, err := MulDiv(reserveIn, MaxPercentageIn, BasisPointMax)
	if err != nil {
		return 0, err
	}
	if amountIn > maxIn {
		return 0, ErrAmountInTooLarge
	}

	denom, err := SafeAdd(reserveIn, amountIn)
	if err != nil {
		return 0, err
	}
	ratio, err := DivWadUp(reserveIn, denom)
	if err != nil {
		return 0, err
	}
	exponent, err := DivWad(weightIn, weightOut)
	if err != nil {
		return 0, err
	}
	power, err := PowWadUp(ratio, exponent)
	if err != nil {
		return 0, err
	}
	// A dust-sized amountIn rounds the ratio up to exactly WAD and the
	// power to WAD+1; the honest answer there is zero output.
	if power > WAD {
		power = WAD
	}
	fraction, err := SafeSub(WAD, power)
	if err != nil {
		return 0, err
	}
	return MulWad(reserveOut, fraction)
}

// GetAmountIn returns the input amount required to withdraw amountOut
// from the pool:
//
//	amountIn = reserveIn * ((reserveOut / (reserveOut - amountOut))^(weightOut/weightIn) - 1)
func GetAmountIn(amountOut, reserveIn, reserveOut, weightIn, weightOut uint64) (uint64, error) {
	if reserveIn == 0 || reserveOut == 0 || weightIn == 0 || weightOut == 0 {
		return 0, ErrLogarithmUndefined
	}
	maxOut, err := MulDiv(reserveOut, MaxPercentageOut, BasisPointMax)
	if err != nil {
		return 0, err
	}
	if amountOut > maxOut {
		return 0, ErrAmountOutTooLarge
	}

	denom, err := SafeSub(reserveOut, amountOut)
	if err != nil {
		return 0, err
	}
	ratio, err := DivWadUp(reserveOut, denom)
	if err != nil {
		return 0, err
	}
	exponent, err := DivWadUp(weightOut, weightIn)
	if err != nil {
		return 0, err
	}
	power, err := PowWadUp(ratio, exponent)
	if err != nil {
		return 0, err
	}
	fraction, err := SafeSub(power, WAD)
	if err != nil {
		return 0, err
	}
	return MulWadUp(reserveIn, fraction)
}
