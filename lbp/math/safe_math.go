package math

import (
	"errors"
	"math/bits"
)

// WAD is 1e9, the standard 9-decimal scale on Solana. All pool math is
// normalized to this scale regardless of the underlying mint decimals.
const WAD uint64 = 1_000_000_000

var (
	ErrAdditionOverflow       = errors.New("addition overflow")
	ErrSubtractionUnderflow   = errors.New("subtraction underflow")
	ErrMultiplicationOverflow = errors.New("multiplication overflow")
	ErrDivisionByZero         = errors.New("division by zero")
	ErrConversionOverflow     = errors.New("conversion overflow")
	ErrLogarithmUndefined     = errors.New("logarithm undefined")
	ErrAmountInTooLarge       = errors.New("amount in exceeds max percentage of reserve in")
	ErrAmountOutTooLarge      = errors.New("amount out exceeds max percentage of reserve out")
)

func SafeAdd(x, y uint64) (uint64, error) {
	z, carry := bits.Add64(x, y, 0)
	if carry != 0 {
		return 0, ErrAdditionOverflow
	}
	return z, nil
}

func SafeSub(x, y uint64) (uint64, error) {
	if y > x {
		return 0, ErrSubtractionUnderflow
	}
	return x - y, nil
}

func SafeMul(x, y uint64) (uint64, error) {
	hi, lo := bits.Mul64(x, y)
	if hi != 0 {
		return 0, ErrMultiplicationOverflow
	}
	return lo, nil
}

func SafeDiv(x, y uint64) (uint64, error) {
	if y == 0 {
		return 0, ErrDivisionByZero
	}
	return x / y, nil
}

// MulDiv computes (x * y) / d with a 128-bit intermediate product,
// truncating toward zero.
func MulDiv(x, y, d uint64) (uint64, error) {
	if d == 0 {
		return 0, ErrDivisionByZero
	}
	hi, lo := bits.Mul64(x, y)
	if hi >= d {
		return 0, ErrConversionOverflow
	}
	q, _ := bits.Div64(hi, lo, d)
	return q, nil
}

// MulDivUp computes (x * y) / d rounded up.
func MulDivUp(x, y, d uint64) (uint64, error) {
	if d == 0 {
		return 0, ErrDivisionByZero
	}
	hi, lo := bits.Mul64(x, y)
	if hi >= d {
		return 0, ErrConversionOverflow
	}
	q, r := bits.Div64(hi, lo, d)
	if r != 0 {
		return SafeAdd(q, 1)
	}
	return q, nil
}

// MulWad computes (x * y) / WAD.
func MulWad(x, y uint64) (uint64, error) {
	return MulDiv(x, y, WAD)
}

// MulWadUp computes (x * y) / WAD rounded up.
func MulWadUp(x, y uint64) (uint64, error) {
	return MulDivUp(x, y, WAD)
}

// DivWad computes (x * WAD) / y.
func DivWad(x, y uint64) (uint64, error) {
	return MulDiv(x, WAD, y)
}

// DivWadUp computes (x * WAD) / y rounded up.
func DivWadUp(x, y uint64) (uint64, error) {
	return MulDivUp(x, WAD, y)
}
