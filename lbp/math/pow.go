package math

import (
	"github.com/shopspring/decimal"
)

// powPrecision is the decimal precision carried through the log-exp
// decomposition. 24 digits keeps the WAD-scale result exact for any
// reserve ratio a pool can produce.
const powPrecision = 24

var (
	decWad = decimal.NewFromUint64(WAD)
	decOne = decimal.NewFromInt(1)
)

// PowWad computes x^(y/WAD) where x and the result are WAD-scaled,
// via exp((y/WAD) * ln(x/WAD)). The result is truncated toward zero.
func PowWad(x, y uint64) (uint64, error) {
	if x == 0 {
		return 0, ErrLogarithmUndefined
	}
	if y == 0 || x == WAD {
		return WAD, nil
	}

	base := decimal.NewFromUint64(x).DivRound(decWad, powPrecision)
	exponent := decimal.NewFromUint64(y).DivRound(decWad, powPrecision)

	ln, err := base.Ln(powPrecision)
	if err != nil {
		return 0, ErrLogarithmUndefined
	}
	result, err := ln.Mul(exponent).ExpTaylor(powPrecision)
	if err != nil {
		return 0, ErrLogarithmUndefined
	}
	return fromDecimalWad(result)
}

// PowWadUp is PowWad plus one base unit. The settlement math uses it
// wherever rounding must favor the pool.
func PowWadUp(x, y uint64) (uint64, error) {
	result, err := PowWad(x, y)
	if err != nil {
		return 0, err
	}
	return SafeAdd(result, 1)
}

// LnWad returns ln(x/WAD) in WAD scale. Negative for x < WAD.
func LnWad(x uint64) (int64, error) {
	if x == 0 {
		return 0, ErrLogarithmUndefined
	}
	if x == WAD {
		return 0, nil
	}
	ln, err := decimal.NewFromUint64(x).DivRound(decWad, powPrecision).Ln(powPrecision)
	if err != nil {
		return 0, ErrLogarithmUndefined
	}
	scaled := ln.Mul(decWad).Truncate(0)
	if !scaled.BigInt().IsInt64() {
		return 0, ErrConversionOverflow
	}
	return scaled.BigInt().Int64(), nil
}

func fromDecimalWad(d decimal.Decimal) (uint64, error) {
	scaled := d.Mul(decWad).Truncate(0)
	if scaled.Sign() < 0 || !scaled.BigInt().IsUint64() {
		return 0, ErrConversionOverflow
	}
	return scaled.BigInt().Uint64(), nil
}
