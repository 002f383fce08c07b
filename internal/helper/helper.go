package helper

import (
	"fmt"
	"math/big"
	"strconv"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ZeroDecimal128 returns a Decimal128 zero value.
func ZeroDecimal128() primitive.Decimal128 {
	d, _ := primitive.ParseDecimal128("0")
	return d
}

// CompareDecimal128 compares two primitive.Decimal128 values.
// It returns:
// -1 if d1 < d2
// 0 if d1 == d2
// 1 if d1 > d2
// An error if conversion to BigFloat fails.
func CompareDecimal128(d1, d2 primitive.Decimal128) (int, error) {
	f1, _, err := new(big.Float).Parse(d1.String(), 10)
	if err != nil {
		return 0, fmt.Errorf("failed to convert d1 to big.Float: %w", err)
	}
	f2, _, err := new(big.Float).Parse(d2.String(), 10)
	if err != nil {
		return 0, fmt.Errorf("failed to convert d2 to big.Float: %w", err)
	}
	return f1.Cmp(f2), nil
}

// SubDecimal128 subtracts d2 from d1 (d1 - d2).
// It returns the result as a primitive.Decimal128.
// An error is returned if conversion to BigFloat or back to Decimal128 fails.
func SubDecimal128(d1, d2 primitive.Decimal128) (primitive.Decimal128, error) {
	f1, _, err := new(big.Float).SetPrec(big.MaxPrec).Parse(d1.String(), 10)
	if err != nil {
		return primitive.Decimal128{}, fmt.Errorf("failed to convert d1 to big.Float: %w", err)
	}
	f2, _, err := new(big.Float).SetPrec(big.MaxPrec).Parse(d2.String(), 10)
	if err != nil {
		return primitive.Decimal128{}, fmt.Errorf("failed to convert d2 to big.Float: %w", err)
	}

	resultFloat := new(big.Float).Sub(f1, f2)

	resultDecimal, err := primitive.ParseDecimal128(resultFloat.String())
	if err != nil {
		return primitive.Decimal128{}, fmt.Errorf("failed to convert result to Decimal128: %w", err)
	}

	return resultDecimal, nil
}

// AddDecimal128 adds two primitive.Decimal128 values (d1 + d2).
// It returns the result as a primitive.Decimal128.
func AddDecimal128(d1, d2 primitive.Decimal128) (primitive.Decimal128, error) {
	f1, _, err := new(big.Float).SetPrec(big.MaxPrec).Parse(d1.String(), 10)
	if err != nil {
		return primitive.Decimal128{}, fmt.Errorf("failed to convert d1 to big.Float: %w", err)
	}
	f2, _, err := new(big.Float).SetPrec(big.MaxPrec).Parse(d2.String(), 10)
	if err != nil {
		return primitive.Decimal128{}, fmt.Errorf("failed to convert d2 to big.Float: %w", err)
	}

	resultFloat := new(big.Float).Add(f1, f2)

	resultDecimal, err := primitive.ParseDecimal128(resultFloat.String())
	if err != nil {
		return primitive.Decimal128{}, fmt.Errorf("failed to convert result to Decimal128: %w", err)
	}

	return resultDecimal, nil
}

// PercentOfDecimal128 computes d * percent / 100, rounded to two fraction
// digits. Percent values are integers in the 0-100 range; callers validate
// the range before computing splits.
func PercentOfDecimal128(d primitive.Decimal128, percent int) (primitive.Decimal128, error) {
	f, _, err := new(big.Float).SetPrec(big.MaxPrec).Parse(d.String(), 10)
	if err != nil {
		return primitive.Decimal128{}, fmt.Errorf("failed to convert d to big.Float: %w", err)
	}

	resultFloat := new(big.Float).Quo(
		new(big.Float).Mul(f, big.NewFloat(float64(percent))),
		big.NewFloat(100),
	)

	resultDecimal, err := primitive.ParseDecimal128(resultFloat.Text('f', 2))
	if err != nil {
		return primitive.Decimal128{}, fmt.Errorf("failed to convert result to Decimal128: %w", err)
	}

	return resultDecimal, nil
}

// DivDecimal128ByFloat divides d by the given divisor, rounded to two
// fraction digits. Used to back out a tax-exclusive subtotal from a
// tax-inclusive total.
func DivDecimal128ByFloat(d primitive.Decimal128, divisor float64) (primitive.Decimal128, error) {
	if divisor == 0 {
		return primitive.Decimal128{}, fmt.Errorf("division by zero")
	}
	f, _, err := new(big.Float).SetPrec(big.MaxPrec).Parse(d.String(), 10)
	if err != nil {
		return primitive.Decimal128{}, fmt.Errorf("failed to convert d to big.Float: %w", err)
	}

	resultFloat := new(big.Float).Quo(f, big.NewFloat(divisor))

	resultDecimal, err := primitive.ParseDecimal128(resultFloat.Text('f', 2))
	if err != nil {
		return primitive.Decimal128{}, fmt.Errorf("failed to convert result to Decimal128: %w", err)
	}

	return resultDecimal, nil
}

// NegateDecimal128 multiplies a Decimal128 value by -1.
func NegateDecimal128(d primitive.Decimal128) (primitive.Decimal128, error) {
	f, _, err := new(big.Float).SetPrec(big.MaxPrec).Parse(d.String(), 10)
	if err != nil {
		return primitive.Decimal128{}, fmt.Errorf("failed to convert d to big.Float: %w", err)
	}

	resultFloat := new(big.Float).Mul(f, big.NewFloat(-1))

	resultDecimal, err := primitive.ParseDecimal128(resultFloat.String())
	if err != nil {
		return primitive.Decimal128{}, fmt.Errorf("failed to convert result to Decimal128: %w", err)
	}

	return resultDecimal, nil
}

// Decimal128ToInt64 converts a primitive.Decimal128 to an int64.
// It truncates any fractional part.
// It returns an error if the value is a special value (NaN, Infinity) or is out of the int64 range.
func Decimal128ToInt64(d primitive.Decimal128) (int64, error) {
	if d.IsNaN() || d.IsInf() != 0 {
		return 0, fmt.Errorf("cannot convert special Decimal128 value (NaN or Infinity) to int64")
	}

	f, _, err := new(big.Float).SetPrec(big.MaxPrec).Parse(d.String(), 10)
	if err != nil {
		return 0, fmt.Errorf("failed to parse Decimal128 string '%s' into big.Float: %w", d.String(), err)
	}

	i, _ := f.Int(nil)
	if i == nil {
		return 0, fmt.Errorf("failed to convert big.Float to big.Int for value %s", f.String())
	}

	if !i.IsInt64() {
		return 0, fmt.Errorf("value %s is out of int64 range", i.String())
	}

	return i.Int64(), nil
}

// Decimal128ToFloat64 converts a primitive.Decimal128 to a float64.
// It returns an error if the underlying string conversion fails.
func Decimal128ToFloat64(d primitive.Decimal128) (float64, error) {
	return strconv.ParseFloat(d.String(), 64)
}

// IsDecimal128Positive reports whether d is strictly greater than zero.
func IsDecimal128Positive(d primitive.Decimal128) (bool, error) {
	cmp, err := CompareDecimal128(d, ZeroDecimal128())
	if err != nil {
		return false, err
	}
	return cmp > 0, nil
}
