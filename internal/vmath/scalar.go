package vmath

import (
	"errors"
	"math"
)

// VerySmallAmount is the comparison tolerance, half a millimetre in world units.
const VerySmallAmount = 0.0005

// ErrRange is returned by the clamp helpers when min is greater than max.
var ErrRange = errors.New("vmath: min is greater than max")

// Clamp limits value to [min, max]. Equal bounds return min.
func Clamp(min, max, value float64) (float64, error) {
	if min == max {
		return min, nil
	}
	if min > max {
		return 0, ErrRange
	}
	if value < min {
		return min, nil
	}
	if value > max {
		return max, nil
	}
	return value, nil
}

// ClampInt is Clamp for ints.
func ClampInt(min, max, value int) (int, error) {
	if min == max {
		return min, nil
	}
	if min > max {
		return 0, ErrRange
	}
	if value < min {
		return min, nil
	}
	if value > max {
		return max, nil
	}
	return value, nil
}

// MustClamp is Clamp for bounds known to be ordered. It panics on ErrRange.
func MustClamp(min, max, value float64) float64 {
	v, err := Clamp(min, max, value)
	if err != nil {
		panic(err)
	}
	return v
}

// MustClampInt is ClampInt for bounds known to be ordered. It panics on ErrRange.
func MustClampInt(min, max, value int) int {
	v, err := ClampInt(min, max, value)
	if err != nil {
		panic(err)
	}
	return v
}

// NearlyEqual reports whether a and b differ by less than VerySmallAmount.
func NearlyEqual(a, b float64) bool {
	return math.Abs(a-b) < VerySmallAmount
}

// NearlyEqualVec reports whether a and b are closer than VerySmallAmount.
func NearlyEqualVec(a, b Vector) bool {
	return a.DistanceSquared(b) < VerySmallAmount*VerySmallAmount
}
