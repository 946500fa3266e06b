// Package utils contains small helpers shared by the trike packages.
package utils

import (
	"math"

	"gonum.org/v1/gonum/floats/scalar"
)

// Epsilon32 is the difference between 1 and the next representable float32.
const Epsilon32 = float32(1.1920929e-07)

// Sin32 returns the sine of x rounded to float32.
func Sin32(x float32) float32 {
	return float32(math.Sin(float64(x)))
}

// Cos32 returns the cosine of x rounded to float32.
func Cos32(x float32) float32 {
	return float32(math.Cos(float64(x)))
}

// Tan32 returns the tangent of x rounded to float32.
func Tan32(x float32) float32 {
	return float32(math.Tan(float64(x)))
}

// Atan2Float32 returns atan2(y, x) rounded to float32.
func Atan2Float32(y, x float32) float32 {
	return float32(math.Atan2(float64(y), float64(x)))
}

// Abs32 returns |x|. The sign bit is cleared, so -0 becomes +0.
func Abs32(x float32) float32 {
	return math.Float32frombits(math.Float32bits(x) &^ (1 << 31))
}

// Signum32 returns 1 for +0 and positive values, -1 for -0 and negative values
// and NaN for NaN.
func Signum32(x float32) float32 {
	switch {
	case IsNaN32(x):
		return x
	case math.Signbit(float64(x)):
		return -1
	default:
		return 1
	}
}

// IsNaN32 reports whether x is NaN.
func IsNaN32(x float32) bool {
	return x != x
}

// NaN32 returns a float32 NaN.
func NaN32() float32 {
	return float32(math.NaN())
}

// Max32 returns the larger of a and b, ignoring a NaN operand.
func Max32(a, b float32) float32 {
	switch {
	case IsNaN32(a):
		return b
	case IsNaN32(b):
		return a
	case a > b:
		return a
	default:
		return b
	}
}

// Min32 returns the smaller of a and b, ignoring a NaN operand.
func Min32(a, b float32) float32 {
	switch {
	case IsNaN32(a):
		return b
	case IsNaN32(b):
		return a
	case a < b:
		return a
	default:
		return b
	}
}

// NormalizeAngle32 wraps an angle in radians into (-π, π].
func NormalizeAngle32(theta float32) float32 {
	wrapped := math.Remainder(float64(theta), 2*math.Pi)
	if wrapped <= -math.Pi {
		wrapped += 2 * math.Pi
	}
	return float32(wrapped)
}

// Float32AlmostEqual reports whether a and b are within tol of each other.
// Two NaNs are considered equal, which matches the released rudder sentinel.
func Float32AlmostEqual(a, b, tol float32) bool {
	if IsNaN32(a) || IsNaN32(b) {
		return IsNaN32(a) && IsNaN32(b)
	}
	return scalar.EqualWithinAbs(float64(a), float64(b), float64(tol))
}

// DegToRad converts degrees to radians.
func DegToRad(degrees float64) float64 {
	return degrees * math.Pi / 180
}

// RadToDeg converts radians to degrees.
func RadToDeg(radians float64) float64 {
	return radians * 180 / math.Pi
}
