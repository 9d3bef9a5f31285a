package pclrt

import "math"

// Ln returns the natural logarithm of x. Non-positive arguments produce -Inf
// or NaN rather than a fault.
func Ln(x Real) Real {
	return Real(math.Log(float64(x)))
}

// Arctan returns the arctangent of x in radians.
func Arctan(x Real) Real {
	return Real(math.Atan(float64(x)))
}

// Pi returns π.
func Pi() Real {
	return math.Pi
}

// Trunc2 returns x truncated toward zero. NaN becomes 0, and values outside
// the range of Integer saturate.
func Trunc2(x Real) Integer {
	return toInteger(math.Trunc(float64(x)))
}

// Round2 returns x rounded to the nearest integer, with halves rounded away
// from zero. NaN becomes 0, and values outside the range of Integer saturate.
func Round2(x Real) Integer {
	return toInteger(math.Round(float64(x)))
}

// toInteger converts an integral float to Integer. Go leaves out-of-range
// float to integer conversions implementation-defined, so they are clamped
// explicitly.
func toInteger(f float64) Integer {
	switch {
	case f != f:
		return 0
	case f >= math.MaxInt32:
		return math.MaxInt32
	case f <= math.MinInt32:
		return math.MinInt32
	}
	return Integer(f)
}

// Chr returns the character whose code is the low byte of n. There is no
// range check.
func Chr(n Integer) Char {
	return Char(n)
}

// Ord returns the code of c, from 0 to 255.
func Ord(c Char) Integer {
	return Integer(c)
}

// Abs returns the absolute value of n. The most negative Integer wraps to
// itself.
func Abs(n Integer) Integer {
	if n < 0 {
		return -n
	}
	return n
}

// Fabs returns the absolute value of x.
func Fabs(x Real) Real {
	return Real(math.Abs(float64(x)))
}

// Sqrt returns the square root of x.
func Sqrt(x Real) Real {
	return Real(math.Sqrt(float64(x)))
}

// Sin returns the sine of x radians.
func Sin(x Real) Real {
	return Real(math.Sin(float64(x)))
}

// Cos returns the cosine of x radians.
func Cos(x Real) Real {
	return Real(math.Cos(float64(x)))
}

// Tan returns the tangent of x radians.
func Tan(x Real) Real {
	return Real(math.Tan(float64(x)))
}

// Exp returns e**x.
func Exp(x Real) Real {
	return Real(math.Exp(float64(x)))
}
