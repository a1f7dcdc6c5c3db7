package domain

import (
	"math"
	"strings"
)

// UnitSystem selects the display units for every converted quantity.
type UnitSystem string

const (
	Imperial UnitSystem = "imperial"
	Metric   UnitSystem = "metric"
)

const (
	mmPerInch = 25.4
	kmhPerMph = 1.609344
)

// ConvertTemperature converts between Fahrenheit and Celsius, returning a
// string Scalar. Absent values and non-numeric text pass through unchanged;
// this passthrough is deliberately looser than the distance and speed
// converters, which propagate NaN instead.
//
// Celsius results keep one decimal place, Fahrenheit results round to an
// integer; both print in shortest decimal form ("20", not "20.0").
func ConvertTemperature(v Scalar, toCelsius bool) Scalar {
	if v.IsNone() {
		return v
	}
	f, ok := v.Float()
	if !ok {
		return v
	}
	if toCelsius {
		c := (f - 32) * 5 / 9
		return Text(formatNumber(roundTo(c, 1)))
	}
	return Text(formatNumber(round(f*9/5 + 32)))
}

// ConvertDistance converts between millimeters and inches (1 in = 25.4 mm),
// rounded to two decimals. Absent values pass through; non-numeric input
// yields a NaN result so malformed accumulation data surfaces downstream
// rather than silently displaying.
func ConvertDistance(v Scalar, toImperial bool) Scalar {
	if v.IsNone() {
		return v
	}
	f, ok := v.Float()
	if !ok {
		return Number(math.NaN())
	}
	var out float64
	if toImperial {
		out = f / mmPerInch
	} else {
		out = f * mmPerInch
	}
	return Text(formatNumber(roundTo(out, 2)))
}

// ConvertSpeed converts between km/h and mph (1 mph = 1.609344 km/h),
// rounded to an integer. Absence passes through; non-numeric input yields
// NaN, matching ConvertDistance.
func ConvertSpeed(v Scalar, toImperial bool) Scalar {
	if v.IsNone() {
		return v
	}
	f, ok := v.Float()
	if !ok {
		return Number(math.NaN())
	}
	var out float64
	if toImperial {
		out = f / kmhPerMph
	} else {
		out = f * kmhPerMph
	}
	return Text(formatNumber(round(out)))
}

// ConvertIfNeeded converts a raw value into the display unit system based on
// its unit code. Codes may carry the feed's "wmoUnit:" prefix or appear bare
// ("F", "C"). Unrecognized codes, and codes already matching the display
// system, return the value untouched.
func ConvertIfNeeded(v Scalar, unitCode string, units UnitSystem) Scalar {
	code := strings.TrimPrefix(unitCode, "wmoUnit:")
	switch {
	case (code == "degC" || code == "C") && units == Imperial:
		return ConvertTemperature(v, false)
	case (code == "degF" || code == "F") && units == Metric:
		return ConvertTemperature(v, true)
	case code == "in" && units == Metric:
		return ConvertDistance(v, false)
	case code == "mm" && units == Imperial:
		return ConvertDistance(v, true)
	case code == "km_h-1" && units == Imperial:
		return ConvertSpeed(v, true)
	case code == "km_h-1" && units == Metric:
		return ConvertSpeed(v, false)
	}
	return v
}
