package domain

import (
	"math"
	"time"
)

// FeelsLike derives an apparent temperature from temperature, wind speed,
// and relative humidity, all expressed in the display unit system.
//
// Inputs are normalized to Fahrenheit/mph internally. The NWS wind-chill
// formula applies at tempF <= 50 with wind >= 3 mph; the Rothfusz heat-index
// regression applies at tempF >= 80 with humidity >= 40%. Outside both
// regimes the apparent temperature equals the actual temperature.
//
// Non-numeric temperature passes through unchanged. Non-numeric wind
// defaults to 0 and non-numeric humidity to 50, so a sparse grid still
// yields a value. The result is numeric, rounded to one decimal, in the
// display unit system.
func FeelsLike(temp, wind, humidity Scalar, units UnitSystem) Scalar {
	t, ok := temp.Float()
	if !ok {
		return temp
	}
	v, ok := wind.Float()
	if !ok {
		v = 0
	}
	h, ok := humidity.Float()
	if !ok {
		h = 50
	}

	metric := units == Metric
	tempF := t
	windMph := v
	if metric {
		tempF = t*9/5 + 32
		windMph = v / kmhPerMph
	}

	feelsF := tempF
	switch {
	case tempF <= 50 && windMph >= 3:
		feelsF = 35.74 + 0.6215*tempF -
			35.75*math.Pow(windMph, 0.16) +
			0.4275*tempF*math.Pow(windMph, 0.16)
	case tempF >= 80 && h >= 40:
		feelsF = -42.379 +
			2.04901523*tempF +
			10.14333127*h -
			0.22475541*tempF*h -
			0.00683783*tempF*tempF -
			0.05481717*h*h +
			0.00122874*tempF*tempF*h +
			0.00085282*tempF*h*h -
			0.00000199*tempF*tempF*h*h
	}

	feels := feelsF
	if metric {
		feels = (feelsF - 32) * 5 / 9
	}
	return Number(roundTo(feels, 1))
}

// reconcileTemperature merges the hourly-derived and grid-derived estimate
// of a daily extreme. With both present the more extreme wins (pick is
// math.Min or math.Max); with one present it is used as-is; grid values that
// refuse to parse still display verbatim rather than vanish. Absent when
// neither source has data.
func reconcileTemperature(hourly *float64, grid Scalar, pick func(a, b float64) float64) Scalar {
	gridNum, gridOK := grid.Float()
	switch {
	case hourly != nil && gridOK:
		return Text(formatNumber(pick(*hourly, gridNum)))
	case hourly != nil:
		return Text(formatNumber(*hourly))
	case !grid.IsNone():
		if gridOK {
			return Text(formatNumber(gridNum))
		}
		return Text(grid.String())
	default:
		return None()
	}
}

// dailyMinMaxFromHourly scans the hourly periods that share dayStart's
// calendar date (matched by formatted date, each instant in its own offset)
// and returns the extremes of their numeric temperatures. Either result is
// nil when no usable temperature was found.
func dailyMinMaxFromHourly(dayStart time.Time, hourly []PeriodRecord) (minTemp, maxTemp *float64) {
	if dayStart.IsZero() {
		return nil, nil
	}
	date := dayStart.Format(dateLayout)
	for i := range hourly {
		start := hourly[i].Start
		if start.IsZero() || start.Format(dateLayout) != date {
			continue
		}
		t, ok := hourly[i].Temperature.Float()
		if !ok {
			continue
		}
		if minTemp == nil || t < *minTemp {
			v := t
			minTemp = &v
		}
		if maxTemp == nil || t > *maxTemp {
			v := t
			maxTemp = &v
		}
	}
	return minTemp, maxTemp
}
