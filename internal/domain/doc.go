// Package domain normalizes National Weather Service (NWS) point-forecast
// data into a display-ready forecast.
//
// # Data Source
//
// Forecasts come from the NWS API (https://www.weather.gov/documentation/services-web-api).
// A point lookup (/points/{lat},{lon}) yields three document URLs, fetched by
// the adapter layer each refresh cycle:
//
//   - forecast: daily periods, generally two per calendar day (day/night)
//   - forecastHourly: hourly periods
//   - forecastGridData: per-parameter time series over validity intervals
//
// # NWS Data Conventions
//
// Grid validity intervals:
//
//	"<start>/<ISO-8601 duration>"  →  e.g. "2025-08-29T10:00:00-04:00/PT3H"
//	means the value holds over the half-open window [start, start+3h).
//	The start carries its own UTC offset, which matters for calendar-day
//	matching: two instants belong to the same day only when they format to
//	the same date in their respective offsets.
//
// Unit codes:
//
//	Grid series carry a "uom" such as "wmoUnit:degC", "wmoUnit:mm" or
//	"wmoUnit:km_h-1"; period temperatures carry a bare "F" or "C".
//	Values are converted to the configured display system on augmentation
//	and never re-converted afterwards.
//
// Loosely typed values:
//
//	The feed mixes numbers, numeric strings, and nulls in the same fields.
//	[Scalar] models that union; conversion helpers coerce numeric strings
//	and degrade to absence (or a NaN result, per the distance/speed
//	contract) instead of failing.
//
// Icon condition codes:
//
//	Period icons are URLs embedding a condition code segment, e.g.
//	".../icons/land/day/rain_showers?size=medium". The ordered table in
//	icon.go maps codes to display icon names; the precipitation-change
//	detector classifies rain versus snow from the resulting names.
//
// # Refresh Lifecycle
//
// Each cycle builds a fresh [WeatherSnapshot] from the three raw documents,
// augments its periods in place exactly once ([Augment]), derives an
// immutable [DisplayForecast] ([BuildDisplayForecast]), and discards both on
// the next cycle. Nothing in this package performs I/O or blocks.
package domain
