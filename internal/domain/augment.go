package domain

import (
	"math"
	"time"
)

// gridValueWithinDuration looks up the series value whose validity window
// contains the instant, converted to display units.
func (s *WeatherSnapshot) gridValueWithinDuration(at time.Time, key string, units UnitSystem) Scalar {
	series, ok := s.Grid[key]
	if !ok {
		return None()
	}
	v := FindValueForTimestamp(at, series.Values)
	return ConvertIfNeeded(v, series.UnitCode, units)
}

// gridValueMatchingDay looks up the first series value starting on the
// instant's calendar day, converted to display units.
func (s *WeatherSnapshot) gridValueMatchingDay(at time.Time, key string, units UnitSystem) Scalar {
	series, ok := s.Grid[key]
	if !ok {
		return None()
	}
	v := FindValueForTimestampMatchingDay(at, series.Values)
	return ConvertIfNeeded(v, series.UnitCode, units)
}

// accumulateGridValue sums all series values starting on the instant's
// calendar day, converted to display units.
func (s *WeatherSnapshot) accumulateGridValue(at time.Time, key string, units UnitSystem) Scalar {
	series, ok := s.Grid[key]
	if !ok {
		return None()
	}
	v := AccumulateValueForTimestamp(at, series.Values)
	return ConvertIfNeeded(v, series.UnitCode, units)
}

// Augment trims stale hourly periods and fills the derived fields of every
// remaining period, in place. It runs exactly once per snapshot, before any
// formatting; the order is fixed because feels-like reads the converted
// temperature and gust, and the daily min/max scan reads converted hourly
// temperatures.
func Augment(s *WeatherSnapshot, units UnitSystem) {
	s.trimHourly()
	s.augmentHourly(units)
	s.augmentDaily(units)
}

// trimHourly drops hourly periods that ended before the current hour, so
// index 0 is the period covering "now". When no period starts at or after
// the hour boundary the list is left alone; downstream still produces a
// best-effort forecast from it.
func (s *WeatherSnapshot) trimHourly() {
	hourStart := clock.Now().Truncate(time.Hour)
	for i := range s.Hourly {
		if s.Hourly[i].Start.IsZero() {
			continue
		}
		if !s.Hourly[i].Start.Before(hourStart) {
			if i > 0 {
				s.Hourly = s.Hourly[i:]
			}
			return
		}
	}
}

func (s *WeatherSnapshot) augmentHourly(units UnitSystem) {
	for i := range s.Hourly {
		p := &s.Hourly[i]

		p.Temperature = ConvertIfNeeded(p.Temperature, p.TemperatureUnit, units)

		// The grid commonly covers only 2-3 days, so these stay absent
		// beyond that horizon even when a precipitation chance exists.
		p.SnowAccumulation = s.gridValueWithinDuration(p.Start, gridIceAccum, units)
		p.RainAccumulation = s.gridValueWithinDuration(p.Start, gridPrecipitation, units)
		p.WindGust = s.gridValueWithinDuration(p.Start, gridWindGust, units)

		p.FeelsLike = FeelsLike(p.Temperature, p.WindGust, p.RelativeHumidity.Value, units)
	}
}

func (s *WeatherSnapshot) augmentDaily(units UnitSystem) {
	for i := range s.Daily {
		p := &s.Daily[i]

		p.Temperature = ConvertIfNeeded(p.Temperature, p.TemperatureUnit, units)

		hourlyMin, hourlyMax := dailyMinMaxFromHourly(p.Start, s.Hourly)
		gridMax := s.gridValueMatchingDay(p.Start, gridMaxTemperature, units)
		gridMin := s.gridValueMatchingDay(p.Start, gridMinTemperature, units)

		// The grid min/max series is sparse and the hourly horizon is
		// short; the extremum of both sources is never less extreme than
		// either alone.
		p.MaxTemperature = reconcileTemperature(hourlyMax, gridMax, math.Max)
		p.MinTemperature = reconcileTemperature(hourlyMin, gridMin, math.Min)

		p.SnowAccumulation = s.accumulateGridValue(p.Start, gridIceAccum, units)
		p.RainAccumulation = s.accumulateGridValue(p.Start, gridPrecipitation, units)
	}
}
