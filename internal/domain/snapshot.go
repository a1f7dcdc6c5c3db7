package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// Grid parameter names consumed during augmentation.
const (
	gridMinTemperature = "minTemperature"
	gridMaxTemperature = "maxTemperature"
	gridPrecipitation  = "quantitativePrecipitation"
	gridIceAccum       = "iceAccumulation"
	gridWindGust       = "windGust"
)

// ValueField is the feed's `{value, unitCode}` wrapper around a single
// measurement.
type ValueField struct {
	Value Scalar `json:"value"`
}

// PeriodRecord is one hourly or daily forecast period. Raw fields arrive
// from the feed; the augmented fields are filled exactly once per refresh by
// [Augment] before any formatting reads them.
type PeriodRecord struct {
	Name             string     `json:"name,omitempty"`
	StartTime        string     `json:"startTime"`
	EndTime          string     `json:"endTime,omitempty"`
	Temperature      Scalar     `json:"temperature"`
	TemperatureUnit  string     `json:"temperatureUnit"`
	WindSpeed        string     `json:"windSpeed"`
	WindDirection    string     `json:"windDirection"`
	Icon             string     `json:"icon"`
	ShortForecast    string     `json:"shortForecast,omitempty"`
	DetailedForecast string     `json:"detailedForecast,omitempty"`
	Precipitation    ValueField `json:"probabilityOfPrecipitation"`
	RelativeHumidity ValueField `json:"relativeHumidity"`

	// Start and End are the parsed period bounds, zero when the raw
	// timestamps were unusable. Parsed once at ingestion so nothing
	// downstream re-parses strings.
	Start time.Time `json:"-"`
	End   time.Time `json:"-"`

	// Augmented fields, display units.
	FeelsLike        Scalar `json:"feelsLike,omitempty"`
	RainAccumulation Scalar `json:"rainAccumulation,omitempty"`
	SnowAccumulation Scalar `json:"snowAccumulation,omitempty"`
	WindGust         Scalar `json:"windGust,omitempty"`
	MinTemperature   Scalar `json:"minTemperature,omitempty"`
	MaxTemperature   Scalar `json:"maxTemperature,omitempty"`
}

// WeatherSnapshot is the full raw weather state for one refresh cycle. A
// snapshot is created fresh from the three upstream documents, augmented in
// place, read by the assembler, and replaced wholesale on the next refresh;
// it is never shared across cycles.
type WeatherSnapshot struct {
	Hourly []PeriodRecord
	Daily  []PeriodRecord
	Grid   map[string]GridSeries
}

// RawForecastBundle holds the three upstream JSON documents of one refresh.
type RawForecastBundle struct {
	Daily  json.RawMessage
	Hourly json.RawMessage
	Grid   json.RawMessage
}

// periodsDocument matches the shared shape of the daily and hourly forecast
// documents.
type periodsDocument struct {
	Properties struct {
		Periods []PeriodRecord `json:"periods"`
	} `json:"properties"`
}

// gridDocument defers per-parameter decoding: properties mixes time series
// with plain metadata fields, so each key is tried as a GridSeries and kept
// only when it has values.
type gridDocument struct {
	Properties map[string]json.RawMessage `json:"properties"`
}

// ParseSnapshot builds a WeatherSnapshot from the three raw documents. A
// document that fails to decode is an error; individually malformed periods
// or grid entries degrade to absent values instead.
func ParseSnapshot(raw RawForecastBundle) (*WeatherSnapshot, error) {
	var daily, hourly periodsDocument
	if err := json.Unmarshal(raw.Daily, &daily); err != nil {
		return nil, fmt.Errorf("parse daily forecast: %w", err)
	}
	if err := json.Unmarshal(raw.Hourly, &hourly); err != nil {
		return nil, fmt.Errorf("parse hourly forecast: %w", err)
	}
	var grid gridDocument
	if err := json.Unmarshal(raw.Grid, &grid); err != nil {
		return nil, fmt.Errorf("parse grid data: %w", err)
	}

	snap := &WeatherSnapshot{
		Hourly: hourly.Properties.Periods,
		Daily:  daily.Properties.Periods,
		Grid:   make(map[string]GridSeries, len(grid.Properties)),
	}
	for i := range snap.Hourly {
		snap.Hourly[i].Start = parseStamp(snap.Hourly[i].StartTime)
		snap.Hourly[i].End = parseStamp(snap.Hourly[i].EndTime)
	}
	for i := range snap.Daily {
		snap.Daily[i].Start = parseStamp(snap.Daily[i].StartTime)
		snap.Daily[i].End = parseStamp(snap.Daily[i].EndTime)
	}
	for key, rawSeries := range grid.Properties {
		var series GridSeries
		if err := json.Unmarshal(rawSeries, &series); err != nil {
			continue
		}
		if series.Values == nil {
			continue
		}
		snap.Grid[key] = series
	}
	return snap, nil
}
