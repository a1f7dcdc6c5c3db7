package domain

import (
	"fmt"
	"time"
)

// DisplayOptions controls unit selection, list shaping, and label text for
// the assembled forecast.
type DisplayOptions struct {
	Units   UnitSystem
	Concise bool

	ShowHourly     bool
	HourlyInterval int
	MaxHourlies    int

	ShowDaily    bool
	MaxDailies   int
	IncludeToday bool

	ShowPrecipitationStartStop bool

	TimeLayout string
	DayLabels  []string
	LabelHigh  string
	LabelLow   string
	LabelGust  string
}

// TempRange is a formatted high/low pair.
type TempRange struct {
	High string `json:"high"`
	Low  string `json:"low"`
}

// PrecipDisplay is the formatted precipitation block of one item. The
// accumulation fields are empty when neither snow nor rain accumulates.
type PrecipDisplay struct {
	Pop              string `json:"pop"`
	Accumulation     string `json:"accumulation,omitempty"`
	AccumulationType string `json:"accumulationType,omitempty"`
}

// WindDisplay is the formatted wind block of one item.
type WindDisplay struct {
	WindSpeed string `json:"windSpeed"`
	WindGust  string `json:"windGust,omitempty"`
}

// CurrentConditions is the formatted now-block.
type CurrentConditions struct {
	Temperature   string        `json:"temperature"`
	FeelsLike     string        `json:"feelslike"`
	Icon          string        `json:"icon"`
	TempRange     TempRange     `json:"tempRange"`
	Precipitation PrecipDisplay `json:"precipitation"`
	Wind          WindDisplay   `json:"wind"`
}

// DisplayItem is one formatted hourly or daily entry. Hourly items carry
// Time and Temperature; daily items carry Day and TempRange.
type DisplayItem struct {
	Time          string        `json:"time,omitempty"`
	Day           string        `json:"day,omitempty"`
	Icon          string        `json:"icon"`
	Temperature   string        `json:"temperature,omitempty"`
	TempRange     *TempRange    `json:"tempRange,omitempty"`
	Precipitation PrecipDisplay `json:"precipitation"`
	Wind          WindDisplay   `json:"wind"`
}

// DisplayForecast is the final, read-only output of a refresh cycle. Every
// field is pre-formatted for direct presentation.
type DisplayForecast struct {
	Currently           CurrentConditions `json:"currently"`
	Summary             string            `json:"summary"`
	PrecipitationChange *PrecipEvent      `json:"precipitationChange,omitempty"`
	Hourly              []DisplayItem     `json:"hourly"`
	Daily               []DisplayItem     `json:"daily"`
}

// BuildDisplayForecast formats an augmented snapshot into the final display
// object: current conditions from the leading hourly and daily periods, a
// summary, the interval-sampled hourly list, the deduplicated daily list,
// and the precipitation-change event. Sparse or empty snapshots yield
// placeholder fields, never an error.
func BuildDisplayForecast(s *WeatherSnapshot, opts DisplayOptions) *DisplayForecast {
	out := &DisplayForecast{
		Hourly: []DisplayItem{},
		Daily:  []DisplayItem{},
	}

	if len(s.Daily) > 0 {
		if opts.Concise {
			out.Summary = s.Daily[0].ShortForecast
		} else {
			out.Summary = s.Daily[0].DetailedForecast
		}
	}

	out.Currently = buildCurrently(s, opts)

	if opts.ShowHourly {
		out.Hourly = sampleHourly(s.Hourly, opts)
	}
	if opts.ShowDaily {
		out.Daily = dedupDaily(s.Daily, opts)
	}

	out.PrecipitationChange = DetectPrecipitationChange(
		s.Hourly, opts.ShowPrecipitationStartStop, opts.TimeLayout)

	return out
}

func buildCurrently(s *WeatherSnapshot, opts DisplayOptions) CurrentConditions {
	cur := CurrentConditions{
		Temperature: "--°",
		FeelsLike:   "--°",
		TempRange:   TempRange{High: "--°", Low: "--°"},
	}
	if len(s.Hourly) > 0 {
		now := s.Hourly[0]
		cur.Temperature = formatDegrees(now.Temperature)
		cur.FeelsLike = formatDegrees(now.FeelsLike)
		cur.Icon = IconName(now.Icon)
		// The current block has no probability of precipitation; only an
		// active accumulation shows.
		cur.Precipitation = formatPrecipitation(None(), now.RainAccumulation, now.SnowAccumulation, opts)
		cur.Wind = formatWind(now.WindSpeed, now.WindDirection, now.WindGust, opts)
	}
	if len(s.Daily) > 0 {
		cur.TempRange = formatHiLowTemperature(s.Daily[0].MaxTemperature, s.Daily[0].MinTemperature, opts)
	}
	return cur
}

// sampleHourly takes every Nth period starting at offset N, up to the
// configured count, stopping early at the end of the list.
func sampleHourly(hourly []PeriodRecord, opts DisplayOptions) []DisplayItem {
	items := []DisplayItem{}
	idx := opts.HourlyInterval
	for len(items) < opts.MaxHourlies {
		if idx < 0 || idx >= len(hourly) {
			break
		}
		items = append(items, hourlyItem(&hourly[idx], opts))
		idx += opts.HourlyInterval
		if opts.HourlyInterval <= 0 {
			break
		}
	}
	return items
}

// dedupDaily walks the daily periods from tomorrow (or today when
// configured), suppressing consecutive periods that share a calendar day.
// The feed usually splits each day into day and night halves.
func dedupDaily(daily []PeriodRecord, opts DisplayOptions) []DisplayItem {
	items := []DisplayItem{}

	start := 0
	if !opts.IncludeToday {
		tomorrow := startOfDay(clock.Now()).AddDate(0, 0, 1)
		start = -1
		for i := range daily {
			if !daily[i].Start.IsZero() && sameDay(daily[i].Start, tomorrow) {
				start = i
				break
			}
		}
		if start < 0 {
			return items
		}
	}

	var prevDay time.Time
	for i := start; i < len(daily); i++ {
		if len(items) >= opts.MaxDailies {
			break
		}
		entryDay := daily[i].Start
		if !prevDay.IsZero() && sameDay(prevDay, entryDay) {
			continue
		}
		prevDay = entryDay
		items = append(items, dailyItem(&daily[i], opts))
	}
	return items
}

func hourlyItem(p *PeriodRecord, opts DisplayOptions) DisplayItem {
	return DisplayItem{
		Time:          p.Start.Format(opts.TimeLayout),
		Icon:          IconName(p.Icon),
		Temperature:   formatDegrees(p.Temperature),
		Precipitation: formatPrecipitation(p.Precipitation.Value, p.RainAccumulation, p.SnowAccumulation, opts),
		Wind:          formatWind(p.WindSpeed, p.WindDirection, p.WindGust, opts),
	}
}

func dailyItem(p *PeriodRecord, opts DisplayOptions) DisplayItem {
	tempRange := formatHiLowTemperature(p.MaxTemperature, p.MinTemperature, opts)
	return DisplayItem{
		Day:           dayLabel(p.Start, opts.DayLabels),
		Icon:          IconName(p.Icon),
		TempRange:     &tempRange,
		Precipitation: formatPrecipitation(p.Precipitation.Value, p.RainAccumulation, p.SnowAccumulation, opts),
		Wind:          formatWind(p.WindSpeed, p.WindDirection, p.WindGust, opts),
	}
}

func dayLabel(start time.Time, labels []string) string {
	if start.IsZero() || len(labels) != 7 {
		return ""
	}
	return labels[int(start.Weekday())]
}

// formatDegrees renders a rounded temperature, or the placeholder when the
// value is absent or non-numeric. A literal "NaN" never reaches the display.
func formatDegrees(v Scalar) string {
	f, ok := v.Float()
	if !ok {
		return "--°"
	}
	return formatNumber(round(f)) + "°"
}

// formatHiLowTemperature renders the daily high/low pair. In non-concise
// mode each side carries its label ("H 75°").
func formatHiLowTemperature(high, low Scalar, opts DisplayOptions) TempRange {
	return TempRange{
		High: formatRangeSide(high, opts.LabelHigh, opts.Concise),
		Low:  formatRangeSide(low, opts.LabelLow, opts.Concise),
	}
}

func formatRangeSide(v Scalar, label string, concise bool) string {
	value := "--"
	if f, ok := v.Float(); ok {
		value = formatNumber(round(f))
	}
	if concise {
		return value + "°"
	}
	return label + " " + value + "°"
}

// formatPrecipitation renders the probability and, when one is accumulating,
// the expected amount. Snow takes precedence over rain when both are
// positive. An absent probability still renders ("null%") so the field is
// always present for the consumer.
func formatPrecipitation(pop, rain, snow Scalar, opts DisplayOptions) PrecipDisplay {
	popStr := "null"
	if !pop.IsNone() {
		popStr = pop.String()
	}
	out := PrecipDisplay{Pop: popStr + "%"}

	unit := "mm"
	if opts.Units == Imperial {
		unit = "in"
	}
	if f, ok := snow.Float(); ok && f > 0 {
		out.AccumulationType = "snow"
		out.Accumulation = snow.String() + " " + unit
	} else if f, ok := rain.Float(); ok && f > 0 {
		out.AccumulationType = "rain"
		out.Accumulation = rain.String() + " " + unit
	}
	return out
}

// formatWind renders the wind block. Concise mode drops the bearing and the
// gust annotation; the gust shows whenever the grid produced one, zero
// included.
func formatWind(speed, bearing string, gust Scalar, opts DisplayOptions) WindDisplay {
	out := WindDisplay{}
	if opts.Concise {
		out.WindSpeed = speed + " "
	} else {
		out.WindSpeed = speed + " " + bearing
		if gustVisible(gust) {
			unit := "km/h"
			if opts.Units == Imperial {
				unit = "mph"
			}
			out.WindGust = fmt.Sprintf(" (%s %s %s)", opts.LabelGust, gust.String(), unit)
		}
	}
	return out
}

// gustVisible mirrors the loose presence rule of the display contract: an
// absent or empty gust hides, a numeric zero hides, but a zero-valued
// string (a converted grid reading) still displays.
func gustVisible(gust Scalar) bool {
	switch gust.kind {
	case scalarNumber:
		return gust.num != 0
	case scalarText:
		return gust.str != ""
	default:
		return false
	}
}
