// Command genmock generates deterministic mock NWS forecast documents for
// offline development and testing: a daily forecast, an hourly forecast, and
// a raw grid-data document, shaped like the real API responses. Pointing
// NWS_BASE_URL at a static file server over the output directory gives the
// service a stable upstream.
//
// Usage:
//
//	go run ./cmd/genmock -out-dir data/mock -base-date 2026-01-15
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"time"
)

const (
	hourlyPeriods = 72
	dailyDays     = 7
)

var icons = []string{
	"https://api.weather.gov/icons/land/day/skc?size=medium",
	"https://api.weather.gov/icons/land/day/few?size=medium",
	"https://api.weather.gov/icons/land/day/bkn?size=medium",
	"https://api.weather.gov/icons/land/day/rain,40?size=medium",
	"https://api.weather.gov/icons/land/night/snow,60?size=medium",
}

var shortForecasts = []string{
	"Sunny", "Mostly Sunny", "Mostly Cloudy", "Chance Rain Showers", "Snow Likely",
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	outDir := flag.String("out-dir", "", "output directory for the three mock documents")
	baseDateStr := flag.String("base-date", "2026-01-15", "forecast start date (YYYY-MM-DD)")
	flag.Parse()

	if *outDir == "" {
		flag.Usage()
		return fmt.Errorf("missing required flag: -out-dir")
	}

	baseDate, err := time.Parse("2006-01-02", *baseDateStr)
	if err != nil {
		return fmt.Errorf("parse -base-date: %w", err)
	}
	base := baseDate.UTC()

	// Seed from the date so regenerating for the same day is reproducible.
	rng := rand.New(rand.NewSource(base.Unix()))

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		return err
	}

	docs := map[string]any{
		"forecast.json":        dailyDoc(base, rng),
		"forecast_hourly.json": hourlyDoc(base, rng),
		"grid.json":            gridDoc(base, rng),
	}
	for name, doc := range docs {
		if err := writeJSON(filepath.Join(*outDir, name), doc); err != nil {
			return err
		}
	}

	fmt.Printf("wrote %d mock documents to %s\n", len(docs), *outDir)
	return nil
}

type period struct {
	Name             string `json:"name,omitempty"`
	StartTime        string `json:"startTime"`
	EndTime          string `json:"endTime"`
	Temperature      int    `json:"temperature"`
	TemperatureUnit  string `json:"temperatureUnit"`
	WindSpeed        string `json:"windSpeed"`
	WindDirection    string `json:"windDirection"`
	Icon             string `json:"icon"`
	ShortForecast    string `json:"shortForecast"`
	DetailedForecast string `json:"detailedForecast,omitempty"`

	ProbabilityOfPrecipitation valueField `json:"probabilityOfPrecipitation"`
	RelativeHumidity           valueField `json:"relativeHumidity"`
}

type valueField struct {
	UnitCode string `json:"unitCode"`
	Value    *int   `json:"value"`
}

type periodsDoc struct {
	Properties struct {
		Periods []period `json:"periods"`
	} `json:"properties"`
}

func intPtr(v int) *int { return &v }

func stamp(t time.Time) string { return t.Format("2006-01-02T15:04:05-07:00") }

func dailyDoc(base time.Time, rng *rand.Rand) periodsDoc {
	names := []string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}

	var doc periodsDoc
	for d := 0; d < dailyDays; d++ {
		dayStart := base.AddDate(0, 0, d).Add(6 * time.Hour)
		high := 35 + rng.Intn(20)
		cond := rng.Intn(len(icons))
		name := names[int(dayStart.Weekday())]

		doc.Properties.Periods = append(doc.Properties.Periods, period{
			Name:             name,
			StartTime:        stamp(dayStart),
			EndTime:          stamp(dayStart.Add(12 * time.Hour)),
			Temperature:      high,
			TemperatureUnit:  "F",
			WindSpeed:        fmt.Sprintf("%d mph", 5+rng.Intn(15)),
			WindDirection:    "NW",
			Icon:             icons[cond],
			ShortForecast:    shortForecasts[cond],
			DetailedForecast: fmt.Sprintf("%s, with a high near %d.", shortForecasts[cond], high),

			ProbabilityOfPrecipitation: valueField{UnitCode: "wmoUnit:percent", Value: intPtr(rng.Intn(100))},
			RelativeHumidity:           valueField{UnitCode: "wmoUnit:percent", Value: intPtr(40 + rng.Intn(50))},
		}, period{
			Name:            name + " Night",
			StartTime:       stamp(dayStart.Add(12 * time.Hour)),
			EndTime:         stamp(dayStart.Add(24 * time.Hour)),
			Temperature:     high - 10 - rng.Intn(5),
			TemperatureUnit: "F",
			WindSpeed:       fmt.Sprintf("%d mph", 3+rng.Intn(10)),
			WindDirection:   "N",
			Icon:            icons[cond],
			ShortForecast:   shortForecasts[cond],

			ProbabilityOfPrecipitation: valueField{UnitCode: "wmoUnit:percent", Value: intPtr(rng.Intn(100))},
			RelativeHumidity:           valueField{UnitCode: "wmoUnit:percent", Value: intPtr(50 + rng.Intn(40))},
		})
	}
	return doc
}

func hourlyDoc(base time.Time, rng *rand.Rand) periodsDoc {
	var doc periodsDoc
	for h := 0; h < hourlyPeriods; h++ {
		start := base.Add(time.Duration(h) * time.Hour)
		cond := rng.Intn(len(icons))

		// Leave an occasional probability null; the real feed does.
		var pop *int
		if rng.Intn(10) > 0 {
			pop = intPtr(rng.Intn(100))
		}

		doc.Properties.Periods = append(doc.Properties.Periods, period{
			StartTime:       stamp(start),
			EndTime:         stamp(start.Add(time.Hour)),
			Temperature:     30 + rng.Intn(25),
			TemperatureUnit: "F",
			WindSpeed:       fmt.Sprintf("%d mph", 3+rng.Intn(15)),
			WindDirection:   "NW",
			Icon:            icons[cond],
			ShortForecast:   shortForecasts[cond],

			ProbabilityOfPrecipitation: valueField{UnitCode: "wmoUnit:percent", Value: pop},
			RelativeHumidity:           valueField{UnitCode: "wmoUnit:percent", Value: intPtr(40 + rng.Intn(50))},
		})
	}
	return doc
}

type gridSeries struct {
	UOM    string       `json:"uom"`
	Values []gridRecord `json:"values"`
}

type gridRecord struct {
	ValidTime string  `json:"validTime"`
	Value     float64 `json:"value"`
}

func gridDoc(base time.Time, rng *rand.Rand) map[string]any {
	sixHourly := func(unit string, gen func() float64) gridSeries {
		s := gridSeries{UOM: unit}
		for i := 0; i < 4*3; i++ {
			start := base.Add(time.Duration(i*6) * time.Hour)
			s.Values = append(s.Values, gridRecord{
				ValidTime: stamp(start) + "/PT6H",
				Value:     gen(),
			})
		}
		return s
	}
	dailySeries := func(unit string, gen func() float64) gridSeries {
		s := gridSeries{UOM: unit}
		for d := 0; d < dailyDays; d++ {
			start := base.AddDate(0, 0, d).Add(5 * time.Hour)
			s.Values = append(s.Values, gridRecord{
				ValidTime: stamp(start) + "/PT13H",
				Value:     gen(),
			})
		}
		return s
	}

	round1 := func(f float64) float64 { return float64(int(f*10)) / 10 }

	properties := map[string]any{
		"updateTime":                stamp(base),
		"maxTemperature":            dailySeries("wmoUnit:degC", func() float64 { return round1(rng.Float64()*12 + 2) }),
		"minTemperature":            dailySeries("wmoUnit:degC", func() float64 { return round1(rng.Float64()*8 - 6) }),
		"quantitativePrecipitation": sixHourly("wmoUnit:mm", func() float64 { return round1(rng.Float64() * 6) }),
		"iceAccumulation":           sixHourly("wmoUnit:mm", func() float64 { return round1(rng.Float64() * 2) }),
		"windGust":                  sixHourly("wmoUnit:km_h-1", func() float64 { return round1(rng.Float64()*30 + 10) }),
	}
	return map[string]any{"properties": properties}
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}
