// Command validate runs the full normalization pipeline over three forecast
// documents on disk and reports what comes out: parse results, augmentation
// coverage, and the assembled display forecast. Useful for checking mock
// fixtures and for diffing behavior against a captured set of real API
// responses.
//
// Usage:
//
//	go run ./cmd/validate \
//	  -daily data/mock/forecast.json \
//	  -hourly data/mock/forecast_hourly.json \
//	  -grid data/mock/grid.json \
//	  -at 2026-01-15T09:00:00Z
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/supermem613/noaacast/internal/domain"
)

func main() {
	daily := flag.String("daily", "", "path to the daily forecast document")
	hourly := flag.String("hourly", "", "path to the hourly forecast document")
	grid := flag.String("grid", "", "path to the raw grid-data document")
	at := flag.String("at", "", "fixed 'now' for the pipeline (RFC 3339), defaults to wall clock")
	units := flag.String("units", "imperial", "display units: imperial or metric")
	flag.Parse()

	if *daily == "" || *hourly == "" || *grid == "" {
		flag.Usage()
		os.Exit(1)
	}

	if code := run(*daily, *hourly, *grid, *at, domain.UnitSystem(*units)); code != 0 {
		os.Exit(code)
	}
}

func run(dailyPath, hourlyPath, gridPath, at string, units domain.UnitSystem) int {
	if at != "" {
		now, err := time.Parse(time.RFC3339, at)
		if err != nil {
			fmt.Fprintf(os.Stderr, "invalid -at: %v\n", err)
			return 1
		}
		domain.SetClock(clockwork.NewFakeClockAt(now))
		defer domain.SetClock(nil)
	}

	bundle, err := readBundle(dailyPath, hourlyPath, gridPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	snap, err := domain.ParseSnapshot(bundle)
	if err != nil {
		fmt.Fprintf(os.Stderr, "parse failed: %v\n", err)
		return 1
	}
	fmt.Printf("parsed: %d hourly periods, %d daily periods, %d grid parameters\n",
		len(snap.Hourly), len(snap.Daily), len(snap.Grid))

	domain.Augment(snap, units)
	reportAugmentation(snap)

	forecast := domain.BuildDisplayForecast(snap, displayOptions(units))

	out, err := json.MarshalIndent(forecast, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "marshal forecast: %v\n", err)
		return 1
	}
	fmt.Println(string(out))
	return 0
}

func readBundle(dailyPath, hourlyPath, gridPath string) (domain.RawForecastBundle, error) {
	var bundle domain.RawForecastBundle
	var err error
	if bundle.Daily, err = os.ReadFile(dailyPath); err != nil {
		return bundle, fmt.Errorf("read daily document: %w", err)
	}
	if bundle.Hourly, err = os.ReadFile(hourlyPath); err != nil {
		return bundle, fmt.Errorf("read hourly document: %w", err)
	}
	if bundle.Grid, err = os.ReadFile(gridPath); err != nil {
		return bundle, fmt.Errorf("read grid document: %w", err)
	}
	return bundle, nil
}

// reportAugmentation counts how many periods picked up each derived field,
// so sparse grid coverage is visible at a glance.
func reportAugmentation(snap *domain.WeatherSnapshot) {
	var feels, gust, rain, snow int
	for i := range snap.Hourly {
		p := &snap.Hourly[i]
		if !p.FeelsLike.IsNone() {
			feels++
		}
		if !p.WindGust.IsNone() {
			gust++
		}
		if !p.RainAccumulation.IsNone() {
			rain++
		}
		if !p.SnowAccumulation.IsNone() {
			snow++
		}
	}
	fmt.Printf("augmented hourly: feels-like %d/%d, gust %d/%d, rain %d/%d, snow %d/%d\n",
		feels, len(snap.Hourly), gust, len(snap.Hourly), rain, len(snap.Hourly), snow, len(snap.Hourly))

	var minmax int
	for i := range snap.Daily {
		if !snap.Daily[i].MinTemperature.IsNone() && !snap.Daily[i].MaxTemperature.IsNone() {
			minmax++
		}
	}
	fmt.Printf("augmented daily: min/max %d/%d\n", minmax, len(snap.Daily))
}

func displayOptions(units domain.UnitSystem) domain.DisplayOptions {
	return domain.DisplayOptions{
		Units:          units,
		Concise:        false,
		ShowHourly:     true,
		HourlyInterval: 3,
		MaxHourlies:    6,
		ShowDaily:      true,
		MaxDailies:     5,

		ShowPrecipitationStartStop: true,

		TimeLayout: "3 PM",
		DayLabels:  []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"},
		LabelHigh:  "H",
		LabelLow:   "L",
		LabelGust:  "max",
	}
}
