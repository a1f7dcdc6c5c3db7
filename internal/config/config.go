package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/supermem613/noaacast/internal/domain"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	Latitude  float64
	Longitude float64
	Units     domain.UnitSystem

	UpdateInterval time.Duration
	RequestDelay   time.Duration

	HourlyForecastInterval      int
	MaxHourliesToShow           int
	MaxDailiesToShow            int
	IncludeTodayInDailyForecast bool
	Concise                     bool
	ShowPrecipitationStartStop  bool

	LabelTimeFormat string
	LabelDays       []string
	LabelHigh       string
	LabelLow        string
	LabelGust       string

	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	NWSBaseURL   string
	NWSUserAgent string
	NWSTimeout   time.Duration

	// Kafka broadcasting is optional; an empty broker list disables it.
	KafkaBrokers       []string
	KafkaForecastTopic string
}

var defaultDayLabels = []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// Load reads configuration from environment variables, applying defaults
// where unset. A .env file in the working directory is merged in first when
// present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	lat, err := parseCoordinate("NWS_LATITUDE", 90)
	if err != nil {
		return nil, err
	}
	lon, err := parseCoordinate("NWS_LONGITUDE", 180)
	if err != nil {
		return nil, err
	}

	units := domain.UnitSystem(envOrDefault("UNITS", string(domain.Imperial)))
	if units != domain.Imperial && units != domain.Metric {
		return nil, fmt.Errorf("UNITS must be %q or %q", domain.Imperial, domain.Metric)
	}

	shutdownTimeout, err := parseDurationEnv("SHUTDOWN_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}
	nwsTimeout, err := parseDurationEnv("NWS_TIMEOUT", 30*time.Second)
	if err != nil {
		return nil, err
	}

	dayLabels := defaultDayLabels
	if v := os.Getenv("LABEL_DAYS"); v != "" {
		parts := splitList(v)
		if len(parts) != 7 {
			return nil, errors.New("LABEL_DAYS must list exactly 7 labels, Sunday first")
		}
		dayLabels = parts
	}

	cfg := &Config{
		Latitude:  lat,
		Longitude: lon,
		Units:     units,

		UpdateInterval: time.Duration(parseIntSetting("UPDATE_INTERVAL_MINUTES", 10)) * time.Minute,
		RequestDelay:   time.Duration(parseIntSetting("REQUEST_DELAY_MS", 0)) * time.Millisecond,

		HourlyForecastInterval:      parseIntSetting("HOURLY_FORECAST_INTERVAL", 3),
		MaxHourliesToShow:           parseIntSetting("MAX_HOURLIES_TO_SHOW", 3),
		MaxDailiesToShow:            parseIntSetting("MAX_DAILIES_TO_SHOW", 3),
		IncludeTodayInDailyForecast: envBool("INCLUDE_TODAY_IN_DAILY_FORECAST", false),
		Concise:                     envBool("CONCISE", true),
		ShowPrecipitationStartStop:  envBool("SHOW_PRECIPITATION_START_STOP", false),

		LabelTimeFormat: envOrDefault("LABEL_TIME_FORMAT", "3 PM"),
		LabelDays:       dayLabels,
		LabelHigh:       envOrDefault("LABEL_HIGH", "H"),
		LabelLow:        envOrDefault("LABEL_LOW", "L"),
		LabelGust:       envOrDefault("LABEL_GUST", "max"),

		HTTPAddr:        envOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        envOrDefault("LOG_LEVEL", "info"),
		LogFormat:       envOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		NWSBaseURL:   envOrDefault("NWS_BASE_URL", "https://api.weather.gov"),
		NWSUserAgent: envOrDefault("NWS_USER_AGENT", "noaacast (github.com/supermem613/noaacast)"),
		NWSTimeout:   nwsTimeout,

		KafkaForecastTopic: envOrDefault("KAFKA_FORECAST_TOPIC", "noaacast-forecasts"),
	}

	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		cfg.KafkaBrokers = splitList(v)
	}

	if cfg.UpdateInterval <= 0 {
		return nil, errors.New("UPDATE_INTERVAL_MINUTES must be positive")
	}

	return cfg, nil
}

// DisplayOptions maps the loaded settings to the assembler's options.
func (c *Config) DisplayOptions() domain.DisplayOptions {
	return domain.DisplayOptions{
		Units:          c.Units,
		Concise:        c.Concise,
		ShowHourly:     c.MaxHourliesToShow > 0,
		HourlyInterval: c.HourlyForecastInterval,
		MaxHourlies:    c.MaxHourliesToShow,
		ShowDaily:      c.MaxDailiesToShow > 0,
		MaxDailies:     c.MaxDailiesToShow,
		IncludeToday:   c.IncludeTodayInDailyForecast,

		ShowPrecipitationStartStop: c.ShowPrecipitationStartStop,

		TimeLayout: c.LabelTimeFormat,
		DayLabels:  c.LabelDays,
		LabelHigh:  c.LabelHigh,
		LabelLow:   c.LabelLow,
		LabelGust:  c.LabelGust,
	}
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		return v == "true"
	}
	return fallback
}

// parseIntSetting coerces loosely formatted numeric settings: plain integers
// parse directly, fractional values truncate, and anything else falls back
// to the default.
func parseIntSetting(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	if n, err := strconv.Atoi(v); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(v, 64); err == nil {
		return int(f)
	}
	return fallback
}

func parseDurationEnv(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return d, nil
}

func parseCoordinate(key string, bound float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return 0, fmt.Errorf("%s is required", key)
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	if f < -bound || f > bound {
		return 0, fmt.Errorf("%s out of range", key)
	}
	return f, nil
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
