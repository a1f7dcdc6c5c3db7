package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/supermem613/noaacast/internal/domain"
)

func setCoordinates(t *testing.T) {
	t.Helper()
	t.Setenv("NWS_LATITUDE", "38.89")
	t.Setenv("NWS_LONGITUDE", "-77.03")
}

func TestLoad_Defaults(t *testing.T) {
	setCoordinates(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 38.89, cfg.Latitude)
	assert.Equal(t, -77.03, cfg.Longitude)
	assert.Equal(t, domain.Imperial, cfg.Units)
	assert.Equal(t, 10*time.Minute, cfg.UpdateInterval)
	assert.Equal(t, time.Duration(0), cfg.RequestDelay)
	assert.Equal(t, 3, cfg.HourlyForecastInterval)
	assert.Equal(t, 3, cfg.MaxHourliesToShow)
	assert.Equal(t, 3, cfg.MaxDailiesToShow)
	assert.False(t, cfg.IncludeTodayInDailyForecast)
	assert.True(t, cfg.Concise)
	assert.False(t, cfg.ShowPrecipitationStartStop)
	assert.Equal(t, "3 PM", cfg.LabelTimeFormat)
	assert.Equal(t, []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}, cfg.LabelDays)
	assert.Equal(t, "H", cfg.LabelHigh)
	assert.Equal(t, "L", cfg.LabelLow)
	assert.Equal(t, "max", cfg.LabelGust)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, "https://api.weather.gov", cfg.NWSBaseURL)
	assert.Equal(t, 30*time.Second, cfg.NWSTimeout)
	assert.Empty(t, cfg.KafkaBrokers)
	assert.Equal(t, "noaacast-forecasts", cfg.KafkaForecastTopic)
}

func TestLoad_CustomEnv(t *testing.T) {
	setCoordinates(t)
	t.Setenv("UNITS", "metric")
	t.Setenv("UPDATE_INTERVAL_MINUTES", "30")
	t.Setenv("REQUEST_DELAY_MS", "250")
	t.Setenv("HOURLY_FORECAST_INTERVAL", "2")
	t.Setenv("MAX_HOURLIES_TO_SHOW", "6")
	t.Setenv("MAX_DAILIES_TO_SHOW", "5")
	t.Setenv("INCLUDE_TODAY_IN_DAILY_FORECAST", "true")
	t.Setenv("CONCISE", "false")
	t.Setenv("SHOW_PRECIPITATION_START_STOP", "true")
	t.Setenv("LABEL_TIME_FORMAT", "15:04")
	t.Setenv("LABEL_DAYS", "So,Mo,Di,Mi,Do,Fr,Sa")
	t.Setenv("LABEL_HIGH", "Hi")
	t.Setenv("LABEL_LOW", "Lo")
	t.Setenv("LABEL_GUST", "gusting")
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("SHUTDOWN_TIMEOUT", "30s")
	t.Setenv("NWS_BASE_URL", "http://localhost:8081")
	t.Setenv("NWS_TIMEOUT", "5s")
	t.Setenv("KAFKA_BROKERS", "broker1:9092, broker2:9092")
	t.Setenv("KAFKA_FORECAST_TOPIC", "forecasts")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, domain.Metric, cfg.Units)
	assert.Equal(t, 30*time.Minute, cfg.UpdateInterval)
	assert.Equal(t, 250*time.Millisecond, cfg.RequestDelay)
	assert.Equal(t, 2, cfg.HourlyForecastInterval)
	assert.Equal(t, 6, cfg.MaxHourliesToShow)
	assert.Equal(t, 5, cfg.MaxDailiesToShow)
	assert.True(t, cfg.IncludeTodayInDailyForecast)
	assert.False(t, cfg.Concise)
	assert.True(t, cfg.ShowPrecipitationStartStop)
	assert.Equal(t, "15:04", cfg.LabelTimeFormat)
	assert.Equal(t, []string{"So", "Mo", "Di", "Mi", "Do", "Fr", "Sa"}, cfg.LabelDays)
	assert.Equal(t, "Hi", cfg.LabelHigh)
	assert.Equal(t, "Lo", cfg.LabelLow)
	assert.Equal(t, "gusting", cfg.LabelGust)
	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, "http://localhost:8081", cfg.NWSBaseURL)
	assert.Equal(t, 5*time.Second, cfg.NWSTimeout)
	assert.Equal(t, []string{"broker1:9092", "broker2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "forecasts", cfg.KafkaForecastTopic)
}

func TestLoad_MissingCoordinates(t *testing.T) {
	t.Run("latitude", func(t *testing.T) {
		t.Setenv("NWS_LONGITUDE", "-77.03")
		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "NWS_LATITUDE")
	})

	t.Run("longitude", func(t *testing.T) {
		t.Setenv("NWS_LATITUDE", "38.89")
		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "NWS_LONGITUDE")
	})
}

func TestLoad_InvalidCoordinates(t *testing.T) {
	t.Run("not a number", func(t *testing.T) {
		t.Setenv("NWS_LATITUDE", "north-ish")
		t.Setenv("NWS_LONGITUDE", "-77.03")
		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "NWS_LATITUDE")
	})

	t.Run("out of range", func(t *testing.T) {
		t.Setenv("NWS_LATITUDE", "91")
		t.Setenv("NWS_LONGITUDE", "-77.03")
		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "out of range")
	})
}

func TestLoad_InvalidUnits(t *testing.T) {
	setCoordinates(t)
	t.Setenv("UNITS", "kelvin")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "UNITS")
}

func TestLoad_CoercedNumericSettings(t *testing.T) {
	setCoordinates(t)

	t.Run("fractional values truncate", func(t *testing.T) {
		t.Setenv("MAX_DAILIES_TO_SHOW", "4.9")
		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, 4, cfg.MaxDailiesToShow)
	})

	t.Run("garbage falls back to the default", func(t *testing.T) {
		t.Setenv("MAX_DAILIES_TO_SHOW", "several")
		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, 3, cfg.MaxDailiesToShow)
	})
}

func TestLoad_InvalidUpdateInterval(t *testing.T) {
	setCoordinates(t)
	t.Setenv("UPDATE_INTERVAL_MINUTES", "-5")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "UPDATE_INTERVAL_MINUTES")
}

func TestLoad_InvalidDayLabels(t *testing.T) {
	setCoordinates(t)
	t.Setenv("LABEL_DAYS", "Mon,Tue")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "LABEL_DAYS")
}

func TestLoad_InvalidShutdownTimeout(t *testing.T) {
	setCoordinates(t)
	t.Setenv("SHUTDOWN_TIMEOUT", "not-a-duration")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SHUTDOWN_TIMEOUT")
}

func TestDisplayOptions(t *testing.T) {
	setCoordinates(t)
	t.Setenv("CONCISE", "false")
	t.Setenv("MAX_HOURLIES_TO_SHOW", "0")

	cfg, err := Load()
	require.NoError(t, err)

	opts := cfg.DisplayOptions()

	assert.Equal(t, domain.Imperial, opts.Units)
	assert.False(t, opts.Concise)
	assert.False(t, opts.ShowHourly)
	assert.True(t, opts.ShowDaily)
	assert.Equal(t, 3, opts.MaxDailies)
	assert.Equal(t, "3 PM", opts.TimeLayout)
	assert.Equal(t, "H", opts.LabelHigh)
}
