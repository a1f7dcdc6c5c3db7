package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFeelsLike(t *testing.T) {
	t.Run("wind chill below actual", func(t *testing.T) {
		out := FeelsLike(Number(40), Number(15), Number(50), Imperial)

		f, ok := out.Float()
		require.True(t, ok)
		assert.Less(t, f, 40.0)
	})

	t.Run("heat index above actual", func(t *testing.T) {
		out := FeelsLike(Number(90), Number(5), Number(60), Imperial)

		f, ok := out.Float()
		require.True(t, ok)
		assert.Greater(t, f, 90.0)
	})

	t.Run("mild conditions pass through", func(t *testing.T) {
		assert.Equal(t, Number(70), FeelsLike(Number(70), Number(5), Number(50), Imperial))
	})

	t.Run("cold but calm is not chilled", func(t *testing.T) {
		assert.Equal(t, Number(30), FeelsLike(Number(30), Number(2), Number(50), Imperial))
	})

	t.Run("hot but dry is not indexed", func(t *testing.T) {
		assert.Equal(t, Number(95), FeelsLike(Number(95), Number(5), Number(20), Imperial))
	})

	t.Run("metric inputs and output", func(t *testing.T) {
		// 4°C at 24 km/h is squarely in wind-chill territory.
		out := FeelsLike(Number(4), Number(24), Number(50), Metric)

		f, ok := out.Float()
		require.True(t, ok)
		assert.Less(t, f, 4.0)
	})

	t.Run("non-numeric temperature passes through", func(t *testing.T) {
		assert.Equal(t, Text("brisk"), FeelsLike(Text("brisk"), Number(10), Number(50), Imperial))
		assert.Equal(t, None(), FeelsLike(None(), Number(10), Number(50), Imperial))
	})

	t.Run("missing wind defaults to calm", func(t *testing.T) {
		assert.Equal(t, Number(40), FeelsLike(Number(40), None(), Number(50), Imperial))
	})

	t.Run("missing humidity defaults to moderate", func(t *testing.T) {
		out := FeelsLike(Number(90), Number(5), None(), Imperial)

		f, ok := out.Float()
		require.True(t, ok)
		assert.Greater(t, f, 90.0)
	})

	t.Run("rounds to one decimal", func(t *testing.T) {
		out := FeelsLike(Number(40), Number(15), Number(50), Imperial)

		f, ok := out.Float()
		require.True(t, ok)
		assert.Equal(t, roundTo(f, 1), f)
	})
}

func TestReconcileTemperature(t *testing.T) {
	maxPick := func(a, b float64) float64 {
		if a > b {
			return a
		}
		return b
	}
	minPick := func(a, b float64) float64 {
		if a < b {
			return a
		}
		return b
	}

	t.Run("both present picks the extreme", func(t *testing.T) {
		hourly := 75.0
		assert.Equal(t, Text("80"), reconcileTemperature(&hourly, Text("80"), maxPick))
		assert.Equal(t, Text("75"), reconcileTemperature(&hourly, Text("80"), minPick))
	})

	t.Run("hourly only", func(t *testing.T) {
		hourly := 62.5
		assert.Equal(t, Text("62.5"), reconcileTemperature(&hourly, None(), maxPick))
	})

	t.Run("grid only", func(t *testing.T) {
		assert.Equal(t, Text("45"), reconcileTemperature(nil, Number(45), maxPick))
	})

	t.Run("unparseable grid text displays verbatim", func(t *testing.T) {
		assert.Equal(t, Text("around 50"), reconcileTemperature(nil, Text("around 50"), maxPick))
	})

	t.Run("neither source", func(t *testing.T) {
		assert.Equal(t, None(), reconcileTemperature(nil, None(), maxPick))
	})
}

func TestDailyMinMaxFromHourly(t *testing.T) {
	day := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
	period := func(hour int, temp Scalar) PeriodRecord {
		return PeriodRecord{
			Start:       time.Date(2026, 1, 15, hour, 0, 0, 0, time.UTC),
			Temperature: temp,
		}
	}

	t.Run("extremes across the day", func(t *testing.T) {
		hourly := []PeriodRecord{
			period(6, Number(40)),
			period(12, Number(55)),
			period(18, Number(48)),
		}

		minTemp, maxTemp := dailyMinMaxFromHourly(day, hourly)

		require.NotNil(t, minTemp)
		require.NotNil(t, maxTemp)
		assert.Equal(t, 40.0, *minTemp)
		assert.Equal(t, 55.0, *maxTemp)
	})

	t.Run("other days are excluded", func(t *testing.T) {
		hourly := []PeriodRecord{
			period(6, Number(40)),
			{
				Start:       time.Date(2026, 1, 16, 6, 0, 0, 0, time.UTC),
				Temperature: Number(-10),
			},
		}

		minTemp, maxTemp := dailyMinMaxFromHourly(day, hourly)

		require.NotNil(t, minTemp)
		assert.Equal(t, 40.0, *minTemp)
		assert.Equal(t, 40.0, *maxTemp)
	})

	t.Run("non-numeric temperatures are skipped", func(t *testing.T) {
		hourly := []PeriodRecord{
			period(6, Text("mild")),
			period(12, None()),
		}

		minTemp, maxTemp := dailyMinMaxFromHourly(day, hourly)

		assert.Nil(t, minTemp)
		assert.Nil(t, maxTemp)
	})

	t.Run("zero day start", func(t *testing.T) {
		hourly := []PeriodRecord{period(6, Number(40))}

		minTemp, maxTemp := dailyMinMaxFromHourly(time.Time{}, hourly)

		assert.Nil(t, minTemp)
		assert.Nil(t, maxTemp)
	})
}
