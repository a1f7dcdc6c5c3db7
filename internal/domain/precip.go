package domain

import (
	"fmt"
	"strings"
	"time"
)

// precipScanWindow bounds the forward scan; transitions more than a day out
// are not worth announcing.
const precipScanWindow = 24

// PrecipEvent describes the first upcoming start or stop of precipitation
// found in the hourly forecast.
type PrecipEvent struct {
	Type       string `json:"type"`       // "start" or "stop"
	PrecipType string `json:"precipType"` // "snow" or "rain"
	Time       string `json:"time"`
	Message    string `json:"message"`
}

// iconIndicatesSnow classifies frozen precipitation from a display icon
// name. Sleet and freezing conditions count as snow for messaging.
func iconIndicatesSnow(iconName string) bool {
	if iconName == "" {
		return false
	}
	lower := strings.ToLower(iconName)
	return strings.Contains(lower, "snow") ||
		strings.Contains(lower, "sleet") ||
		strings.Contains(lower, "freezing") ||
		strings.Contains(lower, "ice") ||
		strings.Contains(lower, "blizzard")
}

func iconIndicatesRain(iconName string) bool {
	if iconName == "" {
		return false
	}
	lower := strings.ToLower(iconName)
	return strings.Contains(lower, "rain") ||
		strings.Contains(lower, "showers") ||
		strings.Contains(lower, "thunder") ||
		strings.Contains(lower, "tsra")
}

// DetectPrecipitationChange scans the augmented hourly periods for the first
// future instant where precipitation flips on or off relative to the current
// hour, using icon codes as the precipitation signal. Only one event is
// reported per call; candidates at or before "now" are skipped. Returns nil
// when disabled, when fewer than two periods exist, or when nothing flips
// within the scan window.
//
// A stop instant prefers the last precipitating period's end time, then its
// start plus one hour, then the next period's start.
func DetectPrecipitationChange(hourly []PeriodRecord, enabled bool, timeLayout string) *PrecipEvent {
	if !enabled || len(hourly) < 2 {
		return nil
	}

	currentIcon := IconName(hourly[0].Icon)
	currentSnow := iconIndicatesSnow(currentIcon)
	currentRain := iconIndicatesRain(currentIcon)
	currentPrecip := currentSnow || currentRain
	now := clock.Now()

	limit := len(hourly)
	if limit > precipScanWindow {
		limit = precipScanWindow
	}

	for i := 1; i < limit; i++ {
		futureIcon := IconName(hourly[i].Icon)
		futureSnow := iconIndicatesSnow(futureIcon)
		futurePrecip := futureSnow || iconIndicatesRain(futureIcon)

		if !currentPrecip && futurePrecip {
			at := hourly[i].Start
			if at.IsZero() || !at.After(now) {
				continue
			}
			kind := "rain"
			verb := "Rain expected at"
			if futureSnow {
				kind = "snow"
				verb = "Snow expected at"
			}
			return precipEvent("start", kind, verb, at, now, timeLayout)
		}

		if currentPrecip && !futurePrecip {
			last := hourly[i-1]
			var at time.Time
			switch {
			case !last.End.IsZero():
				at = last.End
			case !last.Start.IsZero():
				at = last.Start.Add(time.Hour)
			default:
				at = hourly[i].Start
			}
			if at.IsZero() || !at.After(now) {
				continue
			}
			kind := "rain"
			verb := "Rain ending by"
			if currentSnow {
				kind = "snow"
				verb = "Snow ending by"
			}
			return precipEvent("stop", kind, verb, at, now, timeLayout)
		}
	}
	return nil
}

func precipEvent(eventType, kind, verb string, at, now time.Time, timeLayout string) *PrecipEvent {
	timeStr := at.Format(timeLayout)
	suffix := ""
	if !sameDay(at, now) {
		suffix = " tomorrow"
	}
	return &PrecipEvent{
		Type:       eventType,
		PrecipType: kind,
		Time:       timeStr,
		Message:    fmt.Sprintf("%s %s%s", verb, timeStr, suffix),
	}
}
