package domain

import "strings"

// noaaIconNames maps NWS condition codes to display icon names. Order
// matters: the first code found as a substring of the icon URL wins, so
// compound codes resolve through their earlier components (e.g. "rain_snow"
// hits "snow", "rain_fzra" hits "fzra").
//
// Reference: https://api.weather.gov/icons and
// https://github.com/weather-gov/weather.gov/blob/main/docs/icons.md
var noaaIconNames = []struct {
	code string
	name string
}{
	{"wind_skc", "clear"},
	{"wind_few", "partly-cloudy"},
	{"wind_sct", "partly-cloudy"},
	{"wind_bkn", "cloudy"},
	{"wind_ovc", "cloudy"},
	{"snow", "snow"},
	{"rain_snow", "snow"},
	{"rain_sleet", "sleet"},
	{"snow_sleet", "snow"},
	{"fzra", "Freezing rain"},
	{"rain_fzra", "rain"},
	{"snow_fzra", "snow"},
	{"sleet", "sleet"},
	{"rain", "rain"},
	{"rain_showers", "rain"},
	{"rain_showers_hi", "rain"},
	{"tsra", "thunderstorm"},
	{"tsra_sct", "thunderstorm"},
	{"tsra_hi", "thunderstorm"},
	{"tornado", "tornado"},
	{"hurricane", "tornado"},
	{"tropical_storm", "storm"},
	{"dust", "fog"},
	{"smoke", "fog"},
	{"haze", "fog"},
	{"hot", "clear"},
	{"cold", "clear"},
	{"blizzard", "snow"},
	{"fog", "fog"},
	{"skc", "clear"},
	{"few", "partly-cloudy"},
	{"sct", "partly-cloudy"},
	{"bkn", "cloudy"},
	{"ovc", "cloudy"},
}

// IconName converts an NWS icon URL to a display icon name. Clear and
// partly-cloudy conditions split into day/night variants based on the URL's
// path. Unrecognized URLs return "".
func IconName(iconURL string) string {
	if iconURL == "" {
		return ""
	}
	night := strings.Contains(iconURL, "night")
	for _, entry := range noaaIconNames {
		if !strings.Contains(iconURL, entry.code) {
			continue
		}
		switch entry.name {
		case "clear":
			if night {
				return "clear-night"
			}
			return "clear-day"
		case "partly-cloudy":
			if night {
				return "partly-cloudy-night"
			}
			return "partly-cloudy-day"
		default:
			return entry.name
		}
	}
	return ""
}
