package model

// TransitionKind names the kind of the next daylight transition.
type TransitionKind string

const (
	TransitionSunrise TransitionKind = "sunrise"
	TransitionSunset  TransitionKind = "sunset"
)

// SunTimes represents the sunrise and sunset times of a date at a location,
// along with what they mean for the theme at a given instant.
//
// It is derived data; it is computed fresh on every query and never cached.
type SunTimes struct {
	Address     string  `json:"address"`
	DisplayName string  `json:"display_name"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	Date        string  `json:"date"`

	SunriseUTC   string `json:"sunrise_utc"`
	SunsetUTC    string `json:"sunset_utc"`
	SunriseLocal string `json:"sunrise_local"`
	SunsetLocal  string `json:"sunset_local"`
	SunriseUnix  int64  `json:"sunrise_unix"`
	SunsetUnix   int64  `json:"sunset_unix"`

	DayLengthSeconds int64  `json:"day_length_seconds"`
	DayLengthHMS     string `json:"day_length_hms"`

	IsDaylight       bool      `json:"is_daylight"`
	RecommendedTheme ThemeMode `json:"recommended_theme"`

	NextTransition             TransitionKind `json:"next_transition"`
	NextTransitionLocal        string         `json:"next_transition_local"`
	NextTransitionUTC          string         `json:"next_transition_utc"`
	SecondsUntilNextTransition int64          `json:"seconds_until_next_transition"`
}
