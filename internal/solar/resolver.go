package solar

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/ja-he/winlux/internal/apperr"
	"github.com/ja-he/winlux/internal/model"
)

// MaxLookaheadDays is the number of days after the target date that are
// searched for the next sunrise once the target date's sunset has passed.
const MaxLookaheadDays = 7

// TimeFormat is the format instants are rendered in.
const TimeFormat = "2006-01-02 15:04:05 -07:00"

// DateFormat is the human-readable name of the accepted date format.
const DateFormat = "YYYY-MM-DD"

// Resolver turns raw sunrise/sunset times into SunTimes relative to an
// instant.
type Resolver struct {
	calc Calculator
}

// NewResolver creates a new Resolver using the given calculator, or the
// default one if calc is nil.
func NewResolver(calc Calculator) *Resolver {
	if calc == nil {
		calc = SunriseCalculator{}
	}
	return &Resolver{calc: calc}
}

// Resolve computes the sun times of the target date at the given location and
// classifies the instant now against them.
//
// Local times are rendered in now's location.
// The daylight interval is half-open: the sunset instant itself is night.
func (r *Resolver) Resolve(location model.GeocodeResult, target model.Date, now time.Time) (model.SunTimes, error) {
	zone := now.Location()

	rise, set := r.calc.SunriseSunset(location.Latitude, location.Longitude, target)
	if !representable(rise) {
		return model.SunTimes{}, apperr.New(apperr.TimeConversion, apperr.CodeSunriseGeneration).
			WithParam("date", target.ToString())
	}
	if !representable(set) {
		return model.SunTimes{}, apperr.New(apperr.TimeConversion, apperr.CodeSunsetGeneration).
			WithParam("date", target.ToString())
	}
	rise, set = rise.UTC(), set.UTC()
	riseLocal, setLocal := rise.In(zone), set.In(zone)

	dayLength := set.Unix() - rise.Unix()
	if dayLength < 0 {
		dayLength = 0
	}

	isDaylight := !now.Before(riseLocal) && now.Before(setLocal)
	recommended := model.Dark
	if isDaylight {
		recommended = model.Light
	}

	var kind model.TransitionKind
	var next time.Time
	switch {
	case now.Before(riseLocal):
		kind, next = model.TransitionSunrise, rise
	case now.Before(setLocal):
		kind, next = model.TransitionSunset, set
	default:
		var err error
		next, err = r.nextSunrise(location, target, now)
		if err != nil {
			return model.SunTimes{}, err
		}
		kind = model.TransitionSunrise
	}

	secondsUntil := next.Unix() - now.Unix()
	if secondsUntil < 0 {
		secondsUntil = 0
	}

	return model.SunTimes{
		Address:     location.Address,
		DisplayName: location.DisplayName,
		Latitude:    location.Latitude,
		Longitude:   location.Longitude,
		Date:        target.ToString(),

		SunriseUTC:   rise.Format(TimeFormat),
		SunsetUTC:    set.Format(TimeFormat),
		SunriseLocal: riseLocal.Format(TimeFormat),
		SunsetLocal:  setLocal.Format(TimeFormat),
		SunriseUnix:  rise.Unix(),
		SunsetUnix:   set.Unix(),

		DayLengthSeconds: dayLength,
		DayLengthHMS:     FormatHMS(dayLength),

		IsDaylight:       isDaylight,
		RecommendedTheme: recommended,

		NextTransition:             kind,
		NextTransitionLocal:        next.In(zone).Format(TimeFormat),
		NextTransitionUTC:          next.Format(TimeFormat),
		SecondsUntilNextTransition: secondsUntil,
	}, nil
}

// nextSunrise finds the sunrise following the target date.
//
// Days whose sunrise cannot be computed (polar night) are skipped. When the
// target date is not in the past relative to now, a sunrise that does not lie
// after now is skipped as well, so that a caller scheduling on the result
// never gets pointed at an instant that has already passed.
func (r *Resolver) nextSunrise(location model.GeocodeResult, target model.Date, now time.Time) (time.Time, error) {
	requireFuture := !model.DateFromGotime(now).IsAfter(target)

	day := target
	for i := 0; i < MaxLookaheadDays; i++ {
		var err error
		day, err = day.Next()
		if err != nil {
			return time.Time{}, apperr.Wrap(apperr.TimeConversion, apperr.CodeDateCalculationFailed, err)
		}

		rise, _ := r.calc.SunriseSunset(location.Latitude, location.Longitude, day)
		if !representable(rise) {
			log.Debug().Str("date", day.ToString()).Msg("no sunrise on date, looking further ahead")
			continue
		}
		rise = rise.UTC()
		if requireFuture && !rise.After(now) {
			log.Debug().Str("date", day.ToString()).Time("sunrise", rise).Msg("sunrise already passed, looking further ahead")
			continue
		}
		return rise, nil
	}

	return time.Time{}, apperr.New(apperr.TimeConversion, apperr.CodeNextSunriseGeneration).
		WithParam("date", target.ToString()).
		WithParam("lookahead_days", MaxLookaheadDays)
}

// ResolveTargetDate parses a YYYY-MM-DD date.
// An empty (or whitespace-only) string means today in now's location.
func ResolveTargetDate(s string, now time.Time) (model.Date, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return model.DateFromGotime(now), nil
	}
	d, err := model.FromString(trimmed)
	if err != nil {
		return model.Date{}, apperr.Wrap(apperr.Validation, apperr.CodeDateInvalidFormat, err).
			WithParam("format", DateFormat)
	}
	return d, nil
}

// FormatHMS formats a number of seconds as HH:MM:SS; negative values are
// treated as zero.
func FormatHMS(totalSeconds int64) string {
	if totalSeconds < 0 {
		totalSeconds = 0
	}
	hours := totalSeconds / 3600
	minutes := (totalSeconds % 3600) / 60
	seconds := totalSeconds % 60
	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
}

func representable(t time.Time) bool {
	if t.IsZero() {
		return false
	}
	year := t.UTC().Year()
	return year >= 1 && year <= model.MaxYear
}
