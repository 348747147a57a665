// Package solar computes sunrise and sunset times and what they mean for the
// light/dark theme at a given instant.
package solar

import (
	"time"

	"github.com/nathan-osman/go-sunrise"

	"github.com/ja-he/winlux/internal/model"
)

// Calculator computes the sunrise and sunset (in UTC) of a date at a location.
//
// Implementations must not panic for polar day or night; they return zero
// times instead, which the Resolver rejects.
type Calculator interface {
	SunriseSunset(latitude, longitude float64, d model.Date) (rise, set time.Time)
}

// SunriseCalculator is the default Calculator.
type SunriseCalculator struct{}

// SunriseSunset returns the sunrise and sunset times for the given date at
// the given location.
func (SunriseCalculator) SunriseSunset(latitude, longitude float64, d model.Date) (rise, set time.Time) {
	return sunrise.SunriseSunset(latitude, longitude, d.Year, time.Month(d.Month), d.Day)
}

// CalculatorFunc adapts a function to the Calculator interface.
type CalculatorFunc func(latitude, longitude float64, d model.Date) (rise, set time.Time)

// SunriseSunset calls f.
func (f CalculatorFunc) SunriseSunset(latitude, longitude float64, d model.Date) (rise, set time.Time) {
	return f(latitude, longitude, d)
}
