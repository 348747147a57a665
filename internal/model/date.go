package model

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// Date	represents a calendar date, i.e. a year, month and day.
type Date struct {
	Year  int
	Month int
	Day   int
}

// MaxYear is the last year a Date can be advanced into.
const MaxYear = 9999

var dateRegex = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})$`)

// DateFromGotime returns the date of the given time in the time's location.
func DateFromGotime(t time.Time) Date {
	return Date{Year: t.Year(), Month: int(t.Month()), Day: t.Day()}
}

// Next returns the next date.
// It fails if the next date would lie beyond MaxYear.
func (d Date) Next() (Date, error) {
	if d == d.GetLastOfMonth() {
		d.Day = 1
		if d.Month == 12 {
			if d.Year >= MaxYear {
				return d, fmt.Errorf("date after %04d-12-31 not representable", d.Year)
			}
			d.Month = 1
			d.Year++
		} else {
			d.Month++
		}
	} else {
		d.Day++
	}
	return d, nil
}

// ToString returns the date in the YYYY-MM-DD format.
func (d Date) ToString() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// Valid returns whether the date exists in the proleptic Gregorian calendar.
func (d Date) Valid() bool {
	// verify month
	if d.Month < 1 ||
		d.Month > 12 {
		return false
	}

	if d.Day < 1 ||
		d.Day > d.GetLastOfMonth().Day {
		return false
	}

	return true
}

// FromString parses a date in the YYYY-MM-DD format.
func FromString(s string) (Date, error) {
	parsed := dateRegex.FindStringSubmatch(s)
	if len(parsed) != 4 {
		return Date{}, fmt.Errorf("day string '%s' does not match YYYY-MM-DD", s)
	}

	year, errY := strconv.Atoi(parsed[1])
	month, errM := strconv.Atoi(parsed[2])
	day, errD := strconv.Atoi(parsed[3])
	if errY != nil || errM != nil || errD != nil {
		return Date{}, fmt.Errorf("could not convert string '%s' (assuming YYYY-MM-DD format) to integers", s)
	}

	result := Date{Year: year, Month: month, Day: day}
	if !result.Valid() {
		return Date{}, fmt.Errorf("day %s (from string '%s') not valid", result.ToString(), s)
	}
	return result, nil
}

func lastDaysOfMonth() map[int]int {
	return map[int]int{
		1:  31,
		2:  28,
		3:  31,
		4:  30,
		5:  31,
		6:  30,
		7:  31,
		8:  31,
		9:  30,
		10: 31,
		11: 30,
		12: 31,
	}
}

// IsAfter returns whether a date A is after a date B.
func (a Date) IsAfter(b Date) bool {
	switch {
	case a.Year != b.Year:
		return a.Year > b.Year
	case a.Month != b.Month:
		return a.Month > b.Month
	default:
		return a.Day > b.Day
	}
}

// GetLastOfMonth returns the last date of the month of the receiver.
func (d Date) GetLastOfMonth() Date {
	var lastDay int

	switch {
	case d.Month == 2 && d.isLeapYear():
		lastDay = 29
	default:
		lastDay = lastDaysOfMonth()[d.Month]
	}

	return Date{Year: d.Year, Month: d.Month, Day: lastDay}
}

func (d Date) isLeapYear() bool {
	return d.Year%4 == 0 && (!(d.Year%100 == 0) || d.Year%400 == 0)
}

// Is returns whether the given time falls on the receiver date (in the
// time's location).
func (d Date) Is(t time.Time) bool {
	tYear, tMonth, tDay := t.Date()
	return tYear == d.Year && int(tMonth) == d.Month && tDay == d.Day
}

// ToGotime returns midnight of the date in the given location.
func (d Date) ToGotime(loc *time.Location) time.Time {
	return time.Date(d.Year, time.Month(d.Month), d.Day, 0, 0, 0, 0, loc)
}
