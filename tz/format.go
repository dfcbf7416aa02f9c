// Copyright © 2025 Jake Rogers <code@supportoss.org>
package tz

import (
	"fmt"
	"strings"
	"time"
)

// Sentinels returned by the formatters when a zone cannot be resolved.
const (
	InvalidTimezone = "Invalid timezone"
	InvalidDate     = "Invalid date"
)

const (
	clock12Layout = "3:04:05 PM"
	clock24Layout = "15:04:05"
	dateLayout    = "Mon, Jan 2"
)

// LocalReading is the wall clock an instant shows in a particular zone.
type LocalReading struct {
	Year   int
	Month  time.Month
	Day    int
	Hour   int
	Minute int
	Second int
}

// Project reads instant through the rules of zone.
func Project(instant time.Time, zone string) (LocalReading, error) {
	loc, err := Resolve(zone)
	if err != nil {
		return LocalReading{}, err
	}
	return project(instant, loc), nil
}

func project(instant time.Time, loc *time.Location) LocalReading {
	t := instant.In(loc)
	return LocalReading{
		Year:   t.Year(),
		Month:  t.Month(),
		Day:    t.Day(),
		Hour:   t.Hour(),
		Minute: t.Minute(),
		Second: t.Second(),
	}
}

// floating places the reading on a UTC time line so two readings can be subtracted.
func (r LocalReading) floating() time.Time {
	return time.Date(r.Year, r.Month, r.Day, r.Hour, r.Minute, r.Second, 0, time.UTC)
}

// date drops the clock part of the reading.
func (r LocalReading) date() time.Time {
	return time.Date(r.Year, r.Month, r.Day, 0, 0, 0, 0, time.UTC)
}

// FormatClock renders the zone's clock at instant, e.g. "3:04:05 PM" or "15:04:05".
func FormatClock(instant time.Time, zone string, use24Hour bool) string {
	loc, err := Resolve(zone)
	if err != nil {
		return InvalidTimezone
	}
	layout := clock12Layout
	if use24Hour {
		layout = clock24Layout
	}
	return instant.In(loc).Format(layout)
}

// FormatDate renders the zone's calendar date at instant, e.g. "Mon, Jan 2".
func FormatDate(instant time.Time, zone string) string {
	loc, err := Resolve(zone)
	if err != nil {
		return InvalidDate
	}
	return instant.In(loc).Format(dateLayout)
}

// ZoneAbbreviation returns the short zone name in effect at instant ("EST" in January, "EDT" in July).
// Zones the database names only by offset ("+04") come back as "GMT+4". It returns "" for an
// unresolvable zone.
func ZoneAbbreviation(zone string, instant time.Time) string {
	loc, err := Resolve(zone)
	if err != nil {
		return ""
	}
	name, offset := instant.In(loc).Zone()
	if name == "" || strings.HasPrefix(name, "+") || strings.HasPrefix(name, "-") {
		return gmtName(offset)
	}
	return name
}

func gmtName(offsetSeconds int) string {
	if offsetSeconds == 0 {
		return "GMT"
	}
	sign := "+"
	if offsetSeconds < 0 {
		sign = "-"
		offsetSeconds = -offsetSeconds
	}
	hours, minutes := offsetSeconds/3600, offsetSeconds%3600/60
	if minutes != 0 {
		return fmt.Sprintf("GMT%s%d:%02d", sign, hours, minutes)
	}
	return fmt.Sprintf("GMT%s%d", sign, hours)
}
