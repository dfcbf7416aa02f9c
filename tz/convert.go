// Copyright © 2025 Jake Rogers <code@supportoss.org>
package tz

import "time"

// Convert shifts instant by the difference between the two zones' offsets, both measured at instant.
// Reading a wall-clock value from fromZone, the result carries the same value into toZone's frame.
//
// The delta is taken at the original instant. When a daylight saving change falls between instant and
// the shifted result, the result is off by the size of that change.
// If either zone cannot be resolved, instant is returned unchanged.
func Convert(instant time.Time, fromZone, toZone string) time.Time {
	from, err := Resolve(fromZone)
	if err != nil {
		return instant
	}
	to, err := Resolve(toZone)
	if err != nil {
		return instant
	}
	delta := project(instant, to).floating().Sub(project(instant, from).floating())
	return instant.Add(delta)
}

// DayDifference counts calendar days from the local date of from in fromZone to the local date of to
// in toZone. It is zero if either zone cannot be resolved.
func DayDifference(from time.Time, fromZone string, to time.Time, toZone string) int {
	a, err := Project(from, fromZone)
	if err != nil {
		return 0
	}
	b, err := Project(to, toZone)
	if err != nil {
		return 0
	}
	return int(b.date().Sub(a.date()).Hours() / 24)
}
