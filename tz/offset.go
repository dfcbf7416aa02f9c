// Copyright © 2025 Jake Rogers <code@supportoss.org>
package tz

import (
	"fmt"
	"math"
	"strconv"
	"time"
)

// OffsetFromUTC returns how far the zone's clock is ahead of UTC at instant. Daylight saving is taken
// from the instant, so the result for a given zone varies over the year. It is zero for an unresolvable
// zone.
func OffsetFromUTC(zone string, instant time.Time) time.Duration {
	local, err := Project(instant, zone)
	if err != nil {
		return 0
	}
	return local.floating().Sub(project(instant, time.UTC).floating())
}

// OffsetDifference returns, in hours, how far zoneB is ahead of zoneA at instant. Half-hour zones give
// fractional results. It is zero when either zone is unresolvable.
func OffsetDifference(zoneA, zoneB string, instant time.Time) float64 {
	if _, err := Resolve(zoneA); err != nil {
		return 0
	}
	if _, err := Resolve(zoneB); err != nil {
		return 0
	}
	return (OffsetFromUTC(zoneB, instant) - OffsetFromUTC(zoneA, instant)).Hours()
}

// FormatOffset renders an offset as "+5", "-8", "+0" or "+5:30".
func FormatOffset(d time.Duration) string {
	sign := "+"
	if d < 0 {
		sign = "-"
		d = -d
	}
	hours := int(d / time.Hour)
	minutes := int(d % time.Hour / time.Minute)
	if minutes != 0 {
		return fmt.Sprintf("%s%d:%02d", sign, hours, minutes)
	}
	return fmt.Sprintf("%s%d", sign, hours)
}

// DescribeDifference turns an OffsetDifference into "5 hours ahead", "3.5 hours behind" or "Same time".
func DescribeDifference(hours float64) string {
	if hours == 0 {
		return "Same time"
	}
	direction := "ahead"
	if hours < 0 {
		direction = "behind"
	}
	abs := math.Abs(hours)
	unit := "hours"
	if abs == 1 {
		unit = "hour"
	}
	return fmt.Sprintf("%s %s %s", strconv.FormatFloat(abs, 'f', -1, 64), unit, direction)
}
