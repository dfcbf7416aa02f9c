// Copyright © 2025 Jake Rogers <code@supportoss.org>
package tz

import (
	"fmt"
	"time"

	"github.com/pkg/errors"
)

// BusinessWindow is the local hour range [StartHour, EndHour) considered suitable for meetings.
type BusinessWindow struct {
	StartHour int
	EndHour   int
}

// DefaultBusinessWindow is 09:00 to 17:00.
var DefaultBusinessWindow = BusinessWindow{StartHour: 9, EndHour: 17}

// NewBusinessWindow builds a validated window.
func NewBusinessWindow(startHour, endHour int) (BusinessWindow, error) {
	w := BusinessWindow{StartHour: startHour, EndHour: endHour}
	return w, w.Validate()
}

// Validate reports whether both hours are in 0..23 and the start comes before the end.
// The scanner does not call it; an invalid window there simply matches nothing.
func (w BusinessWindow) Validate() error {
	if w.StartHour < 0 || w.StartHour > 23 {
		return errors.Errorf("meeting start hour must be between 0 and 23, got %d", w.StartHour)
	}
	if w.EndHour < 0 || w.EndHour > 23 {
		return errors.Errorf("meeting end hour must be between 0 and 23, got %d", w.EndHour)
	}
	if w.StartHour >= w.EndHour {
		return errors.Errorf("meeting start hour must be before end hour, got %d-%d", w.StartHour, w.EndHour)
	}
	return nil
}

// Contains reports whether hour falls in the half-open window; EndHour itself is outside.
func (w BusinessWindow) Contains(hour int) bool {
	return hour >= w.StartHour && hour < w.EndHour
}

func (w BusinessWindow) String() string {
	return fmt.Sprintf("%02d:00-%02d:00", w.StartHour, w.EndHour)
}

// Overlap is one hour of the reference day in which two or more zones are inside the window.
type Overlap struct {
	Hour  int
	Probe time.Time
	Zones []string
}

// IsBusinessHour reports whether the zone's local hour at instant lies inside window.
func IsBusinessHour(instant time.Time, zone string, window BusinessWindow) bool {
	r, err := Project(instant, zone)
	if err != nil {
		return false
	}
	return window.Contains(r.Hour)
}

// FindOverlaps scans the 24 hours of referenceDate, probing h:00 UTC on the date's UTC calendar day,
// and returns the hours where at least two zones are in business hours. Hours come back in ascending
// order; zones within an entry keep the order they were given in. Unresolvable zones never qualify.
func FindOverlaps(zones []string, window BusinessWindow, referenceDate time.Time) []Overlap {
	return FindOverlapsIn(zones, window, referenceDate, "UTC")
}

// FindOverlapsIn is FindOverlaps with the probe hours anchored to anchor instead of UTC. Passing
// "Local" makes the result depend on the host's zone. An unresolvable anchor falls back to UTC.
func FindOverlapsIn(zones []string, window BusinessWindow, referenceDate time.Time, anchor string) []Overlap {
	var overlaps []Overlap
	for hour, probe := range probes(referenceDate, anchor) {
		var in []string
		for _, z := range zones {
			if IsBusinessHour(probe, z, window) {
				in = append(in, z)
			}
		}
		if len(in) < 2 {
			continue
		}
		overlaps = append(overlaps, Overlap{Hour: hour, Probe: probe, Zones: in})
	}
	return overlaps
}

// probes returns h:00 for h in 0..23 on referenceDate's calendar day as seen in anchor.
func probes(referenceDate time.Time, anchor string) []time.Time {
	loc, err := Resolve(anchor)
	if err != nil {
		loc = time.UTC
	}
	day := referenceDate.In(loc)
	out := make([]time.Time, 24)
	for h := range out {
		p := time.Date(day.Year(), day.Month(), day.Day(), h, 0, 0, 0, loc)
		// an hour skipped by a spring-forward transition moves to the next real hour
		if p.Hour() < h {
			p = p.Add(time.Hour)
		}
		out[h] = p
	}
	return out
}
