// Copyright © 2025 Jake Rogers <code@supportoss.org>

// Package tz holds the time zone arithmetic behind zoneMate: the zone registry, clock and date formatting,
// wall-clock conversion, offset math and the business-hour overlap scanner.
//
// Every function takes the instant it works on as a parameter and resolves zones fresh on each call.
// Nothing here reads the system clock or keeps state between calls. Functions that feed the display never
// return errors; an unresolvable zone degrades to a sentinel or zero value instead.
package tz

import (
	"time"
	_ "time/tzdata"

	"github.com/pkg/errors"
)

// ErrUnknownZone is the cause of every error returned by Resolve.
var ErrUnknownZone = errors.New("unknown timezone")

// Resolve loads the location for a zone identifier from the host zone database, falling back to the
// embedded tzdata. The empty string is rejected rather than being treated as UTC.
func Resolve(zone string) (*time.Location, error) {
	if zone == "" {
		return nil, errors.Wrap(ErrUnknownZone, "empty zone identifier")
	}
	loc, err := time.LoadLocation(zone)
	if err != nil {
		return nil, errors.Wrapf(ErrUnknownZone, "%q: %v", zone, err)
	}
	return loc, nil
}
