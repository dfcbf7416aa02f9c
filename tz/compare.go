// Copyright © 2025 Jake Rogers <code@supportoss.org>
package tz

import "time"

// Slot is one zone's reading during one probe hour of a comparison grid.
type Slot struct {
	Zone     string
	Local    time.Time
	Business bool
	Night    bool
}

// HourRow is one probe hour of a comparison grid.
type HourRow struct {
	Hour  int
	Probe time.Time
	Slots []Slot
}

// CompareHours builds the 24-row grid behind the compare view. Probes are anchored like FindOverlapsIn.
// Night is local hours before 06:00 or from 22:00. Unresolvable zones get no slot.
func CompareHours(zones []string, window BusinessWindow, referenceDate time.Time, anchor string) []HourRow {
	rows := make([]HourRow, 0, 24)
	for hour, probe := range probes(referenceDate, anchor) {
		row := HourRow{Hour: hour, Probe: probe}
		for _, z := range zones {
			loc, err := Resolve(z)
			if err != nil {
				continue
			}
			local := probe.In(loc)
			row.Slots = append(row.Slots, Slot{
				Zone:     z,
				Local:    local,
				Business: window.Contains(local.Hour()),
				Night:    local.Hour() < 6 || local.Hour() >= 22,
			})
		}
		rows = append(rows, row)
	}
	return rows
}

// BestHours returns the probe hours in which every slot is inside business hours.
func BestHours(rows []HourRow) []int {
	var best []int
	for _, row := range rows {
		if len(row.Slots) == 0 {
			continue
		}
		all := true
		for _, s := range row.Slots {
			if !s.Business {
				all = false
				break
			}
		}
		if all {
			best = append(best, row.Hour)
		}
	}
	return best
}
