// Copyright © 2025 Jake Rogers <code@supportoss.org>
package cmd

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/JakeTRogers/zoneMate/prefs"
	"github.com/JakeTRogers/zoneMate/tz"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// overlapQuality grades an hour by the share of zones inside business hours.
func overlapQuality(count, total int) string {
	if total == 0 {
		return "Limited"
	}
	pct := float64(count) / float64(total) * 100
	switch {
	case pct == 100:
		return "Perfect"
	case pct >= 75:
		return "Great"
	case pct >= 50:
		return "Good"
	default:
		return "Limited"
	}
}

// formatHourLabel renders a whole hour as "15:00" or "3 PM".
func formatHourLabel(hour int, use24Hour bool) string {
	if use24Hour {
		return fmt.Sprintf("%02d:00", hour)
	}
	suffix := "AM"
	if hour >= 12 {
		suffix = "PM"
	}
	return fmt.Sprintf("%d %s", twelveHour(hour), suffix)
}

// parseDay reads a YYYY-MM-DD date as a calendar day in anchor. "" means today in anchor.
func parseDay(date, anchor string) (time.Time, error) {
	loc, err := tz.Resolve(anchor)
	if err != nil {
		return time.Time{}, errors.Wrap(err, "invalid anchor")
	}
	if date == "" {
		return nowFunc().In(loc), nil
	}
	d, err := time.ParseInLocation(time.DateOnly, date, loc)
	if err != nil {
		return time.Time{}, errors.Errorf("invalid date %q, expected YYYY-MM-DD", date)
	}
	return d, nil
}

// meetingWindow takes --start/--end when given and fills the rest from the saved window.
func meetingWindow(cmd *cobra.Command, store *prefs.Store, start, end int) (tz.BusinessWindow, error) {
	w := store.BusinessWindow()
	if cmd.Flags().Changed("start") {
		w.StartHour = start
	}
	if cmd.Flags().Changed("end") {
		w.EndHour = end
	}
	if err := w.Validate(); err != nil {
		return tz.BusinessWindow{}, err
	}
	return w, nil
}

func printOverlaps(w io.Writer, overlaps []tz.Overlap, zones []string, window tz.BusinessWindow, anchor string) {
	if len(overlaps) == 0 {
		fmt.Fprintf(w, "No overlapping business hours (%s) found for at least 2 timezones.\n", window)
		return
	}
	t := table.NewWriter()
	t.SetOutputMirror(w)
	if colorEnabled {
		configureColoredTable(t)
	} else {
		configurePlainTable(t)
		t.Style().Options.SeparateRows = false
	}
	t.Style().Title.Align = text.AlignCenter
	t.SetTitle("Meeting times for %s, business hours %s", tz.FormatDate(overlaps[0].Probe, anchor), window)
	t.AppendHeader(table.Row{"Time (" + tz.Describe(anchor).City + ")", "Local Times", "Zones", "Quality"})
	for _, o := range overlaps {
		locals := make([]string, 0, len(o.Zones))
		for _, z := range o.Zones {
			r, _ := tz.Project(o.Probe, z)
			locals = append(locals, fmt.Sprintf("%s %s", tz.Describe(z).City, formatHourLabel(r.Hour, use24Hour)))
		}
		t.AppendRow(table.Row{
			formatHourLabel(o.Hour, use24Hour),
			strings.Join(locals, ", "),
			fmt.Sprintf("%d/%d", len(o.Zones), len(zones)),
			overlapQuality(len(o.Zones), len(zones)),
		})
	}
	t.Render()
}

// NewMeetCmd creates and returns a new meet command.
func NewMeetCmd() *cobra.Command {
	var (
		start, end int
		day        string
		anchor     string
	)

	meetCmd := &cobra.Command{
		Use:   "meet",
		Short: "Find hours when the selected timezones share business hours",
		Long: `Scan the 24 hours of a day and list every hour in which at least two of the selected timezones are inside
business hours. The business window is saved for next time.

Examples:

  # Use the saved window (09:00-17:00 by default):
  $ zoneMate meet -z America/New_York -z Europe/London -z Asia/Tokyo

  # A custom window on a specific date:
  $ zoneMate meet --start 8 --end 18 --date 2025-03-20`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store := userPrefs()
			window, err := meetingWindow(cmd, store, start, end)
			if err != nil {
				return err
			}
			zones := identifiersOf(selectedZones(store))
			if len(zones) < 2 {
				return errors.New("add at least 2 timezones to find meeting times")
			}
			reference, err := parseDay(day, anchor)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("start") || cmd.Flags().Changed("end") {
				if err := store.SetBusinessWindow(window); err != nil {
					l.Error().Err(err).Send()
				}
			}
			overlaps := tz.FindOverlapsIn(zones, window, reference, anchor)
			l.Debug().Int("overlaps", len(overlaps)).Str("window", window.String()).Send()
			printOverlaps(cmd.OutOrStdout(), overlaps, zones, window, anchor)
			return nil
		},
	}

	meetCmd.Flags().IntVarP(&start, "start", "s", tz.DefaultBusinessWindow.StartHour, "``first business hour, 0-23. Defaults to the saved window.")
	meetCmd.Flags().IntVarP(&end, "end", "e", tz.DefaultBusinessWindow.EndHour, "``hour business ends, 0-23, exclusive. Defaults to the saved window.")
	meetCmd.Flags().StringVarP(&day, "date", "d", "", "``date to scan, YYYY-MM-DD. Defaults to today.")
	meetCmd.Flags().StringVar(&anchor, "anchor", "UTC", "``timezone whose calendar day is scanned")
	if err := meetCmd.RegisterFlagCompletionFunc("anchor", completeTimezone); err != nil {
		l.Error().Err(err).Send()
	}

	return meetCmd
}
