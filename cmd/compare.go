// Copyright © 2025 Jake Rogers <code@supportoss.org>
package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/JakeTRogers/zoneMate/tz"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"
)

// formatSlot renders one grid cell. Without color, business hours are wrapped in brackets and night hours
// in parentheses. dayShift is the slot's local date relative to the anchor's and is shown as +1/-1.
func formatSlot(s tz.Slot, dayShift int) string {
	cell := formatHourLabel(s.Local.Hour(), use24Hour)
	if s.Local.Minute() != 0 {
		cell = s.Local.Format("15:04")
		if !use24Hour {
			cell = s.Local.Format("3:04 PM")
		}
	}
	if dayShift != 0 {
		cell += fmt.Sprintf(" %+d", dayShift)
	}
	switch {
	case s.Business && colorEnabled:
		return text.Colors{text.FgHiGreen, text.Bold}.Sprint(cell)
	case s.Business:
		return "[" + cell + "]"
	case s.Night && colorEnabled:
		return text.Faint.Sprint(cell)
	case s.Night:
		return "(" + cell + ")"
	}
	return cell
}

// bestTimesLine summarizes the hours where every zone is in business hours.
func bestTimesLine(rows []tz.HourRow) string {
	best := tz.BestHours(rows)
	if len(best) == 0 {
		return "No overlapping business hours found for all timezones."
	}
	labels := make([]string, len(best))
	for i, h := range best {
		labels[i] = formatHourLabel(h, use24Hour)
	}
	return "Best meeting times (all timezones in business hours): " + strings.Join(labels, ", ")
}

func printComparison(w io.Writer, rows []tz.HourRow, zones []tz.TimezoneDescriptor, window tz.BusinessWindow, anchor string) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	if colorEnabled {
		configureColoredTable(t)
	} else {
		configurePlainTable(t)
		t.Style().Options.SeparateRows = false
	}
	t.Style().Title.Align = text.AlignCenter
	if len(rows) > 0 {
		t.SetTitle("Hourly comparison for %s, business hours %s", tz.FormatDate(rows[0].Probe, anchor), window)
	}

	header := table.Row{tz.Describe(anchor).City}
	for _, z := range zones {
		if _, err := tz.Resolve(z.Identifier); err == nil {
			header = append(header, z.City)
		}
	}
	t.AppendHeader(header)
	for _, r := range rows {
		row := table.Row{formatHourLabel(r.Hour, use24Hour)}
		for _, s := range r.Slots {
			row = append(row, formatSlot(s, tz.DayDifference(r.Probe, anchor, r.Probe, s.Zone)))
		}
		t.AppendRow(row)
	}
	if !colorEnabled {
		t.SetCaption("[business hours]  (night)  +1/-1 next/previous day")
	}
	t.Render()
	fmt.Fprintln(w, bestTimesLine(rows))
}

// NewCompareCmd creates and returns a new compare command.
func NewCompareCmd() *cobra.Command {
	var day, anchor string

	compareCmd := &cobra.Command{
		Use:   "compare",
		Short: "Show an hour-by-hour grid of the selected timezones",
		Long: `Show every hour of a day side by side for the selected timezones, marking business and night hours, and
list the hours when every timezone is inside business hours.

Examples:

  $ zoneMate compare
  $ zoneMate compare --date 2025-11-02 --anchor America/New_York`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store := userPrefs()
			reference, err := parseDay(day, anchor)
			if err != nil {
				return err
			}
			zones := selectedZones(store)
			window := store.BusinessWindow()
			rows := tz.CompareHours(identifiersOf(zones), window, reference, anchor)
			printComparison(cmd.OutOrStdout(), rows, zones, window, anchor)
			return nil
		},
	}

	compareCmd.Flags().StringVarP(&day, "date", "d", "", "``date to compare, YYYY-MM-DD. Defaults to today.")
	compareCmd.Flags().StringVar(&anchor, "anchor", "UTC", "``timezone whose calendar day forms the rows")
	if err := compareCmd.RegisterFlagCompletionFunc("anchor", completeTimezone); err != nil {
		l.Error().Err(err).Send()
	}

	return compareCmd
}
