// Copyright © 2025 Jake Rogers <code@supportoss.org>
package cmd

import (
	"fmt"
	"io"
	"time"

	"github.com/JakeTRogers/zoneMate/tz"
	"github.com/spf13/cobra"
)

// timeDifference compares two zones at one instant.
type timeDifference struct {
	from, to      tz.TimezoneDescriptor
	fromClock     string
	fromDate      string
	fromAbbrev    string
	toClock       string
	toDate        string
	toAbbrev      string
	hours         float64
	dayDifference int
}

func calculateDifference(instant time.Time, from, to string) timeDifference {
	return timeDifference{
		from:          tz.Describe(from),
		to:            tz.Describe(to),
		fromClock:     tz.FormatClock(instant, from, use24Hour),
		fromDate:      tz.FormatDate(instant, from),
		toClock:       tz.FormatClock(instant, to, use24Hour),
		toDate:        tz.FormatDate(instant, to),
		hours:         tz.OffsetDifference(from, to, instant),
		dayDifference: tz.DayDifference(instant, from, instant, to),
		fromAbbrev:    tz.ZoneAbbreviation(from, instant),
		toAbbrev:      tz.ZoneAbbreviation(to, instant),
	}
}

func printDifference(w io.Writer, d timeDifference) {
	fmt.Fprintf(w, "%-20s %s %s (%s)\n", d.from.City, d.fromDate, d.fromClock, d.fromAbbrev)
	fmt.Fprintf(w, "%-20s %s %s (%s)\n", d.to.City, d.toDate, d.toClock, d.toAbbrev)
	summary := fmt.Sprintf("%s is %s", d.to.City, lowerFirst(tz.DescribeDifference(d.hours)))
	if d.hours != 0 {
		summary += " of " + d.from.City
	} else {
		summary += " as " + d.from.City
	}
	if shift := formatDayShift(d.dayDifference); shift != "" {
		summary += fmt.Sprintf(" (%s)", shift)
	}
	fmt.Fprintln(w, summary)
}

// lowerFirst turns "Same time" into "same time" for use mid-sentence.
func lowerFirst(s string) string {
	if s == "" || s[0] < 'A' || s[0] > 'Z' {
		return s
	}
	return string(s[0]+'a'-'A') + s[1:]
}

// NewDiffCmd creates and returns a new diff command.
func NewDiffCmd() *cobra.Command {
	var from, to, at string

	diffCmd := &cobra.Command{
		Use:   "diff",
		Short: "Show the time difference between two timezones",
		Long: `Show both clocks and the offset difference between two timezones at a moment in time.

Examples:

  $ zoneMate diff --from America/New_York --to Asia/Kolkata
  $ zoneMate diff --from Europe/London --to Australia/Sydney --at "2025-07-01 18:00"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			instant, err := parseAt(at, from)
			if err != nil {
				return err
			}
			if _, err := tz.Resolve(to); err != nil {
				return err
			}
			printDifference(cmd.OutOrStdout(), calculateDifference(instant, from, to))
			return nil
		},
	}

	diffCmd.Flags().StringVarP(&from, "from", "f", "Local", "``first timezone")
	diffCmd.Flags().StringVar(&to, "to", "", "``second timezone")
	diffCmd.Flags().StringVarP(&at, "at", "a", "", "``moment to compare at, read in --from. Defaults to now.")
	if err := diffCmd.MarkFlagRequired("to"); err != nil {
		l.Error().Err(err).Send()
	}
	for _, name := range []string{"from", "to"} {
		if err := diffCmd.RegisterFlagCompletionFunc(name, completeTimezone); err != nil {
			l.Error().Err(err).Send()
		}
	}

	return diffCmd
}
