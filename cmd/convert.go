// Copyright © 2025 Jake Rogers <code@supportoss.org>
package cmd

import (
	"fmt"
	"io"
	"time"

	"github.com/JakeTRogers/zoneMate/tz"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

const (
	atLayout     = "2006-01-02 15:04"
	atTimeLayout = "15:04"
)

// parseAt reads an --at value as a wall clock in zone. "HH:MM" means today in zone and "" means now.
func parseAt(at, zone string) (time.Time, error) {
	loc, err := tz.Resolve(zone)
	if err != nil {
		return time.Time{}, errors.Wrap(err, "invalid timezone")
	}
	now := nowFunc().In(loc)
	if at == "" {
		return now, nil
	}
	if t, err := time.ParseInLocation(atLayout, at, loc); err == nil {
		return t, nil
	}
	clock, err := time.Parse(atTimeLayout, at)
	if err != nil {
		return time.Time{}, errors.Errorf("invalid time %q, expected \"YYYY-MM-DD HH:MM\" or \"HH:MM\"", at)
	}
	return time.Date(now.Year(), now.Month(), now.Day(), clock.Hour(), clock.Minute(), 0, 0, loc), nil
}

// formatDayShift renders a DayDifference for a table cell.
func formatDayShift(days int) string {
	switch {
	case days == 0:
		return ""
	case days == 1 || days == -1:
		return fmt.Sprintf("%+d day", days)
	default:
		return fmt.Sprintf("%+d days", days)
	}
}

// conversion is one target zone's reading of the converted time.
type conversion struct {
	zone       tz.TimezoneDescriptor
	clock      string
	date       string
	abbrev     string
	difference string
	dayShift   int
}

// convertAcross converts instant, read in fromZone, into every zone. The shifted result read in fromZone
// shows each target's wall clock.
func convertAcross(instant time.Time, fromZone string, zones []tz.TimezoneDescriptor) []conversion {
	out := make([]conversion, 0, len(zones))
	for _, z := range zones {
		shifted := tz.Convert(instant, fromZone, z.Identifier)
		out = append(out, conversion{
			zone:       z,
			clock:      tz.FormatClock(shifted, fromZone, use24Hour),
			date:       tz.FormatDate(shifted, fromZone),
			abbrev:     tz.ZoneAbbreviation(z.Identifier, instant),
			difference: tz.DescribeDifference(tz.OffsetDifference(fromZone, z.Identifier, instant)),
			dayShift:   tz.DayDifference(instant, fromZone, shifted, fromZone),
		})
	}
	return out
}

func printConversions(w io.Writer, instant time.Time, fromZone string, rows []conversion) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	if colorEnabled {
		configureColoredTable(t)
	} else {
		configurePlainTable(t)
		t.Style().Options.SeparateRows = false
	}
	t.Style().Title.Align = text.AlignCenter
	t.SetTitle("%s %s in %s", tz.FormatDate(instant, fromZone), tz.FormatClock(instant, fromZone, use24Hour), tz.Describe(fromZone).City)
	t.AppendHeader(table.Row{"City", "Timezone", "Time", "Date", "Abbreviation", "Difference", "Day"})
	for _, r := range rows {
		t.AppendRow(table.Row{r.zone.City, r.zone.Identifier, r.clock, r.date, r.abbrev, r.difference, formatDayShift(r.dayShift)})
	}
	t.Render()
}

// NewConvertCmd creates and returns a new convert command.
func NewConvertCmd() *cobra.Command {
	var from, at string

	convertCmd := &cobra.Command{
		Use:   "convert",
		Short: "Convert a time from one timezone to the selected timezones",
		Long: `Convert a wall-clock time in one timezone to every selected timezone.

Examples:

  # What is 9am in New York for everyone else?
  $ zoneMate convert --from America/New_York --at "2025-01-15 09:00"

  # Today at 14:30 in Berlin, for an ad hoc selection:
  $ zoneMate convert --from Europe/Berlin --at 14:30 -z Asia/Tokyo -z America/Chicago`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			instant, err := parseAt(at, from)
			if err != nil {
				return err
			}
			zones := selectedZones(userPrefs())
			l.Debug().Str("from", from).Time("instant", instant).Int("zones", len(zones)).Msg("converting")
			printConversions(cmd.OutOrStdout(), instant, from, convertAcross(instant, from, zones))
			return nil
		},
	}

	convertCmd.Flags().StringVarP(&from, "from", "f", "Local", "``timezone the time is given in")
	convertCmd.Flags().StringVarP(&at, "at", "a", "", "``time to convert, \"YYYY-MM-DD HH:MM\" or \"HH:MM\". Defaults to now.")
	if err := convertCmd.RegisterFlagCompletionFunc("from", completeTimezone); err != nil {
		l.Error().Err(err).Send()
	}

	return convertCmd
}
