// Copyright © 2025 Jake Rogers <code@supportoss.org>
package cmd

import (
	"fmt"
	"io"
	"sort"

	"github.com/JakeTRogers/zoneMate/tz"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// listAreas groups the catalog by the leading segment of each identifier.
func listAreas() map[string][]string {
	return tz.Areas()
}

func sortedAreas() []string {
	areas := listAreas()
	names := make([]string, 0, len(areas))
	for name := range areas {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// printDescriptors renders catalog entries with their current abbreviation and offset.
func printDescriptors(w io.Writer, title string, zones []tz.TimezoneDescriptor) error {
	if len(zones) == 0 {
		_, err := fmt.Fprintln(w, "No matching timezones.")
		return err
	}
	now := nowFunc()
	t := table.NewWriter()
	t.SetOutputMirror(w)
	configurePlainTable(t)
	t.Style().Options.SeparateRows = false
	t.SetTitle(title)
	t.AppendHeader(table.Row{"Timezone", "City", "Country", "Abbreviation", "UTC Offset"})
	for _, z := range zones {
		t.AppendRow(table.Row{z.Identifier, z.City, z.Country, tz.ZoneAbbreviation(z.Identifier, now), tz.FormatOffset(tz.OffsetFromUTC(z.Identifier, now))})
	}
	t.Render()
	return nil
}

func printAreas(w io.Writer) error {
	for _, name := range sortedAreas() {
		if _, err := fmt.Fprintln(w, name); err != nil {
			return err
		}
	}
	return nil
}

func printLocations(w io.Writer, area string) error {
	locations, ok := listAreas()[area]
	if !ok {
		return errors.Errorf("invalid area name %q, run 'zoneMate list --areas' for valid names", area)
	}
	for _, loc := range locations {
		if _, err := fmt.Fprintln(w, loc); err != nil {
			return err
		}
	}
	return nil
}

func printAllTimezones(w io.Writer) error {
	return printDescriptors(w, "All Timezones", tz.All())
}

func printSearch(w io.Writer, query string, exclude []string) error {
	return printDescriptors(w, fmt.Sprintf("Timezones matching %q", query), tz.Search(query, exclude))
}

func printPopular(w io.Writer, exclude []string) error {
	return printDescriptors(w, "Popular Timezones", tz.Popular(exclude))
}

// NewListCmd creates and returns a new list command.
// Each call returns a fresh instance for test isolation.
func NewListCmd() *cobra.Command {
	var (
		areas        bool
		locations    string
		allZones     bool
		search       string
		popular      bool
		hideSelected bool
	)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List the timezone catalog",
		Long: `List the timezones zoneMate knows about, for use with --timezone.

Examples:

  # List the areas, like America or Europe:
  $ zoneMate list --areas

  # List the locations within an area:
  $ zoneMate list --locations Europe

  # List every timezone with its current abbreviation and offset:
  $ zoneMate list --timezones

  # Search by city, country or name, ignoring case and accents:
  $ zoneMate list --search sao

  # Popular timezones you have not selected yet:
  $ zoneMate list --popular --hide-selected`,
		Args: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("locations") {
				if _, ok := listAreas()[locations]; !ok {
					return errors.Errorf("invalid area name %q, run 'zoneMate list --areas' for valid names", locations)
				}
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			var exclude []string
			if hideSelected {
				exclude = identifiersOf(selectedZones(userPrefs()))
			}
			switch {
			case areas:
				return printAreas(w)
			case locations != "":
				return printLocations(w, locations)
			case search != "":
				return printSearch(w, search, exclude)
			case popular:
				return printPopular(w, exclude)
			case allZones:
				return printAllTimezones(w)
			}
			return cmd.Help()
		},
	}

	listCmd.Flags().BoolVarP(&areas, "areas", "a", false, "list timezone areas")
	listCmd.Flags().StringVarP(&locations, "locations", "l", "", "``list the locations within an area")
	listCmd.Flags().BoolVar(&allZones, "timezones", false, "list all timezones")
	listCmd.Flags().StringVarP(&search, "search", "s", "", "``search timezones by city, country or name")
	listCmd.Flags().BoolVarP(&popular, "popular", "p", false, "list popular timezones")
	listCmd.Flags().BoolVar(&hideSelected, "hide-selected", false, "leave out timezones that are already selected")
	listCmd.MarkFlagsMutuallyExclusive("areas", "locations", "timezones", "search", "popular")
	if err := listCmd.RegisterFlagCompletionFunc("locations", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return sortedAreas(), cobra.ShellCompDirectiveNoFileComp
	}); err != nil {
		l.Error().Err(err).Send()
	}

	return listCmd
}
