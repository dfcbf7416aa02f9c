/*
Copyright © 2025 Jake Rogers <code@supportoss.org>
*/
package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/JakeTRogers/zoneMate/logger"
	"github.com/JakeTRogers/zoneMate/prefs"
	"github.com/JakeTRogers/zoneMate/tz"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	configName = ".zoneMate"
	configType = "yaml"
	envPrefix  = "ZONEMATE"
)

var (
	colorEnabled bool
	use24Hour    bool
	liveMode     bool
	wizardMode   bool
	excludeLocal bool
	date         string
	timezones    []string
	v            = viper.New()
	l            = logger.GetLogger()
	timezonesAll = tz.Identifiers()
	nowFunc      = time.Now
)

// timezoneDetail is one row of the time table.
type timezoneDetail struct {
	descriptor   tz.TimezoneDescriptor
	abbreviation string
	reference    time.Time
	offset       time.Duration
	hours        []time.Time
	business     []bool
}

type timezoneDetails = []timezoneDetail

// getConfigPath returns the directory holding the config file: %APPDATA% on windows, $HOME/.config elsewhere.
func getConfigPath() string {
	if runtime.GOOS == "windows" {
		return os.Getenv("APPDATA")
	}
	return filepath.Join(os.Getenv("HOME"), ".config")
}

// initializeConfig sets the log level from --verbose, reads the config file (creating it on first run),
// enables ZONEMATE_* environment overrides and copies config values into flags the user did not set.
func initializeConfig(cmd *cobra.Command) error {
	verboseCount, _ := cmd.Flags().GetCount("verbose")
	logger.SetLogLevel(verboseCount)

	configPath := getConfigPath()
	v.SetConfigName(configName)
	v.SetConfigType(configType)
	v.AddConfigPath(configPath)
	l.Debug().Str("configPath", configPath).Send()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			if err := os.MkdirAll(configPath, 0o755); err != nil {
				l.Error().Err(err).Msg("failed to create config directory")
			} else if err := v.SafeWriteConfig(); err != nil {
				l.Error().Err(err).Send()
			} else {
				l.Info().Str("configFile", filepath.Join(configPath, configName+"."+configType)).Msg("New config file created:")
			}
		} else {
			l.Error().Str("viper", err.Error()).Send()
		}
	}

	// --use-24-hour binds to ZONEMATE_USE_24_HOUR
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	bindFlags(cmd, v)
	return nil
}

// persistentPreRunE binds cobra and viper before any command runs.
func persistentPreRunE(cmd *cobra.Command, args []string) error {
	return initializeConfig(cmd)
}

// bindFlags applies config values to every flag the user did not set on the command line. Array values are
// added one element at a time.
func bindFlags(cmd *cobra.Command, v *viper.Viper) {
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if f.Changed || !v.IsSet(f.Name) {
			return
		}
		l.Debug().Str("flag", f.Name).Msg("Binding flag to viper config:")
		val := v.Get(f.Name)
		if arr, ok := val.([]any); ok {
			for _, item := range arr {
				if err := cmd.Flags().Set(f.Name, fmt.Sprintf("%v", item)); err != nil {
					l.Error().Str("viper", err.Error()).Send()
				}
			}
			return
		}
		if err := cmd.Flags().Set(f.Name, fmt.Sprintf("%v", val)); err != nil {
			l.Error().Str("viper", err.Error()).Send()
		}
	})
}

// referenceInstant returns the instant the table is drawn for. Today's date means "now"; any other date
// means midnight UTC on that date.
func referenceInstant(date string) (time.Time, bool, error) {
	now := nowFunc()
	if date == "" || date == now.Format(time.DateOnly) {
		return now, true, nil
	}
	d, err := time.Parse(time.DateOnly, date)
	if err != nil {
		return time.Time{}, false, errors.Wrapf(err, "invalid date %q, expected YYYY-MM-DD", date)
	}
	return d, false, nil
}

// getZoneInfo resolves a descriptor into a table row for the given reference instant.
func getZoneInfo(d tz.TimezoneDescriptor, reference time.Time, window tz.BusinessWindow) (timezoneDetail, error) {
	loc, err := tz.Resolve(d.Identifier)
	if err != nil {
		return timezoneDetail{}, errors.Wrap(err, "cannot display timezone")
	}
	zone := timezoneDetail{
		descriptor:   d,
		abbreviation: tz.ZoneAbbreviation(d.Identifier, reference),
		reference:    reference,
		offset:       tz.OffsetFromUTC(d.Identifier, reference),
		hours:        getHours(reference, loc),
	}
	for _, h := range zone.hours {
		zone.business = append(zone.business, window.Contains(h.Hour()))
	}
	l.Debug().Str("timezone", d.Identifier).Str("abbreviation", zone.abbreviation).Dur("offset", zone.offset).Send()
	return zone, nil
}

// getHours returns the 24 whole UTC hours of reference's UTC calendar day, read in location.
func getHours(reference time.Time, location *time.Location) []time.Time {
	day := reference.UTC()
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	hours := make([]time.Time, 24)
	for i := range hours {
		hours[i] = start.Add(time.Duration(i) * time.Hour).In(location)
	}
	return hours
}

// formatHours renders the hour cells of a row. Local midnight shows the weekday instead of the hour and
// zones off the whole hour show their minutes.
func formatHours(z timezoneDetail, use24Hour bool) []any {
	hours := make([]any, len(z.hours))
	for i, h := range z.hours {
		hour, minutes := h.Hour(), ""
		if h.Minute() != 0 {
			minutes = fmt.Sprintf(":%02d", h.Minute())
		}
		switch {
		case hour == 0 && minutes == "":
			hours[i] = h.Format("Mon")
		case use24Hour:
			hours[i] = fmt.Sprintf("%2d%s", hour, minutes)
		case hour >= 12:
			hours[i] = fmt.Sprintf("%2d%s\npm", twelveHour(hour), minutes)
		default:
			hours[i] = fmt.Sprintf("%2d%s\nam", twelveHour(hour), minutes)
		}
	}
	return hours
}

func twelveHour(hour int) int {
	if hour%12 == 0 {
		return 12
	}
	return hour % 12
}

// formatRowLabel returns the first cell of a row, with the zone's current clock underneath when the table
// shows today.
func formatRowLabel(z timezoneDetail, today bool) string {
	id := z.descriptor.Identifier
	label := fmt.Sprintf("%s [%s,%s]", id, z.abbreviation, tz.FormatOffset(z.offset))
	if z.descriptor.City != "" && z.descriptor.City != id {
		label = fmt.Sprintf("%s - %s", z.descriptor.City, label)
	}
	if !today {
		return label
	}
	return fmt.Sprintf("%s\n%s %s", label, tz.FormatDate(z.reference, id), tz.FormatClock(z.reference, id, use24Hour))
}

// styleBusinessCell marks an hour inside the business window.
func styleBusinessCell(cell any, business bool) any {
	if !business {
		return cell
	}
	if colorEnabled {
		return text.Colors{text.FgHiGreen, text.Bold}.Sprint(cell)
	}
	return text.Underline.Sprint(cell)
}

func configureColoredTable(t table.Writer) {
	t.SetStyle(table.StyleColoredBlackOnBlueWhite)
	t.Style().Title.Colors = text.Colors{text.BgHiBlue, text.FgHiWhite}
	t.Style().Color.IndexColumn = text.Colors{text.BgHiBlue, text.FgHiWhite, text.Bold}
	t.Style().Color.RowAlternate = text.Colors{text.Color(30), text.Color(47)}
}

func configurePlainTable(t table.Writer) {
	t.SetStyle(table.StyleRounded)
	t.Style().Options.DoNotColorBordersAndSeparators = true
	t.Style().Options.SeparateColumns = false
	t.Style().Options.SeparateRows = true
	t.Style().Color.IndexColumn = text.Colors{text.FgHiBlue, text.Bold}
}

// printTimeTable renders one row per zone and one column per UTC hour of the reference day. highlightHour
// is the UTC hour column to mark, or -1.
func printTimeTable(w io.Writer, zones timezoneDetails, reference time.Time, highlightHour int) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	if colorEnabled {
		configureColoredTable(t)
	} else {
		configurePlainTable(t)
	}
	t.Style().Title.Align = text.AlignCenter

	if highlightHour < 0 {
		t.SetTitle("Showing Time For: %s", reference.UTC().Format("Monday, January 2, 2006 MST"))
	} else {
		// +2 because the first column holds the zone and columns count from 1
		t.SetIndexColumn(highlightHour + 2)
		t.SetTitle("Current Local Time: %s", reference.Local().Format("Monday, January 2, 2006 3:04:05 PM MST"))
	}
	t.SetCaption("Underlined or green hours fall inside the business window.")

	for _, z := range zones {
		hours := formatHours(z, use24Hour)
		for i := range hours {
			hours[i] = styleBusinessCell(hours[i], z.business[i])
		}
		row := append([]any{formatRowLabel(z, highlightHour >= 0)}, hours...)
		t.AppendRow(row)
	}

	t.Render()
}

// deduplicateSlice removes repeated elements, keeping the first occurrence of each.
func deduplicateSlice(s []string) []string {
	seen := make(map[string]bool, len(s))
	var result []string
	for _, item := range s {
		if seen[item] {
			continue
		}
		seen[item] = true
		result = append(result, item)
	}
	return result
}

// describeAll turns identifiers into descriptors, using the registry where it knows the zone.
func describeAll(ids []string) []tz.TimezoneDescriptor {
	zones := make([]tz.TimezoneDescriptor, 0, len(ids))
	for _, id := range deduplicateSlice(ids) {
		zones = append(zones, tz.Describe(id))
	}
	return zones
}

// identifiersOf is the inverse of describeAll.
func identifiersOf(zones []tz.TimezoneDescriptor) []string {
	ids := make([]string, len(zones))
	for i, z := range zones {
		ids[i] = z.Identifier
	}
	return ids
}

// userPrefs wraps the shared viper instance.
func userPrefs() *prefs.Store {
	return prefs.New(v)
}

// selectedZones returns the --timezone values when given, otherwise the saved selection.
func selectedZones(store *prefs.Store) []tz.TimezoneDescriptor {
	if len(timezones) > 0 {
		return describeAll(timezones)
	}
	return store.SelectedTimezones()
}

// addLocalTimezone puts the host zone first unless it is already in zones.
func addLocalTimezone(zones []tz.TimezoneDescriptor) []tz.TimezoneDescriptor {
	local := time.Local.String()
	for _, z := range zones {
		if z.Identifier == local {
			return zones
		}
	}
	return append([]tz.TimezoneDescriptor{tz.Describe(local)}, zones...)
}

// validateLiveDateExclusion rejects --live combined with --date.
func validateLiveDateExclusion(cmd *cobra.Command) error {
	live := cmd.Flags().Lookup("live")
	dateFlag := cmd.Flags().Lookup("date")
	if live != nil && dateFlag != nil && live.Changed && dateFlag.Changed {
		return errors.New("--live and --date are mutually exclusive")
	}
	return nil
}

// validateArgs checks --date and the live/date exclusion before anything is rendered.
func validateArgs(cmd *cobra.Command, args []string) error {
	if err := validateLiveDateExclusion(cmd); err != nil {
		return err
	}
	if cmd.Flags().Changed("date") {
		if _, err := time.Parse(time.DateOnly, date); err != nil {
			return errors.Wrapf(err, "invalid date %q, expected YYYY-MM-DD", date)
		}
	}
	return nil
}

// saveUserPreferences writes the display toggles and, when given on the command line, the zone selection.
func saveUserPreferences(store *prefs.Store) {
	if err := store.Set(prefs.KeyColor, colorEnabled); err != nil {
		l.Error().Err(err).Send()
	}
	if err := store.Set(prefs.KeyUse24Hour, use24Hour); err != nil {
		l.Error().Err(err).Send()
	}
	if len(timezones) == 0 {
		return
	}
	if err := store.SetSelectedTimezones(describeAll(timezones)); err != nil {
		l.Error().Err(err).Send()
	}
}

// renderTimeTable draws the table for the current selection and date.
func renderTimeTable(cmd *cobra.Command, store *prefs.Store) error {
	reference, today, err := referenceInstant(date)
	if err != nil {
		return err
	}
	zones := selectedZones(store)
	if !excludeLocal {
		zones = addLocalTimezone(zones)
	}
	window := store.BusinessWindow()

	var details timezoneDetails
	for _, z := range zones {
		detail, err := getZoneInfo(z, reference, window)
		if err != nil {
			return err
		}
		details = append(details, detail)
	}

	highlight := -1
	if today {
		highlight = reference.UTC().Hour()
	}
	printTimeTable(cmd.OutOrStdout(), details, reference, highlight)
	return nil
}

// runRoot dispatches to the wizard, the live board, or the static table.
func runRoot(cmd *cobra.Command, args []string) error {
	for k, val := range v.AllSettings() {
		l.Debug().Str(k, fmt.Sprintf("%v", val)).Msg("viper:")
	}
	store := userPrefs()

	if wizardMode {
		return handleWizardMode(cmd, store)
	}

	saveUserPreferences(store)

	if liveMode {
		zones := selectedZones(store)
		return runLive(store, zones, !excludeLocal)
	}
	return renderTimeTable(cmd, store)
}

// handleWizardMode runs the interactive picker and saves what the user chose.
func handleWizardMode(cmd *cobra.Command, store *prefs.Store) error {
	selected, err := runWizard(identifiersOf(selectedZones(store)))
	if err != nil {
		return errors.Wrap(err, "wizard failed")
	}
	return saveWizardSelection(cmd.OutOrStdout(), store, selected)
}

// saveWizardSelection stores the wizard's result. A nil selection means the user cancelled; an empty one is
// not saved.
func saveWizardSelection(w io.Writer, store *prefs.Store, selected []string) error {
	if selected == nil {
		fmt.Fprintln(w, "Wizard cancelled, selection unchanged.")
		return nil
	}
	if len(selected) == 0 {
		fmt.Fprintln(w, "No timezones selected, selection unchanged.")
		return nil
	}
	if err := store.SetSelectedTimezones(describeAll(selected)); err != nil {
		return err
	}
	fmt.Fprintf(w, "Saved %d timezone(s) to config.\n", len(selected))
	return nil
}

// completeTimezone offers catalog identifiers matching what has been typed so far.
func completeTimezone(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	prefix := strings.ToLower(toComplete)
	var matches []string
	for _, id := range timezonesAll {
		if strings.HasPrefix(strings.ToLower(id), prefix) {
			matches = append(matches, id)
		}
	}
	return matches, cobra.ShellCompDirectiveNoFileComp
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:     "zoneMate",
	Version: "v1.0.0",
	Short:   "Compare clocks across timezones and find meeting times",
	Long: `zoneMate shows the current time across a selection of timezones and helps schedule meetings between them.
By default the table includes your local timezone; exclude it with --exclude-local.

zoneMate remembers your timezone selection, clock format, color choice and meeting window in a configuration file:

  - Linux/Mac: $HOME/.config/.zoneMate.yaml
  - Windows: %APPDATA%\.zoneMate.yaml

Any setting can also come from a ZONEMATE_ environment variable, e.g. ZONEMATE_USE_24_HOUR=true.

Examples:

  # Show the saved selection (New York, London and Tokyo on first run):
  $ zoneMate

  # Show a specific selection:
  $ zoneMate -z America/New_York -z Europe/Berlin -z Asia/Kolkata

  # Check a date across a daylight saving change:
  $ zoneMate --date 2025-03-09 -z America/New_York -z Europe/London

  # Live, ticking clock cards:
  $ zoneMate --live

  # Pick timezones interactively:
  $ zoneMate --wizard`,
	Args:              validateArgs,
	PersistentPreRunE: persistentPreRunE,
	RunE:              runRoot,
	SilenceUsage:      true,
}

// RootCmd returns the fully wired command tree.
func RootCmd() *cobra.Command {
	return rootCmd
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.SetVersionTemplate(`{{printf "zoneMate %s\n" .Version}}`)
	rootCmd.PersistentFlags().CountP("verbose", "v", "``increase logging verbosity, 1=warn, 2=info, 3=debug, 4=trace")
	rootCmd.PersistentFlags().BoolVarP(&colorEnabled, prefs.KeyColor, "c", false, "enable colorized output. If previously enabled, use --color=false to disable it.")
	rootCmd.PersistentFlags().BoolVarP(&use24Hour, prefs.KeyUse24Hour, "t", false, "use 24-hour clocks. If previously enabled, use --use-24-hour=false to disable it.")
	rootCmd.PersistentFlags().StringArrayVarP(&timezones, "timezone", "z", []string{}, "``timezone to show, like America/New_York. Can be used multiple times. Replaces the saved selection.")
	rootCmd.Flags().StringVarP(&date, "date", "d", time.Now().Format(time.DateOnly), "``date to show, in YYYY-MM-DD format. Defaults to now.")
	rootCmd.Flags().BoolVarP(&excludeLocal, "exclude-local", "x", false, "do not add the local timezone to the output")
	rootCmd.Flags().BoolVarP(&liveMode, "live", "l", false, "show ticking clock cards, refreshed every second")
	rootCmd.Flags().BoolVarP(&wizardMode, "wizard", "w", false, "pick timezones interactively and save them")

	if err := rootCmd.RegisterFlagCompletionFunc("timezone", completeTimezone); err != nil {
		l.Error().Err(err).Send()
	}

	rootCmd.AddCommand(NewListCmd(), NewConvertCmd(), NewDiffCmd(), NewMeetCmd(), NewCompareCmd(), NewWizardCmd())
}
