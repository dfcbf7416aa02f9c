package cmd

import (
	"bytes"
	"testing"
	"time"

	"github.com/JakeTRogers/zoneMate/prefs"
	"github.com/JakeTRogers/zoneMate/tz"
	"github.com/spf13/cobra"
)

func Test_overlapQuality(t *testing.T) {
	tests := []struct {
		count, total int
		want         string
	}{
		{3, 3, "Perfect"},
		{3, 4, "Great"},
		{2, 3, "Good"},
		{1, 2, "Good"},
		{1, 3, "Limited"},
		{0, 0, "Limited"},
	}
	for _, tt := range tests {
		assertEqual(t, overlapQuality(tt.count, tt.total), tt.want, "overlapQuality(%d, %d) = %q, want %q", tt.count, tt.total, overlapQuality(tt.count, tt.total), tt.want)
	}
}

func Test_formatHourLabel(t *testing.T) {
	tests := []struct {
		hour      int
		use24Hour bool
		want      string
	}{
		{0, false, "12 AM"},
		{9, false, "9 AM"},
		{12, false, "12 PM"},
		{13, false, "1 PM"},
		{9, true, "09:00"},
		{23, true, "23:00"},
	}
	for _, tt := range tests {
		assertEqual(t, formatHourLabel(tt.hour, tt.use24Hour), tt.want, "")
	}
}

func Test_parseDay(t *testing.T) {
	withState(t)

	got, err := parseDay("2025-01-15", "Asia/Tokyo")
	assertError(t, err, false, "")
	tokyo, _ := time.LoadLocation("Asia/Tokyo")
	assertEqual(t, got.Equal(time.Date(2025, 1, 15, 0, 0, 0, 0, tokyo)), true, "expected Tokyo midnight, got %v", got)

	got, err = parseDay("", "UTC")
	assertError(t, err, false, "")
	assertEqual(t, got.Equal(testTime), true, "")

	_, err = parseDay("15.01.2025", "UTC")
	assertError(t, err, true, "invalid date")

	_, err = parseDay("2025-01-15", "Nowhere/Special")
	assertError(t, err, true, "invalid anchor")
}

func newMeetFlags(start, end *int) *cobra.Command {
	cmd := &cobra.Command{}
	cmd.Flags().IntVar(start, "start", 9, "")
	cmd.Flags().IntVar(end, "end", 17, "")
	return cmd
}

func Test_meetingWindow(t *testing.T) {
	tests := []struct {
		name          string
		saved         *tz.BusinessWindow
		args          map[string]string
		want          tz.BusinessWindow
		expectError   bool
		errorContains string
	}{
		{name: "defaults", want: tz.DefaultBusinessWindow},
		{name: "saved window", saved: &tz.BusinessWindow{StartHour: 7, EndHour: 15}, want: tz.BusinessWindow{StartHour: 7, EndHour: 15}},
		{name: "flags override", saved: &tz.BusinessWindow{StartHour: 7, EndHour: 15}, args: map[string]string{"start": "8", "end": "18"}, want: tz.BusinessWindow{StartHour: 8, EndHour: 18}},
		{name: "one flag keeps the other saved hour", saved: &tz.BusinessWindow{StartHour: 7, EndHour: 15}, args: map[string]string{"end": "16"}, want: tz.BusinessWindow{StartHour: 7, EndHour: 16}},
		{name: "start after end", args: map[string]string{"start": "18"}, expectError: true, errorContains: "before end hour"},
		{name: "out of range", args: map[string]string{"end": "24"}, expectError: true, errorContains: "between 0 and 23"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withState(t)
			store := prefs.New(v)
			if tt.saved != nil {
				if err := store.SetBusinessWindow(*tt.saved); err != nil {
					t.Fatalf("failed to save window: %v", err)
				}
			}
			var start, end int
			cmd := newMeetFlags(&start, &end)
			for name, value := range tt.args {
				if err := cmd.Flags().Set(name, value); err != nil {
					t.Fatalf("failed to set %s: %v", name, err)
				}
			}
			got, err := meetingWindow(cmd, store, start, end)
			assertError(t, err, tt.expectError, tt.errorContains)
			if !tt.expectError {
				assertEqual(t, got, tt.want, "")
			}
		})
	}
}

func Test_NewMeetCmd(t *testing.T) {
	withState(t)
	timezones = []string{"America/New_York", "Europe/London", "Asia/Tokyo"}

	var buf bytes.Buffer
	meetCmd := NewMeetCmd()
	meetCmd.SetOut(&buf)
	meetCmd.SetArgs([]string{"--date", "2025-01-15"})
	assertError(t, meetCmd.Execute(), false, "")
	assertContains(t, buf.String(), "Wed, Jan 15", "09:00-17:00", "2 PM", "3 PM", "4 PM", "New York 9 AM, London 2 PM", "2/3", "Good")
	assertEqual(t, v.IsSet(prefs.KeyMeetingStartHour), false, "the window is only saved when given")
}

func Test_NewMeetCmd_savesWindow(t *testing.T) {
	withState(t)
	timezones = []string{"Europe/London", "Europe/Paris"}
	use24Hour = true

	var buf bytes.Buffer
	meetCmd := NewMeetCmd()
	meetCmd.SetOut(&buf)
	meetCmd.SetArgs([]string{"--date", "2025-01-15", "--start", "8", "--end", "10"})
	assertError(t, meetCmd.Execute(), false, "")
	// Paris 08:00-10:00 is 07:00-09:00 UTC, London 08:00-10:00 is 08:00-10:00 UTC
	assertContains(t, buf.String(), "08:00", "2/2", "Perfect")
	assertEqual(t, prefs.New(v).BusinessWindow(), tz.BusinessWindow{StartHour: 8, EndHour: 10}, "")
}

func Test_NewMeetCmd_errors(t *testing.T) {
	tests := []struct {
		name          string
		zones         []string
		args          []string
		errorContains string
	}{
		{name: "one zone", zones: []string{"UTC"}, errorContains: "at least 2 timezones"},
		{name: "bad window", zones: []string{"UTC", "Asia/Tokyo"}, args: []string{"--start", "17", "--end", "9"}, errorContains: "before end hour"},
		{name: "bad date", zones: []string{"UTC", "Asia/Tokyo"}, args: []string{"--date", "tomorrow"}, errorContains: "invalid date"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withState(t)
			timezones = tt.zones
			meetCmd := NewMeetCmd()
			meetCmd.SetOut(&bytes.Buffer{})
			meetCmd.SetErr(&bytes.Buffer{})
			meetCmd.SetArgs(tt.args)
			assertError(t, meetCmd.Execute(), true, tt.errorContains)
		})
	}
}

func Test_printOverlaps_none(t *testing.T) {
	withState(t)
	var buf bytes.Buffer
	printOverlaps(&buf, nil, []string{"Asia/Tokyo", "America/New_York"}, tz.DefaultBusinessWindow, "UTC")
	assertEqual(t, buf.String(), "No overlapping business hours (09:00-17:00) found for at least 2 timezones.\n", "")
}
