package tz

import (
	"errors"
	"testing"
	"time"
)

func Test_Resolve(t *testing.T) {
	t.Parallel()
	for _, zone := range []string{"", "Mars/Olympus_Mons", "America/New_York "} {
		if _, err := Resolve(zone); !errors.Is(err, ErrUnknownZone) {
			t.Errorf("Resolve(%q) error = %v, want ErrUnknownZone", zone, err)
		}
	}
	loc, err := Resolve("UTC")
	if err != nil {
		t.Fatalf("Resolve(UTC) failed: %v", err)
	}
	if loc != time.UTC && loc.String() != "UTC" {
		t.Errorf("unexpected location %s", loc)
	}
}

func Test_FormatClock(t *testing.T) {
	t.Parallel()
	instant := time.Date(2024, 1, 15, 14, 5, 9, 0, time.UTC)
	tests := []struct {
		name      string
		zone      string
		use24Hour bool
		want      string
	}{
		{"new york 12-hour", "America/New_York", false, "9:05:09 AM"},
		{"new york 24-hour", "America/New_York", true, "09:05:09"},
		{"tokyo 12-hour crosses midnight", "Asia/Tokyo", false, "11:05:09 PM"},
		{"kolkata half hour", "Asia/Kolkata", true, "19:35:09"},
		{"utc", "UTC", false, "2:05:09 PM"},
		{"invalid zone", "Nowhere/Special", false, InvalidTimezone},
		{"empty zone", "", true, InvalidTimezone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := FormatClock(instant, tt.zone, tt.use24Hour); got != tt.want {
				t.Errorf("FormatClock(%s) = %q, want %q", tt.zone, got, tt.want)
			}
		})
	}
}

func Test_FormatClock_kolkataOnHalfHour(t *testing.T) {
	t.Parallel()
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	for h := 0; h < 24; h++ {
		got := FormatClock(start.Add(time.Duration(h)*time.Hour), "Asia/Kolkata", true)
		if got[3:5] != "30" {
			t.Errorf("hour %d UTC rendered as %s, expected minutes :30", h, got)
		}
	}
}

func Test_FormatDate(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		instant time.Time
		zone    string
		want    string
	}{
		{"same day", time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC), "Europe/London", "Mon, Jan 15"},
		{"previous day west", time.Date(2024, 1, 15, 3, 0, 0, 0, time.UTC), "America/New_York", "Sun, Jan 14"},
		{"next day east", time.Date(2024, 1, 15, 20, 0, 0, 0, time.UTC), "Asia/Tokyo", "Tue, Jan 16"},
		{"invalid zone", time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC), "Bad/Zone", InvalidDate},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := FormatDate(tt.instant, tt.zone); got != tt.want {
				t.Errorf("FormatDate() = %q, want %q", got, tt.want)
			}
		})
	}
}

func Test_formatting_isDeterministic(t *testing.T) {
	t.Parallel()
	instant := time.Date(2024, 11, 3, 6, 30, 0, 0, time.UTC)
	for _, zone := range []string{"America/New_York", "Asia/Kolkata", "Pacific/Auckland"} {
		clock, date := FormatClock(instant, zone, false), FormatDate(instant, zone)
		for i := 0; i < 5; i++ {
			if FormatClock(instant, zone, false) != clock || FormatDate(instant, zone) != date {
				t.Fatalf("formatting %s changed between calls", zone)
			}
		}
	}
}

func Test_ZoneAbbreviation(t *testing.T) {
	t.Parallel()
	winter := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)
	summer := time.Date(2024, 7, 15, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		zone    string
		instant time.Time
		want    string
	}{
		{"America/New_York", winter, "EST"},
		{"America/New_York", summer, "EDT"},
		{"America/Los_Angeles", summer, "PDT"},
		{"Europe/London", winter, "GMT"},
		{"Europe/London", summer, "BST"},
		{"Asia/Tokyo", summer, "JST"},
		{"Asia/Dubai", summer, "GMT+4"},
		{"America/Sao_Paulo", winter, "GMT-3"},
		{"UTC", winter, "UTC"},
		{"Invalid/Zone", winter, ""},
	}
	for _, tt := range tests {
		t.Run(tt.zone+"/"+tt.want, func(t *testing.T) {
			t.Parallel()
			if got := ZoneAbbreviation(tt.zone, tt.instant); got != tt.want {
				t.Errorf("ZoneAbbreviation(%s) = %q, want %q", tt.zone, got, tt.want)
			}
		})
	}
}

func Test_gmtName(t *testing.T) {
	t.Parallel()
	tests := []struct {
		offset int
		want   string
	}{
		{0, "GMT"},
		{4 * 3600, "GMT+4"},
		{19800, "GMT+5:30"},
		{20700, "GMT+5:45"},
		{-12600, "GMT-3:30"},
		{-3 * 3600, "GMT-3"},
	}
	for _, tt := range tests {
		if got := gmtName(tt.offset); got != tt.want {
			t.Errorf("gmtName(%d) = %q, want %q", tt.offset, got, tt.want)
		}
	}
}

func Test_Project(t *testing.T) {
	t.Parallel()
	r, err := Project(time.Date(2024, 12, 31, 23, 30, 15, 0, time.UTC), "Asia/Kolkata")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := LocalReading{Year: 2025, Month: time.January, Day: 1, Hour: 5, Minute: 0, Second: 15}
	if r != want {
		t.Errorf("Project() = %+v, want %+v", r, want)
	}
	if _, err := Project(time.Now(), "Bad/Zone"); err == nil {
		t.Error("expected an error for an unknown zone")
	}
}
