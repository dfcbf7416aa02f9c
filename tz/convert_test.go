package tz

import (
	"testing"
	"time"
)

func Test_Convert(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name      string
		instant   time.Time
		from, to  string
		wantShift time.Duration
	}{
		{"new york to london in summer", summerInstant, "America/New_York", "Europe/London", 5 * time.Hour},
		{"london to new york in winter", winterInstant, "Europe/London", "America/New_York", -5 * time.Hour},
		{"london to kolkata", winterInstant, "Europe/London", "Asia/Kolkata", 5*time.Hour + 30*time.Minute},
		{"identity", summerInstant, "Asia/Tokyo", "Asia/Tokyo", 0},
		{"unknown source", summerInstant, "Bad/Zone", "Asia/Tokyo", 0},
		{"unknown target", summerInstant, "Asia/Tokyo", "", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := Convert(tt.instant, tt.from, tt.to)
			if shift := got.Sub(tt.instant); shift != tt.wantShift {
				t.Errorf("Convert(%s -> %s) shifted by %v, want %v", tt.from, tt.to, shift, tt.wantShift)
			}
		})
	}
}

func Test_Convert_identityForCatalog(t *testing.T) {
	t.Parallel()
	instant := time.Date(2024, 10, 27, 1, 30, 0, 0, time.UTC)
	for _, id := range Identifiers() {
		if got := Convert(instant, id, id); !got.Equal(instant) {
			t.Errorf("Convert(%s -> %s) = %s, want %s", id, id, got, instant)
		}
	}
}

func Test_Convert_ignoresAttachedLocation(t *testing.T) {
	t.Parallel()
	tokyo, err := Resolve("Asia/Tokyo")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	utc := Convert(summerInstant, "America/New_York", "Europe/London")
	local := Convert(summerInstant.In(tokyo), "America/New_York", "Europe/London")
	if !utc.Equal(local) {
		t.Errorf("Convert depends on the instant's location: %s vs %s", utc, local)
	}
}

func Test_DayDifference(t *testing.T) {
	t.Parallel()
	instant := time.Date(2024, 1, 15, 3, 0, 0, 0, time.UTC)
	tests := []struct {
		name     string
		from, to string
		want     int
	}{
		{"new york is a day behind tokyo", "America/New_York", "Asia/Tokyo", 1},
		{"tokyo is a day ahead of new york", "Asia/Tokyo", "America/New_York", -1},
		{"same day", "Europe/London", "Europe/Paris", 0},
		{"unknown zone", "Bad/Zone", "Asia/Tokyo", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := DayDifference(instant, tt.from, instant, tt.to); got != tt.want {
				t.Errorf("DayDifference(%s, %s) = %d, want %d", tt.from, tt.to, got, tt.want)
			}
		})
	}
}

func Test_Convert_acrossSpringForward(t *testing.T) {
	t.Parallel()
	// 01:30 EST, half an hour before New York moves to EDT
	instant := time.Date(2024, 3, 10, 6, 30, 0, 0, time.UTC)
	got := Convert(instant, "America/New_York", "UTC")
	if shift := got.Sub(instant); shift != 5*time.Hour {
		t.Errorf("shift = %v, want 5h measured at the original instant", shift)
	}
	if clock := FormatClock(got, "America/New_York", true); clock != "07:30:00" {
		t.Errorf("result read in New York = %s, want 07:30:00", clock)
	}
}
