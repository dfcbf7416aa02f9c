package tz

import (
	"testing"
	"time"
)

var (
	winterInstant = time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)
	summerInstant = time.Date(2024, 7, 15, 12, 0, 0, 0, time.UTC)
)

func Test_OffsetFromUTC(t *testing.T) {
	t.Parallel()
	tests := []struct {
		zone    string
		instant time.Time
		want    time.Duration
	}{
		{"America/New_York", winterInstant, -5 * time.Hour},
		{"America/New_York", summerInstant, -4 * time.Hour},
		{"Europe/London", winterInstant, 0},
		{"Europe/London", summerInstant, time.Hour},
		{"Asia/Kolkata", winterInstant, 5*time.Hour + 30*time.Minute},
		{"Australia/Sydney", winterInstant, 11 * time.Hour},
		{"Australia/Sydney", summerInstant, 10 * time.Hour},
		{"UTC", summerInstant, 0},
		{"Not/AZone", summerInstant, 0},
	}
	for _, tt := range tests {
		t.Run(tt.zone, func(t *testing.T) {
			t.Parallel()
			if got := OffsetFromUTC(tt.zone, tt.instant); got != tt.want {
				t.Errorf("OffsetFromUTC(%s, %s) = %v, want %v", tt.zone, tt.instant, got, tt.want)
			}
		})
	}
}

func Test_OffsetFromUTC_boundsForCatalog(t *testing.T) {
	t.Parallel()
	for _, d := range All() {
		for month := time.January; month <= time.December; month++ {
			instant := time.Date(2024, month, 10, 6, 0, 0, 0, time.UTC)
			off := OffsetFromUTC(d.Identifier, instant)
			if off%(15*time.Minute) != 0 {
				t.Errorf("%s offset %v in %s is not a multiple of 15 minutes", d.Identifier, off, month)
			}
			if off < -12*time.Hour || off > 14*time.Hour {
				t.Errorf("%s offset %v in %s is out of range", d.Identifier, off, month)
			}
		}
	}
}

func Test_OffsetDifference(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		a, b    string
		instant time.Time
		want    float64
	}{
		{"new york to london winter", "America/New_York", "Europe/London", winterInstant, 5},
		{"new york to london summer", "America/New_York", "Europe/London", summerInstant, 5},
		{"us dst starts before uk", "America/New_York", "Europe/London", time.Date(2024, 3, 20, 12, 0, 0, 0, time.UTC), 4},
		{"london to kolkata", "Europe/London", "Asia/Kolkata", winterInstant, 5.5},
		{"tokyo to los angeles", "Asia/Tokyo", "America/Los_Angeles", summerInstant, -16},
		{"same zone", "Asia/Tokyo", "Asia/Tokyo", summerInstant, 0},
		{"invalid from", "Bad/Zone", "Asia/Tokyo", summerInstant, 0},
		{"invalid to", "Asia/Tokyo", "Bad/Zone", summerInstant, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := OffsetDifference(tt.a, tt.b, tt.instant); got != tt.want {
				t.Errorf("OffsetDifference(%s, %s) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func Test_OffsetDifference_antisymmetric(t *testing.T) {
	t.Parallel()
	ids := Identifiers()
	for _, instant := range []time.Time{winterInstant, summerInstant} {
		for _, a := range ids {
			for _, b := range ids {
				if OffsetDifference(a, b, instant) != -OffsetDifference(b, a, instant) {
					t.Errorf("OffsetDifference(%s, %s) is not antisymmetric at %s", a, b, instant)
				}
			}
		}
	}
}

func Test_FormatOffset(t *testing.T) {
	t.Parallel()
	tests := []struct {
		offset time.Duration
		want   string
	}{
		{5 * time.Hour, "+5"},
		{-8 * time.Hour, "-8"},
		{0, "+0"},
		{5*time.Hour + 30*time.Minute, "+5:30"},
		{-(9*time.Hour + 30*time.Minute), "-9:30"},
		{5*time.Hour + 45*time.Minute, "+5:45"},
	}
	for _, tt := range tests {
		if got := FormatOffset(tt.offset); got != tt.want {
			t.Errorf("FormatOffset(%v) = %q, want %q", tt.offset, got, tt.want)
		}
	}
}

func Test_DescribeDifference(t *testing.T) {
	t.Parallel()
	tests := []struct {
		hours float64
		want  string
	}{
		{0, "Same time"},
		{5, "5 hours ahead"},
		{-3.5, "3.5 hours behind"},
		{1, "1 hour ahead"},
		{-1, "1 hour behind"},
	}
	for _, tt := range tests {
		if got := DescribeDifference(tt.hours); got != tt.want {
			t.Errorf("DescribeDifference(%v) = %q, want %q", tt.hours, got, tt.want)
		}
	}
}
