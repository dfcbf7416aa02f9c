// Copyright © 2025 Jake Rogers <code@supportoss.org>
package tz

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// TimezoneDescriptor describes one entry of the zone catalog.
type TimezoneDescriptor struct {
	Identifier    string `mapstructure:"identifier" yaml:"identifier"`
	Label         string `mapstructure:"label" yaml:"label"`
	City          string `mapstructure:"city" yaml:"city"`
	Country       string `mapstructure:"country" yaml:"country"`
	NominalOffset string `mapstructure:"nominaloffset" yaml:"nominaloffset"`
}

var registry = []TimezoneDescriptor{
	{"America/New_York", "New York (EST/EDT)", "New York", "United States", "UTC-5/-4"},
	{"America/Los_Angeles", "Los Angeles (PST/PDT)", "Los Angeles", "United States", "UTC-8/-7"},
	{"America/Chicago", "Chicago (CST/CDT)", "Chicago", "United States", "UTC-6/-5"},
	{"America/Denver", "Denver (MST/MDT)", "Denver", "United States", "UTC-7/-6"},
	{"Europe/London", "London (GMT/BST)", "London", "United Kingdom", "UTC+0/+1"},
	{"Europe/Paris", "Paris (CET/CEST)", "Paris", "France", "UTC+1/+2"},
	{"Europe/Berlin", "Berlin (CET/CEST)", "Berlin", "Germany", "UTC+1/+2"},
	{"Europe/Rome", "Rome (CET/CEST)", "Rome", "Italy", "UTC+1/+2"},
	{"Europe/Madrid", "Madrid (CET/CEST)", "Madrid", "Spain", "UTC+1/+2"},
	{"Europe/Amsterdam", "Amsterdam (CET/CEST)", "Amsterdam", "Netherlands", "UTC+1/+2"},
	{"Asia/Tokyo", "Tokyo (JST)", "Tokyo", "Japan", "UTC+9"},
	{"Asia/Shanghai", "Shanghai (CST)", "Shanghai", "China", "UTC+8"},
	{"Asia/Hong_Kong", "Hong Kong (HKT)", "Hong Kong", "Hong Kong", "UTC+8"},
	{"Asia/Singapore", "Singapore (SGT)", "Singapore", "Singapore", "UTC+8"},
	{"Asia/Seoul", "Seoul (KST)", "Seoul", "South Korea", "UTC+9"},
	{"Asia/Kolkata", "Mumbai (IST)", "Mumbai", "India", "UTC+5:30"},
	{"Asia/Dubai", "Dubai (GST)", "Dubai", "UAE", "UTC+4"},
	{"Australia/Sydney", "Sydney (AEST/AEDT)", "Sydney", "Australia", "UTC+10/+11"},
	{"Australia/Melbourne", "Melbourne (AEST/AEDT)", "Melbourne", "Australia", "UTC+10/+11"},
	{"Pacific/Auckland", "Auckland (NZST/NZDT)", "Auckland", "New Zealand", "UTC+12/+13"},
	{"America/Toronto", "Toronto (EST/EDT)", "Toronto", "Canada", "UTC-5/-4"},
	{"America/Vancouver", "Vancouver (PST/PDT)", "Vancouver", "Canada", "UTC-8/-7"},
	{"America/Sao_Paulo", "São Paulo (BRT)", "São Paulo", "Brazil", "UTC-3"},
	{"America/Mexico_City", "Mexico City (CST/CDT)", "Mexico City", "Mexico", "UTC-6/-5"},
	{"America/Buenos_Aires", "Buenos Aires (ART)", "Buenos Aires", "Argentina", "UTC-3"},
	{"Europe/Moscow", "Moscow (MSK)", "Moscow", "Russia", "UTC+3"},
	{"Europe/Istanbul", "Istanbul (TRT)", "Istanbul", "Turkey", "UTC+3"},
	{"Africa/Cairo", "Cairo (EET)", "Cairo", "Egypt", "UTC+2"},
	{"Africa/Johannesburg", "Johannesburg (SAST)", "Johannesburg", "South Africa", "UTC+2"},
	{"Asia/Bangkok", "Bangkok (ICT)", "Bangkok", "Thailand", "UTC+7"},
	{"Asia/Jakarta", "Jakarta (WIB)", "Jakarta", "Indonesia", "UTC+7"},
	{"Pacific/Honolulu", "Honolulu (HST)", "Honolulu", "United States", "UTC-10"},
	{"America/Anchorage", "Anchorage (AKST/AKDT)", "Anchorage", "United States", "UTC-9/-8"},
}

var (
	popularZones = []string{
		"America/New_York", "America/Los_Angeles", "Europe/London",
		"Asia/Tokyo", "Asia/Shanghai", "Europe/Paris",
	}
	defaultZones = []string{"America/New_York", "Europe/London", "Asia/Tokyo"}
)

// All returns a copy of the catalog in its fixed order.
func All() []TimezoneDescriptor {
	return append([]TimezoneDescriptor(nil), registry...)
}

// Lookup finds a catalog entry by identifier.
func Lookup(identifier string) (TimezoneDescriptor, bool) {
	for _, d := range registry {
		if d.Identifier == identifier {
			return d, true
		}
	}
	return TimezoneDescriptor{}, false
}

// Identifiers returns the catalog identifiers in catalog order.
func Identifiers() []string {
	ids := make([]string, len(registry))
	for i, d := range registry {
		ids[i] = d.Identifier
	}
	return ids
}

// Defaults returns the working set used before the user has picked any zones.
func Defaults() []TimezoneDescriptor {
	return pick(defaultZones, nil)
}

// Popular returns the quick-pick zones that are not already excluded.
func Popular(exclude []string) []TimezoneDescriptor {
	return pick(popularZones, exclude)
}

// Search matches the query against city, country and label, ignoring case and accents.
// Excluded identifiers are skipped. An empty query matches every remaining zone.
func Search(query string, exclude []string) []TimezoneDescriptor {
	q := fold(query)
	var matches []TimezoneDescriptor
	for _, d := range registry {
		if contains(exclude, d.Identifier) {
			continue
		}
		if q == "" || strings.Contains(fold(d.City), q) || strings.Contains(fold(d.Country), q) ||
			strings.Contains(fold(d.Label), q) {
			matches = append(matches, d)
		}
	}
	return matches
}

// Areas groups the catalog identifiers by IANA area, e.g. "America" -> ["New_York", ...].
func Areas() map[string][]string {
	areas := make(map[string][]string)
	for _, d := range registry {
		area, location, ok := strings.Cut(d.Identifier, "/")
		if !ok {
			continue
		}
		areas[area] = append(areas[area], location)
	}
	return areas
}

// pick returns the catalog entries for ids, in catalog order, minus exclude.
func pick(ids, exclude []string) []TimezoneDescriptor {
	var out []TimezoneDescriptor
	for _, d := range registry {
		if contains(ids, d.Identifier) && !contains(exclude, d.Identifier) {
			out = append(out, d)
		}
	}
	return out
}

func contains(s []string, v string) bool {
	for _, e := range s {
		if e == v {
			return true
		}
	}
	return false
}

// fold lower-cases s and strips combining marks so "São" matches "sao".
func fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	return strings.ToLower(strings.TrimSpace(folded))
}

// Describe returns the catalog entry for identifier, or a minimal descriptor for zones outside the
// catalog ("Europe/Vilnius" becomes city "Vilnius"). It does not check that the zone resolves.
func Describe(identifier string) TimezoneDescriptor {
	if d, ok := Lookup(identifier); ok {
		return d
	}
	city := identifier
	if i := strings.LastIndex(identifier, "/"); i >= 0 {
		city = identifier[i+1:]
	}
	return TimezoneDescriptor{
		Identifier: identifier,
		Label:      identifier,
		City:       strings.ReplaceAll(city, "_", " "),
	}
}
