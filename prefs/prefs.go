// Copyright © 2025 Jake Rogers <code@supportoss.org>

// Package prefs persists zoneMate's user preferences in the viper-managed config file.
package prefs

import (
	"sync"

	"github.com/JakeTRogers/zoneMate/logger"
	"github.com/JakeTRogers/zoneMate/tz"
	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// Preference keys as they appear in the config file.
const (
	KeySelectedTimezones = "selected-timezones"
	KeyUse24Hour         = "use-24-hour"
	KeyMeetingStartHour  = "meeting-start-hour"
	KeyMeetingEndHour    = "meeting-end-hour"
	KeyColor             = "color"
)

// KV is the minimal preference capability the display layer depends on.
type KV interface {
	Get(key string, def any) any
	Set(key string, value any) error
}

// Store is a KV backed by a viper instance. Every Set is written through to the config file when one
// exists; otherwise the value lives in memory only.
type Store struct {
	v    *viper.Viper
	mu   sync.Mutex
	subs map[string][]func(any)
}

// New wraps v. The caller owns v's config file setup.
func New(v *viper.Viper) *Store {
	return &Store{v: v, subs: make(map[string][]func(any))}
}

// Viper exposes the underlying instance for flag binding.
func (s *Store) Viper() *viper.Viper {
	return s.v
}

// Get returns the stored value for key, or def when the key was never set.
func (s *Store) Get(key string, def any) any {
	if !s.v.IsSet(key) {
		return def
	}
	return s.v.Get(key)
}

// Set stores value under key, writes the config file and notifies subscribers of key.
// Subscribers are notified even if the write fails.
func (s *Store) Set(key string, value any) error {
	s.v.Set(key, value)
	err := s.v.WriteConfig()
	var notFound viper.ConfigFileNotFoundError
	if errors.As(err, &notFound) {
		err = nil
	}
	s.notify(key, value)
	if err != nil {
		return errors.Wrapf(err, "failed to save %s", key)
	}
	return nil
}

// Subscribe registers fn to be called with the new value whenever key changes.
func (s *Store) Subscribe(key string, fn func(any)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs[key] = append(s.subs[key], fn)
}

// Watch starts watching the config file and notifies every subscriber when it is edited externally.
func (s *Store) Watch() {
	s.v.OnConfigChange(func(e fsnotify.Event) {
		logger.GetLogger().Debug().Str("file", e.Name).Str("op", e.Op.String()).Msg("config changed")
		s.mu.Lock()
		keys := make([]string, 0, len(s.subs))
		for k := range s.subs {
			keys = append(keys, k)
		}
		s.mu.Unlock()
		for _, k := range keys {
			s.notify(k, s.v.Get(k))
		}
	})
	s.v.WatchConfig()
}

func (s *Store) notify(key string, value any) {
	s.mu.Lock()
	fns := append([]func(any){}, s.subs[key]...)
	s.mu.Unlock()
	for _, fn := range fns {
		fn(value)
	}
}

// SelectedTimezones returns the saved working set, or tz.Defaults() when nothing usable or an empty list is saved.
// Entries saved as bare identifiers are accepted as well as full descriptors.
func (s *Store) SelectedTimezones() []tz.TimezoneDescriptor {
	if !s.v.IsSet(KeySelectedTimezones) {
		return tz.Defaults()
	}
	var zones []tz.TimezoneDescriptor
	if err := s.v.UnmarshalKey(KeySelectedTimezones, &zones); err != nil {
		ids := s.v.GetStringSlice(KeySelectedTimezones)
		if len(ids) == 0 {
			logger.GetLogger().Warn().Err(err).Msg("ignoring unreadable selected-timezones")
			return tz.Defaults()
		}
		zones = zones[:0]
		for _, id := range ids {
			zones = append(zones, tz.Describe(id))
		}
	}
	if len(zones) == 0 {
		return tz.Defaults()
	}
	return zones
}

// SetSelectedTimezones saves the working set in order.
func (s *Store) SetSelectedTimezones(zones []tz.TimezoneDescriptor) error {
	out := make([]map[string]any, len(zones))
	for i, z := range zones {
		out[i] = map[string]any{
			"identifier":    z.Identifier,
			"label":         z.Label,
			"city":          z.City,
			"country":       z.Country,
			"nominaloffset": z.NominalOffset,
		}
	}
	return s.Set(KeySelectedTimezones, out)
}

// Use24Hour reports whether clocks render in 24-hour form. Defaults to false.
func (s *Store) Use24Hour() bool {
	return s.v.GetBool(KeyUse24Hour)
}

// BusinessWindow returns the saved meeting window, falling back to tz.DefaultBusinessWindow when the
// saved pair is missing or invalid.
func (s *Store) BusinessWindow() tz.BusinessWindow {
	w := tz.DefaultBusinessWindow
	if s.v.IsSet(KeyMeetingStartHour) {
		w.StartHour = s.v.GetInt(KeyMeetingStartHour)
	}
	if s.v.IsSet(KeyMeetingEndHour) {
		w.EndHour = s.v.GetInt(KeyMeetingEndHour)
	}
	if err := w.Validate(); err != nil {
		logger.GetLogger().Warn().Err(err).Msg("using default meeting hours")
		return tz.DefaultBusinessWindow
	}
	return w
}

// SetBusinessWindow validates and saves the meeting window.
func (s *Store) SetBusinessWindow(w tz.BusinessWindow) error {
	if err := w.Validate(); err != nil {
		return err
	}
	if err := s.Set(KeyMeetingStartHour, w.StartHour); err != nil {
		return err
	}
	return s.Set(KeyMeetingEndHour, w.EndHour)
}
