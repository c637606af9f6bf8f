// Package notifications implements the notification engine: persisted user
// preferences, platform permission handling, schedule reconciliation, and
// event-driven sends, all behind a single orchestrator facade.
package notifications

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Category identifies one per-category notification opt-in. The values
// double as queue tags on the platform side.
type Category string

const (
	CategoryDevotion  Category = "daily_devotions"
	CategoryPrayer    Category = "prayer_updates"
	CategoryCommunity Category = "community_activity"
	CategoryMilestone Category = "spiritual_milestones"
)

// timePattern is the only accepted shape for the daily reminder time:
// 24-hour HH:MM, zero-padded.
var timePattern = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

// Settings is the persisted notification preference record. It is always
// written whole, never patched.
type Settings struct {
	DailyDevotions      bool   `json:"daily_devotions"`
	PrayerUpdates       bool   `json:"prayer_updates"`
	CommunityActivity   bool   `json:"community_activity"`
	SpiritualMilestones bool   `json:"spiritual_milestones"`
	Time                string `json:"time"`
}

// DefaultSettings returns the first-run record: everything on except
// community activity, reminder at 08:00.
func DefaultSettings() Settings {
	return Settings{
		DailyDevotions:      true,
		PrayerUpdates:       true,
		CommunityActivity:   false,
		SpiritualMilestones: true,
		Time:                "08:00",
	}
}

// Validate checks the record shape. The time string must match HH:MM in
// 24-hour form and must never be empty.
func (s Settings) Validate() error {
	if s.Time == "" {
		return NewValidationError("time", "must not be empty")
	}
	if !timePattern.MatchString(s.Time) {
		return NewValidationError("time", "%q does not match HH:MM", s.Time)
	}
	return nil
}

// Enabled reports whether the given category is switched on.
func (s Settings) Enabled(c Category) bool {
	switch c {
	case CategoryDevotion:
		return s.DailyDevotions
	case CategoryPrayer:
		return s.PrayerUpdates
	case CategoryCommunity:
		return s.CommunityActivity
	case CategoryMilestone:
		return s.SpiritualMilestones
	}
	return false
}

// ReminderTime parses the daily time into hour and minute. Callers should
// validate first; a malformed string is returned as a ValidationError.
func (s Settings) ReminderTime() (hour, minute int, err error) {
	if err := s.Validate(); err != nil {
		return 0, 0, err
	}
	parts := strings.SplitN(s.Time, ":", 2)
	hour, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, fmt.Errorf("parse hour: %w", err)
	}
	minute, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, fmt.Errorf("parse minute: %w", err)
	}
	return hour, minute, nil
}
