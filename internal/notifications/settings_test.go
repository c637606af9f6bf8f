package notifications

import (
	"context"
	"testing"
)

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()

	if !s.DailyDevotions {
		t.Error("DailyDevotions should default to true")
	}
	if !s.PrayerUpdates {
		t.Error("PrayerUpdates should default to true")
	}
	if s.CommunityActivity {
		t.Error("CommunityActivity should default to false")
	}
	if !s.SpiritualMilestones {
		t.Error("SpiritualMilestones should default to true")
	}
	if s.Time != "08:00" {
		t.Errorf("Time = %q, want %q", s.Time, "08:00")
	}
	if err := s.Validate(); err != nil {
		t.Errorf("default settings should validate: %v", err)
	}
}

func TestSettingsValidate(t *testing.T) {
	tests := []struct {
		time    string
		wantErr bool
	}{
		{"00:00", false},
		{"08:00", false},
		{"12:30", false},
		{"19:05", false},
		{"23:59", false},
		{"", true},
		{"24:00", true},
		{"25:61", true},
		{"8:00", true},
		{"08:5", true},
		{"08:60", true},
		{"noon", true},
		{"08:00:00", true},
		{"-1:30", true},
	}

	for _, tt := range tests {
		t.Run(tt.time, func(t *testing.T) {
			s := DefaultSettings()
			s.Time = tt.time
			err := s.Validate()
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Validate(%q) = nil, want error", tt.time)
				}
				if !IsValidation(err) {
					t.Errorf("Validate(%q) error is not a ValidationError: %v", tt.time, err)
				}
			} else if err != nil {
				t.Errorf("Validate(%q) error = %v", tt.time, err)
			}
		})
	}
}

func TestReminderTime(t *testing.T) {
	s := DefaultSettings()
	s.Time = "19:05"

	hour, minute, err := s.ReminderTime()
	if err != nil {
		t.Fatalf("ReminderTime() error = %v", err)
	}
	if hour != 19 || minute != 5 {
		t.Errorf("ReminderTime() = %d:%d, want 19:5", hour, minute)
	}

	s.Time = "25:61"
	if _, _, err := s.ReminderTime(); !IsValidation(err) {
		t.Errorf("ReminderTime() with bad time error = %v, want ValidationError", err)
	}
}

func TestSettingsEnabled(t *testing.T) {
	s := Settings{PrayerUpdates: true, Time: "08:00"}

	if !s.Enabled(CategoryPrayer) {
		t.Error("Enabled(prayer) = false, want true")
	}
	for _, c := range []Category{CategoryDevotion, CategoryCommunity, CategoryMilestone} {
		if s.Enabled(c) {
			t.Errorf("Enabled(%s) = true, want false", c)
		}
	}
	if s.Enabled(Category("unknown")) {
		t.Error("Enabled(unknown) = true, want false")
	}
}

func TestSettingsStore_RoundTrip(t *testing.T) {
	store := newTestSettingsStore(t)

	want := Settings{
		DailyDevotions:      false,
		PrayerUpdates:       true,
		CommunityActivity:   true,
		SpiritualMilestones: false,
		Time:                "21:45",
	}
	if err := store.Save(context.Background(), want); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	if got := store.Load(); got != want {
		t.Errorf("Load() = %+v, want %+v", got, want)
	}
}

func TestSettingsStore_LoadDefaultWhenMissing(t *testing.T) {
	store := newTestSettingsStore(t)

	if store.Exists() {
		t.Fatal("Exists() = true on fresh store")
	}
	if got := store.Load(); got != DefaultSettings() {
		t.Errorf("Load() on fresh store = %+v, want defaults", got)
	}
}

func TestSettingsStore_SaveRejectsInvalid(t *testing.T) {
	store := newTestSettingsStore(t)

	good := DefaultSettings()
	if err := store.Save(context.Background(), good); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	bad := good
	bad.Time = "25:61"
	if err := store.Save(context.Background(), bad); !IsValidation(err) {
		t.Fatalf("Save() with bad time error = %v, want ValidationError", err)
	}

	// The previously persisted record is untouched.
	if got := store.Load(); got != good {
		t.Errorf("Load() after rejected save = %+v, want %+v", got, good)
	}
}

func TestSettingsStore_OnSaveHook(t *testing.T) {
	store := newTestSettingsStore(t)

	var seen []Settings
	store.SetOnSave(func(_ context.Context, s Settings) error {
		seen = append(seen, s)
		return nil
	})

	s := DefaultSettings()
	if err := store.Save(context.Background(), s); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if len(seen) != 1 || seen[0] != s {
		t.Errorf("on-save hook saw %+v, want one call with %+v", seen, s)
	}

	// A rejected save never reaches the hook.
	bad := s
	bad.Time = "nope"
	_ = store.Save(context.Background(), bad)
	if len(seen) != 1 {
		t.Errorf("on-save hook called %d times after rejected save, want 1", len(seen))
	}
}
