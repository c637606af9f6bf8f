package notifications

import (
	"context"
	"testing"
	"time"

	"selah/internal/platform"

	"go.uber.org/zap"
)

func grantedStatus() platform.Status {
	return platform.Status{Permission: platform.Granted, CanAskAgain: true, Platform: platform.Local}
}

func TestReconcile_DailyEntry(t *testing.T) {
	tests := []struct {
		name      string
		daily     bool
		wantDaily int
	}{
		{name: "enabled creates one entry", daily: true, wantDaily: 1},
		{name: "disabled creates none", daily: false, wantDaily: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := platform.NewFake()
			r := NewScheduleReconciler(fake, DefaultWeeklyCue(), zap.NewNop())

			s := DefaultSettings()
			s.DailyDevotions = tt.daily
			s.SpiritualMilestones = false

			if err := r.Reconcile(context.Background(), s, grantedStatus()); err != nil {
				t.Fatalf("Reconcile() error = %v", err)
			}

			got := fake.TaggedEntries(string(CategoryDevotion))
			if len(got) != tt.wantDaily {
				t.Fatalf("devotion entries = %d, want %d", len(got), tt.wantDaily)
			}
			if tt.wantDaily == 1 {
				tr := got[0].Trigger
				if tr.Kind != platform.TriggerDaily || tr.Hour != 8 || tr.Minute != 0 {
					t.Errorf("devotion trigger = %+v, want daily 08:00", tr)
				}
			}
		})
	}
}

func TestReconcile_WeeklyEntry(t *testing.T) {
	fake := platform.NewFake()
	cue := WeeklyCue{Weekday: time.Sunday, Hour: 18, Minute: 0}
	r := NewScheduleReconciler(fake, cue, zap.NewNop())

	s := DefaultSettings()
	s.DailyDevotions = false

	if err := r.Reconcile(context.Background(), s, grantedStatus()); err != nil {
		t.Fatalf("Reconcile() error = %v", err)
	}

	got := fake.TaggedEntries(string(CategoryMilestone))
	if len(got) != 1 {
		t.Fatalf("milestone entries = %d, want 1", len(got))
	}
	tr := got[0].Trigger
	if tr.Kind != platform.TriggerWeekly || tr.Weekday != time.Sunday || tr.Hour != 18 || tr.Minute != 0 {
		t.Errorf("milestone trigger = %+v, want weekly Sunday 18:00", tr)
	}
}

func TestReconcile_NoDuplicatesAcrossRuns(t *testing.T) {
	fake := platform.NewFake()
	r := NewScheduleReconciler(fake, DefaultWeeklyCue(), zap.NewNop())

	s := DefaultSettings()
	for i := 0; i < 5; i++ {
		if err := r.Reconcile(context.Background(), s, grantedStatus()); err != nil {
			t.Fatalf("Reconcile() run %d error = %v", i, err)
		}
	}

	if n := len(fake.TaggedEntries(string(CategoryDevotion))); n != 1 {
		t.Errorf("devotion entries after 5 runs = %d, want 1", n)
	}
	if n := len(fake.TaggedEntries(string(CategoryMilestone))); n != 1 {
		t.Errorf("milestone entries after 5 runs = %d, want 1", n)
	}
	if fake.CancelCalls != 5 {
		t.Errorf("CancelAll calls = %d, want 5 (cancel precedes every create)", fake.CancelCalls)
	}
}

func TestReconcile_InvalidTimeFailsWhole(t *testing.T) {
	fake := platform.NewFake()
	r := NewScheduleReconciler(fake, DefaultWeeklyCue(), zap.NewNop())

	// Seed a queue so we can tell whether the failed run touched it.
	good := DefaultSettings()
	if err := r.Reconcile(context.Background(), good, grantedStatus()); err != nil {
		t.Fatalf("seed Reconcile() error = %v", err)
	}
	before := len(fake.Queue)
	cancels := fake.CancelCalls

	bad := good
	bad.Time = "25:61"
	err := r.Reconcile(context.Background(), bad, grantedStatus())
	if !IsValidation(err) {
		t.Fatalf("Reconcile() with bad time error = %v, want ValidationError", err)
	}

	// Validation fails before any platform side effect.
	if len(fake.Queue) != before {
		t.Errorf("queue length changed on failed reconcile: %d -> %d", before, len(fake.Queue))
	}
	if fake.CancelCalls != cancels {
		t.Errorf("CancelAll ran on failed reconcile")
	}
}

func TestReconcile_SkipsWithoutScheduling(t *testing.T) {
	fake := platform.NewFake()
	fake.PlatformID = platform.Web
	fake.Scheduling = false
	r := NewScheduleReconciler(fake, DefaultWeeklyCue(), zap.NewNop())

	if err := r.Reconcile(context.Background(), DefaultSettings(), grantedStatus()); err != nil {
		t.Fatalf("Reconcile() error = %v (capability gap must not fail)", err)
	}
	if len(fake.Queue) != 0 {
		t.Errorf("queue length = %d on non-scheduling platform, want 0", len(fake.Queue))
	}
	if fake.CancelCalls != 1 {
		t.Errorf("CancelAll calls = %d, want 1 (cancel still runs)", fake.CancelCalls)
	}
}

func TestReconcile_EmptiesQueueWithoutPermission(t *testing.T) {
	fake := platform.NewFake()
	r := NewScheduleReconciler(fake, DefaultWeeklyCue(), zap.NewNop())

	if err := r.Reconcile(context.Background(), DefaultSettings(), grantedStatus()); err != nil {
		t.Fatalf("seed Reconcile() error = %v", err)
	}

	denied := platform.Status{Permission: platform.Denied, CanAskAgain: true, Platform: platform.Local}
	if err := r.Reconcile(context.Background(), DefaultSettings(), denied); err != nil {
		t.Fatalf("Reconcile() without permission error = %v", err)
	}
	if len(fake.Queue) != 0 {
		t.Errorf("queue length = %d without permission, want 0", len(fake.Queue))
	}
}
