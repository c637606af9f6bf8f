package notifications

import (
	"context"
	"fmt"
	"time"

	"selah/internal/platform"

	"go.uber.org/zap"
)

// WeeklyCue is the fixed slot for the standing milestone encouragement. It
// is independent of the user's daily reminder time.
type WeeklyCue struct {
	Weekday time.Weekday
	Hour    int
	Minute  int
}

// DefaultWeeklyCue returns the standard milestone slot, Sunday 18:00.
func DefaultWeeklyCue() WeeklyCue {
	return WeeklyCue{Weekday: time.Sunday, Hour: 18, Minute: 0}
}

// ScheduleReconciler drives the platform's recurring queue to match the
// current settings. Each run cancels everything first and then recreates
// the desired entries, so repeated setting changes never accumulate
// duplicates.
type ScheduleReconciler struct {
	api    platform.API
	log    *zap.Logger
	weekly WeeklyCue
}

// NewScheduleReconciler creates a reconciler over the platform API.
func NewScheduleReconciler(api platform.API, weekly WeeklyCue, log *zap.Logger) *ScheduleReconciler {
	return &ScheduleReconciler{api: api, log: log, weekly: weekly}
}

// Reconcile runs one full cancel-then-recreate pass. The settings record is
// validated before any platform call, so a malformed time string fails the
// whole reconcile without touching the queue. Without granted permission
// the desired queue is empty. On a platform without local scheduling the
// create steps are skipped entirely; that is a capability gap, not a
// failure.
func (r *ScheduleReconciler) Reconcile(ctx context.Context, s Settings, st platform.Status) error {
	hour, minute, err := s.ReminderTime()
	if err != nil {
		return err
	}

	if err := r.api.CancelAll(ctx); err != nil {
		return fmt.Errorf("cancel scheduled notifications: %w", err)
	}

	if !st.GrantedNow() {
		r.log.Debug("reconcile leaves queue empty without permission")
		return nil
	}
	if !r.api.SupportsScheduling() {
		r.log.Debug("platform has no local scheduling, skipping recurring entries",
			zap.String("platform", string(r.api.ID())))
		return nil
	}

	if s.DailyDevotions {
		_, err := r.api.ScheduleRecurring(ctx, platform.Content{
			Tag:   string(CategoryDevotion),
			Title: "Daily Devotion",
			Body:  "Take a quiet moment with today's devotion.",
		}, platform.Trigger{
			Kind:   platform.TriggerDaily,
			Hour:   hour,
			Minute: minute,
		})
		if err != nil {
			return fmt.Errorf("schedule daily devotion: %w", err)
		}
	}

	if s.SpiritualMilestones {
		_, err := r.api.ScheduleRecurring(ctx, platform.Content{
			Tag:   string(CategoryMilestone),
			Title: "Weekly Encouragement",
			Body:  "Look back on this week's journey and milestones.",
		}, platform.Trigger{
			Kind:    platform.TriggerWeekly,
			Hour:    r.weekly.Hour,
			Minute:  r.weekly.Minute,
			Weekday: r.weekly.Weekday,
		})
		if err != nil {
			return fmt.Errorf("schedule weekly encouragement: %w", err)
		}
	}

	return nil
}
