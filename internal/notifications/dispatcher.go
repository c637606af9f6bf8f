package notifications

import (
	"context"
	"errors"
	"fmt"

	"selah/internal/platform"

	"go.uber.org/zap"
)

// Dispatcher sends one-off notifications for discrete application events.
// Category gates are checked against a freshly loaded settings record at
// send time, so a toggle flipped between two sends is respected.
type Dispatcher struct {
	api      platform.API
	settings *SettingsStore
	log      *zap.Logger
}

// NewDispatcher creates a dispatcher over the platform API and settings
// store.
func NewDispatcher(api platform.API, settings *SettingsStore, log *zap.Logger) *Dispatcher {
	return &Dispatcher{api: api, settings: settings, log: log}
}

// SendPrayer notifies about prayer activity. Silently a no-op when prayer
// updates are switched off.
func (d *Dispatcher) SendPrayer(ctx context.Context, title string) error {
	return d.send(ctx, CategoryPrayer, platform.Content{
		Tag:   string(CategoryPrayer),
		Title: "Prayer Update",
		Body:  title,
	})
}

// SendMilestone notifies about a reached reading or streak milestone.
func (d *Dispatcher) SendMilestone(ctx context.Context, text string) error {
	return d.send(ctx, CategoryMilestone, platform.Content{
		Tag:   string(CategoryMilestone),
		Title: "Milestone Reached",
		Body:  text,
	})
}

// SendCommunity notifies about community activity.
func (d *Dispatcher) SendCommunity(ctx context.Context, text string) error {
	return d.send(ctx, CategoryCommunity, platform.Content{
		Tag:   string(CategoryCommunity),
		Title: "Community Activity",
		Body:  text,
	})
}

// SendTest raises an ungated test notification. When the platform cannot
// display anything at all this degrades to a logged fallback rather than an
// error, so the action stays usable as a diagnostic.
func (d *Dispatcher) SendTest(ctx context.Context) error {
	c := platform.Content{
		Tag:   "test",
		Title: "Test Notification",
		Body:  "Notifications are working.",
	}
	if err := d.api.Send(ctx, c); err != nil {
		if errors.Is(err, platform.ErrUnsupported) {
			d.log.Warn("notifications unavailable, test fell back to log output",
				zap.String("title", c.Title),
				zap.String("body", c.Body))
			return nil
		}
		return fmt.Errorf("send test notification: %w", err)
	}
	return nil
}

// send applies the category gate and raises the notification.
func (d *Dispatcher) send(ctx context.Context, cat Category, c platform.Content) error {
	s := d.settings.Load()
	if !s.Enabled(cat) {
		d.log.Debug("notification gated off", zap.String("category", string(cat)))
		return nil
	}
	if err := d.api.Send(ctx, c); err != nil {
		if errors.Is(err, platform.ErrUnsupported) {
			d.log.Debug("platform cannot display notifications",
				zap.String("category", string(cat)))
			return nil
		}
		return fmt.Errorf("send %s notification: %w", cat, err)
	}
	return nil
}
