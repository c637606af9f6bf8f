// Package platform abstracts the notification capabilities of the host:
// permission checks, one-off display, recurring scheduling, and push tokens.
// Two variants exist — a local variant using the native desktop mechanism,
// and a web variant with no scheduling or push capability. Code above this
// boundary stays platform-agnostic and branches only on the capability
// methods.
package platform

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ID identifies the platform a status or capability was observed on.
type ID string

const (
	Local ID = "local"
	Web   ID = "web"
)

// Permission is the normalized permission vocabulary.
type Permission string

const (
	Granted      Permission = "granted"
	Denied       Permission = "denied"
	Undetermined Permission = "undetermined"
)

// Status is the result of a permission query. It is re-derived on every
// query and never treated as authoritative across restarts.
type Status struct {
	Permission  Permission
	CanAskAgain bool
	Platform    ID
}

// GrantedNow reports whether notifications may be shown right now.
func (s Status) GrantedNow() bool {
	return s.Permission == Granted
}

// Content is the visible part of a notification.
type Content struct {
	Tag   string // category slug, used for gating and the queue projection
	Title string
	Body  string
}

// TriggerKind distinguishes the supported recurring cadences.
type TriggerKind string

const (
	TriggerDaily  TriggerKind = "daily"
	TriggerWeekly TriggerKind = "weekly"
)

// Trigger describes when a recurring notification fires. Weekday is only
// meaningful for weekly triggers.
type Trigger struct {
	Kind    TriggerKind  `json:"kind"`
	Hour    int          `json:"hour"`
	Minute  int          `json:"minute"`
	Weekday time.Weekday `json:"weekday,omitempty"`
}

// CronSpec renders the trigger as a standard 5-field cron expression.
func (t Trigger) CronSpec() string {
	switch t.Kind {
	case TriggerWeekly:
		return fmt.Sprintf("%d %d * * %d", t.Minute, t.Hour, int(t.Weekday))
	default:
		return fmt.Sprintf("%d %d * * *", t.Minute, t.Hour)
	}
}

// Next returns the first fire time strictly after now.
func (t Trigger) Next(now time.Time) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), t.Hour, t.Minute, 0, 0, now.Location())
	switch t.Kind {
	case TriggerWeekly:
		for next.Weekday() != t.Weekday || !next.After(now) {
			next = next.AddDate(0, 0, 1)
		}
	default:
		if !next.After(now) {
			next = next.AddDate(0, 0, 1)
		}
	}
	return next
}

// Scheduled is a read-only projection of one entry in the platform's
// notification queue.
type Scheduled struct {
	ID       string    `json:"id"`
	Tag      string    `json:"tag"`
	Title    string    `json:"title"`
	Body     string    `json:"body"`
	Trigger  Trigger   `json:"trigger"`
	NextFire time.Time `json:"next_fire"`
}

// ErrUnsupported is returned by capability calls the current platform
// cannot perform (scheduling on web, push tokens on web).
var ErrUnsupported = errors.New("not supported on this platform")

// API is the platform notification surface consumed by the notification
// subsystem. Implementations own their permission state and their queue;
// callers never construct Scheduled values directly.
type API interface {
	// ID returns the platform identity.
	ID() ID

	// SupportsScheduling reports whether recurring local scheduling exists.
	SupportsScheduling() bool

	// SupportsPush reports whether a push token can be obtained.
	SupportsPush() bool

	// Permission reads the current permission state without prompting.
	Permission(ctx context.Context) (Status, error)

	// RequestPermission issues one platform prompt and returns the
	// resulting status.
	RequestPermission(ctx context.Context) (Status, error)

	// PushToken returns the device push token. ErrUnsupported when the
	// platform has no push capability.
	PushToken(ctx context.Context) (string, error)

	// Send raises a one-off notification immediately.
	Send(ctx context.Context, c Content) error

	// ScheduleRecurring adds a recurring notification and returns its id.
	ScheduleRecurring(ctx context.Context, c Content, tr Trigger) (string, error)

	// Scheduled lists the platform's current recurring queue.
	Scheduled(ctx context.Context) ([]Scheduled, error)

	// CancelAll removes every recurring notification. Cancelling an empty
	// queue is a no-op.
	CancelAll(ctx context.Context) error
}
