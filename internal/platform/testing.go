package platform

import (
	"context"
	"fmt"
	"time"
)

// Fake is an in-memory API implementation for tests. The zero value is not
// useful; construct with NewFake and adjust fields before use.
type Fake struct {
	PlatformID ID
	Scheduling bool
	Push       bool

	// Status is returned by Permission; RequestStatus by RequestPermission.
	Status        Status
	RequestStatus Status
	Token         string

	// Error injection, one per operation.
	PermissionErr error
	RequestErr    error
	TokenErr      error
	SendErr       error
	ScheduleErr   error
	ListErr       error
	CancelErr     error

	// Observed behavior.
	Sent         []Content
	Queue        []Scheduled
	RequestCalls int
	CancelCalls  int

	nextID int
}

// NewFake returns a fake resembling a fully capable platform with granted
// permission.
func NewFake() *Fake {
	granted := Status{Permission: Granted, CanAskAgain: true, Platform: Local}
	return &Fake{
		PlatformID:    Local,
		Scheduling:    true,
		Push:          true,
		Status:        granted,
		RequestStatus: granted,
		Token:         "fake-device-token",
	}
}

func (f *Fake) ID() ID                   { return f.PlatformID }
func (f *Fake) SupportsScheduling() bool { return f.Scheduling }
func (f *Fake) SupportsPush() bool       { return f.Push }

func (f *Fake) Permission(ctx context.Context) (Status, error) {
	if f.PermissionErr != nil {
		return Status{}, f.PermissionErr
	}
	return f.Status, nil
}

func (f *Fake) RequestPermission(ctx context.Context) (Status, error) {
	f.RequestCalls++
	if f.RequestErr != nil {
		return Status{}, f.RequestErr
	}
	f.Status = f.RequestStatus
	return f.RequestStatus, nil
}

func (f *Fake) PushToken(ctx context.Context) (string, error) {
	if f.TokenErr != nil {
		return "", f.TokenErr
	}
	if !f.Push {
		return "", ErrUnsupported
	}
	return f.Token, nil
}

func (f *Fake) Send(ctx context.Context, c Content) error {
	if f.SendErr != nil {
		return f.SendErr
	}
	f.Sent = append(f.Sent, c)
	return nil
}

func (f *Fake) ScheduleRecurring(ctx context.Context, c Content, tr Trigger) (string, error) {
	if f.ScheduleErr != nil {
		return "", f.ScheduleErr
	}
	if !f.Scheduling {
		return "", ErrUnsupported
	}
	f.nextID++
	id := fmt.Sprintf("n-%d", f.nextID)
	f.Queue = append(f.Queue, Scheduled{
		ID:       id,
		Tag:      c.Tag,
		Title:    c.Title,
		Body:     c.Body,
		Trigger:  tr,
		NextFire: tr.Next(time.Now()),
	})
	return id, nil
}

func (f *Fake) Scheduled(ctx context.Context) ([]Scheduled, error) {
	if f.ListErr != nil {
		return nil, f.ListErr
	}
	out := make([]Scheduled, len(f.Queue))
	copy(out, f.Queue)
	return out, nil
}

func (f *Fake) CancelAll(ctx context.Context) error {
	f.CancelCalls++
	if f.CancelErr != nil {
		return f.CancelErr
	}
	f.Queue = nil
	return nil
}

// TaggedEntries returns the queue entries carrying the given tag.
func (f *Fake) TaggedEntries(tag string) []Scheduled {
	var out []Scheduled
	for _, s := range f.Queue {
		if s.Tag == tag {
			out = append(out, s)
		}
	}
	return out
}
