package notifications

import (
	"context"
	"testing"

	"selah/internal/platform"

	"go.uber.org/zap"
)

func newTestDispatcher(t *testing.T) (*Dispatcher, *platform.Fake, *SettingsStore) {
	t.Helper()
	fake := platform.NewFake()
	store := newTestSettingsStore(t)
	return NewDispatcher(fake, store, zap.NewNop()), fake, store
}

func TestSendPrayer_Gating(t *testing.T) {
	tests := []struct {
		name     string
		enabled  bool
		wantSent int
	}{
		{name: "enabled sends exactly one", enabled: true, wantSent: 1},
		{name: "disabled sends none", enabled: false, wantSent: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, fake, store := newTestDispatcher(t)

			s := DefaultSettings()
			s.PrayerUpdates = tt.enabled
			if err := store.Save(context.Background(), s); err != nil {
				t.Fatalf("Save() error = %v", err)
			}

			if err := d.SendPrayer(context.Background(), "Sarah is praying for you"); err != nil {
				t.Fatalf("SendPrayer() error = %v", err)
			}
			if len(fake.Sent) != tt.wantSent {
				t.Errorf("platform sends = %d, want %d", len(fake.Sent), tt.wantSent)
			}
		})
	}
}

func TestSendGates_CheckedAtSendTime(t *testing.T) {
	d, fake, store := newTestDispatcher(t)

	s := DefaultSettings()
	s.CommunityActivity = true
	if err := store.Save(context.Background(), s); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if err := d.SendCommunity(context.Background(), "New group post"); err != nil {
		t.Fatalf("SendCommunity() error = %v", err)
	}

	// Toggle off between two sends; the second must respect it.
	s.CommunityActivity = false
	if err := store.Save(context.Background(), s); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if err := d.SendCommunity(context.Background(), "Another post"); err != nil {
		t.Fatalf("SendCommunity() error = %v", err)
	}

	if len(fake.Sent) != 1 {
		t.Errorf("platform sends = %d, want 1", len(fake.Sent))
	}
}

func TestSendMilestone_Gating(t *testing.T) {
	d, fake, store := newTestDispatcher(t)

	s := DefaultSettings()
	s.SpiritualMilestones = false
	if err := store.Save(context.Background(), s); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	if err := d.SendMilestone(context.Background(), "7-day reading streak"); err != nil {
		t.Fatalf("SendMilestone() error = %v", err)
	}
	if len(fake.Sent) != 0 {
		t.Errorf("platform sends = %d, want 0", len(fake.Sent))
	}
}

func TestSendTest_NeverGated(t *testing.T) {
	d, fake, store := newTestDispatcher(t)

	// Everything off; the test send still goes out.
	s := Settings{Time: "08:00"}
	if err := store.Save(context.Background(), s); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	if err := d.SendTest(context.Background()); err != nil {
		t.Fatalf("SendTest() error = %v", err)
	}
	if len(fake.Sent) != 1 {
		t.Errorf("platform sends = %d, want 1", len(fake.Sent))
	}
}

func TestSendTest_FallsBackWhenUnavailable(t *testing.T) {
	d, fake, _ := newTestDispatcher(t)
	fake.SendErr = platform.ErrUnsupported

	// The degraded path is a logged fallback, not an error.
	if err := d.SendTest(context.Background()); err != nil {
		t.Errorf("SendTest() on unavailable platform error = %v, want nil", err)
	}
}

func TestSend_UnsupportedIsSilent(t *testing.T) {
	d, fake, store := newTestDispatcher(t)
	fake.SendErr = platform.ErrUnsupported

	if err := store.Save(context.Background(), DefaultSettings()); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if err := d.SendPrayer(context.Background(), "x"); err != nil {
		t.Errorf("SendPrayer() on unavailable platform error = %v, want nil", err)
	}
}
