package notifications

import (
	"context"
	"testing"

	"selah/internal/platform"

	"go.uber.org/zap"
)

func TestDecideFlow(t *testing.T) {
	tests := []struct {
		name string
		st   platform.Status
		want FlowAction
	}{
		{
			name: "granted needs nothing",
			st:   platform.Status{Permission: platform.Granted, CanAskAgain: true},
			want: FlowNone,
		},
		{
			name: "undetermined educates",
			st:   platform.Status{Permission: platform.Undetermined, CanAskAgain: true},
			want: FlowEducate,
		},
		{
			name: "denied but askable educates again",
			st:   platform.Status{Permission: platform.Denied, CanAskAgain: true},
			want: FlowEducate,
		},
		{
			name: "denied and not askable redirects to settings",
			st:   platform.Status{Permission: platform.Denied, CanAskAgain: false},
			want: FlowOpenSettings,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DecideFlow(tt.st); got != tt.want {
				t.Errorf("DecideFlow(%+v) = %v, want %v", tt.st, got, tt.want)
			}
		})
	}
}

func TestGatewayRequest_NeverPromptsWhenNotAskable(t *testing.T) {
	fake := platform.NewFake()
	fake.Status = platform.Status{Permission: platform.Denied, CanAskAgain: false, Platform: platform.Local}
	g := NewPermissionGateway(fake, zap.NewNop())

	granted, err := g.Request(context.Background())
	if granted {
		t.Error("Request() granted = true, want false")
	}
	if err != ErrPermissionDenied {
		t.Errorf("Request() error = %v, want ErrPermissionDenied", err)
	}
	if fake.RequestCalls != 0 {
		t.Errorf("platform prompt issued %d times, want 0", fake.RequestCalls)
	}
}

func TestGatewayRequest_IdempotentWhenGranted(t *testing.T) {
	fake := platform.NewFake()
	g := NewPermissionGateway(fake, zap.NewNop())

	granted, err := g.Request(context.Background())
	if err != nil {
		t.Fatalf("Request() error = %v", err)
	}
	if !granted {
		t.Error("Request() granted = false, want true")
	}
	if fake.RequestCalls != 0 {
		t.Errorf("platform prompt issued %d times for already-granted state, want 0", fake.RequestCalls)
	}
}

func TestGatewayRequest_PromptsOnce(t *testing.T) {
	fake := platform.NewFake()
	fake.Status = platform.Status{Permission: platform.Undetermined, CanAskAgain: true, Platform: platform.Local}
	g := NewPermissionGateway(fake, zap.NewNop())

	granted, err := g.Request(context.Background())
	if err != nil {
		t.Fatalf("Request() error = %v", err)
	}
	if !granted {
		t.Error("Request() granted = false, want true")
	}
	if fake.RequestCalls != 1 {
		t.Errorf("platform prompt issued %d times, want exactly 1", fake.RequestCalls)
	}
}

func TestGatewayCheck_NormalizesFailure(t *testing.T) {
	fake := platform.NewFake()
	fake.PermissionErr = context.DeadlineExceeded
	g := NewPermissionGateway(fake, zap.NewNop())

	st := g.Check(context.Background())
	if st.Permission != platform.Denied || st.CanAskAgain {
		t.Errorf("Check() on failing platform = %+v, want denied and not askable", st)
	}
	if st.Platform != platform.Local {
		t.Errorf("Check() platform = %q, want local", st.Platform)
	}
}
