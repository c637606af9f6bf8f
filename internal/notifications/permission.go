package notifications

import (
	"context"
	"fmt"

	"selah/internal/platform"

	"go.uber.org/zap"
)

// PermissionGateway normalizes the platform permission surface. Check never
// fails; Request refuses to prompt when the platform has said it will not
// show a prompt again.
type PermissionGateway struct {
	api platform.API
	log *zap.Logger
}

// NewPermissionGateway creates a gateway over the platform API.
func NewPermissionGateway(api platform.API, log *zap.Logger) *PermissionGateway {
	return &PermissionGateway{api: api, log: log}
}

// Check reads the current permission without prompting. Any query failure
// is logged and reported as denied, not askable.
func (g *PermissionGateway) Check(ctx context.Context) platform.Status {
	st, err := g.api.Permission(ctx)
	if err != nil {
		g.log.Warn("permission query failed", zap.Error(err))
		return platform.Status{
			Permission:  platform.Denied,
			CanAskAgain: false,
			Platform:    g.api.ID(),
		}
	}
	return st
}

// Request issues at most one platform prompt and reports whether permission
// ended up granted. Already-granted state short-circuits without prompting.
// When the platform will not show a prompt again, Request returns
// ErrPermissionDenied without prompting; the caller must route the user to
// system settings instead.
func (g *PermissionGateway) Request(ctx context.Context) (bool, error) {
	st := g.Check(ctx)
	if st.GrantedNow() {
		return true, nil
	}
	if st.Permission == platform.Denied && !st.CanAskAgain {
		return false, ErrPermissionDenied
	}

	st, err := g.api.RequestPermission(ctx)
	if err != nil {
		return false, fmt.Errorf("permission prompt: %w", err)
	}
	return st.GrantedNow(), nil
}
