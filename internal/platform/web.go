package platform

import (
	"context"
	"encoding/json"
	"fmt"

	"selah/internal/kvstore"

	"go.uber.org/zap"
)

// WebPlatform implements API for the browser environment: no recurring
// scheduling and no push token. A browser without the notification
// capability at all reports denied, not-askable permission.
type WebPlatform struct {
	kv      *kvstore.Store
	log     *zap.Logger
	capable bool
}

// NewWeb creates the web platform variant. capable reports whether the
// browser exposes a notification capability.
func NewWeb(kv *kvstore.Store, log *zap.Logger, capable bool) *WebPlatform {
	return &WebPlatform{kv: kv, log: log, capable: capable}
}

func (p *WebPlatform) ID() ID                   { return Web }
func (p *WebPlatform) SupportsScheduling() bool { return false }
func (p *WebPlatform) SupportsPush() bool       { return false }

func (p *WebPlatform) Permission(ctx context.Context) (Status, error) {
	if !p.capable {
		return Status{Permission: Denied, CanAskAgain: false, Platform: Web}, nil
	}

	raw, ok := p.kv.Get(permissionKey)
	if !ok {
		return Status{Permission: Undetermined, CanAskAgain: true, Platform: Web}, nil
	}

	var rec permissionRecord
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		return Status{}, fmt.Errorf("decode permission record: %w", err)
	}

	ask := true
	if rec.CanAskAgain != nil {
		ask = *rec.CanAskAgain
	}
	return Status{Permission: rec.Permission, CanAskAgain: ask, Platform: Web}, nil
}

func (p *WebPlatform) RequestPermission(ctx context.Context) (Status, error) {
	if !p.capable {
		return Status{Permission: Denied, CanAskAgain: false, Platform: Web}, nil
	}

	raw, err := json.Marshal(permissionRecord{Permission: Granted})
	if err != nil {
		return Status{}, fmt.Errorf("encode permission record: %w", err)
	}
	if err := p.kv.Set(permissionKey, string(raw)); err != nil {
		return Status{}, fmt.Errorf("persist permission: %w", err)
	}
	return Status{Permission: Granted, CanAskAgain: true, Platform: Web}, nil
}

func (p *WebPlatform) PushToken(ctx context.Context) (string, error) {
	return "", ErrUnsupported
}

// Send raises a browser-level notification when permission is granted and
// degrades to an inert no-op otherwise.
func (p *WebPlatform) Send(ctx context.Context, c Content) error {
	if !p.capable {
		return ErrUnsupported
	}
	st, err := p.Permission(ctx)
	if err != nil {
		return err
	}
	if !st.GrantedNow() {
		p.log.Debug("web notification suppressed without permission", zap.String("tag", c.Tag))
		return nil
	}
	p.log.Info("web notification",
		zap.String("tag", c.Tag),
		zap.String("title", c.Title),
		zap.String("body", c.Body))
	return nil
}

func (p *WebPlatform) ScheduleRecurring(ctx context.Context, c Content, tr Trigger) (string, error) {
	return "", ErrUnsupported
}

func (p *WebPlatform) Scheduled(ctx context.Context) ([]Scheduled, error) {
	return nil, nil
}

func (p *WebPlatform) CancelAll(ctx context.Context) error {
	return nil
}
