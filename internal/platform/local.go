package platform

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"selah/internal/kvstore"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Keys used in the key-value store for platform-owned state.
const (
	permissionKey = "platform_permission"
	queueKey      = "platform_queue"
	tokenKey      = "device_token"
)

// permissionRecord is the persisted shape of the local permission decision.
// CanAskAgain is a pointer so an absent flag can be told apart from false;
// when the record omits it we default to askable.
type permissionRecord struct {
	Permission  Permission `json:"permission"`
	CanAskAgain *bool      `json:"can_ask_again,omitempty"`
}

// LocalPlatform implements API on top of the native desktop notification
// mechanism. Permission state, the queue projection, and the device token
// are persisted in the key-value store; recurring triggers run on a cron
// runner that fires the native display.
type LocalPlatform struct {
	kv      *kvstore.Store
	log     *zap.Logger
	display displayer
	cron    *cron.Cron

	mu      sync.Mutex
	entries map[string]cron.EntryID
	queue   []Scheduled
}

// NewLocal creates the local platform variant. The previously persisted
// queue projection is loaded for listing, but trigger jobs are only
// recreated by the next reconcile.
func NewLocal(kv *kvstore.Store, log *zap.Logger) *LocalPlatform {
	p := &LocalPlatform{
		kv:      kv,
		log:     log,
		display: newDisplayer(),
		cron:    cron.New(),
		entries: make(map[string]cron.EntryID),
	}
	if raw, ok := kv.Get(queueKey); ok {
		if err := json.Unmarshal([]byte(raw), &p.queue); err != nil {
			log.Warn("discarding unreadable queue projection", zap.Error(err))
			p.queue = nil
		}
	}
	return p
}

func (p *LocalPlatform) ID() ID                   { return Local }
func (p *LocalPlatform) SupportsScheduling() bool { return true }
func (p *LocalPlatform) SupportsPush() bool       { return true }

// Permission reads the persisted permission decision. A host without a
// native display mechanism reports denied and not askable.
func (p *LocalPlatform) Permission(ctx context.Context) (Status, error) {
	if !p.display.Available() {
		return Status{Permission: Denied, CanAskAgain: false, Platform: Local}, nil
	}

	raw, ok := p.kv.Get(permissionKey)
	if !ok {
		return Status{Permission: Undetermined, CanAskAgain: true, Platform: Local}, nil
	}

	var rec permissionRecord
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		return Status{}, fmt.Errorf("decode permission record: %w", err)
	}

	ask := true
	if rec.CanAskAgain != nil {
		ask = *rec.CanAskAgain
	}
	return Status{Permission: rec.Permission, CanAskAgain: ask, Platform: Local}, nil
}

// RequestPermission records a grant. The native mechanism needs no runtime
// prompt, so a host with a display always grants; one without cannot be
// prompted at all.
func (p *LocalPlatform) RequestPermission(ctx context.Context) (Status, error) {
	if !p.display.Available() {
		return Status{Permission: Denied, CanAskAgain: false, Platform: Local}, nil
	}

	rec := permissionRecord{Permission: Granted}
	raw, err := json.Marshal(rec)
	if err != nil {
		return Status{}, fmt.Errorf("encode permission record: %w", err)
	}
	if err := p.kv.Set(permissionKey, string(raw)); err != nil {
		return Status{}, fmt.Errorf("persist permission: %w", err)
	}
	return Status{Permission: Granted, CanAskAgain: true, Platform: Local}, nil
}

// PushToken returns the stable device token, minting one on first use.
func (p *LocalPlatform) PushToken(ctx context.Context) (string, error) {
	if tok, ok := p.kv.Get(tokenKey); ok {
		return tok, nil
	}
	tok := uuid.NewString()
	if err := p.kv.Set(tokenKey, tok); err != nil {
		return "", fmt.Errorf("persist device token: %w", err)
	}
	return tok, nil
}

// Send raises a one-off native notification.
func (p *LocalPlatform) Send(ctx context.Context, c Content) error {
	if !p.display.Available() {
		return ErrUnsupported
	}
	if err := p.display.Show(c.Title, c.Body); err != nil {
		return fmt.Errorf("show notification: %w", err)
	}
	return nil
}

// ScheduleRecurring registers a cron job for the trigger and records it in
// the queue projection.
func (p *LocalPlatform) ScheduleRecurring(ctx context.Context, c Content, tr Trigger) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	id := uuid.NewString()
	entryID, err := p.cron.AddFunc(tr.CronSpec(), func() {
		if err := p.display.Show(c.Title, c.Body); err != nil {
			p.log.Warn("recurring notification failed",
				zap.String("id", id),
				zap.String("tag", c.Tag),
				zap.Error(err))
		}
	})
	if err != nil {
		return "", fmt.Errorf("register trigger %q: %w", tr.CronSpec(), err)
	}

	p.entries[id] = entryID
	p.queue = append(p.queue, Scheduled{
		ID:       id,
		Tag:      c.Tag,
		Title:    c.Title,
		Body:     c.Body,
		Trigger:  tr,
		NextFire: tr.Next(time.Now()),
	})

	if err := p.persistQueue(); err != nil {
		return "", err
	}
	return id, nil
}

// Scheduled returns a copy of the queue projection.
func (p *LocalPlatform) Scheduled(ctx context.Context) ([]Scheduled, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]Scheduled, len(p.queue))
	copy(out, p.queue)
	return out, nil
}

// CancelAll removes every registered trigger and clears the projection.
func (p *LocalPlatform) CancelAll(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	for _, entryID := range p.entries {
		p.cron.Remove(entryID)
	}
	p.entries = make(map[string]cron.EntryID)
	p.queue = nil
	return p.persistQueue()
}

// Run starts the trigger runner and blocks until ctx is canceled. Without a
// running process the queue projection persists but nothing fires; daemon
// mode exists for exactly this.
func (p *LocalPlatform) Run(ctx context.Context) {
	p.cron.Start()
	<-ctx.Done()
	stopCtx := p.cron.Stop()
	<-stopCtx.Done()
}

// persistQueue writes the projection. Callers must hold p.mu.
func (p *LocalPlatform) persistQueue() error {
	raw, err := json.Marshal(p.queue)
	if err != nil {
		return fmt.Errorf("encode queue: %w", err)
	}
	if err := p.kv.Set(queueKey, string(raw)); err != nil {
		return fmt.Errorf("persist queue: %w", err)
	}
	return nil
}
