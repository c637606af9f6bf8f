package notifications

import (
	"context"
	"encoding/json"
	"fmt"

	"selah/internal/kvstore"

	"go.uber.org/zap"
)

// settingsKey is the key-value store slot for the settings record.
const settingsKey = "notification_settings"

// SettingsStore persists the notification preference record. It is the only
// writer of that record.
type SettingsStore struct {
	kv     *kvstore.Store
	log    *zap.Logger
	onSave func(ctx context.Context, s Settings) error
}

// NewSettingsStore creates a settings store over the key-value store.
func NewSettingsStore(kv *kvstore.Store, log *zap.Logger) *SettingsStore {
	return &SettingsStore{kv: kv, log: log}
}

// SetOnSave registers a hook invoked after every successful write. The
// orchestrator uses it to run schedule reconciliation, so the persisted
// record and the platform queue are never out of step for longer than one
// save call.
func (s *SettingsStore) SetOnSave(fn func(ctx context.Context, st Settings) error) {
	s.onSave = fn
}

// Load returns the persisted settings, or the default record when none
// exist yet. A read or decode failure is treated as "no settings yet",
// never as fatal.
func (s *SettingsStore) Load() Settings {
	raw, ok := s.kv.Get(settingsKey)
	if !ok {
		return DefaultSettings()
	}

	var st Settings
	if err := json.Unmarshal([]byte(raw), &st); err != nil {
		s.log.Warn("unreadable settings record, using defaults", zap.Error(err))
		return DefaultSettings()
	}
	if err := st.Validate(); err != nil {
		s.log.Warn("invalid persisted settings, using defaults", zap.Error(err))
		return DefaultSettings()
	}
	return st
}

// Exists reports whether a settings record has been persisted.
func (s *SettingsStore) Exists() bool {
	_, ok := s.kv.Get(settingsKey)
	return ok
}

// Save validates and writes the full record, then runs the on-save hook.
// A validation failure leaves the persisted record untouched.
func (s *SettingsStore) Save(ctx context.Context, st Settings) error {
	if err := st.Validate(); err != nil {
		return err
	}

	raw, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	if err := s.kv.Set(settingsKey, string(raw)); err != nil {
		return fmt.Errorf("persist settings: %w", err)
	}

	if s.onSave != nil {
		if err := s.onSave(ctx, st); err != nil {
			return fmt.Errorf("post-save reconcile: %w", err)
		}
	}
	return nil
}
