package notifications

import (
	"testing"

	"selah/internal/kvstore"

	"go.uber.org/zap"
)

// newTestKV creates a key-value store in a temporary directory.
func newTestKV(t *testing.T) *kvstore.Store {
	t.Helper()
	kv, err := kvstore.Open(t.TempDir())
	if err != nil {
		t.Fatalf("failed to open test store: %v", err)
	}
	return kv
}

// newTestSettingsStore creates a settings store over a temporary kv store.
func newTestSettingsStore(t *testing.T) *SettingsStore {
	t.Helper()
	return NewSettingsStore(newTestKV(t), zap.NewNop())
}
