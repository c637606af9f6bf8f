// Package ui provides the terminal settings screen for selah.
// This file defines message types for async operations using the Bubble
// Tea command pattern; orchestrator calls run in commands to keep the
// event loop non-blocking.
package ui

import "selah/internal/notifications"

// snapshotMsg is sent whenever the orchestrator snapshot was refreshed.
type snapshotMsg struct {
	snap notifications.Snapshot
}

// settingsSavedMsg is sent when an UpdateSettings call completes.
type settingsSavedMsg struct {
	snap notifications.Snapshot
	err  error
}

// permissionMsg is sent when a RequestPermissions call completes.
type permissionMsg struct {
	granted bool
	snap    notifications.Snapshot
	err     error
}

// testSentMsg is sent when the test notification was dispatched.
type testSentMsg struct {
	err error
}
