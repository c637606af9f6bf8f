package platform

// displayer is the native display mechanism behind the local platform.
// Implementations are selected per OS at build time.
type displayer interface {
	// Show raises a notification with the given title and body.
	Show(title, body string) error

	// Available reports whether the mechanism exists on this host.
	Available() bool
}
