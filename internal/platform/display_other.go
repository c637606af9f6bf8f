//go:build !darwin && !linux

package platform

// stubDisplayer is the fallback for hosts without a native mechanism. The
// local platform reports denied, not-askable permission through it.
type stubDisplayer struct{}

func newDisplayer() displayer {
	return &stubDisplayer{}
}

func (d *stubDisplayer) Show(title, body string) error {
	return nil
}

func (d *stubDisplayer) Available() bool {
	return false
}
