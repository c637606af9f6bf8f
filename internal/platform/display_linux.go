//go:build linux

package platform

import (
	"fmt"
	"os/exec"
)

// linuxDisplayer shows notifications through notify-send.
type linuxDisplayer struct{}

func newDisplayer() displayer {
	return &linuxDisplayer{}
}

func (d *linuxDisplayer) Available() bool {
	_, err := exec.LookPath("notify-send")
	return err == nil
}

func (d *linuxDisplayer) Show(title, body string) error {
	cmd := exec.Command("notify-send", "--app-name=selah", title, body)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("notify-send failed: %w", err)
	}
	return nil
}
