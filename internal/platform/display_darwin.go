//go:build darwin

package platform

import (
	"fmt"
	"os/exec"
	"strings"
)

// darwinDisplayer shows notifications through osascript.
type darwinDisplayer struct{}

func newDisplayer() displayer {
	return &darwinDisplayer{}
}

func (d *darwinDisplayer) Available() bool {
	_, err := exec.LookPath("osascript")
	return err == nil
}

func (d *darwinDisplayer) Show(title, body string) error {
	script := fmt.Sprintf(`display notification %q with title %q`,
		escapeAppleScript(body), escapeAppleScript(title))

	cmd := exec.Command("osascript", "-e", script)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("osascript failed: %w", err)
	}
	return nil
}

// escapeAppleScript escapes special characters for AppleScript strings.
func escapeAppleScript(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "\"", "\\\"")
	return s
}
