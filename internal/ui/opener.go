package ui

import (
	"fmt"
	"os/exec"
	"runtime"
)

// OpenWithSystem opens a file path or URL with the platform default viewer.
// It returns once the viewer has been launched.
func OpenWithSystem(ref string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", ref)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", ref)
	default:
		cmd = exec.Command("xdg-open", ref)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to open %s: %w", ref, err)
	}
	go func() { _ = cmd.Wait() }()
	return nil
}
