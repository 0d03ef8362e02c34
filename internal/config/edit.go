package config

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/xdg/appbridge/internal/clog"
)

// Edit opens the configuration file in the user's editor, creating the
// default file first if needed. The editor is $EDITOR, falling back to vi.
// A file that fails validation after editing is reported as a warning, not
// an error, so the user can fix it later.
func Edit() error {
	if err := WriteDefault(); err != nil {
		return fmt.Errorf("create default config: %w", err)
	}

	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = "vi"
	}

	cmd := exec.Command(editor, Path()) //nolint:gosec // G204: editor chosen by the user
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("editor %q failed: %w", editor, err)
	}

	if _, err := Load(); err != nil {
		clog.Warn("config has errors after edit: %v", err)
	}
	return nil
}
