// Package tempfile manages the ephemeral script files handed to the
// automation host. Each file belongs to exactly one execution and is removed
// when that execution finishes, whatever the outcome.
package tempfile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/xdg/appbridge/internal/clog"
)

// Default naming for script files.
const (
	DefaultPrefix = "appbridge-"
	DefaultExt    = ".jsx"
)

// Manager writes script bodies to uniquely named files in a scratch directory.
// The zero value writes to os.TempDir() with the default prefix and extension.
// A Manager is safe for concurrent use; it holds no mutable state.
type Manager struct {
	Dir    string // scratch directory; os.TempDir() when empty
	Prefix string // file name prefix; DefaultPrefix when empty
	Ext    string // file extension including the dot; DefaultExt when empty
}

// Acquire writes body verbatim to a new file and returns its path. The name
// carries a random UUID and the file is created with O_EXCL, so concurrent
// acquisitions never share a path.
func (m *Manager) Acquire(body string) (string, error) {
	path := filepath.Join(m.dir(), m.prefix()+uuid.NewString()+m.ext())

	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o600)
	if err != nil {
		return "", fmt.Errorf("create script file: %w", err)
	}
	if _, err := f.WriteString(body); err != nil {
		_ = f.Close()
		m.Release(path)
		return "", fmt.Errorf("write script file: %w", err)
	}
	if err := f.Close(); err != nil {
		m.Release(path)
		return "", fmt.Errorf("close script file: %w", err)
	}

	clog.Debug("tempfile: wrote %d bytes to %s", len(body), path)
	return path, nil
}

// Release removes the file at path. It never fails: a file that is already
// gone is ignored and any other removal error is logged and dropped.
// Calling Release more than once for the same path is safe.
func (m *Manager) Release(path string) {
	if path == "" {
		return
	}
	err := os.Remove(path)
	if err == nil || errors.Is(err, os.ErrNotExist) {
		return
	}
	clog.Debug("tempfile: failed to remove %s: %v", path, err)
}

func (m *Manager) dir() string {
	if m.Dir != "" {
		return m.Dir
	}
	return os.TempDir()
}

func (m *Manager) prefix() string {
	if m.Prefix != "" {
		return m.Prefix
	}
	return DefaultPrefix
}

func (m *Manager) ext() string {
	if m.Ext != "" {
		return m.Ext
	}
	return DefaultExt
}
