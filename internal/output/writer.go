package output

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spiffcs/linear-stats/internal/constants"
	"github.com/spiffcs/linear-stats/internal/model"
)

// EnsureDir creates the parent directory of path. It succeeds when the
// directory already exists.
func EnsureDir(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, constants.DirPermissions); err != nil {
		return fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}
	return nil
}

// WriteFile persists a run summary as pretty-printed JSON at path, creating
// parent directories as needed. The file is replaced atomically.
func WriteFile(path string, summary model.RunSummary) error {
	if err := EnsureDir(path); err != nil {
		return err
	}

	tmp := path + ".tmp"
	f, err := os.OpenFile(tmp, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, constants.OutputFilePermissions)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", tmp, err)
	}

	w := bufio.NewWriter(f)
	if err := (&JSONFormatter{Pretty: true}).Format(summary, w); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to encode summary: %w", err)
	}
	if err := w.Flush(); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to write %s: %w", tmp, err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to write %s: %w", tmp, err)
	}

	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to move summary into place: %w", err)
	}
	return nil
}
