// Package static embeds static files into the binary and copies them to the
// filesystem
package static

import (
	"embed"
	"errors"
	"io/fs"
	"os"
	"path"
	"path/filepath"

	"github.com/breezeflow/breeze/internal/osutil"
)

const (
	filesDir = "files"

	// IconFile is the notification icon.
	IconFile = "breeze.svg"
)

//go:embed files/*
var embeddedFiles embed.FS

// Install copies the embedded files to dir. Existing files are left
// untouched. It returns the path of the notification icon.
func Install(dir string) (string, error) {
	err := fs.WalkDir(
		embeddedFiles,
		filesDir,
		func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}

			if d.IsDir() {
				return nil
			}

			destPath := filepath.Join(dir, path.Base(p))

			// Only write if file does not already exist
			_, err = os.Stat(destPath)
			if err == nil || !errors.Is(err, fs.ErrNotExist) {
				return err
			}

			b, err := embeddedFiles.ReadFile(p)
			if err != nil {
				return err
			}

			if err := os.MkdirAll(dir, osutil.DirPermission); err != nil {
				return err
			}

			return os.WriteFile(destPath, b, 0o644)
		},
	)
	if err != nil {
		return "", err
	}

	return filepath.Join(dir, IconFile), nil
}
