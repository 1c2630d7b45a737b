package cmd

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	saveFileMode    = 0o644
	tempFilePattern = ".plza-*.tmp"
)

// writeSaveFile replaces path with data through a temp file and rename, so
// --out may name the input save.
func writeSaveFile(path string, data []byte) error {
	tempFile, err := os.CreateTemp(filepath.Dir(path), tempFilePattern)
	if err != nil {
		return fmt.Errorf("create temp save file: %w", err)
	}

	tempName := tempFile.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tempName)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("write temp save file: %w", err)
	}

	if err := tempFile.Chmod(saveFileMode); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("chmod temp save file: %w", err)
	}

	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp save file: %w", err)
	}

	if err := os.Rename(tempName, path); err != nil {
		return fmt.Errorf("replace save file: %w", err)
	}

	cleanup = false
	return nil
}
