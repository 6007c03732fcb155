// Package fileutils provides the file operations shared by the file-backed
// store and snapshot import/export.
package fileutils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Permissions used for ledger data.
const (
	PermissionDataFile  = 0600
	PermissionDirectory = 0750
)

// FileExists checks if a file exists and is not a directory
func FileExists(filePath string) bool {
	info, err := os.Stat(filePath)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// DirectoryExists checks if a directory exists
func DirectoryExists(dirPath string) bool {
	info, err := os.Stat(dirPath)
	if err != nil {
		return false
	}
	return info.IsDir()
}

// EnsureDirectoryExists creates a directory if it doesn't exist
func EnsureDirectoryExists(dirPath string) error {
	if dirPath == "" || dirPath == "." {
		return nil
	}
	if !DirectoryExists(dirPath) {
		if err := os.MkdirAll(dirPath, PermissionDirectory); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}
	return nil
}

// WriteFileAtomic writes data next to filePath and renames it into place, so
// readers see either the old or the new content, never a partial write.
func WriteFileAtomic(filePath string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(filePath)
	if err := EnsureDirectoryExists(dir); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(filePath)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) }

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		cleanup()
		return fmt.Errorf("failed to write file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return fmt.Errorf("failed to close file: %w", err)
	}
	if err := os.Chmod(tmpName, perm); err != nil {
		cleanup()
		return fmt.Errorf("failed to set permissions: %w", err)
	}
	if err := os.Rename(tmpName, filePath); err != nil {
		cleanup()
		return fmt.Errorf("failed to replace file: %w", err)
	}
	return nil
}

// HasExtension reports whether filePath ends in ext, ignoring case.
// ext includes the dot, e.g. ".json".
func HasExtension(filePath, ext string) bool {
	return strings.EqualFold(filepath.Ext(filePath), ext)
}
