package kvstore

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"fjacquet/spendlog/internal/fileutils"
)

var keyReplacer = strings.NewReplacer(":", "_", "/", "_", "\\", "_")

// FileStore keeps each key in its own file under Dir, written atomically.
type FileStore struct {
	Dir string
	mu  sync.Mutex
}

// NewFileStore returns a FileStore rooted at dir, creating it if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if dir == "" {
		return nil, errors.New("file store directory cannot be empty")
	}
	if err := fileutils.EnsureDirectoryExists(dir); err != nil {
		return nil, err
	}
	return &FileStore{Dir: dir}, nil
}

// PathFor returns the file that holds key.
func (f *FileStore) PathFor(key string) string {
	return filepath.Join(f.Dir, keyReplacer.Replace(key)+".json")
}

// Get implements KeyValue.
func (f *FileStore) Get(key string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, err := os.ReadFile(f.PathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("error reading %s: %w", key, err)
	}
	return string(data), true, nil
}

// Set implements KeyValue.
func (f *FileStore) Set(key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return fileutils.WriteFileAtomic(f.PathFor(key), []byte(value), fileutils.PermissionDataFile)
}

// SetMany implements KeyValue. Each file is replaced atomically; entries are
// written in key order and the first failure stops the batch.
func (f *FileStore) SetMany(entries map[string]string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	keys := make([]string, 0, len(entries))
	for k := range entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if err := fileutils.WriteFileAtomic(f.PathFor(k), []byte(entries[k]), fileutils.PermissionDataFile); err != nil {
			return fmt.Errorf("error writing %s: %w", k, err)
		}
	}
	return nil
}

// Delete implements KeyValue.
func (f *FileStore) Delete(key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	err := os.Remove(f.PathFor(key))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("error deleting %s: %w", key, err)
	}
	return nil
}

// Close implements KeyValue.
func (f *FileStore) Close() error { return nil }
