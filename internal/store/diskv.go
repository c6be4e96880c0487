package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/peterbourgon/diskv/v3"
)

// DiskStore keeps each document in its own file under a base directory.
type DiskStore struct {
	d        *diskv.Diskv
	basePath string
}

// NewDisk opens a file-per-key store rooted at basePath.
func NewDisk(basePath string) (*DiskStore, error) {
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	return &DiskStore{
		d: diskv.New(diskv.Options{
			BasePath:     basePath,
			Transform:    func(string) []string { return []string{} },
			CacheSizeMax: 1024 * 1024, // 1MB
		}),
		basePath: basePath,
	}, nil
}

func (s *DiskStore) Read(key string) ([]byte, error) {
	val, err := s.d.Read(key)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read document %q: %w", key, err)
	}
	return val, nil
}

func (s *DiskStore) Write(key string, data []byte) error {
	if err := s.d.Write(key, data); err != nil {
		return fmt.Errorf("write document %q: %w", key, err)
	}
	return nil
}

func (s *DiskStore) Keys() ([]string, error) {
	var keys []string
	for k := range s.d.Keys(nil) {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

// UpdatedAt reports the modification time of the file holding key.
func (s *DiskStore) UpdatedAt(key string) (time.Time, error) {
	fi, err := os.Stat(filepath.Join(s.basePath, key))
	if errors.Is(err, fs.ErrNotExist) {
		return time.Time{}, ErrNotFound
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("stat document %q: %w", key, err)
	}
	return fi.ModTime().UTC(), nil
}

// Close is a no-op; diskv holds no open handles between calls.
func (s *DiskStore) Close() error {
	return nil
}
