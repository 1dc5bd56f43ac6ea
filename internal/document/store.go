// Package document stores uploaded bytes on disk and returns a reference.
// Storage mechanics beyond that are out of scope for the identity core.
package document

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// BlobStore writes uploaded bytes under a base directory and returns a
// URL-style reference ("/uploads/<file>"). File names are derived from the
// owning slug plus a timestamp, mirroring how logos and documents were
// historically stored.
type BlobStore struct {
	baseDir string
}

// NewBlobStore returns a BlobStore rooted at baseDir, creating it if needed.
func NewBlobStore(baseDir string) (*BlobStore, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &BlobStore{baseDir: baseDir}, nil
}

// Save writes data to disk and returns the public reference path. prefix is
// typically the company slug; originalName supplies the extension.
func (s *BlobStore) Save(prefix, originalName string, data []byte) (string, error) {
	ext := "bin"
	if i := strings.LastIndex(originalName, "."); i >= 0 && i < len(originalName)-1 {
		ext = originalName[i+1:]
	}
	fileName := fmt.Sprintf("%s-%d.%s", prefix, time.Now().UnixNano(), ext)
	if err := os.WriteFile(filepath.Join(s.baseDir, fileName), data, 0o644); err != nil {
		return "", fmt.Errorf("write blob: %w", err)
	}
	return "/uploads/" + fileName, nil
}
