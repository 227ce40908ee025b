// Package assets abstracts the remote image store so entity lifecycles can be
// tested without a network dependency.
package assets

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Asset is a stored image: a durable URL for clients and the opaque id the
// store needs to release it later.
type Asset struct {
	URL string
	ID  string
}

type Store interface {
	Upload(filename string, r io.Reader) (Asset, error)
	Release(assetID string) error
}

// DiskStore keeps assets on the local filesystem and serves them under
// BaseURL. The asset id doubles as the stored file name.
type DiskStore struct {
	Dir     string
	BaseURL string
}

func NewDiskStore(dir, baseURL string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("assets: create dir: %w", err)
	}
	return &DiskStore{Dir: dir, BaseURL: strings.TrimRight(baseURL, "/")}, nil
}

func (s *DiskStore) Upload(filename string, r io.Reader) (Asset, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".png", ".jpg", ".jpeg", ".gif", ".webp":
	default:
		return Asset{}, fmt.Errorf("assets: unsupported file type %q", ext)
	}
	id := uuid.NewString() + ext

	f, err := os.Create(filepath.Join(s.Dir, id))
	if err != nil {
		return Asset{}, fmt.Errorf("assets: create: %w", err)
	}
	defer f.Close()
	if _, err := io.Copy(f, r); err != nil {
		return Asset{}, fmt.Errorf("assets: write: %w", err)
	}
	return Asset{URL: s.BaseURL + "/" + id, ID: id}, nil
}

func (s *DiskStore) Release(assetID string) error {
	// The id is store-generated, but guard against traversal anyway.
	clean := filepath.Clean(assetID)
	if clean != assetID || strings.Contains(clean, "..") || strings.ContainsRune(clean, os.PathSeparator) {
		return fmt.Errorf("assets: malformed asset id")
	}
	if err := os.Remove(filepath.Join(s.Dir, clean)); err != nil {
		return fmt.Errorf("assets: release %s: %w", assetID, err)
	}
	return nil
}
