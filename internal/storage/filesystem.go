package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// FileStore writes objects under a local directory. It stands in for Spaces
// during development.
type FileStore struct {
	Dir     string
	BaseURL string
}

func NewFileStore(dir, baseURL string) *FileStore {
	return &FileStore{Dir: dir, BaseURL: strings.TrimRight(baseURL, "/")}
}

func (f *FileStore) Put(_ context.Context, key string, _ string, body io.Reader) (string, error) {
	path := filepath.Join(f.Dir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("filestore: mkdir: %w", err)
	}
	out, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("filestore: create %s: %w", key, err)
	}
	defer out.Close()
	if _, err := io.Copy(out, body); err != nil {
		return "", fmt.Errorf("filestore: write %s: %w", key, err)
	}
	return f.BaseURL + "/" + key, nil
}
