// Package storage keeps uploaded project documents on the local disk.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/SscSPs/propease_crm/internal/apperrors"
	"github.com/SscSPs/propease_crm/internal/core/ports/outbound"
)

// LocalStorage stores each document as a file under a root directory.
// Keys are slash separated relative paths.
type LocalStorage struct {
	root string
}

var _ outbound.DocumentStorage = (*LocalStorage)(nil)

// NewLocalStorage creates root if it does not exist.
func NewLocalStorage(root string) (*LocalStorage, error) {
	if root == "" {
		return nil, errors.New("upload directory is required")
	}
	if err := os.MkdirAll(root, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	return &LocalStorage{root: abs}, nil
}

// path resolves key inside root, rejecting keys that would escape it.
func (s *LocalStorage) path(key string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(key))
	if key == "" || filepath.IsAbs(clean) || clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return "", apperrors.Validationf("invalid storage key %q", key)
	}
	return filepath.Join(s.root, clean), nil
}

func (s *LocalStorage) Save(ctx context.Context, key string, r io.Reader) (int64, error) {
	p, err := s.path(key)
	if err != nil {
		return 0, err
	}
	if err := os.MkdirAll(filepath.Dir(p), 0o750); err != nil {
		return 0, fmt.Errorf("failed to create document directory: %w", err)
	}

	// Write to a temp file first so a failed upload never leaves a partial document.
	tmp, err := os.CreateTemp(filepath.Dir(p), ".upload-*")
	if err != nil {
		return 0, fmt.Errorf("failed to create temp file: %w", err)
	}
	n, copyErr := io.Copy(tmp, r)
	closeErr := tmp.Close()
	if copyErr != nil || closeErr != nil {
		_ = os.Remove(tmp.Name())
		if copyErr != nil {
			return 0, fmt.Errorf("failed to write document: %w", copyErr)
		}
		return 0, fmt.Errorf("failed to write document: %w", closeErr)
	}
	if err := os.Rename(tmp.Name(), p); err != nil {
		_ = os.Remove(tmp.Name())
		return 0, fmt.Errorf("failed to store document: %w", err)
	}
	return n, nil
}

func (s *LocalStorage) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	p, err := s.path(key)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(p)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, apperrors.NotFoundf("document content not found")
	}
	return f, err
}

func (s *LocalStorage) Delete(ctx context.Context, key string) error {
	p, err := s.path(key)
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}
