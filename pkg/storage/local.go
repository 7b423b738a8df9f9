package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// LocalStorage writes uploads below a base directory. All keys are confined
// to that directory.
type LocalStorage struct {
	baseDir string
	baseURL string
}

// NewLocalStorage resolves baseDir, creates it when missing and returns a
// storage whose URLs are baseURL + key.
func NewLocalStorage(baseDir, baseURL string) (*LocalStorage, error) {
	if baseDir == "" {
		return nil, ErrInvalidConfig
	}

	absBaseDir, err := filepath.Abs(baseDir)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to resolve base directory: %v", ErrInvalidConfig, err)
	}
	if err := os.MkdirAll(absBaseDir, 0755); err != nil {
		return nil, fmt.Errorf("%w: failed to create base directory: %v", ErrInvalidConfig, err)
	}

	return &LocalStorage{baseDir: absBaseDir, baseURL: baseURL}, nil
}

// BaseDir is the absolute directory files are written to
func (s *LocalStorage) BaseDir() string {
	return s.baseDir
}

// Save copies body to baseDir/key. Partial files are removed on error.
func (s *LocalStorage) Save(ctx context.Context, key string, contentType string, body io.Reader) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	default:
	}

	key, err := cleanKey(key)
	if err != nil {
		return "", err
	}

	absPath := filepath.Join(s.baseDir, filepath.FromSlash(key))
	if !strings.HasPrefix(absPath, s.baseDir+string(os.PathSeparator)) {
		return "", ErrInvalidKey
	}

	if err := os.MkdirAll(filepath.Dir(absPath), 0755); err != nil {
		return "", fmt.Errorf("%w: %v", ErrFailedToWriteFile, err)
	}

	dst, err := os.OpenFile(absPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrFailedToWriteFile, err)
	}

	if _, err := io.Copy(dst, &contextReader{ctx: ctx, r: body}); err != nil {
		_ = dst.Close()
		_ = os.Remove(absPath)
		return "", fmt.Errorf("%w: %v", ErrFailedToWriteFile, err)
	}
	if err := dst.Close(); err != nil {
		_ = os.Remove(absPath)
		return "", fmt.Errorf("%w: %v", ErrFailedToWriteFile, err)
	}

	return joinURL(s.baseURL, key), nil
}

// contextReader stops a copy once the context is done
type contextReader struct {
	ctx context.Context
	r   io.Reader
}

func (c *contextReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}
