package file

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// LocalStorage implements Storage on the local filesystem.
// All operations are confined to baseDir to prevent path traversal.
type LocalStorage struct {
	baseDir      string // absolute
	baseURL      string // URL prefix for serving files, e.g. "/files/"
	writeTimeout time.Duration
}

// LocalOption defines a function that configures LocalStorage.
type LocalOption func(*LocalStorage)

// WithLocalWriteTimeout bounds each Put. Without it the caller's deadline applies.
func WithLocalWriteTimeout(timeout time.Duration) LocalOption {
	return func(s *LocalStorage) {
		s.writeTimeout = timeout
	}
}

// NewLocalStorage creates a local filesystem storage. baseDir is resolved to
// an absolute path and created if it doesn't exist.
func NewLocalStorage(baseDir, baseURL string, opts ...LocalOption) (*LocalStorage, error) {
	if baseDir == "" {
		return nil, ErrInvalidConfig
	}

	absBaseDir, err := filepath.Abs(baseDir)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to resolve base directory: %v", ErrFailedToGetAbsolutePath, err)
	}
	if err := os.MkdirAll(absBaseDir, 0755); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToCreateDirectory, err)
	}

	if baseURL != "" && !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}

	s := &LocalStorage{
		baseDir: absBaseDir,
		baseURL: baseURL,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Put writes body to a temporary file next to the target and renames it into
// place, so readers never observe a partial artifact.
func (s *LocalStorage) Put(ctx context.Context, key, contentType string, body []byte) (*Object, error) {
	if s.writeTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.writeTimeout)
		defer cancel()
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	absPath, err := s.resolvePath(key)
	if err != nil {
		return nil, err
	}
	if absPath == s.baseDir {
		return nil, fmt.Errorf("%w: %s", ErrIsDirectory, key)
	}
	if err := os.MkdirAll(filepath.Dir(absPath), 0755); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToCreateDirectory, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(absPath), "."+filepath.Base(absPath)+".*")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToWriteFile, err)
	}
	cleanup := func() {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
	}
	if _, err := tmp.Write(body); err != nil {
		cleanup()
		return nil, fmt.Errorf("%w: %v", ErrFailedToWriteFile, err)
	}
	if err := tmp.Chmod(0644); err != nil {
		cleanup()
		return nil, fmt.Errorf("%w: %v", ErrFailedToWriteFile, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return nil, fmt.Errorf("%w: %v", ErrFailedToWriteFile, err)
	}
	if err := ctx.Err(); err != nil {
		_ = os.Remove(tmp.Name())
		return nil, err
	}
	if err := os.Rename(tmp.Name(), absPath); err != nil {
		_ = os.Remove(tmp.Name())
		return nil, fmt.Errorf("%w: %v", ErrFailedToWriteFile, err)
	}

	if contentType == "" {
		contentType = DetectMIMEType(body)
	}
	relPath, err := filepath.Rel(s.baseDir, absPath)
	if err != nil {
		relPath = key
	}
	return &Object{
		Key:         filepath.ToSlash(relPath),
		Size:        int64(len(body)),
		ContentType: contentType,
		Location:    absPath,
	}, nil
}

// Delete removes a single file. Directories are refused.
func (s *LocalStorage) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	absPath, err := s.resolvePath(key)
	if err != nil {
		return err
	}

	info, err := os.Stat(absPath)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrFileNotFound, key)
		}
		return fmt.Errorf("%w: %v", ErrFailedToStatPath, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%w: %s", ErrIsDirectory, key)
	}

	if err := os.Remove(absPath); err != nil {
		return fmt.Errorf("%w: %v", ErrFailedToDeleteFile, err)
	}
	return nil
}

// Exists reports whether a file exists under key.
// Returns false for invalid keys or on context cancellation.
func (s *LocalStorage) Exists(ctx context.Context, key string) bool {
	if ctx.Err() != nil {
		return false
	}
	absPath, err := s.resolvePath(key)
	if err != nil {
		return false
	}
	info, err := os.Stat(absPath)
	return err == nil && !info.IsDir()
}

// URL returns the public URL for a file.
func (s *LocalStorage) URL(key string) string {
	key = filepath.ToSlash(filepath.Clean(key))
	if strings.HasPrefix(key, "/") {
		return key
	}
	return s.baseURL + key
}

// resolvePath validates and resolves a key within the base directory.
func (s *LocalStorage) resolvePath(key string) (string, error) {
	key = filepath.Clean(key)
	absPath, err := filepath.Abs(filepath.Join(s.baseDir, key))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrFailedToGetAbsolutePath, err)
	}

	if !strings.HasPrefix(absPath, s.baseDir+string(filepath.Separator)) && absPath != s.baseDir {
		return "", fmt.Errorf("%w: %s", ErrInvalidPath, key)
	}
	return absPath, nil
}
