package export

import (
	"context"
	"path"

	"github.com/google/uuid"

	"github.com/dmitrymomot/sigkit/pkg/file"
	"github.com/dmitrymomot/sigkit/pkg/preview"
	"github.com/dmitrymomot/sigkit/pkg/raster"
)

// Rasterizer turns a snapshot into a PNG.
type Rasterizer interface {
	Rasterize(ctx context.Context, snap preview.Snapshot) (raster.Image, error)
}

// Clipboard accepts one payload under a content type.
type Clipboard interface {
	Write(ctx context.Context, contentType string, data []byte) error
}

// Sink stores downloaded artifacts and returns where they ended up.
type Sink interface {
	Save(ctx context.Context, a Artifact) (location string, err error)
}

// FileSink saves downloads into a local directory.
type FileSink struct {
	store *file.LocalStorage
}

// NewFileSink creates dir if needed.
func NewFileSink(dir string) (*FileSink, error) {
	store, err := file.NewLocalStorage(dir, "")
	if err != nil {
		return nil, err
	}
	return &FileSink{store: store}, nil
}

// Save writes the artifact under its name and returns the absolute path.
func (s *FileSink) Save(ctx context.Context, a Artifact) (string, error) {
	obj, err := s.store.Put(ctx, file.SanitizeFilename(a.Name), a.ContentType, a.Body)
	if err != nil {
		return "", err
	}
	return obj.Location, nil
}

// StorageSink saves downloads to any storage backend and returns the
// public URL. Every artifact lands under its own random prefix, so a URL
// reveals nothing about the workspace that made it.
type StorageSink struct {
	store file.Storage
	saved func(key string)
}

// NewStorageSink wraps a storage backend. saved, if not nil, receives the
// key of every stored artifact.
func NewStorageSink(store file.Storage, saved func(key string)) *StorageSink {
	return &StorageSink{store: store, saved: saved}
}

// Save uploads the artifact and returns its URL.
func (s *StorageSink) Save(ctx context.Context, a Artifact) (string, error) {
	key := path.Join(uuid.NewString(), file.SanitizeFilename(a.Name))
	obj, err := s.store.Put(ctx, key, a.ContentType, a.Body)
	if err != nil {
		return "", err
	}
	if s.saved != nil {
		s.saved(obj.Key)
	}
	return s.store.URL(obj.Key), nil
}
