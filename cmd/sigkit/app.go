package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"

	"github.com/dmitrymomot/sigkit/pkg/config"
	"github.com/dmitrymomot/sigkit/pkg/export"
	"github.com/dmitrymomot/sigkit/pkg/file"
	"github.com/dmitrymomot/sigkit/pkg/preview"
	"github.com/dmitrymomot/sigkit/pkg/raster"
	"github.com/dmitrymomot/sigkit/pkg/signature"
)

// app carries what every subcommand shares.
type app struct {
	cfg    config.Config
	log    *slog.Logger
	stdout io.Writer
}

func (a *app) rasterizer() export.Rasterizer {
	opts := []raster.Option{
		raster.WithPixelRatio(a.cfg.Raster.PixelRatio),
		raster.WithTimeout(a.cfg.Raster.Timeout),
		raster.WithMaxHeight(a.cfg.Raster.MaxHeight),
		raster.WithLogger(a.log),
	}
	if a.cfg.Raster.Backend == config.BackendBrowser {
		return raster.NewBrowser(append(opts, raster.WithBrowserBin(a.cfg.Raster.BrowserBin))...)
	}
	return raster.NewCanvas(opts...)
}

// storage opens the download backend. Local storage also returns a file
// server for its directory.
func (a *app) storage(ctx context.Context) (file.Storage, http.Handler, error) {
	if a.cfg.Storage.Driver == config.DriverS3 {
		s3 := a.cfg.S3
		st, err := file.NewS3Storage(ctx, file.S3Config{
			Bucket:         s3.Bucket,
			Region:         s3.Region,
			AccessKeyID:    s3.AccessKeyID,
			SecretKey:      s3.SecretKey,
			Endpoint:       s3.Endpoint,
			BaseURL:        s3.BaseURL,
			Prefix:         s3.Prefix,
			ForcePathStyle: s3.ForcePathStyle,
		})
		return st, nil, err
	}
	st, err := file.NewLocalStorage(a.cfg.Storage.Dir, a.cfg.Storage.URL)
	if err != nil {
		return nil, nil, err
	}
	return st, file.Server(a.cfg.Storage.Dir), nil
}

func (a *app) registry() *preview.Registry {
	return preview.NewRegistry(preview.RegistryConfig{
		Capacity: a.cfg.Preview.MaxWorkspaces,
		IdleTTL:  a.cfg.Preview.IdleTTL,
	}, a.surfaceOptions()...)
}

func (a *app) surfaceOptions() []preview.Option {
	return []preview.Option{
		preview.WithWidth(a.cfg.Preview.Width),
		preview.WithLogger(a.log),
	}
}

// payload is the signature file format, the same body the save endpoint
// accepts.
type payload struct {
	Data   *signature.Data  `json:"data"`
	Config *signature.Style `json:"config"`
}

// readPayload loads a signature file. A missing config means the default
// style; missing data is an error.
func readPayload(path string) (signature.Data, signature.Style, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return signature.Data{}, signature.Style{}, err
	}
	var p payload
	if err := json.Unmarshal(raw, &p); err != nil {
		return signature.Data{}, signature.Style{}, fmt.Errorf("%s: %w", path, err)
	}
	if p.Data == nil {
		return signature.Data{}, signature.Style{}, fmt.Errorf("%s: %w", path, signature.ErrMissingPayload)
	}
	st := signature.DefaultStyle()
	if p.Config != nil {
		st = *p.Config
	}
	return *p.Data, st, nil
}
