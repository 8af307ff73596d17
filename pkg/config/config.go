package config

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/dmitrymomot/sigkit/pkg/logger"
)

// Config is the sigkit process configuration.
type Config struct {
	Env       string `env:"APP_ENV" envDefault:"development"`
	Name      string `env:"APP_NAME" envDefault:"sigkit"`
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`

	HTTP    HTTP    `envPrefix:"HTTP_"`
	Preview Preview
	Raster  Raster
	Storage Storage `envPrefix:"STORAGE_"`
	S3      S3      `envPrefix:"S3_"`
	Logo    Logo    `envPrefix:"LOGO_"`
	Export  Export  `envPrefix:"EXPORT_"`
}

// HTTP configures the studio server.
type HTTP struct {
	Addr            string        `env:"ADDR" envDefault:":8080"`
	ReadTimeout     time.Duration `env:"READ_TIMEOUT" envDefault:"15s"`
	WriteTimeout    time.Duration `env:"WRITE_TIMEOUT" envDefault:"60s"`
	IdleTimeout     time.Duration `env:"IDLE_TIMEOUT" envDefault:"120s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
	MaxBodyBytes    int64         `env:"MAX_BODY_BYTES" envDefault:"6291456"`
}

// Preview configures the live preview surface.
type Preview struct {
	Width         float64       `env:"PREVIEW_WIDTH" envDefault:"512"`
	MaxWorkspaces int           `env:"MAX_WORKSPACES" envDefault:"1000"`
	IdleTTL       time.Duration `env:"WORKSPACE_IDLE_TTL" envDefault:"2h"`
}

// Raster selects and tunes the rasterizer backend.
type Raster struct {
	Backend    string        `env:"RASTER_BACKEND" envDefault:"canvas"`
	PixelRatio float64       `env:"PIXEL_RATIO" envDefault:"2"`
	BrowserBin string        `env:"BROWSER_BIN"`
	Timeout    time.Duration `env:"RASTER_TIMEOUT" envDefault:"30s"`
	MaxHeight  int           `env:"RASTER_MAX_HEIGHT" envDefault:"4096"`
}

// Storage configures where downloads are written.
type Storage struct {
	Driver string `env:"DRIVER" envDefault:"local"`
	Dir    string `env:"DIR" envDefault:"./exports"`
	URL    string `env:"URL" envDefault:"/exports"`
}

// S3 configures the S3 artifact sink used when Storage.Driver is "s3".
type S3 struct {
	Bucket         string `env:"BUCKET"`
	Region         string `env:"REGION" envDefault:"us-east-1"`
	AccessKeyID    string `env:"ACCESS_KEY_ID"`
	SecretKey      string `env:"SECRET_KEY"`
	Endpoint       string `env:"ENDPOINT"`
	BaseURL        string `env:"BASE_URL"`
	Prefix         string `env:"PREFIX" envDefault:"exports/"`
	ForcePathStyle bool   `env:"FORCE_PATH_STYLE"`
}

// Logo limits logo uploads.
type Logo struct {
	MaxBytes int64 `env:"MAX_BYTES" envDefault:"5242880"`
	MaxSide  int   `env:"MAX_SIDE" envDefault:"400"`
}

// Export throttles export and download requests per client address.
// A zero Burst disables throttling.
type Export struct {
	Burst    int           `env:"BURST" envDefault:"20"`
	Interval time.Duration `env:"INTERVAL" envDefault:"3s"`
}

// Backends and storage drivers.
const (
	BackendCanvas  = "canvas"
	BackendBrowser = "browser"

	DriverLocal = "local"
	DriverS3    = "s3"
)

// Validate checks values the struct tags cannot express.
func (c Config) Validate() error {
	switch {
	case !slices.Contains([]string{BackendCanvas, BackendBrowser}, c.Raster.Backend):
		return fmt.Errorf("%w: RASTER_BACKEND=%q", ErrInvalidValue, c.Raster.Backend)
	case !slices.Contains([]string{DriverLocal, DriverS3}, c.Storage.Driver):
		return fmt.Errorf("%w: STORAGE_DRIVER=%q", ErrInvalidValue, c.Storage.Driver)
	case c.Storage.Driver == DriverS3 && c.S3.Bucket == "":
		return fmt.Errorf("%w: S3_BUCKET is required for the s3 driver", ErrInvalidValue)
	case c.Preview.Width <= 0:
		return fmt.Errorf("%w: PREVIEW_WIDTH must be positive", ErrInvalidValue)
	case c.Preview.MaxWorkspaces <= 0 || c.Preview.IdleTTL < 0:
		return fmt.Errorf("%w: MAX_WORKSPACES must be positive and WORKSPACE_IDLE_TTL not negative", ErrInvalidValue)
	case c.Raster.PixelRatio < 1:
		return fmt.Errorf("%w: PIXEL_RATIO must be at least 1", ErrInvalidValue)
	case c.Raster.MaxHeight <= 0:
		return fmt.Errorf("%w: RASTER_MAX_HEIGHT must be positive", ErrInvalidValue)
	case c.Export.Burst < 0 || (c.Export.Burst > 0 && c.Export.Interval <= 0):
		return fmt.Errorf("%w: export throttling needs a positive burst and interval", ErrInvalidValue)
	case c.Logo.MaxBytes <= 0 || c.Logo.MaxSide <= 0:
		return fmt.Errorf("%w: logo limits must be positive", ErrInvalidValue)
	}
	return nil
}

// Logger builds the process logger. LOG_LEVEL and LOG_FORMAT override the
// environment defaults; extra options are applied last.
func (c Config) Logger(extra ...logger.Option) *slog.Logger {
	format := logger.FormatText
	if strings.EqualFold(c.LogFormat, string(logger.FormatJSON)) {
		format = logger.FormatJSON
	}
	opts := []logger.Option{
		logger.WithEnvironment(c.Env, c.Name),
		logger.WithLevel(logger.ParseLevel(c.LogLevel)),
		logger.WithFormat(format),
	}
	return logger.New(append(opts, extra...)...)
}
