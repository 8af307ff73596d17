package raster

import (
	"fmt"
	"log/slog"
	"math"
	"time"
)

// DefaultPixelRatio is the number of device pixels per CSS pixel.
const DefaultPixelRatio = 2

// DefaultMaxHeight caps bitmaps in device pixels.
const DefaultMaxHeight = 4096

// Image is an encoded bitmap of a signature.
type Image struct {
	PNG    []byte
	Width  int
	Height int
	Ratio  float64
}

// Empty reports whether the image carries no data.
func (i Image) Empty() bool { return len(i.PNG) == 0 }

type config struct {
	ratio   float64
	bin     string
	timeout time.Duration
	maxSide int
	log     *slog.Logger
}

func newConfig(opts []Option) config {
	cfg := config{
		ratio:   DefaultPixelRatio,
		timeout: 30 * time.Second,
		maxSide: DefaultMaxHeight,
		log:     slog.Default(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// fits refuses a box of w by h CSS pixels whose bitmap would be taller or
// wider than the cap.
func (c config) fits(w, h float64) error {
	pw, ph := math.Ceil(w*c.ratio), math.Ceil(h*c.ratio)
	if ph > float64(c.maxSide) || pw > float64(c.maxSide) {
		return fmt.Errorf("%w: %.0fx%.0f device pixels, limit %d", ErrBoxTooLarge, pw, ph, c.maxSide)
	}
	return nil
}

// Option configures a rasterizer.
type Option func(*config)

// WithPixelRatio sets the device pixel ratio. Values below 1 are ignored.
func WithPixelRatio(r float64) Option {
	return func(c *config) {
		if r >= 1 {
			c.ratio = r
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.log = l
		}
	}
}

// WithBrowserBin sets the Chrome binary used by Browser. Empty means the
// launcher's lookup and download logic.
func WithBrowserBin(path string) Option {
	return func(c *config) {
		c.bin = path
	}
}

// WithTimeout bounds a single browser capture.
func WithTimeout(d time.Duration) Option {
	return func(c *config) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithMaxHeight caps the bitmap height in device pixels. The width is held
// to the same cap. Values below 1 are ignored.
func WithMaxHeight(px int) Option {
	return func(c *config) {
		if px > 0 {
			c.maxSide = px
		}
	}
}
