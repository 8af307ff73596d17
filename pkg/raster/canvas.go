package raster

import (
	"bytes"
	"context"
	"fmt"
	"image/color"
	"log/slog"
	"math"
	"time"

	"github.com/fogleman/gg"

	"github.com/dmitrymomot/sigkit/pkg/logger"
	"github.com/dmitrymomot/sigkit/pkg/normalize"
	"github.com/dmitrymomot/sigkit/pkg/preview"
	"github.com/dmitrymomot/sigkit/pkg/render"
)

// Canvas rasterizes snapshots in process. It is safe for concurrent use.
type Canvas struct {
	cfg config
	log *slog.Logger
}

// NewCanvas returns an in-process rasterizer.
func NewCanvas(opts ...Option) *Canvas {
	cfg := newConfig(opts)
	return &Canvas{cfg: cfg, log: cfg.log.With(logger.Component("raster"))}
}

// Measure returns the on-screen size of the staged tree in CSS pixels,
// rounded up to whole pixels.
func (c *Canvas) Measure(snap preview.Snapshot) (w, h float64, err error) {
	root, _, err := c.layout(snap)
	if err != nil {
		return 0, 0, err
	}
	w, h = extent(root)
	return w, h, nil
}

// Rasterize paints the snapshot at the configured pixel ratio over a white
// backdrop and encodes it as PNG. Cancellation is checked between phases.
func (c *Canvas) Rasterize(ctx context.Context, snap preview.Snapshot) (Image, error) {
	start := time.Now()
	if err := ctx.Err(); err != nil {
		return Image{}, err
	}

	root, fonts, err := c.layout(snap)
	if err != nil {
		return Image{}, err
	}
	w, h := extent(root)
	if w <= 0 || h <= 0 {
		return Image{}, ErrEmptyBox
	}
	if err := c.cfg.fits(w, h); err != nil {
		return Image{}, err
	}
	if err := ctx.Err(); err != nil {
		return Image{}, err
	}

	pw, ph := int(w*c.cfg.ratio), int(h*c.cfg.ratio)
	dc := gg.NewContext(pw, ph)
	dc.SetColor(color.White)
	dc.Clear()
	p := &painter{dc: dc, scale: c.cfg.ratio, fonts: fonts}
	p.box(root)
	if err := ctx.Err(); err != nil {
		return Image{}, err
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return Image{}, fmt.Errorf("raster: encode png: %w", err)
	}
	c.log.DebugContext(ctx, "signature rasterized",
		logger.Template(string(snap.Style.Template)),
		logger.Artifact("png", "image/png", buf.Len()),
		slog.Int("width", pw),
		slog.Int("height", ph),
		logger.Duration(time.Since(start)),
	)
	return Image{PNG: buf.Bytes(), Width: pw, Height: ph, Ratio: c.cfg.ratio}, nil
}

// layout builds and lays out a stripped copy of the staged tree. Editor
// markers and drag declarations never reach the bitmap.
func (c *Canvas) layout(snap preview.Snapshot) (*box, *faces, error) {
	if !snap.Ready() {
		return nil, nil, ErrNotReady
	}
	tree := snap.Tree.Clone()
	normalize.Strip(tree)
	styles := render.Compute(tree, nil)

	fonts := newFaces()
	e := &engine{fonts: fonts}
	root, err := e.build(tree, styles)
	if err != nil {
		return nil, nil, err
	}
	if root == nil {
		return nil, nil, ErrEmptyBox
	}
	width := snap.Width
	if width <= 0 {
		width = preview.DefaultWidth
	}
	e.place(root, 0, 0, width, fitFill)
	return root, fonts, nil
}

func extent(root *box) (w, h float64) {
	return math.Ceil(root.w), math.Ceil(root.h)
}
