package raster

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"math"
	"time"

	"github.com/disintegration/imaging"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/dmitrymomot/sigkit/pkg/logger"
	"github.com/dmitrymomot/sigkit/pkg/normalize"
	"github.com/dmitrymomot/sigkit/pkg/preview"
)

// bodyPadding matches the padding of the exported document's body.
const bodyPadding = 16

// Browser rasterizes the normalized document with headless Chrome. Every
// call launches its own browser process and tears it down afterwards.
type Browser struct {
	cfg config
	log *slog.Logger
}

// NewBrowser returns a Chrome backed rasterizer.
func NewBrowser(opts ...Option) *Browser {
	cfg := newConfig(opts)
	return &Browser{cfg: cfg, log: cfg.log.With(logger.Component("raster.browser"))}
}

// Rasterize screenshots the signature box of the normalized document.
func (b *Browser) Rasterize(ctx context.Context, snap preview.Snapshot) (Image, error) {
	start := time.Now()
	if !snap.Ready() {
		return Image{}, ErrNotReady
	}
	if err := CheckImages(snap.Tree); err != nil {
		return Image{}, err
	}
	doc, err := normalize.Document(snap)
	if err != nil {
		return Image{}, err
	}

	ctx, cancel := context.WithTimeout(ctx, b.cfg.timeout)
	defer cancel()

	l := launcher.New().Context(ctx).Headless(true)
	if b.cfg.bin != "" {
		l = l.Bin(b.cfg.bin)
	}
	u, err := l.Launch()
	if err != nil {
		return Image{}, fmt.Errorf("%w: launch: %v", ErrBrowserFailed, err)
	}
	defer func() {
		l.Kill()
		l.Cleanup()
	}()

	br := rod.New().ControlURL(u).Context(ctx)
	if err := br.Connect(); err != nil {
		return Image{}, fmt.Errorf("%w: connect: %v", ErrBrowserFailed, err)
	}
	defer func() { _ = br.Close() }()

	shot, err := b.capture(br, doc, snap.Width)
	if err != nil {
		return Image{}, err
	}

	img, err := imaging.Decode(bytes.NewReader(shot))
	if err != nil {
		return Image{}, fmt.Errorf("%w: decode screenshot: %v", ErrBrowserFailed, err)
	}
	size := img.Bounds().Size()
	flat := imaging.Overlay(imaging.New(size.X, size.Y, color.White), img, image.Point{}, 1)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, flat, imaging.PNG); err != nil {
		return Image{}, fmt.Errorf("raster: encode png: %w", err)
	}
	b.log.DebugContext(ctx, "signature captured",
		logger.Template(string(snap.Style.Template)),
		logger.Artifact("png", "image/png", buf.Len()),
		logger.Duration(time.Since(start)),
	)
	return Image{PNG: buf.Bytes(), Width: size.X, Height: size.Y, Ratio: b.cfg.ratio}, nil
}

func (b *Browser) capture(br *rod.Browser, doc string, width float64) ([]byte, error) {
	if width <= 0 {
		width = preview.DefaultWidth
	}
	page, err := br.Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, fmt.Errorf("%w: open page: %v", ErrBrowserFailed, err)
	}
	defer func() { _ = page.Close() }()

	err = page.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width:             int(math.Ceil(width)) + 2*bodyPadding,
		Height:            800,
		DeviceScaleFactor: b.cfg.ratio,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: viewport: %v", ErrBrowserFailed, err)
	}
	if err := page.SetDocumentContent(doc); err != nil {
		return nil, fmt.Errorf("%w: load document: %v", ErrBrowserFailed, err)
	}
	if err := page.WaitLoad(); err != nil {
		b.log.Warn("browser wait load", logger.Error(err))
	}
	el, err := page.Element("body > div")
	if err != nil {
		return nil, fmt.Errorf("%w: locate signature: %v", ErrBrowserFailed, err)
	}
	shape, err := el.Shape()
	if err != nil {
		return nil, fmt.Errorf("%w: measure signature: %v", ErrBrowserFailed, err)
	}
	box := shape.Box()
	if box == nil || box.Width <= 0 || box.Height <= 0 {
		return nil, ErrEmptyBox
	}
	if err := b.cfg.fits(box.Width, box.Height); err != nil {
		return nil, err
	}
	shot, err := el.Screenshot(proto.PageCaptureScreenshotFormatPng, 0)
	if err != nil {
		return nil, fmt.Errorf("%w: screenshot: %v", ErrBrowserFailed, err)
	}
	return shot, nil
}
