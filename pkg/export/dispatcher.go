package export

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/dmitrymomot/sigkit/pkg/logger"
	"github.com/dmitrymomot/sigkit/pkg/normalize"
	"github.com/dmitrymomot/sigkit/pkg/preview"
)

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithClipboard sets the clipboard copies go to.
func WithClipboard(c Clipboard) Option {
	return func(d *Dispatcher) { d.clip = c }
}

// WithSink sets where downloads are stored.
func WithSink(s Sink) Option {
	return func(d *Dispatcher) { d.sink = s }
}

// WithNotifier replaces the default log notifier.
func WithNotifier(n Notifier) Option {
	return func(d *Dispatcher) { d.notify = n }
}

// WithLogger sets the logger of the default notifier.
func WithLogger(l *slog.Logger) Option {
	return func(d *Dispatcher) { d.log = l }
}

// Dispatcher runs export operations against preview snapshots. Every
// operation returns an Outcome and reports it to the notifier; errors and
// panics never escape. There are no retries.
type Dispatcher struct {
	raster Rasterizer
	clip   Clipboard
	sink   Sink
	notify Notifier
	log    *slog.Logger
}

// NewDispatcher returns a dispatcher rasterizing with r.
func NewDispatcher(r Rasterizer, opts ...Option) *Dispatcher {
	d := &Dispatcher{raster: r}
	for _, opt := range opts {
		opt(d)
	}
	if d.log == nil {
		d.log = slog.Default()
	}
	if d.notify == nil {
		d.notify = NewLogNotifier(d.log)
	}
	return d
}

// Primary follows the snapshot's mode: rendered downloads a PNG, html copies
// the normalized document as text.
func (d *Dispatcher) Primary(ctx context.Context, snap preview.Snapshot) Outcome {
	if snap.Mode == HTML {
		return d.run(ctx, ActionPrimary, snap, Source, d.toClipboard)
	}
	return d.run(ctx, ActionPrimary, snap, PNG, d.toSink)
}

// CopyImage copies the PNG to the clipboard regardless of mode.
func (d *Dispatcher) CopyImage(ctx context.Context, snap preview.Snapshot) Outcome {
	return d.run(ctx, ActionCopyImage, snap, PNG, d.toClipboard)
}

// CopyRichText copies the class-stripped fragment as text/html.
func (d *Dispatcher) CopyRichText(ctx context.Context, snap preview.Snapshot) Outcome {
	return d.run(ctx, ActionCopyRichText, snap, RichText, d.toClipboard)
}

// CopyHTML copies the normalized document as plain text.
func (d *Dispatcher) CopyHTML(ctx context.Context, snap preview.Snapshot) Outcome {
	return d.run(ctx, ActionCopyHTML, snap, Source, d.toClipboard)
}

// Download stores a PNG or HTML document through the sink.
func (d *Dispatcher) Download(ctx context.Context, snap preview.Snapshot, k Kind) Outcome {
	if !k.Downloadable() {
		return d.finish(ctx, Outcome{
			Action:      ActionDownload,
			Mode:        snap.Mode,
			Status:      StatusFailed,
			Destination: DestDownload,
			Err:         fmt.Errorf("%w: %q", ErrUnsupportedKind, k),
		})
	}
	return d.run(ctx, ActionDownload, snap, k, d.toSink)
}

// Build produces an artifact without delivering it. A snapshot with nothing
// staged yields an empty artifact and no error.
func (d *Dispatcher) Build(ctx context.Context, snap preview.Snapshot, k Kind) (Artifact, error) {
	a := Artifact{Kind: k, Name: Filename(snap.Data.Name, k), ContentType: k.ContentType()}
	if !snap.Ready() {
		return a, nil
	}

	var body string
	var err error
	switch k {
	case PNG:
		img, rerr := d.raster.Rasterize(ctx, snap)
		if rerr != nil {
			return a, rerr
		}
		a.Body = img.PNG
		return a, nil
	case Document, Source:
		body, err = normalize.Document(snap)
	case RichText:
		body, err = normalize.RichText(snap)
	default:
		return a, fmt.Errorf("%w: %q", ErrUnsupportedKind, k)
	}
	if err != nil {
		return a, err
	}
	a.Body = []byte(body)
	return a, nil
}

type deliver func(ctx context.Context, a Artifact) (dest, location string, err error)

func (d *Dispatcher) toClipboard(ctx context.Context, a Artifact) (string, string, error) {
	if d.clip == nil {
		return DestClipboard, "", ErrNoClipboard
	}
	return DestClipboard, "", d.clip.Write(ctx, a.ContentType, a.Body)
}

func (d *Dispatcher) toSink(ctx context.Context, a Artifact) (string, string, error) {
	if d.sink == nil {
		return DestDownload, "", ErrNoSink
	}
	loc, err := d.sink.Save(ctx, a)
	return DestDownload, loc, err
}

// run builds and delivers one artifact. The artifact is attached to the
// outcome only once it has been delivered.
func (d *Dispatcher) run(ctx context.Context, action Action, snap preview.Snapshot, k Kind, to deliver) (out Outcome) {
	start := time.Now()
	out = Outcome{Action: action, Mode: snap.Mode}
	defer func() {
		if r := recover(); r != nil {
			out.Status = StatusFailed
			out.Artifact = Artifact{}
			out.Err = fmt.Errorf("%w: %v", ErrPanic, r)
			d.log.ErrorContext(ctx, "export panicked",
				logger.Event(string(action)),
				slog.Any("panic", r),
			)
		}
		out.Duration = time.Since(start)
		d.finish(ctx, out)
	}()

	if !snap.Ready() {
		out.Status = StatusSkipped
		return out
	}

	a, err := d.Build(ctx, snap, k)
	if err != nil {
		out.Status, out.Err = StatusFailed, err
		return out
	}
	dest, loc, err := to(ctx, a)
	out.Destination = dest
	if err != nil {
		out.Status, out.Err = StatusFailed, err
		return out
	}
	out.Status, out.Artifact, out.Location = StatusDone, a, loc
	return out
}

// finish reports an outcome. A panicking notifier is contained here too.
func (d *Dispatcher) finish(ctx context.Context, o Outcome) Outcome {
	defer func() {
		if r := recover(); r != nil {
			d.log.ErrorContext(ctx, "export notifier panicked", slog.Any("panic", r))
		}
	}()
	d.notify.Notify(ctx, o)
	return o
}
