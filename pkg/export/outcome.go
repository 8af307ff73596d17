package export

import (
	"context"
	"log/slog"
	"time"

	"github.com/dmitrymomot/sigkit/pkg/logger"
)

// Action names the export affordance that was used.
type Action string

const (
	ActionPrimary      Action = "primary"
	ActionCopyImage    Action = "copy-image"
	ActionCopyRichText Action = "copy-richtext"
	ActionCopyHTML     Action = "copy-html"
	ActionDownload     Action = "download"
)

// Status is how an export ended.
type Status string

const (
	StatusDone    Status = "done"
	StatusSkipped Status = "skipped" // nothing was staged
	StatusFailed  Status = "failed"
)

// Destination names where an artifact went.
const (
	DestClipboard = "clipboard"
	DestDownload  = "download"
)

// Outcome is the result of one export operation. Failed outcomes carry the
// error and no artifact.
type Outcome struct {
	Action      Action
	Mode        Mode
	Status      Status
	Artifact    Artifact
	Destination string
	// Location is where a download was stored: a path or a URL.
	Location string
	Err      error
	Duration time.Duration
}

// OK reports whether the artifact was delivered.
func (o Outcome) OK() bool {
	return o.Status == StatusDone
}

// Message is a short human readable summary for notifications.
func (o Outcome) Message() string {
	switch o.Status {
	case StatusDone:
		if o.Destination == DestClipboard {
			return "Copied to clipboard"
		}
		return "Saved " + o.Artifact.Name
	case StatusSkipped:
		return "Nothing to export yet"
	default:
		if o.Destination == DestClipboard {
			return "Failed to copy to clipboard"
		}
		return "Export failed"
	}
}

// Notifier receives every outcome. It must not block for long and never
// affects the outcome itself.
type Notifier interface {
	Notify(ctx context.Context, o Outcome)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(ctx context.Context, o Outcome)

// Notify calls f.
func (f NotifierFunc) Notify(ctx context.Context, o Outcome) { f(ctx, o) }

// LogNotifier writes outcomes to a structured logger.
type LogNotifier struct {
	log *slog.Logger
}

// NewLogNotifier returns a notifier logging through l, or slog.Default when nil.
func NewLogNotifier(l *slog.Logger) *LogNotifier {
	if l == nil {
		l = slog.Default()
	}
	return &LogNotifier{log: l.With(logger.Component("export"))}
}

// Notify logs done exports at info, skipped ones at debug and failures at warn.
func (n *LogNotifier) Notify(ctx context.Context, o Outcome) {
	attrs := []slog.Attr{
		logger.Event(string(o.Action)),
		logger.Mode(string(o.Mode)),
		slog.String("status", string(o.Status)),
		logger.Duration(o.Duration),
	}
	if o.Destination != "" {
		attrs = append(attrs, logger.Destination(o.Destination))
	}
	if !o.Artifact.Empty() {
		attrs = append(attrs, logger.Artifact(string(o.Artifact.Kind), o.Artifact.ContentType, o.Artifact.Size()))
	}
	if o.Location != "" {
		attrs = append(attrs, slog.String("location", o.Location))
	}

	switch o.Status {
	case StatusDone:
		n.log.LogAttrs(ctx, slog.LevelInfo, "export delivered", attrs...)
	case StatusSkipped:
		n.log.LogAttrs(ctx, slog.LevelDebug, "export skipped", attrs...)
	default:
		attrs = append(attrs, logger.Error(o.Err))
		n.log.LogAttrs(ctx, slog.LevelWarn, "export failed", attrs...)
	}
}
