package logger

import (
	"log/slog"
	"strconv"
	"time"
)

// Group creates a slog group attribute from the provided attributes.
func Group(name string, attrs ...slog.Attr) slog.Attr {
	return slog.Attr{Key: name, Value: slog.GroupValue(attrs...)}
}

// Errors groups multiple non-nil errors under the key "errors".
// If all errors are nil, it returns an empty Attr.
func Errors(errs ...error) slog.Attr {
	as := make([]slog.Attr, 0, len(errs))
	for i, err := range errs {
		if err != nil {
			as = append(as, slog.Any(strconv.Itoa(i), err))
		}
	}
	if len(as) == 0 {
		return slog.Attr{}
	}
	return slog.Attr{Key: "errors", Value: slog.GroupValue(as...)}
}

// Error creates an attribute for a single error under the key "error".
// If err is nil, it returns an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// WorkspaceID records the editor workspace identifier under the key
// "workspace_id". An empty id yields an empty Attr.
func WorkspaceID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("workspace_id", id)
}

// RequestID records the request identifier under the key "request_id".
// If id is empty, it returns an empty Attr.
func RequestID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("request_id", id)
}

// Template records the signature template under the key "template".
func Template(name string) slog.Attr {
	return slog.String("template", name)
}

// Mode records the preview output mode under the key "mode".
func Mode(mode string) slog.Attr {
	return slog.String("mode", mode)
}

// Artifact groups an export artifact's kind, content type and size under
// the key "artifact".
func Artifact(kind, contentType string, size int) slog.Attr {
	return Group("artifact",
		slog.String("kind", kind),
		slog.String("content_type", contentType),
		slog.Int("size", size),
	)
}

// Destination records where an export was delivered under the key
// "destination".
func Destination(name string) slog.Attr {
	return slog.String("destination", name)
}

// Duration records a duration under the key "duration".
func Duration(d time.Duration) slog.Attr {
	return slog.Duration("duration", d)
}

// Component records the component name under the key "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Event records the event name under the key "event".
func Event(name string) slog.Attr {
	return slog.String("event", name)
}

// Handler records the handler name under the key "handler".
func Handler(name string) slog.Attr {
	return slog.String("handler", name)
}
