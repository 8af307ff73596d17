package handler

import (
	"errors"
	"log/slog"
	"maps"
	"net/http"
	"strings"

	"github.com/a-h/templ"
	"github.com/starfederation/datastar-go/datastar"

	"github.com/dmitrymomot/sigkit/binder"
	"github.com/dmitrymomot/sigkit/pkg/logger"
	"github.com/dmitrymomot/sigkit/pkg/requestid"
)

// ErrorInfo is the client-facing view of an error.
type ErrorInfo struct {
	StatusCode int
	Key        string
	Message    string
	Details    map[string][]string
	// Type is "warning" for client errors and "error" otherwise.
	Type     string
	LogLevel slog.Level
}

// Classify maps err onto a status code and message. Unknown errors are
// reported as 500 without leaking their text.
func Classify(err error) ErrorInfo {
	info := ErrorInfo{
		StatusCode: http.StatusInternalServerError,
		Key:        ErrInternalServerError.Key,
		Message:    "Something went wrong",
	}

	var (
		httpErr  HTTPError
		validErr ValidationError
	)
	switch {
	case errors.As(err, &validErr):
		info.StatusCode, info.Key = http.StatusBadRequest, "validation_error"
		info.Message = validErr.Error()
		info.Details = maps.Clone(map[string][]string(validErr))
	case errors.As(err, &httpErr):
		info.StatusCode, info.Key = httpErr.Code, httpErr.Key
		info.Message = http.StatusText(httpErr.Code)
		if msg := strings.TrimPrefix(err.Error(), httpErr.Key+": "); msg != err.Error() {
			info.Message = msg
		}
	case errors.Is(err, binder.ErrBodyTooLarge):
		info.StatusCode, info.Key, info.Message = http.StatusRequestEntityTooLarge, ErrRequestEntityTooLarge.Key, err.Error()
	case errors.Is(err, binder.ErrUnsupportedMediaType), errors.Is(err, binder.ErrMissingContentType):
		info.StatusCode, info.Key, info.Message = http.StatusUnsupportedMediaType, ErrUnsupportedMediaType.Key, err.Error()
	case errors.Is(err, binder.ErrInvalidJSON), errors.Is(err, binder.ErrInvalidForm),
		errors.Is(err, binder.ErrInvalidQuery), errors.Is(err, binder.ErrInvalidPath),
		errors.Is(err, binder.ErrInvalidSignals), errors.Is(err, binder.ErrMissingFile):
		info.StatusCode, info.Key, info.Message = http.StatusBadRequest, ErrBadRequest.Key, err.Error()
	}

	info.Type, info.LogLevel = "error", slog.LevelError
	if info.StatusCode < http.StatusInternalServerError {
		info.Type, info.LogLevel = "warning", slog.LevelWarn
	}
	return info
}

// ErrorPageParams feeds the full-page error component.
type ErrorPageParams struct {
	Error      string
	StatusCode int
	RequestID  string
	RetryURL   string
}

// ErrorToastParams feeds the toast shown to datastar requests.
type ErrorToastParams struct {
	Message   string
	Type      string
	RequestID string
}

// ErrorHandlerConfig selects the components used to present errors.
type ErrorHandlerConfig struct {
	ErrorPage   func(ErrorPageParams) templ.Component
	ErrorToast  func(ErrorToastParams) templ.Component
	ToastTarget string
	ToastMode   datastar.ElementPatchMode
}

// NewErrorHandler logs every error and answers in the format the client
// asked for: a toast patch for datastar, a JSON envelope for API callers
// and an error page otherwise.
func NewErrorHandler(log *slog.Logger, cfg ErrorHandlerConfig) ErrorHandler[Context] {
	if log == nil {
		log = slog.Default()
	}
	if cfg.ToastTarget == "" {
		cfg.ToastTarget = "#toasts"
	}
	if cfg.ToastMode == "" {
		cfg.ToastMode = PatchAppend
	}

	return func(ctx Context, err error) {
		r, w := ctx.Request(), ctx.ResponseWriter()
		id := requestid.FromContext(r.Context())
		info := Classify(err)

		log.LogAttrs(r.Context(), info.LogLevel, "request failed",
			logger.Component("http"),
			logger.RequestID(id),
			logger.Error(err),
			slog.Int("status", info.StatusCode),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
		)

		var resp Response
		switch {
		case IsDataStar(r) && cfg.ErrorToast != nil:
			resp = Templ(cfg.ErrorToast(ErrorToastParams{Message: info.Message, Type: info.Type, RequestID: id}),
				WithTarget(cfg.ToastTarget), WithPatchMode(cfg.ToastMode))
		case wantsJSON(r) || cfg.ErrorPage == nil:
			resp = JSONError(err)
		default:
			resp = TemplStatus(info.StatusCode, cfg.ErrorPage(ErrorPageParams{
				Error:      info.Message,
				StatusCode: info.StatusCode,
				RequestID:  id,
				RetryURL:   r.URL.Path,
			}))
		}
		if rerr := resp.Render(w, r); rerr != nil {
			log.LogAttrs(r.Context(), slog.LevelError, "failed to render error",
				logger.Component("http"),
				logger.RequestID(id),
				logger.Error(rerr),
			)
		}
	}
}

func wantsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json") ||
		strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") ||
		strings.HasPrefix(r.URL.Path, "/api/")
}
