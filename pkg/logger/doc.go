// Package logger builds *slog.Logger values for sigkit processes.
//
// New takes functional options for format (text or json), level, output and
// static attributes, and wraps the handler in LogHandlerDecorator so values
// stored in a context.Context (a request id, a workspace id) are added to
// every record logged with that context:
//
//	log := logger.New(
//	    logger.WithEnvironment(cfg.AppEnv, cfg.AppName),
//	    logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
//	    logger.WithContextValue("request_id", middleware.RequestIDKey),
//	)
//	log.InfoContext(ctx, "export finished",
//	    logger.WorkspaceID(id),
//	    logger.Artifact("png", "image/png", len(png)),
//	)
//
// Attribute helpers in attr.go keep key names consistent across packages.
// Error and WorkspaceID return an empty attribute for nil or empty input, so
// they can be passed unconditionally.
package logger
