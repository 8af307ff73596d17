package main

import (
	"context"
	"errors"
	"flag"
	"strings"

	"github.com/dmitrymomot/sigkit/pkg/clipboard"
	"github.com/dmitrymomot/sigkit/pkg/ratelimiter"
	"github.com/dmitrymomot/sigkit/pkg/studio"
)

func (a *app) serve(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	addr := fs.String("addr", a.cfg.HTTP.Addr, "listen address")
	systemClipboard := fs.Bool("system-clipboard", false, "copy exports to the clipboard of this machine")
	if err := parseFlags(fs, args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	store, files, err := a.storage(ctx)
	if err != nil {
		return err
	}

	opts := []studio.Option{
		studio.WithRegistry(a.registry()),
		studio.WithStorage(store),
		studio.WithLogger(a.log),
		studio.WithLogoLimits(a.cfg.Logo.MaxBytes, a.cfg.Logo.MaxSide),
		studio.WithMaxBodyBytes(a.cfg.HTTP.MaxBodyBytes),
	}
	if files != nil && strings.HasPrefix(a.cfg.Storage.URL, "/") {
		opts = append(opts, studio.WithExports(strings.TrimSuffix(a.cfg.Storage.URL, "/"), files))
	}
	if a.cfg.Export.Burst > 0 {
		limiter, err := ratelimiter.New(ratelimiter.Config{Burst: a.cfg.Export.Burst, Interval: a.cfg.Export.Interval})
		if err != nil {
			return err
		}
		defer limiter.Close()
		opts = append(opts, studio.WithRateLimit(limiter))
	}
	if *systemClipboard {
		opts = append(opts, studio.WithClipboard(clipboard.NewSystem()))
	}
	svc := studio.New(a.rasterizer(), opts...)

	httpCfg := a.cfg.HTTP
	httpCfg.Addr = *addr
	srv := studio.NewServer(
		studio.WithHTTPConfig(httpCfg),
		studio.WithServerLogger(a.log),
	)
	return srv.Run(ctx, svc.Handle())
}
