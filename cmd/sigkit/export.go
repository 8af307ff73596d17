package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrymomot/sigkit/pkg/async"
	"github.com/dmitrymomot/sigkit/pkg/clipboard"
	"github.com/dmitrymomot/sigkit/pkg/export"
	"github.com/dmitrymomot/sigkit/pkg/preview"
	"github.com/dmitrymomot/sigkit/pkg/watch"
)

// exportJob is one run of the export or watch command.
type exportJob struct {
	dir   string
	kinds []export.Kind
	copy  string
}

func parseFlags(fs *flag.FlagSet, args []string) error {
	err := fs.Parse(args)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, flag.ErrHelp):
		return flag.ErrHelp
	}
	return fmt.Errorf("%w: %v", errUsage, err)
}

func parseKinds(s string) ([]export.Kind, error) {
	var out []export.Kind
	for _, name := range strings.Split(s, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		k, err := export.ParseKind(name)
		if err != nil || !k.Downloadable() {
			return nil, fmt.Errorf("%w: kind %q cannot be saved, use png or html", errUsage, name)
		}
		out = append(out, k)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: no kinds given", errUsage)
	}
	return out, nil
}

func (a *app) jobFlags(fs *flag.FlagSet) (in, out, kinds *string) {
	in = fs.String("in", "signature.json", "signature file holding data and config")
	out = fs.String("out", a.cfg.Storage.Dir, "directory the files are written to")
	kinds = fs.String("kind", "png,html", "comma separated kinds to save: png, html")
	return in, out, kinds
}

func (a *app) export(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	in, out, kinds := a.jobFlags(fs)
	copyAs := fs.String("copy", "", "copy to the system clipboard instead of saving: image, richtext or html")
	if err := parseFlags(fs, args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	job := exportJob{dir: *out, copy: *copyAs}
	if job.copy == "" {
		ks, err := parseKinds(*kinds)
		if err != nil {
			return err
		}
		job.kinds = ks
	}

	d, st, err := readPayload(*in)
	if err != nil {
		return err
	}
	snap := preview.NewSurface(a.surfaceOptions()...).Load(d, st)
	return a.deliver(ctx, snap, job)
}

func (a *app) watch(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("watch", flag.ContinueOnError)
	in, out, kinds := a.jobFlags(fs)
	debounce := fs.Duration("debounce", watch.DefaultDebounce, "quiet period before exporting again")
	if err := parseFlags(fs, args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	ks, err := parseKinds(*kinds)
	if err != nil {
		return err
	}
	job := exportJob{dir: *out, kinds: ks}

	surface := preview.NewSurface(a.surfaceOptions()...)
	w := watch.New(*in, watch.WithDebounce(*debounce), watch.WithLogger(a.log))
	return w.Run(ctx, func(ctx context.Context) error {
		d, st, err := readPayload(*in)
		if err != nil {
			return err
		}
		return a.deliver(ctx, surface.Load(d, st), job)
	})
}

// deliver writes the artifacts of one snapshot and prints where they went.
func (a *app) deliver(ctx context.Context, snap preview.Snapshot, job exportJob) error {
	ctx, cancel := context.WithTimeout(ctx, a.cfg.Raster.Timeout+10*time.Second)
	defer cancel()

	if job.copy != "" {
		d := export.NewDispatcher(a.rasterizer(),
			export.WithClipboard(clipboard.NewSystem()),
			export.WithLogger(a.log),
		)
		var o export.Outcome
		switch job.copy {
		case "image":
			o = d.CopyImage(ctx, snap)
		case "richtext":
			o = d.CopyRichText(ctx, snap)
		case "html":
			o = d.CopyHTML(ctx, snap)
		default:
			return fmt.Errorf("%w: cannot copy as %q", errUsage, job.copy)
		}
		return a.report(o)
	}

	sink, err := export.NewFileSink(job.dir)
	if err != nil {
		return err
	}
	d := export.NewDispatcher(a.rasterizer(),
		export.WithSink(sink),
		export.WithLogger(a.log),
	)
	futures := make([]*async.Future[export.Outcome], 0, len(job.kinds))
	for _, k := range job.kinds {
		futures = append(futures, async.Go(ctx, func(ctx context.Context) (export.Outcome, error) {
			return d.Download(ctx, snap, k), nil
		}))
	}
	outcomes, err := async.WaitAll(futures...)
	if err != nil {
		return err
	}
	errs := make([]error, 0, len(outcomes))
	for _, o := range outcomes {
		errs = append(errs, a.report(o))
	}
	return errors.Join(errs...)
}

func (a *app) report(o export.Outcome) error {
	switch o.Status {
	case export.StatusDone:
		if o.Location != "" {
			fmt.Fprintln(a.stdout, o.Location)
		} else {
			fmt.Fprintln(a.stdout, o.Message())
		}
		return nil
	case export.StatusSkipped:
		return errors.New(o.Message())
	}
	return fmt.Errorf("%s: %w", o.Message(), o.Err)
}
