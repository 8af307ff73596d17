// Command sigkit runs the signature studio and exports signatures from the
// command line.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrymomot/sigkit/pkg/clientip"
	"github.com/dmitrymomot/sigkit/pkg/config"
	"github.com/dmitrymomot/sigkit/pkg/logger"
	"github.com/dmitrymomot/sigkit/pkg/requestid"
)

const usage = `usage: sigkit <command> [flags]

commands:
  serve    run the signature studio web editor
  export   render a signature file to PNG or HTML, or copy it
  watch    export a signature file again every time it changes

Run "sigkit <command> -h" for the flags of a command.
Configuration is read from the environment and an optional .env file.
`

var errUsage = errors.New("invalid usage")

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "sigkit:", err)
		if errors.Is(err, errUsage) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

func run(args []string, stdout io.Writer) error {
	if len(args) == 0 {
		fmt.Fprint(os.Stderr, usage)
		return errUsage
	}
	switch args[0] {
	case "help", "-h", "--help":
		fmt.Fprint(stdout, usage)
		return nil
	}

	if err := config.LoadEnv(); err != nil {
		return err
	}
	var cfg config.Config
	if err := config.Load(&cfg); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	log := cfg.Logger(logger.WithContextExtractors(requestid.Extractor(), clientip.Extractor()))
	logger.SetAsDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := &app{cfg: cfg, log: log, stdout: stdout}
	switch args[0] {
	case "serve":
		return app.serve(ctx, args[1:])
	case "export":
		return app.export(ctx, args[1:])
	case "watch":
		return app.watch(ctx, args[1:])
	}
	return fmt.Errorf("%w: unknown command %q", errUsage, args[0])
}
