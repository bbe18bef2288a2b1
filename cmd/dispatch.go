// cmd/dispatch.go
package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/fatih/color"

	"s3-iam-cli/internal/cli"
	"s3-iam-cli/internal/client"
	"s3-iam-cli/internal/config"
	"s3-iam-cli/internal/controller"
	"s3-iam-cli/internal/dispatch"
)

// Dispatch runs one action described by argv (without the program name).
// Results go to stdout, logs to stderr. The returned error is the one-line
// diagnostic for the operator; see Report.
func Dispatch(ctx context.Context, argv []string, stdout, stderr io.Writer) error {
	args, flags, err := cli.Parse(argv, stdout)
	if err != nil {
		return err
	}

	settings, err := config.LoadSettings(flags)
	if err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: settings.LogLevel()}))

	files, err := config.Load(settings.ConfigDir)
	if err != nil {
		return fmt.Errorf("cannot load config: %w", err)
	}
	logger.Debug("config loaded",
		"dir", settings.ConfigDir,
		"actions", len(files.Actions),
		"endpoints", len(files.Endpoints),
	)

	d := &dispatch.Dispatcher{
		Actions:   files.Actions,
		Endpoints: files.Endpoints,
		Registry:  controller.Default(),
		Connect:   client.Connect,
		Options: client.Options{
			Region:             settings.Region,
			InsecureSkipVerify: !settings.VerifySSL,
			Logger:             logger,
		},
		Out:    stdout,
		Logger: logger,
	}
	return d.Run(ctx, args)
}

// Report prints err as a single line on w, in red when w is a terminal.
func Report(w io.Writer, err error) {
	color.New(color.FgRed).Fprintln(w, err.Error())
}
