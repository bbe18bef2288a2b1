// Package dispatch routes an action from the command line to the
// controller method that implements it:
//
//	resolve action -> validate credentials -> build client
//	  -> load module -> instantiate class -> invoke method
//
// The first failing stage ends the run with an *Error.
package dispatch

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"s3-iam-cli/internal/cli"
	"s3-iam-cli/internal/client"
	"s3-iam-cli/internal/config"
	"s3-iam-cli/internal/controller"
)

// Dispatcher holds everything one run needs. Connect builds the service
// client; tests replace it to run without a network.
type Dispatcher struct {
	Actions   config.ActionMapping
	Endpoints config.EndpointMapping
	Registry  *controller.Registry
	Connect   client.Factory
	Options   client.Options
	Out       io.Writer
	Logger    *slog.Logger
}

// Run executes one action end to end.
func (d *Dispatcher) Run(ctx context.Context, args *cli.Args) error {
	logger := d.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	res, err := Resolve(args.Action, d.Actions)
	if err != nil {
		return err
	}
	logger = logger.With("action", res.Action)
	logger.Debug("action resolved",
		"service", res.Service,
		"module", res.Module,
		"class", res.Class,
		"method", res.Method,
	)

	if err := ValidateCredentials(res.Action, args); err != nil {
		return err
	}

	endpoint, ok := d.Endpoints.URL(res.Service)
	if !ok {
		return fail(ErrMissingEndpoint, nil, "Set the endpoint for service %s in the %s.", res.Service, config.EndpointsFile)
	}

	logger.Debug("building client", "service", res.Service, "endpoint", endpoint)
	c, err := d.Connect(ctx, client.Credentials{
		AccessKey:    args.AccessKey,
		SecretKey:    args.SecretKey,
		SessionToken: args.SessionToken,
	}, d.Options, res.Service, endpoint)
	if err != nil {
		return fail(ErrClientInit, err, "Failed to create %s client", res.Service)
	}

	module, ok := d.Registry.Module(res.Module)
	if !ok {
		logger.Debug("module not registered", "module", res.Module, "registered", d.Registry.Modules())
		return fail(ErrModuleLoad, nil, "Internal error. Module %s not found", res.Module)
	}

	factory, ok := module[res.Class]
	if !ok {
		return fail(ErrClassNotFound, nil, "Internal error. Class %s not found", res.Class)
	}
	ctrl, err := factory(c, args)
	if err != nil {
		return fail(ErrClassNotFound, err, "Internal error. Class %s not found", res.Class)
	}

	logger.Debug("invoking controller", "class", res.Class, "method", res.Method)
	if err := ctrl.Invoke(ctx, res.Method, d.Out); err != nil {
		if errors.Is(err, controller.ErrUnknownMethod) {
			return fail(ErrMethodInvocation, err, "Internal error. Action %s not supported by %s", res.Method, res.Class)
		}
		return &Error{Kind: ErrMethodInvocation, Cause: err}
	}
	logger.Debug("action completed")
	return nil
}
