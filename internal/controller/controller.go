// Package controller holds the action implementations the dispatcher can
// reach. Controllers are grouped the same way controller_action.yaml
// refers to them: a module name, then a class name inside the module.
package controller

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"

	"s3-iam-cli/internal/cli"
	"s3-iam-cli/internal/client"
)

// ErrUnknownMethod is returned by Invoke when the controller has no
// method of the requested name.
var ErrUnknownMethod = errors.New("unknown method")

// Controller runs one of its no-argument methods by name, writing the
// result records to out.
type Controller interface {
	Invoke(ctx context.Context, method string, out io.Writer) error
}

// Factory constructs a controller bound to a client and the parsed
// command line.
type Factory func(c *client.Client, args *cli.Args) (Controller, error)

// Module is the set of classes registered under one module name.
type Module map[string]Factory

// Registry resolves module and class names to factories.
type Registry struct {
	modules map[string]Module
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{modules: make(map[string]Module)}
}

// Register adds class to module, replacing any previous factory.
func (r *Registry) Register(module, class string, factory Factory) {
	m, ok := r.modules[module]
	if !ok {
		m = make(Module)
		r.modules[module] = m
	}
	m[class] = factory
}

// Module returns the classes registered under name.
func (r *Registry) Module(name string) (Module, bool) {
	m, ok := r.modules[name]
	return m, ok
}

// Modules lists registered module names in sorted order.
func (r *Registry) Modules() []string {
	names := make([]string, 0, len(r.modules))
	for name := range r.modules {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Default returns a registry holding every built-in controller.
func Default() *Registry {
	r := NewRegistry()
	r.Register("account", "Account", NewAccount)
	r.Register("accesskey", "AccessKey", NewAccessKey)
	r.Register("group", "Group", NewGroup)
	r.Register("policy", "Policy", NewPolicy)
	r.Register("role", "Role", NewRole)
	r.Register("samlprovider", "SAMLProvider", NewSAMLProvider)
	r.Register("user", "User", NewUser)
	r.Register("sts", "FederationToken", NewFederationToken)
	r.Register("sts", "AssumeRoleWithSAML", NewAssumeRoleWithSAML)
	r.Register("bucket", "Bucket", NewBucket)
	r.Register("object", "Object", NewObject)
	return r
}

type method func(ctx context.Context, out io.Writer) error

// invoke looks name up in methods and runs it.
func invoke(ctx context.Context, class, name string, methods map[string]method, out io.Writer) error {
	m, ok := methods[name]
	if !ok {
		return fmt.Errorf("%w %q on %s", ErrUnknownMethod, name, class)
	}
	return m(ctx, out)
}

// requireService fails construction when the client was built for a
// different service than the controller talks to.
func requireService(c *client.Client, class, service string) error {
	if c == nil {
		return fmt.Errorf("%s needs a %s client, got none", class, service)
	}
	if c.Service != service {
		return fmt.Errorf("%s needs a %s client, got %s", class, service, c.Service)
	}
	return nil
}
