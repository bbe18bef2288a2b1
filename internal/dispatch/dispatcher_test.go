package dispatch

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/aws/smithy-go"

	"s3-iam-cli/internal/cli"
	"s3-iam-cli/internal/client"
	"s3-iam-cli/internal/config"
	"s3-iam-cli/internal/controller"
)

// fakeController records the methods it was asked to run.
type fakeController struct {
	calls *[]string
	err   error
}

func (f *fakeController) Invoke(_ context.Context, method string, out io.Writer) error {
	if method == "missing" {
		return fmt.Errorf("%w %q", controller.ErrUnknownMethod, method)
	}
	*f.calls = append(*f.calls, method)
	fmt.Fprintf(out, "ran %s\n", method)
	return f.err
}

type harness struct {
	dispatcher *Dispatcher
	out        *bytes.Buffer
	connects   int
	service    string
	endpoint   string
	calls      []string
	loaded     []string
}

func newHarness(actions config.ActionMapping) *harness {
	h := &harness{out: &bytes.Buffer{}}

	registry := controller.NewRegistry()
	factory := func(module string, err error) controller.Factory {
		return func(*client.Client, *cli.Args) (controller.Controller, error) {
			h.loaded = append(h.loaded, module)
			return &fakeController{calls: &h.calls, err: err}, nil
		}
	}
	registry.Register("user", "User", factory("user", nil))
	registry.Register("custom_mod", "MyClass", factory("custom_mod", nil))
	registry.Register("myclass", "MyClass", factory("myclass", nil))
	registry.Register("account", "Account", factory("account", nil))
	registry.Register("broken", "Broken", func(*client.Client, *cli.Args) (controller.Controller, error) {
		return nil, errors.New("no iam client")
	})
	registry.Register("failing", "Failing", factory("failing", &smithy.OperationError{
		ServiceID:     "IAM",
		OperationName: "CreateUser",
		Err:           &smithy.GenericAPIError{Code: "EntityAlreadyExists", Message: "User alice already exists."},
	}))

	h.dispatcher = &Dispatcher{
		Actions: actions,
		Endpoints: config.EndpointMapping{
			"iam": {Data: "http://iam.local:9080"},
			"sts": {Data: "http://sts.local:9080"},
		},
		Registry: registry,
		Connect: func(_ context.Context, _ client.Credentials, _ client.Options, service, endpoint string) (*client.Client, error) {
			h.connects++
			h.service = service
			h.endpoint = endpoint
			return &client.Client{Service: service, Endpoint: endpoint}, nil
		},
		Out: h.out,
	}
	return h
}

var testActions = config.ActionMapping{
	"createuser":     {Service: "iam", Controller: "User", Action: "create"},
	"createaccount":  {Service: "iam", Controller: "Account", Action: "create"},
	"listaccounts":   {Service: "iam", Controller: "Account", Action: "list"},
	"custom":         {Service: "iam", Controller: "MyClass", Module: "custom_mod", Action: "run"},
	"noservice":      {Controller: "User", Action: "create"},
	"nomethod":       {Service: "iam", Controller: "User"},
	"nocontroller":   {Service: "iam", Action: "create"},
	"s3action":       {Service: "s3", Controller: "User", Action: "create"},
	"ghostmodule":    {Service: "iam", Controller: "Ghost", Action: "create"},
	"ghostclass":     {Service: "iam", Controller: "Ghost", Module: "user", Action: "create"},
	"brokenclass":    {Service: "iam", Controller: "Broken", Action: "create"},
	"unknownmethod":  {Service: "iam", Controller: "User", Action: "missing"},
	"failingaction":  {Service: "iam", Controller: "Failing", Action: "create"},
	"federatedtoken": {Service: "sts", Controller: "User", Action: "create"},
}

func withKeys(action string) *cli.Args {
	return &cli.Args{Action: action, AccessKey: "AKID", SecretKey: "SECRET"}
}

func TestRunSuccess(t *testing.T) {
	h := newHarness(testActions)
	if err := h.dispatcher.Run(context.Background(), withKeys("CreateUser")); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if h.connects != 1 || h.service != "iam" || h.endpoint != "http://iam.local:9080" {
		t.Errorf("unexpected client: connects=%d service=%s endpoint=%s", h.connects, h.service, h.endpoint)
	}
	if len(h.calls) != 1 || h.calls[0] != "create" {
		t.Errorf("calls = %v, want [create]", h.calls)
	}
	if h.out.String() != "ran create\n" {
		t.Errorf("output = %q", h.out.String())
	}
}

func TestRunFailures(t *testing.T) {
	tests := []struct {
		name        string
		args        *cli.Args
		kind        error
		message     string
		wantConnect bool
	}{
		{
			name:    "unknown action",
			args:    withKeys("DeleteUniverse"),
			kind:    ErrActionNotFound,
			message: "Action not found: DeleteUniverse",
		},
		{
			name:    "entry without controller",
			args:    withKeys("nocontroller"),
			kind:    ErrActionNotFound,
			message: "Action not found",
		},
		{
			name:    "missing access key",
			args:    &cli.Args{Action: "CreateUser", SecretKey: "SECRET"},
			kind:    ErrMissingAccessKey,
			message: "Provide access key",
		},
		{
			name:    "missing both keys reports access key",
			args:    &cli.Args{Action: "CreateUser"},
			kind:    ErrMissingAccessKey,
			message: "Provide access key",
		},
		{
			name:    "missing secret key",
			args:    &cli.Args{Action: "CreateUser", AccessKey: "AKID"},
			kind:    ErrMissingSecretKey,
			message: "Provide secret key",
		},
		{
			name:    "entry without service",
			args:    withKeys("noservice"),
			kind:    ErrMissingService,
			message: "Set the service(iam/s3/sts) for the action in the controller_action.yaml.",
		},
		{
			name:    "entry without method",
			args:    withKeys("nomethod"),
			kind:    ErrMissingMethod,
			message: "Set the action for nomethod",
		},
		{
			name:    "service without endpoint",
			args:    withKeys("s3action"),
			kind:    ErrMissingEndpoint,
			message: "Set the endpoint for service s3",
		},
		{
			name:        "module not registered",
			args:        withKeys("ghostmodule"),
			kind:        ErrModuleLoad,
			message:     "Internal error. Module ghost not found",
			wantConnect: true,
		},
		{
			name:        "class not in module",
			args:        withKeys("ghostclass"),
			kind:        ErrClassNotFound,
			message:     "Internal error. Class Ghost not found",
			wantConnect: true,
		},
		{
			name:        "construction fails",
			args:        withKeys("brokenclass"),
			kind:        ErrClassNotFound,
			message:     "Internal error. Class Broken not found: no iam client",
			wantConnect: true,
		},
		{
			name:        "method not implemented",
			args:        withKeys("unknownmethod"),
			kind:        ErrMethodInvocation,
			message:     "Internal error. Action missing not supported by User",
			wantConnect: true,
		},
		{
			name:        "api error",
			args:        withKeys("failingaction"),
			kind:        ErrMethodInvocation,
			message:     "An error occurred (EntityAlreadyExists) when calling the CreateUser operation: User alice already exists.",
			wantConnect: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(testActions)
			err := h.dispatcher.Run(context.Background(), tt.args)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !errors.Is(err, tt.kind) {
				t.Errorf("error %v is not %v", err, tt.kind)
			}
			var dErr *Error
			if !errors.As(err, &dErr) {
				t.Errorf("error %T is not *dispatch.Error", err)
			}
			if !strings.Contains(err.Error(), tt.message) {
				t.Errorf("error %q does not contain %q", err, tt.message)
			}
			if connected := h.connects > 0; connected != tt.wantConnect {
				t.Errorf("client built = %v, want %v", connected, tt.wantConnect)
			}
		})
	}
}

func TestRunUnauthenticatedActions(t *testing.T) {
	for _, action := range []string{"CreateAccount", "listaccounts"} {
		t.Run(action, func(t *testing.T) {
			h := newHarness(testActions)
			if err := h.dispatcher.Run(context.Background(), &cli.Args{Action: action}); err != nil {
				t.Fatalf("Run: %v", err)
			}
			if h.connects != 1 {
				t.Errorf("connects = %d, want 1", h.connects)
			}
		})
	}
}

func TestRunModuleResolution(t *testing.T) {
	h := newHarness(testActions)
	if err := h.dispatcher.Run(context.Background(), withKeys("custom")); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(h.loaded) != 1 || h.loaded[0] != "custom_mod" {
		t.Errorf("loaded modules = %v, want [custom_mod]", h.loaded)
	}

	h = newHarness(testActions)
	if err := h.dispatcher.Run(context.Background(), withKeys("createuser")); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(h.loaded) != 1 || h.loaded[0] != "user" {
		t.Errorf("loaded modules = %v, want [user]", h.loaded)
	}
}

func TestRunClientInitFailure(t *testing.T) {
	h := newHarness(testActions)
	h.dispatcher.Connect = func(context.Context, client.Credentials, client.Options, string, string) (*client.Client, error) {
		return nil, errors.New("bad region")
	}
	err := h.dispatcher.Run(context.Background(), withKeys("createuser"))
	if !errors.Is(err, ErrClientInit) {
		t.Fatalf("err = %v, want ErrClientInit", err)
	}
	if !strings.Contains(err.Error(), "bad region") {
		t.Errorf("error %q does not carry cause", err)
	}
}

func TestRunModuleMissLogsRegisteredModules(t *testing.T) {
	var logs bytes.Buffer
	h := newHarness(testActions)
	h.dispatcher.Logger = slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))

	err := h.dispatcher.Run(context.Background(), withKeys("ghostmodule"))
	if !errors.Is(err, ErrModuleLoad) {
		t.Fatalf("err = %v, want ErrModuleLoad", err)
	}
	out := logs.String()
	for _, want := range []string{"module not registered", "module=ghost", "custom_mod", "failing"} {
		if !strings.Contains(out, want) {
			t.Errorf("log missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "SECRET") {
		t.Errorf("secret key leaked into log:\n%s", out)
	}
}
