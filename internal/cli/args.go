// internal/cli/args.go
package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/pflag"
)

// ErrHelp is returned by Parse when -h/--help was given. Usage has
// already been written by then.
var ErrHelp = pflag.ErrHelp

// Args holds everything the user passed on the command line. Controllers
// read whichever fields they need; empty strings mean "not given".
type Args struct {
	Action string

	Name            string
	Email           string
	Path            string
	File            string
	Duration        *int32
	AccessKeyUpdate string
	Status          string
	AccessKey       string
	SecretKey       string
	SessionToken    string
	ARN             string
	Description     string
	SAMLPrincipal   string
	SAMLRole        string
	SAMLAssertion   string
	NewUser         string
}

// NewFlagSet builds the flag set. The returned Args is filled in when the
// set is parsed; run settings (region, config_dir, verify_ssl, debug) stay
// on the flag set.
func NewFlagSet(name string, output io.Writer) (*pflag.FlagSet, *Args) {
	args := &Args{}
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SetOutput(output)
	fs.SortFlags = false

	fs.StringVarP(&args.Name, "name", "n", "", "Name.")
	fs.StringVarP(&args.Email, "email", "e", "", "Email id.")
	fs.StringVarP(&args.Path, "path", "p", "", "Path or Path Prefix.")
	fs.StringVarP(&args.File, "file", "f", "", "File Path.")
	fs.Int32P("duration", "d", 0, "Access Key Duration.")
	fs.StringVarP(&args.AccessKeyUpdate, "access_key_update", "k", "", "Access Key to be updated or deleted.")
	fs.StringVarP(&args.Status, "status", "s", "", "Active/Inactive")
	fs.StringVar(&args.AccessKey, "access_key", "", "Access Key Id.")
	fs.StringVar(&args.SecretKey, "secret_key", "", "Secret Key.")
	fs.StringVar(&args.SessionToken, "session_token", "", "Session Token.")
	fs.StringVar(&args.ARN, "arn", "", "ARN.")
	fs.StringVar(&args.Description, "description", "", "Description of the entity.")
	fs.StringVar(&args.SAMLPrincipal, "saml_principal_arn", "", "SAML Principal ARN.")
	fs.StringVar(&args.SAMLRole, "saml_role_arn", "", "SAML Role ARN.")
	fs.StringVar(&args.SAMLAssertion, "saml_assertion", "", "File containing SAML assertion.")
	fs.StringVar(&args.NewUser, "new_user", "", "New user name.")

	fs.String("region", "", "Signing region.")
	fs.String("config_dir", "", "Directory holding endpoints.yaml and controller_action.yaml.")
	fs.Bool("verify_ssl", false, "Verify TLS certificates of the endpoints.")
	fs.Bool("debug", false, "Enable debug logging.")

	fs.Usage = func() {
		fmt.Fprintf(output, "usage: %s <action> [flags]\n%s\nflags:\n", name, Usage())
		fs.PrintDefaults()
	}
	return fs, args
}

// finish reads the positional action and the optional integer flag after
// fs has been parsed.
func finish(fs *pflag.FlagSet, args *Args) error {
	positional := fs.Args()
	switch {
	case len(positional) == 0:
		return errors.New("the following arguments are required: action")
	case len(positional) > 1:
		return fmt.Errorf("unrecognized arguments: %s", strings.Join(positional[1:], " "))
	}
	args.Action = positional[0]

	if fs.Changed("duration") {
		d, err := fs.GetInt32("duration")
		if err != nil {
			return err
		}
		args.Duration = &d
	}
	return nil
}

// Parse parses argv (without the program name) into Args. The flag set
// is returned as well so run settings can be read from it.
func Parse(argv []string, output io.Writer) (*Args, *pflag.FlagSet, error) {
	fs, args := NewFlagSet("s3iamcli", output)
	if err := fs.Parse(argv); err != nil {
		return nil, nil, err
	}
	if err := finish(fs, args); err != nil {
		return nil, nil, err
	}
	return args, fs, nil
}
