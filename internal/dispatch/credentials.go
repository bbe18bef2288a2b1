package dispatch

import (
	"strings"

	"s3-iam-cli/internal/cli"
)

// unauthenticated lists the actions that may run without keys.
var unauthenticated = map[string]bool{
	"createaccount": true,
	"listaccounts":  true,
}

// RequiresCredentials reports whether action needs an access/secret key pair.
func RequiresCredentials(action string) bool {
	return !unauthenticated[strings.ToLower(action)]
}

// ValidateCredentials checks that both keys are present for actions that
// need them. The access key is checked first.
func ValidateCredentials(action string, args *cli.Args) error {
	if !RequiresCredentials(action) {
		return nil
	}
	if args.AccessKey == "" {
		return fail(ErrMissingAccessKey, nil, "Provide access key")
	}
	if args.SecretKey == "" {
		return fail(ErrMissingSecretKey, nil, "Provide secret key")
	}
	return nil
}
