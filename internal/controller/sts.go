package controller

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/aws/aws-sdk-go-v2/service/sts/types"

	"s3-iam-cli/internal/cli"
	"s3-iam-cli/internal/client"
)

// FederationToken issues temporary credentials for a federated user.
type FederationToken struct {
	sts  *sts.Client
	args *cli.Args
}

// NewFederationToken binds a FederationToken controller to an STS client.
func NewFederationToken(c *client.Client, args *cli.Args) (Controller, error) {
	if err := requireService(c, "FederationToken", client.ServiceSTS); err != nil {
		return nil, err
	}
	return &FederationToken{sts: c.STS, args: args}, nil
}

func (f *FederationToken) Invoke(ctx context.Context, name string, out io.Writer) error {
	return invoke(ctx, "FederationToken", name, map[string]method{
		"create": f.create,
	}, out)
}

func (f *FederationToken) create(ctx context.Context, out io.Writer) error {
	if f.args.Name == "" {
		return errors.New("Provide federated user name")
	}
	policy, err := optionalDocument(f.args.File)
	if err != nil {
		return err
	}

	resp, err := f.sts.GetFederationToken(ctx, &sts.GetFederationTokenInput{
		Name:            &f.args.Name,
		DurationSeconds: f.args.Duration,
		Policy:          policy,
	})
	if err != nil {
		return err
	}

	fields := []field{}
	if resp.FederatedUser != nil {
		fields = append(fields,
			kvp("FederatedUserId", resp.FederatedUser.FederatedUserId),
			kvp("Arn", resp.FederatedUser.Arn),
		)
	}
	fields = append(fields, credentialFields(resp.Credentials)...)
	printRecord(out, fields...)
	return nil
}

// AssumeRoleWithSAML exchanges a SAML assertion for role credentials.
// The call is unsigned; the assertion is the proof of identity.
type AssumeRoleWithSAML struct {
	sts  *sts.Client
	args *cli.Args
}

// NewAssumeRoleWithSAML binds an AssumeRoleWithSAML controller to an STS client.
func NewAssumeRoleWithSAML(c *client.Client, args *cli.Args) (Controller, error) {
	if err := requireService(c, "AssumeRoleWithSAML", client.ServiceSTS); err != nil {
		return nil, err
	}
	return &AssumeRoleWithSAML{sts: c.STS, args: args}, nil
}

func (a *AssumeRoleWithSAML) Invoke(ctx context.Context, name string, out io.Writer) error {
	return invoke(ctx, "AssumeRoleWithSAML", name, map[string]method{
		"assume": a.assume,
	}, out)
}

func (a *AssumeRoleWithSAML) assume(ctx context.Context, out io.Writer) error {
	if a.args.SAMLPrincipal == "" {
		return errors.New("Provide SAML principal ARN")
	}
	if a.args.SAMLRole == "" {
		return errors.New("Provide SAML role ARN")
	}
	assertion, err := readDocument(a.args.SAMLAssertion, "SAML assertion file")
	if err != nil {
		return err
	}
	policy, err := optionalDocument(a.args.File)
	if err != nil {
		return err
	}

	assertion = strings.TrimSpace(assertion)
	resp, err := a.sts.AssumeRoleWithSAML(ctx, &sts.AssumeRoleWithSAMLInput{
		PrincipalArn:    &a.args.SAMLPrincipal,
		RoleArn:         &a.args.SAMLRole,
		SAMLAssertion:   &assertion,
		Policy:          policy,
		DurationSeconds: a.args.Duration,
	})
	if err != nil {
		return err
	}

	fields := []field{}
	if resp.AssumedRoleUser != nil {
		fields = append(fields,
			kvp("AssumedRoleId", resp.AssumedRoleUser.AssumedRoleId),
			kvp("Arn", resp.AssumedRoleUser.Arn),
		)
	}
	fields = append(fields, credentialFields(resp.Credentials)...)
	printRecord(out, fields...)
	return nil
}

func credentialFields(c *types.Credentials) []field {
	if c == nil {
		return nil
	}
	return []field{
		kvp("AccessKeyId", c.AccessKeyId),
		kvp("SecretAccessKey", c.SecretAccessKey),
		kvp("SessionToken", c.SessionToken),
		kvTime("Expiration", c.Expiration),
	}
}
