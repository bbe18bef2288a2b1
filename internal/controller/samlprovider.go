package controller

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/service/iam"

	"s3-iam-cli/internal/cli"
	"s3-iam-cli/internal/client"
)

// SAMLProvider manages the SAML identity providers trusted by the account.
type SAMLProvider struct {
	iam  *iam.Client
	args *cli.Args
}

// NewSAMLProvider binds a SAMLProvider controller to an IAM client.
func NewSAMLProvider(c *client.Client, args *cli.Args) (Controller, error) {
	if err := requireService(c, "SAMLProvider", client.ServiceIAM); err != nil {
		return nil, err
	}
	return &SAMLProvider{iam: c.IAM, args: args}, nil
}

func (s *SAMLProvider) Invoke(ctx context.Context, name string, out io.Writer) error {
	return invoke(ctx, "SAMLProvider", name, map[string]method{
		"create": s.create,
		"delete": s.delete,
		"update": s.update,
		"list":   s.list,
	}, out)
}

func (s *SAMLProvider) create(ctx context.Context, out io.Writer) error {
	if s.args.Name == "" {
		return errors.New("SAML provider name is required")
	}
	metadata, err := readDocument(s.args.File, "SAML metadata document")
	if err != nil {
		return err
	}

	resp, err := s.iam.CreateSAMLProvider(ctx, &iam.CreateSAMLProviderInput{
		Name:                 &s.args.Name,
		SAMLMetadataDocument: &metadata,
	})
	if err != nil {
		return err
	}
	printRecord(out, kvp("SAMLProviderArn", resp.SAMLProviderArn))
	return nil
}

func (s *SAMLProvider) delete(ctx context.Context, out io.Writer) error {
	if s.args.ARN == "" {
		return errors.New("SAML provider ARN is required")
	}

	if _, err := s.iam.DeleteSAMLProvider(ctx, &iam.DeleteSAMLProviderInput{SAMLProviderArn: &s.args.ARN}); err != nil {
		return err
	}
	fmt.Fprintln(out, "SAML provider deleted.")
	return nil
}

func (s *SAMLProvider) update(ctx context.Context, out io.Writer) error {
	if s.args.ARN == "" {
		return errors.New("SAML provider ARN is required")
	}
	metadata, err := readDocument(s.args.File, "SAML metadata document")
	if err != nil {
		return err
	}

	_, err = s.iam.UpdateSAMLProvider(ctx, &iam.UpdateSAMLProviderInput{
		SAMLProviderArn:      &s.args.ARN,
		SAMLMetadataDocument: &metadata,
	})
	if err != nil {
		return err
	}
	fmt.Fprintln(out, "SAML provider Updated.")
	return nil
}

func (s *SAMLProvider) list(ctx context.Context, out io.Writer) error {
	resp, err := s.iam.ListSAMLProviders(ctx, &iam.ListSAMLProvidersInput{})
	if err != nil {
		return err
	}
	for _, p := range resp.SAMLProviderList {
		printRecord(out,
			kvp("ARN", p.Arn),
			kvTime("ValidUntil", p.ValidUntil),
			kvTime("CreateDate", p.CreateDate),
		)
	}
	return nil
}
