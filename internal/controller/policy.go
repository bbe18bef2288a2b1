package controller

import (
	"context"
	"errors"
	"io"

	"github.com/aws/aws-sdk-go-v2/service/iam"

	"s3-iam-cli/internal/cli"
	"s3-iam-cli/internal/client"
)

// Policy creates managed policies from a JSON document file.
type Policy struct {
	iam  *iam.Client
	args *cli.Args
}

// NewPolicy binds a Policy controller to an IAM client.
func NewPolicy(c *client.Client, args *cli.Args) (Controller, error) {
	if err := requireService(c, "Policy", client.ServiceIAM); err != nil {
		return nil, err
	}
	return &Policy{iam: c.IAM, args: args}, nil
}

func (p *Policy) Invoke(ctx context.Context, name string, out io.Writer) error {
	return invoke(ctx, "Policy", name, map[string]method{
		"create": p.create,
	}, out)
}

func (p *Policy) create(ctx context.Context, out io.Writer) error {
	if p.args.Name == "" {
		return errors.New("Policy name is required")
	}
	document, err := readDocument(p.args.File, "Policy document")
	if err != nil {
		return err
	}

	resp, err := p.iam.CreatePolicy(ctx, &iam.CreatePolicyInput{
		PolicyName:     &p.args.Name,
		PolicyDocument: &document,
		Path:           optional(p.args.Path),
		Description:    optional(p.args.Description),
	})
	if err != nil {
		return err
	}
	if resp.Policy == nil {
		return errEmptyResponse
	}
	printRecord(out,
		kvp("PolicyId", resp.Policy.PolicyId),
		kvp("PolicyName", resp.Policy.PolicyName),
		kvp("Arn", resp.Policy.Arn),
	)
	return nil
}
