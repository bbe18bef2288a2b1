package controller

import (
	"context"
	"errors"
	"io"

	"github.com/aws/aws-sdk-go-v2/service/iam"

	"s3-iam-cli/internal/cli"
	"s3-iam-cli/internal/client"
)

// Group manages IAM groups.
type Group struct {
	iam  *iam.Client
	args *cli.Args
}

// NewGroup binds a Group controller to an IAM client.
func NewGroup(c *client.Client, args *cli.Args) (Controller, error) {
	if err := requireService(c, "Group", client.ServiceIAM); err != nil {
		return nil, err
	}
	return &Group{iam: c.IAM, args: args}, nil
}

func (g *Group) Invoke(ctx context.Context, name string, out io.Writer) error {
	return invoke(ctx, "Group", name, map[string]method{
		"create": g.create,
	}, out)
}

func (g *Group) create(ctx context.Context, out io.Writer) error {
	if g.args.Name == "" {
		return errors.New("Group name is required")
	}

	resp, err := g.iam.CreateGroup(ctx, &iam.CreateGroupInput{
		GroupName: &g.args.Name,
		Path:      optional(g.args.Path),
	})
	if err != nil {
		return err
	}
	if resp.Group == nil {
		return errEmptyResponse
	}
	printRecord(out,
		kvp("GroupId", resp.Group.GroupId),
		kvp("GroupName", resp.Group.GroupName),
		kvp("Arn", resp.Group.Arn),
		kvp("Path", resp.Group.Path),
	)
	return nil
}
