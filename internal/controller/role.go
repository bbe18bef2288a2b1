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

// Role manages IAM roles.
type Role struct {
	iam  *iam.Client
	args *cli.Args
}

// NewRole binds a Role controller to an IAM client.
func NewRole(c *client.Client, args *cli.Args) (Controller, error) {
	if err := requireService(c, "Role", client.ServiceIAM); err != nil {
		return nil, err
	}
	return &Role{iam: c.IAM, args: args}, nil
}

func (r *Role) Invoke(ctx context.Context, name string, out io.Writer) error {
	return invoke(ctx, "Role", name, map[string]method{
		"create": r.create,
		"delete": r.delete,
		"list":   r.list,
	}, out)
}

func (r *Role) create(ctx context.Context, out io.Writer) error {
	if r.args.Name == "" {
		return errors.New("Role name is required")
	}
	document, err := readDocument(r.args.File, "Assume role policy document")
	if err != nil {
		return err
	}

	resp, err := r.iam.CreateRole(ctx, &iam.CreateRoleInput{
		RoleName:                 &r.args.Name,
		AssumeRolePolicyDocument: &document,
		Path:                     optional(r.args.Path),
	})
	if err != nil {
		return err
	}
	if resp.Role == nil {
		return errEmptyResponse
	}
	printRecord(out,
		kvp("RoleId", resp.Role.RoleId),
		kvp("RoleName", resp.Role.RoleName),
		kvp("ARN", resp.Role.Arn),
		kvp("Path", resp.Role.Path),
	)
	return nil
}

func (r *Role) delete(ctx context.Context, out io.Writer) error {
	if r.args.Name == "" {
		return errors.New("Role name is required")
	}

	if _, err := r.iam.DeleteRole(ctx, &iam.DeleteRoleInput{RoleName: &r.args.Name}); err != nil {
		return err
	}
	fmt.Fprintln(out, "Role deleted.")
	return nil
}

func (r *Role) list(ctx context.Context, out io.Writer) error {
	pager := iam.NewListRolesPaginator(r.iam, &iam.ListRolesInput{
		PathPrefix: optional(r.args.Path),
	})
	for pager.HasMorePages() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return err
		}
		for _, role := range page.Roles {
			printRecord(out,
				kvp("RoleId", role.RoleId),
				kvp("RoleName", role.RoleName),
				kvp("ARN", role.Arn),
				kvp("Path", role.Path),
			)
		}
	}
	return nil
}
