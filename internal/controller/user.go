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

// User manages IAM users.
type User struct {
	iam  *iam.Client
	args *cli.Args
}

// NewUser binds a User controller to an IAM client.
func NewUser(c *client.Client, args *cli.Args) (Controller, error) {
	if err := requireService(c, "User", client.ServiceIAM); err != nil {
		return nil, err
	}
	return &User{iam: c.IAM, args: args}, nil
}

func (u *User) Invoke(ctx context.Context, name string, out io.Writer) error {
	return invoke(ctx, "User", name, map[string]method{
		"create": u.create,
		"delete": u.delete,
		"update": u.update,
		"list":   u.list,
	}, out)
}

func (u *User) create(ctx context.Context, out io.Writer) error {
	if u.args.Name == "" {
		return errors.New("User name is required")
	}

	resp, err := u.iam.CreateUser(ctx, &iam.CreateUserInput{
		UserName: &u.args.Name,
		Path:     optional(u.args.Path),
	})
	if err != nil {
		return err
	}
	if resp.User == nil {
		return errEmptyResponse
	}
	printRecord(out,
		kvp("UserId", resp.User.UserId),
		kvp("ARN", resp.User.Arn),
		kvp("Path", resp.User.Path),
	)
	return nil
}

func (u *User) delete(ctx context.Context, out io.Writer) error {
	if u.args.Name == "" {
		return errors.New("User name is required")
	}

	if _, err := u.iam.DeleteUser(ctx, &iam.DeleteUserInput{UserName: &u.args.Name}); err != nil {
		return err
	}
	fmt.Fprintln(out, "User deleted.")
	return nil
}

func (u *User) update(ctx context.Context, out io.Writer) error {
	if u.args.Name == "" {
		return errors.New("User name is required")
	}
	if u.args.NewUser == "" && u.args.Path == "" {
		return errors.New("Either new user name or new path is required")
	}

	_, err := u.iam.UpdateUser(ctx, &iam.UpdateUserInput{
		UserName:    &u.args.Name,
		NewUserName: optional(u.args.NewUser),
		NewPath:     optional(u.args.Path),
	})
	if err != nil {
		return err
	}
	fmt.Fprintln(out, "User Updated.")
	return nil
}

func (u *User) list(ctx context.Context, out io.Writer) error {
	pager := iam.NewListUsersPaginator(u.iam, &iam.ListUsersInput{
		PathPrefix: optional(u.args.Path),
	})
	for pager.HasMorePages() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return err
		}
		for _, user := range page.Users {
			printRecord(out,
				kvp("UserId", user.UserId),
				kvp("UserName", user.UserName),
				kvp("ARN", user.Arn),
				kvp("Path", user.Path),
			)
		}
	}
	return nil
}
