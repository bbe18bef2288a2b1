package controller

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/service/iam"
	"github.com/aws/aws-sdk-go-v2/service/iam/types"

	"s3-iam-cli/internal/cli"
	"s3-iam-cli/internal/client"
)

// AccessKey manages access keys of the caller or of a named user.
type AccessKey struct {
	iam  *iam.Client
	args *cli.Args
}

// NewAccessKey binds an AccessKey controller to an IAM client.
func NewAccessKey(c *client.Client, args *cli.Args) (Controller, error) {
	if err := requireService(c, "AccessKey", client.ServiceIAM); err != nil {
		return nil, err
	}
	return &AccessKey{iam: c.IAM, args: args}, nil
}

func (a *AccessKey) Invoke(ctx context.Context, name string, out io.Writer) error {
	return invoke(ctx, "AccessKey", name, map[string]method{
		"create": a.create,
		"delete": a.delete,
		"update": a.update,
		"list":   a.list,
	}, out)
}

func (a *AccessKey) create(ctx context.Context, out io.Writer) error {
	resp, err := a.iam.CreateAccessKey(ctx, &iam.CreateAccessKeyInput{
		UserName: optional(a.args.Name),
	})
	if err != nil {
		return err
	}
	if resp.AccessKey == nil {
		return errEmptyResponse
	}
	printRecord(out,
		kvp("AccessKeyId", resp.AccessKey.AccessKeyId),
		kvp("SecretAccessKey", resp.AccessKey.SecretAccessKey),
		kv("Status", string(resp.AccessKey.Status)),
	)
	return nil
}

func (a *AccessKey) delete(ctx context.Context, out io.Writer) error {
	if a.args.AccessKeyUpdate == "" {
		return errors.New("Access Key id is required")
	}

	_, err := a.iam.DeleteAccessKey(ctx, &iam.DeleteAccessKeyInput{
		AccessKeyId: &a.args.AccessKeyUpdate,
		UserName:    optional(a.args.Name),
	})
	if err != nil {
		return err
	}
	fmt.Fprintln(out, "Access key deleted.")
	return nil
}

func (a *AccessKey) update(ctx context.Context, out io.Writer) error {
	if a.args.AccessKeyUpdate == "" {
		return errors.New("Access Key id is required")
	}
	status, err := parseStatus(a.args.Status)
	if err != nil {
		return err
	}

	_, err = a.iam.UpdateAccessKey(ctx, &iam.UpdateAccessKeyInput{
		AccessKeyId: &a.args.AccessKeyUpdate,
		Status:      status,
		UserName:    optional(a.args.Name),
	})
	if err != nil {
		return err
	}
	fmt.Fprintln(out, "Access key Updated.")
	return nil
}

func (a *AccessKey) list(ctx context.Context, out io.Writer) error {
	pager := iam.NewListAccessKeysPaginator(a.iam, &iam.ListAccessKeysInput{
		UserName: optional(a.args.Name),
	})
	for pager.HasMorePages() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return err
		}
		for _, key := range page.AccessKeyMetadata {
			printRecord(out,
				kvp("UserName", key.UserName),
				kvp("AccessKeyId", key.AccessKeyId),
				kv("Status", string(key.Status)),
			)
		}
	}
	return nil
}

// parseStatus accepts Active/Inactive in any case.
func parseStatus(s string) (types.StatusType, error) {
	if s == "" {
		return "", errors.New("Access Key status is required")
	}
	for _, v := range []types.StatusType{types.StatusTypeActive, types.StatusTypeInactive} {
		if strings.EqualFold(s, string(v)) {
			return v, nil
		}
	}
	return "", fmt.Errorf("invalid status %q (expected Active or Inactive)", s)
}
