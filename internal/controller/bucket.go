package controller

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/service/s3"

	"s3-iam-cli/internal/cli"
	"s3-iam-cli/internal/client"
)

// Bucket manages buckets; -n names the bucket.
type Bucket struct {
	s3   *s3.Client
	args *cli.Args
}

// NewBucket binds a Bucket controller to an S3 client.
func NewBucket(c *client.Client, args *cli.Args) (Controller, error) {
	if err := requireService(c, "Bucket", client.ServiceS3); err != nil {
		return nil, err
	}
	return &Bucket{s3: c.S3, args: args}, nil
}

func (b *Bucket) Invoke(ctx context.Context, name string, out io.Writer) error {
	return invoke(ctx, "Bucket", name, map[string]method{
		"create": b.create,
		"delete": b.delete,
		"list":   b.list,
	}, out)
}

func (b *Bucket) create(ctx context.Context, out io.Writer) error {
	if b.args.Name == "" {
		return errors.New("Bucket name is required")
	}

	if _, err := b.s3.CreateBucket(ctx, &s3.CreateBucketInput{Bucket: &b.args.Name}); err != nil {
		return fmt.Errorf("failed to create bucket %s: %w", b.args.Name, err)
	}
	fmt.Fprintf(out, "Bucket %s created.\n", b.args.Name)
	return nil
}

func (b *Bucket) delete(ctx context.Context, out io.Writer) error {
	if b.args.Name == "" {
		return errors.New("Bucket name is required")
	}

	if _, err := b.s3.DeleteBucket(ctx, &s3.DeleteBucketInput{Bucket: &b.args.Name}); err != nil {
		return fmt.Errorf("failed to delete bucket %s: %w", b.args.Name, err)
	}
	fmt.Fprintf(out, "Bucket %s deleted.\n", b.args.Name)
	return nil
}

func (b *Bucket) list(ctx context.Context, out io.Writer) error {
	resp, err := b.s3.ListBuckets(ctx, &s3.ListBucketsInput{})
	if err != nil {
		return fmt.Errorf("failed to list buckets: %w", err)
	}
	for _, bucket := range resp.Buckets {
		printRecord(out,
			kvp("Name", bucket.Name),
			kvTime("CreationDate", bucket.CreationDate),
		)
	}
	return nil
}
