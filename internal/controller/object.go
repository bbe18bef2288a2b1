package controller

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/aws/aws-sdk-go-v2/service/s3"

	"s3-iam-cli/internal/cli"
	"s3-iam-cli/internal/client"
)

// Object moves single objects in and out of a bucket. -n is the bucket,
// -p the object key and -f the local file.
type Object struct {
	s3   *s3.Client
	args *cli.Args
}

// NewObject binds an Object controller to an S3 client.
func NewObject(c *client.Client, args *cli.Args) (Controller, error) {
	if err := requireService(c, "Object", client.ServiceS3); err != nil {
		return nil, err
	}
	return &Object{s3: c.S3, args: args}, nil
}

func (o *Object) Invoke(ctx context.Context, name string, out io.Writer) error {
	return invoke(ctx, "Object", name, map[string]method{
		"put":    o.put,
		"get":    o.get,
		"delete": o.delete,
	}, out)
}

func (o *Object) location() (bucket, key string, err error) {
	if o.args.Name == "" {
		return "", "", errors.New("Bucket name is required")
	}
	if o.args.Path == "" {
		return "", "", errors.New("Object key is required")
	}
	return o.args.Name, o.args.Path, nil
}

func (o *Object) put(ctx context.Context, out io.Writer) error {
	bucket, key, err := o.location()
	if err != nil {
		return err
	}
	if o.args.File == "" {
		return errors.New("File to upload is required")
	}

	file, err := os.Open(o.args.File)
	if err != nil {
		return fmt.Errorf("failed to open file %s: %w", o.args.File, err)
	}
	defer file.Close()

	_, err = o.s3.PutObject(ctx, &s3.PutObjectInput{
		Bucket: &bucket,
		Key:    &key,
		Body:   file,
	})
	if err != nil {
		return fmt.Errorf("failed to put object %s to bucket %s: %w", key, bucket, err)
	}
	fmt.Fprintf(out, "Uploaded %s to bucket %s.\n", key, bucket)
	return nil
}

// get writes the object to -f when given, otherwise to out.
func (o *Object) get(ctx context.Context, out io.Writer) error {
	bucket, key, err := o.location()
	if err != nil {
		return err
	}

	robj, err := o.s3.GetObject(ctx, &s3.GetObjectInput{
		Bucket: &bucket,
		Key:    &key,
	})
	if err != nil {
		return fmt.Errorf("failed to get object %s from bucket %s: %w", key, bucket, err)
	}
	defer robj.Body.Close()

	if o.args.File == "" {
		if _, err := io.Copy(out, robj.Body); err != nil {
			return fmt.Errorf("failed to read object %s from bucket %s: %w", key, bucket, err)
		}
		return nil
	}

	file, err := os.Create(o.args.File)
	if err != nil {
		return fmt.Errorf("failed to create file %s: %w", o.args.File, err)
	}
	n, err := io.Copy(file, robj.Body)
	if cerr := file.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("failed to write object %s to %s: %w", key, o.args.File, err)
	}
	fmt.Fprintf(out, "Downloaded %s from bucket %s to %s (%d bytes).\n", key, bucket, o.args.File, n)
	return nil
}

func (o *Object) delete(ctx context.Context, out io.Writer) error {
	bucket, key, err := o.location()
	if err != nil {
		return err
	}

	_, err = o.s3.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: &bucket,
		Key:    &key,
	})
	if err != nil {
		return fmt.Errorf("failed to delete object %s from bucket %s: %w", key, bucket, err)
	}
	fmt.Fprintf(out, "Deleted %s from bucket %s.\n", key, bucket)
	return nil
}
