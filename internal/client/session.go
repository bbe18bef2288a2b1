// internal/client/session.go
package client

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/aws/aws-sdk-go-v2/aws"
	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
)

// Credentials identify the caller. An empty AccessKey yields an
// anonymous session, used by the account actions.
type Credentials struct {
	AccessKey    string
	SecretKey    string
	SessionToken string
}

type Options struct {
	Region             string
	InsecureSkipVerify bool
	// Logger, when enabled at debug level, receives one record per
	// request sent and per response received.
	Logger *slog.Logger
}

// NewSession builds the aws.Config shared by every service client of a run.
// Shared config files and environment credentials are never consulted:
// the caller's keys are the only identity.
func NewSession(ctx context.Context, creds Credentials, opts Options) (aws.Config, error) {
	var provider aws.CredentialsProvider = aws.AnonymousCredentials{}
	if creds.AccessKey != "" && creds.SecretKey != "" {
		provider = credentials.NewStaticCredentialsProvider(creds.AccessKey, creds.SecretKey, creds.SessionToken)
	}

	httpClient := awshttp.NewBuildableClient().WithTransportOptions(func(tr *http.Transport) {
		if opts.InsecureSkipVerify {
			if tr.TLSClientConfig == nil {
				tr.TLSClientConfig = &tls.Config{}
			}
			tr.TLSClientConfig.InsecureSkipVerify = true
		}
	})

	var transport aws.HTTPClient = httpClient
	if opts.Logger != nil && opts.Logger.Enabled(ctx, slog.LevelDebug) {
		transport = &requestLogger{next: httpClient, logger: opts.Logger}
	}

	cfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(opts.Region),
		config.WithCredentialsProvider(provider),
		config.WithHTTPClient(transport),
		config.WithSharedConfigFiles([]string{}),
		config.WithSharedCredentialsFiles([]string{}),
	)
	if err != nil {
		return aws.Config{}, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return cfg, nil
}
