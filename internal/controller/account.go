package controller

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/smithy-go"

	"s3-iam-cli/internal/cli"
	"s3-iam-cli/internal/client"
)

const iamAPIVersion = "2010-05-08"

// Account creates and lists accounts. These actions are extensions of the
// IAM query API that the SDK does not model, so requests are built and
// signed here. Both may be called without credentials.
type Account struct {
	endpoint string
	cfg      *aws.Config
	args     *cli.Args
}

// NewAccount binds an Account controller to the IAM endpoint and session.
func NewAccount(c *client.Client, args *cli.Args) (Controller, error) {
	if err := requireService(c, "Account", client.ServiceIAM); err != nil {
		return nil, err
	}
	return &Account{endpoint: c.Endpoint, cfg: c.Config, args: args}, nil
}

func (a *Account) Invoke(ctx context.Context, name string, out io.Writer) error {
	return invoke(ctx, "Account", name, map[string]method{
		"create": a.create,
		"list":   a.list,
	}, out)
}

type accountRecord struct {
	AccountID       string `xml:"AccountId"`
	CanonicalID     string `xml:"CanonicalId"`
	AccountName     string `xml:"AccountName"`
	Email           string `xml:"Email"`
	RootUserName    string `xml:"RootUserName"`
	AccessKeyID     string `xml:"AccessKeyId"`
	RootSecretKeyID string `xml:"RootSecretKeyId"`
	Status          string `xml:"Status"`
}

type createAccountResponse struct {
	Account accountRecord `xml:"CreateAccountResult>Account"`
}

type listAccountsResponse struct {
	Accounts []accountRecord `xml:"ListAccountsResult>Accounts>member"`
}

func (a *Account) create(ctx context.Context, out io.Writer) error {
	if a.args.Name == "" {
		return errors.New("Account name is required")
	}
	if a.args.Email == "" {
		return errors.New("Email Id of the user is required to create an Account")
	}

	var resp createAccountResponse
	err := a.call(ctx, "CreateAccount", url.Values{
		"AccountName": {a.args.Name},
		"Email":       {a.args.Email},
	}, &resp)
	if err != nil {
		return err
	}
	acc := resp.Account
	printRecord(out,
		kv("AccountId", acc.AccountID),
		kv("CanonicalId", acc.CanonicalID),
		kv("RootUserName", acc.RootUserName),
		kv("AccessKeyId", acc.AccessKeyID),
		kv("SecretKey", acc.RootSecretKeyID),
	)
	return nil
}

func (a *Account) list(ctx context.Context, out io.Writer) error {
	var resp listAccountsResponse
	if err := a.call(ctx, "ListAccounts", url.Values{}, &resp); err != nil {
		return err
	}
	for _, acc := range resp.Accounts {
		printRecord(out,
			kv("AccountName", acc.AccountName),
			kv("AccountId", acc.AccountID),
			kv("CanonicalId", acc.CanonicalID),
			kv("Email", acc.Email),
		)
	}
	return nil
}

type errorResponse struct {
	Code    string `xml:"Error>Code"`
	Message string `xml:"Error>Message"`
}

// call POSTs one IAM query action and decodes the XML reply into result.
// Failures come back as a smithy.OperationError wrapping an APIError so
// they render the same way as SDK errors.
func (a *Account) call(ctx context.Context, action string, params url.Values, result any) error {
	params.Set("Action", action)
	params.Set("Version", iamAPIVersion)
	body := params.Encode()

	opErr := func(err error) error {
		return &smithy.OperationError{ServiceID: "IAM", OperationName: action, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.endpoint, strings.NewReader(body))
	if err != nil {
		return opErr(err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded; charset=utf-8")

	if err := a.sign(ctx, req, body); err != nil {
		return opErr(err)
	}

	var httpClient aws.HTTPClient = http.DefaultClient
	if a.cfg != nil && a.cfg.HTTPClient != nil {
		httpClient = a.cfg.HTTPClient
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return opErr(err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return opErr(fmt.Errorf("failed to read response: %w", err))
	}

	if resp.StatusCode >= http.StatusMultipleChoices {
		var e errorResponse
		if xml.Unmarshal(payload, &e) != nil || e.Code == "" {
			e.Code = resp.Status
			e.Message = strings.TrimSpace(string(payload))
		}
		return opErr(&smithy.GenericAPIError{Code: e.Code, Message: e.Message})
	}

	if err := xml.Unmarshal(payload, result); err != nil {
		return opErr(fmt.Errorf("failed to decode response: %w", err))
	}
	return nil
}

// sign adds a SigV4 signature unless the session is anonymous.
func (a *Account) sign(ctx context.Context, req *http.Request, body string) error {
	if a.cfg == nil || a.cfg.Credentials == nil || aws.IsCredentialsProvider(a.cfg.Credentials, aws.AnonymousCredentials{}) {
		return nil
	}
	creds, err := a.cfg.Credentials.Retrieve(ctx)
	if err != nil {
		return fmt.Errorf("failed to retrieve credentials: %w", err)
	}

	sum := sha256.Sum256([]byte(body))
	return v4.NewSigner().SignHTTP(ctx, creds, req, hex.EncodeToString(sum[:]), "iam", a.cfg.Region, time.Now())
}
