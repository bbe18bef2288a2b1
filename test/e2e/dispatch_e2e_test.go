package e2e

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/joho/godotenv"

	"s3-iam-cli/cmd"
	"s3-iam-cli/internal/cli"
	"s3-iam-cli/internal/dispatch"
)

// backend is a fake IAM/STS endpoint counting the requests it receives.
type backend struct {
	*httptest.Server
	hits    int
	actions []string
}

func newBackend(t *testing.T) *backend {
	t.Helper()
	b := &backend{}
	b.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b.hits++
		r.ParseForm()
		action := r.PostForm.Get("Action")
		b.actions = append(b.actions, action)

		w.Header().Set("Content-Type", "text/xml")
		switch action {
		case "CreateUser":
			fmt.Fprintf(w, `<CreateUserResponse><CreateUserResult><User><Path>/</Path><UserName>%s</UserName><UserId>AIDAE2E</UserId><Arn>arn:aws:iam::123456789012:user/%s</Arn><CreateDate>2024-01-01T00:00:00Z</CreateDate></User></CreateUserResult></CreateUserResponse>`,
				r.PostForm.Get("UserName"), r.PostForm.Get("UserName"))
		case "CreateAccount":
			fmt.Fprintf(w, `<CreateAccountResponse><CreateAccountResult><Account><AccountId>123456789012</AccountId><CanonicalId>canon</CanonicalId><AccountName>%s</AccountName><RootUserName>root</RootUserName><AccessKeyId>AKIAROOT</AccessKeyId><RootSecretKeyId>ROOTSECRET</RootSecretKeyId><Status>Active</Status></Account></CreateAccountResult></CreateAccountResponse>`,
				r.PostForm.Get("AccountName"))
		case "GetFederationToken":
			io.WriteString(w, `<GetFederationTokenResponse><GetFederationTokenResult><Credentials><SessionToken>TOKEN</SessionToken><SecretAccessKey>FEDSECRET</SecretAccessKey><Expiration>2024-06-01T12:00:00Z</Expiration><AccessKeyId>ASIAFED</AccessKeyId></Credentials><FederatedUser><Arn>arn:aws:sts::123456789012:federated-user/carol</Arn><FederatedUserId>123456789012:carol</FederatedUserId></FederatedUser></GetFederationTokenResult></GetFederationTokenResponse>`)
		default:
			w.WriteHeader(http.StatusBadRequest)
			fmt.Fprintf(w, `<ErrorResponse><Error><Code>InvalidAction</Code><Message>unexpected action %s</Message></Error></ErrorResponse>`, action)
		}
	}))
	t.Cleanup(b.Close)
	return b
}

// setupConfig builds a config dir with the shipped action mapping and
// every service pointed at endpoint.
func setupConfig(t *testing.T, endpoint string) string {
	t.Helper()

	// Settings such as S3IAMCLI_DEBUG may come from a local .env file.
	envPath := filepath.Join("..", "..", ".env")
	if _, err := os.Stat(envPath); err == nil {
		if err := godotenv.Load(envPath); err != nil {
			t.Logf("Warning: could not load .env file from %s: %v", envPath, err)
		}
	}

	actions, err := os.ReadFile(filepath.Join("..", "..", "config", "controller_action.yaml"))
	if err != nil {
		t.Fatalf("Failed to read shipped action mapping: %v", err)
	}

	dir := t.TempDir()
	endpoints := fmt.Sprintf("iam: %s\nsts: %s\ns3: %s\n", endpoint, endpoint, endpoint)
	if err := os.WriteFile(filepath.Join(dir, "endpoints.yaml"), []byte(endpoints), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "controller_action.yaml"), actions, 0o644); err != nil {
		t.Fatal(err)
	}
	return dir
}

func dispatchRun(t *testing.T, dir string, argv ...string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	argv = append(argv, "--config_dir", dir)
	err := cmd.Dispatch(context.Background(), argv, &stdout, &stderr)
	return stdout.String(), err
}

func TestCreateUser(t *testing.T) {
	b := newBackend(t)
	dir := setupConfig(t, b.URL)

	out, err := dispatchRun(t, dir, "CreateUser", "-n", "dave", "--access_key", "AKID", "--secret_key", "SECRET")
	if err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	want := "UserId = AIDAE2E, ARN = arn:aws:iam::123456789012:user/dave, Path = /\n"
	if out != want {
		t.Errorf("output = %q, want %q", out, want)
	}
	if b.hits != 1 {
		t.Errorf("backend hits = %d, want 1", b.hits)
	}
}

func TestActionNotFoundMakesNoCalls(t *testing.T) {
	b := newBackend(t)
	dir := setupConfig(t, b.URL)

	_, err := dispatchRun(t, dir, "DeleteEverything", "--access_key", "AKID", "--secret_key", "SECRET")
	if !errors.Is(err, dispatch.ErrActionNotFound) {
		t.Fatalf("err = %v, want ErrActionNotFound", err)
	}
	if !strings.Contains(err.Error(), "Action not found") {
		t.Errorf("message = %q", err.Error())
	}
	if b.hits != 0 {
		t.Errorf("backend hits = %d, want 0", b.hits)
	}
}

func TestCredentialsRequired(t *testing.T) {
	b := newBackend(t)
	dir := setupConfig(t, b.URL)

	_, err := dispatchRun(t, dir, "ListUsers")
	if err == nil || err.Error() != "Provide access key" {
		t.Errorf("err = %v, want Provide access key", err)
	}

	_, err = dispatchRun(t, dir, "ListUsers", "--access_key", "AKID")
	if err == nil || err.Error() != "Provide secret key" {
		t.Errorf("err = %v, want Provide secret key", err)
	}

	if b.hits != 0 {
		t.Errorf("backend hits = %d, want 0", b.hits)
	}
}

func TestCreateAccountWithoutCredentials(t *testing.T) {
	b := newBackend(t)
	dir := setupConfig(t, b.URL)

	out, err := dispatchRun(t, dir, "CreateAccount", "-n", "acme", "-e", "ops@acme.test")
	if err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if !strings.HasPrefix(out, "AccountId = 123456789012, ") {
		t.Errorf("output = %q", out)
	}
	if len(b.actions) != 1 || b.actions[0] != "CreateAccount" {
		t.Errorf("backend actions = %v", b.actions)
	}
}

func TestGetFederationTokenUsesSTSModule(t *testing.T) {
	b := newBackend(t)
	dir := setupConfig(t, b.URL)

	out, err := dispatchRun(t, dir, "getfederationtoken", "-n", "carol", "-d", "3600",
		"--access_key", "AKID", "--secret_key", "SECRET")
	if err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if !strings.Contains(out, "FederatedUserId = 123456789012:carol") {
		t.Errorf("output = %q", out)
	}
}

func TestAPIErrorIsReported(t *testing.T) {
	b := newBackend(t)
	dir := setupConfig(t, b.URL)

	_, err := dispatchRun(t, dir, "DeleteUser", "-n", "erin", "--access_key", "AKID", "--secret_key", "SECRET")
	if !errors.Is(err, dispatch.ErrMethodInvocation) {
		t.Fatalf("err = %v, want ErrMethodInvocation", err)
	}
	want := "An error occurred (InvalidAction) when calling the DeleteUser operation: unexpected action DeleteUser"
	if err.Error() != want {
		t.Errorf("message = %q, want %q", err.Error(), want)
	}

	color.NoColor = true
	var report bytes.Buffer
	cmd.Report(&report, err)
	if report.String() != want+"\n" {
		t.Errorf("report = %q", report.String())
	}
}

func TestHelp(t *testing.T) {
	var stdout, stderr bytes.Buffer
	err := cmd.Dispatch(context.Background(), []string{"-h"}, &stdout, &stderr)
	if !errors.Is(err, cli.ErrHelp) {
		t.Fatalf("err = %v, want ErrHelp", err)
	}
	if !strings.Contains(stdout.String(), "CreateAccount -n <Account Name> -e <Email Id>") {
		t.Errorf("usage missing from output:\n%s", stdout.String())
	}
}

func TestMissingConfigDir(t *testing.T) {
	_, err := dispatchRun(t, filepath.Join(t.TempDir(), "absent"), "ListUsers")
	if err == nil || !strings.Contains(err.Error(), "cannot load config") {
		t.Errorf("err = %v", err)
	}
}
