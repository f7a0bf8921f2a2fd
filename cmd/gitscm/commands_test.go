package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/go-git/go-git/v5/plumbing"

	"github.com/goliatone/gitscm/internal/admin"
	"github.com/goliatone/gitscm/internal/plugin"
	"github.com/goliatone/gitscm/internal/remote"
	"github.com/goliatone/gitscm/internal/store"
	"github.com/goliatone/gitscm/pkg/di"
)

type testLogger struct{}

func (testLogger) Debug(string, ...any) {}
func (testLogger) Info(string, ...any)  {}
func (testLogger) Warn(string, ...any)  {}
func (testLogger) Error(string, ...any) {}

type mockLister struct {
	listFunc func(ctx context.Context, req remote.Request) ([]*plumbing.Reference, error)
	requests []remote.Request
}

func (m *mockLister) List(ctx context.Context, req remote.Request) ([]*plumbing.Reference, error) {
	m.requests = append(m.requests, req)
	if m.listFunc != nil {
		return m.listFunc(ctx, req)
	}
	return sampleRefs(), nil
}

type mockFetcher struct {
	page string
	err  error
}

func (m *mockFetcher) Fetch(context.Context, admin.Request) (string, error) {
	return m.page, m.err
}

func sampleRefs() []*plumbing.Reference {
	hash := plumbing.NewHash("a6d1e6a9b4fa8b5e7d6f0f8c1e7b2c9d0a1b2c3d")
	return []*plumbing.Reference{
		plumbing.NewSymbolicReference(plumbing.HEAD, "refs/heads/master"),
		plumbing.NewHashReference("refs/heads/master", hash),
		plumbing.NewHashReference("refs/tags/v1.0.0", hash),
	}
}

type cliFixture struct {
	lister  *mockLister
	fetcher *mockFetcher
	store   *store.MemoryStore
}

func newCLIFixture(t *testing.T) *cliFixture {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())
	t.Setenv("GITSCM_CONFIG", "")

	f := &cliFixture{
		lister:  &mockLister{},
		fetcher: &mockFetcher{page: `<a href="plugin/">plugin/</a><a href="plugin-api/">plugin-api/</a><a href="other/">other/</a>`},
		store: store.NewMemoryStore(store.Document{
			Nodes: map[string]store.Node{
				"service:scm:git:dig": {
					Name: "dig",
					Parameters: map[string]string{
						plugin.ParameterURL:  "https://scm.example.com/",
						plugin.ParameterUser: "junit",
					},
				},
			},
			Subscriptions: []store.Subscription{{
				ID:   1,
				Node: "service:scm:git:dig",
				Parameters: map[string]string{
					plugin.ParameterRepository: "plugin",
					plugin.ParameterPassword:   "secret",
				},
			}},
		}),
	}

	extraOptions = []di.Option{
		di.WithLogger(testLogger{}),
		di.WithLister(f.lister),
		di.WithIndexFetcher(f.fetcher),
		di.WithStore(f.store),
	}
	t.Cleanup(func() { extraOptions = nil })
	return f
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCommand()
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	err := executeContext(cmd)
	cleanupContainer()
	return out.String(), err
}

func exitCode(t *testing.T, err error) int {
	t.Helper()
	var cliErr *CLIError
	if !errors.As(err, &cliErr) {
		t.Fatalf("expected *CLIError, got %T: %v", err, err)
	}
	return cliErr.ExitCode()
}

func TestValidateCommand(t *testing.T) {
	f := newCLIFixture(t)

	out, err := runCLI(t, "validate", "--url", "https://scm.example.com", "--repository", "plugin")
	if err != nil {
		t.Fatalf("validate returned error: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 listing lines, got %d: %q", len(lines), out)
	}
	if !strings.HasSuffix(lines[0], "HEAD") {
		t.Errorf("HEAD should be listed first, got %q", lines[0])
	}

	if len(f.lister.requests) != 1 {
		t.Fatalf("expected one listing, got %d", len(f.lister.requests))
	}
	req := f.lister.requests[0]
	if req.URL != "https://scm.example.com/plugin" {
		t.Errorf("URL = %q", req.URL)
	}
	if req.Username != "" {
		t.Errorf("anonymous listing expected, got user %q", req.Username)
	}
}

func TestValidateCommand_FromSubscription(t *testing.T) {
	f := newCLIFixture(t)

	if _, err := runCLI(t, "validate", "--subscription", "1", "--repository", "plugin-api"); err != nil {
		t.Fatalf("validate returned error: %v", err)
	}

	req := f.lister.requests[0]
	if req.URL != "https://scm.example.com/plugin-api" {
		t.Errorf("flag should override stored repository, URL = %q", req.URL)
	}
	if req.Username != "junit" || req.Password != "secret" {
		t.Errorf("credentials not taken from store: %+v", req)
	}
}

func TestValidateCommand_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		list func(context.Context, remote.Request) ([]*plumbing.Reference, error)
		code int
	}{
		{
			name: "missing url",
			args: []string{"validate", "--repository", "plugin"},
			code: ExitUsageError,
		},
		{
			name: "unknown subscription",
			args: []string{"validate", "--subscription", "99"},
			code: ExitNotFoundError,
		},
		{
			name: "remote failure",
			args: []string{"validate", "--url", "https://scm.example.com/", "--repository", "plugin"},
			list: func(context.Context, remote.Request) ([]*plumbing.Reference, error) {
				return nil, errors.New("authentication required")
			},
			code: ExitValidationError,
		},
		{
			name: "invalid repository name",
			args: []string{"validate", "--url", "https://scm.example.com/", "--repository", "../etc"},
			code: ExitValidationError,
		},
		{
			name: "unknown flag",
			args: []string{"validate", "--nope"},
			code: ExitUsageError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newCLIFixture(t)
			f.lister.listFunc = tt.list

			_, err := runCLI(t, tt.args...)
			if err == nil {
				t.Fatal("expected error")
			}
			if got := exitCode(t, err); got != tt.code {
				t.Errorf("exit code = %d, want %d (%v)", got, tt.code, err)
			}
		})
	}
}

func TestStatusCommand(t *testing.T) {
	f := newCLIFixture(t)

	out, err := runCLI(t, "status", "--url", "https://scm.example.com/", "--index")
	if err != nil {
		t.Fatalf("status returned error: %v", err)
	}
	if strings.TrimSpace(out) != "up" {
		t.Errorf("output = %q, want up", out)
	}

	f.fetcher.err = errors.New("connection refused")
	_, err = runCLI(t, "status", "--url", "https://scm.example.com/", "--index")
	if err == nil {
		t.Fatal("expected admin failure")
	}
	if got := exitCode(t, err); got != ExitValidationError {
		t.Errorf("exit code = %d, want %d", got, ExitValidationError)
	}

	// Without --index the server is not probed
	if _, err := runCLI(t, "status", "--url", "https://scm.example.com/"); err != nil {
		t.Errorf("status without index should not probe: %v", err)
	}
}

func TestSubscriptionStatusCommand(t *testing.T) {
	newCLIFixture(t)

	out, err := runCLI(t, "subscription-status", "--subscription", "1")
	if err != nil {
		t.Fatalf("subscription-status returned error: %v", err)
	}

	var status plugin.SubscriptionStatus
	if err := json.Unmarshal([]byte(out), &status); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	if !status.Up {
		t.Error("expected subscription up")
	}
	if status.Data["head"] != "master" {
		t.Errorf("head = %v, want master", status.Data["head"])
	}
	if status.Data["latestTag"] != "v1.0.0" {
		t.Errorf("latestTag = %v, want v1.0.0", status.Data["latestTag"])
	}
}

func TestLinkCommand(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
		code int
	}{
		{name: "linked", args: []string{"link", "1"}, want: "subscription 1 linked"},
		{name: "create alias", args: []string{"create", "1"}, want: "subscription 1 linked"},
		{name: "unknown subscription", args: []string{"link", "42"}, code: ExitNotFoundError},
		{name: "not a number", args: []string{"link", "abc"}, code: ExitUsageError},
		{name: "zero", args: []string{"link", "0"}, code: ExitUsageError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			newCLIFixture(t)

			out, err := runCLI(t, tt.args...)
			if tt.code != 0 {
				if err == nil {
					t.Fatal("expected error")
				}
				if got := exitCode(t, err); got != tt.code {
					t.Errorf("exit code = %d, want %d", got, tt.code)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !strings.Contains(out, tt.want) {
				t.Errorf("output %q missing %q", out, tt.want)
			}
		})
	}
}

func TestSearchCommand(t *testing.T) {
	newCLIFixture(t)

	out, err := runCLI(t, "search", "service:scm:git:dig", "PLUG")
	if err != nil {
		t.Fatalf("search returned error: %v", err)
	}
	if got := strings.Fields(out); strings.Join(got, ",") != "plugin,plugin-api" {
		t.Errorf("results = %v, want [plugin plugin-api]", got)
	}

	_, err = runCLI(t, "search", "service:scm:git:missing", "plug")
	if err == nil {
		t.Fatal("expected error for unknown node")
	}
	if got := exitCode(t, err); got != ExitNotFoundError {
		t.Errorf("exit code = %d, want %d", got, ExitNotFoundError)
	}
}

func TestConfigCommand(t *testing.T) {
	f := newCLIFixture(t)

	if _, err := runCLI(t, "config", "set", plugin.ConfSSLVerify, "false"); err != nil {
		t.Fatalf("config set: %v", err)
	}
	out, err := runCLI(t, "config", "get", plugin.ConfSSLVerify)
	if err != nil {
		t.Fatalf("config get: %v", err)
	}
	if strings.TrimSpace(out) != "false" {
		t.Errorf("value = %q, want false", out)
	}

	// sslVerify off reaches the lister
	if _, err := runCLI(t, "validate", "--subscription", "1"); err != nil {
		t.Fatal(err)
	}
	if !f.lister.requests[0].InsecureSkipTLS {
		t.Error("expected TLS verification to be skipped")
	}

	if _, err := runCLI(t, "config", "unset", plugin.ConfSSLVerify); err != nil {
		t.Fatalf("config unset: %v", err)
	}
	_, err = runCLI(t, "config", "get", plugin.ConfSSLVerify)
	if got := exitCode(t, err); got != ExitNotFoundError {
		t.Errorf("exit code = %d, want %d", got, ExitNotFoundError)
	}
}

func TestVersionCommand(t *testing.T) {
	t.Setenv("GITSCM_CONFIG", "/does/not/exist.yaml")

	out, err := runCLI(t, "version")
	if err != nil {
		t.Fatalf("version should not need configuration: %v", err)
	}
	if !strings.HasPrefix(out, "gitscm ") {
		t.Errorf("output = %q", out)
	}
}

func TestConfigError(t *testing.T) {
	newCLIFixture(t)

	_, err := runCLI(t, "validate", "--config", "/does/not/exist.yaml", "--url", "https://scm.example.com/")
	if err == nil {
		t.Fatal("expected configuration error")
	}
	if got := exitCode(t, err); got != ExitConfigError {
		t.Errorf("exit code = %d, want %d", got, ExitConfigError)
	}
}
