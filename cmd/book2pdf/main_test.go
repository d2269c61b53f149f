package main

import (
	"bytes"
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// TestRun - Command dispatch
// ---------------------------------------------------------------------------

func TestRunNoArgs(t *testing.T) {
	env, _, stderr := testEnv(&fakeService{})

	if code := run(nil, env); code != ExitUsage {
		t.Errorf("exit code = %d, want %d", code, ExitUsage)
	}
	if !strings.Contains(stderr.String(), "Usage:") {
		t.Errorf("stderr = %q, want usage text", stderr.String())
	}
}

func TestRunUnknownCommand(t *testing.T) {
	env, _, stderr := testEnv(&fakeService{})

	if code := run([]string{"explode"}, env); code != ExitUsage {
		t.Errorf("exit code = %d, want %d", code, ExitUsage)
	}
	if !strings.Contains(stderr.String(), "Unknown command") {
		t.Errorf("stderr = %q", stderr.String())
	}
}

func TestRunVersion(t *testing.T) {
	env, stdout, _ := testEnv(&fakeService{})

	if code := run([]string{"version"}, env); code != ExitSuccess {
		t.Errorf("exit code = %d", code)
	}
	if !strings.Contains(stdout.String(), "book2pdf") {
		t.Errorf("stdout = %q", stdout.String())
	}
}

func TestRunHelp(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"bare help", []string{"help"}, "Commands:"},
		{"help download", []string{"help", "download"}, "download <url>"},
		{"help merge", []string{"help", "merge"}, "merge [flags]"},
		{"help version", []string{"help", "version"}, "version"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env, stdout, _ := testEnv(&fakeService{})

			if code := run(tt.args, env); code != ExitSuccess {
				t.Fatalf("exit code = %d", code)
			}
			if !strings.Contains(stdout.String(), tt.want) {
				t.Errorf("stdout = %q, want substring %q", stdout.String(), tt.want)
			}
		})
	}
}

func TestRunHelpUnknownTopic(t *testing.T) {
	env, _, stderr := testEnv(&fakeService{})

	if code := run([]string{"help", "nope"}, env); code != ExitSuccess {
		t.Errorf("exit code = %d", code)
	}
	if !bytes.Contains(stderr.Bytes(), []byte("Unknown command")) {
		t.Errorf("stderr = %q", stderr.String())
	}
}

func TestRunDispatchesDownload(t *testing.T) {
	svc := &fakeService{}
	env, _, _ := testEnv(svc)

	if code := run([]string{"download", "-q", "https://docs.example.com/"}, env); code != ExitSuccess {
		t.Fatalf("exit code = %d", code)
	}
	if svc.gotURL == "" {
		t.Error("download command did not reach the service")
	}
}
