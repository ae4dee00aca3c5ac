package main

import (
	"context"
	"strings"
	"testing"
)

func TestRun_Dispatch(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		args       []string
		wantCode   int
		wantStdout string
		wantStderr string
	}{
		{name: "no args", args: nil, wantCode: ExitUsage, wantStderr: "Usage: ssg"},
		{name: "unknown command", args: []string{"serve"}, wantCode: ExitUsage, wantStderr: "Unknown command: serve"},
		{name: "version", args: []string{"version"}, wantCode: ExitSuccess, wantStdout: "ssg dev"},
		{name: "--version", args: []string{"--version"}, wantCode: ExitSuccess, wantStdout: "ssg dev"},
		{name: "help", args: []string{"help"}, wantCode: ExitSuccess, wantStdout: "Commands:"},
		{name: "help build", args: []string{"help", "build"}, wantCode: ExitSuccess, wantStdout: "Usage: ssg build"},
		{name: "build --help", args: []string{"build", "--help"}, wantCode: ExitSuccess, wantStderr: "Usage: ssg build"},
		{name: "build bad flag", args: []string{"build", "--nope"}, wantCode: ExitUsage, wantStderr: "invalid usage"},
		{name: "build positional", args: []string{"build", "extra"}, wantCode: ExitUsage, wantStderr: "unexpected argument"},
		{name: "build workers out of range", args: []string{"build", "-w", "100"}, wantCode: ExitUsage, wantStderr: "invalid worker count"},
		{name: "completion bash", args: []string{"completion", "bash"}, wantCode: ExitSuccess, wantStdout: "complete -F"},
		{name: "completion unknown shell", args: []string{"completion", "tcsh"}, wantCode: ExitUsage, wantStderr: "unsupported shell"},
		{name: "inspect without file", args: []string{"inspect"}, wantCode: ExitUsage, wantStderr: "exactly one markdown file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env, stdout, stderr := testEnv(nil)
			code := run(context.Background(), tt.args, env)

			if code != tt.wantCode {
				t.Errorf("exit code = %d, want %d (stderr: %s)", code, tt.wantCode, stderr.String())
			}
			if tt.wantStdout != "" && !strings.Contains(stdout.String(), tt.wantStdout) {
				t.Errorf("stdout should contain %q, got:\n%s", tt.wantStdout, stdout.String())
			}
			if tt.wantStderr != "" && !strings.Contains(stderr.String(), tt.wantStderr) {
				t.Errorf("stderr should contain %q, got:\n%s", tt.wantStderr, stderr.String())
			}
		})
	}
}

func TestRun_FailedPageIsContentError(t *testing.T) {
	t.Parallel()

	root := setupSite(t, map[string]string{
		"content/index.md": "no heading here",
		"template.html":    testTemplate,
	})
	env, _, stderr := testEnv(nil)

	code := run(context.Background(), append([]string{"build"}, siteArgs(root)...), env)

	if code != ExitContent {
		t.Errorf("exit code = %d, want %d", code, ExitContent)
	}
	for _, want := range []string{"FAILED", "no title", "hint:", "pages failed to build"} {
		if !strings.Contains(stderr.String(), want) {
			t.Errorf("stderr should contain %q, got:\n%s", want, stderr.String())
		}
	}
}

func TestHasVerboseFlag(t *testing.T) {
	t.Parallel()

	tests := []struct {
		args []string
		want bool
	}{
		{nil, false},
		{[]string{"build"}, false},
		{[]string{"build", "-v"}, true},
		{[]string{"build", "--verbose"}, true},
		{[]string{"build", "--", "-v"}, false},
	}

	for _, tt := range tests {
		if got := hasVerboseFlag(tt.args); got != tt.want {
			t.Errorf("hasVerboseFlag(%v) = %v, want %v", tt.args, got, tt.want)
		}
	}
}
