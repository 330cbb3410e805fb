package executor

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	apperrors "github.com/genguard/genguard/internal/errors"
)

func writeScript(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write script: %v", err)
	}
	return path
}

func requireInterpreter(t *testing.T, name string) string {
	t.Helper()
	path, err := exec.LookPath(name)
	if err != nil {
		t.Skipf("%s not available", name)
	}
	return path
}

func TestExecuteRejectsUnsupportedInterpreter(t *testing.T) {
	script := writeScript(t, "script.py", "print('hi')\n")
	runner := NewRunner()

	tests := []struct {
		name    string
		command string
	}{
		{"shell", "bash " + script},
		{"removal tool", "rm -rf " + script},
		{"ruby", "ruby " + script},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runner.Execute(context.Background(), script, tt.command)
			if err == nil {
				t.Fatal("Expected error for unsupported interpreter")
			}

			var unsupported *apperrors.UnsupportedEnvironmentError
			if !errors.As(err, &unsupported) {
				t.Errorf("Expected UnsupportedEnvironmentError, got %T: %v", err, err)
			}
		})
	}
}

func TestExecuteRejectsMissingFile(t *testing.T) {
	runner := NewRunner()

	_, err := runner.Execute(context.Background(), "/nonexistent/script.py", "python /nonexistent/script.py")
	if err == nil {
		t.Fatal("Expected error for missing file")
	}

	var notFound *apperrors.NotFoundError
	if !errors.As(err, &notFound) {
		t.Errorf("Expected NotFoundError, got %T: %v", err, err)
	}
}

func TestExecuteRejectsMalformedCommand(t *testing.T) {
	script := writeScript(t, "script.py", "print('hi')\n")
	runner := NewRunner()

	_, err := runner.Execute(context.Background(), script, `python "unterminated`)
	if err == nil {
		t.Fatal("Expected error for malformed command")
	}
}

func TestExecuteTokenizesQuotedArguments(t *testing.T) {
	requireInterpreter(t, "python3")
	script := writeScript(t, "args.py", "import sys\nprint(sys.argv[1])\n")

	runner := NewRunner()
	result, err := runner.Execute(context.Background(), script, `python3 `+script+` "two words"`)
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	if strings.TrimSpace(result.Stdout) != "two words" {
		t.Errorf("Quoted argument not preserved: %q", result.Stdout)
	}
}

func TestExecuteCapturesOutput(t *testing.T) {
	requireInterpreter(t, "python3")
	script := writeScript(t, "out.py", "import sys\nprint('to stdout')\nprint('to stderr', file=sys.stderr)\n")

	runner := NewRunner()
	result, err := runner.Execute(context.Background(), script, "python3 "+script)
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	if !strings.Contains(result.Stdout, "to stdout") {
		t.Errorf("Missing stdout: %q", result.Stdout)
	}
	if !strings.Contains(result.Stderr, "to stderr") {
		t.Errorf("Missing stderr: %q", result.Stderr)
	}
	if result.ExitCode != 0 {
		t.Errorf("Expected exit code 0, got %d", result.ExitCode)
	}
}

func TestExecuteNonZeroExit(t *testing.T) {
	requireInterpreter(t, "python3")
	script := writeScript(t, "fail.py", "import sys\nprint('boom', file=sys.stderr)\nsys.exit(3)\n")

	runner := NewRunner()
	_, err := runner.Execute(context.Background(), script, "python3 "+script)
	if err == nil {
		t.Fatal("Expected error for non-zero exit")
	}

	var failed *apperrors.ProcessFailedError
	if !errors.As(err, &failed) {
		t.Fatalf("Expected ProcessFailedError, got %T: %v", err, err)
	}
	if failed.ExitCode != 3 {
		t.Errorf("Expected exit code 3, got %d", failed.ExitCode)
	}
	if !strings.Contains(failed.Stderr, "boom") {
		t.Errorf("Expected stderr in error, got %q", failed.Stderr)
	}
}

func TestExecuteTimeout(t *testing.T) {
	requireInterpreter(t, "python3")
	script := writeScript(t, "sleep.py", "import time\ntime.sleep(30)\n")

	runner := NewRunnerWithLimits(DefaultInterpreters, 500*time.Millisecond, DefaultMemoryLimit)

	start := time.Now()
	_, err := runner.Execute(context.Background(), script, "python3 "+script)
	elapsed := time.Since(start)

	if err == nil {
		t.Fatal("Expected timeout error")
	}
	var timeout *apperrors.TimeoutError
	if !errors.As(err, &timeout) {
		t.Fatalf("Expected TimeoutError, got %T: %v", err, err)
	}
	if elapsed > 10*time.Second {
		t.Errorf("Process was not terminated promptly: %v", elapsed)
	}
}
