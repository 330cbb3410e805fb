// Package executor runs generated files under a restricted interpreter
// allow-list with a wall-clock timeout and a best-effort memory ceiling. It
// is a resource-limited subprocess runner, not an isolation mechanism.
package executor

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	shellwords "github.com/mattn/go-shellwords"

	"github.com/genguard/genguard/internal/errors"
)

// Defaults for execution limits
const (
	DefaultTimeout     = 30 * time.Second
	DefaultMemoryLimit = 512 * 1024 * 1024 // 512MiB
)

// DefaultInterpreters is the fixed allow-list of interpreter names
var DefaultInterpreters = []string{"python", "python3", "node", "deno"}

// Runner executes commands against generated files
type Runner struct {
	allowedInterpreters []string
	timeout             time.Duration
	memoryLimit         uint64
}

// Result holds the captured output of a completed execution
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
	Duration time.Duration
}

// NewRunner creates a runner with the default limits
func NewRunner() *Runner {
	return &Runner{
		allowedInterpreters: DefaultInterpreters,
		timeout:             DefaultTimeout,
		memoryLimit:         DefaultMemoryLimit,
	}
}

// NewRunnerWithLimits creates a runner with custom limits
func NewRunnerWithLimits(interpreters []string, timeout time.Duration, memoryLimit uint64) *Runner {
	return &Runner{
		allowedInterpreters: interpreters,
		timeout:             timeout,
		memoryLimit:         memoryLimit,
	}
}

// Execute runs command against the file at path.
//
// The command is tokenized with shell-word-splitting rules (quotes and
// escapes respected, no metacharacter expansion), so no shell is ever
// involved. The leading token must name an allowed interpreter; otherwise
// no process is spawned. On timeout the process is forcibly terminated.
func (r *Runner) Execute(ctx context.Context, path, command string) (Result, error) {
	result := Result{}

	if _, err := os.Stat(path); err != nil {
		return result, &errors.NotFoundError{Path: path}
	}

	tokens, err := shellwords.Parse(command)
	if err != nil {
		return result, fmt.Errorf("invalid command format: %w", err)
	}
	if len(tokens) == 0 {
		return result, &errors.UnsupportedEnvironmentError{Command: command}
	}

	if !r.interpreterAllowed(tokens[0]) {
		return result, &errors.UnsupportedEnvironmentError{Command: tokens[0]}
	}

	execCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	cmd := exec.CommandContext(execCtx, tokens[0], tokens[1:]...)

	var stdout, stderr strings.Builder
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	startTime := time.Now()
	if err := cmd.Start(); err != nil {
		return result, fmt.Errorf("failed to start process: %w", err)
	}

	// Best effort: the limit lands shortly after the process starts, and
	// only on platforms that support adjusting another process's rlimits.
	if r.memoryLimit > 0 {
		_ = applyMemoryLimit(cmd.Process.Pid, r.memoryLimit)
	}

	waitErr := cmd.Wait()

	result.Stdout = stdout.String()
	result.Stderr = stderr.String()
	result.Duration = time.Since(startTime)

	if execCtx.Err() == context.DeadlineExceeded {
		return result, &errors.TimeoutError{Command: command, Limit: r.timeout.String()}
	}

	if waitErr != nil {
		if exitErr, ok := waitErr.(*exec.ExitError); ok {
			result.ExitCode = exitErr.ExitCode()
			return result, &errors.ProcessFailedError{
				Command:  command,
				ExitCode: result.ExitCode,
				Stderr:   result.Stderr,
			}
		}
		return result, fmt.Errorf("execution error: %w", waitErr)
	}

	result.ExitCode = 0
	return result, nil
}

// interpreterAllowed matches the leading token's base name against the
// allow-list
func (r *Runner) interpreterAllowed(token string) bool {
	base := filepath.Base(token)
	for _, allowed := range r.allowedInterpreters {
		if base == allowed {
			return true
		}
	}
	return false
}
