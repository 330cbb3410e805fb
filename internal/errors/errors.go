package errors

import "fmt"

// Error codes for the application
var (
	ErrPathTraversal      = fmt.Errorf("PATH_TRAVERSAL")
	ErrFileNotFound       = fmt.Errorf("FILE_NOT_FOUND")
	ErrExtensionDenied    = fmt.Errorf("EXTENSION_DENIED")
	ErrDirectoryMissing   = fmt.Errorf("DIRECTORY_MISSING")
	ErrLockContention     = fmt.Errorf("LOCK_CONTENTION")
	ErrWriteFailed        = fmt.Errorf("WRITE_FAILED")
	ErrUnsupportedRuntime = fmt.Errorf("UNSUPPORTED_RUNTIME")
	ErrExecTimeout        = fmt.Errorf("EXEC_TIMEOUT")
	ErrExecFailed         = fmt.Errorf("EXEC_FAILED")
)

// TraversalError is raised when a path contains a parent-directory segment.
// Unlike the soft policy rejections it is always a hard failure.
type TraversalError struct {
	Path string
}

func (e *TraversalError) Error() string {
	return fmt.Sprintf("PATH_TRAVERSAL: directory traversal not allowed: %s", e.Path)
}

func (e *TraversalError) Unwrap() error {
	return ErrPathTraversal
}

// NotFoundError wraps a missing-file condition during integrity checks
type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("FILE_NOT_FOUND: %s", e.Path)
}

func (e *NotFoundError) Unwrap() error {
	return ErrFileNotFound
}

// SecurityError wraps write-time security rejections
type SecurityError struct {
	Op   string
	Path string
	Err  error
}

func (e *SecurityError) Error() string {
	return fmt.Sprintf("security violation in %s for path %s: %v", e.Op, e.Path, e.Err)
}

func (e *SecurityError) Unwrap() error {
	return e.Err
}

// LockError signals that another writer holds the lock for a path
type LockError struct {
	Path string
	Err  error
}

func (e *LockError) Error() string {
	return fmt.Sprintf("LOCK_CONTENTION: concurrent write in progress for %s: %v", e.Path, e.Err)
}

func (e *LockError) Unwrap() error {
	return ErrLockContention
}

// IOError wraps underlying disk errors during staging or publish
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("WRITE_FAILED: %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// UnsupportedEnvironmentError is raised when the leading command token is not
// an allowed interpreter
type UnsupportedEnvironmentError struct {
	Command string
}

func (e *UnsupportedEnvironmentError) Error() string {
	return fmt.Sprintf("UNSUPPORTED_RUNTIME: unsupported execution environment: %s", e.Command)
}

func (e *UnsupportedEnvironmentError) Unwrap() error {
	return ErrUnsupportedRuntime
}

// TimeoutError is raised when a bounded execution exceeds its wall-clock limit
type TimeoutError struct {
	Command string
	Limit   string
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("EXEC_TIMEOUT: execution timed out after %s: %s", e.Limit, e.Command)
}

func (e *TimeoutError) Unwrap() error {
	return ErrExecTimeout
}

// ProcessFailedError carries the stderr of a process that exited non-zero
type ProcessFailedError struct {
	Command  string
	ExitCode int
	Stderr   string
}

func (e *ProcessFailedError) Error() string {
	return fmt.Sprintf("EXEC_FAILED: process exited with code %d: %s", e.ExitCode, e.Stderr)
}

func (e *ProcessFailedError) Unwrap() error {
	return ErrExecFailed
}
