// Package writer implements atomic, lock-protected file publication for
// generated code. A file under a protected directory is never observable in
// a partially-written state: it is either absent, in its prior complete
// state, or in its new complete state.
package writer

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/genguard/genguard/internal/errors"
)

const (
	lockSuffix = ".lock"
	tempSuffix = ".tmp"
)

// Status tags a write outcome so callers can pattern-match instead of
// relying on raise/return duality
type Status string

const (
	StatusSuccess  Status = "success"
	StatusRejected Status = "rejected"
	StatusError    Status = "error"
)

// Result describes the outcome of a single write operation
type Result struct {
	Status       Status
	Message      string
	Path         string
	BytesWritten int64
	Err          error
}

// Writer performs atomic file writes guarded by per-path advisory lock
// markers. State is filesystem-mediated, so exclusion holds across
// independent processes, not just goroutines in one process.
type Writer struct {
	allowedExtensions []string
}

// NewWriter creates a writer that accepts only the given file extensions
func NewWriter(allowedExtensions []string) *Writer {
	return &Writer{allowedExtensions: allowedExtensions}
}

// Write publishes content at path atomically.
//
// The sequence is strict: validate, acquire the lock marker, stage to a
// temp sibling, rename onto the target, release the lock. The rename is the
// single publish point. The lock marker is removed on every exit path,
// success or failure.
//
// The writer re-checks extension and parent-directory policy itself; it
// does not trust callers to have validated already. A second concurrent
// writer to the same path fails fast rather than blocking; no wait or retry
// protocol is defined.
func (w *Writer) Write(path, content string) Result {
	ext := filepath.Ext(path)
	if !extensionAllowed(ext, w.allowedExtensions) {
		err := &errors.SecurityError{Op: "write", Path: path, Err: fmt.Errorf("EXTENSION_DENIED: unsupported file type: %s", ext)}
		return Result{Status: StatusRejected, Path: path, Message: err.Error(), Err: err}
	}

	dir := filepath.Dir(path)
	if _, statErr := os.Stat(dir); statErr != nil {
		err := &errors.SecurityError{Op: "write", Path: path, Err: fmt.Errorf("DIRECTORY_MISSING: directory does not exist: %s", dir)}
		return Result{Status: StatusRejected, Path: path, Message: err.Error(), Err: err}
	}

	// Acquire the exclusive per-path lock marker. O_EXCL makes creation
	// atomic even across processes; the marker records the owning pid.
	lockPath := path + lockSuffix
	lockFile, lockErr := os.OpenFile(lockPath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
	if lockErr != nil {
		err := &errors.LockError{Path: path, Err: lockErr}
		return Result{Status: StatusError, Path: path, Message: err.Error(), Err: err}
	}
	lockFile.WriteString(strconv.Itoa(os.Getpid()))
	lockFile.Close()
	defer os.Remove(lockPath)

	// Stage the full content at a temp sibling, then atomically publish.
	tempPath := path + tempSuffix
	if err := stageContent(tempPath, content); err != nil {
		os.Remove(tempPath)
		ioErr := &errors.IOError{Op: "stage", Path: path, Err: err}
		return Result{Status: StatusError, Path: path, Message: ioErr.Error(), Err: ioErr}
	}

	if err := os.Rename(tempPath, path); err != nil {
		os.Remove(tempPath)
		ioErr := &errors.IOError{Op: "publish", Path: path, Err: err}
		return Result{Status: StatusError, Path: path, Message: ioErr.Error(), Err: ioErr}
	}

	return Result{
		Status:       StatusSuccess,
		Path:         path,
		Message:      fmt.Sprintf("Code written to %s", path),
		BytesWritten: int64(len(content)),
	}
}

func extensionAllowed(ext string, allowed []string) bool {
	if ext == "" {
		return false
	}
	for _, a := range allowed {
		if strings.EqualFold(a, ext) {
			return true
		}
	}
	return false
}

// stageContent writes and syncs the full content at tempPath
func stageContent(tempPath, content string) error {
	file, err := os.OpenFile(tempPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}

	if _, err := file.WriteString(content); err != nil {
		file.Close()
		return err
	}

	if err := file.Sync(); err != nil {
		file.Close()
		return err
	}

	return file.Close()
}
