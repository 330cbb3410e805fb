package security

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/genguard/genguard/internal/audit"
	"github.com/genguard/genguard/internal/errors"
)

// Validator performs security validation for file operations. Every
// rejection is recorded in the audit log before it is returned.
type Validator struct {
	config Config
	sink   audit.Sink
}

// NewValidator creates a validator with the given policy and audit sink
func NewValidator(config Config, sink audit.Sink) *Validator {
	return &Validator{config: config, sink: sink}
}

// Config returns the validator's policy
func (v *Validator) Config() Config {
	return v.config
}

// ValidatePath checks whether a path is acceptable for writing.
//
// A parent-directory segment ("..") is a hard failure and returns a
// TraversalError; traversal intent is unambiguous. All other policy
// violations (extension outside the allow-list, no allowed directory in the
// parent path) are soft rejections and return false.
func (v *Validator) ValidatePath(path string) (bool, error) {
	// Check for directory traversal attempts before any normalization
	for _, segment := range pathSegments(path) {
		if segment == ".." {
			v.sink.LogEvent(audit.EventValidationFail, fmt.Sprintf("Directory traversal attempt: %s", path))
			return false, &errors.TraversalError{Path: path}
		}
	}

	// Validate file extension
	ext := filepath.Ext(path)
	if !containsFold(v.config.AllowedExtensions, ext) {
		v.sink.LogEvent(audit.EventValidationFail, fmt.Sprintf("Invalid file type: %s", ext))
		return false, nil
	}

	// Validate parent directory. Matching is segment-exact, so outputXYZ/
	// does not satisfy an "output" allow-list entry.
	parent := filepath.Dir(path)
	if !v.parentAllowed(parent) {
		v.sink.LogEvent(audit.EventValidationFail, fmt.Sprintf("Invalid directory: %s", parent))
		return false, nil
	}

	return true, nil
}

// parentAllowed reports whether any segment of the parent directory path
// exactly matches a configured directory name
func (v *Validator) parentAllowed(parent string) bool {
	for _, segment := range pathSegments(parent) {
		for _, allowed := range v.config.AllowedDirectories {
			if segment == allowed {
				return true
			}
		}
	}
	return false
}

// pathSegments splits a path into its components, tolerating both slash
// styles on any platform
func pathSegments(path string) []string {
	normalized := filepath.ToSlash(path)
	var segments []string
	for _, s := range strings.Split(normalized, "/") {
		if s != "" {
			segments = append(segments, s)
		}
	}
	return segments
}

func containsFold(list []string, value string) bool {
	for _, item := range list {
		if strings.EqualFold(item, value) {
			return true
		}
	}
	return false
}
