// Package app wires the security validator, atomic writer, auditor, ledger
// and executor into the code-assistant workflow.
package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/genguard/genguard/internal/assistant"
	"github.com/genguard/genguard/internal/audit"
	"github.com/genguard/genguard/internal/config"
	"github.com/genguard/genguard/internal/executor"
	"github.com/genguard/genguard/internal/ledger"
	"github.com/genguard/genguard/internal/security"
	"github.com/genguard/genguard/internal/writer"
)

// App coordinates code generation and secure persistence
type App struct {
	config    *config.Config
	validator *security.Validator
	auditor   *audit.Auditor
	writer    *writer.Writer
	runner    *executor.Runner
	ledger    *ledger.Ledger
	auditLog  *audit.Logger
	generator assistant.Generator
}

// Bootstrap builds a fully wired application from configuration
func Bootstrap(cfg *config.Config) (*App, error) {
	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	auditLog, err := audit.NewLogger(cfg.AuditLogPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open audit log: %w", err)
	}

	ldg, err := ledger.Open(cfg.LedgerPath)
	if err != nil {
		auditLog.Close()
		return nil, fmt.Errorf("failed to open write ledger: %w", err)
	}

	secCfg := security.Config{
		AllowedExtensions:  cfg.AllowedExtensions,
		MaxFileSize:        cfg.MaxFileSize,
		AllowedDirectories: cfg.AllowedDirectories,
	}

	return &App{
		config:    cfg,
		validator: security.NewValidator(secCfg, auditLog),
		auditor:   audit.NewAuditor(auditLog, cfg.MaxFileSize),
		writer:    writer.NewWriter(cfg.AllowedExtensions),
		runner:    executor.NewRunnerWithLimits(cfg.Interpreters, cfg.ExecTimeout, cfg.ExecMemoryLimit),
		ledger:    ldg,
		auditLog:  auditLog,
	}, nil
}

// WithGenerator attaches an LLM generator; required only for GenerateAndSave
func (a *App) WithGenerator(g assistant.Generator) *App {
	a.generator = g
	return a
}

// Close releases the audit log and ledger
func (a *App) Close() error {
	var firstErr error
	if a.ledger != nil {
		firstErr = a.ledger.Close()
	}
	if a.auditLog != nil {
		if err := a.auditLog.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// GenerateAndSave asks the model for code matching description and persists
// it under the configured output directory. The returned string is a
// human-readable status message.
func (a *App) GenerateAndSave(ctx context.Context, description, filename string) (string, error) {
	if a.generator == nil {
		return "", fmt.Errorf("no generator configured")
	}

	response, err := a.generator.Generate(ctx, description)
	if err != nil {
		return "", fmt.Errorf("code generation failed: %w", err)
	}

	code, ok := assistant.ExtractCode(response)
	if !ok {
		return "No code was found in the assistant's response", nil
	}

	return a.SaveCode(code, filename)
}

// SaveCode validates, scans and atomically writes code to the output
// directory. Traversal attempts are hard failures; policy rejections and
// scan findings are reported in the returned message.
func (a *App) SaveCode(code, filename string) (string, error) {
	// Plain concatenation, not filepath.Join: joining would collapse ".."
	// segments before the validator can see them.
	path := a.OutputPath(filename)

	ok, err := a.validator.ValidatePath(path)
	if err != nil {
		return "", err
	}
	if !ok {
		return "Error: Invalid file path or name", nil
	}

	if concerns := a.validator.ScanContent(code); len(concerns) > 0 {
		return fmt.Sprintf("Security concerns found: %s", strings.Join(concerns, ", ")), nil
	}

	action := "created"
	if _, statErr := os.Stat(path); statErr == nil {
		action = "updated"
	}

	result := a.writer.Write(path, code)
	if result.Status != writer.StatusSuccess {
		return fmt.Sprintf("Error saving code: %s", result.Message), nil
	}

	// Record provenance: hash into the audit trail and the ledger
	hash, hashErr := a.auditor.HashFile(path)
	if hashErr == nil {
		a.auditor.LogEvent(audit.EventFileCreation, fmt.Sprintf("Created %s with hash %s", filename, hash))
		if recErr := a.ledger.Record(path, hash, result.BytesWritten, action); recErr != nil && a.config.Verbose {
			fmt.Fprintf(os.Stderr, "Warning: ledger record failed: %v\n", recErr)
		}
	}

	return fmt.Sprintf("Code successfully saved to %s", path), nil
}

// OutputPath returns the path a filename resolves to under the output
// directory
func (a *App) OutputPath(filename string) string {
	return a.config.OutputDir + string(filepath.Separator) + filename
}

// ExecuteFile runs an already-written file under the bounded executor
func (a *App) ExecuteFile(ctx context.Context, path, command string) (executor.Result, error) {
	return a.runner.Execute(ctx, path, command)
}

// ValidatePath exposes path validation to callers
func (a *App) ValidatePath(path string) (bool, error) {
	return a.validator.ValidatePath(path)
}

// ScanContent exposes content scanning to callers
func (a *App) ScanContent(content string) []string {
	return a.validator.ScanContent(content)
}

// HashFile exposes content hashing to callers
func (a *App) HashFile(path string) (string, error) {
	return a.auditor.HashFile(path)
}

// VerifyFileSize reports whether a written file is within the size limit
func (a *App) VerifyFileSize(path string) bool {
	return a.auditor.VerifySize(path)
}

// RecentWrites returns the newest ledger entries
func (a *App) RecentWrites(limit int) ([]ledger.Entry, error) {
	return a.ledger.Recent(limit)
}
