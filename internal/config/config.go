package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds the full application configuration
type Config struct {
	OutputDir          string
	AuditLogPath       string
	LedgerPath         string
	AllowedExtensions  []string
	MaxFileSize        int64
	AllowedDirectories []string
	ExecTimeout        time.Duration
	ExecMemoryLimit    uint64
	Interpreters       []string
	Model              string
	Verbose            bool
}

// SetViperDefaults sets all default configuration values in Viper
func SetViperDefaults() {
	viper.SetDefault("output-dir", "output")
	viper.SetDefault("audit-log", "security_audit.log")
	viper.SetDefault("ledger-db", "genguard.db")

	// Security defaults
	viper.SetDefault("allowed-extensions", []string{".py", ".js", ".ts", ".txt"})
	viper.SetDefault("max-file-size", 10*1024*1024) // 10MB
	viper.SetDefault("allowed-directories", []string{"src", "scripts", "output"})

	// Exec defaults
	viper.SetDefault("exec-timeout", "30s")
	viper.SetDefault("exec-memory", 512*1024*1024) // 512MB
	viper.SetDefault("exec-interpreters", []string{"python", "python3", "node", "deno"})

	// LLM defaults
	viper.SetDefault("model", "gpt-4o-mini")

	viper.SetDefault("verbose", false)
}

// Build constructs a Config from Viper values
func Build() (*Config, error) {
	cfg := &Config{
		OutputDir:          viper.GetString("output-dir"),
		AuditLogPath:       viper.GetString("audit-log"),
		LedgerPath:         viper.GetString("ledger-db"),
		AllowedExtensions:  viper.GetStringSlice("allowed-extensions"),
		MaxFileSize:        viper.GetInt64("max-file-size"),
		AllowedDirectories: viper.GetStringSlice("allowed-directories"),
		ExecMemoryLimit:    viper.GetUint64("exec-memory"),
		Interpreters:       viper.GetStringSlice("exec-interpreters"),
		Model:              viper.GetString("model"),
		Verbose:            viper.GetBool("verbose"),
	}

	execTimeout, err := time.ParseDuration(viper.GetString("exec-timeout"))
	if err != nil {
		return nil, fmt.Errorf("invalid exec-timeout: %w", err)
	}
	cfg.ExecTimeout = execTimeout

	if cfg.MaxFileSize <= 0 {
		return nil, fmt.Errorf("max-file-size must be positive, got %d", cfg.MaxFileSize)
	}

	return cfg, nil
}
