package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/genguard/genguard/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "genguard",
	Short: "Code assistant with security-validated file writes",
	Long: `genguard generates code through a hosted LLM and persists it to disk only
after local security checks: path validation, content scanning, atomic
lock-protected writes and append-only audit logging.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	// Output flags
	rootCmd.PersistentFlags().String("output-dir", "output", "Directory for generated files")
	rootCmd.PersistentFlags().String("audit-log", "security_audit.log", "Path to the append-only audit log")
	rootCmd.PersistentFlags().String("ledger-db", "genguard.db", "Path to the write provenance database")

	// Security flags
	rootCmd.PersistentFlags().StringSlice("allowed-extensions", []string{".py", ".js", ".ts", ".txt"}, "Comma-separated list of allowed file extensions")
	rootCmd.PersistentFlags().Int64("max-file-size", 10*1024*1024, "Maximum file size in bytes")
	rootCmd.PersistentFlags().StringSlice("allowed-directories", []string{"src", "scripts", "output"}, "Comma-separated list of allowed directory names")

	// Exec flags
	rootCmd.PersistentFlags().String("exec-timeout", "30s", "Wall-clock timeout for executed files")
	rootCmd.PersistentFlags().Uint64("exec-memory", 512*1024*1024, "Best-effort memory ceiling in bytes for executed files")
	rootCmd.PersistentFlags().StringSlice("exec-interpreters", []string{"python", "python3", "node", "deno"}, "Comma-separated list of allowed interpreters")

	// LLM flags
	rootCmd.PersistentFlags().String("model", "gpt-4o-mini", "Model used for code generation")

	rootCmd.PersistentFlags().Bool("verbose", false, "Verbose output")

	viper.BindPFlags(rootCmd.PersistentFlags())
}

func init() {
	config.SetViperDefaults()

	viper.SetConfigName("genguard.config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("$HOME")

	viper.SetEnvPrefix("GENGUARD")
	viper.AutomaticEnv()
}

// initConfig reads in config file and ENV variables if set
func initConfig() {
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			fmt.Printf("Error reading config file: %v\n", err)
		}
		// Config file not found; using defaults and flags
	}
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}
