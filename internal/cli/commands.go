package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/genguard/genguard/internal/app"
	"github.com/genguard/genguard/internal/assistant"
	"github.com/genguard/genguard/internal/config"
)

// bootstrapApp builds the application from the resolved configuration
func bootstrapApp() (*app.App, error) {
	cfg, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build config: %w", err)
	}

	application, err := app.Bootstrap(cfg)
	if err != nil {
		return nil, fmt.Errorf("bootstrap failed: %w", err)
	}

	return application, nil
}

var generateCmd = &cobra.Command{
	Use:   "generate <description> <filename>",
	Short: "Generate code from a description and save it securely",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		application, err := bootstrapApp()
		if err != nil {
			return err
		}
		defer application.Close()

		client, err := assistant.NewClient()
		if err != nil {
			return err
		}
		application.WithGenerator(client)

		fmt.Printf("Generating code for: %s\n", args[0])
		message, err := application.GenerateAndSave(cmd.Context(), args[0], args[1])
		if err != nil {
			return err
		}
		fmt.Println(message)

		if path := application.OutputPath(args[1]); fileExists(path) {
			if application.VerifyFileSize(path) {
				fmt.Println("File size check passed")
			} else {
				fmt.Println("Warning: File size exceeds limits")
			}
		}

		return nil
	},
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

var writeCmd = &cobra.Command{
	Use:   "write <filename>",
	Short: "Validate, scan and atomically write stdin to the output directory",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		content, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("failed to read stdin: %w", err)
		}

		application, err := bootstrapApp()
		if err != nil {
			return err
		}
		defer application.Close()

		message, err := application.SaveCode(string(content), args[0])
		if err != nil {
			return err
		}
		fmt.Println(message)

		return nil
	},
}

var scanCmd = &cobra.Command{
	Use:   "scan <file>",
	Short: "Scan a file for dangerous code patterns",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		content, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read file: %w", err)
		}

		application, err := bootstrapApp()
		if err != nil {
			return err
		}
		defer application.Close()

		concerns := application.ScanContent(string(content))
		if len(concerns) == 0 {
			fmt.Println("No security concerns found")
			return nil
		}

		for _, concern := range concerns {
			fmt.Println(concern)
		}
		return nil
	},
}

var hashCmd = &cobra.Command{
	Use:   "hash <file>",
	Short: "Print the SHA-256 digest of a file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		application, err := bootstrapApp()
		if err != nil {
			return err
		}
		defer application.Close()

		digest, err := application.HashFile(args[0])
		if err != nil {
			return err
		}
		fmt.Println(digest)

		if !application.VerifyFileSize(args[0]) {
			fmt.Fprintln(os.Stderr, "Warning: File size exceeds limits")
		}
		return nil
	},
}

var execCmd = &cobra.Command{
	Use:   "exec <file> <command>",
	Short: "Run a generated file under the bounded executor",
	Long: `Runs the given command against a generated file. The command's leading
token must be an allowed interpreter; execution is bounded by a wall-clock
timeout and a best-effort memory ceiling.`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		application, err := bootstrapApp()
		if err != nil {
			return err
		}
		defer application.Close()

		command := strings.Join(args[1:], " ")
		result, err := application.ExecuteFile(cmd.Context(), args[0], command)
		if err != nil {
			return err
		}

		if result.Stdout != "" {
			fmt.Print(result.Stdout)
		}
		if result.Stderr != "" {
			fmt.Fprint(os.Stderr, result.Stderr)
		}
		return nil
	},
}

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Show recent entries from the write provenance ledger",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, err := cmd.Flags().GetInt("limit")
		if err != nil {
			return err
		}

		application, err := bootstrapApp()
		if err != nil {
			return err
		}
		defer application.Close()

		entries, err := application.RecentWrites(limit)
		if err != nil {
			return err
		}

		for _, e := range entries {
			fmt.Printf("%s  %-8s  %s  %d bytes  %s\n",
				e.Timestamp.Format("2006-01-02 15:04:05"),
				e.Action,
				e.Path,
				e.Bytes,
				e.Hash,
			)
		}
		return nil
	},
}

func init() {
	auditCmd.Flags().Int("limit", 20, "Maximum number of ledger entries to show")

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(writeCmd)
	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(hashCmd)
	rootCmd.AddCommand(execCmd)
	rootCmd.AddCommand(auditCmd)
}
