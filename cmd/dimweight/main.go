// Package main is the entry point of the dimensional weight calculator.
// A single binary serves the HTTP API and runs one-off calculations.
//
// 12-Factor App compilance:
//   - I. Codebase: Single codebase tracked in version control
//   - II. Dependencies: Managed via go.mod
//   - III. Config: Configuration via environment variables
//   - VI. Processes: Stateless processes
//   - VII. Port Binding: Self-contained HTTP server
//   - IX. Disposability: Graceful shutdown
//   - XI. Logs: Structured logging to stdout
//
// Usage:
//
//	dimweight serve
//	dimweight calc --length 20 --width 10 --height 10 --weight 15 --unit pounds
//
// Environment Variables:
//
//	DWC_ENVIRONMENT - Deployment environment (development, staging, production)
//	DWC_SERVER_PORT - HTTP server port (default: 8080)
//	DWC_LOG_LEVEL   - Minimum log level (default: info)
package main

import (
	"errors"
	"io/fs"
	"os"

	"github.com/hapkiduki/dimweight/internal/application/usecase"
	"github.com/hapkiduki/dimweight/pkg/logger"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// version is set at build time via ldflags
var version = "dev"

// configFile is the --config flag shared by every subcommand.
var configFile string

var rootCmd = &cobra.Command{
	Use:           "dimweight",
	Short:         "Dimensional weight calculator",
	Long:          "Computes dimensional and billed weights of a package for UPS, FedEx, USPS and Firstmile.",
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Path to a config file (default: ./config.yaml, ./configs/config.yaml)")
}

func main() {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logger.Error("Failed to read .env file", "error", err)
	}

	if err := rootCmd.Execute(); err != nil {
		// calc has already printed the user-facing message
		if usecase.IsValidationError(err) {
			os.Exit(1)
		}
		logger.Fatal("Command failed", "command", commandName(), "error", err)
	}
}

// commandName returns the subcommand named on the command line.
func commandName() string {
	cmd, _, err := rootCmd.Find(os.Args[1:])
	if err != nil || cmd == nil {
		return rootCmd.Name()
	}
	return cmd.Name()
}
