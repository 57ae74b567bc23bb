// Package main provides the entry point for the resume parser CLI and HTTP API server.
package main

import (
	"fmt"
	"os"

	"github.com/jonathan/resume-parser/internal/config"
	"github.com/jonathan/resume-parser/internal/logger"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	logLevel  string
	logFormat string
)

var rootCmd = &cobra.Command{
	Use:   "resume_parser",
	Short: "Extract structured data from résumés",
	Long: "Resume Parser reads PDF, DOCX, HTML and plain-text résumés and turns them into structured JSON " +
		"(personal info, work experience, education, skills, projects, certificates, languages).",
	SilenceUsage:      true,
	PersistentPreRunE: initLogging,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", config.DefaultLogLevel, "Log level (debug, info, warn, error); overrides LOG_LEVEL")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", config.DefaultLogFormat, "Log format (json or pretty); overrides LOG_FORMAT")
}

// initLogging configures the global logger. Flags win over the environment.
func initLogging(cmd *cobra.Command, _ []string) error {
	if !cmd.Flags().Changed("log-level") {
		if v := os.Getenv("LOG_LEVEL"); v != "" {
			logLevel = v
		}
	}
	if !cmd.Flags().Changed("log-format") {
		if v := os.Getenv("LOG_FORMAT"); v != "" {
			logFormat = v
		}
	}
	if logFormat != "json" && logFormat != "pretty" {
		return fmt.Errorf("invalid --log-format %q: must be json or pretty", logFormat)
	}

	logger.Init(logger.Config{Level: logLevel, Format: logFormat})
	cmd.SetContext(logger.WithContext(cmd.Context()))
	return nil
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
