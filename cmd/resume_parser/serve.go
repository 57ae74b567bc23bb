package main

import (
	"context"
	"fmt"

	"github.com/jonathan/resume-parser/internal/config"
	"github.com/jonathan/resume-parser/internal/db"
	"github.com/jonathan/resume-parser/internal/logger"
	"github.com/jonathan/resume-parser/internal/observability"
	"github.com/jonathan/resume-parser/internal/server"
	"github.com/jonathan/resume-parser/internal/server/ratelimit"
	"github.com/spf13/cobra"
)

var (
	servePort       int
	serveConfigFile string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long: `Start an HTTP server that exposes POST /api/resumes/parse.

Results are stored in PostgreSQL when DATABASE_URL is set, and bearer-token
authentication is required on /api/ routes when JWT_SECRET is set.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", config.DefaultPort, "Port to listen on (overrides PORT)")
	serveCmd.Flags().StringVar(&serveConfigFile, "config", "", "Path to config file (JSON or YAML)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(serveConfigFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if cmd.Flags().Changed("port") {
		cfg.Port = servePort
	}
	applyConfigLogging(cmd, cfg)

	var store server.ParseStore
	if cfg.DatabaseURL != "" {
		ctx := context.Background()
		database, err := db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		if err := database.EnsureSchema(ctx); err != nil {
			database.Close()
			return fmt.Errorf("failed to prepare database: %w", err)
		}
		store = database
		logger.Info().Msg("parse results will be stored in PostgreSQL")
	} else {
		logger.Warn().Msg("DATABASE_URL not set, parse results will not be stored")
	}

	srv, err := server.New(server.Config{
		Port:           cfg.Port,
		MaxUploadBytes: cfg.MaxUploadBytes,
		CORSOrigin:     cfg.CORSOrigin,
		JWT:            cfg.JWT(),
		Store:          store,
		Logger:         logger.Logger,
		RateLimit:      ratelimit.LoadConfig(),
		Tracer:         observability.NewLogTracer(logger.Logger),
	})
	if err != nil {
		if store != nil {
			store.Close()
		}
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}

// applyConfigLogging re-initializes logging from the config file for settings not given as flags.
func applyConfigLogging(cmd *cobra.Command, cfg *config.Config) {
	level, format := logLevel, logFormat
	if !cmd.Flags().Changed("log-level") && cfg.LogLevel != "" {
		level = cfg.LogLevel
	}
	if !cmd.Flags().Changed("log-format") && cfg.LogFormat != "" {
		format = cfg.LogFormat
	}
	logger.Init(logger.Config{Level: level, Format: format})
}
