package main

import (
	"fmt"

	"github.com/jonathan/resume-parser/internal/config"
	"github.com/jonathan/resume-parser/internal/server"
	"github.com/spf13/cobra"
)

var (
	tokenSubject string
	tokenScope   string
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Sign a bearer token for the API",
	Long:  "Sign an HS256 token with JWT_SECRET for calling a server that has authentication enabled. Intended for local testing.",
	RunE:  runToken,
}

func init() {
	tokenCmd.Flags().StringVar(&tokenSubject, "subject", "", "Token subject (required)")
	tokenCmd.Flags().StringVar(&tokenScope, "scope", "", "Optional scope claim")
	if err := tokenCmd.MarkFlagRequired("subject"); err != nil {
		panic(fmt.Sprintf("failed to mark flag as required: %v", err))
	}
	rootCmd.AddCommand(tokenCmd)
}

func runToken(cmd *cobra.Command, _ []string) error {
	jwtConfig, err := config.NewJWTConfig()
	if err != nil {
		return fmt.Errorf("failed to create JWT config: %w", err)
	}

	token, err := server.NewJWTService(jwtConfig).GenerateToken(tokenSubject, tokenScope)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), token)
	return err
}
