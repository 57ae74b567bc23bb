package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/jonathan/resume-parser/internal/config"
	"github.com/jonathan/resume-parser/internal/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "cli-test-secret-key-for-signing-32-bytes")
	tokenSubject, tokenScope = "user-1", "parse"
	t.Cleanup(func() { tokenSubject, tokenScope = "", "" })

	var out bytes.Buffer
	tokenCmd.SetOut(&out)
	t.Cleanup(func() { tokenCmd.SetOut(nil) })

	require.NoError(t, runToken(tokenCmd, nil))

	jwtConfig, err := config.NewJWTConfig()
	require.NoError(t, err)
	claims, err := server.NewJWTService(jwtConfig).ValidateToken(strings.TrimSpace(out.String()))
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Subject)
	assert.Equal(t, "parse", claims.Scope)
}

func TestRunToken_MissingSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	err := runToken(tokenCmd, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
}
