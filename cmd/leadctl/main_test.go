package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/octobees/leads-enricher/internal/auth"
	"github.com/octobees/leads-enricher/internal/service"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	out := &bytes.Buffer{}
	root.SetOut(out)
	root.SetErr(out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestTokenCommand(t *testing.T) {
	t.Setenv("JWT_SECRET", "cli-secret")
	t.Setenv("OPERATOR_EMAIL", "ops@example.com")

	out, err := execute(t, "token", "--subject", "ci-bot")
	require.NoError(t, err)

	claims, err := auth.NewJWTManager("cli-secret", 0).ParseToken(strings.TrimSpace(out))
	require.NoError(t, err)
	assert.Equal(t, "ci-bot", claims.Subject)
	assert.Equal(t, service.OperatorRole, claims.Role)
	assert.Equal(t, "ops@example.com", claims.Email)
}

func TestTokenCommand_RequiresSubject(t *testing.T) {
	_, err := execute(t, "token")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `required flag(s) "subject" not set`)
}

func TestMigrateCommand_Args(t *testing.T) {
	_, err := execute(t, "migrate", "sideways")
	require.Error(t, err)

	_, err = execute(t, "migrate")
	require.Error(t, err)

	t.Setenv("DATABASE_URL", "")
	_, err = execute(t, "migrate", "up")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database URL must not be empty")
}

func TestEnrichCommand_RequiresSource(t *testing.T) {
	_, err := execute(t, "enrich")
	require.Error(t, err)
}
