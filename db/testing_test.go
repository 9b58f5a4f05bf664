package db

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func setupTestConnection(t *testing.T) *DatabaseConnection {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	conn, err := NewInMemoryConnection(name)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}
