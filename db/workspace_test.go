package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetOrCreateWorkspace(t *testing.T) {
	conn := setupTestConnection(t)

	first, err := conn.GetOrCreateWorkspace(&Workspace{Code: "acme", Title: "Acme"})
	require.NoError(t, err)
	assert.NotZero(t, first.ID)

	second, err := conn.GetOrCreateWorkspace(&Workspace{Code: "acme", Title: "Other title"})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "Acme", second.Title)

	exists, err := conn.WorkspaceExists(first.ID)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = conn.WorkspaceExists(first.ID + 100)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestListWorkspaces(t *testing.T) {
	conn := setupTestConnection(t)

	_, err := conn.CreateDefaultWorkspace()
	require.NoError(t, err)
	_, err = conn.CreateWorkspace(&Workspace{Code: "second", Title: "Second"})
	require.NoError(t, err)

	items, count, err := conn.ListWorkspaces()
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
	assert.Equal(t, "default", items[0].Code)
	assert.Equal(t, []string{"ID", "Code", "Title", "Description"}, items[0].TableHeaders())
}
