package util

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateDirFingerprint(t *testing.T) {
	dir := t.TempDir()
	empty, err := CalculateDirFingerprint(dir, "*.json")
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "leads.json"), []byte(`{"emails":[]}`), 0644))
	first, err := CalculateDirFingerprint(dir, "*.json")
	require.NoError(t, err)
	assert.NotEqual(t, empty, first)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0644))
	same, err := CalculateDirFingerprint(dir, "*.json")
	require.NoError(t, err)
	assert.Equal(t, first, same)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "leads.json"), []byte(`{"emails":[{}]}`), 0644))
	changed, err := CalculateDirFingerprint(dir, "*.json")
	require.NoError(t, err)
	assert.NotEqual(t, first, changed)
}
