// Copyright 2025 Marathe Group
// Licensed under the EUPL-1.2

package catalog_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marathegroup/portal/internal/catalog"
)

func TestLoad_EmbeddedDefault(t *testing.T) {
	cat, err := catalog.Load("")
	require.NoError(t, err)

	names := cat.Names()
	assert.Contains(t, names, "Marathe Sapphire")
	assert.Contains(t, names, "Marathe Tower")

	p, ok := cat.Get("Marathe Sapphire")
	require.True(t, ok)
	assert.NotEmpty(t, p.Price)

	_, ok = cat.Get("Unknown Towers")
	assert.False(t, ok)
}

func TestLoad_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[[projects]]
name = "Test Heights"
price = "₹10 Lakh"
`), 0o600))

	cat, err := catalog.Load(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"Test Heights"}, cat.Names())
}

func TestLoad_EmptyCatalog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.toml")
	require.NoError(t, os.WriteFile(path, []byte(""), 0o600))

	_, err := catalog.Load(path)

	assert.Error(t, err)
}
