// Copyright 2025 Marathe Group
// Licensed under the EUPL-1.2

package storage_test

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marathegroup/portal/internal/storage"
)

func TestFSStore_PutGetDelete(t *testing.T) {
	store, err := storage.NewFSStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	key := storage.NewKey("asha@example.com")
	require.NoError(t, store.Put(ctx, key, strings.NewReader("allotment letter")))

	rc, err := store.Get(ctx, key)
	require.NoError(t, err)
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.NoError(t, rc.Close())
	assert.Equal(t, "allotment letter", string(data))

	require.NoError(t, store.Delete(ctx, key))

	_, err = store.Get(ctx, key)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	// Deleting again is not an error.
	assert.NoError(t, store.Delete(ctx, key))
}

func TestFSStore_Get_NotFound(t *testing.T) {
	store, err := storage.NewFSStore(t.TempDir())
	require.NoError(t, err)

	_, err = store.Get(context.Background(), "documents/none/missing")

	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestFSStore_RejectsTraversal(t *testing.T) {
	store, err := storage.NewFSStore(t.TempDir())
	require.NoError(t, err)

	err = store.Put(context.Background(), "../outside", strings.NewReader("x"))

	assert.Error(t, err)
}

func TestNewKey_ScopedToEmail(t *testing.T) {
	key := storage.NewKey("asha@example.com")

	assert.True(t, strings.HasPrefix(key, "documents/asha_at_example.com/"))
	assert.NotEqual(t, key, storage.NewKey("asha@example.com"))
}
