package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openMemory(t *testing.T, limit int) *Store {
	t.Helper()
	st, err := Open(MemoryPath, limit)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = st.Close()
	})
	return st
}

func TestPushPop(t *testing.T) {
	st := openMemory(t, 0)
	ctx := context.Background()

	_, err := st.Push(ctx, "add", []float64{1, 2})
	require.NoError(t, err)
	_, err = st.Push(ctx, "delete", []float64{1, 2, 3})
	require.NoError(t, err)
	n, err := st.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	snap, err := st.Pop(ctx)
	require.NoError(t, err)
	assert.Equal(t, "delete", snap.Label)
	assert.Equal(t, []float64{1, 2, 3}, snap.Values)

	snap, err = st.Pop(ctx)
	require.NoError(t, err)
	assert.Equal(t, "add", snap.Label)
	assert.Equal(t, []float64{1, 2}, snap.Values)

	_, err = st.Pop(ctx)
	assert.ErrorIs(t, err, ErrEmpty)
}

func TestPushEmptySample(t *testing.T) {
	st := openMemory(t, 0)
	ctx := context.Background()
	_, err := st.Push(ctx, "clear", nil)
	require.NoError(t, err)
	snap, err := st.Pop(ctx)
	require.NoError(t, err)
	assert.Empty(t, snap.Values)
}

func TestPushLimit(t *testing.T) {
	st := openMemory(t, 2)
	ctx := context.Background()
	for i := 0; i < 5; i++ {
		_, err := st.Push(ctx, "add", []float64{float64(i)})
		require.NoError(t, err)
	}
	n, err := st.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n, "snapshots after trim")

	snap, err := st.Pop(ctx)
	require.NoError(t, err)
	assert.Equal(t, []float64{4}, snap.Values)
}

func TestClearAndFileBacked(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "history.db")
	st, err := Open(path, 0)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = st.Close()
	})
	ctx := context.Background()
	_, err = st.Push(ctx, "add", []float64{1})
	require.NoError(t, err)
	require.NoError(t, st.Clear(ctx))

	n, err := st.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
	_, err = st.Pop(ctx)
	assert.ErrorIs(t, err, ErrEmpty)
}
