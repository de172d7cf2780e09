package tree_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pbanos/id3/tree"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	store := tree.NewMemoryStore()
	tr := sampleTree()
	require.NoError(t, store.Save(ctx, "t1", tr))

	tr.Root.Collapse()
	loaded, err := store.Load(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, sampleTree().String(), loaded.String(), "saved trees are copies")

	loaded.Root.Collapse()
	again, err := store.Load(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, sampleTree().String(), again.String(), "loaded trees are copies")

	require.NoError(t, store.Delete(ctx, "t1"))
	_, err = store.Load(ctx, "t1")
	require.ErrorIs(t, err, tree.ErrTreeNotFound)
	require.NoError(t, store.Close(ctx))
}

func TestMemoryStoreCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	store := tree.NewMemoryStore()
	require.ErrorIs(t, store.Save(ctx, "t1", sampleTree()), context.Canceled)
}

func TestClone(t *testing.T) {
	tr := sampleTree()
	tr.Label = "play"
	clone := tr.Clone()
	assert.Equal(t, tr, clone)
	clone.Root.Pos.Collapse()
	assert.NotEqual(t, tr.String(), clone.String())
}
