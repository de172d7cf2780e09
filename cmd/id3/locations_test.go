package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pbanos/id3/dataset"
	"github.com/pbanos/id3/feature"
	"github.com/pbanos/id3/tree"
)

func testRootConfig() *rootCmdConfig {
	return &rootCmdConfig{logger: zap.NewNop()}
}

func testTree() *tree.Tree {
	t := tree.New(tree.NewInternal(0, "sunny", "no", tree.NewLeaf("no"), tree.NewLeaf("yes")))
	t.Label = "play"
	return t
}

func TestTreeInJSONFile(t *testing.T) {
	ctx := context.Background()
	rcc := testRootConfig()
	path := filepath.Join(t.TempDir(), "tree.json")

	name, err := outputTree(ctx, rcc, path, "", testTree())
	require.NoError(t, err)
	assert.Empty(t, name)

	loaded, err := loadTree(ctx, rcc, path, "")
	require.NoError(t, err)
	assert.Equal(t, testTree().String(), loaded.String())
	assert.Equal(t, "play", loaded.Label)
}

func TestTreeInBadgerStore(t *testing.T) {
	ctx := context.Background()
	rcc := testRootConfig()
	location := badgerScheme + t.TempDir()

	name, err := outputTree(ctx, rcc, location, "", testTree())
	require.NoError(t, err)
	require.NotEmpty(t, name)

	loaded, err := loadTree(ctx, rcc, location, name)
	require.NoError(t, err)
	assert.Equal(t, testTree().String(), loaded.String())

	_, err = loadTree(ctx, rcc, location, "")
	assert.Error(t, err)
	_, err = loadTree(ctx, rcc, location, "missing")
	assert.ErrorIs(t, err, tree.ErrTreeNotFound)
}

func TestSampleLocations(t *testing.T) {
	ctx := context.Background()
	rcc := testRootConfig()
	attributes := []feature.Feature{feature.NewDiscreteFeature("outlook", 0, []string{"sunny", "rainy"})}
	class := feature.NewDiscreteFeature("play", 1, []string{"yes", "no"})
	samples := []dataset.Sample{
		dataset.NewSample([]string{"sunny"}, "no"),
		dataset.NewSample([]string{"rainy"}, "yes"),
	}
	dir := t.TempDir()
	for _, location := range []string{
		filepath.Join(dir, "samples.csv"),
		filepath.Join(dir, "samples.jsonl"),
		filepath.Join(dir, "samples.db"),
	} {
		t.Run(filepath.Ext(location), func(t *testing.T) {
			sink, err := createSampleSink(ctx, rcc, location, attributes, class)
			require.NoError(t, err)
			n, err := sink.Write(ctx, samples)
			require.NoError(t, err)
			assert.Equal(t, 2, n)
			require.NoError(t, sink.Close())

			read, err := readSamples(ctx, rcc, location, attributes, class)
			require.NoError(t, err)
			require.Len(t, read, 2)
			for i := range samples {
				assert.Equal(t, samples[i].Values(), read[i].Values())
				assert.Equal(t, samples[i].Class(), read[i].Class())
			}
		})
	}
}

func TestIsTreeStore(t *testing.T) {
	assert.True(t, isTreeStore("redis://localhost:6379/0"))
	assert.True(t, isTreeStore("badger:///tmp/trees"))
	assert.False(t, isTreeStore("tree.json"))
	assert.False(t, isTreeStore(""))
}

func TestJSONLinesSamplesCheckedAgainstFeatures(t *testing.T) {
	ctx := context.Background()
	rcc := testRootConfig()
	attributes := []feature.Feature{feature.NewDiscreteFeature("outlook", 0, []string{"sunny", "rainy"})}
	class := feature.NewDiscreteFeature("play", 1, []string{"yes", "no"})
	location := filepath.Join(t.TempDir(), "samples.jsonl")
	require.NoError(t, os.WriteFile(location, []byte(`{"values":["cloudy"],"class":"no"}`+"\n"), 0o600))

	_, err := readSamples(ctx, rcc, location, attributes, class)
	assert.Error(t, err)
}
