package json_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pbanos/id3/feature"
	"github.com/pbanos/id3/tree"
	"github.com/pbanos/id3/tree/json"
)

func sampleTree() *tree.Tree {
	t := tree.New(tree.NewInternal(0, "a", "Y",
		tree.NewInternal(1, "x", "Y", tree.NewLeaf("Y"), tree.NewLeaf("N")),
		nil,
	))
	t.Label = "play"
	t.Features = []feature.Feature{
		feature.NewDiscreteFeature("outlook", 0, []string{"a", "b"}),
		feature.NewDiscreteFeature("windy", 1, nil),
	}
	return t
}

func TestWriteAndReadJSONTree(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, json.WriteJSONTree(sampleTree(), &buf))
	assert.JSONEq(t, `{
		"label": "play",
		"features": [{"name": "outlook", "values": ["a", "b"]}, {"name": "windy"}],
		"root": {"a": 0, "v": "a", "m": "Y",
			"pos": {"a": 1, "v": "x", "m": "Y", "pos": {"c": "Y"}, "neg": {"c": "N"}}}
	}`, buf.String())

	read, err := json.ReadJSONTree(&buf)
	require.NoError(t, err)
	assert.Equal(t, sampleTree(), read)
}

func TestEncodeDecoder(t *testing.T) {
	encdec := json.NewEncodeDecoder()
	data, err := encdec.Encode(sampleTree())
	require.NoError(t, err)
	decoded, err := encdec.Decode(data)
	require.NoError(t, err)
	assert.Equal(t, sampleTree().String(), decoded.String())

	empty, err := encdec.Encode(tree.New(nil))
	require.NoError(t, err)
	decoded, err = encdec.Decode(empty)
	require.NoError(t, err)
	assert.Nil(t, decoded.Root)

	_, err = encdec.Encode(nil)
	require.Error(t, err)
}

func TestDecodeInvalidTrees(t *testing.T) {
	cases := map[string]string{
		"leaf with children":     `{"root": {"c": "Y", "pos": {"c": "N"}}}`,
		"leaf with test":         `{"root": {"c": "Y", "a": 0}}`,
		"no class nor test":      `{"root": {"v": "a", "m": "Y"}}`,
		"negative index":         `{"root": {"a": -1, "v": "a", "m": "Y"}}`,
		"index out of features":  `{"features": [{"name": "outlook"}], "root": {"a": 1, "v": "a", "m": "Y"}}`,
		"missing majority class": `{"root": {"a": 0, "v": "a", "pos": {"c": "Y"}}}`,
		"invalid nested node":    `{"root": {"a": 0, "v": "a", "m": "Y", "neg": {}}}`,
		"not json":               `{"root": `,
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := json.ReadJSONTree(strings.NewReader(doc))
			require.Error(t, err)
		})
	}
}
