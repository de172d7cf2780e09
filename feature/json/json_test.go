package json_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pbanos/id3/feature"
	"github.com/pbanos/id3/feature/json"
)

func TestReadFeatures(t *testing.T) {
	features, err := json.ReadFeatures(strings.NewReader(`{"features":[{"name":"outlook","values":["sunny","rain"]},{"name":"play"}]}`))
	require.NoError(t, err)
	assert.Equal(t, []feature.Feature{
		feature.NewDiscreteFeature("outlook", 0, []string{"sunny", "rain"}),
		feature.NewDiscreteFeature("play", 1, nil),
	}, features)
}

func TestReadFeaturesErrors(t *testing.T) {
	for _, doc := range []string{
		`{}`,
		`{"features":[{"values":["a"]}]}`,
		`{"features":[{"name":"a"},{"name":"a"}]}`,
		`{"features":`,
	} {
		_, err := json.ReadFeatures(strings.NewReader(doc))
		require.Error(t, err, doc)
	}
}

func TestWriteFeaturesRoundTrip(t *testing.T) {
	features := []feature.Feature{
		feature.NewDiscreteFeature("outlook", 0, []string{"sunny", "rain"}),
		feature.NewDiscreteFeature("windy", 1, nil),
	}
	var buf bytes.Buffer
	require.NoError(t, json.WriteFeatures(&buf, features))
	read, err := json.ReadFeatures(&buf)
	require.NoError(t, err)
	assert.Equal(t, features, read)
}
