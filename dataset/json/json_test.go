package json_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pbanos/id3/dataset"
	"github.com/pbanos/id3/dataset/json"
	"github.com/pbanos/id3/feature"
)

func TestWriteAndReadSamples(t *testing.T) {
	samples := []dataset.Sample{
		dataset.NewSample([]string{"a", "x"}, "Y"),
		dataset.NewSample([]string{"b", "z"}, "N"),
	}
	var buf bytes.Buffer
	w := json.NewWriter(&buf)
	n, err := w.Write(context.Background(), samples)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, 2, w.Count())
	require.NoError(t, w.Flush())
	assert.Equal(t, "{\"values\":[\"a\",\"x\"],\"class\":\"Y\"}\n{\"values\":[\"b\",\"z\"],\"class\":\"N\"}\n", buf.String())

	read, err := json.ReadSamples(&buf)
	require.NoError(t, err)
	assert.Equal(t, samples, read)
}

func TestReadSamplesInvalid(t *testing.T) {
	_, err := json.ReadSamples(strings.NewReader("{\"values\":[\"a\"],\"class\":\"Y\"}\n{\"values\":"))
	require.Error(t, err)
}

func TestWriteCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	n, err := json.NewWriter(&bytes.Buffer{}).Write(ctx, []dataset.Sample{dataset.NewSample([]string{"a"}, "Y")})
	require.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, n)
}

func TestReadSamplesFor(t *testing.T) {
	attributes := []feature.Feature{
		feature.NewDiscreteFeature("outlook", 0, []string{"sunny", "rainy"}),
		feature.NewDiscreteFeature("windy", 1, nil),
	}
	class := feature.NewDiscreteFeature("play", 2, []string{"yes", "no"})

	samples, err := json.ReadSamplesFor(strings.NewReader(`{"values":["sunny","true"],"class":"no"}`+"\n"), attributes, class)
	require.NoError(t, err)
	require.Len(t, samples, 1)
	assert.Equal(t, []string{"sunny", "true"}, samples[0].Values())

	cases := map[string]string{
		"unknown attribute value": `{"values":["cloudy","true"],"class":"no"}`,
		"unknown class":           `{"values":["sunny","true"],"class":"maybe"}`,
		"missing value":           `{"values":["sunny"],"class":"no"}`,
		"extra value":             `{"values":["sunny","true","x"],"class":"no"}`,
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := json.ReadSamplesFor(strings.NewReader(doc+"\n"), attributes, class)
			require.Error(t, err)
		})
	}
}
