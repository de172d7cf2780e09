/*
Package json reads and writes samples as a stream of JSON objects, one per
line, of the form {"values":["a","x"],"class":"yes"}.
*/
package json

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/pbanos/id3/dataset"
	"github.com/pbanos/id3/feature"
)

type jsonSample struct {
	Values []string `json:"values"`
	Class  string   `json:"class"`
}

type jsonWriter struct {
	count int
	enc   *json.Encoder
}

/*
ReadSamples takes an io.Reader with a stream of JSON encoded samples and
returns the samples decoded from it or an error. Decoded samples are not
validated, dataset.Validate can be used for that.
*/
func ReadSamples(r io.Reader) ([]dataset.Sample, error) {
	dec := json.NewDecoder(r)
	samples := []dataset.Sample{}
	for i := 0; ; i++ {
		js := &jsonSample{}
		err := dec.Decode(js)
		if err == io.EOF {
			return samples, nil
		}
		if err != nil {
			return nil, fmt.Errorf("decoding sample %d: %v", i, err)
		}
		samples = append(samples, dataset.NewSample(js.Values, js.Class))
	}
}

/*
ReadSamplesFor takes an io.Reader with a stream of JSON encoded samples, the
attribute features and the class feature and returns the decoded samples or
an error. Every sample must have a value for each attribute, at the
attribute's index, and every value and class must be valid for its feature.
*/
func ReadSamplesFor(r io.Reader, attributes []feature.Feature, class feature.Feature) ([]dataset.Sample, error) {
	samples, err := ReadSamples(r)
	if err != nil {
		return nil, err
	}
	for i, s := range samples {
		values := s.Values()
		if len(values) != len(attributes) {
			return nil, fmt.Errorf("sample %d: expected %d values, got %d", i, len(attributes), len(values))
		}
		for _, f := range attributes {
			if f.Index() >= len(values) {
				return nil, fmt.Errorf("sample %d: no value for feature %s: %w", i, f.Name(), feature.ErrAttributeOutOfRange)
			}
			if ok, err := f.Valid(values[f.Index()]); !ok {
				return nil, fmt.Errorf("sample %d: invalid value %q for feature %s: %v", i, values[f.Index()], f.Name(), err)
			}
		}
		if ok, err := class.Valid(s.Class()); !ok {
			return nil, fmt.Errorf("sample %d: invalid class %q for feature %s: %v", i, s.Class(), class.Name(), err)
		}
	}
	return samples, nil
}

/*
NewWriter takes an io.Writer and returns a dataset.Writer that encodes
every sample written to it as a line with a JSON object.
*/
func NewWriter(w io.Writer) dataset.Writer {
	return &jsonWriter{enc: json.NewEncoder(w)}
}

func (jw *jsonWriter) Write(ctx context.Context, samples []dataset.Sample) (int, error) {
	for n, s := range samples {
		if err := ctx.Err(); err != nil {
			return n, err
		}
		err := jw.enc.Encode(&jsonSample{Values: s.Values(), Class: s.Class()})
		if err != nil {
			return n, fmt.Errorf("encoding sample %d: %v", jw.count+1, err)
		}
		jw.count++
	}
	return len(samples), nil
}

func (jw *jsonWriter) Count() int {
	return jw.count
}

// Flush does nothing, samples are written as soon as they are encoded.
func (jw *jsonWriter) Flush() error {
	return nil
}
