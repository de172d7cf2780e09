/*
Package json provides methods to read and write feature.Feature
definitions (metadata) as JSON documents.
*/
package json

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/pbanos/id3/feature"
)

type jsonFeature struct {
	Name   string   `json:"name"`
	Values []string `json:"values,omitempty"`
}

type jsonMetadata struct {
	Features []jsonFeature `json:"features"`
}

// ReadFeatures takes an io.Reader with a JSON document and returns the
// features it specifies or an error.
// The document is expected to be an object with a "features" array. Every
// item in the array is an object with the "name" of the feature and an
// optional "values" array with the values it can take. The position of an
// item in the array is the position of the feature's value on samples.
func ReadFeatures(r io.Reader) ([]feature.Feature, error) {
	md := &jsonMetadata{}
	err := json.NewDecoder(r).Decode(md)
	if err != nil {
		return nil, fmt.Errorf("parsing json features: %v", err)
	}
	if md.Features == nil {
		return nil, fmt.Errorf("metadata has no feature information")
	}
	features := make([]feature.Feature, 0, len(md.Features))
	seen := make(map[string]bool)
	for i, jf := range md.Features {
		if jf.Name == "" {
			return nil, fmt.Errorf("parsing json features: feature %d has no name", i)
		}
		if seen[jf.Name] {
			return nil, fmt.Errorf("parsing json features: duplicated feature %s", jf.Name)
		}
		seen[jf.Name] = true
		features = append(features, feature.NewDiscreteFeature(jf.Name, i, jf.Values))
	}
	return features, nil
}

// WriteFeatures takes an io.Writer and a slice of features and writes
// their definitions onto the writer in the format ReadFeatures expects.
func WriteFeatures(w io.Writer, features []feature.Feature) error {
	md := &jsonMetadata{Features: make([]jsonFeature, 0, len(features))}
	for _, f := range features {
		jf := jsonFeature{Name: f.Name()}
		if df, ok := f.(*feature.DiscreteFeature); ok {
			jf.Values = df.AvailableValues()
		}
		md.Features = append(md.Features, jf)
	}
	return json.NewEncoder(w).Encode(md)
}
