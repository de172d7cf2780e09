package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/pbanos/id3/feature"
	featurejson "github.com/pbanos/id3/feature/json"
	"github.com/pbanos/id3/feature/yaml"
)

// readFeatures reads features from a JSON (.json) or YAML metadata file.
func readFeatures(metadataInput string) ([]feature.Feature, error) {
	if !strings.HasSuffix(metadataInput, ".json") {
		return yaml.ReadFeaturesFromFile(metadataInput)
	}
	f, err := os.Open(metadataInput)
	if err != nil {
		return nil, fmt.Errorf("reading features from %s: %v", metadataInput, err)
	}
	defer f.Close()
	features, err := featurejson.ReadFeatures(f)
	if err != nil {
		return nil, fmt.Errorf("parsing features from %s: %v", metadataInput, err)
	}
	return features, nil
}

// readSchema reads the features in the metadata file and splits the
// class feature with the given name from the attribute features.
func readSchema(metadataInput, class string) ([]feature.Feature, feature.Feature, error) {
	features, err := readFeatures(metadataInput)
	if err != nil {
		return nil, nil, err
	}
	return feature.SplitClass(features, class)
}
