/*
Package yaml provides methods to parse feature.Feature definitions
also known as metadata, from YAML documents.
*/
package yaml

import (
	"fmt"
	"os"

	"github.com/pbanos/id3/feature"
	yaml "gopkg.in/yaml.v2"
)

/*
ReadFeatures takes a slice of bytes with a feature definition in YML and
returns a slice of features parsed from it or an error.
The YML is expected to be an object containing a features property. The value for this
should be a mapping with a property for each feature with its name and either a
list of valid values or the string 'any' for features that accept any value.
The order of the properties defines the position of each feature's value on
samples. Continuous features are not supported.
*/
func ReadFeatures(md []byte) ([]feature.Feature, error) {
	metadata := struct {
		Features yaml.MapSlice
	}{}
	err := yaml.Unmarshal(md, &metadata)
	if err != nil {
		return nil, fmt.Errorf("parsing yml features: %v", err)
	}
	if metadata.Features == nil {
		return nil, fmt.Errorf("metadata file has no feature information")
	}
	features := make([]feature.Feature, 0, len(metadata.Features))
	for i, item := range metadata.Features {
		fn := fmt.Sprintf("%v", item.Key)
		switch values := item.Value.(type) {
		case nil:
			features = append(features, feature.NewDiscreteFeature(fn, i, nil))
		case string:
			if values != "any" {
				return nil, fmt.Errorf("invalid declaration %q for feature %s: only discrete features are supported", values, fn)
			}
			features = append(features, feature.NewDiscreteFeature(fn, i, nil))
		case []interface{}:
			stringVs := make([]string, 0, len(values))
			for _, v := range values {
				stringVs = append(stringVs, fmt.Sprintf("%v", v))
			}
			features = append(features, feature.NewDiscreteFeature(fn, i, stringVs))
		default:
			return nil, fmt.Errorf("invalid feature declaration of type %T for feature %s", item.Value, fn)
		}
	}
	return features, nil
}

/*
ReadFeaturesFromFile takes a filepath string, reads its contents and uses
ReadFeatures to parse it and return a slice of parsed features or an error.
If the file indicated by the filepath cannot be opened for reading an error
will be returned.
*/
func ReadFeaturesFromFile(filepath string) ([]feature.Feature, error) {
	md, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("reading features yml file %s: %v", filepath, err)
	}
	features, err := ReadFeatures(md)
	if err != nil {
		err = fmt.Errorf("parsing features yml file %s: %v", filepath, err)
	}
	return features, err
}

/*
WriteFeatures takes a slice of features and returns their definition
as a YML document that ReadFeatures can parse back.
*/
func WriteFeatures(features []feature.Feature) ([]byte, error) {
	ms := make(yaml.MapSlice, 0, len(features))
	for _, f := range features {
		var values interface{} = "any"
		if df, ok := f.(*feature.DiscreteFeature); ok && len(df.AvailableValues()) > 0 {
			values = df.AvailableValues()
		}
		ms = append(ms, yaml.MapItem{Key: f.Name(), Value: values})
	}
	return yaml.Marshal(struct {
		Features yaml.MapSlice `yaml:"features"`
	}{ms})
}
