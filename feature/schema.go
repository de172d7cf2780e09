package feature

import "fmt"

/*
SplitClass takes a slice of features and the name of one of them and
returns the rest of the features, re-indexed so that their indexes match
their positions on sample values once the class feature has been taken out,
and the feature with the given name. An error is returned if no feature
has the given name or if a feature cannot be re-indexed.
*/
func SplitClass(features []Feature, class string) ([]Feature, Feature, error) {
	var classFeature Feature
	attributes := make([]Feature, 0, len(features))
	for _, f := range features {
		if f.Name() == class && classFeature == nil {
			classFeature = f
			continue
		}
		df, ok := f.(*DiscreteFeature)
		if !ok {
			return nil, nil, fmt.Errorf("unknown feature type %T for feature %v", f, f.Name())
		}
		attributes = append(attributes, NewDiscreteFeature(df.Name(), len(attributes), df.AvailableValues()))
	}
	if classFeature == nil {
		return nil, nil, fmt.Errorf("class feature '%s' is not defined", class)
	}
	return attributes, classFeature, nil
}
