/*
Package feature defines the categorical attributes samples are described
with and the equality criteria trees use to tell samples apart.
*/
package feature

import "fmt"

/*
Feature represents a property that can be observed on a sample. Samples
expose their values as an ordered slice, so every feature has a fixed
position (its index) in that slice.
*/
type Feature interface {
	Name() string
	Index() int
	Valid(string) (bool, error)
}

/*
DiscreteFeature represents a property that can be observed and that can only
take a value among a finite set. A DiscreteFeature without available values
accepts any value.
*/
type DiscreteFeature struct {
	name            string
	index           int
	availableValues []string
}

/*
NewDiscreteFeature takes a name string, the index of the feature's value in
samples and a slice of available value strings and returns a discrete
feature with the given name, index and available values.
*/
func NewDiscreteFeature(name string, index int, availableValues []string) *DiscreteFeature {
	return &DiscreteFeature{name, index, availableValues}
}

/*
Name returns a string with the name of the feature
*/
func (df *DiscreteFeature) Name() string {
	return df.name
}

// Index returns the position of the feature's value on a sample.
func (df *DiscreteFeature) Index() int {
	return df.index
}

/*
Valid receives a value and returns a boolean and an error. When the value
is included in the available values of the feature, or the feature has no
restriction on its values, the method returns true and nil. Otherwise it
returns false and an error describing the reason.
*/
func (df *DiscreteFeature) Valid(value string) (bool, error) {
	if len(df.availableValues) == 0 {
		return true, nil
	}
	for _, av := range df.availableValues {
		if av == value {
			return true, nil
		}
	}
	return false, fmt.Errorf("discrete feature %s got unknown value %s", df.Name(), value)
}

/*
AvailableValues returns a string slice with the values available for the feature
*/
func (df *DiscreteFeature) AvailableValues() []string {
	return df.availableValues
}

func (df *DiscreteFeature) String() string {
	return df.name
}

/*
ByName takes a slice of features and a name and returns the feature in the
slice with that name or nil if there is none.
*/
func ByName(features []Feature, name string) Feature {
	for _, f := range features {
		if f.Name() == name {
			return f
		}
	}
	return nil
}
