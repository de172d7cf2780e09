package dataset

import (
	"fmt"
	"strings"
)

/*
Sample represents an item to classify or from which to learn how to classify
them.

Its Values method returns the ordered categorical values of the sample, its
Class method returns the label the sample is known to belong to.
*/
type Sample interface {
	Values() []string
	Class() string
}

type sample struct {
	values []string
	class  string
}

/*
NewSample takes a slice of values and a class and returns a sample.
*/
func NewSample(values []string, class string) Sample {
	return &sample{values, class}
}

func (s *sample) Values() []string {
	return s.values
}

func (s *sample) Class() string {
	return s.class
}

func (s *sample) String() string {
	return fmt.Sprintf("[%s => %s]", strings.Join(s.values, ","), s.class)
}

/*
Validate takes a slice of samples and returns an error if any of them
violates the preconditions to learn from it: every sample must have
a non-empty class and the same number of values as the rest.
The returned errors wrap ErrMissingClass or ErrInconsistentWidth.
*/
func Validate(samples []Sample) error {
	for i, s := range samples {
		if s == nil {
			return fmt.Errorf("sample %d: %w", i, ErrMissingValues)
		}
		if s.Values() == nil {
			return fmt.Errorf("sample %d: %w", i, ErrMissingValues)
		}
		if s.Class() == "" {
			return fmt.Errorf("sample %d: %w", i, ErrMissingClass)
		}
		if len(s.Values()) != len(samples[0].Values()) {
			return fmt.Errorf("sample %d has %d values, sample 0 has %d: %w", i, len(s.Values()), len(samples[0].Values()), ErrInconsistentWidth)
		}
	}
	return nil
}
