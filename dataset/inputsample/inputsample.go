/*
Package inputsample reads the values of a sample interactively from an
io.Reader, one line per feature.
*/
package inputsample

import (
	"bufio"
	"fmt"
	"io"

	"github.com/pbanos/id3/feature"
)

/*
FeatureValueRequester represents a way to ask
for feature values and reject the given values.
*/
type FeatureValueRequester interface {
	RequestValueFor(feature.Feature) error
	RejectValueFor(feature.Feature, string) error
}

/*
ReadValues takes an io.Reader, a slice of features and a
FeatureValueRequester and returns the values of a sample, ordered by the
index of the features.

For every feature the value is first requested with the given
FeatureValueRequester and then read from the reader. The parsing expects
each value to be presented ending with the '\n' character, that is in new
lines. Lines will be read from the reader until one with a valid value for
the feature is found, rejecting the rest with the FeatureValueRequester's
RejectValueFor method.
*/
func ReadValues(r io.Reader, features []feature.Feature, fvr FeatureValueRequester) ([]string, error) {
	scanner := bufio.NewScanner(r)
	values := make([]string, len(features))
	for _, f := range features {
		if f.Index() < 0 || f.Index() >= len(features) {
			return nil, fmt.Errorf("feature %s has index %d out of range", f.Name(), f.Index())
		}
		if err := fvr.RequestValueFor(f); err != nil {
			return nil, err
		}
		v, err := readValue(scanner, f, fvr)
		if err != nil {
			return nil, fmt.Errorf("reading value for %s: %v", f.Name(), err)
		}
		values[f.Index()] = v
	}
	return values, nil
}

func readValue(scanner *bufio.Scanner, f feature.Feature, fvr FeatureValueRequester) (string, error) {
	for scanner.Scan() {
		line := scanner.Text()
		if ok, _ := f.Valid(line); ok {
			return line, nil
		}
		if err := fvr.RejectValueFor(f, line); err != nil {
			return "", err
		}
	}
	if err := scanner.Err(); err != nil {
		return "", err
	}
	return "", fmt.Errorf("EOF when requesting value")
}

type writerRequester struct {
	w io.Writer
}

/*
NewWriterRequester takes an io.Writer and returns a FeatureValueRequester
that prompts for values and reports rejected ones on it.
*/
func NewWriterRequester(w io.Writer) FeatureValueRequester {
	return &writerRequester{w}
}

func (wr *writerRequester) RequestValueFor(f feature.Feature) error {
	if df, ok := f.(*feature.DiscreteFeature); ok && len(df.AvailableValues()) > 0 {
		_, err := fmt.Fprintf(wr.w, "%s %v? ", f.Name(), df.AvailableValues())
		return err
	}
	_, err := fmt.Fprintf(wr.w, "%s? ", f.Name())
	return err
}

func (wr *writerRequester) RejectValueFor(f feature.Feature, v string) error {
	_, err := fmt.Fprintf(wr.w, "%q is not a valid value for %s\n", v, f.Name())
	return err
}
