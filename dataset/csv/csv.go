/*
Package csv reads and writes samples as CSV, with a header row naming the
column of every feature and one row per sample.
*/
package csv

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/pbanos/id3/dataset"
	"github.com/pbanos/id3/feature"
)

type csvWriter struct {
	count      int
	attributes []feature.Feature
	class      feature.Feature
	w          *csv.Writer
}

// column tells where a CSV column goes on a sample: to the value at
// the feature's index or, for the class feature, to the class.
type column struct {
	f       feature.Feature
	isClass bool
}

/*
ReadSamples takes an io.Reader for a CSV stream, the attribute features and
the class feature and returns the samples parsed from the reader or an
error.

The header or first row of the CSV content is expected to consist of the
names of the given features, in any order, each present exactly once. The
rest of the rows should consist of valid values for each feature. Sample
values are ordered by the index of their attribute features.
*/
func ReadSamples(reader io.Reader, attributes []feature.Feature, class feature.Feature) ([]dataset.Sample, error) {
	samples := []dataset.Sample{}
	err := ReadSamplesBySample(reader, attributes, class, func(_ int, s dataset.Sample) (bool, error) {
		samples = append(samples, s)
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	return samples, nil
}

/*
ReadSamplesBySample takes an io.Reader for a CSV stream, the attribute
features, the class feature and a lambda function on an integer and a
dataset.Sample that returns a boolean value. It parses the samples from the
reader and for each it calls the lambda function with the sample and its
index as parameters. If the lambda function returns true, it will continue
processing the next sample, otherwise it will stop. An error is returned if
something goes wrong when reading the stream or parsing a sample.
*/
func ReadSamplesBySample(reader io.Reader, attributes []feature.Feature, class feature.Feature, lambda func(int, dataset.Sample) (bool, error)) error {
	r := csv.NewReader(reader)
	header, err := r.Read()
	if err != nil {
		return fmt.Errorf("reading header: %v", err)
	}
	columns, err := parseHeader(header, attributes, class)
	if err != nil {
		return fmt.Errorf("parsing header: %v", err)
	}
	for l := 2; ; l++ {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("reading body: %v", err)
		}
		sample, err := parseRow(row, columns, len(attributes))
		if err != nil {
			return fmt.Errorf("parsing line %d: %v", l, err)
		}
		ok, err := lambda(l-2, sample)
		if err != nil {
			return err
		}
		if !ok {
			break
		}
	}
	return nil
}

/*
ReadSamplesFromFilePath takes a filepath string, the attribute features and
the class feature, opens the file to which the filepath points to (or uses
os.Stdin if the filepath is "") and uses ReadSamples to return the samples
in it or an error.
*/
func ReadSamplesFromFilePath(filepath string, attributes []feature.Feature, class feature.Feature) ([]dataset.Sample, error) {
	var f *os.File
	var err error
	if filepath == "" {
		f = os.Stdin
	} else {
		f, err = os.Open(filepath)
		if err != nil {
			return nil, fmt.Errorf("reading samples: %v", err)
		}
		defer f.Close()
	}
	samples, err := ReadSamples(f, attributes, class)
	if err != nil {
		err = fmt.Errorf("parsing CSV file %s: %v", filepath, err)
	}
	return samples, err
}

/*
NewWriter takes an io.Writer, the attribute features and the class feature
and returns a dataset.Writer that will write samples on the io.Writer as
CSV rows, after a header with the names of the attribute features in index
order followed by the name of the class feature.
*/
func NewWriter(writer io.Writer, attributes []feature.Feature, class feature.Feature) (dataset.Writer, error) {
	w := csv.NewWriter(writer)
	record := make([]string, 0, len(attributes)+1)
	for _, f := range attributes {
		record = append(record, f.Name())
	}
	record = append(record, class.Name())
	err := w.Write(record)
	if err != nil {
		return nil, fmt.Errorf("writing CSV header: %v", err)
	}
	return &csvWriter{attributes: attributes, class: class, w: w}, nil
}

/*
WriteSamples takes a writer, a slice of samples, the attribute features and
the class feature and dumps the samples to the writer in CSV format. It
returns an error if something went wrong when writing to the writer.
*/
func WriteSamples(ctx context.Context, writer io.Writer, samples []dataset.Sample, attributes []feature.Feature, class feature.Feature) error {
	cw, err := NewWriter(writer, attributes, class)
	if err != nil {
		return err
	}
	_, err = cw.Write(ctx, samples)
	if err != nil {
		return err
	}
	return cw.Flush()
}

func parseHeader(header []string, attributes []feature.Feature, class feature.Feature) ([]column, error) {
	byName := make(map[string]column, len(attributes)+1)
	for _, f := range attributes {
		if f.Index() < 0 || f.Index() >= len(attributes) {
			return nil, fmt.Errorf("feature %s has index %d out of range", f.Name(), f.Index())
		}
		byName[f.Name()] = column{f: f}
	}
	byName[class.Name()] = column{f: class, isClass: true}
	seen := make(map[string]bool, len(header))
	columns := make([]column, 0, len(header))
	for _, name := range header {
		c, ok := byName[name]
		if !ok {
			return nil, fmt.Errorf("reference to unknown feature %s", name)
		}
		if seen[name] {
			return nil, fmt.Errorf("feature %s appears more than once", name)
		}
		seen[name] = true
		columns = append(columns, c)
	}
	for name := range byName {
		if !seen[name] {
			return nil, fmt.Errorf("missing column for feature %s", name)
		}
	}
	return columns, nil
}

func parseRow(row []string, columns []column, width int) (dataset.Sample, error) {
	if len(row) != len(columns) {
		return nil, fmt.Errorf("expected %d values, got %d", len(columns), len(row))
	}
	values := make([]string, width)
	var class string
	for i, c := range columns {
		v := row[i]
		if ok, err := c.f.Valid(v); !ok {
			return nil, fmt.Errorf("invalid value %q for feature %s: %v", v, c.f.Name(), err)
		}
		if c.isClass {
			class = v
		} else {
			values[c.f.Index()] = v
		}
	}
	return dataset.NewSample(values, class), nil
}

func (cw *csvWriter) Count() int {
	return cw.count
}

func (cw *csvWriter) Write(ctx context.Context, samples []dataset.Sample) (int, error) {
	for n, s := range samples {
		if err := ctx.Err(); err != nil {
			return n, err
		}
		if err := cw.WriteSample(s); err != nil {
			return n, err
		}
	}
	return len(samples), nil
}

func (cw *csvWriter) WriteSample(s dataset.Sample) error {
	values := s.Values()
	record := make([]string, 0, len(cw.attributes)+1)
	for _, f := range cw.attributes {
		if f.Index() >= len(values) {
			return fmt.Errorf("writing sample %d: no value for feature %s: %w", cw.count+1, f.Name(), feature.ErrAttributeOutOfRange)
		}
		record = append(record, values[f.Index()])
	}
	record = append(record, s.Class())
	err := cw.w.Write(record)
	if err != nil {
		return fmt.Errorf("writing CSV row for sample %d: %v", cw.count+1, err)
	}
	cw.count++
	return nil
}

func (cw *csvWriter) Flush() error {
	cw.w.Flush()
	return cw.w.Error()
}
