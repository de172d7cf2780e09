package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/pbanos/id3/dataset"
	"github.com/pbanos/id3/dataset/csv"
	samplesjson "github.com/pbanos/id3/dataset/json"
	"github.com/pbanos/id3/dataset/mongodataset"
	"github.com/pbanos/id3/dataset/sqldataset"
	"github.com/pbanos/id3/dataset/sqldataset/pgadapter"
	"github.com/pbanos/id3/dataset/sqldataset/sqlite3adapter"
	"github.com/pbanos/id3/feature"
	"go.uber.org/multierr"
)

const samplesFlagUsage = "a CSV (.csv) or JSON lines (.jsonl) file, an SQLite3 (.db) file, a PostgreSQL DB connection URL (postgresql://...) or a MongoDB URL (mongodb://...)"

type sampleSource interface {
	Read(context.Context) ([]dataset.Sample, error)
	Close() error
}

type sampleSink interface {
	dataset.Writer
	Close() error
}

type fileSink struct {
	dataset.Writer
	f *os.File
}

func isPostgreSQLURL(location string) bool {
	return strings.HasPrefix(location, "postgresql://") || strings.HasPrefix(location, "postgres://")
}

func isJSONLines(location string) bool {
	return strings.HasSuffix(location, ".jsonl") || strings.HasSuffix(location, ".ndjson")
}

/*
readSamples reads the samples at the given location, STDIN as CSV if it is
empty, using the given features to interpret them.
*/
func readSamples(ctx context.Context, rcc *rootCmdConfig, location string, attributes []feature.Feature, class feature.Feature) ([]dataset.Sample, error) {
	switch {
	case location == "":
		rcc.Logf("Reading samples from STDIN...")
		return csv.ReadSamples(os.Stdin, attributes, class)
	case isPostgreSQLURL(location), strings.HasSuffix(location, ".db"), strings.HasPrefix(location, "mongodb://"):
		src, err := openSampleSource(ctx, rcc, location, attributes, class)
		if err != nil {
			return nil, err
		}
		samples, err := src.Read(ctx)
		return samples, multierr.Append(err, src.Close())
	case isJSONLines(location):
		rcc.Logf("Opening %s to read samples as JSON lines...", location)
		f, err := os.Open(location)
		if err != nil {
			return nil, fmt.Errorf("opening samples at %s: %v", location, err)
		}
		defer f.Close()
		return samplesjson.ReadSamplesFor(f, attributes, class)
	}
	rcc.Logf("Opening %s to read samples...", location)
	return csv.ReadSamplesFromFilePath(location, attributes, class)
}

func openSampleSource(ctx context.Context, rcc *rootCmdConfig, location string, attributes []feature.Feature, class feature.Feature) (sampleSource, error) {
	if strings.HasPrefix(location, "mongodb://") {
		rcc.Logf("Connecting to MongoDB at %s to read samples...", location)
		return mongodataset.Dial(ctx, location, attributes, class)
	}
	adapter, err := sqlAdapter(rcc, location)
	if err != nil {
		return nil, err
	}
	s, err := sqldataset.OpenSet(ctx, adapter, attributes, class)
	if err != nil {
		return nil, multierr.Append(err, adapter.Close())
	}
	return s, nil
}

/*
createSampleSink returns a sink writing samples to the given location,
STDOUT as CSV if it is empty, using the given features to store them.
*/
func createSampleSink(ctx context.Context, rcc *rootCmdConfig, location string, attributes []feature.Feature, class feature.Feature) (sampleSink, error) {
	switch {
	case strings.HasPrefix(location, "mongodb://"):
		rcc.Logf("Connecting to MongoDB at %s to write samples...", location)
		return mongodataset.Dial(ctx, location, attributes, class)
	case isPostgreSQLURL(location), strings.HasSuffix(location, ".db"):
		adapter, err := sqlAdapter(rcc, location)
		if err != nil {
			return nil, err
		}
		s, err := sqldataset.CreateSet(ctx, adapter, attributes, class)
		if err != nil {
			return nil, multierr.Append(err, adapter.Close())
		}
		return s, nil
	}
	f := os.Stdout
	if location != "" {
		rcc.Logf("Creating %s to write samples...", location)
		var err error
		f, err = os.Create(location)
		if err != nil {
			return nil, fmt.Errorf("creating %s: %v", location, err)
		}
	}
	if isJSONLines(location) {
		return &fileSink{samplesjson.NewWriter(f), f}, nil
	}
	w, err := csv.NewWriter(f, attributes, class)
	if err != nil {
		return nil, multierr.Append(err, closeUnlessStdout(f))
	}
	return &fileSink{w, f}, nil
}

func sqlAdapter(rcc *rootCmdConfig, location string) (sqldataset.Adapter, error) {
	if isPostgreSQLURL(location) {
		rcc.Logf("Creating PostgreSQL adapter for url %s...", location)
		return pgadapter.New(location)
	}
	rcc.Logf("Creating SQLite3 adapter for file %s...", location)
	return sqlite3adapter.New(location)
}

func (fs *fileSink) Close() error {
	return multierr.Append(fs.Flush(), closeUnlessStdout(fs.f))
}

func closeUnlessStdout(f *os.File) error {
	if f == os.Stdout {
		return nil
	}
	return f.Close()
}
