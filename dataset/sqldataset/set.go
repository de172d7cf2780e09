package sqldataset

import (
	"context"
	"fmt"

	"github.com/pbanos/id3/dataset"
	"github.com/pbanos/id3/feature"
)

/*
Set is a collection of samples stored on a database to which samples can be
written and from which they can be read. It implements dataset.Writer.

Its Read method returns all the samples in the database, ordered as they
were written.

Its Close method closes the adapter of the set.
*/
type Set interface {
	dataset.Writer
	Read(context.Context) ([]dataset.Sample, error)
	Close() error
}

type sqlSet struct {
	db                    Adapter
	attributes            []feature.Feature
	class                 feature.Feature
	columns               []string
	discreteValues        map[int]string
	inverseDiscreteValues map[string]int
	count                 int
}

/*
OpenSet takes a context, an Adapter to a db backend, the attribute features
and the class feature, and returns a Set backed by the given adapter or an
error if no set is available through the given adapter.

This function expects the adapter to have the samples and discrete value
tables already created.
*/
func OpenSet(ctx context.Context, dbAdapter Adapter, attributes []feature.Feature, class feature.Feature) (Set, error) {
	ss := &sqlSet{db: dbAdapter, attributes: attributes, class: class}
	err := ss.initColumns()
	if err != nil {
		return nil, err
	}
	err = ss.loadDiscreteValues(ctx)
	if err != nil {
		return nil, err
	}
	return ss, nil
}

/*
CreateSet takes a context, an Adapter, the attribute features and the class
feature and returns a Set backed by the given adapter or an error.

This function will ensure that the samples and discrete value tables are
created on the database, and that the discrete value table has all the
available values of the given features.
*/
func CreateSet(ctx context.Context, dbAdapter Adapter, attributes []feature.Feature, class feature.Feature) (Set, error) {
	ss := &sqlSet{db: dbAdapter, attributes: attributes, class: class}
	err := ss.initColumns()
	if err != nil {
		return nil, err
	}
	err = ss.db.CreateDiscreteValuesTable(ctx)
	if err != nil {
		return nil, err
	}
	err = ss.db.CreateSampleTable(ctx, ss.columns)
	if err != nil {
		return nil, err
	}
	err = ss.loadDiscreteValues(ctx)
	if err != nil {
		return nil, err
	}
	var values []string
	for _, f := range append(append([]feature.Feature{}, attributes...), class) {
		if df, ok := f.(*feature.DiscreteFeature); ok {
			values = append(values, df.AvailableValues()...)
		}
	}
	err = ss.ensureDiscreteValues(ctx, values)
	if err != nil {
		return nil, err
	}
	return ss, nil
}

func (ss *sqlSet) Write(ctx context.Context, samples []dataset.Sample) (int, error) {
	if len(samples) == 0 {
		return 0, nil
	}
	var values []string
	for _, s := range samples {
		values = append(values, s.Values()...)
		values = append(values, s.Class())
	}
	err := ss.ensureDiscreteValues(ctx, values)
	if err != nil {
		return 0, err
	}
	rawSamples := make([][]int, 0, len(samples))
	for i, s := range samples {
		rs, err := ss.newRawSample(s)
		if err != nil {
			return 0, fmt.Errorf("sample %d: %w", i, err)
		}
		rawSamples = append(rawSamples, rs)
	}
	n, err := ss.db.AddSamples(ctx, rawSamples, ss.columns)
	ss.count += n
	return n, err
}

func (ss *sqlSet) Count() int {
	return ss.count
}

// Flush does nothing, samples are inserted as they are written.
func (ss *sqlSet) Flush() error {
	return nil
}

func (ss *sqlSet) Read(ctx context.Context) ([]dataset.Sample, error) {
	var samples []dataset.Sample
	err := ss.db.IterateOnSamples(ctx, ss.columns, func(n int, rs []int) (bool, error) {
		s, err := ss.newSample(rs)
		if err != nil {
			return false, fmt.Errorf("reading sample %d: %v", n, err)
		}
		samples = append(samples, s)
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	return samples, nil
}

func (ss *sqlSet) Close() error {
	return ss.db.Close()
}

func (ss *sqlSet) newRawSample(s dataset.Sample) ([]int, error) {
	values := s.Values()
	rs := make([]int, 0, len(ss.attributes)+1)
	for _, f := range ss.attributes {
		if f.Index() >= len(values) {
			return nil, fmt.Errorf("no value for feature %s: %w", f.Name(), feature.ErrAttributeOutOfRange)
		}
		rs = append(rs, ss.inverseDiscreteValues[values[f.Index()]])
	}
	rs = append(rs, ss.inverseDiscreteValues[s.Class()])
	return rs, nil
}

func (ss *sqlSet) newSample(rs []int) (dataset.Sample, error) {
	if len(rs) != len(ss.columns) {
		return nil, fmt.Errorf("expected %d values, got %d", len(ss.columns), len(rs))
	}
	values := make([]string, len(ss.attributes))
	for i, f := range ss.attributes {
		v, ok := ss.discreteValues[rs[i]]
		if !ok {
			return nil, fmt.Errorf("unknown discrete value id %d for feature %s", rs[i], f.Name())
		}
		values[f.Index()] = v
	}
	class, ok := ss.discreteValues[rs[len(rs)-1]]
	if !ok {
		return nil, fmt.Errorf("unknown discrete value id %d for class", rs[len(rs)-1])
	}
	return dataset.NewSample(values, class), nil
}

func (ss *sqlSet) ensureDiscreteValues(ctx context.Context, values []string) error {
	var newValues []string
	pending := make(map[string]bool)
	for _, v := range values {
		if _, ok := ss.inverseDiscreteValues[v]; ok || pending[v] {
			continue
		}
		pending[v] = true
		newValues = append(newValues, v)
	}
	if len(newValues) == 0 {
		return nil
	}
	_, err := ss.db.AddDiscreteValues(ctx, newValues)
	if err != nil {
		return err
	}
	return ss.loadDiscreteValues(ctx)
}

func (ss *sqlSet) loadDiscreteValues(ctx context.Context) error {
	var err error
	ss.discreteValues, err = ss.db.ListDiscreteValues(ctx)
	if err != nil {
		return err
	}
	ss.inverseDiscreteValues = make(map[string]int)
	for k, v := range ss.discreteValues {
		ss.inverseDiscreteValues[v] = k
	}
	return nil
}

func (ss *sqlSet) initColumns() error {
	for i, f := range ss.attributes {
		if f.Index() != i {
			return fmt.Errorf("feature %s has index %d but is at position %d", f.Name(), f.Index(), i)
		}
	}
	features := append(append([]feature.Feature{}, ss.attributes...), ss.class)
	columnFeatures := make(map[string]feature.Feature)
	for _, f := range features {
		column, err := ss.db.ColumnName(f.Name())
		if err != nil {
			return fmt.Errorf("invalid feature %s: %v", f.Name(), err)
		}
		if of, ok := columnFeatures[column]; ok {
			return fmt.Errorf("%s and %s feature names translate to the same column name %s", f.Name(), of.Name(), column)
		}
		columnFeatures[column] = f
		ss.columns = append(ss.columns, column)
	}
	return nil
}
