/*
Package mongodataset reads and writes samples in a MongoDB collection.

Every sample is stored as a document with a field per feature, named after
the feature, holding the value of the sample for it.
*/
package mongodataset

import (
	"context"
	"fmt"
	"strings"

	"github.com/pbanos/id3/dataset"
	"github.com/pbanos/id3/feature"
	mgo "gopkg.in/mgo.v2"
	"gopkg.in/mgo.v2/bson"
)

/*
Collection is a dataset.Writer on a MongoDB collection from which the
written samples can be read back, ordered as they were written.

Its Close method closes the session of the collection.
*/
type Collection interface {
	dataset.Writer
	Read(context.Context) ([]dataset.Sample, error)
	Close() error
}

type mongoCollection struct {
	session    *mgo.Session
	attributes []feature.Feature
	class      feature.Feature
	count      int
}

const (
	samplesCollectionName = "samples"
)

/*
Open takes a context, a MongoDB database session, the attribute features
and the class feature and returns a Collection that works on the samples
collection of the default database for that session or an error if the
features cannot be stored or the collection cannot be indexed.
*/
func Open(ctx context.Context, session *mgo.Session, attributes []feature.Feature, class feature.Feature) (Collection, error) {
	mc := &mongoCollection{session: session, attributes: attributes, class: class}
	err := mc.ensureIndexes(ctx)
	if err != nil {
		return nil, err
	}
	return mc, nil
}

/*
Dial takes a context, a MongoDB URL, the attribute features and the class
feature, dials the server and opens a Collection on the database in the URL.
*/
func Dial(ctx context.Context, url string, attributes []feature.Feature, class feature.Feature) (Collection, error) {
	session, err := mgo.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("connecting to %s: %v", url, err)
	}
	mc, err := Open(ctx, session, attributes, class)
	if err != nil {
		session.Close()
		return nil, err
	}
	return mc, nil
}

func (mc *mongoCollection) Write(ctx context.Context, samples []dataset.Sample) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if len(samples) == 0 {
		return 0, nil
	}
	docs := make([]interface{}, 0, len(samples))
	for i, s := range samples {
		doc, err := mc.document(s)
		if err != nil {
			return 0, fmt.Errorf("sample %d: %v", i, err)
		}
		docs = append(docs, doc)
	}
	err := mc.samplesCollection().Insert(docs...)
	if err != nil {
		return 0, err
	}
	mc.count += len(samples)
	return len(samples), nil
}

func (mc *mongoCollection) Count() int {
	return mc.count
}

// Flush does nothing, samples are inserted as they are written.
func (mc *mongoCollection) Flush() error {
	return nil
}

func (mc *mongoCollection) Read(ctx context.Context) ([]dataset.Sample, error) {
	var samples []dataset.Sample
	var doc bson.M
	iter := mc.samplesCollection().Find(nil).Sort("_id").Iter()
	for iter.Next(&doc) {
		if err := ctx.Err(); err != nil {
			iter.Close()
			return nil, err
		}
		s, err := mc.sample(doc)
		if err != nil {
			iter.Close()
			return nil, fmt.Errorf("reading sample %d: %v", len(samples), err)
		}
		samples = append(samples, s)
		doc = nil
	}
	if err := iter.Close(); err != nil {
		return nil, err
	}
	return samples, nil
}

func (mc *mongoCollection) Close() error {
	mc.session.Close()
	return nil
}

func (mc *mongoCollection) document(s dataset.Sample) (bson.M, error) {
	values := s.Values()
	doc := make(bson.M, len(mc.attributes)+1)
	for _, f := range mc.attributes {
		if f.Index() >= len(values) {
			return nil, fmt.Errorf("no value for feature %s: %w", f.Name(), feature.ErrAttributeOutOfRange)
		}
		doc[f.Name()] = values[f.Index()]
	}
	doc[mc.class.Name()] = s.Class()
	return doc, nil
}

func (mc *mongoCollection) sample(doc bson.M) (dataset.Sample, error) {
	values := make([]string, len(mc.attributes))
	for _, f := range mc.attributes {
		v, err := stringField(doc, f.Name())
		if err != nil {
			return nil, err
		}
		values[f.Index()] = v
	}
	class, err := stringField(doc, mc.class.Name())
	if err != nil {
		return nil, err
	}
	return dataset.NewSample(values, class), nil
}

func stringField(doc bson.M, name string) (string, error) {
	v, ok := doc[name]
	if !ok {
		return "", fmt.Errorf("document has no field %q", name)
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("field %q holds a %T instead of a string", name, v)
	}
	return s, nil
}

func (mc *mongoCollection) ensureIndexes(ctx context.Context) error {
	for _, f := range append(append([]feature.Feature{}, mc.attributes...), mc.class) {
		if err := ctx.Err(); err != nil {
			return err
		}
		fName := f.Name()
		if fName == "_id" {
			return fmt.Errorf("invalid feature name %q: reserved collection field", "_id")
		}
		if strings.ContainsAny(fName, ".$") {
			return fmt.Errorf("invalid feature name %q: contains reserved characters %q or %q", fName, ".", "$")
		}
		index := mgo.Index{
			Key:        []string{fName},
			Background: true,
			Sparse:     true,
		}
		err := mc.samplesCollection().EnsureIndex(index)
		if err != nil {
			return err
		}
	}
	return nil
}

func (mc *mongoCollection) samplesCollection() *mgo.Collection {
	return mc.session.DB("").C(samplesCollectionName)
}
