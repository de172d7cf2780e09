/*
Package dataset provides the samples trees learn from, an in-memory
Dataset with the statistics the tree builder needs (class proportions,
entropy, observed values, binary partitions) and the random helpers that
split datasets and choose majority classes.
*/
package dataset

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/pbanos/id3/feature"
	"gonum.org/v1/gonum/stat"
)

// Epsilon is the tolerance under which two proportions or entropies are
// considered equal.
const Epsilon = 0.000001

// DatasetError represents an error related with datasets
type DatasetError string

const (
	// ErrEmptyDataset is returned when an operation requires at least one sample.
	ErrEmptyDataset = DatasetError("dataset has no samples")
	// ErrMissingClass is returned for samples without a class.
	ErrMissingClass = DatasetError("sample has no class")
	// ErrMissingValues is returned for samples without values.
	ErrMissingValues = DatasetError("sample has no values")
	// ErrInconsistentWidth is returned when samples have different numbers of values.
	ErrInconsistentWidth = DatasetError("samples have different numbers of values")
)

func (de DatasetError) Error() string {
	return string(de)
}

/*
Dataset represents an ordered collection of samples.

Its Entropy method returns the entropy of the dataset: a measure of the
disinformation we have on the classes of samples that belong to it.

Its Classes method returns the distinct classes of the samples in the order
they are first encountered, and CountClasses and ClassProportions return
the number and fraction of samples of each class.

Its FeatureValues method takes an attribute index and returns the distinct
values samples take on it, in the order they are first encountered.

Its Partition method takes a feature.Criterion and returns the subset of
samples satisfying it and the subset of samples that do not.
*/
type Dataset interface {
	Count() int
	Width() int
	Samples() []Sample
	Classes() []string
	CountClasses() map[string]int
	ClassProportions() map[string]float64
	Entropy() float64
	FeatureValues(index int) ([]string, error)
	Partition(feature.Criterion) (Dataset, Dataset, error)
}

type memoryDataset struct {
	entropy *float64
	classes []string
	samples []Sample
}

/*
New takes a slice of samples and returns a dataset built with them. The
dataset keeps the given slice, it does not copy it.
*/
func New(samples []Sample) Dataset {
	return &memoryDataset{samples: samples}
}

func (s *memoryDataset) Count() int {
	return len(s.samples)
}

// Width returns the number of values of the first sample, 0 if the dataset
// is empty.
func (s *memoryDataset) Width() int {
	if len(s.samples) == 0 {
		return 0
	}
	return len(s.samples[0].Values())
}

func (s *memoryDataset) Samples() []Sample {
	return s.samples
}

func (s *memoryDataset) Classes() []string {
	if s.classes != nil {
		return s.classes
	}
	classes := []string{}
	encountered := make(map[string]bool)
	for _, sample := range s.samples {
		if !encountered[sample.Class()] {
			encountered[sample.Class()] = true
			classes = append(classes, sample.Class())
		}
	}
	s.classes = classes
	return classes
}

func (s *memoryDataset) CountClasses() map[string]int {
	result := make(map[string]int)
	for _, sample := range s.samples {
		result[sample.Class()]++
	}
	return result
}

func (s *memoryDataset) ClassProportions() map[string]float64 {
	result := make(map[string]float64)
	count := float64(len(s.samples))
	for c, n := range s.CountClasses() {
		result[c] = float64(n) / count
	}
	return result
}

func (s *memoryDataset) Entropy() float64 {
	if s.entropy != nil {
		return *s.entropy
	}
	result := Entropy(s)
	s.entropy = &result
	return result
}

func (s *memoryDataset) FeatureValues(index int) ([]string, error) {
	result := []string{}
	encountered := make(map[string]bool)
	for i, sample := range s.samples {
		values := sample.Values()
		if index < 0 || index >= len(values) {
			return nil, fmt.Errorf("listing values of attribute %d on sample %d: %w", index, i, feature.ErrAttributeOutOfRange)
		}
		if !encountered[values[index]] {
			encountered[values[index]] = true
			result = append(result, values[index])
		}
	}
	return result, nil
}

func (s *memoryDataset) Partition(c feature.Criterion) (Dataset, Dataset, error) {
	var pos, neg []Sample
	for _, sample := range s.samples {
		ok, err := c.SatisfiedBy(sample)
		if err != nil {
			return nil, nil, err
		}
		if ok {
			pos = append(pos, sample)
		} else {
			neg = append(neg, sample)
		}
	}
	return New(pos), New(neg), nil
}

/*
Entropy takes a dataset and returns -Σ p·ln(p) over the proportions p of
its classes. An empty dataset has an entropy of 0.
*/
func Entropy(d Dataset) float64 {
	if d.Count() == 0 {
		return 0.0
	}
	proportions := d.ClassProportions()
	p := make([]float64, 0, len(proportions))
	for _, c := range d.Classes() {
		p = append(p, proportions[c])
	}
	return stat.Entropy(p)
}

/*
WeightedEntropy takes the two datasets of a binary partition and returns
the average of their entropies weighted by their share of samples.
*/
func WeightedEntropy(pos, neg Dataset) float64 {
	total := float64(pos.Count() + neg.Count())
	if total == 0 {
		return 0.0
	}
	return pos.Entropy()*float64(pos.Count())/total + neg.Entropy()*float64(neg.Count())/total
}

/*
MostCommonClass takes a dataset and a random generator and returns the class
with the highest proportion of samples in the dataset. Proportions closer
than Epsilon are considered tied, and ties are broken choosing uniformly at
random with the given generator among the tied classes. An error wrapping
ErrEmptyDataset is returned if the dataset has no samples.
*/
func MostCommonClass(d Dataset, rnd *rand.Rand) (string, error) {
	if d.Count() == 0 {
		return "", fmt.Errorf("choosing most common class: %w", ErrEmptyDataset)
	}
	var maxProp float64
	var commonClasses []string
	proportions := d.ClassProportions()
	for _, c := range d.Classes() {
		p := proportions[c]
		if p > maxProp {
			maxProp = p
			commonClasses = append(commonClasses[:0], c)
		} else if AboutEqual(p, maxProp) {
			commonClasses = append(commonClasses, c)
		}
	}
	return commonClasses[rnd.Intn(len(commonClasses))], nil
}

/*
Split takes a dataset, a ratio between 0 and 1 and a random generator,
shuffles the samples of the dataset in place and returns a dataset with the
first int(ratio·N) of them and a dataset with the rest.
*/
func Split(d Dataset, ratio float64, rnd *rand.Rand) (Dataset, Dataset) {
	samples := d.Samples()
	rnd.Shuffle(len(samples), func(i, j int) {
		samples[i], samples[j] = samples[j], samples[i]
	})
	cut := int(ratio * float64(len(samples)))
	return New(samples[:cut:cut]), New(samples[cut:])
}

// AboutEqual returns whether a and b differ by less than Epsilon.
func AboutEqual(a, b float64) bool {
	return math.Abs(a-b) < Epsilon
}
