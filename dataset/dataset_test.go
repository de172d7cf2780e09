package dataset_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pbanos/id3/dataset"
	"github.com/pbanos/id3/feature"
)

func withClasses(classes ...string) dataset.Dataset {
	samples := make([]dataset.Sample, 0, len(classes))
	for i, c := range classes {
		samples = append(samples, dataset.NewSample([]string{string(rune('a' + i%3))}, c))
	}
	return dataset.New(samples)
}

func TestEntropy(t *testing.T) {
	cases := []struct {
		name    string
		d       dataset.Dataset
		entropy float64
	}{
		{"empty", dataset.New(nil), 0},
		{"pure", withClasses("Y", "Y", "Y"), 0},
		{"two uniform classes", withClasses("Y", "N", "Y", "N"), math.Log(2)},
		{"four uniform classes", withClasses("A", "B", "C", "D"), math.Log(4)},
		{"skewed", withClasses("Y", "Y", "Y", "N"), -(0.75*math.Log(0.75) + 0.25*math.Log(0.25))},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.InDelta(t, c.entropy, c.d.Entropy(), 1e-9)
			assert.InDelta(t, c.entropy, dataset.Entropy(c.d), 1e-9)
		})
	}
}

func TestEntropyIsMaximalWhenUniform(t *testing.T) {
	uniform := withClasses("A", "B", "C", "A", "B", "C").Entropy()
	skewed := withClasses("A", "A", "C", "A", "B", "C").Entropy()
	assert.InDelta(t, math.Log(3), uniform, 1e-9)
	assert.Less(t, skewed, uniform)
}

func TestWeightedEntropy(t *testing.T) {
	pos := withClasses("Y", "Y")
	neg := withClasses("Y", "N")
	assert.InDelta(t, 0.5*math.Log(2), dataset.WeightedEntropy(pos, neg), 1e-9)
	assert.InDelta(t, math.Log(2), dataset.WeightedEntropy(dataset.New(nil), neg), 1e-9)
	assert.Zero(t, dataset.WeightedEntropy(dataset.New(nil), dataset.New(nil)))
}

func TestClassesAndProportions(t *testing.T) {
	d := withClasses("N", "Y", "N", "M")
	assert.Equal(t, []string{"N", "Y", "M"}, d.Classes())
	assert.Equal(t, map[string]int{"N": 2, "Y": 1, "M": 1}, d.CountClasses())
	assert.Equal(t, map[string]float64{"N": 0.5, "Y": 0.25, "M": 0.25}, d.ClassProportions())
}

func TestFeatureValues(t *testing.T) {
	d := dataset.New([]dataset.Sample{
		dataset.NewSample([]string{"b", "x"}, "Y"),
		dataset.NewSample([]string{"a", "x"}, "N"),
		dataset.NewSample([]string{"b", "z"}, "N"),
	})
	assert.Equal(t, 2, d.Width())
	values, err := d.FeatureValues(0)
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a"}, values)
	values, err = d.FeatureValues(1)
	require.NoError(t, err)
	assert.Equal(t, []string{"x", "z"}, values)
	_, err = d.FeatureValues(2)
	require.ErrorIs(t, err, feature.ErrAttributeOutOfRange)
}

func TestPartition(t *testing.T) {
	d := dataset.New([]dataset.Sample{
		dataset.NewSample([]string{"b", "x"}, "Y"),
		dataset.NewSample([]string{"a", "x"}, "N"),
		dataset.NewSample([]string{"b", "z"}, "N"),
	})
	pos, neg, err := d.Partition(feature.NewEqualityCriterion(0, "b"))
	require.NoError(t, err)
	require.Equal(t, 2, pos.Count())
	require.Equal(t, 1, neg.Count())
	assert.Equal(t, d.Samples()[0], pos.Samples()[0])
	assert.Equal(t, d.Samples()[2], pos.Samples()[1])
	assert.Equal(t, d.Samples()[1], neg.Samples()[0])

	_, _, err = d.Partition(feature.NewEqualityCriterion(5, "b"))
	require.ErrorIs(t, err, feature.ErrAttributeOutOfRange)
}

func TestMostCommonClass(t *testing.T) {
	rnd := rand.New(rand.NewSource(1))
	c, err := dataset.MostCommonClass(withClasses("N", "Y", "Y"), rnd)
	require.NoError(t, err)
	assert.Equal(t, "Y", c)

	_, err = dataset.MostCommonClass(dataset.New(nil), rnd)
	require.ErrorIs(t, err, dataset.ErrEmptyDataset)
}

func TestMostCommonClassBreaksTiesUniformly(t *testing.T) {
	d := withClasses("Y", "N", "M", "Y", "N", "M", "Z")
	rnd := rand.New(rand.NewSource(5))
	counts := make(map[string]int)
	const runs = 9000
	for i := 0; i < runs; i++ {
		c, err := dataset.MostCommonClass(d, rnd)
		require.NoError(t, err)
		counts[c]++
	}
	assert.Zero(t, counts["Z"])
	for _, c := range []string{"Y", "N", "M"} {
		assert.InDelta(t, runs/3, counts[c], runs/20, "class %s", c)
	}
}

func TestSplit(t *testing.T) {
	samples := make([]dataset.Sample, 0, 10)
	for i := 0; i < 10; i++ {
		samples = append(samples, dataset.NewSample([]string{string(rune('a' + i))}, "Y"))
	}
	original := append([]dataset.Sample{}, samples...)
	training, validation := dataset.Split(dataset.New(samples), 0.6, rand.New(rand.NewSource(3)))
	require.Equal(t, 6, training.Count())
	require.Equal(t, 4, validation.Count())
	all := append(append([]dataset.Sample{}, training.Samples()...), validation.Samples()...)
	assert.ElementsMatch(t, original, all)
	assert.Equal(t, samples, all, "samples are shuffled in place")

	training, validation = dataset.Split(dataset.New(nil), 0.6, rand.New(rand.NewSource(3)))
	assert.Zero(t, training.Count())
	assert.Zero(t, validation.Count())
}

func TestSplitIsSeeded(t *testing.T) {
	split := func() []dataset.Sample {
		samples := make([]dataset.Sample, 0, 20)
		for i := 0; i < 20; i++ {
			samples = append(samples, dataset.NewSample([]string{string(rune('a' + i))}, "Y"))
		}
		training, _ := dataset.Split(dataset.New(samples), 0.5, rand.New(rand.NewSource(11)))
		return training.Samples()
	}
	assert.Equal(t, split(), split())
}

func TestAboutEqual(t *testing.T) {
	assert.True(t, dataset.AboutEqual(0.5, 0.5+dataset.Epsilon/2))
	assert.False(t, dataset.AboutEqual(0.5, 0.5+dataset.Epsilon*2))
}
