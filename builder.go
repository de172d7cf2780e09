package id3

import (
	"math/rand"

	"github.com/pbanos/id3/dataset"
	"github.com/pbanos/id3/feature"
	"github.com/pbanos/id3/tree"
)

// split represents a binary partition of a dataset by an equality
// criterion, with the weighted entropy of its two sides.
type split struct {
	criterion feature.Criterion
	pos, neg  dataset.Dataset
	entropy   float64
}

/*
ConstructTree takes a dataset and a random generator and grows a tree that
classifies its samples:
  - an empty dataset produces a nil node, meaning no data reaches there;
  - a dataset whose samples all share a class produces a leaf with it;
  - otherwise the equality test on an attribute value with the lowest
    weighted entropy is chosen, trying attributes in index order and values
    in the order they are first encountered, the first one winning ties. If
    that entropy is not below the entropy of the dataset the result is a
    leaf with its most common class, else an internal node with the test,
    the most common class and subtrees grown from both sides of the
    partition.

The random generator breaks ties between most common classes.
dataset.ErrMissingClass is returned if some sample has no class, and an
error wrapping feature.ErrAttributeOutOfRange if some sample has no value
for an evaluated attribute.
*/
func ConstructTree(d dataset.Dataset, rnd *rand.Rand) (*tree.Node, error) {
	if d.Count() == 0 {
		return nil, nil
	}
	classes := d.Classes()
	for _, class := range classes {
		if class == "" {
			return nil, dataset.ErrMissingClass
		}
	}
	if len(classes) == 1 {
		return tree.NewLeaf(classes[0]), nil
	}
	best, err := bestSplit(d)
	if err != nil {
		return nil, err
	}
	majorityClass, err := dataset.MostCommonClass(d, rnd)
	if err != nil {
		return nil, err
	}
	curEntropy := d.Entropy()
	if best == nil || dataset.AboutEqual(curEntropy, best.entropy) || best.entropy > curEntropy {
		return tree.NewLeaf(majorityClass), nil
	}
	pos, err := ConstructTree(best.pos, rnd)
	if err != nil {
		return nil, err
	}
	neg, err := ConstructTree(best.neg, rnd)
	if err != nil {
		return nil, err
	}
	return tree.NewInternal(best.criterion.Index(), best.criterion.Value(), majorityClass, pos, neg), nil
}

func bestSplit(d dataset.Dataset) (*split, error) {
	var result *split
	for i := 0; i < d.Width(); i++ {
		values, err := d.FeatureValues(i)
		if err != nil {
			return nil, err
		}
		for _, v := range values {
			c := feature.NewEqualityCriterion(i, v)
			pos, neg, err := d.Partition(c)
			if err != nil {
				return nil, err
			}
			e := dataset.WeightedEntropy(pos, neg)
			if result == nil || e < result.entropy {
				result = &split{c, pos, neg, e}
			}
		}
	}
	return result, nil
}
