package id3

import (
	"github.com/pbanos/id3/dataset"
	"github.com/pbanos/id3/tree"
	"go.uber.org/zap"
)

/*
Pruner is an interface wrapping the Prune method, that can be used to
simplify a grown tree.

The Prune method takes a tree and a validation dataset, modifies the tree
in place and returns the number of internal nodes it collapsed into leaves
or an error.
*/
type Pruner interface {
	Prune(t *tree.Tree, validation dataset.Dataset) (int, error)
}

/*
PrunerFunc wraps a function with the Prune method signature to implement
the Pruner interface
*/
type PrunerFunc func(t *tree.Tree, validation dataset.Dataset) (int, error)

/*
Prune takes a tree and a validation dataset and invokes the PrunerFunc with
those parameters to return its results.
*/
func (pf PrunerFunc) Prune(t *tree.Tree, validation dataset.Dataset) (int, error) {
	return pf(t, validation)
}

/*
ReducedErrorPruner returns a Pruner that performs reduced-error pruning
with the given logger (which may be nil). In rounds, it
  - counts the validation samples the tree misclassifies,
  - for every internal node still in the tree, in pre-order, measures the
    misclassifications of the whole tree with that node alone acting as a
    leaf with its majority class,
  - collapses the node yielding the fewest misclassifications, if they are
    strictly fewer than the tree's; the first such node in pre-order wins
    ties.

Rounds are repeated until no node improves the tree. Validation errors
never increase from one round to the next and there are at most as many
rounds as internal nodes had the tree at the start.
*/
func ReducedErrorPruner(logger *zap.Logger) Pruner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return PrunerFunc(func(t *tree.Tree, validation dataset.Dataset) (int, error) {
		candidates := t.InternalNodes()
		var collapsed int
		for {
			bestError := t.Errors(validation)
			var best *tree.Node
			for _, n := range candidates {
				n.Class = n.MajorityClass
				e := t.Errors(validation)
				n.Class = ""
				if e < bestError {
					bestError = e
					best = n
				}
			}
			if best == nil {
				return collapsed, nil
			}
			attribute, value := best.AttributeIndex, best.Value
			removed := tree.New(best).InternalNodes()
			best.Collapse()
			candidates = withoutNodes(candidates, removed)
			collapsed++
			logger.Debug("collapsed node",
				zap.Int("attribute", attribute),
				zap.String("value", value),
				zap.String("class", best.Class),
				zap.Int("validationErrors", bestError),
				zap.Int("remainingCandidates", len(candidates)),
			)
		}
	})
}

/*
NoPruner returns a Pruner whose Prune method never collapses any node.
*/
func NoPruner() Pruner {
	return PrunerFunc(func(t *tree.Tree, validation dataset.Dataset) (int, error) {
		return 0, nil
	})
}

func withoutNodes(nodes, removed []*tree.Node) []*tree.Node {
	skip := make(map[*tree.Node]bool, len(removed))
	for _, n := range removed {
		skip[n] = true
	}
	result := nodes[:0]
	for _, n := range nodes {
		if !skip[n] {
			result = append(result, n)
		}
	}
	return result
}
