/*
Package tree provides binary decision trees over categorical attributes:
their nodes, the classification of samples, their evaluation against
datasets, their textual rendering and stores in which to keep them.
*/
package tree

import (
	"errors"
	"strings"

	"github.com/pbanos/id3/dataset"
	"github.com/pbanos/id3/feature"
)

// ClassificationError represents an error related with classifications
type ClassificationError string

const (
	/*
		ErrEmptyTree is the error returned when trying to classify a
		sample with a tree that has no nodes, because it was grown from
		an empty dataset.
	*/
	ErrEmptyTree = ClassificationError("tree has no nodes")
	/*
		ErrUntrainedBranch is the error returned when the classification
		of a sample leads to a branch of the tree that no training sample
		reached, as opposed to cases where the sample itself is invalid.
	*/
	ErrUntrainedBranch = ClassificationError("no training data reached the branch for this kind of sample")
)

func (ce ClassificationError) Error() string {
	return string(ce)
}

// Tree represents a decision tree. It is composed of the root node
// of the tree, which is nil for trees grown from no data, and optionally
// the features describing the sample values and the name of the class
// it predicts.
type Tree struct {
	Root     *Node
	Features []feature.Feature
	Label    string
}

// New takes a root node and returns a tree with it.
func New(root *Node) *Tree {
	return &Tree{Root: root}
}

// Classify takes the values of a sample and returns the class the tree
// predicts for it. It returns ErrEmptyTree if the tree has no nodes,
// ErrUntrainedBranch if the sample leads to a nil subtree and an error
// wrapping feature.ErrAttributeOutOfRange if the sample has no value for
// a tested attribute.
func (t *Tree) Classify(values []string) (string, error) {
	if t == nil || t.Root == nil {
		return "", ErrEmptyTree
	}
	return Classify(t.Root, values)
}

// Classify takes a node and the values of a sample and returns the class
// the subtree under the node predicts for the sample.
func Classify(n *Node, values []string) (string, error) {
	for n != nil && !n.IsLeaf() {
		ok, err := feature.Satisfies(values, n.AttributeIndex, n.Value)
		if err != nil {
			return "", err
		}
		if ok {
			n = n.Pos
		} else {
			n = n.Neg
		}
	}
	if n == nil {
		return "", ErrUntrainedBranch
	}
	return n.Class, nil
}

/*
Errors takes a dataset and returns the number of its samples the tree
misclassifies. Samples the tree cannot classify count as misclassified.
*/
func (t *Tree) Errors(d dataset.Dataset) int {
	var errCount int
	for _, s := range d.Samples() {
		c, err := t.Classify(s.Values())
		if err != nil || c != s.Class() {
			errCount++
		}
	}
	return errCount
}

/*
Test takes a dataset and returns three values:
  - the classification success rate of the tree over the given dataset
  - the number of samples the tree could not classify because of
    ErrUntrainedBranch or ErrEmptyTree errors
  - an error if a sample could not be classified for reasons other than the
    tree not being able to do so. If this is not nil, the other values will
    be 0.0 and 0 respectively
*/
func (t *Tree) Test(d dataset.Dataset) (float64, int, error) {
	if d.Count() == 0 {
		return 0.0, 0, nil
	}
	var result float64
	var errCount int
	for _, s := range d.Samples() {
		c, err := t.Classify(s.Values())
		if err != nil {
			if !errors.Is(err, ErrUntrainedBranch) && !errors.Is(err, ErrEmptyTree) {
				return 0.0, 0, err
			}
			errCount++
			continue
		}
		if c == s.Class() {
			result += 1.0
		}
	}
	return result / float64(d.Count()), errCount, nil
}

// Traverse takes a bottomup boolean and an error-returning function
// that takes a node as parameter, and goes through the tree running the
// function with every traversed node.
// Traverse will call the function with a parent node before calling it
// for its children (positive subtree first) if bottomup is false, and
// call it after its children if bottomup is true.
// If the call to the function returns an error, the traversing is
// aborted and the error is returned. Otherwise, when the traversing is
// over, nil is returned.
func (t *Tree) Traverse(bottomup bool, f func(*Node) error) error {
	if t == nil {
		return nil
	}
	return traverse(t.Root, bottomup, f)
}

func traverse(n *Node, bottomup bool, f func(*Node) error) error {
	if n == nil {
		return nil
	}
	if !bottomup {
		if err := f(n); err != nil {
			return err
		}
	}
	if !n.IsLeaf() {
		if err := traverse(n.Pos, bottomup, f); err != nil {
			return err
		}
		if err := traverse(n.Neg, bottomup, f); err != nil {
			return err
		}
	}
	if bottomup {
		return f(n)
	}
	return nil
}

// InternalNodes returns the internal nodes of the tree in pre-order.
func (t *Tree) InternalNodes() []*Node {
	return t.collect(func(n *Node) bool { return !n.IsLeaf() })
}

// Leaves returns the leaves of the tree in pre-order.
func (t *Tree) Leaves() []*Node {
	return t.collect((*Node).IsLeaf)
}

// Size returns the number of nodes in the tree.
func (t *Tree) Size() int {
	return len(t.collect(func(*Node) bool { return true }))
}

// Classes returns the distinct classes predicted by the leaves of the tree.
func (t *Tree) Classes() []string {
	var classes []string
	seen := make(map[string]bool)
	for _, l := range t.Leaves() {
		if !seen[l.Class] {
			seen[l.Class] = true
			classes = append(classes, l.Class)
		}
	}
	return classes
}

func (t *Tree) collect(keep func(*Node) bool) []*Node {
	var nodes []*Node
	t.Traverse(false, func(n *Node) error {
		if keep(n) {
			nodes = append(nodes, n)
		}
		return nil
	})
	return nodes
}

func (t *Tree) String() string {
	if t == nil {
		return ""
	}
	return Render(t.Root)
}

/*
Render takes a node and returns a human-readable dump of the subtree under
it. An internal node renders as "a[index]=value:" followed by its positive
subtree indented one more tab, then "else:" followed by its negative subtree
indented one more tab. A leaf renders as "Class: label". Nil subtrees
render as nothing.
*/
func Render(n *Node) string {
	var b strings.Builder
	render(&b, n, 0)
	return b.String()
}

func render(b *strings.Builder, n *Node, indent int) {
	if n == nil {
		return
	}
	tabs := strings.Repeat("\t", indent)
	if n.IsLeaf() {
		b.WriteString(tabs + "Class: " + n.Class + "\n")
		return
	}
	b.WriteString(tabs + n.String() + ":\n")
	render(b, n.Pos, indent+1)
	b.WriteString(tabs + "else:\n")
	render(b, n.Neg, indent+1)
}
