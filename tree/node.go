package tree

import "fmt"

/*
Node is a node of the tree. It is either a leaf or an internal node:
  - A leaf has a non-empty Class, the class predicted for the samples
    that reach it, and no test or children.
  - An internal node has an empty Class and tests whether the value of
    samples at AttributeIndex equals Value. Samples satisfying the test
    continue down Pos, the rest down Neg. A nil child means no training
    sample reached that branch while the tree was grown.
*/
type Node struct {
	// The position of the attribute tested by an internal node
	AttributeIndex int
	// The value the tested attribute is compared to
	Value string
	// The predicted class, set only on leaves
	Class string
	// The most common class among the training samples that reached
	// an internal node. Collapsing the node turns it into a leaf
	// predicting this class.
	MajorityClass string
	// The subtree for samples satisfying the test
	Pos *Node
	// The subtree for samples not satisfying the test
	Neg *Node
}

// NewLeaf returns a leaf node predicting the given class.
func NewLeaf(class string) *Node {
	return &Node{Class: class}
}

// NewInternal returns an internal node testing the attribute at
// the given index against the given value, with the given majority
// class and children.
func NewInternal(index int, value, majorityClass string, pos, neg *Node) *Node {
	return &Node{AttributeIndex: index, Value: value, MajorityClass: majorityClass, Pos: pos, Neg: neg}
}

// IsLeaf returns whether the node is a leaf.
func (n *Node) IsLeaf() bool {
	return n.Class != ""
}

// Collapse turns an internal node into a leaf predicting its majority
// class, discarding its test and both its subtrees.
func (n *Node) Collapse() {
	*n = Node{Class: n.MajorityClass}
}

func (n *Node) String() string {
	if n.IsLeaf() {
		return fmt.Sprintf("Class: %s", n.Class)
	}
	return fmt.Sprintf("a[%d]=%s", n.AttributeIndex, n.Value)
}
