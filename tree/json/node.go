package json

import (
	"fmt"

	"github.com/pbanos/id3/tree"
)

type node struct {
	Class          string `json:"c,omitempty"`
	AttributeIndex *int   `json:"a,omitempty"`
	Value          string `json:"v,omitempty"`
	MajorityClass  string `json:"m,omitempty"`
	Pos            *node  `json:"pos,omitempty"`
	Neg            *node  `json:"neg,omitempty"`
}

func encodeNode(n *tree.Node) *node {
	if n == nil {
		return nil
	}
	if n.IsLeaf() {
		return &node{Class: n.Class}
	}
	index := n.AttributeIndex
	return &node{
		AttributeIndex: &index,
		Value:          n.Value,
		MajorityClass:  n.MajorityClass,
		Pos:            encodeNode(n.Pos),
		Neg:            encodeNode(n.Neg),
	}
}

// decodeNode rebuilds the subtree under jn, checking that every node is
// either a well-formed leaf or a well-formed internal node. width is the
// number of attributes samples have, or 0 if unknown.
func decodeNode(jn *node, path string, width int) (*tree.Node, error) {
	if jn == nil {
		return nil, nil
	}
	if jn.Class != "" {
		if jn.AttributeIndex != nil || jn.Pos != nil || jn.Neg != nil {
			return nil, fmt.Errorf("decoding node %s: leaf with attribute test or children", path)
		}
		return tree.NewLeaf(jn.Class), nil
	}
	if jn.AttributeIndex == nil {
		return nil, fmt.Errorf("decoding node %s: node has neither class nor attribute test", path)
	}
	index := *jn.AttributeIndex
	if index < 0 || (width > 0 && index >= width) {
		return nil, fmt.Errorf("decoding node %s: invalid attribute index %d", path, index)
	}
	if jn.MajorityClass == "" {
		return nil, fmt.Errorf("decoding node %s: internal node without majority class", path)
	}
	pos, err := decodeNode(jn.Pos, path+".pos", width)
	if err != nil {
		return nil, err
	}
	neg, err := decodeNode(jn.Neg, path+".neg", width)
	if err != nil {
		return nil, err
	}
	return tree.NewInternal(index, jn.Value, jn.MajorityClass, pos, neg), nil
}
