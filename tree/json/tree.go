/*
Package json provides the serialization of trees as JSON documents, both
onto streams and as the byte slices tree stores keep.
*/
package json

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/pbanos/id3/feature"
	"github.com/pbanos/id3/tree"
)

/*
EncodeDecoder is an interface for objects
that allow encoding trees into slices of
bytes and decoding them back to trees.
*/
type EncodeDecoder interface {

	//Encode receives a *tree.Tree
	// and returns a slice of bytes with the tree
	//encoded or an error if the encoding could not
	//be performed for some reason.
	Encode(*tree.Tree) ([]byte, error)

	//Decode receives a slice of bytes
	//and returns a *tree.Tree decoded from the
	//slice of bytes or an error if the decoding
	//could not be performed for some reason.
	Decode([]byte) (*tree.Tree, error)
}

type encodeDecoder struct{}

type jsonFeature struct {
	Name   string   `json:"name"`
	Values []string `json:"values,omitempty"`
}

type jsonTree struct {
	Label    string        `json:"label,omitempty"`
	Features []jsonFeature `json:"features,omitempty"`
	Root     *node         `json:"root"`
}

/*
NewEncodeDecoder returns an EncodeDecoder that represents trees as JSON
objects with the following fields:
  - "label": a string with the name of the class the tree predicts
  - "features": an array with the name and values of the features
    describing sample values, in order
  - "root": the root node of the tree, or null for empty trees

Leaves are objects with the predicted class as "c". Internal nodes are
objects with the tested attribute index as "a", the compared value as "v",
the majority class as "m" and the "pos" and "neg" subtrees, which are
omitted when nil.
*/
func NewEncodeDecoder() EncodeDecoder {
	return encodeDecoder{}
}

func (encodeDecoder) Encode(t *tree.Tree) ([]byte, error) {
	if t == nil {
		return nil, fmt.Errorf("encoding tree: nil tree")
	}
	jt := &jsonTree{Label: t.Label, Root: encodeNode(t.Root)}
	for _, f := range t.Features {
		jf := jsonFeature{Name: f.Name()}
		if df, ok := f.(*feature.DiscreteFeature); ok {
			jf.Values = df.AvailableValues()
		}
		jt.Features = append(jt.Features, jf)
	}
	return json.Marshal(jt)
}

func (encodeDecoder) Decode(data []byte) (*tree.Tree, error) {
	jt := &jsonTree{}
	err := json.Unmarshal(data, jt)
	if err != nil {
		return nil, fmt.Errorf("decoding tree: %v", err)
	}
	return decodeTree(jt)
}

func decodeTree(jt *jsonTree) (*tree.Tree, error) {
	t := &tree.Tree{Label: jt.Label}
	for i, jf := range jt.Features {
		t.Features = append(t.Features, feature.NewDiscreteFeature(jf.Name, i, jf.Values))
	}
	root, err := decodeNode(jt.Root, "root", len(t.Features))
	if err != nil {
		return nil, fmt.Errorf("decoding tree: %v", err)
	}
	t.Root = root
	return t, nil
}

/*
WriteJSONTree takes a pointer to a tree.Tree and an io.Writer and
serializes the given tree as JSON onto the io.Writer, in the format
described in NewEncodeDecoder.
An error is returned if the tree cannot be serialized or written
onto the io.Writer.
*/
func WriteJSONTree(t *tree.Tree, w io.Writer) error {
	data, err := NewEncodeDecoder().Encode(t)
	if err != nil {
		return err
	}
	_, err = w.Write(append(data, '\n'))
	return err
}

/*
ReadJSONTree takes an io.Reader and returns the tree unmarshalled from its
contents, expected in the format described in NewEncodeDecoder.
An error is returned if the JSON cannot be read from the io.Reader or
unmarshalled onto a tree.
*/
func ReadJSONTree(r io.Reader) (*tree.Tree, error) {
	jt := &jsonTree{}
	err := json.NewDecoder(r).Decode(jt)
	if err != nil {
		return nil, fmt.Errorf("decoding tree: %v", err)
	}
	return decodeTree(jt)
}
