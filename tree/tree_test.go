package tree_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pbanos/id3/dataset"
	"github.com/pbanos/id3/feature"
	"github.com/pbanos/id3/tree"
)

// a[0]=a ? (a[1]=x ? Y : N) : <untrained>
func sampleTree() *tree.Tree {
	return tree.New(tree.NewInternal(0, "a", "Y",
		tree.NewInternal(1, "x", "Y", tree.NewLeaf("Y"), tree.NewLeaf("N")),
		nil,
	))
}

func TestClassify(t *testing.T) {
	tr := sampleTree()
	c, err := tr.Classify([]string{"a", "x"})
	require.NoError(t, err)
	assert.Equal(t, "Y", c)

	c, err = tr.Classify([]string{"a", "z"})
	require.NoError(t, err)
	assert.Equal(t, "N", c)

	_, err = tr.Classify([]string{"b", "x"})
	require.ErrorIs(t, err, tree.ErrUntrainedBranch)

	_, err = tr.Classify([]string{"a"})
	require.ErrorIs(t, err, feature.ErrAttributeOutOfRange)

	_, err = tree.New(nil).Classify([]string{"a"})
	require.ErrorIs(t, err, tree.ErrEmptyTree)
}

func TestErrorsAndTest(t *testing.T) {
	tr := sampleTree()
	d := dataset.New([]dataset.Sample{
		dataset.NewSample([]string{"a", "x"}, "Y"),
		dataset.NewSample([]string{"a", "z"}, "Y"),
		dataset.NewSample([]string{"b", "x"}, "N"),
		dataset.NewSample([]string{"a", "z"}, "N"),
	})
	assert.Equal(t, 2, tr.Errors(d))

	rate, unclassified, err := tr.Test(d)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, rate, 1e-9)
	assert.Equal(t, 1, unclassified)

	rate, unclassified, err = tr.Test(dataset.New(nil))
	require.NoError(t, err)
	assert.Zero(t, rate)
	assert.Zero(t, unclassified)

	_, _, err = tr.Test(dataset.New([]dataset.Sample{dataset.NewSample([]string{"a"}, "Y")}))
	require.ErrorIs(t, err, feature.ErrAttributeOutOfRange)
}

func TestRender(t *testing.T) {
	expected := "a[0]=a:\n" +
		"\ta[1]=x:\n" +
		"\t\tClass: Y\n" +
		"\telse:\n" +
		"\t\tClass: N\n" +
		"else:\n"
	assert.Equal(t, expected, sampleTree().String())
	assert.Equal(t, "Class: Y\n", tree.Render(tree.NewLeaf("Y")))
	assert.Equal(t, "", tree.New(nil).String())
}

func TestTraverse(t *testing.T) {
	tr := sampleTree()
	var topDown, bottomUp []string
	require.NoError(t, tr.Traverse(false, func(n *tree.Node) error {
		topDown = append(topDown, n.String())
		return nil
	}))
	require.NoError(t, tr.Traverse(true, func(n *tree.Node) error {
		bottomUp = append(bottomUp, n.String())
		return nil
	}))
	assert.Equal(t, []string{"a[0]=a", "a[1]=x", "Class: Y", "Class: N"}, topDown)
	assert.Equal(t, []string{"Class: Y", "Class: N", "a[1]=x", "a[0]=a"}, bottomUp)

	stop := errors.New("stop")
	var visited int
	err := tr.Traverse(false, func(n *tree.Node) error {
		visited++
		return stop
	})
	require.ErrorIs(t, err, stop)
	assert.Equal(t, 1, visited)
}

func TestNodeListings(t *testing.T) {
	tr := sampleTree()
	assert.Equal(t, 4, tr.Size())
	assert.Len(t, tr.InternalNodes(), 2)
	assert.Equal(t, tr.Root, tr.InternalNodes()[0])
	assert.Len(t, tr.Leaves(), 2)
	assert.Equal(t, []string{"Y", "N"}, tr.Classes())
}

func TestCollapse(t *testing.T) {
	tr := sampleTree()
	inner := tr.Root.Pos
	inner.Collapse()
	assert.True(t, inner.IsLeaf())
	assert.Equal(t, "Y", inner.Class)
	assert.Equal(t, tree.NewLeaf("Y"), inner)
	assert.Zero(t, inner.AttributeIndex)
	assert.Empty(t, inner.Value)
	assert.Empty(t, inner.MajorityClass)
	assert.Nil(t, inner.Pos)
	assert.Nil(t, inner.Neg)
	assert.Equal(t, 2, tr.Size())
}
