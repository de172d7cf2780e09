package id3_test

import (
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/pbanos/id3"
	"github.com/pbanos/id3/dataset"
	"github.com/pbanos/id3/tree"
)

type ReducedErrorPrunerSuite struct {
	suite.Suite
	pruner id3.Pruner
}

func (s *ReducedErrorPrunerSuite) SetupTest() {
	s.pruner = id3.ReducedErrorPruner(nil)
}

// a[0]=a with a nested a[1]=x test that overfits the training data
func overfitTree() *tree.Tree {
	return tree.New(tree.NewInternal(0, "a", "Y",
		tree.NewInternal(1, "x", "Y", tree.NewLeaf("Y"), tree.NewLeaf("N")),
		tree.NewLeaf("N"),
	))
}

func (s *ReducedErrorPrunerSuite) TestCollapsesOverfitNode() {
	t := overfitTree()
	validation := dataset.New(samplesOf(
		[]string{"a", "x", "Y"},
		[]string{"a", "z", "Y"},
		[]string{"b", "x", "N"},
	))
	before := t.Errors(validation)
	s.Require().Equal(1, before)

	collapsed, err := s.pruner.Prune(t, validation)
	s.Require().NoError(err)
	s.Equal(1, collapsed)
	s.Equal(0, t.Errors(validation))
	s.Equal("a[0]=a:\n\tClass: Y\nelse:\n\tClass: N\n", t.String())
	s.Equal(tree.NewLeaf("Y"), t.Root.Pos, "collapsed nodes keep no attribute test")
}

func (s *ReducedErrorPrunerSuite) TestLogsCollapsedTest() {
	t := overfitTree()
	validation := dataset.New(samplesOf(
		[]string{"a", "x", "Y"},
		[]string{"a", "z", "Y"},
		[]string{"b", "x", "N"},
	))
	core, logs := observer.New(zapcore.DebugLevel)
	_, err := id3.ReducedErrorPruner(zap.New(core)).Prune(t, validation)
	s.Require().NoError(err)

	entries := logs.FilterMessage("collapsed node").All()
	s.Require().Len(entries, 1)
	fields := entries[0].ContextMap()
	s.Equal(int64(1), fields["attribute"])
	s.Equal("x", fields["value"])
	s.Equal("Y", fields["class"])
}

func (s *ReducedErrorPrunerSuite) TestIdempotent() {
	t := overfitTree()
	validation := dataset.New(samplesOf(
		[]string{"a", "x", "Y"},
		[]string{"a", "z", "Y"},
		[]string{"b", "x", "N"},
	))
	_, err := s.pruner.Prune(t, validation)
	s.Require().NoError(err)
	rendered := t.String()

	collapsed, err := s.pruner.Prune(t, validation)
	s.Require().NoError(err)
	s.Zero(collapsed)
	s.Equal(rendered, t.String())
}

func (s *ReducedErrorPrunerSuite) TestFirstCandidateInPreOrderWinsTies() {
	t := tree.New(tree.NewInternal(0, "a", "N",
		tree.NewInternal(1, "x", "Y", tree.NewLeaf("Y"), tree.NewLeaf("N")),
		tree.NewInternal(1, "x", "N", tree.NewLeaf("Y"), tree.NewLeaf("N")),
	))
	validation := dataset.New(samplesOf(
		[]string{"a", "z", "Y"},
		[]string{"b", "x", "N"},
	))
	s.Require().Equal(2, t.Errors(validation))

	collapsed, err := s.pruner.Prune(t, validation)
	s.Require().NoError(err)
	s.Equal(1, collapsed)
	s.Require().True(t.Root.IsLeaf(), "the root is first in pre-order among equally good candidates")
	s.Equal("N", t.Root.Class)
	s.Nil(t.Root.Pos)
	s.Nil(t.Root.Neg)
}

func (s *ReducedErrorPrunerSuite) TestKeepsUsefulNodes() {
	t := tree.New(tree.NewInternal(0, "a", "Y", tree.NewLeaf("Y"), tree.NewLeaf("N")))
	validation := dataset.New(samplesOf(
		[]string{"a", "x", "Y"},
		[]string{"b", "x", "N"},
	))
	collapsed, err := s.pruner.Prune(t, validation)
	s.Require().NoError(err)
	s.Zero(collapsed)
	s.False(t.Root.IsLeaf())
}

func (s *ReducedErrorPrunerSuite) TestUnclassifiableSamplesCountAsErrors() {
	t := tree.New(tree.NewInternal(0, "a", "Y", tree.NewLeaf("Y"), nil))
	validation := dataset.New(samplesOf(
		[]string{"a", "x", "Y"},
		[]string{"b", "x", "Y"},
	))
	s.Require().Equal(1, t.Errors(validation))

	collapsed, err := s.pruner.Prune(t, validation)
	s.Require().NoError(err)
	s.Equal(1, collapsed)
	s.Equal(tree.NewLeaf("Y"), t.Root)
}

func (s *ReducedErrorPrunerSuite) TestMonotonic() {
	t := tree.New(tree.NewInternal(0, "a", "N",
		tree.NewInternal(1, "x", "Y",
			tree.NewInternal(2, "p", "Y", tree.NewLeaf("Y"), tree.NewLeaf("N")),
			tree.NewLeaf("N")),
		tree.NewInternal(1, "z", "N", tree.NewLeaf("Y"), tree.NewLeaf("N")),
	))
	validation := dataset.New(samplesOf(
		[]string{"a", "x", "q", "Y"},
		[]string{"a", "z", "p", "N"},
		[]string{"b", "z", "p", "N"},
		[]string{"b", "x", "q", "N"},
		[]string{"a", "x", "p", "Y"},
	))
	before := t.Errors(validation)
	internal := len(t.InternalNodes())
	core, logs := observer.New(zapcore.DebugLevel)

	collapsed, err := id3.ReducedErrorPruner(zap.New(core)).Prune(t, validation)
	s.Require().NoError(err)
	s.Positive(collapsed)
	s.LessOrEqual(collapsed, internal)
	s.LessOrEqual(t.Errors(validation), before)

	entries := logs.FilterMessage("collapsed node").All()
	s.Require().Len(entries, collapsed)
	prev := int64(before)
	for _, e := range entries {
		errs, ok := e.ContextMap()["validationErrors"].(int64)
		s.Require().True(ok)
		s.Less(errs, prev, "every committed collapse strictly reduces validation errors")
		prev = errs
	}
}

func (s *ReducedErrorPrunerSuite) TestNoPruner() {
	t := overfitTree()
	rendered := t.String()
	collapsed, err := id3.NoPruner().Prune(t, dataset.New(samplesOf([]string{"a", "z", "Y"})))
	s.Require().NoError(err)
	s.Zero(collapsed)
	s.Equal(rendered, t.String())
}

func TestReducedErrorPrunerSuite(t *testing.T) {
	suite.Run(t, new(ReducedErrorPrunerSuite))
}
