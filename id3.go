/*
Package id3 grows binary decision trees over categorical attributes with
the ID3 entropy criterion and simplifies them with reduced-error pruning
against a held-out validation dataset.

A Classifier shuffles the samples it is trained with, grows a tree on a
training share of them and prunes it with the rest:

	c := id3.New(id3.WithSeed(42))
	if err := c.Train(samples); err != nil {
		...
	}
	class, err := c.Classify([]string{"a", "x"})
*/
package id3

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/pbanos/id3/dataset"
	"github.com/pbanos/id3/feature"
	"github.com/pbanos/id3/tree"
	"go.uber.org/zap"
)

// DefaultTrainingRatio is the share of samples used to grow trees, the
// rest being used to prune them.
const DefaultTrainingRatio = 0.6

// ClassifierError represents an error related with classifiers
type ClassifierError string

const (
	// ErrNotTrained is returned when classifying with a classifier
	// that has not been trained yet.
	ErrNotTrained = ClassifierError("classifier has not been trained")
	// ErrInvalidTrainingRatio is returned when training with a ratio
	// outside [0, 1].
	ErrInvalidTrainingRatio = ClassifierError("training ratio must be between 0 and 1")
)

func (ce ClassifierError) Error() string {
	return string(ce)
}

/*
Classifier grows, prunes and holds a decision tree. It is not safe for
concurrent use while being trained.
*/
type Classifier struct {
	rnd           *rand.Rand
	trainingRatio float64
	pruner        Pruner
	logger        *zap.Logger
	features      []feature.Feature
	label         string

	tree       *tree.Tree
	training   dataset.Dataset
	validation dataset.Dataset
}

// Option configures a Classifier.
type Option func(*Classifier)

// WithRand sets the random generator used to shuffle samples and break
// ties between majority classes.
func WithRand(rnd *rand.Rand) Option {
	return func(c *Classifier) {
		c.rnd = rnd
	}
}

// WithSeed sets a random generator seeded with the given value, so
// training is reproducible.
func WithSeed(seed int64) Option {
	return WithRand(rand.New(rand.NewSource(seed)))
}

// WithTrainingRatio sets the share of samples used to grow the tree.
func WithTrainingRatio(ratio float64) Option {
	return func(c *Classifier) {
		c.trainingRatio = ratio
	}
}

// WithPruner sets the pruner applied to grown trees. A nil pruner
// disables pruning.
func WithPruner(p Pruner) Option {
	return func(c *Classifier) {
		if p == nil {
			p = NoPruner()
		}
		c.pruner = p
	}
}

// WithLogger sets the logger training progress is reported to.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Classifier) {
		if logger == nil {
			logger = zap.NewNop()
		}
		c.logger = logger
	}
}

// WithFeatures sets the features describing sample values and the name
// of the class, which are attached to trained trees.
func WithFeatures(features []feature.Feature, label string) Option {
	return func(c *Classifier) {
		c.features = features
		c.label = label
	}
}

/*
New takes options and returns a Classifier configured with them. Unless
overridden it uses DefaultTrainingRatio, a random generator seeded with the
current time, no logging and a reduced-error pruner.
*/
func New(opts ...Option) *Classifier {
	c := &Classifier{
		trainingRatio: DefaultTrainingRatio,
		logger:        zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.rnd == nil {
		c.rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if c.pruner == nil {
		c.pruner = ReducedErrorPruner(c.logger)
	}
	return c
}

/*
Train takes samples, checks all of them have a class and the same number of
values, shuffles them and splits them into training and validation
datasets. It then grows a tree on the training dataset and prunes it with
the validation one. An empty slice of samples trains an empty tree.

The given slice is reordered by the shuffle. On error, the classifier keeps
its previous state.
*/
func (c *Classifier) Train(samples []dataset.Sample) error {
	if c.trainingRatio < 0 || c.trainingRatio > 1 {
		return ErrInvalidTrainingRatio
	}
	if err := dataset.Validate(samples); err != nil {
		return fmt.Errorf("validating samples: %w", err)
	}
	training, validation := dataset.Split(dataset.New(samples), c.trainingRatio, c.rnd)
	c.logger.Info("split samples",
		zap.Int("training", training.Count()),
		zap.Int("validation", validation.Count()),
	)
	root, err := ConstructTree(training, c.rnd)
	if err != nil {
		return fmt.Errorf("growing tree: %w", err)
	}
	t := tree.New(root)
	t.Features = c.features
	t.Label = c.label
	c.logger.Info("grew tree",
		zap.Int("nodes", t.Size()),
		zap.Int("validationErrors", t.Errors(validation)),
	)
	collapsed, err := c.pruner.Prune(t, validation)
	if err != nil {
		return fmt.Errorf("pruning tree: %w", err)
	}
	c.logger.Info("pruned tree",
		zap.Int("collapsed", collapsed),
		zap.Int("nodes", t.Size()),
		zap.Int("validationErrors", t.Errors(validation)),
	)
	c.tree = t
	c.training = training
	c.validation = validation
	return nil
}

/*
Classify takes the values of a sample and returns the class the trained
tree predicts for it. Besides the errors of tree.Tree.Classify it returns
ErrNotTrained if Train has not succeeded yet.
*/
func (c *Classifier) Classify(values []string) (string, error) {
	if c.tree == nil {
		return "", ErrNotTrained
	}
	return c.tree.Classify(values)
}

// Tree returns the trained tree, or nil before training.
func (c *Classifier) Tree() *tree.Tree {
	return c.tree
}

// TrainingData returns the dataset the tree was grown with.
func (c *Classifier) TrainingData() dataset.Dataset {
	return c.training
}

// ValidationData returns the dataset the tree was pruned with.
func (c *Classifier) ValidationData() dataset.Dataset {
	return c.validation
}

func (c *Classifier) String() string {
	return c.tree.String()
}
