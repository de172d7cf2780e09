package main

import (
	"fmt"
	"os"
	"time"

	"github.com/pbanos/id3"
	"github.com/spf13/cobra"
)

type growCmdConfig struct {
	*rootCmdConfig
	dataInput     string
	metadataInput string
	output        string
	treeName      string
	classFeature  string
	pruneStrategy string
	trainingRatio float64
	seed          int64
}

func growCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &growCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "grow",
		Short: "Grow a tree from a set of data",
		Long:  `Grow a tree from a set of data to predict a certain feature, pruning it against a share of the data held out for validation.`,
		Run: func(cmd *cobra.Command, args []string) {
			defer config.Close()
			err := config.Validate()
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				config.Exit(1)
			}
			ctx := config.Context()
			config.Logf("Reading features from metadata at %s...", config.metadataInput)
			attributes, class, err := readSchema(config.metadataInput, config.classFeature)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				config.Exit(2)
			}
			samples, err := readSamples(ctx, config.rootCmdConfig, config.dataInput, attributes, class)
			if err != nil {
				fmt.Fprintf(os.Stderr, "reading training samples: %v\n", err)
				config.Exit(3)
			}
			pruner, err := config.pruner()
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				config.Exit(4)
			}
			c := id3.New(
				id3.WithSeed(config.seed),
				id3.WithTrainingRatio(config.trainingRatio),
				id3.WithPruner(pruner),
				id3.WithLogger(config.Logger()),
				id3.WithFeatures(attributes, class.Name()),
			)
			config.Logf("Growing tree from a set with %d samples and %d features to predict %s (seed %d)...", len(samples), len(attributes), class.Name(), config.seed)
			err = c.Train(samples)
			if err != nil {
				fmt.Fprintf(os.Stderr, "growing the tree: %v\n", err)
				config.Exit(5)
			}
			config.Logf("Done")
			config.Logf("\n%v", c)
			name, err := outputTree(ctx, config.rootCmdConfig, config.output, config.treeName, c.Tree())
			if err != nil {
				fmt.Fprintf(os.Stderr, "writing the tree: %v\n", err)
				config.Exit(6)
			}
			if name != "" {
				fmt.Println(name)
			}
		},
	}
	cmd.PersistentFlags().StringVarP(&(config.dataInput), "input", "i", "", "path or URL to the data to use to grow the tree: "+samplesFlagUsage+" (defaults to STDIN, interpreted as CSV)")
	cmd.PersistentFlags().StringVarP(&(config.metadataInput), "metadata", "m", "", "path to a YML or JSON (.json) file with metadata describing the different features available on the input (required)")
	cmd.PersistentFlags().StringVarP(&(config.output), "output", "o", "", "path to a file to which the generated tree will be written in JSON format, or a redis://host:port/db or badger:///dir tree store URL (defaults to STDOUT)")
	cmd.PersistentFlags().StringVar(&(config.treeName), "name", "", "name under which the tree is kept in a tree store (defaults to a new UUID, printed on STDOUT)")
	cmd.PersistentFlags().StringVarP(&(config.classFeature), "class-feature", "c", "", "name of the feature the generated tree should predict (required)")
	cmd.PersistentFlags().StringVarP(&(config.pruneStrategy), "prune", "p", "reduced-error", "pruning strategy to apply, the following are valid: reduced-error, none")
	cmd.PersistentFlags().Float64Var(&(config.trainingRatio), "training-ratio", id3.DefaultTrainingRatio, "share of the samples used to grow the tree, the rest is used to prune it")
	cmd.PersistentFlags().Int64Var(&(config.seed), "seed", time.Now().UnixNano(), "seed for the random generator used to shuffle samples and break ties (defaults to the current time)")
	return cmd
}

func (gcc *growCmdConfig) Validate() error {
	if gcc.metadataInput == "" {
		return fmt.Errorf("required metadata flag was not set")
	}
	if gcc.classFeature == "" {
		return fmt.Errorf("required class-feature flag was not set")
	}
	if gcc.trainingRatio < 0 || gcc.trainingRatio > 1 {
		return fmt.Errorf("training-ratio must be between 0 and 1, got %v", gcc.trainingRatio)
	}
	return nil
}

func (gcc *growCmdConfig) pruner() (id3.Pruner, error) {
	switch gcc.pruneStrategy {
	case "reduced-error", "default":
		return id3.ReducedErrorPruner(gcc.Logger()), nil
	case "none":
		return id3.NoPruner(), nil
	}
	return nil, fmt.Errorf("unknown pruning strategy %s", gcc.pruneStrategy)
}
