package main

import (
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/pbanos/id3"
	"github.com/pbanos/id3/dataset"
	"github.com/spf13/cobra"
	"go.uber.org/multierr"
)

type splitCmdConfig struct {
	*setCmdConfig
	splitOutput string
	ratio       float64
	seed        int64
}

func splitCmd(setConfig *setCmdConfig) *cobra.Command {
	config := &splitCmdConfig{setCmdConfig: setConfig}
	cmd := &cobra.Command{
		Use:   "split",
		Short: "Split a set in two",
		Long:  `Shuffle the samples of a set and split them in two: a share of them is written to the output and the rest to the split output`,
		Run: func(cmd *cobra.Command, args []string) {
			defer config.Close()
			err := config.Validate()
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				config.Exit(1)
			}
			ctx := config.Context()
			attributes, class, err := readSchema(config.metadataInput, config.classFeature)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				config.Exit(2)
			}
			samples, err := readSamples(ctx, config.rootCmdConfig, config.setInput, attributes, class)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				config.Exit(3)
			}
			first, second := dataset.Split(dataset.New(samples), config.ratio, rand.New(rand.NewSource(config.seed)))
			for i, part := range []struct {
				location string
				d        dataset.Dataset
			}{{config.setOutput, first}, {config.splitOutput, second}} {
				output, err := createSampleSink(ctx, config.rootCmdConfig, part.location, attributes, class)
				if err != nil {
					fmt.Fprintln(os.Stderr, err)
					config.Exit(4 + 2*i)
				}
				_, err = output.Write(ctx, part.d.Samples())
				err = multierr.Append(err, output.Close())
				if err != nil {
					fmt.Fprintf(os.Stderr, "writing samples: %v\n", err)
					config.Exit(5 + 2*i)
				}
				config.Logf("Wrote %d samples", output.Count())
			}
		},
	}
	cmd.Flags().StringVarP(&(config.splitOutput), "split-output", "s", "", "path or URL to the set receiving the rest of samples (required)")
	cmd.Flags().Float64Var(&(config.ratio), "ratio", id3.DefaultTrainingRatio, "share of the samples written to the output")
	cmd.Flags().Int64Var(&(config.seed), "seed", time.Now().UnixNano(), "seed for the random generator used to shuffle samples (defaults to the current time)")
	return cmd
}

func (scc *splitCmdConfig) Validate() error {
	if err := scc.setCmdConfig.Validate(); err != nil {
		return err
	}
	if scc.splitOutput == "" {
		return fmt.Errorf("required split-output flag was not set")
	}
	if scc.setOutput == "" {
		return fmt.Errorf("required output flag was not set")
	}
	if scc.ratio < 0 || scc.ratio > 1 {
		return fmt.Errorf("ratio must be between 0 and 1, got %v", scc.ratio)
	}
	return nil
}
