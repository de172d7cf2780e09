package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/multierr"
)

type setCmdConfig struct {
	*rootCmdConfig
	setInput      string
	metadataInput string
	classFeature  string
	setOutput     string
}

func setCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &setCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "set",
		Short: "Manage sets of data",
		Long:  `Manage sets of data: copy samples between CSV, JSON lines, SQLite3, PostgreSQL and MongoDB sets`,
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
			output, err := createSampleSink(ctx, config.rootCmdConfig, config.setOutput, attributes, class)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				config.Exit(4)
			}
			_, err = output.Write(ctx, samples)
			err = multierr.Append(err, output.Close())
			if err != nil {
				fmt.Fprintf(os.Stderr, "writing samples: %v\n", err)
				config.Exit(5)
			}
			config.Logf("Wrote %d samples", output.Count())
		},
	}
	cmd.PersistentFlags().StringVarP(&(config.setInput), "input", "i", "", "path or URL to the input set: "+samplesFlagUsage+" (defaults to STDIN, interpreted as CSV)")
	cmd.PersistentFlags().StringVarP(&(config.setOutput), "output", "o", "", "path or URL to the output set: "+samplesFlagUsage+" (defaults to STDOUT, written as CSV)")
	cmd.PersistentFlags().StringVarP(&(config.metadataInput), "metadata", "m", "", "path to a YML or JSON (.json) file with metadata describing the different features available on the input (required)")
	cmd.PersistentFlags().StringVarP(&(config.classFeature), "class-feature", "c", "", "name of the class feature of samples (required)")
	cmd.AddCommand(splitCmd(config))
	return cmd
}

func (scc *setCmdConfig) Validate() error {
	if scc.metadataInput == "" {
		return fmt.Errorf("required metadata flag was not set")
	}
	if scc.classFeature == "" {
		return fmt.Errorf("required class-feature flag was not set")
	}
	return nil
}
