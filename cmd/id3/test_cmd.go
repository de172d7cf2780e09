package main

import (
	"fmt"
	"os"

	"github.com/pbanos/id3/dataset"
	"github.com/spf13/cobra"
)

type testCmdConfig struct {
	*rootCmdConfig
	treeInput     string
	treeName      string
	dataInput     string
	metadataInput string
	classFeature  string
}

func testCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &testCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "test",
		Short: "Test the performance of a tree",
		Long:  `Test the performance of a tree against a test data set`,
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
			t, err := loadTree(ctx, config.rootCmdConfig, config.treeInput, config.treeName)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				config.Exit(3)
			}
			samples, err := readSamples(ctx, config.rootCmdConfig, config.dataInput, attributes, class)
			if err != nil {
				fmt.Fprintf(os.Stderr, "reading testing samples: %v\n", err)
				config.Exit(4)
			}
			config.Logf("Testing tree against testset with %d samples...", len(samples))
			successRate, errorCount, err := t.Test(dataset.New(samples))
			if err != nil {
				fmt.Fprintf(os.Stderr, "testing tree: %v\n", err)
				config.Exit(5)
			}
			config.Logf("Done")
			fmt.Printf("%f success rate, failed to make a prediction for %d samples\n", successRate, errorCount)
		},
	}
	cmd.PersistentFlags().StringVarP(&(config.dataInput), "input", "i", "", "path or URL to the data to test the tree with: "+samplesFlagUsage+" (defaults to STDIN, interpreted as CSV)")
	cmd.PersistentFlags().StringVarP(&(config.metadataInput), "metadata", "m", "", "path to a YML or JSON (.json) file with metadata describing the different features available on the input (required)")
	cmd.PersistentFlags().StringVarP(&(config.treeInput), "tree", "t", "", "path to a JSON file or URL of a tree store from which the tree to test will be read (required)")
	cmd.PersistentFlags().StringVar(&(config.treeName), "name", "", "name of the tree in the tree store")
	cmd.PersistentFlags().StringVarP(&(config.classFeature), "class-feature", "c", "", "name of the feature the tree predicts (required)")
	return cmd
}

func (tcc *testCmdConfig) Validate() error {
	if tcc.treeInput == "" {
		return fmt.Errorf("required tree flag was not set")
	}
	if tcc.metadataInput == "" {
		return fmt.Errorf("required metadata flag was not set")
	}
	if tcc.classFeature == "" {
		return fmt.Errorf("required class-feature flag was not set")
	}
	return nil
}
