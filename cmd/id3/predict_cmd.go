package main

import (
	"fmt"
	"os"

	"github.com/pbanos/id3/dataset/inputsample"
	"github.com/pbanos/id3/feature"
	"github.com/spf13/cobra"
)

type predictCmdConfig struct {
	*rootCmdConfig
	treeInput     string
	treeName      string
	metadataInput string
	classFeature  string
}

func predictCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &predictCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "predict [VALUE...]",
		Short: "Predict the class of a sample",
		Long:  `Use the loaded tree to predict the class of a sample, given its values in feature order as arguments or answering a question per feature on STDIN`,
		Run: func(cmd *cobra.Command, args []string) {
			defer config.Close()
			err := config.Validate()
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				config.Exit(1)
			}
			t, err := loadTree(config.Context(), config.rootCmdConfig, config.treeInput, config.treeName)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				config.Exit(2)
			}
			attributes, err := config.attributes(t.Features)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				config.Exit(3)
			}
			values := args
			if len(values) == 0 {
				values, err = inputsample.ReadValues(os.Stdin, attributes, inputsample.NewWriterRequester(os.Stdout))
				if err != nil {
					fmt.Fprintln(os.Stderr, err)
					config.Exit(4)
				}
			} else if err = validateValues(values, attributes); err != nil {
				fmt.Fprintln(os.Stderr, err)
				config.Exit(4)
			}
			class, err := t.Classify(values)
			if err != nil {
				fmt.Fprintf(os.Stderr, "classifying sample: %v\n", err)
				config.Exit(5)
			}
			fmt.Println(class)
		},
	}
	cmd.PersistentFlags().StringVarP(&(config.metadataInput), "metadata", "m", "", "path to a YML or JSON (.json) file with metadata describing the features of samples (defaults to the features kept with the tree)")
	cmd.PersistentFlags().StringVarP(&(config.treeInput), "tree", "t", "", "path to a JSON file or URL of a tree store from which the tree to use will be read (required)")
	cmd.PersistentFlags().StringVar(&(config.treeName), "name", "", "name of the tree in the tree store")
	cmd.PersistentFlags().StringVarP(&(config.classFeature), "class-feature", "c", "", "name of the feature the tree predicts (required with metadata)")
	return cmd
}

func (pcc *predictCmdConfig) Validate() error {
	if pcc.treeInput == "" {
		return fmt.Errorf("required tree flag was not set")
	}
	if pcc.metadataInput != "" && pcc.classFeature == "" {
		return fmt.Errorf("required class-feature flag was not set")
	}
	return nil
}

func (pcc *predictCmdConfig) attributes(treeFeatures []feature.Feature) ([]feature.Feature, error) {
	if pcc.metadataInput == "" {
		return treeFeatures, nil
	}
	attributes, _, err := readSchema(pcc.metadataInput, pcc.classFeature)
	return attributes, err
}

func validateValues(values []string, attributes []feature.Feature) error {
	if len(attributes) > 0 && len(values) != len(attributes) {
		return fmt.Errorf("expected %d values, got %d", len(attributes), len(values))
	}
	for _, f := range attributes {
		if ok, err := f.Valid(values[f.Index()]); !ok {
			return err
		}
	}
	return nil
}
