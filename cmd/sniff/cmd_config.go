package main

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/dhamidi/sniff/config"
	"github.com/dhamidi/sniff/rule"
)

const configFileName = "sniff.yml"

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the default configuration",
		Long: "Print the default configuration of every rule as YAML. Save it as " +
			configFileName + " and edit it to configure a project.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := config.Marshal(rule.Default.Defaults())
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}

// projectConfig returns the configuration file of the project in dir, or
// "" when there is none.
func projectConfig(dir string) string {
	if path := os.Getenv("SNIFF_CONFIG"); path != "" {
		return path
	}
	path := filepath.Join(dir, configFileName)
	if _, err := os.Stat(path); err != nil {
		return ""
	}
	return path
}
