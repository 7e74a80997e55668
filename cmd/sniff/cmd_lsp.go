package main

import (
	"github.com/spf13/cobra"

	"github.com/dhamidi/sniff/config"
	"github.com/dhamidi/sniff/engine"
	"github.com/dhamidi/sniff/lsp"
	"github.com/dhamidi/sniff/rule"
)

func newLSPCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lsp",
		Short: "Start the Language Server Protocol server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			server := lsp.NewServer(version, func(rootDir string) (*engine.Session, error) {
				cfg, err := config.Load(projectConfig(rootDir))
				if err != nil {
					return nil, err
				}
				return engine.New(rule.Default, cfg).Session()
			})
			return server.RunStdio()
		},
	}
}
