package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dhamidi/sniff/format"
	"github.com/dhamidi/sniff/java"
	"github.com/dhamidi/sniff/java/parser"
)

func newParseCmd() *cobra.Command {
	var outputFormat string
	var includePositions bool

	cmd := &cobra.Command{
		Use:   "parse <file>",
		Short: "Parse a .java file and dump its syntax tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filename := args[0]
			data, err := os.ReadFile(filename)
			if err != nil {
				return fmt.Errorf("read java file: %w", err)
			}

			p := parser.ParseCompilationUnit(bytes.NewReader(data), parser.WithFile(filename))
			node := p.Finish()
			if node == nil {
				return fmt.Errorf("parse java file: %w", p.Err())
			}
			for _, syntaxErr := range p.Errors() {
				fmt.Fprintln(cmd.ErrOrStderr(), syntaxErr)
			}

			out := cmd.OutOrStdout()
			switch outputFormat {
			case "json":
				enc := format.NewASTJSONEncoder(out)
				if err := enc.Encode(java.Wrap(node, filename, p.Source())); err != nil {
					return fmt.Errorf("encode json: %w", err)
				}
			case "tree":
				if includePositions {
					fmt.Fprint(out, node.StringWithPositions())
				} else {
					fmt.Fprint(out, node.String())
				}
			default:
				return fmt.Errorf("unknown format: %s", outputFormat)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "tree", "output format (tree, json)")
	cmd.Flags().BoolVar(&includePositions, "positions", false, "include positions in tree output")

	return cmd
}
