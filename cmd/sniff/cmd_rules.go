package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dhamidi/sniff/rule"
)

func newRulesCmd() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List the available rules",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "RULE\tSEVERITY\tDEBT\tACTIVE\tDESCRIPTION")
			for _, d := range rule.Default.List() {
				fmt.Fprintf(w, "%s\t%s\t%s\t%t\t%s\n", d.QualifiedID(), d.Severity, d.Debt, d.Active, d.Description)
				if !verbose {
					continue
				}
				for _, opt := range d.Options {
					fmt.Fprintf(w, "  %s\t\t\t\t%s (default %v)\n", opt.Name, opt.Description, opt.Default)
				}
			}
			return w.Flush()
		},
	}

	cmd.Flags().BoolVarP(&verbose, "options", "o", false, "also list each rule's options")

	return cmd
}
