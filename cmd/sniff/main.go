package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	_ "github.com/dhamidi/sniff/rules/exceptions"
	_ "github.com/dhamidi/sniff/rules/style"
	_ "github.com/tliron/commonlog/simple"
)

const version = "0.1.0"

func main() {
	var verbose int

	rootCmd := &cobra.Command{
		Use:           "sniff",
		Short:         "Find code smells in Java sources",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			commonlog.Configure(verbose, nil)
		},
	}
	rootCmd.PersistentFlags().CountVarP(&verbose, "verbose", "v", "increase log verbosity")

	rootCmd.AddCommand(newCheckCmd())
	rootCmd.AddCommand(newRulesCmd())
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newParseCmd())
	rootCmd.AddCommand(newLSPCmd())

	if err := rootCmd.Execute(); err != nil {
		var failed *thresholdError
		if errors.As(err, &failed) {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}
		fmt.Fprintf(os.Stderr, "sniff: %s\n", err)
		os.Exit(1)
	}
}
