package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/dhamidi/sniff/baseline"
	"github.com/dhamidi/sniff/config"
	"github.com/dhamidi/sniff/engine"
	"github.com/dhamidi/sniff/finding"
	"github.com/dhamidi/sniff/format"
	"github.com/dhamidi/sniff/java"
	"github.com/dhamidi/sniff/project"
	"github.com/dhamidi/sniff/rule"
)

type checkOptions struct {
	configPath     string
	baselinePath   string
	createBaseline bool
	outputFormat   string
	jobs           int
	timeout        time.Duration
	failOn         string
	tests          bool
}

// thresholdError reports that the run produced findings at or above the
// --fail-on severity.
type thresholdError struct {
	count    int
	severity finding.Severity
}

func (e *thresholdError) Error() string {
	return fmt.Sprintf("%d findings at or above severity %s", e.count, e.severity)
}

func newCheckCmd() *cobra.Command {
	var opts checkOptions

	cmd := &cobra.Command{
		Use:   "check [paths...]",
		Short: "Analyze Java sources and report findings",
		Long: "Analyze the given files and directories. Without paths, the source " +
			"directories of the project in the current directory are analyzed.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			return runCheck(ctx, cmd, opts, args)
		},
	}

	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "configuration file (default $SNIFF_CONFIG or ./"+configFileName+")")
	cmd.Flags().StringVarP(&opts.baselinePath, "baseline", "b", "", "baseline file of accepted findings")
	cmd.Flags().BoolVar(&opts.createBaseline, "create-baseline", false, "write the current findings to the baseline file")
	cmd.Flags().StringVarP(&opts.outputFormat, "format", "f", "text", "output format (text, json)")
	cmd.Flags().IntVarP(&opts.jobs, "jobs", "j", 0, "files analyzed in parallel (default number of CPUs)")
	cmd.Flags().DurationVarP(&opts.timeout, "timeout", "t", 10*time.Second, "timeout per file")
	cmd.Flags().BoolVar(&opts.tests, "tests", false, "also analyze test sources when no paths are given")
	cmd.Flags().StringVar(&opts.failOn, "fail-on", "major", "exit with status 2 on findings of this severity or above, \"none\" to disable")

	return cmd
}

func runCheck(ctx context.Context, cmd *cobra.Command, opts checkOptions, paths []string) error {
	if opts.createBaseline && opts.baselinePath == "" {
		return errors.New("--create-baseline requires --baseline")
	}
	var failOn *finding.Severity
	if opts.failOn != "none" {
		sev, err := finding.ParseSeverity(opts.failOn)
		if err != nil {
			return fmt.Errorf("--fail-on: %w", err)
		}
		failOn = &sev
	}
	encoder, err := format.NewEncoder(opts.outputFormat, cmd.OutOrStdout())
	if err != nil {
		return err
	}

	if opts.configPath == "" {
		opts.configPath = projectConfig(".")
	}
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}

	var previous *baseline.Baseline
	if opts.baselinePath != "" {
		previous, err = baseline.Load(opts.baselinePath)
		if errors.Is(err, fs.ErrNotExist) && opts.createBaseline {
			previous, err = nil, nil
		}
		if err != nil {
			return err
		}
	}

	engineOpts := []engine.Option{engine.WithJobs(opts.jobs), engine.WithTimeout(opts.timeout)}
	if previous != nil && !opts.createBaseline {
		engineOpts = append(engineOpts, engine.WithBaseline(previous))
	}
	session, err := engine.New(rule.Default, cfg, engineOpts...).Session()
	if err != nil {
		var cfgErr *config.Error
		if errors.As(err, &cfgErr) {
			return fmt.Errorf("invalid configuration:\n%w", err)
		}
		return err
	}

	if len(paths) == 0 {
		p, err := project.Load(".")
		if err != nil {
			return err
		}
		paths = p.Paths(opts.tests)
	}
	files, err := java.Sources(paths...)
	if err != nil {
		return err
	}
	report, err := session.Run(ctx, java.Loader{}, files)
	if err != nil {
		return err
	}

	if opts.createBaseline {
		b := baseline.FromFindings(report.Findings, previous)
		if err := b.Save(opts.baselinePath); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %d findings to %s\n", len(b.CurrentIssues), opts.baselinePath)
		return nil
	}

	if err := encoder.Encode(report); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	if failOn != nil {
		if n := report.Summary.CountAtLeast(*failOn); n > 0 {
			return &thresholdError{count: n, severity: *failOn}
		}
	}
	return nil
}
