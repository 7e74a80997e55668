// Package engine runs rules over syntax trees and turns their raw
// findings into an ordered, deduplicated report.
//
// A run resolves the configuration of every registered rule once, then
// analyzes each file independently: load, dispatch, in-source suppression
// and baseline filtering. Files are analyzed concurrently; findings of all
// files are merged and ordered after every file has finished.
package engine

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"runtime"
	"time"

	"github.com/tliron/commonlog"
	"golang.org/x/sync/errgroup"

	"github.com/dhamidi/sniff/config"
	"github.com/dhamidi/sniff/finding"
	"github.com/dhamidi/sniff/rule"
	"github.com/dhamidi/sniff/suppress"
)

var log = commonlog.GetLogger("sniff.engine")

// Baseline holds findings that were accepted earlier.
type Baseline interface {
	Contains(f finding.Finding) bool
}

type Option func(*Engine)

// WithJobs bounds the number of files analyzed at once. Values below one
// select runtime.GOMAXPROCS(0).
func WithJobs(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.jobs = n
		}
	}
}

// WithTimeout limits the time spent on a single file. Zero means no limit.
func WithTimeout(d time.Duration) Option {
	return func(e *Engine) {
		e.timeout = d
	}
}

func WithBaseline(b Baseline) Option {
	return func(e *Engine) {
		e.baseline = b
	}
}

func WithLogger(l commonlog.Logger) Option {
	return func(e *Engine) {
		e.log = l
	}
}

type Engine struct {
	registry *rule.Registry
	config   *config.Config
	jobs     int
	timeout  time.Duration
	baseline Baseline
	log      commonlog.Logger
}

// New creates an engine for the rules of registry. cfg is layered over the
// registry's defaults; nil means defaults only.
func New(registry *rule.Registry, cfg *config.Config, opts ...Option) *Engine {
	if cfg == nil {
		cfg = config.New()
	}
	e := &Engine{
		registry: registry,
		config:   cfg.WithDefaults(registry.Defaults()),
		jobs:     runtime.GOMAXPROCS(0),
		log:      log,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

type Report struct {
	Findings    []finding.Finding `json:"findings"`
	Summary     Summary           `json:"summary"`
	Diagnostics []Diagnostic      `json:"diagnostics,omitempty"`
}

type activeRule struct {
	meta     rule.Meta
	factory  rule.Factory
	excludes []*regexp.Regexp
}

// Session is the resolved, active rule set of one run.
type Session struct {
	engine *Engine
	rules  []activeRule
	metas  []rule.Meta
}

// Session resolves the configuration of every active rule. All invalid
// options are reported together, joined into one error; no rule is
// silently skipped.
func (e *Engine) Session() (*Session, error) {
	s := &Session{engine: e}
	var errs []error
	ruleSets := map[string]bool{}

	for _, d := range e.registry.List() {
		setActive, seen := ruleSets[d.RuleSet]
		if !seen {
			var err error
			setActive, err = e.ruleSetActive(d.RuleSet)
			if err != nil {
				errs = append(errs, err)
			}
			ruleSets[d.RuleSet] = setActive
		}

		r := e.config.Resolver(d.RuleSet, d.ID)
		active, err := config.Resolve(r, "active", d.Active, config.Bool)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if !setActive || !active {
			continue
		}

		severity, sevErr := config.Resolve(r, "severity", d.Severity, config.Severity)
		excludes, exclErr := config.Resolve(r, "excludes", nil, config.SimplePatterns)
		factory, cfgErr := d.Configure(r)
		if err := errors.Join(sevErr, exclErr, cfgErr); err != nil {
			errs = append(errs, err)
			continue
		}

		meta := d.Meta
		meta.Severity = severity
		s.rules = append(s.rules, activeRule{meta: meta, factory: factory, excludes: excludes})
		s.metas = append(s.metas, meta)
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return s, nil
}

func (e *Engine) ruleSetActive(ruleSet string) (bool, error) {
	raw, ok := e.config.Lookup(ruleSet, "active")
	if !ok || raw == nil {
		return true, nil
	}
	active, err := config.Bool(raw)
	if err != nil {
		return false, &config.Error{RuleSet: ruleSet, Option: "active", Value: raw, Err: err}
	}
	return active, nil
}

// Rules returns the active rules with their effective severity.
func (s *Session) Rules() []rule.Meta {
	return s.metas
}

// FileResult is the outcome of analyzing one file.
type FileResult struct {
	Findings    []finding.Finding
	Suppressed  int
	Baselined   int
	Diagnostics []Diagnostic
}

// Analyze runs the active rules over a loaded unit and applies in-source
// suppressions and the baseline.
func (s *Session) Analyze(unit *Unit) FileResult {
	var instances []Instance
	for _, r := range s.rules {
		if config.MatchesAny(r.excludes, filepath.ToSlash(unit.Path)) {
			continue
		}
		instances = append(instances, Instance{Meta: r.meta, Rule: r.factory()})
	}

	findings, diags := Dispatch(unit.Root, unit.Path, instances, s.engine.log)
	kept, suppressed := suppress.NewFilter(unit.Suppressions, s.metas...).Apply(findings)

	result := FileResult{Suppressed: suppressed, Diagnostics: diags}
	for _, f := range kept {
		if s.engine.baseline != nil && s.engine.baseline.Contains(f) {
			result.Baselined++
			continue
		}
		result.Findings = append(result.Findings, f)
	}
	return result
}

func (s *Session) analyzeFile(ctx context.Context, loader Loader, path string) (FileResult, error) {
	fileCtx := ctx
	if s.engine.timeout > 0 {
		var cancel context.CancelFunc
		fileCtx, cancel = context.WithTimeout(ctx, s.engine.timeout)
		defer cancel()
	}

	done := make(chan FileResult, 1)
	go func() {
		s.engine.log.Debugf("analyzing %s", path)
		unit, err := loader.Load(fileCtx, path)
		if err != nil {
			s.engine.log.Warningf("skipping %s: %s", path, err)
			done <- FileResult{Diagnostics: []Diagnostic{{File: path, Message: err.Error()}}}
			return
		}
		done <- s.Analyze(unit)
	}()

	select {
	case result := <-done:
		if err := ctx.Err(); err != nil {
			return FileResult{}, err
		}
		return result, nil
	case <-fileCtx.Done():
		if err := ctx.Err(); err != nil {
			return FileResult{}, err
		}
		msg := fmt.Sprintf("analysis timed out after %s", s.engine.timeout)
		s.engine.log.Warningf("%s: %s", path, msg)
		return FileResult{Diagnostics: []Diagnostic{{File: path, Message: msg}}}, nil
	}
}

// Run analyzes the given files with at most WithJobs files in flight. It
// fails only on configuration errors and cancellation of ctx; problems
// with single files end up in the report's diagnostics.
func (e *Engine) Run(ctx context.Context, loader Loader, paths []string) (*Report, error) {
	s, err := e.Session()
	if err != nil {
		return nil, err
	}
	return s.Run(ctx, loader, paths)
}

func (s *Session) Run(ctx context.Context, loader Loader, paths []string) (*Report, error) {
	results := make([]FileResult, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.engine.jobs)
	for i, path := range paths {
		g.Go(func() error {
			r, err := s.analyzeFile(gctx, loader, path)
			if err != nil {
				return err
			}
			results[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("analysis canceled: %w", err)
	}

	var all []finding.Finding
	report := &Report{}
	suppressed, baselined := 0, 0
	for _, r := range results {
		all = append(all, r.Findings...)
		report.Diagnostics = append(report.Diagnostics, r.Diagnostics...)
		suppressed += r.Suppressed
		baselined += r.Baselined
	}
	report.Findings = Aggregate(all)
	report.Summary = Summarize(report.Findings)
	report.Summary.Files = len(paths)
	report.Summary.Suppressed = suppressed
	report.Summary.Baselined = baselined
	s.engine.log.Infof("analyzed %d files: %d findings", len(paths), report.Summary.Total)
	return report, nil
}
