// Package rule defines the contract between inspection rules and the
// engine that runs them.
//
// A rule is described once by a Descriptor and registered in a Registry.
// For each analysis run the engine calls Configure with the rule's option
// resolver; the returned Factory then creates a fresh Rule for every file,
// so per-file state lives on the Rule value and never leaks across files.
package rule

import (
	"slices"
	"strings"

	"github.com/dhamidi/sniff/config"
	"github.com/dhamidi/sniff/finding"
	"github.com/dhamidi/sniff/syntax"
)

type Meta struct {
	ID          string
	RuleSet     string
	Description string
	Severity    finding.Severity
	Debt        finding.Debt
	// Aliases are extra names accepted by suppressions.
	Aliases []string
}

// QualifiedID returns "<ruleSet>:<id>".
func (m Meta) QualifiedID() string {
	return m.RuleSet + ":" + m.ID
}

// Rule receives callbacks for the node kinds it registers interest in.
// Enter is called before a node's children are visited, Exit after.
type Rule interface {
	Kinds() []syntax.Kind
	Enter(ctx *Context, n syntax.Node)
	Exit(ctx *Context, n syntax.Node)
}

// Finalizer is implemented by rules that report after the whole tree has
// been visited.
type Finalizer interface {
	Finalize(ctx *Context)
}

// Base provides no-op callbacks for rules that only need some of them.
type Base struct{}

func (Base) Enter(*Context, syntax.Node) {}
func (Base) Exit(*Context, syntax.Node)  {}

type Factory func() Rule

type Option struct {
	Name        string
	Default     any
	Description string
}

type Descriptor struct {
	Meta
	// Active is the rule's activation when the configuration says nothing.
	Active  bool
	Options []Option
	// Configure resolves the rule's options once per run.
	Configure func(r *config.Resolver) (Factory, error)
}

// Context accumulates the findings of one rule on one file.
type Context struct {
	File     string
	meta     Meta
	findings []finding.Finding
}

// NewContext creates a context reporting with meta's severity and debt.
func NewContext(file string, meta Meta) *Context {
	return &Context{File: file, meta: meta}
}

func (c *Context) Meta() Meta {
	return c.meta
}

// Report records a finding located at n.
func (c *Context) Report(n syntax.Node, message string) {
	c.findings = append(c.findings, finding.Finding{
		RuleID:   c.meta.ID,
		RuleSet:  c.meta.RuleSet,
		Severity: c.meta.Severity,
		Debt:     c.meta.Debt,
		Location: finding.LocationOf(n.Span()),
		Entity:   Entity(n),
		Message:  message,
	})
}

func (c *Context) Findings() []finding.Finding {
	return c.findings
}

// Entity joins the names of n and its enclosing declarations from the
// outermost in, e.g. "Service.Inner.load".
func Entity(n syntax.Node) string {
	var names []string
	for ; n != nil; n = n.Parent() {
		if name := n.Name(); name != "" {
			names = append(names, name)
		}
	}
	slices.Reverse(names)
	return strings.Join(names, ".")
}
