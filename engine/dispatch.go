package engine

import (
	"fmt"

	"github.com/tliron/commonlog"

	"github.com/dhamidi/sniff/finding"
	"github.com/dhamidi/sniff/rule"
	"github.com/dhamidi/sniff/syntax"
)

// Instance is a rule created for one file.
type Instance struct {
	Meta rule.Meta
	Rule rule.Rule
}

type running struct {
	Instance
	ctx    *rule.Context
	failed bool
}

// Dispatch walks the tree once, depth first and in source order, calling
// Enter and Exit of every rule interested in a node's kind. Finalizers run
// after the walk. A rule that panics loses its findings for the file and
// is reported as a Diagnostic; the other rules are unaffected.
func Dispatch(root syntax.Node, file string, rules []Instance, log commonlog.Logger) ([]finding.Finding, []Diagnostic) {
	var diags []Diagnostic
	all := make([]*running, len(rules))
	byKind := map[syntax.Kind][]*running{}
	for i, inst := range rules {
		r := &running{Instance: inst, ctx: rule.NewContext(file, inst.Meta)}
		all[i] = r
		for _, kind := range inst.Rule.Kinds() {
			byKind[kind] = append(byKind[kind], r)
		}
	}

	call := func(r *running, phase string, f func()) {
		if r.failed {
			return
		}
		defer func() {
			if p := recover(); p != nil {
				r.failed = true
				msg := fmt.Sprintf("rule failed during %s: %v", phase, p)
				diags = append(diags, Diagnostic{File: file, Rule: r.Meta.QualifiedID(), Message: msg})
				log.Warningf("%s: %s: %s", file, r.Meta.QualifiedID(), msg)
			}
		}()
		f()
	}

	if root != nil && len(byKind) > 0 {
		var walk func(n syntax.Node)
		walk = func(n syntax.Node) {
			interested := byKind[n.Kind()]
			for _, r := range interested {
				call(r, "enter", func() { r.Rule.Enter(r.ctx, n) })
			}
			for _, child := range n.Children() {
				walk(child)
			}
			for _, r := range interested {
				call(r, "exit", func() { r.Rule.Exit(r.ctx, n) })
			}
		}
		walk(root)
	}

	for _, r := range all {
		if fin, ok := r.Rule.(rule.Finalizer); ok {
			call(r, "finalize", func() { fin.Finalize(r.ctx) })
		}
	}

	var findings []finding.Finding
	for _, r := range all {
		if !r.failed {
			findings = append(findings, r.ctx.Findings()...)
		}
	}
	return findings, diags
}
