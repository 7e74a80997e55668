// Package suppress drops findings that the source code itself marks as
// accepted, e.g. with @SuppressWarnings("SwallowedException").
package suppress

import (
	"strings"

	"github.com/dhamidi/sniff/finding"
	"github.com/dhamidi/sniff/rule"
	"github.com/dhamidi/sniff/syntax"
)

// Suppression marks a region of a file in which findings of the rules
// named by Targets are dropped.
type Suppression struct {
	Span    syntax.Span
	Active  bool
	Targets []string
}

// Matches reports whether target names the rule described by m. Targets
// may carry a "sniff:" or "sniff." prefix and may name the rule id, its
// rule set, "<ruleSet>:<ruleId>", one of the rule's aliases, or "all".
func Matches(target string, m rule.Meta) bool {
	target = strings.TrimSpace(target)
	for _, prefix := range []string{"sniff:", "sniff."} {
		if len(target) > len(prefix) && strings.EqualFold(target[:len(prefix)], prefix) {
			target = target[len(prefix):]
			break
		}
	}
	if target == "" {
		return false
	}
	if eqCI(target, "all") || eqCI(target, m.ID) || eqCI(target, m.RuleSet) || eqCI(target, m.QualifiedID()) {
		return true
	}
	for _, alias := range m.Aliases {
		if eqCI(target, alias) {
			return true
		}
	}
	return false
}

// Suppresses reports whether s covers a finding with meta m at loc.
func (s Suppression) Suppresses(loc finding.Location, m rule.Meta) bool {
	if !s.Active || !s.Span.Contains(loc.Span()) {
		return false
	}
	for _, target := range s.Targets {
		if Matches(target, m) {
			return true
		}
	}
	return false
}

// Filter applies suppressions to findings. Rules are looked up by their
// qualified id to find their aliases.
type Filter struct {
	suppressions []Suppression
	rules        map[string]rule.Meta
}

func NewFilter(suppressions []Suppression, rules ...rule.Meta) *Filter {
	f := &Filter{suppressions: suppressions, rules: make(map[string]rule.Meta, len(rules))}
	for _, m := range rules {
		f.rules[m.QualifiedID()] = m
	}
	return f
}

// Apply returns the findings not covered by any suppression and the number
// of findings dropped.
func (f *Filter) Apply(in []finding.Finding) ([]finding.Finding, int) {
	if len(f.suppressions) == 0 || len(in) == 0 {
		return in, 0
	}
	var out []finding.Finding
	dropped := 0
nextFinding:
	for _, fd := range in {
		meta := f.meta(fd)
		for _, s := range f.suppressions {
			if s.Suppresses(fd.Location, meta) {
				dropped++
				continue nextFinding
			}
		}
		out = append(out, fd)
	}
	return out, dropped
}

func (f *Filter) meta(fd finding.Finding) rule.Meta {
	if m, ok := f.rules[fd.RuleSet+":"+fd.RuleID]; ok {
		return m
	}
	return rule.Meta{ID: fd.RuleID, RuleSet: fd.RuleSet}
}

func eqCI(a, b string) bool { return strings.EqualFold(a, b) }
