package engine

import (
	"cmp"
	"slices"

	"github.com/dhamidi/sniff/finding"
)

type Summary struct {
	Files      int                      `json:"files"`
	Total      int                      `json:"total"`
	BySeverity map[finding.Severity]int `json:"bySeverity"`
	Debt       finding.Debt             `json:"debt"`
	Suppressed int                      `json:"suppressed"`
	Baselined  int                      `json:"baselined"`
}

// Aggregate removes duplicate findings, keeping the first finding per
// rule and location, and orders the rest by file, start offset and rule
// id. End offset and message break the remaining ties so the order never
// depends on the order of the input.
func Aggregate(in []finding.Finding) []finding.Finding {
	seen := make(map[finding.Key]bool, len(in))
	out := make([]finding.Finding, 0, len(in))
	for _, f := range in {
		if seen[f.Key()] {
			continue
		}
		seen[f.Key()] = true
		out = append(out, f)
	}
	slices.SortStableFunc(out, compareFindings)
	return out
}

func compareFindings(a, b finding.Finding) int {
	return cmp.Or(
		cmp.Compare(a.Location.File, b.Location.File),
		cmp.Compare(a.Location.Start.Offset, b.Location.Start.Offset),
		cmp.Compare(a.RuleID, b.RuleID),
		cmp.Compare(a.Location.End.Offset, b.Location.End.Offset),
		cmp.Compare(a.Message, b.Message),
	)
}

// Summarize counts findings per severity and adds up their debt.
func Summarize(findings []finding.Finding) Summary {
	s := Summary{BySeverity: map[finding.Severity]int{}}
	for _, f := range findings {
		s.Total++
		s.BySeverity[f.Severity]++
		s.Debt += f.Debt
	}
	return s
}

// CountAtLeast returns the number of findings with at least the given
// severity.
func (s Summary) CountAtLeast(min finding.Severity) int {
	n := 0
	for sev, count := range s.BySeverity {
		if sev >= min {
			n += count
		}
	}
	return n
}
