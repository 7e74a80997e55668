// Package finding holds the values rules produce: findings, severities and
// remediation debt.
package finding

import (
	"fmt"
	"strings"
	"time"

	"github.com/dhamidi/sniff/syntax"
)

type Severity int

const (
	Info Severity = iota
	Minor
	Major
	Fatal
)

var severityNames = []string{"info", "minor", "major", "fatal"}

func (s Severity) String() string {
	if s < Info || s > Fatal {
		return fmt.Sprintf("severity(%d)", int(s))
	}
	return severityNames[s]
}

// ParseSeverity accepts the lower-case names produced by String, in any case.
func ParseSeverity(name string) (Severity, error) {
	for i, n := range severityNames {
		if strings.EqualFold(n, strings.TrimSpace(name)) {
			return Severity(i), nil
		}
	}
	return Info, fmt.Errorf("unknown severity %q (want one of %s)", name, strings.Join(severityNames, ", "))
}

func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Severity) UnmarshalText(text []byte) error {
	parsed, err := ParseSeverity(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Debt is the estimated time needed to fix a finding.
type Debt time.Duration

const (
	FiveMins   = Debt(5 * time.Minute)
	TenMins    = Debt(10 * time.Minute)
	TwentyMins = Debt(20 * time.Minute)
)

// String renders debt in days, hours and minutes, e.g. "1d2h30min".
// A workday is not assumed: a day is 24 hours.
func (d Debt) String() string {
	mins := int64(time.Duration(d) / time.Minute)
	if mins <= 0 {
		return "0min"
	}
	var b strings.Builder
	if days := mins / (24 * 60); days > 0 {
		fmt.Fprintf(&b, "%dd", days)
	}
	if hours := mins / 60 % 24; hours > 0 {
		fmt.Fprintf(&b, "%dh", hours)
	}
	if m := mins % 60; m > 0 {
		fmt.Fprintf(&b, "%dmin", m)
	}
	return b.String()
}

func (d Debt) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

type Location struct {
	File  string          `json:"file"`
	Start syntax.Position `json:"start"`
	End   syntax.Position `json:"end"`
}

func LocationOf(span syntax.Span) Location {
	return Location{File: span.File, Start: span.Start, End: span.End}
}

func (l Location) Span() syntax.Span {
	return syntax.Span{File: l.File, Start: l.Start, End: l.End}
}

func (l Location) String() string {
	return fmt.Sprintf("%s:%d:%d", l.File, l.Start.Line, l.Start.Column)
}

// Finding is a single reported code smell. Findings are values and are
// never modified after a rule reports them.
type Finding struct {
	RuleID   string   `json:"rule"`
	RuleSet  string   `json:"ruleSet"`
	Severity Severity `json:"severity"`
	Location Location `json:"location"`
	// Entity names the enclosing declarations, e.g. "Service.load".
	Entity  string `json:"entity,omitempty"`
	Message string `json:"message"`
	Debt    Debt   `json:"debt"`
}

// Key identifies a finding for deduplication.
type Key struct {
	RuleID string
	File   string
	Start  int
	End    int
}

func (f Finding) Key() Key {
	return Key{
		RuleID: f.RuleID,
		File:   f.Location.File,
		Start:  f.Location.Start.Offset,
		End:    f.Location.End.Offset,
	}
}

// Signature is the location independent identity of a finding, stable
// across edits that only move code around. Baselines are keyed on it.
func (f Finding) Signature() string {
	return f.RuleID + ":" + f.Location.File + ":" + f.Entity
}

func (f Finding) String() string {
	return fmt.Sprintf("%s: [%s] %s %s", f.Location, f.Severity, f.RuleID, f.Message)
}
