package format

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/dhamidi/sniff/engine"
	"github.com/dhamidi/sniff/finding"
)

// LineEncoder writes one finding per line, followed by the engine's
// diagnostics and a summary.
type LineEncoder struct {
	w      io.Writer
	report *engine.Report
}

func NewLineEncoder(w io.Writer) *LineEncoder {
	return &LineEncoder{w: w}
}

func (e *LineEncoder) Encode(report *engine.Report) error {
	e.report = report
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *LineEncoder) MarshalText() ([]byte, error) {
	var sb strings.Builder
	r := e.report

	for _, f := range r.Findings {
		fmt.Fprintf(&sb, "%s: %s %s/%s: %s\n",
			f.Location,
			f.Severity,
			f.RuleSet,
			f.RuleID,
			f.Message,
		)
	}

	for _, d := range r.Diagnostics {
		fmt.Fprintf(&sb, "warning: %s\n", d)
	}

	if len(r.Findings) > 0 || len(r.Diagnostics) > 0 {
		sb.WriteByte('\n')
	}
	fmt.Fprintf(&sb, "%d files analyzed, %d findings%s, debt %s",
		r.Summary.Files,
		r.Summary.Total,
		e.severityCounts(),
		r.Summary.Debt,
	)
	if r.Summary.Suppressed > 0 {
		fmt.Fprintf(&sb, ", %d suppressed", r.Summary.Suppressed)
	}
	if r.Summary.Baselined > 0 {
		fmt.Fprintf(&sb, ", %d baselined", r.Summary.Baselined)
	}
	sb.WriteByte('\n')

	return []byte(sb.String()), nil
}

// severityCounts renders " (2 major, 1 minor)", most severe first.
func (e *LineEncoder) severityCounts() string {
	var severities []finding.Severity
	for sev, n := range e.report.Summary.BySeverity {
		if n > 0 {
			severities = append(severities, sev)
		}
	}
	if len(severities) == 0 {
		return ""
	}
	slices.Sort(severities)
	slices.Reverse(severities)

	parts := make([]string, 0, len(severities))
	for _, sev := range severities {
		parts = append(parts, fmt.Sprintf("%d %s", e.report.Summary.BySeverity[sev], sev))
	}
	return " (" + strings.Join(parts, ", ") + ")"
}
