// Package baseline reads and writes files of accepted findings. Findings
// listed in the baseline are left out of reports, so a rule can be enabled
// on an existing code base without fixing every old finding first.
package baseline

import (
	"fmt"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/dhamidi/sniff/finding"
)

// Baseline lists finding signatures (see finding.Finding.Signature).
// ManuallySuppressed entries are maintained by hand and survive
// regeneration; CurrentIssues are rewritten by --create-baseline.
type Baseline struct {
	ManuallySuppressed []string `yaml:"manuallySuppressed"`
	CurrentIssues      []string `yaml:"currentIssues"`

	ids map[string]bool
}

type file struct {
	Baseline *Baseline `yaml:"baseline"`
}

func Load(path string) (*Baseline, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading baseline: %w", err)
	}
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("%s: parsing baseline: %w", path, err)
	}
	if f.Baseline == nil {
		return New(nil, nil), nil
	}
	return New(f.Baseline.ManuallySuppressed, f.Baseline.CurrentIssues), nil
}

func New(manual, current []string) *Baseline {
	b := &Baseline{
		ManuallySuppressed: sorted(manual),
		CurrentIssues:      sorted(current),
		ids:                map[string]bool{},
	}
	for _, id := range b.ManuallySuppressed {
		b.ids[id] = true
	}
	for _, id := range b.CurrentIssues {
		b.ids[id] = true
	}
	return b
}

// FromFindings creates a baseline accepting findings. The manually
// suppressed entries of previous, if any, are kept.
func FromFindings(findings []finding.Finding, previous *Baseline) *Baseline {
	var manual []string
	if previous != nil {
		manual = previous.ManuallySuppressed
	}
	current := make([]string, 0, len(findings))
	for _, f := range findings {
		current = append(current, f.Signature())
	}
	return New(manual, current)
}

func (b *Baseline) Contains(f finding.Finding) bool {
	return b.ids[f.Signature()]
}

func (b *Baseline) Save(path string) error {
	data, err := yaml.Marshal(file{Baseline: b})
	if err != nil {
		return fmt.Errorf("encoding baseline: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing baseline: %w", err)
	}
	return nil
}

func sorted(ids []string) []string {
	out := slices.Clone(ids)
	slices.Sort(out)
	return slices.Compact(out)
}
