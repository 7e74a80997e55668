package rule

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dhamidi/sniff/config"
)

type Registry struct {
	rules []Descriptor
	index map[string]int // UPPER(ruleSet:id) -> index
}

func NewRegistry() *Registry {
	return &Registry{index: map[string]int{}}
}

// Default holds the rules registered by the rule packages' init functions.
var Default = NewRegistry()

// Register adds d to the Default registry.
func Register(d Descriptor) {
	if err := Default.Register(d); err != nil {
		panic(err)
	}
}

func (r *Registry) Register(d Descriptor) error {
	if d.ID == "" || d.RuleSet == "" {
		return fmt.Errorf("rule %q: id and rule set are required", d.QualifiedID())
	}
	if d.Configure == nil {
		return fmt.Errorf("rule %s: no Configure function", d.QualifiedID())
	}
	key := strings.ToUpper(d.QualifiedID())
	if _, dup := r.index[key]; dup {
		return fmt.Errorf("rule %s registered twice", d.QualifiedID())
	}
	r.rules = append(r.rules, d)
	r.index[key] = len(r.rules) - 1
	return nil
}

// List returns all descriptors ordered by rule set, then id.
func (r *Registry) List() []Descriptor {
	out := append([]Descriptor{}, r.rules...)
	sort.Slice(out, func(i, j int) bool {
		if out[i].RuleSet != out[j].RuleSet {
			return out[i].RuleSet < out[j].RuleSet
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// Get finds a rule by "<ruleSet>:<id>" or by bare id.
func (r *Registry) Get(id string) (Descriptor, bool) {
	id = strings.TrimSpace(id)
	if idx, ok := r.index[strings.ToUpper(id)]; ok {
		return r.rules[idx], true
	}
	for _, d := range r.rules {
		if strings.EqualFold(d.ID, id) {
			return d, true
		}
	}
	return Descriptor{}, false
}

// Defaults returns the default configuration layer for every registered
// rule: its activation, severity and documented option defaults.
func (r *Registry) Defaults() config.Values {
	values := config.Values{}
	for _, d := range r.rules {
		config.Set(values, true, d.RuleSet, "active")
		config.Set(values, d.Active, d.RuleSet, d.ID, "active")
		config.Set(values, d.Severity.String(), d.RuleSet, d.ID, "severity")
		config.Set(values, []string{}, d.RuleSet, d.ID, "excludes")
		for _, opt := range d.Options {
			config.Set(values, opt.Default, d.RuleSet, d.ID, opt.Name)
		}
	}
	return values
}
