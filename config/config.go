// Package config resolves rule options from layered YAML configuration.
//
// Options are addressed as <ruleSet>.<rule>.<option>. A Config holds any
// number of layers; lookups return the value from the first layer that
// has the key, so user settings shadow the defaults below them. Keys no
// rule asks for are ignored.
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Values is one configuration layer as decoded from YAML.
type Values = map[string]any

type Config struct {
	layers []Values
}

// New returns a configuration with the given layers, highest priority first.
func New(layers ...Values) *Config {
	c := &Config{}
	for _, l := range layers {
		if l != nil {
			c.layers = append(c.layers, l)
		}
	}
	return c
}

// Load reads a YAML configuration file. An empty path yields an empty
// configuration.
func Load(path string) (*Config, error) {
	if path == "" {
		return New(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

func Parse(data []byte) (*Config, error) {
	var values Values
	if err := yaml.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return New(values), nil
}

// WithDefaults returns a configuration that falls back to defaults for
// keys c does not set.
func (c *Config) WithDefaults(defaults Values) *Config {
	layers := append([]Values{}, c.layers...)
	return New(append(layers, defaults)...)
}

// Lookup returns the value at the given key path.
func (c *Config) Lookup(path ...string) (any, bool) {
	for _, layer := range c.layers {
		if v, ok := lookup(layer, path); ok {
			return v, true
		}
	}
	return nil, false
}

func lookup(values Values, path []string) (any, bool) {
	var current any = values
	for _, key := range path {
		m, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		current, ok = m[key]
		if !ok {
			return nil, false
		}
	}
	return current, true
}

// Resolver returns the option resolver for one rule.
func (c *Config) Resolver(ruleSet, rule string) *Resolver {
	return &Resolver{config: c, RuleSet: ruleSet, Rule: rule}
}

// Marshal renders a configuration layer as YAML.
func Marshal(values Values) ([]byte, error) {
	return yaml.Marshal(values)
}

// Set stores value at the key path in values, creating nested maps.
func Set(values Values, value any, path ...string) {
	m := values
	for _, key := range path[:len(path)-1] {
		next, ok := m[key].(map[string]any)
		if !ok {
			next = Values{}
			m[key] = next
		}
		m = next
	}
	m[path[len(path)-1]] = value
}

// Error reports an option whose value could not be coerced to the type the
// rule expects.
type Error struct {
	RuleSet string
	Rule    string
	Option  string
	Value   any
	Err     error
}

func (e *Error) Error() string {
	return fmt.Sprintf("invalid value for %s: %v", e.Key(), e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Key returns the dotted configuration key of the offending option.
func (e *Error) Key() string {
	parts := []string{e.RuleSet}
	if e.Rule != "" {
		parts = append(parts, e.Rule)
	}
	return strings.Join(append(parts, e.Option), ".")
}
