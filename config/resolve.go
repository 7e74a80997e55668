package config

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/dhamidi/sniff/finding"
)

type Resolver struct {
	config  *Config
	RuleSet string
	Rule    string
}

// Raw returns the unconverted value of a rule option.
func (r *Resolver) Raw(option string) (any, bool) {
	return r.config.Lookup(r.RuleSet, r.Rule, option)
}

// RuleSetValue returns a value set on the rule set itself, such as
// <ruleSet>.active.
func (r *Resolver) RuleSetValue(option string) (any, bool) {
	return r.config.Lookup(r.RuleSet, option)
}

// Coercion converts a raw configuration value to the type a rule needs.
type Coercion[T any] func(raw any) (T, error)

// Resolve returns the option's value, or def when the option is not set.
// A value that cannot be coerced yields a *Error naming the rule and option.
func Resolve[T any](r *Resolver, option string, def T, coerce Coercion[T]) (T, error) {
	raw, ok := r.Raw(option)
	if !ok || raw == nil {
		return def, nil
	}
	v, err := coerce(raw)
	if err != nil {
		return def, &Error{RuleSet: r.RuleSet, Rule: r.Rule, Option: option, Value: raw, Err: err}
	}
	return v, nil
}

func scalar(raw any) (string, error) {
	switch v := raw.(type) {
	case string:
		return v, nil
	case int, int64, float64, bool:
		return fmt.Sprint(v), nil
	}
	return "", fmt.Errorf("expected a scalar, got %T", raw)
}

func String(raw any) (string, error) {
	return scalar(raw)
}

func Int(raw any) (int, error) {
	switch v := raw.(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case float64:
		if v == float64(int(v)) {
			return int(v), nil
		}
	case string:
		return strconv.Atoi(strings.TrimSpace(v))
	}
	return 0, fmt.Errorf("expected an integer, got %v", raw)
}

func Bool(raw any) (bool, error) {
	switch v := raw.(type) {
	case bool:
		return v, nil
	case string:
		return strconv.ParseBool(strings.TrimSpace(v))
	}
	return false, fmt.Errorf("expected true or false, got %v", raw)
}

func Severity(raw any) (finding.Severity, error) {
	s, err := scalar(raw)
	if err != nil {
		return finding.Info, err
	}
	return finding.ParseSeverity(s)
}

// StringList accepts a YAML list of scalars or a comma separated string.
// Entries are trimmed and blank entries dropped.
func StringList(raw any) ([]string, error) {
	var items []string
	switch v := raw.(type) {
	case string:
		items = strings.Split(v, ",")
	case []any:
		for _, item := range v {
			s, err := scalar(item)
			if err != nil {
				return nil, fmt.Errorf("list entry: %w", err)
			}
			items = append(items, s)
		}
	case []string:
		items = v
	default:
		return nil, fmt.Errorf("expected a list or comma separated string, got %T", raw)
	}

	result := []string{}
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			result = append(result, item)
		}
	}
	return result, nil
}

// Regex compiles a pattern for partial matching. An empty pattern yields
// nil, which callers treat as matching nothing.
func Regex(raw any) (*regexp.Regexp, error) {
	s, err := scalar(raw)
	if err != nil || s == "" {
		return nil, err
	}
	return regexp.Compile(s)
}

// FullMatchRegex is like Regex but the pattern must match the whole input.
func FullMatchRegex(raw any) (*regexp.Regexp, error) {
	s, err := scalar(raw)
	if err != nil || s == "" {
		return nil, err
	}
	if _, err := regexp.Compile(s); err != nil {
		return nil, err
	}
	return regexp.Compile("^(?:" + s + ")$")
}

// SimplePatterns compiles a list of simple patterns in which '*' matches
// any run of characters and everything else matches literally.
func SimplePatterns(raw any) ([]*regexp.Regexp, error) {
	items, err := StringList(raw)
	if err != nil {
		return nil, err
	}
	patterns := make([]*regexp.Regexp, 0, len(items))
	for _, item := range items {
		patterns = append(patterns, CompileSimplePattern(item))
	}
	return patterns, nil
}

func CompileSimplePattern(pattern string) *regexp.Regexp {
	parts := strings.Split(pattern, "*")
	for i, part := range parts {
		parts[i] = regexp.QuoteMeta(part)
	}
	return regexp.MustCompile("^" + strings.Join(parts, ".*") + "$")
}

// MatchesAny reports whether one of the patterns matches s.
func MatchesAny(patterns []*regexp.Regexp, s string) bool {
	for _, p := range patterns {
		if p.MatchString(s) {
			return true
		}
	}
	return false
}
