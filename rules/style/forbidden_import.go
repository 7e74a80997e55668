// Package style holds rules about code style and conventions.
package style

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/dhamidi/sniff/config"
	"github.com/dhamidi/sniff/finding"
	"github.com/dhamidi/sniff/java"
	"github.com/dhamidi/sniff/rule"
	"github.com/dhamidi/sniff/syntax"
)

var ForbiddenImportRule = rule.Descriptor{
	Meta: rule.Meta{
		ID:          "ForbiddenImport",
		RuleSet:     "style",
		Description: "Mark imports which should not be used in the project.",
		Severity:    finding.Minor,
		Debt:        finding.TenMins,
	},
	Options: []rule.Option{
		{Name: "imports", Default: []string{},
			Description: "imports which should not be used, '*' matches any characters"},
		{Name: "forbiddenPatterns", Default: "",
			Description: "regular expression matching imports which should not be used"},
	},
	Configure: configureForbiddenImport,
}

func init() {
	rule.Register(ForbiddenImportRule)
}

func configureForbiddenImport(r *config.Resolver) (rule.Factory, error) {
	imports, importsErr := config.Resolve(r, "imports", nil, config.SimplePatterns)
	pattern, patternErr := config.Resolve(r, "forbiddenPatterns", nil, config.Regex)
	if err := errors.Join(importsErr, patternErr); err != nil {
		return nil, err
	}
	return func() rule.Rule {
		return &forbiddenImport{imports: imports, pattern: pattern}
	}, nil
}

type forbiddenImport struct {
	rule.Base
	imports []*regexp.Regexp
	pattern *regexp.Regexp
}

func (r *forbiddenImport) Kinds() []syntax.Kind {
	return []syntax.Kind{java.ImportDecl}
}

func (r *forbiddenImport) Enter(ctx *rule.Context, n syntax.Node) {
	name := java.ImportedName(n)
	if name == "" {
		return
	}
	if config.MatchesAny(r.imports, name) || (r.pattern != nil && r.pattern.MatchString(name)) {
		ctx.Report(n, fmt.Sprintf("The import %s has been forbidden in the configuration.", name))
	}
}
