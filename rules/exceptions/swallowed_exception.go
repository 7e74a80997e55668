// Package exceptions holds rules about catching and reporting exceptions.
package exceptions

import (
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/dhamidi/sniff/config"
	"github.com/dhamidi/sniff/finding"
	"github.com/dhamidi/sniff/java"
	"github.com/dhamidi/sniff/rule"
	"github.com/dhamidi/sniff/syntax"
)

var defaultIgnoredExceptionTypes = []string{
	"InterruptedException",
	"MalformedURLException",
	"NumberFormatException",
	"ParseException",
}

// DefaultIgnoredExceptionTypes returns the exception types SwallowedException
// ignores unless configured otherwise.
func DefaultIgnoredExceptionTypes() []string {
	return slices.Clone(defaultIgnoredExceptionTypes)
}

var SwallowedExceptionRule = rule.Descriptor{
	Meta: rule.Meta{
		ID:      "SwallowedException",
		RuleSet: "exceptions",
		Description: "The caught exception is swallowed. The original exception could be lost, " +
			"making it hard to find out what went wrong.",
		Severity: finding.Major,
		Debt:     finding.TwentyMins,
		Aliases:  []string{"CatchMayIgnoreException"},
	},
	Active: true,
	Options: []rule.Option{
		{Name: "ignoredExceptionTypes", Default: DefaultIgnoredExceptionTypes(),
			Description: "exception types which should be ignored, by simple name"},
		{Name: "allowedExceptionNameRegex", Default: "",
			Description: "names of caught exceptions which may be ignored"},
		{Name: "allowCommentedBlocks", Default: false,
			Description: "do not report empty catch blocks that contain a comment"},
	},
	Configure: configureSwallowedException,
}

func init() {
	rule.Register(SwallowedExceptionRule)
}

type SwallowedExceptionConfig struct {
	IgnoredExceptionTypes []string
	// AllowedExceptionName must match the whole variable name. nil
	// matches nothing.
	AllowedExceptionName *regexp.Regexp
	AllowCommentedBlocks bool
}

func configureSwallowedException(r *config.Resolver) (rule.Factory, error) {
	types, typesErr := config.Resolve(r, "ignoredExceptionTypes", DefaultIgnoredExceptionTypes(), config.StringList)
	name, nameErr := config.Resolve(r, "allowedExceptionNameRegex", nil, config.FullMatchRegex)
	commented, commentedErr := config.Resolve(r, "allowCommentedBlocks", false, config.Bool)
	if err := errors.Join(typesErr, nameErr, commentedErr); err != nil {
		return nil, err
	}
	cfg := SwallowedExceptionConfig{
		IgnoredExceptionTypes: types,
		AllowedExceptionName:  name,
		AllowCommentedBlocks:  commented,
	}
	return func() rule.Rule { return NewSwallowedException(cfg) }, nil
}

// SwallowedException reports catch clauses that neither use the caught
// exception nor rethrow it. A clause uses the exception when any
// expression in its body reads the variable, including reads inside a
// throw statement or a nested block. A clause that throws without reading
// the variable loses the original exception and is reported as well,
// unless the thrown exception is one of the ignored types.
type SwallowedException struct {
	rule.Base
	config  SwallowedExceptionConfig
	ignored map[string]bool
	stack   []*catchScope
}

// catchScope tracks one catch clause while its body is visited.
type catchScope struct {
	name    string
	skipped bool
	used    bool
	throws  []string // simple names of thrown types, "" when unknown
}

func NewSwallowedException(cfg SwallowedExceptionConfig) *SwallowedException {
	ignored := make(map[string]bool, len(cfg.IgnoredExceptionTypes))
	for _, t := range cfg.IgnoredExceptionTypes {
		ignored[t] = true
	}
	return &SwallowedException{config: cfg, ignored: ignored}
}

func (r *SwallowedException) Kinds() []syntax.Kind {
	return []syntax.Kind{java.CatchClause, java.Identifier, java.ThrowStmt}
}

func (r *SwallowedException) Enter(ctx *rule.Context, n syntax.Node) {
	switch n.Kind() {
	case java.CatchClause:
		r.enterCatch(n)
	case java.Identifier:
		if len(r.stack) == 0 || !java.IsReference(n) {
			return
		}
		name := n.Text()
		for i := len(r.stack) - 1; i >= 0; i-- {
			if r.stack[i].name == name {
				r.stack[i].used = true
				return
			}
		}
	case java.ThrowStmt:
		if len(r.stack) == 0 {
			return
		}
		top := r.stack[len(r.stack)-1]
		top.throws = append(top.throws, thrownType(n))
	}
}

func (r *SwallowedException) enterCatch(n syntax.Node) {
	scope := &catchScope{}
	if id := syntax.FirstChild(n, java.Identifier); id != nil {
		scope.name = id.Text()
	}
	scope.skipped = r.ignoresTypes(n) ||
		(r.config.AllowedExceptionName != nil && r.config.AllowedExceptionName.MatchString(scope.name))
	r.stack = append(r.stack, scope)
}

// ignoresTypes reports whether every type caught by the clause is ignored.
func (r *SwallowedException) ignoresTypes(n syntax.Node) bool {
	catchType := syntax.FirstChild(n, java.CatchType)
	if catchType == nil {
		return false
	}
	types := catchType.Children()
	if len(types) == 0 {
		return false
	}
	for _, t := range types {
		if !r.ignored[java.TypeName(t)] {
			return false
		}
	}
	return true
}

func (r *SwallowedException) Exit(ctx *rule.Context, n syntax.Node) {
	if n.Kind() != java.CatchClause || len(r.stack) == 0 {
		return
	}
	scope := r.stack[len(r.stack)-1]
	r.stack = r.stack[:len(r.stack)-1]
	if scope.skipped || scope.used {
		return
	}

	if len(scope.throws) == 0 {
		if r.config.AllowCommentedBlocks && isCommentedEmptyBlock(syntax.FirstChild(n, java.Block)) {
			return
		}
		ctx.Report(n, fmt.Sprintf("The caught exception '%s' is swallowed: it is neither logged nor rethrown.", scope.name))
		return
	}
	for _, t := range scope.throws {
		if r.ignored[t] {
			return
		}
	}
	ctx.Report(n, fmt.Sprintf("The caught exception '%s' is rethrown without being passed as cause; "+
		"the original exception is lost.", scope.name))
}

// thrownType returns the simple name of the type created by
// "throw new T(...)".
func thrownType(throw syntax.Node) string {
	for _, child := range throw.Children() {
		if child.Kind() == java.NewExpr {
			return java.TypeName(syntax.FirstChild(child, java.Type))
		}
	}
	return ""
}

func isCommentedEmptyBlock(block syntax.Node) bool {
	if block == nil || len(block.Children()) > 0 {
		return false
	}
	text := block.Text()
	return strings.Contains(text, "//") || strings.Contains(text, "/*")
}
