package exceptions

import (
	"github.com/dhamidi/sniff/config"
	"github.com/dhamidi/sniff/finding"
	"github.com/dhamidi/sniff/java"
	"github.com/dhamidi/sniff/rule"
	"github.com/dhamidi/sniff/syntax"
)

var PrintStackTraceRule = rule.Descriptor{
	Meta: rule.Meta{
		ID:      "PrintStackTrace",
		RuleSet: "exceptions",
		Description: "Printing stack traces to the console hides errors from the application's " +
			"logging. Use a logger instead.",
		Severity: finding.Minor,
		Debt:     finding.TwentyMins,
		Aliases:  []string{"CallToPrintStackTrace", "AvoidPrintStackTrace"},
	},
	Active: true,
	Configure: func(*config.Resolver) (rule.Factory, error) {
		return func() rule.Rule { return printStackTrace{} }, nil
	},
}

func init() {
	rule.Register(PrintStackTraceRule)
}

// printStackTrace reports e.printStackTrace() and Thread.dumpStack().
type printStackTrace struct{ rule.Base }

func (printStackTrace) Kinds() []syntax.Kind {
	return []syntax.Kind{java.CallExpr}
}

func (printStackTrace) Enter(ctx *rule.Context, n syntax.Node) {
	children := n.Children()
	if len(children) < 2 || children[0].Kind() != java.FieldAccess {
		return
	}
	args := syntax.FirstChild(n, java.Arguments)
	if args == nil || len(args.Children()) > 0 {
		return
	}

	selector := children[0].Children()
	method := selector[len(selector)-1]
	if method.Kind() != java.Identifier {
		return
	}
	switch method.Text() {
	case "printStackTrace":
		ctx.Report(n, "Do not print stack traces. Log the exception or rethrow it instead.")
	case "dumpStack":
		if receiver := selector[0]; isThread(receiver) {
			ctx.Report(n, "Do not dump the stack of the current thread. Use a logger instead.")
		}
	}
}

func isThread(n syntax.Node) bool {
	switch n.Kind() {
	case java.Identifier:
		return n.Text() == "Thread"
	case java.FieldAccess:
		return n.Text() == "java.lang.Thread"
	}
	return false
}
