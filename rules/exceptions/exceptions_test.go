package exceptions

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhamidi/sniff/config"
	"github.com/dhamidi/sniff/engine"
	"github.com/dhamidi/sniff/finding"
	"github.com/dhamidi/sniff/java"
	"github.com/dhamidi/sniff/rule"
)

func lint(t *testing.T, configYAML, source string) []finding.Finding {
	t.Helper()
	reg := rule.NewRegistry()
	require.NoError(t, reg.Register(SwallowedExceptionRule))
	require.NoError(t, reg.Register(PrintStackTraceRule))
	cfg, err := config.Parse([]byte(configYAML))
	require.NoError(t, err)
	session, err := engine.New(reg, cfg).Session()
	require.NoError(t, err)
	unit, err := java.Unit("Test.java", []byte(source))
	require.NoError(t, err)
	return session.Analyze(unit).Findings
}

func only(findings []finding.Finding, ruleID string) []finding.Finding {
	var out []finding.Finding
	for _, f := range findings {
		if f.RuleID == ruleID {
			out = append(out, f)
		}
	}
	return out
}

func swallowed(t *testing.T, configYAML, body string) []finding.Finding {
	t.Helper()
	source := fmt.Sprintf("class Test {\n    void f(boolean condition) {\n%s\n    }\n}\n", body)
	return only(lint(t, configYAML, source), "SwallowedException")
}

func TestSwallowedExceptionReports(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		count int
	}{
		{"no catch clauses", `run();`, 0},
		{"swallowed and not logged", `try { run(); } catch (Exception e) { System.out.println("failed"); }`, 1},
		{"empty catch block", `try { run(); } catch (Exception e) { }`, 1},
		{"rethrown without cause", `try { run(); } catch (Exception e) { throw new IllegalArgumentException(); }`, 1},
		{"rethrown with cause", `try { run(); } catch (Exception e) { throw new IllegalArgumentException(e); }`, 0},
		{"rethrown as is", `try { run(); } catch (Exception e) { throw e; }`, 0},
		{"message passed on", `try { run(); } catch (Exception e) { throw new IllegalArgumentException(e.getMessage()); }`, 0},
		{"message and cause passed on", `try { run(); } catch (Exception e) { throw new IllegalArgumentException(e.getMessage(), e); }`, 0},
		{"logged", `try { run(); } catch (Exception e) { log.warn("failed", e); }`, 0},
		{"string conversion", `try { run(); } catch (Exception e) { String msg = "failed: " + e; throw new IllegalStateException(msg); }`, 0},
		{"derived local in nested block", `try { run(); } catch (Exception e) {
            if (condition) {
                String message = e.toString();
                throw new IllegalArgumentException(message);
            }
        }`, 0},
		{"used in a lambda", `try { run(); } catch (Exception e) { executor.submit(() -> log(e)); }`, 0},
		{"any branch using the exception suffices", `try { run(); } catch (Exception e) {
            if (condition) {
                throw new IllegalArgumentException(e);
            }
            throw new IllegalArgumentException();
        }`, 0},
		{"no branch uses the exception", `try { run(); } catch (Exception e) {
            if (condition) {
                throw new IllegalArgumentException("a");
            }
            throw new IllegalStateException("b");
        }`, 1},
		{"member with the same name is not the variable", `try { run(); } catch (Exception e) { this.e = null; e(); }`, 1},
		{"multi catch with one type not ignored", `try { run(); } catch (InterruptedException | IOException e) { }`, 1},
		{"multi catch with all types ignored", `try { run(); } catch (InterruptedException | NumberFormatException e) { }`, 0},
		{"finally does not count", `try { run(); } catch (Exception e) { } finally { close(); }`, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Len(t, swallowed(t, "", tt.body), tt.count)
		})
	}
}

func TestSwallowedExceptionFinding(t *testing.T) {
	findings := swallowed(t, "", `        try {
            run();
        } catch (IllegalStateException e) {
            throw new IllegalArgumentException(e);
        } catch (Exception other) {
            count++;
        }`)
	require.Len(t, findings, 1)
	f := findings[0]
	assert.Equal(t, "exceptions", f.RuleSet)
	assert.Equal(t, finding.Major, f.Severity)
	assert.Equal(t, finding.TwentyMins, f.Debt)
	assert.Equal(t, "Test.f", f.Entity)
	assert.Equal(t, 7, f.Location.Start.Line, "the swallowing clause")
	assert.Equal(t, "The caught exception 'other' is swallowed: it is neither logged nor rethrown.", f.Message)
}

func TestRethrowMessage(t *testing.T) {
	findings := swallowed(t, "", `try { run(); } catch (Exception e) { throw new IllegalStateException("lost"); }`)
	require.Len(t, findings, 1)
	assert.Contains(t, findings[0].Message, "rethrown without being passed as cause")
}

func TestNestedCatchClausesAreIndependent(t *testing.T) {
	t.Run("inner swallows, outer rethrows with cause", func(t *testing.T) {
		findings := swallowed(t, "", `        try {
            run();
        } catch (IllegalStateException e) {
            try {
                cleanup();
            } catch (Exception nested) {
                throw new IllegalArgumentException();
            }
            throw new IllegalArgumentException(e);
        }`)
		require.Len(t, findings, 1)
		assert.Equal(t, 8, findings[0].Location.Start.Line)
		assert.Contains(t, findings[0].Message, "'nested'")
	})

	t.Run("inner uses its own variable, outer swallows", func(t *testing.T) {
		findings := swallowed(t, "", `        try {
            run();
        } catch (IllegalStateException e) {
            try {
                cleanup();
            } catch (Exception nested) {
                log(nested);
            }
        }`)
		require.Len(t, findings, 1)
		assert.Equal(t, 5, findings[0].Location.Start.Line)
		assert.Contains(t, findings[0].Message, "'e'")
	})

	t.Run("inner body uses the outer variable", func(t *testing.T) {
		findings := swallowed(t, "", `        try {
            run();
        } catch (IllegalStateException e) {
            try {
                cleanup();
            } catch (Exception nested) {
                log(e);
            }
        }`)
		require.Len(t, findings, 1)
		assert.Contains(t, findings[0].Message, "'nested'")
	})
}

func TestIgnoredExceptionTypes(t *testing.T) {
	for _, value := range []string{`["IllegalArgumentException"]`, `"IllegalArgumentException"`} {
		cfg := "exceptions:\n  SwallowedException:\n    ignoredExceptionTypes: " + value + "\n"
		t.Run(value, func(t *testing.T) {
			assert.Empty(t, swallowed(t, cfg, `try { run(); } catch (IllegalArgumentException e) { }`))
			assert.Len(t, swallowed(t, cfg, `try { run(); } catch (Exception e) { }`), 1)
			assert.Len(t, swallowed(t, cfg, `try { run(); } catch (InterruptedException e) { }`), 1,
				"configured types replace the defaults")
		})
	}
}

func TestDefaultIgnoredExceptionTypes(t *testing.T) {
	for _, name := range DefaultIgnoredExceptionTypes() {
		t.Run(name, func(t *testing.T) {
			assert.Empty(t, swallowed(t, "", fmt.Sprintf(`try { run(); } catch (%s e) { throw new Exception(); }`, name)),
				"ignored in the catch clause")
			assert.Empty(t, swallowed(t, "", fmt.Sprintf(`try { run(); } catch (Exception e) { throw new %s("x"); }`, name)),
				"ignored in the catch body")
		})
	}

	types := DefaultIgnoredExceptionTypes()
	types[0] = "Changed"
	assert.Equal(t, "InterruptedException", DefaultIgnoredExceptionTypes()[0], "defaults are returned by copy")
}

func TestAllowedExceptionNameRegex(t *testing.T) {
	cfg := "exceptions:\n  SwallowedException:\n    allowedExceptionNameRegex: \"myIgnore|expected\"\n"
	assert.Empty(t, swallowed(t, cfg, `try { run(); } catch (IllegalArgumentException myIgnore) { }`))
	assert.Empty(t, swallowed(t, cfg, `try { run(); } catch (IllegalArgumentException expected) { }`))
	assert.Len(t, swallowed(t, cfg, `try { run(); } catch (IllegalArgumentException e) { }`), 1)
	assert.Len(t, swallowed(t, cfg, `try { run(); } catch (IllegalArgumentException unexpected) { }`), 1,
		"the name must match as a whole")
	assert.Len(t, swallowed(t, "", `try { run(); } catch (IllegalArgumentException myIgnore) { }`), 1,
		"no names are allowed by default")
}

func TestAllowCommentedBlocks(t *testing.T) {
	body := `try { run(); } catch (Exception e) {
            // nothing to do, run() retries on its own
        }`
	assert.Len(t, swallowed(t, "", body), 1)
	cfg := "exceptions:\n  SwallowedException:\n    allowCommentedBlocks: true\n"
	assert.Empty(t, swallowed(t, cfg, body))
	assert.Len(t, swallowed(t, cfg, `try { run(); } catch (Exception e) { }`), 1)
}

func TestConfigurationErrors(t *testing.T) {
	reg := rule.NewRegistry()
	require.NoError(t, reg.Register(SwallowedExceptionRule))
	cfg, err := config.Parse([]byte(`
exceptions:
  SwallowedException:
    allowedExceptionNameRegex: "(unclosed"
    allowCommentedBlocks: maybe
`))
	require.NoError(t, err)
	_, err = engine.New(reg, cfg).Session()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exceptions.SwallowedException.allowedExceptionNameRegex")
	assert.Contains(t, err.Error(), "exceptions.SwallowedException.allowCommentedBlocks")
}

func TestSuppressedByAnnotation(t *testing.T) {
	source := `class Test {
    @SuppressWarnings("CatchMayIgnoreException")
    void quiet() {
        try { run(); } catch (Exception e) { }
    }

    void loud() {
        try { run(); } catch (Exception e) { }
    }
}`
	findings := only(lint(t, "", source), "SwallowedException")
	require.Len(t, findings, 1)
	assert.Equal(t, "Test.loud", findings[0].Entity)
}

func TestIdempotent(t *testing.T) {
	body := `try { run(); } catch (Exception a) { } catch (Error b) { throw new IllegalStateException(); }`
	first := swallowed(t, "", body)
	require.Len(t, first, 2)
	assert.Equal(t, first, swallowed(t, "", body))
}

func TestPrintStackTrace(t *testing.T) {
	source := `class Test {
    void f() {
        try {
            run();
        } catch (Exception e) {
            e.printStackTrace();
        }
        Thread.dumpStack();
        java.lang.Thread.dumpStack();
        e.printStackTrace(System.err);
        recorder.dumpStack();
    }
}`
	findings := lint(t, "", source)
	assert.Empty(t, only(findings, "SwallowedException"), "printing the stack trace reads the variable")

	traces := only(findings, "PrintStackTrace")
	require.Len(t, traces, 3)
	assert.Equal(t, 6, traces[0].Location.Start.Line)
	assert.Equal(t, 8, traces[1].Location.Start.Line)
	assert.Equal(t, 9, traces[2].Location.Start.Line)
	assert.Equal(t, finding.Minor, traces[0].Severity)

	assert.Empty(t, only(lint(t, "exceptions:\n  PrintStackTrace:\n    active: false\n", source), "PrintStackTrace"))
}
