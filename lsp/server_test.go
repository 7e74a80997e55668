package lsp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/dhamidi/sniff/config"
	"github.com/dhamidi/sniff/engine"
	"github.com/dhamidi/sniff/finding"
	"github.com/dhamidi/sniff/rule"
	"github.com/dhamidi/sniff/rules/exceptions"
	"github.com/dhamidi/sniff/syntax"
)

func TestSeverity(t *testing.T) {
	assert.Equal(t, protocol.DiagnosticSeverityError, Severity(finding.Fatal))
	assert.Equal(t, protocol.DiagnosticSeverityWarning, Severity(finding.Major))
	assert.Equal(t, protocol.DiagnosticSeverityInformation, Severity(finding.Minor))
	assert.Equal(t, protocol.DiagnosticSeverityHint, Severity(finding.Info))
}

func TestDiagnostics(t *testing.T) {
	diagnostics := Diagnostics([]finding.Finding{{
		RuleID:   "SwallowedException",
		Severity: finding.Major,
		Location: finding.Location{
			File:  "A.java",
			Start: syntax.Position{Line: 3, Column: 11},
			End:   syntax.Position{Line: 5, Column: 2},
		},
		Message: "swallowed",
	}})
	require.Len(t, diagnostics, 1)
	d := diagnostics[0]
	assert.Equal(t, protocol.Range{
		Start: protocol.Position{Line: 2, Character: 10},
		End:   protocol.Position{Line: 4, Character: 1},
	}, d.Range)
	assert.Equal(t, protocol.DiagnosticSeverityWarning, *d.Severity)
	assert.Equal(t, "SwallowedException", d.Code.Value)
	assert.Equal(t, "sniff", *d.Source)
	assert.Equal(t, "swallowed", d.Message)

	assert.NotNil(t, Diagnostics(nil), "an empty list clears the editor's diagnostics")
}

func session(t *testing.T) *engine.Session {
	t.Helper()
	reg := rule.NewRegistry()
	require.NoError(t, reg.Register(exceptions.SwallowedExceptionRule))
	s, err := engine.New(reg, config.New()).Session()
	require.NoError(t, err)
	return s
}

func TestAnalyze(t *testing.T) {
	diagnostics := Analyze(session(t), "/work/A.java", `class A {
    void f() {
        try { run(); } catch (Exception e) { }
    }
}`)
	require.Len(t, diagnostics, 1)
	assert.Equal(t, protocol.UInteger(2), diagnostics[0].Range.Start.Line)
	assert.Equal(t, protocol.UInteger(23), diagnostics[0].Range.Start.Character)
}

func TestAnalyzeSyntaxError(t *testing.T) {
	diagnostics := Analyze(session(t), "/work/A.java", "class A {\n    void f( {\n}\n")
	require.Len(t, diagnostics, 1)
	assert.Equal(t, protocol.DiagnosticSeverityError, *diagnostics[0].Severity)
	assert.NotEmpty(t, diagnostics[0].Message)
}

func TestURIToPath(t *testing.T) {
	path, err := uriToPath("file:///home/me/My%20Project/A.java")
	require.NoError(t, err)
	assert.Equal(t, "/home/me/My Project/A.java", path)

	path, err = uriToPath("A.java")
	require.NoError(t, err)
	assert.Equal(t, "A.java", path)
}
