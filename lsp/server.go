// Package lsp serves findings to editors over the Language Server Protocol.
// Documents are analyzed on open, change and save, and the findings are
// published as diagnostics.
package lsp

import (
	"errors"
	"net/url"
	"path/filepath"
	"strings"
	"sync"

	"github.com/tliron/commonlog"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	"github.com/dhamidi/sniff/engine"
	"github.com/dhamidi/sniff/finding"
	"github.com/dhamidi/sniff/java"
)

const lsName = "sniff"

var log = commonlog.GetLogger("sniff.lsp")

// SessionFunc creates the analysis session for a workspace root.
type SessionFunc func(rootDir string) (*engine.Session, error)

type Server struct {
	newSession SessionFunc
	handler    protocol.Handler
	server     *server.Server
	version    string

	mu      sync.Mutex
	session *engine.Session
}

func NewServer(version string, newSession SessionFunc) *Server {
	ls := &Server{
		version:    version,
		newSession: newSession,
	}

	ls.handler = protocol.Handler{
		Initialize:            ls.initialize,
		Initialized:           ls.initialized,
		Shutdown:              ls.shutdown,
		SetTrace:              ls.setTrace,
		TextDocumentDidOpen:   ls.textDocumentDidOpen,
		TextDocumentDidChange: ls.textDocumentDidChange,
		TextDocumentDidClose:  ls.textDocumentDidClose,
		TextDocumentDidSave:   ls.textDocumentDidSave,
	}

	ls.server = server.NewServer(&ls.handler, lsName, false)

	return ls
}

func (ls *Server) RunStdio() error {
	return ls.server.RunStdio()
}

func (ls *Server) initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	rootDir := "."
	if params.RootPath != nil && *params.RootPath != "" {
		rootDir = *params.RootPath
	} else if params.RootURI != nil && *params.RootURI != "" {
		if path, err := uriToPath(*params.RootURI); err == nil {
			rootDir = path
		}
	}

	session, err := ls.newSession(rootDir)
	if err != nil {
		return nil, err
	}
	ls.mu.Lock()
	ls.session = session
	ls.mu.Unlock()
	log.Infof("serving %s with %d active rules", rootDir, len(session.Rules()))

	capabilities := ls.handler.CreateServerCapabilities()

	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: boolPtr(true),
		Change:    syncKindPtr(protocol.TextDocumentSyncKindFull),
		Save: &protocol.SaveOptions{
			IncludeText: boolPtr(true),
		},
	}

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    lsName,
			Version: &ls.version,
		},
	}, nil
}

func (ls *Server) initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	return nil
}

func (ls *Server) shutdown(ctx *glsp.Context) error {
	return nil
}

func (ls *Server) setTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (ls *Server) textDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	ls.publish(ctx, params.TextDocument.URI, params.TextDocument.Text)
	return nil
}

func (ls *Server) textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	if len(params.ContentChanges) == 0 {
		return nil
	}
	change := params.ContentChanges[len(params.ContentChanges)-1]
	if textChange, ok := change.(protocol.TextDocumentContentChangeEventWhole); ok {
		ls.publish(ctx, params.TextDocument.URI, textChange.Text)
	}
	return nil
}

func (ls *Server) textDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         params.TextDocument.URI,
		Diagnostics: []protocol.Diagnostic{},
	})
	return nil
}

func (ls *Server) textDocumentDidSave(ctx *glsp.Context, params *protocol.DidSaveTextDocumentParams) error {
	if params.Text != nil {
		ls.publish(ctx, params.TextDocument.URI, *params.Text)
	}
	return nil
}

func (ls *Server) publish(ctx *glsp.Context, uri protocol.DocumentUri, text string) {
	path, err := uriToPath(uri)
	if err != nil {
		log.Warningf("ignoring %s: %s", uri, err)
		return
	}
	ls.mu.Lock()
	session := ls.session
	ls.mu.Unlock()
	if session == nil {
		return
	}
	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: Analyze(session, path, text),
	})
}

// Analyze runs session on one document. A document that does not parse
// yields a single error diagnostic at the first syntax error.
func Analyze(session *engine.Session, path, text string) []protocol.Diagnostic {
	unit, err := java.Unit(path, []byte(text))
	if err != nil {
		var parseErr *java.ParseError
		if !errors.As(err, &parseErr) || len(parseErr.Errors) == 0 {
			return []protocol.Diagnostic{}
		}
		first := parseErr.Errors[0]
		pos := position(first.Pos.Line, first.Pos.Column)
		return []protocol.Diagnostic{{
			Range:    protocol.Range{Start: pos, End: pos},
			Severity: severityPtr(protocol.DiagnosticSeverityError),
			Source:   strPtr(lsName),
			Message:  first.Message,
		}}
	}

	result := session.Analyze(unit)
	return Diagnostics(engine.Aggregate(result.Findings))
}

// Diagnostics converts findings to protocol diagnostics.
func Diagnostics(findings []finding.Finding) []protocol.Diagnostic {
	diagnostics := make([]protocol.Diagnostic, 0, len(findings))
	for _, f := range findings {
		diagnostics = append(diagnostics, protocol.Diagnostic{
			Range: protocol.Range{
				Start: position(f.Location.Start.Line, f.Location.Start.Column),
				End:   position(f.Location.End.Line, f.Location.End.Column),
			},
			Severity: severityPtr(Severity(f.Severity)),
			Code:     &protocol.IntegerOrString{Value: f.RuleID},
			Source:   strPtr(lsName),
			Message:  f.Message,
		})
	}
	return diagnostics
}

func Severity(s finding.Severity) protocol.DiagnosticSeverity {
	switch s {
	case finding.Fatal:
		return protocol.DiagnosticSeverityError
	case finding.Major:
		return protocol.DiagnosticSeverityWarning
	case finding.Minor:
		return protocol.DiagnosticSeverityInformation
	default:
		return protocol.DiagnosticSeverityHint
	}
}

// position converts a 1-based line and column to a 0-based protocol
// position.
func position(line, column int) protocol.Position {
	return protocol.Position{
		Line:      protocol.UInteger(max(line-1, 0)),
		Character: protocol.UInteger(max(column-1, 0)),
	}
}

func uriToPath(uri string) (string, error) {
	if strings.HasPrefix(uri, "file://") {
		parsed, err := url.Parse(uri)
		if err != nil {
			return "", err
		}
		return filepath.Clean(parsed.Path), nil
	}
	return uri, nil
}

func boolPtr(b bool) *bool {
	return &b
}

func strPtr(s string) *string {
	return &s
}

func severityPtr(s protocol.DiagnosticSeverity) *protocol.DiagnosticSeverity {
	return &s
}

func syncKindPtr(k protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind {
	return &k
}
