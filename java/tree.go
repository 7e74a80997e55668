// Package java adapts trees produced by java/parser to the syntax.Node
// view that rules are written against.
package java

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/dhamidi/sniff/java/parser"
	"github.com/dhamidi/sniff/syntax"
)

// Node kinds used by the bundled rules. They equal the parser's kind names.
const (
	CompilationUnit   syntax.Kind = "CompilationUnit"
	ImportDecl        syntax.Kind = "ImportDecl"
	ClassDecl         syntax.Kind = "ClassDecl"
	InterfaceDecl     syntax.Kind = "InterfaceDecl"
	EnumDecl          syntax.Kind = "EnumDecl"
	EnumConstant      syntax.Kind = "EnumConstant"
	RecordDecl        syntax.Kind = "RecordDecl"
	AnnotationDecl    syntax.Kind = "AnnotationDecl"
	FieldDecl         syntax.Kind = "FieldDecl"
	MethodDecl        syntax.Kind = "MethodDecl"
	ConstructorDecl   syntax.Kind = "ConstructorDecl"
	Modifiers         syntax.Kind = "Modifiers"
	Annotation        syntax.Kind = "Annotation"
	AnnotationElement syntax.Kind = "AnnotationElement"
	TypeParameter     syntax.Kind = "TypeParameter"
	Type              syntax.Kind = "Type"
	ArrayType         syntax.Kind = "ArrayType"
	Parameters        syntax.Kind = "Parameters"
	Parameter         syntax.Kind = "Parameter"
	VarDeclarator     syntax.Kind = "VarDeclarator"
	Block             syntax.Kind = "Block"
	LocalVarDecl      syntax.Kind = "LocalVarDecl"
	BreakStmt         syntax.Kind = "BreakStmt"
	ContinueStmt      syntax.Kind = "ContinueStmt"
	LabeledStmt       syntax.Kind = "LabeledStmt"
	ThrowStmt         syntax.Kind = "ThrowStmt"
	TryStmt           syntax.Kind = "TryStmt"
	Resource          syntax.Kind = "Resource"
	CatchClause       syntax.Kind = "CatchClause"
	CatchType         syntax.Kind = "CatchType"
	CallExpr          syntax.Kind = "CallExpr"
	Arguments         syntax.Kind = "Arguments"
	MethodRef         syntax.Kind = "MethodRef"
	FieldAccess       syntax.Kind = "FieldAccess"
	NewExpr           syntax.Kind = "NewExpr"
	ArrayInit         syntax.Kind = "ArrayInit"
	LambdaExpr        syntax.Kind = "LambdaExpr"
	ParenExpr         syntax.Kind = "ParenExpr"
	CastExpr          syntax.Kind = "CastExpr"
	Literal           syntax.Kind = "Literal"
	Identifier        syntax.Kind = "Identifier"
	QualifiedName     syntax.Kind = "QualifiedName"
	Operator          syntax.Kind = "Operator"
	ClassLiteral      syntax.Kind = "ClassLiteral"
)

// Node wraps a parser node with a parent link and the file's source.
type Node struct {
	raw      *parser.Node
	file     *file
	parent   *Node
	children []*Node
}

type file struct {
	path   string
	source []byte
}

// ParseError reports the syntax errors of a file that could not be
// analyzed.
type ParseError struct {
	Path   string
	Errors []parser.SyntaxError
}

func (e *ParseError) Error() string {
	if len(e.Errors) == 0 {
		return e.Path + ": syntax error"
	}
	msg := fmt.Sprintf("%s:%s: %s", e.Path, e.Errors[0].Pos, e.Errors[0].Message)
	if n := len(e.Errors) - 1; n > 0 {
		msg += fmt.Sprintf(" (and %d more)", n)
	}
	return msg
}

// Parse parses a compilation unit. Files with syntax errors are rejected
// with a *ParseError.
func Parse(path string, source []byte) (*Node, error) {
	p := parser.ParseCompilationUnit(bytes.NewReader(source), parser.WithFile(path))
	root := p.Finish()
	if root == nil {
		return nil, fmt.Errorf("parse %s: %w", path, p.Err())
	}
	if errs := p.Errors(); len(errs) > 0 {
		return nil, &ParseError{Path: path, Errors: errs}
	}
	return Wrap(root, path, p.Source()), nil
}

// Wrap adapts an already parsed tree.
func Wrap(root *parser.Node, path string, source []byte) *Node {
	return wrap(root, &file{path: path, source: source}, nil)
}

func wrap(raw *parser.Node, f *file, parent *Node) *Node {
	n := &Node{raw: raw, file: f, parent: parent}
	n.children = make([]*Node, 0, len(raw.Children))
	for _, child := range raw.Children {
		n.children = append(n.children, wrap(child, f, n))
	}
	return n
}

// Raw returns the underlying parser node.
func (n *Node) Raw() *parser.Node {
	return n.raw
}

func (n *Node) Kind() syntax.Kind {
	return syntax.Kind(n.raw.Kind.String())
}

func (n *Node) Span() syntax.Span {
	return syntax.Span{
		File:  n.file.path,
		Start: position(n.raw.Span.Start),
		End:   position(n.raw.Span.End),
	}
}

func position(p parser.Position) syntax.Position {
	return syntax.Position{Offset: p.Offset, Line: p.Line, Column: p.Column}
}

func (n *Node) Parent() syntax.Node {
	if n.parent == nil {
		return nil
	}
	return n.parent
}

func (n *Node) Children() []syntax.Node {
	nodes := make([]syntax.Node, len(n.children))
	for i, c := range n.children {
		nodes[i] = c
	}
	return nodes
}

func (n *Node) Text() string {
	if n.raw.Token != nil && len(n.raw.Children) == 0 {
		return n.raw.Token.Literal
	}
	start, end := n.raw.Span.Start.Offset, n.raw.Span.End.Offset
	if start < 0 || end > len(n.file.source) || start > end {
		return ""
	}
	return string(n.file.source[start:end])
}

// Name returns the declared name of type and member declarations and the
// imported name of import declarations.
func (n *Node) Name() string {
	switch n.raw.Kind {
	case parser.KindClassDecl, parser.KindInterfaceDecl, parser.KindEnumDecl,
		parser.KindRecordDecl, parser.KindAnnotationDecl, parser.KindEnumConstant,
		parser.KindMethodDecl, parser.KindConstructorDecl:
		return identifierOf(n.raw)
	case parser.KindFieldDecl:
		var names []string
		for _, d := range n.raw.ChildrenOfKind(parser.KindVarDeclarator) {
			names = append(names, identifierOf(d))
		}
		return strings.Join(names, ",")
	case parser.KindImportDecl:
		return ImportName(n.raw)
	}
	return ""
}

func identifierOf(n *parser.Node) string {
	if id := n.FirstChildOfKind(parser.KindIdentifier); id != nil {
		return id.TokenLiteral()
	}
	return ""
}

// ImportName returns the qualified name of an import, ending in ".*" for
// on-demand imports.
func ImportName(decl *parser.Node) string {
	name := QualifiedNameOf(decl.FirstChildOfKind(parser.KindQualifiedName))
	if decl.FirstChildOfKind(parser.KindOperator) != nil {
		name += ".*"
	}
	return name
}

// QualifiedNameOf joins the identifiers of a QualifiedName node.
func QualifiedNameOf(qn *parser.Node) string {
	if qn == nil {
		return ""
	}
	parts := make([]string, 0, len(qn.Children))
	for _, id := range qn.ChildrenOfKind(parser.KindIdentifier) {
		parts = append(parts, id.TokenLiteral())
	}
	return strings.Join(parts, ".")
}

// TypeName returns the simple name of a Type node: the last identifier of
// its last qualified name, without type arguments or array dimensions.
func TypeName(n syntax.Node) string {
	for n != nil && n.Kind() == ArrayType && len(n.Children()) > 0 {
		n = n.Children()[0]
	}
	if n == nil || n.Kind() != Type {
		return ""
	}
	names := syntax.ChildrenOf(n, QualifiedName)
	if len(names) == 0 {
		if id := syntax.FirstChild(n, Identifier); id != nil {
			return id.Text()
		}
		return ""
	}
	ids := syntax.ChildrenOf(names[len(names)-1], Identifier)
	if len(ids) == 0 {
		return ""
	}
	return ids[len(ids)-1].Text()
}
