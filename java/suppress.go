package java

import (
	"strconv"
	"strings"

	"github.com/dhamidi/sniff/java/parser"
	"github.com/dhamidi/sniff/suppress"
	"github.com/dhamidi/sniff/syntax"
)

var suppressible = map[parser.NodeKind]bool{
	parser.KindClassDecl:       true,
	parser.KindInterfaceDecl:   true,
	parser.KindEnumDecl:        true,
	parser.KindRecordDecl:      true,
	parser.KindAnnotationDecl:  true,
	parser.KindEnumConstant:    true,
	parser.KindMethodDecl:      true,
	parser.KindConstructorDecl: true,
	parser.KindFieldDecl:       true,
	parser.KindLocalVarDecl:    true,
	parser.KindParameter:       true,
	parser.KindCatchClause:     true,
}

// Suppressions collects the @SuppressWarnings annotations of the tree.
// Each one suppresses its targets within the annotated declaration.
func Suppressions(root *Node) []suppress.Suppression {
	var out []suppress.Suppression
	syntax.Inspect(root, func(sn syntax.Node) bool {
		n := sn.(*Node)
		if !suppressible[n.raw.Kind] {
			return true
		}
		mods := n.raw.FirstChildOfKind(parser.KindModifiers)
		if mods == nil {
			return true
		}
		for _, a := range mods.ChildrenOfKind(parser.KindAnnotation) {
			if !isSuppressWarnings(a) {
				continue
			}
			if targets := suppressionTargets(a); len(targets) > 0 {
				out = append(out, suppress.Suppression{Span: n.Span(), Active: true, Targets: targets})
			}
		}
		return true
	})
	return out
}

func isSuppressWarnings(annotation *parser.Node) bool {
	switch QualifiedNameOf(annotation.FirstChildOfKind(parser.KindQualifiedName)) {
	case "SuppressWarnings", "java.lang.SuppressWarnings":
		return true
	}
	return false
}

// suppressionTargets reads the strings of @SuppressWarnings("a"),
// @SuppressWarnings({"a", "b"}) and @SuppressWarnings(value = ...).
func suppressionTargets(annotation *parser.Node) []string {
	var targets []string
	for _, arg := range annotation.Children {
		switch arg.Kind {
		case parser.KindQualifiedName:
			continue
		case parser.KindAnnotationElement:
			name := arg.FirstChildOfKind(parser.KindIdentifier)
			if name == nil || name.TokenLiteral() != "value" || len(arg.Children) < 2 {
				continue
			}
			targets = appendStrings(targets, arg.Children[1])
		default:
			targets = appendStrings(targets, arg)
		}
	}
	return targets
}

func appendStrings(dst []string, value *parser.Node) []string {
	switch value.Kind {
	case parser.KindArrayInit:
		for _, el := range value.Children {
			dst = appendStrings(dst, el)
		}
	case parser.KindLiteral:
		if value.Token != nil && value.Token.Kind == parser.TokenStringLiteral {
			dst = append(dst, unquote(value.Token.Literal))
		}
	}
	return dst
}

func unquote(lit string) string {
	if s, err := strconv.Unquote(lit); err == nil {
		return s
	}
	return strings.Trim(lit, `"`)
}
