package java

import (
	"strings"

	"github.com/dhamidi/sniff/syntax"
)

// Parents under which an identifier is a name being declared, a label or
// part of a type, never a read of a variable.
var declaringParents = map[syntax.Kind]bool{
	ClassDecl:       true,
	InterfaceDecl:   true,
	EnumDecl:        true,
	RecordDecl:      true,
	AnnotationDecl:  true,
	EnumConstant:    true,
	MethodDecl:      true,
	ConstructorDecl: true,
	Parameter:       true,
	CatchClause:     true,
	TypeParameter:   true,
	Type:            true,
	QualifiedName:   true,
	LabeledStmt:     true,
	BreakStmt:       true,
	ContinueStmt:    true,
}

// IsReference reports whether the identifier n reads a variable by its
// simple name. Declared names, labels, type names, member selectors and
// the names of called methods are not references.
func IsReference(n syntax.Node) bool {
	if n.Kind() != Identifier {
		return false
	}
	parent := n.Parent()
	if parent == nil {
		return true
	}
	kind := parent.Kind()
	if declaringParents[kind] {
		return false
	}
	switch kind {
	case FieldAccess, MethodRef:
		return syntax.Index(n) == 0
	case CallExpr:
		return syntax.Index(n) != 0
	case VarDeclarator, AnnotationElement:
		return syntax.Index(n) > 0
	}
	return true
}

// ImportedName returns the name an import declaration refers to: the type
// or member for single imports, the package or type for on-demand imports.
func ImportedName(decl syntax.Node) string {
	qn := syntax.FirstChild(decl, QualifiedName)
	if qn == nil {
		return ""
	}
	var parts []string
	for _, id := range syntax.ChildrenOf(qn, Identifier) {
		parts = append(parts, id.Text())
	}
	return strings.Join(parts, ".")
}
