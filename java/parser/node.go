package parser

import "strings"

type NodeKind int

const (
	KindError NodeKind = iota

	// Compilation unit level
	KindCompilationUnit
	KindPackageDecl
	KindImportDecl

	// Type declarations
	KindClassDecl
	KindInterfaceDecl
	KindEnumDecl
	KindEnumConstant
	KindRecordDecl
	KindAnnotationDecl
	KindClassBody

	// Members
	KindFieldDecl
	KindMethodDecl
	KindConstructorDecl
	KindInitializer

	// Type and modifiers
	KindModifiers
	KindModifier
	KindAnnotation
	KindAnnotationElement
	KindTypeParameters
	KindTypeParameter
	KindTypeArguments
	KindType
	KindArrayType
	KindWildcard
	KindExtendsClause
	KindImplementsClause
	KindPermitsClause

	// Method components
	KindParameters
	KindParameter
	KindThrowsList
	KindVarDeclarator

	// Statements
	KindBlock
	KindEmptyStmt
	KindExprStmt
	KindIfStmt
	KindForStmt
	KindForInit
	KindForUpdate
	KindEnhancedForStmt
	KindWhileStmt
	KindDoStmt
	KindSwitchStmt
	KindSwitchCase
	KindSwitchLabel
	KindGuard
	KindReturnStmt
	KindBreakStmt
	KindContinueStmt
	KindThrowStmt
	KindTryStmt
	KindResource
	KindCatchClause
	KindCatchType
	KindFinallyClause
	KindSynchronizedStmt
	KindAssertStmt
	KindLabeledStmt
	KindLocalVarDecl
	KindLocalClassDecl
	KindYieldStmt

	// Expressions
	KindAssignExpr
	KindTernaryExpr
	KindBinaryExpr
	KindUnaryExpr
	KindPostfixExpr
	KindCastExpr
	KindInstanceofExpr
	KindTypePattern
	KindRecordPattern
	KindCallExpr
	KindArguments
	KindMethodRef
	KindFieldAccess
	KindArrayAccess
	KindNewExpr
	KindNewArrayExpr
	KindArrayInit
	KindLambdaExpr
	KindParenExpr
	KindLiteral
	KindIdentifier
	KindQualifiedName
	KindOperator
	KindThis
	KindSuper
	KindClassLiteral
	KindSwitchExpr
)

var nodeKindNames = map[NodeKind]string{
	KindError:             "Error",
	KindCompilationUnit:   "CompilationUnit",
	KindPackageDecl:       "PackageDecl",
	KindImportDecl:        "ImportDecl",
	KindClassDecl:         "ClassDecl",
	KindInterfaceDecl:     "InterfaceDecl",
	KindEnumDecl:          "EnumDecl",
	KindEnumConstant:      "EnumConstant",
	KindRecordDecl:        "RecordDecl",
	KindAnnotationDecl:    "AnnotationDecl",
	KindClassBody:         "ClassBody",
	KindFieldDecl:         "FieldDecl",
	KindMethodDecl:        "MethodDecl",
	KindConstructorDecl:   "ConstructorDecl",
	KindInitializer:       "Initializer",
	KindModifiers:         "Modifiers",
	KindModifier:          "Modifier",
	KindAnnotation:        "Annotation",
	KindAnnotationElement: "AnnotationElement",
	KindTypeParameters:    "TypeParameters",
	KindTypeParameter:     "TypeParameter",
	KindTypeArguments:     "TypeArguments",
	KindType:              "Type",
	KindArrayType:         "ArrayType",
	KindWildcard:          "Wildcard",
	KindExtendsClause:     "ExtendsClause",
	KindImplementsClause:  "ImplementsClause",
	KindPermitsClause:     "PermitsClause",
	KindParameters:        "Parameters",
	KindParameter:         "Parameter",
	KindThrowsList:        "ThrowsList",
	KindVarDeclarator:     "VarDeclarator",
	KindBlock:             "Block",
	KindEmptyStmt:         "EmptyStmt",
	KindExprStmt:          "ExprStmt",
	KindIfStmt:            "IfStmt",
	KindForStmt:           "ForStmt",
	KindForInit:           "ForInit",
	KindForUpdate:         "ForUpdate",
	KindEnhancedForStmt:   "EnhancedForStmt",
	KindWhileStmt:         "WhileStmt",
	KindDoStmt:            "DoStmt",
	KindSwitchStmt:        "SwitchStmt",
	KindSwitchCase:        "SwitchCase",
	KindSwitchLabel:       "SwitchLabel",
	KindGuard:             "Guard",
	KindReturnStmt:        "ReturnStmt",
	KindBreakStmt:         "BreakStmt",
	KindContinueStmt:      "ContinueStmt",
	KindThrowStmt:         "ThrowStmt",
	KindTryStmt:           "TryStmt",
	KindResource:          "Resource",
	KindCatchClause:       "CatchClause",
	KindCatchType:         "CatchType",
	KindFinallyClause:     "FinallyClause",
	KindSynchronizedStmt:  "SynchronizedStmt",
	KindAssertStmt:        "AssertStmt",
	KindLabeledStmt:       "LabeledStmt",
	KindLocalVarDecl:      "LocalVarDecl",
	KindLocalClassDecl:    "LocalClassDecl",
	KindYieldStmt:         "YieldStmt",
	KindAssignExpr:        "AssignExpr",
	KindTernaryExpr:       "TernaryExpr",
	KindBinaryExpr:        "BinaryExpr",
	KindUnaryExpr:         "UnaryExpr",
	KindPostfixExpr:       "PostfixExpr",
	KindCastExpr:          "CastExpr",
	KindInstanceofExpr:    "InstanceofExpr",
	KindTypePattern:       "TypePattern",
	KindRecordPattern:     "RecordPattern",
	KindCallExpr:          "CallExpr",
	KindArguments:         "Arguments",
	KindMethodRef:         "MethodRef",
	KindFieldAccess:       "FieldAccess",
	KindArrayAccess:       "ArrayAccess",
	KindNewExpr:           "NewExpr",
	KindNewArrayExpr:      "NewArrayExpr",
	KindArrayInit:         "ArrayInit",
	KindLambdaExpr:        "LambdaExpr",
	KindParenExpr:         "ParenExpr",
	KindLiteral:           "Literal",
	KindIdentifier:        "Identifier",
	KindQualifiedName:     "QualifiedName",
	KindOperator:          "Operator",
	KindThis:              "This",
	KindSuper:             "Super",
	KindClassLiteral:      "ClassLiteral",
	KindSwitchExpr:        "SwitchExpr",
}

func (k NodeKind) String() string {
	if name, ok := nodeKindNames[k]; ok {
		return name
	}
	return "Unknown"
}

type Error struct {
	Message string
	Got     *Token
}

type Node struct {
	Kind     NodeKind
	Span     Span
	Children []*Node
	Token    *Token
	Error    *Error
}

func (n *Node) AddChild(child *Node) {
	if child != nil {
		n.Children = append(n.Children, child)
	}
}

func (n *Node) IsError() bool {
	return n.Kind == KindError
}

func (n *Node) FirstChildOfKind(kind NodeKind) *Node {
	for _, child := range n.Children {
		if child.Kind == kind {
			return child
		}
	}
	return nil
}

func (n *Node) ChildrenOfKind(kind NodeKind) []*Node {
	var result []*Node
	for _, child := range n.Children {
		if child.Kind == kind {
			result = append(result, child)
		}
	}
	return result
}

func (n *Node) TokenLiteral() string {
	if n.Token != nil {
		return n.Token.Literal
	}
	return ""
}

func (n *Node) String() string {
	return n.dump(false)
}

func (n *Node) StringWithPositions() string {
	return n.dump(true)
}

func (n *Node) dump(showPositions bool) string {
	var b strings.Builder
	var write func(*Node, int)
	write = func(n *Node, indent int) {
		b.WriteString(strings.Repeat("  ", indent))
		b.WriteString(n.Kind.String())
		if showPositions {
			b.WriteString(" [" + n.Span.Start.String() + "-" + n.Span.End.String() + "]")
		}
		if n.Token != nil {
			b.WriteString(" " + n.Token.Literal)
		}
		if n.Error != nil {
			b.WriteString(" ERROR: " + n.Error.Message)
		}
		b.WriteByte('\n')
		for _, child := range n.Children {
			write(child, indent+1)
		}
	}
	write(n, 0)
	return b.String()
}
