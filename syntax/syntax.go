// Package syntax defines the read-only view of a parse tree that rules
// are written against. Language front ends adapt their own trees to Node.
package syntax

import "fmt"

// Kind names a node type, e.g. "CatchClause".
type Kind string

type Position struct {
	Offset int
	Line   int
	Column int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Before reports whether p comes strictly before q.
func (p Position) Before(q Position) bool {
	return p.Offset < q.Offset
}

type Span struct {
	File  string
	Start Position
	End   Position
}

// Contains reports whether other lies within s. Spans in different files
// never contain each other.
func (s Span) Contains(other Span) bool {
	return s.File == other.File &&
		s.Start.Offset <= other.Start.Offset &&
		other.End.Offset <= s.End.Offset
}

func (s Span) String() string {
	return fmt.Sprintf("%s:%s", s.File, s.Start)
}

type Node interface {
	Kind() Kind
	Span() Span
	// Parent returns nil for the root.
	Parent() Node
	Children() []Node
	// Text returns the source text covered by the node.
	Text() string
	// Name returns the declared name of declaration nodes and "" for
	// everything else.
	Name() string
}

// Inspect walks the tree rooted at n in depth-first pre-order. If f
// returns false the children of that node are skipped.
func Inspect(n Node, f func(Node) bool) {
	if n == nil || !f(n) {
		return
	}
	for _, child := range n.Children() {
		Inspect(child, f)
	}
}

func FirstChild(n Node, kind Kind) Node {
	for _, child := range n.Children() {
		if child.Kind() == kind {
			return child
		}
	}
	return nil
}

func ChildrenOf(n Node, kind Kind) []Node {
	var result []Node
	for _, child := range n.Children() {
		if child.Kind() == kind {
			result = append(result, child)
		}
	}
	return result
}

// Ancestor returns the closest ancestor of n with the given kind.
func Ancestor(n Node, kind Kind) Node {
	for p := n.Parent(); p != nil; p = p.Parent() {
		if p.Kind() == kind {
			return p
		}
	}
	return nil
}

// Index returns the position of n among its parent's children, or -1.
func Index(n Node) int {
	parent := n.Parent()
	if parent == nil {
		return -1
	}
	for i, child := range parent.Children() {
		if child == n {
			return i
		}
	}
	return -1
}
