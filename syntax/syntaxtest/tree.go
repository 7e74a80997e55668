// Package syntaxtest builds small syntax trees by hand for tests.
package syntaxtest

import "github.com/dhamidi/sniff/syntax"

type Node struct {
	kind     syntax.Kind
	name     string
	text     string
	span     syntax.Span
	parent   *Node
	children []*Node
}

// N creates a node spanning the byte offsets [start, end) on line 1.
func N(kind syntax.Kind, start, end int, children ...*Node) *Node {
	n := &Node{
		kind: kind,
		span: syntax.Span{
			Start: syntax.Position{Offset: start, Line: 1, Column: start + 1},
			End:   syntax.Position{Offset: end, Line: 1, Column: end + 1},
		},
		children: children,
	}
	for _, c := range children {
		c.parent = n
	}
	return n
}

// Named sets the declared name.
func (n *Node) Named(name string) *Node {
	n.name = name
	return n
}

// WithText sets the source text.
func (n *Node) WithText(text string) *Node {
	n.text = text
	return n
}

// InFile sets the file of n and all its descendants.
func (n *Node) InFile(file string) *Node {
	n.span.File = file
	for _, c := range n.children {
		c.InFile(file)
	}
	return n
}

func (n *Node) Kind() syntax.Kind { return n.kind }
func (n *Node) Span() syntax.Span { return n.span }
func (n *Node) Name() string      { return n.name }
func (n *Node) Text() string      { return n.text }

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
