package format

import (
	"encoding/json"
	"io"

	"github.com/dhamidi/sniff/syntax"
)

// ASTJSONEncoder writes a syntax tree the way rules see it: kinds, spans,
// declared names and the text of leaves.
type ASTJSONEncoder struct {
	w io.Writer
}

func NewASTJSONEncoder(w io.Writer) *ASTJSONEncoder {
	return &ASTJSONEncoder{w: w}
}

func (e *ASTJSONEncoder) Encode(node syntax.Node) error {
	text, err := e.MarshalText(node)
	if err != nil {
		return err
	}
	_, err = e.w.Write(append(text, '\n'))
	return err
}

func (e *ASTJSONEncoder) MarshalText(node syntax.Node) ([]byte, error) {
	return json.MarshalIndent(nodeToJSON(node), "", "  ")
}

type astJSONNode struct {
	Kind     string         `json:"kind"`
	Span     astJSONSpan    `json:"span"`
	Name     string         `json:"name,omitempty"`
	Text     string         `json:"text,omitempty"`
	Children []*astJSONNode `json:"children,omitempty"`
}

type astJSONSpan struct {
	Start astJSONPosition `json:"start"`
	End   astJSONPosition `json:"end"`
}

type astJSONPosition struct {
	Line   int `json:"line"`
	Column int `json:"column"`
	Offset int `json:"offset"`
}

func nodeToJSON(n syntax.Node) *astJSONNode {
	span := n.Span()
	jn := &astJSONNode{
		Kind: string(n.Kind()),
		Span: astJSONSpan{
			Start: astJSONPosition{Line: span.Start.Line, Column: span.Start.Column, Offset: span.Start.Offset},
			End:   astJSONPosition{Line: span.End.Line, Column: span.End.Column, Offset: span.End.Offset},
		},
		Name: n.Name(),
	}

	children := n.Children()
	if len(children) == 0 {
		jn.Text = n.Text()
		return jn
	}
	jn.Children = make([]*astJSONNode, len(children))
	for i, child := range children {
		jn.Children[i] = nodeToJSON(child)
	}
	return jn
}
