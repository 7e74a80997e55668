package engine

import (
	"context"
	"fmt"

	"github.com/dhamidi/sniff/suppress"
	"github.com/dhamidi/sniff/syntax"
)

// Unit is one loaded source file, ready for analysis.
type Unit struct {
	Path         string
	Root         syntax.Node
	Suppressions []suppress.Suppression
}

// Loader turns a path into a Unit. Errors are reported per file and do not
// stop the run.
type Loader interface {
	Load(ctx context.Context, path string) (*Unit, error)
}

// LoaderFunc adapts a function to the Loader interface.
type LoaderFunc func(ctx context.Context, path string) (*Unit, error)

func (f LoaderFunc) Load(ctx context.Context, path string) (*Unit, error) {
	return f(ctx, path)
}

// Diagnostic is a problem the engine ran into while analyzing a file: a
// file that could not be loaded, a rule that failed, a timeout.
type Diagnostic struct {
	File    string `json:"file"`
	Rule    string `json:"rule,omitempty"`
	Message string `json:"message"`
}

func (d Diagnostic) String() string {
	if d.Rule == "" {
		return fmt.Sprintf("%s: %s", d.File, d.Message)
	}
	return fmt.Sprintf("%s: %s: %s", d.File, d.Rule, d.Message)
}
