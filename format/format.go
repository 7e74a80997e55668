// Package format renders analysis reports and syntax trees.
package format

import (
	"encoding"
	"fmt"
	"io"

	"github.com/dhamidi/sniff/engine"
)

type Encoder interface {
	encoding.TextMarshaler
	Encode(report *engine.Report) error
}

// Names lists the report formats accepted by NewEncoder.
func Names() []string {
	return []string{"text", "json"}
}

func NewEncoder(name string, w io.Writer) (Encoder, error) {
	switch name {
	case "text", "":
		return NewLineEncoder(w), nil
	case "json":
		return NewJSONEncoder(w), nil
	}
	return nil, fmt.Errorf("unknown format: %s", name)
}
