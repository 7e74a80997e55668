package format

import (
	"encoding/json"
	"io"

	"github.com/dhamidi/sniff/engine"
	"github.com/dhamidi/sniff/finding"
)

type JSONEncoder struct {
	w      io.Writer
	report *engine.Report
}

func NewJSONEncoder(w io.Writer) *JSONEncoder {
	return &JSONEncoder{w: w}
}

func (e *JSONEncoder) Encode(report *engine.Report) error {
	e.report = report
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(append(text, '\n'))
	return err
}

func (e *JSONEncoder) MarshalText() ([]byte, error) {
	r := *e.report
	if r.Findings == nil {
		r.Findings = []finding.Finding{}
	}
	return json.MarshalIndent(r, "", "  ")
}
