package finding

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhamidi/sniff/syntax"
)

func TestSeverityOrder(t *testing.T) {
	assert.Less(t, Info, Minor)
	assert.Less(t, Minor, Major)
	assert.Less(t, Major, Fatal)
}

func TestParseSeverity(t *testing.T) {
	tests := []struct {
		input string
		want  Severity
	}{
		{"info", Info},
		{"Minor", Minor},
		{" MAJOR ", Major},
		{"fatal", Fatal},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseSeverity(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseSeverity("blocker")
	assert.ErrorContains(t, err, `unknown severity "blocker"`)
}

func TestDebtString(t *testing.T) {
	tests := []struct {
		debt Debt
		want string
	}{
		{0, "0min"},
		{FiveMins, "5min"},
		{TwentyMins, "20min"},
		{Debt(65 * time.Minute), "1h5min"},
		{Debt(26 * time.Hour), "1d2h"},
		{Debt(48*time.Hour + 3*time.Minute), "2d3min"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.debt.String())
		})
	}
}

func TestFindingKeyAndSignature(t *testing.T) {
	f := Finding{
		RuleID:   "SwallowedException",
		RuleSet:  "exceptions",
		Severity: Major,
		Location: LocationOf(syntax.Span{
			File:  "src/Service.java",
			Start: syntax.Position{Offset: 120, Line: 8, Column: 11},
			End:   syntax.Position{Offset: 160, Line: 10, Column: 6},
		}),
		Entity: "Service.load",
	}

	assert.Equal(t, Key{RuleID: "SwallowedException", File: "src/Service.java", Start: 120, End: 160}, f.Key())
	assert.Equal(t, "SwallowedException:src/Service.java:Service.load", f.Signature())
	assert.Equal(t, "src/Service.java:8:11", f.Location.String())

	moved := f
	moved.Location.Start.Offset += 40
	moved.Location.End.Offset += 40
	assert.NotEqual(t, f.Key(), moved.Key())
	assert.Equal(t, f.Signature(), moved.Signature())
}

func TestFindingJSON(t *testing.T) {
	f := Finding{RuleID: "PrintStackTrace", Severity: Minor, Debt: TwentyMins}
	data, err := json.Marshal(f)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"severity":"minor"`)
	assert.Contains(t, string(data), `"debt":"20min"`)
}
