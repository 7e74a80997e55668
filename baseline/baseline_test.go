package baseline

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhamidi/sniff/finding"
	"github.com/dhamidi/sniff/syntax"
)

func swallowed(file, entity string, offset int) finding.Finding {
	return finding.Finding{
		RuleID:   "SwallowedException",
		RuleSet:  "exceptions",
		Location: finding.Location{File: file, Start: syntax.Position{Offset: offset}},
		Entity:   entity,
	}
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "baseline.yml")
	previous := New([]string{"PrintStackTrace:A.java:A.main"}, []string{"old"})
	b := FromFindings([]finding.Finding{
		swallowed("B.java", "B.load", 10),
		swallowed("A.java", "A.run", 40),
		swallowed("A.java", "A.run", 80),
	}, previous)
	require.NoError(t, b.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"PrintStackTrace:A.java:A.main"}, loaded.ManuallySuppressed)
	assert.Equal(t, []string{
		"SwallowedException:A.java:A.run",
		"SwallowedException:B.java:B.load",
	}, loaded.CurrentIssues)

	assert.True(t, loaded.Contains(swallowed("A.java", "A.run", 200)), "matching ignores offsets")
	assert.False(t, loaded.Contains(swallowed("A.java", "A.stop", 40)))
	assert.True(t, loaded.Contains(finding.Finding{RuleID: "PrintStackTrace", Location: finding.Location{File: "A.java"}, Entity: "A.main"}))
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	_, err := Load(filepath.Join(dir, "missing.yml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	bad := filepath.Join(dir, "bad.yml")
	require.NoError(t, os.WriteFile(bad, []byte("baseline: [unclosed"), 0o644))
	_, err = Load(bad)
	assert.ErrorContains(t, err, bad)

	empty := filepath.Join(dir, "empty.yml")
	require.NoError(t, os.WriteFile(empty, nil, 0o644))
	b, err := Load(empty)
	require.NoError(t, err)
	assert.False(t, b.Contains(swallowed("A.java", "A", 0)))
}
