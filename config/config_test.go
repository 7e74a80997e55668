package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhamidi/sniff/finding"
)

const userYAML = `
exceptions:
  active: true
  SwallowedException:
    ignoredExceptionTypes:
      - InterruptedException
      - TimeoutException
    allowedExceptionNameRegex: "_|(ignore|expected).*"
  PrintStackTrace:
    active: false
style:
  ForbiddenImport:
    imports: "java.util.*, sun.*"
unknown:
  whatever: 1
`

func TestLayering(t *testing.T) {
	user, err := Parse([]byte(userYAML))
	require.NoError(t, err)

	defaults := Values{}
	Set(defaults, true, "exceptions", "PrintStackTrace", "active")
	Set(defaults, "minor", "exceptions", "PrintStackTrace", "severity")
	cfg := user.WithDefaults(defaults)

	v, ok := cfg.Lookup("exceptions", "PrintStackTrace", "active")
	require.True(t, ok)
	assert.Equal(t, false, v, "user layer shadows defaults")

	v, ok = cfg.Lookup("exceptions", "PrintStackTrace", "severity")
	require.True(t, ok)
	assert.Equal(t, "minor", v, "defaults fill gaps")

	_, ok = cfg.Lookup("exceptions", "SwallowedException", "missing")
	assert.False(t, ok)
	_, ok = cfg.Lookup("exceptions", "active", "deeper")
	assert.False(t, ok)
}

func TestResolve(t *testing.T) {
	cfg, err := Parse([]byte(userYAML))
	require.NoError(t, err)
	r := cfg.Resolver("exceptions", "SwallowedException")

	types, err := Resolve(r, "ignoredExceptionTypes", []string{"Default"}, StringList)
	require.NoError(t, err)
	assert.Equal(t, []string{"InterruptedException", "TimeoutException"}, types)

	re, err := Resolve(r, "allowedExceptionNameRegex", nil, FullMatchRegex)
	require.NoError(t, err)
	assert.True(t, re.MatchString("_"))
	assert.True(t, re.MatchString("ignored"))
	assert.False(t, re.MatchString("e"))
	assert.False(t, re.MatchString("not_ignored"), "full match only")

	n, err := Resolve(r, "threshold", 7, Int)
	require.NoError(t, err)
	assert.Equal(t, 7, n, "missing options fall back to the default")

	active, err := Resolve(cfg.Resolver("exceptions", "PrintStackTrace"), "active", true, Bool)
	require.NoError(t, err)
	assert.False(t, active)

	imports, err := Resolve(cfg.Resolver("style", "ForbiddenImport"), "imports", nil, SimplePatterns)
	require.NoError(t, err)
	require.Len(t, imports, 2)
	assert.True(t, MatchesAny(imports, "java.util.List"))
	assert.True(t, MatchesAny(imports, "sun.misc.Unsafe"))
	assert.False(t, MatchesAny(imports, "java.io.File"))
}

func TestResolveErrors(t *testing.T) {
	cfg, err := Parse([]byte(`
exceptions:
  SwallowedException:
    allowedExceptionNameRegex: "(unclosed"
    ignoredExceptionTypes:
      nested: map
    severity: blocker
`))
	require.NoError(t, err)
	r := cfg.Resolver("exceptions", "SwallowedException")

	_, err = Resolve(r, "allowedExceptionNameRegex", nil, FullMatchRegex)
	var cfgErr *Error
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, "SwallowedException", cfgErr.Rule)
	assert.Equal(t, "allowedExceptionNameRegex", cfgErr.Option)
	assert.Equal(t, "(unclosed", cfgErr.Value)
	assert.Contains(t, err.Error(), "exceptions.SwallowedException.allowedExceptionNameRegex")

	_, err = Resolve(r, "ignoredExceptionTypes", nil, StringList)
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, "ignoredExceptionTypes", cfgErr.Option)

	_, err = Resolve(r, "severity", finding.Major, Severity)
	require.True(t, errors.As(err, &cfgErr))
	assert.Contains(t, err.Error(), "blocker")
}

func TestCoercions(t *testing.T) {
	list, err := StringList(" a, ,b ,")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, list)

	list, err = StringList([]any{"x", 3, true})
	require.NoError(t, err)
	assert.Equal(t, []string{"x", "3", "true"}, list)

	n, err := Int("42")
	require.NoError(t, err)
	assert.Equal(t, 42, n)
	_, err = Int(1.5)
	assert.Error(t, err)

	b, err := Bool("true")
	require.NoError(t, err)
	assert.True(t, b)

	re, err := Regex("")
	require.NoError(t, err)
	assert.Nil(t, re, "empty pattern matches nothing")

	sev, err := Severity("Fatal")
	require.NoError(t, err)
	assert.Equal(t, finding.Fatal, sev)
}

func TestSimplePatternIsAnchoredAndLiteral(t *testing.T) {
	p := CompileSimplePattern("com.acme.*Test")
	assert.Equal(t, `^com\.acme\..*Test$`, p.String())
	assert.True(t, p.MatchString("com.acme.FooTest"))
	assert.False(t, p.MatchString("com.acme.FooTests"))
	assert.False(t, p.MatchString("comXacme.FooTest"))
	assert.False(t, p.MatchString("org.com.acme.FooTest"))

	assert.True(t, CompileSimplePattern("*").MatchString("anything/at/all.java"))
}

func TestLoad(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	_, ok := cfg.Lookup("exceptions")
	assert.False(t, ok)

	path := filepath.Join(t.TempDir(), "sniff.yml")
	require.NoError(t, os.WriteFile(path, []byte(userYAML), 0o644))
	cfg, err = Load(path)
	require.NoError(t, err)
	v, ok := cfg.Lookup("exceptions", "active")
	require.True(t, ok)
	assert.Equal(t, true, v)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yml"))
	assert.Error(t, err)

	require.NoError(t, os.WriteFile(path, []byte("exceptions: [unclosed"), 0o644))
	_, err = Load(path)
	assert.ErrorContains(t, err, path)
}

func TestMarshalRoundTripsThroughLookup(t *testing.T) {
	values := Values{}
	Set(values, []string{"InterruptedException"}, "exceptions", "SwallowedException", "ignoredExceptionTypes")
	data, err := Marshal(values)
	require.NoError(t, err)

	cfg, err := Parse(data)
	require.NoError(t, err)
	raw, ok := cfg.Lookup("exceptions", "SwallowedException", "ignoredExceptionTypes")
	require.True(t, ok)
	list, err := StringList(raw)
	require.NoError(t, err)
	assert.Equal(t, []string{"InterruptedException"}, list)
}
