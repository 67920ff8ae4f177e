package lox

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runAndReport runs source the way the command line driver does, writing
// program output to stdout and the rendered error, if any, to stderr.
func runAndReport(source string, location *SourceLocation, stdout, stderr *bytes.Buffer) {
	ctx := NewContext()
	ctx.Stdout = stdout
	_, err := ctx.EvalSource(source, location)
	if err != nil {
		stderr.WriteString(Report(err) + "\n")
	}
}

// splitExpected separates the lines of a golden file into expected stdout
// and expected stderr. Lines starting with "err: " belong to stderr.
func splitExpected(expected string) (stdout string, stderr string) {
	expected = strings.TrimSuffix(expected, "\n")
	if expected == "" {
		return "", ""
	}
	for _, line := range strings.Split(expected, "\n") {
		if rest, ok := strings.CutPrefix(line, "err: "); ok {
			stderr += rest + "\n"
		} else {
			stdout += line + "\n"
		}
	}
	return stdout, stderr
}

func TestGoldenPrograms(t *testing.T) {
	paths, err := filepath.Glob(filepath.Join("testdata", "*.lox"))
	require.NoError(t, err)
	require.NotEmpty(t, paths)

	for _, path := range paths {
		name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		t.Run(name, func(t *testing.T) {
			source, err := os.ReadFile(path)
			require.NoError(t, err)
			expected, err := os.ReadFile(filepath.Join("testdata", name+".expected"))
			require.NoError(t, err)
			wantStdout, wantStderr := splitExpected(string(expected))

			var stdout, stderr bytes.Buffer
			runAndReport(string(source), &SourceLocation{path, 1}, &stdout, &stderr)

			assert.Equal(t, wantStdout, stdout.String(), "stdout")
			assert.Equal(t, wantStderr, stderr.String(), "stderr")
		})
	}
}

func TestSplitExpected(t *testing.T) {
	stdout, stderr := splitExpected("1\n2\nerr: runtime error[:3]: Attempted to divide by zero.\n")
	assert.Equal(t, "1\n2\n", stdout)
	assert.Equal(t, "runtime error[:3]: Attempted to divide by zero.\n", stderr)

	stdout, stderr = splitExpected("")
	assert.Empty(t, stdout)
	assert.Empty(t, stderr)
}

func TestPtr(t *testing.T) {
	location := Ptr(SourceLocation{"file.lox", 3})
	assert.Equal(t, 3, location.Line)
}

func TestEscapeAndQuote(t *testing.T) {
	assert.Equal(t, `a\tb\nc\"d\\e`, escape("a\tb\nc\"d\\e"))
	assert.Equal(t, "`x`", quote("x"))
	assert.Equal(t, "\"`\"", quote("`"))
}
