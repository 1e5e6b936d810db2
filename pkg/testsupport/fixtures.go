package testsupport

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// UpdateGoldensEnv names the environment variable that makes UpdateGolden
// rewrite golden files.
const UpdateGoldensEnv = "UPDATE_GOLDENS"

var (
	lineBreaks = regexp.MustCompile(`\r\n|\r|\n`)
	spaceRuns  = regexp.MustCompile(`\s{2,}`)
	anySpace   = regexp.MustCompile(`\s`)
)

// StripWhitespace trims html, drops line breaks and collapses runs of
// whitespace into one space. With removeAll every whitespace character is
// removed, which is only useful for assertions.
func StripWhitespace(html string, removeAll bool) string {
	out := strings.TrimSpace(html)
	out = lineBreaks.ReplaceAllString(out, "")
	out = spaceRuns.ReplaceAllString(out, " ")
	if removeAll {
		out = anySpace.ReplaceAllString(out, "")
	}
	return out
}

// CompareHTML returns a diff between want and got after stripping every
// whitespace character from both. An empty result means the markup matches.
func CompareHTML(want, got string) string {
	return cmp.Diff(StripWhitespace(want, true), StripWhitespace(got, true))
}

// MustReadFixture reads a testdata file and fails the test on error.
func MustReadFixture(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}
	return data
}

// MustReadGoldenString reads a golden file and returns its string content.
func MustReadGoldenString(t *testing.T, path string) string {
	t.Helper()
	return string(MustReadFixture(t, path))
}

// UpdateGolden rewrites the golden file at path with data when the
// UPDATE_GOLDENS environment variable is set, and reports whether it did.
// Callers compare against the golden file either way.
func UpdateGolden(t *testing.T, path string, data []byte) bool {
	t.Helper()
	if os.Getenv(UpdateGoldensEnv) == "" {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("golden dir %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden %s: %v", path, err)
	}
	t.Logf("updated golden %s", path)
	return true
}

// CaptureRender calls render with a buffer and fails the test unless the
// returned string and the buffered output agree. It returns the output.
func CaptureRender(t *testing.T, render func(io.Writer) (string, error)) string {
	t.Helper()

	var buf bytes.Buffer
	out, err := render(&buf)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if out != buf.String() {
		t.Fatalf("rendered output differs from written output:\n returned %q\n  written %q", out, buf.String())
	}
	return out
}
