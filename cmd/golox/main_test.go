package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func runCLI(args []string, stdin string) (int, string, string) {
	var stdout, stderr bytes.Buffer
	code := run(args, strings.NewReader(stdin), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestRunFileExitCodes(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name   string
		source string
		code   int
		stdout string
		stderr string
	}{
		{"ok.lox", "print 1 + 2;", exitOK, "3\n", ""},
		{"compile.lox", "print ;", exitCompileError, "", "[line 1] Error at ';': Expect expression.\n"},
		{"runtime.lox", "print 1;\nprint x;", exitRuntimeError, "1\n", "Undefined variable 'x'.\n[line 2] in script\n"},
	}

	for _, tt := range tests {
		path := writeFile(t, dir, tt.name, tt.source)
		code, stdout, stderr := runCLI([]string{"-config", writeFile(t, dir, "empty.toml", ""), path}, "")
		assert.Equal(t, tt.code, code, tt.name)
		assert.Equal(t, tt.stdout, stdout, tt.name)
		assert.Equal(t, tt.stderr, stderr, tt.name)
	}
}

func TestRunMissingFile(t *testing.T) {
	dir := t.TempDir()
	missing := filepath.Join(dir, "missing.lox")
	code, _, stderr := runCLI([]string{"-config", writeFile(t, dir, "empty.toml", ""), missing}, "")
	assert.Equal(t, exitIOError, code)
	assert.Contains(t, stderr, "Could not open file")
}

func TestRunUsage(t *testing.T) {
	code, _, stderr := runCLI([]string{"a.lox", "b.lox"}, "")
	assert.Equal(t, exitUsage, code)
	assert.Contains(t, stderr, "Usage: golox")

	code, _, _ = runCLI([]string{"-no-such-flag"}, "")
	assert.Equal(t, exitUsage, code)

	code, _, _ = runCLI([]string{"-config", filepath.Join(t.TempDir(), "nope.toml")}, "")
	assert.Equal(t, exitUsage, code)
}

func TestRunPrompt(t *testing.T) {
	dir := t.TempDir()
	cfg := writeFile(t, dir, "empty.toml", "")
	input := "var a = 1;\nprint a;\nprint ;\nprint nope;\na = a + 1;\nprint a;\n"

	code, stdout, stderr := runCLI([]string{"-config", cfg}, input)
	assert.Equal(t, exitOK, code)
	assert.Equal(t, "1\n2\n", stdout, "no prompt when stdin is not a terminal")
	assert.Equal(t,
		"[line 1] Error at ';': Expect expression.\n"+
			"Undefined variable 'nope'.\n[line 1] in script\n",
		stderr)
}

func TestRunConfigAndFlags(t *testing.T) {
	dir := t.TempDir()
	cfg := writeFile(t, dir, "golox.toml", "[vm]\nstack_limit = 2\n")
	script := writeFile(t, dir, "deep.lox", "print 1 + (2 + 3);")

	code, _, stderr := runCLI([]string{"-config", cfg, script}, "")
	assert.Equal(t, exitRuntimeError, code)
	assert.Contains(t, stderr, "Stack overflow.")

	code, stdout, _ := runCLI([]string{"-config", cfg, "-stack-limit", "8", script}, "")
	assert.Equal(t, exitOK, code)
	assert.Equal(t, "6\n", stdout)
}

func TestRunPrintCode(t *testing.T) {
	dir := t.TempDir()
	cfg := writeFile(t, dir, "empty.toml", "")
	script := writeFile(t, dir, "p.lox", "print 1;")

	code, stdout, _ := runCLI([]string{"-config", cfg, "-print-code", script}, "")
	assert.Equal(t, exitOK, code)
	assert.True(t, strings.HasPrefix(stdout, "== code ==\n"))
	assert.True(t, strings.HasSuffix(stdout, "1\n"))
}
