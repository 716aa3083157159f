package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeScript(t *testing.T, dir, name, source string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(source), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
	return path
}

func captureStdout(t *testing.T, fn func() error) (string, error) {
	t.Helper()
	old := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	fnErr := fn()

	w.Close()
	os.Stdout = old

	var buf bytes.Buffer
	buf.ReadFrom(r)
	return buf.String(), fnErr
}

func TestRunScriptExecutesProgram(t *testing.T) {
	dir := t.TempDir()
	path := writeScript(t, dir, "main.pseudo", `DECLARE total : INTEGER
total <- 0
FOR i <- 1 TO 3
	total <- total + i
NEXT i
OUTPUT total`)

	output, err := captureStdout(t, func() error {
		return runScript(runCmd, []string{path})
	})
	if err != nil {
		t.Fatalf("runScript failed: %v\noutput: %s", err, output)
	}
	if strings.TrimSpace(output) != "6" {
		t.Errorf("expected output 6, got %q", output)
	}
}

func TestRunScriptReportsSyntaxError(t *testing.T) {
	dir := t.TempDir()
	path := writeScript(t, dir, "bad.pseudo", "DECLARE x :")

	oldStderr := os.Stderr
	r, w, _ := os.Pipe()
	os.Stderr = w

	err := runScript(runCmd, []string{path})

	w.Close()
	os.Stderr = oldStderr
	var buf bytes.Buffer
	buf.ReadFrom(r)

	if err == nil {
		t.Fatal("expected an error for malformed DECLARE")
	}
	if !strings.Contains(buf.String(), "SyntaxError") {
		t.Errorf("expected SyntaxError in stderr, got %q", buf.String())
	}
}

func TestRunScriptRejectsWrongExtension(t *testing.T) {
	dir := t.TempDir()
	path := writeScript(t, dir, "main.txt", "OUTPUT 1")

	oldStderr := os.Stderr
	r, w, _ := os.Pipe()
	os.Stderr = w

	err := runScript(runCmd, []string{path})

	w.Close()
	os.Stderr = oldStderr
	var buf bytes.Buffer
	buf.ReadFrom(r)

	if err == nil {
		t.Fatal("expected an error for a non-.pseudo file")
	}
	if !strings.Contains(buf.String(), "UsageError") {
		t.Errorf("expected UsageError in stderr, got %q", buf.String())
	}
}

func TestRunScriptMissingFile(t *testing.T) {
	err := runScript(runCmd, []string{filepath.Join(t.TempDir(), "missing.pseudo")})
	if err == nil {
		t.Fatal("expected an error for a missing file")
	}
}

func TestRunScriptDumpTokens(t *testing.T) {
	dir := t.TempDir()
	path := writeScript(t, dir, "tok.pseudo", "DECLARE x : INTEGER")

	dumpTokens = true
	defer func() { dumpTokens = false }()

	output, err := captureStdout(t, func() error {
		return runScript(runCmd, []string{path})
	})
	if err != nil {
		t.Fatalf("runScript with --dump-tokens failed: %v", err)
	}
	if !strings.Contains(output, "DECLARE") {
		t.Errorf("expected token dump to mention DECLARE, got %q", output)
	}
}

func TestRunScriptDumpAST(t *testing.T) {
	dir := t.TempDir()
	path := writeScript(t, dir, "ast.pseudo", "DECLARE x : INTEGER")

	dumpAST = true
	defer func() { dumpAST = false }()

	output, err := captureStdout(t, func() error {
		return runScript(runCmd, []string{path})
	})
	if err != nil {
		t.Fatalf("runScript with --dump-ast failed: %v", err)
	}
	if !strings.Contains(output, "DECLARE") {
		t.Errorf("expected AST dump to mention DECLARE, got %q", output)
	}
}

func TestRunScriptTraceWritesToStderr(t *testing.T) {
	dir := t.TempDir()
	path := writeScript(t, dir, "trace.pseudo", "OUTPUT 1")

	trace = true
	defer func() { trace = false }()

	oldStderr := os.Stderr
	r, w, _ := os.Pipe()
	os.Stderr = w

	_, err := captureStdout(t, func() error {
		return runScript(runCmd, []string{path})
	})

	w.Close()
	os.Stderr = oldStderr
	var buf bytes.Buffer
	buf.ReadFrom(r)

	if err != nil {
		t.Fatalf("runScript with --trace failed: %v", err)
	}
	if !strings.Contains(buf.String(), "trace:") {
		t.Errorf("expected trace output on stderr, got %q", buf.String())
	}
}
