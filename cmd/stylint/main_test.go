package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type result struct {
	code   int
	stdout string
	stderr string
}

func runCLI(t *testing.T, args ...string) result {
	t.Helper()
	return runCLIWithInput(t, "", args...)
}

func runCLIWithInput(t *testing.T, stdin string, args ...string) result {
	t.Helper()
	var out, errOut bytes.Buffer
	code := run(context.Background(), append([]string{}, args...), strings.NewReader(stdin), &out, &errOut)
	return result{code: code, stdout: out.String(), stderr: errOut.String()}
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLintClean(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "ok.R", "my_var <- 1\nif (x == 1) {\n  print(x)\n}\n")

	res := runCLI(t, "lint", "--ui=off", "--color=off", dir)
	assert.Equal(t, 0, res.code, res.stderr)
	assert.Empty(t, strings.TrimSpace(res.stdout))
}

func TestLintErrors(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "bad.R", "myVar <- 1\n")

	res := runCLI(t, "lint", "--ui=off", "--color=off", path)
	assert.Equal(t, 1, res.code, res.stderr)
	assert.Contains(t, res.stdout, ":1:1: [error] case:")
}

func TestLintWarningPolicy(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "ws.R", "x <- 1 \n")

	res := runCLI(t, "lint", "--ui=off", path)
	assert.Equal(t, 0, res.code)
	assert.Contains(t, res.stdout, "[warning] trailing-whitespace")

	res = runCLI(t, "lint", "--ui=off", "--warnings-as-errors", path)
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stdout, "[error] trailing-whitespace")

	res = runCLI(t, "lint", "--ui=off", "--no-warnings", path)
	assert.Equal(t, 0, res.code)
	assert.NotContains(t, res.stdout, "trailing-whitespace")
}

func TestLintLambdaShorthand(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "lambda.R", "sq <- sapply(xs, \\(x) x^2)\nneg <- function(x) -x\n")

	res := runCLI(t, "lint", "--ui=off", path)
	assert.Equal(t, 0, res.code, res.stdout+res.stderr)
	assert.Empty(t, strings.TrimSpace(res.stdout))
}

func TestLintScanErrorIsFatal(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "open.R", "x <- \"open\n")

	res := runCLI(t, "lint", "--ui=off", path)
	assert.Equal(t, 2, res.code)
	assert.Contains(t, res.stdout, "[error] scan")
}

func TestLintMissingFile(t *testing.T) {
	res := runCLI(t, "lint", "--ui=off", filepath.Join(t.TempDir(), "nope.R"))
	assert.Equal(t, 2, res.code)
}

func TestLintNoInput(t *testing.T) {
	res := runCLI(t, "lint", "--ui=off", t.TempDir())
	assert.Equal(t, 2, res.code)
	assert.Contains(t, res.stderr, "stylint:")
}

func TestLintUnknownFormat(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "a.R", "x <- 1\n")

	res := runCLI(t, "lint", "--ui=off", "--format=xml", path)
	assert.Equal(t, 2, res.code)
	assert.Contains(t, res.stderr, "xml")
	assert.Empty(t, res.stdout)
}

func TestLintJSON(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.R", "myVar <- 1\n")
	writeFile(t, dir, "a.R", "x <- 1\n")

	res := runCLI(t, "lint", "--ui=off", "-f", "json", "-j", "4", dir)
	require.Equal(t, 1, res.code, res.stderr)

	var reports []struct {
		Path       string `json:"path"`
		Violations []struct {
			RuleID string `json:"rule_id"`
			Line   int    `json:"line"`
		} `json:"violations"`
	}
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &reports))
	require.Len(t, reports, 2)
	assert.True(t, strings.HasSuffix(reports[0].Path, "a.R"), reports[0].Path)
	assert.Empty(t, reports[0].Violations)
	require.NotEmpty(t, reports[1].Violations)
	assert.Equal(t, "case", reports[1].Violations[0].RuleID)
}

func TestLintSarif(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "b.R", "myVar <- 1\n")

	res := runCLI(t, "lint", "--ui=off", "-f", "sarif", path)
	require.Equal(t, 1, res.code, res.stderr)

	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &doc))
	assert.Equal(t, "2.1.0", doc["version"])
}

func TestLintConfigOverrides(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "b.R", "myVar <- 1\n")

	res := runCLI(t, "lint", "--ui=off", "--disable", "case", path)
	assert.Equal(t, 0, res.code, res.stdout)

	res = runCLI(t, "lint", "--ui=off", "--enable", "nonsense", path)
	assert.Equal(t, 2, res.code)
}

func TestLintUsesConfigFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "stylint.toml", "[rules.case]\nenabled = false\n")
	writeFile(t, dir, "b.R", "myVar <- 1\n")

	res := runCLI(t, "lint", "--ui=off", dir)
	assert.Equal(t, 0, res.code, res.stdout+res.stderr)
}

func TestLintTimings(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "a.R", "x <- 1\n")

	res := runCLI(t, "--timings", "lint", "--ui=off", path)
	assert.Equal(t, 0, res.code)
	assert.Contains(t, res.stderr, "lint")
}

func TestLintCacheDir(t *testing.T) {
	dir := t.TempDir()
	cacheDir := t.TempDir()
	path := writeFile(t, dir, "b.R", "myVar <- 1\n")

	first := runCLI(t, "lint", "--ui=off", "--cache", "--cache-dir", cacheDir, path)
	second := runCLI(t, "lint", "--ui=off", "--cache", "--cache-dir", cacheDir, path)
	assert.Equal(t, 1, first.code)
	assert.Equal(t, first, second)

	entries, err := os.ReadDir(filepath.Join(cacheDir, "results"))
	require.NoError(t, err)
	assert.NotEmpty(t, entries)
}

func TestLintClearCache(t *testing.T) {
	dir := t.TempDir()
	cacheDir := t.TempDir()
	path := writeFile(t, dir, "b.R", "myVar <- 1\n")

	res := runCLI(t, "lint", "--ui=off", "--cache", "--cache-dir", cacheDir, path)
	require.Equal(t, 1, res.code)
	require.DirExists(t, filepath.Join(cacheDir, "results"))

	res = runCLI(t, "lint", "--ui=off", "--clear-cache", "--cache-dir", cacheDir, path)
	assert.Equal(t, 1, res.code)
	assert.NoDirExists(t, filepath.Join(cacheDir, "results"))
}

func TestTokenize(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "a.R", "x <- 1\n")

	res := runCLI(t, "tokenize", "--format", "json", path)
	require.Equal(t, 0, res.code, res.stderr)

	var toks []struct {
		Kind string `json:"kind"`
		Text string `json:"text"`
	}
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &toks))
	require.NotEmpty(t, toks)
	assert.Equal(t, "x", toks[0].Text)
	assert.Equal(t, "eof", toks[len(toks)-1].Kind)

	var text strings.Builder
	for _, tok := range toks {
		text.WriteString(tok.Text)
	}
	assert.Equal(t, "x <- 1\n", text.String())
}

func TestTokenizeScanError(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "a.R", "x <- 'open\n")

	res := runCLI(t, "tokenize", path)
	assert.Equal(t, 2, res.code)
	assert.Contains(t, res.stderr, "unterminated string")
	assert.NotEmpty(t, res.stdout)
}

func TestTokenizeStdinCapsScanErrors(t *testing.T) {
	res := runCLIWithInput(t, "a § b ¤ c\n", "--max-diagnostics", "1", "tokenize", "-")
	assert.Equal(t, 2, res.code)
	assert.Contains(t, res.stderr, "<stdin>:1:3: [error] scan: unknown character")
	assert.Equal(t, 1, strings.Count(res.stderr, "unknown character"), res.stderr)
	assert.Contains(t, res.stderr, "further scan errors suppressed")
	assert.Contains(t, res.stdout, `"a" at 1:1`)
}

func TestRulesJSON(t *testing.T) {
	res := runCLI(t, "rules", "--format", "json", "--disable", "case", t.TempDir())
	require.Equal(t, 0, res.code, res.stderr)

	var rows []ruleRow
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &rows))
	require.Len(t, rows, 5)
	for _, r := range rows {
		assert.NotEmpty(t, r.Severity, r.ID)
		assert.Equal(t, r.ID != "case", r.Enabled, r.ID)
	}
}

func TestRulesText(t *testing.T) {
	res := runCLI(t, "rules", t.TempDir())
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "RULE")
	assert.Contains(t, res.stdout, "brace-placement")
}

func TestInit(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "proj")

	res := runCLI(t, "init", dir)
	require.Equal(t, 0, res.code, res.stderr)
	assert.FileExists(t, filepath.Join(dir, "stylint.toml"))

	res = runCLI(t, "init", dir)
	assert.Equal(t, 2, res.code)
	assert.Contains(t, res.stderr, "already exists")
}

func TestVersionJSON(t *testing.T) {
	res := runCLI(t, "version", "--format", "json")
	require.Equal(t, 0, res.code)

	var payload versionPayload
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &payload))
	assert.Equal(t, "stylint", payload.Tool)
	assert.NotEmpty(t, payload.Version)
	assert.Empty(t, payload.GitCommit)
}

func TestUnknownCommand(t *testing.T) {
	res := runCLI(t, "frobnicate")
	assert.Equal(t, 2, res.code)
}
