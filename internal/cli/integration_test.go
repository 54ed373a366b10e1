package cli_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cedartree/cedar/internal/cli"
)

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := cli.NewRootCommand(cli.BuildInfo{Version: "test", Commit: "test", Date: "test"})
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append(args, "--color", "never"))
	err := cmd.Execute()
	return out.String(), err
}

func TestIntegration_ParseCleanFile(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	file := filepath.Join(tmpDir, "data.json")
	require.NoError(t, os.WriteFile(file, []byte(`{"a": [1, 2]}`), 0644))

	out, err := runCommand(t, "parse", file)
	require.NoError(t, err)
	assert.Contains(t, out, `(DOCUMENT (object (pair (string) (array (number) (number)))))`)
}

func TestIntegration_ParseReportsSyntaxErrors(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	file := filepath.Join(tmpDir, "bad.json")
	require.NoError(t, os.WriteFile(file, []byte(`  [123, faaaaalse, true]`), 0644))

	out, err := runCommand(t, "parse", file)
	require.ErrorIs(t, err, cli.ErrSyntaxErrorsFound)
	assert.Contains(t, out, "(ERROR 'a')")
}

func TestIntegration_ParseForcedLanguage(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	file := filepath.Join(tmpDir, "formula.txt")
	require.NoError(t, os.WriteFile(file, []byte("x ^ (100 + abc)"), 0644))

	out, err := runCommand(t, "parse", "--language", "arithmetic", file)
	require.NoError(t, err)
	assert.Contains(t, out, "(DOCUMENT (exponent (variable) (group (sum (number) (variable)))))")
}

func TestIntegration_EditIncremental(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	file := filepath.Join(tmpDir, "formula.calc")
	require.NoError(t, os.WriteFile(file, []byte("x ^ (100 + abc)"), 0644))

	out, err := runCommand(t, "edit", file, "14", "0", " * 5")
	require.NoError(t, err)
	assert.Contains(t, out,
		"(DOCUMENT (exponent (variable) (group (sum (number) (product (variable) (number))))))")
	assert.Contains(t, out, "re-read: bytes 10..19")

	// The file itself is untouched without --write.
	content, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Equal(t, "x ^ (100 + abc)", string(content))
}

func TestIntegration_EditWrite(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	file := filepath.Join(tmpDir, "data.json")
	require.NoError(t, os.WriteFile(file, []byte(`[1, 2]`), 0644))

	out, err := runCommand(t, "edit", "--write", "--no-backups", file, "4", "1", "42")
	require.NoError(t, err)
	assert.Contains(t, out, "(DOCUMENT (array (number) (number)))")

	content, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Equal(t, `[1, 42]`, string(content))
}

func TestIntegration_EditRejectsBadOffsets(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	file := filepath.Join(tmpDir, "data.json")
	require.NoError(t, os.WriteFile(file, []byte(`[1]`), 0644))

	_, err := runCommand(t, "edit", file, "2", "10")
	require.Error(t, err)
}

func TestIntegration_BatchReportsAcrossFiles(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "ok.json"), []byte(`[1, 2]`), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "bad.json"), []byte(`[1, , 2]`), 0644))

	out, err := runCommand(t, "batch", tmpDir)
	require.ErrorIs(t, err, cli.ErrSyntaxErrorsFound)
	assert.Contains(t, out, "bad.json")
	assert.Contains(t, out, "1 syntax error")
}

func TestIntegration_BatchCleanExitsZero(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "ok.json"), []byte(`{"k": true}`), 0644))

	out, err := runCommand(t, "batch", tmpDir)
	require.NoError(t, err)
	assert.Contains(t, out, "No syntax errors")
}

func TestIntegration_BatchJSONFormat(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "bad.json"), []byte(`[1, , 2]`), 0644))

	out, err := runCommand(t, "batch", "--format", "json", tmpDir)
	require.ErrorIs(t, err, cli.ErrSyntaxErrorsFound)
	assert.Contains(t, out, `"syntaxErrors": 1`)
}
