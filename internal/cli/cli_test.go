package cli_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/msgmark/internal/cli"
	"github.com/yaklabco/msgmark/internal/configloader"
	"github.com/yaklabco/msgmark/pkg/entity"
	"github.com/yaklabco/msgmark/pkg/reporter"
)

var testInfo = cli.BuildInfo{Version: "test-version", Commit: "test-commit", Date: "test-date"}

// execute runs the root command with args and stdin, returning stdout.
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	cmd := cli.NewRootCommand(testInfo)

	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)

	err := cmd.Execute()
	return stdout.String(), err
}

// emptyConfig writes an empty config file so tests do not depend on any
// project configuration above the working directory.
func emptyConfig(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte("units: bytes\n"), 0o644))
	return path
}

func TestNewRootCommand(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo)

	require.NotNil(t, cmd)
	assert.Equal(t, "msgmark", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.NotEmpty(t, cmd.Long)

	for _, name := range []string{"debug", "config", "color"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(name), name)
	}
}

func TestRootCommandHasSubcommands(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo)

	for _, name := range []string{"parse", "compare", "init", "version"} {
		subCmd, _, err := cmd.Find([]string{name})
		require.NoError(t, err, name)
		assert.Equal(t, name, subCmd.Name())
	}
}

func TestParseCommandFlags(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo)
	parseCmd, _, err := cmd.Find([]string{"parse"})
	require.NoError(t, err)

	for _, name := range []string{
		"format", "units", "normalize-language", "infer-language", "jobs",
		"ignore", "compact", "write", "text", "follow-symlinks",
	} {
		assert.NotNil(t, parseCmd.Flags().Lookup(name), name)
	}
}

func TestVersionCommand(t *testing.T) {
	t.Parallel()

	out, err := execute(t, "", "version")
	require.NoError(t, err)

	assert.Contains(t, out, "msgmark")
	assert.Contains(t, out, "test-version")
	assert.Contains(t, out, "test-commit")
}

func TestParse_TextJSON(t *testing.T) {
	t.Parallel()

	out, err := execute(t, "", "parse", "--config", emptyConfig(t),
		"--format", "json", "--text", "Hello **world**")
	require.NoError(t, err)

	var doc reporter.Document
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	require.Len(t, doc.Files, 1)
	assert.Equal(t, "Hello world", doc.Files[0].Text)
	assert.Equal(t, []entity.Entity{{Type: entity.TypeBold, Offset: 6, Length: 5}}, doc.Files[0].Entities)
}

func TestParse_UnitsFlag(t *testing.T) {
	t.Parallel()

	tests := []struct {
		units      string
		wantOffset int
	}{
		{units: "bytes", wantOffset: 5},
		{units: "runes", wantOffset: 2},
		{units: "utf16", wantOffset: 3},
	}

	for _, testCase := range tests {
		t.Run(testCase.units, func(t *testing.T) {
			t.Parallel()

			out, err := execute(t, "", "parse", "--config", emptyConfig(t),
				"--format", "json", "--units", testCase.units, "--text", "😀 **x**")
			require.NoError(t, err)

			var doc reporter.Document
			require.NoError(t, json.Unmarshal([]byte(out), &doc))
			assert.Equal(t, testCase.units, doc.Units)
			require.Len(t, doc.Files[0].Entities, 1)
			assert.Equal(t, testCase.wantOffset, doc.Files[0].Entities[0].Offset)
		})
	}
}

func TestParse_Stdin(t *testing.T) {
	t.Parallel()

	out, err := execute(t, "||secret|| text", "parse", "--config", emptyConfig(t),
		"--format", "yaml")
	require.NoError(t, err)

	assert.Contains(t, out, "text: secret text")
	assert.Contains(t, out, "MessageEntitySpoiler")
}

func TestParse_StdinDash(t *testing.T) {
	t.Parallel()

	out, err := execute(t, "`x`", "parse", "--config", emptyConfig(t), "--color", "never", "-")
	require.NoError(t, err)

	assert.Contains(t, out, "  x\n")
	assert.Regexp(t, `Code\s+0\s+1\s+x`, out)
}

func TestParse_TextWithPathsIsUsageError(t *testing.T) {
	t.Parallel()

	_, err := execute(t, "", "parse", "--config", emptyConfig(t), "--text", "x", "file.md")
	require.ErrorIs(t, err, cli.ErrNoInput)
	assert.Equal(t, cli.ExitInvalidUsage, cli.ExitCode(err))
}

func TestParse_FilesAndWrite(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	input := filepath.Join(dir, "chat.msg")
	require.NoError(t, os.WriteFile(input, []byte("```python\nprint(1)\n```"), 0o644))

	out, err := execute(t, "", "parse", "--config", emptyConfig(t),
		"--format", "json", "--write", "--normalize-language", dir)
	require.NoError(t, err)

	var doc reporter.Document
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	require.Len(t, doc.Files, 1)
	assert.Equal(t, 1, doc.Summary.FilesWritten)

	data, err := os.ReadFile(input + ".entities.json")
	require.NoError(t, err)

	var stored entity.FormattedText
	require.NoError(t, json.Unmarshal(data, &stored))
	assert.Equal(t, "print(1)", stored.Text)
	require.Len(t, stored.Entities, 1)
	assert.Equal(t, entity.TypePre, stored.Entities[0].Type)
	assert.Equal(t, "python", stored.Entities[0].Language)
}

func TestParse_MissingPath(t *testing.T) {
	t.Parallel()

	_, err := execute(t, "", "parse", "--config", emptyConfig(t),
		filepath.Join(t.TempDir(), "missing.md"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestParse_FileErrorsExitCode(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "big.txt"), []byte(strings.Repeat("x", 100)), 0o644))

	_, err := execute(t, "", "parse", "--config", emptyConfig(t), "--color", "never",
		"--max-size", "10", dir)
	require.ErrorIs(t, err, cli.ErrFilesFailed)
	assert.Equal(t, cli.ExitIOError, cli.ExitCode(err))
}

func TestParse_InvalidConfig(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "bad.yml")
	require.NoError(t, os.WriteFile(path, []byte("units: words\n"), 0o644))

	_, err := execute(t, "", "parse", "--config", path, "--text", "x")
	require.Error(t, err)

	var validationErr *configloader.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, cli.ExitConfigError, cli.ExitCode(err))
}

func TestParse_InvalidFormat(t *testing.T) {
	t.Parallel()

	_, err := execute(t, "", "parse", "--config", emptyConfig(t), "--format", "xml", "--text", "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "format")
}

func TestCompare(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		args      []string
		wantAgree bool
	}{
		{name: "bold agrees", args: []string{"Hello **world**"}, wantAgree: true},
		{name: "code agrees", args: []string{"use `go test`"}, wantAgree: true},
		{name: "double underscore agrees", args: []string{"__x__"}, wantAgree: true},
		{name: "double underscore around code agrees", args: []string{"__`x`__"}, wantAgree: true},
		{name: "single star differs", args: []string{"*x*"}, wantAgree: false},
		{name: "spoiler differs", args: []string{"||x||"}, wantAgree: false},
		{name: "arguments joined", args: []string{"a", "**b**"}, wantAgree: true},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			args := append([]string{"compare", "--config", emptyConfig(t), "--format", "json"}, testCase.args...)
			out, err := execute(t, "", args...)
			require.NoError(t, err)

			var cmp cli.Comparison
			require.NoError(t, json.Unmarshal([]byte(out), &cmp))
			assert.Equal(t, strings.Join(testCase.args, " "), cmp.Input)
			assert.Equal(t, testCase.wantAgree, cmp.Agree)
		})
	}
}

func TestCompare_Check(t *testing.T) {
	t.Parallel()

	out, err := execute(t, "", "compare", "--config", emptyConfig(t), "--color", "never", "--check", "||x||")
	require.ErrorIs(t, err, cli.ErrResultsDiffer)
	assert.True(t, cli.IsQuiet(err))
	assert.Equal(t, cli.ExitFailure, cli.ExitCode(err))
	assert.Contains(t, out, "Results differ")
}

func TestCompare_StdinTrimsNewline(t *testing.T) {
	t.Parallel()

	out, err := execute(t, "**a**\n", "compare", "--config", emptyConfig(t), "--format", "yaml", "--check")
	require.NoError(t, err)
	assert.Contains(t, out, "input: '**a**'")
	assert.Contains(t, out, "agree: true")
}

func TestCompare_UnsupportedFormat(t *testing.T) {
	t.Parallel()

	_, err := execute(t, "", "compare", "--config", emptyConfig(t), "--format", "msgpack", "x")
	require.Error(t, err)
}

func TestInit(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		args         []string
		wantContains string
	}{
		{name: "minimal yaml", args: nil, wantContains: "units: bytes"},
		{name: "full yaml", args: []string{"--full"}, wantContains: "extensions:"},
		{name: "json", args: []string{"--format", "json"}, wantContains: `"units": "bytes"`},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			output := filepath.Join(t.TempDir(), configloader.ProjectConfigName)
			args := append([]string{"init", "--output", output}, testCase.args...)
			_, err := execute(t, "", args...)
			require.NoError(t, err)

			data, err := os.ReadFile(output)
			require.NoError(t, err)
			assert.Contains(t, string(data), testCase.wantContains)
		})
	}
}

func TestInit_RefusesOverwrite(t *testing.T) {
	t.Parallel()

	output := filepath.Join(t.TempDir(), configloader.ProjectConfigName)
	require.NoError(t, os.WriteFile(output, []byte("keep"), 0o644))

	_, err := execute(t, "", "init", "--output", output)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--force")

	_, err = execute(t, "", "init", "--output", output, "--force")
	require.NoError(t, err)

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.NotEqual(t, "keep", string(data))
}

func TestInit_InvalidFormat(t *testing.T) {
	t.Parallel()

	_, err := execute(t, "", "init", "--output", filepath.Join(t.TempDir(), "x"), "--format", "toml")
	require.Error(t, err)
}

func TestExitCode(t *testing.T) {
	t.Parallel()

	assert.Equal(t, cli.ExitSuccess, cli.ExitCode(nil))
	assert.Equal(t, cli.ExitFailure, cli.ExitCode(errors.New("boom")))
	assert.Equal(t, cli.ExitInvalidUsage, cli.ExitCode(cli.ErrNoInput))
	assert.Equal(t, cli.ExitIOError, cli.ExitCode(errors.Join(errors.New("x"), cli.ErrFilesFailed)))
	assert.Equal(t, cli.ExitConfigError, cli.ExitCode(&configloader.ValidationError{Field: "units"}))
	assert.False(t, cli.IsQuiet(cli.ErrFilesFailed))
}

func TestHelp_MarkupReference(t *testing.T) {
	t.Parallel()

	out, err := execute(t, "", "--help", "--color", "never")
	require.NoError(t, err)

	assert.Contains(t, out, "Markup:")
	assert.Contains(t, out, "**bold**")
	assert.Contains(t, out, "||spoiler||")
	assert.Contains(t, out, "Commands:")
	assert.Contains(t, out, "--config")

	sub, err := execute(t, "", "compare", "--help", "--color", "never")
	require.NoError(t, err)
	assert.NotContains(t, sub, "Markup:")
	assert.Contains(t, sub, "--flavor")
}

func TestParseHelp_ListsEnvironment(t *testing.T) {
	t.Parallel()

	out, err := execute(t, "", "parse", "--help", "--color", "never")
	require.NoError(t, err)

	assert.Contains(t, out, "Environment:")
	assert.Contains(t, out, "MSGMARK_INFER_LANGUAGE")
	assert.Contains(t, out, "[$MSGMARK_UNITS]")
}
