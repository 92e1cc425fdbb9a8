package runner_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/msgmark/pkg/entity"
	"github.com/yaklabco/msgmark/pkg/fsutil"
	"github.com/yaklabco/msgmark/pkg/markup"
	"github.com/yaklabco/msgmark/pkg/runner"
)

// countingConverter wraps the default parser and counts calls.
type countingConverter struct {
	calls atomic.Int64
}

func (c *countingConverter) Parse(ctx context.Context, text string) entity.FormattedText {
	c.calls.Add(1)
	return markup.New(markup.Options{}).Parse(ctx, text)
}

// blockingConverter cancels the run on its first call.
type blockingConverter struct {
	cancel context.CancelFunc
}

func (c *blockingConverter) Parse(_ context.Context, text string) entity.FormattedText {
	c.cancel()
	return entity.Plain(text)
}

func writeInputs(t *testing.T, dir string, inputs map[string]string) {
	t.Helper()

	for name, content := range inputs {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
}

func TestNew(t *testing.T) {
	t.Parallel()

	converter := markup.New(markup.Options{})
	r := runner.New(converter)

	require.NotNil(t, r)
	assert.Same(t, converter, r.Converter)
}

func TestRunner_Run_NoFiles(t *testing.T) {
	t.Parallel()

	r := runner.New(markup.New(markup.Options{}))
	result, err := r.Run(context.Background(), runner.Options{WorkingDir: t.TempDir()})

	require.NoError(t, err)
	assert.Empty(t, result.Files)
	assert.Zero(t, result.Stats.FilesDiscovered)
	assert.False(t, result.HasEntities())
	assert.False(t, result.HasErrors())
}

func TestRunner_Run_Stats(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeInputs(t, dir, map[string]string{
		"a.txt":      "Hello **world**",
		"b.md":       "||secret|| and **bold** and `code`",
		"c.msg":      "no formatting",
		"sub/d.txt":  "```go\nx := 1\n```",
		"ignored.go": "**not an input**",
	})

	r := runner.New(markup.New(markup.Options{}))
	result, err := r.Run(context.Background(), runner.Options{WorkingDir: dir, Jobs: 2})
	require.NoError(t, err)

	require.Len(t, result.Files, 4)
	assert.Equal(t, filepath.Join(dir, "a.txt"), result.Files[0].Path)
	assert.Equal(t, "Hello world", result.Files[0].Result.Text)

	stats := result.Stats
	assert.Equal(t, 4, stats.FilesDiscovered)
	assert.Equal(t, 4, stats.FilesProcessed)
	assert.Equal(t, 3, stats.FilesWithEntities)
	assert.Equal(t, 5, stats.EntitiesTotal)
	assert.Equal(t, map[entity.Type]int{
		entity.TypeBold:    2,
		entity.TypeSpoiler: 1,
		entity.TypeCode:    1,
		entity.TypePre:     1,
	}, stats.EntitiesByType)
	assert.True(t, result.HasEntities())
}

func TestRunner_Run_SerialVsParallelConsistency(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	inputs := make(map[string]string)
	for i := range 30 {
		name := filepath.Join("batch", strings.Repeat("x", i%5+1)+string(rune('a'+i%26))+".txt")
		inputs[name] = strings.Repeat("**b** __i__ ", i+1)
	}
	writeInputs(t, dir, inputs)

	r := runner.New(markup.New(markup.Options{Unit: entity.UnitUTF16}))
	serial, err := r.Run(context.Background(), runner.Options{WorkingDir: dir, Jobs: 1})
	require.NoError(t, err)
	parallel, err := r.Run(context.Background(), runner.Options{WorkingDir: dir, Jobs: 8})
	require.NoError(t, err)

	assert.Equal(t, serial, parallel)
}

func TestRunner_Run_EachFileConvertedOnce(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	inputs := make(map[string]string)
	for i := range 20 {
		inputs[filepath.Join("n", string(rune('a'+i))+".txt")] = "**x**"
	}
	writeInputs(t, dir, inputs)

	converter := &countingConverter{}
	result, err := runner.New(converter).Run(context.Background(), runner.Options{WorkingDir: dir, Jobs: 4})
	require.NoError(t, err)

	assert.Equal(t, int64(20), converter.calls.Load())
	assert.Equal(t, 20, result.Stats.FilesProcessed)
}

func TestRunner_Run_ReadErrorIsRecorded(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeInputs(t, dir, map[string]string{
		"small.txt": "**ok**",
		"large.txt": strings.Repeat("x", 64),
	})

	r := runner.New(markup.New(markup.Options{}))
	result, err := r.Run(context.Background(), runner.Options{WorkingDir: dir, MaxFileSize: 32})
	require.NoError(t, err)

	require.Len(t, result.Files, 2)
	require.ErrorIs(t, result.Files[0].Error, fsutil.ErrTooLarge)
	require.NoError(t, result.Files[1].Error)
	assert.Equal(t, 1, result.Stats.FilesErrored)
	assert.Equal(t, 1, result.Stats.FilesProcessed)
	assert.True(t, result.HasErrors())
}

func TestRunner_Run_Write(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeInputs(t, dir, map[string]string{"a.txt": "Hello **world**"})

	r := runner.New(markup.New(markup.Options{}))
	opts := runner.Options{WorkingDir: dir, Write: true}

	result, err := r.Run(context.Background(), opts)
	require.NoError(t, err)

	sidecar := filepath.Join(dir, "a.txt.entities.json")
	require.Len(t, result.Files, 1)
	assert.Equal(t, sidecar, result.Files[0].Written)
	assert.Equal(t, 1, result.Stats.FilesWritten)

	data, err := os.ReadFile(sidecar)
	require.NoError(t, err)

	var stored entity.FormattedText
	require.NoError(t, json.Unmarshal(data, &stored))
	assert.Equal(t, result.Files[0].Result, stored)

	// A second run finds the result current and skips the sidecar itself.
	again, err := r.Run(context.Background(), opts)
	require.NoError(t, err)
	require.Len(t, again.Files, 1)
	assert.Empty(t, again.Files[0].Written)
	assert.Zero(t, again.Stats.FilesWritten)
}

func TestRunner_Run_ContextCancellation(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	inputs := make(map[string]string)
	for i := range 50 {
		inputs[filepath.Join("c", string(rune('A'+i%26))+strings.Repeat("z", i/26)+".txt")] = "x"
	}
	writeInputs(t, dir, inputs)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	result, err := runner.New(&blockingConverter{cancel: cancel}).Run(ctx, runner.Options{WorkingDir: dir, Jobs: 1})

	require.ErrorIs(t, err, context.Canceled)
	require.NotNil(t, result)
	assert.Less(t, len(result.Files), 50)
}

func TestRunner_RunInputs(t *testing.T) {
	t.Parallel()

	r := runner.New(markup.New(markup.Options{}))
	result, err := r.RunInputs(context.Background(), []runner.Input{
		{Name: "<stdin>", Text: "**a**"},
		{Name: "--text", Text: "plain"},
	}, runner.Options{Write: true})
	require.NoError(t, err)

	require.Len(t, result.Files, 2)
	assert.Equal(t, "<stdin>", result.Files[0].Path)
	assert.Equal(t, "a", result.Files[0].Result.Text)
	assert.Equal(t, "plain", result.Files[1].Result.Text)
	assert.Empty(t, result.Files[0].Written)
	assert.Equal(t, 1, result.Stats.FilesWithEntities)
}

func TestResult_NilSafe(t *testing.T) {
	t.Parallel()

	var result *runner.Result
	assert.False(t, result.HasErrors())
	assert.False(t, result.HasEntities())
}
