package action

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spiffcs/linear-stats/internal/apperr"
)

func envOf(vars map[string]string) Env {
	return func(key string) (string, bool) {
		v, ok := vars[key]
		return v, ok
	}
}

func TestReadInputs(t *testing.T) {
	env := envOf(map[string]string{
		"INPUT_LINEAR_API_KEY": "lin_api_123",
		"INPUT_LINEAR_TEAM_ID": " team-1 ",
		"INPUT_OUTPUT-PATH":    "out/stats.json",
		"INPUT_SCHEDULE":       "",
	})

	in := ReadInputs(env)
	assert.Equal(t, Inputs{
		APIKey:     "lin_api_123",
		TeamID:     "team-1",
		OutputPath: "out/stats.json",
	}, in)
}

func TestReadInputsPrefersUnderscoredName(t *testing.T) {
	env := envOf(map[string]string{
		"INPUT_OUTPUT_PATH": "a.json",
		"INPUT_OUTPUT-PATH": "b.json",
	})
	assert.Equal(t, "a.json", ReadInputs(env).OutputPath)
}

func TestIsActions(t *testing.T) {
	assert.True(t, IsActions(envOf(map[string]string{"GITHUB_ACTIONS": "true"})))
	assert.False(t, IsActions(envOf(map[string]string{"GITHUB_ACTIONS": "false"})))
	assert.False(t, IsActions(envOf(nil)))
}

func TestPreCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "linear-statistics", "issue-statistics.json")

	require.NoError(t, Pre(path))
	require.NoError(t, Pre(path))

	info, err := os.Stat(filepath.Dir(path))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestPostMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.json")

	var buf bytes.Buffer
	err := Post(envOf(nil), path, &buf)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperr.ErrConfiguration)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Empty(t, buf.String())
}

func TestPostDirectory(t *testing.T) {
	var buf bytes.Buffer
	err := Post(envOf(nil), t.TempDir(), &buf)
	assert.ErrorIs(t, err, apperr.ErrConfiguration)
}

func TestPostLegacyCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stats.json")
	require.NoError(t, os.WriteFile(path, []byte("{}"), 0o644))

	var buf bytes.Buffer
	require.NoError(t, Post(envOf(nil), path, &buf))
	assert.Equal(t, "::set-output name=statistics-file::"+path+"\n", buf.String())
}

func TestPostOutputFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "stats.json")
	require.NoError(t, os.WriteFile(path, []byte("{}"), 0o644))

	outFile := filepath.Join(dir, "github_output")
	require.NoError(t, os.WriteFile(outFile, []byte("existing=1\n"), 0o644))

	var buf bytes.Buffer
	require.NoError(t, Post(envOf(map[string]string{"GITHUB_OUTPUT": outFile}), path, &buf))
	assert.Empty(t, buf.String())

	data, err := os.ReadFile(outFile)
	require.NoError(t, err)
	assert.Equal(t, "existing=1\nstatistics-file="+path+"\n", string(data))
}

func TestAppendStepSummary(t *testing.T) {
	require.NoError(t, AppendStepSummary(envOf(nil), "ignored"))

	summary := filepath.Join(t.TempDir(), "summary.md")
	env := envOf(map[string]string{"GITHUB_STEP_SUMMARY": summary})

	require.NoError(t, AppendStepSummary(env, "## first"))
	require.NoError(t, AppendStepSummary(env, "## second\n"))

	data, err := os.ReadFile(summary)
	require.NoError(t, err)
	assert.Equal(t, "## first\n## second\n", string(data))
}
