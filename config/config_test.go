package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spiffcs/linear-stats/internal/action"
	"github.com/spiffcs/linear-stats/internal/apperr"
	"github.com/spiffcs/linear-stats/internal/constants"
)

func envOf(vars map[string]string) action.Env {
	return func(key string) (string, bool) {
		v, ok := vars[key]
		return v, ok
	}
}

func writeYAML(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func TestLoadFromMissingFiles(t *testing.T) {
	dir := t.TempDir()
	cfg, err := LoadFrom(filepath.Join(dir, "global.yaml"), filepath.Join(dir, "local.yaml"))
	require.NoError(t, err)
	assert.Equal(t, &Config{}, cfg)
}

func TestLoadFromLocalOverridesGlobal(t *testing.T) {
	dir := t.TempDir()
	global := filepath.Join(dir, "global.yaml")
	local := filepath.Join(dir, "local.yaml")

	writeYAML(t, global, "team_id: global-team\nschedule: \"0 6 * * *\"\ntimeout: 10s\n")
	writeYAML(t, local, "team_id: local-team\noutput_path: out/stats.json\n")

	cfg, err := LoadFrom(global, local)
	require.NoError(t, err)
	assert.Equal(t, "local-team", cfg.TeamID)
	assert.Equal(t, "out/stats.json", cfg.OutputPath)
	assert.Equal(t, "0 6 * * *", cfg.Schedule)
	assert.Equal(t, "10s", cfg.Timeout)
}

func TestLoadFromInvalidYAML(t *testing.T) {
	dir := t.TempDir()
	global := filepath.Join(dir, "global.yaml")
	writeYAML(t, global, "team_id: [unterminated\n")

	_, err := LoadFrom(global, filepath.Join(dir, "none.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, apperr.ErrConfiguration)
}

func TestResolveDefaults(t *testing.T) {
	r, err := Resolve(nil, Overrides{}, envOf(nil))
	require.NoError(t, err)

	assert.Equal(t, Run{
		OutputPath: constants.DefaultOutputPath,
		Schedule:   constants.DefaultSchedule,
		Format:     constants.DefaultFormat,
		Endpoint:   constants.DefaultEndpoint,
		Timeout:    constants.DefaultTimeout,
	}, r)
}

func TestResolvePrecedence(t *testing.T) {
	cfg := &Config{
		TeamID:     "file-team",
		OutputPath: "file.json",
		Schedule:   "file-schedule",
		Timeout:    "45s",
	}

	tests := []struct {
		name string
		o    Overrides
		env  map[string]string
		want Run
	}{
		{
			name: "file values",
			env:  map[string]string{},
			want: Run{TeamID: "file-team", OutputPath: "file.json", Schedule: "file-schedule", Timeout: 45 * time.Second},
		},
		{
			name: "env beats file",
			env: map[string]string{
				"LINEAR_TEAM_ID":    "env-team",
				"INPUT_OUTPUT_PATH": "env.json",
				"INPUT_SCHEDULE":    "env-schedule",
			},
			want: Run{TeamID: "env-team", OutputPath: "env.json", Schedule: "env-schedule", Timeout: 45 * time.Second},
		},
		{
			name: "action input team id",
			env:  map[string]string{"INPUT_LINEAR_TEAM_ID": "input-team"},
			want: Run{TeamID: "input-team", OutputPath: "file.json", Schedule: "file-schedule", Timeout: 45 * time.Second},
		},
		{
			name: "flag beats env",
			o:    Overrides{TeamID: "flag-team", OutputPath: "flag.json", Schedule: "flag-schedule", Timeout: time.Minute},
			env:  map[string]string{"LINEAR_TEAM_ID": "env-team", "INPUT_OUTPUT_PATH": "env.json"},
			want: Run{TeamID: "flag-team", OutputPath: "flag.json", Schedule: "flag-schedule", Timeout: time.Minute},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := Resolve(cfg, tt.o, envOf(tt.env))
			require.NoError(t, err)
			assert.Equal(t, tt.want.TeamID, r.TeamID)
			assert.Equal(t, tt.want.OutputPath, r.OutputPath)
			assert.Equal(t, tt.want.Schedule, r.Schedule)
			assert.Equal(t, tt.want.Timeout, r.Timeout)
		})
	}
}

func TestResolveAPIKey(t *testing.T) {
	r, err := Resolve(nil, Overrides{}, envOf(map[string]string{
		"LINEAR_API_KEY":       "primary",
		"INPUT_LINEAR_API_KEY": "fallback",
	}))
	require.NoError(t, err)
	assert.Equal(t, "primary", r.APIKey)

	r, err = Resolve(nil, Overrides{}, envOf(map[string]string{"INPUT_LINEAR_API_KEY": "fallback"}))
	require.NoError(t, err)
	assert.Equal(t, "fallback", r.APIKey)
}

func TestResolveInvalidTimeout(t *testing.T) {
	_, err := Resolve(&Config{Timeout: "soon"}, Overrides{}, envOf(nil))
	require.Error(t, err)
	assert.ErrorIs(t, err, apperr.ErrConfiguration)
	assert.Equal(t, 2, apperr.ExitCode(err))
}

func TestMinimalConfigParses(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, SaveTo(path, MinimalConfig()))

	cfg, err := LoadFrom(path, filepath.Join(dir, "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, constants.DefaultOutputPath, cfg.OutputPath)
	assert.Equal(t, constants.DefaultSchedule, cfg.Schedule)
	assert.Equal(t, constants.DefaultFormat, cfg.DefaultFormat)
	assert.Empty(t, cfg.TeamID)
}

func TestToYAMLOmitsEmpty(t *testing.T) {
	out, err := (&Config{TeamID: "t1"}).ToYAML()
	require.NoError(t, err)
	assert.Equal(t, "team_id: t1\n", out)
}
