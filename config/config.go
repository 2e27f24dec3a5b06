package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/spiffcs/linear-stats/internal/action"
	"github.com/spiffcs/linear-stats/internal/apperr"
	"github.com/spiffcs/linear-stats/internal/constants"
)

// Config represents the application configuration
type Config struct {
	TeamID        string `yaml:"team_id,omitempty"`
	OutputPath    string `yaml:"output_path,omitempty"`
	Schedule      string `yaml:"schedule,omitempty"`
	DefaultFormat string `yaml:"default_format,omitempty"`
	Endpoint      string `yaml:"endpoint,omitempty"`
	Timeout       string `yaml:"timeout,omitempty"`
	HistoryPath   string `yaml:"history_path,omitempty"`
}

// DefaultConfigDir returns the default config directory
func DefaultConfigDir() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return ".linear-stats"
	}
	return filepath.Join(configDir, "linear-stats")
}

// ConfigPath returns the path to the global config file
func ConfigPath() string {
	return filepath.Join(DefaultConfigDir(), "config.yaml")
}

// LocalConfigPath returns the path to the local config file in the current directory
func LocalConfigPath() string {
	return ".linear-stats.yaml"
}

// Load loads the global config and merges the local .linear-stats.yaml on
// top of it (local values take precedence).
func Load() (*Config, error) {
	return LoadFrom(ConfigPath(), LocalConfigPath())
}

// LoadFrom is Load with explicit file locations. Missing files are skipped.
func LoadFrom(globalPath, localPath string) (*Config, error) {
	cfg := &Config{}

	global, err := readFile(globalPath)
	if err != nil {
		return nil, fmt.Errorf("global config: %w", err)
	}
	if global != nil {
		cfg = global
	}

	local, err := readFile(localPath)
	if err != nil {
		return nil, fmt.Errorf("local config: %w", err)
	}
	if local != nil {
		cfg = mergeConfig(cfg, local)
	}

	return cfg, nil
}

func readFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, apperr.New(apperr.KindConfiguration, "failed to parse "+path, err)
	}
	return &cfg, nil
}

// mergeConfig merges local config on top of global config.
// Unset local values preserve global values.
func mergeConfig(global, local *Config) *Config {
	pick := func(l, g string) string {
		if l != "" {
			return l
		}
		return g
	}
	return &Config{
		TeamID:        pick(local.TeamID, global.TeamID),
		OutputPath:    pick(local.OutputPath, global.OutputPath),
		Schedule:      pick(local.Schedule, global.Schedule),
		DefaultFormat: pick(local.DefaultFormat, global.DefaultFormat),
		Endpoint:      pick(local.Endpoint, global.Endpoint),
		Timeout:       pick(local.Timeout, global.Timeout),
		HistoryPath:   pick(local.HistoryPath, global.HistoryPath),
	}
}

// ToYAML returns the config as a YAML string
func (c *Config) ToYAML() (string, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("failed to marshal config: %w", err)
	}
	return string(data), nil
}

// ConfigPathInfo contains information about config file paths
type ConfigPathInfo struct {
	GlobalPath   string
	GlobalExists bool
	LocalPath    string
	LocalExists  bool
}

// GetConfigPaths returns path info for both global and local configs
func GetConfigPaths() ConfigPathInfo {
	globalPath := ConfigPath()
	localPath := LocalConfigPath()

	absLocalPath, err := filepath.Abs(localPath)
	if err != nil {
		absLocalPath = localPath
	}

	_, globalErr := os.Stat(globalPath)
	_, localErr := os.Stat(localPath)

	return ConfigPathInfo{
		GlobalPath:   globalPath,
		GlobalExists: globalErr == nil,
		LocalPath:    absLocalPath,
		LocalExists:  localErr == nil,
	}
}

// MinimalConfig returns a config template with comments
func MinimalConfig() string {
	return `# linear-stats configuration file
# The API key is never read from this file: export LINEAR_API_KEY instead.

# Linear team to aggregate (LINEAR_TEAM_ID or --team override this)
# team_id: 00000000-0000-0000-0000-000000000000

# Where the JSON summary is written
output_path: ` + constants.DefaultOutputPath + `

# Schedule string recorded in the summary metadata
schedule: "` + constants.DefaultSchedule + `"

# Console output format: table, json or markdown
default_format: ` + constants.DefaultFormat + `

# Per-request timeout
# timeout: 30s

# endpoint: ` + constants.DefaultEndpoint + `
`
}

// SaveTo writes content to a specific path, creating directories as needed
func SaveTo(path string, content string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	if err := os.WriteFile(path, []byte(content), constants.ConfigFilePermissions); err != nil {
		return fmt.Errorf("failed to write file %s: %w", path, err)
	}

	return nil
}

// Overrides are values given on the command line. Empty fields are unset.
type Overrides struct {
	TeamID     string
	OutputPath string
	Schedule   string
	Format     string
	Timeout    time.Duration
}

// Run is the fully resolved input of one aggregation run.
type Run struct {
	APIKey      string
	TeamID      string
	OutputPath  string
	Schedule    string
	Format      string
	Endpoint    string
	Timeout     time.Duration
	HistoryPath string
}

// Resolve combines flags, environment, config file and defaults into a Run.
// Precedence is flag, then environment, then file, then default. The API
// key comes only from LINEAR_API_KEY or the action input.
func Resolve(cfg *Config, o Overrides, env action.Env) (Run, error) {
	if cfg == nil {
		cfg = &Config{}
	}
	inputs := action.ReadInputs(env)
	lookup := func(key string) string {
		v, _ := env(key)
		return strings.TrimSpace(v)
	}

	r := Run{
		APIKey:      first(lookup("LINEAR_API_KEY"), inputs.APIKey),
		TeamID:      first(o.TeamID, lookup("LINEAR_TEAM_ID"), inputs.TeamID, cfg.TeamID),
		OutputPath:  first(o.OutputPath, inputs.OutputPath, cfg.OutputPath, constants.DefaultOutputPath),
		Schedule:    first(o.Schedule, inputs.Schedule, cfg.Schedule, constants.DefaultSchedule),
		Format:      first(o.Format, cfg.DefaultFormat, constants.DefaultFormat),
		Endpoint:    first(cfg.Endpoint, constants.DefaultEndpoint),
		Timeout:     o.Timeout,
		HistoryPath: cfg.HistoryPath,
	}

	if r.Timeout == 0 {
		r.Timeout = constants.DefaultTimeout
		if cfg.Timeout != "" {
			d, err := time.ParseDuration(cfg.Timeout)
			if err != nil || d <= 0 {
				return Run{}, apperr.Configuration(fmt.Sprintf("invalid timeout %q in config", cfg.Timeout)).
					WithSuggestion("Use a Go duration such as 30s or 1m")
			}
			r.Timeout = d
		}
	}
	if r.Timeout < 0 {
		return Run{}, apperr.Configuration("timeout must be positive")
	}

	return r, nil
}

func first(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
