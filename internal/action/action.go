// Package action implements the GitHub Actions lifecycle hooks that run
// around the main aggregation step.
package action

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spiffcs/linear-stats/internal/apperr"
	"github.com/spiffcs/linear-stats/internal/constants"
	"github.com/spiffcs/linear-stats/internal/log"
	"github.com/spiffcs/linear-stats/internal/output"
)

// OutputName is the step output that carries the statistics file path.
const OutputName = "statistics-file"

// Inputs are the action inputs as the runner exposes them.
type Inputs struct {
	APIKey     string
	TeamID     string
	OutputPath string
	Schedule   string
}

// Env looks up environment variables. os.LookupEnv satisfies it.
type Env func(key string) (string, bool)

// inputValue reads an action input. The runner exposes input "output-path"
// as INPUT_OUTPUT-PATH, so both the dashed and underscored names are tried.
func inputValue(env Env, name string) string {
	name = strings.ToUpper(name)
	for _, key := range []string{"INPUT_" + name, "INPUT_" + strings.ReplaceAll(name, "_", "-")} {
		if v, ok := env(key); ok {
			if v = strings.TrimSpace(v); v != "" {
				return v
			}
		}
	}
	return ""
}

// ReadInputs resolves the action inputs. Nothing is written back to the
// process environment.
func ReadInputs(env Env) Inputs {
	return Inputs{
		APIKey:     inputValue(env, "linear_api_key"),
		TeamID:     inputValue(env, "linear_team_id"),
		OutputPath: inputValue(env, "output_path"),
		Schedule:   inputValue(env, "schedule"),
	}
}

// IsActions reports whether the process runs inside a GitHub Actions job.
func IsActions(env Env) bool {
	v, _ := env("GITHUB_ACTIONS")
	return v == "true"
}

// Pre prepares the workspace before the main step by creating the directory
// that will hold the statistics file.
func Pre(path string) error {
	if path == "" {
		path = constants.DefaultOutputPath
	}
	if err := output.EnsureDir(path); err != nil {
		return err
	}
	log.Info("output directory ready", "path", path)
	return nil
}

// Post verifies the statistics file exists and publishes its path as the
// statistics-file step output. Without GITHUB_OUTPUT the legacy set-output
// workflow command is written to w.
func Post(env Env, path string, w io.Writer) error {
	if path == "" {
		path = constants.DefaultOutputPath
	}

	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return apperr.New(apperr.KindConfiguration, "statistics file not found: "+path, err).
				WithSuggestion("Make sure the main step ran and wrote its output")
		}
		return fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if info.IsDir() {
		return apperr.Configuration("statistics path is a directory: " + path)
	}

	if err := SetOutput(env, w, OutputName, path); err != nil {
		return err
	}
	log.Info("published step output", "name", OutputName, "path", path)
	return nil
}

// SetOutput publishes a step output.
func SetOutput(env Env, w io.Writer, name, value string) error {
	if file, ok := env("GITHUB_OUTPUT"); ok && file != "" {
		return appendLine(file, fmt.Sprintf("%s=%s", name, value))
	}
	_, err := fmt.Fprintf(w, "::set-output name=%s::%s\n", name, value)
	return err
}

// AppendStepSummary appends markdown to the job summary. It is a no-op
// outside Actions.
func AppendStepSummary(env Env, markdown string) error {
	file, ok := env("GITHUB_STEP_SUMMARY")
	if !ok || file == "" {
		return nil
	}
	return appendLine(file, markdown)
}

func appendLine(path, line string) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, constants.OutputFilePermissions)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	if !strings.HasSuffix(line, "\n") {
		line += "\n"
	}
	if _, err := f.WriteString(line); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return f.Close()
}
