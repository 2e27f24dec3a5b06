package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorIsMatchesKind(t *testing.T) {
	err := fmt.Errorf("resolve team: %w", NotFound("team ENG not found", nil))

	assert.ErrorIs(t, err, ErrNotFound)
	assert.NotErrorIs(t, err, ErrAuthentication)
	assert.NotErrorIs(t, err, ErrTransport)
}

func TestErrorUnwrap(t *testing.T) {
	cause := errors.New("401 Unauthorized")
	err := Authentication("credential rejected", cause)

	assert.ErrorIs(t, err, cause)
	assert.ErrorIs(t, err, ErrAuthentication)
	assert.Equal(t, "AUTHENTICATION: credential rejected (401 Unauthorized)", err.Error())
}

func TestErrorMessageWithoutCause(t *testing.T) {
	err := Configuration("team id is required")
	assert.Equal(t, "CONFIGURATION: team id is required", err.Error())
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindTransport, KindOf(fmt.Errorf("page 3: %w", Transport("no data", nil))))
	assert.Equal(t, Kind(""), KindOf(errors.New("plain")))
	assert.Equal(t, Kind(""), KindOf(nil))
}

func TestSuggestionOf(t *testing.T) {
	err := fmt.Errorf("run: %w", Configuration("team id is required").WithSuggestion("set LINEAR_TEAM_ID"))
	assert.Equal(t, "set LINEAR_TEAM_ID", SuggestionOf(err))
	assert.Empty(t, SuggestionOf(errors.New("plain")))
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, 0},
		{"configuration", Configuration("x"), 2},
		{"authentication", Authentication("x", nil), 3},
		{"not found", fmt.Errorf("wrapped: %w", NotFound("x", nil)), 4},
		{"transport", Transport("x", nil), 5},
		{"unclassified", errors.New("connection reset"), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExitCode(tt.err))
		})
	}
}
